package fetcher

import (
	"net/url"
	"path"
	"strings"
)

// ResolveFilename names a downloaded document for dispatch. The URL path's
// basename wins when it has an extension; otherwise the name is synthesized
// from the response's content type.
func ResolveFilename(rawURL, contentType string) string {
	p := urlPath(rawURL)
	name := ""
	// A path ending in "/" names a directory: its basename is empty.
	if !strings.HasSuffix(p, "/") {
		name = path.Base(p)
	}
	if name == "" || name == "." || !strings.Contains(name, ".") {
		return InferFilename(contentType)
	}
	return name
}

// InferFilename maps a content type onto a synthetic filename by substring, in
// priority order. Legacy .xls is never produced: an Excel content type always
// becomes .xlsx.
func InferFilename(contentType string) string {
	switch {
	case strings.Contains(contentType, "pdf"):
		return "temp.pdf"
	case strings.Contains(contentType, "sheet"), strings.Contains(contentType, "excel"):
		return "temp.xlsx"
	case strings.Contains(contentType, "presentation"):
		return "temp.pptx"
	default:
		return "temp.jpg"
	}
}

func urlPath(raw string) string {
	if u, err := url.Parse(raw); err == nil {
		return u.Path
	}
	p, _, _ := strings.Cut(raw, "?")
	return p
}
