package extraction_engine

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/markdave123-py/docsight/internal/core"
)

var _ core.Extractor = (*PPTXExtractor)(nil)

const (
	presentationPart = "ppt/presentation.xml"
	presentationRels = "ppt/_rels/presentation.xml.rels"
)

// PPTXExtractor reads Office Open XML presentations.
type PPTXExtractor struct{}

func NewPPTXExtractor() *PPTXExtractor { return &PPTXExtractor{} }

// Extract emits "--- Slide i ---" followed by the slide's shape texts for every
// slide that has any text. Text-less slides leave no trace in the output.
// The underlying cause of a failure is logged, never returned to the caller.
func (e *PPTXExtractor) Extract(_ context.Context, data []byte) (string, error) {
	slides, err := readSlides(data)
	if err != nil {
		slog.Error("pptx parse failed", "err", err)
		return "", core.NewExtractionError(http.StatusBadRequest, "pptx parse failed", err)
	}

	var blocks []string
	for i, shapes := range slides {
		if len(shapes) == 0 {
			continue
		}
		blocks = append(blocks, fmt.Sprintf("--- Slide %d ---\n%s", i+1, strings.Join(shapes, "\n")))
	}
	return strings.Join(blocks, "\n\n"), nil
}

type presentationXML struct {
	SlideIDs []struct {
		RelID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sldIdLst>sldId"`
}

type relationshipsXML struct {
	Relationships []struct {
		ID     string `xml:"Id,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

type slideXML struct {
	Shapes []shapeXML `xml:"cSld>spTree>sp"`
}

type shapeXML struct {
	Paragraphs []paragraphXML `xml:"txBody>p"`
}

// paragraphXML keeps its children in document order so runs, fields and
// line breaks interleave correctly.
type paragraphXML struct {
	Nodes []textNodeXML `xml:",any"`
}

type textNodeXML struct {
	XMLName xml.Name
	Text    string `xml:"t"`
}

// text joins the shape's paragraphs with "\n". A line break (a:br) inside a
// paragraph also becomes "\n", not the vertical tab some pptx readers emit.
func (s shapeXML) text() string {
	paras := make([]string, len(s.Paragraphs))
	for i, p := range s.Paragraphs {
		var b strings.Builder
		for _, n := range p.Nodes {
			switch n.XMLName.Local {
			case "r", "fld":
				b.WriteString(n.Text)
			case "br":
				b.WriteByte('\n')
			}
		}
		paras[i] = b.String()
	}
	return strings.Join(paras, "\n")
}

// readSlides returns, per slide in presentation order, the non-empty texts of
// its shapes in shape order.
func readSlides(data []byte) ([][]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open package: %w", err)
	}
	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[f.Name] = f
	}

	var pres presentationXML
	if err := decodePart(files, presentationPart, &pres); err != nil {
		return nil, err
	}
	var rels relationshipsXML
	if err := decodePart(files, presentationRels, &rels); err != nil {
		return nil, err
	}
	targets := make(map[string]string, len(rels.Relationships))
	for _, r := range rels.Relationships {
		targets[r.ID] = r.Target
	}

	out := make([][]string, 0, len(pres.SlideIDs))
	for _, id := range pres.SlideIDs {
		target, ok := targets[id.RelID]
		if !ok {
			return nil, fmt.Errorf("slide relationship %q not found", id.RelID)
		}
		var slide slideXML
		if err := decodePart(files, resolvePart("ppt", target), &slide); err != nil {
			return nil, err
		}
		var texts []string
		for _, sh := range slide.Shapes {
			if t := sh.text(); t != "" {
				texts = append(texts, t)
			}
		}
		out = append(out, texts)
	}
	return out, nil
}

// resolvePart turns a relationship target into a package part name.
func resolvePart(base, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Clean(path.Join(base, target))
}

func decodePart(files map[string]*zip.File, name string, v any) error {
	f, ok := files[name]
	if !ok {
		return fmt.Errorf("missing part %s", name)
	}
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer rc.Close()

	if err := xml.NewDecoder(rc).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}
