package extraction_engine

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/markdave123-py/docsight/internal/core"
)

const (
	nsP = `xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"`
	nsA = `xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"`
	nsR = `xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"`
)

// shape renders a p:sp whose paragraphs hold the given runs.
func shape(paragraphs ...string) string {
	var b strings.Builder
	b.WriteString(`<p:sp><p:nvSpPr><p:cNvPr id="2" name="t"/></p:nvSpPr><p:txBody><a:bodyPr/>`)
	for _, p := range paragraphs {
		b.WriteString(`<a:p><a:pPr/>` + p + `<a:endParaRPr lang="en-US"/></a:p>`)
	}
	b.WriteString(`</p:txBody></p:sp>`)
	return b.String()
}

func run(text string) string { return `<a:r><a:rPr lang="en-US"/><a:t>` + text + `</a:t></a:r>` }

// pptxBytes builds a minimal presentation. slides[i] is the inner XML of the
// i-th slide's spTree. Slide parts are stored in reverse file order to prove
// ordering comes from presentation.xml.
func pptxBytes(t *testing.T, slides ...string) []byte {
	t.Helper()
	var ids, rels strings.Builder
	for i := range slides {
		fmt.Fprintf(&ids, `<p:sldId id="%d" r:id="rId%d"/>`, 256+i, i+10)
		fmt.Fprintf(&rels, `<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide%d.xml"/>`, i+10, i+1)
	}

	parts := map[string]string{
		"ppt/presentation.xml": `<?xml version="1.0" encoding="UTF-8"?><p:presentation ` + nsP + ` ` + nsR + `><p:sldIdLst>` + ids.String() + `</p:sldIdLst></p:presentation>`,
		"ppt/_rels/presentation.xml.rels": `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` + rels.String() + `</Relationships>`,
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	write := func(name, body string) {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create: %v", err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("zip write: %v", err)
		}
	}
	for i := len(slides) - 1; i >= 0; i-- {
		write(fmt.Sprintf("ppt/slides/slide%d.xml", i+1),
			`<?xml version="1.0" encoding="UTF-8"?><p:sld `+nsP+` `+nsA+` `+nsR+`><p:cSld><p:spTree>`+slides[i]+`</p:spTree></p:cSld></p:sld>`)
	}
	for name, body := range parts {
		write(name, body)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

func TestPPTXExtractor_OnlySlidesWithText(t *testing.T) {
	data := pptxBytes(t,
		shape(""),
		shape(run("Hi")),
		`<p:pic><p:nvPicPr><p:cNvPr id="3" name="img"/></p:nvPicPr></p:pic>`,
	)

	got, err := NewPPTXExtractor().Extract(context.Background(), data)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != "--- Slide 2 ---\nHi" {
		t.Errorf("got %q", got)
	}
}

func TestPPTXExtractor_ShapesAndParagraphs(t *testing.T) {
	data := pptxBytes(t,
		shape(run("Title")),
		shape(run("Hello, ")+run("world"), run("line")+`<a:br/>`+run("break"))+shape(run("second shape")),
	)

	got, err := NewPPTXExtractor().Extract(context.Background(), data)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	want := "--- Slide 1 ---\nTitle\n\n--- Slide 2 ---\nHello, world\nline\nbreak\nsecond shape"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPPTXExtractor_NoTextAnywhere(t *testing.T) {
	got, err := NewPPTXExtractor().Extract(context.Background(), pptxBytes(t, shape(), shape("")))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestPPTXExtractor_FailureHidesCause(t *testing.T) {
	for name, data := range map[string][]byte{
		"not a zip":          []byte("garbage"),
		"missing slide part": brokenPPTX(t),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := NewPPTXExtractor().Extract(context.Background(), data)
			ee, ok := core.AsExtractionError(err)
			if !ok {
				t.Fatalf("expected ExtractionError, got %v", err)
			}
			if ee.Status != 400 || ee.Detail != "pptx parse failed" {
				t.Errorf("got %d %q", ee.Status, ee.Detail)
			}
			if ee.Err == nil {
				t.Error("cause should still be kept for logs")
			}
		})
	}
}

func brokenPPTX(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create("ppt/presentation.xml")
	w.Write([]byte(`<p:presentation ` + nsP + ` ` + nsR + `><p:sldIdLst><p:sldId id="256" r:id="rId1"/></p:sldIdLst></p:presentation>`))
	w, _ = zw.Create("ppt/_rels/presentation.xml.rels")
	w.Write([]byte(`<Relationships><Relationship Id="rId1" Target="slides/slide1.xml"/></Relationships>`))
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

func TestResolvePart(t *testing.T) {
	tests := map[string]string{
		"slides/slide1.xml":      "ppt/slides/slide1.xml",
		"/ppt/slides/slide3.xml": "ppt/slides/slide3.xml",
		"../ppt/slides/s.xml":    "ppt/slides/s.xml",
	}
	for target, want := range tests {
		if got := resolvePart("ppt", target); got != want {
			t.Errorf("resolvePart(%q) = %q, want %q", target, got, want)
		}
	}
}
