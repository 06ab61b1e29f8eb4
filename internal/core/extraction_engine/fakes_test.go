package extraction_engine

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"

	"github.com/markdave123-py/docsight/internal/core"
)

// fakeOCR answers by image width so concurrent page OCR stays deterministic.
type fakeOCR struct {
	mu      sync.Mutex
	byWidth map[int][]string
	err     error
	calls   int
}

func (f *fakeOCR) Name() string { return "fake" }

func (f *fakeOCR) Recognize(_ context.Context, img image.Image) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.byWidth[img.Bounds().Dx()], nil
}

type fakeRasterizer struct {
	pages []image.Image
	err   error
	dpi   int
}

func (f *fakeRasterizer) Rasterize(_ context.Context, _ []byte, dpi int) ([]image.Image, error) {
	f.dpi = dpi
	return f.pages, f.err
}

// recordingExtractor counts how often it was picked by the dispatcher.
type recordingExtractor struct {
	name  string
	calls int
}

func (r *recordingExtractor) Extract(context.Context, []byte) (string, error) {
	r.calls++
	return r.name, nil
}

var _ core.Extractor = (*recordingExtractor)(nil)

var errBoom = errors.New("boom")

func blankImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.White)
		}
	}
	return img
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, blankImage(w, h)); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}
