package extraction_engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"strings"

	// Decoders registered for image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/markdave123-py/docsight/internal/core"
)

// errUndecodable marks bytes that are not a raster image we can read.
var errUndecodable = errors.New("image: undecodable input")

var _ core.Extractor = (*ImageExtractor)(nil)

// ImageExtractor OCRs a single raster image.
type ImageExtractor struct {
	engine core.OCREngine
}

func NewImageExtractor(engine core.OCREngine) *ImageExtractor {
	return &ImageExtractor{engine: engine}
}

// Extract decodes data and runs OCR once. Undecodable input fails with
// errUndecodable; recognition failures come back as empty text.
func (e *ImageExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", errUndecodable, err)
	}
	slog.Debug("decoded image", "format", format, "bounds", img.Bounds().String())
	return e.recognize(ctx, img), nil
}

// recognize is the OCR step shared with the PDF extractor.
func (e *ImageExtractor) recognize(ctx context.Context, img image.Image) string {
	lines, err := e.engine.Recognize(ctx, img)
	if err != nil {
		slog.Error("single image recognition failed", "engine", e.engine.Name(), "err", err)
		return ""
	}
	return strings.Join(lines, "\n")
}
