package core

import (
	"context"
	"image"

	"github.com/markdave123-py/docsight/internal/models"
)

// OCREngine recognizes text lines in a raster image.
// Implementations are built once at startup and shared by every request,
// so Recognize must be safe for concurrent use.
type OCREngine interface {
	Name() string
	Recognize(ctx context.Context, img image.Image) ([]string, error)
}

// Rasterizer renders every page of a PDF into an ordered slice of images.
type Rasterizer interface {
	Rasterize(ctx context.Context, pdf []byte, dpi int) ([]image.Image, error)
}

// CommandResult is the captured outcome of an external process.
type CommandResult struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// ExternalDecoder converts a file on disk into text by running an external tool.
// A non-nil error means the tool could not be run at all; a tool that ran and
// failed reports it through ExitCode.
type ExternalDecoder interface {
	Decode(ctx context.Context, path string) (*CommandResult, error)
}

// Extractor turns the raw bytes of one document family into normalized text.
type Extractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

// DocumentDispatcher routes a document to the extractor matching its filename.
type DocumentDispatcher interface {
	Dispatch(ctx context.Context, doc models.RawDocument) (string, error)
}
