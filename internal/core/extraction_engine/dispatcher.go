package extraction_engine

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/markdave123-py/docsight/internal/core"
	"github.com/markdave123-py/docsight/internal/models"
)

var _ core.DocumentDispatcher = (*Dispatcher)(nil)

// NewDispatcher wires the standard suffix table. Order matters only for
// readability: no suffix in the table is a suffix of another.
func NewDispatcher(c Collaborators, cfg *EngineConfig) *Dispatcher {
	conf := cfg.withDefaults()
	image := NewImageExtractor(c.OCR)

	return newDispatcher(image,
		route{suffix: ".pdf", extractor: NewPDFExtractor(image, c.Rasterizer, conf)},
		route{suffix: ".xlsx", extractor: NewXLSXExtractor()},
		route{suffix: ".xls", extractor: NewXLSExtractor()},
		route{suffix: ".pptx", extractor: NewPPTXExtractor()},
		route{suffix: ".ppt", extractor: NewPPTExtractor(c.Decoder)},
	)
}

func newDispatcher(fallback *ImageExtractor, routes ...route) *Dispatcher {
	return &Dispatcher{routes: routes, fallback: fallback}
}

// Dispatch lowercases the filename and hands the bytes to the first extractor
// whose suffix matches. Anything unmatched is treated as an image.
func (d *Dispatcher) Dispatch(ctx context.Context, doc models.RawDocument) (string, error) {
	name := strings.ToLower(doc.Filename)

	for _, r := range d.routes {
		if strings.HasSuffix(name, r.suffix) {
			slog.Debug("dispatching document", "filename", name, "route", r.suffix)
			return r.extractor.Extract(ctx, doc.Data)
		}
	}

	text, err := d.fallback.Extract(ctx, doc.Data)
	if errors.Is(err, errUndecodable) {
		return "", core.UnsupportedFormat(name, err)
	}
	return text, err
}
