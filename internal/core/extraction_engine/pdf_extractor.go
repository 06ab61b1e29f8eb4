package extraction_engine

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/markdave123-py/docsight/internal/core"
)

var _ core.Extractor = (*PDFExtractor)(nil)

// PDFExtractor rasterizes every page and OCRs it.
type PDFExtractor struct {
	image      *ImageExtractor
	rasterizer core.Rasterizer
	dpi        int
	workers    int
}

func NewPDFExtractor(image *ImageExtractor, rasterizer core.Rasterizer, cfg EngineConfig) *PDFExtractor {
	return &PDFExtractor{image: image, rasterizer: rasterizer, dpi: cfg.PDFDPI, workers: cfg.PageWorkers}
}

// Extract emits one "--- Page i ---" block per page, in page order, even when
// OCR found nothing on the page.
func (e *PDFExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	pages, err := e.rasterizer.Rasterize(ctx, data, e.dpi)
	if err != nil {
		slog.Error("pdf rasterization failed", "err", err)
		return "", core.NewExtractionError(http.StatusInternalServerError, "PDF parse failed", err)
	}

	texts := make([]string, len(pages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, page := range pages {
		g.Go(func() error {
			// recognize swallows engine failures, so a page never fails the group.
			texts[i] = e.image.recognize(gctx, page)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}
	return joinPages(texts), nil
}

func joinPages(texts []string) string {
	blocks := make([]string, len(texts))
	for i, t := range texts {
		blocks[i] = fmt.Sprintf("--- Page %d ---\n%s", i+1, t)
	}
	return strings.Join(blocks, "\n\n")
}
