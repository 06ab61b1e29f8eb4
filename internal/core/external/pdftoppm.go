package external

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/sync/errgroup"

	"github.com/markdave123-py/docsight/internal/core"
)

var _ core.Rasterizer = (*PdftoppmRasterizer)(nil)

// PdftoppmRasterizer validates a PDF with pdfcpu, then renders each page with
// poppler's pdftoppm into its own PNG.
type PdftoppmRasterizer struct {
	bin     string
	workers int
	conf    *model.Configuration
}

func NewPdftoppmRasterizer(bin string, workers int) (*PdftoppmRasterizer, error) {
	path, err := lookTool(bin)
	if err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = 1
	}
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	return &PdftoppmRasterizer{bin: path, workers: workers, conf: conf}, nil
}

// Rasterize returns one image per page, index i holding page i+1.
func (r *PdftoppmRasterizer) Rasterize(ctx context.Context, pdf []byte, dpi int) ([]image.Image, error) {
	n, err := api.PageCount(bytes.NewReader(pdf), r.conf)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}

	dir, err := os.MkdirTemp("", "pdf-raster-*")
	if err != nil {
		return nil, fmt.Errorf("create raster dir: %w", err)
	}
	defer os.RemoveAll(dir)

	input := filepath.Join(dir, "input.pdf")
	if err := os.WriteFile(input, pdf, 0o600); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}

	pages := make([]image.Image, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i := 1; i <= n; i++ {
		g.Go(func() error {
			img, err := r.renderPage(gctx, input, filepath.Join(dir, "page-"+strconv.Itoa(i)), i, dpi)
			if err != nil {
				return fmt.Errorf("page %d: %w", i, err)
			}
			pages[i-1] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pages, nil
}

func (r *PdftoppmRasterizer) renderPage(ctx context.Context, input, prefix string, page, dpi int) (image.Image, error) {
	p := strconv.Itoa(page)
	res, err := runCommand(ctx, nil, r.bin,
		"-r", strconv.Itoa(dpi), "-png", "-f", p, "-l", p, "-singlefile", input, prefix)
	if err != nil {
		return nil, err
	}
	if res.ExitCode != 0 {
		return nil, fmt.Errorf("pdftoppm exited with code %d: %s", res.ExitCode, firstLine(res.Stderr))
	}

	f, err := os.Open(prefix + ".png")
	if err != nil {
		return nil, fmt.Errorf("open rendered page: %w", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode rendered page: %w", err)
	}
	return img, nil
}
