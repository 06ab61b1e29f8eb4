package external

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"

	"github.com/markdave123-py/docsight/internal/core"
)

var _ core.OCREngine = (*TesseractEngine)(nil)

// TesseractEngine runs one tesseract process per image, feeding the image as
// PNG on stdin. Separate processes make it safe for concurrent use.
type TesseractEngine struct {
	bin  string
	lang string
}

// NewTesseractEngine resolves the binary and checks it runs. A failure here is
// meant to stop the service from starting.
func NewTesseractEngine(ctx context.Context, bin, lang string) (*TesseractEngine, error) {
	path, err := lookTool(bin)
	if err != nil {
		return nil, err
	}
	res, err := runCommand(ctx, nil, path, "--version")
	if err != nil {
		return nil, err
	}
	if res.ExitCode != 0 {
		return nil, fmt.Errorf("%s --version exited with code %d", path, res.ExitCode)
	}
	// Older releases print the version on stderr.
	version := firstLine(res.Stdout)
	if version == "" {
		version = firstLine(res.Stderr)
	}
	slog.Info("tesseract engine ready", "path", path, "version", version, "lang", lang)

	return &TesseractEngine{bin: path, lang: lang}, nil
}

func (e *TesseractEngine) Name() string { return "tesseract" }

func (e *TesseractEngine) Recognize(ctx context.Context, img image.Image) ([]string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}

	args := []string{"stdin", "stdout"}
	if e.lang != "" {
		args = append(args, "-l", e.lang)
	}
	res, err := runCommand(ctx, buf.Bytes(), e.bin, args...)
	if err != nil {
		return nil, err
	}
	if res.ExitCode != 0 {
		return nil, fmt.Errorf("tesseract exited with code %d: %s", res.ExitCode, firstLine(res.Stderr))
	}
	return core.SplitLines(string(res.Stdout)), nil
}
