package extraction_engine

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/markdave123-py/docsight/internal/core"
)

var _ core.Extractor = (*PPTExtractor)(nil)

// PPTExtractor hands legacy binary presentations to an external decoder, which
// needs a path on disk.
type PPTExtractor struct {
	decoder core.ExternalDecoder
	// tempDir is where the copy for the decoder is written. Empty means
	// os.TempDir; only tests set it, to check the copy is removed.
	tempDir string
}

func NewPPTExtractor(decoder core.ExternalDecoder) *PPTExtractor {
	return &PPTExtractor{decoder: decoder}
}

// Extract decodes the tool's stdout as UTF-8, dropping invalid sequences. The
// temporary copy of data is gone when Extract returns or panics.
func (e *PPTExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	var text string
	err := withTempFile(e.tempDir, "upload-*.ppt", data, func(path string) error {
		res, err := e.decoder.Decode(ctx, path)
		if err != nil {
			return err
		}
		if res.ExitCode != 0 {
			return fmt.Errorf("decoder exited with code %d: %s", res.ExitCode, strings.TrimSpace(string(res.Stderr)))
		}
		text = strings.ToValidUTF8(string(res.Stdout), "")
		return nil
	})
	if err != nil {
		slog.Error("ppt parse failed", "err", err)
		return "", core.NewExtractionError(http.StatusBadRequest, "ppt parse failed (check whether the file is corrupted)", err)
	}
	return text, nil
}

// withTempFile writes data to a fresh file in dir and calls fn with its path.
// The file is removed on every exit path, including a panic inside fn.
func withTempFile(dir, pattern string, data []byte, fn func(path string) error) error {
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	return fn(path)
}
