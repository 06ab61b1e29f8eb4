package external

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/richardlehane/mscfb"

	"github.com/markdave123-py/docsight/internal/core"
)

const powerPointStream = "PowerPoint Document"

var _ core.ExternalDecoder = (*CatpptDecoder)(nil)

// CatpptDecoder runs catppt (from catdoc) on a legacy .ppt file.
type CatpptDecoder struct {
	bin string
}

// NewCatpptDecoder does not fail when catppt is missing: only .ppt requests
// need it, and they will report the failure themselves.
func NewCatpptDecoder(bin string) *CatpptDecoder {
	if path, err := lookTool(bin); err != nil {
		slog.Warn("legacy ppt decoder unavailable", "bin", bin, "err", err)
	} else {
		bin = path
	}
	return &CatpptDecoder{bin: bin}
}

// Decode refuses files that are not OLE compound documents holding a
// PowerPoint stream before spending a process on them.
func (d *CatpptDecoder) Decode(ctx context.Context, path string) (*core.CommandResult, error) {
	if err := checkPowerPointContainer(path); err != nil {
		return nil, err
	}
	return runCommand(ctx, nil, d.bin, path)
}

func checkPowerPointContainer(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	doc, err := mscfb.New(f)
	if err != nil {
		return fmt.Errorf("not an OLE compound document: %w", err)
	}
	for {
		entry, err := doc.Next()
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("compound document has no %q stream", powerPointStream)
		}
		if err != nil {
			return fmt.Errorf("read compound document: %w", err)
		}
		if entry.Name == powerPointStream {
			return nil
		}
	}
}
