package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/markdave123-py/docsight/internal/core"
	"github.com/markdave123-py/docsight/internal/core/fetcher"
	"github.com/markdave123-py/docsight/internal/models"
)

// DocumentService turns uploaded or remote documents into text.
type DocumentService struct {
	dispatcher core.DocumentDispatcher
	fetcher    core.Fetcher
}

func NewDocumentService(dispatcher core.DocumentDispatcher, fetcher core.Fetcher) *DocumentService {
	return &DocumentService{dispatcher: dispatcher, fetcher: fetcher}
}

// ExtractUpload dispatches an uploaded file by its client-supplied name.
func (s *DocumentService) ExtractUpload(ctx context.Context, doc models.RawDocument) (string, error) {
	slog.DebugContext(ctx, "extracting upload", "filename", doc.Filename, "bytes", len(doc.Data))
	return s.dispatcher.Dispatch(ctx, doc)
}

// ExtractURL downloads the document behind rawURL and dispatches it. A non-200
// answer is reported to the client and nothing is extracted.
func (s *DocumentService) ExtractURL(ctx context.Context, rawURL string) (string, error) {
	remote, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return "", err
	}
	if remote.StatusCode != http.StatusOK {
		return "", core.NewExtractionError(http.StatusBadRequest,
			fmt.Sprintf("download failed, status code: %d", remote.StatusCode), nil)
	}

	name := fetcher.ResolveFilename(rawURL, remote.ContentType)
	slog.DebugContext(ctx, "extracting download", "url", rawURL, "filename", name, "content_type", remote.ContentType, "bytes", len(remote.Data))
	return s.dispatcher.Dispatch(ctx, models.RawDocument{Filename: name, Data: remote.Data})
}
