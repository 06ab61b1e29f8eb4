package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/markdave123-py/docsight/internal/core"
	"github.com/markdave123-py/docsight/internal/models"
)

var _ core.Fetcher = (*HTTPFetcher)(nil)

// HTTPFetcher downloads documents with a plain GET.
type HTTPFetcher struct {
	client   *http.Client
	maxBytes int64
}

func NewHTTPFetcher(timeout time.Duration, maxBytes int64) *HTTPFetcher {
	return &HTTPFetcher{client: &http.Client{Timeout: timeout}, maxBytes: maxBytes}
}

// Fetch returns the body only for 200 responses; other statuses come back with
// StatusCode set and no data so the caller can report them.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (*models.RemoteDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()

	doc := &models.RemoteDocument{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
	}
	if resp.StatusCode != http.StatusOK {
		return doc, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, fmt.Errorf("download exceeds %d bytes", f.maxBytes)
	}
	doc.Data = body
	return doc, nil
}
