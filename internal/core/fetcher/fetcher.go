// Package fetcher acquires remote documents for the URL endpoint and names
// them for dispatch.
package fetcher

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/markdave123-py/docsight/internal/core"
	"github.com/markdave123-py/docsight/internal/models"
)

var _ core.Fetcher = (*SchemeFetcher)(nil)

// SchemeFetcher picks a fetcher by URL scheme.
type SchemeFetcher struct {
	byScheme map[string]core.Fetcher
}

// NewSchemeFetcher serves http and https through web. s3 may be nil, in which
// case s3:// URLs are rejected.
func NewSchemeFetcher(web core.Fetcher, s3 core.Fetcher) *SchemeFetcher {
	m := map[string]core.Fetcher{"http": web, "https": web}
	if s3 != nil {
		m["s3"] = s3
	}
	return &SchemeFetcher{byScheme: m}
}

func (f *SchemeFetcher) Fetch(ctx context.Context, rawURL string) (*models.RemoteDocument, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}
	next, ok := f.byScheme[strings.ToLower(u.Scheme)]
	if !ok {
		return nil, fmt.Errorf("unsupported url scheme %q", u.Scheme)
	}
	return next.Fetch(ctx, rawURL)
}
