package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/markdave123-py/docsight/internal/core"
	"github.com/markdave123-py/docsight/internal/models"
)

var _ core.Fetcher = (*S3Fetcher)(nil)

// S3Fetcher reads s3://bucket/key URLs through an object client.
type S3Fetcher struct {
	obj core.ObjectClient
}

func NewS3Fetcher(obj core.ObjectClient) *S3Fetcher {
	return &S3Fetcher{obj: obj}
}

func (f *S3Fetcher) Fetch(ctx context.Context, rawURL string) (*models.RemoteDocument, error) {
	bucket, key, err := parseS3URL(rawURL)
	if err != nil {
		return nil, err
	}
	obj, err := f.obj.GetObject(ctx, bucket, key)
	if err != nil {
		return nil, err
	}
	return &models.RemoteDocument{Data: obj.Data, ContentType: obj.ContentType, StatusCode: http.StatusOK}, nil
}

// parseS3URL splits s3://bucket/path/to/key into bucket and key.
func parseS3URL(raw string) (bucket, key string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("invalid s3 url: %w", err)
	}
	if u.Scheme != "s3" {
		return "", "", fmt.Errorf("not an s3 url: %s", raw)
	}
	bucket = u.Host
	key = strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3 url needs a bucket and a key: %s", raw)
	}
	return bucket, key, nil
}
