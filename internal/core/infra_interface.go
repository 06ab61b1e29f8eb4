package core

import (
	"context"

	"github.com/markdave123-py/docsight/internal/models"
)

// ObjectClient reads documents out of S3 or any object storage.
// It's abstract so you can replace AWS with MinIO, GCP, etc. easily.
type ObjectClient interface {
	GetObject(ctx context.Context, bucket, key string) (*models.StoredObject, error)
}

// Fetcher downloads the document behind a URL.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*models.RemoteDocument, error)
}
