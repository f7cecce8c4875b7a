// internal/storage/storage.go
package storage

import "context"

// ObjectInfo represents metadata for a remote fixture extract.
type ObjectInfo struct {
	Key  string
	Size int64
}

// ObjectStorage captures the minimal S3-compatible operations the seed
// tooling needs to pull warehouse extracts.
type ObjectStorage interface {
	ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error)
	DownloadObject(ctx context.Context, key string, destPath string) error
}
