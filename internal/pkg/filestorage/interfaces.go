package filestorage

import (
	"context"
	"mime/multipart"
)

// StoredFile describes a blob written by a BlobStore.
type StoredFile struct {
	Ref      string // Opaque reference persisted as CourseFile.FilePath
	Size     int64  // Bytes written
	MimeType string // Detected content type
}

// BlobStore stores uploaded document bytes outside the metadata store.
type BlobStore interface {
	// Save writes the uploaded file under subPath and returns its reference
	Save(ctx context.Context, fileHeader *multipart.FileHeader, subPath string) (*StoredFile, error)

	// Resolve returns the physical location of a stored blob.
	// A blob that cannot be located within the configured wait yields apperrors.ErrContentMissing.
	Resolve(ctx context.Context, ref string) (string, error)

	// Delete removes a blob; deleting a missing blob is not an error
	Delete(ref string) error
}
