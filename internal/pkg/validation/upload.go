package validation

import (
	"fmt"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/yigit/nbadocs/internal/pkg/apperrors"
)

// DefaultMaxUploadSize is the largest accepted document (10 MiB).
const DefaultMaxUploadSize int64 = 10 << 20

// AllowedExtensions are the document extensions accepted for upload.
var AllowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".xls":  true,
	".xlsx": true,
	".ppt":  true,
	".pptx": true,
	".txt":  true,
}

// AllowedMimeTypes are the declared or detected content types accepted for upload.
var AllowedMimeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document":   true,
	"application/vnd.ms-excel":                                                  true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         true,
	"application/vnd.ms-powerpoint":                                             true,
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": true,
	"application/x-ole-storage":                                                 true,
	"text/plain":                                                                true,
}

// genericMimeTypes carry no information about the document and defer to content detection.
var genericMimeTypes = map[string]bool{
	"":                         true,
	"application/octet-stream": true,
}

// BaseMimeType strips parameters such as charset from a content type.
func BaseMimeType(contentType string) string {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		return strings.ToLower(mediaType)
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}

// IsGenericMimeType reports whether a declared content type needs detection.
func IsGenericMimeType(contentType string) bool {
	return genericMimeTypes[BaseMimeType(contentType)]
}

// CheckUploadSize rejects empty documents and documents above maxSize.
func CheckUploadSize(size, maxSize int64) error {
	if maxSize <= 0 {
		maxSize = DefaultMaxUploadSize
	}
	if size <= 0 {
		return apperrors.NewValidationError("uploaded file is empty")
	}
	if size > maxSize {
		return apperrors.NewValidationError(fmt.Sprintf("file too large: %d bytes exceeds limit of %d bytes", size, maxSize))
	}
	return nil
}

// CheckDocumentType accepts a document only when both its extension and content type are office/text formats.
func CheckDocumentType(fileName, contentType string) error {
	ext := strings.ToLower(filepath.Ext(fileName))
	if !AllowedExtensions[ext] {
		return apperrors.NewClassificationError("only document files are allowed: unsupported extension " + quoteOrEmpty(ext))
	}
	if base := BaseMimeType(contentType); !AllowedMimeTypes[base] {
		return apperrors.NewClassificationError("only document files are allowed: unsupported content type " + quoteOrEmpty(base))
	}
	return nil
}

func quoteOrEmpty(s string) string {
	if s == "" {
		return "(none)"
	}
	return fmt.Sprintf("%q", s)
}

// ContentType returns the declared content type of an uploaded part, sniffing
// the leading bytes when the client sent nothing useful.
func ContentType(fileHeader *multipart.FileHeader) (string, error) {
	declared := fileHeader.Header.Get("Content-Type")
	if !IsGenericMimeType(declared) {
		return BaseMimeType(declared), nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	mt, err := mimetype.DetectReader(file)
	if err != nil {
		return "", fmt.Errorf("failed to detect content type: %w", err)
	}
	return BaseMimeType(mt.String()), nil
}
