package filestorage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/yigit/nbadocs/internal/pkg/apperrors"
	"github.com/yigit/nbadocs/internal/pkg/logger"
)

// DefaultResolveTimeout bounds how long Resolve waits on the filesystem.
const DefaultResolveTimeout = 5 * time.Second

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath       string // The root directory where files will be stored
	resolveTimeout time.Duration
}

var _ BlobStore = (*LocalStorage)(nil)

// NewLocalStorage creates a new LocalStorage instance rooted at basePath.
func NewLocalStorage(basePath string, resolveTimeout time.Duration) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	if resolveTimeout <= 0 {
		resolveTimeout = DefaultResolveTimeout
	}

	return &LocalStorage{
		basePath:       basePath,
		resolveTimeout: resolveTimeout,
	}, nil
}

// Save writes an uploaded file to subPath under a unique name.
func (ls *LocalStorage) Save(ctx context.Context, fileHeader *multipart.FileHeader, subPath string) (*StoredFile, error) {
	if fileHeader == nil {
		return nil, apperrors.NewValidationError("no file uploaded")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	fullDirPath := ls.basePath
	if subPath != "" {
		fullDirPath = filepath.Join(ls.basePath, filepath.Clean(subPath))
		if err := os.MkdirAll(fullDirPath, os.ModePerm); err != nil {
			logger.Error().Err(err).Str("path", fullDirPath).Msg("Failed to create subdirectory")
			return nil, fmt.Errorf("failed to create subdirectory: %w", err)
		}
	}

	uniqueFilename := uuid.New().String() + strings.ToLower(filepath.Ext(fileHeader.Filename))
	dstPath := filepath.Join(fullDirPath, uniqueFilename)

	dst, err := os.OpenFile(dstPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, file)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return nil, fmt.Errorf("failed to save file content: %w", err)
	}

	mimeType := ""
	if mt, err := mimetype.DetectFile(dstPath); err == nil {
		mimeType = mt.String()
	}

	ref := uniqueFilename
	if subPath != "" {
		ref = filepath.ToSlash(filepath.Join(filepath.Clean(subPath), uniqueFilename))
	}

	logger.Info().Str("filename", fileHeader.Filename).Str("ref", ref).Int64("size", written).Msg("File saved successfully")
	return &StoredFile{Ref: ref, Size: written, MimeType: mimeType}, nil
}

// Resolve returns the physical path of a stored blob.
func (ls *LocalStorage) Resolve(ctx context.Context, ref string) (string, error) {
	physicalPath, err := ls.physicalPath(ref)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, ls.resolveTimeout)
	defer cancel()

	type statResult struct {
		info fs.FileInfo
		err  error
	}
	done := make(chan statResult, 1)
	go func() {
		info, err := os.Stat(physicalPath)
		done <- statResult{info: info, err: err}
	}()

	select {
	case <-ctx.Done():
		logger.Warn().Str("ref", ref).Dur("timeout", ls.resolveTimeout).Msg("Timed out resolving file content")
		return "", fmt.Errorf("%w: timed out resolving %s", apperrors.ErrFileContentMissing, ref)
	case res := <-done:
		if res.err != nil {
			if errors.Is(res.err, fs.ErrNotExist) {
				return "", apperrors.ErrFileContentMissing
			}
			return "", fmt.Errorf("%w: %v", apperrors.ErrFileContentMissing, res.err)
		}
		if res.info.IsDir() {
			return "", apperrors.ErrFileContentMissing
		}
	}

	return physicalPath, nil
}

// Delete removes a file from the storage filesystem.
// Returns nil if deletion is successful or if the file doesn't exist.
func (ls *LocalStorage) Delete(ref string) error {
	if ref == "" {
		return nil
	}

	physicalPath, err := ls.physicalPath(ref)
	if err != nil {
		return err
	}

	if err := os.Remove(physicalPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
			return nil
		}
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted successfully")
	return nil
}

// physicalPath maps a reference to a path inside basePath, rejecting references that escape it.
func (ls *LocalStorage) physicalPath(ref string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(ref))
	if ref == "" || cleaned == "." || filepath.IsAbs(cleaned) || cleaned == ".." ||
		strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: invalid file reference %q", apperrors.ErrFileContentMissing, ref)
	}
	return filepath.Join(ls.basePath, cleaned), nil
}
