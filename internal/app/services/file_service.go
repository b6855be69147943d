package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/nbadocs/internal/app/models"
	"github.com/yigit/nbadocs/internal/app/models/dto"
	"github.com/yigit/nbadocs/internal/pkg/apperrors"
	"github.com/yigit/nbadocs/internal/pkg/filestorage"
	"github.com/yigit/nbadocs/internal/pkg/validation"
)

// FileMetadata describes an already stored document being attached to a course
type FileMetadata struct {
	FileName    string
	FileSize    int64
	MimeType    string
	Description string
	Tags        string // comma delimited
}

// FileService manages course document metadata and their stored content
type FileService struct {
	files         FileStore
	courses       CourseStore
	blobs         filestorage.BlobStore
	maxUploadSize int64
	logger        zerolog.Logger
}

// NewFileService creates a new file service
func NewFileService(files FileStore, courses CourseStore, blobs filestorage.BlobStore, maxUploadSize int64, logger zerolog.Logger) *FileService {
	if maxUploadSize <= 0 {
		maxUploadSize = validation.DefaultMaxUploadSize
	}
	return &FileService{
		files:         files,
		courses:       courses,
		blobs:         blobs,
		maxUploadSize: maxUploadSize,
		logger:        logger,
	}
}

func parseClassification(raw string) (models.FileType, error) {
	fileType, ok := models.ParseFileType(raw)
	if !ok {
		return "", apperrors.NewClassificationError(fmt.Sprintf("invalid file type %q", raw))
	}
	return fileType, nil
}

// AttachFile records metadata for a stored blob against an existing course.
// No record is created when the size, the course or the classification is invalid.
func (s *FileService) AttachFile(ctx context.Context, courseID int64, rawFileType string, meta FileMetadata, blobRef string, actorID int64) (*models.CourseFile, error) {
	if err := validation.CheckUploadSize(meta.FileSize, s.maxUploadSize); err != nil {
		return nil, err
	}
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	fileType, err := parseClassification(rawFileType)
	if err != nil {
		return nil, err
	}

	file := &models.CourseFile{
		CourseID:       courseID,
		FileName:       meta.FileName,
		FileType:       fileType,
		FilePath:       blobRef,
		FileSize:       meta.FileSize,
		MimeType:       meta.MimeType,
		UploadedBy:     actorID,
		IsNBACompliant: false,
		Tags:           models.ParseTags(meta.Tags),
		Version:        models.InitialFileVersion,
	}
	if d := strings.TrimSpace(meta.Description); d != "" {
		file.Description = &d
	}

	if err := s.files.Create(ctx, file); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("fileID", file.ID).
		Int64("courseID", courseID).
		Str("fileType", string(fileType)).
		Int64("actorID", actorID).
		Msg("File attached to course")
	return file, nil
}

// UploadFile checks an uploaded document, stores its content and attaches it to the course.
// Content is written only after every check passed and is removed again if the record cannot be created.
func (s *FileService) UploadFile(ctx context.Context, req *dto.UploadFileRequest, fileHeader *multipart.FileHeader, actorID int64) (*models.CourseFile, error) {
	if fileHeader == nil {
		return nil, apperrors.NewValidationError("no file uploaded")
	}
	if req == nil {
		return nil, apperrors.NewValidationError("upload form is required")
	}
	// rejected before any content is written; AttachFile checks the stored size again
	if err := validation.CheckUploadSize(fileHeader.Size, s.maxUploadSize); err != nil {
		return nil, err
	}

	contentType, err := validation.ContentType(fileHeader)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := validation.CheckDocumentType(fileHeader.Filename, contentType); err != nil {
		return nil, err
	}

	if _, err := s.courses.GetByID(ctx, req.Course); err != nil {
		return nil, err
	}
	if _, err := parseClassification(req.FileType); err != nil {
		return nil, err
	}

	stored, err := s.blobs.Save(ctx, fileHeader, strconv.FormatInt(req.Course, 10))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorageFailure, err)
	}

	mimeType := contentType
	if stored.MimeType != "" && validation.AllowedMimeTypes[validation.BaseMimeType(stored.MimeType)] {
		mimeType = validation.BaseMimeType(stored.MimeType)
	}

	file, err := s.AttachFile(ctx, req.Course, req.FileType, FileMetadata{
		FileName:    filepath.Base(fileHeader.Filename),
		FileSize:    stored.Size,
		MimeType:    mimeType,
		Description: req.Description,
		Tags:        req.Tags,
	}, stored.Ref, actorID)
	if err != nil {
		if delErr := s.blobs.Delete(stored.Ref); delErr != nil {
			s.logger.Error().Err(delErr).Str("ref", stored.Ref).Msg("Failed to remove orphaned upload")
		}
		return nil, err
	}
	return file, nil
}

// ListFilesForCourse returns the files of a course, newest first
func (s *FileService) ListFilesForCourse(ctx context.Context, courseID int64) ([]*models.CourseFile, error) {
	files, err := s.files.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving course files: %w", err)
	}
	return files, nil
}

// GetFile retrieves a file's metadata
func (s *FileService) GetFile(ctx context.Context, id int64) (*models.CourseFile, error) {
	if id <= 0 {
		return nil, apperrors.ErrCourseFileNotFound
	}
	return s.files.GetByID(ctx, id)
}

// ResolveContent returns the physical location of a file's stored bytes
func (s *FileService) ResolveContent(ctx context.Context, file *models.CourseFile) (string, error) {
	path, err := s.blobs.Resolve(ctx, file.FilePath)
	if err != nil {
		if errors.Is(err, apperrors.ErrContentMissing) {
			s.logger.Warn().Int64("fileID", file.ID).Str("ref", file.FilePath).Msg("Stored content missing")
			return "", err
		}
		return "", fmt.Errorf("error resolving file content: %w", err)
	}
	return path, nil
}

// ReclassifyFile changes a file's type and, optionally, its compliance flag.
// The version counter is left untouched.
func (s *FileService) ReclassifyFile(ctx context.Context, id int64, req *dto.ReclassifyFileRequest, actorID int64) (*models.CourseFile, error) {
	file, err := s.GetFile(ctx, id)
	if err != nil {
		return nil, err
	}

	fileType, err := parseClassification(req.FileType)
	if err != nil {
		return nil, err
	}

	compliant := file.IsNBACompliant
	if req.IsNBACompliant != nil {
		compliant = *req.IsNBACompliant
	}

	if err := s.files.UpdateClassification(ctx, id, fileType, compliant); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("fileID", id).
		Str("from", string(file.FileType)).
		Str("to", string(fileType)).
		Bool("isNBACompliant", compliant).
		Int64("actorID", actorID).
		Msg("File reclassified")
	return s.files.GetByID(ctx, id)
}
