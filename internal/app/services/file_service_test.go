package services

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/nbadocs/internal/app/models"
	"github.com/yigit/nbadocs/internal/app/models/dto"
	"github.com/yigit/nbadocs/internal/pkg/apperrors"
	"github.com/yigit/nbadocs/internal/pkg/validation"
)

func TestAttachFile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.addCourse(t, "CS101")

	file, err := f.fileService.AttachFile(ctx, c.ID, "syllabus", FileMetadata{
		FileName:    "syllabus.pdf",
		FileSize:    2048,
		MimeType:    "application/pdf",
		Description: "Week plan",
		Tags:        "unit1, unit2 ,,unit1",
	}, "1/abc.pdf", f.admin.ID)
	require.NoError(t, err)

	assert.Equal(t, models.FileTypeSyllabus, file.FileType)
	assert.Equal(t, 1, file.Version)
	assert.False(t, file.IsNBACompliant)
	assert.Equal(t, f.admin.ID, file.UploadedBy)
	assert.Equal(t, []string{"unit1", "unit2", "unit1"}, file.Tags)
	require.NotNil(t, file.Description)
	assert.Equal(t, "Week plan", *file.Description)
}

func TestAttachFileUnknownCourse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.fileService.AttachFile(ctx, 404, "syllabus", FileMetadata{FileName: "a.pdf", FileSize: 1}, "x", f.admin.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	n, err := f.files.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAttachFileInvalidClassification(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.addCourse(t, "CS101")

	_, err := f.fileService.AttachFile(ctx, c.ID, "homework", FileMetadata{FileName: "a.pdf", FileSize: 1}, "x", f.admin.ID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidClassification)

	files, err := f.fileService.ListFilesForCourse(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestAttachFileSize(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.addCourse(t, "CS101")

	tests := []struct {
		name string
		size int64
	}{
		{"empty", 0},
		{"negative", -1},
		{"above limit", validation.DefaultMaxUploadSize + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.fileService.AttachFile(ctx, c.ID, "syllabus", FileMetadata{FileName: "a.pdf", FileSize: tt.size}, "x", f.admin.ID)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		})
	}

	n, err := f.files.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = f.fileService.AttachFile(ctx, c.ID, "syllabus", FileMetadata{FileName: "a.pdf", FileSize: validation.DefaultMaxUploadSize}, "x", f.admin.ID)
	assert.NoError(t, err)
}

func TestListFilesForCourse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.addCourse(t, "CS101")
	other := f.addCourse(t, "CS102")

	first := f.attach(t, c.ID, models.FileTypeSyllabus)
	second := f.attach(t, c.ID, models.FileTypeAssignment)
	f.attach(t, other.ID, models.FileTypeMarks)

	require.NoError(t, f.courseService.DeactivateCourse(ctx, c.ID, f.admin.ID))

	files, err := f.fileService.ListFilesForCourse(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, second.ID, files[0].ID)
	assert.Equal(t, first.ID, files[1].ID)
	require.NotNil(t, files[0].Uploader)
	assert.Equal(t, "Dr. Rao", files[0].Uploader.Name)
}

func TestGetFile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.addCourse(t, "CS101")
	file := f.attach(t, c.ID, models.FileTypeLessonPlan)

	got, err := f.fileService.GetFile(ctx, file.ID)
	require.NoError(t, err)
	assert.Equal(t, "lesson_plan.pdf", got.FileName)
	require.NotNil(t, got.Course)
	assert.Equal(t, "CS101", got.Course.CourseCode)

	_, err = f.fileService.GetFile(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestUploadFile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.addCourse(t, "CS101")

	header := newFileHeader(t, "Syllabus.pdf", "", []byte("%PDF-1.4 course syllabus"))
	file, err := f.fileService.UploadFile(ctx, &dto.UploadFileRequest{
		Course:   c.ID,
		FileType: "syllabus",
		Tags:     "nba, 2024",
	}, header, f.faculty.ID)
	require.NoError(t, err)

	assert.Equal(t, "Syllabus.pdf", file.FileName)
	assert.Equal(t, "application/pdf", file.MimeType)
	assert.Equal(t, int64(len("%PDF-1.4 course syllabus")), file.FileSize)
	assert.Equal(t, []string{"nba", "2024"}, file.Tags)

	path, err := f.fileService.ResolveContent(ctx, file)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 course syllabus", string(data))
}

func TestUploadFileRejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.addCourse(t, "CS101")

	t.Run("missing payload", func(t *testing.T) {
		_, err := f.fileService.UploadFile(ctx, &dto.UploadFileRequest{Course: c.ID, FileType: "syllabus"}, nil, f.faculty.ID)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("too large", func(t *testing.T) {
		big := strings.Repeat("a", int(validation.DefaultMaxUploadSize)+1)
		header := newFileHeader(t, "huge.txt", "text/plain", []byte(big))
		_, err := f.fileService.UploadFile(ctx, &dto.UploadFileRequest{Course: c.ID, FileType: "syllabus"}, header, f.faculty.ID)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		assert.Contains(t, err.Error(), "file too large")
	})

	t.Run("image", func(t *testing.T) {
		header := newFileHeader(t, "photo.png", "image/png", []byte("\x89PNG\r\n\x1a\n"))
		_, err := f.fileService.UploadFile(ctx, &dto.UploadFileRequest{Course: c.ID, FileType: "syllabus"}, header, f.faculty.ID)
		assert.ErrorIs(t, err, apperrors.ErrInvalidClassification)
	})

	t.Run("unknown course", func(t *testing.T) {
		header := newFileHeader(t, "notes.txt", "text/plain", []byte("notes"))
		_, err := f.fileService.UploadFile(ctx, &dto.UploadFileRequest{Course: 999, FileType: "syllabus"}, header, f.faculty.ID)
		assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	})

	t.Run("unknown file type", func(t *testing.T) {
		header := newFileHeader(t, "notes.txt", "text/plain", []byte("notes"))
		_, err := f.fileService.UploadFile(ctx, &dto.UploadFileRequest{Course: c.ID, FileType: "essay"}, header, f.faculty.ID)
		assert.ErrorIs(t, err, apperrors.ErrInvalidClassification)
	})

	n, err := f.files.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestResolveContentMissing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.addCourse(t, "CS101")
	file := f.attach(t, c.ID, models.FileTypeSyllabus)

	_, err := f.fileService.ResolveContent(ctx, file)
	assert.ErrorIs(t, err, apperrors.ErrContentMissing)
}

func TestReclassifyFile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.addCourse(t, "CS101")
	file := f.attach(t, c.ID, models.FileTypeOther)

	compliant := true
	got, err := f.fileService.ReclassifyFile(ctx, file.ID, &dto.ReclassifyFileRequest{
		FileType:       "Answer_Key",
		IsNBACompliant: &compliant,
	}, f.admin.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FileTypeAnswerKey, got.FileType)
	assert.True(t, got.IsNBACompliant)
	assert.Equal(t, 1, got.Version)

	got, err = f.fileService.ReclassifyFile(ctx, file.ID, &dto.ReclassifyFileRequest{FileType: "syllabus"}, f.admin.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FileTypeSyllabus, got.FileType)
	assert.True(t, got.IsNBACompliant)

	_, err = f.fileService.ReclassifyFile(ctx, file.ID, &dto.ReclassifyFileRequest{FileType: "poster"}, f.admin.ID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidClassification)

	_, err = f.fileService.ReclassifyFile(ctx, 999, &dto.ReclassifyFileRequest{FileType: "syllabus"}, f.admin.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}
