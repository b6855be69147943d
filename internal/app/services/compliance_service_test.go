package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/nbadocs/internal/app/models"
	"github.com/yigit/nbadocs/internal/pkg/apperrors"
)

func TestCompliancePercentage(t *testing.T) {
	tests := []struct {
		present, total, want int
	}{
		{0, 5, 0},
		{1, 5, 20},
		{2, 5, 40},
		{5, 5, 100},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13}, // 12.5 rounds half up
		{0, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CompliancePercentage(tt.present, tt.total), "%d/%d", tt.present, tt.total)
	}
}

func TestComplianceReport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cs101 := f.addCourse(t, "CS101")
	f.attach(t, cs101.ID, models.FileTypeSyllabus)
	f.attach(t, cs101.ID, models.FileTypeSyllabus)
	f.attach(t, cs101.ID, models.FileTypeAssignment)
	f.attach(t, cs101.ID, models.FileTypeMarks)

	cs102 := f.addCourse(t, "CS102")
	for _, ft := range models.RequiredTypes {
		f.attach(t, cs102.ID, ft)
	}

	empty := f.addCourse(t, "CS103")
	inactive := f.addCourse(t, "CS104")
	f.attach(t, inactive.ID, models.FileTypeSyllabus)
	require.NoError(t, f.courseService.DeactivateCourse(ctx, inactive.ID, f.admin.ID))

	report, err := f.complianceService.Report(ctx)
	require.NoError(t, err)
	require.Len(t, report, 3)

	// same order as the course listing: newest first
	assert.Equal(t, empty.ID, report[0].Course.ID)
	assert.Equal(t, cs102.ID, report[1].Course.ID)
	assert.Equal(t, cs101.ID, report[2].Course.ID)

	assert.Equal(t, 0, report[0].CompliancePercentage)
	assert.Equal(t, 0, report[0].TotalFiles)
	assert.Equal(t, 100, report[1].CompliancePercentage)

	cs := report[2]
	assert.Equal(t, "CS101", cs.Course.Code)
	assert.Equal(t, "Dr. Rao", cs.Course.Faculty)
	assert.Equal(t, 40, cs.CompliancePercentage)
	assert.Equal(t, 4, cs.TotalFiles)
	require.Len(t, cs.Compliance, len(models.RequiredTypes))
	assert.Equal(t, models.TypeCompliance{Type: models.FileTypeSyllabus, Present: true, Count: 2}, cs.Compliance[0])
	assert.Equal(t, models.TypeCompliance{Type: models.FileTypeLessonPlan, Present: false, Count: 0}, cs.Compliance[1])
	assert.Equal(t, models.TypeCompliance{Type: models.FileTypeAssignment, Present: true, Count: 1}, cs.Compliance[2])
	assert.False(t, cs.Compliance[3].Present)
	assert.False(t, cs.Compliance[4].Present)
}

func TestComplianceReportEmpty(t *testing.T) {
	f := newFixture(t)
	report, err := f.complianceService.Report(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report)
}

func TestCourseCompliance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.addCourse(t, "CS101")
	f.attach(t, c.ID, models.FileTypeAnswerKey)

	got, err := f.complianceService.CourseCompliance(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, got.CompliancePercentage)

	_, err = f.complianceService.CourseCompliance(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

type failingFileStore struct {
	FileStore
	failCourse int64
}

func (s failingFileStore) ListByCourse(ctx context.Context, courseID int64) ([]*models.CourseFile, error) {
	if courseID == s.failCourse {
		return nil, apperrors.NewStorageError("list course files", errors.New("connection reset"))
	}
	return s.FileStore.ListByCourse(ctx, courseID)
}

func TestComplianceReportAbortsOnFailure(t *testing.T) {
	f := newFixture(t)
	f.addCourse(t, "CS101")
	bad := f.addCourse(t, "CS102")
	f.addCourse(t, "CS103")

	svc := NewComplianceService(f.courses, failingFileStore{FileStore: f.files, failCourse: bad.ID}, 1, zerolog.Nop())
	report, err := svc.Report(context.Background())
	assert.Nil(t, report)
	assert.ErrorIs(t, err, apperrors.ErrStorageFailure)
}
