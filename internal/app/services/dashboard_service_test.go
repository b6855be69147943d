package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/nbadocs/internal/app/models"
)

func TestGlobalStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c1 := f.addCourse(t, "CS101")
	c2 := f.addCourse(t, "CS102")
	require.NoError(t, f.courseService.DeactivateCourse(ctx, c2.ID, f.admin.ID))

	var last *models.CourseFile
	for i := 0; i < 4; i++ {
		f.attach(t, c1.ID, models.FileTypeSyllabus)
	}
	f.attach(t, c2.ID, models.FileTypeMarks)
	last = f.attach(t, c1.ID, models.FileTypeAssignment)

	inactiveUser := &models.User{Name: "Old", Email: "old@college.edu", Password: "x", Role: models.RoleFaculty}
	require.NoError(t, f.users.Create(ctx, inactiveUser))

	stats, err := f.dashboardService.GlobalStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(1), stats.TotalCourses)
	assert.Equal(t, int64(6), stats.TotalFiles)
	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, map[models.FileType]int64{
		models.FileTypeSyllabus:   4,
		models.FileTypeMarks:      1,
		models.FileTypeAssignment: 1,
	}, stats.FilesByType)

	require.Len(t, stats.RecentFiles, RecentFilesLimit)
	assert.Equal(t, last.ID, stats.RecentFiles[0].ID)
	require.NotNil(t, stats.RecentFiles[0].Course)
	assert.Equal(t, "Data Structures", stats.RecentFiles[0].Course.CourseName)
	require.NotNil(t, stats.RecentFiles[0].Uploader)
	assert.Equal(t, "Dr. Rao", stats.RecentFiles[0].Uploader.Name)
	for i := 1; i < len(stats.RecentFiles); i++ {
		assert.False(t, stats.RecentFiles[i].CreatedAt.After(stats.RecentFiles[i-1].CreatedAt))
	}
}

func TestGlobalStatsEmpty(t *testing.T) {
	f := newFixture(t)
	stats, err := f.dashboardService.GlobalStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalCourses)
	assert.Zero(t, stats.TotalFiles)
	assert.Empty(t, stats.FilesByType)
	assert.Empty(t, stats.RecentFiles)
}
