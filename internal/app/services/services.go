package services

import (
	"context"

	"github.com/yigit/nbadocs/internal/app/models"
)

// Services defined in this package:
// - CourseService: the course registry
// - FileService: course document metadata and uploads
// - ComplianceService: NBA compliance scoring
// - DashboardService: global counts and recent uploads
// - AuthService / UserService: the identity directory

// CourseStore persists courses. Implementations populate Course.Faculty when reading.
type CourseStore interface {
	// Create inserts the course and sets ID and timestamps.
	// Returns apperrors.ErrCourseCodeExists when the code is taken.
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	// ExistsByCode reports whether a course other than excludeID holds code.
	ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error)
	// ListActive returns active courses, newest first.
	ListActive(ctx context.Context) ([]*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	SetActive(ctx context.Context, id int64, active bool) error
	CountActive(ctx context.Context) (int64, error)
}

// FileStore persists course file metadata.
type FileStore interface {
	// Create inserts the file and sets ID and timestamps.
	Create(ctx context.Context, file *models.CourseFile) error
	GetByID(ctx context.Context, id int64) (*models.CourseFile, error)
	// ListByCourse returns a course's files newest first, with Uploader populated.
	ListByCourse(ctx context.Context, courseID int64) ([]*models.CourseFile, error)
	UpdateClassification(ctx context.Context, id int64, fileType models.FileType, isNBACompliant bool) error
	Count(ctx context.Context) (int64, error)
	// CountByType returns counts only for types that have at least one file.
	CountByType(ctx context.Context) (map[models.FileType]int64, error)
	// ListRecent returns the newest files across all courses, with Course and Uploader populated.
	ListRecent(ctx context.Context, limit int) ([]*models.CourseFile, error)
}

// UserStore persists users.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	CountActive(ctx context.Context) (int64, error)
}
