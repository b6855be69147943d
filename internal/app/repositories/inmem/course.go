package inmem

import (
	"context"
	"sort"

	"github.com/yigit/nbadocs/internal/app/models"
	"github.com/yigit/nbadocs/internal/pkg/apperrors"
)

type CourseRepository struct {
	db *DB
}

// NewCourseRepository returns a CourseStore backed by db.
func NewCourseRepository(db *DB) *CourseRepository {
	return &CourseRepository{db: db}
}

func (repo *CourseRepository) codeTaken(code string, excludeID int64) bool {
	for _, c := range repo.db.courses {
		if c.ID != excludeID && c.CourseCode == code {
			return true
		}
	}
	return false
}

func (repo *CourseRepository) withFaculty(c *models.Course) *models.Course {
	cp := cloneCourse(c)
	cp.Faculty = repo.db.userSummary(c.FacultyID)
	return cp
}

func (repo *CourseRepository) Create(_ context.Context, course *models.Course) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if repo.codeTaken(course.CourseCode, 0) {
		return apperrors.ErrCourseCodeExists
	}

	repo.db.courseSeq++
	course.ID = repo.db.courseSeq
	course.CreatedAt = repo.db.now()
	course.UpdatedAt = course.CreatedAt
	repo.db.courses[course.ID] = cloneCourse(course)
	course.Faculty = repo.db.userSummary(course.FacultyID)
	return nil
}

func (repo *CourseRepository) GetByID(_ context.Context, id int64) (*models.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	c, ok := repo.db.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return repo.withFaculty(c), nil
}

func (repo *CourseRepository) ExistsByCode(_ context.Context, code string, excludeID int64) (bool, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.codeTaken(code, excludeID), nil
}

func (repo *CourseRepository) ListActive(_ context.Context) ([]*models.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	courses := make([]*models.Course, 0, len(repo.db.courses))
	for _, c := range repo.db.courses {
		if c.IsActive {
			courses = append(courses, repo.withFaculty(c))
		}
	}
	sort.Slice(courses, func(i, j int) bool {
		return newestFirst(courses[i].CreatedAt, courses[j].CreatedAt, courses[i].ID, courses[j].ID)
	})
	return courses, nil
}

func (repo *CourseRepository) Update(_ context.Context, course *models.Course) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.courses[course.ID]
	if !ok {
		return apperrors.ErrCourseNotFound
	}
	if repo.codeTaken(course.CourseCode, course.ID) {
		return apperrors.ErrCourseCodeExists
	}

	updated := cloneCourse(course)
	updated.CreatedAt = orig.CreatedAt
	updated.IsActive = orig.IsActive
	updated.UpdatedAt = repo.db.now()
	repo.db.courses[course.ID] = updated

	course.CreatedAt = updated.CreatedAt
	course.UpdatedAt = updated.UpdatedAt
	course.IsActive = updated.IsActive
	course.Faculty = repo.db.userSummary(course.FacultyID)
	return nil
}

func (repo *CourseRepository) SetActive(_ context.Context, id int64, active bool) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	c, ok := repo.db.courses[id]
	if !ok {
		return apperrors.ErrCourseNotFound
	}
	c.IsActive = active
	c.UpdatedAt = repo.db.now()
	return nil
}

func (repo *CourseRepository) CountActive(_ context.Context) (int64, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	var n int64
	for _, c := range repo.db.courses {
		if c.IsActive {
			n++
		}
	}
	return n, nil
}
