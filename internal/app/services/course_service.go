package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/nbadocs/internal/app/models"
	"github.com/yigit/nbadocs/internal/app/models/dto"
	"github.com/yigit/nbadocs/internal/pkg/apperrors"
)

// CourseService manages the course registry
type CourseService struct {
	courses CourseStore
	users   UserStore
	logger  zerolog.Logger
}

// NewCourseService creates a new course service
func NewCourseService(courses CourseStore, users UserStore, logger zerolog.Logger) *CourseService {
	return &CourseService{
		courses: courses,
		users:   users,
		logger:  logger,
	}
}

// validateCourse re-checks the request independently of the transport binding
func (s *CourseService) validateCourse(req *dto.CourseRequest) error {
	if req == nil {
		return apperrors.NewValidationError("course data is required")
	}

	required := map[string]string{
		"courseCode":   req.CourseCode,
		"courseName":   req.CourseName,
		"department":   req.Department,
		"academicYear": req.AcademicYear,
	}
	for _, field := range []string{"courseCode", "courseName", "department", "academicYear"} {
		if strings.TrimSpace(required[field]) == "" {
			return apperrors.NewValidationError(field + " is required")
		}
	}

	if req.Semester < models.MinSemester || req.Semester > models.MaxSemester {
		return apperrors.NewValidationError(fmt.Sprintf("semester must be between %d and %d", models.MinSemester, models.MaxSemester))
	}
	if req.Credits < models.MinCredits {
		return apperrors.NewValidationError(fmt.Sprintf("credits must be at least %d", models.MinCredits))
	}
	for i, o := range req.CourseOutcomes {
		if strings.TrimSpace(o.Code) == "" || strings.TrimSpace(o.Description) == "" {
			return apperrors.NewValidationError(fmt.Sprintf("courseOutcomes[%d] needs a code and a description", i))
		}
	}
	return nil
}

// resolveFaculty picks the requested faculty or falls back to the actor, and checks it exists
func (s *CourseService) resolveFaculty(ctx context.Context, req *dto.CourseRequest, actorID int64) (int64, error) {
	facultyID := actorID
	if req.Faculty != nil {
		facultyID = *req.Faculty
	}
	if facultyID <= 0 {
		return 0, apperrors.NewValidationError("faculty is required")
	}

	if _, err := s.users.GetByID(ctx, facultyID); err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return 0, apperrors.NewValidationError(fmt.Sprintf("faculty %d does not exist", facultyID))
		}
		return 0, fmt.Errorf("error resolving faculty: %w", err)
	}
	return facultyID, nil
}

func (s *CourseService) applyRequest(course *models.Course, req *dto.CourseRequest, facultyID int64) {
	course.CourseCode = models.NormalizeCourseCode(req.CourseCode)
	course.CourseName = strings.TrimSpace(req.CourseName)
	course.Department = strings.TrimSpace(req.Department)
	course.Semester = req.Semester
	course.AcademicYear = strings.TrimSpace(req.AcademicYear)
	course.Credits = req.Credits
	course.FacultyID = facultyID
	course.CourseOutcomes = req.Outcomes()
}

// CreateCourse registers a new active course owned by the requested faculty or the actor
func (s *CourseService) CreateCourse(ctx context.Context, req *dto.CourseRequest, actorID int64) (*models.Course, error) {
	if err := s.validateCourse(req); err != nil {
		return nil, err
	}

	facultyID, err := s.resolveFaculty(ctx, req, actorID)
	if err != nil {
		return nil, err
	}

	course := &models.Course{IsActive: true}
	s.applyRequest(course, req, facultyID)

	exists, err := s.courses.ExistsByCode(ctx, course.CourseCode, 0)
	if err != nil {
		return nil, fmt.Errorf("error checking course code: %w", err)
	}
	if exists {
		return nil, apperrors.ErrCourseCodeExists
	}

	// the store enforces uniqueness again for concurrent creates
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("courseID", course.ID).
		Str("courseCode", course.CourseCode).
		Int64("actorID", actorID).
		Msg("Course created")
	return course, nil
}

// ListActiveCourses returns every active course, newest first
func (s *CourseService) ListActiveCourses(ctx context.Context) ([]*models.Course, error) {
	courses, err := s.courses.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	return courses, nil
}

// GetCourse retrieves a course by ID, active or not
func (s *CourseService) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	if id <= 0 {
		return nil, apperrors.ErrCourseNotFound
	}
	return s.courses.GetByID(ctx, id)
}

// UpdateCourse replaces the descriptive fields of a course
func (s *CourseService) UpdateCourse(ctx context.Context, id int64, req *dto.CourseRequest, actorID int64) (*models.Course, error) {
	if err := s.validateCourse(req); err != nil {
		return nil, err
	}

	course, err := s.GetCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	facultyID := course.FacultyID
	if req.Faculty != nil {
		if facultyID, err = s.resolveFaculty(ctx, req, actorID); err != nil {
			return nil, err
		}
	}
	s.applyRequest(course, req, facultyID)

	exists, err := s.courses.ExistsByCode(ctx, course.CourseCode, course.ID)
	if err != nil {
		return nil, fmt.Errorf("error checking course code: %w", err)
	}
	if exists {
		return nil, apperrors.ErrCourseCodeExists
	}

	if err := s.courses.Update(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("courseID", course.ID).Int64("actorID", actorID).Msg("Course updated")
	return s.courses.GetByID(ctx, course.ID)
}

// DeactivateCourse soft-deletes a course; its files and code reservation remain
func (s *CourseService) DeactivateCourse(ctx context.Context, id int64, actorID int64) error {
	if id <= 0 {
		return apperrors.ErrCourseNotFound
	}
	if err := s.courses.SetActive(ctx, id, false); err != nil {
		return err
	}
	s.logger.Info().Int64("courseID", id).Int64("actorID", actorID).Msg("Course deactivated")
	return nil
}
