package auth

import (
	"context"
	"errors"

	"github.com/yigit/nbadocs/internal/app/models"
	"github.com/yigit/nbadocs/internal/app/services"
	"github.com/yigit/nbadocs/internal/pkg/apperrors"
	"github.com/yigit/nbadocs/internal/pkg/logger"
)

// ErrNotCourseOwner is returned when a faculty member edits a course owned by someone else
var ErrNotCourseOwner = apperrors.NewCustomError(apperrors.ErrPermissionDenied, "only the course faculty or an admin can modify this course").
	WithCode("NOT_COURSE_OWNER")

// AuthorizationService handles ownership checks that roles alone cannot express
type AuthorizationService struct {
	users   services.UserStore
	courses services.CourseStore
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(users services.UserStore, courses services.CourseStore) *AuthorizationService {
	return &AuthorizationService{
		users:   users,
		courses: courses,
	}
}

// IsAdmin checks if the user is an active administrator
func (s *AuthorizationService) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return false, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error getting user by ID in IsAdmin")
		return false, err
	}
	return user.IsActive && user.Role == models.RoleAdmin, nil
}

// CanModifyCourse reports whether the user may edit the course: admins always, faculty only their own
func (s *AuthorizationService) CanModifyCourse(ctx context.Context, courseID, userID int64) (bool, error) {
	isAdmin, err := s.IsAdmin(ctx, userID)
	if err != nil {
		return false, err
	}
	if isAdmin {
		return true, nil
	}

	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return false, err
	}
	return course.FacultyID == userID, nil
}

// ValidateCourseOwnership returns ErrNotCourseOwner unless CanModifyCourse holds
func (s *AuthorizationService) ValidateCourseOwnership(ctx context.Context, courseID, userID int64) error {
	allowed, err := s.CanModifyCourse(ctx, courseID, userID)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrNotCourseOwner
	}
	return nil
}
