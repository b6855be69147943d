package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	appAuth "github.com/yigit/nbadocs/internal/app/auth"
	"github.com/yigit/nbadocs/internal/app/models/dto"
	"github.com/yigit/nbadocs/internal/app/services"
	"github.com/yigit/nbadocs/internal/middleware"
	"github.com/yigit/nbadocs/internal/pkg/apperrors"
)

// CourseController handles course registry endpoints
type CourseController struct {
	courseService *services.CourseService
	authzService  *appAuth.AuthorizationService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService *services.CourseService, authzService *appAuth.AuthorizationService) *CourseController {
	return &CourseController{
		courseService: courseService,
		authzService:  authzService,
	}
}

// CreateCourse handles course creation
// @Summary Create a new course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CourseRequest true "Course information"
// @Success 201 {object} dto.APIResponse{data=models.Course} "Course created successfully"
// @Failure 400 {object} dto.APIResponse "Invalid data or duplicate course code"
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	actor, valid := actorID(ctx)
	if !valid {
		return
	}

	var req dto.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	course, err := c.courseService.CreateCourse(ctx.Request.Context(), &req, actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusCreated, course, "Course created successfully")
}

// GetCourses lists active courses
// @Summary List active courses
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Course}
// @Router /courses [get]
func (c *CourseController) GetCourses(ctx *gin.Context) {
	courses, err := c.courseService.ListActiveCourses(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, courses)
}

// GetCourse retrieves a course by ID
// @Summary Get course details
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=models.Course}
// @Failure 404 {object} dto.APIResponse "Course not found"
// @Router /courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, valid := pathID(ctx, "id", apperrors.ErrCourseNotFound)
	if !valid {
		return
	}

	course, err := c.courseService.GetCourse(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, course)
}

// UpdateCourse replaces a course's descriptive fields. Faculty may only edit their own courses.
// @Summary Update a course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.CourseRequest true "Course information"
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course updated successfully"
// @Failure 400 {object} dto.APIResponse "Invalid data or duplicate course code"
// @Failure 403 {object} dto.APIResponse "Not the course faculty"
// @Failure 404 {object} dto.APIResponse "Course not found"
// @Router /courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	actor, valid := actorID(ctx)
	if !valid {
		return
	}
	id, valid := pathID(ctx, "id", apperrors.ErrCourseNotFound)
	if !valid {
		return
	}

	if err := c.authzService.ValidateCourseOwnership(ctx.Request.Context(), id, actor); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	course, err := c.courseService.UpdateCourse(ctx.Request.Context(), id, &req, actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, course, "Course updated successfully")
}

// DeactivateCourse soft-deletes a course
// @Summary Deactivate a course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse "Course deactivated successfully"
// @Failure 403 {object} dto.APIResponse "Admin only"
// @Failure 404 {object} dto.APIResponse "Course not found"
// @Router /courses/{id} [delete]
func (c *CourseController) DeactivateCourse(ctx *gin.Context) {
	actor, valid := actorID(ctx)
	if !valid {
		return
	}
	id, valid := pathID(ctx, "id", apperrors.ErrCourseNotFound)
	if !valid {
		return
	}

	if err := c.courseService.DeactivateCourse(ctx.Request.Context(), id, actor); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, nil, "Course deactivated successfully")
}
