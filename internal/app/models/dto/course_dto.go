package dto

import "github.com/yigit/nbadocs/internal/app/models"

// CourseOutcomeInput is one outcome entry of a course request
type CourseOutcomeInput struct {
	Code        string `json:"code" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// CourseRequest is the body of POST /courses and PUT /courses/:id.
// Faculty defaults to the authenticated user when omitted.
type CourseRequest struct {
	CourseCode     string               `json:"courseCode" binding:"required,max=50"`
	CourseName     string               `json:"courseName" binding:"required,max=255"`
	Department     string               `json:"department" binding:"required"`
	Semester       int                  `json:"semester" binding:"required,min=1,max=8"`
	AcademicYear   string               `json:"academicYear" binding:"required"`
	Credits        int                  `json:"credits" binding:"required,min=1"`
	Faculty        *int64               `json:"faculty,omitempty" binding:"omitempty,min=1"`
	CourseOutcomes []CourseOutcomeInput `json:"courseOutcomes" binding:"omitempty,dive"`
}

// Outcomes converts the request outcomes into model values
func (r *CourseRequest) Outcomes() []models.CourseOutcome {
	outcomes := make([]models.CourseOutcome, 0, len(r.CourseOutcomes))
	for _, o := range r.CourseOutcomes {
		outcomes = append(outcomes, models.CourseOutcome{Code: o.Code, Description: o.Description})
	}
	return outcomes
}
