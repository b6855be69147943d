package models

import (
	"strings"
	"time"
)

// Semester and credit bounds for a course.
const (
	MinSemester = 1
	MaxSemester = 8
	MinCredits  = 1
)

// CourseOutcome is a single (code, description) outcome of a course.
type CourseOutcome struct {
	Code        string `json:"code" example:"CO1"`
	Description string `json:"description" example:"Apply data structures to solve problems"`
}

// Course represents an academic offering tracked for accreditation.
type Course struct {
	ID             int64           `json:"id" db:"id"`
	CourseCode     string          `json:"courseCode" db:"course_code"`
	CourseName     string          `json:"courseName" db:"course_name"`
	Department     string          `json:"department" db:"department"`
	Semester       int             `json:"semester" db:"semester"`
	AcademicYear   string          `json:"academicYear" db:"academic_year"`
	Credits        int             `json:"credits" db:"credits"`
	FacultyID      int64           `json:"facultyId" db:"faculty_id"`
	CourseOutcomes []CourseOutcome `json:"courseOutcomes" db:"course_outcomes"`
	IsActive       bool            `json:"isActive" db:"is_active"`
	CreatedAt      time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time       `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Faculty *UserSummary `json:"faculty,omitempty"`
}

// NormalizeCourseCode trims and upper-cases a course code so that codes compare case-insensitively.
func NormalizeCourseCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// FacultyName returns the display name of the owning faculty, or "" when not loaded.
func (c *Course) FacultyName() string {
	if c.Faculty == nil {
		return ""
	}
	return c.Faculty.Name
}
