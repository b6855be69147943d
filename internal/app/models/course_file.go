package models

import (
	"strings"
	"time"
)

// FileType classifies a course document. The set of values is closed.
type FileType string

const (
	FileTypeSyllabus      FileType = "syllabus"
	FileTypeLessonPlan    FileType = "lesson_plan"
	FileTypeAssignment    FileType = "assignment"
	FileTypeQuestionPaper FileType = "question_paper"
	FileTypeAnswerKey     FileType = "answer_key"
	FileTypeAttendance    FileType = "attendance"
	FileTypeMarks         FileType = "marks"
	FileTypeOther         FileType = "other"
)

// FileTypes is the full taxonomy in declaration order.
var FileTypes = []FileType{
	FileTypeSyllabus,
	FileTypeLessonPlan,
	FileTypeAssignment,
	FileTypeQuestionPaper,
	FileTypeAnswerKey,
	FileTypeAttendance,
	FileTypeMarks,
	FileTypeOther,
}

// RequiredTypes are the document types that count towards NBA compliance, in report order.
var RequiredTypes = [...]FileType{
	FileTypeSyllabus,
	FileTypeLessonPlan,
	FileTypeAssignment,
	FileTypeQuestionPaper,
	FileTypeAnswerKey,
}

// Valid reports whether t belongs to the taxonomy.
func (t FileType) Valid() bool {
	switch t {
	case FileTypeSyllabus, FileTypeLessonPlan, FileTypeAssignment, FileTypeQuestionPaper,
		FileTypeAnswerKey, FileTypeAttendance, FileTypeMarks, FileTypeOther:
		return true
	}
	return false
}

// Required reports whether t is one of RequiredTypes.
func (t FileType) Required() bool {
	for _, r := range RequiredTypes {
		if r == t {
			return true
		}
	}
	return false
}

// ParseFileType converts a raw tag into a FileType. ok is false for values outside the taxonomy.
func ParseFileType(raw string) (FileType, bool) {
	t := FileType(strings.ToLower(strings.TrimSpace(raw)))
	return t, t.Valid()
}

// CourseFile is the metadata record of one uploaded document attached to a course.
// The bytes live in external storage, referenced by FilePath.
type CourseFile struct {
	ID             int64     `json:"id" db:"id"`
	CourseID       int64     `json:"courseId" db:"course_id"`
	FileName       string    `json:"fileName" db:"file_name"`
	FileType       FileType  `json:"fileType" db:"file_type"`
	FilePath       string    `json:"-" db:"file_path"`
	FileSize       int64     `json:"fileSize" db:"file_size"`
	MimeType       string    `json:"mimeType,omitempty" db:"mime_type"`
	UploadedBy     int64     `json:"uploadedById" db:"uploaded_by"`
	Description    *string   `json:"description,omitempty" db:"description"`
	IsNBACompliant bool      `json:"isNBACompliant" db:"is_nba_compliant"`
	Tags           []string  `json:"tags" db:"tags"`
	Version        int       `json:"version" db:"version"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Course   *CourseSummary `json:"course,omitempty"`
	Uploader *UserSummary   `json:"uploadedBy,omitempty"`
}

// CourseSummary is the display projection of a course embedded in file listings.
type CourseSummary struct {
	ID         int64  `json:"id"`
	CourseCode string `json:"courseCode,omitempty"`
	CourseName string `json:"courseName"`
}

// InitialFileVersion is the version every new file record starts at.
const InitialFileVersion = 1

// ParseTags splits a comma delimited tag string into trimmed tags.
// Empty entries are dropped; duplicates are kept.
func ParseTags(raw string) []string {
	tags := make([]string, 0)
	if strings.TrimSpace(raw) == "" {
		return tags
	}
	for _, part := range strings.Split(raw, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
