package models

// TypeCompliance is the presence of one required document type for a course.
type TypeCompliance struct {
	Type    FileType `json:"type"`
	Present bool     `json:"present"`
	Count   int      `json:"count"`
}

// ComplianceCourse identifies the course a compliance entry belongs to.
type ComplianceCourse struct {
	ID      int64  `json:"id"`
	Code    string `json:"code"`
	Name    string `json:"name"`
	Faculty string `json:"faculty"`
}

// CourseCompliance is the compliance score of a single course.
type CourseCompliance struct {
	Course               ComplianceCourse `json:"course"`
	Compliance           []TypeCompliance `json:"compliance"`
	CompliancePercentage int              `json:"compliancePercentage"`
	TotalFiles           int              `json:"totalFiles"`
}
