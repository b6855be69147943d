package models

// DashboardStats holds global counts across courses, files and users.
type DashboardStats struct {
	TotalCourses int64              `json:"totalCourses"`
	TotalFiles   int64              `json:"totalFiles"`
	TotalUsers   int64              `json:"totalUsers"`
	FilesByType  map[FileType]int64 `json:"filesByType"`
	RecentFiles  []CourseFile       `json:"recentFiles"`
}
