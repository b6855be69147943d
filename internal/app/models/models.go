package models

// RoleType defines the user role type
type RoleType string

const (
	RoleAdmin   RoleType = "admin"
	RoleFaculty RoleType = "faculty"
)

// Valid reports whether the role is one the system issues.
func (r RoleType) Valid() bool {
	return r == RoleAdmin || r == RoleFaculty
}
