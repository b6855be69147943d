package models

import (
	"time"
)

// User is an identity known to the system. Courses and files reference users by ID.
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Name      string    `json:"name" db:"name" example:"Dr. Jane Doe"`
	Email     string    `json:"email" db:"email" example:"jane@college.edu"`
	Password  string    `json:"-" db:"password_hash"`
	Role      RoleType  `json:"role" db:"role" example:"faculty"`
	IsActive  bool      `json:"isActive" db:"is_active" example:"true"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// UserSummary is the display projection of a user embedded in other resources.
type UserSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Summary returns the display projection of the user
func (u *User) Summary() *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}
