package models

import "time"

// User represents a portal identity with a fixed role.
type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Email      string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Role       string    `gorm:"size:32;not null" json:"role"`
	Department string    `gorm:"size:255" json:"department,omitempty"`
	Batch      string    `gorm:"size:64" json:"batch,omitempty"`
	RollNumber string    `gorm:"size:64" json:"roll_number,omitempty"`
	AvatarURL  string    `gorm:"size:512" json:"avatar_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Roles form a closed set; there is no role-change operation.
const (
	RoleStudent    = "student"
	RoleFaculty    = "faculty"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// ValidRole reports whether the role belongs to the closed role set.
func ValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleFaculty, RoleAdmin, RoleSuperAdmin:
		return true
	default:
		return false
	}
}
