package models

import (
	"time"

	"gorm.io/datatypes"
)

// Activity is one unit of student-submitted achievement subject to faculty review.
type Activity struct {
	ID          uint                        `gorm:"primaryKey" json:"id"`
	StudentID   uint                        `gorm:"not null;index" json:"student_id"`
	Title       string                      `gorm:"size:255;not null" json:"title"`
	Description string                      `gorm:"type:text;not null" json:"description"`
	Category    string                      `gorm:"size:32;not null" json:"category"`
	Date        time.Time                   `gorm:"not null" json:"date"`
	Duration    string                      `gorm:"size:64" json:"duration"`
	Skills      datatypes.JSONSlice[string] `gorm:"type:json" json:"skills"`
	ProofURL    string                      `gorm:"size:512" json:"proof_url,omitempty"`
	Points      int                         `gorm:"not null" json:"points"`
	Status      string                      `gorm:"size:32;not null;index" json:"status"`
	// Reviewer fields are set together when the activity leaves pending,
	// and are never set while it is pending.
	ReviewedBy     *string    `gorm:"size:255" json:"reviewed_by,omitempty"`
	ReviewDate     *time.Time `json:"review_date,omitempty"`
	ReviewComments *string    `gorm:"type:text" json:"review_comments,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

const (
	// ActivityStatusPending indicates the activity awaits faculty review.
	ActivityStatusPending = "pending"
	// ActivityStatusApproved indicates the activity passed review; points are final.
	ActivityStatusApproved = "approved"
	// ActivityStatusRejected indicates the activity failed review.
	ActivityStatusRejected = "rejected"
)

const (
	CategoryAcademic        = "academic"
	CategoryExtracurricular = "extracurricular"
	CategoryProfessional    = "professional"
)

// Categories lists the closed category set in display order.
func Categories() []string {
	return []string{CategoryAcademic, CategoryExtracurricular, CategoryProfessional}
}

// IsPending reports whether the activity still awaits review.
func (a Activity) IsPending() bool {
	return a.Status == ActivityStatusPending
}

// IsApproved reports whether the activity passed review.
func (a Activity) IsApproved() bool {
	return a.Status == ActivityStatusApproved
}

// ValidCategory reports whether the category belongs to the closed category set.
func ValidCategory(category string) bool {
	switch category {
	case CategoryAcademic, CategoryExtracurricular, CategoryProfessional:
		return true
	default:
		return false
	}
}
