package models

import "time"

// Notification informs a user about a review decision or other portal event.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Type      string    `gorm:"size:64;not null" json:"type"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Read      bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	NotificationTypeActivityApproved = "activity_approved"
	NotificationTypeActivityRejected = "activity_rejected"
	NotificationTypeGeneric          = "generic"
)
