package models

import "time"

// Portfolio is an immutable generated export summarizing a student's approved
// activities under a chosen visual template. Generation is append-only; a new
// portfolio never invalidates a prior one.
type Portfolio struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	StudentID   uint      `gorm:"not null;index" json:"student_id"`
	Template    string    `gorm:"size:32;not null" json:"template"`
	IsPublic    bool      `gorm:"not null" json:"is_public"`
	ShareLink   string    `gorm:"size:512;not null" json:"share_link"`
	GeneratedAt time.Time `gorm:"not null" json:"generated_at"`
}

const (
	TemplateMinimal      = "minimal"
	TemplateProfessional = "professional"
	TemplateCreative     = "creative"
)

// ValidTemplate reports whether the template belongs to the closed template set.
func ValidTemplate(template string) bool {
	switch template {
	case TemplateMinimal, TemplateProfessional, TemplateCreative:
		return true
	default:
		return false
	}
}
