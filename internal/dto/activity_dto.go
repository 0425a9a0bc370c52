package dto

import (
	"time"

	"github.com/campusfolio/ascent-api/internal/models"
)

// ActivityCreateRequest describes a student's activity submission. The id,
// status and reviewer fields are never client-supplied.
type ActivityCreateRequest struct {
	Title       string    `json:"title" validate:"required,min=1,max=255"`
	Description string    `json:"description" validate:"required,min=1"`
	Category    string    `json:"category" validate:"required,oneof=academic extracurricular professional"`
	Date        time.Time `json:"date" validate:"required"`
	Duration    string    `json:"duration" validate:"max=64"`
	Skills      []string  `json:"skills" validate:"dive,min=1"`
	ProofURL    string    `json:"proof_url" validate:"omitempty,url"`
	Points      int       `json:"points" validate:"gte=0"`
}

// ActivityReviewRequest describes a faculty review decision for a pending
// activity. Comments are required when rejecting.
type ActivityReviewRequest struct {
	Status   string `json:"status" validate:"required,oneof=approved rejected"`
	Comments string `json:"comments"`
}

// ActivityFilter describes query string filters for listing activities.
type ActivityFilter struct {
	StudentID *uint   `query:"student_id"`
	Status    *string `query:"status" validate:"omitempty,oneof=pending approved rejected"`
	Category  *string `query:"category" validate:"omitempty,oneof=academic extracurricular professional"`
}

// ActivityResponse is returned to API clients when viewing activities.
type ActivityResponse struct {
	ID             uint       `json:"id"`
	StudentID      uint       `json:"student_id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Category       string     `json:"category"`
	Date           time.Time  `json:"date"`
	Duration       string     `json:"duration"`
	Skills         []string   `json:"skills"`
	ProofURL       string     `json:"proof_url,omitempty"`
	Points         int        `json:"points"`
	Status         string     `json:"status"`
	ReviewedBy     *string    `json:"reviewed_by,omitempty"`
	ReviewDate     *time.Time `json:"review_date,omitempty"`
	ReviewComments *string    `json:"review_comments,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewActivityResponse converts an Activity model into a DTO.
func NewActivityResponse(model models.Activity) ActivityResponse {
	skills := make([]string, len(model.Skills))
	copy(skills, model.Skills)

	return ActivityResponse{
		ID:             model.ID,
		StudentID:      model.StudentID,
		Title:          model.Title,
		Description:    model.Description,
		Category:       model.Category,
		Date:           model.Date,
		Duration:       model.Duration,
		Skills:         skills,
		ProofURL:       model.ProofURL,
		Points:         model.Points,
		Status:         model.Status,
		ReviewedBy:     model.ReviewedBy,
		ReviewDate:     model.ReviewDate,
		ReviewComments: model.ReviewComments,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}
}

// NewActivityResponseSlice converts activity models into DTOs.
func NewActivityResponseSlice(models []models.Activity) []ActivityResponse {
	responses := make([]ActivityResponse, 0, len(models))
	for _, activity := range models {
		responses = append(responses, NewActivityResponse(activity))
	}

	return responses
}
