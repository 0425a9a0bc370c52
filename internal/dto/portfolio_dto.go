package dto

import (
	"time"

	"github.com/campusfolio/ascent-api/internal/models"
)

// PortfolioGenerateRequest selects the visual template for a new portfolio.
type PortfolioGenerateRequest struct {
	Template string `json:"template" validate:"required,oneof=minimal professional creative"`
}

// PortfolioStats summarizes the approved activities behind a portfolio.
type PortfolioStats struct {
	ApprovedActivities int      `json:"approved_activities"`
	TotalPoints        int      `json:"total_points"`
	UniqueSkills       []string `json:"unique_skills"`
}

// PortfolioResponse is returned when a portfolio is generated or listed.
type PortfolioResponse struct {
	ID          uint           `json:"id"`
	StudentID   uint           `json:"student_id"`
	Template    string         `json:"template"`
	IsPublic    bool           `json:"is_public"`
	ShareLink   string         `json:"share_link"`
	GeneratedAt time.Time      `json:"generated_at"`
	Stats       PortfolioStats `json:"stats"`
}

// NewPortfolioResponse converts a Portfolio model into a DTO.
func NewPortfolioResponse(model models.Portfolio, stats PortfolioStats) PortfolioResponse {
	return PortfolioResponse{
		ID:          model.ID,
		StudentID:   model.StudentID,
		Template:    model.Template,
		IsPublic:    model.IsPublic,
		ShareLink:   model.ShareLink,
		GeneratedAt: model.GeneratedAt,
		Stats:       stats,
	}
}
