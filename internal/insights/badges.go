package insights

import "github.com/campusfolio/ascent-api/internal/models"

// Badge is a named boolean achievement predicate evaluated against a
// student's activity snapshot.
type Badge struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Earned      bool   `json:"earned"`
}

const pointMasterThreshold = 200

// EvaluateBadges evaluates every badge predicate against the snapshot.
// Early Achiever considers any status; the remaining badges consider
// approved activities only.
func EvaluateBadges(activities []models.Activity) []Badge {
	approvedByCategory := ApprovedCategoryBreakdown(activities)

	return []Badge{
		{
			Title:       "Early Achiever",
			Description: "First activity submitted",
			Earned:      len(activities) > 0,
		},
		{
			Title:       "Academic Excellence",
			Description: "5 academic activities approved",
			Earned:      approvedByCategory[models.CategoryAcademic] >= 5,
		},
		{
			Title:       "Well Rounded",
			Description: "Activities in all categories",
			Earned:      len(approvedByCategory) == 3,
		},
		{
			Title:       "Point Master",
			Description: "200+ achievement points",
			Earned:      TotalPoints(activities) >= pointMasterThreshold,
		},
	}
}

// EarnedBadges counts the earned entries in a badge evaluation.
func EarnedBadges(badges []Badge) int {
	earned := 0
	for _, badge := range badges {
		if badge.Earned {
			earned++
		}
	}

	return earned
}
