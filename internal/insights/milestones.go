package insights

import "github.com/campusfolio/ascent-api/internal/models"

// Milestone is a cumulative point threshold with an associated tier name.
type Milestone struct {
	Points   int    `json:"points"`
	Title    string `json:"title"`
	Achieved bool   `json:"achieved"`
}

// MilestoneProgress summarizes milestone attainment for a snapshot.
type MilestoneProgress struct {
	Milestones     []Milestone `json:"milestones"`
	Achieved       int         `json:"achieved"`
	NextMilestone  *Milestone  `json:"next_milestone,omitempty"`
	ProgressToNext float64     `json:"progress_to_next"`
}

// milestoneTiers are ordered ascending; a tier is achieved iff total points
// reach its threshold.
var milestoneTiers = []Milestone{
	{Points: 50, Title: "Bronze Level"},
	{Points: 150, Title: "Silver Level"},
	{Points: 300, Title: "Gold Level"},
	{Points: 500, Title: "Platinum Level"},
}

// EvaluateMilestones computes milestone attainment from approved points.
// Progress to the next tier is points/threshold*100 capped at 100, and 100
// when every tier is achieved.
func EvaluateMilestones(activities []models.Activity) MilestoneProgress {
	total := TotalPoints(activities)

	progress := MilestoneProgress{
		Milestones: make([]Milestone, 0, len(milestoneTiers)),
	}

	for _, tier := range milestoneTiers {
		tier.Achieved = total >= tier.Points
		if tier.Achieved {
			progress.Achieved++
		} else if progress.NextMilestone == nil {
			next := tier
			progress.NextMilestone = &next
		}
		progress.Milestones = append(progress.Milestones, tier)
	}

	if progress.NextMilestone == nil {
		progress.ProgressToNext = 100
		return progress
	}

	percent := float64(total) / float64(progress.NextMilestone.Points) * 100
	if percent > 100 {
		percent = 100
	}
	progress.ProgressToNext = percent

	return progress
}
