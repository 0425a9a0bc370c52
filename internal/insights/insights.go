// Package insights computes derived achievement metrics from activity
// snapshots. Every function is pure: it reads the slice it is given and
// holds no state, so student, faculty and admin views that share a snapshot
// always agree on the derived numbers.
package insights

import (
	"math"
	"sort"

	"github.com/campusfolio/ascent-api/internal/models"
)

// Approved returns the approved subset of the snapshot, preserving order.
func Approved(activities []models.Activity) []models.Activity {
	approved := make([]models.Activity, 0, len(activities))
	for _, activity := range activities {
		if activity.IsApproved() {
			approved = append(approved, activity)
		}
	}

	return approved
}

// TotalPoints sums points over approved activities only. Pending and
// rejected activities never contribute.
func TotalPoints(activities []models.Activity) int {
	total := 0
	for _, activity := range activities {
		if activity.IsApproved() {
			total += activity.Points
		}
	}

	return total
}

// CategoryBreakdown counts activities per category across all statuses.
// This is the dashboard distribution view; badge and skill calculations use
// ApprovedCategoryBreakdown instead.
func CategoryBreakdown(activities []models.Activity) map[string]int {
	breakdown := make(map[string]int, 3)
	for _, activity := range activities {
		breakdown[activity.Category]++
	}

	return breakdown
}

// ApprovedCategoryBreakdown counts approved activities per category.
func ApprovedCategoryBreakdown(activities []models.Activity) map[string]int {
	return CategoryBreakdown(Approved(activities))
}

// ApprovalRate returns the percentage of activities with status approved,
// rounded to the nearest integer. An empty snapshot yields 0, not NaN.
func ApprovalRate(activities []models.Activity) int {
	if len(activities) == 0 {
		return 0
	}

	approved := 0
	for _, activity := range activities {
		if activity.IsApproved() {
			approved++
		}
	}

	return int(math.Round(float64(approved) / float64(len(activities)) * 100))
}

// UniqueSkills returns the case-sensitive set union of skill tags across
// approved activities, sorted for stable output.
func UniqueSkills(activities []models.Activity) []string {
	seen := make(map[string]struct{})
	for _, activity := range activities {
		if !activity.IsApproved() {
			continue
		}
		for _, skill := range activity.Skills {
			seen[skill] = struct{}{}
		}
	}

	skills := make([]string, 0, len(seen))
	for skill := range seen {
		skills = append(skills, skill)
	}
	sort.Strings(skills)

	return skills
}
