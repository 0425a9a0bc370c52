package dto

import "github.com/campusfolio/ascent-api/internal/insights"

// AchievementSummary aggregates headline numbers for a student.
type AchievementSummary struct {
	TotalActivities int `json:"total_activities"`
	Approved        int `json:"approved"`
	Pending         int `json:"pending"`
	Rejected        int `json:"rejected"`
	TotalPoints     int `json:"total_points"`
	ApprovalRate    int `json:"approval_rate"`
}

// AchievementTrackerResponse is the per-student achievement dashboard payload.
type AchievementTrackerResponse struct {
	StudentID          uint                       `json:"student_id"`
	Summary            AchievementSummary         `json:"summary"`
	CategoryBreakdown  map[string]int             `json:"category_breakdown"`
	ApprovedByCategory map[string]int             `json:"approved_by_category"`
	UniqueSkills       []string                   `json:"unique_skills"`
	Badges             []insights.Badge           `json:"badges"`
	Milestones         insights.MilestoneProgress `json:"milestones"`
	RecentApproved     []ActivityResponse         `json:"recent_approved"`
	CacheHit           bool                       `json:"cache_hit,omitempty"`
}
