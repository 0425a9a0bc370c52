package dto

import "time"

// WeeklySubmissions counts activity submissions in one calendar week.
type WeeklySubmissions struct {
	WeekStart time.Time `json:"week_start"`
	Count     int64     `json:"count"`
}

// AdminAnalyticsResponse aggregates portal-wide statistics for admins.
type AdminAnalyticsResponse struct {
	UsersByRole          map[string]int64    `json:"users_by_role"`
	ActivitiesByStatus   map[string]int      `json:"activities_by_status"`
	ActivitiesByCategory map[string]int      `json:"activities_by_category"`
	ApprovalRate         int                 `json:"approval_rate"`
	TotalAwardedPoints   int                 `json:"total_awarded_points"`
	WeeklySubmissions    []WeeklySubmissions `json:"weekly_submissions"`
	CacheHit             bool                `json:"cache_hit,omitempty"`
}
