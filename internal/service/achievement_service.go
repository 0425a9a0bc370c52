package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/campusfolio/ascent-api/internal/dto"
	"github.com/campusfolio/ascent-api/internal/insights"
	"github.com/campusfolio/ascent-api/internal/models"
	"github.com/campusfolio/ascent-api/internal/repository"
)

const recentApprovedLimit = 5

// AchievementService produces the per-student achievement tracker payload.
type AchievementService interface {
	GetTracker(ctx context.Context, studentID uint) (dto.AchievementTrackerResponse, error)
}

type achievementService struct {
	activities repository.ActivityRepository
	cache      *redis.Client
	cacheTTL   time.Duration
	logger     zerolog.Logger
}

// NewAchievementService builds the tracker aggregator.
func NewAchievementService(activities repository.ActivityRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) AchievementService {
	return &achievementService{
		activities: activities,
		cache:      cache,
		cacheTTL:   ttl,
		logger:     logger.With().Str("component", "achievement_service").Logger(),
	}
}

func trackerCacheKey(studentID uint) string {
	return fmt.Sprintf("tracker:student:%d", studentID)
}

func (s *achievementService) GetTracker(ctx context.Context, studentID uint) (dto.AchievementTrackerResponse, error) {
	cacheKey := trackerCacheKey(studentID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.AchievementTrackerResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				response.CacheHit = true
				s.logger.Debug().Uint("student_id", studentID).Msg("tracker cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read tracker cache")
		}
	}

	activities, err := s.activities.List(ctx, repository.ActivityFilter{StudentID: &studentID})
	if err != nil {
		return dto.AchievementTrackerResponse{}, err
	}

	response := buildTracker(studentID, activities)

	if s.cache != nil {
		payload, err := json.Marshal(response)
		if err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store tracker cache")
			}
		}
	}

	return response, nil
}

func buildTracker(studentID uint, activities []models.Activity) dto.AchievementTrackerResponse {
	approved := insights.Approved(activities)

	summary := dto.AchievementSummary{
		TotalActivities: len(activities),
		Approved:        len(approved),
		TotalPoints:     insights.TotalPoints(activities),
		ApprovalRate:    insights.ApprovalRate(activities),
	}
	for _, activity := range activities {
		switch activity.Status {
		case models.ActivityStatusPending:
			summary.Pending++
		case models.ActivityStatusRejected:
			summary.Rejected++
		}
	}

	recent := approved
	if len(recent) > recentApprovedLimit {
		recent = recent[len(recent)-recentApprovedLimit:]
	}

	return dto.AchievementTrackerResponse{
		StudentID:          studentID,
		Summary:            summary,
		CategoryBreakdown:  insights.CategoryBreakdown(activities),
		ApprovedByCategory: insights.ApprovedCategoryBreakdown(activities),
		UniqueSkills:       insights.UniqueSkills(activities),
		Badges:             insights.EvaluateBadges(activities),
		Milestones:         insights.EvaluateMilestones(activities),
		RecentApproved:     dto.NewActivityResponseSlice(recent),
	}
}
