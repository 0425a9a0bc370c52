package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/campusfolio/ascent-api/internal/dto"
	"github.com/campusfolio/ascent-api/internal/insights"
	"github.com/campusfolio/ascent-api/internal/models"
	"github.com/campusfolio/ascent-api/internal/repository"
)

const (
	adminAnalyticsCacheKey = "analytics:summary"
	weeklyTrendWeeks       = 8
)

// AdminAnalyticsService aggregates portal-wide statistics for the admin dashboard.
type AdminAnalyticsService interface {
	GetSummary(ctx context.Context) (dto.AdminAnalyticsResponse, error)
}

type adminAnalyticsService struct {
	activities repository.ActivityRepository
	users      repository.UserRepository
	cache      *redis.Client
	cacheTTL   time.Duration
	logger     zerolog.Logger
	now        func() time.Time
}

// NewAdminAnalyticsService constructs the analytics service.
func NewAdminAnalyticsService(activities repository.ActivityRepository, users repository.UserRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) AdminAnalyticsService {
	return &adminAnalyticsService{
		activities: activities,
		users:      users,
		cache:      cache,
		cacheTTL:   ttl,
		logger:     logger.With().Str("component", "admin_analytics_service").Logger(),
		now:        time.Now,
	}
}

func (s *adminAnalyticsService) GetSummary(ctx context.Context) (dto.AdminAnalyticsResponse, error) {
	tracer := otel.Tracer("github.com/campusfolio/ascent-api/internal/service/admin_analytics")
	ctx, span := tracer.Start(ctx, "analytics.aggregate")
	span.SetAttributes(attribute.String("analytics.cache_key", adminAnalyticsCacheKey))
	defer span.End()

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, adminAnalyticsCacheKey).Result()
		if err == nil {
			var response dto.AdminAnalyticsResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				response.CacheHit = true
				span.SetAttributes(attribute.Bool("analytics.cache_hit", true))
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read analytics cache")
			span.RecordError(err)
		}
	}

	usersByRole, err := s.users.CountByRole(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "count_users_failed")
		return dto.AdminAnalyticsResponse{}, err
	}

	activities, err := s.activities.List(ctx, repository.ActivityFilter{})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list_activities_failed")
		return dto.AdminAnalyticsResponse{}, err
	}

	summary := s.buildSummary(usersByRole, activities)
	span.SetAttributes(attribute.Int("analytics.activity_count", len(activities)))

	if s.cache != nil {
		payload, err := json.Marshal(summary)
		if err == nil {
			if err := s.cache.Set(ctx, adminAnalyticsCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store analytics cache")
				span.RecordError(err)
			}
		}
	}

	return summary, nil
}

func (s *adminAnalyticsService) buildSummary(usersByRole map[string]int64, activities []models.Activity) dto.AdminAnalyticsResponse {
	byStatus := map[string]int{
		models.ActivityStatusPending:  0,
		models.ActivityStatusApproved: 0,
		models.ActivityStatusRejected: 0,
	}
	for _, activity := range activities {
		byStatus[activity.Status]++
	}

	weekly := map[time.Time]int64{}
	for _, activity := range activities {
		weekly[startOfWeek(activity.CreatedAt)]++
	}

	// Fixed-length window ending at the current week; empty weeks stay in
	// the series with a zero count.
	currentWeek := startOfWeek(s.now())
	trend := make([]dto.WeeklySubmissions, 0, weeklyTrendWeeks)
	for i := weeklyTrendWeeks - 1; i >= 0; i-- {
		week := currentWeek.AddDate(0, 0, -7*i)
		trend = append(trend, dto.WeeklySubmissions{WeekStart: week, Count: weekly[week]})
	}

	return dto.AdminAnalyticsResponse{
		UsersByRole:          usersByRole,
		ActivitiesByStatus:   byStatus,
		ActivitiesByCategory: insights.CategoryBreakdown(activities),
		ApprovalRate:         insights.ApprovalRate(activities),
		TotalAwardedPoints:   insights.TotalPoints(activities),
		WeeklySubmissions:    trend,
	}
}

func startOfWeek(t time.Time) time.Time {
	t = t.UTC()
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	day := t.AddDate(0, 0, -(weekday - 1))
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
}
