package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/campusfolio/ascent-api/internal/dto"
	"github.com/campusfolio/ascent-api/internal/models"
	"github.com/campusfolio/ascent-api/internal/observability"
	"github.com/campusfolio/ascent-api/internal/repository"
)

var (
	// ErrActivityNotFound indicates an activity could not be found.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrInvalidTransition indicates a review was attempted on a non-pending activity.
	ErrInvalidTransition = errors.New("activity is not pending review")
	// ErrReviewCommentsRequired indicates a rejection without explanatory comments.
	ErrReviewCommentsRequired = errors.New("review comments are required when rejecting")
)

const defaultApprovalComment = "Activity approved."

// ActivityService is the single source of truth for activity records and
// enforces the submission/review life cycle.
type ActivityService interface {
	Create(ctx context.Context, studentID uint, payload dto.ActivityCreateRequest) (dto.ActivityResponse, error)
	Review(ctx context.Context, id uint, reviewer string, payload dto.ActivityReviewRequest) (dto.ActivityResponse, error)
	Get(ctx context.Context, id uint) (dto.ActivityResponse, error)
	ListFor(ctx context.Context, studentID uint) ([]dto.ActivityResponse, error)
	ListAll(ctx context.Context, filter dto.ActivityFilter) ([]dto.ActivityResponse, error)
}

// ReviewNotifier receives review outcomes for delivery to the student.
// Delivery is best-effort and never fails the transition.
type ReviewNotifier interface {
	NotifyReview(ctx context.Context, activity models.Activity)
}

type activityService struct {
	activities repository.ActivityRepository
	validator  *validator.Validate
	cache      *redis.Client
	notifier   ReviewNotifier
	sanitizer  *bluemonday.Policy
	logger     zerolog.Logger
	now        func() time.Time
}

// NewActivityService constructs an ActivityService instance. The cache and
// notifier are optional.
func NewActivityService(repo repository.ActivityRepository, validate *validator.Validate, cache *redis.Client, notifier ReviewNotifier, logger zerolog.Logger) ActivityService {
	return &activityService{
		activities: repo,
		validator:  validate,
		cache:      cache,
		notifier:   notifier,
		sanitizer:  bluemonday.StrictPolicy(),
		logger:     logger.With().Str("component", "activity_service").Logger(),
		now:        time.Now,
	}
}

func (s *activityService) Create(ctx context.Context, studentID uint, payload dto.ActivityCreateRequest) (dto.ActivityResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ActivityResponse{}, err
	}

	if studentID == 0 {
		return dto.ActivityResponse{}, fmt.Errorf("student id is required")
	}

	title := strings.TrimSpace(payload.Title)
	if title == "" {
		return dto.ActivityResponse{}, fmt.Errorf("title must not be blank")
	}

	description := strings.TrimSpace(s.sanitizer.Sanitize(payload.Description))
	if description == "" {
		return dto.ActivityResponse{}, fmt.Errorf("description empty after sanitization")
	}

	activity := models.Activity{
		StudentID:   studentID,
		Title:       title,
		Description: description,
		Category:    payload.Category,
		Date:        payload.Date,
		Duration:    strings.TrimSpace(payload.Duration),
		Skills:      datatypes.NewJSONSlice(normalizeSkills(payload.Skills)),
		ProofURL:    strings.TrimSpace(payload.ProofURL),
		Points:      payload.Points,
		Status:      models.ActivityStatusPending,
	}

	if err := s.activities.Create(ctx, &activity); err != nil {
		return dto.ActivityResponse{}, err
	}

	s.invalidateTracker(ctx, studentID)
	s.logger.Info().Uint("activity_id", activity.ID).Uint("student_id", studentID).Msg("activity submitted")

	return dto.NewActivityResponse(activity), nil
}

func (s *activityService) Review(ctx context.Context, id uint, reviewer string, payload dto.ActivityReviewRequest) (dto.ActivityResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ActivityResponse{}, err
	}

	reviewer = strings.TrimSpace(reviewer)
	if reviewer == "" {
		return dto.ActivityResponse{}, fmt.Errorf("reviewer is required")
	}

	activity, err := s.activities.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ActivityResponse{}, ErrActivityNotFound
		}
		return dto.ActivityResponse{}, err
	}

	if !activity.IsPending() {
		return dto.ActivityResponse{}, ErrInvalidTransition
	}

	comments := strings.TrimSpace(s.sanitizer.Sanitize(payload.Comments))
	switch payload.Status {
	case models.ActivityStatusApproved:
		if comments == "" {
			comments = defaultApprovalComment
		}
	case models.ActivityStatusRejected:
		if comments == "" {
			return dto.ActivityResponse{}, ErrReviewCommentsRequired
		}
	}

	// All three reviewer fields change together in a single update, so a
	// reviewed activity is never observed half-written.
	reviewDate := s.now()
	activity.Status = payload.Status
	activity.ReviewedBy = &reviewer
	activity.ReviewDate = &reviewDate
	activity.ReviewComments = &comments

	if err := s.activities.Update(ctx, &activity); err != nil {
		return dto.ActivityResponse{}, err
	}

	s.invalidateTracker(ctx, activity.StudentID)
	observability.ActivityReviews().WithLabelValues(activity.Status).Inc()
	s.logger.Info().
		Uint("activity_id", activity.ID).
		Str("status", activity.Status).
		Str("reviewed_by", reviewer).
		Msg("activity reviewed")

	if s.notifier != nil {
		s.notifier.NotifyReview(ctx, activity)
	}

	return dto.NewActivityResponse(activity), nil
}

func (s *activityService) Get(ctx context.Context, id uint) (dto.ActivityResponse, error) {
	activity, err := s.activities.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ActivityResponse{}, ErrActivityNotFound
		}
		return dto.ActivityResponse{}, err
	}

	return dto.NewActivityResponse(activity), nil
}

func (s *activityService) ListFor(ctx context.Context, studentID uint) ([]dto.ActivityResponse, error) {
	activities, err := s.activities.List(ctx, repository.ActivityFilter{StudentID: &studentID})
	if err != nil {
		return nil, err
	}

	return dto.NewActivityResponseSlice(activities), nil
}

func (s *activityService) ListAll(ctx context.Context, filter dto.ActivityFilter) ([]dto.ActivityResponse, error) {
	if err := s.validator.Struct(filter); err != nil {
		return nil, err
	}

	activities, err := s.activities.List(ctx, repository.ActivityFilter{
		StudentID: filter.StudentID,
		Status:    filter.Status,
		Category:  filter.Category,
	})
	if err != nil {
		return nil, err
	}

	return dto.NewActivityResponseSlice(activities), nil
}

func (s *activityService) invalidateTracker(ctx context.Context, studentID uint) {
	if s.cache == nil {
		return
	}

	key := trackerCacheKey(studentID)
	if err := s.cache.Del(ctx, key, adminAnalyticsCacheKey).Err(); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("failed to invalidate tracker cache")
	}
}

func normalizeSkills(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	normalized := make([]string, 0, len(skills))
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		if _, dup := seen[skill]; dup {
			continue
		}
		seen[skill] = struct{}{}
		normalized = append(normalized, skill)
	}

	return normalized
}
