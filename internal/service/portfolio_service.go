package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/campusfolio/ascent-api/internal/dto"
	"github.com/campusfolio/ascent-api/internal/insights"
	"github.com/campusfolio/ascent-api/internal/models"
	"github.com/campusfolio/ascent-api/internal/repository"
)

// PortfolioService generates shareable read-only snapshots of a student's
// approved activities. Generation is append-only: repeated calls for the
// same student and template produce distinct portfolios.
type PortfolioService interface {
	Generate(ctx context.Context, studentID uint, payload dto.PortfolioGenerateRequest) (dto.PortfolioResponse, error)
	ListFor(ctx context.Context, studentID uint) ([]dto.PortfolioResponse, error)
}

type portfolioService struct {
	portfolios repository.PortfolioRepository
	activities repository.ActivityRepository
	validator  *validator.Validate
	baseURL    string
	logger     zerolog.Logger
	now        func() time.Time
}

// NewPortfolioService constructs a PortfolioService instance.
func NewPortfolioService(portfolios repository.PortfolioRepository, activities repository.ActivityRepository, validate *validator.Validate, baseURL string, logger zerolog.Logger) PortfolioService {
	return &portfolioService{
		portfolios: portfolios,
		activities: activities,
		validator:  validate,
		baseURL:    baseURL,
		logger:     logger.With().Str("component", "portfolio_service").Logger(),
		now:        time.Now,
	}
}

func (s *portfolioService) Generate(ctx context.Context, studentID uint, payload dto.PortfolioGenerateRequest) (dto.PortfolioResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.PortfolioResponse{}, err
	}

	if studentID == 0 {
		return dto.PortfolioResponse{}, fmt.Errorf("student id is required")
	}

	// An empty approved list is valid; the portfolio simply carries zero stats.
	stats, err := s.approvedStats(ctx, studentID)
	if err != nil {
		return dto.PortfolioResponse{}, err
	}

	portfolio := models.Portfolio{
		StudentID:   studentID,
		Template:    payload.Template,
		IsPublic:    true,
		ShareLink:   fmt.Sprintf("%s/%s", s.baseURL, uuid.NewString()),
		GeneratedAt: s.now(),
	}

	if err := s.portfolios.Create(ctx, &portfolio); err != nil {
		return dto.PortfolioResponse{}, err
	}

	s.logger.Info().
		Uint("portfolio_id", portfolio.ID).
		Uint("student_id", studentID).
		Str("template", portfolio.Template).
		Msg("portfolio generated")

	return dto.NewPortfolioResponse(portfolio, stats), nil
}

func (s *portfolioService) ListFor(ctx context.Context, studentID uint) ([]dto.PortfolioResponse, error) {
	portfolios, err := s.portfolios.ListForStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	stats, err := s.approvedStats(ctx, studentID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PortfolioResponse, 0, len(portfolios))
	for _, portfolio := range portfolios {
		responses = append(responses, dto.NewPortfolioResponse(portfolio, stats))
	}

	return responses, nil
}

func (s *portfolioService) approvedStats(ctx context.Context, studentID uint) (dto.PortfolioStats, error) {
	status := models.ActivityStatusApproved
	approved, err := s.activities.List(ctx, repository.ActivityFilter{
		StudentID: &studentID,
		Status:    &status,
	})
	if err != nil {
		return dto.PortfolioStats{}, err
	}

	return dto.PortfolioStats{
		ApprovedActivities: len(approved),
		TotalPoints:        insights.TotalPoints(approved),
		UniqueSkills:       insights.UniqueSkills(approved),
	}, nil
}
