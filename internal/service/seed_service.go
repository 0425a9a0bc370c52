package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/campusfolio/ascent-api/internal/models"
	"github.com/campusfolio/ascent-api/internal/repository"
)

var (
	// ErrSeedDisabled indicates the seeding tools are disabled by configuration.
	ErrSeedDisabled = errors.New("seeding is disabled")
	// ErrSeedUnauthorized indicates the provided token is invalid.
	ErrSeedUnauthorized = errors.New("invalid seed token")
)

// SeedService loads the demo identity registry and sample activities.
type SeedService interface {
	SeedDemoData(ctx context.Context, token string) (int64, error)
}

type seedService struct {
	users      repository.UserRepository
	activities repository.ActivityRepository
	enabled    bool
	token      string
	logger     zerolog.Logger
}

// NewSeedService constructs a seeding service.
func NewSeedService(users repository.UserRepository, activities repository.ActivityRepository, enabled bool, token string, logger zerolog.Logger) SeedService {
	return &seedService{
		users:      users,
		activities: activities,
		enabled:    enabled,
		token:      token,
		logger:     logger.With().Str("component", "seed_service").Logger(),
	}
}

func (s *seedService) SeedDemoData(ctx context.Context, token string) (int64, error) {
	if !s.enabled {
		return 0, ErrSeedDisabled
	}
	if !s.validateToken(token) {
		return 0, ErrSeedUnauthorized
	}

	affected, err := s.users.UpsertBatch(ctx, demoUsers())
	if err != nil {
		return 0, err
	}

	existing, err := s.activities.List(ctx, repository.ActivityFilter{})
	if err != nil {
		return 0, err
	}

	if len(existing) == 0 {
		for _, activity := range demoActivities() {
			activity := activity
			if err := s.activities.Create(ctx, &activity); err != nil {
				return 0, err
			}
			affected++
		}
	}

	s.logger.Info().Int64("affected", affected).Msg("demo data seeded")
	return affected, nil
}

func (s *seedService) validateToken(token string) bool {
	expected := strings.TrimSpace(s.token)
	if expected == "" {
		return false
	}
	provided := strings.TrimSpace(token)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(provided)) == 1
}

func demoUsers() []models.User {
	return []models.User{
		{
			Name:       "John Smith",
			Email:      "john.student@university.edu",
			Role:       models.RoleStudent,
			Department: "Computer Science",
			Batch:      "2021-2025",
			RollNumber: "CS21001",
		},
		{
			Name:       "Dr. Sarah Wilson",
			Email:      "sarah.faculty@university.edu",
			Role:       models.RoleFaculty,
			Department: "Computer Science",
		},
		{
			Name:       "Michael Johnson",
			Email:      "michael.admin@university.edu",
			Role:       models.RoleAdmin,
			Department: "Administration",
		},
		{
			Name:       "Emily Davis",
			Email:      "emily.student@university.edu",
			Role:       models.RoleStudent,
			Department: "Electrical Engineering",
			Batch:      "2020-2024",
			RollNumber: "EE20015",
		},
	}
}

func demoActivities() []models.Activity {
	reviewer := "Dr. Sarah Wilson"
	certReview := time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC)
	certComment := "Excellent certification from a reputable platform."
	hackReview := time.Date(2024, 2, 22, 0, 0, 0, 0, time.UTC)
	hackComment := "Outstanding achievement demonstrating technical and leadership skills."

	return []models.Activity{
		{
			StudentID:      1,
			Title:          "React.js Certification",
			Description:    "Completed comprehensive React.js course with hands-on projects",
			Category:       models.CategoryAcademic,
			Date:           time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			Duration:       "40 hours",
			Skills:         datatypes.NewJSONSlice([]string{"React", "JavaScript", "Web Development"}),
			Points:         50,
			Status:         models.ActivityStatusApproved,
			ReviewedBy:     &reviewer,
			ReviewDate:     &certReview,
			ReviewComments: &certComment,
		},
		{
			StudentID:      1,
			Title:          "Hackathon Winner",
			Description:    "Won first place in university-wide hackathon with innovative healthcare app",
			Category:       models.CategoryExtracurricular,
			Date:           time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC),
			Duration:       "48 hours",
			Skills:         datatypes.NewJSONSlice([]string{"Problem Solving", "Team Leadership", "Mobile Development"}),
			Points:         100,
			Status:         models.ActivityStatusApproved,
			ReviewedBy:     &reviewer,
			ReviewDate:     &hackReview,
			ReviewComments: &hackComment,
		},
		{
			StudentID:   1,
			Title:       "Software Engineering Internship",
			Description: "Full-stack development internship at TechCorp Solutions",
			Category:    models.CategoryProfessional,
			Date:        time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			Duration:    "12 weeks",
			Skills:      datatypes.NewJSONSlice([]string{"Full-Stack Development", "Database Design", "Agile Methodology"}),
			Points:      75,
			Status:      models.ActivityStatusPending,
		},
	}
}
