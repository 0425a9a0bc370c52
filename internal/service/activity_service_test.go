package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/campusfolio/ascent-api/internal/dto"
	"github.com/campusfolio/ascent-api/internal/models"
	"github.com/campusfolio/ascent-api/internal/repository"
)

func openTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Activity{}, &models.Portfolio{}, &models.Notification{}))
	return db
}

func submissionPayload(title string) dto.ActivityCreateRequest {
	return dto.ActivityCreateRequest{
		Title:       title,
		Description: "Completed a certification course.",
		Category:    models.CategoryAcademic,
		Date:        time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Duration:    "3 months",
		Skills:      []string{"React", "JavaScript", "React"},
		Points:      50,
	}
}

func TestActivityServiceCreateStartsPending(t *testing.T) {
	db := openTestDB(t, "activity_create")
	repo := repository.NewActivityRepository(db)
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewActivityService(repo, validate, nil, nil, zerolog.Nop())

	created, err := svc.Create(context.Background(), 1, submissionPayload("React.js Certification"))
	require.NoError(t, err)
	require.Equal(t, models.ActivityStatusPending, created.Status)
	require.Nil(t, created.ReviewedBy)
	require.Nil(t, created.ReviewDate)
	require.Nil(t, created.ReviewComments)
	require.Equal(t, []string{"React", "JavaScript"}, created.Skills)
}

func TestActivityServiceCreateSanitizesDescription(t *testing.T) {
	db := openTestDB(t, "activity_sanitize")
	repo := repository.NewActivityRepository(db)
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewActivityService(repo, validate, nil, nil, zerolog.Nop())

	payload := submissionPayload("Hackathon Winner")
	payload.Description = "<script>alert('x')</script>Won first place"

	created, err := svc.Create(context.Background(), 1, payload)
	require.NoError(t, err)
	require.NotContains(t, created.Description, "<script>")
	require.Contains(t, created.Description, "Won first place")
}

func TestActivityServiceCreateRejectsInvalidPayload(t *testing.T) {
	db := openTestDB(t, "activity_invalid")
	repo := repository.NewActivityRepository(db)
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewActivityService(repo, validate, nil, nil, zerolog.Nop())

	payload := submissionPayload("Bad Category")
	payload.Category = "sports"

	_, err := svc.Create(context.Background(), 1, payload)
	require.Error(t, err)

	payload = submissionPayload("Negative Points")
	payload.Points = -10

	_, err = svc.Create(context.Background(), 1, payload)
	require.Error(t, err)
}

func TestActivityServiceCreateRejectsBlankTitle(t *testing.T) {
	db := openTestDB(t, "activity_blank_title")
	repo := repository.NewActivityRepository(db)
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewActivityService(repo, validate, nil, nil, zerolog.Nop())

	payload := submissionPayload("   ")
	_, err := svc.Create(context.Background(), 1, payload)
	require.Error(t, err)

	// Nothing is persisted for the rejected submission.
	listed, err := svc.ListFor(context.Background(), 1)
	require.NoError(t, err)
	require.Empty(t, listed)
}

func TestActivityServiceReviewApprove(t *testing.T) {
	db := openTestDB(t, "activity_approve")
	repo := repository.NewActivityRepository(db)
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewActivityService(repo, validate, nil, nil, zerolog.Nop())

	created, err := svc.Create(context.Background(), 1, submissionPayload("React.js Certification"))
	require.NoError(t, err)

	reviewed, err := svc.Review(context.Background(), created.ID, "Dr. Sarah Wilson", dto.ActivityReviewRequest{
		Status: models.ActivityStatusApproved,
	})
	require.NoError(t, err)
	require.Equal(t, models.ActivityStatusApproved, reviewed.Status)
	require.NotNil(t, reviewed.ReviewedBy)
	require.Equal(t, "Dr. Sarah Wilson", *reviewed.ReviewedBy)
	require.NotNil(t, reviewed.ReviewDate)
	require.NotNil(t, reviewed.ReviewComments)
	require.Equal(t, "Activity approved.", *reviewed.ReviewComments)
}

func TestActivityServiceReviewRejectRequiresComments(t *testing.T) {
	db := openTestDB(t, "activity_reject")
	repo := repository.NewActivityRepository(db)
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewActivityService(repo, validate, nil, nil, zerolog.Nop())

	created, err := svc.Create(context.Background(), 1, submissionPayload("Hackathon Winner"))
	require.NoError(t, err)

	_, err = svc.Review(context.Background(), created.ID, "Dr. Sarah Wilson", dto.ActivityReviewRequest{
		Status: models.ActivityStatusRejected,
	})
	require.ErrorIs(t, err, ErrReviewCommentsRequired)

	// The failed rejection leaves the activity untouched.
	current, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, models.ActivityStatusPending, current.Status)
	require.Nil(t, current.ReviewedBy)

	reviewed, err := svc.Review(context.Background(), created.ID, "Dr. Sarah Wilson", dto.ActivityReviewRequest{
		Status:   models.ActivityStatusRejected,
		Comments: "Missing proof of completion.",
	})
	require.NoError(t, err)
	require.Equal(t, models.ActivityStatusRejected, reviewed.Status)
	require.Equal(t, "Missing proof of completion.", *reviewed.ReviewComments)
}

func TestActivityServiceReviewIsTerminal(t *testing.T) {
	db := openTestDB(t, "activity_terminal")
	repo := repository.NewActivityRepository(db)
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewActivityService(repo, validate, nil, nil, zerolog.Nop())

	created, err := svc.Create(context.Background(), 1, submissionPayload("React.js Certification"))
	require.NoError(t, err)

	approved, err := svc.Review(context.Background(), created.ID, "Dr. Sarah Wilson", dto.ActivityReviewRequest{
		Status: models.ActivityStatusApproved,
	})
	require.NoError(t, err)

	_, err = svc.Review(context.Background(), created.ID, "Michael Johnson", dto.ActivityReviewRequest{
		Status:   models.ActivityStatusRejected,
		Comments: "Changed my mind.",
	})
	require.ErrorIs(t, err, ErrInvalidTransition)

	// The original review outcome stands.
	current, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, models.ActivityStatusApproved, current.Status)
	require.Equal(t, *approved.ReviewedBy, *current.ReviewedBy)
}

func TestActivityServiceReviewNotFound(t *testing.T) {
	db := openTestDB(t, "activity_missing")
	repo := repository.NewActivityRepository(db)
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewActivityService(repo, validate, nil, nil, zerolog.Nop())

	_, err := svc.Review(context.Background(), 999, "Dr. Sarah Wilson", dto.ActivityReviewRequest{
		Status: models.ActivityStatusApproved,
	})
	require.ErrorIs(t, err, ErrActivityNotFound)
}

func TestActivityServiceListPreservesSubmissionOrder(t *testing.T) {
	db := openTestDB(t, "activity_order")
	repo := repository.NewActivityRepository(db)
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewActivityService(repo, validate, nil, nil, zerolog.Nop())

	titles := []string{"First", "Second", "Third"}
	for _, title := range titles {
		_, err := svc.Create(context.Background(), 1, submissionPayload(title))
		require.NoError(t, err)
	}

	listed, err := svc.ListFor(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	for i, title := range titles {
		require.Equal(t, title, listed[i].Title)
	}
}

type capturingNotifier struct {
	activities []models.Activity
}

func (c *capturingNotifier) NotifyReview(ctx context.Context, activity models.Activity) {
	c.activities = append(c.activities, activity)
}

func TestActivityServiceReviewNotifiesStudent(t *testing.T) {
	db := openTestDB(t, "activity_notify")
	repo := repository.NewActivityRepository(db)
	validate := validator.New(validator.WithRequiredStructEnabled())
	notifier := &capturingNotifier{}
	svc := NewActivityService(repo, validate, nil, notifier, zerolog.Nop())

	created, err := svc.Create(context.Background(), 7, submissionPayload("Hackathon Winner"))
	require.NoError(t, err)

	_, err = svc.Review(context.Background(), created.ID, "Dr. Sarah Wilson", dto.ActivityReviewRequest{
		Status: models.ActivityStatusApproved,
	})
	require.NoError(t, err)

	require.Len(t, notifier.activities, 1)
	require.Equal(t, uint(7), notifier.activities[0].StudentID)
	require.Equal(t, models.ActivityStatusApproved, notifier.activities[0].Status)
}
