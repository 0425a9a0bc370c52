package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/campusfolio/ascent-api/internal/dto"
	"github.com/campusfolio/ascent-api/internal/models"
	"github.com/campusfolio/ascent-api/internal/repository"
)

func newNotificationFixture(t *testing.T, name string) NotificationService {
	t.Helper()
	db := openTestDB(t, name)
	repo := repository.NewNotificationRepository(db)
	validate := validator.New(validator.WithRequiredStructEnabled())
	return NewNotificationService(repo, nil, nil, validate, zerolog.Nop())
}

func TestNotificationServicePublishAndList(t *testing.T) {
	svc := newNotificationFixture(t, "notification_publish")

	ctx := context.Background()
	published, err := svc.Publish(ctx, dto.NotificationCreateRequest{
		UserID:  1,
		Type:    models.NotificationTypeActivityApproved,
		Message: "Your activity \"React.js Certification\" was approved for 50 points.",
	})
	require.NoError(t, err)
	require.False(t, published.Read)

	listed, err := svc.List(ctx, 1, 10, 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, published.ID, listed[0].ID)

	other, err := svc.List(ctx, 2, 10, 0)
	require.NoError(t, err)
	require.Empty(t, other)
}

func TestNotificationServiceMarkReadScopedToOwner(t *testing.T) {
	svc := newNotificationFixture(t, "notification_markread")

	ctx := context.Background()
	published, err := svc.Publish(ctx, dto.NotificationCreateRequest{
		UserID:  1,
		Type:    models.NotificationTypeActivityRejected,
		Message: "Your activity \"Internship\" was rejected.",
	})
	require.NoError(t, err)

	_, err = svc.MarkRead(ctx, published.ID, 2)
	require.ErrorIs(t, err, ErrNotificationNotFound)

	updated, err := svc.MarkRead(ctx, published.ID, 1)
	require.NoError(t, err)
	require.True(t, updated.Read)
}

func TestNotificationServiceSubscribeReceivesBroadcast(t *testing.T) {
	svc := newNotificationFixture(t, "notification_subscribe")

	channel, cleanup := svc.Subscribe(1)
	defer cleanup()

	ctx := context.Background()
	published, err := svc.Publish(ctx, dto.NotificationCreateRequest{
		UserID:  1,
		Type:    models.NotificationTypeActivityApproved,
		Message: "Your activity \"Hackathon Winner\" was approved for 100 points.",
	})
	require.NoError(t, err)

	select {
	case received := <-channel:
		require.Equal(t, published.ID, received.ID)
		require.Equal(t, published.Message, received.Message)
	case <-time.After(time.Second):
		t.Fatal("expected a streamed notification")
	}
}

func TestNotificationServiceNotifyReviewBuildsMessage(t *testing.T) {
	svc := newNotificationFixture(t, "notification_review")

	ctx := context.Background()
	svc.NotifyReview(ctx, models.Activity{
		ID: 1, StudentID: 7, Title: "React.js Certification",
		Points: 50, Status: models.ActivityStatusApproved,
	})
	svc.NotifyReview(ctx, models.Activity{
		ID: 2, StudentID: 7, Title: "Internship",
		Points: 75, Status: models.ActivityStatusRejected,
	})
	// Pending outcomes never notify.
	svc.NotifyReview(ctx, models.Activity{
		ID: 3, StudentID: 7, Title: "Workshop",
		Status: models.ActivityStatusPending,
	})

	listed, err := svc.List(ctx, 7, 10, 0)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	// Listing is newest first.
	require.Equal(t, models.NotificationTypeActivityRejected, listed[0].Type)
	require.Contains(t, listed[0].Message, "was rejected")
	require.Equal(t, models.NotificationTypeActivityApproved, listed[1].Type)
	require.Contains(t, listed[1].Message, "approved for 50 points")
}
