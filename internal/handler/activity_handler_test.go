package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/campusfolio/ascent-api/internal/dto"
	"github.com/campusfolio/ascent-api/internal/handler"
	"github.com/campusfolio/ascent-api/internal/models"
	"github.com/campusfolio/ascent-api/internal/service"
)

type mockActivityService struct {
	created      dto.ActivityResponse
	createErr    error
	reviewed     dto.ActivityResponse
	reviewErr    error
	lastReviewer string
}

func (m *mockActivityService) Create(_ context.Context, studentID uint, payload dto.ActivityCreateRequest) (dto.ActivityResponse, error) {
	if m.createErr != nil {
		return dto.ActivityResponse{}, m.createErr
	}
	response := m.created
	response.StudentID = studentID
	response.Title = payload.Title
	return response, nil
}

func (m *mockActivityService) Review(_ context.Context, id uint, reviewer string, _ dto.ActivityReviewRequest) (dto.ActivityResponse, error) {
	m.lastReviewer = reviewer
	if m.reviewErr != nil {
		return dto.ActivityResponse{}, m.reviewErr
	}
	response := m.reviewed
	response.ID = id
	return response, nil
}

func (m *mockActivityService) Get(_ context.Context, id uint) (dto.ActivityResponse, error) {
	return dto.ActivityResponse{ID: id}, nil
}

func (m *mockActivityService) ListFor(_ context.Context, studentID uint) ([]dto.ActivityResponse, error) {
	return []dto.ActivityResponse{{ID: 1, StudentID: studentID}}, nil
}

func (m *mockActivityService) ListAll(_ context.Context, _ dto.ActivityFilter) ([]dto.ActivityResponse, error) {
	return []dto.ActivityResponse{{ID: 1}, {ID: 2}}, nil
}

func asUser(id uint, role, name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", id)
		c.Locals("user_role", role)
		c.Locals("user_name", name)
		return c.Next()
	}
}

func newActivityApp(svc service.ActivityService, identity fiber.Handler) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/v1/activities")
	if identity != nil {
		group.Use(identity)
	}
	handler.NewActivityHandler(svc, zerolog.New(io.Discard)).Register(group)
	return app
}

func jsonRequest(t *testing.T, method, target string, payload interface{}) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	return req
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, json.Unmarshal(body, target))
}

func TestActivityHandler_CreateSuccess(t *testing.T) {
	svc := &mockActivityService{created: dto.ActivityResponse{ID: 1, Status: models.ActivityStatusPending}}
	app := newActivityApp(svc, asUser(7, models.RoleStudent, "John Smith"))

	req := jsonRequest(t, http.MethodPost, "/api/v1/activities", dto.ActivityCreateRequest{
		Title:       "React.js Certification",
		Description: "Completed a certification course.",
		Category:    models.CategoryAcademic,
		Date:        time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Points:      50,
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body struct {
		Success bool                 `json:"success"`
		Data    dto.ActivityResponse `json:"data"`
		Message string               `json:"message"`
	}
	decodeResponse(t, resp, &body)
	require.True(t, body.Success)
	require.Equal(t, "activity submitted", body.Message)
	require.Equal(t, uint(7), body.Data.StudentID)
	require.Equal(t, models.ActivityStatusPending, body.Data.Status)
}

func TestActivityHandler_CreateForbiddenForFaculty(t *testing.T) {
	svc := &mockActivityService{}
	app := newActivityApp(svc, asUser(2, models.RoleFaculty, "Dr. Sarah Wilson"))

	req := jsonRequest(t, http.MethodPost, "/api/v1/activities", dto.ActivityCreateRequest{Title: "X"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestActivityHandler_ReviewPassesReviewerName(t *testing.T) {
	svc := &mockActivityService{reviewed: dto.ActivityResponse{Status: models.ActivityStatusApproved}}
	app := newActivityApp(svc, asUser(2, models.RoleFaculty, "Dr. Sarah Wilson"))

	req := jsonRequest(t, http.MethodPost, "/api/v1/activities/5/review", dto.ActivityReviewRequest{
		Status: models.ActivityStatusApproved,
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "Dr. Sarah Wilson", svc.lastReviewer)
}

func TestActivityHandler_ReviewConflictWhenAlreadyReviewed(t *testing.T) {
	svc := &mockActivityService{reviewErr: service.ErrInvalidTransition}
	app := newActivityApp(svc, asUser(2, models.RoleFaculty, "Dr. Sarah Wilson"))

	req := jsonRequest(t, http.MethodPost, "/api/v1/activities/5/review", dto.ActivityReviewRequest{
		Status:   models.ActivityStatusRejected,
		Comments: "Too late.",
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	decodeResponse(t, resp, &body)
	require.False(t, body.Success)
	require.Equal(t, "activity has already been reviewed", body.Message)
}

func TestActivityHandler_ReviewMissingComments(t *testing.T) {
	svc := &mockActivityService{reviewErr: service.ErrReviewCommentsRequired}
	app := newActivityApp(svc, asUser(2, models.RoleFaculty, "Dr. Sarah Wilson"))

	req := jsonRequest(t, http.MethodPost, "/api/v1/activities/5/review", dto.ActivityReviewRequest{
		Status: models.ActivityStatusRejected,
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestActivityHandler_GetInvalidID(t *testing.T) {
	svc := &mockActivityService{}
	app := newActivityApp(svc, asUser(1, models.RoleStudent, "John Smith"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/activities/oops", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestActivityHandler_ListRejectsMalformedStudentFilter(t *testing.T) {
	svc := &mockActivityService{}
	app := newActivityApp(svc, asUser(2, models.RoleFaculty, "Dr. Sarah Wilson"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/activities?student_id=abc", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	decodeResponse(t, resp, &body)
	require.False(t, body.Success)
	require.Equal(t, "invalid student_id", body.Message)
}

func TestActivityHandler_ListMine(t *testing.T) {
	svc := &mockActivityService{}
	app := newActivityApp(svc, asUser(7, models.RoleStudent, "John Smith"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/activities/mine", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data []dto.ActivityResponse `json:"data"`
	}
	decodeResponse(t, resp, &body)
	require.Len(t, body.Data, 1)
	require.Equal(t, uint(7), body.Data[0].StudentID)
}
