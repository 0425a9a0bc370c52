package handler_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/campusfolio/ascent-api/internal/dto"
	"github.com/campusfolio/ascent-api/internal/handler"
	"github.com/campusfolio/ascent-api/internal/models"
)

type mockAuthService struct {
	response  dto.LoginResponse
	ok        bool
	identity  dto.IdentityResponse
	hasActive bool
	loggedOut bool
}

func (m *mockAuthService) Authenticate(_ context.Context, _, _ string) (dto.LoginResponse, bool) {
	return m.response, m.ok
}

func (m *mockAuthService) Current(_ context.Context) (dto.IdentityResponse, bool) {
	return m.identity, m.hasActive
}

func (m *mockAuthService) Logout(_ context.Context) error {
	m.loggedOut = true
	return nil
}

func newAuthApp(svc *mockAuthService) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/v1/auth")
	authHandler := handler.NewAuthHandler(svc, validator.New(validator.WithRequiredStructEnabled()), zerolog.New(io.Discard))
	authHandler.Register(group)
	authHandler.RegisterProtected(group)
	return app
}

func TestAuthHandler_LoginSuccess(t *testing.T) {
	svc := &mockAuthService{
		ok: true,
		response: dto.LoginResponse{
			Token: "signed-token",
			User:  dto.IdentityResponse{ID: 1, Name: "John Smith", Role: models.RoleStudent},
		},
	}
	app := newAuthApp(svc)

	req := jsonRequest(t, http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{
		Email:    "john.student@university.edu",
		Password: "demo123",
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Success bool              `json:"success"`
		Data    dto.LoginResponse `json:"data"`
	}
	decodeResponse(t, resp, &body)
	require.True(t, body.Success)
	require.Equal(t, "signed-token", body.Data.Token)
	require.Equal(t, "John Smith", body.Data.User.Name)
}

func TestAuthHandler_LoginFailureIsGeneric(t *testing.T) {
	app := newAuthApp(&mockAuthService{ok: false})

	req := jsonRequest(t, http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{
		Email:    "nobody@university.edu",
		Password: "wrong",
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	decodeResponse(t, resp, &body)
	require.False(t, body.Success)
	require.Equal(t, "invalid credentials", body.Message)
}

func TestAuthHandler_LoginValidatesBody(t *testing.T) {
	app := newAuthApp(&mockAuthService{ok: true})

	req := jsonRequest(t, http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Email: "not-an-email"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAuthHandler_MeWithoutSession(t *testing.T) {
	app := newAuthApp(&mockAuthService{hasActive: false})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthHandler_Logout(t *testing.T) {
	svc := &mockAuthService{}
	app := newAuthApp(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.True(t, svc.loggedOut)
}
