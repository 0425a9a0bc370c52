package service

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/campusfolio/ascent-api/internal/dto"
	"github.com/campusfolio/ascent-api/internal/repository"
)

// sessionStorageKey is the constant key holding the serialized current
// identity. It is written on successful authentication, cleared on logout
// and re-read once at process start. The blob is trusted on read; that is a
// deliberate demo-scope simplification.
const sessionStorageKey = "session:current_user"

const tokenLifetime = 24 * time.Hour

// AuthService implements the demo-mode session store. Authentication failure
// is a boolean signal by design: callers cannot distinguish an unknown email
// from a wrong password.
type AuthService interface {
	Authenticate(ctx context.Context, email, password string) (dto.LoginResponse, bool)
	Current(ctx context.Context) (dto.IdentityResponse, bool)
	Logout(ctx context.Context) error
}

type authService struct {
	users        repository.UserRepository
	sessions     *redis.Client
	jwtSecret    string
	demoPassword string
	logger       zerolog.Logger
	now          func() time.Time
}

// NewAuthService constructs an AuthService instance. The session client is
// optional; without it identities are not persisted across restarts.
func NewAuthService(users repository.UserRepository, sessions *redis.Client, jwtSecret, demoPassword string, logger zerolog.Logger) AuthService {
	return &authService{
		users:        users,
		sessions:     sessions,
		jwtSecret:    jwtSecret,
		demoPassword: demoPassword,
		logger:       logger.With().Str("component", "auth_service").Logger(),
		now:          time.Now,
	}
}

func (s *authService) Authenticate(ctx context.Context, email, password string) (dto.LoginResponse, bool) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return dto.LoginResponse{}, false
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// Unknown email and wrong password are indistinguishable to callers.
		return dto.LoginResponse{}, false
	}

	if subtle.ConstantTimeCompare([]byte(password), []byte(s.demoPassword)) != 1 {
		return dto.LoginResponse{}, false
	}

	identity := dto.NewIdentityResponse(user)

	token, err := s.issueToken(identity)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to issue token")
		return dto.LoginResponse{}, false
	}

	s.persistIdentity(ctx, identity)
	s.logger.Info().Uint("user_id", user.ID).Str("role", user.Role).Msg("user authenticated")

	return dto.LoginResponse{Token: token, User: identity}, true
}

func (s *authService) Current(ctx context.Context) (dto.IdentityResponse, bool) {
	if s.sessions == nil {
		return dto.IdentityResponse{}, false
	}

	payload, err := s.sessions.Get(ctx, sessionStorageKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Msg("failed to read session store")
		}
		return dto.IdentityResponse{}, false
	}

	var identity dto.IdentityResponse
	if err := json.Unmarshal([]byte(payload), &identity); err != nil {
		s.logger.Warn().Err(err).Msg("discarding malformed session blob")
		return dto.IdentityResponse{}, false
	}

	return identity, true
}

func (s *authService) Logout(ctx context.Context) error {
	if s.sessions == nil {
		return nil
	}

	if err := s.sessions.Del(ctx, sessionStorageKey).Err(); err != nil {
		return err
	}

	s.logger.Info().Msg("session cleared")
	return nil
}

func (s *authService) issueToken(identity dto.IdentityResponse) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   identity.ID,
		"name":  identity.Name,
		"email": identity.Email,
		"role":  identity.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(tokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) persistIdentity(ctx context.Context, identity dto.IdentityResponse) {
	if s.sessions == nil {
		return
	}

	payload, err := json.Marshal(identity)
	if err != nil {
		return
	}

	if err := s.sessions.Set(ctx, sessionStorageKey, payload, 0).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to persist session identity")
	}
}
