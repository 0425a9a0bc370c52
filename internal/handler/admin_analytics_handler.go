package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campusfolio/ascent-api/internal/service"
	"github.com/campusfolio/ascent-api/internal/utils"
)

// AdminAnalyticsHandler serves portal-wide aggregate reports.
type AdminAnalyticsHandler struct {
	service service.AdminAnalyticsService
	logger  zerolog.Logger
}

// NewAdminAnalyticsHandler builds an admin analytics handler instance.
func NewAdminAnalyticsHandler(service service.AdminAnalyticsService, logger zerolog.Logger) *AdminAnalyticsHandler {
	return &AdminAnalyticsHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_analytics_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *AdminAnalyticsHandler) Register(router fiber.Router) {
	router.Get("/analytics", h.summary)
}

func (h *AdminAnalyticsHandler) summary(c *fiber.Ctx) error {
	summary, err := h.service.GetSummary(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to aggregate analytics")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "analytics retrieved", summary)
}
