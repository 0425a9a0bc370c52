package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campusfolio/ascent-api/internal/middleware"
	"github.com/campusfolio/ascent-api/internal/models"
	"github.com/campusfolio/ascent-api/internal/service"
	"github.com/campusfolio/ascent-api/internal/utils"
)

// AchievementHandler serves the per-student achievement tracker.
type AchievementHandler struct {
	service service.AchievementService
	logger  zerolog.Logger
}

// NewAchievementHandler builds an achievement handler instance.
func NewAchievementHandler(service service.AchievementService, logger zerolog.Logger) *AchievementHandler {
	return &AchievementHandler{
		service: service,
		logger:  logger.With().Str("component", "achievement_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *AchievementHandler) Register(router fiber.Router) {
	router.Get("", middleware.RequireRole(models.RoleStudent), h.mine)
	router.Get("/:studentID", middleware.RequireRole(models.RoleFaculty, models.RoleAdmin, models.RoleSuperAdmin), h.forStudent)
}

func (h *AchievementHandler) mine(c *fiber.Ctx) error {
	studentID, ok := middleware.CurrentUserID(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	return h.respond(c, studentID)
}

func (h *AchievementHandler) forStudent(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "studentID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	return h.respond(c, studentID)
}

func (h *AchievementHandler) respond(c *fiber.Ctx, studentID uint) error {
	tracker, err := h.service.GetTracker(c.Context(), studentID)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to build achievement tracker")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "achievement tracker retrieved", tracker)
}
