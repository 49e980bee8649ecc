package handler

import (
	"exam-byte/internal/dto"
	"exam-byte/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UserHandler serves the caller's own progress views.
type UserHandler struct {
	stats      service.StatisticsService
	difficulty service.DifficultyService
	quota      service.QuotaService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(stats service.StatisticsService, difficulty service.DifficultyService, quota service.QuotaService) *UserHandler {
	return &UserHandler{stats: stats, difficulty: difficulty, quota: quota}
}

// GetStatistics godoc
// @Summary Get performance statistics
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.StatisticsResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /users/me/statistics [get]
func (h *UserHandler) GetStatistics(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	stats, err := h.stats.GetStatistics(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewStatisticsResponse(stats))
}

// GetDifficulty godoc
// @Summary Get adaptive difficulty
// @Description Recommended difficulty of a student
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.DifficultyResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /users/me/difficulty [get]
func (h *UserHandler) GetDifficulty(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	state, err := h.difficulty.Get(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewDifficultyResponse(state))
}

// GetQuota godoc
// @Summary Get quota usage
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.QuotaResponse
// @Router /users/me/quota [get]
func (h *UserHandler) GetQuota(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	quota, err := h.quota.GetQuota(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuotaResponse(quota))
}
