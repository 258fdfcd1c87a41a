package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/almazgeobur/etp-api/internal/application/usecase"
)

// DashboardHandler handles the role-dependent dashboard endpoints.
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler builds the handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetStats godoc
// @Summary      Dashboard counters for the caller's role
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardStatsResponse
// @Router       /api/v1/dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	out, err := h.uc.GetStats(c.Context(), GetUserID(c), GetRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetRecentActivity godoc
// @Summary      Recent activity feed for the caller's role
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RecentActivityResponse
// @Router       /api/v1/dashboard/recent-activity [get]
func (h *DashboardHandler) GetRecentActivity(c *fiber.Ctx) error {
	out, err := h.uc.GetRecentActivity(c.Context(), GetUserID(c), GetRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
