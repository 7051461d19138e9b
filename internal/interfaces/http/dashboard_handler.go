package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/deeptec/tenders-api/internal/application/analytics"
)

// DashboardHandler maneja las tarjetas del dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Stats godoc
// @Summary      Estadísticas de proyectos
// @Description  Conteo por estado, promedio de completitud y proyectos con las tres partes hechas.
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ProjectStatsDTO
// @Router       /api/projects/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.uc.GetProjectStats(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(stats)
}
