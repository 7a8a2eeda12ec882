package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lachilena/empanaderia-api/internal/application/dto"
	"github.com/lachilena/empanaderia-api/internal/application/usecase"
)

// DashboardHandler expone el resumen de ventas para administración.
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler del tablero.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen de ventas (admin)
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "ventana en días"  default(30)
// @Success      200   {object}  dto.DashboardResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /admin/dashboard [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	days := c.QueryInt("days", 30)
	out, err := h.uc.Summary(c.Context(), days)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
