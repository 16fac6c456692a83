package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/quotation-api/internal/application/dto"
)

// HealthHandler responde el chequeo de vida del servicio.
type HealthHandler struct {
	service string
}

// NewHealthHandler construye el handler.
func NewHealthHandler(service string) *HealthHandler {
	return &HealthHandler{service: service}
}

// Check godoc
// @Summary      Estado del servicio
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Router       /api/health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{Status: "ok", Service: h.service})
}
