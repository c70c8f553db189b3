package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/autocars-api/internal/application/dto"
	"github.com/jhoicas/autocars-api/internal/application/usecase"
)

// AIHandler asistente de descripciones de venta.
type AIHandler struct {
	uc *usecase.AIUseCase
}

// NewAIHandler construye el handler del asistente.
func NewAIHandler(uc *usecase.AIUseCase) *AIHandler {
	return &AIHandler{uc: uc}
}

// Describe godoc
// @Summary      Generar descripción de venta
// @Description  Siempre responde 200: si el modelo falla, la descripción es el texto de reintento.
// @Tags         ai
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.AIDescriptionRequest  true  "ficha del vehículo"
// @Success      200   {object}  dto.AIDescriptionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/ai/vehicle-description [post]
func (h *AIHandler) Describe(c *fiber.Ctx) error {
	var in dto.AIDescriptionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Make == "" || in.Model == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "make y model son requeridos"})
	}
	return c.JSON(h.uc.GenerateDescription(c.Context(), in))
}
