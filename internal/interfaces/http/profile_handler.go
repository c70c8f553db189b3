package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/autocars-api/internal/application/dto"
	syncapp "github.com/jhoicas/autocars-api/internal/application/sync"
	"github.com/jhoicas/autocars-api/internal/domain/entity"
)

var maxMargin = decimal.NewFromInt(100)

// ProfileHandler lectura y edición del perfil de la tienda.
type ProfileHandler struct {
	sessions *syncapp.Manager
}

// NewProfileHandler construye el handler del perfil.
func NewProfileHandler(sessions *syncapp.Manager) *ProfileHandler {
	return &ProfileHandler{sessions: sessions}
}

// Get godoc
// @Summary      Perfil de la tienda
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.StoreProfile
// @Router       /api/profile [get]
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	ds, err := snapshotFor(c, h.sessions)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ds.StoreProfile)
}

// Update godoc
// @Summary      Actualizar perfil de la tienda
// @Description  Reemplaza el perfil completo. targetMargin debe estar en 0–100.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  entity.StoreProfile  true  "perfil"
// @Success      200   {object}  entity.StoreProfile
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/profile [put]
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	var in entity.StoreProfile
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.TargetMargin.Sign() < 0 || in.TargetMargin.GreaterThan(maxMargin) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "targetMargin debe estar entre 0 y 100"})
	}
	router, err := h.sessions.Router(GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	if err := router.UpdateStoreProfile(c.Context(), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(in)
}
