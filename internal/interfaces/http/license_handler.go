package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/autocars-api/internal/application/dto"
	"github.com/jhoicas/autocars-api/internal/application/usecase"
)

// LicenseHandler administración de claves de admisión (solo rol admin).
type LicenseHandler struct {
	uc *usecase.LicenseUseCase
}

// NewLicenseHandler construye el handler de licencias.
func NewLicenseHandler(uc *usecase.LicenseUseCase) *LicenseHandler {
	return &LicenseHandler{uc: uc}
}

// Generate godoc
// @Summary      Emitir licencia
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  entity.License
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/licenses [post]
func (h *LicenseHandler) Generate(c *fiber.Ctx) error {
	lic, err := h.uc.Generate(c.Context(), GetEmail(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(lic)
}

// List godoc
// @Summary      Listar licencias
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.LicenseListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/licenses [get]
func (h *LicenseHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Revoke godoc
// @Summary      Revocar licencia
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        key  path  string  true  "clave de la licencia"
// @Success      200  {object}  dto.StatusResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/licenses/{key} [delete]
func (h *LicenseHandler) Revoke(c *fiber.Ctx) error {
	if err := h.uc.Revoke(c.Context(), c.Params("key")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.StatusResponse{OK: true, Message: "licencia revocada"})
}
