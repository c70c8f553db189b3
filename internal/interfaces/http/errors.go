package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/autocars-api/internal/application/dto"
	"github.com/jhoicas/autocars-api/internal/domain"
)

// respondError traduce los errores sentinela de domain a respuestas HTTP.
// Los handlers solo distinguen casos con mensaje propio; el resto pasa por acá.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrCorruptData):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "CORRUPT_BACKUP", Message: "documento de respaldo ilegible; estado intacto"})
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "autorización requerida o expirada"})
	case errors.Is(err, domain.ErrInvalidLicense):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "INVALID_LICENSE", Message: "código de admisión inválido"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "operación no permitida"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya está registrado"})
	case errors.Is(err, domain.ErrLicenseUsed):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "LICENSE_USED", Message: "la licencia ya fue consumida o revocada"})
	case errors.Is(err, domain.ErrNotLoaded):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SESSION_NOT_LOADED", Message: "sesión de datos no establecida; iniciar sesión primero"})
	case errors.Is(err, domain.ErrLocalOnly):
		return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{Code: "LOCAL_ONLY", Message: "operación no disponible en modo local"})
	case errors.Is(err, domain.ErrRemoteUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "REMOTE_UNAVAILABLE", Message: "almacén remoto sin respuesta"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
