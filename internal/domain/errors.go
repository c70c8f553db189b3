package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInvalidLicense     = errors.New("código de admisión inválido")
	ErrLicenseUsed        = errors.New("la licencia ya fue utilizada o revocada")
	ErrCorruptData        = errors.New("documento corrupto o mal formado")
	ErrRemoteUnavailable  = errors.New("almacén remoto no disponible")
	ErrNotLoaded          = errors.New("datos aún no cargados para la sesión")
	ErrLocalOnly          = errors.New("operación sin implementación segura en modo local")
)
