package dto

import "time"

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest entrada para registro. AdmissionCode es la clave maestra o
// una licencia disponible; sin código válido el registro se rechaza.
type RegisterRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
	StoreName       string `json:"storeName" validate:"required"`
	AdmissionCode   string `json:"admissionCode" validate:"required"`
}

// UserResponse salida de una cuenta (sin hash de contraseña).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	StoreName string    `json:"storeName"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// SessionResponse salida de login/registro: token JWT, cuenta y modo de sincronización.
type SessionResponse struct {
	Token    string       `json:"token"`
	User     UserResponse `json:"user"`
	SyncMode string       `json:"syncMode"` // "local" | "remote"
}

// ResetPasswordRequest entrada para recuperación de contraseña.
type ResetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}
