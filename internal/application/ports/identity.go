package ports

import (
	"context"

	"github.com/jhoicas/autocars-api/internal/domain/entity"
)

// IdentityProvider es el puerto del servicio de identidad remoto.
//
// Vocabulario de errores del contrato (errores de domain):
//   - ErrInvalidCredentials  credencial inválida (respuesta definitiva)
//   - ErrEmailAlreadyExists  email en uso al crear cuenta
//   - ErrRemoteUnavailable   fallo de transporte; el login puede degradar a local
type IdentityProvider interface {
	SignIn(ctx context.Context, email, secret string) (*entity.User, error)
	CreateAccount(ctx context.Context, user *entity.User, secret string) error
	SendPasswordReset(ctx context.Context, email string) error
}

// CredentialCache es la lista local de cuentas usada como respaldo de login
// cuando el servicio remoto no responde, y como única fuente en modo local.
type CredentialCache interface {
	FindByEmail(email string) (*entity.User, error)
	Append(user *entity.User) error
}
