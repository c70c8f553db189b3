package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/autocars-api/internal/application/ports"
	"github.com/jhoicas/autocars-api/internal/domain"
	"github.com/jhoicas/autocars-api/internal/domain/entity"
)

var _ ports.IdentityProvider = (*IdentityRepo)(nil)

// IdentityRepo implementación del puerto IdentityProvider sobre PostgreSQL.
// Guarda su propio hash del secreto: el servicio de identidad es dueño de sus
// credenciales, independiente de la caché local.
type IdentityRepo struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

// NewIdentityRepository construye el adaptador de identidad remota.
func NewIdentityRepository(pool *pgxpool.Pool, log zerolog.Logger) *IdentityRepo {
	return &IdentityRepo{pool: pool, log: log}
}

// SignIn autentica por email y secreto. Email inexistente o secreto incorrecto
// devuelven ErrInvalidCredentials (respuesta definitiva del remoto); solo los
// fallos de transporte llevan ErrRemoteUnavailable.
func (r *IdentityRepo) SignIn(ctx context.Context, email, secret string) (*entity.User, error) {
	query := `
		SELECT id, email, password_hash, store_name, role, created_at
		FROM users WHERE email = $1`
	var u entity.User
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.StoreName, &u.Role, &u.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, classify("sign in", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(secret)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return &u, nil
}

// CreateAccount registra la cuenta en el servicio de identidad.
func (r *IdentityRepo) CreateAccount(ctx context.Context, user *entity.User, secret string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash secreto: %w", err)
	}
	query := `
		INSERT INTO users (id, email, password_hash, store_name, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = r.pool.Exec(ctx, query,
		user.ID, user.Email, string(hash), user.StoreName, user.Role, user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return classify("insert user", err)
	}
	return nil
}

// SendPasswordReset deja registrada una solicitud de restablecimiento con un
// token de un solo uso. La respuesta es la misma exista o no la cuenta, para
// no revelar qué emails están registrados.
func (r *IdentityRepo) SendPasswordReset(ctx context.Context, email string) error {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email,
	).Scan(&exists)
	if err != nil {
		return classify("lookup reset email", err)
	}
	if !exists {
		return nil
	}
	token := uuid.New().String()
	_, err = r.pool.Exec(ctx,
		`INSERT INTO password_resets (token, email) VALUES ($1, $2)`, token, email,
	)
	if err != nil {
		return classify("insert password reset", err)
	}
	// El envío del correo corre por fuera; el token queda disponible para el
	// canal de entrega que se configure.
	r.log.Info().Str("email", email).Msg("solicitud de restablecimiento registrada")
	return nil
}
