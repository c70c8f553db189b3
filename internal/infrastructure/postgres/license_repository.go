package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/autocars-api/internal/application/ports"
	"github.com/jhoicas/autocars-api/internal/domain/entity"
)

var _ ports.LicenseStore = (*LicenseRepo)(nil)

// LicenseRepo implementación del puerto LicenseStore sobre PostgreSQL.
type LicenseRepo struct {
	pool *pgxpool.Pool
}

// NewLicenseRepository construye el adaptador de licencias.
func NewLicenseRepository(pool *pgxpool.Pool) *LicenseRepo {
	return &LicenseRepo{pool: pool}
}

// GetByKey busca una licencia por su clave. (nil, nil) si no existe.
func (r *LicenseRepo) GetByKey(ctx context.Context, key string) (*entity.License, error) {
	query := `
		SELECT key, status, generated_by, created_at, COALESCE(used_by, ''), used_at
		FROM licenses WHERE key = $1`
	var lic entity.License
	err := r.pool.QueryRow(ctx, query, key).Scan(
		&lic.Key, &lic.Status, &lic.GeneratedBy, &lic.CreatedAt, &lic.UsedBy, &lic.UsedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classify("get license", err)
	}
	return &lic, nil
}

// Create persiste una licencia nueva.
func (r *LicenseRepo) Create(ctx context.Context, lic *entity.License) error {
	query := `
		INSERT INTO licenses (key, status, generated_by, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.pool.Exec(ctx, query, lic.Key, lic.Status, lic.GeneratedBy, lic.CreatedAt)
	if err != nil {
		return classify("insert license", err)
	}
	return nil
}

// List devuelve todas las licencias, la más nueva primero.
func (r *LicenseRepo) List(ctx context.Context) ([]*entity.License, error) {
	query := `
		SELECT key, status, generated_by, created_at, COALESCE(used_by, ''), used_at
		FROM licenses ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, classify("list licenses", err)
	}
	defer rows.Close()
	var list []*entity.License
	for rows.Next() {
		var lic entity.License
		if err := rows.Scan(&lic.Key, &lic.Status, &lic.GeneratedBy, &lic.CreatedAt, &lic.UsedBy, &lic.UsedAt); err != nil {
			return nil, classify("scan license", err)
		}
		list = append(list, &lic)
	}
	return list, rows.Err()
}

// MarkUsed marca la licencia como consumida por usedBy.
func (r *LicenseRepo) MarkUsed(ctx context.Context, key, usedBy string) error {
	query := `
		UPDATE licenses SET status = $2, used_by = $3, used_at = now()
		WHERE key = $1`
	_, err := r.pool.Exec(ctx, query, key, entity.LicenseUsed, usedBy)
	if err != nil {
		return classify("mark license used", err)
	}
	return nil
}

// Revoke revoca la licencia.
func (r *LicenseRepo) Revoke(ctx context.Context, key string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE licenses SET status = $2 WHERE key = $1`, key, entity.LicenseRevoked,
	)
	if err != nil {
		return classify("revoke license", err)
	}
	return nil
}
