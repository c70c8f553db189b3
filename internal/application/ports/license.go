package ports

import (
	"context"

	"github.com/jhoicas/autocars-api/internal/domain/entity"
)

// LicenseStore administra las claves de admisión. Según el modo, lo implementa
// el almacén local o el remoto; el caso de uso no distingue.
type LicenseStore interface {
	GetByKey(ctx context.Context, key string) (*entity.License, error)
	Create(ctx context.Context, lic *entity.License) error
	List(ctx context.Context) ([]*entity.License, error)
	// MarkUsed marca la licencia como consumida. Best-effort después de crear
	// el usuario: no hay transacción que abarque ambos escritos.
	MarkUsed(ctx context.Context, key, usedBy string) error
	Revoke(ctx context.Context, key string) error
}
