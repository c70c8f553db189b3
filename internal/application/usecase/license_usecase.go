package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/autocars-api/internal/application/dto"
	"github.com/jhoicas/autocars-api/internal/application/ports"
	"github.com/jhoicas/autocars-api/internal/domain"
	"github.com/jhoicas/autocars-api/internal/domain/entity"
)

// LicenseUseCase administración de claves de admisión (solo rol admin).
type LicenseUseCase struct {
	store ports.LicenseStore
}

// NewLicenseUseCase construye el caso de uso con el puerto de licencias.
func NewLicenseUseCase(store ports.LicenseStore) *LicenseUseCase {
	return &LicenseUseCase{store: store}
}

// Generate emite una licencia nueva en estado "available".
func (uc *LicenseUseCase) Generate(ctx context.Context, generatedBy string) (*entity.License, error) {
	lic := &entity.License{
		Key:         "LIC-" + strings.ToUpper(uuid.New().String()[:8]),
		Status:      entity.LicenseAvailable,
		GeneratedBy: generatedBy,
		CreatedAt:   time.Now(),
	}
	if err := uc.store.Create(ctx, lic); err != nil {
		return nil, err
	}
	return lic, nil
}

// List devuelve las licencias, la más nueva primero.
func (uc *LicenseUseCase) List(ctx context.Context) (*dto.LicenseListResponse, error) {
	items, err := uc.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.LicenseListResponse{Items: items}, nil
}

// Revoke revoca una licencia existente; deja de servir como admisión.
func (uc *LicenseUseCase) Revoke(ctx context.Context, key string) error {
	lic, err := uc.store.GetByKey(ctx, key)
	if err != nil {
		return err
	}
	if lic == nil {
		return domain.ErrNotFound
	}
	return uc.store.Revoke(ctx, key)
}
