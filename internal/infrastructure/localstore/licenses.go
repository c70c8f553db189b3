package localstore

import (
	"context"
	"path/filepath"
	"time"

	"github.com/jhoicas/autocars-api/internal/domain"
	"github.com/jhoicas/autocars-api/internal/domain/entity"
)

// GetByKey busca una licencia por su clave. (nil, nil) si no existe.
func (s *Store) GetByKey(_ context.Context, key string) (*entity.License, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lics, err := readJSONList[entity.License](s.licensesPath())
	if err != nil {
		return nil, err
	}
	for i := range lics {
		if lics[i].Key == key {
			return &lics[i], nil
		}
	}
	return nil, nil
}

// Create antepone la licencia nueva (la más reciente primero).
func (s *Store) Create(_ context.Context, lic *entity.License) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lics, err := readJSONList[entity.License](s.licensesPath())
	if err != nil {
		return err
	}
	lics = append([]entity.License{*lic}, lics...)
	return s.writeJSON(s.licensesPath(), lics)
}

// List devuelve las licencias en el orden almacenado (la más nueva primero).
func (s *Store) List(_ context.Context) ([]*entity.License, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lics, err := readJSONList[entity.License](s.licensesPath())
	if err != nil {
		return nil, err
	}
	out := make([]*entity.License, 0, len(lics))
	for i := range lics {
		out = append(out, &lics[i])
	}
	return out, nil
}

// MarkUsed marca la licencia como consumida por usedBy.
func (s *Store) MarkUsed(_ context.Context, key, usedBy string) error {
	return s.updateLicense(key, func(lic *entity.License) {
		now := time.Now()
		lic.Status = entity.LicenseUsed
		lic.UsedBy = usedBy
		lic.UsedAt = &now
	})
}

// Revoke revoca la licencia.
func (s *Store) Revoke(_ context.Context, key string) error {
	return s.updateLicense(key, func(lic *entity.License) {
		lic.Status = entity.LicenseRevoked
	})
}

func (s *Store) updateLicense(key string, mutate func(*entity.License)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lics, err := readJSONList[entity.License](s.licensesPath())
	if err != nil {
		return err
	}
	for i := range lics {
		if lics[i].Key == key {
			mutate(&lics[i])
			return s.writeJSON(s.licensesPath(), lics)
		}
	}
	return domain.ErrNotFound
}

func (s *Store) licensesPath() string {
	return filepath.Join(s.dir, licensesFile)
}
