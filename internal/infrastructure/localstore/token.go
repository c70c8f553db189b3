package localstore

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Token devuelve el bearer token del proveedor de archivos. "" si no hay.
func (s *Store) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}

// SaveToken persiste el token obtenido en el flujo authorize-redirect.
func (s *Store) SaveToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// 0600: el token otorga acceso a los respaldos del usuario.
	return os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(token), 0o600)
}

// ClearToken elimina el token (sesión del proveedor expirada o revocada).
func (s *Store) ClearToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(filepath.Join(s.dir, tokenFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
