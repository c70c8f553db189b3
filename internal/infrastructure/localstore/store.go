// Package localstore es el adaptador de persistencia local: documentos JSON
// planos en disco, un bundle por cuenta más la caché de credenciales y las
// licencias. Es el equivalente del almacenamiento del cliente histórico y
// conserva su formato bit a bit.
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/autocars-api/internal/application/ports"
	"github.com/jhoicas/autocars-api/internal/domain/entity"
)

// Nombres de archivo dentro del directorio de datos.
const (
	usersFile    = "users.json"
	licensesFile = "licenses.json"
	tokenFile    = "dropbox_token"
	dataPrefix   = "data_"
)

// Verificación en tiempo de compilación de los puertos implementados.
var _ ports.PersistenceBackend = (*Store)(nil)
var _ ports.CredentialCache = (*Store)(nil)
var _ ports.LicenseStore = (*Store)(nil)
var _ ports.TokenStore = (*Store)(nil)

// Store persistencia local en disco. El mutex serializa todas las escrituras:
// el archivo se reescribe completo en cada guardado (tmp + rename atómico).
type Store struct {
	dir string
	mu  sync.Mutex
	log zerolog.Logger
}

// New crea el almacén local, creando el directorio si no existe.
func New(dir string, log zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de datos: %w", err)
	}
	return &Store{dir: dir, log: log}, nil
}

// Kind identifica el backend.
func (s *Store) Kind() string { return ports.BackendLocal }

// Load carga el bundle de la cuenta. (nil, nil) cuando no existe todavía.
// Un bundle corrupto se registra y se trata como inexistente: el llamador
// inicializa estructura vacía en lugar de propagar el fallo (comportamiento
// heredado del cliente).
func (s *Store) Load(_ context.Context, userID string) (*entity.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.dataPath(userID))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer bundle local: %w", err)
	}
	var ds entity.Dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		s.log.Error().Err(err).Str("user_id", userID).
			Msg("bundle local corrupto, se reinicializa la cuenta")
		return nil, nil
	}
	return &ds, nil
}

// Save persiste el bundle completo de la cuenta.
func (s *Store) Save(_ context.Context, userID string, ds *entity.Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeJSON(s.dataPath(userID), ds)
}

// SaveCollections aplica el parche sobre el bundle en disco y lo reescribe
// completo: la persistencia local siempre guarda el documento entero.
func (s *Store) SaveCollections(_ context.Context, userID string, patch entity.DatasetPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds := &entity.Dataset{}
	if raw, err := os.ReadFile(s.dataPath(userID)); err == nil {
		// Bundle ilegible: se parte de cero, el parche trae el estado vigente.
		_ = json.Unmarshal(raw, ds)
	}
	patch.Apply(ds)
	return s.writeJSON(s.dataPath(userID), ds)
}

// Subscribe no aplica en modo local: no hay feed de cambios.
func (s *Store) Subscribe(_ context.Context, _ string, _ func(*entity.Dataset), _ func(error)) (func(), error) {
	return func() {}, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (s *Store) dataPath(userID string) string {
	return filepath.Join(s.dir, dataPrefix+userID+".json")
}

// writeJSON escritura atómica: archivo temporal + rename.
func (s *Store) writeJSON(path string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("serializar %s: %w", filepath.Base(path), err)
	}
	tmp := fmt.Sprintf("%s.tmp-%d", path, time.Now().UnixNano())
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("renombrar %s: %w", filepath.Base(path), err)
	}
	return nil
}

// readJSONList deserializa un archivo de lista; inexistente = lista vacía.
func readJSONList[T any](path string) ([]T, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer %s: %w", filepath.Base(path), err)
	}
	var list []T
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("parsear %s: %w", filepath.Base(path), err)
	}
	return list, nil
}
