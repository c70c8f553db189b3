package ports

import (
	"context"

	"github.com/jhoicas/autocars-api/internal/domain/entity"
)

// Nombres de modo de persistencia.
const (
	BackendLocal  = "local"
	BackendRemote = "remote"
)

// PersistenceBackend es el puerto de persistencia del dataset por cuenta.
// Dos adaptadores lo implementan: el almacén local en disco y el almacén
// remoto de documentos (PostgreSQL gestionado). El Sync Router solo conoce
// este contrato; la rama local/remoto queda explícita y testeable sin red.
type PersistenceBackend interface {
	// Kind devuelve BackendLocal o BackendRemote.
	Kind() string

	// Load carga el dataset de la cuenta. (nil, nil) cuando aún no existe.
	Load(ctx context.Context, userID string) (*entity.Dataset, error)

	// Save persiste el dataset completo.
	Save(ctx context.Context, userID string, ds *entity.Dataset) error

	// SaveCollections persiste solo las colecciones tocadas. El adaptador
	// remoto hace upsert-merge del parche; el local reescribe el bundle.
	SaveCollections(ctx context.Context, userID string, patch entity.DatasetPatch) error

	// Subscribe registra un feed continuo de snapshots de la cuenta. Cada
	// snapshot recibido reemplaza el estado en memoria por completo (último
	// escritor gana a granularidad de documento). El adaptador local no tiene
	// feed y devuelve un cancel inocuo. El feed termina al cancelar ctx o al
	// invocar la función devuelta.
	Subscribe(ctx context.Context, userID string, onSnapshot func(*entity.Dataset), onError func(error)) (cancel func(), err error)
}
