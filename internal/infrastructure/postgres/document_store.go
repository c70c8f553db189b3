package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/jhoicas/autocars-api/internal/application/ports"
	"github.com/jhoicas/autocars-api/internal/domain/entity"
)

var _ ports.PersistenceBackend = (*DocumentStore)(nil)

// notifyChannel canal de pg_notify que publica el trigger de account_datasets.
const notifyChannel = "dataset_changed"

// DocumentStore persiste el dataset de cada cuenta como un documento JSONB
// (una fila por cuenta). Las escrituras parciales hacen merge a nivel de clave
// de colección con el operador || de jsonb, que replica la semántica de
// "la colección presente reemplaza a la actual por completo".
type DocumentStore struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

// NewDocumentStore construye el adaptador remoto de persistencia.
func NewDocumentStore(pool *pgxpool.Pool, log zerolog.Logger) *DocumentStore {
	return &DocumentStore{pool: pool, log: log}
}

// Kind identifica el backend.
func (s *DocumentStore) Kind() string { return ports.BackendRemote }

// Load carga el documento de la cuenta. (nil, nil) cuando no existe todavía.
func (s *DocumentStore) Load(ctx context.Context, userID string) (*entity.Dataset, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT doc FROM account_datasets WHERE user_id = $1`, userID,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classify("load dataset", err)
	}
	var ds entity.Dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("parsear documento remoto: %w", err)
	}
	return &ds, nil
}

// Save hace upsert del documento completo. El trigger de la tabla publica el
// cambio en el canal de notificaciones.
func (s *DocumentStore) Save(ctx context.Context, userID string, ds *entity.Dataset) error {
	raw, err := json.Marshal(ds)
	if err != nil {
		return fmt.Errorf("serializar documento: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO account_datasets (user_id, doc, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`,
		userID, raw,
	)
	if err != nil {
		return classify("save dataset", err)
	}
	return nil
}

// SaveCollections hace merge del parche sobre el documento existente: solo las
// claves presentes en el parche se reemplazan. Si la fila aún no existe, el
// parche se aplica sobre un dataset vacío y se inserta completo.
func (s *DocumentStore) SaveCollections(ctx context.Context, userID string, patch entity.DatasetPatch) error {
	raw, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("serializar parche: %w", err)
	}
	tag, err := s.pool.Exec(ctx, `
		UPDATE account_datasets SET doc = doc || $2::jsonb, updated_at = now()
		WHERE user_id = $1`,
		userID, raw,
	)
	if err != nil {
		return classify("merge dataset", err)
	}
	if tag.RowsAffected() == 0 {
		ds := &entity.Dataset{}
		patch.Apply(ds)
		return s.Save(ctx, userID, ds)
	}
	return nil
}

// Subscribe abre una conexión dedicada en LISTEN y entrega un snapshot fresco
// por cada notificación de la cuenta. El feed incluye el eco de los propios
// escritos; aplicarlo es inocuo porque el snapshot reemplaza el estado entero.
func (s *DocumentStore) Subscribe(ctx context.Context, userID string, onSnapshot func(*entity.Dataset), onError func(error)) (func(), error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, classify("acquire listen conn", err)
	}
	if _, err := conn.Exec(ctx, "LISTEN "+notifyChannel); err != nil {
		conn.Release()
		return nil, classify("listen", err)
	}

	feedCtx, cancel := context.WithCancel(ctx)
	go func() {
		defer conn.Release()
		for {
			n, err := conn.Conn().WaitForNotification(feedCtx)
			if err != nil {
				if feedCtx.Err() != nil {
					return
				}
				onError(classify("feed de cambios", err))
				return
			}
			if n.Payload != userID {
				continue
			}
			ds, err := s.Load(feedCtx, userID)
			if err != nil {
				onError(err)
				continue
			}
			if ds != nil {
				onSnapshot(ds)
			}
		}
	}()
	return cancel, nil
}
