package sync

import (
	"context"
	stdsync "sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/autocars-api/internal/application/ports"
	"github.com/jhoicas/autocars-api/internal/domain"
	"github.com/jhoicas/autocars-api/internal/domain/entity"
)

// Manager registra los routers activos por cuenta. Se crea uno al iniciar
// sesión y se descarta al cerrar; a lo sumo un router (un escritor) por cuenta.
type Manager struct {
	backend ports.PersistenceBackend
	log     zerolog.Logger

	mu      stdsync.Mutex
	routers map[string]*Router
	cancels map[string]context.CancelFunc
}

// NewManager construye el registro con el backend compartido.
func NewManager(backend ports.PersistenceBackend, log zerolog.Logger) *Manager {
	return &Manager{
		backend: backend,
		log:     log,
		routers: make(map[string]*Router),
		cancels: make(map[string]context.CancelFunc),
	}
}

// StartSession crea (o reinicia) el router de la cuenta y dispara la carga de
// datos. Un login repetido descarta la sesión anterior y recarga desde el
// backend, igual que el cliente original al volver a entrar.
func (m *Manager) StartSession(ctx context.Context, owner entity.User) (*Router, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cancel, ok := m.cancels[owner.ID]; ok {
		m.routers[owner.ID].Stop()
		cancel()
	}

	// El feed vive más allá del request de login; contexto propio por sesión.
	feedCtx, cancel := context.WithCancel(context.Background())
	r := NewRouter(owner, m.backend, m.log)
	if err := r.Start(feedCtx); err != nil {
		cancel()
		return nil, err
	}
	m.routers[owner.ID] = r
	m.cancels[owner.ID] = cancel
	return r, nil
}

// Router devuelve el router activo de la cuenta.
func (m *Manager) Router(userID string) (*Router, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.routers[userID]
	if !ok {
		return nil, domain.ErrNotLoaded
	}
	return r, nil
}

// EndSession detiene el feed y libera el estado en memoria de la cuenta.
// No borra nada persistido.
func (m *Manager) EndSession(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.routers[userID]; ok {
		r.Stop()
	}
	if cancel, ok := m.cancels[userID]; ok {
		cancel()
	}
	delete(m.routers, userID)
	delete(m.cancels, userID)
}
