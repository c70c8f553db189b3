// Package sync implementa el enrutador de sincronización: decide a qué
// backend va cada lectura/escritura del dataset y reconcilia los snapshots
// que el almacén remoto empuja de vuelta.
package sync

import (
	"context"
	"fmt"
	stdsync "sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/autocars-api/internal/application/ports"
	"github.com/jhoicas/autocars-api/internal/domain"
	"github.com/jhoicas/autocars-api/internal/domain/entity"
)

// Estados de la sesión de datos de una cuenta.
const (
	StateLoading      = "DataLoading"
	StateSyncedLocal  = "Synced(local)"
	StateSyncedRemote = "Synced(remote)"
)

// Router mantiene el dataset en memoria de una cuenta y despacha cada
// mutación al backend configurado. El mutex lo convierte en escritor único:
// el diseño original asumía un solo hilo de eventos, aquí la serialización
// es explícita.
//
// Política de reconciliación (contrato, no accidente de orden de eventos):
// cada snapshot del feed remoto reemplaza el estado en memoria por completo.
// Último escritor gana a granularidad de documento; un snapshot más viejo que
// la última escritura local gana igual y la vista puede "rebobinar". Errores
// del feed conservan el último estado bueno conocido, sin degradar a local a
// mitad de sesión.
type Router struct {
	userID  string
	owner   entity.User
	backend ports.PersistenceBackend
	log     zerolog.Logger

	mu     stdsync.Mutex
	ds     *entity.Dataset
	loaded bool // traba de seguridad: ninguna escritura antes de la carga inicial
	state  string

	unsubscribe func()
}

// NewRouter construye el router de una cuenta. No carga datos: llamar Start.
func NewRouter(owner entity.User, backend ports.PersistenceBackend, log zerolog.Logger) *Router {
	return &Router{
		userID:  owner.ID,
		owner:   owner,
		backend: backend,
		log:     log.With().Str("user_id", owner.ID).Str("backend", backend.Kind()).Logger(),
		state:   StateLoading,
	}
}

// Start carga el dataset inicial y, si el backend tiene feed, se suscribe.
// Hasta que Start termina, la traba loaded bloquea toda mutación para no
// sobrescribir datos reales con el estado vacío transitorio del arranque.
func (r *Router) Start(ctx context.Context) error {
	ds, err := r.backend.Load(ctx, r.userID)
	if err != nil {
		return fmt.Errorf("carga inicial: %w", err)
	}
	if ds == nil {
		// Primer acceso de la cuenta: inicializar estructura vacía y persistirla.
		ds = entity.NewDataset(r.owner)
		ds.Touch(time.Now())
		if err := r.backend.Save(ctx, r.userID, ds); err != nil {
			return fmt.Errorf("inicializar dataset: %w", err)
		}
		r.log.Info().Msg("sin datos previos, dataset inicial creado")
	}

	r.mu.Lock()
	r.ds = ds
	r.loaded = true
	if r.backend.Kind() == ports.BackendRemote {
		r.state = StateSyncedRemote
	} else {
		r.state = StateSyncedLocal
	}
	r.mu.Unlock()

	cancel, err := r.backend.Subscribe(ctx, r.userID, r.applySnapshot, func(err error) {
		// Mantener el último estado bueno; el error solo se registra.
		r.log.Error().Err(err).Msg("error en el feed de cambios, se conserva el estado en memoria")
	})
	if err != nil {
		return fmt.Errorf("suscripción al feed: %w", err)
	}
	r.unsubscribe = cancel

	r.log.Info().Msg("sesión de datos establecida")
	return nil
}

// Stop cancela la suscripción al feed. Los datos persistidos quedan intactos.
func (r *Router) Stop() {
	if r.unsubscribe != nil {
		r.unsubscribe()
		r.unsubscribe = nil
	}
}

// State devuelve el estado actual de la sesión de datos.
func (r *Router) State() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Snapshot devuelve una copia profunda del dataset para lectura.
func (r *Router) Snapshot() (*entity.Dataset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.loaded {
		return nil, domain.ErrNotLoaded
	}
	return r.ds.Clone(), nil
}

// applySnapshot reemplaza el estado en memoria con el snapshot recibido del
// feed remoto (último escritor gana, sin merge por campo).
func (r *Router) applySnapshot(snap *entity.Dataset) {
	if snap == nil {
		return
	}
	r.mu.Lock()
	r.ds = snap
	r.mu.Unlock()
	r.log.Debug().Msg("snapshot remoto aplicado sobre el estado en memoria")
}

// ── Mutaciones ────────────────────────────────────────────────────────────────

// AddVehicle antepone el vehículo y persiste la colección.
func (r *Router) AddVehicle(ctx context.Context, v entity.Vehicle) error {
	return r.mutate(ctx, func(ds *entity.Dataset, p *entity.DatasetPatch) error {
		ds.AddVehicle(v)
		p.Vehicles = &ds.Vehicles
		return nil
	})
}

// UpdateVehicle reemplaza el vehículo por ID.
func (r *Router) UpdateVehicle(ctx context.Context, v entity.Vehicle) error {
	return r.mutate(ctx, func(ds *entity.Dataset, p *entity.DatasetPatch) error {
		if !ds.UpdateVehicle(v) {
			return domain.ErrNotFound
		}
		p.Vehicles = &ds.Vehicles
		return nil
	})
}

// RemoveVehicle elimina el vehículo por ID.
func (r *Router) RemoveVehicle(ctx context.Context, id string) error {
	return r.mutate(ctx, func(ds *entity.Dataset, p *entity.DatasetPatch) error {
		if !ds.RemoveVehicle(id) {
			return domain.ErrNotFound
		}
		p.Vehicles = &ds.Vehicles
		return nil
	})
}

// AddCustomer antepone el cliente.
func (r *Router) AddCustomer(ctx context.Context, c entity.Customer) error {
	return r.mutate(ctx, func(ds *entity.Dataset, p *entity.DatasetPatch) error {
		ds.AddCustomer(c)
		p.Customers = &ds.Customers
		return nil
	})
}

// UpdateCustomer reemplaza el cliente por ID.
func (r *Router) UpdateCustomer(ctx context.Context, c entity.Customer) error {
	return r.mutate(ctx, func(ds *entity.Dataset, p *entity.DatasetPatch) error {
		if !ds.UpdateCustomer(c) {
			return domain.ErrNotFound
		}
		p.Customers = &ds.Customers
		return nil
	})
}

// RemoveCustomer elimina el cliente por ID.
func (r *Router) RemoveCustomer(ctx context.Context, id string) error {
	return r.mutate(ctx, func(ds *entity.Dataset, p *entity.DatasetPatch) error {
		if !ds.RemoveCustomer(id) {
			return domain.ErrNotFound
		}
		p.Customers = &ds.Customers
		return nil
	})
}

// AddSale registra la venta. La cascada que marca el vehículo como "Vendido"
// y la utilidad congelada viajan en el mismo parche de escritura, tanto en la
// ruta local como en la remota. Devuelve la venta tal como quedó almacenada.
func (r *Router) AddSale(ctx context.Context, s entity.Sale) (entity.Sale, error) {
	var stored entity.Sale
	err := r.mutate(ctx, func(ds *entity.Dataset, p *entity.DatasetPatch) error {
		ds.AddSale(s)
		stored = ds.Sales[0]
		p.Sales = &ds.Sales
		p.Vehicles = &ds.Vehicles
		return nil
	})
	return stored, err
}

// RemoveSale elimina la venta por ID.
func (r *Router) RemoveSale(ctx context.Context, id string) error {
	return r.mutate(ctx, func(ds *entity.Dataset, p *entity.DatasetPatch) error {
		if !ds.RemoveSale(id) {
			return domain.ErrNotFound
		}
		p.Sales = &ds.Sales
		return nil
	})
}

// AddExpense antepone el gasto.
func (r *Router) AddExpense(ctx context.Context, e entity.Expense) error {
	return r.mutate(ctx, func(ds *entity.Dataset, p *entity.DatasetPatch) error {
		ds.AddExpense(e)
		p.Expenses = &ds.Expenses
		return nil
	})
}

// RemoveExpense elimina el gasto por ID.
func (r *Router) RemoveExpense(ctx context.Context, id string) error {
	return r.mutate(ctx, func(ds *entity.Dataset, p *entity.DatasetPatch) error {
		if !ds.RemoveExpense(id) {
			return domain.ErrNotFound
		}
		p.Expenses = &ds.Expenses
		return nil
	})
}

// UpdateStoreProfile reemplaza el perfil de la tienda.
func (r *Router) UpdateStoreProfile(ctx context.Context, p entity.StoreProfile) error {
	return r.mutate(ctx, func(ds *entity.Dataset, patch *entity.DatasetPatch) error {
		ds.SetStoreProfile(p)
		patch.StoreProfile = &ds.StoreProfile
		return nil
	})
}

// ReplaceCollections vuelca un parche completo (import de respaldo): cada
// colección presente reemplaza a la actual y se persiste; cuando el backend
// es remoto esto además empuja el estado importado corriente arriba.
func (r *Router) ReplaceCollections(ctx context.Context, patch entity.DatasetPatch) error {
	return r.mutate(ctx, func(ds *entity.Dataset, p *entity.DatasetPatch) error {
		patch.Apply(ds)
		p.Vehicles = patch.Vehicles
		p.Customers = patch.Customers
		p.Sales = patch.Sales
		p.Expenses = patch.Expenses
		p.StoreProfile = patch.StoreProfile
		return nil
	})
}

// mutate serializa la mutación: aplica fn sobre el dataset en memoria y
// persiste el parche resultante. Una escritura fallida deja el estado en
// memoria ya mutado y solo reporta el error — sin retry automático, igual
// que el cliente original.
func (r *Router) mutate(ctx context.Context, fn func(*entity.Dataset, *entity.DatasetPatch) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.loaded {
		return domain.ErrNotLoaded
	}

	now := time.Now()
	patch := entity.DatasetPatch{LastUpdated: entity.NewTimestamp(now)}
	if err := fn(r.ds, &patch); err != nil {
		return err
	}
	r.ds.Touch(now)

	if err := r.backend.SaveCollections(ctx, r.userID, patch); err != nil {
		r.log.Error().Err(err).Msg("fallo al persistir la mutación")
		return fmt.Errorf("persistir mutación: %w", err)
	}
	return nil
}
