package localstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/autocars-api/internal/application/ports"
	"github.com/jhoicas/autocars-api/internal/domain"
	"github.com/jhoicas/autocars-api/internal/domain/entity"
	"github.com/jhoicas/autocars-api/internal/infrastructure/localstore"
)

func newStore(t *testing.T) *localstore.Store {
	t.Helper()
	s, err := localstore.New(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	return s
}

func dec(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// Dataset por cuenta
// ──────────────────────────────────────────────────────────────────────────────

func TestLoad_CuentaNuevaDevuelveNil(t *testing.T) {
	s := newStore(t)
	ds, err := s.Load(context.Background(), "u1")
	require.NoError(t, err)
	assert.Nil(t, ds, "sin archivo previo no hay dataset, no es un error")
}

func TestSaveYLoad_RoundTrip(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	owner := entity.User{ID: "u1", Email: "dueno@tienda.com", StoreName: "AutoCars"}
	ds := entity.NewDataset(owner)
	ds.AddVehicle(entity.Vehicle{ID: "v1", Make: "Fiat", PricePurchase: dec("46000")})
	require.NoError(t, s.Save(ctx, "u1", ds))

	loaded, err := s.Load(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Len(t, loaded.Vehicles, 1)
	assert.Equal(t, "Fiat", loaded.Vehicles[0].Make)
	assert.True(t, loaded.Vehicles[0].PricePurchase.Equal(dec("46000")))
}

func TestSaveCollections_MergeSobreElBundleEnDisco(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	ds := entity.NewDataset(entity.User{ID: "u1", StoreName: "AutoCars"})
	ds.AddExpense(entity.Expense{ID: "e1", Amount: dec("100"), Category: entity.ExpenseRent})
	require.NoError(t, s.Save(ctx, "u1", ds))

	vehicles := []entity.Vehicle{{ID: "v1"}}
	require.NoError(t, s.SaveCollections(ctx, "u1", entity.DatasetPatch{Vehicles: &vehicles}))

	loaded, err := s.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, loaded.Vehicles, 1, "la colección del parche se aplicó")
	assert.Len(t, loaded.Expenses, 1, "el resto del bundle sobrevive al parche")
}

func TestLoad_BundleCorruptoSeTrataComoInexistente(t *testing.T) {
	dir := t.TempDir()
	s, err := localstore.New(dir, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data_u1.json"), []byte("{basura"), 0o644))

	ds, err := s.Load(context.Background(), "u1")
	require.NoError(t, err, "datos corruptos no deben tumbar la carga")
	assert.Nil(t, ds, "la cuenta se reinicializa en vez de propagar el fallo")
}

func TestSubscribe_EnModoLocalEsInocuo(t *testing.T) {
	s := newStore(t)
	cancel, err := s.Subscribe(context.Background(), "u1", nil, nil)
	require.NoError(t, err)
	assert.NotPanics(t, cancel)
	assert.Equal(t, ports.BackendLocal, s.Kind())
}

// ──────────────────────────────────────────────────────────────────────────────
// Caché de credenciales
// ──────────────────────────────────────────────────────────────────────────────

func TestCredenciales_AppendYFindByEmail(t *testing.T) {
	s := newStore(t)

	u, err := s.FindByEmail("nadie@x.com")
	require.NoError(t, err)
	assert.Nil(t, u)

	require.NoError(t, s.Append(&entity.User{ID: "u1", Email: "a@x.com", PasswordHash: "hash-a"}))
	require.NoError(t, s.Append(&entity.User{ID: "u2", Email: "b@x.com", PasswordHash: "hash-b"}))

	u, err = s.FindByEmail("b@x.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u2", u.ID)
	assert.Equal(t, "hash-b", u.PasswordHash)
}

// ──────────────────────────────────────────────────────────────────────────────
// Licencias
// ──────────────────────────────────────────────────────────────────────────────

func TestLicencias_CicloCompleto(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	lic, err := s.GetByKey(ctx, "LIC-X")
	require.NoError(t, err)
	assert.Nil(t, lic)

	require.NoError(t, s.Create(ctx, &entity.License{Key: "LIC-A", Status: entity.LicenseAvailable}))
	require.NoError(t, s.Create(ctx, &entity.License{Key: "LIC-B", Status: entity.LicenseAvailable}))

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "LIC-B", list[0].Key, "la más nueva primero")

	require.NoError(t, s.MarkUsed(ctx, "LIC-A", "dueno@tienda.com"))
	lic, err = s.GetByKey(ctx, "LIC-A")
	require.NoError(t, err)
	assert.Equal(t, entity.LicenseUsed, lic.Status)
	assert.Equal(t, "dueno@tienda.com", lic.UsedBy)
	assert.NotNil(t, lic.UsedAt)

	require.NoError(t, s.Revoke(ctx, "LIC-B"))
	lic, _ = s.GetByKey(ctx, "LIC-B")
	assert.Equal(t, entity.LicenseRevoked, lic.Status)

	assert.ErrorIs(t, s.Revoke(ctx, "LIC-NO-EXISTE"), domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Token del proveedor de archivos
// ──────────────────────────────────────────────────────────────────────────────

func TestToken_GuardarLeerYBorrar(t *testing.T) {
	s := newStore(t)

	tok, err := s.Token()
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.NoError(t, s.SaveToken("sl.token-de-prueba"))
	tok, err = s.Token()
	require.NoError(t, err)
	assert.Equal(t, "sl.token-de-prueba", tok)

	require.NoError(t, s.ClearToken())
	tok, err = s.Token()
	require.NoError(t, err)
	assert.Empty(t, tok)

	// Borrar dos veces no es error.
	assert.NoError(t, s.ClearToken())
}
