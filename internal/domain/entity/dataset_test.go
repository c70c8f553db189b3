package entity_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/autocars-api/internal/domain/entity"
)

func dec(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

func newTestDataset() *entity.Dataset {
	owner := entity.User{ID: "u1", Email: "dueno@tienda.com", StoreName: "AutoCars"}
	return entity.NewDataset(owner)
}

// ──────────────────────────────────────────────────────────────────────────────
// Orden de inserción
// ──────────────────────────────────────────────────────────────────────────────

func TestAddVehicle_ElMasNuevoQuedaPrimero(t *testing.T) {
	ds := newTestDataset()
	ds.AddVehicle(entity.Vehicle{ID: "v1"})
	ds.AddVehicle(entity.Vehicle{ID: "v2"})
	ds.AddVehicle(entity.Vehicle{ID: "v3"})

	require.Len(t, ds.Vehicles, 3)
	assert.Equal(t, "v3", ds.Vehicles[0].ID)
	assert.Equal(t, "v1", ds.Vehicles[2].ID)
}

func TestAddCustomer_ElMasNuevoQuedaPrimero(t *testing.T) {
	ds := newTestDataset()
	ds.AddCustomer(entity.Customer{ID: "c1"})
	ds.AddCustomer(entity.Customer{ID: "c2"})

	require.Len(t, ds.Customers, 2)
	assert.Equal(t, "c2", ds.Customers[0].ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cascada de venta
// ──────────────────────────────────────────────────────────────────────────────

func TestAddSale_CongelaUtilidadYMarcaVendido(t *testing.T) {
	ds := newTestDataset()
	ds.AddVehicle(entity.Vehicle{ID: "v1", PricePurchase: dec("46000"), Status: entity.VehicleAvailable})

	ds.AddSale(entity.Sale{ID: "s1", VehicleID: "v1", SalePrice: dec("50000")})

	require.Len(t, ds.Sales, 1)
	assert.True(t, ds.Sales[0].Profit.Equal(dec("4000")),
		"utilidad = salePrice - pricePurchase al momento de la venta")
	assert.Equal(t, entity.VehicleSold, ds.Vehicles[0].Status)
}

func TestAddSale_UtilidadNoSeRecalculaDespues(t *testing.T) {
	ds := newTestDataset()
	ds.AddVehicle(entity.Vehicle{ID: "v1", PricePurchase: dec("46000")})
	ds.AddSale(entity.Sale{ID: "s1", VehicleID: "v1", SalePrice: dec("50000")})

	// Cambiar el costo del vehículo después de vendido.
	v := *ds.FindVehicle("v1")
	v.PricePurchase = dec("1")
	require.True(t, ds.UpdateVehicle(v))

	assert.True(t, ds.Sales[0].Profit.Equal(dec("4000")),
		"el profit congelado no cambia con el costo actual del vehículo")
}

func TestAddSale_ReferenciaColganteSeToleraSinCascada(t *testing.T) {
	ds := newTestDataset()
	ds.AddSale(entity.Sale{ID: "s1", VehicleID: "no-existe", SalePrice: dec("50000"), Profit: dec("123")})

	require.Len(t, ds.Sales, 1)
	assert.True(t, ds.Sales[0].Profit.Equal(dec("123")),
		"sin vehículo no hay costo: queda la utilidad que trajo el llamador")
}

func TestRemoveSale_NoRevierteElEstadoDelVehiculo(t *testing.T) {
	ds := newTestDataset()
	ds.AddVehicle(entity.Vehicle{ID: "v1", PricePurchase: dec("46000")})
	ds.AddSale(entity.Sale{ID: "s1", VehicleID: "v1", SalePrice: dec("50000")})

	require.True(t, ds.RemoveSale("s1"))
	assert.Empty(t, ds.Sales)
	assert.Equal(t, entity.VehicleSold, ds.Vehicles[0].Status,
		"eliminar la venta no devuelve el vehículo a Disponível")
}

// ──────────────────────────────────────────────────────────────────────────────
// Mutaciones por ID y clonado
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateVehicle_InexistenteDevuelveFalse(t *testing.T) {
	ds := newTestDataset()
	assert.False(t, ds.UpdateVehicle(entity.Vehicle{ID: "nope"}))
	assert.False(t, ds.RemoveVehicle("nope"))
	assert.False(t, ds.RemoveCustomer("nope"))
	assert.False(t, ds.RemoveExpense("nope"))
	assert.False(t, ds.RemoveSale("nope"))
}

func TestClone_EsCopiaProfunda(t *testing.T) {
	ds := newTestDataset()
	ds.AddVehicle(entity.Vehicle{ID: "v1", Make: "Fiat"})

	clone := ds.Clone()
	clone.Vehicles[0].Make = "VW"
	clone.AddVehicle(entity.Vehicle{ID: "v2"})

	assert.Equal(t, "Fiat", ds.Vehicles[0].Make)
	assert.Len(t, ds.Vehicles, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Parche
// ──────────────────────────────────────────────────────────────────────────────

func TestPatchApply_ColeccionPresenteReemplazaCompleta(t *testing.T) {
	ds := newTestDataset()
	ds.AddVehicle(entity.Vehicle{ID: "v1"})
	ds.AddExpense(entity.Expense{ID: "e1", Amount: dec("10")})

	incoming := []entity.Vehicle{{ID: "v9"}}
	patch := entity.DatasetPatch{
		Vehicles:    &incoming,
		LastUpdated: entity.NewTimestamp(time.Now()),
	}
	patch.Apply(ds)

	require.Len(t, ds.Vehicles, 1)
	assert.Equal(t, "v9", ds.Vehicles[0].ID, "la colección entrante reemplaza a la actual, sin merge")
	require.Len(t, ds.Expenses, 1)
	assert.Equal(t, "e1", ds.Expenses[0].ID, "la colección ausente del parche queda intacta")
}

func TestPatch_SerializaSoloLasClavesTocadas(t *testing.T) {
	vehicles := []entity.Vehicle{{ID: "v1"}}
	patch := entity.DatasetPatch{
		Vehicles:    &vehicles,
		LastUpdated: entity.NewTimestamp(time.Now()),
	}
	raw, err := json.Marshal(patch)
	require.NoError(t, err)

	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Contains(t, m, "vehicles")
	assert.Contains(t, m, "lastUpdated")
	assert.NotContains(t, m, "customers")
	assert.NotContains(t, m, "sales")
}

// ──────────────────────────────────────────────────────────────────────────────
// Timestamp — formatos del documento de intercambio
// ──────────────────────────────────────────────────────────────────────────────

func TestTimestamp_AceptaRFC3339YFechaSimple(t *testing.T) {
	cases := map[string]string{
		"RFC3339":      `"2026-05-15T10:30:00Z"`,
		"milisegundos": `"2026-05-15T10:30:00.123Z"`,
		"fecha simple": `"2026-05-15"`,
	}
	for name, raw := range cases {
		var ts entity.Timestamp
		require.NoError(t, ts.UnmarshalJSON([]byte(raw)), name)
		assert.Equal(t, 2026, ts.Year(), name)
		assert.Equal(t, time.May, ts.Month(), name)
	}
}

func TestTimestamp_RechazaFormatoDesconocido(t *testing.T) {
	var ts entity.Timestamp
	assert.Error(t, ts.UnmarshalJSON([]byte(`"15/05/2026"`)))
}

func TestTimestamp_SerializaRFC3339YVacioEnCero(t *testing.T) {
	ts := entity.NewTimestamp(time.Date(2026, time.May, 15, 10, 30, 0, 0, time.UTC))
	raw, err := ts.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"2026-05-15T10:30:00Z"`, string(raw))

	var zero entity.Timestamp
	raw, err = zero.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `""`, string(raw))
}
