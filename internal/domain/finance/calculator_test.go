package finance_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/autocars-api/internal/domain/entity"
	"github.com/jhoicas/autocars-api/internal/domain/finance"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func dec(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

func saleOn(price, profit string, date time.Time) entity.Sale {
	return entity.Sale{
		ID:        "s-" + price,
		SalePrice: dec(price),
		Profit:    dec(profit),
		Date:      entity.NewTimestamp(date),
	}
}

func expenseOn(category, amount string, date time.Time) entity.Expense {
	return entity.Expense{
		ID:       "e-" + amount,
		Category: category,
		Amount:   dec(amount),
		Date:     entity.NewTimestamp(date),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Agregados del dashboard
// ──────────────────────────────────────────────────────────────────────────────

// Escenario de referencia: venta de 50.000 con costo 46.000 (utilidad 4.000),
// gastos de mantenimiento 1.000 y marketing 500.
func TestAgregados_EscenarioVentaConGastos(t *testing.T) {
	now := time.Now()
	sales := []entity.Sale{saleOn("50000", "4000", now)}
	expenses := []entity.Expense{
		expenseOn(entity.ExpenseMaintenance, "1000", now),
		expenseOn(entity.ExpenseMarketing, "500", now),
	}

	assert.True(t, finance.TotalRevenue(sales).Equal(dec("50000")))
	assert.True(t, finance.SalesProfit(sales).Equal(dec("4000")))
	assert.True(t, finance.TotalExpenses(expenses).Equal(dec("1500")))
	assert.True(t, finance.MaintenanceExpenses(expenses).Equal(dec("1000")),
		"solo la categoría Manutenção cuenta como mantenimiento")
	assert.True(t, finance.GrossProfit(sales, expenses).Equal(dec("3000")),
		"bruto = utilidad de ventas - mantenimiento")
	assert.True(t, finance.NetProfit(sales, expenses).Equal(dec("2500")),
		"neto = utilidad de ventas - todos los gastos")
}

// Identidad estructural: neto = bruto - gastos no-mantenimiento.
func TestNetProfit_IdentidadConBruto(t *testing.T) {
	now := time.Now()
	sales := []entity.Sale{saleOn("80000", "7000", now), saleOn("30000", "2000", now)}
	expenses := []entity.Expense{
		expenseOn(entity.ExpenseMaintenance, "1200", now),
		expenseOn(entity.ExpenseRent, "2000", now),
		expenseOn(entity.ExpenseBills, "300", now),
	}

	gross := finance.GrossProfit(sales, expenses)
	net := finance.NetProfit(sales, expenses)
	otherExpenses := finance.TotalExpenses(expenses).Sub(finance.MaintenanceExpenses(expenses))

	assert.True(t, net.Equal(gross.Sub(otherExpenses)))
}

// El profit congelado manda: los agregados no recalculan desde los vehículos.
func TestSalesProfit_UsaProfitCongelado(t *testing.T) {
	sales := []entity.Sale{
		{ID: "s1", SalePrice: dec("50000"), Profit: dec("4000")},
		{ID: "s2", SalePrice: dec("50000"), Profit: dec("-500")},
	}
	assert.True(t, finance.SalesProfit(sales).Equal(dec("3500")))
}

// ──────────────────────────────────────────────────────────────────────────────
// EfficiencyRatio — borde del bruto no positivo
// ──────────────────────────────────────────────────────────────────────────────

func TestEfficiencyRatio_BrutoPositivo(t *testing.T) {
	now := time.Now()
	sales := []entity.Sale{saleOn("50000", "4000", now)}
	expenses := []entity.Expense{
		expenseOn(entity.ExpenseMaintenance, "1000", now),
		expenseOn(entity.ExpenseMarketing, "500", now),
	}
	// neto 2500 / bruto 3000 × 100
	ratio := finance.EfficiencyRatio(sales, expenses)
	expected := dec("2500").Div(dec("3000")).Mul(dec("100"))
	assert.True(t, ratio.Equal(expected))
}

func TestEfficiencyRatio_BrutoCeroDevuelveCero(t *testing.T) {
	now := time.Now()
	sales := []entity.Sale{saleOn("10000", "1000", now)}
	expenses := []entity.Expense{expenseOn(entity.ExpenseMaintenance, "1000", now)}

	assert.True(t, finance.EfficiencyRatio(sales, expenses).IsZero(),
		"bruto exactamente cero no debe dividir")
}

func TestEfficiencyRatio_BrutoNegativoDevuelveCero(t *testing.T) {
	now := time.Now()
	sales := []entity.Sale{saleOn("10000", "500", now)}
	expenses := []entity.Expense{expenseOn(entity.ExpenseMaintenance, "2000", now)}

	assert.True(t, finance.EfficiencyRatio(sales, expenses).IsZero(),
		"bruto negativo devuelve 0 por contrato, aunque oculte la pérdida")
}

// ──────────────────────────────────────────────────────────────────────────────
// Costo total por vehículo
// ──────────────────────────────────────────────────────────────────────────────

func TestVehicleTotalCost_SumaSoloGastosLigados(t *testing.T) {
	v := entity.Vehicle{ID: "v1", PricePurchase: dec("46000")}
	expenses := []entity.Expense{
		{ID: "e1", VehicleID: "v1", Amount: dec("800"), Category: entity.ExpenseMaintenance},
		{ID: "e2", VehicleID: "v2", Amount: dec("999"), Category: entity.ExpenseMaintenance},
		{ID: "e3", VehicleID: "", Amount: dec("2000"), Category: entity.ExpenseRent},
		{ID: "e4", VehicleID: "v1", Amount: dec("200"), Category: entity.ExpenseOther},
	}
	assert.True(t, finance.VehicleTotalCost(v, expenses).Equal(dec("47000")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Serie mensual
// ──────────────────────────────────────────────────────────────────────────────

func TestMonthlySeries_VentanaDeSeisMesesEnOrdenCronologico(t *testing.T) {
	now := time.Date(2026, time.May, 15, 12, 0, 0, 0, time.UTC)
	points := finance.MonthlySeries(nil, nil, now)

	require.Len(t, points, 6)
	assert.Equal(t, time.December, points[0].Month)
	assert.Equal(t, 2025, points[0].Year)
	assert.Equal(t, time.May, points[5].Month)
	assert.Equal(t, 2026, points[5].Year)
	assert.Equal(t, "dez/2025", points[0].Label)
	assert.Equal(t, "mai/2026", points[5].Label)
}

func TestMonthlySeries_AcumulaPorMesYDescartaFueraDeVentana(t *testing.T) {
	now := time.Date(2026, time.May, 15, 12, 0, 0, 0, time.UTC)
	inWindow := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)
	outOfWindow := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	sales := []entity.Sale{
		saleOn("50000", "4000", inWindow),
		saleOn("20000", "1000", inWindow),
		saleOn("99999", "9999", outOfWindow), // fuera de la ventana: se descarta en silencio
	}
	expenses := []entity.Expense{
		expenseOn(entity.ExpenseRent, "1500", inWindow),
		expenseOn(entity.ExpenseRent, "7777", outOfWindow),
	}

	points := finance.MonthlySeries(sales, expenses, now)
	require.Len(t, points, 6)

	var march finance.MonthPoint
	for _, p := range points {
		if p.Month == time.March && p.Year == 2026 {
			march = p
		}
	}
	assert.True(t, march.Sales.Equal(dec("70000")))
	assert.True(t, march.GrossProfit.Equal(dec("5000")))
	assert.True(t, march.Expenses.Equal(dec("1500")))
	assert.True(t, march.NetProfit.Equal(dec("3500")), "neto del punto = bruto - gastos del mes")

	// Nada del mes fuera de ventana se cuela en ningún punto.
	total := decimal.Zero
	for _, p := range points {
		total = total.Add(p.Sales)
	}
	assert.True(t, total.Equal(dec("70000")))
}

func TestMonthlySeries_FechasCeroNoRevientan(t *testing.T) {
	now := time.Date(2026, time.May, 15, 12, 0, 0, 0, time.UTC)
	sales := []entity.Sale{{ID: "s1", SalePrice: dec("100"), Profit: dec("10")}}
	expenses := []entity.Expense{{ID: "e1", Amount: dec("50")}}

	points := finance.MonthlySeries(sales, expenses, now)
	require.Len(t, points, 6)
	for _, p := range points {
		assert.True(t, p.Sales.IsZero())
		assert.True(t, p.Expenses.IsZero())
	}
}
