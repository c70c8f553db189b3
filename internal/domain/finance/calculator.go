// Package finance contiene las funciones puras de agregación del dashboard
// financiero. No guardan estado: se recalculan sobre las colecciones en
// memoria en cada evaluación.
package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/autocars-api/internal/domain/entity"
)

// monthlyWindow meses del gráfico (ventana móvil anclada en "ahora").
const monthlyWindow = 6

var hundred = decimal.NewFromInt(100)

// TotalRevenue suma de Sale.salePrice.
func TotalRevenue(sales []entity.Sale) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sales {
		total = total.Add(s.SalePrice)
	}
	return total
}

// SalesProfit suma de Sale.profit — el valor congelado al registrar la venta,
// no se recalcula desde el costo actual de los vehículos.
func SalesProfit(sales []entity.Sale) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sales {
		total = total.Add(s.Profit)
	}
	return total
}

// TotalExpenses suma de todos los gastos.
func TotalExpenses(expenses []entity.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// MaintenanceExpenses suma de gastos con categoría "Manutenção".
func MaintenanceExpenses(expenses []entity.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		if e.Category == entity.ExpenseMaintenance {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// GrossProfit = utilidad de ventas − gastos de mantenimiento.
func GrossProfit(sales []entity.Sale, expenses []entity.Expense) decimal.Decimal {
	return SalesProfit(sales).Sub(MaintenanceExpenses(expenses))
}

// NetProfit = utilidad de ventas − total de gastos.
func NetProfit(sales []entity.Sale, expenses []entity.Expense) decimal.Decimal {
	return SalesProfit(sales).Sub(TotalExpenses(expenses))
}

// EfficiencyRatio = neto / bruto × 100. Devuelve 0 cuando el bruto es ≤ 0:
// protege la división pero también oculta el caso de bruto legítimamente
// negativo; es el contrato heredado y los consumidores cuentan con él.
func EfficiencyRatio(sales []entity.Sale, expenses []entity.Expense) decimal.Decimal {
	gross := GrossProfit(sales, expenses)
	if gross.Sign() <= 0 {
		return decimal.Zero
	}
	return NetProfit(sales, expenses).Div(gross).Mul(hundred)
}

// VehicleTotalCost = precio de compra + gastos ligados a ese vehículo.
func VehicleTotalCost(v entity.Vehicle, expenses []entity.Expense) decimal.Decimal {
	total := v.PricePurchase
	for _, e := range expenses {
		if e.VehicleID == v.ID {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// MonthPoint es un punto de la serie mensual del gráfico.
type MonthPoint struct {
	Label       string          `json:"label"` // ej. "mai/2026"
	Year        int             `json:"year"`
	Month       time.Month      `json:"month"`
	Sales       decimal.Decimal `json:"sales"`
	GrossProfit decimal.Decimal `json:"grossProfit"`
	Expenses    decimal.Decimal `json:"expenses"`
	NetProfit   decimal.Decimal `json:"netProfit"`
}

// meses abreviados pt-BR, como los mostraba el cliente histórico.
var shortMonths = [...]string{
	"jan", "fev", "mar", "abr", "mai", "jun",
	"jul", "ago", "set", "out", "nov", "dez",
}

// MonthlySeries construye la serie de los últimos 6 meses anclada en now,
// en orden cronológico. Ventas y gastos fuera de la ventana se descartan del
// gráfico en silencio, pero siguen contando en los totales no graficados.
func MonthlySeries(sales []entity.Sale, expenses []entity.Expense, now time.Time) []MonthPoint {
	type key struct {
		year  int
		month time.Month
	}

	points := make([]MonthPoint, 0, monthlyWindow)
	index := make(map[key]int, monthlyWindow)

	for i := monthlyWindow - 1; i >= 0; i-- {
		d := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, now.Location())
		k := key{d.Year(), d.Month()}
		index[k] = len(points)
		points = append(points, MonthPoint{
			Label:       shortMonths[d.Month()-1] + "/" + d.Format("2006"),
			Year:        d.Year(),
			Month:       d.Month(),
			Sales:       decimal.Zero,
			GrossProfit: decimal.Zero,
			Expenses:    decimal.Zero,
			NetProfit:   decimal.Zero,
		})
	}

	for _, s := range sales {
		if s.Date.IsZero() {
			continue
		}
		if i, ok := index[key{s.Date.Year(), s.Date.Month()}]; ok {
			points[i].Sales = points[i].Sales.Add(s.SalePrice)
			points[i].GrossProfit = points[i].GrossProfit.Add(s.Profit)
		}
	}
	for _, e := range expenses {
		if e.Date.IsZero() {
			continue
		}
		if i, ok := index[key{e.Date.Year(), e.Date.Month()}]; ok {
			points[i].Expenses = points[i].Expenses.Add(e.Amount)
		}
	}
	for i := range points {
		points[i].NetProfit = points[i].GrossProfit.Sub(points[i].Expenses)
	}
	return points
}
