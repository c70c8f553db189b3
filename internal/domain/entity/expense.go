package entity

import "github.com/shopspring/decimal"

// Categorías de gasto de la concesionaria. "Manutenção" participa además del
// costo total por vehículo cuando el gasto referencia uno.
const (
	ExpenseRent        = "Aluguel"
	ExpenseBills       = "Contas"
	ExpenseMaintenance = "Manutenção"
	ExpenseMarketing   = "Marketing"
	ExpenseOther       = "Outros"
)

// Expense representa un gasto, opcionalmente ligado a un vehículo.
type Expense struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Date        Timestamp       `json:"date"`
	VehicleID   string          `json:"vehicleId,omitempty"`
}
