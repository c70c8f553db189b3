package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/autocars-api/internal/domain/entity"
)

// ExpenseRequest entrada para registrar un gasto. VehicleID es opcional;
// cuando viene, el gasto suma al costo total de ese vehículo.
type ExpenseRequest struct {
	Description string          `json:"description" validate:"required"`
	Category    string          `json:"category" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	VehicleID   string          `json:"vehicleId"`
}

// ToEntity vuelca el request sobre un gasto con identidad y fecha resueltas.
func (r ExpenseRequest) ToEntity(id string, date entity.Timestamp) entity.Expense {
	return entity.Expense{
		ID:          id,
		Description: r.Description,
		Category:    r.Category,
		Amount:      r.Amount,
		Date:        date,
		VehicleID:   r.VehicleID,
	}
}
