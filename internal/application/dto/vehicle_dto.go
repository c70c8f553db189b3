package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/autocars-api/internal/domain/entity"
)

// VehicleRequest entrada para crear o actualizar un vehículo. El ID y la
// fecha de alta los asigna el servidor al crear; el status solo cambia a
// "Vendido" vía venta, pero crear permite "Disponível"/"Reservado".
type VehicleRequest struct {
	Make          string          `json:"make" validate:"required"`
	Model         string          `json:"model" validate:"required"`
	Year          int             `json:"year" validate:"required"`
	Version       string          `json:"version"`
	Plate         string          `json:"plate"`
	Mileage       int             `json:"mileage"`
	Color         string          `json:"color"`
	Fuel          string          `json:"fuel"`
	PricePurchase decimal.Decimal `json:"pricePurchase"`
	PriceSelling  decimal.Decimal `json:"priceSelling"`
	Status        string          `json:"status"`
	Description   string          `json:"description"`
	PhotoURL      string          `json:"photoUrl"`
}

// ToEntity vuelca el request sobre un vehículo con identidad ya resuelta.
func (r VehicleRequest) ToEntity(id string, dateAdded entity.Timestamp) entity.Vehicle {
	status := r.Status
	if status == "" {
		status = entity.VehicleAvailable
	}
	return entity.Vehicle{
		ID:            id,
		Make:          r.Make,
		Model:         r.Model,
		Year:          r.Year,
		Version:       r.Version,
		Plate:         r.Plate,
		Mileage:       r.Mileage,
		Color:         r.Color,
		Fuel:          r.Fuel,
		PricePurchase: r.PricePurchase,
		PriceSelling:  r.PriceSelling,
		Status:        status,
		Description:   r.Description,
		PhotoURL:      r.PhotoURL,
		DateAdded:     dateAdded,
	}
}

// VehicleCostResponse costo total de un vehículo (compra + gastos ligados).
type VehicleCostResponse struct {
	VehicleID string          `json:"vehicleId"`
	TotalCost decimal.Decimal `json:"totalCost"`
}
