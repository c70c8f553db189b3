package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/autocars-api/internal/domain/entity"
)

// SaleRequest entrada para registrar una venta. La utilidad NO se recibe:
// la congela el servidor (salePrice − costo del vehículo en ese momento).
// Las referencias no se validan; una referencia colgante se tolera.
type SaleRequest struct {
	VehicleID  string          `json:"vehicleId" validate:"required"`
	CustomerID string          `json:"customerId" validate:"required"`
	SalePrice  decimal.Decimal `json:"salePrice"`
	Date       string          `json:"date"`
}

// SaleView venta enriquecida para listados: resuelve los nombres de las
// referencias débiles; "desconocido" cuando la referencia cuelga.
type SaleView struct {
	entity.Sale
	VehicleLabel  string `json:"vehicleLabel"`
	CustomerLabel string `json:"customerLabel"`
}
