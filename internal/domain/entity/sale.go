package entity

import "github.com/shopspring/decimal"

// Sale registra una venta. VehicleID y CustomerID son referencias débiles:
// se almacenan tal cual y se resuelven por lookup al leer; una referencia
// colgante se presenta como "desconocido", nunca bloquea la escritura.
//
// Profit se calcula una sola vez al registrar (salePrice − pricePurchase del
// vehículo en ese momento) y queda congelado: cambios posteriores al costo
// del vehículo no lo recalculan.
type Sale struct {
	ID         string          `json:"id"`
	VehicleID  string          `json:"vehicleId"`
	CustomerID string          `json:"customerId"`
	SalePrice  decimal.Decimal `json:"salePrice"`
	Date       Timestamp       `json:"date"`
	Profit     decimal.Decimal `json:"profit"`
}
