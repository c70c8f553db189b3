package entity

import "github.com/shopspring/decimal"

// Estados válidos para Vehicle. Los valores en portugués son el formato de
// intercambio del cliente histórico y de los documentos de respaldo; no traducir.
const (
	VehicleAvailable = "Disponível"
	VehicleReserved  = "Reservado"
	VehicleSold      = "Vendido"
)

// Tipos de combustible.
const (
	FuelGasoline = "Gasolina"
	FuelEthanol  = "Etanol"
	FuelDiesel   = "Diesel"
	FuelHybrid   = "Híbrido"
	FuelElectric = "Elétrico"
)

// Vehicle representa un vehículo del inventario de la concesionaria.
// El paso a estado "Vendido" ocurre únicamente como efecto de registrar una venta.
type Vehicle struct {
	ID            string          `json:"id"`
	Make          string          `json:"make"`
	Model         string          `json:"model"`
	Year          int             `json:"year"`
	Version       string          `json:"version"`
	Plate         string          `json:"plate"`
	Mileage       int             `json:"mileage"`
	Color         string          `json:"color"`
	Fuel          string          `json:"fuel"`
	PricePurchase decimal.Decimal `json:"pricePurchase"` // costo de adquisición
	PriceSelling  decimal.Decimal `json:"priceSelling"`  // precio de lista
	Status        string          `json:"status"`
	Description   string          `json:"description"`
	PhotoURL      string          `json:"photoUrl"`
	DateAdded     Timestamp       `json:"dateAdded"`
}
