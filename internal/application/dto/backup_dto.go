package dto

import "github.com/jhoicas/autocars-api/internal/domain/entity"

// BackupDocument es el documento portátil de respaldo. Formato de intercambio
// estable: el export siempre produce todas las claves; el import acepta
// documentos parciales (clave ausente = colección intacta, no error).
type BackupDocument struct {
	Vehicles     *[]entity.Vehicle    `json:"vehicles,omitempty"`
	Customers    *[]entity.Customer   `json:"customers,omitempty"`
	Sales        *[]entity.Sale       `json:"sales,omitempty"`
	Expenses     *[]entity.Expense    `json:"expenses,omitempty"`
	StoreProfile *entity.StoreProfile `json:"storeProfile,omitempty"`
	User         *entity.User         `json:"user,omitempty"`
	ExportDate   string               `json:"exportDate,omitempty"`
	LastUpdated  string               `json:"lastUpdated,omitempty"`
}

// ImportResultDTO resultado del import: qué colecciones se aplicaron.
type ImportResultDTO struct {
	Applied []string `json:"applied"`
}
