package entity

// Estados del embudo comercial de Customer. Ningún invariante los liga a ventas reales.
const (
	CustomerLead        = "Lead"
	CustomerNegotiating = "Negociação"
	CustomerClient      = "Cliente"
)

// Customer representa un cliente o prospecto. Solo el nombre es obligatorio.
type Customer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Status  string `json:"status"`
	Notes   string `json:"notes"`
}
