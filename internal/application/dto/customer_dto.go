package dto

import "github.com/jhoicas/autocars-api/internal/domain/entity"

// CustomerRequest entrada para crear o actualizar un cliente. Solo Name es
// obligatorio; el resto son campos de contacto opcionales.
type CustomerRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Status  string `json:"status"`
	Notes   string `json:"notes"`
}

// ToEntity vuelca el request sobre un cliente con identidad ya resuelta.
func (r CustomerRequest) ToEntity(id string) entity.Customer {
	status := r.Status
	if status == "" {
		status = entity.CustomerLead
	}
	return entity.Customer{
		ID:      id,
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Address: r.Address,
		Status:  status,
		Notes:   r.Notes,
	}
}
