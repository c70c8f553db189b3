package dto

// AIDescriptionRequest campos del vehículo para redactar la descripción.
// Acepta vehículos aún no guardados: el formulario pide la descripción antes
// de crear el registro.
type AIDescriptionRequest struct {
	Make    string `json:"make" validate:"required"`
	Model   string `json:"model" validate:"required"`
	Year    int    `json:"year"`
	Version string `json:"version"`
	Mileage int    `json:"mileage"`
	Color   string `json:"color"`
	Fuel    string `json:"fuel"`
}

// AIDescriptionResponse texto generado (o el placeholder de fallo; este
// endpoint nunca responde error por fallos del modelo).
type AIDescriptionResponse struct {
	Description string `json:"description"`
}
