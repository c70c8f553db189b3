package ports

import (
	"context"

	"github.com/jhoicas/autocars-api/internal/domain/entity"
)

// LLMService define el puerto de salida del asistente de texto. Cualquier
// adaptador (Gemini, Anthropic, mock) debe implementar esta interfaz; la
// aplicación solo conoce este contrato.
type LLMService interface {
	// GenerateVehicleDescription redacta la descripción de venta de un
	// vehículo. El contexto debe llevar timeout para no bloquear el servidor.
	GenerateVehicleDescription(ctx context.Context, v entity.Vehicle) (string, error)
}
