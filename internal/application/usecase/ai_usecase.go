package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/autocars-api/internal/application/dto"
	"github.com/jhoicas/autocars-api/internal/application/ports"
	"github.com/jhoicas/autocars-api/internal/domain/entity"
)

// aiFallbackText placeholder que ve el usuario cuando el modelo falla.
// El contrato del asistente es no propagar errores al llamador.
const aiFallbackText = "Erro ao gerar descrição com IA. Tente novamente."

// AIUseCase orquesta la redacción de descripciones de vehículos.
// Aplica un timeout de 10 segundos en cada llamada al LLM para que las
// latencias externas no bloqueen los goroutines del servidor.
type AIUseCase struct {
	llm ports.LLMService
	log zerolog.Logger
}

// NewAIUseCase construye el caso de uso inyectando el puerto LLMService.
func NewAIUseCase(llm ports.LLMService, log zerolog.Logger) *AIUseCase {
	return &AIUseCase{llm: llm, log: log}
}

// GenerateDescription redacta la descripción de venta. Cualquier fallo del
// modelo (clave ausente, timeout, respuesta vacía) devuelve el placeholder,
// nunca un error.
func (uc *AIUseCase) GenerateDescription(ctx context.Context, req dto.AIDescriptionRequest) dto.AIDescriptionResponse {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	v := entity.Vehicle{
		Make:    req.Make,
		Model:   req.Model,
		Year:    req.Year,
		Version: req.Version,
		Mileage: req.Mileage,
		Color:   req.Color,
		Fuel:    req.Fuel,
	}
	text, err := uc.llm.GenerateVehicleDescription(ctx, v)
	if err != nil {
		uc.log.Error().Err(err).Msg("generación de descripción IA fallida")
		return dto.AIDescriptionResponse{Description: aiFallbackText}
	}
	return dto.AIDescriptionResponse{Description: text}
}
