package ports

import (
	"context"

	"github.com/patriciastocker/intranet/internal/domain/entity"
)

// NoContactAnswer respuesta del modelo cuando ningún contacto corresponde.
const NoContactAnswer = "NINGUNO"

// LLMService puerto de salida hacia el modelo de lenguaje.
// La aplicación solo conoce este contrato; el adaptador concreto (OpenRouter, mock) se inyecta en main.
type LLMService interface {
	// SuggestContact pide al modelo el nombre del contacto al que se refiere content.
	// Devuelve el texto tal cual lo respondió el modelo (un nombre o NoContactAnswer).
	// El contexto debe llevar timeout.
	SuggestContact(ctx context.Context, content string, contacts []*entity.Contact) (string, error)
}
