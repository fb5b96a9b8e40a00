package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patriciastocker/intranet/internal/application/dto"
	"github.com/patriciastocker/intranet/internal/application/ports"
	"github.com/patriciastocker/intranet/internal/application/usecase"
	"github.com/patriciastocker/intranet/internal/domain"
	"github.com/patriciastocker/intranet/internal/domain/entity"
	"github.com/patriciastocker/intranet/pkg/logger"
)

func agenda() *memContacts {
	return newMemContacts(
		&entity.Contact{ID: "contact_1", Name: "Juan Pérez", Alias: "Juanito", Email: "juan@statsen.cl"},
		&entity.Contact{ID: "contact_2", Name: "Ana Rojas", Email: "ana@focovi.cl"},
	)
}

func newDraft(llm *fakeLLM) *usecase.DraftUseCase {
	var l ports.LLMService
	if llm != nil {
		l = llm
	}
	return usecase.NewDraftUseCase(agenda(), l, testLexicon(), "Patricia Stocker", logger.Nop())
}

func TestGenerate_ContactoElegidoPorLLM(t *testing.T) {
	llm := &fakeLLM{answer: "Juan Pérez"}
	out, err := newDraft(llm).Generate(context.Background(), dto.GenerateEmailRequest{
		PostItContent: "revisar la renovación de la marca",
		PostItTitle:   "Marca Statsen",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, llm.calls)
	assert.True(t, out.Success)
	assert.True(t, out.Email.AIGenerated)
	assert.Equal(t, "juan@statsen.cl", out.Email.To)
	assert.Equal(t, "Consulta - Marca Statsen", out.Email.Subject)
	assert.Equal(t, "Hola Juanito,\n\nTe escribo para consultarte sobre lo siguiente:\n\n"+
		"revisar la renovación de la marca\n\nSaludos cordiales,\nPatricia Stocker", out.Email.Body)
	assert.Equal(t, "contact_1", out.Email.Contact.ID)
}

func TestGenerate_FallaLLMUsaMatcherLocal(t *testing.T) {
	llm := &fakeLLM{err: errors.New("rate limited")}
	out, err := newDraft(llm).Generate(context.Background(), dto.GenerateEmailRequest{
		PostItContent: "Llamar a Ana por la oposición",
	})
	require.NoError(t, err)

	assert.False(t, out.Email.AIGenerated, "el contacto lo eligió el matcher local")
	assert.Equal(t, "ana@focovi.cl", out.Email.To)
	assert.Equal(t, "Consulta - Post-it", out.Email.Subject)
	assert.Contains(t, out.Email.Body, "Hola Ana Rojas,")
}

func TestGenerate_RespuestaNingunoUsaMatcherLocal(t *testing.T) {
	out, err := newDraft(&fakeLLM{answer: "NINGUNO"}).Generate(context.Background(), dto.GenerateEmailRequest{
		PostItContent: "Llamar a Ana por la oposición",
	})
	require.NoError(t, err)
	assert.False(t, out.Email.AIGenerated)
	assert.Equal(t, "contact_2", out.Email.Contact.ID)
}

func TestGenerate_SinLLMConfigurado(t *testing.T) {
	out, err := newDraft(nil).Generate(context.Background(), dto.GenerateEmailRequest{
		PostItContent: "Llamar a Ana",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@focovi.cl", out.Email.To)
}

func TestGenerate_SinCoincidenciaSugiereContacto(t *testing.T) {
	_, err := newDraft(nil).Generate(context.Background(), dto.GenerateEmailRequest{
		PostItContent: "reunión con Pedro Soto el lunes, pedro@soto.cl +56 9 1234 5678",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNoContactMatch))

	var nc *usecase.NoContactError
	require.True(t, errors.As(err, &nc))
	assert.Equal(t, "No se pudo identificar un contacto en el contenido del post-it", nc.Error())
	assert.Equal(t, "pedro@soto.cl", nc.Suggested.Email)
	assert.Equal(t, "+56912345678", nc.Suggested.Phone)
	assert.Equal(t, "Pedro Soto", nc.Suggested.Name)
	assert.Equal(t, "Pedro", nc.Suggested.Alias)
}

func TestGenerate_ContactoForzado(t *testing.T) {
	llm := &fakeLLM{answer: "Ana Rojas"}
	out, err := newDraft(llm).Generate(context.Background(), dto.GenerateEmailRequest{
		PostItContent:  "cualquier cosa",
		ForceContactID: "contact_1",
	})
	require.NoError(t, err)
	assert.Zero(t, llm.calls, "con contacto forzado no se consulta al modelo")
	assert.Equal(t, "juan@statsen.cl", out.Email.To)
	assert.False(t, out.Email.AIGenerated)
}

func TestGenerate_ContactoForzadoInexistente(t *testing.T) {
	_, err := newDraft(nil).Generate(context.Background(), dto.GenerateEmailRequest{
		PostItContent:  "x",
		ForceContactID: "contact_404",
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Contains(t, err.Error(), "Contacto especificado no encontrado")
}

func TestGenerate_ContenidoRequerido(t *testing.T) {
	_, err := newDraft(nil).Generate(context.Background(), dto.GenerateEmailRequest{PostItContent: "  "})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Contains(t, err.Error(), "Post-it content is required")
}
