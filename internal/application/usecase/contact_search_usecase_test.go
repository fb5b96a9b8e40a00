package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patriciastocker/intranet/internal/application/dto"
	"github.com/patriciastocker/intranet/internal/application/usecase"
	"github.com/patriciastocker/intranet/internal/domain"
	"github.com/patriciastocker/intranet/pkg/logger"
)

type recorder struct {
	events []dto.ProgressEvent
	failAt int
}

func (r *recorder) emit(ev dto.ProgressEvent) error {
	r.events = append(r.events, ev)
	if r.failAt > 0 && len(r.events) == r.failAt {
		return errors.New("client gone")
	}
	return nil
}

func (r *recorder) progress() []float64 {
	out := make([]float64, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Progress)
	}
	return out
}

func (r *recorder) final() dto.ProgressEvent { return r.events[len(r.events)-1] }

func buzon() *fakeBackend {
	return &fakeBackend{list: &dto.UpstreamEmailList{Emails: []dto.UpstreamEmail{
		{
			EmailID: "1", Subject: "Renovación Statsen", FromName: "Juan Pérez", FromEmail: "juan@statsen.cl",
			Date: "2025-03-01", Preview: "Mi fono es +56 9 8765 4321, Statsen Chile SpA",
		},
		{EmailID: "2", Subject: "Boletín", FromName: "Newsletter", FromEmail: "news@otro.cl", Preview: "ofertas"},
		{EmailID: "3", Subject: "Re: oposición", FromName: "Ana Rojas", FromEmail: "ana@focovi.cl", Preview: "hablé con juan ayer"},
	}}}
}

func newSearch(b *fakeBackend) *usecase.ContactSearchUseCase {
	return usecase.NewContactSearchUseCase(b, testLexicon(), logger.Nop())
}

func TestContactSearch_SecuenciaCompleta(t *testing.T) {
	b := buzon()
	rec := &recorder{}

	err := newSearch(b).Run(context.Background(), dto.ContactSearchRequest{
		ContactName:   "Juan Pérez",
		ContactEmail:  "juan@statsen.cl",
		PostItContent: "renovación Statsen",
	}, rec.emit)
	require.NoError(t, err)

	assert.Equal(t, "/api/emails/with-preview", b.last().Path)
	assert.Equal(t, "100", b.last().Query.Get("limit"))
	assert.Equal(t, []float64{10, 30, 35, 40, 50, 60, 50, 50, 70, 100}, rec.progress())

	require.NotNil(t, rec.events[1].TotalEmails)
	assert.Equal(t, 3, *rec.events[1].TotalEmails)
	require.NotNil(t, rec.events[2].AnalysisDetails)
	assert.Equal(t, "Juan Pérez renovación Statsen", rec.events[2].AnalysisDetails.OriginalText)
	assert.Equal(t, "2 correos relevantes encontrados", rec.events[6].Step)

	last := rec.final()
	assert.Equal(t, "Búsqueda completada - Reporte generado", last.Step)
	assert.Equal(t, []string{
		"Teléfono: +56 9 8765 4321",
		"Empresa: Statsen Chile SpA",
		"Contacto: Ana Rojas (ana@focovi.cl)",
	}, last.FoundInfo)
	require.NotNil(t, last.ContactInfo)
	assert.Equal(t, "+56 9 8765 4321", last.ContactInfo.Phone)

	rep := last.DetailedReport
	require.NotNil(t, rep)
	assert.Equal(t, 2, rep.ContactProfile.EmailsAnalyzed)
	assert.Equal(t, 3, rep.SearchStrategy.TotalEmailsAvailable)
	assert.Equal(t, "Búsqueda específica por nombres propios", rep.SearchStrategy.SearchApproach)
	assert.Contains(t, rep.SearchStrategy.FiltersUsed.Priority, "statsen")
	assert.Contains(t, rep.SearchStrategy.FiltersUsed.Priority, "juan@statsen.cl")
	assert.Empty(t, rep.SearchStrategy.FiltersUsed.Context)

	require.Len(t, rep.Communications, 2)
	assert.Equal(t, 1, rep.Communications[0].EmailID)
	assert.Equal(t, "Juan Pérez <juan@statsen.cl>", rep.Communications[0].Metadata.From)
	assert.Equal(t, "No disponible", rep.Communications[1].Metadata.Date)
	require.Len(t, rep.Timeline, 2)
	assert.Equal(t, "Fecha no disponible", rep.Timeline[1].Date)
	require.Len(t, rep.RelatedContacts, 1, "el propio contacto no se lista")
	assert.Equal(t, "ana@focovi.cl", rep.RelatedContacts[0].Email)
	assert.Contains(t, rep.Summary, "Se analizaron 2 correos de un total de 3 disponibles.")
}

func TestContactSearch_SinTerminosValidos(t *testing.T) {
	rec := &recorder{}
	err := newSearch(buzon()).Run(context.Background(), dto.ContactSearchRequest{
		ContactName:   "ver",
		PostItContent: "hoy",
	}, rec.emit)
	require.NoError(t, err)

	assert.Equal(t, []float64{10, 30, 35, 40, 60, 50, 100}, rec.progress())
	assert.Equal(t, "Búsqueda completada - Sin resultados específicos", rec.events[4].Step)
	assert.Contains(t, rec.events[4].Filters, "No se detectaron nombres específicos en el post-it")

	rep := rec.final().DetailedReport
	assert.Equal(t, "Sin términos válidos detectados", rep.SearchStrategy.SearchApproach)
	assert.Empty(t, rep.Communications)
	assert.NotNil(t, rep.Communications)
	assert.Contains(t, rep.Summary, "No se encontró información de contacto específica.")
}

func TestContactSearch_ServidorCaidoEmiteEventoDeError(t *testing.T) {
	rec := &recorder{}
	err := newSearch(&fakeBackend{err: errors.New("boom")}).Run(context.Background(),
		dto.ContactSearchRequest{ContactName: "Juan"}, rec.emit)
	require.NoError(t, err, "el fallo viaja como evento")

	require.Len(t, rec.events, 2)
	last := rec.final()
	assert.Equal(t, float64(100), last.Progress)
	assert.Equal(t, "Error en la búsqueda: No se pudo conectar al servidor de correos: boom", last.Step)
	assert.Equal(t, []string{"Error en búsqueda"}, last.Filters)
}

func TestContactSearch_ClienteDesconectadoCorta(t *testing.T) {
	rec := &recorder{failAt: 3}
	err := newSearch(buzon()).Run(context.Background(), dto.ContactSearchRequest{ContactName: "Juan Pérez"}, rec.emit)

	require.Error(t, err)
	assert.Equal(t, "client gone", err.Error())
	assert.Len(t, rec.events, 3, "no se emite nada después del fallo")
}

func TestContactSearch_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	rec := &recorder{}
	emit := func(ev dto.ProgressEvent) error {
		if ev.AnalyzedEmails != nil {
			cancel()
		}
		return rec.emit(ev)
	}

	err := newSearch(buzon()).Run(ctx, dto.ContactSearchRequest{ContactName: "Juan Pérez", PostItContent: "Statsen"}, emit)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.NotEqual(t, float64(100), rec.final().Progress)
}

func TestContactSearch_ValidaNombre(t *testing.T) {
	uc := newSearch(buzon())
	assert.True(t, errors.Is(uc.Validate(dto.ContactSearchRequest{ContactName: " "}), domain.ErrInvalidInput))
	assert.NoError(t, uc.Validate(dto.ContactSearchRequest{ContactName: "Ana"}))
}
