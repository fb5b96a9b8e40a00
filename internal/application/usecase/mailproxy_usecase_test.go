package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patriciastocker/intranet/internal/application/dto"
	"github.com/patriciastocker/intranet/internal/application/usecase"
	"github.com/patriciastocker/intranet/internal/domain"
	"github.com/patriciastocker/intranet/pkg/logger"
)

func newProxy(b *fakeBackend) *usecase.MailProxyUseCase {
	return usecase.NewMailProxyUseCase(b, "tomas@patriciastocker.com", "tomas@patriciastocker.com", logger.Nop())
}

func upstream(id, subject, from, preview string) dto.UpstreamEmail {
	return dto.UpstreamEmail{EmailID: dto.FlexString(id), Subject: subject, From: from, Preview: preview}
}

// ──────────────────────────────────────────────────────────────────────────────
// Funciones puras
// ──────────────────────────────────────────────────────────────────────────────

func TestFromName(t *testing.T) {
	cases := map[string]string{
		`"Juan Pérez" <juan@statsen.cl>`: "Juan Pérez",
		"Ana Rojas <ana@focovi.cl>":      "Ana Rojas",
		"<solo@correo.cl>":               "<solo@correo.cl>",
		"plain@correo.cl":                "plain@correo.cl",
		"":                               "Desconocido",
	}
	for in, want := range cases {
		assert.Equal(t, want, usecase.FromName(in), in)
	}
}

func TestNormalizeDate(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-04T13:00:00.000Z", usecase.NormalizeDate("Tue, 04 Mar 2025 10:00:00 -0300", now))
	assert.Equal(t, "2025-03-04T10:00:00.000Z", usecase.NormalizeDate("2025-03-04 10:00:00", now))
	assert.Equal(t, "2025-01-01T00:00:00.000Z", usecase.NormalizeDate("", now))
	assert.Equal(t, "2025-01-01T00:00:00.000Z", usecase.NormalizeDate("ayer", now), "fecha ilegible = ahora")
}

// ──────────────────────────────────────────────────────────────────────────────
// Light
// ──────────────────────────────────────────────────────────────────────────────

func TestLight_TransformaYFiltraLocalmente(t *testing.T) {
	b := &fakeBackend{list: &dto.UpstreamEmailList{Total: 40, Emails: []dto.UpstreamEmail{
		upstream("11", "Oposición marca", "Juan <juan@statsen.cl>", ""),
		upstream("", "", "", "oposición pendiente"),
		upstream("13", "Factura", "Ana <ana@focovi.cl>", "adjunto"),
	}}}

	out, err := newProxy(b).Light(context.Background(), dto.LightListRequest{Search: "OPOSICIÓN", Limit: 1})
	require.NoError(t, err)

	call := b.last()
	assert.Equal(t, "/api/emails/light", call.Path)
	assert.Equal(t, "INBOX", call.Query.Get("folder"))
	assert.Equal(t, "1", call.Query.Get("page"))

	assert.Equal(t, 2, out.Count, "total tras filtrar")
	assert.Equal(t, 2, out.TotalPages)
	assert.Equal(t, 2, out.TotalPagesAlt)
	require.Len(t, out.Emails, 1, "una página de tamaño 1")
	assert.Equal(t, "11", out.Emails[0].ID)
	assert.Equal(t, "Juan", out.Emails[0].FromName)
	assert.True(t, out.LightMode)
	require.NotNil(t, out.SearchQuery)
	assert.Equal(t, "OPOSICIÓN", *out.SearchQuery)
	assert.True(t, out.Status.Connected)
}

func TestLight_UltraUsaOtroEndpointYValoresPorDefecto(t *testing.T) {
	b := &fakeBackend{list: &dto.UpstreamEmailList{Total: 1, Emails: []dto.UpstreamEmail{
		upstream("", "", "", ""),
	}}}

	out, err := newProxy(b).Light(context.Background(), dto.LightListRequest{Ultra: true})
	require.NoError(t, err)

	assert.Equal(t, "/api/emails/ultra-light", b.last().Path)
	assert.Equal(t, "5", b.last().Query.Get("limit"))
	e := out.Emails[0]
	assert.Equal(t, "0", e.ID, "sin email_id se usa el índice")
	assert.Equal(t, "Sin asunto", e.Subject)
	assert.Equal(t, "Desconocido", e.From)
	assert.Equal(t, "Sin contenido disponible", e.Preview)
	assert.True(t, e.UltraLightMode)
	assert.False(t, out.LightMode)
	assert.Nil(t, out.SearchQuery)
}

func TestLight_ErrorDevuelveRespaldo(t *testing.T) {
	b := &fakeBackend{err: errors.New("connection refused")}

	out, err := newProxy(b).Light(context.Background(), dto.LightListRequest{Page: 3, Folder: "Sent"})
	require.Error(t, err)
	assert.Equal(t, "connection refused", out.Error)
	assert.Equal(t, 1, out.Page)
	assert.Equal(t, usecase.LightLimit, out.PageSize)
	assert.Equal(t, "INBOX", out.Folder)
	assert.False(t, out.Status.Connected)
	assert.NotNil(t, out.Emails)
}

// ──────────────────────────────────────────────────────────────────────────────
// Búsquedas
// ──────────────────────────────────────────────────────────────────────────────

func TestSearch_QueryVacioNoLlamaAlServicio(t *testing.T) {
	b := &fakeBackend{}
	out, err := newProxy(b).Search(context.Background(), " ", "", 0)

	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, "Query de búsqueda requerido", out.Error)
	assert.Equal(t, "tomas@patriciastocker.com", out.RecipientFilter)
	assert.Empty(t, b.calls)
}

func TestSearch_MarcaResultadosYCriterio(t *testing.T) {
	b := &fakeBackend{search: &dto.UpstreamSearchResult{
		Emails:     []dto.UpstreamEmail{{EmailID: "5", Subject: "Poder", Body: "texto", HTMLBody: "<p>texto</p>"}},
		TotalFound: 1, Showing: 1,
	}}

	out, err := newProxy(b).Search(context.Background(), "poder", "otro@correo.cl", 0)
	require.NoError(t, err)

	q := b.last().Query
	assert.Equal(t, "otro@correo.cl", q.Get("recipient"))
	assert.Equal(t, "20", q.Get("limit"))
	assert.Equal(t, json.RawMessage(`""`), out.SearchCriteria)
	require.Len(t, out.Emails, 1)
	e := out.Emails[0]
	assert.True(t, e.SearchResult)
	assert.Equal(t, "poder", e.SearchQuery)
	require.NotNil(t, e.Body)
	assert.Equal(t, "<p>texto</p>", *e.HTMLBody)
}

func TestSearchEmails_QueryVacioDevuelveVacio(t *testing.T) {
	b := &fakeBackend{}
	out, err := newProxy(b).SearchEmails(context.Background(), dto.SearchEmailsRequest{Page: 2})
	require.NoError(t, err)
	assert.Empty(t, b.calls)

	m := out.(map[string]any)
	assert.Equal(t, 2, m["page"])
	assert.Equal(t, usecase.PageLimit, m["limit"])
}

func TestInstantSearch_AgregaTiempos(t *testing.T) {
	b := &fakeBackend{instant: map[string]any{"emails": []any{}, "search_time_ms": float64(12)}}
	out, err := newProxy(b).InstantSearch(context.Background(), dto.InstantSearchRequest{Query: "marca"})
	require.NoError(t, err)

	assert.Equal(t, "tomas@patriciastocker.com", b.last().Query.Get("recipient"))
	assert.Contains(t, out, "proxy_time_ms")
	assert.GreaterOrEqual(t, out["total_time_ms"].(float64), float64(12))
}

func TestInstantSearch_ErrorDevuelveRespaldo(t *testing.T) {
	b := &fakeBackend{err: errors.New("timeout")}
	out, err := newProxy(b).InstantSearch(context.Background(), dto.InstantSearchRequest{Query: "marca"})
	require.Error(t, err)
	assert.Equal(t, "SQLite FTS5 Local (Error)", out["search_method"])
	assert.Equal(t, "marca", out["query"])
	assert.Equal(t, "timeout", out["error"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Correo completo, adjuntos y pass-through
// ──────────────────────────────────────────────────────────────────────────────

func TestFull_NoEncontrado(t *testing.T) {
	out, err := newProxy(&fakeBackend{}).Full(context.Background(), "99")
	assert.Nil(t, out)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestFull_MarcaContenidoCompleto(t *testing.T) {
	b := &fakeBackend{full: &dto.UpstreamEmail{Subject: "Hola", Body: "cuerpo"}}
	out, err := newProxy(b).Full(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "/api/emails/42/full", b.last().Path)
	assert.Equal(t, "42", out.Email.ID)
	assert.True(t, out.Email.FullContent)
	assert.Equal(t, "cuerpo", *out.Email.Body)
}

func TestForRecipient_ConFecha(t *testing.T) {
	b := &fakeBackend{search: &dto.UpstreamSearchResult{Emails: []dto.UpstreamEmail{{EmailID: "3"}}, TotalFound: 1, Showing: 1}}
	out, err := newProxy(b).ForRecipient(context.Background(), 0, "2025-01-01")
	require.NoError(t, err)

	assert.Equal(t, "/api/emails/for-tomas", b.last().Path)
	assert.Equal(t, "5", b.last().Query.Get("limit"))
	assert.Equal(t, "2025-01-01", b.last().Query.Get("date_from"))
	require.NotNil(t, out.DateFrom)
	assert.Equal(t, "3", out.Emails[0].EmailID)
	assert.Equal(t, "tomas@patriciastocker.com", out.Emails[0].FilterApplied)
}

func TestAttachment_CompletaCabeceras(t *testing.T) {
	b := &fakeBackend{attach: &dto.Attachment{Data: []byte("PDF")}}
	att, err := newProxy(b).Attachment(context.Background(), "7", "poder.pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", att.ContentType)
	assert.Equal(t, `attachment; filename="poder.pdf"`, att.ContentDisposition)
}

func TestPaginated_ErrorDevuelveRespaldo(t *testing.T) {
	b := &fakeBackend{err: errors.New("502")}
	out, err := newProxy(b).Paginated(context.Background(), dto.PageRequest{}, "tomas")
	require.Error(t, err)

	assert.Equal(t, "/api/all-emails", b.last().Path)
	assert.Equal(t, "tomas", b.last().Query.Get("account"))
	m := out.(map[string]any)
	assert.Equal(t, "502", m["error"])
	assert.Equal(t, usecase.PageLimit, m["page_size"])
}

func TestEmails_PassThrough(t *testing.T) {
	raw := json.RawMessage(`{"emails":[],"count":0}`)
	out, err := newProxy(&fakeBackend{raw: raw}).Emails(context.Background())
	require.NoError(t, err)
	assert.Equal(t, raw, out)
}
