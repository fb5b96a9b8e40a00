package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/patriciastocker/intranet/internal/application/dto"
	"github.com/patriciastocker/intranet/internal/application/ports"
	"github.com/patriciastocker/intranet/internal/domain"
	"github.com/patriciastocker/intranet/pkg/logger"
)

// ISOLayout formato de fechas hacia el frontend (equivalente a Date.toISOString).
const ISOLayout = "2006-01-02T15:04:05.000Z"

// Límites por defecto de cada listado del proxy.
const (
	LightLimit        = 10
	UltraLightLimit   = 5
	SearchLimit       = 20
	ForRecipientLimit = 5
	PageLimit         = 50
)

var upstreamDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// MailProxyUseCase reenvía las consultas de correo al servicio de indexación y normaliza sus respuestas.
// Ante un error del servicio cada método devuelve, junto al error, el cuerpo de respaldo que espera el frontend.
type MailProxyUseCase struct {
	backend         ports.MailBackend
	recipientFilter string
	forRecipient    string
	log             *logger.Logger
	now             func() time.Time
}

// NewMailProxyUseCase construye el caso de uso.
// recipientFilter es el filtro por defecto de búsquedas; forRecipient el buzón de /api/emails/for-tomas.
func NewMailProxyUseCase(backend ports.MailBackend, recipientFilter, forRecipient string, log *logger.Logger) *MailProxyUseCase {
	return &MailProxyUseCase{
		backend:         backend,
		recipientFilter: recipientFilter,
		forRecipient:    forRecipient,
		log:             log.Component("mailproxy"),
		now:             time.Now,
	}
}

// RecipientFilter filtro de destinatario por defecto.
func (uc *MailProxyUseCase) RecipientFilter() string { return uc.recipientFilter }

func (uc *MailProxyUseCase) connected() dto.ProxyStatus {
	return dto.ProxyStatus{Connected: true, LastCheck: uc.now().UTC().Format(ISOLayout)}
}

func (uc *MailProxyUseCase) disconnected(err error) dto.ProxyStatus {
	msg := err.Error()
	return dto.ProxyStatus{Connected: false, Error: &msg, LastCheck: uc.now().UTC().Format(ISOLayout)}
}

// ── Pass-through ──────────────────────────────────────────────────────────────

// Emails reenvía /api/emails.
func (uc *MailProxyUseCase) Emails(ctx context.Context) (any, error) {
	raw, err := uc.backend.Raw(ctx, "/api/emails", nil)
	if err != nil {
		uc.log.Error().Err(err).Msg("proxy de correos")
		return map[string]any{
			"error":  err.Error(),
			"emails": []any{},
			"status": uc.disconnected(err),
			"count":  0,
		}, err
	}
	return raw, nil
}

// Paginated reenvía la página al listado completo del servicio (/api/all-emails).
func (uc *MailProxyUseCase) Paginated(ctx context.Context, page dto.PageRequest, account string) (any, error) {
	page.DefaultPage(PageLimit)
	q := url.Values{"page": {strconv.Itoa(page.Page)}, "limit": {strconv.Itoa(page.Limit)}}
	if account != "" {
		q.Set("account", account)
	}
	return uc.paged(ctx, "/api/all-emails", q)
}

// WithPreview reenvía la página con vista previa del cuerpo.
func (uc *MailProxyUseCase) WithPreview(ctx context.Context, page dto.PageRequest, folder, account string) (any, error) {
	page.DefaultPage(PageLimit)
	q := url.Values{
		"page":   {strconv.Itoa(page.Page)},
		"limit":  {strconv.Itoa(page.Limit)},
		"folder": {orDefault(folder, "INBOX")},
	}
	if account != "" {
		q.Set("account", account)
	}
	return uc.paged(ctx, "/api/emails/with-preview", q)
}

func (uc *MailProxyUseCase) paged(ctx context.Context, path string, q url.Values) (any, error) {
	raw, err := uc.backend.Raw(ctx, path, q)
	if err != nil {
		uc.log.Error().Err(err).Str("path", path).Msg("proxy de correos paginados")
		return map[string]any{
			"error":       err.Error(),
			"emails":      []any{},
			"count":       0,
			"total_count": 0,
			"page":        1,
			"page_size":   PageLimit,
			"total_pages": 0,
		}, err
	}
	return raw, nil
}

// LoadingStatus reenvía el estado de carga inicial del servicio.
func (uc *MailProxyUseCase) LoadingStatus(ctx context.Context) (any, error) {
	raw, err := uc.backend.Raw(ctx, "/api/loading-status", nil)
	if err != nil {
		return map[string]any{
			"initial_load_complete": false,
			"cached_emails_count":   0,
			"connection_status": map[string]any{
				"connected": false,
				"error":     err.Error(),
			},
		}, err
	}
	return raw, nil
}

// SearchEmails búsqueda general por carpeta. Consulta vacía = resultado vacío sin llamar al servicio.
func (uc *MailProxyUseCase) SearchEmails(ctx context.Context, in dto.SearchEmailsRequest) (any, error) {
	pr := dto.PageRequest{Page: in.Page, Limit: in.Limit}
	pr.DefaultPage(PageLimit)
	if strings.TrimSpace(in.Query) == "" {
		return map[string]any{
			"emails":      []any{},
			"total_count": 0,
			"page":        pr.Page,
			"limit":       pr.Limit,
			"total_pages": 0,
			"query":       in.Query,
		}, nil
	}
	q := url.Values{
		"q":      {in.Query},
		"folder": {orDefault(in.Folder, "INBOX")},
		"page":   {strconv.Itoa(pr.Page)},
		"limit":  {strconv.Itoa(pr.Limit)},
	}
	if in.Account != "" {
		q.Set("account", in.Account)
	}
	raw, err := uc.backend.Raw(ctx, "/api/search-emails", q)
	if err != nil {
		return map[string]any{
			"error":       err.Error(),
			"emails":      []any{},
			"total_count": 0,
			"page":        1,
			"limit":       PageLimit,
			"total_pages": 0,
			"query":       "",
		}, err
	}
	return raw, nil
}

// InstantSearch consulta el buscador FTS y agrega los tiempos medidos por el proxy.
// Consulta vacía = domain.ErrInvalidInput con el cuerpo de respuesta vacío.
func (uc *MailProxyUseCase) InstantSearch(ctx context.Context, in dto.InstantSearchRequest) (map[string]any, error) {
	recipient := orDefault(in.Recipient, uc.recipientFilter)
	limit := in.Limit
	if limit <= 0 {
		limit = SearchLimit
	}
	empty := map[string]any{
		"emails":           []any{},
		"total_found":      0,
		"showing":          0,
		"query":            "",
		"recipient_filter": recipient,
		"search_time_ms":   0,
	}
	if strings.TrimSpace(in.Query) == "" {
		empty["error"] = "Query de búsqueda requerido"
		return empty, fmt.Errorf("query de búsqueda requerido: %w", domain.ErrInvalidInput)
	}

	start := uc.now()
	data, err := uc.backend.InstantSearch(ctx, url.Values{
		"q":         {in.Query},
		"recipient": {recipient},
		"limit":     {strconv.Itoa(limit)},
	})
	elapsed := uc.now().Sub(start).Milliseconds()
	if err != nil {
		uc.log.Error().Err(err).Str("query", in.Query).Msg("búsqueda instantánea")
		empty["error"] = err.Error()
		empty["query"] = in.Query
		empty["search_method"] = "SQLite FTS5 Local (Error)"
		empty["status"] = uc.disconnected(err)
		return empty, err
	}
	serverMs, _ := data["search_time_ms"].(float64)
	data["proxy_time_ms"] = elapsed
	data["total_time_ms"] = float64(elapsed) + serverMs
	uc.log.Debug().Str("query", in.Query).Int64("proxy_ms", elapsed).Float64("server_ms", serverMs).Msg("búsqueda instantánea completada")
	return data, nil
}

// ── Listados transformados ────────────────────────────────────────────────────

// Light lista ligera (sin cuerpo) con búsqueda y paginación locales. Ultra usa el endpoint ultra-ligero.
func (uc *MailProxyUseCase) Light(ctx context.Context, in dto.LightListRequest) (*dto.LightListResponse, error) {
	def := LightLimit
	path := "/api/emails/light"
	if in.Ultra {
		def, path = UltraLightLimit, "/api/emails/ultra-light"
	}
	if in.Page <= 0 {
		in.Page = 1
	}
	if in.Limit <= 0 {
		in.Limit = def
	}
	in.Folder = orDefault(in.Folder, "INBOX")

	list, err := uc.backend.List(ctx, path, url.Values{
		"page":   {strconv.Itoa(in.Page)},
		"limit":  {strconv.Itoa(in.Limit)},
		"folder": {in.Folder},
	})
	if err != nil {
		uc.log.Error().Err(err).Str("path", path).Msg("proxy ligero de correos")
		return &dto.LightListResponse{
			Error:          err.Error(),
			Emails:         []dto.ProxyEmail{},
			Page:           1,
			PageSize:       def,
			Folder:         "INBOX",
			LightMode:      !in.Ultra,
			UltraLightMode: in.Ultra,
			Status:         uc.disconnected(err),
		}, err
	}

	emails := make([]dto.ProxyEmail, 0, len(list.Emails))
	for i, e := range list.Emails {
		pe := uc.transform(e, strconv.Itoa(i))
		pe.LightMode, pe.UltraLightMode = !in.Ultra, in.Ultra
		emails = append(emails, pe)
	}

	total := list.Total
	var searchQuery *string
	if in.Search != "" {
		s := in.Search
		searchQuery = &s
		emails = filterEmails(emails, in.Search)
		total = len(emails)
		emails = pageSlice(emails, in.Page, in.Limit)
	}
	pages := dto.TotalPages(total, in.Limit)

	return &dto.LightListResponse{
		Emails:         emails,
		Count:          total,
		Page:           in.Page,
		Limit:          in.Limit,
		TotalPagesAlt:  pages,
		Folder:         in.Folder,
		SearchQuery:    searchQuery,
		TotalCount:     total,
		PageSize:       in.Limit,
		TotalPages:     pages,
		LightMode:      !in.Ultra,
		UltraLightMode: in.Ultra,
		Status:         uc.connected(),
	}, nil
}

// Search búsqueda en el servicio filtrada por destinatario.
func (uc *MailProxyUseCase) Search(ctx context.Context, query, recipient string, limit int) (*dto.SearchResponse, error) {
	recipient = orDefault(recipient, uc.recipientFilter)
	if limit <= 0 {
		limit = SearchLimit
	}
	if strings.TrimSpace(query) == "" {
		return &dto.SearchResponse{
			Error:           "Query de búsqueda requerido",
			Emails:          []dto.ProxyEmail{},
			RecipientFilter: recipient,
		}, fmt.Errorf("query de búsqueda requerido: %w", domain.ErrInvalidInput)
	}

	res, err := uc.backend.Search(ctx, "/api/emails/search", url.Values{
		"q":         {query},
		"recipient": {recipient},
		"limit":     {strconv.Itoa(limit)},
	})
	if err != nil {
		uc.log.Error().Err(err).Str("query", query).Msg("proxy de búsqueda")
		st := uc.disconnected(err)
		return &dto.SearchResponse{
			Error:           err.Error(),
			Emails:          []dto.ProxyEmail{},
			Query:           query,
			RecipientFilter: recipient,
			SearchCriteria:  json.RawMessage(`""`),
			Status:          &st,
		}, err
	}

	emails := make([]dto.ProxyEmail, 0, len(res.Emails))
	for i, e := range res.Emails {
		pe := uc.transform(e, strconv.Itoa(i))
		withBody(&pe, e)
		pe.SearchResult, pe.SearchQuery = true, query
		emails = append(emails, pe)
	}
	criteria := res.SearchCriteria
	if len(criteria) == 0 || string(criteria) == "null" {
		criteria = json.RawMessage(`""`)
	}
	st := uc.connected()
	return &dto.SearchResponse{
		Emails:          emails,
		TotalFound:      res.TotalFound,
		Showing:         res.Showing,
		Query:           query,
		RecipientFilter: recipient,
		SearchCriteria:  criteria,
		Status:          &st,
	}, nil
}

// ForRecipient correos dirigidos al buzón configurado, opcionalmente desde dateFrom.
func (uc *MailProxyUseCase) ForRecipient(ctx context.Context, limit int, dateFrom string) (*dto.ForRecipientResponse, error) {
	if limit <= 0 {
		limit = ForRecipientLimit
	}
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	if dateFrom != "" {
		q.Set("date_from", dateFrom)
	}
	res, err := uc.backend.Search(ctx, "/api/emails/for-tomas", q)
	if err != nil {
		uc.log.Error().Err(err).Str("recipient", uc.forRecipient).Msg("proxy por destinatario")
		return &dto.ForRecipientResponse{
			Error:  err.Error(),
			Emails: []dto.ProxyEmail{},
			Filter: uc.forRecipient,
			Status: uc.disconnected(err),
		}, err
	}

	emails := make([]dto.ProxyEmail, 0, len(res.Emails))
	for i, e := range res.Emails {
		pe := uc.transform(e, strconv.Itoa(i))
		pe.EmailID = pe.ID
		withBody(&pe, e)
		pe.FilterApplied = uc.forRecipient
		emails = append(emails, pe)
	}
	out := &dto.ForRecipientResponse{
		Emails:     emails,
		TotalFound: res.TotalFound,
		Showing:    res.Showing,
		Filter:     uc.forRecipient,
		Status:     uc.connected(),
	}
	if dateFrom != "" {
		out.DateFrom = &dateFrom
	}
	return out, nil
}

// Full correo completo. Si el servicio no lo encuentra devuelve domain.ErrNotFound.
func (uc *MailProxyUseCase) Full(ctx context.Context, id string) (*dto.FullEmailResponse, error) {
	e, err := uc.backend.Full(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		uc.log.Error().Err(err).Str("email_id", id).Msg("proxy de correo completo")
		return &dto.FullEmailResponse{Error: err.Error(), Status: uc.disconnected(err)}, err
	}
	pe := uc.transform(*e, id)
	withBody(&pe, *e)
	pe.FullContent = true
	return &dto.FullEmailResponse{Email: &pe, Status: uc.connected()}, nil
}

// Attachment descarga un adjunto completando las cabeceras que falten.
func (uc *MailProxyUseCase) Attachment(ctx context.Context, emailID, filename string) (*dto.Attachment, error) {
	att, err := uc.backend.Attachment(ctx, emailID, filename)
	if err != nil {
		uc.log.Error().Err(err).Str("email_id", emailID).Str("filename", filename).Msg("proxy de adjunto")
		return nil, err
	}
	if att.ContentType == "" {
		att.ContentType = "application/octet-stream"
	}
	if att.ContentDisposition == "" {
		att.ContentDisposition = fmt.Sprintf("attachment; filename=%q", filename)
	}
	return att, nil
}

// ── Transformación ────────────────────────────────────────────────────────────

// transform normaliza un correo del servicio; fallbackID se usa si no trae email_id.
func (uc *MailProxyUseCase) transform(e dto.UpstreamEmail, fallbackID string) dto.ProxyEmail {
	id := e.EmailID.String()
	if id == "" {
		id = fallbackID
	}
	return dto.ProxyEmail{
		ID:       id,
		Subject:  orDefault(e.Subject, "Sin asunto"),
		From:     orDefault(e.From, "Desconocido"),
		FromName: FromName(e.From),
		To:       e.To,
		Date:     NormalizeDate(e.Date, uc.now()),
		Preview:  orDefault(e.Preview, "Sin contenido disponible"),
		UID:      id,
	}
}

func withBody(pe *dto.ProxyEmail, e dto.UpstreamEmail) {
	body, html := e.Body, e.HTMLBody
	pe.Body, pe.HTMLBody = &body, &html
}

// FromName nombre visible del remitente: lo que precede a "<", sin comillas.
func FromName(from string) string {
	name := from
	if i := strings.IndexByte(from, '<'); i >= 0 {
		name = from[:i]
	}
	name = strings.ReplaceAll(strings.TrimSpace(name), `"`, "")
	if name != "" {
		return name
	}
	return orDefault(from, "Desconocido")
}

// NormalizeDate reescribe s en ISO-8601 UTC; vacío o no interpretable = now.
func NormalizeDate(s string, now time.Time) string {
	s = strings.TrimSpace(s)
	if s != "" {
		for _, layout := range upstreamDateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC().Format(ISOLayout)
			}
		}
		if t, err := mail.ParseDate(s); err == nil {
			return t.UTC().Format(ISOLayout)
		}
	}
	return now.UTC().Format(ISOLayout)
}

// filterEmails conserva los correos cuyo asunto, remitente o vista previa contienen q (sin distinguir mayúsculas).
func filterEmails(emails []dto.ProxyEmail, q string) []dto.ProxyEmail {
	q = strings.ToLower(q)
	out := make([]dto.ProxyEmail, 0, len(emails))
	for _, e := range emails {
		if strings.Contains(strings.ToLower(e.Subject), q) ||
			strings.Contains(strings.ToLower(e.From), q) ||
			strings.Contains(strings.ToLower(e.Preview), q) {
			out = append(out, e)
		}
	}
	return out
}

func pageSlice[T any](items []T, page, limit int) []T {
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	return items[start:min(start+limit, len(items))]
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
