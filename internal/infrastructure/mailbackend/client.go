// Package mailbackend consume por HTTP el servicio de indexación de correo y su buscador instantáneo.
package mailbackend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/patriciastocker/intranet/internal/application/dto"
	"github.com/patriciastocker/intranet/internal/application/ports"
	"github.com/patriciastocker/intranet/internal/domain"
	"github.com/patriciastocker/intranet/internal/infrastructure/metrics"
	"github.com/patriciastocker/intranet/pkg/config"
	"github.com/patriciastocker/intranet/pkg/logger"
)

var _ ports.MailBackend = (*Client)(nil)

const (
	serviceMail   = "mail"
	serviceSearch = "search"

	maxJSONBody       = 16 << 20
	maxAttachmentBody = 64 << 20
)

// Client adaptador HTTP del servicio de indexación.
type Client struct {
	mailURL    string
	searchURL  string
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient construye el cliente con los URLs base y el timeout de cfg.
func NewClient(cfg config.UpstreamConfig, log *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		mailURL:    strings.TrimRight(cfg.MailURL, "/"),
		searchURL:  strings.TrimRight(cfg.SearchURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log.Component("mailbackend"),
	}
}

// Raw devuelve el JSON de GET path sin transformar.
func (c *Client) Raw(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.getJSON(ctx, serviceMail, c.mailURL, path, query, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// List decodifica una página {emails,total}.
func (c *Client) List(ctx context.Context, path string, query url.Values) (*dto.UpstreamEmailList, error) {
	var out dto.UpstreamEmailList
	if err := c.getJSON(ctx, serviceMail, c.mailURL, path, query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Search decodifica un resultado {emails,total_found,showing,search_criteria}.
func (c *Client) Search(ctx context.Context, path string, query url.Values) (*dto.UpstreamSearchResult, error) {
	var out dto.UpstreamSearchResult
	if err := c.getJSON(ctx, serviceMail, c.mailURL, path, query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Full obtiene el correo completo; domain.ErrNotFound si el servicio responde 404.
func (c *Client) Full(ctx context.Context, id string) (*dto.UpstreamEmail, error) {
	var out dto.UpstreamFullEmail
	path := "/api/emails/" + url.PathEscape(id) + "/full"
	if err := c.getJSON(ctx, serviceMail, c.mailURL, path, nil, &out); err != nil {
		return nil, err
	}
	return &out.Email, nil
}

// InstantSearch consulta el buscador FTS (Upstream.SearchURL).
func (c *Client) InstantSearch(ctx context.Context, query url.Values) (map[string]any, error) {
	out := map[string]any{}
	if err := c.getJSON(ctx, serviceSearch, c.searchURL, "/api/instant-search", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Attachment descarga un adjunto binario.
func (c *Client) Attachment(ctx context.Context, emailID, filename string) (*dto.Attachment, error) {
	path := "/api/attachment/" + url.PathEscape(emailID) + "/" + url.PathEscape(filename)
	resp, err := c.get(ctx, serviceMail, c.mailURL, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAttachmentBody))
	if err != nil {
		return nil, c.fail(serviceMail, path, fmt.Errorf("leer adjunto: %w", err))
	}
	return &dto.Attachment{
		ContentType:        resp.Header.Get("Content-Type"),
		ContentDisposition: resp.Header.Get("Content-Disposition"),
		Data:               data,
	}, nil
}

func (c *Client) getJSON(ctx context.Context, service, base, path string, query url.Values, out any) error {
	resp, err := c.get(ctx, service, base, path, query)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxJSONBody))
	if err != nil {
		return c.fail(service, path, fmt.Errorf("leer respuesta: %w", err))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return c.fail(service, path, fmt.Errorf("deserializar respuesta: %w", err))
	}
	return nil
}

// get ejecuta la petición; un estado no 2xx se convierte en error (404 → domain.ErrNotFound).
func (c *Client) get(ctx context.Context, service, base, path string, query url.Values) (*http.Response, error) {
	u := base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("mailbackend: crear request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, c.fail(service, path, fmt.Errorf("timeout o cancelación: %w", ctx.Err()))
		}
		return nil, c.fail(service, path, fmt.Errorf("llamada HTTP fallida: %w", err))
	}
	c.log.Debug().Str("service", service).Str("path", path).Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).Msg("respuesta del servicio de correo")

	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, fmt.Errorf("mailbackend: %s: %w", path, domain.ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, c.fail(service, path, fmt.Errorf("Error del servidor de correo: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode)))
	}
	return resp, nil
}

func (c *Client) fail(service, path string, err error) error {
	metrics.UpstreamErrors.WithLabelValues(service).Inc()
	c.log.Error().Err(err).Str("service", service).Str("path", path).Msg("servicio de correo no disponible")
	return fmt.Errorf("%w: %w", domain.ErrUpstream, err)
}
