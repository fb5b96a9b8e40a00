package ports

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/patriciastocker/intranet/internal/application/dto"
	"github.com/patriciastocker/intranet/internal/domain/entity"
)

// MailBackend servicio externo de indexación de correo (y su buscador instantáneo).
// Las respuestas no 2xx se devuelven como error envuelto en domain.ErrUpstream;
// un 404 de Full se devuelve como domain.ErrNotFound.
type MailBackend interface {
	// Raw reenvía GET path?query y devuelve el JSON sin tocar.
	Raw(ctx context.Context, path string, query url.Values) (json.RawMessage, error)
	List(ctx context.Context, path string, query url.Values) (*dto.UpstreamEmailList, error)
	Search(ctx context.Context, path string, query url.Values) (*dto.UpstreamSearchResult, error)
	Full(ctx context.Context, id string) (*dto.UpstreamEmail, error)
	Attachment(ctx context.Context, emailID, filename string) (*dto.Attachment, error)
	// InstantSearch consulta el buscador FTS; el mapa se completa con los tiempos del proxy.
	InstantSearch(ctx context.Context, query url.Values) (map[string]any, error)
}

// MailboxReader lectura directa del buzón IMAP.
type MailboxReader interface {
	ListMailboxes(ctx context.Context) ([]entity.Mailbox, error)
	// ListPattern ejecuta LIST con referencia y patrón arbitrarios (diagnóstico).
	ListPattern(ctx context.Context, reference, pattern string) ([]entity.Mailbox, error)
	EmailsWithPreview(ctx context.Context, folder string, page, limit int) (*entity.EmailPage, error)
	FolderStats(ctx context.Context, folder string) (*entity.FolderStats, error)
	ServerInfo(ctx context.Context) (*entity.ServerInfo, error)
}

// MailPart adjunto de un correo saliente. Embedded + CID lo referencia inline.
type MailPart struct {
	Filename string
	Data     []byte
	Embedded bool
	CID      string
}

// OutgoingMail correo a enviar por SMTP.
type OutgoingMail struct {
	To          []string
	Cc          []string
	Subject     string
	Body        string
	HTML        bool
	Attachments []MailPart
}

// MailSender envío SMTP con reintentos.
type MailSender interface {
	Send(ctx context.Context, m OutgoingMail) error
}
