// Package imap lee el buzón de la oficina con go-imap v2 a través de un pool de conexiones.
package imap

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	goimap "github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"

	"github.com/patriciastocker/intranet/internal/application/ports"
	"github.com/patriciastocker/intranet/internal/domain/entity"
	"github.com/patriciastocker/intranet/internal/infrastructure/metrics"
	"github.com/patriciastocker/intranet/pkg/config"
	"github.com/patriciastocker/intranet/pkg/logger"
	"github.com/patriciastocker/intranet/pkg/textnorm"
)

var _ ports.MailboxReader = (*Mailbox)(nil)

const (
	previewBytes = 2048
	previewChars = 200
	dialTimeout  = 15 * time.Second
)

// Mailbox implementa ports.MailboxReader sobre el pool de clientes IMAP.
type Mailbox struct {
	pool *Pool[*imapclient.Client]
	log  *logger.Logger
}

// NewMailbox construye el lector con su pool. Las credenciales se leen de cfg.
func NewMailbox(cfg config.IMAPConfig, log *logger.Logger) *Mailbox {
	log = log.Component("imap")
	pool := NewPool(PoolConfig[*imapclient.Client]{
		Dial: func(ctx context.Context, key string) (*imapclient.Client, error) {
			c, err := dial(ctx, cfg)
			if err != nil {
				metrics.IMAPConnections.WithLabelValues("error").Inc()
				log.Error().Err(err).Str("key", key).Str("host", cfg.Host).Msg("conexión IMAP fallida")
				return nil, err
			}
			metrics.IMAPConnections.WithLabelValues("ok").Inc()
			log.Info().Str("key", key).Str("host", cfg.Host).Msg("conexión IMAP establecida")
			return c, nil
		},
		Alive: func(c *imapclient.Client) bool {
			return c.State() != goimap.ConnStateLogout && c.State() != goimap.ConnStateNone
		},
		Close: func(c *imapclient.Client) error {
			_ = c.Logout().Wait()
			return c.Close()
		},
		Retain: isCommandError,
	})
	return &Mailbox{pool: pool, log: log}
}

func dial(ctx context.Context, cfg config.IMAPConfig) (*imapclient.Client, error) {
	if cfg.User == "" || cfg.Password == "" {
		return nil, errors.New("imap: IMAP_USER/IMAP_PASSWORD no configurados")
	}
	opts := &imapclient.Options{TLSConfig: &tls.Config{ServerName: cfg.Host}}
	var (
		c   *imapclient.Client
		err error
	)
	if cfg.TLS {
		c, err = imapclient.DialTLS(cfg.Addr(), opts)
	} else {
		c, err = imapclient.DialInsecure(cfg.Addr(), opts)
	}
	if err != nil {
		return nil, fmt.Errorf("imap: dial %s: %w", cfg.Addr(), err)
	}
	done := make(chan error, 1)
	go func() { done <- c.Login(cfg.User, cfg.Password).Wait() }()
	select {
	case err = <-done:
	case <-ctx.Done():
		err = ctx.Err()
	case <-time.After(dialTimeout):
		err = errors.New("timeout de login")
	}
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("imap: login: %w", err)
	}
	return c, nil
}

// isCommandError: una respuesta NO/BAD del servidor no invalida la conexión.
func isCommandError(err error) bool {
	var imapErr *goimap.Error
	return errors.As(err, &imapErr)
}

// Close cierra todas las conexiones del pool.
func (m *Mailbox) Close() { m.pool.CloseAll() }

func (m *Mailbox) do(ctx context.Context, fn func(*imapclient.Client) error) error {
	return m.pool.Do(ctx, DefaultKey, fn)
}

// ListMailboxes lista todas las carpetas.
func (m *Mailbox) ListMailboxes(ctx context.Context) ([]entity.Mailbox, error) {
	return m.ListPattern(ctx, "", "*")
}

// ListPattern ejecuta LIST reference pattern.
func (m *Mailbox) ListPattern(ctx context.Context, reference, pattern string) ([]entity.Mailbox, error) {
	var out []entity.Mailbox
	err := m.do(ctx, func(c *imapclient.Client) error {
		list, err := c.List(reference, pattern, nil).Collect()
		if err != nil {
			return err
		}
		out = make([]entity.Mailbox, 0, len(list))
		for _, d := range list {
			out = append(out, toMailbox(d))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("imap: list %q %q: %w", reference, pattern, err)
	}
	return out, nil
}

func toMailbox(d *goimap.ListData) entity.Mailbox {
	mb := entity.Mailbox{Name: d.Mailbox, Selectable: true, Flags: make([]string, 0, len(d.Attrs))}
	if d.Delim != 0 {
		mb.Delimiter = string(d.Delim)
	}
	for _, a := range d.Attrs {
		mb.Flags = append(mb.Flags, string(a))
		switch a {
		case goimap.MailboxAttrNoSelect:
			mb.Selectable = false
		case goimap.MailboxAttrSubscribed:
			mb.Subscribed = true
		}
	}
	return mb
}

// FolderStats contadores de una carpeta vía STATUS.
func (m *Mailbox) FolderStats(ctx context.Context, folder string) (*entity.FolderStats, error) {
	var st *entity.FolderStats
	err := m.do(ctx, func(c *imapclient.Client) error {
		data, err := c.Status(folder, &goimap.StatusOptions{
			NumMessages: true,
			NumUnseen:   true,
			UIDNext:     true,
			UIDValidity: true,
		}).Wait()
		if err != nil {
			return err
		}
		st = &entity.FolderStats{
			Name:        folder,
			UIDNext:     uint32(data.UIDNext),
			UIDValidity: data.UIDValidity,
		}
		if data.NumMessages != nil {
			st.Exists = *data.NumMessages
		}
		if data.NumUnseen != nil {
			st.Unseen = *data.NumUnseen
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("imap: status %q: %w", folder, err)
	}
	return st, nil
}

// ServerInfo capacidades y, si el servidor lo soporta, el namespace.
func (m *Mailbox) ServerInfo(ctx context.Context) (*entity.ServerInfo, error) {
	info := &entity.ServerInfo{}
	err := m.do(ctx, func(c *imapclient.Client) error {
		caps := c.Caps()
		for name := range caps {
			info.Capabilities = append(info.Capabilities, string(name))
		}
		sort.Strings(info.Capabilities)
		if !caps.Has(goimap.CapNamespace) {
			return nil
		}
		ns, err := c.Namespace().Wait()
		if err != nil {
			m.log.Warn().Err(err).Msg("NAMESPACE no disponible")
			return nil
		}
		info.Namespace = &entity.Namespace{
			Personal: prefixes(ns.Personal),
			Other:    prefixes(ns.Other),
			Shared:   prefixes(ns.Shared),
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("imap: server info: %w", err)
	}
	return info, nil
}

func prefixes(ds []goimap.NamespaceDescriptor) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.Prefix)
	}
	return out
}

// EmailsWithPreview devuelve la página page (1 = más recientes) de folder con vista previa del cuerpo.
func (m *Mailbox) EmailsWithPreview(ctx context.Context, folder string, page, limit int) (*entity.EmailPage, error) {
	if folder == "" {
		folder = "INBOX"
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	out := &entity.EmailPage{Page: page, PageSize: limit, Emails: []entity.EmailHeader{}}
	err := m.do(ctx, func(c *imapclient.Client) error {
		sel, err := c.Select(folder, &goimap.SelectOptions{ReadOnly: true}).Wait()
		if err != nil {
			return err
		}
		out.Total = sel.NumMessages
		out.TotalPages = totalPages(int(sel.NumMessages), limit)
		start, end, ok := Window(sel.NumMessages, page, limit)
		if !ok {
			return nil
		}

		var seq goimap.SeqSet
		seq.AddRange(start, end)
		section := &goimap.FetchItemBodySection{
			Specifier: goimap.PartSpecifierText,
			Peek:      true,
			Partial:   &goimap.SectionPartial{Offset: 0, Size: previewBytes},
		}
		msgs, err := c.Fetch(seq, &goimap.FetchOptions{
			UID:         true,
			Flags:       true,
			Envelope:    true,
			BodySection: []*goimap.FetchItemBodySection{section},
		}).Collect()
		if err != nil {
			return err
		}
		out.Emails = append(out.Emails, headers(msgs, section, time.Now())...)
		return nil
	})
	if err != nil {
		m.log.Error().Err(err).Str("folder", folder).Int("page", page).Msg("lectura de correos fallida")
		return nil, fmt.Errorf("imap: emails %q: %w", folder, err)
	}
	sort.SliceStable(out.Emails, func(i, j int) bool { return out.Emails[i].Date.After(out.Emails[j].Date) })
	m.log.Debug().Str("folder", folder).Int("count", len(out.Emails)).Uint32("total", out.Total).Msg("correos leídos")
	return out, nil
}

// Window rango de secuencia [start,end] de la página page contando desde el final; ok=false si está vacía.
func Window(total uint32, page, limit int) (start, end uint32, ok bool) {
	if total == 0 {
		return 0, 0, false
	}
	t := int64(total)
	s := max(1, t-int64(page)*int64(limit)+1)
	e := t - int64(page-1)*int64(limit)
	if s > t || e < 1 {
		return 0, 0, false
	}
	return uint32(s), uint32(e), true
}

func totalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// headers convierte los mensajes descargados; los que llegan sin envelope se omiten.
func headers(msgs []*imapclient.FetchMessageBuffer, section *goimap.FetchItemBodySection, now time.Time) []entity.EmailHeader {
	out := make([]entity.EmailHeader, 0, len(msgs))
	for _, msg := range msgs {
		if msg.Envelope == nil {
			continue
		}
		out = append(out, toHeader(msg, msg.FindBodySection(section), now))
	}
	return out
}

func toHeader(msg *imapclient.FetchMessageBuffer, text []byte, now time.Time) entity.EmailHeader {
	h := entity.EmailHeader{
		UID:         uint32(msg.UID),
		EmailID:     fmt.Sprint(uint32(msg.UID)),
		Subject:     "Sin asunto",
		FromName:    "Desconocido",
		Date:        now,
		Preview:     Preview(string(text)),
		Attachments: []string{},
	}
	for _, f := range msg.Flags {
		if f == goimap.FlagSeen {
			h.IsRead = true
		}
	}
	env := msg.Envelope
	if env == nil {
		h.MessageID = fmt.Sprintf("%d@local", msg.UID)
		return h
	}
	if env.Subject != "" {
		h.Subject = env.Subject
	}
	if !env.Date.IsZero() {
		h.Date = env.Date
	}
	if len(env.From) > 0 {
		from := env.From[0]
		h.FromEmail = from.Addr()
		h.FromName = firstNonEmpty(from.Name, h.FromEmail, "Desconocido")
		h.From = fmt.Sprintf("%s <%s>", h.FromName, h.FromEmail)
	}
	if len(env.To) > 0 {
		h.To = env.To[0].Addr()
	}
	h.MessageID = env.MessageID
	if h.MessageID == "" {
		h.MessageID = fmt.Sprintf("%d@local", msg.UID)
	}
	return h
}

// Preview corta a 200 caracteres y después colapsa espacios.
func Preview(text string) string {
	return strings.TrimSpace(textnorm.CollapseSpaces(textnorm.Truncate(text, previewChars)))
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
