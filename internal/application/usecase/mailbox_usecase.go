package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/patriciastocker/intranet/internal/application/dto"
	"github.com/patriciastocker/intranet/internal/application/ports"
	"github.com/patriciastocker/intranet/internal/domain/entity"
	"github.com/patriciastocker/intranet/pkg/config"
	"github.com/patriciastocker/intranet/pkg/logger"
)

// listPattern patrón LIST explorado por el diagnóstico profundo.
type listPattern struct {
	Name      string
	Reference string
	Pattern   string
}

var deepPatterns = []listPattern{
	{"Root level", "", ""},
	{"INBOX children", "INBOX", "*"},
	{"INBOX.* pattern", "", "INBOX.*"},
	{"All folders", "", "*"},
	{"Deep search", "", "**"},
}

// deepTestFolders carpetas habituales que se intentan abrir aunque LIST no las muestre.
var deepTestFolders = []string{
	"INBOX", "INBOX.INBOX", "Inbox", "Mail", "INBOX.Mail",
	"Sent", "INBOX.Sent", "Sent Messages", "INBOX.Sent Messages",
}

// MailboxUseCase lectura directa del buzón IMAP y diagnósticos de la cuenta.
type MailboxUseCase struct {
	reader ports.MailboxReader
	imap   config.IMAPConfig
	log    *logger.Logger
	now    func() time.Time
}

// NewMailboxUseCase construye el caso de uso. cfg sólo se usa para informar la conexión.
func NewMailboxUseCase(reader ports.MailboxReader, cfg config.IMAPConfig, log *logger.Logger) *MailboxUseCase {
	return &MailboxUseCase{reader: reader, imap: cfg, log: log.Component("mailbox"), now: time.Now}
}

// Folders lista las carpetas del buzón.
func (uc *MailboxUseCase) Folders(ctx context.Context) (*dto.FoldersResponse, error) {
	list, err := uc.reader.ListMailboxes(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.FoldersResponse{Folders: make([]dto.MailboxResponse, 0, len(list))}
	for _, m := range list {
		out.Folders = append(out.Folders, dto.MailboxResponse{
			Name:       m.Name,
			Delimiter:  m.Delimiter,
			Flags:      nonNil(m.Flags),
			Selectable: m.Selectable,
			Subscribed: m.Subscribed,
		})
	}
	return out, nil
}

// Emails página de correos con vista previa. Ante error devuelve la página vacía con connected=false.
func (uc *MailboxUseCase) Emails(ctx context.Context, folder string, page, limit int) (*dto.EmailsResponse, error) {
	folder = orDefault(folder, "INBOX")
	p, err := uc.reader.EmailsWithPreview(ctx, folder, page, limit)
	if err != nil {
		if page < 1 {
			page = 1
		}
		if limit < 1 {
			limit = PageLimit
		}
		msg := err.Error()
		return &dto.EmailsResponse{
			Emails:   []dto.MailboxEmail{},
			Page:     page,
			PageSize: limit,
			Folder:   folder,
			Status:   dto.ProxyStatus{Connected: false, Error: &msg, LastCheck: uc.stamp()},
		}, err
	}
	emails := make([]dto.MailboxEmail, 0, len(p.Emails))
	for _, h := range p.Emails {
		emails = append(emails, toMailboxEmail(h))
	}
	return &dto.EmailsResponse{
		Emails:     emails,
		Count:      len(emails),
		TotalCount: int(p.Total),
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: p.TotalPages,
		Folder:     folder,
		Status:     dto.ProxyStatus{Connected: true, LastCheck: uc.stamp()},
	}, nil
}

func toMailboxEmail(h entity.EmailHeader) dto.MailboxEmail {
	iso := h.Date.UTC().Format(ISOLayout)
	return dto.MailboxEmail{
		UID:         h.UID,
		EmailID:     h.EmailID,
		Subject:     h.Subject,
		From:        h.From,
		FromName:    h.FromName,
		FromEmail:   h.FromEmail,
		To:          h.To,
		Date:        iso,
		ParsedDate:  iso,
		Timestamp:   h.Date.UnixMilli(),
		MessageID:   h.MessageID,
		Preview:     h.Preview,
		Attachments: nonNil(h.Attachments),
		IsRead:      h.IsRead,
	}
}

// Diagnostics estadísticas de todas las carpetas, totales y recomendaciones.
// Si no se puede conectar devuelve el cuerpo de respaldo junto al error.
func (uc *MailboxUseCase) Diagnostics(ctx context.Context) (*dto.DiagnosticsResponse, error) {
	info, err := uc.reader.ServerInfo(ctx)
	if err == nil {
		var boxes []entity.Mailbox
		if boxes, err = uc.reader.ListMailboxes(ctx); err == nil {
			return uc.diagnose(ctx, info, boxes), nil
		}
	}
	uc.log.Error().Err(err).Msg("diagnóstico IMAP fallido")
	return &dto.DiagnosticsResponse{
		Connection: uc.connectionInfo(err),
		Folders:    []dto.FolderStatsResponse{},
		Summary: dto.DiagnosticsSummary{
			LargestFolder: dto.LargestFolder{Name: "error"},
		},
		Recommendations: []dto.Recommendation{{
			Type:    "error",
			Message: "Error de conexión: " + err.Error(),
		}},
	}, err
}

func (uc *MailboxUseCase) diagnose(ctx context.Context, info *entity.ServerInfo, boxes []entity.Mailbox) *dto.DiagnosticsResponse {
	conn := uc.connectionInfo(nil)
	conn.ServerInfo = &dto.ServerInfo{Capabilities: nonNil(info.Capabilities), Namespace: toNamespace(info.Namespace)}

	out := &dto.DiagnosticsResponse{
		Connection:      conn,
		Folders:         make([]dto.FolderStatsResponse, 0, len(boxes)),
		Summary:         dto.DiagnosticsSummary{LargestFolder: dto.LargestFolder{Name: "ninguna"}},
		Recommendations: []dto.Recommendation{},
	}
	anyError := false
	for _, mb := range boxes {
		fs := dto.FolderStatsResponse{
			Name:       mb.Name,
			Flags:      nonNil(mb.Flags),
			Path:       mb.Name,
			Delimiter:  orDefault(mb.Delimiter, "."),
			Subscribed: mb.Subscribed,
			Selectable: mb.Selectable,
		}
		st, err := uc.reader.FolderStats(ctx, mb.Name)
		if err != nil {
			uc.log.Warn().Err(err).Str("folder", mb.Name).Msg("carpeta no analizable")
			anyError = true
			fs.Error = err.Error()
			fs.Flags = []string{}
			fs.Subscribed, fs.Selectable = false, false
		} else {
			fs.Exists, fs.Recent, fs.Unseen = st.Exists, st.Recent, st.Unseen
		}
		out.Folders = append(out.Folders, fs)

		s := &out.Summary
		s.TotalEmails += fs.Exists
		s.TotalUnseen += fs.Unseen
		if fs.Exists > 0 {
			s.FoldersWithEmails++
		}
		if fs.Exists > s.LargestFolder.Exists {
			s.LargestFolder = dto.LargestFolder{Name: fs.Name, Exists: fs.Exists}
		}
	}
	out.Summary.TotalFolders = len(out.Folders)

	if out.Summary.TotalEmails == 0 {
		out.Recommendations = append(out.Recommendations, dto.Recommendation{
			Type:    "warning",
			Message: "No se encontraron correos en ninguna carpeta. Verificar credenciales o configuración de cuenta.",
		})
	}
	if anyError {
		out.Recommendations = append(out.Recommendations, dto.Recommendation{
			Type:    "error",
			Message: "Algunas carpetas no pudieron ser analizadas. Revisar permisos de acceso.",
		})
	}
	if out.Summary.TotalEmails > 0 {
		out.Recommendations = append(out.Recommendations, dto.Recommendation{
			Type: "success",
			Message: fmt.Sprintf("Se encontraron %d correos. Carpeta principal: %s con %d correos.",
				out.Summary.TotalEmails, out.Summary.LargestFolder.Name, out.Summary.LargestFolder.Exists),
		})
	}
	uc.log.Info().Int("folders", out.Summary.TotalFolders).Uint32("emails", out.Summary.TotalEmails).Msg("diagnóstico completado")
	return out
}

// DeepDiagnostics explora patrones LIST y prueba carpetas conocidas una por una.
func (uc *MailboxUseCase) DeepDiagnostics(ctx context.Context) (*dto.DeepDiagnosticsResponse, error) {
	info, err := uc.reader.ServerInfo(ctx)
	if err != nil {
		uc.log.Error().Err(err).Msg("diagnóstico profundo fallido")
		return &dto.DeepDiagnosticsResponse{
			Connection:        uc.connectionInfo(err),
			FolderExploration: []dto.FolderExploration{},
			FolderTests:       []dto.FolderTest{},
			Capabilities:      []string{},
			Recommendations: []dto.Recommendation{{
				Type:    "error",
				Message: "Error crítico en diagnóstico: " + err.Error(),
			}},
		}, err
	}

	out := &dto.DeepDiagnosticsResponse{
		Connection:        uc.connectionInfo(nil),
		FolderExploration: make([]dto.FolderExploration, 0, len(deepPatterns)),
		FolderTests:       make([]dto.FolderTest, 0, len(deepTestFolders)),
		NamespaceInfo:     toNamespace(info.Namespace),
		Capabilities:      nonNil(info.Capabilities),
		Recommendations:   []dto.Recommendation{},
	}

	for _, p := range deepPatterns {
		ex := dto.FolderExploration{Pattern: p.Name, Reference: p.Reference, SearchPattern: p.Pattern, Folders: []dto.PatternFolder{}}
		boxes, err := uc.reader.ListPattern(ctx, p.Reference, p.Pattern)
		if err != nil {
			ex.Error = err.Error()
		}
		for _, mb := range boxes {
			ex.Folders = append(ex.Folders, dto.PatternFolder{
				Name:       mb.Name,
				Path:       mb.Name,
				Flags:      nonNil(mb.Flags),
				Delimiter:  orDefault(mb.Delimiter, "."),
				Subscribed: mb.Subscribed,
				Selectable: mb.Selectable,
			})
		}
		ex.FoldersFound = len(ex.Folders)
		out.FolderExploration = append(out.FolderExploration, ex)
	}

	var total uint32
	var accessible, withEmails []string
	for _, name := range deepTestFolders {
		st, err := uc.reader.FolderStats(ctx, name)
		if err != nil {
			out.FolderTests = append(out.FolderTests, dto.FolderTest{FolderName: name, Error: err.Error()})
			continue
		}
		out.FolderTests = append(out.FolderTests, dto.FolderTest{
			FolderName:  name,
			Accessible:  true,
			Exists:      st.Exists,
			Recent:      st.Recent,
			Unseen:      st.Unseen,
			UIDNext:     st.UIDNext,
			UIDValidity: st.UIDValidity,
		})
		total += st.Exists
		accessible = append(accessible, name)
		if st.Exists > 0 {
			withEmails = append(withEmails, fmt.Sprintf("%s (%d)", name, st.Exists))
		}
	}

	if total == 0 {
		out.Recommendations = append(out.Recommendations, dto.Recommendation{
			Type:    "critical",
			Message: "No se encontraron correos en ninguna carpeta probada. Posibles causas: cuenta vacía, credenciales incorrectas, o estructura de carpetas no estándar.",
		})
	}
	if len(accessible) > 0 {
		out.Recommendations = append(out.Recommendations, dto.Recommendation{
			Type:    "info",
			Message: fmt.Sprintf("Se pudieron acceder a %d carpetas: %s", len(accessible), strings.Join(accessible, ", ")),
		})
	}
	if len(withEmails) > 0 {
		out.Recommendations = append(out.Recommendations, dto.Recommendation{
			Type:    "success",
			Message: "Carpetas con correos encontradas: " + strings.Join(withEmails, ", "),
		})
	}
	return out, nil
}

func (uc *MailboxUseCase) connectionInfo(err error) dto.ConnectionInfo {
	ci := dto.ConnectionInfo{
		Host:      uc.imap.Host,
		Port:      uc.imap.Port,
		Secure:    uc.imap.TLS,
		User:      uc.imap.User,
		Connected: err == nil,
		Timestamp: uc.stamp(),
	}
	if err != nil {
		ci.Error = err.Error()
	}
	return ci
}

func (uc *MailboxUseCase) stamp() string { return uc.now().UTC().Format(ISOLayout) }

func toNamespace(ns *entity.Namespace) *dto.NamespaceInfo {
	if ns == nil {
		return nil
	}
	return &dto.NamespaceInfo{Personal: nonNil(ns.Personal), Other: nonNil(ns.Other), Shared: nonNil(ns.Shared)}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
