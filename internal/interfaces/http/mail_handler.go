package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/patriciastocker/intranet/internal/application/dto"
	"github.com/patriciastocker/intranet/internal/application/usecase"
	"github.com/patriciastocker/intranet/internal/domain"
)

// MailHandler expone el proxy al servicio de indexación de correo y la lectura IMAP directa.
type MailHandler struct {
	proxy   *usecase.MailProxyUseCase
	mailbox *usecase.MailboxUseCase
}

// NewMailHandler construye el handler. mailbox puede ser nil si no hay IMAP configurado.
func NewMailHandler(proxy *usecase.MailProxyUseCase, mailbox *usecase.MailboxUseCase) *MailHandler {
	return &MailHandler{proxy: proxy, mailbox: mailbox}
}

func pageRequest(c *fiber.Ctx) dto.PageRequest {
	return dto.PageRequest{Page: c.QueryInt("page", 1), Limit: c.QueryInt("limit", 0)}
}

// Emails godoc
// @Summary      Correos del servicio de indexación
// @Tags         emails
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /api/emails [get]
func (h *MailHandler) Emails(c *fiber.Ctx) error {
	body, err := h.proxy.Emails(c.UserContext())
	return respondProxy(c, body, err)
}

// Paginated godoc
// @Summary      Listado paginado de todos los correos
// @Tags         emails
// @Security     Bearer
// @Produce      json
// @Param        page     query  int     false  "Página"  default(1)
// @Param        limit    query  int     false  "Tamaño"  default(50)
// @Param        account  query  string  false  "Cuenta"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /api/emails/paginated [get]
func (h *MailHandler) Paginated(c *fiber.Ctx) error {
	body, err := h.proxy.Paginated(c.UserContext(), pageRequest(c), c.Query("account"))
	return respondProxy(c, body, err)
}

// WithPreview godoc
// @Summary      Correos con vista previa del cuerpo
// @Tags         emails
// @Security     Bearer
// @Produce      json
// @Param        page     query  int     false  "Página"   default(1)
// @Param        limit    query  int     false  "Tamaño"   default(50)
// @Param        folder   query  string  false  "Carpeta"  default(INBOX)
// @Param        account  query  string  false  "Cuenta"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /api/emails/with-preview [get]
func (h *MailHandler) WithPreview(c *fiber.Ctx) error {
	body, err := h.proxy.WithPreview(c.UserContext(), pageRequest(c), c.Query("folder"), c.Query("account"))
	return respondProxy(c, body, err)
}

func (h *MailHandler) light(c *fiber.Ctx, ultra bool) error {
	body, err := h.proxy.Light(c.UserContext(), dto.LightListRequest{
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 0),
		Folder: c.Query("folder"),
		Search: c.Query("search"),
		Ultra:  ultra,
	})
	return respondProxy(c, body, err)
}

// Light godoc
// @Summary      Listado ligero con búsqueda y paginación locales
// @Tags         emails
// @Security     Bearer
// @Produce      json
// @Param        page    query  int     false  "Página"  default(1)
// @Param        limit   query  int     false  "Tamaño"  default(10)
// @Param        folder  query  string  false  "Carpeta" default(INBOX)
// @Param        search  query  string  false  "Texto en asunto, remitente o vista previa"
// @Success      200  {object}  dto.LightListResponse
// @Failure      500  {object}  dto.LightListResponse
// @Router       /api/emails/light [get]
func (h *MailHandler) Light(c *fiber.Ctx) error { return h.light(c, false) }

// UltraLight godoc
// @Summary      Listado ultra ligero
// @Tags         emails
// @Security     Bearer
// @Produce      json
// @Param        page    query  int     false  "Página"  default(1)
// @Param        limit   query  int     false  "Tamaño"  default(5)
// @Param        folder  query  string  false  "Carpeta" default(INBOX)
// @Param        search  query  string  false  "Texto en asunto, remitente o vista previa"
// @Success      200  {object}  dto.LightListResponse
// @Failure      500  {object}  dto.LightListResponse
// @Router       /api/emails/ultra-light [get]
func (h *MailHandler) UltraLight(c *fiber.Ctx) error { return h.light(c, true) }

// Search godoc
// @Summary      Buscar correos por destinatario
// @Tags         emails
// @Security     Bearer
// @Produce      json
// @Param        q          query  string  true   "Consulta"
// @Param        recipient  query  string  false  "Filtro de destinatario"  default(marcas)
// @Param        limit      query  int     false  "Máximo"                  default(20)
// @Success      200  {object}  dto.SearchResponse
// @Failure      400  {object}  dto.SearchResponse
// @Failure      500  {object}  dto.SearchResponse
// @Router       /api/emails/search [get]
func (h *MailHandler) Search(c *fiber.Ctx) error {
	body, err := h.proxy.Search(c.UserContext(), c.Query("q"), c.Query("recipient"), c.QueryInt("limit", 0))
	return respondProxy(c, body, err)
}

// ForRecipient godoc
// @Summary      Correos dirigidos al buzón por defecto
// @Tags         emails
// @Security     Bearer
// @Produce      json
// @Param        limit      query  int     false  "Máximo"  default(5)
// @Param        date_from  query  string  false  "Desde (YYYY-MM-DD)"
// @Success      200  {object}  dto.ForRecipientResponse
// @Failure      500  {object}  dto.ForRecipientResponse
// @Router       /api/emails/for-tomas [get]
func (h *MailHandler) ForRecipient(c *fiber.Ctx) error {
	body, err := h.proxy.ForRecipient(c.UserContext(), c.QueryInt("limit", 0), c.Query("date_from"))
	return respondProxy(c, body, err)
}

// Full godoc
// @Summary      Correo completo
// @Tags         emails
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del correo"
// @Success      200  {object}  dto.FullEmailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.FullEmailResponse
// @Router       /api/emails/{id}/full [get]
func (h *MailHandler) Full(c *fiber.Ctx) error {
	body, err := h.proxy.Full(c.UserContext(), c.Params("id"))
	if errors.Is(err, domain.ErrNotFound) {
		return notFound(c, "Correo no encontrado")
	}
	return respondProxy(c, body, err)
}

// Attachment godoc
// @Summary      Descargar adjunto
// @Tags         emails
// @Security     Bearer
// @Produce      octet-stream
// @Param        email_id  path  string  true  "ID del correo"
// @Param        filename  path  string  true  "Nombre del archivo"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/attachment/{email_id}/{filename} [get]
func (h *MailHandler) Attachment(c *fiber.Ctx) error {
	att, err := h.proxy.Attachment(c.UserContext(), c.Params("email_id"), c.Params("filename"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(c, "Adjunto no encontrado")
		}
		return respondError(c, err, "Error al descargar adjunto: "+err.Error())
	}
	c.Set(fiber.HeaderContentType, att.ContentType)
	c.Set(fiber.HeaderContentDisposition, att.ContentDisposition)
	c.Set(fiber.HeaderContentLength, strconv.Itoa(len(att.Data)))
	return c.Send(att.Data)
}

// LoadingStatus godoc
// @Summary      Estado de la carga inicial del servicio de indexación
// @Tags         emails
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /api/loading-status [get]
func (h *MailHandler) LoadingStatus(c *fiber.Ctx) error {
	body, err := h.proxy.LoadingStatus(c.UserContext())
	return respondProxy(c, body, err)
}

// SearchEmails godoc
// @Summary      Búsqueda general por carpeta
// @Tags         emails
// @Security     Bearer
// @Produce      json
// @Param        q        query  string  false  "Consulta (vacía = sin resultados)"
// @Param        folder   query  string  false  "Carpeta"  default(INBOX)
// @Param        account  query  string  false  "Cuenta"
// @Param        page     query  int     false  "Página"   default(1)
// @Param        limit    query  int     false  "Tamaño"   default(50)
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /api/search-emails [get]
func (h *MailHandler) SearchEmails(c *fiber.Ctx) error {
	body, err := h.proxy.SearchEmails(c.UserContext(), dto.SearchEmailsRequest{
		Query:   c.Query("q"),
		Folder:  c.Query("folder"),
		Account: c.Query("account"),
		Page:    c.QueryInt("page", 1),
		Limit:   c.QueryInt("limit", 0),
	})
	return respondProxy(c, body, err)
}

// InstantSearch godoc
// @Summary      Búsqueda instantánea FTS
// @Tags         emails
// @Security     Bearer
// @Produce      json
// @Param        q          query  string  true   "Consulta"
// @Param        recipient  query  string  false  "Filtro de destinatario"
// @Param        limit      query  int     false  "Máximo"  default(20)
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /api/instant-search [get]
func (h *MailHandler) InstantSearch(c *fiber.Ctx) error {
	body, err := h.proxy.InstantSearch(c.UserContext(), dto.InstantSearchRequest{
		Query:     c.Query("q"),
		Recipient: c.Query("recipient"),
		Limit:     c.QueryInt("limit", 0),
	})
	return respondProxy(c, body, err)
}

// ── IMAP directo ──────────────────────────────────────────────────────────────

func (h *MailHandler) imapDisabled(c *fiber.Ctx) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "NOT_CONFIGURED", Message: "IMAP no configurado"})
}

// Folders godoc
// @Summary      Carpetas del buzón IMAP
// @Tags         mailbox
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.FoldersResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/mailbox/folders [get]
func (h *MailHandler) Folders(c *fiber.Ctx) error {
	if h.mailbox == nil {
		return h.imapDisabled(c)
	}
	out, err := h.mailbox.Folders(c.UserContext())
	if err != nil {
		return respondError(c, err, "Error al listar carpetas: "+err.Error())
	}
	return c.JSON(out)
}

// MailboxEmails godoc
// @Summary      Correos con vista previa leídos por IMAP
// @Tags         mailbox
// @Security     Bearer
// @Produce      json
// @Param        page    query  int     false  "Página"   default(1)
// @Param        limit   query  int     false  "Tamaño"   default(50)
// @Param        folder  query  string  false  "Carpeta"  default(INBOX)
// @Success      200  {object}  dto.EmailsResponse
// @Failure      500  {object}  dto.EmailsResponse
// @Router       /api/mailbox/emails [get]
func (h *MailHandler) MailboxEmails(c *fiber.Ctx) error {
	if h.mailbox == nil {
		return h.imapDisabled(c)
	}
	// Mantiene el 0 del cliente: el caso de uso aplica los valores por defecto.
	out, err := h.mailbox.Emails(c.UserContext(), c.Query("folder"), c.QueryInt("page", 1), c.QueryInt("limit", usecase.PageLimit))
	return respondProxy(c, out, err)
}

// Diagnostics godoc
// @Summary      Diagnóstico del buzón: conexión, carpetas y recomendaciones
// @Tags         mailbox
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DiagnosticsResponse
// @Failure      500  {object}  dto.DiagnosticsResponse
// @Router       /api/diagnostics [get]
func (h *MailHandler) Diagnostics(c *fiber.Ctx) error {
	if h.mailbox == nil {
		return h.imapDisabled(c)
	}
	out, err := h.mailbox.Diagnostics(c.UserContext())
	return respondProxy(c, out, err)
}

// DeepDiagnostics godoc
// @Summary      Exploración de patrones LIST y carpetas conocidas
// @Tags         mailbox
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DeepDiagnosticsResponse
// @Failure      500  {object}  dto.DeepDiagnosticsResponse
// @Router       /api/deep-diagnostics [get]
func (h *MailHandler) DeepDiagnostics(c *fiber.Ctx) error {
	if h.mailbox == nil {
		return h.imapDisabled(c)
	}
	out, err := h.mailbox.DeepDiagnostics(c.UserContext())
	return respondProxy(c, out, err)
}
