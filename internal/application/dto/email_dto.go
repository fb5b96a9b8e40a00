package dto

import "encoding/json"

// ── Servicio de indexación (entrada) ──────────────────────────────────────────

// UpstreamEmail correo tal como lo entrega el servicio de indexación.
type UpstreamEmail struct {
	EmailID   FlexString `json:"email_id"`
	Subject   string     `json:"subject"`
	From      string     `json:"from"`
	FromName  string     `json:"from_name"`
	FromEmail string     `json:"from_email"`
	To        string     `json:"to"`
	Date      string     `json:"date"`
	Preview   string     `json:"preview"`
	Body      string     `json:"body"`
	HTMLBody  string     `json:"html_body"`
}

// UpstreamEmailList página de correos del servicio de indexación.
type UpstreamEmailList struct {
	Emails []UpstreamEmail `json:"emails"`
	Total  int             `json:"total"`
}

// UpstreamSearchResult resultado de búsqueda o de filtro por destinatario.
type UpstreamSearchResult struct {
	Emails         []UpstreamEmail `json:"emails"`
	TotalFound     int             `json:"total_found"`
	Showing        int             `json:"showing"`
	SearchCriteria json.RawMessage `json:"search_criteria"`
}

// UpstreamFullEmail respuesta de /api/emails/{id}/full.
type UpstreamFullEmail struct {
	Email UpstreamEmail `json:"email"`
}

// Attachment archivo binario descargado del servicio de indexación.
type Attachment struct {
	ContentType        string
	ContentDisposition string
	Data               []byte
}

// ── Respuestas del proxy ──────────────────────────────────────────────────────

// ProxyStatus estado de conexión que acompaña a cada respuesta de correo.
type ProxyStatus struct {
	Connected bool    `json:"connected"`
	Error     *string `json:"error"`
	LastCheck string  `json:"last_check"`
}

// ProxyEmail correo normalizado para el frontend.
type ProxyEmail struct {
	ID             string  `json:"id"`
	EmailID        string  `json:"email_id,omitempty"`
	Subject        string  `json:"subject"`
	From           string  `json:"from"`
	FromName       string  `json:"fromName"`
	To             string  `json:"to"`
	Date           string  `json:"date"`
	Preview        string  `json:"preview"`
	Body           *string `json:"body,omitempty"`
	HTMLBody       *string `json:"html_body,omitempty"`
	HasAttachments bool    `json:"hasAttachments"`
	IsRead         bool    `json:"isRead"`
	UID            string  `json:"uid"`

	LightMode      bool   `json:"light_mode,omitempty"`
	UltraLightMode bool   `json:"ultra_light_mode,omitempty"`
	SearchResult   bool   `json:"search_result,omitempty"`
	SearchQuery    string `json:"search_query,omitempty"`
	FilterApplied  string `json:"filter_applied,omitempty"`
	FullContent    bool   `json:"full_content,omitempty"`
}

// LightListRequest parámetros de /api/emails/light y /ultra-light.
type LightListRequest struct {
	Page   int
	Limit  int
	Folder string
	Search string
	Ultra  bool
}

// LightListResponse página ligera con búsqueda y paginación locales.
type LightListResponse struct {
	Error          string       `json:"error,omitempty"`
	Emails         []ProxyEmail `json:"emails"`
	Count          int          `json:"count"`
	Page           int          `json:"page"`
	Limit          int          `json:"limit,omitempty"`
	TotalPagesAlt  int          `json:"totalPages"`
	Folder         string       `json:"folder"`
	SearchQuery    *string      `json:"searchQuery"`
	TotalCount     int          `json:"total_count"`
	PageSize       int          `json:"page_size"`
	TotalPages     int          `json:"total_pages"`
	LightMode      bool         `json:"light_mode,omitempty"`
	UltraLightMode bool         `json:"ultra_light_mode,omitempty"`
	Status         ProxyStatus  `json:"status"`
}

// SearchResponse resultado de /api/emails/search.
type SearchResponse struct {
	Error           string          `json:"error,omitempty"`
	Emails          []ProxyEmail    `json:"emails"`
	TotalFound      int             `json:"total_found"`
	Showing         int             `json:"showing"`
	Query           string          `json:"query"`
	RecipientFilter string          `json:"recipient_filter"`
	SearchCriteria  json.RawMessage `json:"search_criteria,omitempty"`
	Status          *ProxyStatus    `json:"status,omitempty"`
}

// ForRecipientResponse resultado de /api/emails/for-tomas.
type ForRecipientResponse struct {
	Error      string       `json:"error,omitempty"`
	Emails     []ProxyEmail `json:"emails"`
	TotalFound int          `json:"total_found"`
	Showing    int          `json:"showing"`
	Filter     string       `json:"filter"`
	DateFrom   *string      `json:"date_from"`
	Status     ProxyStatus  `json:"status"`
}

// FullEmailResponse correo completo.
type FullEmailResponse struct {
	Error  string      `json:"error,omitempty"`
	Email  *ProxyEmail `json:"email,omitempty"`
	Status ProxyStatus `json:"status"`
}

// InstantSearchRequest parámetros de /api/instant-search.
type InstantSearchRequest struct {
	Query     string
	Recipient string
	Limit     int
}

// SearchEmailsRequest parámetros de /api/search-emails.
type SearchEmailsRequest struct {
	Query   string
	Folder  string
	Account string
	Page    int
	Limit   int
}

// ── Lectura directa IMAP ──────────────────────────────────────────────────────

// MailboxEmail cabecera de un correo leído por IMAP.
type MailboxEmail struct {
	UID         uint32   `json:"uid"`
	EmailID     string   `json:"email_id"`
	Subject     string   `json:"subject"`
	From        string   `json:"from"`
	FromName    string   `json:"from_name"`
	FromEmail   string   `json:"from_email"`
	To          string   `json:"to"`
	Date        string   `json:"date"`
	ParsedDate  string   `json:"parsed_date"`
	Timestamp   int64    `json:"timestamp"`
	MessageID   string   `json:"message_id"`
	Preview     string   `json:"preview"`
	Attachments []string `json:"attachments"`
	IsRead      bool     `json:"isRead"`
}

// EmailsResponse página de /api/mailbox/emails. Usa las mismas claves que el proxy.
type EmailsResponse struct {
	Emails     []MailboxEmail `json:"emails"`
	Count      int            `json:"count"`
	TotalCount int            `json:"total_count"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
	Folder     string         `json:"folder"`
	Status     ProxyStatus    `json:"status"`
}

// MailboxResponse carpeta del buzón.
type MailboxResponse struct {
	Name       string   `json:"name"`
	Delimiter  string   `json:"delimiter"`
	Flags      []string `json:"flags"`
	Selectable bool     `json:"selectable"`
	Subscribed bool     `json:"subscribed"`
}

// FoldersResponse {folders:[...]}
type FoldersResponse struct {
	Folders []MailboxResponse `json:"folders"`
}
