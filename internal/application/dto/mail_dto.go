package dto

// Tipos de adjunto de /api/send-email.
const (
	AttachmentFile     = "file"
	AttachmentEmbedded = "embedded"
)

// MailAttachment adjunto codificado en base64. Los embebidos se referencian desde el cuerpo por CID.
type MailAttachment struct {
	Type     string `json:"type"`
	Filename string `json:"filename"`
	Content  string `json:"content"`
	CID      string `json:"cid,omitempty"`
}

// SendEmailRequest entrada de /api/send-email.
type SendEmailRequest struct {
	To          string           `json:"to"`
	Cc          string           `json:"cc,omitempty"`
	Subject     string           `json:"subject"`
	Body        string           `json:"body"`
	Attachments []MailAttachment `json:"attachments"`
}

// SendEmailResponse {success, error?}
type SendEmailResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Tipos de mandante del poder.
const (
	MandantePersona = "persona"
	MandanteEmpresa = "empresa"
)

// PowerRequest datos para generar (y opcionalmente enviar) un Poder.
type PowerRequest struct {
	MandanteType string `json:"mandante_type"`
	PowerFields
	To string `json:"to,omitempty"` // sólo /power/send; vacío = email del contacto
}

// LoginRequest credenciales del administrador.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse token emitido.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"` // segundos
}
