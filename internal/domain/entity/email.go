package entity

import "time"

// EmailHeader cabecera de un correo leído directamente del servidor IMAP.
type EmailHeader struct {
	UID         uint32
	EmailID     string
	Subject     string
	From        string // "Nombre <correo>"
	FromName    string
	FromEmail   string
	To          string
	Date        time.Time
	MessageID   string
	Preview     string
	Attachments []string
	IsRead      bool
}

// Mailbox carpeta del servidor IMAP.
type Mailbox struct {
	Name       string
	Delimiter  string
	Flags      []string
	Selectable bool
	Subscribed bool
}

// FolderStats contadores de una carpeta.
type FolderStats struct {
	Name        string
	Exists      uint32
	Recent      uint32
	Unseen      uint32
	UIDNext     uint32
	UIDValidity uint32
}

// EmailPage página de cabeceras de una carpeta.
type EmailPage struct {
	Emails     []EmailHeader
	Total      uint32
	Page       int
	PageSize   int
	TotalPages int
}

// Namespace prefijos personales, de otros usuarios y compartidos del servidor.
type Namespace struct {
	Personal []string
	Other    []string
	Shared   []string
}

// ServerInfo capacidades anunciadas por el servidor IMAP.
type ServerInfo struct {
	Capabilities []string
	Namespace    *Namespace // nil si el servidor no soporta NAMESPACE
}
