package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/patriciastocker/intranet/internal/application/dto"
	"github.com/patriciastocker/intranet/internal/application/ports"
	"github.com/patriciastocker/intranet/internal/domain"
)

// SendMailUseCase envía un correo compuesto en el frontend.
type SendMailUseCase struct {
	mailer ports.MailSender
}

// NewSendMailUseCase construye el caso de uso. mailer nil = SMTP no configurado.
func NewSendMailUseCase(mailer ports.MailSender) *SendMailUseCase {
	return &SendMailUseCase{mailer: mailer}
}

// Send decodifica los adjuntos y entrega el correo.
func (uc *SendMailUseCase) Send(ctx context.Context, in dto.SendEmailRequest) (*dto.SendEmailResponse, error) {
	to := splitAddresses(in.To)
	if len(to) == 0 || strings.TrimSpace(in.Subject) == "" {
		return nil, fmt.Errorf("Todos los campos son requeridos: %w", domain.ErrInvalidInput)
	}
	if uc.mailer == nil {
		return nil, fmt.Errorf("SMTP: %w", domain.ErrNotConfigured)
	}

	parts := make([]ports.MailPart, 0, len(in.Attachments))
	for i, a := range in.Attachments {
		if a.Filename == "" {
			return nil, fmt.Errorf("adjunto %d sin nombre: %w", i, domain.ErrInvalidInput)
		}
		data, err := decodeDataURL(a.Content)
		if err != nil {
			return nil, fmt.Errorf("adjunto %q no es base64 válido: %w", a.Filename, domain.ErrInvalidInput)
		}
		switch a.Type {
		case dto.AttachmentEmbedded:
			parts = append(parts, ports.MailPart{Filename: a.Filename, Data: data, Embedded: true, CID: a.CID})
		case dto.AttachmentFile, "":
			parts = append(parts, ports.MailPart{Filename: a.Filename, Data: data})
		default:
			return nil, fmt.Errorf("tipo de adjunto %q: %w", a.Type, domain.ErrInvalidInput)
		}
	}

	err := uc.mailer.Send(ctx, ports.OutgoingMail{
		To:          to,
		Cc:          splitAddresses(in.Cc),
		Subject:     in.Subject,
		Body:        in.Body,
		HTML:        isHTML(in.Body),
		Attachments: parts,
	})
	if err != nil {
		return nil, err
	}
	return &dto.SendEmailResponse{Success: true, Message: "Correo enviado exitosamente"}, nil
}

func splitAddresses(s string) []string {
	var out []string
	for _, a := range strings.Split(s, ",") {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

func isHTML(body string) bool {
	b := strings.ToLower(strings.TrimSpace(body))
	return strings.HasPrefix(b, "<!doctype html") || strings.HasPrefix(b, "<html")
}
