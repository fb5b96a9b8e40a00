package usecase

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/patriciastocker/intranet/internal/application/dto"
	"github.com/patriciastocker/intranet/internal/application/ports"
	"github.com/patriciastocker/intranet/internal/domain"
	"github.com/patriciastocker/intranet/internal/domain/entity"
	"github.com/patriciastocker/intranet/internal/domain/power"
	"github.com/patriciastocker/intranet/internal/domain/repository"
	"github.com/patriciastocker/intranet/pkg/config"
	"github.com/patriciastocker/intranet/pkg/logger"
)

// Nombre y CID del logo embebido en el correo del Poder.
const (
	LogoFilename = "logo_marca.png"
	LogoCID      = "logo_marca"
)

// PowerFile PDF generado y su nombre de descarga.
type PowerFile struct {
	FileName string
	Data     []byte
}

// PowerUseCase genera el Poder de un contacto y lo envía por correo.
type PowerUseCase struct {
	contacts repository.ContactRepository
	pdf      ports.PowerPDFGenerator
	mailer   ports.MailSender
	attorney power.Attorney
	log      *logger.Logger
	now      func() time.Time
}

// NewPowerUseCase construye el caso de uso. mailer puede ser nil si no hay SMTP.
func NewPowerUseCase(contacts repository.ContactRepository, pdf ports.PowerPDFGenerator, mailer ports.MailSender, cfg config.PowerConfig, log *logger.Logger) *PowerUseCase {
	return &PowerUseCase{
		contacts: contacts,
		pdf:      pdf,
		mailer:   mailer,
		attorney: power.Attorney{
			Name:      cfg.AttorneyName,
			RUT:       cfg.AttorneyRUT,
			Address:   cfg.AttorneyAddress,
			City:      cfg.City,
			Signature: cfg.SenderSignature,
		},
		log: log.Component("power"),
		now: time.Now,
	}
}

// Generate valida los datos, los guarda en el contacto y devuelve el PDF.
func (uc *PowerUseCase) Generate(ctx context.Context, contactID string, in dto.PowerRequest) (*PowerFile, error) {
	c, p, err := uc.prepare(ctx, contactID, in)
	if err != nil {
		return nil, err
	}
	return uc.render(ctx, c, in.MandanteType, p)
}

// Send genera el Poder y lo envía al contacto (o a in.To) con el logo embebido si la marca es mixta.
func (uc *PowerUseCase) Send(ctx context.Context, contactID string, in dto.PowerRequest) error {
	if uc.mailer == nil {
		return fmt.Errorf("SMTP: %w", domain.ErrNotConfigured)
	}
	c, p, err := uc.prepare(ctx, contactID, in)
	if err != nil {
		return err
	}
	file, err := uc.render(ctx, c, in.MandanteType, p)
	if err != nil {
		return err
	}

	to := strings.TrimSpace(in.To)
	if to == "" {
		to = c.Email
	}
	parts := []ports.MailPart{{Filename: file.FileName, Data: file.Data}}
	withLogo := power.HasLogo(p)
	if withLogo {
		logo, err := decodeDataURL(p.BrandLogo)
		if err != nil {
			uc.log.Warn().Err(err).Str("contact", c.ID).Msg("logo de marca ilegible, se envía sin logo")
			withLogo = false
		} else {
			parts = append(parts, ports.MailPart{Filename: LogoFilename, Data: logo, Embedded: true, CID: LogoCID})
		}
	}

	err = uc.mailer.Send(ctx, ports.OutgoingMail{
		To:          []string{to},
		Subject:     power.MailSubject(c),
		Body:        power.MailBody(uc.attorney, c, p, withLogo),
		Attachments: parts,
	})
	if err != nil {
		return fmt.Errorf("enviar poder: %w", err)
	}
	uc.log.Info().Str("contact", c.ID).Str("to", to).Str("file", file.FileName).Msg("poder enviado")
	return nil
}

func (uc *PowerUseCase) prepare(ctx context.Context, contactID string, in dto.PowerRequest) (*entity.Contact, entity.PowerData, error) {
	p := PowerDataFromFields(in.PowerFields)
	if err := power.Validate(in.MandanteType, p); err != nil {
		return nil, p, err
	}
	c, err := uc.contacts.GetByID(ctx, contactID)
	if err != nil {
		return nil, p, err
	}
	if c == nil {
		return nil, p, fmt.Errorf("Contacto no encontrado: %w", domain.ErrNotFound)
	}
	if _, err := uc.contacts.UpdatePower(ctx, contactID, p); err != nil {
		return nil, p, fmt.Errorf("guardar datos del poder: %w", err)
	}
	c.Power = p
	return c, p, nil
}

func (uc *PowerUseCase) render(ctx context.Context, c *entity.Contact, mandanteType string, p entity.PowerData) (*PowerFile, error) {
	doc := power.Compose(uc.attorney, mandanteType, c, p, uc.now())
	data, err := uc.pdf.GeneratePowerPDF(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("generar PDF del poder: %w", err)
	}
	return &PowerFile{FileName: doc.FileName, Data: data}, nil
}

// decodeDataURL decodifica "data:<mime>;base64,<datos>" o base64 a secas.
func decodeDataURL(s string) ([]byte, error) {
	if i := strings.IndexByte(s, ','); i >= 0 {
		s = s[i+1:]
	}
	return base64.StdEncoding.DecodeString(strings.TrimSpace(s))
}
