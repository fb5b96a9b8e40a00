// Package smtp envía correo saliente por el relay de la oficina con gomail.
package smtp

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/patriciastocker/intranet/internal/application/ports"
	"github.com/patriciastocker/intranet/internal/domain"
	"github.com/patriciastocker/intranet/internal/infrastructure/metrics"
	"github.com/patriciastocker/intranet/pkg/config"
	"github.com/patriciastocker/intranet/pkg/logger"
)

var _ ports.MailSender = (*Sender)(nil)

const (
	initialBackoff = 200 * time.Millisecond
	maxBackoffMs   = 32000
)

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Sender implementa ports.MailSender con reintentos y backoff exponencial.
type Sender struct {
	dialer      dialer
	fromAddress string
	fromName    string
	retries     int
	backoff     time.Duration
	log         *logger.Logger
}

// NewSender construye el sender a partir de la configuración SMTP.
func NewSender(cfg config.SMTPConfig, log *logger.Logger) *Sender {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	d.TLSConfig = &tls.Config{ServerName: cfg.Host}
	d.SSL = cfg.Port == 465

	from := cfg.FromAddress
	if from == "" {
		from = cfg.User
	}
	retries := cfg.MaxRetries
	if retries < 0 {
		retries = 0
	}
	log = log.Component("smtp")
	log.Info().Str("host", cfg.Host).Int("port", cfg.Port).Int("retries", retries).Msg("sender SMTP inicializado")
	return &Sender{
		dialer:      d,
		fromAddress: from,
		fromName:    cfg.FromName,
		retries:     retries,
		backoff:     initialBackoff,
		log:         log,
	}
}

// Send arma el mensaje y lo envía; reintenta hasta retries veces antes de rendirse.
func (s *Sender) Send(ctx context.Context, mail ports.OutgoingMail) error {
	if s.fromAddress == "" {
		return fmt.Errorf("smtp: SMTP_USER/SMTP_FROM: %w", domain.ErrNotConfigured)
	}
	if len(mail.To) == 0 {
		return fmt.Errorf("smtp: destinatario requerido: %w", domain.ErrInvalidInput)
	}
	msg := s.buildMessage(mail)

	var lastErr error
	backoffMs := float64(s.backoff.Milliseconds())
	for attempt := 0; attempt <= s.retries; attempt++ {
		err := s.dialer.DialAndSend(msg)
		if err == nil {
			s.log.Info().Strs("to", mail.To).Str("subject", mail.Subject).Int("attempt", attempt+1).Msg("correo enviado")
			metrics.MailSent.WithLabelValues("ok").Inc()
			return nil
		}
		lastErr = err
		if attempt == s.retries {
			break
		}
		wait := time.Duration(backoffMs) * time.Millisecond
		s.log.Warn().Err(err).Int("attempt", attempt+1).Dur("retry_in", wait).Msg("envío fallido, reintentando")
		select {
		case <-ctx.Done():
			lastErr = errors.Join(lastErr, ctx.Err())
			attempt = s.retries
		case <-time.After(wait):
		}
		backoffMs = math.Min(backoffMs*2, maxBackoffMs)
	}

	metrics.MailSent.WithLabelValues("error").Inc()
	s.log.Error().Err(lastErr).Strs("to", mail.To).Msg("no se pudo enviar el correo")
	return fmt.Errorf("smtp: enviar: %w", lastErr)
}

func (s *Sender) buildMessage(mail ports.OutgoingMail) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", s.fromAddress, s.fromName)
	msg.SetHeader("To", mail.To...)
	if len(mail.Cc) > 0 {
		msg.SetHeader("Cc", mail.Cc...)
	}
	msg.SetHeader("Subject", mail.Subject)
	if mail.HTML {
		msg.SetBody("text/html", mail.Body)
	} else {
		msg.SetBody("text/plain", mail.Body)
	}
	for _, part := range mail.Attachments {
		copyFn := gomail.SetCopyFunc(writeBytes(part.Data))
		if part.Embedded {
			cid := part.CID
			if cid == "" {
				cid = part.Filename
			}
			msg.Embed(part.Filename, copyFn, gomail.SetHeader(map[string][]string{
				"Content-ID": {"<" + cid + ">"},
			}))
			continue
		}
		msg.Attach(part.Filename, copyFn)
	}
	return msg
}

func writeBytes(data []byte) func(io.Writer) error {
	return func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	}
}
