package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/patriciastocker/intranet/internal/application/dto"
	"github.com/patriciastocker/intranet/internal/application/ports"
	"github.com/patriciastocker/intranet/internal/domain"
	"github.com/patriciastocker/intranet/internal/domain/analysis"
	"github.com/patriciastocker/intranet/internal/domain/entity"
	"github.com/patriciastocker/intranet/internal/domain/repository"
	"github.com/patriciastocker/intranet/pkg/logger"
)

// LLMTimeout tiempo máximo de la consulta al modelo antes de caer al matcher local.
const LLMTimeout = 10 * time.Second

// NoContactError ningún contacto de la agenda corresponde a la nota.
// Lleva los datos inferidos del texto para que el frontend ofrezca crearlo.
type NoContactError struct {
	Suggested dto.SuggestedContact
}

func (e *NoContactError) Error() string {
	return "No se pudo identificar un contacto en el contenido del post-it"
}

func (e *NoContactError) Unwrap() error { return domain.ErrNoContactMatch }

// DraftUseCase redacta un correo de consulta a partir de un post-it.
type DraftUseCase struct {
	contacts repository.ContactRepository
	llm      ports.LLMService
	lexicon  *analysis.Lexicon
	signer   string
	log      *logger.Logger
}

// NewDraftUseCase construye el caso de uso. llm puede ser nil: se usa sólo el matcher local.
func NewDraftUseCase(contacts repository.ContactRepository, llm ports.LLMService, lexicon *analysis.Lexicon, signer string, log *logger.Logger) *DraftUseCase {
	return &DraftUseCase{
		contacts: contacts,
		llm:      llm,
		lexicon:  lexicon,
		signer:   signer,
		log:      log.Component("draft"),
	}
}

// Generate identifica el destinatario y arma el borrador.
// Errores: domain.ErrInvalidInput sin contenido, domain.ErrNotFound si el contacto forzado no existe,
// *NoContactError si no hay coincidencia.
func (uc *DraftUseCase) Generate(ctx context.Context, in dto.GenerateEmailRequest) (*dto.GenerateEmailResponse, error) {
	if strings.TrimSpace(in.PostItContent) == "" {
		return nil, fmt.Errorf("Post-it content is required: %w", domain.ErrInvalidInput)
	}

	if in.ForceContactID != "" {
		c, err := uc.contacts.GetByID(ctx, in.ForceContactID)
		if err != nil {
			return nil, fmt.Errorf("Error generating email: %w", err)
		}
		if c == nil {
			return nil, fmt.Errorf("Contacto especificado no encontrado: %w", domain.ErrNotFound)
		}
		return uc.draft(c, in, false), nil
	}

	all, err := uc.contacts.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("Error generating email: %w", err)
	}

	text := in.PostItContent + " " + in.PostItTitle
	if c := uc.ask(ctx, text, all); c != nil {
		return uc.draft(c, in, true), nil
	}
	if matches := uc.lexicon.MatchContacts(text, all); len(matches) > 0 {
		return uc.draft(matches[0], in, false), nil
	}

	s := uc.lexicon.ExtractContactInfo(text)
	return nil, &NoContactError{Suggested: dto.SuggestedContact{
		Email: s.Email,
		Phone: s.Phone,
		Name:  s.Name,
		Alias: s.Alias,
	}}
}

// ask consulta al modelo; cualquier fallo se registra y devuelve nil.
func (uc *DraftUseCase) ask(ctx context.Context, text string, contacts []*entity.Contact) *entity.Contact {
	if uc.llm == nil || len(contacts) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, LLMTimeout)
	defer cancel()

	answer, err := uc.llm.SuggestContact(ctx, text, contacts)
	if err != nil {
		ev := uc.log.Warn()
		if errors.Is(err, domain.ErrNotConfigured) {
			ev = uc.log.Debug()
		}
		ev.Err(err).Msg("LLM no disponible, se usa el matcher local")
		return nil
	}
	c := analysis.MatchAnswer(answer, contacts)
	uc.log.Debug().Str("answer", answer).Bool("matched", c != nil).Msg("respuesta del LLM")
	return c
}

func (uc *DraftUseCase) draft(c *entity.Contact, in dto.GenerateEmailRequest, aiGenerated bool) *dto.GenerateEmailResponse {
	title := in.PostItTitle
	if title == "" {
		title = "Post-it"
	}
	body := fmt.Sprintf("Hola %s,\n\nTe escribo para consultarte sobre lo siguiente:\n\n%s\n\nSaludos cordiales,\n%s",
		c.Greeting(), in.PostItContent, uc.signer)

	return &dto.GenerateEmailResponse{
		Success: true,
		Email: dto.DraftEmail{
			To:          c.Email,
			Subject:     "Consulta - " + title,
			Body:        body,
			Contact:     ToContactResponse(c),
			AIGenerated: aiGenerated,
		},
	}
}
