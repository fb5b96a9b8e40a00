package http

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/patriciastocker/intranet/internal/application/dto"
	"github.com/patriciastocker/intranet/internal/application/usecase"
	"github.com/patriciastocker/intranet/internal/domain"
	"github.com/patriciastocker/intranet/pkg/logger"
	"github.com/valyala/fasthttp"
)

// DraftHandler redacción de correos desde post-its y búsqueda de contactos en el buzón.
type DraftHandler struct {
	draft  *usecase.DraftUseCase
	search *usecase.ContactSearchUseCase
	log    *logger.Logger
}

// NewDraftHandler construye el handler inyectando los casos de uso.
func NewDraftHandler(draft *usecase.DraftUseCase, search *usecase.ContactSearchUseCase, log *logger.Logger) *DraftHandler {
	return &DraftHandler{draft: draft, search: search, log: log.Component("http.draft")}
}

// GenerateEmail godoc
// @Summary      Redactar correo de consulta a partir de un post-it
// @Tags         ai
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerateEmailRequest  true  "Post-it"
// @Success      200   {object}  dto.GenerateEmailResponse
// @Failure      400   {object}  dto.NoContactResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/generate-email [post]
func (h *DraftHandler) GenerateEmail(c *fiber.Ctx) error {
	var in dto.GenerateEmailRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.draft.Generate(c.UserContext(), in)
	if err != nil {
		var nc *usecase.NoContactError
		if errors.As(err, &nc) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.NoContactResponse{
				Error:            nc.Error(),
				SuggestedContact: nc.Suggested,
			})
		}
		if !errors.Is(err, domain.ErrInvalidInput) && !errors.Is(err, domain.ErrNotFound) {
			h.log.Error().Err(err).Msg("generar correo")
		}
		return respondError(c, err, "")
	}
	return c.JSON(out)
}

// SearchContact godoc
// @Summary      Buscar rastros de un contacto en los correos (Server-Sent Events)
// @Description  Cada evento es "data: <json>" con step, progress y, al final, el reporte detallado.
// @Tags         ai
// @Security     Bearer
// @Accept       json
// @Produce      text/event-stream
// @Param        body  body  dto.ContactSearchRequest  true  "Contacto y contexto"
// @Success      200   {object}  dto.ProgressEvent
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/search-contact-in-emails [post]
func (h *DraftHandler) SearchContact(c *fiber.Ctx) error {
	var in dto.ContactSearchRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.search.Validate(in); err != nil {
		return respondError(c, err, "")
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	// El writer corre después de que el handler retorna: no puede usar c.
	ctx, cancel := context.WithCancel(context.Background())
	log := h.log
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		err := h.search.Run(ctx, in, func(ev dto.ProgressEvent) error {
			return writeEvent(w, ev)
		})
		if err != nil {
			log.Warn().Err(err).Str("contact", in.ContactName).Msg("stream de búsqueda interrumpido")
		}
	}))
	return nil
}

// writeEvent escribe un evento SSE y lo envía de inmediato. Falla si el cliente se desconectó.
func writeEvent(w *bufio.Writer, ev dto.ProgressEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return err
	}
	return w.Flush()
}
