package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/patriciastocker/intranet/internal/application/dto"
	"github.com/patriciastocker/intranet/internal/application/usecase"
	"github.com/patriciastocker/intranet/internal/domain"
)

// PowerHandler genera y envía el Poder de un contacto.
type PowerHandler struct {
	uc *usecase.PowerUseCase
}

// NewPowerHandler construye el handler inyectando el caso de uso.
func NewPowerHandler(uc *usecase.PowerUseCase) *PowerHandler {
	return &PowerHandler{uc: uc}
}

func powerError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return notFound(c, "Contact not found")
	}
	return respondError(c, err, "")
}

// Generate godoc
// @Summary      Generar el Poder en PDF
// @Description  Guarda los datos del poder en el contacto y devuelve el PDF.
// @Tags         power
// @Security     Bearer
// @Accept       json
// @Produce      application/pdf
// @Param        id    path  string            true  "ID del contacto"
// @Param        body  body  dto.PowerRequest  true  "Datos del mandante y la marca"
// @Success      200   {file}    binary
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/contacts/{id}/power [post]
func (h *PowerHandler) Generate(c *fiber.Ctx) error {
	var in dto.PowerRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	file, err := h.uc.Generate(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return powerError(c, err)
	}
	c.Attachment(file.FileName)
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(file.Data)
}

// Send godoc
// @Summary      Enviar el Poder por correo
// @Tags         power
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string            true  "ID del contacto"
// @Param        body  body  dto.PowerRequest  true  "Datos del poder y destinatario opcional"
// @Success      200   {object}  dto.SuccessResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/contacts/{id}/power/send [post]
func (h *PowerHandler) Send(c *fiber.Ctx) error {
	var in dto.PowerRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.uc.Send(c.UserContext(), c.Params("id"), in); err != nil {
		return powerError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}
