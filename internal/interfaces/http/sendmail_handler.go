package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/patriciastocker/intranet/internal/application/dto"
	"github.com/patriciastocker/intranet/internal/application/usecase"
)

// SendMailHandler envío de correos con adjuntos desde el cliente de correo.
type SendMailHandler struct {
	uc *usecase.SendMailUseCase
}

// NewSendMailHandler construye el handler inyectando el caso de uso.
func NewSendMailHandler(uc *usecase.SendMailUseCase) *SendMailHandler {
	return &SendMailHandler{uc: uc}
}

// Send godoc
// @Summary      Enviar correo
// @Tags         emails
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SendEmailRequest  true  "Correo y adjuntos en base64"
// @Success      200   {object}  dto.SendEmailResponse
// @Failure      400   {object}  dto.SendEmailResponse
// @Failure      500   {object}  dto.SendEmailResponse
// @Router       /api/send-email [post]
func (h *SendMailHandler) Send(c *fiber.Ctx) error {
	var in dto.SendEmailRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Send(c.UserContext(), in)
	if err != nil {
		status, _ := statusFor(err)
		return c.Status(status).JSON(dto.SendEmailResponse{Success: false, Error: errorMessage(err)})
	}
	return c.JSON(out)
}
