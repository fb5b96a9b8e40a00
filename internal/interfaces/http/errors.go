package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/patriciastocker/intranet/internal/application/dto"
	"github.com/patriciastocker/intranet/internal/domain"
)

var sentinels = []error{
	domain.ErrNotFound,
	domain.ErrInvalidInput,
	domain.ErrDuplicate,
	domain.ErrConflict,
	domain.ErrHasDependents,
	domain.ErrUnauthorized,
	domain.ErrUpstream,
	domain.ErrNoContactMatch,
	domain.ErrNotConfigured,
}

// statusFor traduce un error de dominio a status HTTP y código de error.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrNoContactMatch):
		return fiber.StatusBadRequest, "NO_CONTACT"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrHasDependents):
		return fiber.StatusConflict, "HAS_DEPENDENTS"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrNotConfigured):
		return fiber.StatusServiceUnavailable, "NOT_CONFIGURED"
	case errors.Is(err, domain.ErrUpstream):
		return fiber.StatusInternalServerError, "UPSTREAM"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

// errorMessage quita del mensaje el sufijo del sentinel envuelto ("Title is required: entrada inválida").
func errorMessage(err error) string {
	msg := err.Error()
	for _, s := range sentinels {
		msg = strings.TrimSuffix(msg, ": "+s.Error())
	}
	return msg
}

// internalMessage se envía en lugar del texto de errores no tipificados (driver, red).
const internalMessage = "Error interno del servidor"

// localError guarda el error original para que RequestLogger lo registre.
const localError = "error"

// respondError responde con el status del error. msg reemplaza el mensaje del error si no está vacío.
// Los errores sin sentinel nunca exponen su texto al cliente.
func respondError(c *fiber.Ctx, err error, msg string) error {
	status, code := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		c.Locals(localError, err)
	}
	if msg == "" {
		msg = errorMessage(err)
		if code == "INTERNAL" {
			msg = internalMessage
		}
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: msg})
}

// respondProxy responde el cuerpo del proxy. Con error el cuerpo es el de respaldo:
// 400 si faltó un parámetro, 404 si el recurso no existe y 500 en cualquier otro caso.
func respondProxy(c *fiber.Ctx, body any, err error) error {
	switch {
	case err == nil:
		return c.JSON(body)
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(body)
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(body)
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(body)
	}
}
