package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/patriciastocker/intranet/internal/application/dto"
	"github.com/patriciastocker/intranet/internal/application/usecase"
)

// ContactHandler maneja la agenda de contactos.
type ContactHandler struct {
	uc *usecase.ContactUseCase
}

// NewContactHandler construye el handler inyectando el caso de uso.
func NewContactHandler(uc *usecase.ContactUseCase) *ContactHandler {
	return &ContactHandler{uc: uc}
}

// List godoc
// @Summary      Listar contactos
// @Tags         contacts
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Busca en nombre, alias, email y empresa"
// @Success      200     {object}  dto.ContactListResponse
// @Router       /api/contacts [get]
func (h *ContactHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("search"))
	if err != nil {
		return respondError(c, err, "Error fetching contacts")
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener contacto
// @Tags         contacts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del contacto"
// @Success      200  {object}  dto.ContactEnvelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/contacts/{id} [get]
func (h *ContactHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "Error fetching contact")
	}
	if out == nil {
		return notFound(c, "Contact not found")
	}
	return c.JSON(dto.ContactEnvelope{Contact: *out})
}

// Create godoc
// @Summary      Crear contacto
// @Tags         contacts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ContactRequest  true  "Datos del contacto"
// @Success      200   {object}  dto.ContactEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/contacts [post]
func (h *ContactHandler) Create(c *fiber.Ctx) error {
	var in dto.ContactRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(dto.ContactEnvelope{Contact: *out})
}

// Update godoc
// @Summary      Reemplazar contacto (incluye datos del poder)
// @Tags         contacts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID del contacto"
// @Param        body  body  dto.ContactRequest  true  "Datos del contacto"
// @Success      200   {object}  dto.ContactEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/contacts/{id} [put]
func (h *ContactHandler) Update(c *fiber.Ctx) error {
	var in dto.ContactRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err, "")
	}
	if out == nil {
		return notFound(c, "Contact not found")
	}
	return c.JSON(dto.ContactEnvelope{Contact: *out})
}

// Delete godoc
// @Summary      Eliminar contacto
// @Tags         contacts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del contacto"
// @Success      200  {object}  dto.DeletedResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/contacts/{id} [delete]
func (h *ContactHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	ok, err := h.uc.Delete(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "Error deleting contact")
	}
	if !ok {
		return notFound(c, "Contact not found")
	}
	return c.JSON(dto.DeletedResponse{Message: "Contact deleted successfully", DeletedID: id})
}
