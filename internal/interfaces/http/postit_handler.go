package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/patriciastocker/intranet/internal/application/dto"
	"github.com/patriciastocker/intranet/internal/application/usecase"
)

// PostItHandler maneja los post-its del tablero y el estado de lectura de correos.
type PostItHandler struct {
	uc     *usecase.PostItUseCase
	status *usecase.ReadStatusUseCase
}

// NewPostItHandler construye el handler inyectando los casos de uso.
func NewPostItHandler(uc *usecase.PostItUseCase, status *usecase.ReadStatusUseCase) *PostItHandler {
	return &PostItHandler{uc: uc, status: status}
}

// List godoc
// @Summary      Listar post-its
// @Tags         post-its
// @Security     Bearer
// @Produce      json
// @Param        archived  query  int  false  "1 = archivados"  default(0)
// @Success      200  {object}  dto.PostItListResponse
// @Router       /api/post-its [get]
func (h *PostItHandler) List(c *fiber.Ctx) error {
	archived := c.Query("archived") == "1" || c.Query("archived") == "true"
	out, err := h.uc.List(c.UserContext(), archived)
	if err != nil {
		return respondError(c, err, "Error fetching post-its")
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener post-it
// @Tags         post-its
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del post-it"
// @Success      200  {object}  dto.PostItEnvelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/post-its/{id} [get]
func (h *PostItHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "Error fetching post-it")
	}
	if out == nil {
		return notFound(c, "Post-it not found")
	}
	return c.JSON(dto.PostItEnvelope{PostIt: *out})
}

// Create godoc
// @Summary      Crear post-it (queda primero)
// @Tags         post-its
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePostItRequest  true  "Contenido"
// @Success      200   {object}  dto.PostItEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/post-its [post]
func (h *PostItHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePostItRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(dto.PostItEnvelope{PostIt: *out})
}

// Update godoc
// @Summary      Actualizar post-it (parcial)
// @Tags         post-its
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del post-it"
// @Param        body  body  dto.UpdatePostItRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.PostItEnvelope
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/post-its/{id} [put]
func (h *PostItHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePostItRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err, "")
	}
	if out == nil {
		return notFound(c, "Post-it not found")
	}
	return c.JSON(dto.PostItEnvelope{PostIt: *out})
}

// Delete godoc
// @Summary      Eliminar post-it
// @Tags         post-its
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del post-it"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/post-its/{id} [delete]
func (h *PostItHandler) Delete(c *fiber.Ctx) error {
	ok, err := h.uc.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "Error deleting post-it")
	}
	if !ok {
		return notFound(c, "Post-it not found")
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

// Reorder godoc
// @Summary      Reordenar post-its
// @Tags         post-its
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReorderPostItsRequest  true  "IDs en el orden deseado"
// @Success      200   {object}  dto.SuccessResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/post-its/reorder [put]
func (h *PostItHandler) Reorder(c *fiber.Ctx) error {
	var in dto.ReorderPostItsRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.uc.Reorder(c.UserContext(), in.IDs); err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

// ── Estado de lectura ─────────────────────────────────────────────────────────

func emailIDRequired(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "Email ID is required"})
}

// ReadEmails godoc
// @Summary      IDs de correos marcados como leídos
// @Tags         read-status
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReadStatusResponse
// @Router       /api/read-status [get]
func (h *PostItHandler) ReadEmails(c *fiber.Ctx) error {
	out, err := h.status.List(c.UserContext())
	if err != nil {
		return respondError(c, err, "Error fetching read status")
	}
	return c.JSON(out)
}

// MarkRead godoc
// @Summary      Marcar correo como leído
// @Tags         read-status
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReadStatusRequest  true  "Correo"
// @Success      200   {object}  dto.SuccessResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/read-status [post]
func (h *PostItHandler) MarkRead(c *fiber.Ctx) error {
	var in dto.ReadStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if strings.TrimSpace(in.EmailID) == "" {
		return emailIDRequired(c)
	}
	if err := h.status.MarkRead(c.UserContext(), in.EmailID); err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

// MarkUnread godoc
// @Summary      Marcar correo como no leído
// @Tags         read-status
// @Security     Bearer
// @Produce      json
// @Param        emailId  query  string  true  "ID del correo"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/read-status [delete]
func (h *PostItHandler) MarkUnread(c *fiber.Ctx) error {
	id := c.Query("emailId")
	if strings.TrimSpace(id) == "" {
		return emailIDRequired(c)
	}
	if err := h.status.MarkUnread(c.UserContext(), id); err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}
