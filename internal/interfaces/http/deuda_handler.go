package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/patriciastocker/intranet/internal/application/dto"
	"github.com/patriciastocker/intranet/internal/application/usecase"
	"github.com/patriciastocker/intranet/internal/domain"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DeudaHandler maneja las deudas con empresas acreedoras y su resumen.
type DeudaHandler struct {
	uc       *usecase.DeudaUseCase
	empresas *usecase.EmpresaUseCase
}

// NewDeudaHandler construye el handler inyectando los casos de uso.
func NewDeudaHandler(uc *usecase.DeudaUseCase, empresas *usecase.EmpresaUseCase) *DeudaHandler {
	return &DeudaHandler{uc: uc, empresas: empresas}
}

func deudaID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	return id, err == nil && id > 0
}

// List godoc
// @Summary      Listar deudas
// @Tags         deudas
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DeudaListResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/deudas [get]
func (h *DeudaHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err, "Error al obtener deudas")
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar deuda
// @Tags         deudas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDeudaRequest  true  "Factura adeudada"
// @Success      200   {object}  dto.DeudaEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/deudas [post]
func (h *DeudaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDeudaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return deudaWriteError(c, err, "Error al crear deuda")
	}
	return c.JSON(dto.DeudaEnvelope{Deuda: *out})
}

// Update godoc
// @Summary      Actualizar deuda (parcial)
// @Tags         deudas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true  "ID de la deuda"
// @Param        body  body  dto.UpdateDeudaRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.DeudaEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/deudas/{id} [put]
func (h *DeudaHandler) Update(c *fiber.Ctx) error {
	id, ok := deudaID(c)
	if !ok {
		return notFound(c, "Deuda no encontrada")
	}
	var in dto.UpdateDeudaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(c, "Deuda no encontrada")
		}
		return deudaWriteError(c, err, "Error al actualizar deuda")
	}
	if out == nil {
		return notFound(c, "Deuda no encontrada")
	}
	return c.JSON(dto.DeudaEnvelope{Deuda: *out})
}

// Delete godoc
// @Summary      Eliminar deuda
// @Tags         deudas
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la deuda"
// @Success      200  {object}  dto.DeudaEnvelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deudas/{id} [delete]
func (h *DeudaHandler) Delete(c *fiber.Ctx) error {
	id, ok := deudaID(c)
	if !ok {
		return notFound(c, "Deuda no encontrada")
	}
	out, err := h.uc.Delete(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "Error al eliminar deuda")
	}
	if out == nil {
		return notFound(c, "Deuda no encontrada")
	}
	return c.JSON(dto.DeudaEnvelope{Deuda: *out})
}

// Resumen godoc
// @Summary      Total adeudado y desglose por empresa
// @Tags         deudas
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ResumenResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/resumen [get]
func (h *DeudaHandler) Resumen(c *fiber.Ctx) error {
	out, err := h.uc.Resumen(c.UserContext())
	if err != nil {
		return respondError(c, err, "Error al obtener resumen")
	}
	return c.JSON(out)
}

// Recalcular godoc
// @Summary      Marcar vencidas las deudas con fecha de vencimiento pasada
// @Tags         deudas
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RecalcularResponse
// @Router       /api/deudas/recalcular [post]
func (h *DeudaHandler) Recalcular(c *fiber.Ctx) error {
	out, err := h.uc.RecalcularVencimientos(c.UserContext())
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Descargar las deudas como planilla XLSX
// @Tags         deudas
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/deudas/export [get]
func (h *DeudaHandler) Export(c *fiber.Ctx) error {
	data, err := h.uc.Export(c.UserContext())
	if err != nil {
		return respondError(c, err, "")
	}
	c.Attachment("deudas.xlsx")
	c.Set(fiber.HeaderContentType, xlsxContentType)
	return c.Send(data)
}

// Empresas godoc
// @Summary      Empresas acreedoras indexadas por nombre
// @Tags         deudas
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.EmpresasResponse
// @Router       /api/empresas [get]
func (h *DeudaHandler) Empresas(c *fiber.Ctx) error {
	out, err := h.empresas.List(c.UserContext())
	if err != nil {
		return respondError(c, err, "Error al obtener empresas")
	}
	return c.JSON(out)
}

// deudaWriteError cualquier fallo al guardar una deuda se responde 400 con un mensaje fijo.
func deudaWriteError(c *fiber.Ctx, err error, msg string) error {
	code := "VALIDATION"
	if !errors.Is(err, domain.ErrInvalidInput) {
		code = "SAVE_FAILED"
		c.Locals(localError, err)
	}
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
