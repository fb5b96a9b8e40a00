package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/patriciastocker/intranet/internal/application/dto"
	"github.com/patriciastocker/intranet/internal/application/usecase"
	"github.com/patriciastocker/intranet/internal/domain"
	"github.com/patriciastocker/intranet/internal/domain/repository"
)

// CompanyHandler maneja las peticiones HTTP para las empresas cliente y sus marcas.
type CompanyHandler struct {
	uc     *usecase.CompanyUseCase
	brands *usecase.BrandUseCase
}

// NewCompanyHandler construye el handler inyectando los casos de uso.
func NewCompanyHandler(uc *usecase.CompanyUseCase, brands *usecase.BrandUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc, brands: brands}
}

// companyError traduce los errores comunes de create/update.
func companyError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrDuplicate) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "Company name already exists"})
	}
	return respondError(c, err, "")
}

// List godoc
// @Summary      Listar empresas
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Param        search         query  string  false  "Filtro por nombre o descripción"
// @Param        includeBrands  query  bool    false  "Incluir marcas de cada empresa"
// @Success      200  {object}  dto.CompanyListResponse
// @Router       /api/companies [get]
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("search"), c.Query("includeBrands") == "true")
	if err != nil {
		return respondError(c, err, "Error fetching companies")
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener empresa con sus marcas
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.CompanyEnvelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [get]
func (h *CompanyHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "Error fetching company")
	}
	if out == nil {
		return notFound(c, "Company not found")
	}
	return c.JSON(dto.CompanyEnvelope{Company: *out})
}

// Create godoc
// @Summary      Crear empresa
// @Tags         companies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CompanyRequest  true  "Datos de la empresa"
// @Success      200   {object}  dto.CompanyEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/companies [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return companyError(c, err)
	}
	return c.JSON(dto.CompanyEnvelope{Company: *out})
}

// Update godoc
// @Summary      Actualizar empresa
// @Tags         companies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID de la empresa"
// @Param        body  body  dto.CompanyRequest  true  "Datos de la empresa"
// @Success      200   {object}  dto.CompanyEnvelope
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [put]
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	var in dto.CompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return companyError(c, err)
	}
	if out == nil {
		return notFound(c, "Company not found")
	}
	return c.JSON(dto.CompanyEnvelope{Company: *out})
}

// Delete godoc
// @Summary      Eliminar empresa y sus marcas
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.DeletedResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [delete]
func (h *CompanyHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	ok, err := h.uc.Delete(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, domain.ErrHasDependents) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Code:    "HAS_DEPENDENTS",
				Message: "Cannot delete company with associated contacts",
			})
		}
		return respondError(c, err, "Error deleting company")
	}
	if !ok {
		return notFound(c, "Company not found")
	}
	return c.JSON(dto.DeletedResponse{Message: "Company deleted successfully", DeletedID: id})
}

// ── Marcas ────────────────────────────────────────────────────────────────────

func brandError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return notFound(c, "Company not found")
	}
	return respondError(c, err, "")
}

// ListBrands godoc
// @Summary      Listar marcas
// @Tags         brands
// @Security     Bearer
// @Produce      json
// @Param        companyId  query  string  false  "Marcas de una empresa"
// @Param        search     query  string  false  "Filtro por nombre o descripción"
// @Success      200  {object}  dto.BrandListResponse
// @Router       /api/brands [get]
func (h *CompanyHandler) ListBrands(c *fiber.Ctx) error {
	out, err := h.brands.List(c.UserContext(), repository.BrandFilter{
		CompanyID: c.Query("companyId"),
		Search:    c.Query("search"),
	})
	if err != nil {
		return respondError(c, err, "Error fetching brands")
	}
	return c.JSON(out)
}

// GetBrand godoc
// @Summary      Obtener marca
// @Tags         brands
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la marca"
// @Success      200  {object}  dto.BrandEnvelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/brands/{id} [get]
func (h *CompanyHandler) GetBrand(c *fiber.Ctx) error {
	out, err := h.brands.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "Error fetching brand")
	}
	if out == nil {
		return notFound(c, "Brand not found")
	}
	return c.JSON(dto.BrandEnvelope{Brand: *out})
}

// CreateBrand godoc
// @Summary      Crear marca
// @Tags         brands
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BrandRequest  true  "Datos de la marca"
// @Success      200   {object}  dto.BrandEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/brands [post]
func (h *CompanyHandler) CreateBrand(c *fiber.Ctx) error {
	var in dto.BrandRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.brands.Create(c.UserContext(), in)
	if err != nil {
		return brandError(c, err)
	}
	return c.JSON(dto.BrandEnvelope{Brand: *out})
}

// UpdateBrand godoc
// @Summary      Actualizar marca
// @Tags         brands
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string            true  "ID de la marca"
// @Param        body  body  dto.BrandRequest  true  "Datos de la marca"
// @Success      200   {object}  dto.BrandEnvelope
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/brands/{id} [put]
func (h *CompanyHandler) UpdateBrand(c *fiber.Ctx) error {
	var in dto.BrandRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.brands.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return brandError(c, err)
	}
	if out == nil {
		return notFound(c, "Brand not found")
	}
	return c.JSON(dto.BrandEnvelope{Brand: *out})
}

// DeleteBrand godoc
// @Summary      Eliminar marca
// @Tags         brands
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la marca"
// @Success      200  {object}  dto.DeletedResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/brands/{id} [delete]
func (h *CompanyHandler) DeleteBrand(c *fiber.Ctx) error {
	id := c.Params("id")
	ok, err := h.brands.Delete(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "Error deleting brand")
	}
	if !ok {
		return notFound(c, "Brand not found")
	}
	return c.JSON(dto.DeletedResponse{Message: "Brand deleted successfully", DeletedID: id})
}
