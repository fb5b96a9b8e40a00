package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/patriciastocker/intranet/internal/application/dto"
	"github.com/patriciastocker/intranet/internal/domain"
	"github.com/patriciastocker/intranet/internal/domain/entity"
	"github.com/patriciastocker/intranet/internal/domain/repository"
)

// CompanyUseCase casos de uso de empresas cliente y sus marcas.
type CompanyUseCase struct {
	repo     repository.CompanyRepository
	brands   repository.BrandRepository
	contacts repository.ContactRepository
	now      func() time.Time
}

// NewCompanyUseCase construye el caso de uso.
func NewCompanyUseCase(repo repository.CompanyRepository, brands repository.BrandRepository, contacts repository.ContactRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, brands: brands, contacts: contacts, now: time.Now}
}

// List filtra empresas; con includeBrands carga las marcas de cada una.
func (uc *CompanyUseCase) List(ctx context.Context, search string, includeBrands bool) (*dto.CompanyListResponse, error) {
	list, err := uc.repo.List(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}
	out := &dto.CompanyListResponse{Companies: make([]dto.CompanyResponse, 0, len(list))}
	for _, c := range list {
		if includeBrands {
			if c.Brands, err = uc.brands.List(ctx, repository.BrandFilter{CompanyID: c.ID}); err != nil {
				return nil, err
			}
		}
		out.Companies = append(out.Companies, toCompanyResponse(c, includeBrands))
	}
	return out, nil
}

// GetByID obtiene la empresa con sus marcas. (nil, nil) si no existe.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil || c == nil {
		return nil, err
	}
	if c.Brands, err = uc.brands.List(ctx, repository.BrandFilter{CompanyID: id}); err != nil {
		return nil, err
	}
	out := toCompanyResponse(c, true)
	return &out, nil
}

// Create registra una empresa. Nombre repetido = domain.ErrDuplicate.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CompanyRequest) (*dto.CompanyResponse, error) {
	c, err := companyFromRequest(in)
	if err != nil {
		return nil, err
	}
	c.ID = newID("company", uc.now())
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, c.ID)
}

// Update actualiza la empresa. (nil, nil) si no existe.
func (uc *CompanyUseCase) Update(ctx context.Context, id string, in dto.CompanyRequest) (*dto.CompanyResponse, error) {
	c, err := companyFromRequest(in)
	if err != nil {
		return nil, err
	}
	c.ID = id
	ok, err := uc.repo.Update(ctx, c)
	if err != nil || !ok {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// Delete elimina la empresa y sus marcas. Con contactos asociados devuelve domain.ErrHasDependents.
func (uc *CompanyUseCase) Delete(ctx context.Context, id string) (bool, error) {
	existing, err := uc.repo.GetByID(ctx, id)
	if err != nil || existing == nil {
		return false, err
	}
	n, err := uc.contacts.CountByCompany(ctx, id)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, fmt.Errorf("company %s tiene %d contactos: %w", id, n, domain.ErrHasDependents)
	}
	return uc.repo.Delete(ctx, id)
}

func companyFromRequest(in dto.CompanyRequest) (*entity.Company, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("Company name is required: %w", domain.ErrInvalidInput)
	}
	return &entity.Company{
		Name:        name,
		Description: in.Description,
		Website:     in.Website,
		Phone:       in.Phone,
		Address:     in.Address,
	}, nil
}

func toCompanyResponse(c *entity.Company, withBrands bool) dto.CompanyResponse {
	out := dto.CompanyResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Website:     c.Website,
		Phone:       c.Phone,
		Address:     c.Address,
		CreatedAt:   formatTimestamp(c.CreatedAt),
		UpdatedAt:   formatTimestamp(c.UpdatedAt),
	}
	if withBrands {
		out.Brands = make([]dto.BrandResponse, 0, len(c.Brands))
		for _, b := range c.Brands {
			out.Brands = append(out.Brands, toBrandResponse(b))
		}
	}
	return out
}

// BrandUseCase casos de uso de marcas.
type BrandUseCase struct {
	repo      repository.BrandRepository
	companies repository.CompanyRepository
	now       func() time.Time
}

// NewBrandUseCase construye el caso de uso.
func NewBrandUseCase(repo repository.BrandRepository, companies repository.CompanyRepository) *BrandUseCase {
	return &BrandUseCase{repo: repo, companies: companies, now: time.Now}
}

// List filtra por empresa y texto.
func (uc *BrandUseCase) List(ctx context.Context, f repository.BrandFilter) (*dto.BrandListResponse, error) {
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := &dto.BrandListResponse{Brands: make([]dto.BrandResponse, 0, len(list))}
	for _, b := range list {
		out.Brands = append(out.Brands, toBrandResponse(b))
	}
	return out, nil
}

// GetByID obtiene una marca. (nil, nil) si no existe.
func (uc *BrandUseCase) GetByID(ctx context.Context, id string) (*dto.BrandResponse, error) {
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil || b == nil {
		return nil, err
	}
	out := toBrandResponse(b)
	return &out, nil
}

// Create registra una marca. La empresa debe existir (domain.ErrNotFound).
func (uc *BrandUseCase) Create(ctx context.Context, in dto.BrandRequest) (*dto.BrandResponse, error) {
	b, err := uc.brandFromRequest(ctx, in)
	if err != nil {
		return nil, err
	}
	b.ID = newID("brand", uc.now())
	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, b.ID)
}

// Update reemplaza la marca. (nil, nil) si no existe.
func (uc *BrandUseCase) Update(ctx context.Context, id string, in dto.BrandRequest) (*dto.BrandResponse, error) {
	b, err := uc.brandFromRequest(ctx, in)
	if err != nil {
		return nil, err
	}
	b.ID = id
	ok, err := uc.repo.Update(ctx, b)
	if err != nil || !ok {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// Delete elimina la marca; false si no existía.
func (uc *BrandUseCase) Delete(ctx context.Context, id string) (bool, error) {
	return uc.repo.Delete(ctx, id)
}

func (uc *BrandUseCase) brandFromRequest(ctx context.Context, in dto.BrandRequest) (*entity.Brand, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.CompanyID == "" {
		return nil, fmt.Errorf("Brand name and company ID are required: %w", domain.ErrInvalidInput)
	}
	company, err := uc.companies.GetByID(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, fmt.Errorf("company %s: %w", in.CompanyID, domain.ErrNotFound)
	}
	status := in.Status
	if status == "" {
		status = entity.BrandStatusActive
	}
	return &entity.Brand{
		Name:               name,
		CompanyID:          in.CompanyID,
		Description:        in.Description,
		Status:             status,
		RegistrationDate:   in.RegistrationDate,
		RegistrationNumber: in.RegistrationNumber,
		ClassNice:          in.ClassNice,
		Notes:              in.Notes,
	}, nil
}

func toBrandResponse(b *entity.Brand) dto.BrandResponse {
	return dto.BrandResponse{
		ID:                 b.ID,
		Name:               b.Name,
		CompanyID:          b.CompanyID,
		Description:        b.Description,
		Status:             b.Status,
		RegistrationDate:   optional(b.RegistrationDate),
		RegistrationNumber: b.RegistrationNumber,
		ClassNice:          b.ClassNice,
		Notes:              b.Notes,
		CompanyName:        b.CompanyName,
		CompanyDescription: b.CompanyDescription,
		CreatedAt:          formatTimestamp(b.CreatedAt),
		UpdatedAt:          formatTimestamp(b.UpdatedAt),
	}
}
