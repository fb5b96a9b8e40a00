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

// ContactUseCase CRUD de contactos.
type ContactUseCase struct {
	repo repository.ContactRepository
	now  func() time.Time
}

// NewContactUseCase construye el caso de uso.
func NewContactUseCase(repo repository.ContactRepository) *ContactUseCase {
	return &ContactUseCase{repo: repo, now: time.Now}
}

// List busca contactos por nombre, alias, email o empresa.
func (uc *ContactUseCase) List(ctx context.Context, search string) (*dto.ContactListResponse, error) {
	list, err := uc.repo.List(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}
	out := &dto.ContactListResponse{Contacts: make([]dto.ContactResponse, 0, len(list))}
	for _, c := range list {
		out.Contacts = append(out.Contacts, ToContactResponse(c))
	}
	return out, nil
}

// GetByID obtiene un contacto. (nil, nil) si no existe.
func (uc *ContactUseCase) GetByID(ctx context.Context, id string) (*dto.ContactResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil || c == nil {
		return nil, err
	}
	out := ToContactResponse(c)
	return &out, nil
}

// Create registra un contacto con id contact_<ms>_<aleatorio>.
func (uc *ContactUseCase) Create(ctx context.Context, in dto.ContactRequest) (*dto.ContactResponse, error) {
	if err := validateContact(in); err != nil {
		return nil, err
	}
	c := contactFromRequest(in)
	c.ID = newID("contact", uc.now())
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, c.ID)
}

// Update reemplaza el contacto completo. (nil, nil) si no existe.
func (uc *ContactUseCase) Update(ctx context.Context, id string, in dto.ContactRequest) (*dto.ContactResponse, error) {
	if err := validateContact(in); err != nil {
		return nil, err
	}
	c := contactFromRequest(in)
	c.ID = id
	ok, err := uc.repo.Update(ctx, c)
	if err != nil || !ok {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// Delete elimina el contacto; false si no existía.
func (uc *ContactUseCase) Delete(ctx context.Context, id string) (bool, error) {
	return uc.repo.Delete(ctx, id)
}

func validateContact(in dto.ContactRequest) error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" {
		return fmt.Errorf("Name and email are required: %w", domain.ErrInvalidInput)
	}
	return nil
}

func contactFromRequest(in dto.ContactRequest) *entity.Contact {
	return &entity.Contact{
		Name:      strings.TrimSpace(in.Name),
		Alias:     strings.TrimSpace(in.Alias),
		Email:     strings.TrimSpace(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		CompanyID: in.CompanyID,
		Power:     PowerDataFromFields(in.PowerFields),
	}
}

// PowerDataFromFields copia los campos del DTO y aplica los valores por defecto.
func PowerDataFromFields(f dto.PowerFields) entity.PowerData {
	p := entity.PowerData{
		RUT:                     f.RUT,
		Address:                 f.Address,
		RepresentedCompany:      f.RepresentedCompany,
		RepresentedCompanyRUT:   f.RepresentedCompanyRUT,
		Gender:                  f.Gender,
		PowerPurpose:            f.PowerPurpose,
		BrandClass:              f.BrandClass,
		BrandType:               f.BrandType,
		BrandCoverage:           f.BrandCoverage,
		BrandDescription:        f.BrandDescription,
		BrandRegistrationNumber: f.BrandRegistrationNumber,
		BrandApplicationNumber:  f.BrandApplicationNumber,
		BrandLogo:               f.BrandLogo,
	}
	p.ApplyDefaults()
	return p
}

// ToContactResponse serializa un contacto con sus campos de empresa como null si no tiene.
func ToContactResponse(c *entity.Contact) dto.ContactResponse {
	p := c.Power
	return dto.ContactResponse{
		ID:                 c.ID,
		Name:               c.Name,
		Alias:              c.Alias,
		Email:              c.Email,
		Phone:              c.Phone,
		CompanyID:          optional(c.CompanyID),
		CompanyName:        optional(c.CompanyName),
		CompanyDescription: optional(c.CompanyDescription),
		PowerFields: dto.PowerFields{
			RUT:                     p.RUT,
			Address:                 p.Address,
			RepresentedCompany:      p.RepresentedCompany,
			RepresentedCompanyRUT:   p.RepresentedCompanyRUT,
			Gender:                  p.Gender,
			PowerPurpose:            p.PowerPurpose,
			BrandClass:              p.BrandClass,
			BrandType:               p.BrandType,
			BrandCoverage:           p.BrandCoverage,
			BrandDescription:        p.BrandDescription,
			BrandRegistrationNumber: p.BrandRegistrationNumber,
			BrandApplicationNumber:  p.BrandApplicationNumber,
			BrandLogo:               p.BrandLogo,
		},
		CreatedAt: formatTimestamp(c.CreatedAt),
		UpdatedAt: formatTimestamp(c.UpdatedAt),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
