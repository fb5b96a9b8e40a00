package repository

import (
	"context"

	"github.com/patriciastocker/intranet/internal/domain/entity"
)

// ContactRepository define el puerto de persistencia para Contact.
type ContactRepository interface {
	// List filtra por nombre, alias, email o nombre de empresa (LIKE); search vacío = todos.
	List(ctx context.Context, search string) ([]*entity.Contact, error)
	GetByID(ctx context.Context, id string) (*entity.Contact, error)
	Create(ctx context.Context, c *entity.Contact) error
	// Update reemplaza todos los campos editables; devuelve false si el id no existe.
	Update(ctx context.Context, c *entity.Contact) (bool, error)
	// UpdatePower persiste sólo los datos de poder; devuelve false si el id no existe.
	UpdatePower(ctx context.Context, id string, p entity.PowerData) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	CountByCompany(ctx context.Context, companyID string) (int, error)
}

// CompanyRepository define el puerto de persistencia para Company.
type CompanyRepository interface {
	List(ctx context.Context, search string) ([]*entity.Company, error)
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	// Create y Update devuelven domain.ErrDuplicate si el nombre ya existe.
	Create(ctx context.Context, c *entity.Company) error
	Update(ctx context.Context, c *entity.Company) (bool, error)
	// Delete elimina la empresa y, en cascada, sus marcas.
	Delete(ctx context.Context, id string) (bool, error)
}

// BrandFilter criterios de búsqueda de marcas.
type BrandFilter struct {
	CompanyID string
	Search    string
}

// BrandRepository define el puerto de persistencia para Brand.
type BrandRepository interface {
	List(ctx context.Context, f BrandFilter) ([]*entity.Brand, error)
	GetByID(ctx context.Context, id string) (*entity.Brand, error)
	Create(ctx context.Context, b *entity.Brand) error
	Update(ctx context.Context, b *entity.Brand) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}
