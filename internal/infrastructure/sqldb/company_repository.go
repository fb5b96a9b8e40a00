package sqldb

import (
	"context"
	"fmt"

	"github.com/patriciastocker/intranet/internal/domain"
	"github.com/patriciastocker/intranet/internal/domain/entity"
	"github.com/patriciastocker/intranet/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre contacts.db.
type CompanyRepo struct {
	db *DB
}

// NewCompanyRepository construye el adaptador de persistencia para empresas cliente.
func NewCompanyRepository(db *DB) *CompanyRepo {
	return &CompanyRepo{db: db}
}

const companyColumns = `id, name, COALESCE(description, ''), COALESCE(website, ''), COALESCE(phone, ''),
	COALESCE(address, ''), created_at, updated_at`

func scanCompany(row rowScanner) (*entity.Company, error) {
	var (
		c                  entity.Company
		created, updatedAt sqlTime
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Website, &c.Phone, &c.Address, &created, &updatedAt); err != nil {
		return nil, err
	}
	c.CreatedAt, c.UpdatedAt = created.Time, updatedAt.Time
	return &c, nil
}

// List devuelve empresas ordenadas por nombre, filtrando por nombre o descripción.
func (r *CompanyRepo) List(ctx context.Context, search string) ([]*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies`
	var args []any
	if search != "" {
		query += ` WHERE LOWER(name) LIKE ? OR LOWER(COALESCE(description, '')) LIKE ?`
		p := likePattern(search)
		args = append(args, p, p)
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.conn().query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var list []*entity.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// GetByID obtiene una empresa por ID (sin marcas).
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	c, err := scanCompany(r.db.conn().queryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = ?`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return c, nil
}

// Create persiste una nueva empresa. Nombre repetido = domain.ErrDuplicate.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	_, err := r.db.conn().exec(ctx, `
		INSERT INTO companies (id, name, description, website, phone, address)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, nullable(c.Description), nullable(c.Website), nullable(c.Phone), nullable(c.Address),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert company %q: %w", c.Name, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// Update actualiza una empresa existente.
func (r *CompanyRepo) Update(ctx context.Context, c *entity.Company) (bool, error) {
	res, err := r.db.conn().exec(ctx, `
		UPDATE companies SET name = ?, description = ?, website = ?, phone = ?, address = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		c.Name, nullable(c.Description), nullable(c.Website), nullable(c.Phone), nullable(c.Address), c.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return false, fmt.Errorf("update company %q: %w", c.Name, domain.ErrDuplicate)
		}
		return false, fmt.Errorf("update company: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Delete elimina una empresa; sus marcas caen por ON DELETE CASCADE.
func (r *CompanyRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.conn().exec(ctx, `DELETE FROM companies WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete company: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
