package sqldb

import (
	"context"
	"fmt"

	"github.com/patriciastocker/intranet/internal/domain/entity"
	"github.com/patriciastocker/intranet/internal/domain/repository"
)

var _ repository.ContactRepository = (*ContactRepo)(nil)

// ContactRepo implementación de ContactRepository sobre contacts.db.
type ContactRepo struct {
	db *DB
}

// NewContactRepository construye el adaptador de persistencia para contactos.
func NewContactRepository(db *DB) *ContactRepo {
	return &ContactRepo{db: db}
}

const contactSelect = `
	SELECT c.id, c.name, COALESCE(c.alias, ''), c.email, COALESCE(c.phone, ''), COALESCE(c.company_id, ''),
		COALESCE(c.rut, ''), COALESCE(c.address, ''), COALESCE(c.represented_company, ''),
		COALESCE(c.represented_company_rut, ''), COALESCE(c.gender, ''), COALESCE(c.power_purpose, ''),
		COALESCE(c.brand_class, ''), COALESCE(c.brand_type, ''), COALESCE(c.brand_coverage, ''),
		COALESCE(c.brand_description, ''), COALESCE(c.brand_registration_number, ''),
		COALESCE(c.brand_application_number, ''), COALESCE(c.brand_logo, ''),
		COALESCE(co.name, ''), COALESCE(co.description, ''), c.created_at, c.updated_at
	FROM contacts c
	LEFT JOIN companies co ON co.id = c.company_id`

func scanContact(row rowScanner) (*entity.Contact, error) {
	var (
		c                  entity.Contact
		created, updatedAt sqlTime
		p                  = &c.Power
	)
	err := row.Scan(&c.ID, &c.Name, &c.Alias, &c.Email, &c.Phone, &c.CompanyID,
		&p.RUT, &p.Address, &p.RepresentedCompany, &p.RepresentedCompanyRUT, &p.Gender, &p.PowerPurpose,
		&p.BrandClass, &p.BrandType, &p.BrandCoverage, &p.BrandDescription, &p.BrandRegistrationNumber,
		&p.BrandApplicationNumber, &p.BrandLogo,
		&c.CompanyName, &c.CompanyDescription, &created, &updatedAt)
	if err != nil {
		return nil, err
	}
	c.CreatedAt, c.UpdatedAt = created.Time, updatedAt.Time
	return &c, nil
}

// List filtra por nombre, alias, email o nombre de la empresa. Ordenado por nombre.
func (r *ContactRepo) List(ctx context.Context, search string) ([]*entity.Contact, error) {
	query := contactSelect
	var args []any
	if search != "" {
		query += `
	WHERE LOWER(c.name) LIKE ? OR LOWER(COALESCE(c.alias, '')) LIKE ?
		OR LOWER(c.email) LIKE ? OR LOWER(COALESCE(co.name, '')) LIKE ?`
		p := likePattern(search)
		args = append(args, p, p, p, p)
	}
	query += ` ORDER BY c.name ASC`

	rows, err := r.db.conn().query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var list []*entity.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// GetByID obtiene un contacto con los datos de su empresa.
func (r *ContactRepo) GetByID(ctx context.Context, id string) (*entity.Contact, error) {
	c, err := scanContact(r.db.conn().queryRow(ctx, contactSelect+` WHERE c.id = ?`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return c, nil
}

// Create persiste un contacto nuevo con sus datos de poder.
func (r *ContactRepo) Create(ctx context.Context, c *entity.Contact) error {
	c.Power.ApplyDefaults()
	p := c.Power
	_, err := r.db.conn().exec(ctx, `
		INSERT INTO contacts (id, name, alias, email, phone, company_id,
			rut, address, represented_company, represented_company_rut, gender, power_purpose,
			brand_class, brand_type, brand_coverage, brand_description, brand_registration_number,
			brand_application_number, brand_logo)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, nullable(c.Alias), c.Email, nullable(c.Phone), nullable(c.CompanyID),
		nullable(p.RUT), nullable(p.Address), nullable(p.RepresentedCompany), nullable(p.RepresentedCompanyRUT),
		p.Gender, p.PowerPurpose, nullable(p.BrandClass), p.BrandType, p.BrandCoverage,
		nullable(p.BrandDescription), nullable(p.BrandRegistrationNumber), nullable(p.BrandApplicationNumber),
		nullable(p.BrandLogo),
	)
	if err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

// Update reemplaza todos los campos editables del contacto.
func (r *ContactRepo) Update(ctx context.Context, c *entity.Contact) (bool, error) {
	c.Power.ApplyDefaults()
	p := c.Power
	res, err := r.db.conn().exec(ctx, `
		UPDATE contacts SET name = ?, alias = ?, email = ?, phone = ?, company_id = ?,
			rut = ?, address = ?, represented_company = ?, represented_company_rut = ?, gender = ?, power_purpose = ?,
			brand_class = ?, brand_type = ?, brand_coverage = ?, brand_description = ?, brand_registration_number = ?,
			brand_application_number = ?, brand_logo = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		c.Name, nullable(c.Alias), c.Email, nullable(c.Phone), nullable(c.CompanyID),
		nullable(p.RUT), nullable(p.Address), nullable(p.RepresentedCompany), nullable(p.RepresentedCompanyRUT),
		p.Gender, p.PowerPurpose, nullable(p.BrandClass), p.BrandType, p.BrandCoverage,
		nullable(p.BrandDescription), nullable(p.BrandRegistrationNumber), nullable(p.BrandApplicationNumber),
		nullable(p.BrandLogo), c.ID,
	)
	if err != nil {
		return false, fmt.Errorf("update contact: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// UpdatePower persiste sólo los datos del poder.
func (r *ContactRepo) UpdatePower(ctx context.Context, id string, p entity.PowerData) (bool, error) {
	p.ApplyDefaults()
	res, err := r.db.conn().exec(ctx, `
		UPDATE contacts SET rut = ?, address = ?, represented_company = ?, represented_company_rut = ?,
			gender = ?, power_purpose = ?, brand_class = ?, brand_type = ?, brand_coverage = ?,
			brand_description = ?, brand_registration_number = ?, brand_application_number = ?, brand_logo = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		nullable(p.RUT), nullable(p.Address), nullable(p.RepresentedCompany), nullable(p.RepresentedCompanyRUT),
		p.Gender, p.PowerPurpose, nullable(p.BrandClass), p.BrandType, p.BrandCoverage,
		nullable(p.BrandDescription), nullable(p.BrandRegistrationNumber), nullable(p.BrandApplicationNumber),
		nullable(p.BrandLogo), id,
	)
	if err != nil {
		return false, fmt.Errorf("update contact power: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Delete elimina un contacto por ID.
func (r *ContactRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.conn().exec(ctx, `DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete contact: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// CountByCompany cuántos contactos referencian a la empresa.
func (r *ContactRepo) CountByCompany(ctx context.Context, companyID string) (int, error) {
	var n int
	if err := r.db.conn().queryRow(ctx, `SELECT COUNT(*) FROM contacts WHERE company_id = ?`, companyID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count contacts by company: %w", err)
	}
	return n, nil
}
