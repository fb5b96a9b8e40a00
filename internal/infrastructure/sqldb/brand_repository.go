package sqldb

import (
	"context"
	"fmt"
	"strings"

	"github.com/patriciastocker/intranet/internal/domain/entity"
	"github.com/patriciastocker/intranet/internal/domain/repository"
)

var _ repository.BrandRepository = (*BrandRepo)(nil)

// BrandRepo implementación de BrandRepository sobre contacts.db.
type BrandRepo struct {
	db *DB
}

func NewBrandRepository(db *DB) *BrandRepo {
	return &BrandRepo{db: db}
}

const brandSelect = `
	SELECT b.id, b.name, b.company_id, COALESCE(b.description, ''), COALESCE(b.status, ''),
		b.registration_date, COALESCE(b.registration_number, ''), COALESCE(b.class_nice, ''),
		COALESCE(b.notes, ''), COALESCE(co.name, ''), COALESCE(co.description, ''), b.created_at, b.updated_at
	FROM brands b
	LEFT JOIN companies co ON co.id = b.company_id`

func scanBrand(row rowScanner) (*entity.Brand, error) {
	var (
		b                  entity.Brand
		regDate            sqlDate
		created, updatedAt sqlTime
	)
	if err := row.Scan(&b.ID, &b.Name, &b.CompanyID, &b.Description, &b.Status, &regDate,
		&b.RegistrationNumber, &b.ClassNice, &b.Notes, &b.CompanyName, &b.CompanyDescription,
		&created, &updatedAt); err != nil {
		return nil, err
	}
	b.RegistrationDate = regDate.String
	b.CreatedAt, b.UpdatedAt = created.Time, updatedAt.Time
	return &b, nil
}

// List filtra por empresa y/o por nombre, descripción o notas.
func (r *BrandRepo) List(ctx context.Context, f repository.BrandFilter) ([]*entity.Brand, error) {
	var (
		where []string
		args  []any
	)
	if f.CompanyID != "" {
		where = append(where, "b.company_id = ?")
		args = append(args, f.CompanyID)
	}
	if f.Search != "" {
		where = append(where, "(LOWER(b.name) LIKE ? OR LOWER(COALESCE(b.description, '')) LIKE ? OR LOWER(COALESCE(b.notes, '')) LIKE ?)")
		p := likePattern(f.Search)
		args = append(args, p, p, p)
	}
	query := brandSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY b.name ASC"

	rows, err := r.db.conn().query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	var list []*entity.Brand
	for rows.Next() {
		b, err := scanBrand(rows)
		if err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// GetByID obtiene una marca con nombre y descripción de su empresa.
func (r *BrandRepo) GetByID(ctx context.Context, id string) (*entity.Brand, error) {
	b, err := scanBrand(r.db.conn().queryRow(ctx, brandSelect+` WHERE b.id = ?`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get brand: %w", err)
	}
	return b, nil
}

// Create persiste una nueva marca.
func (r *BrandRepo) Create(ctx context.Context, b *entity.Brand) error {
	if b.Status == "" {
		b.Status = entity.BrandStatusActive
	}
	_, err := r.db.conn().exec(ctx, `
		INSERT INTO brands (id, name, company_id, description, status, registration_date, registration_number, class_nice, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Name, b.CompanyID, nullable(b.Description), b.Status, sqlDate{String: b.RegistrationDate},
		nullable(b.RegistrationNumber), nullable(b.ClassNice), nullable(b.Notes),
	)
	if err != nil {
		return fmt.Errorf("insert brand: %w", err)
	}
	return nil
}

// Update reemplaza los campos de la marca.
func (r *BrandRepo) Update(ctx context.Context, b *entity.Brand) (bool, error) {
	if b.Status == "" {
		b.Status = entity.BrandStatusActive
	}
	res, err := r.db.conn().exec(ctx, `
		UPDATE brands SET name = ?, company_id = ?, description = ?, status = ?, registration_date = ?,
			registration_number = ?, class_nice = ?, notes = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		b.Name, b.CompanyID, nullable(b.Description), b.Status, sqlDate{String: b.RegistrationDate},
		nullable(b.RegistrationNumber), nullable(b.ClassNice), nullable(b.Notes), b.ID,
	)
	if err != nil {
		return false, fmt.Errorf("update brand: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *BrandRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.conn().exec(ctx, `DELETE FROM brands WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete brand: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
