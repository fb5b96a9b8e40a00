package sqldb

import (
	"context"
	"fmt"

	"github.com/patriciastocker/intranet/internal/domain/entity"
	"github.com/patriciastocker/intranet/internal/domain/repository"
)

var _ repository.EmpresaRepository = (*EmpresaRepo)(nil)

// EmpresaRepo lectura de empresas acreedoras.
type EmpresaRepo struct {
	db *DB
}

func NewEmpresaRepository(db *DB) *EmpresaRepo {
	return &EmpresaRepo{db: db}
}

// List devuelve las empresas ordenadas por nombre.
func (r *EmpresaRepo) List(ctx context.Context) ([]*entity.Empresa, error) {
	rows, err := r.db.conn().query(ctx, `
		SELECT id, nombre, rut, banco, cuenta, COALESCE(email, ''), created_at, updated_at
		FROM empresas ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("list empresas: %w", err)
	}
	defer rows.Close()

	var list []*entity.Empresa
	for rows.Next() {
		var (
			e                  entity.Empresa
			created, updatedAt sqlTime
		)
		if err := rows.Scan(&e.ID, &e.Nombre, &e.RUT, &e.Banco, &e.Cuenta, &e.Email, &created, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan empresa: %w", err)
		}
		e.CreatedAt, e.UpdatedAt = created.Time, updatedAt.Time
		list = append(list, &e)
	}
	return list, rows.Err()
}
