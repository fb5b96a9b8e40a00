package repository

import (
	"context"
	"time"

	"github.com/patriciastocker/intranet/internal/domain/entity"
)

// DeudaRepository define el puerto de persistencia para Deuda (DIP).
// GetByID, Update y Delete devuelven (nil, nil) si el id no existe.
type DeudaRepository interface {
	List(ctx context.Context) ([]*entity.Deuda, error)
	GetByID(ctx context.Context, id int64) (*entity.Deuda, error)
	Create(ctx context.Context, d *entity.Deuda) (*entity.Deuda, error)
	Update(ctx context.Context, id int64, patch entity.DeudaPatch) (*entity.Deuda, error)
	Delete(ctx context.Context, id int64) (*entity.Deuda, error)
	Resumen(ctx context.Context) (*entity.Resumen, error)
	// RefreshOverdue recalcula estado y dias_retraso de todas las deudas; devuelve cuántas cambiaron.
	RefreshOverdue(ctx context.Context, today time.Time) (int, error)
}

// EmpresaRepository puerto de lectura de empresas acreedoras.
type EmpresaRepository interface {
	List(ctx context.Context) ([]*entity.Empresa, error)
}
