package repository

import (
	"context"

	"github.com/patriciastocker/intranet/internal/domain/entity"
)

// PostItRepository define el puerto de persistencia para PostIt.
type PostItRepository interface {
	List(ctx context.Context, archived bool) ([]*entity.PostIt, error)
	GetByID(ctx context.Context, id string) (*entity.PostIt, error)
	// Create desplaza todas las posiciones en +1 e inserta p en la posición 0, en una sola transacción.
	Create(ctx context.Context, p *entity.PostIt) error
	Update(ctx context.Context, id string, patch entity.PostItPatch) (*entity.PostIt, error)
	Delete(ctx context.Context, id string) (bool, error)
	// Reorder asigna posiciones 0..n-1 en el orden de ids.
	Reorder(ctx context.Context, ids []string) error
}

// ReadStatusRepository marca correos como leídos por su message id.
type ReadStatusRepository interface {
	List(ctx context.Context) ([]string, error)
	MarkRead(ctx context.Context, emailID string) error
	MarkUnread(ctx context.Context, emailID string) error
}
