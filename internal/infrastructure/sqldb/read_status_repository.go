package sqldb

import (
	"context"
	"fmt"

	"github.com/patriciastocker/intranet/internal/domain/repository"
)

var _ repository.ReadStatusRepository = (*ReadStatusRepo)(nil)

// ReadStatusRepo estado de lectura de correos en data/email-status.db.
type ReadStatusRepo struct {
	db *DB
}

func NewReadStatusRepository(db *DB) *ReadStatusRepo {
	return &ReadStatusRepo{db: db}
}

// List ids de correos marcados como leídos.
func (r *ReadStatusRepo) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.conn().query(ctx, `SELECT email_id FROM read_emails ORDER BY read_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list read emails: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan read email: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// MarkRead inserta o refresca la marca de lectura.
func (r *ReadStatusRepo) MarkRead(ctx context.Context, emailID string) error {
	_, err := r.db.conn().exec(ctx, `
		INSERT INTO read_emails (email_id, read_at) VALUES (?, CURRENT_TIMESTAMP)
		ON CONFLICT (email_id) DO UPDATE SET read_at = CURRENT_TIMESTAMP`, emailID)
	if err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	return nil
}

func (r *ReadStatusRepo) MarkUnread(ctx context.Context, emailID string) error {
	if _, err := r.db.conn().exec(ctx, `DELETE FROM read_emails WHERE email_id = ?`, emailID); err != nil {
		return fmt.Errorf("mark unread: %w", err)
	}
	return nil
}
