package sqldb

import (
	"context"
	"fmt"
	"strings"

	"github.com/patriciastocker/intranet/internal/domain/entity"
	"github.com/patriciastocker/intranet/internal/domain/repository"
)

// Asegura que PostItRepo implementa repository.PostItRepository.
var _ repository.PostItRepository = (*PostItRepo)(nil)

// PostItRepo implementación del puerto PostItRepository sobre post-its.db.
type PostItRepo struct {
	db *DB
	tx TxRunner
}

// NewPostItRepository construye el adaptador de persistencia para post-its.
func NewPostItRepository(db *DB) *PostItRepo {
	return &PostItRepo{db: db}
}

const postItColumns = `id, title, content, color, position, archived, created_at, updated_at`

func scanPostIt(row rowScanner) (*entity.PostIt, error) {
	var (
		p                  entity.PostIt
		archived           int
		created, updatedAt sqlTime
	)
	if err := row.Scan(&p.ID, &p.Title, &p.Content, &p.Color, &p.Position, &archived, &created, &updatedAt); err != nil {
		return nil, err
	}
	p.Archived = archived != 0
	p.CreatedAt, p.UpdatedAt = created.Time, updatedAt.Time
	return &p, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// List devuelve los post-its activos o archivados por posición y luego más recientes primero.
func (r *PostItRepo) List(ctx context.Context, archived bool) ([]*entity.PostIt, error) {
	rows, err := r.db.conn().query(ctx,
		`SELECT `+postItColumns+` FROM post_its WHERE archived = ? ORDER BY position ASC, created_at DESC`,
		boolInt(archived))
	if err != nil {
		return nil, fmt.Errorf("list post-its: %w", err)
	}
	defer rows.Close()

	var list []*entity.PostIt
	for rows.Next() {
		p, err := scanPostIt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post-it: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *PostItRepo) GetByID(ctx context.Context, id string) (*entity.PostIt, error) {
	return getPostIt(ctx, r.db.conn(), id)
}

func getPostIt(ctx context.Context, c conn, id string) (*entity.PostIt, error) {
	p, err := scanPostIt(c.queryRow(ctx, `SELECT `+postItColumns+` FROM post_its WHERE id = ?`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get post-it: %w", err)
	}
	return p, nil
}

// Create corre todas las posiciones una hacia abajo e inserta el nuevo en la 0.
func (r *PostItRepo) Create(ctx context.Context, p *entity.PostIt) error {
	if p.Color == "" {
		p.Color = entity.DefaultPostItColor
	}
	p.Position = 0
	return r.tx.WithinTx(ctx, r.db, func(c conn) error {
		if _, err := c.exec(ctx, `UPDATE post_its SET position = position + 1`); err != nil {
			return fmt.Errorf("shift post-its: %w", err)
		}
		if _, err := c.exec(ctx, `
			INSERT INTO post_its (id, title, content, color, position, archived)
			VALUES (?, ?, ?, ?, 0, ?)`,
			p.ID, p.Title, p.Content, p.Color, boolInt(p.Archived)); err != nil {
			return fmt.Errorf("insert post-it: %w", err)
		}
		created, err := getPostIt(ctx, c, p.ID)
		if err != nil {
			return err
		}
		*p = *created
		return nil
	})
}

// Update aplica los campos presentes en patch y devuelve el post-it resultante (nil si no existe).
func (r *PostItRepo) Update(ctx context.Context, id string, patch entity.PostItPatch) (*entity.PostIt, error) {
	c := r.db.conn()
	if patch.Empty() {
		return getPostIt(ctx, c, id)
	}

	var (
		sets []string
		args []any
	)
	if patch.Title != nil {
		sets, args = append(sets, "title = ?"), append(args, *patch.Title)
	}
	if patch.Content != nil {
		sets, args = append(sets, "content = ?"), append(args, *patch.Content)
	}
	if patch.Color != nil {
		sets, args = append(sets, "color = ?"), append(args, *patch.Color)
	}
	if patch.Position != nil {
		sets, args = append(sets, "position = ?"), append(args, *patch.Position)
	}
	if patch.Archived != nil {
		sets, args = append(sets, "archived = ?"), append(args, boolInt(*patch.Archived))
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	res, err := c.exec(ctx, `UPDATE post_its SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("update post-it: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}
	return getPostIt(ctx, c, id)
}

func (r *PostItRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.conn().exec(ctx, `DELETE FROM post_its WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete post-it: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Reorder asigna la posición i al post-it ids[i].
func (r *PostItRepo) Reorder(ctx context.Context, ids []string) error {
	return r.tx.WithinTx(ctx, r.db, func(c conn) error {
		for i, id := range ids {
			if _, err := c.exec(ctx, `UPDATE post_its SET position = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, i, id); err != nil {
				return fmt.Errorf("reorder post-it %s: %w", id, err)
			}
		}
		return nil
	})
}
