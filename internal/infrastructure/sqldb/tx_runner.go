package sqldb

import (
	"context"
	"fmt"
)

// TxRunner ejecuta callbacks dentro de una transacción de la base indicada.
type TxRunner struct{}

// WithinTx inicia una transacción en db, ejecuta fn y hace Commit o Rollback.
func (TxRunner) WithinTx(ctx context.Context, db *DB, fn func(c conn) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(conn{q: tx, dialect: db.dialect}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
