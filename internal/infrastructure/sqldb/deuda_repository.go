package sqldb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/patriciastocker/intranet/internal/domain/entity"
	"github.com/patriciastocker/intranet/internal/domain/repository"
)

// Asegura que DeudaRepo implementa repository.DeudaRepository.
var _ repository.DeudaRepository = (*DeudaRepo)(nil)

// DeudaRepo implementación del puerto DeudaRepository sobre intranet.db.
type DeudaRepo struct {
	db *DB
	tx TxRunner
}

// NewDeudaRepository construye el adaptador de persistencia para deudas.
func NewDeudaRepository(db *DB) *DeudaRepo {
	return &DeudaRepo{db: db}
}

const deudaColumns = `id, empresa_acreedora, numero_factura, fecha_emision, fecha_vencimiento,
	monto_pendiente, estado, COALESCE(dias_retraso, 0), created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDeuda(row rowScanner) (*entity.Deuda, error) {
	var (
		d                   entity.Deuda
		emision, venc       sqlTime
		createdAt, updateAt sqlTime
	)
	if err := row.Scan(&d.ID, &d.EmpresaAcreedora, &d.NumeroFactura, &emision, &venc,
		&d.MontoPendiente, &d.Estado, &d.DiasRetraso, &createdAt, &updateAt); err != nil {
		return nil, err
	}
	d.FechaEmision = emision.Time
	d.FechaVencimiento = venc.Time
	d.CreatedAt = createdAt.Time
	d.UpdatedAt = updateAt.Time
	return &d, nil
}

func dateArg(t time.Time) string { return t.Format(entity.DateLayout) }

// List devuelve todas las deudas ordenadas por fecha de vencimiento.
func (r *DeudaRepo) List(ctx context.Context) ([]*entity.Deuda, error) {
	rows, err := r.db.conn().query(ctx, `SELECT `+deudaColumns+` FROM deudas ORDER BY fecha_vencimiento ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list deudas: %w", err)
	}
	defer rows.Close()

	var list []*entity.Deuda
	for rows.Next() {
		d, err := scanDeuda(rows)
		if err != nil {
			return nil, fmt.Errorf("scan deuda: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// GetByID obtiene una deuda por ID.
func (r *DeudaRepo) GetByID(ctx context.Context, id int64) (*entity.Deuda, error) {
	return getDeuda(ctx, r.db.conn(), id)
}

func getDeuda(ctx context.Context, c conn, id int64) (*entity.Deuda, error) {
	d, err := scanDeuda(c.queryRow(ctx, `SELECT `+deudaColumns+` FROM deudas WHERE id = ?`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get deuda: %w", err)
	}
	return d, nil
}

// Create persiste una nueva deuda y devuelve la fila resultante.
func (r *DeudaRepo) Create(ctx context.Context, d *entity.Deuda) (*entity.Deuda, error) {
	c := r.db.conn()
	var id int64
	err := c.queryRow(ctx, `
		INSERT INTO deudas (empresa_acreedora, numero_factura, fecha_emision, fecha_vencimiento, monto_pendiente, estado, dias_retraso)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		d.EmpresaAcreedora, d.NumeroFactura, dateArg(d.FechaEmision), dateArg(d.FechaVencimiento),
		d.MontoPendiente, d.Estado, d.DiasRetraso,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert deuda: %w", err)
	}
	return getDeuda(ctx, c, id)
}

// Update aplica sólo los campos presentes en patch. Sin campos devuelve la fila tal cual.
func (r *DeudaRepo) Update(ctx context.Context, id int64, patch entity.DeudaPatch) (*entity.Deuda, error) {
	c := r.db.conn()
	if patch.Empty() {
		return getDeuda(ctx, c, id)
	}

	var (
		sets []string
		args []any
	)
	add := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if patch.EmpresaAcreedora != nil {
		add("empresa_acreedora", *patch.EmpresaAcreedora)
	}
	if patch.NumeroFactura != nil {
		add("numero_factura", *patch.NumeroFactura)
	}
	if patch.FechaEmision != nil {
		add("fecha_emision", dateArg(*patch.FechaEmision))
	}
	if patch.FechaVencimiento != nil {
		add("fecha_vencimiento", dateArg(*patch.FechaVencimiento))
	}
	if patch.MontoPendiente != nil {
		add("monto_pendiente", *patch.MontoPendiente)
	}
	if patch.Estado != nil {
		add("estado", *patch.Estado)
	}
	if patch.DiasRetraso != nil {
		add("dias_retraso", *patch.DiasRetraso)
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	res, err := c.exec(ctx, `UPDATE deudas SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("update deuda: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}
	return getDeuda(ctx, c, id)
}

// Delete elimina la deuda y devuelve la fila eliminada (nil si no existía).
func (r *DeudaRepo) Delete(ctx context.Context, id int64) (*entity.Deuda, error) {
	var deleted *entity.Deuda
	err := r.tx.WithinTx(ctx, r.db, func(c conn) error {
		d, err := getDeuda(ctx, c, id)
		if err != nil || d == nil {
			return err
		}
		if _, err := c.exec(ctx, `DELETE FROM deudas WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete deuda: %w", err)
		}
		deleted = d
		return nil
	})
	return deleted, err
}

// Resumen total adeudado y desglose por empresa acreedora.
func (r *DeudaRepo) Resumen(ctx context.Context) (*entity.Resumen, error) {
	c := r.db.conn()
	res := &entity.Resumen{TotalAdeudado: decimal.Zero}

	var total decimal.NullDecimal
	if err := c.queryRow(ctx, `SELECT SUM(monto_pendiente) FROM deudas`).Scan(&total); err != nil {
		return nil, fmt.Errorf("total deudas: %w", err)
	}
	if total.Valid {
		res.TotalAdeudado = total.Decimal
	}

	rows, err := c.query(ctx, `
		SELECT empresa_acreedora, SUM(monto_pendiente), COUNT(*)
		FROM deudas GROUP BY empresa_acreedora ORDER BY empresa_acreedora`)
	if err != nil {
		return nil, fmt.Errorf("resumen por empresa: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var e entity.ResumenEmpresa
		if err := rows.Scan(&e.Empresa, &e.Total, &e.Facturas); err != nil {
			return nil, fmt.Errorf("scan resumen: %w", err)
		}
		res.PorEmpresa = append(res.PorEmpresa, e)
	}
	return res, rows.Err()
}

// RefreshOverdue recalcula estado y días de retraso según today.
func (r *DeudaRepo) RefreshOverdue(ctx context.Context, today time.Time) (int, error) {
	changed := 0
	err := r.tx.WithinTx(ctx, r.db, func(c conn) error {
		rows, err := c.query(ctx, `SELECT `+deudaColumns+` FROM deudas`)
		if err != nil {
			return fmt.Errorf("list deudas: %w", err)
		}
		var all []*entity.Deuda
		for rows.Next() {
			d, err := scanDeuda(rows)
			if err != nil {
				rows.Close()
				return fmt.Errorf("scan deuda: %w", err)
			}
			all = append(all, d)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		for _, d := range all {
			estado, dias := d.OverdueAt(today)
			if estado == d.Estado && dias == d.DiasRetraso {
				continue
			}
			if _, err := c.exec(ctx, `UPDATE deudas SET estado = ?, dias_retraso = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
				estado, dias, d.ID); err != nil {
				return fmt.Errorf("refresh deuda %d: %w", d.ID, err)
			}
			changed++
		}
		return nil
	})
	return changed, err
}
