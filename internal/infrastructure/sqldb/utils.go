package sqldb

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único
// (23505 en PostgreSQL, "UNIQUE constraint failed" en SQLite).
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "23505")
}

// isDuplicateColumn detecta el error de ADD COLUMN sobre una columna existente.
func isDuplicateColumn(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "42701"
	}
	return err != nil && strings.Contains(err.Error(), "duplicate column")
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// likePattern arma el patrón %term% en minúsculas para comparar contra LOWER(col).
func likePattern(term string) string {
	return "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
}

// nullable convierte "" en NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// timeLayouts formatos en los que SQLite puede devolver fechas almacenadas como texto.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02",
}

// sqlTime acepta time.Time, texto o NULL al escanear.
type sqlTime struct {
	Time  time.Time
	Valid bool
}

var _ sql.Scanner = (*sqlTime)(nil)

func (t *sqlTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		t.Time, t.Valid = time.Time{}, false
		return nil
	case time.Time:
		t.Time, t.Valid = v, true
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	default:
		return fmt.Errorf("sqlTime: tipo no soportado %T", src)
	}
}

func (t *sqlTime) parse(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		t.Time, t.Valid = time.Time{}, false
		return nil
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time, t.Valid = parsed, true
			return nil
		}
	}
	return fmt.Errorf("sqlTime: formato de fecha desconocido %q", s)
}

// sqlDate escanea una columna DATE y la expone como texto YYYY-MM-DD.
type sqlDate struct {
	String string
}

func (d *sqlDate) Scan(src any) error {
	var t sqlTime
	if err := t.Scan(src); err != nil {
		return err
	}
	if !t.Valid {
		d.String = ""
		return nil
	}
	d.String = t.Time.Format("2006-01-02")
	return nil
}

// Value permite usar sqlDate como argumento.
func (d sqlDate) Value() (driver.Value, error) {
	if d.String == "" {
		return nil, nil
	}
	return d.String, nil
}
