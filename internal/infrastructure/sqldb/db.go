// Package sqldb implementa los puertos de persistencia sobre database/sql.
// Por defecto usa SQLite (modernc.org/sqlite, sin cgo) con un archivo por store;
// opcionalmente PostgreSQL vía pgx/stdlib, con todos los stores en la misma base.
package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/patriciastocker/intranet/pkg/config"
)

// DB envuelve un *sql.DB con el dialecto con el que se escriben las consultas.
type DB struct {
	*sql.DB
	dialect Dialect
	name    string
}

// Dialect devuelve el dialecto SQL de la conexión.
func (db *DB) Dialect() Dialect { return db.dialect }

// Stores agrupa las cuatro bases de datos de la intranet.
type Stores struct {
	Intranet *DB // deudas, empresas
	Contacts *DB // contacts, companies, brands
	PostIts  *DB
	Status   *DB // read_emails

	closers []*sql.DB
}

// Open abre (una sola vez por proceso) los handles de base de datos.
func Open(ctx context.Context, cfg config.DBConfig) (*Stores, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg)
	default:
		return openSQLite(ctx, cfg)
	}
}

func openSQLite(ctx context.Context, cfg config.DBConfig) (*Stores, error) {
	s := &Stores{}
	open := func(name, path string) (*DB, error) {
		if dir := filepath.Dir(path); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("sqldb: crear directorio %s: %w", dir, err)
			}
		}
		raw, err := sql.Open("sqlite", sqliteDSN(path))
		if err != nil {
			return nil, fmt.Errorf("sqldb: abrir %s: %w", path, err)
		}
		if err := raw.PingContext(ctx); err != nil {
			_ = raw.Close()
			return nil, fmt.Errorf("sqldb: ping %s: %w", path, err)
		}
		s.closers = append(s.closers, raw)
		return &DB{DB: raw, dialect: SQLite, name: name}, nil
	}

	var err error
	if s.Intranet, err = open("intranet", cfg.IntranetPath); err != nil {
		return nil, errors.Join(err, s.Close())
	}
	if s.Contacts, err = open("contacts", cfg.ContactsPath); err != nil {
		return nil, errors.Join(err, s.Close())
	}
	if s.PostIts, err = open("post-its", cfg.PostItsPath); err != nil {
		return nil, errors.Join(err, s.Close())
	}
	if s.Status, err = open("email-status", cfg.StatusPath); err != nil {
		return nil, errors.Join(err, s.Close())
	}
	return s, nil
}

// sqliteDSN activa claves foráneas, WAL y busy_timeout en cada conexión del pool.
func sqliteDSN(path string) string {
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "journal_mode(WAL)")
	return "file:" + path + "?" + q.Encode()
}

func openPostgres(ctx context.Context, cfg config.DBConfig) (*Stores, error) {
	connCfg, err := pgx.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("sqldb: parse DSN: %w", err)
	}

	// Registrar codec para NUMERIC -> shopspring/decimal en todas las conexiones.
	raw := stdlib.OpenDB(*connCfg, stdlib.OptionAfterConnect(func(_ context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}))
	raw.SetMaxOpenConns(25)
	raw.SetMaxIdleConns(2)
	raw.SetConnMaxLifetime(time.Hour)
	raw.SetConnMaxIdleTime(30 * time.Minute)

	if err := raw.PingContext(ctx); err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("sqldb: ping PostgreSQL: %w", err)
	}

	db := func(name string) *DB { return &DB{DB: raw, dialect: Postgres, name: name} }
	return &Stores{
		Intranet: db("intranet"),
		Contacts: db("contacts"),
		PostIts:  db("post-its"),
		Status:   db("email-status"),
		closers:  []*sql.DB{raw},
	}, nil
}

// Close cierra todos los handles abiertos.
func (s *Stores) Close() error {
	var errs []error
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}
