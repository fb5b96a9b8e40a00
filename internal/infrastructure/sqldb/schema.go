package sqldb

import (
	"context"
	"fmt"
	"strings"
)

// Tipos que cambian entre dialectos; el resto del DDL es común.
var (
	sqliteTypes   = strings.NewReplacer("{{serial}}", "INTEGER PRIMARY KEY AUTOINCREMENT", "{{money}}", "REAL", "{{ts}}", "DATETIME")
	postgresTypes = strings.NewReplacer("{{serial}}", "BIGSERIAL PRIMARY KEY", "{{money}}", "NUMERIC(14,2)", "{{ts}}", "TIMESTAMP")
)

func (d Dialect) ddl(stmt string) string {
	if d == Postgres {
		return postgresTypes.Replace(stmt)
	}
	return sqliteTypes.Replace(stmt)
}

var intranetSchema = []string{
	`CREATE TABLE IF NOT EXISTS deudas (
		id {{serial}},
		empresa_acreedora TEXT NOT NULL,
		numero_factura TEXT NOT NULL,
		fecha_emision DATE NOT NULL,
		fecha_vencimiento DATE NOT NULL,
		monto_pendiente {{money}} NOT NULL,
		estado TEXT NOT NULL CHECK (estado IN ('VIGENTE', 'VENCIDO')),
		dias_retraso INTEGER DEFAULT 0,
		created_at {{ts}} DEFAULT CURRENT_TIMESTAMP,
		updated_at {{ts}} DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS empresas (
		id {{serial}},
		nombre TEXT NOT NULL UNIQUE,
		rut TEXT NOT NULL,
		banco TEXT NOT NULL,
		cuenta TEXT NOT NULL,
		email TEXT,
		created_at {{ts}} DEFAULT CURRENT_TIMESTAMP,
		updated_at {{ts}} DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_deudas_empresa ON deudas(empresa_acreedora)`,
	`CREATE INDEX IF NOT EXISTS idx_deudas_estado ON deudas(estado)`,
	`CREATE INDEX IF NOT EXISTS idx_deudas_vencimiento ON deudas(fecha_vencimiento)`,
}

var contactsSchema = []string{
	`CREATE TABLE IF NOT EXISTS companies (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		description TEXT,
		website TEXT,
		phone TEXT,
		address TEXT,
		created_at {{ts}} DEFAULT CURRENT_TIMESTAMP,
		updated_at {{ts}} DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS contacts (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		alias TEXT,
		email TEXT NOT NULL,
		phone TEXT,
		created_at {{ts}} DEFAULT CURRENT_TIMESTAMP,
		updated_at {{ts}} DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS brands (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		company_id TEXT NOT NULL REFERENCES companies (id) ON DELETE CASCADE,
		description TEXT,
		status TEXT DEFAULT 'active',
		registration_date DATE,
		registration_number TEXT,
		class_nice TEXT,
		notes TEXT,
		created_at {{ts}} DEFAULT CURRENT_TIMESTAMP,
		updated_at {{ts}} DEFAULT CURRENT_TIMESTAMP
	)`,
}

// contactColumns columnas agregadas a contacts después de su creación.
// Se aplican siempre; si ya existen el error se ignora.
var contactColumns = []string{
	`company_id TEXT REFERENCES companies (id)`,
	`rut TEXT`,
	`address TEXT`,
	`represented_company TEXT`,
	`represented_company_rut TEXT`,
	`gender TEXT DEFAULT 'masculino'`,
	`power_purpose TEXT DEFAULT 'renovación de marca'`,
	`brand_class TEXT`,
	`brand_type TEXT DEFAULT 'Marca Mixta'`,
	`brand_coverage TEXT DEFAULT 'Marca de servicios'`,
	`brand_description TEXT`,
	`brand_registration_number TEXT`,
	`brand_application_number TEXT`,
	`brand_logo TEXT`,
}

var contactsIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_contacts_name ON contacts(name)`,
	`CREATE INDEX IF NOT EXISTS idx_contacts_company ON contacts(company_id)`,
	`CREATE INDEX IF NOT EXISTS idx_brands_company ON brands(company_id)`,
	`CREATE INDEX IF NOT EXISTS idx_companies_name ON companies(name)`,
}

var postItsSchema = []string{
	`CREATE TABLE IF NOT EXISTS post_its (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		content TEXT NOT NULL DEFAULT '',
		color TEXT NOT NULL DEFAULT '#fef3c7',
		position INTEGER NOT NULL DEFAULT 0,
		archived INTEGER NOT NULL DEFAULT 0,
		created_at {{ts}} DEFAULT CURRENT_TIMESTAMP,
		updated_at {{ts}} DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_post_its_position ON post_its(archived, position)`,
}

var statusSchema = []string{
	`CREATE TABLE IF NOT EXISTS read_emails (
		email_id TEXT PRIMARY KEY,
		read_at {{ts}} DEFAULT CURRENT_TIMESTAMP
	)`,
}

// Migrate crea tablas e índices de los cuatro stores. Es idempotente.
func (s *Stores) Migrate(ctx context.Context) error {
	if err := s.Intranet.execAll(ctx, intranetSchema); err != nil {
		return err
	}
	if err := s.Contacts.execAll(ctx, contactsSchema); err != nil {
		return err
	}
	for _, col := range contactColumns {
		stmt := "ALTER TABLE contacts ADD COLUMN " + col
		if _, err := s.Contacts.ExecContext(ctx, stmt); err != nil && !isDuplicateColumn(err) {
			return fmt.Errorf("migrate %s: %s: %w", s.Contacts.name, stmt, err)
		}
	}
	if err := s.Contacts.execAll(ctx, contactsIndexes); err != nil {
		return err
	}
	if err := s.PostIts.execAll(ctx, postItsSchema); err != nil {
		return err
	}
	return s.Status.execAll(ctx, statusSchema)
}

func (db *DB) execAll(ctx context.Context, stmts []string) error {
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, db.dialect.ddl(stmt)); err != nil {
			return fmt.Errorf("migrate %s: %w", db.name, err)
		}
	}
	return nil
}
