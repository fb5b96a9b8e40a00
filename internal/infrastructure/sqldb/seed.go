package sqldb

import (
	"context"
	"fmt"
)

type seedEmpresa struct {
	nombre, rut, banco, cuenta, email string
}

type seedDeuda struct {
	empresa, factura, emision, vencimiento string
	monto                                  int64
	estado                                 string
	dias                                   int
}

var empresasSeed = []seedEmpresa{
	{"PRISA MEDIA CHILE S.A.", "79.947.310-0", "BANCO DE CHILE", "8004392905", "vmantero@prisamedia.com"},
	{"AS CHILE", "76.409.967-2", "BANCO DE CHILE", "8000800804", ""},
	{"IBEROAMERICANA DE NOTICIAS", "76.096.185-K", "BANCO DE CHILE", "9010736110", ""},
	{"FAST NET S.A.", "96.770.070-3", "BANCO DE CHILE", "8007823103", ""},
	{"BLAYA Y VEGA S.A.", "82.066.500-7", "BANCO DE CHILE", "8007822106", ""},
	{"Villegas y Cía SpA", "12.345.678-9", "BANCO DE CHILE", "8001234567", "contacto@villegas.cl"},
}

var deudasSeed = []seedDeuda{
	{"PRISA MEDIA CHILE", "010004071", "2025-04-10", "2025-04-09", -413620, "VENCIDO", 132},
	{"PRISA MEDIA CHILE", "1332420", "2025-04-03", "2025-05-03", 827240, "VENCIDO", 108},
	{"PRISA MEDIA CHILE", "1346642", "2025-06-25", "2025-07-25", 714000, "VENCIDO", 25},
	{"PRISA MEDIA CHILE", "1347490", "2025-07-01", "2025-08-01", 714000, "VENCIDO", 18},
	{"PRISA MEDIA CHILE", "1352770", "2025-08-04", "2025-09-04", 714000, "VIGENTE", 0},
	{"Villegas y Cía SpA", "1231", "2025-07-05", "2025-07-15", 595000, "VENCIDO", 35},
	{"Villegas y Cía SpA", "1247", "2025-08-06", "2025-08-16", 595000, "VENCIDO", 3},
}

var companiesSeed = [][6]string{
	{"company_dbv_001", "DBV Consultores", "Empresa de consultoría especializada en marcas y propiedad intelectual", "https://dbvconsultores.com", "+56912345678", "Las Condes, Santiago, Chile"},
	{"company_stetson_001", "Stetson Legal", "Bufete de abogados especializado en derecho comercial", "https://stetsonlegal.com", "+56987654321", "Providencia, Santiago, Chile"},
	{"company_patricia_001", "Patricia Stocker Abogados", "Estudio jurídico especializado en marcas registradas", "https://patriciastocker.com", "+56933445566", "Las Condes, Santiago, Chile"},
}

// brandsSeed: id, name, company_id, description, status, registration_date, registration_number, class_nice, notes
var brandsSeed = [][9]string{
	{"brand_canadian_001", "Canadian", "company_dbv_001", "Marca registrada para productos alimenticios", "registered", "2013-05-15", "CL-123456", "29, 30", "Marca con antecedentes importantes. Caso de referencia para consultas similares."},
	{"brand_statsen_001", "Statsen", "company_dbv_001", "Marca en proceso de registro", "pending", "", "", "35", "Marca en disputa. Revisar uso previo antes de proceder con registro."},
	{"brand_stetson_001", "Stetson Professional", "company_stetson_001", "Marca de servicios legales", "registered", "2020-03-10", "CL-789012", "45", "Marca registrada para servicios jurídicos y consultoría legal."},
}

// contactsSeed: id, name, alias, email, phone, company_id
var contactsSeed = [][6]string{
	{"contact_marcos_001", "Marco Obreque", "Marco", "marco@patriciastocker.com", "+56912345678", "company_patricia_001"},
	{"contact_hermes_001", "Hermes Establecer", "Hermes", "hermes@cliente.com", "+56987654321", ""},
	{"contact_statsen_001", "Cliente Statsen", "Statsen", "statsen@empresa.com", "+56911223344", "company_dbv_001"},
	{"contact_stetson_001", "Stetson Legal", "Stetson", "stetson@legal.com", "+56955667788", "company_stetson_001"},
	{"contact_monica_001", "Monica Stocker", "Monica", "monica@patriciastocker.com", "+56933445566", "company_patricia_001"},
}

// SeedResult cantidades insertadas por Seed.
type SeedResult struct {
	Empresas  int
	Deudas    int
	Companies int
	Brands    int
	Contacts  int
}

// Seed inserta datos de ejemplo. Empresas y deudas sólo si sus tablas están vacías;
// companies, brands y contactos se insertan o actualizan por id.
func (s *Stores) Seed(ctx context.Context) (SeedResult, error) {
	var res SeedResult
	var tx TxRunner

	err := tx.WithinTx(ctx, s.Intranet, func(c conn) error {
		n, err := countRows(ctx, c, "empresas")
		if err != nil {
			return err
		}
		if n == 0 {
			for _, e := range empresasSeed {
				if _, err := c.exec(ctx, `INSERT INTO empresas (nombre, rut, banco, cuenta, email) VALUES (?, ?, ?, ?, ?)`,
					e.nombre, e.rut, e.banco, e.cuenta, nullable(e.email)); err != nil {
					return fmt.Errorf("seed empresa %s: %w", e.nombre, err)
				}
				res.Empresas++
			}
		}

		n, err = countRows(ctx, c, "deudas")
		if err != nil {
			return err
		}
		if n == 0 {
			for _, d := range deudasSeed {
				if _, err := c.exec(ctx, `INSERT INTO deudas (empresa_acreedora, numero_factura, fecha_emision, fecha_vencimiento, monto_pendiente, estado, dias_retraso)
					VALUES (?, ?, ?, ?, ?, ?, ?)`,
					d.empresa, d.factura, d.emision, d.vencimiento, d.monto, d.estado, d.dias); err != nil {
					return fmt.Errorf("seed deuda %s: %w", d.factura, err)
				}
				res.Deudas++
			}
		}
		return nil
	})
	if err != nil {
		return res, err
	}

	err = tx.WithinTx(ctx, s.Contacts, func(c conn) error {
		for _, co := range companiesSeed {
			if _, err := c.exec(ctx, `INSERT INTO companies (id, name, description, website, phone, address)
				VALUES (?, ?, ?, ?, ?, ?)
				ON CONFLICT (id) DO UPDATE SET name = excluded.name, description = excluded.description,
					website = excluded.website, phone = excluded.phone, address = excluded.address,
					updated_at = CURRENT_TIMESTAMP`,
				co[0], co[1], co[2], co[3], co[4], co[5]); err != nil {
				return fmt.Errorf("seed company %s: %w", co[0], err)
			}
			res.Companies++
		}
		for _, b := range brandsSeed {
			if _, err := c.exec(ctx, `INSERT INTO brands (id, name, company_id, description, status, registration_date, registration_number, class_nice, notes)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT (id) DO UPDATE SET name = excluded.name, company_id = excluded.company_id,
					description = excluded.description, status = excluded.status,
					registration_date = excluded.registration_date, registration_number = excluded.registration_number,
					class_nice = excluded.class_nice, notes = excluded.notes, updated_at = CURRENT_TIMESTAMP`,
				b[0], b[1], b[2], b[3], b[4], nullable(b[5]), nullable(b[6]), b[7], b[8]); err != nil {
				return fmt.Errorf("seed brand %s: %w", b[0], err)
			}
			res.Brands++
		}
		for _, ct := range contactsSeed {
			if _, err := c.exec(ctx, `INSERT INTO contacts (id, name, alias, email, phone, company_id)
				VALUES (?, ?, ?, ?, ?, ?)
				ON CONFLICT (id) DO UPDATE SET name = excluded.name, alias = excluded.alias,
					email = excluded.email, phone = excluded.phone, company_id = excluded.company_id,
					updated_at = CURRENT_TIMESTAMP`,
				ct[0], ct[1], ct[2], ct[3], ct[4], nullable(ct[5])); err != nil {
				return fmt.Errorf("seed contact %s: %w", ct[0], err)
			}
			res.Contacts++
		}
		return nil
	})
	return res, err
}

func countRows(ctx context.Context, c conn, table string) (int, error) {
	var n int
	if err := c.queryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}
