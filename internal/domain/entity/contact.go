package entity

import "time"

// Valores por defecto de los campos de poder de un contacto.
const (
	GenderMasculino      = "masculino"
	GenderFemenino       = "femenino"
	DefaultPowerPurpose  = "renovación de marca"
	BrandTypeMixta       = "Marca Mixta"
	DefaultBrandCoverage = "Marca de servicios"
)

// Contact persona de contacto del estudio, opcionalmente ligada a una Company.
type Contact struct {
	ID        string
	Name      string
	Alias     string
	Email     string
	Phone     string
	CompanyID string

	// Datos para el poder y la marca asociada.
	Power PowerData

	// Campos de sólo lectura provenientes del JOIN con companies.
	CompanyName        string
	CompanyDescription string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PowerData datos del mandante y de la marca usados al generar un Poder.
type PowerData struct {
	RUT                     string
	Address                 string
	RepresentedCompany      string
	RepresentedCompanyRUT   string
	Gender                  string
	PowerPurpose            string
	BrandClass              string
	BrandType               string
	BrandCoverage           string
	BrandDescription        string
	BrandRegistrationNumber string
	BrandApplicationNumber  string
	BrandLogo               string // data URL
}

// ApplyDefaults completa los campos vacíos con los valores de la tabla.
func (p *PowerData) ApplyDefaults() {
	if p.Gender == "" {
		p.Gender = GenderMasculino
	}
	if p.PowerPurpose == "" {
		p.PowerPurpose = DefaultPowerPurpose
	}
	if p.BrandType == "" {
		p.BrandType = BrandTypeMixta
	}
	if p.BrandCoverage == "" {
		p.BrandCoverage = DefaultBrandCoverage
	}
}

// Greeting devuelve alias o, si no tiene, el nombre.
func (c *Contact) Greeting() string {
	if c.Alias != "" {
		return c.Alias
	}
	return c.Name
}
