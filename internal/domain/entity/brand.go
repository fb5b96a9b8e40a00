package entity

import "time"

// BrandStatusActive estado por defecto de una marca.
const BrandStatusActive = "active"

// Brand marca registrada (o en trámite) de una Company.
type Brand struct {
	ID                 string
	Name               string
	CompanyID          string
	Description        string
	Status             string // active, registered, pending, ...
	RegistrationDate   string // YYYY-MM-DD, opcional
	RegistrationNumber string
	ClassNice          string
	Notes              string
	CreatedAt          time.Time
	UpdatedAt          time.Time

	CompanyName        string
	CompanyDescription string
}
