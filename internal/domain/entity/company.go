package entity

import "time"

// Company organización cliente a la que pertenecen contactos y marcas.
type Company struct {
	ID          string
	Name        string
	Description string
	Website     string
	Phone       string
	Address     string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Brands []*Brand // sólo se carga cuando se pide explícitamente
}
