package entity

import "time"

// Empresa acreedora con sus datos bancarios para el pago.
type Empresa struct {
	ID        int64
	Nombre    string
	RUT       string
	Banco     string
	Cuenta    string
	Email     string // opcional
	CreatedAt time.Time
	UpdatedAt time.Time
}
