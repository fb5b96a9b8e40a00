package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados posibles de una deuda (deben coincidir con el CHECK de la tabla deudas).
const (
	EstadoVigente = "VIGENTE"
	EstadoVencido = "VENCIDO"
)

// DateLayout formato de fechas de emisión y vencimiento.
const DateLayout = "2006-01-02"

// Deuda representa una factura pendiente con una empresa acreedora.
type Deuda struct {
	ID               int64
	EmpresaAcreedora string
	NumeroFactura    string
	FechaEmision     time.Time
	FechaVencimiento time.Time
	MontoPendiente   decimal.Decimal
	Estado           string // VIGENTE | VENCIDO
	DiasRetraso      int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ValidEstado informa si s es un estado admitido.
func ValidEstado(s string) bool {
	return s == EstadoVigente || s == EstadoVencido
}

// OverdueAt calcula estado y días de retraso respecto a la fecha today.
func (d *Deuda) OverdueAt(today time.Time) (estado string, dias int) {
	due := truncateDay(d.FechaVencimiento)
	now := truncateDay(today)
	if !now.After(due) {
		return EstadoVigente, 0
	}
	return EstadoVencido, int(now.Sub(due).Hours() / 24)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DeudaPatch campos opcionales de una actualización parcial.
type DeudaPatch struct {
	EmpresaAcreedora *string
	NumeroFactura    *string
	FechaEmision     *time.Time
	FechaVencimiento *time.Time
	MontoPendiente   *decimal.Decimal
	Estado           *string
	DiasRetraso      *int
}

// Empty informa si el patch no trae ningún campo.
func (p DeudaPatch) Empty() bool {
	return p.EmpresaAcreedora == nil && p.NumeroFactura == nil && p.FechaEmision == nil &&
		p.FechaVencimiento == nil && p.MontoPendiente == nil && p.Estado == nil && p.DiasRetraso == nil
}

// ResumenEmpresa total adeudado y cantidad de facturas de una empresa.
type ResumenEmpresa struct {
	Empresa  string
	Total    decimal.Decimal
	Facturas int
}

// Resumen total general y desglose por empresa acreedora.
type Resumen struct {
	TotalAdeudado decimal.Decimal
	PorEmpresa    []ResumenEmpresa
}
