// Package export genera la planilla XLSX de deudas con excelize.
package export

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/patriciastocker/intranet/internal/application/ports"
	"github.com/patriciastocker/intranet/internal/domain/entity"
)

var _ ports.DeudaExporter = (*ExcelExporter)(nil)

// SheetName hoja única de la planilla.
const SheetName = "Deudas"

type column struct {
	Header string
	Value  func(d *entity.Deuda) any
}

var deudaColumns = []column{
	{"ID", func(d *entity.Deuda) any { return d.ID }},
	{"Empresa acreedora", func(d *entity.Deuda) any { return d.EmpresaAcreedora }},
	{"N° factura", func(d *entity.Deuda) any { return d.NumeroFactura }},
	{"Fecha emisión", func(d *entity.Deuda) any { return d.FechaEmision.Format(entity.DateLayout) }},
	{"Fecha vencimiento", func(d *entity.Deuda) any { return d.FechaVencimiento.Format(entity.DateLayout) }},
	{"Monto pendiente", func(d *entity.Deuda) any { return d.MontoPendiente.InexactFloat64() }},
	{"Estado", func(d *entity.Deuda) any { return d.Estado }},
	{"Días de retraso", func(d *entity.Deuda) any { return d.DiasRetraso }},
}

// ExcelExporter implementa ports.DeudaExporter.
type ExcelExporter struct{}

// NewExcelExporter construye el exportador.
func NewExcelExporter() *ExcelExporter { return &ExcelExporter{} }

// ExportDeudas escribe una fila por deuda bajo la fila de encabezados.
func (e *ExcelExporter) ExportDeudas(ctx context.Context, deudas []*entity.Deuda) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("export: hoja: %w", err)
	}
	_ = f.SetDocProps(&excelize.DocProperties{Title: "Deudas", Creator: "intranet"})

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("export: estilo: %w", err)
	}
	for i, col := range deudaColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(SheetName, cell, col.Header)
	}
	last, _ := excelize.CoordinatesToCellName(len(deudaColumns), 1)
	_ = f.SetCellStyle(SheetName, "A1", last, bold)

	for r, d := range deudas {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for c, col := range deudaColumns {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			_ = f.SetCellValue(SheetName, cell, col.Value(d))
		}
	}
	_ = f.SetColWidth(SheetName, "B", "C", 24)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export: escribir xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
