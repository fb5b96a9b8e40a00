package ports

import (
	"context"

	"github.com/patriciastocker/intranet/internal/domain/entity"
	"github.com/patriciastocker/intranet/internal/domain/power"
)

// PowerPDFGenerator maqueta el Poder y devuelve los bytes del PDF.
type PowerPDFGenerator interface {
	GeneratePowerPDF(ctx context.Context, doc power.Document) ([]byte, error)
}

// DeudaExporter genera la planilla XLSX de deudas.
type DeudaExporter interface {
	ExportDeudas(ctx context.Context, deudas []*entity.Deuda) ([]byte, error)
}
