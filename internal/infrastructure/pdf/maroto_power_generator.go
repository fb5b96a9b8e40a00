// Package pdf maqueta el Poder (mandato de representación ante INAPI) con Maroto v2.
//
// Layout de la página carta:
//
//	┌───────────────────────────────────────────┐
//	│                  PODER                    │
//	│                      Santiago, dd-mm-yyyy │
//	│  Párrafo del mandante                     │
//	│  Párrafo de facultades                    │
//	│                                           │
//	│           ______________________          │
//	│               FIRMA Mandante              │
//	└───────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/patriciastocker/intranet/internal/application/ports"
	"github.com/patriciastocker/intranet/internal/domain/power"
)

var _ ports.PowerPDFGenerator = (*MarotoPowerGenerator)(nil)

var colorBlack = &props.Color{Red: 0, Green: 0, Blue: 0}

// MarotoPowerGenerator implementa ports.PowerPDFGenerator usando Maroto v2.
type MarotoPowerGenerator struct{}

// NewMarotoPowerGenerator construye el generador.
func NewMarotoPowerGenerator() *MarotoPowerGenerator { return &MarotoPowerGenerator{} }

// GeneratePowerPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPowerGenerator) GeneratePowerPDF(_ context.Context, doc power.Document) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.Letter).
		WithLeftMargin(25).WithRightMargin(25).
		WithTopMargin(25).WithBottomMargin(20).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 11}).
		WithTitle(doc.Title, true).
		WithAuthor(doc.Author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(titleRow(doc.Title))
	m.AddRows(placeRow(doc.Place))
	for _, p := range doc.Paragraphs {
		m.AddAutoRow(paragraphCol(p))
		m.AddRows(row.New(6))
	}
	m.AddRows(row.New(30))
	m.AddRows(signatureRows(doc.SignatureLabel)...)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar poder: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func titleRow(title string) core.Row {
	return row.New(16).Add(
		col.New(12).Add(text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 16, Align: align.Center, Color: colorBlack,
		})),
	)
}

// placeRow: lugar y fecha alineados a la derecha.
func placeRow(place string) core.Row {
	return row.New(14).Add(
		col.New(12).Add(text.New(place, props.Text{Size: 11, Align: align.Right, Top: 2})),
	)
}

func paragraphCol(p string) core.Col {
	return col.New(12).Add(text.New(p, props.Text{
		Size: 11, Align: align.Left,
	}))
}

// signatureRows: línea de firma centrada y su leyenda.
func signatureRows(label string) []core.Row {
	return []core.Row{
		row.New(2).Add(
			col.New(3),
			line.NewCol(6, props.Line{Color: colorBlack, Thickness: 0.4}),
			col.New(3),
		),
		row.New(8).Add(
			col.New(12).Add(text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Center, Top: 2,
			})),
		),
	}
}
