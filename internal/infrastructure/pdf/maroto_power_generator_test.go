package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patriciastocker/intranet/internal/domain/entity"
	"github.com/patriciastocker/intranet/internal/domain/power"
	"github.com/patriciastocker/intranet/internal/infrastructure/pdf"
)

func TestGeneratePowerPDF_DevuelvePDF(t *testing.T) {
	p := entity.PowerData{
		RUT:              "12.345.678-9",
		Address:          "Av. Apoquindo 3000",
		BrandClass:       "35",
		BrandDescription: "Servicios de publicidad",
	}
	p.ApplyDefaults()
	a := power.Attorney{Name: "TOMÁS BARRIENTOS", RUT: "21.043.144-6", Address: "Las Condes", City: "Santiago"}
	doc := power.Compose(a, power.MandantePersona, &entity.Contact{Name: "Juan Soto"}, p, time.Now())

	out, err := pdf.NewMarotoPowerGenerator().GeneratePowerPDF(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "el documento debe empezar con la firma PDF")
}
