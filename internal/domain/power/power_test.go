package power_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patriciastocker/intranet/internal/domain"
	"github.com/patriciastocker/intranet/internal/domain/entity"
	"github.com/patriciastocker/intranet/internal/domain/power"
)

var attorney = power.Attorney{
	Name:      "TOMÁS ALBERTO BARRIENTOS STOCKER",
	RUT:       "21.043.144-6",
	Address:   "Bello Horizonte 960, departamento 64, Las Condes, Santiago",
	City:      "Santiago",
	Signature: "Tomás Barrientos",
}

func completeData() entity.PowerData {
	p := entity.PowerData{
		RUT:                   "12.345.678-9",
		Address:               "Av. Apoquindo 3000",
		RepresentedCompany:    "Statsen SpA",
		RepresentedCompanyRUT: "76.000.000-1",
		BrandClass:            "35",
		BrandDescription:      "Servicios de publicidad",
	}
	p.ApplyDefaults()
	return p
}

// ──────────────────────────────────────────────────────────────────────────────
// Validate
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_EmpresaExigeDatosDeLaRepresentada(t *testing.T) {
	p := completeData()
	p.RepresentedCompanyRUT = ""

	assert.NoError(t, power.Validate(power.MandantePersona, p), "persona no necesita empresa representada")

	err := power.Validate(power.MandanteEmpresa, p)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Contains(t, err.Error(), "represented_company_rut")
}

func TestValidate_TipoDesconocido(t *testing.T) {
	err := power.Validate("sociedad", completeData())
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// ──────────────────────────────────────────────────────────────────────────────
// Compose
// ──────────────────────────────────────────────────────────────────────────────

func TestCompose_PersonaFemenina(t *testing.T) {
	p := completeData()
	p.Gender = entity.GenderFemenino
	c := &entity.Contact{Name: "María José Pérez"}
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)

	doc := power.Compose(attorney, power.MandantePersona, c, p, now)

	assert.Equal(t, "PODER", doc.Title)
	assert.Equal(t, "Santiago, 14-10-2026", doc.Place)
	require.Len(t, doc.Paragraphs, 2)
	assert.Contains(t, doc.Paragraphs[0], "yo, María José Pérez, RUT 12.345.678-9, domiciliada en Av. Apoquindo 3000;")
	assert.NotContains(t, doc.Paragraphs[0], "en representación de")
	assert.True(t, strings.HasPrefix(doc.Paragraphs[1], "Con este objeto se le faculta"))
	assert.Equal(t, "FIRMA Mandante", doc.SignatureLabel)
	assert.Equal(t, "Poder_María_José_Pérez_2026-10-14.pdf", doc.FileName)
}

func TestCompose_EmpresaMasculino(t *testing.T) {
	c := &entity.Contact{Name: "Juan Soto"}
	doc := power.Compose(attorney, power.MandanteEmpresa, c, completeData(), time.Now())

	assert.Contains(t, doc.Paragraphs[0], "en representación de Statsen SpA, RUT 76.000.000-1, ambos domiciliados en")
	assert.Contains(t, doc.Paragraphs[0], "a don TOMÁS ALBERTO BARRIENTOS STOCKER, RUT Nº 21.043.144-6")
}

// ──────────────────────────────────────────────────────────────────────────────
// Correo de envío
// ──────────────────────────────────────────────────────────────────────────────

func TestMailBody_SaludoYLogo(t *testing.T) {
	p := completeData()
	p.Gender = entity.GenderFemenino
	p.BrandLogo = "data:image/png;base64,AAAA"
	c := &entity.Contact{Name: "Ana Rojas"}

	body := power.MailBody(attorney, c, p, power.HasLogo(p))

	assert.True(t, strings.HasPrefix(body, "Estimada Ana Rojas,"))
	assert.Contains(t, body, "• Clase Niza: 35")
	assert.Contains(t, body, "• Tipo de Marca: Marca Mixta")
	assert.Contains(t, body, "Ver imagen adjunta")
	assert.True(t, strings.HasSuffix(body, "Tomás Barrientos"))
	assert.Equal(t, "Poder Legal - Ana Rojas", power.MailSubject(c))
}

func TestHasLogo_SoloMarcaMixta(t *testing.T) {
	p := completeData()
	p.BrandLogo = "data:image/png;base64,AAAA"
	assert.True(t, power.HasLogo(p))

	p.BrandType = "Marca Denominativa"
	assert.False(t, power.HasLogo(p))
}
