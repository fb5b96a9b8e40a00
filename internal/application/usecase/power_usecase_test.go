package usecase_test

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patriciastocker/intranet/internal/application/dto"
	"github.com/patriciastocker/intranet/internal/application/ports"
	"github.com/patriciastocker/intranet/internal/application/usecase"
	"github.com/patriciastocker/intranet/internal/domain"
	"github.com/patriciastocker/intranet/internal/domain/entity"
	"github.com/patriciastocker/intranet/pkg/config"
	"github.com/patriciastocker/intranet/pkg/logger"
)

var powerCfg = config.PowerConfig{
	AttorneyName:    "Marco Arriagada",
	AttorneyRUT:     "12.345.678-9",
	AttorneyAddress: "Av. Apoquindo 3000, Las Condes",
	City:            "Santiago",
	SenderSignature: "Patricia Stocker\nAbogada",
}

func powerRequest() dto.PowerRequest {
	return dto.PowerRequest{
		MandanteType: "persona",
		PowerFields: dto.PowerFields{
			RUT:              "11.111.111-1",
			Address:          "Los Leones 123",
			BrandClass:       "35",
			BrandDescription: "STATSEN",
		},
	}
}

func newPower(contacts *memContacts, pdf *fakePDF, mailer *fakeMailer) *usecase.PowerUseCase {
	var m ports.MailSender
	if mailer != nil {
		m = mailer
	}
	return usecase.NewPowerUseCase(contacts, pdf, m, powerCfg, logger.Nop())
}

func TestPowerGenerate_GuardaDatosYDevuelvePDF(t *testing.T) {
	contacts, pdf := agenda(), &fakePDF{}

	file, err := newPower(contacts, pdf, nil).Generate(context.Background(), "contact_1", powerRequest())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(file.FileName, "Poder_Juan_Pérez_"), file.FileName)
	assert.True(t, strings.HasSuffix(file.FileName, ".pdf"))
	assert.Equal(t, []byte("%PDF-1.7 fake"), file.Data)

	saved, ok := contacts.powers["contact_1"]
	require.True(t, ok, "los datos del poder se persisten en el contacto")
	assert.Equal(t, "11.111.111-1", saved.RUT)
	assert.Equal(t, entity.BrandTypeMixta, saved.BrandType, "valores por defecto aplicados")
	assert.Equal(t, entity.GenderMasculino, saved.Gender)

	require.Len(t, pdf.docs, 1)
	doc := pdf.docs[0]
	assert.Equal(t, "PODER", doc.Title)
	assert.True(t, strings.HasPrefix(doc.Place, "Santiago, "))
	assert.Contains(t, doc.Paragraphs[0], "yo, Juan Pérez, RUT 11.111.111-1, domiciliado en Los Leones 123")
	assert.Contains(t, doc.Paragraphs[0], "don Marco Arriagada")
}

func TestPowerGenerate_EmpresaExigeRazonSocial(t *testing.T) {
	in := powerRequest()
	in.MandanteType = "empresa"

	_, err := newPower(agenda(), &fakePDF{}, nil).Generate(context.Background(), "contact_1", in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Contains(t, err.Error(), "represented_company, represented_company_rut")
}

func TestPowerGenerate_ContactoInexistente(t *testing.T) {
	_, err := newPower(agenda(), &fakePDF{}, nil).Generate(context.Background(), "contact_9", powerRequest())
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestPowerSend_MarcaMixtaEmbebeLogo(t *testing.T) {
	mailer := &fakeMailer{}
	in := powerRequest()
	in.BrandLogo = "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("PNG"))

	err := newPower(agenda(), &fakePDF{}, mailer).Send(context.Background(), "contact_1", in)
	require.NoError(t, err)

	require.Len(t, mailer.sent, 1)
	m := mailer.sent[0]
	assert.Equal(t, []string{"juan@statsen.cl"}, m.To, "sin destinatario se usa el email del contacto")
	assert.Equal(t, "Poder Legal - Juan Pérez", m.Subject)
	assert.Contains(t, m.Body, "Estimado Juan Pérez,")
	assert.Contains(t, m.Body, "• Logo de la marca: Ver imagen adjunta")
	assert.True(t, strings.HasSuffix(m.Body, "Patricia Stocker\nAbogada"))

	require.Len(t, m.Attachments, 2)
	assert.False(t, m.Attachments[0].Embedded)
	logo := m.Attachments[1]
	assert.True(t, logo.Embedded)
	assert.Equal(t, usecase.LogoCID, logo.CID)
	assert.Equal(t, usecase.LogoFilename, logo.Filename)
	assert.Equal(t, []byte("PNG"), logo.Data)
}

func TestPowerSend_MarcaDenominativaSinLogo(t *testing.T) {
	mailer := &fakeMailer{}
	in := powerRequest()
	in.BrandType = "Marca Denominativa"
	in.BrandLogo = base64.StdEncoding.EncodeToString([]byte("PNG"))
	in.To = "otro@correo.cl"
	in.Gender = entity.GenderFemenino

	require.NoError(t, newPower(agenda(), &fakePDF{}, mailer).Send(context.Background(), "contact_1", in))

	m := mailer.sent[0]
	assert.Equal(t, []string{"otro@correo.cl"}, m.To)
	assert.Len(t, m.Attachments, 1)
	assert.NotContains(t, m.Body, "Logo de la marca")
	assert.Contains(t, m.Body, "Estimada ")
}

func TestPowerSend_LogoIlegibleSeEnviaSinLogo(t *testing.T) {
	mailer := &fakeMailer{}
	in := powerRequest()
	in.BrandLogo = "data:image/png;base64,@@@"

	require.NoError(t, newPower(agenda(), &fakePDF{}, mailer).Send(context.Background(), "contact_1", in))
	assert.Len(t, mailer.sent[0].Attachments, 1)
	assert.NotContains(t, mailer.sent[0].Body, "Logo de la marca")
}

func TestPowerSend_SinSMTP(t *testing.T) {
	err := newPower(agenda(), &fakePDF{}, nil).Send(context.Background(), "contact_1", powerRequest())
	assert.True(t, errors.Is(err, domain.ErrNotConfigured))
}

func TestPowerSend_FallaSMTP(t *testing.T) {
	err := newPower(agenda(), &fakePDF{}, &fakeMailer{err: errors.New("535 auth")}).
		Send(context.Background(), "contact_1", powerRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "enviar poder")
}
