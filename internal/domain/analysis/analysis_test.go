package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patriciastocker/intranet/internal/domain/analysis"
	"github.com/patriciastocker/intranet/internal/domain/entity"
)

func testLexicon() *analysis.Lexicon {
	return analysis.NewLexicon(analysis.Profile{
		InternalExclusions: []string{"patricia", "stocker", "tomas", "marco", "marcas"},
		KnownCompanies:     []string{"statsen", "stetson", "canadian", "dbv"},
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Ranking de términos
// ──────────────────────────────────────────────────────────────────────────────

func TestRankTerms_EmpresaConocidaSuperaAlContexto(t *testing.T) {
	lex := testLexicon()

	a := lex.Analyze("Cliente Statsen", "deberia desistir del uso de la marca statsen ante INAPI", "")

	require.NotEmpty(t, a.Ranked)
	top := a.Ranked[0]
	assert.Equal(t, "Statsen", top.Original)
	assert.Equal(t, analysis.ScoreProperNoun+analysis.ScoreCompany, top.Score)
	assert.Equal(t, analysis.CategoryCompany, top.Category)

	assert.Equal(t, []string{"statsen"}, a.Priority, "sólo nombres y empresas, sin repetir")

	var inapi *analysis.Term
	for i := range a.Ranked {
		if a.Ranked[i].Normalized == "inapi" {
			inapi = &a.Ranked[i]
		}
	}
	require.NotNil(t, inapi)
	assert.Equal(t, analysis.ScoreLegal, inapi.Score)
	assert.Equal(t, analysis.CategoryLegal, inapi.Category)
}

func TestScore_StopWordValeCero(t *testing.T) {
	lex := testLexicon()

	term := lex.Score("del")
	assert.Zero(t, term.Score)
	assert.Equal(t, analysis.CategoryStopWord, term.Category)
}

func TestIsProperNoun_ExcluyeInternosYGenericos(t *testing.T) {
	lex := testLexicon()

	assert.True(t, lex.IsProperNoun("Focovi"))
	assert.True(t, lex.IsProperNoun("Canadian,"), "la puntuación final no invalida el nombre")
	assert.False(t, lex.IsProperNoun("Tomás"), "persona interna")
	assert.False(t, lex.IsProperNoun("Marca"), "vocabulario genérico")
	assert.False(t, lex.IsProperNoun("Lunes"))
	assert.False(t, lex.IsProperNoun("Ana"), "menos de cuatro letras")
	assert.False(t, lex.IsProperNoun("minúscula"))
}

func TestPriorityTerms_AgregaEmailDelContacto(t *testing.T) {
	ranked := []analysis.Term{
		{Normalized: "stetson", Score: 190},
		{Normalized: "oposicion", Score: 50},
		{Normalized: "stetson", Score: 100},
	}
	got := analysis.PriorityTerms(ranked, "Legal@Stetson.com")
	assert.Equal(t, []string{"stetson", "legal@stetson.com"}, got)
}

// ──────────────────────────────────────────────────────────────────────────────
// Extracción de datos de contacto
// ──────────────────────────────────────────────────────────────────────────────

func TestExtractContactInfo_PatronDeContexto(t *testing.T) {
	lex := testLexicon()

	got := lex.ExtractContactInfo("Reunión con Juan Pérez el lunes, su correo es juan@focovi.cl y su fono +56 9 1234 5678")
	assert.Equal(t, "Juan Pérez", got.Name)
	assert.Equal(t, "Juan", got.Alias)
	assert.Equal(t, "juan@focovi.cl", got.Email)
	assert.Equal(t, "+56912345678", got.Phone)
}

func TestExtractContactInfo_SecuenciaCapitalizadaDeRespaldo(t *testing.T) {
	lex := testLexicon()

	got := lex.ExtractContactInfo("Marca pendiente. Rodrigo Soto pidió renovar")
	assert.Equal(t, "Rodrigo Soto", got.Name)
	assert.Equal(t, "Rodrigo", got.Alias)
	assert.Empty(t, got.Email)
}

func TestFindCompanyYFindPhone(t *testing.T) {
	assert.Equal(t, "Villegas Consultores SpA", analysis.FindCompany("Factura de Villegas Consultores SpA por servicios"))
	assert.Empty(t, analysis.FindCompany("sin razón social"))
	assert.Equal(t, "+56 9 8765 4321", analysis.FindPhone("llamar al +56 9 8765 4321 mañana"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Matching de contactos
// ──────────────────────────────────────────────────────────────────────────────

func agenda() []*entity.Contact {
	return []*entity.Contact{
		{ID: "c1", Name: "Cliente Statsen", Alias: "Statsen", Email: "statsen@empresa.com"},
		{ID: "c2", Name: "Hermes Establecer", Alias: "Hermes", Email: "hermes@cliente.com"},
		{ID: "c3", Name: "Sin Alias", Email: "nadie@x.cl"},
	}
}

func TestMatchContacts_UsaNombresPropios(t *testing.T) {
	lex := testLexicon()

	got := lex.MatchContacts("preguntarle a Hermes por la renovación", agenda())
	require.Len(t, got, 1)
	assert.Equal(t, "c2", got[0].ID)
}

func TestMatchContacts_SinNombresUsaPalabrasLargas(t *testing.T) {
	lex := testLexicon()

	got := lex.MatchContacts("revisar lo de statsen", agenda())
	require.Len(t, got, 1)
	assert.Equal(t, "c1", got[0].ID)
}

func TestMatchAnswer(t *testing.T) {
	contacts := agenda()

	assert.Equal(t, "c2", analysis.MatchAnswer("Hermes Establecer", contacts).ID)
	assert.Equal(t, "c1", analysis.MatchAnswer("El contacto es Statsen.", contacts).ID)
	assert.Nil(t, analysis.MatchAnswer("NINGUNO", contacts))
	assert.Nil(t, analysis.MatchAnswer("Pedro", contacts), "un alias vacío no coincide con todo")
}
