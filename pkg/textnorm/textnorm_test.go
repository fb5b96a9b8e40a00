package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/patriciastocker/intranet/pkg/textnorm"
)

func TestFold_QuitaTildesYMayusculas(t *testing.T) {
	assert.Equal(t, "renovacion", textnorm.Fold("Renovación"))
	assert.Equal(t, "tomas", textnorm.Fold("TOMÁS"))
	assert.Equal(t, "nino", textnorm.Fold("niño"))
}

func TestContains_IgnoraTildes(t *testing.T) {
	assert.True(t, textnorm.Contains("Oposición ante INAPI", "oposicion"))
	assert.False(t, textnorm.Contains("marca", "patente"))
}

func TestCollapseSpacesYTruncate(t *testing.T) {
	assert.Equal(t, "hola mundo", textnorm.CollapseSpaces("  hola \n\t mundo "))
	assert.Equal(t, "año", textnorm.Truncate("años", 3))
	assert.Equal(t, "ab", textnorm.Truncate("ab", 5))
}
