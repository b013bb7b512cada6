package utils

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tok, err := GenerateToken("secret", "amy", "passenger", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken("secret", tok)
	require.NoError(t, err)
	assert.Equal(t, "amy", claims.Username)
	assert.Equal(t, "passenger", claims.Category)

	_, err = ValidateToken("other", tok)
	assert.Error(t, err)
}

func TestExpiredToken(t *testing.T) {
	tok, err := GenerateToken("secret", "amy", "passenger", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken("secret", tok)
	assert.Error(t, err)
}

func TestRandomFareRange(t *testing.T) {
	fare := RandomFare(rand.New(rand.NewPCG(1, 2)))
	for i := 0; i < 1000; i++ {
		f := fare("A", "B")
		assert.GreaterOrEqual(t, f, 50)
		assert.LessOrEqual(t, f, 149)
	}
}

func TestParseFarePolicy(t *testing.T) {
	p, err := ParseFarePolicy("flat:120")
	require.NoError(t, err)
	assert.Equal(t, 120, p("A", "B"))

	p, err = ParseFarePolicy("random")
	require.NoError(t, err)
	assert.NotNil(t, p)

	for _, bad := range []string{"flat:", "flat:-3", "surge"} {
		_, err := ParseFarePolicy(bad)
		assert.Error(t, err, bad)
	}
}
