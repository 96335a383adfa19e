package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mumi-pos-api/pkg/jwt"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	token, err := jwt.Generate("secreto-de-prueba", 42, "admin", "mumi-pos", 60)
	require.NoError(t, err)

	userID, role, err := jwt.Parse("secreto-de-prueba", token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
	assert.Equal(t, "admin", role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate("secreto-a", 1, "user", "mumi-pos", 60)
	require.NoError(t, err)

	_, _, err = jwt.Parse("secreto-b", token)
	assert.Error(t, err, "un token firmado con otro secreto debe rechazarse")
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", 1, "user", "mumi-pos", 60)
	assert.Error(t, err)
}
