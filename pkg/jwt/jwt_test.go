package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Backoffice-api/pkg/jwt"
)

const secret = "test-secret"

func TestGenerateAndParse(t *testing.T) {
	tok, err := jwt.Generate(secret, "user-1", "ADMIN", "backoffice", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, role, err := jwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "ADMIN", role)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := jwt.Generate(secret, "user-1", "USER", "backoffice", -1)
	require.NoError(t, err)

	_, _, err = jwt.Parse(secret, tok)
	assert.Error(t, err)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := jwt.Generate(secret, "user-1", "USER", "backoffice", 60)
	require.NoError(t, err)

	_, _, err = jwt.Parse("otro-secret", tok)
	assert.Error(t, err)
}

func TestSecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "user-1", "USER", "backoffice", 60)
	assert.Error(t, err)

	_, _, err = jwt.Parse("", "x.y.z")
	assert.Error(t, err)
}
