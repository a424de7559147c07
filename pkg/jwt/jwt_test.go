package jwt

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	SetSecret("test-secret")
	id := uuid.New()

	token, err := GenerateToken(id, "owner@example.com", "Owner", "OWNER", []string{"order:view"}, "v1")
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, []string{"order:view"}, claims.Privileges)
	assert.Equal(t, "v1", claims.TokenVersion)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	SetSecret("first")
	token, err := GenerateToken(uuid.New(), "a@b.c", "A", "STAFF", nil, "v1")
	require.NoError(t, err)

	SetSecret("second")
	_, err = ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
