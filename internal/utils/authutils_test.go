package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	require.NoError(t, InitJWT("test-secret"))

	token, err := IssueToken(42, time.Hour)
	require.NoError(t, err)

	data, err := ValidateToken(token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, data.UserID)
	assert.Greater(t, data.Exp, time.Now().Unix())
}

func TestValidateTokenAcceptsBearerPrefix(t *testing.T) {
	require.NoError(t, InitJWT("test-secret"))

	token, err := IssueToken(7, time.Hour)
	require.NoError(t, err)

	data, err := ValidateToken("Bearer " + token)
	require.NoError(t, err)
	assert.EqualValues(t, 7, data.UserID)
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	require.NoError(t, InitJWT("test-secret"))

	token, err := IssueToken(42, time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(token + "x")
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	require.NoError(t, InitJWT("test-secret"))

	token, err := IssueToken(42, -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestInitJWTRejectsEmptySecret(t *testing.T) {
	assert.Error(t, InitJWT(""))
	assert.Error(t, InitJWT("   "))
}
