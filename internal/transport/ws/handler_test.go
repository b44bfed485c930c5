package ws

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestValidateTokenAcceptsHS256(t *testing.T) {
	userID := uuid.New()
	tokenStr := signedToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
		"sub": userID.String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	got, err := validateToken(tokenStr, testSecret)

	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	tokenStr := signedToken(t, jwt.SigningMethodHS256, []byte("other-secret"), jwt.MapClaims{
		"sub": uuid.New().String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := validateToken(tokenStr, testSecret)

	assert.Error(t, err)
}

func TestValidateTokenRejectsUnsignedAlg(t *testing.T) {
	tokenStr := signedToken(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.MapClaims{
		"sub": uuid.New().String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := validateToken(tokenStr, testSecret)

	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	tokenStr := signedToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
		"sub": uuid.New().String(),
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	_, err := validateToken(tokenStr, testSecret)

	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbageSubject(t *testing.T) {
	tokenStr := signedToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
		"sub": "not-a-uuid",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := validateToken(tokenStr, testSecret)

	assert.Error(t, err)
}
