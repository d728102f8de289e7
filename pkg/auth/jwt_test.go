package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndValidate(t *testing.T) {
	token, err := IssueToken("s3cret", "arena", "move", time.Minute)
	require.NoError(t, err)

	claims, err := ValidateToken("s3cret", token)
	require.NoError(t, err)
	assert.Equal(t, "arena", claims.Subject)
	assert.Equal(t, "move", claims.Scope)
	assert.Equal(t, Issuer, claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateRejects(t *testing.T) {
	token, err := IssueToken("s3cret", "arena", "", time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken("other", token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, err := IssueToken("s3cret", "arena", "", -time.Minute)
	require.NoError(t, err)
	_, err = ValidateToken("s3cret", expired)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	_, err = ValidateToken("s3cret", "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ValidateToken("", token)
	assert.ErrorIs(t, err, ErrMissingSecret)
	_, err = IssueToken("", "arena", "", time.Minute)
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestValidateRejectsForeignIssuer(t *testing.T) {
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    "someone-else",
		Subject:   "arena",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	_, err = ValidateToken("s3cret", token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
