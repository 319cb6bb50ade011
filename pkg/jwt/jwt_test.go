package jwt

import (
	"testing"
	"time"

	apperrors "digital_market/pkg/errors"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	token, expiresAt, err := GenerateAccessToken("admin@shop.test", RoleAdmin, "digital-market", "secret", time.Minute)
	require.NoError(t, err)
	require.True(t, expiresAt.After(time.Now()))

	claims, err := ValidateToken(token, "secret", "digital-market")
	require.NoError(t, err)
	require.Equal(t, "admin@shop.test", claims.Email)
	require.Equal(t, "admin@shop.test", claims.Subject)
	require.Equal(t, RoleAdmin, claims.Role)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, _, err := GenerateAccessToken("admin@shop.test", RoleAdmin, "digital-market", "secret", time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token, "other", "digital-market")
	require.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestValidateToken_WrongIssuer(t *testing.T) {
	token, _, err := GenerateAccessToken("admin@shop.test", RoleAdmin, "someone-else", "secret", time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token, "secret", "digital-market")
	require.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestValidateToken_Expired(t *testing.T) {
	token, _, err := GenerateAccessToken("admin@shop.test", RoleAdmin, "digital-market", "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token, "secret", "digital-market")
	require.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestValidateToken_RejectsNoneAlgorithm(t *testing.T) {
	claims := &Claims{Email: "x", Role: RoleAdmin, RegisteredClaims: gojwt.RegisteredClaims{Issuer: "digital-market"}}
	token := gojwt.NewWithClaims(gojwt.SigningMethodNone, claims)
	signed, err := token.SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ValidateToken(signed, "secret", "digital-market")
	require.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
