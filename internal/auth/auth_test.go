package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("wedrowiec123")
	require.NoError(t, err)
	assert.NotEqual(t, "wedrowiec123", hash)

	assert.True(t, CheckPassword("wedrowiec123", hash))
	assert.False(t, CheckPassword("wedrowiec124", hash))
	assert.False(t, CheckPassword("", hash))
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	h1, err := HashPassword("secret")
	require.NoError(t, err)
	h2, err := HashPassword("secret")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestTokens_IssueAndVerify(t *testing.T) {
	tokens := NewTokens("test-secret")

	signed, err := tokens.Issue(42, "anna@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := tokens.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "anna@example.com", claims.Email)
	assert.Equal(t, "szlak-api", claims.Issuer)
	assert.NotEmpty(t, claims.ID)

	ttl := time.Until(claims.ExpiresAt.Time)
	assert.Greater(t, ttl, 6*24*time.Hour)
	assert.LessOrEqual(t, ttl, 7*24*time.Hour)
}

func TestTokens_Issue_NoSecret(t *testing.T) {
	tokens := NewTokens("")
	_, err := tokens.Issue(1, "a@b.co")
	assert.Error(t, err)
}

func TestTokens_Verify_WrongSecret(t *testing.T) {
	signed, err := NewTokens("secret-one").Issue(1, "a@b.co")
	require.NoError(t, err)

	_, err = NewTokens("secret-two").Verify(signed)
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestTokens_Verify_Expired(t *testing.T) {
	secret := "test-secret"
	now := time.Now()
	claims := Claims{
		UserID: 7,
		Email:  "a@b.co",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "szlak-api",
			IssuedAt:  jwt.NewNumericDate(now.Add(-48 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = NewTokens(secret).Verify(signed)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokens_Verify_WrongIssuer(t *testing.T) {
	secret := "test-secret"
	now := time.Now()
	claims := Claims{
		UserID: 7,
		Email:  "a@b.co",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = NewTokens(secret).Verify(signed)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestTokens_Verify_RejectsNone(t *testing.T) {
	now := time.Now()
	claims := Claims{
		UserID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "szlak-api",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokens("test-secret").Verify(unsigned)
	assert.Error(t, err)
}

func TestTokens_Verify_Garbage(t *testing.T) {
	_, err := NewTokens("test-secret").Verify("not.a.token")
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestTokens_FromHeader(t *testing.T) {
	tokens := NewTokens("test-secret")
	signed, err := tokens.Issue(9, "a@b.co")
	require.NoError(t, err)

	claims, err := tokens.FromHeader("Bearer " + signed)
	require.NoError(t, err)
	assert.Equal(t, uint(9), claims.UserID)

	_, err = tokens.FromHeader("")
	assert.ErrorIs(t, err, ErrMissingHeader)

	_, err = tokens.FromHeader(signed)
	assert.ErrorIs(t, err, ErrBadScheme)

	_, err = tokens.FromHeader("Basic dXNlcjpwYXNz")
	assert.ErrorIs(t, err, ErrBadScheme)

	_, err = tokens.FromHeader("Bearer ")
	assert.ErrorIs(t, err, ErrBadScheme)
}
