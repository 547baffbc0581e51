// Package auth provides password hashing and JWT issuance/verification.
//
// Verification failures are distinguished internally through sentinel
// errors so they can be logged and counted, but every failure maps to the
// same 401 at the HTTP boundary: clients never learn whether a token was
// absent, malformed, expired or forged.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Sentinel causes for identity extraction failures.
var (
	ErrMissingHeader = errors.New("authorization header absent")
	ErrBadScheme     = errors.New("authorization header is not a bearer token")
	ErrTokenExpired  = errors.New("token expired")
	ErrBadSignature  = errors.New("token signature invalid")
	ErrMalformed     = errors.New("token malformed")
)

const (
	issuer   = "szlak-api"
	tokenTTL = 7 * 24 * time.Hour
)

// Claims is the identity a verified token carries.
type Claims struct {
	UserID uint   `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// HashPassword derives an irreversible bcrypt hash of the password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Tokens issues and verifies signed identity tokens.
type Tokens struct {
	secret []byte
}

// NewTokens returns a token service signing with the given secret.
func NewTokens(secret string) *Tokens {
	return &Tokens{secret: []byte(secret)}
}

// Issue creates a signed token embedding the user id and email, valid for
// seven days.
func (t *Tokens) Issue(userID uint, email string) (string, error) {
	if len(t.secret) == 0 {
		return "", errors.New("JWT secret not configured")
	}

	now := time.Now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify checks signature and expiry and returns the embedded identity.
// The returned error is one of the sentinel causes above.
func (t *Tokens) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tok.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}), jwt.WithIssuer(issuer))

	switch {
	case err == nil && token.Valid:
		return claims, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, ErrBadSignature
	default:
		return nil, ErrMalformed
	}
}

// FromHeader extracts and verifies a bearer token from an Authorization
// header value.
func (t *Tokens) FromHeader(header string) (*Claims, error) {
	if header == "" {
		return nil, ErrMissingHeader
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		return nil, ErrBadScheme
	}
	return t.Verify(parts[1])
}
