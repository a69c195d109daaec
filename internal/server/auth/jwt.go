// Package auth implements token signing/verification, password hashing,
// and the request-scoped caller identity.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/rustblog/rustblog/internal/common"
)

// Issuer is the fixed iss claim on every token this service signs.
const Issuer = "rustblog"

// Claims is the self-describing payload embedded in every issued token.
// The registered claims carry iss, sub (user id), jti (session id),
// iat and exp; IsRefresh distinguishes the two token kinds.
type Claims struct {
	jwt.RegisteredClaims
	IsRefresh bool `json:"is_refresh"`
}

// NewClaims builds claims for a token issued now for the given user and
// session, expiring after validity.
func NewClaims(userID, sessionID uuid.UUID, validity time.Duration, isRefresh bool) Claims {
	now := time.Now()
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   userID.String(),
			ID:        sessionID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		IsRefresh: isRefresh,
	}
}

// UserID returns the sub claim as a UUID.
func (c *Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// SessionID returns the jti claim as a UUID.
func (c *Claims) SessionID() (uuid.UUID, error) {
	return uuid.Parse(c.ID)
}

// GenerateToken signs claims with HS256 and the given symmetric secret.
func GenerateToken(claims Claims, secretKey []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies the signature with the given secret and decodes the
// claims. Expired or malformed tokens yield common.ErrInvalidToken unless
// validation is relaxed through parser options.
func ParseToken(tokenString string, secretKey []byte, opts ...jwt.ParserOption) (*Claims, error) {
	claims := &Claims{}

	opts = append(opts, jwt.WithValidMethods([]string{"HS256"}))
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, opts...)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
