// Package services contains server-side business logic.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/rustblog/rustblog/internal/server/auth"
	"github.com/rustblog/rustblog/internal/server/config"
	"github.com/rustblog/rustblog/internal/server/repositories/tokens"
)

// Registry key suffixes for the two token kinds.
const (
	kindAccess  = "at"
	kindRefresh = "rt"
)

// TokenService issues, persists, looks up and revokes access and refresh
// tokens. Access and refresh tokens are signed with distinct symmetric
// secrets; registry entries live exactly as long as the token they hold.
type TokenService struct {
	registry                     tokens.Registry
	accessSecret                 []byte
	refreshSecret                []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

func NewTokenService(registry tokens.Registry, cfg *config.Config) *TokenService {
	return &TokenService{
		registry:                     registry,
		accessSecret:                 []byte(cfg.AccessSecret),
		refreshSecret:                []byte(cfg.RefreshSecret),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// registryKey builds "<user_id>.<jti>.<kind>".
func registryKey(userID, sessionID uuid.UUID, kind string) string {
	return fmt.Sprintf("%s.%s.%s", userID, sessionID, kind)
}

func (s *TokenService) GenerateAccessToken(userID, sessionID uuid.UUID) (string, error) {
	claims := auth.NewClaims(userID, sessionID, s.accessTokenValidityDuration, false)
	return auth.GenerateToken(claims, s.accessSecret)
}

func (s *TokenService) GenerateRefreshToken(userID, sessionID uuid.UUID) (string, error) {
	claims := auth.NewClaims(userID, sessionID, s.refreshTokenValidityDuration, true)
	return auth.GenerateToken(claims, s.refreshSecret)
}

func (s *TokenService) SaveAccessToken(ctx context.Context, userID, sessionID uuid.UUID, token string) error {
	return s.registry.Save(ctx, registryKey(userID, sessionID, kindAccess), token, s.accessTokenValidityDuration)
}

func (s *TokenService) SaveRefreshToken(ctx context.Context, userID, sessionID uuid.UUID, token string) error {
	return s.registry.Save(ctx, registryKey(userID, sessionID, kindRefresh), token, s.refreshTokenValidityDuration)
}

func (s *TokenService) GetAccessToken(ctx context.Context, userID, sessionID uuid.UUID) (string, error) {
	return s.registry.Get(ctx, registryKey(userID, sessionID, kindAccess))
}

func (s *TokenService) GetRefreshToken(ctx context.Context, userID, sessionID uuid.UUID) (string, error) {
	return s.registry.Get(ctx, registryKey(userID, sessionID, kindRefresh))
}

func (s *TokenService) DeleteAccessToken(ctx context.Context, userID, sessionID uuid.UUID) error {
	return s.registry.Delete(ctx, registryKey(userID, sessionID, kindAccess))
}

func (s *TokenService) DeleteRefreshToken(ctx context.Context, userID, sessionID uuid.UUID) error {
	return s.registry.Delete(ctx, registryKey(userID, sessionID, kindRefresh))
}

// ParseAccessToken verifies tokenString against the access secret. A
// refresh token presented here fails the signature check by construction.
func (s *TokenService) ParseAccessToken(tokenString string, opts ...jwt.ParserOption) (*auth.Claims, error) {
	return auth.ParseToken(tokenString, s.accessSecret, opts...)
}

// ParseRefreshToken verifies tokenString against the refresh secret.
func (s *TokenService) ParseRefreshToken(tokenString string, opts ...jwt.ParserOption) (*auth.Claims, error) {
	return auth.ParseToken(tokenString, s.refreshSecret, opts...)
}
