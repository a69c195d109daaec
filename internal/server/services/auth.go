package services

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/rustblog/rustblog/internal/common"
	"github.com/rustblog/rustblog/internal/logging"
	"github.com/rustblog/rustblog/internal/server/auth"
	"github.com/rustblog/rustblog/internal/server/repositories/users"
)

// TokenPair bundles a short-lived access token and a long-lived refresh
// token minted for the same session (jti).
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService drives the login/logout/refresh session state machine.
// A session is named by its jti; revoking the jti revokes both tokens.
type AuthService struct {
	users  users.Repository
	tokens *TokenService
	logger logging.Logger
}

func NewAuthService(users users.Repository, tokens *TokenService, logger logging.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, logger: logger}
}

// Login verifies credentials and opens a fresh session. Bad credentials
// yield ErrorUnauthorized; a store failure yields ErrorInternal.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if !auth.CheckPasswordHash(password, user.Password) {
		return nil, common.ErrorUnauthorized
	}

	sessionID := uuid.New()
	return s.issueSession(ctx, user.ID, sessionID)
}

// Logout revokes the session named by the presented access token. The
// signature must verify but expiry is ignored, so an expired access token
// can still clear its own session. Logout of an already-revoked session
// is rejected as unauthorized; revocation itself is idempotent.
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.tokens.ParseAccessToken(tokenString, jwt.WithoutClaimsValidation())
	if err != nil {
		return common.ErrorUnauthorized
	}

	if claims.IsRefresh {
		return common.ErrorUnauthorized
	}

	userID, sessionID, err := sessionIdentity(claims)
	if err != nil {
		return common.ErrorUnauthorized
	}

	_, atErr := s.tokens.GetAccessToken(ctx, userID, sessionID)
	_, rtErr := s.tokens.GetRefreshToken(ctx, userID, sessionID)
	if atErr != nil && rtErr != nil {
		return common.ErrorUnauthorized
	}

	s.revokeSession(ctx, userID, sessionID)
	return nil
}

// Refresh rotates the token pair of a live session, keeping its jti.
// The presented token must match the live rt registry entry: a revoked
// or rotated-out refresh token is rejected while still cryptographically
// valid.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	if !claims.IsRefresh {
		return nil, common.ErrorUnauthorized
	}

	userID, sessionID, err := sessionIdentity(claims)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	stored, err := s.tokens.GetRefreshToken(ctx, userID, sessionID)
	if err != nil || stored != refreshToken {
		return nil, common.ErrorUnauthorized
	}

	s.revokeSession(ctx, userID, sessionID)

	return s.issueSession(ctx, userID, sessionID)
}

// Verify authenticates a bearer access token: signature, expiry, and the
// live registry entry. The registry is authoritative for revocation; any
// disagreement denies.
func (s *AuthService) Verify(ctx context.Context, tokenString string) (*auth.Claims, error) {
	claims, err := s.tokens.ParseAccessToken(tokenString)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	if claims.IsRefresh {
		return nil, common.ErrorUnauthorized
	}

	userID, sessionID, err := sessionIdentity(claims)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	stored, err := s.tokens.GetAccessToken(ctx, userID, sessionID)
	if err != nil || stored != tokenString {
		return nil, common.ErrorUnauthorized
	}

	return claims, nil
}

func sessionIdentity(claims *auth.Claims) (uuid.UUID, uuid.UUID, error) {
	userID, err := claims.UserID()
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	sessionID, err := claims.SessionID()
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return userID, sessionID, nil
}

// issueSession mints and persists an access+refresh pair for (userID,
// sessionID). If either persist fails, both entries are removed so the
// "only at" state can never survive.
func (s *AuthService) issueSession(ctx context.Context, userID, sessionID uuid.UUID) (*TokenPair, error) {
	accessToken, err := s.tokens.GenerateAccessToken(userID, sessionID)
	if err != nil {
		return nil, common.ErrorInternal
	}

	refreshToken, err := s.tokens.GenerateRefreshToken(userID, sessionID)
	if err != nil {
		return nil, common.ErrorInternal
	}

	if err := s.tokens.SaveAccessToken(ctx, userID, sessionID, accessToken); err != nil {
		s.revokeSession(ctx, userID, sessionID)
		return nil, common.ErrorInternal
	}
	if err := s.tokens.SaveRefreshToken(ctx, userID, sessionID, refreshToken); err != nil {
		s.revokeSession(ctx, userID, sessionID)
		return nil, common.ErrorInternal
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// revokeSession removes both registry entries, best effort. Missing
// entries are not an error.
func (s *AuthService) revokeSession(ctx context.Context, userID, sessionID uuid.UUID) {
	if err := s.tokens.DeleteAccessToken(ctx, userID, sessionID); err != nil {
		s.logger.Warn(ctx, "error deleting access token entry", "error", err)
	}
	if err := s.tokens.DeleteRefreshToken(ctx, userID, sessionID); err != nil {
		s.logger.Warn(ctx, "error deleting refresh token entry", "error", err)
	}
}
