package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustblog/rustblog/internal/common"
	"github.com/rustblog/rustblog/internal/logging"
	"github.com/rustblog/rustblog/internal/server/auth"
	"github.com/rustblog/rustblog/internal/server/config"
	"github.com/rustblog/rustblog/internal/server/models"
)

type fakeUsersRepo struct {
	user   *models.User
	getErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.user == nil || f.user.Email != email {
		return nil, common.ErrorNotFound
	}
	return f.user, nil
}

func noopLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newAuthFixture(t *testing.T, cfg *config.Config) (*AuthService, *fakeRegistry, *models.User) {
	t.Helper()

	hash, err := auth.HashPassword("password")
	require.NoError(t, err)

	user := &models.User{
		ID:       uuid.New(),
		Email:    "john@rustblog.com",
		Username: "jonn",
		Password: hash,
	}

	registry := newFakeRegistry()
	tokenSvc := NewTokenService(registry, cfg)
	return NewAuthService(&fakeUsersRepo{user: user}, tokenSvc, noopLogger()), registry, user
}

func TestLogin_Success(t *testing.T) {
	svc, registry, user := newAuthFixture(t, newTestConfig())
	ctx := context.Background()

	pair, err := svc.Login(ctx, user.Email, "password")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	accessClaims, err := svc.tokens.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	refreshClaims, err := svc.tokens.ParseRefreshToken(pair.RefreshToken)
	require.NoError(t, err)

	// Paired tokens name the same session and subject.
	assert.Equal(t, user.ID.String(), accessClaims.Subject)
	assert.Equal(t, accessClaims.Subject, refreshClaims.Subject)
	assert.Equal(t, accessClaims.ID, refreshClaims.ID)
	assert.False(t, accessClaims.IsRefresh)
	assert.True(t, refreshClaims.IsRefresh)

	// Both registry halves exist.
	assert.Len(t, registry.entries, 2)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, registry, user := newAuthFixture(t, newTestConfig())

	_, err := svc.Login(context.Background(), user.Email, "wrong")
	assert.True(t, errors.Is(err, common.ErrorUnauthorized))
	assert.Empty(t, registry.entries)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t, newTestConfig())

	_, err := svc.Login(context.Background(), "ghost@rustblog.com", "password")
	assert.True(t, errors.Is(err, common.ErrorUnauthorized))
}

func TestLogin_StoreFailure(t *testing.T) {
	registry := newFakeRegistry()
	tokenSvc := NewTokenService(registry, newTestConfig())
	svc := NewAuthService(&fakeUsersRepo{getErr: errors.New("db down")}, tokenSvc, noopLogger())

	_, err := svc.Login(context.Background(), "john@rustblog.com", "password")
	assert.True(t, errors.Is(err, common.ErrorInternal))
}

func TestLogin_PersistFailureLeavesNoHalfSession(t *testing.T) {
	svc, registry, user := newAuthFixture(t, newTestConfig())
	registry.saveErr = errors.New("registry down")

	_, err := svc.Login(context.Background(), user.Email, "password")
	assert.True(t, errors.Is(err, common.ErrorInternal))
	assert.Empty(t, registry.entries)
}

func TestRefresh_RotatesTokensKeepsSession(t *testing.T) {
	svc, _, user := newAuthFixture(t, newTestConfig())
	ctx := context.Background()

	pair, err := svc.Login(ctx, user.Email, "password")
	require.NoError(t, err)
	oldClaims, err := svc.tokens.ParseRefreshToken(pair.RefreshToken)
	require.NoError(t, err)

	// Token encoding includes iat; force a different second so the
	// rotated strings differ.
	time.Sleep(1100 * time.Millisecond)

	rotated, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.AccessToken, rotated.AccessToken)
	assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	newClaims, err := svc.tokens.ParseRefreshToken(rotated.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, oldClaims.ID, newClaims.ID)
	assert.Equal(t, oldClaims.Subject, newClaims.Subject)

	// The consumed refresh token is no longer honored.
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.True(t, errors.Is(err, common.ErrorUnauthorized))
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	svc, _, user := newAuthFixture(t, newTestConfig())
	ctx := context.Background()

	pair, err := svc.Login(ctx, user.Email, "password")
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, pair.AccessToken)
	assert.True(t, errors.Is(err, common.ErrorUnauthorized))
}

func TestRefresh_RejectsRevokedToken(t *testing.T) {
	svc, _, user := newAuthFixture(t, newTestConfig())
	ctx := context.Background()

	pair, err := svc.Login(ctx, user.Email, "password")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, pair.AccessToken))

	// Cryptographically valid, but the registry entry is gone.
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.True(t, errors.Is(err, common.ErrorUnauthorized))
}

func TestLogout_RevokesBothHalves(t *testing.T) {
	svc, registry, user := newAuthFixture(t, newTestConfig())
	ctx := context.Background()

	pair, err := svc.Login(ctx, user.Email, "password")
	require.NoError(t, err)
	require.Len(t, registry.entries, 2)

	require.NoError(t, svc.Logout(ctx, pair.AccessToken))
	assert.Empty(t, registry.entries)

	// Second logout: signature still valid, session absent.
	err = svc.Logout(ctx, pair.AccessToken)
	assert.True(t, errors.Is(err, common.ErrorUnauthorized))
}

func TestLogout_RejectsRefreshToken(t *testing.T) {
	svc, _, user := newAuthFixture(t, newTestConfig())
	ctx := context.Background()

	pair, err := svc.Login(ctx, user.Email, "password")
	require.NoError(t, err)

	err = svc.Logout(ctx, pair.RefreshToken)
	assert.True(t, errors.Is(err, common.ErrorUnauthorized))
}

func TestLogout_AcceptsExpiredAccessToken(t *testing.T) {
	cfg := newTestConfig()
	cfg.AccessTokenValidityDuration = -time.Minute

	svc, registry, user := newAuthFixture(t, cfg)
	ctx := context.Background()

	pair, err := svc.Login(ctx, user.Email, "password")
	require.NoError(t, err)

	// Expired for verification purposes, but logout still clears the
	// session.
	_, err = svc.Verify(ctx, pair.AccessToken)
	require.Error(t, err)

	require.NoError(t, svc.Logout(ctx, pair.AccessToken))
	assert.Empty(t, registry.entries)
}

func TestVerify_Success(t *testing.T) {
	svc, _, user := newAuthFixture(t, newTestConfig())
	ctx := context.Background()

	pair, err := svc.Login(ctx, user.Email, "password")
	require.NoError(t, err)

	claims, err := svc.Verify(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.Subject)
}

func TestVerify_RejectsAfterLogout(t *testing.T) {
	svc, _, user := newAuthFixture(t, newTestConfig())
	ctx := context.Background()

	pair, err := svc.Login(ctx, user.Email, "password")
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx, pair.AccessToken))

	_, err = svc.Verify(ctx, pair.AccessToken)
	assert.True(t, errors.Is(err, common.ErrorUnauthorized))
}

func TestVerify_RejectsRefreshToken(t *testing.T) {
	svc, _, user := newAuthFixture(t, newTestConfig())
	ctx := context.Background()

	pair, err := svc.Login(ctx, user.Email, "password")
	require.NoError(t, err)

	_, err = svc.Verify(ctx, pair.RefreshToken)
	assert.True(t, errors.Is(err, common.ErrorUnauthorized))
}

func TestVerify_RegistryIsAuthoritative(t *testing.T) {
	svc, registry, user := newAuthFixture(t, newTestConfig())
	ctx := context.Background()

	pair, err := svc.Login(ctx, user.Email, "password")
	require.NoError(t, err)

	// Simulate early eviction: signature and exp still valid, entry gone.
	for key := range registry.entries {
		delete(registry.entries, key)
	}

	_, err = svc.Verify(ctx, pair.AccessToken)
	assert.True(t, errors.Is(err, common.ErrorUnauthorized))
}
