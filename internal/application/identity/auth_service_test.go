package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/poslite/backend/internal/domain/shared"
	"github.com/poslite/backend/internal/infrastructure/auth"
	"github.com/poslite/backend/internal/infrastructure/config"
	"github.com/poslite/backend/internal/infrastructure/docstore"
	"github.com/poslite/backend/internal/infrastructure/persistence"
)

func newTestAuthService(t *testing.T) (*AuthService, *auth.InMemoryTokenBlacklist) {
	t.Helper()

	store := docstore.NewMemoryStore()
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-32-characters-long",
		RefreshSecret:          "test-refresh-key-32-characters-long",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "test",
		MaxRefreshCount:        3,
	})
	blacklist := auth.NewInMemoryTokenBlacklist()
	repo := persistence.NewDocUserRepository(store)

	return NewAuthService(repo, jwtService, blacklist, zap.NewNop()), blacklist
}

func domainCode(t *testing.T, err error) string {
	t.Helper()

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr), "expected domain error, got %v", err)
	return domainErr.Code
}

func TestAuthServiceRegisterAndLogin(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterInput{
		Email:    "  Alice@Example.COM ",
		Name:     "Alice",
		Password: "s3cret-password",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", registered.User.Email)
	assert.NotEmpty(t, registered.Token.AccessToken)
	assert.NotEmpty(t, registered.Token.RefreshToken)
	assert.Equal(t, "Bearer", registered.Token.TokenType)

	loggedIn, err := svc.Login(ctx, LoginInput{
		Email:    "alice@example.com",
		Password: "s3cret-password",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)
}

func TestAuthServiceRegisterRejectsDuplicate(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "alice@example.com", Name: "Alice", Password: "s3cret-password"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Email: "ALICE@example.com", Name: "Clone", Password: "other-password"})
	require.Error(t, err)
	assert.Equal(t, "EMAIL_TAKEN", domainCode(t, err))
}

func TestAuthServiceLoginFailuresAreUniform(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "alice@example.com", Name: "Alice", Password: "s3cret-password"})
	require.NoError(t, err)

	_, badPass := svc.Login(ctx, LoginInput{Email: "alice@example.com", Password: "wrong"})
	require.Error(t, badPass)
	_, badEmail := svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "s3cret-password"})
	require.Error(t, badEmail)

	assert.Equal(t, "INVALID_CREDENTIALS", domainCode(t, badPass))
	assert.Equal(t, "INVALID_CREDENTIALS", domainCode(t, badEmail))
	assert.Equal(t, badPass.Error(), badEmail.Error())
}

func TestAuthServiceRefreshToken(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterInput{Email: "alice@example.com", Name: "Alice", Password: "s3cret-password"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: registered.Token.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.Token.AccessToken)
	assert.NotEqual(t, registered.Token.RefreshToken, refreshed.Token.RefreshToken)

	_, err = svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: "garbage"})
	require.Error(t, err)
	assert.Equal(t, "TOKEN_INVALID", domainCode(t, err))
}

func TestAuthServiceRefreshRejectsRevokedToken(t *testing.T) {
	svc, blacklist := newTestAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterInput{Email: "alice@example.com", Name: "Alice", Password: "s3cret-password"})
	require.NoError(t, err)

	// Revoke the refresh token's jti directly
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-32-characters-long",
		RefreshSecret:          "test-refresh-key-32-characters-long",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "test",
		MaxRefreshCount:        3,
	})
	claims, err := jwtService.ValidateRefreshToken(registered.Token.RefreshToken)
	require.NoError(t, err)
	require.NoError(t, blacklist.Revoke(ctx, claims.ID, time.Hour))

	_, err = svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: registered.Token.RefreshToken})
	require.Error(t, err)
	assert.Equal(t, "TOKEN_REVOKED", domainCode(t, err))
}

func TestAuthServiceLogoutRevokes(t *testing.T) {
	svc, blacklist := newTestAuthService(t)
	ctx := context.Background()

	err := svc.Logout(ctx, LogoutInput{
		UserID:   "user-1",
		TokenJTI: "jti-1",
		TokenTTL: time.Hour,
	})
	require.NoError(t, err)

	revoked, err := blacklist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestAuthServiceGetCurrentUser(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterInput{Email: "alice@example.com", Name: "Alice", Password: "s3cret-password"})
	require.NoError(t, err)

	result, err := svc.GetCurrentUser(ctx, GetCurrentUserInput{UserID: registered.User.ID})
	require.NoError(t, err)
	assert.Equal(t, "Alice", result.User.Name)

	_, err = svc.GetCurrentUser(ctx, GetCurrentUserInput{UserID: "missing"})
	require.Error(t, err)
	assert.Equal(t, "USER_NOT_FOUND", domainCode(t, err))
}
