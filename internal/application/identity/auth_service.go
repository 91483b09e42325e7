package identity

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/poslite/backend/internal/domain/identity"
	"github.com/poslite/backend/internal/domain/shared"
	"github.com/poslite/backend/internal/infrastructure/auth"
)

// AuthService handles account registration and authentication
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// Register creates a new account and returns an initial token pair
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := identity.NormalizeEmail(input.Email)

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		s.logger.Error("Failed to check email availability", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to register account")
	}
	if exists {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "An account with this email already exists")
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to register account")
	}

	user, err := identity.NewUser(email, input.Name, hash)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to register account")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID),
		zap.String("email", user.Email))

	return &AuthResult{
		Token: tokenInfo(tokenPair),
		User:  userInfo(user),
	}, nil
}

// Login authenticates a user and returns a token pair.
// Unknown email and wrong password produce the same error so the
// response does not reveal which accounts exist.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	email := identity.NormalizeEmail(input.Email)

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Login attempt for unknown email", zap.String("email", email))
			return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
		}
		s.logger.Error("Failed to look up user during login", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to log in")
	}

	if err := auth.VerifyPassword(user.PasswordHash, input.Password); err != nil {
		s.logger.Warn("Invalid password attempt", zap.String("user_id", user.ID))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID))

	return &AuthResult{
		Token: tokenInfo(tokenPair),
		User:  userInfo(user),
	}, nil
}

// RefreshToken exchanges a valid refresh token for a new token pair
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (*RefreshTokenResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		return nil, mapTokenError(err)
	}

	if s.blacklist != nil {
		revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
		if err != nil {
			s.logger.Error("Blacklist check failed during refresh", zap.Error(err))
		} else if revoked {
			return nil, shared.NewDomainError("TOKEN_REVOKED", "Refresh token has been revoked")
		}
	}

	// The user must still exist before issuing fresh tokens
	if _, err := s.userRepo.FindByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Token refresh for unknown user", zap.String("user_id", claims.UserID))
			return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
		}
		s.logger.Error("Failed to look up user during refresh", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to refresh token")
	}

	tokenPair, err := s.jwtService.RefreshTokenPair(input.RefreshToken)
	if err != nil {
		s.logger.Warn("Token refresh failed", zap.Error(err))
		return nil, mapTokenError(err)
	}

	s.logger.Info("Token refreshed", zap.String("user_id", claims.UserID))

	return &RefreshTokenResult{Token: tokenInfo(tokenPair)}, nil
}

// Logout revokes the current access token. With AllSessions set, every
// token issued to the user before now is revoked as well.
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if s.blacklist == nil {
		return nil
	}

	if err := s.blacklist.Revoke(ctx, input.TokenJTI, input.TokenTTL); err != nil {
		s.logger.Error("Failed to revoke token",
			zap.String("user_id", input.UserID),
			zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to log out")
	}

	if input.AllSessions {
		ttl := s.jwtService.GetRefreshTokenExpiration()
		if err := s.blacklist.RevokeAllForUser(ctx, input.UserID, ttl); err != nil {
			s.logger.Error("Failed to revoke user sessions",
				zap.String("user_id", input.UserID),
				zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to log out")
		}
	}

	s.logger.Info("User logged out",
		zap.String("user_id", input.UserID),
		zap.Bool("all_sessions", input.AllSessions))

	return nil
}

// GetCurrentUser retrieves the authenticated user's profile
func (s *AuthService) GetCurrentUser(ctx context.Context, input GetCurrentUserInput) (*CurrentUserResult, error) {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
		}
		s.logger.Error("Failed to look up current user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load user")
	}

	return &CurrentUserResult{User: userInfo(user)}, nil
}

func mapTokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
	case errors.Is(err, auth.ErrMaxRefreshExceeded):
		return shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please log in again")
	default:
		return shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	}
}

func tokenInfo(pair *auth.TokenPair) TokenInfo {
	return TokenInfo{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
	}
}

func userInfo(user *identity.User) UserInfo {
	return UserInfo{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
}
