package identity

import (
	"time"
)

// RegisterInput contains the data required to register a new account
type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

// LoginInput contains login credentials
type LoginInput struct {
	Email    string
	Password string
}

// RefreshTokenInput contains the refresh token to exchange
type RefreshTokenInput struct {
	RefreshToken string
}

// LogoutInput identifies the session being terminated
type LogoutInput struct {
	UserID      string
	TokenJTI    string
	TokenTTL    time.Duration
	AllSessions bool
}

// GetCurrentUserInput identifies the user to look up
type GetCurrentUserInput struct {
	UserID string
}

// UserInfo is the user representation returned by auth operations
type UserInfo struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// TokenInfo carries an issued token pair
type TokenInfo struct {
	AccessToken           string    `json:"accessToken"`
	RefreshToken          string    `json:"refreshToken"`
	AccessTokenExpiresAt  time.Time `json:"accessTokenExpiresAt"`
	RefreshTokenExpiresAt time.Time `json:"refreshTokenExpiresAt"`
	TokenType             string    `json:"tokenType"`
}

// AuthResult is returned by Register and Login
type AuthResult struct {
	Token TokenInfo `json:"token"`
	User  UserInfo  `json:"user"`
}

// RefreshTokenResult is returned by RefreshToken
type RefreshTokenResult struct {
	Token TokenInfo `json:"token"`
}

// CurrentUserResult is returned by GetCurrentUser
type CurrentUserResult struct {
	User UserInfo `json:"user"`
}
