package handler

// =====================
// Auth Request DTOs
// =====================

// RegisterRequest represents the request body for account registration
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=254"`
	Name     string `json:"name" binding:"required,min=1,max=200"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// LoginRequest represents the request body for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest represents the request body for token refresh
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// LogoutRequest represents the optional request body for logout
type LogoutRequest struct {
	AllSessions bool `json:"allSessions"`
}

// =====================
// Auth Response DTOs
// =====================

// LogoutResponse represents the response body for logout
type LogoutResponse struct {
	Message string `json:"message"`
}
