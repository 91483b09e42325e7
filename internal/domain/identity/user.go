package identity

import (
	"context"
	"strings"
	"time"

	"github.com/poslite/backend/internal/domain/shared"
)

// User is an account that owns outlets, categories, products and customers.
// Its ID is the tenant boundary for all owned documents.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

// NewUser creates a user with a normalized email
func NewUser(email, name, passwordHash string) (*User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Email is required")
	}
	if passwordHash == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Password hash is required")
	}

	return &User{
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// NormalizeEmail lowercases and trims an email address for lookups
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Create stores a new user and assigns its ID
	Create(ctx context.Context, user *User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail finds a user by normalized email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// ExistsByEmail checks if an email is already registered
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
