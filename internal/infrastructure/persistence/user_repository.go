package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/poslite/backend/internal/domain/identity"
	"github.com/poslite/backend/internal/domain/shared"
	"github.com/poslite/backend/internal/infrastructure/docstore"
)

// UsersCollection is the document collection holding user accounts
const UsersCollection = "users"

// DocUserRepository implements identity.UserRepository on the document store
type DocUserRepository struct {
	coll docstore.Collection
}

// NewDocUserRepository creates a new DocUserRepository
func NewDocUserRepository(store docstore.Store) *DocUserRepository {
	return &DocUserRepository{coll: store.Collection(UsersCollection)}
}

// Create stores a new user and assigns its ID
func (r *DocUserRepository) Create(ctx context.Context, user *identity.User) error {
	id, err := r.coll.Insert(ctx, docstore.Document{
		"email":        user.Email,
		"name":         user.Name,
		"passwordHash": user.PasswordHash,
		"createdAt":    user.CreatedAt,
	})
	if err != nil {
		return shared.ErrStoreFailure
	}
	user.ID = id
	return nil
}

// FindByID finds a user by ID
func (r *DocUserRepository) FindByID(ctx context.Context, id string) (*identity.User, error) {
	doc, err := r.coll.Get(ctx, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNoDocument) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.ErrStoreFailure
	}
	return userFromDocument(doc), nil
}

// FindByEmail finds a user by normalized email
func (r *DocUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	docs, err := r.coll.Find(ctx, docstore.Eq("email", identity.NormalizeEmail(email)))
	if err != nil {
		return nil, shared.ErrStoreFailure
	}
	if len(docs) == 0 {
		return nil, shared.ErrNotFound
	}
	return userFromDocument(docs[0]), nil
}

// ExistsByEmail checks if an email is already registered
func (r *DocUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	docs, err := r.coll.Find(ctx, docstore.Eq("email", identity.NormalizeEmail(email)))
	if err != nil {
		return false, shared.ErrStoreFailure
	}
	return len(docs) > 0, nil
}

var _ identity.UserRepository = (*DocUserRepository)(nil)

func userFromDocument(doc docstore.Document) *identity.User {
	user := &identity.User{}
	user.ID, _ = doc["id"].(string)
	user.Email, _ = doc["email"].(string)
	user.Name, _ = doc["name"].(string)
	user.PasswordHash, _ = doc["passwordHash"].(string)
	if createdAt, ok := doc["createdAt"].(time.Time); ok {
		user.CreatedAt = createdAt
	}
	return user
}
