package ports

import (
	"context"

	"bookstore/internal/auth/domain"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uint) (*domain.User, error)

	// GetByEmail retrieves a user by email, nil when absent
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// SessionRepository defines the interface for session persistence
type SessionRepository interface {
	// Create stores a new session
	Create(ctx context.Context, session *domain.Session) error

	// GetByToken retrieves a session by token
	GetByToken(ctx context.Context, token string) (*domain.Session, error)

	// Delete removes a session by token
	Delete(ctx context.Context, token string) error
}
