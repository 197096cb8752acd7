package domain

import (
	"regexp"
	"time"

	"bookstore/pkg/identity"
)

// User represents the account domain entity
type User struct {
	ID           uint
	Name         string
	Email        string
	PasswordHash string
	Role         identity.Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EmailRegex is the pattern for validating emails
var EmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Validate validates the user entity
func (u *User) Validate() error {
	if u.Name == "" {
		return ErrNameRequired
	}
	if len(u.Name) < 2 || len(u.Name) > 100 {
		return ErrNameLength
	}
	if u.Email == "" {
		return ErrEmailRequired
	}
	if !EmailRegex.MatchString(u.Email) {
		return ErrEmailInvalid
	}
	return nil
}

// NewUser creates a new user with validation
func NewUser(name, email string) (*User, error) {
	user := &User{
		Name:      name,
		Email:     email,
		Role:      identity.RoleUser,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Identity returns the identity view of the user
func (u *User) Identity() *identity.User {
	return &identity.User{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

// Session is a bearer-token login session
type Session struct {
	Token     string
	UserID    uint
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session has expired at the given time
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
