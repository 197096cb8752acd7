// Package identity carries the authenticated user through request contexts.
// Workflows receive the caller explicitly instead of reading ambient
// session state.
package identity

import "context"

type ctxKey string

const userKey ctxKey = "identity_user"

// Role is the authorization role of a user
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User is the authenticated caller of a request
type User struct {
	ID    uint
	Name  string
	Email string
	Role  Role
}

// IsAdmin reports whether the user has the admin role
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// WithUser returns a context carrying the authenticated user
func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// FromContext retrieves the authenticated user, if any
func FromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userKey).(*User)
	return user, ok && user != nil
}
