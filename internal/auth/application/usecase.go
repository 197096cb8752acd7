package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"bookstore/internal/auth/domain"
	"bookstore/internal/auth/ports"
	"bookstore/pkg/errors"
	"bookstore/pkg/identity"
	"bookstore/pkg/logger"
)

// AuthUseCase handles account and session business logic
type AuthUseCase struct {
	users      ports.UserRepository
	sessions   ports.SessionRepository
	sessionTTL time.Duration
	log        *logger.Logger
}

// NewAuthUseCase creates a new auth use case
func NewAuthUseCase(
	users ports.UserRepository,
	sessions ports.SessionRepository,
	sessionTTL time.Duration,
	log *logger.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		users:      users,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		log:        log,
	}
}

// RegisterInput represents the input for registering a user
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates a new user account
func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if len(input.Password) < 8 {
		return nil, domain.ErrPasswordTooShort
	}

	user, err := domain.NewUser(input.Name, input.Email)
	if err != nil {
		return nil, err
	}

	existing, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.NewInternal("failed to hash password", err)
	}
	user.PasswordHash = string(hash)

	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}

	uc.log.WithContext(ctx).Info("user registered",
		zap.Uint("user_id", user.ID),
		zap.String("email", user.Email),
	)

	return user, nil
}

// LoginInput represents the input for logging in
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput carries the session token and the logged-in user
type LoginOutput struct {
	Token string
	User  *domain.User
}

// Login verifies credentials and opens a session
func (uc *AuthUseCase) Login(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	user, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	session := &domain.Session{
		Token:     uuid.New().String(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(uc.sessionTTL),
		CreatedAt: time.Now(),
	}
	if err := uc.sessions.Create(ctx, session); err != nil {
		return nil, errors.NewInternal("failed to create session", err)
	}

	uc.log.WithContext(ctx).Info("user logged in", zap.Uint("user_id", user.ID))

	return &LoginOutput{Token: session.Token, User: user}, nil
}

// Logout invalidates a session token
func (uc *AuthUseCase) Logout(ctx context.Context, token string) error {
	return uc.sessions.Delete(ctx, token)
}

// GetUser retrieves a user by ID
func (uc *AuthUseCase) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	return uc.users.GetByID(ctx, id)
}

// UserFromToken resolves a session token to the authenticated identity.
// Implements middleware.SessionValidator.
func (uc *AuthUseCase) UserFromToken(ctx context.Context, token string) (*identity.User, error) {
	if token == "" {
		return nil, domain.ErrSessionInvalid
	}

	session, err := uc.sessions.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if session.Expired(time.Now()) {
		_ = uc.sessions.Delete(ctx, token)
		return nil, domain.ErrSessionInvalid
	}

	user, err := uc.users.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	return user.Identity(), nil
}
