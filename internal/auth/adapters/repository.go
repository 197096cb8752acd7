package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"bookstore/internal/auth/domain"
	apperrors "bookstore/pkg/errors"
	"bookstore/pkg/identity"
)

// UserModel is the GORM model for users
type UserModel struct {
	ID           uint          `gorm:"primaryKey"`
	Name         string        `gorm:"size:100;not null"`
	Email        string        `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string        `gorm:"size:100;not null"`
	Role         identity.Role `gorm:"size:20;not null;default:'USER'"`
	CreatedAt    time.Time     `gorm:"autoCreateTime"`
	UpdatedAt    time.Time     `gorm:"autoUpdateTime"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// SessionModel is the GORM model for login sessions
type SessionModel struct {
	Token     string    `gorm:"primaryKey;size:64"`
	UserID    uint      `gorm:"index;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName returns the table name for GORM
func (SessionModel) TableName() string {
	return "sessions"
}

// PostgresAuthRepository implements the auth repositories using PostgreSQL
type PostgresAuthRepository struct {
	db *gorm.DB
}

// NewPostgresAuthRepository creates a new PostgreSQL auth repository
func NewPostgresAuthRepository(db *gorm.DB) *PostgresAuthRepository {
	return &PostgresAuthRepository{db: db}
}

// Migrate runs auto-migration for the auth models
func (r *PostgresAuthRepository) Migrate() error {
	return r.db.AutoMigrate(&UserModel{}, &SessionModel{})
}

// Create creates a new user
func (r *PostgresAuthRepository) Create(ctx context.Context, user *domain.User) error {
	model := toUserModel(user)

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domain.ErrEmailTaken
		}
		return apperrors.NewInternal("failed to create user", result.Error)
	}

	user.ID = model.ID
	user.CreatedAt = model.CreatedAt
	user.UpdatedAt = model.UpdatedAt

	return nil
}

// GetByID retrieves a user by ID
func (r *PostgresAuthRepository) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	var model UserModel

	result := r.db.WithContext(ctx).First(&model, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.NewUserNotFound(id)
		}
		return nil, apperrors.NewInternal("failed to get user", result.Error)
	}

	return toUserDomain(&model), nil
}

// GetByEmail retrieves a user by email, nil when absent
func (r *PostgresAuthRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var model UserModel

	result := r.db.WithContext(ctx).Where("email = ?", email).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.NewInternal("failed to get user by email", result.Error)
	}

	return toUserDomain(&model), nil
}

// SessionRepo exposes the session repository backed by the same connection
func (r *PostgresAuthRepository) SessionRepo() *PostgresSessionRepository {
	return &PostgresSessionRepository{db: r.db}
}

// PostgresSessionRepository implements SessionRepository using PostgreSQL
type PostgresSessionRepository struct {
	db *gorm.DB
}

// Create stores a new session
func (r *PostgresSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	model := &SessionModel{
		Token:     session.Token,
		UserID:    session.UserID,
		ExpiresAt: session.ExpiresAt,
		CreatedAt: session.CreatedAt,
	}

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		return apperrors.NewInternal("failed to create session", result.Error)
	}
	return nil
}

// GetByToken retrieves a session by token
func (r *PostgresSessionRepository) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	var model SessionModel

	result := r.db.WithContext(ctx).Where("token = ?", token).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSessionInvalid
		}
		return nil, apperrors.NewInternal("failed to get session", result.Error)
	}

	return &domain.Session{
		Token:     model.Token,
		UserID:    model.UserID,
		ExpiresAt: model.ExpiresAt,
		CreatedAt: model.CreatedAt,
	}, nil
}

// Delete removes a session by token
func (r *PostgresSessionRepository) Delete(ctx context.Context, token string) error {
	result := r.db.WithContext(ctx).Delete(&SessionModel{}, "token = ?", token)
	if result.Error != nil {
		return apperrors.NewInternal("failed to delete session", result.Error)
	}
	return nil
}

// toUserModel converts a domain entity to a GORM model
func toUserModel(user *domain.User) *UserModel {
	return &UserModel{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

// toUserDomain converts a GORM model to a domain entity
func toUserDomain(model *UserModel) *domain.User {
	return &domain.User{
		ID:           model.ID,
		Name:         model.Name,
		Email:        model.Email,
		PasswordHash: model.PasswordHash,
		Role:         model.Role,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}
