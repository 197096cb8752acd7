package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore/internal/auth/domain"
	apperrors "bookstore/pkg/errors"
	"bookstore/pkg/identity"
	"bookstore/pkg/logger"
)

type fakeUserRepository struct {
	users  map[uint]*domain.User
	nextID uint
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[uint]*domain.User), nextID: 1}
}

func (f *fakeUserRepository) Create(_ context.Context, user *domain.User) error {
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepository) GetByID(_ context.Context, id uint) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, domain.NewUserNotFound(id)
	}
	return user, nil
}

func (f *fakeUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

type fakeSessionRepository struct {
	sessions map[string]*domain.Session
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{sessions: make(map[string]*domain.Session)}
}

func (f *fakeSessionRepository) Create(_ context.Context, session *domain.Session) error {
	f.sessions[session.Token] = session
	return nil
}

func (f *fakeSessionRepository) GetByToken(_ context.Context, token string) (*domain.Session, error) {
	session, ok := f.sessions[token]
	if !ok {
		return nil, domain.ErrSessionInvalid
	}
	return session, nil
}

func (f *fakeSessionRepository) Delete(_ context.Context, token string) error {
	delete(f.sessions, token)
	return nil
}

func newAuthTestUseCase(users *fakeUserRepository, sessions *fakeSessionRepository) *AuthUseCase {
	return NewAuthUseCase(users, sessions, time.Hour, logger.New("auth-test", "error"))
}

func registerTestUser(t *testing.T, uc *AuthUseCase) *domain.User {
	t.Helper()
	user, err := uc.Register(context.Background(), RegisterInput{
		Name:     "Nguyen Van A",
		Email:    "a@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	return user
}

func TestRegisterHashesPassword(t *testing.T) {
	users := newFakeUserRepository()
	uc := newAuthTestUseCase(users, newFakeSessionRepository())

	user := registerTestUser(t, uc)

	stored := users.users[user.ID]
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotEqual(t, "correct-horse", stored.PasswordHash)
	assert.Equal(t, identity.RoleUser, stored.Role)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	uc := newAuthTestUseCase(newFakeUserRepository(), newFakeSessionRepository())

	_, err := uc.Register(context.Background(), RegisterInput{
		Name:     "Nguyen Van A",
		Email:    "a@example.com",
		Password: "short",
	})
	assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	uc := newAuthTestUseCase(newFakeUserRepository(), newFakeSessionRepository())
	registerTestUser(t, uc)

	_, err := uc.Register(context.Background(), RegisterInput{
		Name:     "Nguyen Van B",
		Email:    "a@example.com",
		Password: "another-pass",
	})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestLoginReturnsSessionToken(t *testing.T) {
	users := newFakeUserRepository()
	sessions := newFakeSessionRepository()
	uc := newAuthTestUseCase(users, sessions)
	registerTestUser(t, uc)

	output, err := uc.Login(context.Background(), LoginInput{Email: "a@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	assert.NotEmpty(t, output.Token)
	assert.Contains(t, sessions.sessions, output.Token)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	uc := newAuthTestUseCase(newFakeUserRepository(), newFakeSessionRepository())
	registerTestUser(t, uc)

	_, err := uc.Login(context.Background(), LoginInput{Email: "a@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	uc := newAuthTestUseCase(newFakeUserRepository(), newFakeSessionRepository())

	_, err := uc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestUserFromTokenResolvesIdentity(t *testing.T) {
	uc := newAuthTestUseCase(newFakeUserRepository(), newFakeSessionRepository())
	user := registerTestUser(t, uc)

	output, err := uc.Login(context.Background(), LoginInput{Email: "a@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	caller, err := uc.UserFromToken(context.Background(), output.Token)
	require.NoError(t, err)

	assert.Equal(t, user.ID, caller.ID)
	assert.Equal(t, identity.RoleUser, caller.Role)
}

func TestUserFromTokenRejectsExpiredSession(t *testing.T) {
	sessions := newFakeSessionRepository()
	uc := newAuthTestUseCase(newFakeUserRepository(), sessions)
	registerTestUser(t, uc)

	output, err := uc.Login(context.Background(), LoginInput{Email: "a@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	sessions.sessions[output.Token].ExpiresAt = time.Now().Add(-time.Minute)

	_, err = uc.UserFromToken(context.Background(), output.Token)
	assert.True(t, apperrors.Is(err, apperrors.CodeUnauthorized))
	// Expired sessions are purged on first use
	assert.NotContains(t, sessions.sessions, output.Token)
}

func TestLogoutInvalidatesToken(t *testing.T) {
	sessions := newFakeSessionRepository()
	uc := newAuthTestUseCase(newFakeUserRepository(), sessions)
	registerTestUser(t, uc)

	output, err := uc.Login(context.Background(), LoginInput{Email: "a@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	require.NoError(t, uc.Logout(context.Background(), output.Token))

	_, err = uc.UserFromToken(context.Background(), output.Token)
	assert.Error(t, err)
}
