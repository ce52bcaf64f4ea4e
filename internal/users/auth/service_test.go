// Copyright (c) 2026 Document Template Engine. All rights reserved.
// Author: a.velichko.dev@gmail.com

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/document-template-engine/backend/internal/platform/apperr"
	"github.com/document-template-engine/backend/internal/users/auth"
)

// # Test Doubles

// fakeUserRepository is an in-memory auth.UserRepository.
type fakeUserRepository struct {
	byID    map[string]*auth.User
	byEmail map[string]*auth.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		byID:    map[string]*auth.User{},
		byEmail: map[string]*auth.User{},
	}
}

func (f *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	copied := *user
	f.byID[user.ID] = &copied
	f.byEmail[user.Email] = &copied
	return nil
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepository) UpdatePassword(_ context.Context, id, passwordHash string) error {
	user, ok := f.byID[id]
	if !ok {
		return apperr.NotFound("User")
	}
	user.PasswordHash = passwordHash
	return nil
}

// fakeSessionRepository is an in-memory auth.SessionRepository.
type fakeSessionRepository struct {
	sessions map[string]string
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{sessions: map[string]string{}}
}

func (f *fakeSessionRepository) Set(_ context.Context, tokenHash, userID string, _ time.Duration) error {
	f.sessions[tokenHash] = userID
	return nil
}

func (f *fakeSessionRepository) Get(_ context.Context, tokenHash string) (string, error) {
	userID, ok := f.sessions[tokenHash]
	if !ok {
		return "", apperr.Unauthorized("Invalid or expired refresh token")
	}
	return userID, nil
}

func (f *fakeSessionRepository) Delete(_ context.Context, tokenHash string) error {
	delete(f.sessions, tokenHash)
	return nil
}

// fakeTokenProvider issues predictable access tokens.
type fakeTokenProvider struct{}

func (fakeTokenProvider) GenerateAccessToken(userID, _, _ string, _ time.Duration) (string, error) {
	return "access-" + userID, nil
}

// # Fixtures

func newService(t *testing.T) (*auth.Service, *fakeSessionRepository) {
	t.Helper()
	sessions := newFakeSessionRepository()
	service := auth.NewService(newFakeUserRepository(), sessions, fakeTokenProvider{})
	return service, sessions
}

func register(t *testing.T, service *auth.Service) *auth.User {
	t.Helper()
	user, err := service.Register(context.Background(), auth.RegisterInput{
		Email:     "user@example.com",
		Password:  "correct horse",
		FirstName: "Иван",
		LastName:  "Иванов",
	})
	require.NoError(t, err)
	return user
}

// # Registration

func TestService_Register(t *testing.T) {
	service, _ := newService(t)

	user := register(t, service)

	assert.NotEmpty(t, user.ID)
	assert.True(t, user.IsActive)
	// The password is stored only as a bcrypt hash.
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "correct horse", user.PasswordHash)
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	service, _ := newService(t)
	register(t, service)

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Email:    "user@example.com",
		Password: "another pass",
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

func TestService_Register_Validation(t *testing.T) {
	service, _ := newService(t)

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Email:    "not-an-email",
		Password: "short",
	})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
}

// # Login

func TestService_Login(t *testing.T) {
	service, _ := newService(t)
	user := register(t, service)

	session, err := service.Login(context.Background(), auth.LoginInput{
		Email:    "user@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	assert.Equal(t, "access-"+user.ID, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)
	assert.True(t, session.RefreshTokenExpiresAt.After(time.Now()))
	assert.Equal(t, user.ID, session.User.ID)
}

// Wrong email and wrong password produce the same generic message.
func TestService_Login_InvalidCredentials(t *testing.T) {
	service, _ := newService(t)
	register(t, service)

	_, badEmail := service.Login(context.Background(), auth.LoginInput{
		Email: "missing@example.com", Password: "correct horse"})
	_, badPassword := service.Login(context.Background(), auth.LoginInput{
		Email: "user@example.com", Password: "wrong"})

	require.Error(t, badEmail)
	require.Error(t, badPassword)
	assert.Equal(t, badEmail.Error(), badPassword.Error())
}

// # Refresh Rotation

func TestService_RefreshSession_RotatesToken(t *testing.T) {
	service, _ := newService(t)
	register(t, service)

	session, err := service.Login(context.Background(), auth.LoginInput{
		Email: "user@example.com", Password: "correct horse"})
	require.NoError(t, err)

	rotated, err := service.RefreshSession(context.Background(), session.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, session.RefreshToken, rotated.RefreshToken)

	// The old token died with the rotation.
	_, err = service.RefreshSession(context.Background(), session.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	// The rotated token still works.
	_, err = service.RefreshSession(context.Background(), rotated.RefreshToken)
	assert.NoError(t, err)
}

func TestService_RefreshSession_UnknownToken(t *testing.T) {
	service, _ := newService(t)

	_, err := service.RefreshSession(context.Background(), "never-issued")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}

// # Logout

func TestService_Logout(t *testing.T) {
	service, sessions := newService(t)
	register(t, service)

	session, err := service.Login(context.Background(), auth.LoginInput{
		Email: "user@example.com", Password: "correct horse"})
	require.NoError(t, err)
	require.Len(t, sessions.sessions, 1)

	require.NoError(t, service.Logout(context.Background(), session.RefreshToken))
	assert.Empty(t, sessions.sessions)

	// Logging out twice is not an error.
	assert.NoError(t, service.Logout(context.Background(), session.RefreshToken))
}

// # Password Change

func TestService_ChangePassword(t *testing.T) {
	service, _ := newService(t)
	user := register(t, service)

	err := service.ChangePassword(context.Background(), user.ID, "wrong", "new password 1")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	err = service.ChangePassword(context.Background(), user.ID, "correct horse", "new password 1")
	require.NoError(t, err)

	_, err = service.Login(context.Background(), auth.LoginInput{
		Email: "user@example.com", Password: "new password 1"})
	assert.NoError(t, err)
}
