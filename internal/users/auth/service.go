// Copyright (c) 2026 Document Template Engine. All rights reserved.
// Author: a.velichko.dev@gmail.com

/*
Package auth implements identity and access management for the service.

It handles user registration with secure password hashing and session
lifecycle management via RSA-signed JWT access tokens plus rotated refresh
tokens stored in Redis.

Architecture:

  - Service: Orchestrates business logic (Register, Login, Refresh).
  - Repository: Abstracted interfaces for Postgres (Users) and Redis (Sessions).
  - Security: Bcrypt hashes, hashed refresh tokens, rotation on every refresh.
*/
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/document-template-engine/backend/internal/platform/apperr"
	"github.com/document-template-engine/backend/internal/platform/constants"
	"github.com/document-template-engine/backend/internal/platform/sec"
	"github.com/document-template-engine/backend/internal/platform/validate"
	uuidv7 "github.com/document-template-engine/backend/pkg/uuid"
)

// TokenProvider defines the contract for generating access tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	GenerateAccessToken(userID, email, role string, timeToLive time.Duration) (string, error)
}

// Service implements user authentication use cases.
type Service struct {
	userRepository    UserRepository
	sessionRepository SessionRepository
	tokenProvider     TokenProvider
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(userRepo UserRepository, sessionRepo SessionRepository, tokenProv TokenProvider) *Service {
	return &Service{
		userRepository:    userRepo,
		sessionRepository: sessionRepo,
		tokenProvider:     tokenProv,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new user.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

/*
Register validates, hashes, and persists a brand new user account.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - err: Validation, Conflict (if email exists) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	v := &validate.Validator{}
	err := v.
		Required("email", input.Email).
		Email("email", input.Email).
		Required("password", input.Password).
		MinLen("password", input.Password, 8).
		MaxLen("password", input.Password, 72).
		MaxLen("first_name", input.FirstName, 150).
		MaxLen("last_name", input.LastName, 150).
		Err()
	if err != nil {
		return nil, err
	}

	// Verify email uniqueness. Return a client-safe Conflict err.
	if _, err := service.userRepository.FindByEmail(context, input.Email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		ID:           uuidv7.New(),
		Email:        input.Email,
		PasswordHash: hashedPassword,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         sec.RoleUser,
		IsActive:     true,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	User                  *User     `json:"user"`
}

/*
Login validates user credentials and issues security tokens.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Transport-ready session identifiers
  - err: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	user, err := service.userRepository.FindByEmail(context, input.Email)

	// Generic message to prevent account enumeration.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	if !user.IsActive {
		return nil, apperr.Forbidden("Account is deactivated")
	}

	return service.issueSession(context, user)
}

/*
RefreshSession implements the refresh token rotation mechanism.

Description: Verifies the existing refresh token, deletes it to prevent
reuse, and issues a fresh pair of rotated tokens.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - *LoginSession: New session credentials
  - err: Unauthorized or storage failures
*/
func (service *Service) RefreshSession(context context.Context, refreshToken string) (*LoginSession, error) {
	tokenHash := sec.HashToken(refreshToken)

	userID, err := service.sessionRepository.Get(context, tokenHash)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	// Rotation: drop the old session so the token can never be replayed.
	if err := service.sessionRepository.Delete(context, tokenHash); err != nil {
		return nil, fmt.Errorf("auth_service_refresh_revoke_failed: %w", err)
	}

	user, err := service.userRepository.FindByID(context, userID)
	if err != nil || !user.IsActive {
		return nil, apperr.Unauthorized("User not found or suspended")
	}

	return service.issueSession(context, user)
}

/*
Logout revokes the user's active session. Logging out with an unknown token
is considered successful (idempotent operation).
*/
func (service *Service) Logout(context context.Context, refreshToken string) error {
	tokenHash := sec.HashToken(refreshToken)
	if err := service.sessionRepository.Delete(context, tokenHash); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}
	return nil
}

// Me returns the account of the authenticated user.
func (service *Service) Me(context context.Context, userID string) (*User, error) {
	return service.userRepository.FindByID(context, userID)
}

/*
ChangePassword allows an authenticated user to update their credentials
after proving knowledge of the current password.
*/
func (service *Service) ChangePassword(context context.Context, userID, currentPassword, newPassword string) error {
	v := &validate.Validator{}
	err := v.
		Required("new_password", newPassword).
		MinLen("new_password", newPassword, 8).
		MaxLen("new_password", newPassword, 72).
		Err()
	if err != nil {
		return err
	}

	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_change_password_hash_failed: %w", err)
	}

	if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_change_password_update_failed: %w", err)
	}

	return nil
}

// issueSession generates the access/refresh token pair and stores the
// session in Redis.
func (service *Service) issueSession(context context.Context, user *User) (*LoginSession, error) {
	accessToken, err := service.tokenProvider.GenerateAccessToken(
		user.ID, user.Email, string(user.Role), constants.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	refreshToken, err := sec.GenerateSecureToken(constants.RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	expiresAt := time.Now().Add(constants.RefreshTokenTTL)
	if err := service.sessionRepository.Set(context, sec.HashToken(refreshToken), user.ID, constants.RefreshTokenTTL); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
		User:                  user,
	}, nil
}
