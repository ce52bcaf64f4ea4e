// Copyright (c) 2026 Document Template Engine. All rights reserved.
// Author: a.velichko.dev@gmail.com

package auth

import (
	"context"
	"time"
)

// UserRepository is the persistent store of user accounts.
type UserRepository interface {
	// Create persists a new user.
	Create(context context.Context, user *User) error
	// FindByEmail returns the user with the given email.
	FindByEmail(context context.Context, email string) (*User, error)
	// FindByID returns the user with the given ID.
	FindByID(context context.Context, id string) (*User, error)
	// UpdatePassword replaces the stored password hash.
	UpdatePassword(context context.Context, id string, passwordHash string) error
}

// SessionRepository is the volatile store of refresh sessions.
//
// Sessions are keyed by the SHA-256 hash of the refresh token and expire
// automatically; revocation is deletion.
type SessionRepository interface {
	// Set stores tokenHash -> userID with a TTL.
	Set(context context.Context, tokenHash string, userID string, ttl time.Duration) error
	// Get returns the user ID for a token hash, or apperr.Unauthorized.
	Get(context context.Context, tokenHash string) (string, error)
	// Delete removes a session. Deleting a missing session is a no-op.
	Delete(context context.Context, tokenHash string) error
}
