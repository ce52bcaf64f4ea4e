// Copyright (c) 2026 Document Template Engine. All rights reserved.
// Author: a.velichko.dev@gmail.com

package sec

// UserRole identifies the permission tier of an account.
type UserRole string

const (
	// RoleUser is a regular authenticated account: owns documents,
	// fills templates, manages favorites.
	RoleUser UserRole = "user"

	// RoleAdmin manages the template catalogue: uploads template files,
	// runs consistency checks, sees soft-deleted templates.
	RoleAdmin UserRole = "admin"
)

// Valid reports whether the role is one of the known tiers.
func (r UserRole) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// IsAdmin reports whether the role grants catalogue management rights.
func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}
