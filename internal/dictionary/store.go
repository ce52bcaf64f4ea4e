// Copyright (c) 2026 Document Template Engine. All rights reserved.
// Author: a.velichko.dev@gmail.com

package dictionary

import "context"

// FieldTypeRepository defines persistence operations for the field type
// vocabulary.
type FieldTypeRepository interface {
	// List returns every registered field type ordered by name.
	List(ctx context.Context) ([]FieldType, error)

	// FindByID returns a single field type or a NotFound error.
	FindByID(ctx context.Context, id string) (*FieldType, error)
}

// CategoryRepository defines persistence operations for template categories.
type CategoryRepository interface {
	// List returns every category ordered by name.
	List(ctx context.Context) ([]Category, error)

	// FindByID returns a single category or a NotFound error.
	FindByID(ctx context.Context, id string) (*Category, error)

	// Create persists a new category. A duplicate name is a Conflict error.
	Create(ctx context.Context, category *Category) error
}
