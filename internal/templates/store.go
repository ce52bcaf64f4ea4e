// Copyright (c) 2026 Document Template Engine. All rights reserved.
// Author: a.velichko.dev@gmail.com

package templates

import (
	"context"

	"github.com/document-template-engine/backend/pkg/pagination"
)

// ListFilter narrows a template listing.
type ListFilter struct {
	// Search matches against the template name (case-insensitive substring).
	Search string

	// IncludeDeleted keeps soft-deleted templates in the listing.
	// Reserved for owner/admin views.
	IncludeDeleted bool

	// FavoritesOf restricts the listing to templates favorited by the given
	// account. Empty means no restriction.
	FavoritesOf string

	// ViewerID marks each returned template's Favorite flag for this account.
	ViewerID string
}

// Repository defines persistence operations for templates and their fields.
type Repository interface {
	// Create persists a template together with its field groups and fields
	// in a single transaction.
	Create(ctx context.Context, template *Template, groups []FieldGroup, fields []TemplateField) error

	// FindByID returns a template regardless of its deleted flag.
	FindByID(ctx context.Context, id string) (*Template, error)

	// List returns a page of templates and the total row count.
	List(ctx context.Context, filter ListFilter, params pagination.Params) ([]Template, int, error)

	// Fields returns the groups and fields of a template, both ordered by
	// position.
	Fields(ctx context.Context, templateID string) ([]FieldGroup, []TemplateField, error)

	// UpdateFile records the stored binary reference of a template.
	UpdateFile(ctx context.Context, id, fileName, fileID string) error

	// UpdatePreview records the stored preview image reference of a template.
	UpdatePreview(ctx context.Context, id, previewID string) error

	// SoftDelete marks a template deleted without removing its rows.
	SoftDelete(ctx context.Context, id string) error

	// AddFavorite marks a template as favorite for an account. Adding an
	// existing favorite is not an error.
	AddFavorite(ctx context.Context, accountID, templateID string) error

	// RemoveFavorite clears a favorite mark. Removing a missing favorite is
	// not an error.
	RemoveFavorite(ctx context.Context, accountID, templateID string) error
}
