// Copyright (c) 2026 Document Template Engine. All rights reserved.
// Author: a.velichko.dev@gmail.com

package documents

import (
	"context"

	"github.com/document-template-engine/backend/pkg/pagination"
)

// ListFilter narrows a document listing.
type ListFilter struct {
	// OwnerID restricts the listing to one account's documents.
	OwnerID string

	// Search matches against the document name (case-insensitive substring).
	Search string

	// FavoritesOf restricts the listing to documents favorited by the given
	// account. Empty means no restriction.
	FavoritesOf string

	// ViewerID marks each returned document's Favorite flag for this account.
	ViewerID string
}

// Repository defines persistence operations for documents and their values.
type Repository interface {
	// Create persists a document with its field values in one transaction.
	Create(ctx context.Context, document *Document, fields []DocumentField) error

	// FindByID returns a single document.
	FindByID(ctx context.Context, id string) (*Document, error)

	// List returns a page of documents and the total row count.
	List(ctx context.Context, filter ListFilter, params pagination.Params) ([]Document, int, error)

	// Fields returns the stored field values of a document.
	Fields(ctx context.Context, documentID string) ([]DocumentField, error)

	// Update rewrites the document row and, when fields is non-nil,
	// replaces the stored field values in the same transaction.
	Update(ctx context.Context, document *Document, fields []DocumentField) error

	// Delete removes the document and its field values.
	Delete(ctx context.Context, id string) error

	// AddFavorite marks a document as favorite for an account. Idempotent.
	AddFavorite(ctx context.Context, accountID, documentID string) error

	// RemoveFavorite clears a favorite mark. Idempotent.
	RemoveFavorite(ctx context.Context, accountID, documentID string) error
}
