// Copyright (c) 2026 Document Template Engine. All rights reserved.
// Author: a.velichko.dev@gmail.com

package dictionary

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/document-template-engine/backend/internal/platform/database/schema"
	"github.com/document-template-engine/backend/internal/platform/dberr"
)

// PostgresCategoryRepository implements CategoryRepository on the
// core.category table.
type PostgresCategoryRepository struct {
	db *pgxpool.Pool
}

// NewPostgresCategoryRepository creates a Postgres-backed CategoryRepository.
func NewPostgresCategoryRepository(db *pgxpool.Pool) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{db: db}
}

func (repository *PostgresCategoryRepository) List(context context.Context) ([]Category, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM %s
		ORDER BY %s ASC
	`,
		schema.CoreCategory.ID, schema.CoreCategory.Name,
		schema.CoreCategory.Table,
		schema.CoreCategory.Name,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "Category")
	}
	defer rows.Close()

	categories := []Category{}
	for rows.Next() {
		var category Category
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, dberr.Wrap(err, "Category")
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "Category")
	}

	return categories, nil
}

func (repository *PostgresCategoryRepository) FindByID(context context.Context, id string) (*Category, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.CoreCategory.ID, schema.CoreCategory.Name,
		schema.CoreCategory.Table,
		schema.CoreCategory.ID,
	)

	category := &Category{}
	err := repository.db.QueryRow(context, query, id).Scan(&category.ID, &category.Name)
	if err != nil {
		return nil, dberr.Wrap(err, "Category")
	}

	return category, nil
}

func (repository *PostgresCategoryRepository) Create(context context.Context, category *Category) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, $2)
	`,
		schema.CoreCategory.Table,
		schema.CoreCategory.ID, schema.CoreCategory.Name,
	)

	if _, err := repository.db.Exec(context, query, category.ID, category.Name); err != nil {
		return dberr.Wrap(err, "Category")
	}

	return nil
}
