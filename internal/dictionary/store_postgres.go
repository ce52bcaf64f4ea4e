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

// PostgresFieldTypeRepository implements FieldTypeRepository on the
// core.fieldtype table.
type PostgresFieldTypeRepository struct {
	db *pgxpool.Pool
}

// NewPostgresFieldTypeRepository creates a Postgres-backed FieldTypeRepository.
func NewPostgresFieldTypeRepository(db *pgxpool.Pool) *PostgresFieldTypeRepository {
	return &PostgresFieldTypeRepository{db: db}
}

func (repository *PostgresFieldTypeRepository) List(context context.Context) ([]FieldType, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		ORDER BY %s ASC
	`,
		schema.CoreFieldType.ID, schema.CoreFieldType.Slug,
		schema.CoreFieldType.Name, schema.CoreFieldType.Mask,
		schema.CoreFieldType.Table,
		schema.CoreFieldType.Name,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "FieldType")
	}
	defer rows.Close()

	fieldTypes := []FieldType{}
	for rows.Next() {
		var fieldType FieldType
		err := rows.Scan(&fieldType.ID, &fieldType.Slug, &fieldType.Name, &fieldType.Mask)
		if err != nil {
			return nil, dberr.Wrap(err, "FieldType")
		}
		fieldTypes = append(fieldTypes, fieldType)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "FieldType")
	}

	return fieldTypes, nil
}

func (repository *PostgresFieldTypeRepository) FindByID(context context.Context, id string) (*FieldType, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.CoreFieldType.ID, schema.CoreFieldType.Slug,
		schema.CoreFieldType.Name, schema.CoreFieldType.Mask,
		schema.CoreFieldType.Table,
		schema.CoreFieldType.ID,
	)

	fieldType := &FieldType{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&fieldType.ID, &fieldType.Slug, &fieldType.Name, &fieldType.Mask,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "FieldType")
	}

	return fieldType, nil
}
