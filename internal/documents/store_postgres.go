// Copyright (c) 2026 Document Template Engine. All rights reserved.
// Author: a.velichko.dev@gmail.com

package documents

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/document-template-engine/backend/internal/platform/database/schema"
	"github.com/document-template-engine/backend/internal/platform/dberr"
	"github.com/document-template-engine/backend/pkg/pagination"
	uuidv7 "github.com/document-template-engine/backend/pkg/uuid"
)

// PostgresRepository implements Repository on the core.document tables.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a Postgres-backed document Repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Create(context context.Context, document *Document, fields []DocumentField) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "Document")
	}
	defer tx.Rollback(context)

	now := time.Now().UTC()
	document.CreatedAt = now
	document.UpdatedAt = now

	documentQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		schema.CoreDocument.Table,
		schema.CoreDocument.ID, schema.CoreDocument.TemplateID, schema.CoreDocument.OwnerID,
		schema.CoreDocument.Name, schema.CoreDocument.Completed,
		schema.CoreDocument.CreatedAt, schema.CoreDocument.UpdatedAt,
	)

	_, err = tx.Exec(context, documentQuery,
		document.ID, document.TemplateID, document.OwnerID,
		document.Name, document.Completed,
		document.CreatedAt, document.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Document")
	}

	fieldQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
	`,
		schema.CoreDocumentField.Table,
		schema.CoreDocumentField.ID, schema.CoreDocumentField.DocumentID,
		schema.CoreDocumentField.TemplateFieldID, schema.CoreDocumentField.Value,
	)

	for index := range fields {
		fields[index].DocumentID = document.ID
		_, err = tx.Exec(context, fieldQuery,
			fields[index].ID, fields[index].DocumentID,
			fields[index].TemplateFieldID, fields[index].Value,
		)
		if err != nil {
			return dberr.Wrap(err, "DocumentField")
		}
	}

	if err := tx.Commit(context); err != nil {
		return dberr.Wrap(err, "Document")
	}

	return nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Document, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.CoreDocument.ID, schema.CoreDocument.TemplateID, schema.CoreDocument.OwnerID,
		schema.CoreDocument.Name, schema.CoreDocument.Completed,
		schema.CoreDocument.CreatedAt, schema.CoreDocument.UpdatedAt,
		schema.CoreDocument.Table, schema.CoreDocument.ID,
	)

	document := &Document{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&document.ID, &document.TemplateID, &document.OwnerID,
		&document.Name, &document.Completed,
		&document.CreatedAt, &document.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Document")
	}

	return document, nil
}

func (repository *PostgresRepository) List(context context.Context, filter ListFilter, params pagination.Params) ([]Document, int, error) {
	conditions := ""
	arguments := []interface{}{filter.ViewerID}

	if filter.OwnerID != "" {
		arguments = append(arguments, filter.OwnerID)
		conditions += fmt.Sprintf(" AND d.%s = $%d", schema.CoreDocument.OwnerID, len(arguments))
	}
	if filter.Search != "" {
		arguments = append(arguments, "%"+filter.Search+"%")
		conditions += fmt.Sprintf(" AND d.%s ILIKE $%d", schema.CoreDocument.Name, len(arguments))
	}
	if filter.FavoritesOf != "" {
		arguments = append(arguments, filter.FavoritesOf)
		conditions += fmt.Sprintf(
			" AND EXISTS (SELECT 1 FROM %s ff WHERE ff.%s = d.%s AND ff.%s = $%d)",
			schema.CoreFavoriteDocument.Table,
			schema.CoreFavoriteDocument.DocumentID, schema.CoreDocument.ID,
			schema.CoreFavoriteDocument.AccountID, len(arguments),
		)
	}

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM %s d
		WHERE TRUE%s
	`, schema.CoreDocument.Table, conditions)

	total := 0
	if err := repository.db.QueryRow(context, countQuery, arguments...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Document")
	}

	listQuery := fmt.Sprintf(`
		SELECT d.%s, d.%s, d.%s, d.%s, d.%s, d.%s, d.%s,
			EXISTS (SELECT 1 FROM %s f WHERE f.%s = d.%s AND f.%s = $1) AS favorite
		FROM %s d
		WHERE TRUE%s
		ORDER BY d.%s DESC
		LIMIT %d OFFSET %d
	`,
		schema.CoreDocument.ID, schema.CoreDocument.TemplateID, schema.CoreDocument.OwnerID,
		schema.CoreDocument.Name, schema.CoreDocument.Completed,
		schema.CoreDocument.CreatedAt, schema.CoreDocument.UpdatedAt,
		schema.CoreFavoriteDocument.Table,
		schema.CoreFavoriteDocument.DocumentID, schema.CoreDocument.ID,
		schema.CoreFavoriteDocument.AccountID,
		schema.CoreDocument.Table, conditions,
		schema.CoreDocument.CreatedAt,
		params.Limit, params.Offset(),
	)

	rows, err := repository.db.Query(context, listQuery, arguments...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Document")
	}
	defer rows.Close()

	items := []Document{}
	for rows.Next() {
		var document Document
		err := rows.Scan(
			&document.ID, &document.TemplateID, &document.OwnerID,
			&document.Name, &document.Completed,
			&document.CreatedAt, &document.UpdatedAt,
			&document.Favorite,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "Document")
		}
		items = append(items, document)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Document")
	}

	return items, total, nil
}

func (repository *PostgresRepository) Fields(context context.Context, documentID string) ([]DocumentField, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.CoreDocumentField.ID, schema.CoreDocumentField.DocumentID,
		schema.CoreDocumentField.TemplateFieldID, schema.CoreDocumentField.Value,
		schema.CoreDocumentField.Table,
		schema.CoreDocumentField.DocumentID,
	)

	rows, err := repository.db.Query(context, query, documentID)
	if err != nil {
		return nil, dberr.Wrap(err, "DocumentField")
	}
	defer rows.Close()

	fields := []DocumentField{}
	for rows.Next() {
		var field DocumentField
		err := rows.Scan(&field.ID, &field.DocumentID, &field.TemplateFieldID, &field.Value)
		if err != nil {
			return nil, dberr.Wrap(err, "DocumentField")
		}
		fields = append(fields, field)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "DocumentField")
	}

	return fields, nil
}

/*
Update rewrites the document row. A non-nil fields slice replaces every
stored value: delete-then-insert inside the same transaction keeps partial
updates invisible.
*/
func (repository *PostgresRepository) Update(context context.Context, document *Document, fields []DocumentField) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "Document")
	}
	defer tx.Rollback(context)

	document.UpdatedAt = time.Now().UTC()

	documentQuery := fmt.Sprintf(`
		UPDATE %s SET %s = $1, %s = $2, %s = $3 WHERE %s = $4
	`,
		schema.CoreDocument.Table,
		schema.CoreDocument.Name, schema.CoreDocument.Completed,
		schema.CoreDocument.UpdatedAt, schema.CoreDocument.ID,
	)

	tag, err := tx.Exec(context, documentQuery,
		document.Name, document.Completed, document.UpdatedAt, document.ID)
	if err != nil {
		return dberr.Wrap(err, "Document")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	if fields != nil {
		deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
			schema.CoreDocumentField.Table, schema.CoreDocumentField.DocumentID)
		if _, err := tx.Exec(context, deleteQuery, document.ID); err != nil {
			return dberr.Wrap(err, "DocumentField")
		}

		insertQuery := fmt.Sprintf(`
			INSERT INTO %s (%s, %s, %s, %s)
			VALUES ($1, $2, $3, $4)
		`,
			schema.CoreDocumentField.Table,
			schema.CoreDocumentField.ID, schema.CoreDocumentField.DocumentID,
			schema.CoreDocumentField.TemplateFieldID, schema.CoreDocumentField.Value,
		)

		for index := range fields {
			if fields[index].ID == "" {
				fields[index].ID = uuidv7.New()
			}
			fields[index].DocumentID = document.ID
			_, err = tx.Exec(context, insertQuery,
				fields[index].ID, fields[index].DocumentID,
				fields[index].TemplateFieldID, fields[index].Value,
			)
			if err != nil {
				return dberr.Wrap(err, "DocumentField")
			}
		}
	}

	if err := tx.Commit(context); err != nil {
		return dberr.Wrap(err, "Document")
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CoreDocument.Table, schema.CoreDocument.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "Document")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

func (repository *PostgresRepository) AddFavorite(context context.Context, accountID, documentID string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (%s, %s) DO NOTHING
	`,
		schema.CoreFavoriteDocument.Table,
		schema.CoreFavoriteDocument.ID, schema.CoreFavoriteDocument.AccountID,
		schema.CoreFavoriteDocument.DocumentID, schema.CoreFavoriteDocument.CreatedAt,
		schema.CoreFavoriteDocument.AccountID, schema.CoreFavoriteDocument.DocumentID,
	)

	_, err := repository.db.Exec(context, query, uuidv7.New(), accountID, documentID, time.Now().UTC())
	if err != nil {
		return dberr.Wrap(err, "FavoriteDocument")
	}

	return nil
}

func (repository *PostgresRepository) RemoveFavorite(context context.Context, accountID, documentID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.CoreFavoriteDocument.Table,
		schema.CoreFavoriteDocument.AccountID, schema.CoreFavoriteDocument.DocumentID,
	)

	_, err := repository.db.Exec(context, query, accountID, documentID)
	if err != nil {
		return dberr.Wrap(err, "FavoriteDocument")
	}

	return nil
}
