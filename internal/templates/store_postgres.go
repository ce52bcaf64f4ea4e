// Copyright (c) 2026 Document Template Engine. All rights reserved.
// Author: a.velichko.dev@gmail.com

package templates

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

// PostgresRepository implements Repository on the core.template family of
// tables.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a Postgres-backed template Repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

/*
Create persists the template, its groups, and its fields inside one
transaction so partial writes never become visible.
*/
func (repository *PostgresRepository) Create(context context.Context, template *Template, groups []FieldGroup, fields []TemplateField) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "Template")
	}
	defer tx.Rollback(context)

	now := time.Now().UTC()
	template.CreatedAt = now
	template.UpdatedAt = now

	templateQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		schema.CoreTemplate.Table,
		schema.CoreTemplate.ID, schema.CoreTemplate.OwnerID, schema.CoreTemplate.CategoryID,
		schema.CoreTemplate.Name, schema.CoreTemplate.Description, schema.CoreTemplate.FileName,
		schema.CoreTemplate.FileID, schema.CoreTemplate.PreviewID, schema.CoreTemplate.Deleted,
		schema.CoreTemplate.CreatedAt, schema.CoreTemplate.UpdatedAt,
	)

	_, err = tx.Exec(context, templateQuery,
		template.ID, template.OwnerID, template.CategoryID,
		template.Name, template.Description, template.FileName,
		template.FileID, template.PreviewID, template.Deleted,
		template.CreatedAt, template.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Template")
	}

	groupQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
	`,
		schema.CoreFieldGroup.Table,
		schema.CoreFieldGroup.ID, schema.CoreFieldGroup.TemplateID,
		schema.CoreFieldGroup.Name, schema.CoreFieldGroup.Position,
	)

	for index := range groups {
		groups[index].TemplateID = template.ID
		_, err = tx.Exec(context, groupQuery,
			groups[index].ID, groups[index].TemplateID,
			groups[index].Name, groups[index].Position,
		)
		if err != nil {
			return dberr.Wrap(err, "FieldGroup")
		}
	}

	fieldQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		schema.CoreTemplateField.Table,
		schema.CoreTemplateField.ID, schema.CoreTemplateField.TemplateID, schema.CoreTemplateField.GroupID,
		schema.CoreTemplateField.Tag, schema.CoreTemplateField.Name, schema.CoreTemplateField.FieldTypeID,
		schema.CoreTemplateField.Length, schema.CoreTemplateField.Mask, schema.CoreTemplateField.DefaultValue,
		schema.CoreTemplateField.Hint, schema.CoreTemplateField.Position,
	)

	for index := range fields {
		fields[index].TemplateID = template.ID
		_, err = tx.Exec(context, fieldQuery,
			fields[index].ID, fields[index].TemplateID, fields[index].GroupID,
			fields[index].Tag, fields[index].Name, fields[index].FieldTypeID,
			fields[index].Length, fields[index].Mask, fields[index].DefaultValue,
			fields[index].Hint, fields[index].Position,
		)
		if err != nil {
			return dberr.Wrap(err, "TemplateField")
		}
	}

	if err := tx.Commit(context); err != nil {
		return dberr.Wrap(err, "Template")
	}

	return nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Template, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.CoreTemplate.ID, schema.CoreTemplate.OwnerID, schema.CoreTemplate.CategoryID,
		schema.CoreTemplate.Name, schema.CoreTemplate.Description, schema.CoreTemplate.FileName,
		schema.CoreTemplate.FileID, schema.CoreTemplate.PreviewID, schema.CoreTemplate.Deleted,
		schema.CoreTemplate.CreatedAt, schema.CoreTemplate.UpdatedAt,
		schema.CoreTemplate.Table, schema.CoreTemplate.ID,
	)

	template := &Template{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&template.ID, &template.OwnerID, &template.CategoryID,
		&template.Name, &template.Description, &template.FileName,
		&template.FileID, &template.PreviewID, &template.Deleted,
		&template.CreatedAt, &template.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Template")
	}

	return template, nil
}

/*
List returns one page of templates plus the total row count for the filter.

The Favorite flag is resolved in-query with an EXISTS probe against the
favorites table for filter.ViewerID.
*/
func (repository *PostgresRepository) List(context context.Context, filter ListFilter, params pagination.Params) ([]Template, int, error) {
	conditions := ""
	arguments := []interface{}{filter.ViewerID}

	if !filter.IncludeDeleted {
		conditions += fmt.Sprintf(" AND t.%s = FALSE", schema.CoreTemplate.Deleted)
	}
	if filter.Search != "" {
		arguments = append(arguments, "%"+filter.Search+"%")
		conditions += fmt.Sprintf(" AND t.%s ILIKE $%d", schema.CoreTemplate.Name, len(arguments))
	}
	if filter.FavoritesOf != "" {
		arguments = append(arguments, filter.FavoritesOf)
		conditions += fmt.Sprintf(
			" AND EXISTS (SELECT 1 FROM %s ff WHERE ff.%s = t.%s AND ff.%s = $%d)",
			schema.CoreFavoriteTemplate.Table,
			schema.CoreFavoriteTemplate.TemplateID, schema.CoreTemplate.ID,
			schema.CoreFavoriteTemplate.AccountID, len(arguments),
		)
	}

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM %s t
		WHERE TRUE%s
	`, schema.CoreTemplate.Table, conditions)

	// $1 is always the viewer; the count query ignores it but shares the
	// argument list so condition placeholders line up.
	total := 0
	if err := repository.db.QueryRow(context, countQuery, arguments...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Template")
	}

	listQuery := fmt.Sprintf(`
		SELECT t.%s, t.%s, t.%s, t.%s, t.%s, t.%s, t.%s, t.%s, t.%s, t.%s, t.%s,
			EXISTS (SELECT 1 FROM %s f WHERE f.%s = t.%s AND f.%s = $1) AS favorite
		FROM %s t
		WHERE TRUE%s
		ORDER BY t.%s DESC
		LIMIT %d OFFSET %d
	`,
		schema.CoreTemplate.ID, schema.CoreTemplate.OwnerID, schema.CoreTemplate.CategoryID,
		schema.CoreTemplate.Name, schema.CoreTemplate.Description, schema.CoreTemplate.FileName,
		schema.CoreTemplate.FileID, schema.CoreTemplate.PreviewID, schema.CoreTemplate.Deleted,
		schema.CoreTemplate.CreatedAt, schema.CoreTemplate.UpdatedAt,
		schema.CoreFavoriteTemplate.Table,
		schema.CoreFavoriteTemplate.TemplateID, schema.CoreTemplate.ID,
		schema.CoreFavoriteTemplate.AccountID,
		schema.CoreTemplate.Table, conditions,
		schema.CoreTemplate.CreatedAt,
		params.Limit, params.Offset(),
	)

	rows, err := repository.db.Query(context, listQuery, arguments...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Template")
	}
	defer rows.Close()

	items := []Template{}
	for rows.Next() {
		var template Template
		err := rows.Scan(
			&template.ID, &template.OwnerID, &template.CategoryID,
			&template.Name, &template.Description, &template.FileName,
			&template.FileID, &template.PreviewID, &template.Deleted,
			&template.CreatedAt, &template.UpdatedAt,
			&template.Favorite,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "Template")
		}
		items = append(items, template)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Template")
	}

	return items, total, nil
}

func (repository *PostgresRepository) Fields(context context.Context, templateID string) ([]FieldGroup, []TemplateField, error) {
	groupQuery := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC
	`,
		schema.CoreFieldGroup.ID, schema.CoreFieldGroup.TemplateID,
		schema.CoreFieldGroup.Name, schema.CoreFieldGroup.Position,
		schema.CoreFieldGroup.Table,
		schema.CoreFieldGroup.TemplateID,
		schema.CoreFieldGroup.Position,
	)

	rows, err := repository.db.Query(context, groupQuery, templateID)
	if err != nil {
		return nil, nil, dberr.Wrap(err, "FieldGroup")
	}
	defer rows.Close()

	groups := []FieldGroup{}
	for rows.Next() {
		var group FieldGroup
		if err := rows.Scan(&group.ID, &group.TemplateID, &group.Name, &group.Position); err != nil {
			return nil, nil, dberr.Wrap(err, "FieldGroup")
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, dberr.Wrap(err, "FieldGroup")
	}

	fieldQuery := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC
	`,
		schema.CoreTemplateField.ID, schema.CoreTemplateField.TemplateID, schema.CoreTemplateField.GroupID,
		schema.CoreTemplateField.Tag, schema.CoreTemplateField.Name, schema.CoreTemplateField.FieldTypeID,
		schema.CoreTemplateField.Length, schema.CoreTemplateField.Mask, schema.CoreTemplateField.DefaultValue,
		schema.CoreTemplateField.Hint, schema.CoreTemplateField.Position,
		schema.CoreTemplateField.Table,
		schema.CoreTemplateField.TemplateID,
		schema.CoreTemplateField.Position,
	)

	fieldRows, err := repository.db.Query(context, fieldQuery, templateID)
	if err != nil {
		return nil, nil, dberr.Wrap(err, "TemplateField")
	}
	defer fieldRows.Close()

	fields := []TemplateField{}
	for fieldRows.Next() {
		var field TemplateField
		err := fieldRows.Scan(
			&field.ID, &field.TemplateID, &field.GroupID,
			&field.Tag, &field.Name, &field.FieldTypeID,
			&field.Length, &field.Mask, &field.DefaultValue,
			&field.Hint, &field.Position,
		)
		if err != nil {
			return nil, nil, dberr.Wrap(err, "TemplateField")
		}
		fields = append(fields, field)
	}
	if err := fieldRows.Err(); err != nil {
		return nil, nil, dberr.Wrap(err, "TemplateField")
	}

	return groups, fields, nil
}

func (repository *PostgresRepository) UpdateFile(context context.Context, id, fileName, fileID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = $2, %s = $3 WHERE %s = $4`,
		schema.CoreTemplate.Table,
		schema.CoreTemplate.FileName, schema.CoreTemplate.FileID,
		schema.CoreTemplate.UpdatedAt, schema.CoreTemplate.ID,
	)

	tag, err := repository.db.Exec(context, query, fileName, fileID, time.Now().UTC(), id)
	if err != nil {
		return dberr.Wrap(err, "Template")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

func (repository *PostgresRepository) UpdatePreview(context context.Context, id, previewID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = $2 WHERE %s = $3`,
		schema.CoreTemplate.Table,
		schema.CoreTemplate.PreviewID, schema.CoreTemplate.UpdatedAt,
		schema.CoreTemplate.ID,
	)

	tag, err := repository.db.Exec(context, query, previewID, time.Now().UTC(), id)
	if err != nil {
		return dberr.Wrap(err, "Template")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

func (repository *PostgresRepository) SoftDelete(context context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE, %s = $1 WHERE %s = $2 AND %s = FALSE`,
		schema.CoreTemplate.Table,
		schema.CoreTemplate.Deleted, schema.CoreTemplate.UpdatedAt,
		schema.CoreTemplate.ID, schema.CoreTemplate.Deleted,
	)

	tag, err := repository.db.Exec(context, query, time.Now().UTC(), id)
	if err != nil {
		return dberr.Wrap(err, "Template")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

func (repository *PostgresRepository) AddFavorite(context context.Context, accountID, templateID string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (%s, %s) DO NOTHING
	`,
		schema.CoreFavoriteTemplate.Table,
		schema.CoreFavoriteTemplate.ID, schema.CoreFavoriteTemplate.AccountID,
		schema.CoreFavoriteTemplate.TemplateID, schema.CoreFavoriteTemplate.CreatedAt,
		schema.CoreFavoriteTemplate.AccountID, schema.CoreFavoriteTemplate.TemplateID,
	)

	_, err := repository.db.Exec(context, query, uuidv7.New(), accountID, templateID, time.Now().UTC())
	if err != nil {
		return dberr.Wrap(err, "FavoriteTemplate")
	}

	return nil
}

func (repository *PostgresRepository) RemoveFavorite(context context.Context, accountID, templateID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.CoreFavoriteTemplate.Table,
		schema.CoreFavoriteTemplate.AccountID, schema.CoreFavoriteTemplate.TemplateID,
	)

	_, err := repository.db.Exec(context, query, accountID, templateID)
	if err != nil {
		return dberr.Wrap(err, "FavoriteTemplate")
	}

	return nil
}
