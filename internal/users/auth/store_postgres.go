// Copyright (c) 2026 Document Template Engine. All rights reserved.
// Author: a.velichko.dev@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/document-template-engine/backend/internal/platform/database/schema"
	"github.com/document-template-engine/backend/internal/platform/dberr"
)

// PostgresUserRepository implements UserRepository on the users.account table.
type PostgresUserRepository struct {
	db *pgxpool.Pool
}

// NewPostgresUserRepository creates a Postgres-backed UserRepository.
func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		schema.UsersAccount.Table,
		schema.UsersAccount.ID, schema.UsersAccount.Email, schema.UsersAccount.PasswordHash,
		schema.UsersAccount.FirstName, schema.UsersAccount.LastName, schema.UsersAccount.Role,
		schema.UsersAccount.IsActive, schema.UsersAccount.CreatedAt, schema.UsersAccount.UpdatedAt,
	)

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := repository.db.Exec(context, query,
		user.ID, user.Email, user.PasswordHash,
		user.FirstName, user.LastName, user.Role,
		user.IsActive, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "User")
	}

	return nil
}

func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	return repository.findBy(context, schema.UsersAccount.Email, email)
}

func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	return repository.findBy(context, schema.UsersAccount.ID, id)
}

// findBy loads one active user by an exact column match.
func (repository *PostgresUserRepository) findBy(context context.Context, column string, value string) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.UsersAccount.ID, schema.UsersAccount.Email, schema.UsersAccount.PasswordHash,
		schema.UsersAccount.FirstName, schema.UsersAccount.LastName, schema.UsersAccount.Role,
		schema.UsersAccount.IsActive, schema.UsersAccount.CreatedAt, schema.UsersAccount.UpdatedAt,
		schema.UsersAccount.Table, column,
	)

	user := &User{}
	err := repository.db.QueryRow(context, query, value).Scan(
		&user.ID, &user.Email, &user.PasswordHash,
		&user.FirstName, &user.LastName, &user.Role,
		&user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}

	return user, nil
}

func (repository *PostgresUserRepository) UpdatePassword(context context.Context, id string, passwordHash string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = $2 WHERE %s = $3`,
		schema.UsersAccount.Table,
		schema.UsersAccount.PasswordHash, schema.UsersAccount.UpdatedAt, schema.UsersAccount.ID,
	)

	tag, err := repository.db.Exec(context, query, passwordHash, time.Now().UTC(), id)
	if err != nil {
		return dberr.Wrap(err, "User")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}
