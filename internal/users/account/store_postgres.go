// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account (Postgres) implements the storage layer for accounts.

# Schema Table Mapping
  - users.account: identity, credentials, flags and roles (TEXT[]).
  - social.comment: read only, for the derived comment ids.

Usernames and emails are unique under lower(); password digests are stored and
returned, plain-text passwords never reach this layer.
*/
package account

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/taibuivan/folio/internal/domain"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/database"
	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/dberr"
	"github.com/taibuivan/folio/internal/platform/sec"
)

const resource = "User"

// # Repository Implementation

// PostgresRepository implements [domain.UserRepository] using database/sql over pgx.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new Postgres implementation for accounts.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var selectUsers = fmt.Sprintf(`
	SELECT u.%s, u.%s, u.%s, u.%s, u.%s, array_to_string(u.%s, ','), u.%s, u.%s, %s
	FROM %s u
`,
	schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Email,
	schema.UserAccount.Password, schema.UserAccount.Active, schema.UserAccount.Roles,
	schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
	database.IDList(schema.SocialComment.ID, schema.SocialComment.Table, schema.SocialComment.UserID, "u."+schema.UserAccount.ID),
	schema.UserAccount.Table,
)

var orderByID = fmt.Sprintf(" ORDER BY u.%s", schema.UserAccount.ID)

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*domain.User, error) {
	var (
		user                  domain.User
		username, email       sql.NullString
		active                sql.NullBool
		roleList, commentList string
	)
	err := row.Scan(&user.ID, &username, &email, &user.PasswordHash, &active, &roleList,
		&user.CreatedAt, &user.UpdatedAt, &commentList)
	if err != nil {
		return nil, err
	}

	user.Username = database.StringPtr(username)
	user.Email = database.StringPtr(email)
	if active.Valid {
		user.Active = &active.Bool
	}

	if roleList != "" {
		if user.Roles, err = sec.ParseRoleSet(strings.Split(roleList, ",")); err != nil {
			return nil, err
		}
	}
	if user.CommentIDs, err = database.ParseIDs(commentList); err != nil {
		return nil, err
	}
	return &user, nil
}

func (repository *PostgresRepository) query(context context.Context, query string, args ...any) ([]*domain.User, error) {
	rows, err := repository.db.QueryContext(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, resource)
	}
	defer rows.Close()

	users := []*domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, dberr.Wrap(err, resource)
		}
		users = append(users, user)
	}
	return users, dberr.Wrap(rows.Err(), resource)
}

func (repository *PostgresRepository) one(context context.Context, query string, args ...any) (*domain.User, error) {
	user, err := scanUser(repository.db.QueryRowContext(context, query, args...))
	if err != nil {
		return nil, dberr.Wrap(err, resource)
	}
	return user, nil
}

// # Reads

func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*domain.User, error) {
	return repository.one(context, selectUsers+fmt.Sprintf(" WHERE u.%s = $1", schema.UserAccount.ID), id)
}

/*
FindByUsername resolves an account for sign-in, ignoring case.

Returns:
  - *domain.User: With PasswordHash populated
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresRepository) FindByUsername(context context.Context, username string) (*domain.User, error) {
	return repository.one(context, selectUsers+fmt.Sprintf(" WHERE lower(u.%s) = lower($1)", schema.UserAccount.Username), username)
}

func (repository *PostgresRepository) FindByIDs(context context.Context, ids []int64) ([]*domain.User, error) {
	if len(ids) == 0 {
		return []*domain.User{}, nil
	}
	query := selectUsers + fmt.Sprintf(" WHERE u.%s IN (%s)", schema.UserAccount.ID, database.Placeholders(1, len(ids))) + orderByID
	return repository.query(context, query, database.Int64Args(ids)...)
}

func (repository *PostgresRepository) FindAll(context context.Context) ([]*domain.User, error) {
	return repository.query(context, selectUsers+orderByID)
}

func (repository *PostgresRepository) Count(context context.Context) (int, error) {
	var total int
	query := fmt.Sprintf("SELECT count(*) FROM %s", schema.UserAccount.Table)
	if err := repository.db.QueryRowContext(context, query).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, resource)
	}
	return total, nil
}

func (repository *PostgresRepository) ExistsByUsername(context context.Context, username string, excludeID int64) (bool, error) {
	return repository.exists(context, schema.UserAccount.Username, username, excludeID)
}

func (repository *PostgresRepository) ExistsByEmail(context context.Context, email string, excludeID int64) (bool, error) {
	return repository.exists(context, schema.UserAccount.Email, email, excludeID)
}

func (repository *PostgresRepository) exists(context context.Context, column, value string, excludeID int64) (bool, error) {
	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE lower(%s) = lower($1) AND %s <> $2)",
		schema.UserAccount.Table, column, schema.UserAccount.ID)

	var exists bool
	if err := repository.db.QueryRowContext(context, query, value, excludeID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, resource)
	}
	return exists, nil
}

// # Writes

/*
Save inserts or replaces an account row.

Description: A concurrent registration that lost the race on a unique index
surfaces here as CONFLICT.
*/
func (repository *PostgresRepository) Save(context context.Context, user *domain.User) error {
	columns := []string{
		schema.UserAccount.Username, schema.UserAccount.Email, schema.UserAccount.Password,
		schema.UserAccount.Active, schema.UserAccount.Roles, schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
	}
	values := "$1, $2, $3, $4, string_to_array($5, ','), $6, $7"

	var active sql.NullBool
	if user.Active != nil {
		active = sql.NullBool{Bool: *user.Active, Valid: true}
	}
	args := []any{
		database.NullString(user.Username), database.NullString(user.Email), user.PasswordHash,
		active, strings.Join(user.Roles.Strings(), ","), user.CreatedAt, user.UpdatedAt,
	}

	if user.ID == 0 {
		query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
			schema.UserAccount.Table, schema.List(columns), values, schema.UserAccount.ID)

		var id int64
		if err := repository.db.QueryRowContext(context, query, args...).Scan(&id); err != nil {
			return dberr.Wrap(err, resource)
		}
		user.ID = id
		return nil
	}

	query := fmt.Sprintf("UPDATE %s SET (%s) = (%s) WHERE %s = $8",
		schema.UserAccount.Table, schema.List(columns), values, schema.UserAccount.ID)
	result, err := repository.db.ExecContext(context, query, append(args, user.ID)...)
	if err != nil {
		return dberr.Wrap(err, resource)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return apperr.NotFound(resource)
	}
	return nil
}

// DeleteByID removes the account. Its comments go with it by cascade.
func (repository *PostgresRepository) DeleteByID(context context.Context, id int64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.UserAccount.Table, schema.UserAccount.ID)
	result, err := repository.db.ExecContext(context, query, id)
	if err != nil {
		return dberr.Wrap(err, resource)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return apperr.NotFound(resource)
	}
	return nil
}
