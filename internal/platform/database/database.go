// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package database holds the database/sql helpers shared by the PostgreSQL repositories.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/taibuivan/folio/internal/platform/database/schema"
)

// Querier is satisfied by both [*sql.DB] and [*sql.Tx].
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx runs fn inside a transaction, committing on success and rolling back otherwise.
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("database: begin failed: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("database: commit failed: %w", err)
	}
	return nil
}

// # Id lists

// IDList selects the ids linked to the outer row as one comma-separated text value.
//
//	IDList("bookid", "catalog.bookauthor", "authorid", "a.id")
//	// (SELECT COALESCE(string_agg(bookid::text, ',' ORDER BY bookid), '') FROM catalog.bookauthor WHERE authorid = a.id)
func IDList(column, table, matchColumn, outer string) string {
	return fmt.Sprintf("(SELECT COALESCE(string_agg(%[1]s::text, ',' ORDER BY %[1]s), '') FROM %[2]s WHERE %[3]s = %[4]s)",
		column, table, matchColumn, outer)
}

// ParseIDs decodes the text produced by [IDList]. An empty string yields an empty, non-nil list.
func ParseIDs(raw string) ([]int64, error) {
	ids := []int64{}
	if raw == "" {
		return ids, nil
	}
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("database: bad id list %q: %w", raw, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ReplaceLinks makes the join table hold exactly targets for owner.
func ReplaceLinks(ctx context.Context, q Querier, join schema.JoinTable, owner int64, targets []int64) error {
	deleteQuery := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", join.Table, join.Owner)
	if _, err := q.ExecContext(ctx, deleteQuery, owner); err != nil {
		return err
	}

	insertQuery := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)", join.Table, join.Owner, join.Target)
	for _, target := range targets {
		if _, err := q.ExecContext(ctx, insertQuery, owner, target); err != nil {
			return err
		}
	}
	return nil
}

// Placeholders returns "$from, $from+1, ..." for n arguments.
func Placeholders(from, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "$" + strconv.Itoa(from+i)
	}
	return strings.Join(parts, ", ")
}

// Int64Args converts ids to query arguments.
func Int64Args(ids []int64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

// # Nullable scalars

// NullString maps an optional string to a query argument.
func NullString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

// NullInt64 maps an optional integer to a query argument.
func NullInt64(value *int64) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *value, Valid: true}
}

// NullInt maps an optional int to a query argument.
func NullInt(value *int) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*value), Valid: true}
}

// StringPtr maps a scanned nullable string back to an optional value.
func StringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	return &value.String
}

// Int64Ptr maps a scanned nullable integer back to an optional value.
func Int64Ptr(value sql.NullInt64) *int64 {
	if !value.Valid {
		return nil
	}
	return &value.Int64
}

// IntPtr maps a scanned nullable integer back to an optional int.
func IntPtr(value sql.NullInt64) *int {
	if !value.Valid {
		return nil
	}
	v := int(value.Int64)
	return &v
}
