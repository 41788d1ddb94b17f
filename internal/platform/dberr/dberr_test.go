// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/dberr"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"pgx_no_rows", pgx.ErrNoRows, apperr.CodeNotFound},
		{"sql_no_rows", fmt.Errorf("scan: %w", sql.ErrNoRows), apperr.CodeNotFound},
		{"unique_violation", &pgconn.PgError{Code: "23505"}, apperr.CodeConflict},
		{"wrapped_unique_violation", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), apperr.CodeConflict},
		{"foreign_key_violation", &pgconn.PgError{Code: "23503"}, apperr.CodeValidation},
		{"other", errors.New("connection reset"), apperr.CodeInternal},
		{"already_classified", apperr.Forbidden("nope"), apperr.CodeForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, apperr.Is(dberr.Wrap(tt.err, "Genre"), tt.code))
		})
	}

	assert.NoError(t, dberr.Wrap(nil, "Genre"))
}
