// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package database_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/platform/database"
	"github.com/taibuivan/folio/internal/platform/database/schema"
)

func TestParseIDs(t *testing.T) {
	ids, err := database.ParseIDs("")
	require.NoError(t, err)
	assert.NotNil(t, ids)
	assert.Empty(t, ids)

	ids, err = database.ParseIDs("1,5,12")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 5, 12}, ids)

	_, err = database.ParseIDs("1,x")
	assert.Error(t, err)
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "$2, $3, $4", database.Placeholders(2, 3))
	assert.Equal(t, "", database.Placeholders(1, 0))
}

/*
TestReplaceLinks_RollsBack verifies that a failing link insert aborts the transaction.
*/
func TestReplaceLinks_RollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM catalog.bookgenre WHERE bookid = \\$1").
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO catalog.bookgenre \\(bookid, genreid\\) VALUES \\(\\$1, \\$2\\)").
		WithArgs(int64(3), int64(8)).
		WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	err = database.WithTx(context.Background(), db, func(tx *sql.Tx) error {
		return database.ReplaceLinks(context.Background(), tx, schema.CatalogBookGenre, 3, []int64{8})
	})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
