package author

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/domain"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/pkg/pointer"
)

func setupAuthorTestRepository(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

var authorColumns = []string{"id", "firstname", "middlename", "lastname", "createdat", "updatedat", "books", "genres"}

func TestPostgresRepository_FindByID(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name      string
		id        int64
		setupMock func(sqlmock.Sqlmock)
		check     func(t *testing.T, author *domain.Author, err error)
	}{
		{
			name: "found with derived lists",
			id:   7,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .* FROM catalog.author a WHERE a.id = \$1`).
					WithArgs(int64(7)).
					WillReturnRows(sqlmock.NewRows(authorColumns).
						AddRow(int64(7), "Leo", nil, "Tolstoy", now, now, "2,5", ""))
			},
			check: func(t *testing.T, author *domain.Author, err error) {
				require.NoError(t, err)
				assert.Equal(t, int64(7), author.ID)
				assert.Equal(t, "Leo", pointer.Val(author.FirstName))
				assert.Nil(t, author.MiddleName)
				assert.Equal(t, []int64{2, 5}, author.BookIDs)
				assert.Equal(t, []int64{}, author.GenreIDs)
			},
		},
		{
			name: "missing row is not found",
			id:   9,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM catalog.author a`).
					WithArgs(int64(9)).
					WillReturnError(sql.ErrNoRows)
			},
			check: func(t *testing.T, _ *domain.Author, err error) {
				assert.True(t, apperr.IsNotFound(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := setupAuthorTestRepository(t)
			tt.setupMock(mock)

			author, err := repo.FindByID(context.Background(), tt.id)

			tt.check(t, author, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresRepository_FindByIDs_Empty(t *testing.T) {
	repo, mock := setupAuthorTestRepository(t)

	authors, err := repo.FindByIDs(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, authors)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Save_Insert(t *testing.T) {
	repo, mock := setupAuthorTestRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO catalog.author`).
		WithArgs("Anna", nil, "Akhmatova", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))
	mock.ExpectExec(`DELETE FROM catalog.authorgenre WHERE authorid = \$1`).
		WithArgs(int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO catalog.authorgenre`).
		WithArgs(int64(11), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	author := &domain.Author{FirstName: pointer.To("Anna"), LastName: pointer.To("Akhmatova"), GenreIDs: []int64{3, 3}}
	err := repo.Save(context.Background(), author)

	require.NoError(t, err)
	assert.Equal(t, int64(11), author.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Save_UpdateMissing(t *testing.T) {
	repo, mock := setupAuthorTestRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE catalog.author`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Save(context.Background(), &domain.Author{ID: 4, FirstName: pointer.To("X")})

	assert.True(t, apperr.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Save_DanglingGenre(t *testing.T) {
	repo, mock := setupAuthorTestRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO catalog.author`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(12)))
	mock.ExpectExec(`DELETE FROM catalog.authorgenre`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO catalog.authorgenre`).
		WillReturnError(&pgconn.PgError{Code: "23503"})
	mock.ExpectRollback()

	author := &domain.Author{FirstName: pointer.To("X"), GenreIDs: []int64{99}}
	err := repo.Save(context.Background(), author)

	assert.True(t, apperr.Is(err, apperr.CodeValidation))
	assert.Zero(t, author.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_DeleteByID(t *testing.T) {
	repo, mock := setupAuthorTestRepository(t)

	mock.ExpectExec(`DELETE FROM catalog.author WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM catalog.author WHERE id = \$1`).
		WithArgs(int64(6)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM catalog.author WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnError(errors.New("connection reset"))

	assert.NoError(t, repo.DeleteByID(context.Background(), 5))
	assert.True(t, apperr.IsNotFound(repo.DeleteByID(context.Background(), 6)))
	assert.True(t, apperr.Is(repo.DeleteByID(context.Background(), 7), apperr.CodeInternal))
	assert.NoError(t, mock.ExpectationsWereMet())
}
