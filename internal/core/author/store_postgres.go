package author

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/taibuivan/folio/internal/domain"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/database"
	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/dberr"
)

const resource = "Author"

// PostgresRepository implements [domain.AuthorRepository] on catalog.author.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var selectAuthors = fmt.Sprintf(`
	SELECT a.%s, a.%s, a.%s, a.%s, a.%s, a.%s, %s, %s
	FROM %s a
`,
	schema.CatalogAuthor.ID, schema.CatalogAuthor.FirstName, schema.CatalogAuthor.MiddleName,
	schema.CatalogAuthor.LastName, schema.CatalogAuthor.CreatedAt, schema.CatalogAuthor.UpdatedAt,
	database.IDList(schema.CatalogBookAuthor.Owner, schema.CatalogBookAuthor.Table, schema.CatalogBookAuthor.Target, "a."+schema.CatalogAuthor.ID),
	database.IDList(schema.CatalogAuthorGenre.Target, schema.CatalogAuthorGenre.Table, schema.CatalogAuthorGenre.Owner, "a."+schema.CatalogAuthor.ID),
	schema.CatalogAuthor.Table,
)

var orderByID = fmt.Sprintf(" ORDER BY a.%s", schema.CatalogAuthor.ID)

type scanner interface {
	Scan(dest ...any) error
}

func scanAuthor(row scanner) (*domain.Author, error) {
	var (
		author              domain.Author
		first, middle, last sql.NullString
		bookList, genreList string
	)
	if err := row.Scan(&author.ID, &first, &middle, &last, &author.CreatedAt, &author.UpdatedAt, &bookList, &genreList); err != nil {
		return nil, err
	}

	author.FirstName = database.StringPtr(first)
	author.MiddleName = database.StringPtr(middle)
	author.LastName = database.StringPtr(last)

	var err error
	if author.BookIDs, err = database.ParseIDs(bookList); err != nil {
		return nil, err
	}
	if author.GenreIDs, err = database.ParseIDs(genreList); err != nil {
		return nil, err
	}
	return &author, nil
}

func (repository *PostgresRepository) query(context context.Context, query string, args ...any) ([]*domain.Author, error) {
	rows, err := repository.db.QueryContext(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, resource)
	}
	defer rows.Close()

	authors := []*domain.Author{}
	for rows.Next() {
		author, err := scanAuthor(rows)
		if err != nil {
			return nil, dberr.Wrap(err, resource)
		}
		authors = append(authors, author)
	}
	return authors, dberr.Wrap(rows.Err(), resource)
}

func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*domain.Author, error) {
	query := selectAuthors + fmt.Sprintf(" WHERE a.%s = $1", schema.CatalogAuthor.ID)
	author, err := scanAuthor(repository.db.QueryRowContext(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resource)
	}
	return author, nil
}

func (repository *PostgresRepository) FindByIDs(context context.Context, ids []int64) ([]*domain.Author, error) {
	if len(ids) == 0 {
		return []*domain.Author{}, nil
	}
	query := selectAuthors + fmt.Sprintf(" WHERE a.%s IN (%s)", schema.CatalogAuthor.ID, database.Placeholders(1, len(ids))) + orderByID
	return repository.query(context, query, database.Int64Args(ids)...)
}

func (repository *PostgresRepository) FindAll(context context.Context) ([]*domain.Author, error) {
	return repository.query(context, selectAuthors+orderByID)
}

func (repository *PostgresRepository) Search(context context.Context, filter domain.AuthorFilter) ([]*domain.Author, error) {
	query := selectAuthors + fmt.Sprintf(`
	WHERE starts_with(lower(coalesce(a.%s, '')), lower($1))
	  AND starts_with(lower(coalesce(a.%s, '')), lower($2))
	  AND starts_with(lower(coalesce(a.%s, '')), lower($3))`,
		schema.CatalogAuthor.FirstName, schema.CatalogAuthor.MiddleName, schema.CatalogAuthor.LastName,
	) + orderByID
	return repository.query(context, query, filter.FirstName, filter.MiddleName, filter.LastName)
}

func (repository *PostgresRepository) Count(context context.Context) (int, error) {
	var total int
	query := fmt.Sprintf("SELECT count(*) FROM %s", schema.CatalogAuthor.Table)
	if err := repository.db.QueryRowContext(context, query).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, resource)
	}
	return total, nil
}

// Save writes the row and replaces its genre links in one transaction.
func (repository *PostgresRepository) Save(context context.Context, author *domain.Author) error {
	id := author.ID
	err := database.WithTx(context, repository.db, func(tx *sql.Tx) error {
		args := []any{
			database.NullString(author.FirstName), database.NullString(author.MiddleName),
			database.NullString(author.LastName), author.CreatedAt, author.UpdatedAt,
		}

		if author.ID == 0 {
			query := fmt.Sprintf(`
				INSERT INTO %s (%s, %s, %s, %s, %s)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING %s
			`,
				schema.CatalogAuthor.Table, schema.CatalogAuthor.FirstName, schema.CatalogAuthor.MiddleName,
				schema.CatalogAuthor.LastName, schema.CatalogAuthor.CreatedAt, schema.CatalogAuthor.UpdatedAt,
				schema.CatalogAuthor.ID,
			)
			if err := tx.QueryRowContext(context, query, args...).Scan(&author.ID); err != nil {
				return err
			}
		} else {
			query := fmt.Sprintf(`
				UPDATE %s
				SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5
				WHERE %s = $6
			`,
				schema.CatalogAuthor.Table, schema.CatalogAuthor.FirstName, schema.CatalogAuthor.MiddleName,
				schema.CatalogAuthor.LastName, schema.CatalogAuthor.CreatedAt, schema.CatalogAuthor.UpdatedAt,
				schema.CatalogAuthor.ID,
			)
			result, err := tx.ExecContext(context, query, append(args, author.ID)...)
			if err != nil {
				return err
			}
			if affected, _ := result.RowsAffected(); affected == 0 {
				return apperr.NotFound(resource)
			}
		}

		return database.ReplaceLinks(context, tx, schema.CatalogAuthorGenre, author.ID, domain.SortedIDs(author.GenreIDs))
	})
	if err != nil {
		author.ID = id
	}
	return dberr.Wrap(err, resource)
}

// DeleteByID removes the author. Book and genre links go with it by cascade.
func (repository *PostgresRepository) DeleteByID(context context.Context, id int64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.CatalogAuthor.Table, schema.CatalogAuthor.ID)
	result, err := repository.db.ExecContext(context, query, id)
	if err != nil {
		return dberr.Wrap(err, resource)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return apperr.NotFound(resource)
	}
	return nil
}
