package book

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

const resource = "Book"

// PostgresRepository implements [domain.BookRepository] on catalog.book.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var selectBooks = fmt.Sprintf(`
	SELECT b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, %s, %s, %s
	FROM %s b
`,
	schema.CatalogBook.ID, schema.CatalogBook.Name, schema.CatalogBook.PagesCount, schema.CatalogBook.Avatar,
	schema.CatalogBook.PublicationYear, schema.CatalogBook.ShortDescription, schema.CatalogBook.Rating,
	schema.CatalogBook.CreatedAt, schema.CatalogBook.UpdatedAt,
	database.IDList(schema.CatalogBookAuthor.Target, schema.CatalogBookAuthor.Table, schema.CatalogBookAuthor.Owner, "b."+schema.CatalogBook.ID),
	database.IDList(schema.CatalogBookGenre.Target, schema.CatalogBookGenre.Table, schema.CatalogBookGenre.Owner, "b."+schema.CatalogBook.ID),
	database.IDList(schema.SocialComment.ID, schema.SocialComment.Table, schema.SocialComment.BookID, "b."+schema.CatalogBook.ID),
	schema.CatalogBook.Table,
)

var orderByID = fmt.Sprintf(" ORDER BY b.%s", schema.CatalogBook.ID)

type scanner interface {
	Scan(dest ...any) error
}

func scanBook(row scanner) (*domain.Book, error) {
	var (
		book                               domain.Book
		name, avatar, description          sql.NullString
		pages, year, rating                sql.NullInt64
		authorList, genreList, commentList string
	)
	err := row.Scan(&book.ID, &name, &pages, &avatar, &year, &description, &rating,
		&book.CreatedAt, &book.UpdatedAt, &authorList, &genreList, &commentList)
	if err != nil {
		return nil, err
	}

	book.Name = database.StringPtr(name)
	book.PagesCount = database.IntPtr(pages)
	book.Avatar = database.StringPtr(avatar)
	book.PublicationYear = database.IntPtr(year)
	book.ShortDescription = database.StringPtr(description)
	book.Rating = database.Int64Ptr(rating)

	if book.AuthorIDs, err = database.ParseIDs(authorList); err != nil {
		return nil, err
	}
	if book.GenreIDs, err = database.ParseIDs(genreList); err != nil {
		return nil, err
	}
	if book.CommentIDs, err = database.ParseIDs(commentList); err != nil {
		return nil, err
	}
	return &book, nil
}

func (repository *PostgresRepository) query(context context.Context, query string, args ...any) ([]*domain.Book, error) {
	rows, err := repository.db.QueryContext(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, resource)
	}
	defer rows.Close()

	books := []*domain.Book{}
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, dberr.Wrap(err, resource)
		}
		books = append(books, book)
	}
	return books, dberr.Wrap(rows.Err(), resource)
}

func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*domain.Book, error) {
	query := selectBooks + fmt.Sprintf(" WHERE b.%s = $1", schema.CatalogBook.ID)
	book, err := scanBook(repository.db.QueryRowContext(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resource)
	}
	return book, nil
}

func (repository *PostgresRepository) FindByIDs(context context.Context, ids []int64) ([]*domain.Book, error) {
	if len(ids) == 0 {
		return []*domain.Book{}, nil
	}
	query := selectBooks + fmt.Sprintf(" WHERE b.%s IN (%s)", schema.CatalogBook.ID, database.Placeholders(1, len(ids))) + orderByID
	return repository.query(context, query, database.Int64Args(ids)...)
}

func (repository *PostgresRepository) FindAll(context context.Context) ([]*domain.Book, error) {
	return repository.query(context, selectBooks+orderByID)
}

func (repository *PostgresRepository) Count(context context.Context) (int, error) {
	var total int
	query := fmt.Sprintf("SELECT count(*) FROM %s", schema.CatalogBook.Table)
	if err := repository.db.QueryRowContext(context, query).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, resource)
	}
	return total, nil
}

// Save writes the row and replaces its author and genre links in one transaction.
func (repository *PostgresRepository) Save(context context.Context, book *domain.Book) error {
	id := book.ID
	err := database.WithTx(context, repository.db, func(tx *sql.Tx) error {
		args := []any{
			database.NullString(book.Name), database.NullInt(book.PagesCount), database.NullString(book.Avatar),
			database.NullInt(book.PublicationYear), database.NullString(book.ShortDescription),
			database.NullInt64(book.Rating), book.CreatedAt, book.UpdatedAt,
		}
		columns := []string{
			schema.CatalogBook.Name, schema.CatalogBook.PagesCount, schema.CatalogBook.Avatar,
			schema.CatalogBook.PublicationYear, schema.CatalogBook.ShortDescription,
			schema.CatalogBook.Rating, schema.CatalogBook.CreatedAt, schema.CatalogBook.UpdatedAt,
		}

		if book.ID == 0 {
			query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
				schema.CatalogBook.Table, schema.List(columns), database.Placeholders(1, len(columns)), schema.CatalogBook.ID)
			if err := tx.QueryRowContext(context, query, args...).Scan(&book.ID); err != nil {
				return err
			}
		} else {
			query := fmt.Sprintf("UPDATE %s SET (%s) = (%s) WHERE %s = $%d",
				schema.CatalogBook.Table, schema.List(columns), database.Placeholders(1, len(columns)),
				schema.CatalogBook.ID, len(columns)+1)
			result, err := tx.ExecContext(context, query, append(args, book.ID)...)
			if err != nil {
				return err
			}
			if affected, _ := result.RowsAffected(); affected == 0 {
				return apperr.NotFound(resource)
			}
		}

		if err := database.ReplaceLinks(context, tx, schema.CatalogBookAuthor, book.ID, domain.SortedIDs(book.AuthorIDs)); err != nil {
			return err
		}
		return database.ReplaceLinks(context, tx, schema.CatalogBookGenre, book.ID, domain.SortedIDs(book.GenreIDs))
	})
	if err != nil {
		book.ID = id
	}
	return dberr.Wrap(err, resource)
}

// DeleteByID removes the book. Links and comments go with it by cascade.
func (repository *PostgresRepository) DeleteByID(context context.Context, id int64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.CatalogBook.Table, schema.CatalogBook.ID)
	result, err := repository.db.ExecContext(context, query, id)
	if err != nil {
		return dberr.Wrap(err, resource)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return apperr.NotFound(resource)
	}
	return nil
}
