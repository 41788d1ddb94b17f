package genre

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

const resource = "Genre"

// PostgresRepository implements [domain.GenreRepository] on catalog.genre.
//
// Name uniqueness is enforced by the unique index on lower(name).
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var selectGenres = fmt.Sprintf(`
	SELECT g.%s, g.%s, g.%s, g.%s, %s, %s
	FROM %s g
`,
	schema.CatalogGenre.ID, schema.CatalogGenre.Name, schema.CatalogGenre.CreatedAt, schema.CatalogGenre.UpdatedAt,
	database.IDList(schema.CatalogBookGenre.Owner, schema.CatalogBookGenre.Table, schema.CatalogBookGenre.Target, "g."+schema.CatalogGenre.ID),
	database.IDList(schema.CatalogAuthorGenre.Owner, schema.CatalogAuthorGenre.Table, schema.CatalogAuthorGenre.Target, "g."+schema.CatalogGenre.ID),
	schema.CatalogGenre.Table,
)

var orderByID = fmt.Sprintf(" ORDER BY g.%s", schema.CatalogGenre.ID)

type scanner interface {
	Scan(dest ...any) error
}

func scanGenre(row scanner) (*domain.Genre, error) {
	var (
		genre                domain.Genre
		name                 sql.NullString
		bookList, authorList string
	)
	if err := row.Scan(&genre.ID, &name, &genre.CreatedAt, &genre.UpdatedAt, &bookList, &authorList); err != nil {
		return nil, err
	}

	genre.Name = database.StringPtr(name)

	var err error
	if genre.BookIDs, err = database.ParseIDs(bookList); err != nil {
		return nil, err
	}
	if genre.AuthorIDs, err = database.ParseIDs(authorList); err != nil {
		return nil, err
	}
	return &genre, nil
}

func (repository *PostgresRepository) query(context context.Context, query string, args ...any) ([]*domain.Genre, error) {
	rows, err := repository.db.QueryContext(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, resource)
	}
	defer rows.Close()

	genres := []*domain.Genre{}
	for rows.Next() {
		genre, err := scanGenre(rows)
		if err != nil {
			return nil, dberr.Wrap(err, resource)
		}
		genres = append(genres, genre)
	}
	return genres, dberr.Wrap(rows.Err(), resource)
}

func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*domain.Genre, error) {
	query := selectGenres + fmt.Sprintf(" WHERE g.%s = $1", schema.CatalogGenre.ID)
	genre, err := scanGenre(repository.db.QueryRowContext(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resource)
	}
	return genre, nil
}

func (repository *PostgresRepository) FindByIDs(context context.Context, ids []int64) ([]*domain.Genre, error) {
	if len(ids) == 0 {
		return []*domain.Genre{}, nil
	}
	query := selectGenres + fmt.Sprintf(" WHERE g.%s IN (%s)", schema.CatalogGenre.ID, database.Placeholders(1, len(ids))) + orderByID
	return repository.query(context, query, database.Int64Args(ids)...)
}

func (repository *PostgresRepository) FindAll(context context.Context) ([]*domain.Genre, error) {
	return repository.query(context, selectGenres+orderByID)
}

func (repository *PostgresRepository) SearchByPrefix(context context.Context, prefix string) ([]*domain.Genre, error) {
	query := selectGenres + fmt.Sprintf(" WHERE starts_with(lower(g.%s), lower($1))", schema.CatalogGenre.Name) + orderByID
	return repository.query(context, query, prefix)
}

func (repository *PostgresRepository) Count(context context.Context) (int, error) {
	var total int
	query := fmt.Sprintf("SELECT count(*) FROM %s", schema.CatalogGenre.Table)
	if err := repository.db.QueryRowContext(context, query).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, resource)
	}
	return total, nil
}

func (repository *PostgresRepository) ExistsByName(context context.Context, name string, excludeID int64) (bool, error) {
	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE lower(%s) = lower($1) AND %s <> $2)",
		schema.CatalogGenre.Table, schema.CatalogGenre.Name, schema.CatalogGenre.ID)

	var exists bool
	if err := repository.db.QueryRowContext(context, query, name, excludeID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, resource)
	}
	return exists, nil
}

func (repository *PostgresRepository) Save(context context.Context, genre *domain.Genre) error {
	if genre.ID == 0 {
		query := fmt.Sprintf("INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3) RETURNING %s",
			schema.CatalogGenre.Table, schema.CatalogGenre.Name, schema.CatalogGenre.CreatedAt,
			schema.CatalogGenre.UpdatedAt, schema.CatalogGenre.ID)

		var id int64
		err := repository.db.QueryRowContext(context, query, database.NullString(genre.Name), genre.CreatedAt, genre.UpdatedAt).Scan(&id)
		if err != nil {
			return dberr.Wrap(err, resource)
		}
		genre.ID = id
		return nil
	}

	query := fmt.Sprintf("UPDATE %s SET %s = $1, %s = $2, %s = $3 WHERE %s = $4",
		schema.CatalogGenre.Table, schema.CatalogGenre.Name, schema.CatalogGenre.CreatedAt,
		schema.CatalogGenre.UpdatedAt, schema.CatalogGenre.ID)
	result, err := repository.db.ExecContext(context, query, database.NullString(genre.Name), genre.CreatedAt, genre.UpdatedAt, genre.ID)
	if err != nil {
		return dberr.Wrap(err, resource)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return apperr.NotFound(resource)
	}
	return nil
}

func (repository *PostgresRepository) DeleteByID(context context.Context, id int64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.CatalogGenre.Table, schema.CatalogGenre.ID)
	result, err := repository.db.ExecContext(context, query, id)
	if err != nil {
		return dberr.Wrap(err, resource)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return apperr.NotFound(resource)
	}
	return nil
}
