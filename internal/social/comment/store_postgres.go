package comment

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

const resource = "Comment"

// PostgresRepository implements [domain.CommentRepository] on social.comment.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var selectComments = fmt.Sprintf("SELECT %s FROM %s",
	schema.List(schema.SocialComment.Columns()), schema.SocialComment.Table)

var orderByID = " ORDER BY " + schema.SocialComment.ID

type scanner interface {
	Scan(dest ...any) error
}

func scanComment(row scanner) (*domain.Comment, error) {
	var (
		comment domain.Comment
		text    sql.NullString
		rating  sql.NullInt64
	)
	err := row.Scan(&comment.ID, &text, &rating, &comment.UserID, &comment.BookID, &comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		return nil, err
	}
	comment.Text = database.StringPtr(text)
	comment.Rating = database.Int64Ptr(rating)
	return &comment, nil
}

func (repository *PostgresRepository) query(context context.Context, query string, args ...any) ([]*domain.Comment, error) {
	rows, err := repository.db.QueryContext(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, resource)
	}
	defer rows.Close()

	comments := []*domain.Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, dberr.Wrap(err, resource)
		}
		comments = append(comments, comment)
	}
	return comments, dberr.Wrap(rows.Err(), resource)
}

func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*domain.Comment, error) {
	query := selectComments + fmt.Sprintf(" WHERE %s = $1", schema.SocialComment.ID)
	comment, err := scanComment(repository.db.QueryRowContext(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resource)
	}
	return comment, nil
}

func (repository *PostgresRepository) FindByIDs(context context.Context, ids []int64) ([]*domain.Comment, error) {
	if len(ids) == 0 {
		return []*domain.Comment{}, nil
	}
	query := selectComments + fmt.Sprintf(" WHERE %s IN (%s)", schema.SocialComment.ID, database.Placeholders(1, len(ids))) + orderByID
	return repository.query(context, query, database.Int64Args(ids)...)
}

func (repository *PostgresRepository) FindAll(context context.Context) ([]*domain.Comment, error) {
	return repository.query(context, selectComments+orderByID)
}

func (repository *PostgresRepository) Count(context context.Context) (int, error) {
	var total int
	query := fmt.Sprintf("SELECT count(*) FROM %s", schema.SocialComment.Table)
	if err := repository.db.QueryRowContext(context, query).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, resource)
	}
	return total, nil
}

// Save inserts or replaces the comment. Unknown users or books fail the foreign keys.
func (repository *PostgresRepository) Save(context context.Context, comment *domain.Comment) error {
	columns := schema.SocialComment.Columns()[1:]
	args := []any{
		database.NullString(comment.Text), database.NullInt64(comment.Rating),
		comment.UserID, comment.BookID, comment.CreatedAt, comment.UpdatedAt,
	}

	if comment.ID == 0 {
		query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
			schema.SocialComment.Table, schema.List(columns), database.Placeholders(1, len(columns)), schema.SocialComment.ID)

		var id int64
		if err := repository.db.QueryRowContext(context, query, args...).Scan(&id); err != nil {
			return dberr.Wrap(err, resource)
		}
		comment.ID = id
		return nil
	}

	query := fmt.Sprintf("UPDATE %s SET (%s) = (%s) WHERE %s = $%d",
		schema.SocialComment.Table, schema.List(columns), database.Placeholders(1, len(columns)),
		schema.SocialComment.ID, len(columns)+1)
	result, err := repository.db.ExecContext(context, query, append(args, comment.ID)...)
	if err != nil {
		return dberr.Wrap(err, resource)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return apperr.NotFound(resource)
	}
	return nil
}

func (repository *PostgresRepository) DeleteByID(context context.Context, id int64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.SocialComment.Table, schema.SocialComment.ID)
	result, err := repository.db.ExecContext(context, query, id)
	if err != nil {
		return dberr.Wrap(err, resource)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return apperr.NotFound(resource)
	}
	return nil
}
