// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package memory

import (
	"context"
	"strings"

	"github.com/taibuivan/folio/internal/domain"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/pkg/pointer"
)

// # Authors

// AuthorRepository implements [domain.AuthorRepository].
type AuthorRepository struct {
	store *Store
}

func (store *Store) readAuthor(row *domain.Author) *domain.Author {
	author := row.Clone()
	author.BookIDs = []int64{}
	for _, id := range store.books.ids() {
		if contains(store.books.rows[id].AuthorIDs, author.ID) {
			author.BookIDs = append(author.BookIDs, id)
		}
	}
	return author
}

func (repository *AuthorRepository) FindByID(_ context.Context, id int64) (*domain.Author, error) {
	repository.store.mu.RLock()
	defer repository.store.mu.RUnlock()

	row, ok := repository.store.authors.rows[id]
	if !ok {
		return nil, apperr.NotFound("Author")
	}
	return repository.store.readAuthor(row), nil
}

func (repository *AuthorRepository) FindByIDs(_ context.Context, ids []int64) ([]*domain.Author, error) {
	repository.store.mu.RLock()
	defer repository.store.mu.RUnlock()

	rows := repository.store.authors.selectIDs(ids)
	out := make([]*domain.Author, len(rows))
	for i, row := range rows {
		out[i] = repository.store.readAuthor(row)
	}
	return out, nil
}

func (repository *AuthorRepository) FindAll(context context.Context) ([]*domain.Author, error) {
	return repository.Search(context, domain.AuthorFilter{})
}

func (repository *AuthorRepository) Search(_ context.Context, filter domain.AuthorFilter) ([]*domain.Author, error) {
	repository.store.mu.RLock()
	defer repository.store.mu.RUnlock()

	out := []*domain.Author{}
	for _, id := range repository.store.authors.ids() {
		row := repository.store.authors.rows[id]
		if hasPrefix(row.FirstName, filter.FirstName) &&
			hasPrefix(row.MiddleName, filter.MiddleName) &&
			hasPrefix(row.LastName, filter.LastName) {
			out = append(out, repository.store.readAuthor(row))
		}
	}
	return out, nil
}

func (repository *AuthorRepository) Count(_ context.Context) (int, error) {
	repository.store.mu.RLock()
	defer repository.store.mu.RUnlock()
	return len(repository.store.authors.rows), nil
}

func (repository *AuthorRepository) Save(_ context.Context, author *domain.Author) error {
	store := repository.store
	store.mu.Lock()
	defer store.mu.Unlock()

	if author.ID != 0 && !store.authors.has(author.ID) {
		return apperr.NotFound("Author")
	}
	if err := missingReference(&store.genres, domain.FieldGenres, author.GenreIDs...); err != nil {
		return err
	}

	if author.ID == 0 {
		author.ID = store.authors.nextID()
	}
	row := author.Clone()
	row.BookIDs = nil
	row.GenreIDs = domain.SortedIDs(author.GenreIDs)
	store.authors.rows[row.ID] = row
	return nil
}

func (repository *AuthorRepository) DeleteByID(_ context.Context, id int64) error {
	store := repository.store
	store.mu.Lock()
	defer store.mu.Unlock()

	if !store.authors.has(id) {
		return apperr.NotFound("Author")
	}
	delete(store.authors.rows, id)
	for _, book := range store.books.rows {
		book.AuthorIDs = without(book.AuthorIDs, id)
	}
	return nil
}

// # Books

// BookRepository implements [domain.BookRepository].
type BookRepository struct {
	store *Store
}

func (store *Store) readBook(row *domain.Book) *domain.Book {
	book := row.Clone()
	book.CommentIDs = []int64{}
	for _, id := range store.comments.ids() {
		if store.comments.rows[id].BookID == book.ID {
			book.CommentIDs = append(book.CommentIDs, id)
		}
	}
	return book
}

func (repository *BookRepository) FindByID(_ context.Context, id int64) (*domain.Book, error) {
	repository.store.mu.RLock()
	defer repository.store.mu.RUnlock()

	row, ok := repository.store.books.rows[id]
	if !ok {
		return nil, apperr.NotFound("Book")
	}
	return repository.store.readBook(row), nil
}

func (repository *BookRepository) FindByIDs(_ context.Context, ids []int64) ([]*domain.Book, error) {
	repository.store.mu.RLock()
	defer repository.store.mu.RUnlock()

	rows := repository.store.books.selectIDs(ids)
	out := make([]*domain.Book, len(rows))
	for i, row := range rows {
		out[i] = repository.store.readBook(row)
	}
	return out, nil
}

func (repository *BookRepository) FindAll(_ context.Context) ([]*domain.Book, error) {
	repository.store.mu.RLock()
	defer repository.store.mu.RUnlock()

	ids := repository.store.books.ids()
	out := make([]*domain.Book, len(ids))
	for i, id := range ids {
		out[i] = repository.store.readBook(repository.store.books.rows[id])
	}
	return out, nil
}

func (repository *BookRepository) Count(_ context.Context) (int, error) {
	repository.store.mu.RLock()
	defer repository.store.mu.RUnlock()
	return len(repository.store.books.rows), nil
}

func (repository *BookRepository) Save(_ context.Context, book *domain.Book) error {
	store := repository.store
	store.mu.Lock()
	defer store.mu.Unlock()

	if book.ID != 0 && !store.books.has(book.ID) {
		return apperr.NotFound("Book")
	}
	if err := missingReference(&store.authors, domain.FieldAuthors, book.AuthorIDs...); err != nil {
		return err
	}
	if err := missingReference(&store.genres, domain.FieldGenres, book.GenreIDs...); err != nil {
		return err
	}

	if book.ID == 0 {
		book.ID = store.books.nextID()
	}
	row := book.Clone()
	row.CommentIDs = nil
	row.AuthorIDs = domain.SortedIDs(book.AuthorIDs)
	row.GenreIDs = domain.SortedIDs(book.GenreIDs)
	store.books.rows[row.ID] = row
	return nil
}

func (repository *BookRepository) DeleteByID(_ context.Context, id int64) error {
	store := repository.store
	store.mu.Lock()
	defer store.mu.Unlock()

	if !store.books.has(id) {
		return apperr.NotFound("Book")
	}
	delete(store.books.rows, id)
	for commentID, comment := range store.comments.rows {
		if comment.BookID == id {
			delete(store.comments.rows, commentID)
		}
	}
	return nil
}

// # Genres

// GenreRepository implements [domain.GenreRepository].
type GenreRepository struct {
	store *Store
}

func (store *Store) readGenre(row *domain.Genre) *domain.Genre {
	genre := row.Clone()
	genre.BookIDs = []int64{}
	genre.AuthorIDs = []int64{}
	for _, id := range store.books.ids() {
		if contains(store.books.rows[id].GenreIDs, genre.ID) {
			genre.BookIDs = append(genre.BookIDs, id)
		}
	}
	for _, id := range store.authors.ids() {
		if contains(store.authors.rows[id].GenreIDs, genre.ID) {
			genre.AuthorIDs = append(genre.AuthorIDs, id)
		}
	}
	return genre
}

func (repository *GenreRepository) FindByID(_ context.Context, id int64) (*domain.Genre, error) {
	repository.store.mu.RLock()
	defer repository.store.mu.RUnlock()

	row, ok := repository.store.genres.rows[id]
	if !ok {
		return nil, apperr.NotFound("Genre")
	}
	return repository.store.readGenre(row), nil
}

func (repository *GenreRepository) FindByIDs(_ context.Context, ids []int64) ([]*domain.Genre, error) {
	repository.store.mu.RLock()
	defer repository.store.mu.RUnlock()

	rows := repository.store.genres.selectIDs(ids)
	out := make([]*domain.Genre, len(rows))
	for i, row := range rows {
		out[i] = repository.store.readGenre(row)
	}
	return out, nil
}

func (repository *GenreRepository) FindAll(context context.Context) ([]*domain.Genre, error) {
	return repository.SearchByPrefix(context, "")
}

func (repository *GenreRepository) SearchByPrefix(_ context.Context, prefix string) ([]*domain.Genre, error) {
	repository.store.mu.RLock()
	defer repository.store.mu.RUnlock()

	out := []*domain.Genre{}
	for _, id := range repository.store.genres.ids() {
		row := repository.store.genres.rows[id]
		if hasPrefix(row.Name, prefix) {
			out = append(out, repository.store.readGenre(row))
		}
	}
	return out, nil
}

func (repository *GenreRepository) Count(_ context.Context) (int, error) {
	repository.store.mu.RLock()
	defer repository.store.mu.RUnlock()
	return len(repository.store.genres.rows), nil
}

func (repository *GenreRepository) ExistsByName(_ context.Context, name string, excludeID int64) (bool, error) {
	repository.store.mu.RLock()
	defer repository.store.mu.RUnlock()
	return !claim(repository.store.genreNames, lowerKey(name), excludeID), nil
}

func (repository *GenreRepository) Save(_ context.Context, genre *domain.Genre) error {
	store := repository.store
	store.mu.Lock()
	defer store.mu.Unlock()

	previous, exists := store.genres.rows[genre.ID]
	if genre.ID != 0 && !exists {
		return apperr.NotFound("Genre")
	}

	key := lowerKey(pointer.Val(genre.Name))
	if !claim(store.genreNames, key, genre.ID) {
		return apperr.Conflict("Genre already exists")
	}

	if genre.ID == 0 {
		genre.ID = store.genres.nextID()
	}
	if exists {
		release(store.genreNames, lowerKey(pointer.Val(previous.Name)), genre.ID)
	}
	store.genreNames[key] = genre.ID

	row := genre.Clone()
	row.BookIDs = nil
	row.AuthorIDs = nil
	store.genres.rows[row.ID] = row
	return nil
}

func (repository *GenreRepository) DeleteByID(_ context.Context, id int64) error {
	store := repository.store
	store.mu.Lock()
	defer store.mu.Unlock()

	row, ok := store.genres.rows[id]
	if !ok {
		return apperr.NotFound("Genre")
	}
	release(store.genreNames, lowerKey(pointer.Val(row.Name)), id)
	delete(store.genres.rows, id)
	for _, book := range store.books.rows {
		book.GenreIDs = without(book.GenreIDs, id)
	}
	for _, author := range store.authors.rows {
		author.GenreIDs = without(author.GenreIDs, id)
	}
	return nil
}

func hasPrefix(value *string, prefix string) bool {
	if prefix == "" {
		return true
	}
	return strings.HasPrefix(lowerKey(pointer.Val(value)), lowerKey(prefix))
}
