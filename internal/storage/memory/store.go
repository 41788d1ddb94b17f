// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package memory is an in-process storage backend implementing the domain repositories.

All tables live behind one lock so reference checks, unique keys and cascades
are applied atomically, the same guarantees the PostgreSQL schema gives through
constraints. Entities are cloned on the way in and on the way out.
*/
package memory

import (
	"maps"
	"slices"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/taibuivan/folio/internal/domain"
	"github.com/taibuivan/folio/internal/platform/apperr"
)

// Store holds every table of the catalog.
type Store struct {
	mu sync.RWMutex

	authors  table[domain.Author]
	books    table[domain.Book]
	genres   table[domain.Genre]
	comments table[domain.Comment]
	users    table[domain.User]

	// Unique indexes keyed by lower-cased value.
	genreNames map[string]int64
	usernames  map[string]int64
	emails     map[string]int64
}

// New returns an empty store.
func New() *Store {
	return &Store{
		authors:    newTable[domain.Author](),
		books:      newTable[domain.Book](),
		genres:     newTable[domain.Genre](),
		comments:   newTable[domain.Comment](),
		users:      newTable[domain.User](),
		genreNames: make(map[string]int64),
		usernames:  make(map[string]int64),
		emails:     make(map[string]int64),
	}
}

// Repositories exposes the store through the domain contracts.
func (store *Store) Repositories() domain.Store {
	return domain.Store{
		Authors:  &AuthorRepository{store: store},
		Books:    &BookRepository{store: store},
		Genres:   &GenreRepository{store: store},
		Comments: &CommentRepository{store: store},
		Users:    &UserRepository{store: store},
	}
}

// # Tables

type table[T any] struct {
	rows map[int64]*T
	last int64
}

func newTable[T any]() table[T] {
	return table[T]{rows: make(map[int64]*T)}
}

func (t *table[T]) nextID() int64 {
	t.last++
	return t.last
}

func (t *table[T]) has(id int64) bool {
	_, ok := t.rows[id]
	return ok
}

// ids returns the primary keys in ascending order.
func (t *table[T]) ids() []int64 {
	return slices.Sorted(maps.Keys(t.rows))
}

// select returns the rows with the given ids, in ascending id order, skipping unknown ids.
func (t *table[T]) selectIDs(ids []int64) []*T {
	out := make([]*T, 0, len(ids))
	for _, id := range domain.SortedIDs(ids) {
		if row, ok := t.rows[id]; ok {
			out = append(out, row)
		}
	}
	return out
}

// # Helpers

// lowerKey matches the PostgreSQL lower() used by the unique indexes, so both
// backends agree on which names collide. Full case folding would not: it maps
// "ß" to "ss" where lower() leaves it alone.
func lowerKey(value string) string {
	return cases.Lower(language.Und).String(value)
}

// missingReference reports the first id in ids that table t does not contain.
func missingReference[T any](t *table[T], field string, ids ...int64) error {
	for _, id := range ids {
		if !t.has(id) {
			return apperr.ValidationError("Referenced resource does not exist",
				apperr.FieldError{Field: field, Message: "Unknown id"})
		}
	}
	return nil
}

// claim reserves key in index for id. It fails when another row already holds key.
func claim(index map[string]int64, key string, id int64) bool {
	owner, taken := index[key]
	return !taken || owner == id
}

// release drops key from index when id holds it.
func release(index map[string]int64, key string, id int64) {
	if owner, ok := index[key]; ok && owner == id {
		delete(index, key)
	}
}

func without(ids []int64, id int64) []int64 {
	return slices.DeleteFunc(ids, func(v int64) bool { return v == id })
}

func contains(ids []int64, id int64) bool {
	return slices.Contains(ids, id)
}
