// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package domain

import (
	"slices"
	"time"

	"github.com/taibuivan/folio/internal/platform/view"
	"github.com/taibuivan/folio/pkg/pointer"
)

// Author is a writer of books.
//
// BookIDs is derived from the books that list the author. GenreIDs is owned.
type Author struct {
	ID         int64     `json:"id"`
	FirstName  *string   `json:"firstName"`
	MiddleName *string   `json:"middleName"`
	LastName   *string   `json:"lastName"`
	BookIDs    []int64   `json:"books"`
	GenreIDs   []int64   `json:"genres"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"lastModifiedAt"`
}

// Fields implements [view.Source].
func (author *Author) Fields() []view.Field {
	return []view.Field{
		{Name: FieldID, View: view.Public, Value: author.ID},
		{Name: FieldFirstName, View: view.Public, Value: author.FirstName},
		{Name: FieldMiddleName, View: view.Public, Value: author.MiddleName},
		{Name: FieldLastName, View: view.Public, Value: author.LastName},
		{Name: FieldBooks, View: view.Admin, Value: author.BookIDs},
		{Name: FieldGenres, View: view.Admin, Value: author.GenreIDs},
		{Name: FieldCreatedAt, View: view.Admin, Value: author.CreatedAt},
		{Name: FieldLastModifiedAt, View: view.Admin, Value: author.UpdatedAt},
	}
}

// Clone returns a deep copy.
func (author *Author) Clone() *Author {
	out := *author
	out.FirstName = pointer.Clone(author.FirstName)
	out.MiddleName = pointer.Clone(author.MiddleName)
	out.LastName = pointer.Clone(author.LastName)
	out.BookIDs = slices.Clone(author.BookIDs)
	out.GenreIDs = slices.Clone(author.GenreIDs)
	return &out
}
