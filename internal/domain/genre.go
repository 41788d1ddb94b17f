// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package domain

import (
	"slices"
	"time"

	"github.com/taibuivan/folio/internal/platform/view"
	"github.com/taibuivan/folio/pkg/pointer"
)

// Genre classifies books and authors. Names are unique regardless of case.
//
// BookIDs and AuthorIDs are both derived.
type Genre struct {
	ID        int64     `json:"id"`
	Name      *string   `json:"name"`
	BookIDs   []int64   `json:"books"`
	AuthorIDs []int64   `json:"authors"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"lastModifiedAt"`
}

// Fields implements [view.Source].
func (genre *Genre) Fields() []view.Field {
	return []view.Field{
		{Name: FieldID, View: view.Public, Value: genre.ID},
		{Name: FieldName, View: view.Public, Value: genre.Name},
		{Name: FieldBooks, View: view.Admin, Value: genre.BookIDs},
		{Name: FieldAuthors, View: view.Admin, Value: genre.AuthorIDs},
		{Name: FieldCreatedAt, View: view.Admin, Value: genre.CreatedAt},
		{Name: FieldLastModifiedAt, View: view.Admin, Value: genre.UpdatedAt},
	}
}

// Clone returns a deep copy.
func (genre *Genre) Clone() *Genre {
	out := *genre
	out.Name = pointer.Clone(genre.Name)
	out.BookIDs = slices.Clone(genre.BookIDs)
	out.AuthorIDs = slices.Clone(genre.AuthorIDs)
	return &out
}
