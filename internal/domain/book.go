// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package domain

import (
	"slices"
	"time"

	"github.com/taibuivan/folio/internal/platform/view"
	"github.com/taibuivan/folio/pkg/pointer"
)

// Book is a catalog entry.
//
// AuthorIDs and GenreIDs are owned. CommentIDs is derived from the comments on the book.
type Book struct {
	ID               int64     `json:"id"`
	Name             *string   `json:"name"`
	PagesCount       *int      `json:"pagesCount"`
	Avatar           *string   `json:"avatar"`
	PublicationYear  *int      `json:"publicationYear"`
	ShortDescription *string   `json:"shortDescription"`
	Rating           *int64    `json:"rating"`
	AuthorIDs        []int64   `json:"authors"`
	GenreIDs         []int64   `json:"genres"`
	CommentIDs       []int64   `json:"comments"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"lastModifiedAt"`
}

// Fields implements [view.Source].
func (book *Book) Fields() []view.Field {
	return []view.Field{
		{Name: FieldID, View: view.Public, Value: book.ID},
		{Name: FieldName, View: view.Public, Value: book.Name},
		{Name: FieldPagesCount, View: view.Public, Value: book.PagesCount},
		{Name: FieldAvatar, View: view.Public, Value: book.Avatar},
		{Name: FieldPublicationYear, View: view.Public, Value: book.PublicationYear},
		{Name: FieldShortDescription, View: view.Public, Value: book.ShortDescription},
		{Name: FieldRating, View: view.Public, Value: book.Rating},
		{Name: FieldAuthors, View: view.Admin, Value: book.AuthorIDs},
		{Name: FieldGenres, View: view.Admin, Value: book.GenreIDs},
		{Name: FieldComments, View: view.Admin, Value: book.CommentIDs},
		{Name: FieldCreatedAt, View: view.Admin, Value: book.CreatedAt},
		{Name: FieldLastModifiedAt, View: view.Admin, Value: book.UpdatedAt},
	}
}

// Clone returns a deep copy.
func (book *Book) Clone() *Book {
	out := *book
	out.Name = pointer.Clone(book.Name)
	out.PagesCount = pointer.Clone(book.PagesCount)
	out.Avatar = pointer.Clone(book.Avatar)
	out.PublicationYear = pointer.Clone(book.PublicationYear)
	out.ShortDescription = pointer.Clone(book.ShortDescription)
	out.Rating = pointer.Clone(book.Rating)
	out.AuthorIDs = slices.Clone(book.AuthorIDs)
	out.GenreIDs = slices.Clone(book.GenreIDs)
	out.CommentIDs = slices.Clone(book.CommentIDs)
	return &out
}
