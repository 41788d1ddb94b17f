// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"github.com/taibuivan/folio/internal/domain"
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/pkg/pointer"
	"github.com/taibuivan/folio/pkg/slice"
)

const (
	MaxNameLength        = 200
	MaxDescriptionLength = 2000
)

// Normalize fills the defaults of a book about to be created. New books start unrated.
func Normalize(book *domain.Book) {
	book.AuthorIDs = slice.OrEmpty(book.AuthorIDs)
	book.GenreIDs = slice.OrEmpty(book.GenreIDs)
	book.CommentIDs = slice.OrEmpty(book.CommentIDs)
	book.Rating = pointer.To(int64(0))
}

// Validate checks presence, then shape.
func Validate(book *domain.Book) error {
	presence := &validate.Validator{}
	presence.
		Present(domain.FieldName, book.Name != nil).
		Present(domain.FieldPagesCount, book.PagesCount != nil).
		Present(domain.FieldAvatar, book.Avatar != nil).
		Present(domain.FieldPublicationYear, book.PublicationYear != nil).
		Present(domain.FieldShortDescription, book.ShortDescription != nil).
		Present(domain.FieldRating, book.Rating != nil).
		Present(domain.FieldAuthors, book.AuthorIDs != nil).
		Present(domain.FieldGenres, book.GenreIDs != nil).
		Present(domain.FieldComments, book.CommentIDs != nil)
	if err := presence.Err(); err != nil {
		return err
	}

	shape := &validate.Validator{}
	return shape.
		Required(domain.FieldName, *book.Name).
		MaxLen(domain.FieldName, *book.Name, MaxNameLength).
		MaxLen(domain.FieldShortDescription, *book.ShortDescription, MaxDescriptionLength).
		NonNegative(domain.FieldPagesCount, *book.PagesCount).
		Custom(domain.FieldRating, *book.Rating < 0, "Must not be negative").
		Err()
}
