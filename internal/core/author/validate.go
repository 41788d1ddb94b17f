// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package author

import (
	"strings"

	"github.com/taibuivan/folio/internal/domain"
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/pkg/pointer"
	"github.com/taibuivan/folio/pkg/slice"
)

// MaxNameLength bounds each part of an author's name.
const MaxNameLength = 100

// Normalize fills the defaults of an author about to be created.
func Normalize(author *domain.Author) {
	author.BookIDs = slice.OrEmpty(author.BookIDs)
	author.GenreIDs = slice.OrEmpty(author.GenreIDs)
}

// Validate checks presence, then shape. Authors carry no unique keys.
func Validate(author *domain.Author) error {
	presence := &validate.Validator{}
	presence.
		Present(domain.FieldFirstName, author.FirstName != nil).
		Present(domain.FieldMiddleName, author.MiddleName != nil).
		Present(domain.FieldLastName, author.LastName != nil).
		Present(domain.FieldBooks, author.BookIDs != nil).
		Present(domain.FieldGenres, author.GenreIDs != nil)
	if err := presence.Err(); err != nil {
		return err
	}

	first, last := pointer.Val(author.FirstName), pointer.Val(author.LastName)
	shape := &validate.Validator{}
	return shape.
		Custom(domain.FieldLastName, strings.TrimSpace(first) == "" && strings.TrimSpace(last) == "",
			"Either first or last name must be set").
		MaxLen(domain.FieldFirstName, first, MaxNameLength).
		MaxLen(domain.FieldMiddleName, pointer.Val(author.MiddleName), MaxNameLength).
		MaxLen(domain.FieldLastName, last, MaxNameLength).
		Err()
}
