// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import (
	"context"

	"github.com/taibuivan/folio/internal/domain"
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/pkg/slice"
)

const MaxNameLength = 64

// Normalize fills the defaults of a genre about to be created.
func Normalize(genre *domain.Genre) {
	genre.BookIDs = slice.OrEmpty(genre.BookIDs)
	genre.AuthorIDs = slice.OrEmpty(genre.AuthorIDs)
}

// Validate checks presence, shape and, when asked, that no other genre has the name.
func Validate(context context.Context, genre *domain.Genre, repo domain.GenreRepository, opts validate.Options) error {
	presence := &validate.Validator{}
	presence.
		Present(domain.FieldName, genre.Name != nil).
		Present(domain.FieldBooks, genre.BookIDs != nil).
		Present(domain.FieldAuthors, genre.AuthorIDs != nil)
	if err := presence.Err(); err != nil {
		return err
	}

	shape := &validate.Validator{}
	shape.
		Required(domain.FieldName, *genre.Name).
		MaxLen(domain.FieldName, *genre.Name, MaxNameLength)
	if err := shape.Err(); err != nil {
		return err
	}

	if !opts.CheckUniqueness {
		return nil
	}
	taken, err := repo.ExistsByName(context, *genre.Name, genre.ID)
	if err != nil {
		return err
	}
	if taken {
		return validate.Taken(domain.FieldName)
	}
	return nil
}
