// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"github.com/taibuivan/folio/internal/domain"
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/pkg/pointer"
)

// Normalize fills the defaults of a comment about to be created. New comments start unrated.
func Normalize(comment *domain.Comment) {
	comment.Rating = pointer.To(int64(0))
}

// Validate checks presence, then shape.
func Validate(comment *domain.Comment) error {
	presence := &validate.Validator{}
	presence.
		Present(domain.FieldText, comment.Text != nil).
		Present(domain.FieldRating, comment.Rating != nil).
		Present(domain.FieldUser, comment.UserID != 0).
		Present(domain.FieldBook, comment.BookID != 0)
	if err := presence.Err(); err != nil {
		return err
	}

	shape := &validate.Validator{}
	return shape.
		Required(domain.FieldText, *comment.Text).
		MaxLen(domain.FieldText, *comment.Text, domain.MaxCommentLength).
		Custom(domain.FieldRating, *comment.Rating < 0, "Must not be negative").
		Err()
}
