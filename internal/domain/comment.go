// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package domain

import (
	"time"

	"github.com/taibuivan/folio/internal/platform/view"
	"github.com/taibuivan/folio/pkg/pointer"
)

// Comment is a reader's note on a book. UserID is the owner.
type Comment struct {
	ID        int64     `json:"id"`
	Text      *string   `json:"text"`
	Rating    *int64    `json:"rating"`
	UserID    int64     `json:"user"`
	BookID    int64     `json:"book"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"lastModifiedAt"`
}

// Fields implements [view.Source].
func (comment *Comment) Fields() []view.Field {
	return []view.Field{
		{Name: FieldID, View: view.Public, Value: comment.ID},
		{Name: FieldText, View: view.Public, Value: comment.Text},
		{Name: FieldRating, View: view.Public, Value: comment.Rating},
		{Name: FieldUser, View: view.User, Value: comment.UserID},
		{Name: FieldBook, View: view.User, Value: comment.BookID},
		{Name: FieldCreatedAt, View: view.Admin, Value: comment.CreatedAt},
		{Name: FieldLastModifiedAt, View: view.Admin, Value: comment.UpdatedAt},
	}
}

// Clone returns a deep copy.
func (comment *Comment) Clone() *Comment {
	out := *comment
	out.Text = pointer.Clone(comment.Text)
	out.Rating = pointer.Clone(comment.Rating)
	return &out
}
