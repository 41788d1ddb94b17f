// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package domain

import (
	"slices"
	"time"

	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/internal/platform/view"
	"github.com/taibuivan/folio/pkg/pointer"
)

// User is an account.
//
// Password is the plain-text input of create and password-change requests and is
// never stored; PasswordHash is the stored digest and is never serialized.
// CommentIDs is derived.
type User struct {
	ID           int64       `json:"id"`
	Username     *string     `json:"username"`
	Email        *string     `json:"email"`
	Password     *string     `json:"password"`
	PasswordHash string      `json:"-"`
	Active       *bool       `json:"active"`
	Roles        sec.RoleSet `json:"roles"`
	CommentIDs   []int64     `json:"comments"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"lastModifiedAt"`
}

// Fields implements [view.Source]. The digest is tagged [view.None] so no view reveals it.
func (user *User) Fields() []view.Field {
	return []view.Field{
		{Name: FieldID, View: view.Public, Value: user.ID},
		{Name: FieldUsername, View: view.Public, Value: user.Username},
		{Name: FieldComments, View: view.User, Value: user.CommentIDs},
		{Name: FieldCreatedAt, View: view.Admin, Value: user.CreatedAt},
		{Name: FieldLastModifiedAt, View: view.Admin, Value: user.UpdatedAt},
		{Name: FieldEmail, View: view.SuperAdmin, Value: user.Email},
		{Name: FieldActive, View: view.SuperAdmin, Value: user.Active},
		{Name: FieldRoles, View: view.SuperAdmin, Value: user.Roles},
		{Name: FieldPassword, View: view.None, Value: user.PasswordHash},
	}
}

// IsActive reports whether the account may sign in.
func (user *User) IsActive() bool {
	return pointer.Val(user.Active)
}

// Clone returns a deep copy.
func (user *User) Clone() *User {
	out := *user
	out.Username = pointer.Clone(user.Username)
	out.Email = pointer.Clone(user.Email)
	out.Password = pointer.Clone(user.Password)
	out.Active = pointer.Clone(user.Active)
	out.Roles = slices.Clone(user.Roles)
	out.CommentIDs = slices.Clone(user.CommentIDs)
	return &out
}
