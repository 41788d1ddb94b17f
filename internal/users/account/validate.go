// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"

	"github.com/taibuivan/folio/internal/domain"
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/pkg/pointer"
	"github.com/taibuivan/folio/pkg/slice"
)

// Normalize fills the defaults of an account about to be created.
func Normalize(user *domain.User) {
	user.CommentIDs = slice.OrEmpty(user.CommentIDs)
	if user.Active == nil {
		user.Active = pointer.To(true)
	}
	if len(user.Roles) == 0 {
		user.Roles = sec.DefaultRoles()
	}
	user.Roles = user.Roles.Normalize()
}

// ForceSelfRegistration discards any privilege a self-registering client asked for.
func ForceSelfRegistration(user *domain.User) {
	user.Roles = sec.DefaultRoles()
	user.Active = pointer.To(true)
}

/*
Validate checks the account in three phases and stops at the first that fails.

Parameters:
  - context: context.Context
  - user: *domain.User (Password holds the plain text when it is being set)
  - repo: domain.UserRepository (consulted only with CheckUniqueness)
  - opts: validate.Options

Returns:
  - error: VALIDATION_ERROR for presence and shape, CONFLICT for a taken username or email
*/
func Validate(context context.Context, user *domain.User, repo domain.UserRepository, opts validate.Options) error {

	// 1. Presence
	presence := &validate.Validator{}
	presence.
		Present(domain.FieldUsername, user.Username != nil).
		Present(domain.FieldEmail, user.Email != nil).
		Present(domain.FieldPassword, user.Password != nil || user.PasswordHash != "").
		Present(domain.FieldRoles, len(user.Roles) > 0).
		Present(domain.FieldComments, user.CommentIDs != nil).
		Present(domain.FieldActive, user.Active != nil)
	if err := presence.Err(); err != nil {
		return err
	}

	// 2. Shape
	shape := &validate.Validator{}
	shape.
		Username(domain.FieldUsername, *user.Username).
		Email(domain.FieldEmail, *user.Email)
	if opts.CheckPassword {
		shape.Password(domain.FieldPassword, pointer.Val(user.Password))
	}
	if err := shape.Err(); err != nil {
		return err
	}

	// 3. Uniqueness
	if !opts.CheckUniqueness {
		return nil
	}
	taken, err := repo.ExistsByUsername(context, *user.Username, user.ID)
	if err != nil {
		return err
	}
	if taken {
		return validate.Taken(domain.FieldUsername)
	}
	taken, err = repo.ExistsByEmail(context, *user.Email, user.ID)
	if err != nil {
		return err
	}
	if taken {
		return validate.Taken(domain.FieldEmail)
	}
	return nil
}
