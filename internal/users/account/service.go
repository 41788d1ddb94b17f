// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/folio/internal/domain"
	"github.com/taibuivan/folio/internal/platform/access"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/pkg/pointer"
)

// # Service Layer

// Service orchestrates account use cases.
//
// Plain-text passwords only live on the input entity between validation and
// hashing. Nothing below the service ever sees them.
type Service struct {
	repo     domain.UserRepository
	comments domain.CommentRepository
	hasher   sec.PasswordHasher
	guard    *access.Guard
	logger   *slog.Logger
}

// NewService constructs a new [Service].
func NewService(store domain.Store, hasher sec.PasswordHasher, guard *access.Guard, logger *slog.Logger) *Service {
	return &Service{
		repo:     store.Users,
		comments: store.Comments,
		hasher:   hasher,
		guard:    guard,
		logger:   logger,
	}
}

func targetOf(id int64) access.Target {
	return access.Target{Kind: access.KindUser, OwnerID: id}
}

// # Reads

func (service *Service) List(context context.Context) ([]*domain.User, error) {
	return service.repo.FindAll(context)
}

func (service *Service) Get(context context.Context, id int64) (*domain.User, error) {
	return service.repo.FindByID(context, id)
}

func (service *Service) Count(context context.Context) (int, error) {
	return service.repo.Count(context)
}

// Comments returns the comments written by the account.
func (service *Service) Comments(context context.Context, id int64) ([]*domain.Comment, error) {
	user, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	return service.comments.FindByIDs(context, user.CommentIDs)
}

// Roles returns the account's role set.
func (service *Service) Roles(context context.Context, id int64) (sec.RoleSet, error) {
	user, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	return user.Roles, nil
}

// # Account Creation

/*
Create enrolls an account on behalf of a privileged caller.

Description: Any role set other than the default requires ROOT.

Parameters:
  - context: context.Context
  - principal: *access.Principal
  - input: *domain.User (Password is the plain text)

Returns:
  - *domain.User: The stored account
  - error: UNAUTHORIZED, FORBIDDEN, VALIDATION_ERROR or CONFLICT
*/
func (service *Service) Create(context context.Context, principal *access.Principal, input *domain.User) (*domain.User, error) {
	if err := service.guard.Authorize(context, principal, access.OpCreate, targetOf(0)); err != nil {
		return nil, err
	}

	input.ID = 0
	Normalize(input)
	if !input.Roles.Equal(sec.DefaultRoles()) {
		if err := service.guard.Authorize(context, principal, access.OpAssignRoles, targetOf(0)); err != nil {
			return nil, err
		}
	}

	return service.create(context, input)
}

/*
Register enrolls a self-registering visitor.

Description: The role set and active flag from the request are discarded.

Parameters:
  - context: context.Context
  - input: *domain.User

Returns:
  - *domain.User: The stored account
  - error: VALIDATION_ERROR or CONFLICT
*/
func (service *Service) Register(context context.Context, input *domain.User) (*domain.User, error) {
	input.ID = 0
	ForceSelfRegistration(input)
	Normalize(input)
	return service.create(context, input)
}

/*
Bootstrap makes sure the configured root account exists.

Description: The account holds SUPER_ADMIN and ROOT. An existing account with
the same username is left untouched.

Returns:
  - bool: Whether an account was created
  - error: Validation or storage failures
*/
func (service *Service) Bootstrap(context context.Context, username, email, password string) (bool, error) {
	if _, err := service.repo.FindByUsername(context, username); err == nil {
		return false, nil
	} else if !apperr.IsNotFound(err) {
		return false, err
	}

	root := &domain.User{
		Username: pointer.To(username),
		Email:    pointer.To(email),
		Password: pointer.To(password),
		Roles:    sec.RoleSet{sec.RoleSuperAdmin, sec.RoleRoot},
	}
	Normalize(root)
	if _, err := service.create(context, root); err != nil {
		return false, fmt.Errorf("account_service_bootstrap_failed: %w", err)
	}
	return true, nil
}

func (service *Service) create(context context.Context, input *domain.User) (*domain.User, error) {
	now := time.Now().UTC()
	input.CreatedAt, input.UpdatedAt = now, now

	if err := service.persist(context, input, createOptions); err != nil {
		return nil, err
	}

	service.logger.Info("user_created",
		slog.Int64("user_id", input.ID),
		slog.String("username", *input.Username),
		slog.Any("roles", input.Roles.Strings()),
	)
	return service.repo.FindByID(context, input.ID)
}

// persist validates, hashes a pending password and saves.
func (service *Service) persist(context context.Context, user *domain.User, opts validate.Options) error {
	if err := Validate(context, user, service.repo, opts); err != nil {
		return err
	}

	if user.Password != nil {
		digest, err := service.hasher.Hash(*user.Password)
		if err != nil {
			return fmt.Errorf("account_service_hash_failed: %w", err)
		}
		user.PasswordHash = digest
		user.Password = nil
	}

	if err := service.repo.Save(context, user); err != nil {
		return fmt.Errorf("account_service_save_failed: %w", err)
	}
	return nil
}

// # Profile Management

// Update replaces the role set and active flag.
func (service *Service) Update(context context.Context, principal *access.Principal, id int64, input *domain.User) (*domain.User, error) {
	return service.save(context, principal, id, profileOptions, func(current *domain.User) {
		current.Roles = input.Roles
		current.Active = input.Active
	})
}

// Patch changes the role set and active flag when set.
func (service *Service) Patch(context context.Context, principal *access.Principal, id int64, patch *domain.User) (*domain.User, error) {
	return service.save(context, principal, id, profileOptions, func(current *domain.User) {
		if len(patch.Roles) > 0 {
			current.Roles = patch.Roles
		}
		current.Active = pointer.Merge(current.Active, patch.Active)
	})
}

func (service *Service) ChangePassword(context context.Context, principal *access.Principal, id int64, password *string) (*domain.User, error) {
	return service.save(context, principal, id, passwordOptions, func(current *domain.User) {
		current.Password = pointer.To(pointer.Val(password))
	})
}

func (service *Service) ChangeUsername(context context.Context, principal *access.Principal, id int64, username *string) (*domain.User, error) {
	return service.save(context, principal, id, identityOptions, func(current *domain.User) {
		current.Username = username
	})
}

func (service *Service) ChangeEmail(context context.Context, principal *access.Principal, id int64, email *string) (*domain.User, error) {
	return service.save(context, principal, id, identityOptions, func(current *domain.User) {
		current.Email = email
	})
}

/*
save applies a change to a stored account.

Description: The guard runs before the lookup so strangers cannot probe ids. A
changed role set additionally requires ROOT. An emptied role set is left to
validation.
*/
func (service *Service) save(context context.Context, principal *access.Principal, id int64, opts validate.Options, apply func(*domain.User)) (*domain.User, error) {
	if err := service.guard.Authorize(context, principal, access.OpUpdate, targetOf(id)); err != nil {
		return nil, err
	}

	current, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	next := current.Clone()
	apply(next)
	next.Roles = next.Roles.Normalize()
	next.UpdatedAt = time.Now().UTC()

	if len(next.Roles) > 0 && !next.Roles.Equal(current.Roles) {
		if err := service.guard.Authorize(context, principal, access.OpAssignRoles, targetOf(id)); err != nil {
			return nil, err
		}
	}

	if err := service.persist(context, next, opts); err != nil {
		return nil, err
	}

	service.logger.Info("user_updated", slog.Int64("user_id", id))
	return service.repo.FindByID(context, id)
}

/*
Delete removes an account together with its comments.

Parameters:
  - context: context.Context
  - principal: *access.Principal (the account itself, or ROOT)
  - id: int64

Returns:
  - error: UNAUTHORIZED, FORBIDDEN or NOT_FOUND
*/
func (service *Service) Delete(context context.Context, principal *access.Principal, id int64) error {
	if err := service.guard.Authorize(context, principal, access.OpDelete, targetOf(id)); err != nil {
		return err
	}
	if err := service.repo.DeleteByID(context, id); err != nil {
		return fmt.Errorf("account_service_delete_failed: %w", err)
	}

	service.logger.Warn("user_deleted", slog.Int64("user_id", id))
	return nil
}
