// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package comment manages readers' comments on books.

A comment belongs to the account that wrote it. Only its owner, or ROOT, may
change or delete it, whatever tier the request arrives on.
*/
package comment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/folio/internal/domain"
	"github.com/taibuivan/folio/internal/platform/access"
	"github.com/taibuivan/folio/pkg/pointer"
)

type Service struct {
	repo   domain.CommentRepository
	books  domain.BookRepository
	users  domain.UserRepository
	guard  *access.Guard
	logger *slog.Logger
}

func NewService(store domain.Store, guard *access.Guard, logger *slog.Logger) *Service {
	return &Service{
		repo:   store.Comments,
		books:  store.Books,
		users:  store.Users,
		guard:  guard,
		logger: logger,
	}
}

func targetOf(comment *domain.Comment) access.Target {
	return access.Target{Kind: access.KindComment, OwnerID: comment.UserID}
}

// # Reads

func (service *Service) List(context context.Context) ([]*domain.Comment, error) {
	return service.repo.FindAll(context)
}

func (service *Service) Get(context context.Context, id int64) (*domain.Comment, error) {
	return service.repo.FindByID(context, id)
}

func (service *Service) Count(context context.Context) (int, error) {
	return service.repo.Count(context)
}

// Book returns the commented book.
func (service *Service) Book(context context.Context, id int64) (*domain.Book, error) {
	comment, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	return service.books.FindByID(context, comment.BookID)
}

// User returns the comment's author.
func (service *Service) User(context context.Context, id int64) (*domain.User, error) {
	comment, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	return service.users.FindByID(context, comment.UserID)
}

// # Writes

// Create stores a comment owned by the caller, whatever owner the input names.
func (service *Service) Create(context context.Context, principal *access.Principal, input *domain.Comment) (*domain.Comment, error) {
	if err := service.guard.Authorize(context, principal, access.OpCreate, access.Target{Kind: access.KindComment}); err != nil {
		return nil, err
	}

	input.ID = 0
	input.UserID = principal.UserID
	Normalize(input)
	now := time.Now().UTC()
	input.CreatedAt, input.UpdatedAt = now, now

	if err := Validate(input); err != nil {
		return nil, err
	}
	if err := service.repo.Save(context, input); err != nil {
		return nil, fmt.Errorf("comment_service_create_failed: %w", err)
	}

	service.logger.Info("comment_created",
		slog.Int64("comment_id", input.ID),
		slog.Int64("book_id", input.BookID),
		slog.Int64("user_id", input.UserID),
	)
	return service.repo.FindByID(context, input.ID)
}

// Update replaces the text and rating.
func (service *Service) Update(context context.Context, principal *access.Principal, id int64, input *domain.Comment) (*domain.Comment, error) {
	return service.save(context, principal, id, func(current *domain.Comment) {
		current.Text = input.Text
		current.Rating = input.Rating
	})
}

// Patch changes the text and rating when set.
func (service *Service) Patch(context context.Context, principal *access.Principal, id int64, patch *domain.Comment) (*domain.Comment, error) {
	return service.save(context, principal, id, func(current *domain.Comment) {
		current.Text = pointer.Merge(current.Text, patch.Text)
		current.Rating = pointer.Merge(current.Rating, patch.Rating)
	})
}

// UpdateText changes only the text.
func (service *Service) UpdateText(context context.Context, principal *access.Principal, id int64, text *string) (*domain.Comment, error) {
	return service.save(context, principal, id, func(current *domain.Comment) {
		current.Text = text
	})
}

// save applies a change to a stored comment. Owner and book never change.
func (service *Service) save(context context.Context, principal *access.Principal, id int64, apply func(*domain.Comment)) (*domain.Comment, error) {
	current, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if err := service.guard.Authorize(context, principal, access.OpUpdate, targetOf(current)); err != nil {
		return nil, err
	}

	next := current.Clone()
	apply(next)
	next.UpdatedAt = time.Now().UTC()

	if err := Validate(next); err != nil {
		return nil, err
	}
	if err := service.repo.Save(context, next); err != nil {
		return nil, fmt.Errorf("comment_service_update_failed: %w", err)
	}

	service.logger.Info("comment_updated", slog.Int64("comment_id", id))
	return service.repo.FindByID(context, id)
}

func (service *Service) Delete(context context.Context, principal *access.Principal, id int64) error {
	current, err := service.repo.FindByID(context, id)
	if err != nil {
		return err
	}
	if err := service.guard.Authorize(context, principal, access.OpDelete, targetOf(current)); err != nil {
		return err
	}
	if err := service.repo.DeleteByID(context, id); err != nil {
		return fmt.Errorf("comment_service_delete_failed: %w", err)
	}

	service.logger.Warn("comment_deleted", slog.Int64("comment_id", id), slog.Int64("user_id", current.UserID))
	return nil
}
