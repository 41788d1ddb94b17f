// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/folio/internal/domain"
	"github.com/taibuivan/folio/internal/platform/access"
	"github.com/taibuivan/folio/pkg/pointer"
)

var target = access.Target{Kind: access.KindBook}

type Service struct {
	repo     domain.BookRepository
	authors  domain.AuthorRepository
	genres   domain.GenreRepository
	comments domain.CommentRepository
	guard    *access.Guard
	logger   *slog.Logger
}

func NewService(store domain.Store, guard *access.Guard, logger *slog.Logger) *Service {
	return &Service{
		repo:     store.Books,
		authors:  store.Authors,
		genres:   store.Genres,
		comments: store.Comments,
		guard:    guard,
		logger:   logger,
	}
}

// # Reads

func (service *Service) List(context context.Context) ([]*domain.Book, error) {
	return service.repo.FindAll(context)
}

func (service *Service) Get(context context.Context, id int64) (*domain.Book, error) {
	return service.repo.FindByID(context, id)
}

func (service *Service) Count(context context.Context) (int, error) {
	return service.repo.Count(context)
}

func (service *Service) Authors(context context.Context, id int64) ([]*domain.Author, error) {
	book, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	return service.authors.FindByIDs(context, book.AuthorIDs)
}

func (service *Service) Genres(context context.Context, id int64) ([]*domain.Genre, error) {
	book, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	return service.genres.FindByIDs(context, book.GenreIDs)
}

func (service *Service) Comments(context context.Context, id int64) ([]*domain.Comment, error) {
	book, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	return service.comments.FindByIDs(context, book.CommentIDs)
}

// # Writes

func (service *Service) Create(context context.Context, principal *access.Principal, input *domain.Book) (*domain.Book, error) {
	if err := service.guard.Authorize(context, principal, access.OpCreate, target); err != nil {
		return nil, err
	}

	input.ID = 0
	Normalize(input)
	now := time.Now().UTC()
	input.CreatedAt, input.UpdatedAt = now, now

	if err := Validate(input); err != nil {
		return nil, err
	}
	if err := service.repo.Save(context, input); err != nil {
		return nil, fmt.Errorf("book_service_create_failed: %w", err)
	}

	service.logger.Info("book_created", slog.Int64("book_id", input.ID))
	return service.repo.FindByID(context, input.ID)
}

// Update replaces every client-settable field. Comments stay attached.
func (service *Service) Update(context context.Context, principal *access.Principal, id int64, input *domain.Book) (*domain.Book, error) {
	return service.save(context, principal, id, func(current *domain.Book) *domain.Book {
		input.CommentIDs = current.CommentIDs
		return input
	})
}

// Patch changes only the fields set in the patch.
func (service *Service) Patch(context context.Context, principal *access.Principal, id int64, patch *domain.Book) (*domain.Book, error) {
	return service.save(context, principal, id, func(current *domain.Book) *domain.Book {
		current.Name = pointer.Merge(current.Name, patch.Name)
		current.PagesCount = pointer.Merge(current.PagesCount, patch.PagesCount)
		current.Avatar = pointer.Merge(current.Avatar, patch.Avatar)
		current.PublicationYear = pointer.Merge(current.PublicationYear, patch.PublicationYear)
		current.ShortDescription = pointer.Merge(current.ShortDescription, patch.ShortDescription)
		current.Rating = pointer.Merge(current.Rating, patch.Rating)
		if patch.AuthorIDs != nil {
			current.AuthorIDs = patch.AuthorIDs
		}
		if patch.GenreIDs != nil {
			current.GenreIDs = patch.GenreIDs
		}
		return current
	})
}

func (service *Service) save(context context.Context, principal *access.Principal, id int64, apply func(*domain.Book) *domain.Book) (*domain.Book, error) {
	if err := service.guard.Authorize(context, principal, access.OpUpdate, target); err != nil {
		return nil, err
	}

	current, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	next := apply(current.Clone())
	next.ID = current.ID
	next.CreatedAt = current.CreatedAt
	next.UpdatedAt = time.Now().UTC()

	if err := Validate(next); err != nil {
		return nil, err
	}
	if err := service.repo.Save(context, next); err != nil {
		return nil, fmt.Errorf("book_service_update_failed: %w", err)
	}

	service.logger.Info("book_updated", slog.Int64("book_id", id))
	return service.repo.FindByID(context, id)
}

// Delete removes the book together with its comments.
func (service *Service) Delete(context context.Context, principal *access.Principal, id int64) error {
	if err := service.guard.Authorize(context, principal, access.OpDelete, target); err != nil {
		return err
	}
	if err := service.repo.DeleteByID(context, id); err != nil {
		return fmt.Errorf("book_service_delete_failed: %w", err)
	}

	service.logger.Warn("book_deleted", slog.Int64("book_id", id))
	return nil
}
