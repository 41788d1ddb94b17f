// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package author

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/folio/internal/domain"
	"github.com/taibuivan/folio/internal/platform/access"
	"github.com/taibuivan/folio/pkg/pointer"
)

var target = access.Target{Kind: access.KindAuthor}

type Service struct {
	repo   domain.AuthorRepository
	books  domain.BookRepository
	genres domain.GenreRepository
	guard  *access.Guard
	logger *slog.Logger
}

func NewService(store domain.Store, guard *access.Guard, logger *slog.Logger) *Service {
	return &Service{
		repo:   store.Authors,
		books:  store.Books,
		genres: store.Genres,
		guard:  guard,
		logger: logger,
	}
}

// # Reads

func (service *Service) List(context context.Context) ([]*domain.Author, error) {
	return service.repo.FindAll(context)
}

func (service *Service) Get(context context.Context, id int64) (*domain.Author, error) {
	return service.repo.FindByID(context, id)
}

func (service *Service) Count(context context.Context) (int, error) {
	return service.repo.Count(context)
}

func (service *Service) Search(context context.Context, filter domain.AuthorFilter) ([]*domain.Author, error) {
	return service.repo.Search(context, filter)
}

// Books returns the books listing the author.
func (service *Service) Books(context context.Context, id int64) ([]*domain.Book, error) {
	author, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	return service.books.FindByIDs(context, author.BookIDs)
}

func (service *Service) Genres(context context.Context, id int64) ([]*domain.Genre, error) {
	author, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	return service.genres.FindByIDs(context, author.GenreIDs)
}

// # Writes

func (service *Service) Create(context context.Context, principal *access.Principal, input *domain.Author) (*domain.Author, error) {
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
		return nil, fmt.Errorf("author_service_create_failed: %w", err)
	}

	service.logger.Info("author_created", slog.Int64("author_id", input.ID))
	return service.repo.FindByID(context, input.ID)
}

// Update replaces every client-settable field.
func (service *Service) Update(context context.Context, principal *access.Principal, id int64, input *domain.Author) (*domain.Author, error) {
	return service.save(context, principal, id, func(current *domain.Author) *domain.Author {
		input.BookIDs = current.BookIDs
		return input
	})
}

// Patch changes only the fields set in the patch.
func (service *Service) Patch(context context.Context, principal *access.Principal, id int64, patch *domain.Author) (*domain.Author, error) {
	return service.save(context, principal, id, func(current *domain.Author) *domain.Author {
		current.FirstName = pointer.Merge(current.FirstName, patch.FirstName)
		current.MiddleName = pointer.Merge(current.MiddleName, patch.MiddleName)
		current.LastName = pointer.Merge(current.LastName, patch.LastName)
		if patch.GenreIDs != nil {
			current.GenreIDs = patch.GenreIDs
		}
		return current
	})
}

func (service *Service) save(context context.Context, principal *access.Principal, id int64, apply func(*domain.Author) *domain.Author) (*domain.Author, error) {
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
		return nil, fmt.Errorf("author_service_update_failed: %w", err)
	}

	service.logger.Info("author_updated", slog.Int64("author_id", id))
	return service.repo.FindByID(context, id)
}

func (service *Service) Delete(context context.Context, principal *access.Principal, id int64) error {
	if err := service.guard.Authorize(context, principal, access.OpDelete, target); err != nil {
		return err
	}
	if err := service.repo.DeleteByID(context, id); err != nil {
		return fmt.Errorf("author_service_delete_failed: %w", err)
	}

	service.logger.Warn("author_deleted", slog.Int64("author_id", id))
	return nil
}
