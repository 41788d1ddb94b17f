// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/folio/internal/domain"
	"github.com/taibuivan/folio/internal/platform/access"
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/pkg/pointer"
)

var (
	target = access.Target{Kind: access.KindGenre}
	unique = validate.Options{CheckUniqueness: true}
)

type Service struct {
	repo    domain.GenreRepository
	books   domain.BookRepository
	authors domain.AuthorRepository
	guard   *access.Guard
	logger  *slog.Logger
}

func NewService(store domain.Store, guard *access.Guard, logger *slog.Logger) *Service {
	return &Service{
		repo:    store.Genres,
		books:   store.Books,
		authors: store.Authors,
		guard:   guard,
		logger:  logger,
	}
}

// # Reads

func (service *Service) List(context context.Context) ([]*domain.Genre, error) {
	return service.repo.FindAll(context)
}

func (service *Service) Get(context context.Context, id int64) (*domain.Genre, error) {
	return service.repo.FindByID(context, id)
}

func (service *Service) Count(context context.Context) (int, error) {
	return service.repo.Count(context)
}

// Search returns the genres whose name starts with prefix, ignoring case.
func (service *Service) Search(context context.Context, prefix string) ([]*domain.Genre, error) {
	return service.repo.SearchByPrefix(context, prefix)
}

func (service *Service) Books(context context.Context, id int64) ([]*domain.Book, error) {
	genre, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	return service.books.FindByIDs(context, genre.BookIDs)
}

func (service *Service) Authors(context context.Context, id int64) ([]*domain.Author, error) {
	genre, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	return service.authors.FindByIDs(context, genre.AuthorIDs)
}

// # Writes

func (service *Service) Create(context context.Context, principal *access.Principal, input *domain.Genre) (*domain.Genre, error) {
	if err := service.guard.Authorize(context, principal, access.OpCreate, target); err != nil {
		return nil, err
	}

	input.ID = 0
	Normalize(input)
	now := time.Now().UTC()
	input.CreatedAt, input.UpdatedAt = now, now

	if err := Validate(context, input, service.repo, unique); err != nil {
		return nil, err
	}
	if err := service.repo.Save(context, input); err != nil {
		return nil, fmt.Errorf("genre_service_create_failed: %w", err)
	}

	service.logger.Info("genre_created", slog.Int64("genre_id", input.ID), slog.String("name", *input.Name))
	return service.repo.FindByID(context, input.ID)
}

// Update replaces the name. Books and authors are derived and never written.
func (service *Service) Update(context context.Context, principal *access.Principal, id int64, input *domain.Genre) (*domain.Genre, error) {
	return service.save(context, principal, id, func(current *domain.Genre) {
		current.Name = input.Name
	})
}

// Patch renames the genre when the patch carries a name.
func (service *Service) Patch(context context.Context, principal *access.Principal, id int64, patch *domain.Genre) (*domain.Genre, error) {
	return service.save(context, principal, id, func(current *domain.Genre) {
		current.Name = pointer.Merge(current.Name, patch.Name)
	})
}

func (service *Service) save(context context.Context, principal *access.Principal, id int64, apply func(*domain.Genre)) (*domain.Genre, error) {
	if err := service.guard.Authorize(context, principal, access.OpUpdate, target); err != nil {
		return nil, err
	}

	current, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	next := current.Clone()
	apply(next)
	next.UpdatedAt = time.Now().UTC()

	if err := Validate(context, next, service.repo, unique); err != nil {
		return nil, err
	}
	if err := service.repo.Save(context, next); err != nil {
		return nil, fmt.Errorf("genre_service_update_failed: %w", err)
	}

	service.logger.Info("genre_updated", slog.Int64("genre_id", id))
	return service.repo.FindByID(context, id)
}

// Delete removes the genre and detaches it from books and authors.
func (service *Service) Delete(context context.Context, principal *access.Principal, id int64) error {
	if err := service.guard.Authorize(context, principal, access.OpDelete, target); err != nil {
		return err
	}
	if err := service.repo.DeleteByID(context, id); err != nil {
		return fmt.Errorf("genre_service_delete_failed: %w", err)
	}

	service.logger.Warn("genre_deleted", slog.Int64("genre_id", id))
	return nil
}
