// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package memory

import (
	"context"

	"github.com/taibuivan/folio/internal/domain"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/pkg/pointer"
)

// # Comments

// CommentRepository implements [domain.CommentRepository].
type CommentRepository struct {
	store *Store
}

func (repository *CommentRepository) FindByID(_ context.Context, id int64) (*domain.Comment, error) {
	repository.store.mu.RLock()
	defer repository.store.mu.RUnlock()

	row, ok := repository.store.comments.rows[id]
	if !ok {
		return nil, apperr.NotFound("Comment")
	}
	return row.Clone(), nil
}

func (repository *CommentRepository) FindByIDs(_ context.Context, ids []int64) ([]*domain.Comment, error) {
	repository.store.mu.RLock()
	defer repository.store.mu.RUnlock()

	rows := repository.store.comments.selectIDs(ids)
	out := make([]*domain.Comment, len(rows))
	for i, row := range rows {
		out[i] = row.Clone()
	}
	return out, nil
}

func (repository *CommentRepository) FindAll(context context.Context) ([]*domain.Comment, error) {
	repository.store.mu.RLock()
	ids := repository.store.comments.ids()
	repository.store.mu.RUnlock()
	return repository.FindByIDs(context, ids)
}

func (repository *CommentRepository) Count(_ context.Context) (int, error) {
	repository.store.mu.RLock()
	defer repository.store.mu.RUnlock()
	return len(repository.store.comments.rows), nil
}

func (repository *CommentRepository) Save(_ context.Context, comment *domain.Comment) error {
	store := repository.store
	store.mu.Lock()
	defer store.mu.Unlock()

	if comment.ID != 0 && !store.comments.has(comment.ID) {
		return apperr.NotFound("Comment")
	}
	if err := missingReference(&store.users, domain.FieldUser, comment.UserID); err != nil {
		return err
	}
	if err := missingReference(&store.books, domain.FieldBook, comment.BookID); err != nil {
		return err
	}

	if comment.ID == 0 {
		comment.ID = store.comments.nextID()
	}
	store.comments.rows[comment.ID] = comment.Clone()
	return nil
}

func (repository *CommentRepository) DeleteByID(_ context.Context, id int64) error {
	store := repository.store
	store.mu.Lock()
	defer store.mu.Unlock()

	if !store.comments.has(id) {
		return apperr.NotFound("Comment")
	}
	delete(store.comments.rows, id)
	return nil
}

// # Users

// UserRepository implements [domain.UserRepository].
type UserRepository struct {
	store *Store
}

func (store *Store) readUser(row *domain.User) *domain.User {
	user := row.Clone()
	user.Password = nil
	user.CommentIDs = []int64{}
	for _, id := range store.comments.ids() {
		if store.comments.rows[id].UserID == user.ID {
			user.CommentIDs = append(user.CommentIDs, id)
		}
	}
	return user
}

func (repository *UserRepository) FindByID(_ context.Context, id int64) (*domain.User, error) {
	repository.store.mu.RLock()
	defer repository.store.mu.RUnlock()

	row, ok := repository.store.users.rows[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return repository.store.readUser(row), nil
}

func (repository *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	repository.store.mu.RLock()
	defer repository.store.mu.RUnlock()

	id, ok := repository.store.usernames[lowerKey(username)]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return repository.store.readUser(repository.store.users.rows[id]), nil
}

func (repository *UserRepository) FindByIDs(_ context.Context, ids []int64) ([]*domain.User, error) {
	repository.store.mu.RLock()
	defer repository.store.mu.RUnlock()

	rows := repository.store.users.selectIDs(ids)
	out := make([]*domain.User, len(rows))
	for i, row := range rows {
		out[i] = repository.store.readUser(row)
	}
	return out, nil
}

func (repository *UserRepository) FindAll(context context.Context) ([]*domain.User, error) {
	repository.store.mu.RLock()
	ids := repository.store.users.ids()
	repository.store.mu.RUnlock()
	return repository.FindByIDs(context, ids)
}

func (repository *UserRepository) Count(_ context.Context) (int, error) {
	repository.store.mu.RLock()
	defer repository.store.mu.RUnlock()
	return len(repository.store.users.rows), nil
}

func (repository *UserRepository) ExistsByUsername(_ context.Context, username string, excludeID int64) (bool, error) {
	repository.store.mu.RLock()
	defer repository.store.mu.RUnlock()
	return !claim(repository.store.usernames, lowerKey(username), excludeID), nil
}

func (repository *UserRepository) ExistsByEmail(_ context.Context, email string, excludeID int64) (bool, error) {
	repository.store.mu.RLock()
	defer repository.store.mu.RUnlock()
	return !claim(repository.store.emails, lowerKey(email), excludeID), nil
}

// Save enforces both unique keys before touching any index, so a conflict leaves the store unchanged.
func (repository *UserRepository) Save(_ context.Context, user *domain.User) error {
	store := repository.store
	store.mu.Lock()
	defer store.mu.Unlock()

	previous, exists := store.users.rows[user.ID]
	if user.ID != 0 && !exists {
		return apperr.NotFound("User")
	}

	usernameKey := lowerKey(pointer.Val(user.Username))
	emailKey := lowerKey(pointer.Val(user.Email))
	if !claim(store.usernames, usernameKey, user.ID) {
		return apperr.Conflict("User already exists")
	}
	if !claim(store.emails, emailKey, user.ID) {
		return apperr.Conflict("User already exists")
	}

	if user.ID == 0 {
		user.ID = store.users.nextID()
	}
	if exists {
		release(store.usernames, lowerKey(pointer.Val(previous.Username)), user.ID)
		release(store.emails, lowerKey(pointer.Val(previous.Email)), user.ID)
	}
	store.usernames[usernameKey] = user.ID
	store.emails[emailKey] = user.ID

	row := user.Clone()
	row.Password = nil
	row.CommentIDs = nil
	store.users.rows[row.ID] = row
	return nil
}

func (repository *UserRepository) DeleteByID(_ context.Context, id int64) error {
	store := repository.store
	store.mu.Lock()
	defer store.mu.Unlock()

	row, ok := store.users.rows[id]
	if !ok {
		return apperr.NotFound("User")
	}
	release(store.usernames, lowerKey(pointer.Val(row.Username)), id)
	release(store.emails, lowerKey(pointer.Val(row.Email)), id)
	delete(store.users.rows, id)
	for commentID, comment := range store.comments.rows {
		if comment.UserID == id {
			delete(store.comments.rows, commentID)
		}
	}
	return nil
}
