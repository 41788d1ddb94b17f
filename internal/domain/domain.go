// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package domain holds the catalog entities and the storage contracts shared by
the services.

# Conventions

  - Nullable scalars are pointers; nil means absent.
  - Relationship collections are id lists; nil means unset, empty means none.
  - Some collections are derived: the repository computes them on read and
    ignores them on save. Each entity documents which ones.
  - CreatedAt and UpdatedAt are assigned by the services, never by clients.
*/
package domain

import (
	"context"
	"slices"
)

// JSON field names shared by entities, validators and projections.
const (
	FieldID               = "id"
	FieldFirstName        = "firstName"
	FieldMiddleName       = "middleName"
	FieldLastName         = "lastName"
	FieldName             = "name"
	FieldPagesCount       = "pagesCount"
	FieldAvatar           = "avatar"
	FieldPublicationYear  = "publicationYear"
	FieldShortDescription = "shortDescription"
	FieldRating           = "rating"
	FieldText             = "text"
	FieldUser             = "user"
	FieldBook             = "book"
	FieldBooks            = "books"
	FieldAuthors          = "authors"
	FieldGenres           = "genres"
	FieldComments         = "comments"
	FieldUsername         = "username"
	FieldEmail            = "email"
	FieldPassword         = "password"
	FieldActive           = "active"
	FieldRoles            = "roles"
	FieldCreatedAt        = "createdAt"
	FieldLastModifiedAt   = "lastModifiedAt"
)

// MaxCommentLength bounds comment text, in characters.
const MaxCommentLength = 500

// # Repositories

// Repository is the storage contract shared by every entity.
//
// Save inserts when the entity's ID is zero and assigns the new id; otherwise it
// replaces the stored row and fails with NOT_FOUND when the id does not exist.
// Unique-key violations surface as CONFLICT and dangling references as VALIDATION_ERROR.
type Repository[T any] interface {
	FindByID(context context.Context, id int64) (*T, error)
	// FindByIDs returns the entities that exist, in id order. Unknown ids are skipped.
	FindByIDs(context context.Context, ids []int64) ([]*T, error)
	FindAll(context context.Context) ([]*T, error)
	Count(context context.Context) (int, error)
	Save(context context.Context, entity *T) error
	DeleteByID(context context.Context, id int64) error
}

// AuthorFilter selects authors by case-insensitive name prefixes. Empty prefixes match everything.
type AuthorFilter struct {
	FirstName  string
	MiddleName string
	LastName   string
}

// AuthorRepository stores authors.
type AuthorRepository interface {
	Repository[Author]
	Search(context context.Context, filter AuthorFilter) ([]*Author, error)
}

// BookRepository stores books.
type BookRepository interface {
	Repository[Book]
}

// GenreRepository stores genres.
type GenreRepository interface {
	Repository[Genre]
	// ExistsByName reports whether another genre (id != excludeID) has the name, ignoring case.
	ExistsByName(context context.Context, name string, excludeID int64) (bool, error)
	SearchByPrefix(context context.Context, prefix string) ([]*Genre, error)
}

// CommentRepository stores comments.
type CommentRepository interface {
	Repository[Comment]
}

// UserRepository stores accounts.
type UserRepository interface {
	Repository[User]
	ExistsByUsername(context context.Context, username string, excludeID int64) (bool, error)
	ExistsByEmail(context context.Context, email string, excludeID int64) (bool, error)
	FindByUsername(context context.Context, username string) (*User, error)
}

// Store groups the repositories of one storage backend.
type Store struct {
	Authors  AuthorRepository
	Books    BookRepository
	Genres   GenreRepository
	Comments CommentRepository
	Users    UserRepository
}

// SortedIDs returns a sorted copy without duplicates.
func SortedIDs(ids []int64) []int64 {
	if ids == nil {
		return nil
	}
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}
