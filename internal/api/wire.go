// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"log/slog"
	"net/http"

	"github.com/taibuivan/folio/internal/core/author"
	"github.com/taibuivan/folio/internal/core/book"
	"github.com/taibuivan/folio/internal/core/genre"
	"github.com/taibuivan/folio/internal/domain"
	"github.com/taibuivan/folio/internal/platform/access"
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/internal/social/comment"
	"github.com/taibuivan/folio/internal/users/account"
	"github.com/taibuivan/folio/internal/users/auth"
)

// Dependencies are the collaborators shared by the services.
type Dependencies struct {
	Store       domain.Store
	Hasher      sec.PasswordHasher
	Tokens      auth.TokenProvider
	Revocations auth.RevocationStore
	Guard       *access.Guard
	Logger      *slog.Logger
}

// Services holds one service per resource.
type Services struct {
	Auth     *auth.Service
	Authors  *author.Service
	Books    *book.Service
	Genres   *genre.Service
	Comments *comment.Service
	Accounts *account.Service
}

// NewServices builds every service over one storage backend and one guard.
func NewServices(deps Dependencies) Services {
	accounts := account.NewService(deps.Store, deps.Hasher, deps.Guard, deps.Logger)
	return Services{
		Auth:     auth.NewService(deps.Store.Users, accounts, deps.Hasher, deps.Tokens, deps.Revocations, deps.Logger),
		Authors:  author.NewService(deps.Store, deps.Guard, deps.Logger),
		Books:    book.NewService(deps.Store, deps.Guard, deps.Logger),
		Genres:   genre.NewService(deps.Store, deps.Guard, deps.Logger),
		Comments: comment.NewService(deps.Store, deps.Guard, deps.Logger),
		Accounts: accounts,
	}
}

// Handlers wraps the services in their HTTP handlers.
func (services Services) Handlers(liveness, readiness http.HandlerFunc) Handlers {
	return Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(services.Auth),
		Authors:   author.NewHandler(services.Authors),
		Books:     book.NewHandler(services.Books),
		Genres:    genre.NewHandler(services.Genres),
		Comments:  comment.NewHandler(services.Comments),
		Accounts:  account.NewHandler(services.Accounts),
	}
}
