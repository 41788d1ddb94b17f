// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/folio/internal/domain"
	"github.com/taibuivan/folio/internal/platform/access"
	requestutil "github.com/taibuivan/folio/internal/platform/request"
	"github.com/taibuivan/folio/internal/platform/respond"
	"github.com/taibuivan/folio/internal/platform/tier"
	"github.com/taibuivan/folio/internal/platform/view"
	"github.com/taibuivan/folio/pkg/pagination"
)

// Handler implements the HTTP layer for accounts.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Mount registers the account routes exposed by ops, rendered at the tier's view.
func (handler *Handler) Mount(router chi.Router, t tier.Tier, ops tier.Ops) {
	if ops.Has(tier.OpsRead) {
		router.Get("/", handler.list(t))
		router.Get("/count", handler.count)
		if t.Role != "" {
			router.Get("/me", handler.me(t))
		}
		router.Get("/{id}", handler.get(t))
		router.Get("/{id}/comments", handler.comments(t))
	}
	if ops.Has(tier.OpsRoles) {
		router.Get("/{id}/roles", handler.roles)
	}
	if ops.Has(tier.OpsCreate) {
		router.Post("/", handler.create(t))
	}
	if ops.Has(tier.OpsUpdate) {
		router.Put("/{id}", handler.update(t, handler.accountService.Update))
		router.Patch("/{id}", handler.update(t, handler.accountService.Patch))
	}
	if ops.Has(tier.OpsSubFields) {
		router.Patch("/{id}/password", handler.subField(t, "password", handler.accountService.ChangePassword))
		router.Patch("/{id}/username", handler.subField(t, "username", handler.accountService.ChangeUsername))
		router.Patch("/{id}/email", handler.subField(t, "email", handler.accountService.ChangeEmail))
	}
	if ops.Has(tier.OpsDelete) {
		router.Delete("/{id}", handler.delete)
	}
}

// # Reads

func (handler *Handler) list(t tier.Tier) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		users, err := handler.accountService.List(request.Context())
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		window, meta := pagination.Slice(users, pagination.FromRequest(request))
		respond.Paginated(writer, view.ProjectAll(window, t.View), meta)
	}
}

func (handler *Handler) count(writer http.ResponseWriter, request *http.Request) {
	total, err := handler.accountService.Count(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]int{"count": total})
}

/*
GET /users/me.

Description: Returns the caller's own account at the tier's view.

Response:
  - 200: User
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) me(t tier.Tier) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		claims, err := requestutil.RequiredClaims(request)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		user, err := handler.accountService.Get(request.Context(), claims.UserID)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, view.ProjectAt(user, t.View))
	}
}

func (handler *Handler) get(t tier.Tier) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		userID, err := requestutil.ID(request, "id")
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		user, err := handler.accountService.Get(request.Context(), userID)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, view.ProjectAt(user, t.View))
	}
}

func (handler *Handler) comments(t tier.Tier) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		userID, err := requestutil.ID(request, "id")
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		comments, err := handler.accountService.Comments(request.Context(), userID)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, view.ProjectAll(comments, t.View))
	}
}

/*
GET /users/{id}/roles.

Response:
  - 200: ["USER", ...]
  - 404: ErrNotFound
*/
func (handler *Handler) roles(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	roles, err := handler.accountService.Roles(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, roles.Strings())
}

// # Writes

/*
POST /users.

Description: Creates an account. A non-default role set requires ROOT.

Request: User with a plain-text "password".

Response:
  - 201: User
  - 400: ErrValidation
  - 403: ErrForbidden
  - 409: ErrConflict: Username or email taken
*/
func (handler *Handler) create(t tier.Tier) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		var input domain.User
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}

		user, err := handler.accountService.Create(request.Context(), requestutil.Principal(request), &input)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.Created(writer, view.ProjectAt(user, t.View))
	}
}

type updateFunc = func(ctx context.Context, principal *access.Principal, id int64, input *domain.User) (*domain.User, error)

func (handler *Handler) update(t tier.Tier, apply updateFunc) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		userID, err := requestutil.ID(request, "id")
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		var input domain.User
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}

		user, err := apply(request.Context(), requestutil.Principal(request), userID, &input)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, view.ProjectAt(user, t.View))
	}
}

type subFieldFunc = func(ctx context.Context, principal *access.Principal, id int64, value *string) (*domain.User, error)

/*
PATCH /users/{id}/password, /users/{id}/username, /users/{id}/email.

Request: {"<field>": "..."}

Response:
  - 200: User
  - 400: ErrValidation
  - 403: ErrForbidden: Not the caller's account
  - 409: ErrConflict: Username or email taken
*/
func (handler *Handler) subField(t tier.Tier, field string, apply subFieldFunc) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		userID, err := requestutil.ID(request, "id")
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		var input map[string]*string
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}

		user, err := apply(request.Context(), requestutil.Principal(request), userID, input[field])
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, view.ProjectAt(user, t.View))
	}
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.Delete(request.Context(), requestutil.Principal(request), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
