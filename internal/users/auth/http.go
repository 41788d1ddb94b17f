// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"

	"github.com/taibuivan/folio/internal/domain"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/constants"
	requestutil "github.com/taibuivan/folio/internal/platform/request"
	"github.com/taibuivan/folio/internal/platform/respond"
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/internal/platform/view"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
type Handler struct {
	authService *Service
	validator   *validator.Validate
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON names in validation details.
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &Handler{authService: service, validator: validate}
}

// Mount registers the public authentication routes.
//
// # Endpoints
//   - POST /login            : Authenticates and returns a JWT.
//   - POST /register         : Creates a USER account.
//   - GET  /check/on-<role>  : Reports whether the caller holds the role.
func (handler *Handler) Mount(router chi.Router) {
	router.Group(func(r chi.Router) {
		r.Use(credentialLimiter())
		r.Post("/login", handler.login)
		r.Post("/register", handler.register)
	})

	router.Route("/check", func(r chi.Router) {
		r.Get("/on-user", handler.check("isUser", sec.RoleUser))
		r.Get("/on-moderator", handler.check("isModerator", sec.RoleModerator))
		r.Get("/on-admin", handler.check("isAdmin", sec.RoleAdmin))
		r.Get("/on-super-admin", handler.check("isSuperAdmin", sec.RoleSuperAdmin))
	})
}

// MountSession registers the routes that need an authenticated caller.
func (handler *Handler) MountSession(router chi.Router) {
	router.Post("/logout", handler.logout)
}

// credentialLimiter slows down password guessing per client IP.
func credentialLimiter() func(http.Handler) http.Handler {
	return httprate.Limit(constants.CredentialRateLimit, constants.CredentialRateWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(writer http.ResponseWriter, request *http.Request) {
			respond.Error(writer, request, apperr.RateLimited(int(constants.CredentialRateWindow.Seconds())))
		}),
	)
}

// # Request Payloads

type loginRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=72"`
}

type loginResponse struct {
	Token string          `json:"token"`
	User  view.Projection `json:"user"`
}

// registerRequest carries only the fields a visitor may choose. Privilege
// fields in the body are never decoded.
type registerRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func (input registerRequest) user() *domain.User {
	return &domain.User{Username: input.Username, Email: input.Email, Password: input.Password}
}

// checkPayload converts validator failures into a VALIDATION_ERROR.
func (handler *Handler) checkPayload(payload any) error {
	err := handler.validator.Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return apperr.Internal(err)
	}

	details := make([]apperr.FieldError, 0, len(fieldErrors))
	for _, fieldErr := range fieldErrors {
		message := "Is invalid"
		switch fieldErr.Tag() {
		case "required":
			message = "Is required"
		case "max":
			message = fmt.Sprintf("Must be at most %s characters", fieldErr.Param())
		}
		details = append(details, apperr.FieldError{Field: fieldErr.Field(), Message: message})
	}
	return apperr.ValidationError("Invalid login payload", details...)
}

/*
Login authenticates a user and issues an access token.

POST /api/login

Request:
  - Body: loginRequest (username, password)

Response:
  - 200: {"token": "...", "user": User}
  - 400: ErrValidation: Missing or oversized fields
  - 401: ErrUnauthorized: Invalid credentials or deactivated account
  - 429: ErrRateLimited
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.checkPayload(&input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), input.Username, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, loginResponse{
		Token: session.Token,
		User:  view.ProjectAt(session.User, view.User),
	})
}

/*
Register handles self-registration.

POST /api/register

Request:
  - Body: registerRequest (username, email, password). Any other field is ignored.

Response:
  - 201: User
  - 400: ErrValidation
  - 409: ErrConflict: Username or email taken
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Register(request.Context(), input.user())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, view.ProjectAt(user, view.User))
}

/*
Logout revokes the caller's access token.

POST /api/user/logout

Response:
  - 204: No Content
  - 401: ErrUnauthorized
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.Logout(request.Context(), claims); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// check answers {"<key>": bool} for the caller's role set. Anonymous callers get false.
func (handler *Handler) check(key string, role sec.Role) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		claims := requestutil.Claims(request)
		respond.OK(writer, map[string]bool{key: claims != nil && claims.Roles.AtLeast(role)})
	}
}
