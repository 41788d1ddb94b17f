// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - Every resource handler is mounted once per tier. The tier decides the role
    gate, the response view and which route groups exist; the services behind
    the routes are the same on every tier.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/folio/internal/core/author"
	"github.com/taibuivan/folio/internal/core/book"
	"github.com/taibuivan/folio/internal/core/genre"
	"github.com/taibuivan/folio/internal/observability"
	"github.com/taibuivan/folio/internal/platform/config"
	"github.com/taibuivan/folio/internal/platform/constants"
	"github.com/taibuivan/folio/internal/platform/middleware"
	"github.com/taibuivan/folio/internal/platform/tier"
	"github.com/taibuivan/folio/internal/social/comment"
	"github.com/taibuivan/folio/internal/users/account"
	"github.com/taibuivan/folio/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler, always 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler, 200 when all dependencies are healthy.
	Readiness http.HandlerFunc

	// Auth handles login, registration, logout and role probes.
	Auth *auth.Handler

	Authors  *author.Handler
	Books    *book.Handler
	Genres   *genre.Handler
	Comments *comment.Handler
	Accounts *account.Handler
}

// # Tier Exposure

// Mounter is implemented by every resource handler.
type Mounter interface {
	Mount(router chi.Router, t tier.Tier, ops tier.Ops)
}

// Exposure maps a tier name to the capabilities of one resource on that tier.
// A tier missing from the map does not serve the resource.
type Exposure map[string]tier.Ops

var (
	catalogExposure = Exposure{
		tier.Public.Name:     tier.OpsRead,
		tier.User.Name:       tier.OpsRead,
		tier.Moderator.Name:  tier.OpsRead,
		tier.Admin.Name:      tier.OpsRead | tier.OpsWrite,
		tier.SuperAdmin.Name: tier.OpsRead | tier.OpsWrite,
	}

	commentExposure = Exposure{
		tier.Public.Name:     tier.OpsRead,
		tier.User.Name:       tier.OpsRead | tier.OpsCreate | tier.OpsText | tier.OpsDelete,
		tier.Moderator.Name:  tier.OpsRead | tier.OpsWrite,
		tier.Admin.Name:      tier.OpsRead,
		tier.SuperAdmin.Name: tier.OpsRead | tier.OpsWrite,
	}

	userExposure = Exposure{
		tier.Public.Name:     tier.OpsRead,
		tier.User.Name:       tier.OpsRead | tier.OpsSubFields | tier.OpsDelete,
		tier.Moderator.Name:  tier.OpsRead,
		tier.Admin.Name:      tier.OpsRead,
		tier.SuperAdmin.Name: tier.OpsRead | tier.OpsWrite | tier.OpsSubFields | tier.OpsRoles,
	}
)

type resource struct {
	path     string
	handler  Mounter
	exposure Exposure
}

func (h Handlers) resources() []resource {
	return []resource{
		{path: "/authors", handler: h.Authors, exposure: catalogExposure},
		{path: "/books", handler: h.Books, exposure: catalogExposure},
		{path: "/genres", handler: h.Genres, exposure: catalogExposure},
		{path: "/comments", handler: h.Comments, exposure: commentExposure},
		{path: "/users", handler: h.Accounts, exposure: userExposure},
	}
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(
	context context.Context,
	cfg *config.Config,
	log *slog.Logger,
	verifier middleware.TokenVerifier,
	metrics *observability.Metrics,
	h Handlers,
) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(metrics.HTTPMiddleware)
	r.Use(middleware.PanicRecovery(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst))
	r.Use(middleware.SecureHeaders(cfg))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)
	r.Use(middleware.Authenticate(verifier))

	// # Infrastructure Endpoints
	// Health probes and metrics for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	r.Handle("/metrics", metrics.Handler())

	// # Application API
	// One route group per tier; non-public tiers are gated by their role.
	for _, t := range tier.All() {
		r.Route(t.Prefix, func(api chi.Router) {
			if t.Role != "" {
				api.Use(middleware.RequireRole(t.Role))
			}

			switch t.Name {
			case tier.Public.Name:
				h.Auth.Mount(api)
			case tier.User.Name:
				h.Auth.MountSession(api)
			}

			for _, res := range h.resources() {
				ops, exposed := res.exposure[t.Name]
				if !exposed {
					continue
				}
				api.Route(res.path, func(routes chi.Router) {
					res.handler.Mount(routes, t, ops)
				})
			}
		})
	}

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler returns the fully wired router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
