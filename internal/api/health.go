// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/constants"
	"github.com/taibuivan/folio/internal/platform/respond"
)

// HealthDependencies holds the injectable dependency checkers for the /ready endpoint.
type HealthDependencies struct {
	// CheckDatabase pings the PostgreSQL pool. Nil with the memory driver.
	CheckDatabase func(context.Context) error

	// CheckCache pings the Redis client. Nil when revocations stay in process.
	CheckCache func(context.Context) error
}

// dependencyCheck is one named readiness probe.
type dependencyCheck struct {
	name  string
	probe func(context.Context) error
}

// checks lists the configured probes in a stable order.
func (deps HealthDependencies) checks() []dependencyCheck {
	var checks []dependencyCheck
	if deps.CheckDatabase != nil {
		checks = append(checks, dependencyCheck{name: "postgres", probe: deps.CheckDatabase})
	}
	if deps.CheckCache != nil {
		checks = append(checks, dependencyCheck{name: "redis", probe: deps.CheckCache})
	}
	return checks
}

// NewHealthHandlers creates the /health and /ready http.HandlerFuncs.
//
// Liveness always answers 200. Readiness runs every configured check and answers
// 503 SERVICE_UNAVAILABLE, naming each failed dependency in the details, when
// any of them fails.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	checks := deps.checks()

	liveness = func(writer http.ResponseWriter, _ *http.Request) {
		respond.OK(writer, map[string]string{"status": "ok"})
	}

	readiness = func(writer http.ResponseWriter, request *http.Request) {
		passed := make([]string, 0, len(checks))
		var failed []apperr.FieldError

		for _, check := range checks {
			ctx, cancel := context.WithTimeout(request.Context(), constants.DependencyCheckTimeout)
			err := check.probe(ctx)
			cancel()

			if err != nil {
				logger.ErrorContext(request.Context(), "readiness_check_failed",
					slog.String("dependency", check.name),
					slog.Any("error", err),
				)
				failed = append(failed, apperr.FieldError{Field: check.name, Message: "Unreachable"})
				continue
			}
			passed = append(passed, check.name)
		}

		if len(failed) > 0 {
			unavailable := apperr.ServiceUnavailable("Dependencies unavailable")
			unavailable.Details = failed
			respond.Error(writer, request, unavailable)
			return
		}

		respond.OK(writer, map[string]any{"status": "ready", "checks": passed})
	}

	return liveness, readiness
}
