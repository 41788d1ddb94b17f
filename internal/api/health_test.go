package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/api"
	"github.com/taibuivan/folio/internal/platform/apperr"
)

func TestReadiness(t *testing.T) {
	healthy := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("dial tcp: connection refused") }

	tests := []struct {
		name       string
		deps       api.HealthDependencies
		wantStatus int
		wantChecks []string
		wantFailed []string
	}{
		{"no_dependencies", api.HealthDependencies{}, http.StatusOK, []string{}, nil},
		{"all_healthy", api.HealthDependencies{CheckDatabase: healthy, CheckCache: healthy}, http.StatusOK, []string{"postgres", "redis"}, nil},
		{"cache_down", api.HealthDependencies{CheckDatabase: healthy, CheckCache: down}, http.StatusServiceUnavailable, nil, []string{"redis"}},
		{"all_down", api.HealthDependencies{CheckDatabase: down, CheckCache: down}, http.StatusServiceUnavailable, nil, []string{"postgres", "redis"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, readiness := api.NewHealthHandlers(tt.deps, slog.New(slog.NewTextHandler(io.Discard, nil)))

			recorder := httptest.NewRecorder()
			readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))
			require.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantFailed == nil {
				var envelope struct {
					Data struct {
						Status string   `json:"status"`
						Checks []string `json:"checks"`
					} `json:"data"`
				}
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
				assert.Equal(t, "ready", envelope.Data.Status)
				assert.Equal(t, tt.wantChecks, envelope.Data.Checks)
				return
			}

			var envelope struct {
				Code    string              `json:"code"`
				Details []apperr.FieldError `json:"details"`
			}
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
			assert.Equal(t, apperr.CodeUnavailable, envelope.Code)

			failed := make([]string, len(envelope.Details))
			for i, detail := range envelope.Details {
				failed[i] = detail.Field
			}
			assert.Equal(t, tt.wantFailed, failed)
			assert.NotContains(t, recorder.Body.String(), "connection refused")
		})
	}
}
