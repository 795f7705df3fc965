// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/content-platform/internal/logging"
	"github.com/canonical/content-platform/internal/monitoring"
	"github.com/canonical/content-platform/internal/tracing"
	"github.com/canonical/content-platform/internal/version"
)

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestAlive(t *testing.T) {
	tests := []struct {
		name           string
		ping           error
		expectedStatus int
		expectedValue  string
	}{
		{name: "healthy store", expectedStatus: http.StatusOK, expectedValue: okValue},
		{name: "unreachable store", ping: errors.New("dial tcp: refused"), expectedStatus: http.StatusServiceUnavailable, expectedValue: degradedValue},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			logger := logging.NewNoopLogger()
			api := NewAPI(tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test", logger), logger).
				WithCheck("store", pingFunc(func(context.Context) error { return test.ping }))

			mux := chi.NewMux()
			api.RegisterEndpoints(mux)

			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v0/status", nil))

			if w.Code != test.expectedStatus {
				t.Fatalf("expected status %d, got %d", test.expectedStatus, w.Code)
			}

			status := new(Status)
			if err := json.NewDecoder(w.Body).Decode(status); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}

			if status.Status != test.expectedValue || status.Dependencies["store"] != test.expectedValue {
				t.Errorf("unexpected status %+v", status)
			}
			if status.BuildInfo == nil || status.BuildInfo.Version != version.Version {
				t.Errorf("unexpected build info %+v", status.BuildInfo)
			}
		})
	}
}

func TestVersion(t *testing.T) {
	logger := logging.NewNoopLogger()

	mux := chi.NewMux()
	NewAPI(tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test", logger), logger).RegisterEndpoints(mux)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v0/version", nil))

	info := new(BuildInfo)
	if err := json.NewDecoder(w.Body).Decode(info); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if w.Code != http.StatusOK || info.Version != version.Version {
		t.Errorf("unexpected response %d %+v", w.Code, info)
	}
}
