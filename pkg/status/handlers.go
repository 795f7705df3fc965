// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

import (
	"context"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5"

	httptypes "github.com/canonical/content-platform/internal/http/types"
	"github.com/canonical/content-platform/internal/logging"
	"github.com/canonical/content-platform/internal/monitoring"
	"github.com/canonical/content-platform/internal/tracing"
	"github.com/canonical/content-platform/internal/version"
)

const (
	okValue       = "ok"
	degradedValue = "degraded"
	checkTimeout  = 2 * time.Second
)

// PingerInterface is a dependency whose reachability is reported by the
// status endpoint.
type PingerInterface interface {
	Ping(context.Context) error
}

type BuildInfo struct {
	Version    string `json:"version"`
	CommitHash string `json:"commitHash"`
	Name       string `json:"name"`
}

type Status struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
	BuildInfo    *BuildInfo        `json:"buildInfo"`
}

type API struct {
	checks map[string]PingerInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Get("/api/v0/status", a.alive)
	mux.Get("/api/v0/version", a.version)
}

// WithCheck adds a dependency pinged on every status request.
func (a *API) WithCheck(name string, p PingerInterface) *API {
	a.checks[name] = p
	return a
}

func (a *API) alive(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "status.API.alive")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	status := Status{Status: okValue, BuildInfo: buildInfo()}
	code := http.StatusOK

	if len(a.checks) > 0 {
		status.Dependencies = make(map[string]string, len(a.checks))
	}

	for name, check := range a.checks {
		tags := map[string]string{"component": name}

		if err := check.Ping(ctx); err != nil {
			a.logger.Errorf("dependency %s is unavailable: %v", name, err)
			status.Dependencies[name] = degradedValue
			status.Status = degradedValue
			code = http.StatusServiceUnavailable
			_ = a.monitor.SetDependencyAvailability(tags, 0)
			continue
		}

		status.Dependencies[name] = okValue
		_ = a.monitor.SetDependencyAvailability(tags, 1)
	}

	_ = httptypes.WriteJSON(w, code, status)
}

func (a *API) version(w http.ResponseWriter, r *http.Request) {
	_, span := a.tracer.Start(r.Context(), "status.API.version")
	defer span.End()

	_ = httptypes.WriteJSON(w, http.StatusOK, buildInfo())
}

func buildInfo() *BuildInfo {
	info := &BuildInfo{Version: version.Version}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}

	info.Name = bi.Main.Path
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			info.CommitHash = s.Value
		}
	}

	return info
}

func NewAPI(tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	a := new(API)

	a.checks = make(map[string]PingerInterface)
	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
