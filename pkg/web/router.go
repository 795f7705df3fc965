// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/canonical/content-platform/internal/logging"
	"github.com/canonical/content-platform/internal/monitoring"
	"github.com/canonical/content-platform/internal/tracing"
	"github.com/canonical/content-platform/pkg/accounts"
	"github.com/canonical/content-platform/pkg/authentication"
	"github.com/canonical/content-platform/pkg/content"
	"github.com/canonical/content-platform/pkg/invites"
	"github.com/canonical/content-platform/pkg/metrics"
	"github.com/canonical/content-platform/pkg/status"
	"github.com/canonical/content-platform/pkg/tasks"
	"github.com/canonical/content-platform/pkg/webhooks"
)

// Services groups what the router exposes over HTTP.
type Services struct {
	Store     status.PingerInterface
	Verifier  authentication.TokenVerifierInterface
	Accounts  accounts.ServiceInterface
	Invites   invites.ServiceInterface
	Content   content.ServiceInterface
	Scheduler tasks.SchedulerInterface
	Webhooks  webhooks.ServiceInterface

	PublicURL      string
	AllowedOrigins []string
}

func NewRouter(
	s *Services,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS(s.AllowedOrigins),
	)

	router.Use(middlewares...)

	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(tracer, monitor, logger).WithCheck("store", s.Store).RegisterEndpoints(router)

	// webhook callbacks authenticate with their signature
	webhooks.NewAPI(s.Webhooks, s.PublicURL, logger).RegisterEndpoints(router)

	contentAPI := content.NewAPI(s.Content, tracer, monitor, logger)
	contentAPI.RegisterPublicEndpoints(router)

	router.Group(func(r chi.Router) {
		r.Use(authentication.NewMiddleware(s.Verifier, tracer, monitor, logger).Authenticate())

		accounts.NewAPI(s.Accounts, tracer, monitor, logger).RegisterEndpoints(r)
		invites.NewAPI(s.Invites, tracer, monitor, logger).RegisterEndpoints(r)
		contentAPI.RegisterEndpoints(r)
		tasks.NewAPI(s.Scheduler, tracer, monitor, logger).RegisterEndpoints(r)
	})

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}
