// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tasks

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/canonical/content-platform/internal/apperrors"
	types "github.com/canonical/content-platform/internal/http/types"
	"github.com/canonical/content-platform/internal/logging"
	"github.com/canonical/content-platform/internal/monitoring"
	"github.com/canonical/content-platform/internal/tracing"
	"github.com/canonical/content-platform/pkg/authentication"
)

type API struct {
	scheduler SchedulerInterface
	validator *validator.Validate

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Post("/qstash/schedule", a.schedule)
	mux.Get("/qstash/tasks", a.listTasks)
	mux.Get("/notifications", a.listNotifications)
}

func (a *API) schedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tasks.API.schedule")
	defer span.End()

	userID, ok := authentication.GetUserID(ctx)
	if !ok {
		_ = types.WriteError(w, apperrors.ErrAuthentication)
		return
	}

	req := new(ScheduleRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		a.logger.Debugf("invalid schedule request: %v", err)
		_ = types.WriteMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := a.validator.Struct(req); err != nil {
		_ = types.WriteError(w, apperrors.Validation("%v", err))
		return
	}

	task, err := a.scheduler.ScheduleTask(ctx, userID, req)
	if err != nil {
		_ = types.WriteError(w, err)
		return
	}

	_ = types.WriteData(w, http.StatusCreated, task)
}

func (a *API) listTasks(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tasks.API.listTasks")
	defer span.End()

	userID, ok := authentication.GetUserID(ctx)
	if !ok {
		_ = types.WriteError(w, apperrors.ErrAuthentication)
		return
	}

	tasks, err := a.scheduler.ListTasks(ctx, userID)
	if err != nil {
		a.logger.Errorf("failed to list tasks of %s: %v", userID, err)
		_ = types.WriteError(w, err)
		return
	}

	_ = types.WriteData(w, http.StatusOK, tasks)
}

func (a *API) listNotifications(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tasks.API.listNotifications")
	defer span.End()

	userID, ok := authentication.GetUserID(ctx)
	if !ok {
		_ = types.WriteError(w, apperrors.ErrAuthentication)
		return
	}

	notifications, err := a.scheduler.ListNotifications(ctx, userID)
	if err != nil {
		a.logger.Errorf("failed to list notifications of %s: %v", userID, err)
		_ = types.WriteError(w, err)
		return
	}

	_ = types.WriteData(w, http.StatusOK, notifications)
}

func NewAPI(scheduler SchedulerInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	a := new(API)

	a.scheduler = scheduler
	a.validator = validator.New(validator.WithRequiredStructEnabled())

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
