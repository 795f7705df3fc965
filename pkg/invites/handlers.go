// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invites

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/canonical/content-platform/internal/apperrors"
	httptypes "github.com/canonical/content-platform/internal/http/types"
	"github.com/canonical/content-platform/internal/logging"
	"github.com/canonical/content-platform/internal/monitoring"
	"github.com/canonical/content-platform/internal/tracing"
	"github.com/canonical/content-platform/pkg/authentication"
)

type API struct {
	service   ServiceInterface
	validator *validator.Validate

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewAPI(service ServiceInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	return &API{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
		tracer:    tracer,
		monitor:   monitor,
		logger:    logger,
	}
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Post("/accounts/join", a.acceptInvite)
	mux.Post("/accounts/{id}/invite", a.createInvite)
	mux.Get("/accounts/{id}/invites", a.listInvites)
	mux.Delete("/accounts/{id}/invites/{inviteId}", a.cancelInvite)
}

func (a *API) createInvite(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "invites.API.createInvite")
	defer span.End()

	req := new(CreateInviteRequest)
	if !a.decode(w, r, req) {
		return
	}

	uid, _ := authentication.GetUserID(ctx)

	inv, err := a.service.CreateInvite(ctx, chi.URLParam(r, "id"), uid, req)
	if err != nil {
		a.fail(w, "create invite", err)
		return
	}

	_ = httptypes.WriteData(w, http.StatusCreated, inv)
}

func (a *API) listInvites(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "invites.API.listInvites")
	defer span.End()

	uid, _ := authentication.GetUserID(ctx)

	invites, err := a.service.ListInvites(ctx, chi.URLParam(r, "id"), uid)
	if err != nil {
		a.fail(w, "list invites", err)
		return
	}

	_ = httptypes.WriteData(w, http.StatusOK, invites)
}

func (a *API) acceptInvite(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "invites.API.acceptInvite")
	defer span.End()

	req := new(AcceptInviteRequest)
	if !a.decode(w, r, req) {
		return
	}

	var uid, email string
	if p, ok := authentication.PrincipalFromContext(ctx); ok {
		uid, email = p.UserID, p.Email
	}

	m, err := a.service.AcceptInvite(ctx, req.InviteID, uid, email)
	if err != nil {
		a.fail(w, "accept invite", err)
		return
	}

	_ = httptypes.WriteData(w, http.StatusOK, m)
}

func (a *API) cancelInvite(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "invites.API.cancelInvite")
	defer span.End()

	uid, _ := authentication.GetUserID(ctx)

	inv, err := a.service.CancelInvite(ctx, chi.URLParam(r, "id"), chi.URLParam(r, "inviteId"), uid)
	if err != nil {
		a.fail(w, "cancel invite", err)
		return
	}

	_ = httptypes.WriteData(w, http.StatusOK, inv)
}

func (a *API) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		a.logger.Debugf("invalid request body: %v", err)
		_ = httptypes.WriteMessage(w, http.StatusBadRequest, "Invalid request body")
		return false
	}

	if err := a.validator.Struct(v); err != nil {
		_ = httptypes.WriteError(w, apperrors.Validation("%v", err))
		return false
	}

	return true
}

func (a *API) fail(w http.ResponseWriter, action string, err error) {
	if apperrors.Kind(err) == nil {
		a.logger.Errorf("failed to %s: %v", action, err)
	}
	_ = httptypes.WriteError(w, err)
}
