// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package accounts

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
	mux.Post("/accounts", a.createAccount)
	mux.Get("/accounts", a.listAccounts)
	mux.Get("/accounts/default", a.defaultAccount)
	mux.Get("/accounts/{id}", a.getAccount)
	mux.Put("/accounts/{id}", a.updateAccount)
	mux.Get("/accounts/{id}/members", a.listMembers)
	mux.Put("/accounts/{id}/members/{memberId}", a.updateMemberRole)
	mux.Delete("/accounts/{id}/members/{memberId}", a.removeMember)
}

func (a *API) createAccount(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "accounts.API.createAccount")
	defer span.End()

	req := new(CreateAccountRequest)
	if !a.decode(w, r, req) {
		return
	}

	account, err := a.service.CreateAccount(ctx, userID(r), req)
	if err != nil {
		a.fail(w, "create account", err)
		return
	}

	_ = httptypes.WriteData(w, http.StatusCreated, account)
}

// listAccounts makes sure the caller has an account before listing them.
func (a *API) listAccounts(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "accounts.API.listAccounts")
	defer span.End()

	uid, email := principal(r)

	if _, err := a.service.GetOrCreatePersonalAccount(ctx, uid, email); err != nil {
		a.fail(w, "resolve personal account", err)
		return
	}

	accounts, err := a.service.ListAccounts(ctx, uid)
	if err != nil {
		a.fail(w, "list accounts", err)
		return
	}

	_ = httptypes.WriteData(w, http.StatusOK, accounts)
}

func (a *API) defaultAccount(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "accounts.API.defaultAccount")
	defer span.End()

	uid, email := principal(r)

	account, err := a.service.GetOrCreatePersonalAccount(ctx, uid, email)
	if err != nil {
		a.fail(w, "resolve personal account", err)
		return
	}

	_ = httptypes.WriteData(w, http.StatusOK, account)
}

func (a *API) getAccount(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "accounts.API.getAccount")
	defer span.End()

	account, err := a.service.GetAccount(ctx, chi.URLParam(r, "id"), userID(r))
	if err != nil {
		a.fail(w, "get account", err)
		return
	}

	_ = httptypes.WriteData(w, http.StatusOK, account)
}

func (a *API) updateAccount(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "accounts.API.updateAccount")
	defer span.End()

	req := new(UpdateAccountRequest)
	if !a.decode(w, r, req) {
		return
	}

	account, err := a.service.UpdateAccount(ctx, chi.URLParam(r, "id"), userID(r), req)
	if err != nil {
		a.fail(w, "update account", err)
		return
	}

	_ = httptypes.WriteData(w, http.StatusOK, account)
}

func (a *API) listMembers(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "accounts.API.listMembers")
	defer span.End()

	members, err := a.service.ListMembers(ctx, chi.URLParam(r, "id"), userID(r))
	if err != nil {
		a.fail(w, "list members", err)
		return
	}

	_ = httptypes.WriteData(w, http.StatusOK, members)
}

func (a *API) updateMemberRole(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "accounts.API.updateMemberRole")
	defer span.End()

	req := new(UpdateMemberRoleRequest)
	if !a.decode(w, r, req) {
		return
	}

	m, err := a.service.UpdateMemberRole(ctx, chi.URLParam(r, "id"), userID(r), chi.URLParam(r, "memberId"), req.Role)
	if err != nil {
		a.fail(w, "update member role", err)
		return
	}

	_ = httptypes.WriteData(w, http.StatusOK, m)
}

func (a *API) removeMember(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "accounts.API.removeMember")
	defer span.End()

	if err := a.service.RemoveMember(ctx, chi.URLParam(r, "id"), userID(r), chi.URLParam(r, "memberId")); err != nil {
		a.fail(w, "remove member", err)
		return
	}

	_ = httptypes.WriteData(w, http.StatusOK, map[string]string{"status": "removed"})
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

func userID(r *http.Request) string {
	uid, _ := authentication.GetUserID(r.Context())
	return uid
}

func principal(r *http.Request) (string, string) {
	p, ok := authentication.PrincipalFromContext(r.Context())
	if !ok {
		return "", ""
	}
	return p.UserID, p.Email
}
