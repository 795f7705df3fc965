// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package content

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
	mux.Get("/accounts/{id}/content", a.listContent)
	mux.Post("/accounts/{id}/content", a.createContent)
	mux.Get("/accounts/{id}/content/{contentId}", a.getContent)
	mux.Put("/accounts/{id}/content/{contentId}", a.updateContent)
	mux.Delete("/accounts/{id}/content/{contentId}", a.deleteContent)
}

// RegisterPublicEndpoints adds the routes served without authentication.
func (a *API) RegisterPublicEndpoints(mux chi.Router) {
	mux.Get("/public/content/{slug}", a.getPublicContent)
}

func (a *API) listContent(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "content.API.listContent")
	defer span.End()

	items, err := a.service.ListContent(ctx, chi.URLParam(r, "id"), userID(r))
	if err != nil {
		a.fail(w, "list content", err)
		return
	}

	_ = httptypes.WriteData(w, http.StatusOK, items)
}

func (a *API) createContent(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "content.API.createContent")
	defer span.End()

	req := new(CreateContentRequest)
	if !a.decode(w, r, req) {
		return
	}

	c, err := a.service.CreateContent(ctx, chi.URLParam(r, "id"), userID(r), req)
	if err != nil {
		a.fail(w, "create content", err)
		return
	}

	_ = httptypes.WriteData(w, http.StatusCreated, c)
}

func (a *API) getContent(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "content.API.getContent")
	defer span.End()

	c, err := a.service.GetContent(ctx, chi.URLParam(r, "id"), chi.URLParam(r, "contentId"), userID(r))
	if err != nil {
		a.fail(w, "get content", err)
		return
	}

	_ = httptypes.WriteData(w, http.StatusOK, c)
}

func (a *API) updateContent(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "content.API.updateContent")
	defer span.End()

	req := new(UpdateContentRequest)
	if !a.decode(w, r, req) {
		return
	}

	c, err := a.service.UpdateContent(ctx, chi.URLParam(r, "id"), chi.URLParam(r, "contentId"), userID(r), req)
	if err != nil {
		a.fail(w, "update content", err)
		return
	}

	_ = httptypes.WriteData(w, http.StatusOK, c)
}

func (a *API) deleteContent(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "content.API.deleteContent")
	defer span.End()

	if err := a.service.DeleteContent(ctx, chi.URLParam(r, "id"), chi.URLParam(r, "contentId"), userID(r)); err != nil {
		a.fail(w, "delete content", err)
		return
	}

	_ = httptypes.WriteData(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (a *API) getPublicContent(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "content.API.getPublicContent")
	defer span.End()

	c, err := a.service.GetPublicContent(ctx, chi.URLParam(r, "slug"))
	if err != nil {
		a.fail(w, "get public content", err)
		return
	}

	_ = httptypes.WriteData(w, http.StatusOK, c)
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
