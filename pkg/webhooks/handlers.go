// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/content-platform/internal/apperrors"
	types "github.com/canonical/content-platform/internal/http/types"
	"github.com/canonical/content-platform/internal/logging"
	"github.com/canonical/content-platform/pkg/tasks"
)

const (
	SignatureHeader = "Upstash-Signature"

	maxBodyBytes     = 1 << 20
	maxMessageLength = 120
)

type API struct {
	service   ServiceInterface
	publicURL string
	logger    logging.LoggerInterface
}

func NewAPI(service ServiceInterface, publicURL string, logger logging.LoggerInterface) *API {
	return &API{
		service:   service,
		publicURL: strings.TrimSuffix(publicURL, "/"),
		logger:    logger,
	}
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Post(tasks.WebhookPath, a.callback)
}

func (a *API) callback(w http.ResponseWriter, r *http.Request) {
	taskID := r.URL.Query().Get("taskId")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		_ = types.WriteJSON(w, http.StatusBadRequest, &CallbackResponse{TaskID: taskID, Error: "Invalid request body"})
		return
	}

	outcome, err := a.service.HandleCallback(r.Context(), &CallbackRequest{
		Signature: r.Header.Get(SignatureHeader),
		URL:       a.callbackURL(r),
		Body:      body,
		TaskID:    taskID,
	})

	switch {
	case errors.Is(err, apperrors.ErrSignatureVerification):
		_ = types.WriteJSON(w, http.StatusUnauthorized, &CallbackResponse{Error: "Invalid signature"})
	case errors.Is(err, apperrors.ErrValidation):
		_ = types.WriteJSON(w, http.StatusBadRequest, &CallbackResponse{TaskID: taskID, Error: shortMessage(err)})
	case err != nil:
		a.logger.Errorf("task %s failed: %v", taskID, err)
		if outcome != nil {
			taskID = outcome.TaskID
		}
		_ = types.WriteJSON(w, http.StatusInternalServerError, &CallbackResponse{TaskID: taskID, Error: shortMessage(err)})
	default:
		_ = types.WriteJSON(w, http.StatusOK, &CallbackResponse{
			Success:  true,
			TaskID:   outcome.TaskID,
			Result:   outcome.Result,
			Recorded: &outcome.Recorded,
		})
	}
}

// callbackURL rebuilds the address the broker was asked to call, which is
// the subject of the signature.
func (a *API) callbackURL(r *http.Request) string {
	if a.publicURL == "" {
		return ""
	}
	return a.publicURL + r.URL.RequestURI()
}

// shortMessage keeps the first line of err, bounded in length.
func shortMessage(err error) string {
	msg := err.Error()
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i]
	}
	if utf8.RuneCountInString(msg) > maxMessageLength {
		msg = string([]rune(msg)[:maxMessageLength]) + "..."
	}
	return msg
}
