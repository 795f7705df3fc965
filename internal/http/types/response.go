// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"encoding/json"
	"net/http"

	"github.com/canonical/content-platform/internal/apperrors"
)

// Response is the envelope of every REST reply.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	return json.NewEncoder(w).Encode(v)
}

func WriteData(w http.ResponseWriter, status int, data any) error {
	return WriteJSON(w, status, Response{Success: true, Data: data})
}

// WriteError renders err with the status its taxonomy maps to. Unclassified
// errors are reported without detail.
func WriteError(w http.ResponseWriter, err error) error {
	status := apperrors.HTTPStatus(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = http.StatusText(status)
	}

	return WriteJSON(w, status, Response{Success: false, Error: message})
}

// WriteMessage renders a failure with an explicit status and message.
func WriteMessage(w http.ResponseWriter, status int, message string) error {
	return WriteJSON(w, status, Response{Success: false, Error: message})
}
