// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/canonical/content-platform/internal/apperrors"
)

func TestWriteData(t *testing.T) {
	rr := httptest.NewRecorder()

	if err := WriteData(rr, http.StatusCreated, map[string]string{"id": "a1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %s", ct)
	}

	var body struct {
		Success bool              `json:"success"`
		Data    map[string]string `json:"data"`
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &body)

	if !body.Success || body.Data["id"] != "a1" {
		t.Fatalf("unexpected body %s", rr.Body.String())
	}
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "classified error keeps its message",
			err:     apperrors.Conflict("slug hello taken"),
			status:  http.StatusConflict,
			message: "slug hello taken: conflict",
		},
		{
			name:    "unclassified error is hidden",
			err:     errors.New("dial tcp 10.0.0.1:6379: refused"),
			status:  http.StatusInternalServerError,
			message: "Internal Server Error",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			_ = WriteError(rr, test.err)

			if rr.Code != test.status {
				t.Fatalf("expected %d, got %d", test.status, rr.Code)
			}

			var body Response
			_ = json.Unmarshal(rr.Body.Bytes(), &body)

			if body.Success {
				t.Fatal("expected success false")
			}
			if body.Error != test.message {
				t.Fatalf("expected message %q, got %q", test.message, body.Error)
			}
		})
	}
}
