// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package mail

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/canonical/content-platform/internal/apperrors"
	"github.com/canonical/content-platform/internal/logging"
	"github.com/canonical/content-platform/internal/monitoring"
	"github.com/canonical/content-platform/internal/tracing"
)

func TestWebhookMailer_Send(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		expectErr bool
	}{
		{name: "delivered", status: http.StatusAccepted},
		{name: "rejected", status: http.StatusInternalServerError, expectErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var received Message

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
					t.Errorf("failed to decode mail: %v", err)
				}
				w.WriteHeader(test.status)
			}))
			defer srv.Close()

			logger := logging.NewNoopLogger()
			m := NewWebhookMailer(srv.URL, "noreply@example.com", tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test", logger), logger)

			err := m.Send(context.Background(), &Message{To: "alice@example.com", Subject: "Welcome"})

			if test.expectErr {
				if !errors.Is(err, apperrors.ErrExternalService) {
					t.Fatalf("expected external service error, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if received.From != "noreply@example.com" || received.To != "alice@example.com" {
				t.Errorf("unexpected message %+v", received)
			}
		})
	}
}

func TestLogMailer_DefaultsSender(t *testing.T) {
	msg := &Message{To: "bob@example.com"}

	if err := NewLogMailer("noreply@example.com", logging.NewNoopLogger()).Send(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.From != "noreply@example.com" {
		t.Errorf("expected default sender, got %q", msg.From)
	}
}
