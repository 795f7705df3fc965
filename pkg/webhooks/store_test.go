// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/canonical/content-platform/internal/kv"
	"github.com/canonical/content-platform/internal/logging"
	"github.com/canonical/content-platform/internal/monitoring"
	"github.com/canonical/content-platform/internal/storage"
	"github.com/canonical/content-platform/internal/tracing"
	"github.com/canonical/content-platform/internal/types"
	"github.com/canonical/content-platform/pkg/tasks"
)

func TestAPI_CallbackAgainstStore(t *testing.T) {
	tests := []struct {
		name           string
		signature      func(*testing.T, []byte) string
		expectedStatus int
		expectedTask   types.TaskStatus
	}{
		{
			name: "foreign signing key",
			signature: func(t *testing.T, body []byte) string {
				return sign(t, body, func(o *tokenOptions) { o.key = "sig_attacker" })
			},
			expectedStatus: http.StatusUnauthorized,
			expectedTask:   types.TaskPending,
		},
		{
			name: "signature over another body",
			signature: func(t *testing.T, _ []byte) string {
				return sign(t, []byte(`{"taskId":"t-1","type":"cleanup_task","payload":{"olderThanDays":1}}`), nil)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedTask:   types.TaskPending,
		},
		{
			name: "expired signature",
			signature: func(t *testing.T, body []byte) string {
				return sign(t, body, func(o *tokenOptions) { o.exp = testNow.Add(-time.Minute) })
			},
			expectedStatus: http.StatusUnauthorized,
			expectedTask:   types.TaskPending,
		},
		{
			name:           "valid signature",
			signature:      func(t *testing.T, body []byte) string { return sign(t, body, nil) },
			expectedStatus: http.StatusOK,
			expectedTask:   types.TaskCompleted,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			ctx := context.Background()
			logger := logging.NewNoopLogger()
			tracer := tracing.NewNoopTracer()
			monitor := monitoring.NewNoopMonitor("test", logger)

			store := storage.NewStorage(kv.NewMemoryStore(), tracer, monitor, logger)
			executor := tasks.NewExecutor(
				store,
				tasks.NewMockMailerInterface(ctrl),
				tasks.NewMockPublisherInterface(ctrl),
				tasks.NewMockDirectoryInterface(ctrl),
				tracer,
				monitor,
				logger,
			)

			payload := json.RawMessage(`{}`)
			if err := store.CreateTask(ctx, &types.Task{
				ID:        "t-1",
				Type:      string(tasks.KindCleanup),
				Payload:   payload,
				Status:    types.TaskPending,
				CreatedAt: testNow,
				UpdatedAt: testNow,
				UserID:    "user-1",
			}); err != nil {
				t.Fatalf("failed to seed task: %v", err)
			}

			before, err := store.GetTask(ctx, "t-1")
			if err != nil {
				t.Fatalf("failed to load task: %v", err)
			}

			body, err := json.Marshal(&tasks.Callback{TaskID: "t-1", Type: tasks.KindCleanup, Payload: payload, UserID: "user-1", CreatedAt: testNow})
			if err != nil {
				t.Fatalf("failed to encode callback: %v", err)
			}

			mux := chi.NewMux()
			service := NewService(newTestVerifier(testCurrentKey, testNextKey), executor, tracer, monitor, logger)
			NewAPI(service, "https://app.example.com", logger).RegisterEndpoints(mux)

			req := httptest.NewRequest(http.MethodPost, "/qstash/webhook?taskId=t-1", bytes.NewReader(body))
			req.Header.Set(SignatureHeader, test.signature(t, body))
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != test.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", test.expectedStatus, w.Code, w.Body.String())
			}

			after, err := store.GetTask(ctx, "t-1")
			if err != nil {
				t.Fatalf("failed to load task: %v", err)
			}

			if after.Value.Status != test.expectedTask {
				t.Errorf("expected task %s, got %s", test.expectedTask, after.Value.Status)
			}

			if test.expectedStatus == http.StatusUnauthorized && after.Encoded != before.Encoded {
				t.Errorf("rejected delivery rewrote the task:\n%s\n%s", before.Encoded, after.Encoded)
			}
			if test.expectedStatus == http.StatusOK && after.Encoded == before.Encoded {
				t.Error("accepted delivery left the task untouched")
			}
		})
	}
}
