// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tasks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/canonical/content-platform/internal/apperrors"
	httptypes "github.com/canonical/content-platform/internal/http/types"
	"github.com/canonical/content-platform/internal/logging"
	"github.com/canonical/content-platform/internal/monitoring"
	"github.com/canonical/content-platform/internal/tracing"
	"github.com/canonical/content-platform/internal/types"
	"github.com/canonical/content-platform/pkg/authentication"
)

func newTestRouter(scheduler SchedulerInterface, userID string) http.Handler {
	logger := logging.NewNoopLogger()

	mux := chi.NewMux()
	if userID != "" {
		mux.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctx := authentication.WithPrincipal(r.Context(), &authentication.Principal{UserID: userID})
				next.ServeHTTP(w, r.WithContext(ctx))
			})
		})
	}

	NewAPI(scheduler, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test", logger), logger).RegisterEndpoints(mux)

	return mux
}

func TestAPI_Schedule(t *testing.T) {
	tests := []struct {
		name           string
		userID         string
		body           string
		setupMocks     func(*MockSchedulerInterface)
		expectedStatus int
	}{
		{
			name:   "created",
			userID: "user-1",
			body:   `{"type":"cleanup_task","payload":{"olderThanDays":7},"delay":"10m"}`,
			setupMocks: func(s *MockSchedulerInterface) {
				s.EXPECT().ScheduleTask(gomock.Any(), "user-1", gomock.Any()).DoAndReturn(
					func(_ context.Context, _ string, req *ScheduleRequest) (*types.Task, error) {
						if req.Type != KindCleanup || req.Delay == nil {
							t.Errorf("unexpected request %+v", req)
						}
						return &types.Task{ID: "t-1", Status: types.TaskPending}, nil
					},
				)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "anonymous",
			body:           `{"type":"cleanup_task","payload":{}}`,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "malformed body",
			userID:         "user-1",
			body:           `{"type":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing type",
			userID:         "user-1",
			body:           `{"payload":{}}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "rejected by scheduler",
			userID: "user-1",
			body:   `{"type":"cleanup_task","payload":{}}`,
			setupMocks: func(s *MockSchedulerInterface) {
				s.EXPECT().ScheduleTask(gomock.Any(), "user-1", gomock.Any()).Return(nil, apperrors.Validation("scheduledFor and delay are mutually exclusive"))
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "broker unavailable",
			userID: "user-1",
			body:   `{"type":"cleanup_task","payload":{}}`,
			setupMocks: func(s *MockSchedulerInterface) {
				s.EXPECT().ScheduleTask(gomock.Any(), "user-1", gomock.Any()).Return(nil, apperrors.ExternalService("broker unreachable"))
			},
			expectedStatus: http.StatusBadGateway,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			scheduler := NewMockSchedulerInterface(ctrl)
			if test.setupMocks != nil {
				test.setupMocks(scheduler)
			}

			req := httptest.NewRequest(http.MethodPost, "/qstash/schedule", bytes.NewBufferString(test.body))
			w := httptest.NewRecorder()

			newTestRouter(scheduler, test.userID).ServeHTTP(w, req)

			if w.Code != test.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", test.expectedStatus, w.Code, w.Body.String())
			}

			var resp httptypes.Response
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Success != (test.expectedStatus == http.StatusCreated) {
				t.Errorf("unexpected success flag in %+v", resp)
			}
		})
	}
}

func TestAPI_ListTasks(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{name: "ok", expectedStatus: http.StatusOK},
		{name: "store failure", err: errors.New("boom"), expectedStatus: http.StatusInternalServerError},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			scheduler := NewMockSchedulerInterface(ctrl)
			scheduler.EXPECT().ListTasks(gomock.Any(), "user-1").Return([]*types.Task{{ID: "t-1"}}, test.err)

			w := httptest.NewRecorder()
			newTestRouter(scheduler, "user-1").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/qstash/tasks", nil))

			if w.Code != test.expectedStatus {
				t.Fatalf("expected status %d, got %d", test.expectedStatus, w.Code)
			}
		})
	}
}

func TestAPI_ListNotifications(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	scheduler := NewMockSchedulerInterface(ctrl)
	scheduler.EXPECT().ListNotifications(gomock.Any(), "user-1").Return([]*types.Notification{{ID: "n-1", Title: "Hi"}}, nil)

	w := httptest.NewRecorder()
	newTestRouter(scheduler, "user-1").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notifications", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp struct {
		Data []*types.Notification `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil || len(resp.Data) != 1 || resp.Data[0].ID != "n-1" {
		t.Fatalf("unexpected response %+v %v", resp, err)
	}
}
