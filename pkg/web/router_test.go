// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/canonical/content-platform/internal/apperrors"
	"github.com/canonical/content-platform/internal/logging"
	"github.com/canonical/content-platform/internal/monitoring"
	"github.com/canonical/content-platform/internal/tracing"
	"github.com/canonical/content-platform/internal/types"
	"github.com/canonical/content-platform/pkg/accounts"
	"github.com/canonical/content-platform/pkg/authentication"
	"github.com/canonical/content-platform/pkg/content"
	"github.com/canonical/content-platform/pkg/invites"
	"github.com/canonical/content-platform/pkg/tasks"
	"github.com/canonical/content-platform/pkg/webhooks"
)

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

type mocks struct {
	accounts *accounts.MockServiceInterface
	invites  *invites.MockServiceInterface
	content  *content.MockServiceInterface
	tasks    *tasks.MockSchedulerInterface
	webhooks *webhooks.MockServiceInterface
}

func newTestRouter(ctrl *gomock.Controller) (http.Handler, *mocks) {
	logger := logging.NewNoopLogger()

	m := &mocks{
		accounts: accounts.NewMockServiceInterface(ctrl),
		invites:  invites.NewMockServiceInterface(ctrl),
		content:  content.NewMockServiceInterface(ctrl),
		tasks:    tasks.NewMockSchedulerInterface(ctrl),
		webhooks: webhooks.NewMockServiceInterface(ctrl),
	}

	router := NewRouter(
		&Services{
			Store:     pingFunc(func(context.Context) error { return nil }),
			Verifier:  authentication.NewNoopVerifier(),
			Accounts:  m.accounts,
			Invites:   m.invites,
			Content:   m.content,
			Scheduler: m.tasks,
			Webhooks:  m.webhooks,
			PublicURL: "https://platform.example.com",
		},
		tracing.NewNoopTracer(),
		monitoring.NewNoopMonitor("test", logger),
		logger,
	)

	return router, m
}

func TestRouter(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		token          string
		setupMocks     func(*mocks)
		expectedStatus int
	}{
		{
			name:           "status is public",
			method:         http.MethodGet,
			path:           "/api/v0/status",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "metrics are public",
			method:         http.MethodGet,
			path:           "/api/v0/metrics",
			expectedStatus: http.StatusOK,
		},
		{
			name:   "public content needs no token",
			method: http.MethodGet,
			path:   "/public/content/hello",
			setupMocks: func(m *mocks) {
				m.content.EXPECT().GetPublicContent(gomock.Any(), "hello").Return(&types.Content{ID: "post-1", Slug: "hello"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "accounts need a token",
			method:         http.MethodGet,
			path:           "/accounts/acc-1",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "tasks need a token",
			method:         http.MethodGet,
			path:           "/qstash/tasks",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "authenticated request reaches accounts",
			method: http.MethodGet,
			path:   "/accounts/acc-1",
			token:  "alice:alice@example.com",
			setupMocks: func(m *mocks) {
				m.accounts.EXPECT().GetAccount(gomock.Any(), "acc-1", "alice").Return(&types.AccountWithRole{Account: &types.Account{ID: "acc-1"}, UserRole: types.RoleOwner}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "authenticated request reaches invites",
			method: http.MethodGet,
			path:   "/accounts/acc-1/invites",
			token:  "alice",
			setupMocks: func(m *mocks) {
				m.invites.EXPECT().ListInvites(gomock.Any(), "acc-1", "alice").Return(nil, apperrors.PermissionDenied("denied"))
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:   "webhook skips session authentication",
			method: http.MethodPost,
			path:   "/qstash/webhook?taskId=task-1",
			setupMocks: func(m *mocks) {
				m.webhooks.EXPECT().HandleCallback(gomock.Any(), gomock.Any()).Return(nil, apperrors.ErrSignatureVerification)
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			router, m := newTestRouter(ctrl)
			if test.setupMocks != nil {
				test.setupMocks(m)
			}

			req := httptest.NewRequest(test.method, test.path, strings.NewReader("{}"))
			if test.token != "" {
				req.Header.Set("Authorization", "Bearer "+test.token)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != test.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", test.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestRouterCORSPreflight(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := newTestRouter(ctrl)

	req := httptest.NewRequest(http.MethodOptions, "/accounts", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected wildcard origin, got %q", got)
	}
}
