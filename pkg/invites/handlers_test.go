// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invites

import (
	"bytes"
	"encoding/json"
	"io"
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

func newTestRouter(service ServiceInterface) http.Handler {
	logger := logging.NewNoopLogger()

	mux := chi.NewMux()
	mux.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if uid := r.Header.Get("X-Test-User"); uid != "" {
				r = r.WithContext(authentication.WithPrincipal(r.Context(), &authentication.Principal{UserID: uid, Email: r.Header.Get("X-Test-Email")}))
			}
			next.ServeHTTP(w, r)
		})
	})

	NewAPI(service, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test", logger), logger).RegisterEndpoints(mux)

	return mux
}

func TestAPI(t *testing.T) {
	invite := &types.Invite{ID: "inv-1", AccountID: "acc-1", Email: "bob@example.com", Role: types.RoleEditor, Status: types.InvitePending}

	tests := []struct {
		name           string
		method         string
		path           string
		user           string
		email          string
		body           string
		setupMocks     func(*MockServiceInterface)
		expectedStatus int
	}{
		{
			name:   "create invite",
			method: http.MethodPost,
			path:   "/accounts/acc-1/invite",
			user:   "alice",
			body:   `{"email":"bob@example.com","role":"editor"}`,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().CreateInvite(gomock.Any(), "acc-1", "alice", &CreateInviteRequest{Email: "bob@example.com", Role: types.RoleEditor}).Return(invite, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "create invite with malformed email",
			method:         http.MethodPost,
			path:           "/accounts/acc-1/invite",
			user:           "alice",
			body:           `{"email":"bob","role":"editor"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "create invite without permission",
			method: http.MethodPost,
			path:   "/accounts/acc-1/invite",
			user:   "dave",
			body:   `{"email":"bob@example.com","role":"viewer"}`,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().CreateInvite(gomock.Any(), "acc-1", "dave", gomock.Any()).Return(nil, apperrors.PermissionDenied("manage_members required"))
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:   "list invites",
			method: http.MethodGet,
			path:   "/accounts/acc-1/invites",
			user:   "alice",
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().ListInvites(gomock.Any(), "acc-1", "alice").Return([]*types.Invite{invite}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "join",
			method: http.MethodPost,
			path:   "/accounts/join",
			user:   "bob",
			email:  "bob@example.com",
			body:   `{"inviteId":"inv-1"}`,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().AcceptInvite(gomock.Any(), "inv-1", "bob", "bob@example.com").Return(&types.Membership{AccountID: "acc-1", UserID: "bob", Role: types.RoleEditor}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "join expired invite",
			method: http.MethodPost,
			path:   "/accounts/join",
			user:   "bob",
			body:   `{"inviteId":"inv-1"}`,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().AcceptInvite(gomock.Any(), "inv-1", "bob", "").Return(nil, apperrors.Validation("invite inv-1 is expired"))
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "join without invite id",
			method:         http.MethodPost,
			path:           "/accounts/join",
			user:           "bob",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "join as member",
			method: http.MethodPost,
			path:   "/accounts/join",
			user:   "bob",
			body:   `{"inviteId":"inv-1"}`,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().AcceptInvite(gomock.Any(), "inv-1", "bob", "").Return(nil, apperrors.Conflict("already a member"))
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "cancel invite",
			method: http.MethodDelete,
			path:   "/accounts/acc-1/invites/inv-1",
			user:   "alice",
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().CancelInvite(gomock.Any(), "acc-1", "inv-1", "alice").Return(&types.Invite{ID: "inv-1", Status: types.InviteCancelled}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "cancel invite of another account",
			method: http.MethodDelete,
			path:   "/accounts/acc-2/invites/inv-1",
			user:   "alice",
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().CancelInvite(gomock.Any(), "acc-2", "inv-1", "alice").Return(nil, apperrors.NotFound("invite inv-1"))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockServiceInterface(ctrl)
			if test.setupMocks != nil {
				test.setupMocks(service)
			}

			var body io.Reader
			if test.body != "" {
				body = bytes.NewBufferString(test.body)
			}

			req := httptest.NewRequest(test.method, test.path, body)
			if test.user != "" {
				req.Header.Set("X-Test-User", test.user)
				req.Header.Set("X-Test-Email", test.email)
			}
			w := httptest.NewRecorder()

			newTestRouter(service).ServeHTTP(w, req)

			if w.Code != test.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", test.expectedStatus, w.Code, w.Body.String())
			}

			resp := new(httptypes.Response)
			if err := json.NewDecoder(w.Body).Decode(resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Success != (w.Code < 300) {
				t.Errorf("unexpected success flag %v for status %d", resp.Success, w.Code)
			}
		})
	}
}
