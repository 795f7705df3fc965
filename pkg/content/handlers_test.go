// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package content

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
	api := NewAPI(service, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test", logger), logger)

	mux := chi.NewMux()
	api.RegisterPublicEndpoints(mux)
	mux.Group(func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if uid := r.Header.Get("X-Test-User"); uid != "" {
					r = r.WithContext(authentication.WithPrincipal(r.Context(), &authentication.Principal{UserID: uid}))
				}
				next.ServeHTTP(w, r)
			})
		})
		api.RegisterEndpoints(r)
	})

	return mux
}

func TestAPI(t *testing.T) {
	post := &types.Content{ID: "post-1", AccountID: "acc-1", Title: "Hello", Slug: "hello", Status: types.ContentDraft}

	tests := []struct {
		name           string
		method         string
		path           string
		user           string
		body           string
		setupMocks     func(*MockServiceInterface)
		expectedStatus int
	}{
		{
			name:   "list content",
			method: http.MethodGet,
			path:   "/accounts/acc-1/content",
			user:   "alice",
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().ListContent(gomock.Any(), "acc-1", "alice").Return([]*types.Content{post}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "create content",
			method: http.MethodPost,
			path:   "/accounts/acc-1/content",
			user:   "alice",
			body:   `{"title":"Hello","status":"draft"}`,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().CreateContent(gomock.Any(), "acc-1", "alice", &CreateContentRequest{Title: "Hello", Status: types.ContentDraft}).Return(post, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "create content with unknown status",
			method:         http.MethodPost,
			path:           "/accounts/acc-1/content",
			user:           "alice",
			body:           `{"title":"Hello","status":"archived"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "create content without title",
			method:         http.MethodPost,
			path:           "/accounts/acc-1/content",
			user:           "alice",
			body:           `{"body":"text"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "create content with taken slug",
			method: http.MethodPost,
			path:   "/accounts/acc-1/content",
			user:   "alice",
			body:   `{"title":"Hello","slug":"hello"}`,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().CreateContent(gomock.Any(), "acc-1", "alice", gomock.Any()).Return(nil, apperrors.Conflict("slug taken"))
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "get content",
			method: http.MethodGet,
			path:   "/accounts/acc-1/content/post-1",
			user:   "vic",
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().GetContent(gomock.Any(), "acc-1", "post-1", "vic").Return(post, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "update content",
			method: http.MethodPut,
			path:   "/accounts/acc-1/content/post-1",
			user:   "alice",
			body:   `{"isPublic":true}`,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().UpdateContent(gomock.Any(), "acc-1", "post-1", "alice", gomock.Any()).Return(post, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "delete content denied",
			method: http.MethodDelete,
			path:   "/accounts/acc-1/content/post-1",
			user:   "ed",
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().DeleteContent(gomock.Any(), "acc-1", "post-1", "ed").Return(apperrors.PermissionDenied("manage_content required"))
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:   "delete content",
			method: http.MethodDelete,
			path:   "/accounts/acc-1/content/post-1",
			user:   "alice",
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().DeleteContent(gomock.Any(), "acc-1", "post-1", "alice").Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "public content",
			method: http.MethodGet,
			path:   "/public/content/hello",
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().GetPublicContent(gomock.Any(), "hello").Return(post, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "hidden public content",
			method: http.MethodGet,
			path:   "/public/content/draft",
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().GetPublicContent(gomock.Any(), "draft").Return(nil, apperrors.NotFound("content draft"))
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
