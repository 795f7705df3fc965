// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/canonical/content-platform/internal/logging"
	"github.com/canonical/content-platform/pkg/tasks"
)

func TestAPI_Callback(t *testing.T) {
	body := []byte(`{"taskId":"t-1","type":"cleanup_task","payload":{},"userId":"user-1"}`)

	tests := []struct {
		name           string
		signature      func(*testing.T) string
		body           []byte
		setupMocks     func(*MockExecutorInterface)
		expectedStatus int
		validateResp   func(*testing.T, *CallbackResponse)
	}{
		{
			name:      "success",
			signature: func(t *testing.T) string { return sign(t, body, nil) },
			setupMocks: func(e *MockExecutorInterface) {
				e.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(
					&tasks.Outcome{TaskID: "t-1", Result: &tasks.CleanupResult{Removed: 2, OlderThanDays: 30}, Recorded: true}, nil,
				)
			},
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, resp *CallbackResponse) {
				if !resp.Success || resp.TaskID != "t-1" || resp.Result == nil || resp.Recorded == nil || !*resp.Recorded {
					t.Errorf("unexpected response %+v", resp)
				}
			},
		},
		{
			name:      "handler failure is truncated",
			signature: func(t *testing.T) string { return sign(t, body, nil) },
			setupMocks: func(e *MockExecutorInterface) {
				e.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(
					&tasks.Outcome{TaskID: "t-1"}, errors.New(strings.Repeat("x", 500)+"\nstack"),
				)
			},
			expectedStatus: http.StatusInternalServerError,
			validateResp: func(t *testing.T, resp *CallbackResponse) {
				if resp.Success || resp.TaskID != "t-1" {
					t.Errorf("unexpected response %+v", resp)
				}
				if len(resp.Error) > maxMessageLength+3 || strings.Contains(resp.Error, "stack") {
					t.Errorf("expected a short message, got %q", resp.Error)
				}
			},
		},
		{
			name:      "multi-byte failure is truncated on a character boundary",
			signature: func(t *testing.T) string { return sign(t, body, nil) },
			setupMocks: func(e *MockExecutorInterface) {
				e.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(
					&tasks.Outcome{TaskID: "t-1"}, errors.New("x"+strings.Repeat("é", 300)),
				)
			},
			expectedStatus: http.StatusInternalServerError,
			validateResp: func(t *testing.T, resp *CallbackResponse) {
				if strings.ContainsRune(resp.Error, utf8.RuneError) {
					t.Errorf("expected whole characters only, got %q", resp.Error)
				}
				if n := utf8.RuneCountInString(resp.Error); n != maxMessageLength+3 {
					t.Errorf("expected %d characters, got %d", maxMessageLength+3, n)
				}
			},
		},
		{
			name: "invalid signature",
			signature: func(t *testing.T) string {
				return sign(t, body, func(o *tokenOptions) { o.key = "sig_attacker" })
			},
			setupMocks: func(e *MockExecutorInterface) {
				e.EXPECT().Execute(gomock.Any(), gomock.Any()).Times(0)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:      "missing signature",
			signature: func(*testing.T) string { return "" },
			setupMocks: func(e *MockExecutorInterface) {
				e.EXPECT().Execute(gomock.Any(), gomock.Any()).Times(0)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "malformed body",
			body:           []byte(`not-json`),
			signature:      func(t *testing.T) string { return sign(t, []byte(`not-json`), nil) },
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			executor := NewMockExecutorInterface(ctrl)
			if test.setupMocks != nil {
				test.setupMocks(executor)
			}

			logger := logging.NewNoopLogger()
			service := newTestService(newTestVerifier(testCurrentKey, testNextKey), executor)

			mux := chi.NewMux()
			NewAPI(service, "https://app.example.com/", logger).RegisterEndpoints(mux)

			payload := body
			if test.body != nil {
				payload = test.body
			}

			req := httptest.NewRequest(http.MethodPost, "/qstash/webhook?taskId=t-1", bytes.NewReader(payload))
			if sig := test.signature(t); sig != "" {
				req.Header.Set(SignatureHeader, sig)
			}
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != test.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", test.expectedStatus, w.Code, w.Body.String())
			}

			resp := new(CallbackResponse)
			if err := json.NewDecoder(w.Body).Decode(resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if test.validateResp != nil {
				test.validateResp(t, resp)
			}
		})
	}
}

func TestShortMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "short", err: errors.New("boom"), expected: "boom"},
		{name: "first line only", err: errors.New("boom\ngoroutine 1"), expected: "boom"},
		{name: "ascii", err: errors.New(strings.Repeat("a", 200)), expected: strings.Repeat("a", maxMessageLength) + "..."},
		{name: "two byte characters", err: errors.New("a" + strings.Repeat("ü", 200)), expected: "a" + strings.Repeat("ü", maxMessageLength-1) + "..."},
		{name: "four byte characters", err: errors.New(strings.Repeat("🚀", maxMessageLength+1)), expected: strings.Repeat("🚀", maxMessageLength) + "..."},
		{name: "exactly at the limit", err: errors.New(strings.Repeat("ü", maxMessageLength)), expected: strings.Repeat("ü", maxMessageLength)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := shortMessage(test.err)

			if !utf8.ValidString(got) {
				t.Fatalf("expected valid UTF-8, got %q", got)
			}
			if got != test.expected {
				t.Errorf("expected %q, got %q", test.expected, got)
			}
		})
	}
}
