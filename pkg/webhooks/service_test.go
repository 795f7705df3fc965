// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/canonical/content-platform/internal/apperrors"
	"github.com/canonical/content-platform/internal/logging"
	"github.com/canonical/content-platform/internal/monitoring"
	"github.com/canonical/content-platform/internal/tracing"
	"github.com/canonical/content-platform/pkg/tasks"
)

//go:generate mockgen -build_flags=--mod=mod -package webhooks -destination ./mock_interfaces.go -source=./interfaces.go

func newTestService(verifier VerifierInterface, executor ExecutorInterface) *Service {
	logger := logging.NewNoopLogger()
	return NewService(verifier, executor, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test", logger), logger)
}

func TestService_HandleCallback(t *testing.T) {
	tests := []struct {
		name        string
		req         *CallbackRequest
		setupMocks  func(*MockVerifierInterface, *MockExecutorInterface)
		expectedErr error
	}{
		{
			name: "executes verified callback",
			req:  &CallbackRequest{Signature: "sig", Body: []byte(`{"taskId":"t-1","type":"cleanup_task","payload":{}}`), TaskID: "t-1"},
			setupMocks: func(v *MockVerifierInterface, e *MockExecutorInterface) {
				v.EXPECT().Verify(gomock.Any(), "sig", gomock.Any(), "").Return(nil)
				e.EXPECT().Execute(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, cb *tasks.Callback) (*tasks.Outcome, error) {
						if cb.TaskID != "t-1" || cb.Type != tasks.KindCleanup {
							t.Errorf("unexpected callback %+v", cb)
						}
						return &tasks.Outcome{TaskID: "t-1", Recorded: true}, nil
					},
				)
			},
		},
		{
			name: "task id taken from query",
			req:  &CallbackRequest{Signature: "sig", Body: []byte(`{"type":"cleanup_task","payload":{}}`), TaskID: "t-7"},
			setupMocks: func(v *MockVerifierInterface, e *MockExecutorInterface) {
				v.EXPECT().Verify(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				e.EXPECT().Execute(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, cb *tasks.Callback) (*tasks.Outcome, error) {
						if cb.TaskID != "t-7" {
							t.Errorf("expected query task id, got %s", cb.TaskID)
						}
						return &tasks.Outcome{TaskID: cb.TaskID}, nil
					},
				)
			},
		},
		{
			name: "signature failure touches nothing",
			req:  &CallbackRequest{Body: []byte(`{"taskId":"t-1"}`)},
			setupMocks: func(v *MockVerifierInterface, e *MockExecutorInterface) {
				v.EXPECT().Verify(gomock.Any(), "", gomock.Any(), gomock.Any()).Return(
					apperrors.ErrSignatureVerification,
				)
				e.EXPECT().Execute(gomock.Any(), gomock.Any()).Times(0)
			},
			expectedErr: apperrors.ErrSignatureVerification,
		},
		{
			name: "malformed body",
			req:  &CallbackRequest{Signature: "sig", Body: []byte(`{"taskId":`)},
			setupMocks: func(v *MockVerifierInterface, e *MockExecutorInterface) {
				v.EXPECT().Verify(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
			expectedErr: apperrors.ErrValidation,
		},
		{
			name: "mismatched task ids",
			req:  &CallbackRequest{Signature: "sig", Body: []byte(`{"taskId":"t-1"}`), TaskID: "t-2"},
			setupMocks: func(v *MockVerifierInterface, e *MockExecutorInterface) {
				v.EXPECT().Verify(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
			expectedErr: apperrors.ErrValidation,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			verifier := NewMockVerifierInterface(ctrl)
			executor := NewMockExecutorInterface(ctrl)
			test.setupMocks(verifier, executor)

			_, err := newTestService(verifier, executor).HandleCallback(context.Background(), test.req)

			if test.expectedErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if test.expectedErr != nil && !errors.Is(err, test.expectedErr) {
				t.Fatalf("expected %v, got %v", test.expectedErr, err)
			}
		})
	}
}
