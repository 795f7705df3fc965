// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"

	"github.com/canonical/content-platform/pkg/tasks"
)

type VerifierInterface interface {
	Verify(ctx context.Context, signature string, body []byte, url string) error
}

type ExecutorInterface interface {
	Execute(ctx context.Context, cb *tasks.Callback) (*tasks.Outcome, error)
}

// ServiceInterface defines the webhook service operations.
type ServiceInterface interface {
	HandleCallback(ctx context.Context, req *CallbackRequest) (*tasks.Outcome, error)
}
