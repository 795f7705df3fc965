// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"
	"encoding/json"

	"github.com/canonical/content-platform/internal/apperrors"
	"github.com/canonical/content-platform/internal/logging"
	"github.com/canonical/content-platform/internal/monitoring"
	"github.com/canonical/content-platform/internal/tracing"
	"github.com/canonical/content-platform/pkg/tasks"
)

type Service struct {
	verifier VerifierInterface
	executor ExecutorInterface
	tracer   tracing.TracingInterface
	monitor  monitoring.MonitorInterface
	logger   logging.LoggerInterface
}

func NewService(
	verifier VerifierInterface,
	executor ExecutorInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		verifier: verifier,
		executor: executor,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}

// HandleCallback verifies a delivery before anything is read or written,
// then runs the task it carries.
func (s *Service) HandleCallback(ctx context.Context, req *CallbackRequest) (*tasks.Outcome, error) {
	ctx, span := s.tracer.Start(ctx, "webhooks.Service.HandleCallback")
	defer span.End()

	if err := s.verifier.Verify(ctx, req.Signature, req.Body, req.URL); err != nil {
		s.logger.Security().SignatureFailure("qstash", err.Error())
		return nil, err
	}

	cb := new(tasks.Callback)
	if err := json.Unmarshal(req.Body, cb); err != nil {
		return nil, apperrors.Validation("malformed callback body")
	}

	if cb.TaskID == "" {
		cb.TaskID = req.TaskID
	}

	if req.TaskID != "" && cb.TaskID != req.TaskID {
		return nil, apperrors.Validation("callback task %s does not match %s", cb.TaskID, req.TaskID)
	}

	s.logger.Debugf("executing task %s of type %s", cb.TaskID, cb.Type)

	return s.executor.Execute(ctx, cb)
}
