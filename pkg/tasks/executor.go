// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/canonical/content-platform/internal/apperrors"
	"github.com/canonical/content-platform/internal/logging"
	"github.com/canonical/content-platform/internal/mail"
	"github.com/canonical/content-platform/internal/monitoring"
	"github.com/canonical/content-platform/internal/tracing"
	"github.com/canonical/content-platform/internal/types"
)

const maxTransitionAttempts = 3

var ErrTransitionContended = errors.New("task status changed concurrently")

// Executor runs delivered tasks and keeps their records in step. Effects
// must tolerate redelivery, the executor never deduplicates by task id.
type Executor struct {
	storage   StorageInterface
	mailer    mail.MailerInterface
	publisher PublisherInterface
	directory DirectoryInterface
	now       func() time.Time

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// Execute runs the effect carried by cb. The returned error is the effect
// failure reported back to the broker, the outcome is set whenever the
// callback was dispatched.
func (e *Executor) Execute(ctx context.Context, cb *Callback) (*Outcome, error) {
	ctx, span := e.tracer.Start(ctx, "tasks.Executor.Execute")
	defer span.End()

	if cb == nil || cb.TaskID == "" {
		return nil, apperrors.Validation("task id is required")
	}

	outcome := &Outcome{TaskID: cb.TaskID, Recorded: true}

	task, err := e.begin(ctx, cb.TaskID)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		e.logger.Warnf("no record for task %s, executing %s anyway", cb.TaskID, cb.Type)
		outcome.Recorded = false
	case err != nil:
		return nil, err
	default:
		fillFromRecord(cb, task)
	}

	result, runErr := e.run(ctx, cb)

	status := types.TaskCompleted
	if runErr != nil {
		status = types.TaskFailed
		e.logger.Errorf("task %s of type %s failed: %v", cb.TaskID, cb.Type, runErr)
	}
	_ = e.monitor.IncTaskOutcome(map[string]string{"type": string(cb.Type), "status": string(status)})

	if outcome.Recorded {
		if err := e.finish(ctx, cb.TaskID, result, runErr); err != nil {
			e.logger.Errorf("failed to record outcome of task %s: %v", cb.TaskID, err)
			if runErr == nil {
				return nil, err
			}
		}
	}

	if runErr != nil {
		return outcome, runErr
	}

	outcome.Result = result

	return outcome, nil
}

// begin moves the task to processing. Completed tasks are absorbing and
// processing ones are left as they are, a redelivery may follow a crash.
func (e *Executor) begin(ctx context.Context, id string) (*types.Task, error) {
	for range maxTransitionAttempts {
		raw, err := e.storage.GetTask(ctx, id)
		if err != nil {
			return nil, err
		}

		t := raw.Value
		if t.Status == types.TaskCompleted || t.Status == types.TaskProcessing {
			return t, nil
		}

		t.Status = types.TaskProcessing
		t.UpdatedAt = e.now().UTC()

		_, ok, err := e.storage.SwapTask(ctx, raw.Encoded, t)
		if err != nil {
			return nil, err
		}
		if ok {
			return t, nil
		}
	}

	return nil, fmt.Errorf("task %s: %w", id, ErrTransitionContended)
}

func (e *Executor) finish(ctx context.Context, id string, result any, runErr error) error {
	var encoded json.RawMessage
	if runErr == nil && result != nil {
		var err error
		if encoded, err = json.Marshal(result); err != nil {
			return fmt.Errorf("failed to encode result of task %s: %w", id, err)
		}
	}

	for range maxTransitionAttempts {
		raw, err := e.storage.GetTask(ctx, id)
		if err != nil {
			return err
		}

		t := raw.Value
		if t.Status == types.TaskCompleted {
			return nil
		}

		if runErr == nil {
			t.Status = types.TaskCompleted
			t.Result = encoded
			t.Error = ""
		} else {
			t.Status = types.TaskFailed
			t.RetryCount++
			t.Error = runErr.Error()
		}
		t.UpdatedAt = e.now().UTC()

		_, ok, err := e.storage.SwapTask(ctx, raw.Encoded, t)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}

	return fmt.Errorf("task %s: %w", id, ErrTransitionContended)
}

func (e *Executor) run(ctx context.Context, cb *Callback) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("task handler panicked: %v", r)
		}
	}()

	payload, err := DecodePayload(cb.Type, cb.Payload)
	if err != nil {
		return nil, err
	}

	switch p := payload.(type) {
	case *WelcomeEmail:
		return e.sendWelcomeEmail(ctx, cb, p)
	case *ScheduledBlogPost:
		return e.publishPost(ctx, cb, p)
	case *Cleanup:
		return e.cleanup(ctx, cb, p)
	case *Notification:
		return e.notify(ctx, cb, p)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, payload.Kind())
	}
}

// fillFromRecord completes a callback missing fields the record carries.
func fillFromRecord(cb *Callback, t *types.Task) {
	if cb.Type == "" {
		cb.Type = Kind(t.Type)
	}
	if len(cb.Payload) == 0 {
		cb.Payload = t.Payload
	}
	if cb.UserID == "" {
		cb.UserID = t.UserID
	}
}

func NewExecutor(
	storage StorageInterface,
	mailer mail.MailerInterface,
	publisher PublisherInterface,
	directory DirectoryInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Executor {
	e := new(Executor)

	e.storage = storage
	e.mailer = mailer
	e.publisher = publisher
	e.directory = directory
	e.now = time.Now

	e.tracer = tracer
	e.monitor = monitor
	e.logger = logger

	return e
}
