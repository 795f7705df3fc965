// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/canonical/content-platform/internal/apperrors"
	"github.com/canonical/content-platform/internal/logging"
	"github.com/canonical/content-platform/internal/monitoring"
	"github.com/canonical/content-platform/internal/qstash"
	"github.com/canonical/content-platform/internal/tracing"
	"github.com/canonical/content-platform/internal/types"
)

const (
	DefaultListLimit = 50
	WebhookPath      = "/qstash/webhook"
)

type Scheduler struct {
	storage    StorageInterface
	broker     BrokerInterface
	publisher  PublisherInterface
	recipients RecipientAuthorizerInterface
	publicURL  string
	listLimit  int
	now        func() time.Time

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// ScheduleTask schedules a task submitted by userID. The payload's effect is
// authorized against userID before anything reaches the broker.
func (s *Scheduler) ScheduleTask(ctx context.Context, userID string, req *ScheduleRequest) (*types.Task, error) {
	ctx, span := s.tracer.Start(ctx, "tasks.Scheduler.ScheduleTask")
	defer span.End()

	if userID == "" {
		return nil, apperrors.ErrAuthentication
	}

	if req == nil || req.Type == "" {
		return nil, apperrors.Validation("task type is required")
	}

	payload, err := DecodePayload(req.Type, req.Payload)
	if err != nil {
		return nil, apperrors.Validation("%v", err)
	}

	if req.ScheduledFor != nil && req.Delay != nil {
		return nil, apperrors.Validation("scheduledFor and delay are mutually exclusive")
	}

	if req.Delay != nil && *req.Delay < 0 {
		return nil, apperrors.Validation("delay must not be negative")
	}

	if err := s.authorize(ctx, userID, payload); err != nil {
		return nil, err
	}

	return s.schedule(ctx, userID, payload, req.ScheduledFor, req.Delay)
}

// Enqueue schedules a typed payload on behalf of userID. Callers have already
// authorized its effect.
func (s *Scheduler) Enqueue(ctx context.Context, userID string, p Payload, scheduledFor *time.Time) (*types.Task, error) {
	ctx, span := s.tracer.Start(ctx, "tasks.Scheduler.Enqueue")
	defer span.End()

	if userID == "" {
		return nil, apperrors.ErrAuthentication
	}

	raw, err := EncodePayload(p)
	if err != nil {
		return nil, err
	}

	payload, err := DecodePayload(p.Kind(), raw)
	if err != nil {
		return nil, apperrors.Validation("%v", err)
	}

	return s.schedule(ctx, userID, payload, scheduledFor, nil)
}

func (s *Scheduler) authorize(ctx context.Context, userID string, payload Payload) error {
	switch p := payload.(type) {
	case *ScheduledBlogPost:
		return s.publisher.AuthorizePublish(ctx, userID, p.PostID)
	case *Notification:
		return s.recipients.RequireRecipient(ctx, userID, p.UserID)
	}
	return nil
}

// schedule hands the task to the broker and only then records it, so a
// pending record always has a broker message behind it.
func (s *Scheduler) schedule(ctx context.Context, userID string, payload Payload, scheduledFor *time.Time, delay *Delay) (*types.Task, error) {
	kind := payload.Kind()

	encoded, err := EncodePayload(payload)
	if err != nil {
		return nil, err
	}

	id := newTaskID()
	now := s.now().UTC()

	body, err := json.Marshal(&Callback{
		TaskID:    id,
		Type:      kind,
		Payload:   encoded,
		UserID:    userID,
		CreatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode callback: %w", err)
	}

	publish := &qstash.PublishRequest{
		Destination:     s.callbackURL(id),
		Body:            body,
		DeduplicationID: id,
	}

	task := &types.Task{
		ID:        id,
		Type:      string(kind),
		Payload:   encoded,
		Status:    types.TaskPending,
		CreatedAt: now,
		UpdatedAt: now,
		UserID:    userID,
	}

	switch {
	case scheduledFor != nil:
		at := scheduledFor.UTC()
		publish.NotBefore = &at
		task.ScheduledFor = &at
	case delay != nil:
		publish.Delay = time.Duration(*delay)
		at := now.Add(publish.Delay)
		task.ScheduledFor = &at
	}

	messageID, err := s.broker.Publish(ctx, publish)
	if err != nil {
		s.logger.Errorf("failed to publish task %s of type %s: %v", id, kind, err)

		if apperrors.Kind(err) == nil {
			err = apperrors.ExternalService("failed to schedule task: %v", err)
		}
		return nil, err
	}

	task.BrokerMessageID = messageID

	if err := s.storage.CreateTask(ctx, task); err != nil {
		s.logger.Errorf("broker accepted message %s but task %s was not recorded: %v", messageID, id, err)
		return nil, fmt.Errorf("failed to record task: %w", err)
	}

	s.logger.Infof("scheduled task %s of type %s for user %s", id, kind, userID)

	return task, nil
}

func (s *Scheduler) ListTasks(ctx context.Context, userID string) ([]*types.Task, error) {
	ctx, span := s.tracer.Start(ctx, "tasks.Scheduler.ListTasks")
	defer span.End()

	return s.storage.ListTasks(ctx, userID, s.listLimit)
}

func (s *Scheduler) ListNotifications(ctx context.Context, userID string) ([]*types.Notification, error) {
	ctx, span := s.tracer.Start(ctx, "tasks.Scheduler.ListNotifications")
	defer span.End()

	return s.storage.ListNotifications(ctx, userID, s.listLimit)
}

func (s *Scheduler) callbackURL(taskID string) string {
	return fmt.Sprintf("%s%s?taskId=%s", s.publicURL, WebhookPath, url.QueryEscape(taskID))
}

func newTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func NewScheduler(
	storage StorageInterface,
	broker BrokerInterface,
	publisher PublisherInterface,
	recipients RecipientAuthorizerInterface,
	publicURL string,
	listLimit int,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Scheduler {
	s := new(Scheduler)

	if listLimit <= 0 {
		listLimit = DefaultListLimit
	}

	s.storage = storage
	s.broker = broker
	s.publisher = publisher
	s.recipients = recipients
	s.publicURL = strings.TrimSuffix(publicURL, "/")
	s.listLimit = listLimit
	s.now = time.Now

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
