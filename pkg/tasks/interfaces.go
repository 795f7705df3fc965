// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tasks

import (
	"context"
	"time"

	"github.com/canonical/content-platform/internal/qstash"
	"github.com/canonical/content-platform/internal/storage"
	"github.com/canonical/content-platform/internal/types"
)

type StorageInterface interface {
	CreateTask(ctx context.Context, t *types.Task) error
	GetTask(ctx context.Context, id string) (*storage.Raw[types.Task], error)
	SwapTask(ctx context.Context, prev string, t *types.Task) (string, bool, error)
	ListTasks(ctx context.Context, userID string, limit int) ([]*types.Task, error)
	UnlinkUserTask(ctx context.Context, userID, taskID string) error
	AddNotification(ctx context.Context, n *types.Notification) error
	ListNotifications(ctx context.Context, userID string, limit int) ([]*types.Notification, error)
	ClaimEffect(ctx context.Context, kind, key string, ttl time.Duration) (bool, error)
	ReleaseEffect(ctx context.Context, kind, key string) error
}

type BrokerInterface interface {
	Publish(ctx context.Context, req *qstash.PublishRequest) (string, error)
}

// PublisherInterface publishes a content item referenced by id or slug,
// reporting whether the call changed it. scheduledFor is the publication time
// the task was issued for, nil when the task carries none.
type PublisherInterface interface {
	AuthorizePublish(ctx context.Context, userID, ref string) error
	Publish(ctx context.Context, ref string, scheduledFor *time.Time) (*types.Content, bool, error)
}

type RecipientAuthorizerInterface interface {
	RequireRecipient(ctx context.Context, userID, recipientID string) error
}

type DirectoryInterface interface {
	GetIdentityEmail(ctx context.Context, id string) (string, error)
}

type SchedulerInterface interface {
	ScheduleTask(ctx context.Context, userID string, req *ScheduleRequest) (*types.Task, error)
	Enqueue(ctx context.Context, userID string, p Payload, scheduledFor *time.Time) (*types.Task, error)
	ListTasks(ctx context.Context, userID string) ([]*types.Task, error)
	ListNotifications(ctx context.Context, userID string) ([]*types.Notification, error)
}

type ExecutorInterface interface {
	Execute(ctx context.Context, cb *Callback) (*Outcome, error)
}
