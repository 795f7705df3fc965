// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package content

import (
	"context"
	"time"

	"github.com/canonical/content-platform/internal/storage"
	"github.com/canonical/content-platform/internal/types"
	"github.com/canonical/content-platform/pkg/tasks"
)

type StorageInterface interface {
	GetContent(ctx context.Context, id string) (*storage.Raw[types.Content], error)
	GetContentIDBySlug(ctx context.Context, slug string) (string, error)
	ClaimSlug(ctx context.Context, slug, contentID string) (bool, error)
	ReleaseSlug(ctx context.Context, slug, contentID string) error
	CreateContent(ctx context.Context, c *types.Content) error
	SwapContent(ctx context.Context, prev string, c *types.Content) (string, bool, error)
	DeleteContent(ctx context.Context, c *types.Content) error
	ListAccountContent(ctx context.Context, accountID string) ([]*types.Content, error)
	ListAllContent(ctx context.Context) ([]*types.Content, error)
}

type SchedulerInterface interface {
	Enqueue(ctx context.Context, userID string, p tasks.Payload, scheduledFor *time.Time) (*types.Task, error)
}

type ServiceInterface interface {
	CreateContent(ctx context.Context, accountID, userID string, req *CreateContentRequest) (*types.Content, error)
	GetContent(ctx context.Context, accountID, contentID, userID string) (*types.Content, error)
	UpdateContent(ctx context.Context, accountID, contentID, userID string, req *UpdateContentRequest) (*types.Content, error)
	DeleteContent(ctx context.Context, accountID, contentID, userID string) error
	ListContent(ctx context.Context, accountID, userID string) ([]*types.Content, error)
	GetPublicContent(ctx context.Context, slug string) (*types.Content, error)
}
