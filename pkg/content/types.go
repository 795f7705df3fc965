// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package content

import (
	"time"

	"github.com/canonical/content-platform/internal/types"
)

type CreateContentRequest struct {
	Kind         types.ContentKind   `json:"kind" validate:"omitempty,oneof=note blog_post"`
	Title        string              `json:"title" validate:"required,max=200"`
	Slug         string              `json:"slug" validate:"omitempty,max=120"`
	Body         string              `json:"body"`
	Status       types.ContentStatus `json:"status" validate:"omitempty,oneof=draft scheduled published"`
	IsPublic     bool                `json:"isPublic"`
	ScheduledFor *time.Time          `json:"scheduledFor,omitempty"`
}

// UpdateContentRequest changes only the fields that are set.
type UpdateContentRequest struct {
	Title        *string              `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Slug         *string              `json:"slug,omitempty" validate:"omitempty,max=120"`
	Body         *string              `json:"body,omitempty"`
	Status       *types.ContentStatus `json:"status,omitempty" validate:"omitempty,oneof=draft scheduled published"`
	IsPublic     *bool                `json:"isPublic,omitempty"`
	ScheduledFor *time.Time           `json:"scheduledFor,omitempty"`
}
