// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invites

import "github.com/canonical/content-platform/internal/types"

type CreateInviteRequest struct {
	Email string     `json:"email" validate:"required,email"`
	Role  types.Role `json:"role" validate:"required"`
}

type AcceptInviteRequest struct {
	InviteID string `json:"inviteId" validate:"required"`
}
