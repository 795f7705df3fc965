// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package accounts

import "github.com/canonical/content-platform/internal/types"

type CreateAccountRequest struct {
	Name        string            `json:"name" validate:"required,max=100"`
	Type        types.AccountType `json:"type" validate:"required"`
	Description string            `json:"description" validate:"max=500"`
}

type SettingsPatch struct {
	AllowInvites      *bool       `json:"allowInvites,omitempty"`
	DefaultMemberRole *types.Role `json:"defaultMemberRole,omitempty"`
}

// UpdateAccountRequest changes only the fields that are set.
type UpdateAccountRequest struct {
	Name        *string        `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string        `json:"description,omitempty" validate:"omitempty,max=500"`
	Settings    *SettingsPatch `json:"settings,omitempty"`
}

type UpdateMemberRoleRequest struct {
	Role types.Role `json:"role" validate:"required"`
}
