// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invites

import (
	"context"
	"time"

	"github.com/canonical/content-platform/internal/storage"
	"github.com/canonical/content-platform/internal/types"
	"github.com/canonical/content-platform/pkg/tasks"
)

type StorageInterface interface {
	GetAccount(ctx context.Context, id string) (*types.Account, error)
	GetMembership(ctx context.Context, accountID, userID string) (*types.Membership, error)
	CreateInvite(ctx context.Context, inv *types.Invite) error
	GetInvite(ctx context.Context, id string) (*storage.Raw[types.Invite], error)
	SwapInvite(ctx context.Context, prev string, inv *types.Invite) (string, bool, error)
	RestoreInvite(ctx context.Context, id, current, previous string) (bool, error)
	ListInvites(ctx context.Context, accountID string) ([]*types.Invite, error)
}

// MembersInterface adds the membership an accepted invite grants.
type MembersInterface interface {
	AddMember(ctx context.Context, accountID, userID string, role types.Role, invitedBy string) (*types.Membership, error)
}

type DirectoryInterface interface {
	GetIdentityIDByEmail(ctx context.Context, email string) (string, error)
	GetIdentityEmail(ctx context.Context, id string) (string, error)
}

type SchedulerInterface interface {
	Enqueue(ctx context.Context, userID string, p tasks.Payload, scheduledFor *time.Time) (*types.Task, error)
}

type ServiceInterface interface {
	CreateInvite(ctx context.Context, accountID, inviterID string, req *CreateInviteRequest) (*types.Invite, error)
	ListInvites(ctx context.Context, accountID, userID string) ([]*types.Invite, error)
	AcceptInvite(ctx context.Context, inviteID, userID, email string) (*types.Membership, error)
	CancelInvite(ctx context.Context, accountID, inviteID, userID string) (*types.Invite, error)
}
