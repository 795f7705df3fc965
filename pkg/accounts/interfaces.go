// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package accounts

import (
	"context"
	"time"

	"github.com/canonical/content-platform/internal/storage"
	"github.com/canonical/content-platform/internal/types"
	"github.com/canonical/content-platform/pkg/tasks"
)

// StorageInterface is the subset of internal/storage the accounts service uses.
type StorageInterface interface {
	GetAccount(ctx context.Context, id string) (*types.Account, error)
	GetAccountRaw(ctx context.Context, id string) (*storage.Raw[types.Account], error)
	PutAccount(ctx context.Context, a *types.Account) error
	SwapAccount(ctx context.Context, prev string, a *types.Account) (bool, error)
	GetAccounts(ctx context.Context, ids []string) ([]*types.Account, []string, error)
	ListUserAccountIDs(ctx context.Context, userID string) ([]string, error)
	LinkUserAccount(ctx context.Context, userID, accountID string) error
	UnlinkUserAccount(ctx context.Context, userID, accountID string) error
	ClaimPersonalAccount(ctx context.Context, userID, accountID string) (bool, error)
	GetPersonalAccountID(ctx context.Context, userID string) (string, error)
	GetMembership(ctx context.Context, accountID, userID string) (*types.Membership, error)
	CreateMembership(ctx context.Context, m *types.Membership) (bool, error)
	PutMembership(ctx context.Context, m *types.Membership) error
	DeleteMembership(ctx context.Context, accountID, userID string) error
	ListMemberships(ctx context.Context, accountID string) ([]*types.Membership, error)
}

type SchedulerInterface interface {
	Enqueue(ctx context.Context, userID string, p tasks.Payload, scheduledFor *time.Time) (*types.Task, error)
}

type ServiceInterface interface {
	CreateAccount(ctx context.Context, userID string, req *CreateAccountRequest) (*types.AccountWithRole, error)
	GetOrCreatePersonalAccount(ctx context.Context, userID, email string) (*types.AccountWithRole, error)
	GetAccount(ctx context.Context, accountID, userID string) (*types.AccountWithRole, error)
	UpdateAccount(ctx context.Context, accountID, userID string, req *UpdateAccountRequest) (*types.Account, error)
	ListAccounts(ctx context.Context, userID string) ([]*types.AccountWithRole, error)
	ListMembers(ctx context.Context, accountID, userID string) ([]*types.Membership, error)
	RemoveMember(ctx context.Context, accountID, callerID, memberID string) error
	UpdateMemberRole(ctx context.Context, accountID, callerID, memberID string, role types.Role) (*types.Membership, error)
	AddMember(ctx context.Context, accountID, userID string, role types.Role, invitedBy string) (*types.Membership, error)
}
