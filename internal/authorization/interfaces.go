// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"

	"github.com/canonical/content-platform/internal/types"
)

type AuthorizerInterface interface {
	RequireMember(ctx context.Context, accountID, userID string) (*types.Membership, error)
	Require(ctx context.Context, accountID, userID string, perm Permission) (*types.Membership, error)
	RequireContent(ctx context.Context, accountID, userID string, perm Permission, contentOwnerID string) (*types.Membership, error)
	RequireRecipient(ctx context.Context, userID, recipientID string) error
}

type StorageInterface interface {
	GetMembership(ctx context.Context, accountID, userID string) (*types.Membership, error)
	ListUserAccountIDs(ctx context.Context, userID string) ([]string, error)
}
