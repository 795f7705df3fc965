// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"
	"errors"
	"fmt"

	"github.com/canonical/content-platform/internal/apperrors"
	"github.com/canonical/content-platform/internal/logging"
	"github.com/canonical/content-platform/internal/monitoring"
	"github.com/canonical/content-platform/internal/tracing"
	"github.com/canonical/content-platform/internal/types"
)

var _ AuthorizerInterface = (*Authorizer)(nil)

// Authorizer resolves the role a user holds on an account and checks it
// against the static role table.
type Authorizer struct {
	storage StorageInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// RequireMember fails with apperrors.ErrPermissionDenied unless userID holds
// any membership on accountID.
func (a *Authorizer) RequireMember(ctx context.Context, accountID, userID string) (*types.Membership, error) {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.RequireMember")
	defer span.End()

	return a.membership(ctx, accountID, userID)
}

func (a *Authorizer) Require(ctx context.Context, accountID, userID string, perm Permission) (*types.Membership, error) {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.Require")
	defer span.End()

	m, err := a.membership(ctx, accountID, userID)
	if err != nil {
		return nil, err
	}

	if !HasPermission(m.Role, perm) {
		return nil, a.deny(userID, accountID, perm)
	}

	return m, nil
}

// RequireContent checks perm on a content item of accountID created by
// contentOwnerID. Editors may only manage their own items.
func (a *Authorizer) RequireContent(ctx context.Context, accountID, userID string, perm Permission, contentOwnerID string) (*types.Membership, error) {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.RequireContent")
	defer span.End()

	m, err := a.membership(ctx, accountID, userID)
	if err != nil {
		return nil, err
	}

	if !contentAllowed(m.Role, perm, userID, contentOwnerID) {
		return nil, a.deny(userID, accountID, perm)
	}

	return m, nil
}

// RequireRecipient allows userID to address recipientID when both are the
// same user or recipientID belongs to an account where userID manages members.
func (a *Authorizer) RequireRecipient(ctx context.Context, userID, recipientID string) error {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.RequireRecipient")
	defer span.End()

	if userID == "" {
		return fmt.Errorf("no user in request: %w", apperrors.ErrAuthentication)
	}

	if recipientID == "" || recipientID == userID {
		return nil
	}

	accountIDs, err := a.storage.ListUserAccountIDs(ctx, userID)
	if err != nil {
		return err
	}

	for _, accountID := range accountIDs {
		m, err := a.storage.GetMembership(ctx, accountID, userID)
		if errors.Is(err, apperrors.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}

		if !HasPermission(m.Role, PermissionManageMembers) {
			continue
		}

		_, err = a.storage.GetMembership(ctx, accountID, recipientID)
		if err == nil {
			return nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
	}

	a.logger.Security().AuthzFailure(userID, "user:"+recipientID)
	return apperrors.PermissionDenied("user %s cannot address user %s", userID, recipientID)
}

func (a *Authorizer) membership(ctx context.Context, accountID, userID string) (*types.Membership, error) {
	if userID == "" {
		return nil, fmt.Errorf("no user in request: %w", apperrors.ErrAuthentication)
	}

	m, err := a.storage.GetMembership(ctx, accountID, userID)
	if errors.Is(err, apperrors.ErrNotFound) {
		a.logger.Security().AuthzFailure(userID, "account:"+accountID)
		return nil, apperrors.PermissionDenied("user %s is not a member of account %s", userID, accountID)
	}
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (a *Authorizer) deny(userID, accountID string, perm Permission) error {
	a.logger.Security().AuthzFailure(userID, fmt.Sprintf("account:%s#%s", accountID, perm))
	return apperrors.PermissionDenied("%s required on account %s", perm, accountID)
}

func NewAuthorizer(storage StorageInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Authorizer {
	a := new(Authorizer)

	a.storage = storage

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
