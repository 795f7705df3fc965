// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/canonical/content-platform/internal/apperrors"
	"github.com/canonical/content-platform/internal/authorization"
	"github.com/canonical/content-platform/internal/logging"
	"github.com/canonical/content-platform/internal/monitoring"
	"github.com/canonical/content-platform/internal/tracing"
	"github.com/canonical/content-platform/internal/types"
	"github.com/canonical/content-platform/pkg/tasks"
)

const (
	personalAccountName = "Personal"
	maxUpdateAttempts   = 3
)

type Service struct {
	storage   StorageInterface
	authz     authorization.AuthorizerInterface
	scheduler SchedulerInterface
	now       func() time.Time

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	authz authorization.AuthorizerInterface,
	scheduler SchedulerInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:   storage,
		authz:     authz,
		scheduler: scheduler,
		now:       time.Now,
		tracer:    tracer,
		monitor:   monitor,
		logger:    logger,
	}
}

func (s *Service) CreateAccount(ctx context.Context, userID string, req *CreateAccountRequest) (*types.AccountWithRole, error) {
	ctx, span := s.tracer.Start(ctx, "accounts.Service.CreateAccount")
	defer span.End()

	if userID == "" {
		return nil, apperrors.ErrAuthentication
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.Validation("account name is required")
	}

	if !req.Type.IsValid() {
		return nil, apperrors.Validation("unknown account type %q", req.Type)
	}

	if req.Type == types.AccountPersonal {
		return nil, apperrors.Validation("personal accounts are provisioned automatically")
	}

	account := s.newAccount(uuid.NewString(), userID, name, req.Type)
	account.Description = strings.TrimSpace(req.Description)

	if err := s.provision(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Infof("created %s account %s for user %s", account.Type, account.ID, userID)

	return &types.AccountWithRole{Account: account, UserRole: types.RoleOwner}, nil
}

// GetOrCreatePersonalAccount returns the first account of userID, creating
// a personal one when there is none. Concurrent first calls agree on a single
// account through the personal claim.
func (s *Service) GetOrCreatePersonalAccount(ctx context.Context, userID, email string) (*types.AccountWithRole, error) {
	ctx, span := s.tracer.Start(ctx, "accounts.Service.GetOrCreatePersonalAccount")
	defer span.End()

	if userID == "" {
		return nil, apperrors.ErrAuthentication
	}

	ids, err := s.storage.ListUserAccountIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		account, err := s.storage.GetAccount(ctx, id)
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Warnf("user %s references missing account %s", userID, id)
			continue
		}
		if err != nil {
			return nil, err
		}

		role, ok, err := s.resolveRole(ctx, account, userID)
		if err != nil {
			return nil, err
		}
		if ok {
			return &types.AccountWithRole{Account: account, UserRole: role}, nil
		}
	}

	accountID := uuid.NewString()

	claimed, err := s.storage.ClaimPersonalAccount(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	if !claimed {
		if accountID, err = s.storage.GetPersonalAccountID(ctx, userID); err != nil {
			return nil, err
		}

		account, err := s.storage.GetAccount(ctx, accountID)
		if err == nil {
			if _, _, err := s.resolveRole(ctx, account, userID); err != nil {
				return nil, err
			}
			return &types.AccountWithRole{Account: account, UserRole: types.RoleOwner}, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}

		// claimed by a call that has not finished, or never will
		s.logger.Warnf("completing provisioning of personal account %s for user %s", accountID, userID)
	}

	account := s.newAccount(accountID, userID, personalAccountName, types.AccountPersonal)
	if err := s.provision(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Infof("provisioned personal account %s for user %s", account.ID, userID)

	if claimed {
		if _, err := s.scheduler.Enqueue(ctx, userID, &tasks.WelcomeEmail{Email: email}, nil); err != nil {
			s.logger.Errorf("failed to schedule welcome email for %s: %v", userID, err)
		}
	}

	return &types.AccountWithRole{Account: account, UserRole: types.RoleOwner}, nil
}

func (s *Service) GetAccount(ctx context.Context, accountID, userID string) (*types.AccountWithRole, error) {
	ctx, span := s.tracer.Start(ctx, "accounts.Service.GetAccount")
	defer span.End()

	m, err := s.authz.RequireMember(ctx, accountID, userID)
	if err != nil {
		return nil, err
	}

	account, err := s.storage.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return &types.AccountWithRole{Account: account, UserRole: m.Role}, nil
}

func (s *Service) UpdateAccount(ctx context.Context, accountID, userID string, req *UpdateAccountRequest) (*types.Account, error) {
	ctx, span := s.tracer.Start(ctx, "accounts.Service.UpdateAccount")
	defer span.End()

	if _, err := s.authz.Require(ctx, accountID, userID, authorization.PermissionManageContent); err != nil {
		return nil, err
	}

	for range maxUpdateAttempts {
		raw, err := s.storage.GetAccountRaw(ctx, accountID)
		if err != nil {
			return nil, err
		}

		account := raw.Value
		if err := applyPatch(account, req); err != nil {
			return nil, err
		}
		account.UpdatedAt = s.now().UTC()

		ok, err := s.storage.SwapAccount(ctx, raw.Encoded, account)
		if err != nil {
			return nil, err
		}
		if ok {
			return account, nil
		}
	}

	return nil, apperrors.Conflict("account %s was modified concurrently", accountID)
}

func applyPatch(a *types.Account, req *UpdateAccountRequest) error {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return apperrors.Validation("account name must not be empty")
		}
		a.Name = name
	}

	if req.Description != nil {
		a.Description = strings.TrimSpace(*req.Description)
	}

	if req.Settings == nil {
		return nil
	}

	if v := req.Settings.AllowInvites; v != nil {
		if *v && a.Type == types.AccountPersonal {
			return apperrors.Validation("personal accounts cannot accept invites")
		}
		a.Settings.AllowInvites = *v
	}

	if r := req.Settings.DefaultMemberRole; r != nil {
		if !r.IsValid() || *r == types.RoleOwner {
			return apperrors.Validation("invalid default member role %q", *r)
		}
		a.Settings.DefaultMemberRole = *r
	}

	return nil
}

// ListAccounts returns the accounts of userID together with the role held on
// each. Index entries without an account or membership are skipped.
func (s *Service) ListAccounts(ctx context.Context, userID string) ([]*types.AccountWithRole, error) {
	ctx, span := s.tracer.Start(ctx, "accounts.Service.ListAccounts")
	defer span.End()

	ids, err := s.storage.ListUserAccountIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	accounts, missing, err := s.storage.GetAccounts(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, id := range missing {
		s.logger.Warnf("user %s references missing account %s", userID, id)
	}

	result := make([]*types.AccountWithRole, 0, len(accounts))
	for _, account := range accounts {
		role, ok, err := s.resolveRole(ctx, account, userID)
		if err != nil {
			return nil, err
		}
		if !ok {
			s.logger.Warnf("user %s lists account %s without a membership", userID, account.ID)
			continue
		}
		result = append(result, &types.AccountWithRole{Account: account, UserRole: role})
	}

	return result, nil
}

func (s *Service) ListMembers(ctx context.Context, accountID, userID string) ([]*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "accounts.Service.ListMembers")
	defer span.End()

	if _, err := s.authz.RequireMember(ctx, accountID, userID); err != nil {
		return nil, err
	}

	return s.storage.ListMemberships(ctx, accountID)
}

func (s *Service) RemoveMember(ctx context.Context, accountID, callerID, memberID string) error {
	ctx, span := s.tracer.Start(ctx, "accounts.Service.RemoveMember")
	defer span.End()

	caller, err := s.authz.Require(ctx, accountID, callerID, authorization.PermissionManageMembers)
	if err != nil {
		return err
	}

	member, err := s.storage.GetMembership(ctx, accountID, memberID)
	if err != nil {
		return err
	}

	if member.Role == types.RoleOwner {
		if caller.Role != types.RoleOwner {
			return apperrors.PermissionDenied("only owners can remove an owner")
		}
		if err := s.ensureAnotherOwner(ctx, accountID, memberID); err != nil {
			return err
		}
	}

	if err := s.storage.DeleteMembership(ctx, accountID, memberID); err != nil {
		return err
	}

	if err := s.storage.UnlinkUserAccount(ctx, memberID, accountID); err != nil {
		return err
	}

	s.logger.Infof("user %s removed %s from account %s", callerID, memberID, accountID)

	return nil
}

func (s *Service) UpdateMemberRole(ctx context.Context, accountID, callerID, memberID string, role types.Role) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "accounts.Service.UpdateMemberRole")
	defer span.End()

	caller, err := s.authz.Require(ctx, accountID, callerID, authorization.PermissionManageMembers)
	if err != nil {
		return nil, err
	}

	if !role.IsValid() {
		return nil, apperrors.Validation("unknown role %q", role)
	}

	member, err := s.storage.GetMembership(ctx, accountID, memberID)
	if err != nil {
		return nil, err
	}

	if member.Role == role {
		return member, nil
	}

	if (member.Role == types.RoleOwner || role == types.RoleOwner) && caller.Role != types.RoleOwner {
		return nil, apperrors.PermissionDenied("only owners can grant or revoke ownership")
	}

	if member.Role == types.RoleOwner {
		if err := s.ensureAnotherOwner(ctx, accountID, memberID); err != nil {
			return nil, err
		}
	}

	member.Role = role
	if err := s.storage.PutMembership(ctx, member); err != nil {
		return nil, err
	}

	return member, nil
}

// AddMember creates a membership for userID, honouring the member cap of the
// account type.
func (s *Service) AddMember(ctx context.Context, accountID, userID string, role types.Role, invitedBy string) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "accounts.Service.AddMember")
	defer span.End()

	if !role.IsValid() {
		return nil, apperrors.Validation("unknown role %q", role)
	}

	account, err := s.storage.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if limit := account.Type.MemberCap(); limit > 0 {
		members, err := s.storage.ListMemberships(ctx, accountID)
		if err != nil {
			return nil, err
		}
		if len(members) >= limit {
			return nil, apperrors.Conflict("%s accounts are limited to %d members", account.Type, limit)
		}
	}

	m := &types.Membership{
		AccountID: accountID,
		UserID:    userID,
		Role:      role,
		JoinedAt:  s.now().UTC(),
		InvitedBy: invitedBy,
	}

	created, err := s.storage.CreateMembership(ctx, m)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, apperrors.Conflict("user %s is already a member of %s", userID, accountID)
	}

	if err := s.storage.LinkUserAccount(ctx, userID, accountID); err != nil {
		return nil, err
	}

	return m, nil
}

func (s *Service) newAccount(id, ownerID, name string, kind types.AccountType) *types.Account {
	now := s.now().UTC()

	return &types.Account{
		ID:      id,
		Name:    name,
		Type:    kind,
		OwnerID: ownerID,
		Settings: types.AccountSettings{
			AllowInvites:      kind != types.AccountPersonal,
			DefaultMemberRole: types.RoleViewer,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// provision writes the account, the owner membership and both indexes. Every
// step tolerates being repeated.
func (s *Service) provision(ctx context.Context, account *types.Account) error {
	if err := s.storage.PutAccount(ctx, account); err != nil {
		return fmt.Errorf("failed to write account: %w", err)
	}

	if _, err := s.storage.CreateMembership(ctx, &types.Membership{
		AccountID: account.ID,
		UserID:    account.OwnerID,
		Role:      types.RoleOwner,
		JoinedAt:  account.CreatedAt,
	}); err != nil {
		return fmt.Errorf("failed to write owner membership: %w", err)
	}

	if err := s.storage.LinkUserAccount(ctx, account.OwnerID, account.ID); err != nil {
		return fmt.Errorf("failed to index account: %w", err)
	}

	return nil
}

// resolveRole returns the role userID holds on account. A missing owner
// membership of the account owner is recreated.
func (s *Service) resolveRole(ctx context.Context, account *types.Account, userID string) (types.Role, bool, error) {
	m, err := s.storage.GetMembership(ctx, account.ID, userID)
	if err == nil {
		return m.Role, true, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return "", false, err
	}

	if account.OwnerID != userID {
		return "", false, nil
	}

	s.logger.Warnf("restoring owner membership of %s on account %s", userID, account.ID)

	if _, err := s.storage.CreateMembership(ctx, &types.Membership{
		AccountID: account.ID,
		UserID:    userID,
		Role:      types.RoleOwner,
		JoinedAt:  account.CreatedAt,
	}); err != nil {
		return "", false, err
	}

	return types.RoleOwner, true, nil
}

func (s *Service) ensureAnotherOwner(ctx context.Context, accountID, memberID string) error {
	members, err := s.storage.ListMemberships(ctx, accountID)
	if err != nil {
		return err
	}

	for _, m := range members {
		if m.Role == types.RoleOwner && m.UserID != memberID {
			return nil
		}
	}

	return apperrors.Conflict("account %s must keep at least one owner", accountID)
}
