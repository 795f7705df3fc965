// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invites

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
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

const DefaultLifetime = 7 * 24 * time.Hour

type Service struct {
	storage   StorageInterface
	authz     authorization.AuthorizerInterface
	members   MembersInterface
	directory DirectoryInterface
	scheduler SchedulerInterface
	lifetime  time.Duration
	now       func() time.Time

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	authz authorization.AuthorizerInterface,
	members MembersInterface,
	directory DirectoryInterface,
	scheduler SchedulerInterface,
	lifetime time.Duration,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}

	return &Service{
		storage:   storage,
		authz:     authz,
		members:   members,
		directory: directory,
		scheduler: scheduler,
		lifetime:  lifetime,
		now:       time.Now,
		tracer:    tracer,
		monitor:   monitor,
		logger:    logger,
	}
}

func (s *Service) CreateInvite(ctx context.Context, accountID, inviterID string, req *CreateInviteRequest) (*types.Invite, error) {
	ctx, span := s.tracer.Start(ctx, "invites.Service.CreateInvite")
	defer span.End()

	inviter, err := s.authz.Require(ctx, accountID, inviterID, authorization.PermissionManageMembers)
	if err != nil {
		return nil, err
	}

	if !req.Role.IsValid() {
		return nil, apperrors.Validation("unknown role %q", req.Role)
	}

	if req.Role == types.RoleOwner && inviter.Role != types.RoleOwner {
		return nil, apperrors.PermissionDenied("only owners can invite owners")
	}

	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}

	account, err := s.storage.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if account.Type == types.AccountPersonal || !account.Settings.AllowInvites {
		return nil, apperrors.Conflict("account %s does not accept invites", accountID)
	}

	existing, err := s.storage.ListInvites(ctx, accountID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	for _, inv := range existing {
		if inv.Email == email && inv.Actionable(now) {
			return nil, apperrors.Conflict("%s already has a pending invite", email)
		}
	}

	identityID, err := s.directory.GetIdentityIDByEmail(ctx, email)
	if err != nil {
		s.logger.Warnf("failed to look up identity of %s: %v", email, err)
		identityID = ""
	}

	if identityID != "" {
		if _, err := s.storage.GetMembership(ctx, accountID, identityID); err == nil {
			return nil, apperrors.Conflict("%s is already a member", email)
		}
	}

	inv := &types.Invite{
		ID:        uuid.NewString(),
		AccountID: accountID,
		Email:     email,
		Role:      req.Role,
		Status:    types.InvitePending,
		ExpiresAt: now.Add(s.lifetime),
		InvitedBy: inviterID,
		CreatedAt: now,
	}

	if err := s.storage.CreateInvite(ctx, inv); err != nil {
		return nil, err
	}

	s.logger.Infof("user %s invited %s to account %s as %s", inviterID, email, accountID, req.Role)

	if identityID != "" {
		s.notify(ctx, inviterID, identityID, account, inv)
	}

	return inv, nil
}

// notify tells a known invitee about the invite, failures are only logged.
func (s *Service) notify(ctx context.Context, inviterID, inviteeID string, account *types.Account, inv *types.Invite) {
	_, err := s.scheduler.Enqueue(ctx, inviterID, &tasks.Notification{
		UserID:  inviteeID,
		Title:   fmt.Sprintf("You were invited to %s", account.Name),
		Message: fmt.Sprintf("Join as %s with invite %s before %s.", inv.Role, inv.ID, inv.ExpiresAt.Format(time.RFC1123)),
	}, nil)

	if err != nil {
		s.logger.Errorf("failed to schedule invite notification for %s: %v", inviteeID, err)
	}
}

// ListInvites returns the invites of an account that can still be accepted.
func (s *Service) ListInvites(ctx context.Context, accountID, userID string) ([]*types.Invite, error) {
	ctx, span := s.tracer.Start(ctx, "invites.Service.ListInvites")
	defer span.End()

	if _, err := s.authz.Require(ctx, accountID, userID, authorization.PermissionManageMembers); err != nil {
		return nil, err
	}

	all, err := s.storage.ListInvites(ctx, accountID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	open := make([]*types.Invite, 0, len(all))
	for _, inv := range all {
		if inv.Actionable(now) {
			open = append(open, inv)
		}
	}

	return open, nil
}

// AcceptInvite turns a pending invite into a membership of userID. The invite
// is claimed with a conditional write before the membership is created and
// put back when that fails.
func (s *Service) AcceptInvite(ctx context.Context, inviteID, userID, email string) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "invites.Service.AcceptInvite")
	defer span.End()

	if userID == "" {
		return nil, apperrors.ErrAuthentication
	}

	raw, err := s.storage.GetInvite(ctx, inviteID)
	if err != nil {
		return nil, err
	}

	inv := raw.Value
	now := s.now().UTC()

	if !inv.Actionable(now) {
		return nil, apperrors.Validation("invite %s is %s", inviteID, inv.EffectiveStatus(now))
	}

	if email == "" {
		if email, err = s.directory.GetIdentityEmail(ctx, userID); err != nil {
			s.logger.Warnf("failed to resolve email of %s: %v", userID, err)
			return nil, apperrors.Validation("email of the accepting user is unknown")
		}
	}

	if !strings.EqualFold(strings.TrimSpace(email), inv.Email) {
		s.logger.Security().AuthzFailure(userID, "invite:"+inviteID)
		return nil, apperrors.Validation("invite %s was issued to a different email", inviteID)
	}

	if _, err := s.storage.GetMembership(ctx, inv.AccountID, userID); err == nil {
		return nil, apperrors.Conflict("user %s is already a member of %s", userID, inv.AccountID)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	accepted := *inv
	accepted.Status = types.InviteAccepted
	accepted.AcceptedBy = userID
	accepted.AcceptedAt = &now

	current, ok, err := s.storage.SwapInvite(ctx, raw.Encoded, &accepted)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.Validation("invite %s is no longer pending", inviteID)
	}

	m, err := s.members.AddMember(ctx, inv.AccountID, userID, inv.Role, inv.InvitedBy)
	if err != nil {
		if restored, rerr := s.storage.RestoreInvite(ctx, inviteID, current, raw.Encoded); rerr != nil || !restored {
			s.logger.Errorf("failed to restore invite %s after membership failure: restored=%v err=%v", inviteID, restored, rerr)
		}
		return nil, err
	}

	s.logger.Infof("user %s accepted invite %s to account %s", userID, inviteID, inv.AccountID)

	return m, nil
}

func (s *Service) CancelInvite(ctx context.Context, accountID, inviteID, userID string) (*types.Invite, error) {
	ctx, span := s.tracer.Start(ctx, "invites.Service.CancelInvite")
	defer span.End()

	if _, err := s.authz.Require(ctx, accountID, userID, authorization.PermissionManageMembers); err != nil {
		return nil, err
	}

	raw, err := s.storage.GetInvite(ctx, inviteID)
	if err != nil {
		return nil, err
	}

	inv := raw.Value
	if inv.AccountID != accountID {
		return nil, apperrors.NotFound("invite %s", inviteID)
	}

	now := s.now().UTC()
	if !inv.Actionable(now) {
		return nil, apperrors.Validation("invite %s is %s", inviteID, inv.EffectiveStatus(now))
	}

	inv.Status = types.InviteCancelled
	inv.CancelledBy = userID
	inv.CancelledAt = &now

	_, ok, err := s.storage.SwapInvite(ctx, raw.Encoded, inv)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.Validation("invite %s is no longer pending", inviteID)
	}

	return inv, nil
}

func normalizeEmail(raw string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(raw))
	if err != nil || addr.Name != "" {
		return "", apperrors.Validation("invalid email %q", raw)
	}
	return strings.ToLower(addr.Address), nil
}
