// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/canonical/content-platform/internal/kv"
	"github.com/canonical/content-platform/internal/logging"
	"github.com/canonical/content-platform/internal/monitoring"
	"github.com/canonical/content-platform/internal/tracing"
	"github.com/canonical/content-platform/internal/types"
)

// Storage lays the platform records out over a kv.Store. Every method writes
// keys one at a time, callers own the ordering of multi key sequences.
type Storage struct {
	kv kv.Store

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func NewStorage(store kv.Store, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Storage {
	s := new(Storage)

	s.kv = store

	s.logger = logger
	s.tracer = tracer
	s.monitor = monitor

	return s
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.kv.Ping(ctx)
}

func (s *Storage) GetAccount(ctx context.Context, id string) (*types.Account, error) {
	raw, err := s.GetAccountRaw(ctx, id)
	if err != nil {
		return nil, err
	}
	return raw.Value, nil
}

func (s *Storage) GetAccountRaw(ctx context.Context, id string) (*Raw[types.Account], error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetAccount")
	defer span.End()

	return load[types.Account](ctx, s.kv, accountKey(id), "account "+id)
}

func (s *Storage) PutAccount(ctx context.Context, a *types.Account) error {
	ctx, span := s.tracer.Start(ctx, "storage.PutAccount")
	defer span.End()

	return save(ctx, s.kv, accountKey(a.ID), a)
}

func (s *Storage) SwapAccount(ctx context.Context, prev string, a *types.Account) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "storage.SwapAccount")
	defer span.End()

	_, ok, err := swap(ctx, s.kv, accountKey(a.ID), prev, a)
	return ok, err
}

// GetAccounts resolves ids in order, returning the ids that have no record
// separately.
func (s *Storage) GetAccounts(ctx context.Context, ids []string) ([]*types.Account, []string, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetAccounts")
	defer span.End()

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = accountKey(id)
	}

	accounts, skipped, err := loadMany[types.Account](ctx, s.kv, keys)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	missing := make([]string, 0, len(skipped))
	for _, i := range skipped {
		missing = append(missing, ids[i])
	}

	return accounts, missing, nil
}

func (s *Storage) ListUserAccountIDs(ctx context.Context, userID string) ([]string, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListUserAccountIDs")
	defer span.End()

	ids, err := s.kv.LRange(ctx, userAccountsKey(userID), 0, -1)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts of %s: %w", userID, err)
	}

	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	return unique, nil
}

// LinkUserAccount appends accountID to the account index of userID unless it
// is already there.
func (s *Storage) LinkUserAccount(ctx context.Context, userID, accountID string) error {
	ctx, span := s.tracer.Start(ctx, "storage.LinkUserAccount")
	defer span.End()

	ids, err := s.kv.LRange(ctx, userAccountsKey(userID), 0, -1)
	if err != nil {
		return err
	}

	if slices.Contains(ids, accountID) {
		return nil
	}

	return s.kv.RPush(ctx, userAccountsKey(userID), accountID)
}

func (s *Storage) UnlinkUserAccount(ctx context.Context, userID, accountID string) error {
	ctx, span := s.tracer.Start(ctx, "storage.UnlinkUserAccount")
	defer span.End()

	return s.kv.LRem(ctx, userAccountsKey(userID), accountID)
}

// ClaimPersonalAccount records accountID as the personal account of userID
// unless another one was claimed first.
func (s *Storage) ClaimPersonalAccount(ctx context.Context, userID, accountID string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ClaimPersonalAccount")
	defer span.End()

	return s.kv.SetNX(ctx, userPersonalKey(userID), accountID, 0)
}

func (s *Storage) GetPersonalAccountID(ctx context.Context, userID string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetPersonalAccountID")
	defer span.End()

	id, err := s.kv.Get(ctx, userPersonalKey(userID))
	if err != nil {
		return "", wrapNotFound(err, "personal account of "+userID)
	}

	return id, nil
}

func (s *Storage) GetMembership(ctx context.Context, accountID, userID string) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetMembership")
	defer span.End()

	raw, err := load[types.Membership](ctx, s.kv, membershipKey(accountID, userID), "membership "+accountID+"/"+userID)
	if err != nil {
		return nil, err
	}

	return raw.Value, nil
}

// CreateMembership writes m only if no membership exists for the same pair,
// reporting false otherwise.
func (s *Storage) CreateMembership(ctx context.Context, m *types.Membership) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateMembership")
	defer span.End()

	encoded, err := encode(m)
	if err != nil {
		return false, err
	}

	ok, err := s.kv.SetNX(ctx, membershipKey(m.AccountID, m.UserID), encoded, 0)
	if err != nil || !ok {
		return false, err
	}

	if err := s.kv.SAdd(ctx, accountMembersKey(m.AccountID), m.UserID); err != nil {
		return true, fmt.Errorf("failed to index member: %w", err)
	}

	return true, nil
}

// PutMembership overwrites the membership record and makes sure it is indexed.
func (s *Storage) PutMembership(ctx context.Context, m *types.Membership) error {
	ctx, span := s.tracer.Start(ctx, "storage.PutMembership")
	defer span.End()

	if err := save(ctx, s.kv, membershipKey(m.AccountID, m.UserID), m); err != nil {
		return err
	}

	return s.kv.SAdd(ctx, accountMembersKey(m.AccountID), m.UserID)
}

func (s *Storage) DeleteMembership(ctx context.Context, accountID, userID string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteMembership")
	defer span.End()

	if err := s.kv.SRem(ctx, accountMembersKey(accountID), userID); err != nil {
		return err
	}

	return s.kv.Delete(ctx, membershipKey(accountID, userID))
}

// ListMemberships returns the memberships of an account, oldest first.
func (s *Storage) ListMemberships(ctx context.Context, accountID string) ([]*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListMemberships")
	defer span.End()

	userIDs, err := s.kv.SMembers(ctx, accountMembersKey(accountID))
	if err != nil {
		return nil, fmt.Errorf("failed to list members of %s: %w", accountID, err)
	}

	keys := make([]string, len(userIDs))
	for i, uid := range userIDs {
		keys[i] = membershipKey(accountID, uid)
	}

	memberships, skipped, err := loadMany[types.Membership](ctx, s.kv, keys)
	if err != nil {
		return nil, err
	}

	for _, i := range skipped {
		s.logger.Warnf("member %s of account %s has no membership record", userIDs[i], accountID)
	}

	slices.SortStableFunc(memberships, func(a, b *types.Membership) int {
		return a.JoinedAt.Compare(b.JoinedAt)
	})

	return memberships, nil
}

func (s *Storage) CreateInvite(ctx context.Context, inv *types.Invite) error {
	ctx, span := s.tracer.Start(ctx, "storage.CreateInvite")
	defer span.End()

	if err := save(ctx, s.kv, inviteKey(inv.ID), inv); err != nil {
		return err
	}

	return s.kv.SAdd(ctx, accountInvitesKey(inv.AccountID), inv.ID)
}

func (s *Storage) GetInvite(ctx context.Context, id string) (*Raw[types.Invite], error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetInvite")
	defer span.End()

	return load[types.Invite](ctx, s.kv, inviteKey(id), "invite "+id)
}

// SwapInvite replaces the invite record only if it still reads prev.
func (s *Storage) SwapInvite(ctx context.Context, prev string, inv *types.Invite) (string, bool, error) {
	ctx, span := s.tracer.Start(ctx, "storage.SwapInvite")
	defer span.End()

	return swap(ctx, s.kv, inviteKey(inv.ID), prev, inv)
}

// RestoreInvite puts back the encoding an invite had before current.
func (s *Storage) RestoreInvite(ctx context.Context, id, current, previous string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "storage.RestoreInvite")
	defer span.End()

	return s.kv.CompareAndSwap(ctx, inviteKey(id), current, previous)
}

// ListInvites returns every invite of the account, newest first.
func (s *Storage) ListInvites(ctx context.Context, accountID string) ([]*types.Invite, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListInvites")
	defer span.End()

	ids, err := s.kv.SMembers(ctx, accountInvitesKey(accountID))
	if err != nil {
		return nil, fmt.Errorf("failed to list invites of %s: %w", accountID, err)
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = inviteKey(id)
	}

	invites, _, err := loadMany[types.Invite](ctx, s.kv, keys)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(invites, func(a, b *types.Invite) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return invites, nil
}

// CreateTask writes the task record then prepends it to its user's index.
func (s *Storage) CreateTask(ctx context.Context, t *types.Task) error {
	ctx, span := s.tracer.Start(ctx, "storage.CreateTask")
	defer span.End()

	if err := save(ctx, s.kv, taskKey(t.ID), t); err != nil {
		return err
	}

	if t.UserID == "" {
		return nil
	}

	return s.kv.LPush(ctx, userTasksKey(t.UserID), t.ID)
}

func (s *Storage) GetTask(ctx context.Context, id string) (*Raw[types.Task], error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetTask")
	defer span.End()

	return load[types.Task](ctx, s.kv, taskKey(id), "task "+id)
}

func (s *Storage) SwapTask(ctx context.Context, prev string, t *types.Task) (string, bool, error) {
	ctx, span := s.tracer.Start(ctx, "storage.SwapTask")
	defer span.End()

	return swap(ctx, s.kv, taskKey(t.ID), prev, t)
}

// ListTasks returns the latest limit tasks of a user, newest first. A limit
// of zero or less returns all of them.
func (s *Storage) ListTasks(ctx context.Context, userID string, limit int) ([]*types.Task, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListTasks")
	defer span.End()

	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}

	ids, err := s.kv.LRange(ctx, userTasksKey(userID), 0, stop)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks of %s: %w", userID, err)
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = taskKey(id)
	}

	tasks, _, err := loadMany[types.Task](ctx, s.kv, keys)
	return tasks, err
}

func (s *Storage) UnlinkUserTask(ctx context.Context, userID, taskID string) error {
	ctx, span := s.tracer.Start(ctx, "storage.UnlinkUserTask")
	defer span.End()

	return s.kv.LRem(ctx, userTasksKey(userID), taskID)
}

func (s *Storage) GetContent(ctx context.Context, id string) (*Raw[types.Content], error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetContent")
	defer span.End()

	return load[types.Content](ctx, s.kv, contentKey(id), "content "+id)
}

func (s *Storage) GetContentIDBySlug(ctx context.Context, slug string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetContentIDBySlug")
	defer span.End()

	id, err := s.kv.Get(ctx, contentSlugKey(slug))
	if err != nil {
		return "", wrapNotFound(err, "content slug "+slug)
	}

	return id, nil
}

// ClaimSlug binds slug to contentID, reporting false when another item holds it.
func (s *Storage) ClaimSlug(ctx context.Context, slug, contentID string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ClaimSlug")
	defer span.End()

	ok, err := s.kv.SetNX(ctx, contentSlugKey(slug), contentID, 0)
	if err != nil || ok {
		return ok, err
	}

	owner, err := s.kv.Get(ctx, contentSlugKey(slug))
	if err != nil && !errors.Is(err, kv.ErrNotFound) {
		return false, err
	}

	return owner == contentID, nil
}

// ReleaseSlug drops the slug binding if it still points at contentID.
func (s *Storage) ReleaseSlug(ctx context.Context, slug, contentID string) error {
	ctx, span := s.tracer.Start(ctx, "storage.ReleaseSlug")
	defer span.End()

	owner, err := s.kv.Get(ctx, contentSlugKey(slug))
	if errors.Is(err, kv.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if owner != contentID {
		return nil
	}

	return s.kv.Delete(ctx, contentSlugKey(slug))
}

// CreateContent writes a content record and indexes it. The slug must have
// been claimed by the caller.
func (s *Storage) CreateContent(ctx context.Context, c *types.Content) error {
	ctx, span := s.tracer.Start(ctx, "storage.CreateContent")
	defer span.End()

	if err := save(ctx, s.kv, contentKey(c.ID), c); err != nil {
		return err
	}

	if err := s.kv.SAdd(ctx, accountContentKey(c.AccountID), c.ID); err != nil {
		return err
	}

	return s.kv.SAdd(ctx, allContentKey, c.ID)
}

func (s *Storage) SwapContent(ctx context.Context, prev string, c *types.Content) (string, bool, error) {
	ctx, span := s.tracer.Start(ctx, "storage.SwapContent")
	defer span.End()

	return swap(ctx, s.kv, contentKey(c.ID), prev, c)
}

func (s *Storage) DeleteContent(ctx context.Context, c *types.Content) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteContent")
	defer span.End()

	if err := s.kv.SRem(ctx, accountContentKey(c.AccountID), c.ID); err != nil {
		return err
	}

	if err := s.kv.SRem(ctx, allContentKey, c.ID); err != nil {
		return err
	}

	if c.Slug != "" {
		if err := s.ReleaseSlug(ctx, c.Slug, c.ID); err != nil {
			return err
		}
	}

	return s.kv.Delete(ctx, contentKey(c.ID))
}

// ListAccountContent returns the content of an account, newest first.
func (s *Storage) ListAccountContent(ctx context.Context, accountID string) ([]*types.Content, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListAccountContent")
	defer span.End()

	ids, err := s.kv.SMembers(ctx, accountContentKey(accountID))
	if err != nil {
		return nil, fmt.Errorf("failed to list content of %s: %w", accountID, err)
	}

	return s.getContents(ctx, ids)
}

// ListAllContent returns every content item on the platform.
func (s *Storage) ListAllContent(ctx context.Context) ([]*types.Content, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListAllContent")
	defer span.End()

	ids, err := s.kv.SMembers(ctx, allContentKey)
	if err != nil {
		return nil, fmt.Errorf("failed to list content: %w", err)
	}

	return s.getContents(ctx, ids)
}

func (s *Storage) getContents(ctx context.Context, ids []string) ([]*types.Content, error) {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = contentKey(id)
	}

	items, _, err := loadMany[types.Content](ctx, s.kv, keys)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(items, func(a, b *types.Content) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return items, nil
}

func (s *Storage) AddNotification(ctx context.Context, n *types.Notification) error {
	ctx, span := s.tracer.Start(ctx, "storage.AddNotification")
	defer span.End()

	encoded, err := encode(n)
	if err != nil {
		return err
	}

	return s.kv.LPush(ctx, userNotificationsKey(n.UserID), encoded)
}

// ListNotifications returns the latest notifications of a user, newest first.
func (s *Storage) ListNotifications(ctx context.Context, userID string, limit int) ([]*types.Notification, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListNotifications")
	defer span.End()

	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}

	entries, err := s.kv.LRange(ctx, userNotificationsKey(userID), 0, stop)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications of %s: %w", userID, err)
	}

	notifications := make([]*types.Notification, 0, len(entries))
	for _, e := range entries {
		n := new(types.Notification)
		if err := decode(e, n); err != nil {
			s.logger.Warnf("skipping undecodable notification of %s: %v", userID, err)
			continue
		}
		notifications = append(notifications, n)
	}

	return notifications, nil
}

// ClaimEffect marks the side effect identified by kind and key as done,
// reporting false when it was already claimed. A zero ttl never expires.
func (s *Storage) ClaimEffect(ctx context.Context, kind, key string, ttl time.Duration) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ClaimEffect")
	defer span.End()

	return s.kv.SetNX(ctx, effectKey(kind, key), time.Now().UTC().Format(time.RFC3339), ttl)
}

// ReleaseEffect forgets a claim so that a failed effect can be attempted again.
func (s *Storage) ReleaseEffect(ctx context.Context, kind, key string) error {
	ctx, span := s.tracer.Start(ctx, "storage.ReleaseEffect")
	defer span.End()

	return s.kv.Delete(ctx, effectKey(kind, key))
}
