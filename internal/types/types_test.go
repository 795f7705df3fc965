// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"testing"
	"time"
)

func TestInviteActionable(t *testing.T) {
	now := time.Now()

	testCases := []struct {
		name       string
		invite     Invite
		actionable bool
		effective  InviteStatus
	}{
		{
			name:       "pending and in the future",
			invite:     Invite{Status: InvitePending, ExpiresAt: now.Add(time.Hour)},
			actionable: true,
			effective:  InvitePending,
		},
		{
			name:       "pending but expired",
			invite:     Invite{Status: InvitePending, ExpiresAt: now.Add(-time.Hour)},
			actionable: false,
			effective:  InviteExpired,
		},
		{
			name:       "expiring exactly now",
			invite:     Invite{Status: InvitePending, ExpiresAt: now},
			actionable: false,
			effective:  InviteExpired,
		},
		{
			name:       "accepted",
			invite:     Invite{Status: InviteAccepted, ExpiresAt: now.Add(time.Hour)},
			actionable: false,
			effective:  InviteAccepted,
		},
		{
			name:       "cancelled and expired keeps cancelled",
			invite:     Invite{Status: InviteCancelled, ExpiresAt: now.Add(-time.Hour)},
			actionable: false,
			effective:  InviteCancelled,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.invite.Actionable(now); got != tc.actionable {
				t.Errorf("expected actionable %v, got %v", tc.actionable, got)
			}
			if got := tc.invite.EffectiveStatus(now); got != tc.effective {
				t.Errorf("expected effective status %s, got %s", tc.effective, got)
			}
		})
	}
}

func TestContentVisible(t *testing.T) {
	testCases := []struct {
		status   ContentStatus
		public   bool
		expected bool
	}{
		{ContentPublished, true, true},
		{ContentPublished, false, false},
		{ContentDraft, true, false},
		{ContentScheduled, true, false},
	}

	for _, tc := range testCases {
		c := Content{Status: tc.status, IsPublic: tc.public}
		if got := c.Visible(); got != tc.expected {
			t.Errorf("status=%s public=%v: expected %v, got %v", tc.status, tc.public, tc.expected, got)
		}
	}
}

func TestEnums(t *testing.T) {
	if !AccountFamily.IsValid() || AccountType("guild").IsValid() {
		t.Error("unexpected account type validation")
	}
	if AccountPersonal.MemberCap() != 1 || AccountTeam.MemberCap() != 0 {
		t.Error("unexpected member caps")
	}
	if !RoleEditor.IsValid() || Role("guest").IsValid() {
		t.Error("unexpected role validation")
	}
}
