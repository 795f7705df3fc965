// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"encoding/json"
	"time"
)

type AccountType string

const (
	AccountPersonal   AccountType = "personal"
	AccountFamily     AccountType = "family"
	AccountTeam       AccountType = "team"
	AccountEnterprise AccountType = "enterprise"
)

func (t AccountType) IsValid() bool {
	switch t {
	case AccountPersonal, AccountFamily, AccountTeam, AccountEnterprise:
		return true
	default:
		return false
	}
}

// MemberCap returns the maximum number of members of an account type, 0
// meaning unlimited.
func (t AccountType) MemberCap() int {
	if t == AccountPersonal {
		return 1
	}
	return 0
}

type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleEditor, RoleViewer:
		return true
	default:
		return false
	}
}

type AccountSettings struct {
	AllowInvites      bool `json:"allowInvites"`
	DefaultMemberRole Role `json:"defaultMemberRole"`
}

type Account struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Type        AccountType     `json:"type"`
	Description string          `json:"description"`
	OwnerID     string          `json:"ownerId"`
	Settings    AccountSettings `json:"settings"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// AccountWithRole is an account as seen by one of its members.
type AccountWithRole struct {
	*Account
	UserRole Role `json:"userRole"`
}

type Membership struct {
	AccountID string    `json:"accountId"`
	UserID    string    `json:"userId"`
	Role      Role      `json:"role"`
	JoinedAt  time.Time `json:"joinedAt"`
	InvitedBy string    `json:"invitedBy,omitempty"`
}

type InviteStatus string

const (
	InvitePending   InviteStatus = "pending"
	InviteAccepted  InviteStatus = "accepted"
	InviteCancelled InviteStatus = "cancelled"
	InviteExpired   InviteStatus = "expired"
)

type Invite struct {
	ID          string       `json:"id"`
	AccountID   string       `json:"accountId"`
	Email       string       `json:"email"`
	Role        Role         `json:"role"`
	Status      InviteStatus `json:"status"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	InvitedBy   string       `json:"invitedBy"`
	CreatedAt   time.Time    `json:"createdAt"`
	AcceptedBy  string       `json:"acceptedBy,omitempty"`
	AcceptedAt  *time.Time   `json:"acceptedAt,omitempty"`
	CancelledBy string       `json:"cancelledBy,omitempty"`
	CancelledAt *time.Time   `json:"cancelledAt,omitempty"`
}

// Actionable reports whether the invite can still be accepted or cancelled.
// Expiry is derived from the clock and never stored.
func (i *Invite) Actionable(now time.Time) bool {
	return i.Status == InvitePending && i.ExpiresAt.After(now)
}

// EffectiveStatus reports expired for pending invites past their deadline.
func (i *Invite) EffectiveStatus(now time.Time) InviteStatus {
	if i.Status == InvitePending && !i.ExpiresAt.After(now) {
		return InviteExpired
	}
	return i.Status
}

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskProcessing TaskStatus = "processing"
	TaskCompleted  TaskStatus = "completed"
	TaskFailed     TaskStatus = "failed"
)

type Task struct {
	ID              string          `json:"id"`
	Type            string          `json:"type"`
	Payload         json.RawMessage `json:"payload"`
	Status          TaskStatus      `json:"status"`
	RetryCount      int             `json:"retryCount"`
	ScheduledFor    *time.Time      `json:"scheduledFor,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	UserID          string          `json:"userId"`
	BrokerMessageID string          `json:"brokerMessageId"`
	Result          json.RawMessage `json:"result,omitempty"`
	Error           string          `json:"error,omitempty"`
}

// Terminal reports whether the task reached completed or failed.
func (t *Task) Terminal() bool {
	return t.Status == TaskCompleted || t.Status == TaskFailed
}

type ContentStatus string

const (
	ContentDraft     ContentStatus = "draft"
	ContentScheduled ContentStatus = "scheduled"
	ContentPublished ContentStatus = "published"
)

func (s ContentStatus) IsValid() bool {
	switch s {
	case ContentDraft, ContentScheduled, ContentPublished:
		return true
	default:
		return false
	}
}

type ContentKind string

const (
	ContentNote     ContentKind = "note"
	ContentBlogPost ContentKind = "blog_post"
)

type Content struct {
	ID            string        `json:"id"`
	AccountID     string        `json:"accountId"`
	CreatedBy     string        `json:"createdBy"`
	Kind          ContentKind   `json:"kind"`
	Title         string        `json:"title"`
	Slug          string        `json:"slug,omitempty"`
	Body          string        `json:"body,omitempty"`
	Status        ContentStatus `json:"status"`
	IsPublic      bool          `json:"isPublic"`
	ScheduledFor  *time.Time    `json:"scheduledFor,omitempty"`
	PublishedDate *time.Time    `json:"publishedDate,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// Visible reports whether the item may be served to anonymous readers.
func (c *Content) Visible() bool {
	return c.Status == ContentPublished && c.IsPublic
}

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Link      string    `json:"link,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
