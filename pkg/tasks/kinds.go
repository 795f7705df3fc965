// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tasks

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

type Kind string

const (
	KindWelcomeEmail      Kind = "welcome_email"
	KindScheduledBlogPost Kind = "scheduled_blog_post"
	KindCleanup           Kind = "cleanup_task"
	KindNotification      Kind = "notification"

	ActionPublish = "publish"

	defaultCleanupDays = 30
)

var (
	ErrUnknownKind    = errors.New("unknown task type")
	ErrInvalidPayload = errors.New("invalid task payload")
)

// Payload is the typed body of one task kind. The set of implementations is
// closed to this package.
type Payload interface {
	Kind() Kind
	isPayload()
}

type WelcomeEmail struct {
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Name  string `json:"name,omitempty"`
}

type ScheduledBlogPost struct {
	PostID string `json:"postId" validate:"required"`
	Action string `json:"action" validate:"required"`
	// ScheduledFor is the publication time the task was issued for. A task
	// whose item has since moved to a later time does not publish it.
	ScheduledFor *time.Time `json:"scheduledFor,omitempty"`
}

type Cleanup struct {
	OlderThanDays int `json:"olderThanDays,omitempty" validate:"gte=0"`
}

// Days returns the retention window, defaulting to 30 days.
func (c *Cleanup) Days() int {
	if c.OlderThanDays == 0 {
		return defaultCleanupDays
	}
	return c.OlderThanDays
}

type Notification struct {
	// UserID is the recipient, the scheduling user when empty.
	UserID  string `json:"userId,omitempty"`
	Title   string `json:"title" validate:"required"`
	Message string `json:"message,omitempty"`
	Link    string `json:"link,omitempty" validate:"omitempty,uri"`
}

func (*WelcomeEmail) Kind() Kind      { return KindWelcomeEmail }
func (*ScheduledBlogPost) Kind() Kind { return KindScheduledBlogPost }
func (*Cleanup) Kind() Kind           { return KindCleanup }
func (*Notification) Kind() Kind      { return KindNotification }

func (*WelcomeEmail) isPayload()      {}
func (*ScheduledBlogPost) isPayload() {}
func (*Cleanup) isPayload()           {}
func (*Notification) isPayload()      {}

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodePayload parses raw into the payload type of kind and validates it.
func DecodePayload(kind Kind, raw json.RawMessage) (Payload, error) {
	var p Payload

	switch kind {
	case KindWelcomeEmail:
		p = new(WelcomeEmail)
	case KindScheduledBlogPost:
		p = new(ScheduledBlogPost)
	case KindCleanup:
		p = new(Cleanup)
	case KindNotification:
		p = new(Notification)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, kind)
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, fmt.Errorf("%w: payload is required", ErrInvalidPayload)
	}

	if err := json.Unmarshal(raw, p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	if err := validate.Struct(p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	return p, nil
}

// EncodePayload renders p for storage in a task record.
func EncodePayload(p Payload) (json.RawMessage, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s payload: %w", p.Kind(), err)
	}
	return raw, nil
}

// Delay is a relative schedule given either as seconds or as a duration
// string such as "90s" or "1h".
type Delay time.Duration

func (d *Delay) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}

		if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
			*d = Delay(time.Duration(secs) * time.Second)
			return nil
		}

		v, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid delay %q", s)
		}
		*d = Delay(v)
		return nil
	}

	var secs int64
	if err := json.Unmarshal(b, &secs); err != nil {
		return fmt.Errorf("invalid delay %s", b)
	}
	*d = Delay(time.Duration(secs) * time.Second)

	return nil
}

func (d Delay) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
