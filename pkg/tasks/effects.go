// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/canonical/content-platform/internal/mail"
	"github.com/canonical/content-platform/internal/types"
)

const (
	effectWelcomeEmail = "welcome_email"
	effectNotification = "notification"
)

type WelcomeEmailResult struct {
	Sent   bool   `json:"sent"`
	To     string `json:"to,omitempty"`
	Reason string `json:"reason,omitempty"`
}

type PublishResult struct {
	PostID    string              `json:"postId"`
	Status    types.ContentStatus `json:"status"`
	Published bool                `json:"published"`
}

type CleanupResult struct {
	Removed       int `json:"removed"`
	OlderThanDays int `json:"olderThanDays"`
}

type NotificationResult struct {
	NotificationID string `json:"notificationId"`
	Delivered      bool   `json:"delivered"`
}

// sendWelcomeEmail mails a user at most once, the marker is claimed before
// sending and released again when delivery fails.
func (e *Executor) sendWelcomeEmail(ctx context.Context, cb *Callback, p *WelcomeEmail) (*WelcomeEmailResult, error) {
	ctx, span := e.tracer.Start(ctx, "tasks.Executor.sendWelcomeEmail")
	defer span.End()

	to := p.Email
	if to == "" && cb.UserID != "" {
		email, err := e.directory.GetIdentityEmail(ctx, cb.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve email of %s: %w", cb.UserID, err)
		}
		to = email
	}

	if to == "" {
		return nil, errors.New("welcome email has no recipient")
	}

	key := cb.UserID
	if key == "" {
		key = to
	}

	claimed, err := e.storage.ClaimEffect(ctx, effectWelcomeEmail, key, 0)
	if err != nil {
		return nil, err
	}

	if !claimed {
		return &WelcomeEmailResult{Sent: false, To: to, Reason: "already sent"}, nil
	}

	msg := &mail.Message{
		To:      to,
		Subject: "Welcome to your workspace",
		Body:    welcomeBody(p.Name),
	}

	if err := e.mailer.Send(ctx, msg); err != nil {
		if rerr := e.storage.ReleaseEffect(ctx, effectWelcomeEmail, key); rerr != nil {
			e.logger.Errorf("failed to release welcome email marker of %s: %v", key, rerr)
		}
		return nil, fmt.Errorf("failed to send welcome email: %w", err)
	}

	return &WelcomeEmailResult{Sent: true, To: to}, nil
}

func welcomeBody(name string) string {
	if name == "" {
		name = "there"
	}
	return fmt.Sprintf("Hi %s,\n\nyour personal workspace is ready. Start writing notes and posts whenever you like.\n", name)
}

// publishPost checks the scheduling user may still manage the item before
// publishing it.
func (e *Executor) publishPost(ctx context.Context, cb *Callback, p *ScheduledBlogPost) (*PublishResult, error) {
	ctx, span := e.tracer.Start(ctx, "tasks.Executor.publishPost")
	defer span.End()

	if p.Action != ActionPublish {
		return nil, fmt.Errorf("unsupported blog post action %q", p.Action)
	}

	if err := e.publisher.AuthorizePublish(ctx, cb.UserID, p.PostID); err != nil {
		return nil, err
	}

	c, changed, err := e.publisher.Publish(ctx, p.PostID, p.ScheduledFor)
	if err != nil {
		return nil, err
	}

	return &PublishResult{PostID: c.ID, Status: c.Status, Published: changed}, nil
}

// cleanup drops old terminal tasks from the user index, the records stay.
func (e *Executor) cleanup(ctx context.Context, cb *Callback, p *Cleanup) (*CleanupResult, error) {
	ctx, span := e.tracer.Start(ctx, "tasks.Executor.cleanup")
	defer span.End()

	if cb.UserID == "" {
		return nil, errors.New("cleanup requires a user")
	}

	days := p.Days()
	cutoff := e.now().UTC().Add(-time.Duration(days) * 24 * time.Hour)

	tasks, err := e.storage.ListTasks(ctx, cb.UserID, 0)
	if err != nil {
		return nil, err
	}

	removed := 0
	for _, t := range tasks {
		if t.ID == cb.TaskID || !t.Terminal() || !t.UpdatedAt.Before(cutoff) {
			continue
		}

		if err := e.storage.UnlinkUserTask(ctx, cb.UserID, t.ID); err != nil {
			return nil, err
		}
		removed++
	}

	e.logger.Infof("cleanup removed %d tasks of %s older than %d days", removed, cb.UserID, days)

	return &CleanupResult{Removed: removed, OlderThanDays: days}, nil
}

// notify delivers a notification once per task, its id is the task id.
func (e *Executor) notify(ctx context.Context, cb *Callback, p *Notification) (*NotificationResult, error) {
	ctx, span := e.tracer.Start(ctx, "tasks.Executor.notify")
	defer span.End()

	recipient := p.UserID
	if recipient == "" {
		recipient = cb.UserID
	}

	if recipient == "" {
		return nil, errors.New("notification has no recipient")
	}

	claimed, err := e.storage.ClaimEffect(ctx, effectNotification, cb.TaskID, 0)
	if err != nil {
		return nil, err
	}

	if !claimed {
		return &NotificationResult{NotificationID: cb.TaskID, Delivered: false}, nil
	}

	n := &types.Notification{
		ID:        cb.TaskID,
		UserID:    recipient,
		Title:     p.Title,
		Message:   p.Message,
		Link:      p.Link,
		CreatedAt: e.now().UTC(),
	}

	if err := e.storage.AddNotification(ctx, n); err != nil {
		if rerr := e.storage.ReleaseEffect(ctx, effectNotification, cb.TaskID); rerr != nil {
			e.logger.Errorf("failed to release notification marker of %s: %v", cb.TaskID, rerr)
		}
		return nil, err
	}

	return &NotificationResult{NotificationID: n.ID, Delivered: true}, nil
}
