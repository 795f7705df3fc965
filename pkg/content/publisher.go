// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package content

import (
	"context"
	"strings"
	"time"

	"github.com/canonical/content-platform/internal/apperrors"
	"github.com/canonical/content-platform/internal/authorization"
	"github.com/canonical/content-platform/internal/logging"
	"github.com/canonical/content-platform/internal/monitoring"
	"github.com/canonical/content-platform/internal/tracing"
	"github.com/canonical/content-platform/internal/types"
)

// Publisher moves draft or scheduled items to published when their publish
// task fires.
type Publisher struct {
	storage StorageInterface
	authz   authorization.AuthorizerInterface
	now     func() time.Time

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewPublisher(storage StorageInterface, authz authorization.AuthorizerInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Publisher {
	return &Publisher{
		storage: storage,
		authz:   authz,
		now:     time.Now,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// AuthorizePublish fails unless userID may manage the item referenced by id
// or slug.
func (p *Publisher) AuthorizePublish(ctx context.Context, userID, ref string) error {
	ctx, span := p.tracer.Start(ctx, "content.Publisher.AuthorizePublish")
	defer span.End()

	if userID == "" {
		return apperrors.ErrAuthentication
	}

	raw, err := p.resolve(ctx, ref)
	if err != nil {
		return err
	}

	c := raw.Value
	_, err = p.authz.RequireContent(ctx, c.AccountID, userID, authorization.PermissionManageContent, c.CreatedBy)

	return err
}

// Publish publishes the item referenced by id or slug. It reports false
// without writing when the item is already past draft or scheduled, so a
// redelivered task is harmless, and when the item was rescheduled past
// scheduledFor, so only the task of the current schedule publishes it.
// Visibility is left untouched.
func (p *Publisher) Publish(ctx context.Context, ref string, scheduledFor *time.Time) (*types.Content, bool, error) {
	ctx, span := p.tracer.Start(ctx, "content.Publisher.Publish")
	defer span.End()

	for range maxUpdateAttempts {
		raw, err := p.resolve(ctx, ref)
		if err != nil {
			return nil, false, err
		}

		c := raw.Value
		if c.Status != types.ContentDraft && c.Status != types.ContentScheduled {
			p.logger.Debugf("content %s is already %s", c.ID, c.Status)
			return c, false, nil
		}

		if c.Status == types.ContentScheduled && scheduledFor != nil && c.ScheduledFor != nil && c.ScheduledFor.After(*scheduledFor) {
			p.logger.Infof("content %s moved to %s, skipping publication for %s", c.ID, c.ScheduledFor.Format(time.RFC3339), scheduledFor.Format(time.RFC3339))
			return c, false, nil
		}

		now := p.now().UTC()
		c.Status = types.ContentPublished
		c.PublishedDate = &now
		c.ScheduledFor = nil
		c.UpdatedAt = now

		_, ok, err := p.storage.SwapContent(ctx, raw.Encoded, c)
		if err != nil {
			return nil, false, err
		}
		if ok {
			p.logger.Infof("published content %s", c.ID)
			return c, true, nil
		}
	}

	return nil, false, apperrors.Conflict("content %s was modified concurrently", ref)
}

// resolve looks ref up as an id, then as a slug, then by scanning every item.
func (p *Publisher) resolve(ctx context.Context, ref string) (*rawContent, error) {
	raw, err := p.storage.GetContent(ctx, ref)
	if err == nil || !isNotFound(err) {
		return raw, err
	}

	id, err := p.storage.GetContentIDBySlug(ctx, strings.ToLower(ref))
	if err == nil {
		if raw, err = p.storage.GetContent(ctx, id); err == nil || !isNotFound(err) {
			return raw, err
		}
	} else if !isNotFound(err) {
		return nil, err
	}

	all, err := p.storage.ListAllContent(ctx)
	if err != nil {
		return nil, err
	}

	for _, c := range all {
		if c.ID == ref || strings.EqualFold(c.Slug, ref) {
			p.logger.Warnf("content %s resolved to %s by scan", ref, c.ID)
			return p.storage.GetContent(ctx, c.ID)
		}
	}

	return nil, apperrors.NotFound("content %s", ref)
}
