// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package content

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/canonical/content-platform/internal/apperrors"
	"github.com/canonical/content-platform/internal/authorization"
	"github.com/canonical/content-platform/internal/logging"
	"github.com/canonical/content-platform/internal/monitoring"
	"github.com/canonical/content-platform/internal/storage"
	"github.com/canonical/content-platform/internal/tracing"
	"github.com/canonical/content-platform/internal/types"
	"github.com/canonical/content-platform/pkg/tasks"
)

const maxUpdateAttempts = 3

var (
	slugPattern   = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	slugSeparator = regexp.MustCompile(`[^a-z0-9]+`)
)

type rawContent = storage.Raw[types.Content]

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

func (s *Service) CreateContent(ctx context.Context, accountID, userID string, req *CreateContentRequest) (*types.Content, error) {
	ctx, span := s.tracer.Start(ctx, "content.Service.CreateContent")
	defer span.End()

	if _, err := s.authz.RequireContent(ctx, accountID, userID, authorization.PermissionManageContent, ""); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	c := &types.Content{
		ID:           uuid.NewString(),
		AccountID:    accountID,
		CreatedBy:    userID,
		Kind:         req.Kind,
		Title:        strings.TrimSpace(req.Title),
		Body:         req.Body,
		Status:       req.Status,
		IsPublic:     req.IsPublic,
		ScheduledFor: req.ScheduledFor,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if c.Kind == "" {
		c.Kind = types.ContentBlogPost
	}
	if c.Status == "" {
		c.Status = types.ContentDraft
	}
	if c.Title == "" {
		return nil, apperrors.Validation("title must not be empty")
	}

	if err := settle(c, nil, now); err != nil {
		return nil, err
	}

	if err := s.claimSlug(ctx, c, req.Slug); err != nil {
		return nil, err
	}

	if err := s.storage.CreateContent(ctx, c); err != nil {
		s.releaseSlug(ctx, c.Slug, c.ID)
		return nil, err
	}

	s.logger.Infof("user %s created %s %s in account %s", userID, c.Kind, c.ID, accountID)

	if c.Status == types.ContentScheduled {
		return s.schedule(ctx, userID, c)
	}

	return c, nil
}

func (s *Service) GetContent(ctx context.Context, accountID, contentID, userID string) (*types.Content, error) {
	ctx, span := s.tracer.Start(ctx, "content.Service.GetContent")
	defer span.End()

	c, err := s.load(ctx, accountID, contentID)
	if err != nil {
		return nil, err
	}

	if _, err := s.authz.RequireContent(ctx, accountID, userID, authorization.PermissionViewContent, c.Value.CreatedBy); err != nil {
		return nil, err
	}

	return c.Value, nil
}

// UpdateContent applies req to the item with a conditional write. Moving an
// item to scheduled, or changing its schedule, enqueues a publish task.
func (s *Service) UpdateContent(ctx context.Context, accountID, contentID, userID string, req *UpdateContentRequest) (*types.Content, error) {
	ctx, span := s.tracer.Start(ctx, "content.Service.UpdateContent")
	defer span.End()

	raw, err := s.load(ctx, accountID, contentID)
	if err != nil {
		return nil, err
	}

	if _, err := s.authz.RequireContent(ctx, accountID, userID, authorization.PermissionManageContent, raw.Value.CreatedBy); err != nil {
		return nil, err
	}

	var newSlug string
	if req.Slug != nil {
		if newSlug, err = normalizeSlug(*req.Slug); err != nil {
			return nil, err
		}
		if newSlug == raw.Value.Slug {
			newSlug = ""
		} else if err := s.claim(ctx, newSlug, contentID); err != nil {
			return nil, err
		}
	}

	for attempt := range maxUpdateAttempts {
		if attempt > 0 {
			if raw, err = s.load(ctx, accountID, contentID); err != nil {
				break
			}
		}

		prev := *raw.Value
		c := raw.Value
		now := s.now().UTC()

		if err = applyPatch(c, req); err != nil {
			break
		}
		if err = settle(c, &prev, now); err != nil {
			break
		}
		if newSlug != "" {
			c.Slug = newSlug
		}
		c.UpdatedAt = now

		var (
			current string
			ok      bool
		)
		current, ok, err = s.storage.SwapContent(ctx, raw.Encoded, c)
		if err != nil {
			break
		}
		if !ok {
			continue
		}

		if newSlug != "" && prev.Slug != "" {
			s.releaseSlug(ctx, prev.Slug, contentID)
		}

		if c.Status == types.ContentScheduled && !sameSchedule(&prev, c) {
			return s.reschedule(ctx, userID, c, current)
		}

		return c, nil
	}

	if newSlug != "" {
		s.releaseSlug(ctx, newSlug, contentID)
	}

	if err != nil {
		return nil, err
	}

	return nil, apperrors.Conflict("content %s was modified concurrently", contentID)
}

func (s *Service) DeleteContent(ctx context.Context, accountID, contentID, userID string) error {
	ctx, span := s.tracer.Start(ctx, "content.Service.DeleteContent")
	defer span.End()

	raw, err := s.load(ctx, accountID, contentID)
	if err != nil {
		return err
	}

	if _, err := s.authz.RequireContent(ctx, accountID, userID, authorization.PermissionManageContent, raw.Value.CreatedBy); err != nil {
		return err
	}

	return s.storage.DeleteContent(ctx, raw.Value)
}

func (s *Service) ListContent(ctx context.Context, accountID, userID string) ([]*types.Content, error) {
	ctx, span := s.tracer.Start(ctx, "content.Service.ListContent")
	defer span.End()

	if _, err := s.authz.RequireContent(ctx, accountID, userID, authorization.PermissionViewContent, ""); err != nil {
		return nil, err
	}

	return s.storage.ListAccountContent(ctx, accountID)
}

// GetPublicContent returns a published public item by slug. Anything else is
// reported as missing.
func (s *Service) GetPublicContent(ctx context.Context, slug string) (*types.Content, error) {
	ctx, span := s.tracer.Start(ctx, "content.Service.GetPublicContent")
	defer span.End()

	id, err := s.storage.GetContentIDBySlug(ctx, strings.ToLower(slug))
	if err != nil {
		return nil, err
	}

	raw, err := s.storage.GetContent(ctx, id)
	if err != nil {
		return nil, err
	}

	if !raw.Value.Visible() {
		return nil, apperrors.NotFound("content %s", slug)
	}

	return raw.Value, nil
}

func (s *Service) load(ctx context.Context, accountID, contentID string) (*rawContent, error) {
	raw, err := s.storage.GetContent(ctx, contentID)
	if err != nil {
		return nil, err
	}

	if raw.Value.AccountID != accountID {
		return nil, apperrors.NotFound("content %s", contentID)
	}

	return raw, nil
}

// schedule enqueues the publish task of a freshly created item.
func (s *Service) schedule(ctx context.Context, userID string, c *types.Content) (*types.Content, error) {
	raw, err := s.storage.GetContent(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	return s.reschedule(ctx, userID, c, raw.Encoded)
}

// reschedule enqueues a publish task for c, whose stored encoding is current.
// When the broker refuses the task the item falls back to draft.
func (s *Service) reschedule(ctx context.Context, userID string, c *types.Content, current string) (*types.Content, error) {
	_, err := s.scheduler.Enqueue(ctx, userID, &tasks.ScheduledBlogPost{PostID: c.ID, Action: tasks.ActionPublish, ScheduledFor: c.ScheduledFor}, c.ScheduledFor)
	if err == nil {
		return c, nil
	}

	s.logger.Errorf("failed to schedule publication of %s: %v", c.ID, err)

	draft := *c
	draft.Status = types.ContentDraft
	draft.ScheduledFor = nil
	if _, ok, rerr := s.storage.SwapContent(ctx, current, &draft); rerr != nil || !ok {
		s.logger.Errorf("failed to revert %s to draft: reverted=%v err=%v", c.ID, ok, rerr)
	}

	return nil, err
}

// claimSlug binds the requested slug, or one derived from the title, to c.
func (s *Service) claimSlug(ctx context.Context, c *types.Content, requested string) error {
	if requested != "" {
		slug, err := normalizeSlug(requested)
		if err != nil {
			return err
		}
		if err := s.claim(ctx, slug, c.ID); err != nil {
			return err
		}
		c.Slug = slug
		return nil
	}

	base := slugify(c.Title)
	if base == "" {
		base = "post"
	}

	for _, candidate := range []string{base, base + "-" + c.ID[:8]} {
		ok, err := s.storage.ClaimSlug(ctx, candidate, c.ID)
		if err != nil {
			return err
		}
		if ok {
			c.Slug = candidate
			return nil
		}
	}

	return apperrors.Conflict("no free slug for %q", c.Title)
}

func (s *Service) claim(ctx context.Context, slug, contentID string) error {
	ok, err := s.storage.ClaimSlug(ctx, slug, contentID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.Conflict("slug %q is taken", slug)
	}
	return nil
}

func (s *Service) releaseSlug(ctx context.Context, slug, contentID string) {
	if slug == "" {
		return
	}
	if err := s.storage.ReleaseSlug(ctx, slug, contentID); err != nil {
		s.logger.Warnf("failed to release slug %s of %s: %v", slug, contentID, err)
	}
}

func applyPatch(c *types.Content, req *UpdateContentRequest) error {
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return apperrors.Validation("title must not be empty")
		}
		c.Title = title
	}

	if req.Body != nil {
		c.Body = *req.Body
	}

	if req.IsPublic != nil {
		c.IsPublic = *req.IsPublic
	}

	if req.Status != nil {
		c.Status = *req.Status
	}

	if req.ScheduledFor != nil {
		c.ScheduledFor = req.ScheduledFor
	}

	return nil
}

// settle checks the status of c against its schedule and stamps the
// publication date. prev is the stored item, nil on creation.
func settle(c *types.Content, prev *types.Content, now time.Time) error {
	if !c.Status.IsValid() {
		return apperrors.Validation("unknown status %q", c.Status)
	}

	switch c.Status {
	case types.ContentScheduled:
		if c.ScheduledFor == nil {
			return apperrors.Validation("scheduled content needs scheduledFor")
		}
		if (prev == nil || !sameSchedule(prev, c)) && !c.ScheduledFor.After(now) {
			return apperrors.Validation("scheduledFor must be in the future")
		}
		t := c.ScheduledFor.UTC()
		c.ScheduledFor = &t
		c.PublishedDate = nil
	case types.ContentPublished:
		if prev == nil || prev.Status != types.ContentPublished {
			c.PublishedDate = &now
		}
		c.ScheduledFor = nil
	case types.ContentDraft:
		if c.ScheduledFor != nil && (prev == nil || !sameTime(prev.ScheduledFor, c.ScheduledFor)) {
			return apperrors.Validation("scheduledFor requires status scheduled")
		}
		c.ScheduledFor = nil
		c.PublishedDate = nil
	}

	return nil
}

func sameSchedule(prev, next *types.Content) bool {
	return prev.Status == types.ContentScheduled && sameTime(prev.ScheduledFor, next.ScheduledFor)
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func normalizeSlug(raw string) (string, error) {
	slug := strings.ToLower(strings.TrimSpace(raw))
	if !slugPattern.MatchString(slug) {
		return "", apperrors.Validation("invalid slug %q", raw)
	}
	return slug, nil
}

func slugify(title string) string {
	slug := slugSeparator.ReplaceAllString(strings.ToLower(title), "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > 80 {
		slug = strings.TrimRight(slug[:80], "-")
	}
	return slug
}

func isNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound)
}
