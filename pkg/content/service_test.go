// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package content

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/canonical/content-platform/internal/apperrors"
	"github.com/canonical/content-platform/internal/authorization"
	"github.com/canonical/content-platform/internal/kv"
	"github.com/canonical/content-platform/internal/logging"
	"github.com/canonical/content-platform/internal/monitoring"
	"github.com/canonical/content-platform/internal/storage"
	"github.com/canonical/content-platform/internal/tracing"
	"github.com/canonical/content-platform/internal/types"
	"github.com/canonical/content-platform/pkg/tasks"
)

//go:generate mockgen -build_flags=--mod=mod -package content -destination ./mock_interfaces.go -source=./interfaces.go

const accountID = "acc-1"

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	service   *Service
	publisher *Publisher
	store     *storage.Storage
	scheduler *MockSchedulerInterface
}

// newFixture seeds acc-1 with alice (owner), erin and ed (editors) and vic
// (viewer).
func newFixture(t *testing.T, ctrl *gomock.Controller) *fixture {
	t.Helper()

	f := new(fixture)

	logger := logging.NewNoopLogger()
	tracer := tracing.NewNoopTracer()
	monitor := monitoring.NewNoopMonitor("test", logger)

	f.store = storage.NewStorage(kv.NewMemoryStore(), tracer, monitor, logger)
	f.scheduler = NewMockSchedulerInterface(ctrl)
	f.service = NewService(f.store, authorization.NewAuthorizer(f.store, tracer, monitor, logger), f.scheduler, tracer, monitor, logger)
	f.service.now = func() time.Time { return fixedNow }
	f.publisher = NewPublisher(f.store, authorization.NewAuthorizer(f.store, tracer, monitor, logger), tracer, monitor, logger)
	f.publisher.now = func() time.Time { return fixedNow.Add(time.Hour) }

	members := map[string]types.Role{"alice": types.RoleOwner, "erin": types.RoleEditor, "ed": types.RoleEditor, "vic": types.RoleViewer}
	for uid, role := range members {
		if _, err := f.store.CreateMembership(context.Background(), &types.Membership{AccountID: accountID, UserID: uid, Role: role, JoinedAt: fixedNow}); err != nil {
			t.Fatalf("failed to seed membership: %v", err)
		}
	}

	return f
}

func (f *fixture) create(t *testing.T, userID string, req *CreateContentRequest) *types.Content {
	t.Helper()

	c, err := f.service.CreateContent(context.Background(), accountID, userID, req)
	if err != nil {
		t.Fatalf("failed to create content: %v", err)
	}
	return c
}

func at(d time.Duration) *time.Time {
	t := fixedNow.Add(d)
	return &t
}

func TestService_CreateContent(t *testing.T) {
	tests := []struct {
		name        string
		userID      string
		req         *CreateContentRequest
		setup       func(*testing.T, *fixture)
		expectedErr error
		validate    func(*testing.T, *fixture, *types.Content)
	}{
		{
			name:   "draft with derived slug",
			userID: "alice",
			req:    &CreateContentRequest{Title: "Hello, World!"},
			validate: func(t *testing.T, _ *fixture, c *types.Content) {
				if c.Slug != "hello-world" || c.Status != types.ContentDraft || c.Kind != types.ContentBlogPost {
					t.Errorf("unexpected content %+v", c)
				}
			},
		},
		{
			name:   "derived slug collision gets a suffix",
			userID: "erin",
			req:    &CreateContentRequest{Title: "Hello World"},
			setup: func(t *testing.T, f *fixture) {
				f.create(t, "alice", &CreateContentRequest{Title: "Hello World"})
			},
			validate: func(t *testing.T, _ *fixture, c *types.Content) {
				if c.Slug != "hello-world-"+c.ID[:8] {
					t.Errorf("unexpected slug %q", c.Slug)
				}
			},
		},
		{
			name:   "published now",
			userID: "erin",
			req:    &CreateContentRequest{Title: "Note", Kind: types.ContentNote, Status: types.ContentPublished, IsPublic: true, Slug: "My-Note"},
			validate: func(t *testing.T, _ *fixture, c *types.Content) {
				if c.PublishedDate == nil || !c.PublishedDate.Equal(fixedNow) || c.Slug != "my-note" {
					t.Errorf("unexpected content %+v", c)
				}
			},
		},
		{
			name:   "scheduled",
			userID: "alice",
			req:    &CreateContentRequest{Title: "Later", Status: types.ContentScheduled, ScheduledFor: at(time.Hour)},
			setup: func(_ *testing.T, f *fixture) {
				f.scheduler.EXPECT().Enqueue(gomock.Any(), "alice", gomock.Any(), at(time.Hour)).
					DoAndReturn(func(_ context.Context, _ string, p tasks.Payload, _ *time.Time) (*types.Task, error) {
						post, ok := p.(*tasks.ScheduledBlogPost)
						if !ok || post.PostID == "" || post.Action != tasks.ActionPublish {
							t.Errorf("unexpected payload %#v", p)
						}
						return &types.Task{ID: "task-1"}, nil
					})
			},
			validate: func(t *testing.T, f *fixture, c *types.Content) {
				raw, err := f.store.GetContent(context.Background(), c.ID)
				if err != nil || raw.Value.Status != types.ContentScheduled {
					t.Errorf("expected stored scheduled item, got %v %v", raw, err)
				}
			},
		},
		{
			name:   "scheduling failure reverts to draft",
			userID: "alice",
			req:    &CreateContentRequest{Title: "Later", Status: types.ContentScheduled, ScheduledFor: at(time.Hour)},
			setup: func(_ *testing.T, f *fixture) {
				f.scheduler.EXPECT().Enqueue(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, apperrors.ExternalService("qstash down"))
			},
			expectedErr: apperrors.ErrExternalService,
			validate: func(t *testing.T, f *fixture, _ *types.Content) {
				items, _ := f.store.ListAccountContent(context.Background(), accountID)
				if len(items) != 1 || items[0].Status != types.ContentDraft || items[0].ScheduledFor != nil {
					t.Errorf("expected a single draft, got %+v", items)
				}
			},
		},
		{
			name:        "scheduled without time",
			userID:      "alice",
			req:         &CreateContentRequest{Title: "Later", Status: types.ContentScheduled},
			expectedErr: apperrors.ErrValidation,
		},
		{
			name:        "scheduled in the past",
			userID:      "alice",
			req:         &CreateContentRequest{Title: "Later", Status: types.ContentScheduled, ScheduledFor: at(-time.Minute)},
			expectedErr: apperrors.ErrValidation,
		},
		{
			name:        "draft with schedule",
			userID:      "alice",
			req:         &CreateContentRequest{Title: "Later", ScheduledFor: at(time.Hour)},
			expectedErr: apperrors.ErrValidation,
		},
		{
			name:        "invalid slug",
			userID:      "alice",
			req:         &CreateContentRequest{Title: "Post", Slug: "no spaces"},
			expectedErr: apperrors.ErrValidation,
		},
		{
			name:   "slug taken",
			userID: "alice",
			req:    &CreateContentRequest{Title: "Post", Slug: "taken"},
			setup: func(t *testing.T, f *fixture) {
				f.create(t, "erin", &CreateContentRequest{Title: "First", Slug: "taken"})
			},
			expectedErr: apperrors.ErrConflict,
		},
		{
			name:        "viewer cannot create",
			userID:      "vic",
			req:         &CreateContentRequest{Title: "Post"},
			expectedErr: apperrors.ErrPermissionDenied,
		},
		{
			name:        "outsider cannot create",
			userID:      "mallory",
			req:         &CreateContentRequest{Title: "Post"},
			expectedErr: apperrors.ErrPermissionDenied,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newFixture(t, ctrl)
			if test.setup != nil {
				test.setup(t, f)
			}

			c, err := f.service.CreateContent(context.Background(), accountID, test.userID, test.req)

			if test.expectedErr != nil {
				if !errors.Is(err, test.expectedErr) {
					t.Fatalf("expected %v, got %v", test.expectedErr, err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			} else if c.CreatedBy != test.userID || c.AccountID != accountID {
				t.Errorf("unexpected ownership %+v", c)
			}

			if test.validate != nil {
				test.validate(t, f, c)
			}
		})
	}
}

func TestService_UpdateContent(t *testing.T) {
	title := "Renamed"
	slug := "renamed"
	taken := "taken"
	scheduled := types.ContentScheduled
	public := true

	tests := []struct {
		name        string
		userID      string
		req         *UpdateContentRequest
		setup       func(*testing.T, *fixture, *types.Content)
		expectedErr error
		validate    func(*testing.T, *fixture, *types.Content)
	}{
		{
			name:   "author renames",
			userID: "erin",
			req:    &UpdateContentRequest{Title: &title, Slug: &slug, IsPublic: &public},
			validate: func(t *testing.T, f *fixture, c *types.Content) {
				if c.Title != title || c.Slug != slug || !c.IsPublic {
					t.Errorf("unexpected content %+v", c)
				}
				if _, err := f.store.GetContentIDBySlug(context.Background(), "draft"); !errors.Is(err, apperrors.ErrNotFound) {
					t.Errorf("expected old slug to be released, got %v", err)
				}
				if id, _ := f.store.GetContentIDBySlug(context.Background(), slug); id != c.ID {
					t.Errorf("expected new slug to point at %s, got %s", c.ID, id)
				}
			},
		},
		{
			name:   "owner edits any item",
			userID: "alice",
			req:    &UpdateContentRequest{Title: &title},
		},
		{
			name:        "other editor cannot edit",
			userID:      "ed",
			req:         &UpdateContentRequest{Title: &title},
			expectedErr: apperrors.ErrPermissionDenied,
		},
		{
			name:        "viewer cannot edit",
			userID:      "vic",
			req:         &UpdateContentRequest{Title: &title},
			expectedErr: apperrors.ErrPermissionDenied,
		},
		{
			name:   "slug taken",
			userID: "erin",
			req:    &UpdateContentRequest{Slug: &taken},
			setup: func(t *testing.T, f *fixture, _ *types.Content) {
				f.create(t, "alice", &CreateContentRequest{Title: "Other", Slug: taken})
			},
			expectedErr: apperrors.ErrConflict,
		},
		{
			name:   "schedule",
			userID: "erin",
			req:    &UpdateContentRequest{Status: &scheduled, ScheduledFor: at(2 * time.Hour)},
			setup: func(_ *testing.T, f *fixture, c *types.Content) {
				f.scheduler.EXPECT().Enqueue(gomock.Any(), "erin", &tasks.ScheduledBlogPost{PostID: c.ID, Action: tasks.ActionPublish, ScheduledFor: at(2 * time.Hour)}, at(2*time.Hour)).
					Return(&types.Task{ID: "task-1"}, nil)
			},
			validate: func(t *testing.T, _ *fixture, c *types.Content) {
				if c.Status != types.ContentScheduled || !c.ScheduledFor.Equal(*at(2 * time.Hour)) {
					t.Errorf("unexpected content %+v", c)
				}
			},
		},
		{
			name:        "schedule without time",
			userID:      "erin",
			req:         &UpdateContentRequest{Status: &scheduled},
			expectedErr: apperrors.ErrValidation,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newFixture(t, ctrl)
			ctx := context.Background()
			original := f.create(t, "erin", &CreateContentRequest{Title: "Draft"})

			if test.setup != nil {
				test.setup(t, f, original)
			}

			before, _ := f.store.GetContent(ctx, original.ID)

			c, err := f.service.UpdateContent(ctx, accountID, original.ID, test.userID, test.req)

			if test.expectedErr != nil {
				if !errors.Is(err, test.expectedErr) {
					t.Fatalf("expected %v, got %v", test.expectedErr, err)
				}

				after, _ := f.store.GetContent(ctx, original.ID)
				if after.Encoded != before.Encoded {
					t.Errorf("content changed on failure: %s", after.Encoded)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if test.validate != nil {
				test.validate(t, f, c)
			}
		})
	}
}

func TestService_UpdateScheduledContentKeepsTask(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)
	ctx := context.Background()

	f.scheduler.EXPECT().Enqueue(gomock.Any(), "alice", gomock.Any(), gomock.Any()).Return(&types.Task{ID: "task-1"}, nil).Times(1)

	c := f.create(t, "alice", &CreateContentRequest{Title: "Later", Status: types.ContentScheduled, ScheduledFor: at(time.Hour)})

	f.service.now = func() time.Time { return fixedNow.Add(2 * time.Hour) }

	body := "edited"
	updated, err := f.service.UpdateContent(ctx, accountID, c.ID, "alice", &UpdateContentRequest{Body: &body})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Status != types.ContentScheduled || updated.Body != body {
		t.Errorf("unexpected content %+v", updated)
	}
}

func TestService_ContentOfAnotherAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)
	ctx := context.Background()
	c := f.create(t, "alice", &CreateContentRequest{Title: "Post"})

	if _, err := f.store.CreateMembership(ctx, &types.Membership{AccountID: "acc-2", UserID: "alice", Role: types.RoleOwner}); err != nil {
		t.Fatalf("failed to seed membership: %v", err)
	}

	if _, err := f.service.GetContent(ctx, "acc-2", c.ID, "alice"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}

	if err := f.service.DeleteContent(ctx, "acc-2", c.ID, "alice"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestService_GetListDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)
	ctx := context.Background()

	first := f.create(t, "erin", &CreateContentRequest{Title: "First"})
	f.service.now = func() time.Time { return fixedNow.Add(time.Minute) }
	second := f.create(t, "alice", &CreateContentRequest{Title: "Second"})

	items, err := f.service.ListContent(ctx, accountID, "vic")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 || items[0].ID != second.ID || items[1].ID != first.ID {
		t.Fatalf("expected newest first, got %+v", items)
	}

	if _, err := f.service.ListContent(ctx, accountID, "mallory"); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("expected permission denied, got %v", err)
	}

	if got, err := f.service.GetContent(ctx, accountID, first.ID, "ed"); err != nil || got.ID != first.ID {
		t.Errorf("expected editor to read any item, got %v %v", got, err)
	}

	if err := f.service.DeleteContent(ctx, accountID, second.ID, "erin"); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("expected editor to be denied on another author's item, got %v", err)
	}

	if err := f.service.DeleteContent(ctx, accountID, first.ID, "erin"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := f.service.GetContent(ctx, accountID, first.ID, "alice"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected deleted item to be gone, got %v", err)
	}

	if _, err := f.store.GetContentIDBySlug(ctx, first.Slug); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected slug to be released, got %v", err)
	}
}

func TestService_GetPublicContent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)
	ctx := context.Background()

	f.create(t, "alice", &CreateContentRequest{Title: "Draft", IsPublic: true})
	f.create(t, "alice", &CreateContentRequest{Title: "Private", Status: types.ContentPublished})
	visible := f.create(t, "alice", &CreateContentRequest{Title: "Visible", Status: types.ContentPublished, IsPublic: true})

	tests := []struct {
		slug        string
		expectedErr error
	}{
		{slug: "visible"},
		{slug: "VISIBLE"},
		{slug: "draft", expectedErr: apperrors.ErrNotFound},
		{slug: "private", expectedErr: apperrors.ErrNotFound},
		{slug: "missing", expectedErr: apperrors.ErrNotFound},
	}

	for _, test := range tests {
		t.Run(test.slug, func(t *testing.T) {
			c, err := f.service.GetPublicContent(ctx, test.slug)

			if test.expectedErr != nil {
				if !errors.Is(err, test.expectedErr) {
					t.Fatalf("expected %v, got %v", test.expectedErr, err)
				}
				return
			}

			if err != nil || c.ID != visible.ID {
				t.Fatalf("expected %s, got %v %v", visible.ID, c, err)
			}
		})
	}
}
