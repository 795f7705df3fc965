// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/oauth2"

	"github.com/canonical/content-platform/internal/authorization"
	"github.com/canonical/content-platform/internal/kratos"
	"github.com/canonical/content-platform/internal/kv"
	"github.com/canonical/content-platform/internal/logging"
	"github.com/canonical/content-platform/internal/mail"
	"github.com/canonical/content-platform/internal/monitoring"
	"github.com/canonical/content-platform/internal/qstash"
	"github.com/canonical/content-platform/internal/storage"
	"github.com/canonical/content-platform/internal/tracing"
	"github.com/canonical/content-platform/internal/types"
	"github.com/canonical/content-platform/pkg/accounts"
	"github.com/canonical/content-platform/pkg/authentication"
	"github.com/canonical/content-platform/pkg/content"
	"github.com/canonical/content-platform/pkg/invites"
	"github.com/canonical/content-platform/pkg/tasks"
	"github.com/canonical/content-platform/pkg/web"
	"github.com/canonical/content-platform/pkg/webhooks"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := logging.NewNoopLogger()
	tracer := tracing.NewNoopTracer()
	monitor := monitoring.NewNoopMonitor("test", logger)

	broker := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"messageId":"msg-1"}`))
	}))
	t.Cleanup(broker.Close)

	s := storage.NewStorage(kv.NewMemoryStore(), tracer, monitor, logger)
	authz := authorization.NewAuthorizer(s, tracer, monitor, logger)
	dir := kratos.NewNoopDirectory()

	publisher := content.NewPublisher(s, authz, tracer, monitor, logger)
	scheduler := tasks.NewScheduler(s, qstash.NewClient(broker.URL, "token", 0, tracer, monitor, logger), publisher, authz, "https://platform.example.com", 0, tracer, monitor, logger)
	accountsService := accounts.NewService(s, authz, scheduler, tracer, monitor, logger)
	executor := tasks.NewExecutor(s, mail.NewLogMailer("no-reply@example.com", logger), publisher, dir, tracer, monitor, logger)

	router := web.NewRouter(
		&web.Services{
			Store:     s,
			Verifier:  authentication.NewNoopVerifier(),
			Accounts:  accountsService,
			Invites:   invites.NewService(s, authz, accountsService, dir, scheduler, 0, tracer, monitor, logger),
			Content:   content.NewService(s, authz, scheduler, tracer, monitor, logger),
			Scheduler: scheduler,
			Webhooks:  webhooks.NewService(webhooks.NewVerifier("current", "next", tracer, logger), executor, tracer, monitor, logger),
			PublicURL: "https://platform.example.com",
		},
		tracer,
		monitor,
		logger,
	)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return srv
}

func clientAs(ctx context.Context, endpoint, token string) *Client {
	if token == "" {
		return NewClient(endpoint)
	}
	return NewClient(endpoint, WithTokenSource(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})))
}

func expectStatus(t *testing.T, err error, status int) {
	t.Helper()

	apiErr := new(APIError)
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected api error with status %d, got %v", status, err)
	}
	if apiErr.StatusCode != status {
		t.Fatalf("expected status %d, got %d (%s)", status, apiErr.StatusCode, apiErr.Message)
	}
}

func TestClientAccountLifecycle(t *testing.T) {
	ctx := context.Background()
	srv := newTestServer(t)

	alice := clientAs(ctx, srv.URL, "alice:alice@example.com")
	bob := clientAs(ctx, srv.URL, "bob:bob@example.com")
	carol := clientAs(ctx, srv.URL, "carol:carol@example.com")
	anonymous := clientAs(ctx, srv.URL, "")

	personal, err := alice.DefaultAccount(ctx)
	if err != nil {
		t.Fatalf("default account: %v", err)
	}
	if personal.Type != types.AccountPersonal || personal.UserRole != types.RoleOwner {
		t.Fatalf("unexpected personal account %+v", personal)
	}

	team, err := alice.CreateAccount(ctx, &accounts.CreateAccountRequest{Name: "Acme", Type: types.AccountTeam})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}

	inv, err := alice.CreateInvite(ctx, team.ID, &invites.CreateInviteRequest{Email: "Bob@Example.com", Role: types.RoleEditor})
	if err != nil {
		t.Fatalf("create invite: %v", err)
	}
	if inv.Email != "bob@example.com" || inv.Status != types.InvitePending {
		t.Fatalf("unexpected invite %+v", inv)
	}

	_, err = carol.AcceptInvite(ctx, inv.ID)
	expectStatus(t, err, http.StatusBadRequest)

	m, err := bob.AcceptInvite(ctx, inv.ID)
	if err != nil {
		t.Fatalf("accept invite: %v", err)
	}
	if m.Role != types.RoleEditor || m.InvitedBy != "alice" {
		t.Fatalf("unexpected membership %+v", m)
	}

	members, err := alice.ListMembers(ctx, team.ID)
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}

	pending, err := alice.ListInvites(ctx, team.ID)
	if err != nil {
		t.Fatalf("list invites: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected no actionable invites, got %d", len(pending))
	}

	post, err := bob.CreateContent(ctx, team.ID, &content.CreateContentRequest{
		Kind:     types.ContentBlogPost,
		Title:    "Hello World",
		Status:   types.ContentPublished,
		IsPublic: true,
	})
	if err != nil {
		t.Fatalf("create content: %v", err)
	}
	if post.Slug != "hello-world" || post.PublishedDate == nil {
		t.Fatalf("unexpected content %+v", post)
	}

	public, err := anonymous.GetPublicContent(ctx, "Hello-World")
	if err != nil {
		t.Fatalf("public content: %v", err)
	}
	if public.ID != post.ID {
		t.Fatalf("expected %s, got %s", post.ID, public.ID)
	}

	_, err = carol.ListContent(ctx, team.ID)
	expectStatus(t, err, http.StatusForbidden)

	_, err = anonymous.ListAccounts(ctx)
	expectStatus(t, err, http.StatusUnauthorized)

	if err := alice.RemoveMember(ctx, team.ID, "bob"); err != nil {
		t.Fatalf("remove member: %v", err)
	}

	_, err = bob.GetAccount(ctx, team.ID)
	expectStatus(t, err, http.StatusForbidden)
}

func TestClientScheduleTaskRequiresAccess(t *testing.T) {
	ctx := context.Background()
	srv := newTestServer(t)

	alice := clientAs(ctx, srv.URL, "alice:alice@example.com")
	mallory := clientAs(ctx, srv.URL, "mallory:mallory@example.com")

	team, err := alice.CreateAccount(ctx, &accounts.CreateAccountRequest{Name: "Acme", Type: types.AccountTeam})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}

	draft, err := alice.CreateContent(ctx, team.ID, &content.CreateContentRequest{Kind: types.ContentBlogPost, Title: "Unreleased"})
	if err != nil {
		t.Fatalf("create content: %v", err)
	}

	publish := &tasks.ScheduleRequest{
		Type:    tasks.KindScheduledBlogPost,
		Payload: json.RawMessage(`{"postId":"` + draft.ID + `","action":"publish"}`),
	}

	_, err = mallory.ScheduleTask(ctx, publish)
	expectStatus(t, err, http.StatusForbidden)

	_, err = mallory.ScheduleTask(ctx, &tasks.ScheduleRequest{
		Type:    tasks.KindNotification,
		Payload: json.RawMessage(`{"userId":"alice","title":"Reset your password"}`),
	})
	expectStatus(t, err, http.StatusForbidden)

	scheduled, err := mallory.ListTasks(ctx)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(scheduled) != 0 {
		t.Fatalf("expected no tasks for mallory, got %d", len(scheduled))
	}

	task, err := alice.ScheduleTask(ctx, publish)
	if err != nil {
		t.Fatalf("schedule task: %v", err)
	}
	if task.Status != types.TaskPending {
		t.Fatalf("unexpected task %+v", task)
	}
}

func TestNewClientEndpoint(t *testing.T) {
	tests := []struct {
		endpoint string
		expected string
	}{
		{endpoint: "localhost:8080", expected: "http://localhost:8080"},
		{endpoint: "https://platform.example.com/", expected: "https://platform.example.com"},
	}

	for _, test := range tests {
		t.Run(test.endpoint, func(t *testing.T) {
			if c := NewClient(test.endpoint); c.endpoint != test.expected {
				t.Fatalf("expected %s, got %s", test.expected, c.endpoint)
			}
		})
	}
}
