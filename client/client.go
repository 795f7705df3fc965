// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package client is a thin HTTP client for the content platform REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/canonical/content-platform/internal/types"
	"github.com/canonical/content-platform/pkg/accounts"
	"github.com/canonical/content-platform/pkg/content"
	"github.com/canonical/content-platform/pkg/invites"
	"github.com/canonical/content-platform/pkg/tasks"
)

// APIError is a non successful reply of the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		cl.http = c
	}
}

// WithTokenSource authenticates every request with a bearer token.
func WithTokenSource(ctx context.Context, ts oauth2.TokenSource) ClientOption {
	return func(cl *Client) {
		cl.http = oauth2.NewClient(ctx, ts)
	}
}

type Client struct {
	endpoint string
	http     *http.Client
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	env := new(envelope)
	if err := json.NewDecoder(resp.Body).Decode(env); err != nil {
		if resp.StatusCode >= 400 {
			return &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode >= 400 || !env.Success {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Error}
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}

	return nil
}

func accountPath(accountID string, parts ...string) string {
	p := "/accounts/" + url.PathEscape(accountID)
	for _, part := range parts {
		p += "/" + url.PathEscape(part)
	}
	return p
}

func (c *Client) ListAccounts(ctx context.Context) ([]*types.AccountWithRole, error) {
	var out []*types.AccountWithRole
	return out, c.do(ctx, http.MethodGet, "/accounts", nil, &out)
}

func (c *Client) DefaultAccount(ctx context.Context) (*types.AccountWithRole, error) {
	out := new(types.AccountWithRole)
	return out, c.do(ctx, http.MethodGet, "/accounts/default", nil, out)
}

func (c *Client) GetAccount(ctx context.Context, accountID string) (*types.AccountWithRole, error) {
	out := new(types.AccountWithRole)
	return out, c.do(ctx, http.MethodGet, accountPath(accountID), nil, out)
}

func (c *Client) CreateAccount(ctx context.Context, req *accounts.CreateAccountRequest) (*types.AccountWithRole, error) {
	out := new(types.AccountWithRole)
	return out, c.do(ctx, http.MethodPost, "/accounts", req, out)
}

func (c *Client) UpdateAccount(ctx context.Context, accountID string, req *accounts.UpdateAccountRequest) (*types.Account, error) {
	out := new(types.Account)
	return out, c.do(ctx, http.MethodPut, accountPath(accountID), req, out)
}

func (c *Client) ListMembers(ctx context.Context, accountID string) ([]*types.Membership, error) {
	var out []*types.Membership
	return out, c.do(ctx, http.MethodGet, accountPath(accountID, "members"), nil, &out)
}

func (c *Client) UpdateMemberRole(ctx context.Context, accountID, memberID string, role types.Role) (*types.Membership, error) {
	out := new(types.Membership)
	req := &accounts.UpdateMemberRoleRequest{Role: role}
	return out, c.do(ctx, http.MethodPut, accountPath(accountID, "members", memberID), req, out)
}

func (c *Client) RemoveMember(ctx context.Context, accountID, memberID string) error {
	return c.do(ctx, http.MethodDelete, accountPath(accountID, "members", memberID), nil, nil)
}

func (c *Client) CreateInvite(ctx context.Context, accountID string, req *invites.CreateInviteRequest) (*types.Invite, error) {
	out := new(types.Invite)
	return out, c.do(ctx, http.MethodPost, accountPath(accountID, "invite"), req, out)
}

func (c *Client) ListInvites(ctx context.Context, accountID string) ([]*types.Invite, error) {
	var out []*types.Invite
	return out, c.do(ctx, http.MethodGet, accountPath(accountID, "invites"), nil, &out)
}

func (c *Client) CancelInvite(ctx context.Context, accountID, inviteID string) (*types.Invite, error) {
	out := new(types.Invite)
	return out, c.do(ctx, http.MethodDelete, accountPath(accountID, "invites", inviteID), nil, out)
}

func (c *Client) AcceptInvite(ctx context.Context, inviteID string) (*types.Membership, error) {
	out := new(types.Membership)
	req := &invites.AcceptInviteRequest{InviteID: inviteID}
	return out, c.do(ctx, http.MethodPost, "/accounts/join", req, out)
}

func (c *Client) ListContent(ctx context.Context, accountID string) ([]*types.Content, error) {
	var out []*types.Content
	return out, c.do(ctx, http.MethodGet, accountPath(accountID, "content"), nil, &out)
}

func (c *Client) CreateContent(ctx context.Context, accountID string, req *content.CreateContentRequest) (*types.Content, error) {
	out := new(types.Content)
	return out, c.do(ctx, http.MethodPost, accountPath(accountID, "content"), req, out)
}

func (c *Client) UpdateContent(ctx context.Context, accountID, contentID string, req *content.UpdateContentRequest) (*types.Content, error) {
	out := new(types.Content)
	return out, c.do(ctx, http.MethodPut, accountPath(accountID, "content", contentID), req, out)
}

func (c *Client) DeleteContent(ctx context.Context, accountID, contentID string) error {
	return c.do(ctx, http.MethodDelete, accountPath(accountID, "content", contentID), nil, nil)
}

func (c *Client) GetPublicContent(ctx context.Context, slug string) (*types.Content, error) {
	out := new(types.Content)
	return out, c.do(ctx, http.MethodGet, "/public/content/"+url.PathEscape(slug), nil, out)
}

func (c *Client) ScheduleTask(ctx context.Context, req *tasks.ScheduleRequest) (*types.Task, error) {
	out := new(types.Task)
	return out, c.do(ctx, http.MethodPost, "/qstash/schedule", req, out)
}

func (c *Client) ListTasks(ctx context.Context) ([]*types.Task, error) {
	var out []*types.Task
	return out, c.do(ctx, http.MethodGet, "/qstash/tasks", nil, &out)
}

func (c *Client) ListNotifications(ctx context.Context) ([]*types.Notification, error) {
	var out []*types.Notification
	return out, c.do(ctx, http.MethodGet, "/notifications", nil, &out)
}

// NewClient targets endpoint, adding the http scheme when missing.
func NewClient(endpoint string, opts ...ClientOption) *Client {
	if !strings.HasPrefix(endpoint, "http") {
		endpoint = "http://" + endpoint
	}

	c := new(Client)
	c.endpoint = strings.TrimSuffix(endpoint, "/")
	c.http = &http.Client{Timeout: 30 * time.Second}

	for _, opt := range opts {
		opt(c)
	}

	return c
}
