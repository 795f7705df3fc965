// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"golang.org/x/oauth2"

	"github.com/canonical/content-platform/client"
)

// getClient returns an API client authenticated with the --token flag.
func getClient(ctx context.Context) (*client.Client, error) {
	if accessToken == "" {
		return nil, fmt.Errorf("an access token is required, see the token command or set --token")
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
	return client.NewClient(endpoint, client.WithTokenSource(ctx, ts)), nil
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
}
