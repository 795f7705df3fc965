// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2/clientcredentials"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Get an API access token using the client credentials flow",
	Long: `Get an API access token using the client credentials flow.

The token endpoint is discovered from --issuer-url when --token-url is not set,
the printed token can be passed to other commands with --token.`,
	RunE: runToken,
}

func runToken(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	clientID, _ := cmd.Flags().GetString("client-id")
	clientSecret, _ := cmd.Flags().GetString("client-secret")
	tokenURL, _ := cmd.Flags().GetString("token-url")
	issuerURL, _ := cmd.Flags().GetString("issuer-url")
	scopes, _ := cmd.Flags().GetStringSlice("scopes")
	export, _ := cmd.Flags().GetBool("export")

	if clientID == "" || clientSecret == "" {
		return fmt.Errorf("--client-id and --client-secret are required")
	}

	if tokenURL == "" {
		if issuerURL == "" {
			return fmt.Errorf("either --token-url or --issuer-url must be provided")
		}

		provider, err := oidc.NewProvider(ctx, issuerURL)
		if err != nil {
			return fmt.Errorf("failed to discover issuer %s: %w", issuerURL, err)
		}
		tokenURL = provider.Endpoint().TokenURL
	}

	creds := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
		Scopes:       scopes,
	}

	token, err := creds.Token(ctx)
	if err != nil {
		return fmt.Errorf("failed to get token: %w", err)
	}

	if export {
		fmt.Fprintf(cmd.OutOrStdout(), "export CONTENT_PLATFORM_TOKEN=%s\n", token.AccessToken)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), token.AccessToken)
	return nil
}

func init() {
	tokenCmd.Flags().String("client-id", os.Getenv("OIDC_CLIENT_ID"), "OAuth2 client id")
	tokenCmd.Flags().String("client-secret", os.Getenv("OIDC_CLIENT_SECRET"), "OAuth2 client secret")
	tokenCmd.Flags().String("token-url", "", "Token endpoint")
	tokenCmd.Flags().String("issuer-url", os.Getenv("OIDC_ISSUER"), "Issuer URL used for OIDC discovery")
	tokenCmd.Flags().StringSlice("scopes", nil, "Scopes (comma-separated)")
	tokenCmd.Flags().Bool("export", false, "Print a shell export line for CONTENT_PLATFORM_TOKEN")

	rootCmd.AddCommand(tokenCmd)
}
