// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/canonical/content-platform/internal/types"
	"github.com/canonical/content-platform/pkg/invites"
)

var inviteCmd = &cobra.Command{
	Use:   "invite",
	Short: "Manage account invitations",
}

var createInviteCmd = &cobra.Command{
	Use:   "create [account-id] [email]",
	Short: "Invite someone to an account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		c, err := getClient(ctx)
		if err != nil {
			return err
		}

		role, _ := cmd.Flags().GetString("role")

		inv, err := c.CreateInvite(ctx, args[0], &invites.CreateInviteRequest{
			Email: args[1],
			Role:  types.Role(role),
		})
		if err != nil {
			return fmt.Errorf("failed to create invite: %w", err)
		}

		fmt.Printf("Invite created: %s (expires %s)\n", inv.ID, inv.ExpiresAt)
		return nil
	},
}

var listInvitesCmd = &cobra.Command{
	Use:   "list [account-id]",
	Short: "List pending invites of an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		c, err := getClient(ctx)
		if err != nil {
			return err
		}

		list, err := c.ListInvites(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to list invites: %w", err)
		}

		w := newTable()
		fmt.Fprintln(w, "ID\tEMAIL\tROLE\tINVITED_BY\tEXPIRES_AT")
		for _, inv := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", inv.ID, inv.Email, inv.Role, inv.InvitedBy, inv.ExpiresAt)
		}
		w.Flush()
		return nil
	},
}

var acceptInviteCmd = &cobra.Command{
	Use:   "accept [invite-id]",
	Short: "Join an account through an invite",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		c, err := getClient(ctx)
		if err != nil {
			return err
		}

		m, err := c.AcceptInvite(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to accept invite: %w", err)
		}

		fmt.Printf("Joined account %s as %s\n", m.AccountID, m.Role)
		return nil
	},
}

var cancelInviteCmd = &cobra.Command{
	Use:   "cancel [account-id] [invite-id]",
	Short: "Cancel a pending invite",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		c, err := getClient(ctx)
		if err != nil {
			return err
		}

		if _, err := c.CancelInvite(ctx, args[0], args[1]); err != nil {
			return fmt.Errorf("failed to cancel invite: %w", err)
		}

		fmt.Printf("Invite cancelled: %s\n", args[1])
		return nil
	},
}

func init() {
	createInviteCmd.Flags().String("role", string(types.RoleViewer), "Role granted on acceptance")

	inviteCmd.AddCommand(createInviteCmd)
	inviteCmd.AddCommand(listInvitesCmd)
	inviteCmd.AddCommand(acceptInviteCmd)
	inviteCmd.AddCommand(cancelInviteCmd)

	rootCmd.AddCommand(inviteCmd)
}
