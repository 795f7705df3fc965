// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/canonical/content-platform/internal/types"
	"github.com/canonical/content-platform/pkg/accounts"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage accounts",
}

var createAccountCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new shared account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		c, err := getClient(ctx)
		if err != nil {
			return err
		}

		kind, _ := cmd.Flags().GetString("type")
		description, _ := cmd.Flags().GetString("description")

		a, err := c.CreateAccount(ctx, &accounts.CreateAccountRequest{
			Name:        args[0],
			Type:        types.AccountType(kind),
			Description: description,
		})
		if err != nil {
			return fmt.Errorf("failed to create account: %w", err)
		}

		fmt.Printf("Account created: %s (ID: %s)\n", a.Name, a.ID)
		return nil
	},
}

var listAccountsCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts of the authenticated user",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		c, err := getClient(ctx)
		if err != nil {
			return err
		}

		list, err := c.ListAccounts(ctx)
		if err != nil {
			return fmt.Errorf("failed to list accounts: %w", err)
		}

		w := newTable()
		fmt.Fprintln(w, "ID\tNAME\tTYPE\tROLE\tCREATED_AT")
		for _, a := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", a.ID, a.Name, a.Type, a.UserRole, a.CreatedAt)
		}
		w.Flush()
		return nil
	},
}

var defaultAccountCmd = &cobra.Command{
	Use:   "default",
	Short: "Show the personal account, creating it when missing",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		c, err := getClient(ctx)
		if err != nil {
			return err
		}

		a, err := c.DefaultAccount(ctx)
		if err != nil {
			return fmt.Errorf("failed to get default account: %w", err)
		}

		fmt.Printf("Default account: %s (ID: %s)\n", a.Name, a.ID)
		return nil
	},
}

var listMembersCmd = &cobra.Command{
	Use:   "members [account-id]",
	Short: "List members of an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		c, err := getClient(ctx)
		if err != nil {
			return err
		}

		members, err := c.ListMembers(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to list members: %w", err)
		}

		w := newTable()
		fmt.Fprintln(w, "USER_ID\tROLE\tINVITED_BY\tJOINED_AT")
		for _, m := range members {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.UserID, m.Role, m.InvitedBy, m.JoinedAt)
		}
		w.Flush()
		return nil
	},
}

var updateMemberRoleCmd = &cobra.Command{
	Use:   "set-role [account-id] [user-id] [role]",
	Short: "Change the role of a member",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		c, err := getClient(ctx)
		if err != nil {
			return err
		}

		m, err := c.UpdateMemberRole(ctx, args[0], args[1], types.Role(args[2]))
		if err != nil {
			return fmt.Errorf("failed to update member role: %w", err)
		}

		fmt.Printf("Member %s is now %s\n", m.UserID, m.Role)
		return nil
	},
}

var removeMemberCmd = &cobra.Command{
	Use:   "remove-member [account-id] [user-id]",
	Short: "Remove a member from an account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		c, err := getClient(ctx)
		if err != nil {
			return err
		}

		if err := c.RemoveMember(ctx, args[0], args[1]); err != nil {
			return fmt.Errorf("failed to remove member: %w", err)
		}

		fmt.Printf("Member removed: %s\n", args[1])
		return nil
	},
}

func init() {
	createAccountCmd.Flags().String("type", string(types.AccountTeam), "Account type (family, team or enterprise)")
	createAccountCmd.Flags().String("description", "", "Account description")

	accountCmd.AddCommand(createAccountCmd)
	accountCmd.AddCommand(listAccountsCmd)
	accountCmd.AddCommand(defaultAccountCmd)
	accountCmd.AddCommand(listMembersCmd)
	accountCmd.AddCommand(updateMemberRoleCmd)
	accountCmd.AddCommand(removeMemberCmd)

	rootCmd.AddCommand(accountCmd)
}
