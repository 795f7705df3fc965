// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List background tasks of the authenticated user",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		c, err := getClient(ctx)
		if err != nil {
			return err
		}

		list, err := c.ListTasks(ctx)
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		w := newTable()
		fmt.Fprintln(w, "ID\tTYPE\tSTATUS\tRETRIES\tSCHEDULED_FOR\tERROR")
		for _, t := range list {
			scheduled := "-"
			if t.ScheduledFor != nil {
				scheduled = t.ScheduledFor.String()
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n", t.ID, t.Type, t.Status, t.RetryCount, scheduled, t.Error)
		}
		w.Flush()
		return nil
	},
}

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "List notifications of the authenticated user",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		c, err := getClient(ctx)
		if err != nil {
			return err
		}

		list, err := c.ListNotifications(ctx)
		if err != nil {
			return fmt.Errorf("failed to list notifications: %w", err)
		}

		w := newTable()
		fmt.Fprintln(w, "CREATED_AT\tTITLE\tMESSAGE")
		for _, n := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\n", n.CreatedAt, n.Title, n.Message)
		}
		w.Flush()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(notificationsCmd)
}
