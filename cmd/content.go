// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/canonical/content-platform/internal/types"
	"github.com/canonical/content-platform/pkg/content"
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Manage account content",
}

var listContentCmd = &cobra.Command{
	Use:   "list [account-id]",
	Short: "List content of an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		c, err := getClient(ctx)
		if err != nil {
			return err
		}

		items, err := c.ListContent(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to list content: %w", err)
		}

		w := newTable()
		fmt.Fprintln(w, "ID\tSLUG\tKIND\tSTATUS\tPUBLIC\tTITLE")
		for _, i := range items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%v\t%s\n", i.ID, i.Slug, i.Kind, i.Status, i.IsPublic, i.Title)
		}
		w.Flush()
		return nil
	},
}

var createContentCmd = &cobra.Command{
	Use:   "create [account-id] [title]",
	Short: "Create a content item, body is read from --body-file when set",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		c, err := getClient(ctx)
		if err != nil {
			return err
		}

		kind, _ := cmd.Flags().GetString("kind")
		slug, _ := cmd.Flags().GetString("slug")
		status, _ := cmd.Flags().GetString("status")
		public, _ := cmd.Flags().GetBool("public")
		bodyFile, _ := cmd.Flags().GetString("body-file")
		at, _ := cmd.Flags().GetString("scheduled-for")

		req := &content.CreateContentRequest{
			Kind:     types.ContentKind(kind),
			Title:    args[1],
			Slug:     slug,
			Status:   types.ContentStatus(status),
			IsPublic: public,
		}

		if bodyFile != "" {
			b, err := os.ReadFile(bodyFile)
			if err != nil {
				return fmt.Errorf("failed to read body: %w", err)
			}
			req.Body = string(b)
		}

		if at != "" {
			t, err := time.Parse(time.RFC3339, at)
			if err != nil {
				return fmt.Errorf("invalid --scheduled-for, expected RFC3339: %w", err)
			}
			req.ScheduledFor = &t
		}

		item, err := c.CreateContent(ctx, args[0], req)
		if err != nil {
			return fmt.Errorf("failed to create content: %w", err)
		}

		fmt.Printf("Content created: %s (ID: %s, status: %s)\n", item.Slug, item.ID, item.Status)
		return nil
	},
}

var publishContentCmd = &cobra.Command{
	Use:   "publish [account-id] [content-id]",
	Short: "Publish a content item immediately",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		c, err := getClient(ctx)
		if err != nil {
			return err
		}

		status := types.ContentPublished
		item, err := c.UpdateContent(ctx, args[0], args[1], &content.UpdateContentRequest{Status: &status})
		if err != nil {
			return fmt.Errorf("failed to publish content: %w", err)
		}

		fmt.Printf("Content published: %s\n", item.Slug)
		return nil
	},
}

var deleteContentCmd = &cobra.Command{
	Use:   "delete [account-id] [content-id]",
	Short: "Delete a content item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		c, err := getClient(ctx)
		if err != nil {
			return err
		}

		if err := c.DeleteContent(ctx, args[0], args[1]); err != nil {
			return fmt.Errorf("failed to delete content: %w", err)
		}

		fmt.Printf("Content deleted: %s\n", args[1])
		return nil
	},
}

func init() {
	createContentCmd.Flags().String("kind", string(types.ContentBlogPost), "Content kind (note or blog_post)")
	createContentCmd.Flags().String("slug", "", "Public slug, derived from the title when empty")
	createContentCmd.Flags().String("status", string(types.ContentDraft), "Initial status (draft, scheduled or published)")
	createContentCmd.Flags().Bool("public", false, "Expose the item on the public endpoint once published")
	createContentCmd.Flags().String("body-file", "", "File holding the content body")
	createContentCmd.Flags().String("scheduled-for", "", "Publication time for scheduled content (RFC3339)")

	contentCmd.AddCommand(listContentCmd)
	contentCmd.AddCommand(createContentCmd)
	contentCmd.AddCommand(publishContentCmd)
	contentCmd.AddCommand(deleteContentCmd)

	rootCmd.AddCommand(contentCmd)
}
