package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newDismissCommand(ctx *commandContext) *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "dismiss <issue-id>",
		Short: "Acknowledge an issue so future scans omit it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analyzer, err := ctx.analyzer()
			if err != nil {
				return err
			}
			id := strings.TrimSpace(args[0])
			if err := analyzer.Dismiss(cmd.Context(), id, reason); err != nil {
				return err
			}
			if ctx.JSONMode() {
				return writeJSON(cmd, map[string]any{"dismissed": id})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Dismissed %s\n", id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&reason, "reason", "r", "", "Why the issue is acceptable (logged only)")
	return cmd
}

func newDismissedCommand(ctx *commandContext) *cobra.Command {
	dismissedCmd := &cobra.Command{
		Use:   "dismissed",
		Short: "Inspect and reset dismissed issues",
	}

	dismissedCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List dismissed issue ids",
		RunE: func(cmd *cobra.Command, args []string) error {
			analyzer, err := ctx.analyzer()
			if err != nil {
				return err
			}
			ids := analyzer.ListDismissed(cmd.Context())
			if ctx.JSONMode() {
				return writeJSON(cmd, ids)
			}
			out := cmd.OutOrStdout()
			if len(ids) == 0 {
				fmt.Fprintln(out, "No dismissed issues")
				return nil
			}
			for _, id := range ids {
				fmt.Fprintln(out, id)
			}
			return nil
		},
	})

	dismissedCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Forget every dismissal",
		RunE: func(cmd *cobra.Command, args []string) error {
			analyzer, err := ctx.analyzer()
			if err != nil {
				return err
			}
			count := len(analyzer.ListDismissed(cmd.Context()))
			if err := analyzer.ClearDismissed(cmd.Context()); err != nil {
				return err
			}
			if ctx.JSONMode() {
				return writeJSON(cmd, map[string]any{"cleared": count})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d dismissed issue(s)\n", count)
			return nil
		},
	})

	return dismissedCmd
}
