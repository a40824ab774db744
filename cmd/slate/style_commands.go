package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"slate/internal/config"
	"slate/internal/fileutil"
	"slate/internal/style"
	"slate/internal/textutil"
)

const disabledHint = "Style learning is disabled; run `slate style enable` to opt in"

func newStyleCommand(ctx *commandContext) *cobra.Command {
	styleCmd := &cobra.Command{
		Use:   "style",
		Short: "Manage opt-in style learning",
	}

	styleCmd.AddCommand(newStyleStatusCommand(ctx))
	styleCmd.AddCommand(newStyleToggleCommand(ctx, "enable", true))
	styleCmd.AddCommand(newStyleToggleCommand(ctx, "disable", false))
	styleCmd.AddCommand(newStyleOptInShownCommand(ctx))
	styleCmd.AddCommand(newStyleTrackCommand(ctx))
	styleCmd.AddCommand(newStyleProjectCommand(ctx))
	styleCmd.AddCommand(newStyleSuggestCommand(ctx))
	styleCmd.AddCommand(newStyleResetCommand(ctx))
	styleCmd.AddCommand(newStyleExportCommand(ctx))
	styleCmd.AddCommand(newStyleImportCommand(ctx))
	styleCmd.AddCommand(newStyleSummaryCommand(ctx))

	return styleCmd
}

func newStyleStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether style learning is enabled",
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, err := ctx.tracker()
			if err != nil {
				return err
			}
			enabled := tracker.IsEnabled(cmd.Context())
			shown := tracker.HasShownOptIn(cmd.Context())
			summary, hasSummary := tracker.Summary(cmd.Context())

			if ctx.JSONMode() {
				payload := map[string]any{"enabled": enabled, "optInShown": shown}
				if hasSummary {
					payload["summary"] = summary
				}
				return writeJSON(cmd, payload)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			kind := statusWarn
			if enabled {
				kind = statusOK
			}
			fmt.Fprintln(out, renderStatusLine("Style learning", kind, textutil.Ternary(enabled, "Enabled", "Disabled"), colorize))
			fmt.Fprintln(out, renderStatusLine("Opt-in prompt shown", statusInfo, yesNo(shown), colorize))
			if hasSummary {
				fmt.Fprintln(out, renderStatusLine("Projects analyzed", statusInfo, strconv.Itoa(summary.ProjectsAnalyzed), colorize))
				fmt.Fprintln(out, renderStatusLine("Shots tracked", statusInfo, strconv.Itoa(summary.ShotsTracked), colorize))
			}
			return nil
		},
	}
}

func newStyleToggleCommand(ctx *commandContext, use string, enabled bool) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: textutil.Title(use) + " style learning",
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, err := ctx.tracker()
			if err != nil {
				return err
			}
			if err := tracker.SetEnabled(cmd.Context(), enabled); err != nil {
				return err
			}
			if ctx.JSONMode() {
				return writeJSON(cmd, map[string]any{"enabled": enabled})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Style learning %s\n", textutil.Ternary(enabled, "enabled", "disabled"))
			return nil
		},
	}
}

func newStyleOptInShownCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "opt-in-shown",
		Short: "Record that the opt-in prompt was presented",
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, err := ctx.tracker()
			if err != nil {
				return err
			}
			if err := tracker.MarkOptInShown(cmd.Context()); err != nil {
				return err
			}
			if ctx.JSONMode() {
				return writeJSON(cmd, map[string]any{"optInShown": true})
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Opt-in prompt marked as shown")
			return nil
		},
	}
}

func newStyleTrackCommand(ctx *commandContext) *cobra.Command {
	var shotType string

	cmd := &cobra.Command{
		Use:   "track <pattern-type> <value>",
		Short: "Record one creative choice",
		Long: "Record one creative choice. Pattern types: shotType, lensChoice, lighting, " +
			"colorGrade, cameraMovement. lensChoice requires --shot-type.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pt, err := style.ParsePatternType(args[0])
			if err != nil {
				return err
			}
			if pt == style.PatternLensChoice && strings.TrimSpace(shotType) == "" {
				return errors.New("lensChoice requires --shot-type")
			}
			tracker, err := ctx.tracker()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !tracker.IsEnabled(cmd.Context()) {
				fmt.Fprintln(out, disabledHint)
				return nil
			}
			tracker.TrackPattern(cmd.Context(), pt, args[1], style.Context{ShotType: shotType})
			if ctx.JSONMode() {
				return writeJSON(cmd, map[string]any{"patternType": pt, "value": args[1]})
			}
			fmt.Fprintf(out, "Tracked %s = %s\n", pt, args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&shotType, "shot-type", "", "Shot type the lens was used for")
	return cmd
}

func newStyleProjectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "project",
		Short: "Count one analyzed project",
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, err := ctx.tracker()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			enabled := tracker.IsEnabled(cmd.Context())
			if enabled {
				tracker.TrackProject(cmd.Context())
			}
			if ctx.JSONMode() {
				return writeJSON(cmd, map[string]any{"counted": enabled})
			}
			if !enabled {
				fmt.Fprintln(out, disabledHint)
				return nil
			}
			fmt.Fprintln(out, "Project counted")
			return nil
		},
	}
}

func newStyleSuggestCommand(ctx *commandContext) *cobra.Command {
	var sc style.SuggestionContext

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Show suggestions drawn from your tracked style",
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, err := ctx.tracker()
			if err != nil {
				return err
			}
			suggestion, ok := tracker.Suggestion(cmd.Context(), sc)
			if ctx.JSONMode() {
				payload := map[string]any{"suggestion": nil}
				if ok {
					payload["suggestion"] = suggestion
				}
				return writeJSON(cmd, payload)
			}
			out := cmd.OutOrStdout()
			if !ok {
				cfg, _ := ctx.ensureConfig()
				fmt.Fprintln(out, noSuggestionMessage(tracker.IsEnabled(cmd.Context()), cfg))
				return nil
			}
			fmt.Fprintln(out, suggestion)
			return nil
		},
	}

	cmd.Flags().StringVar(&sc.ShotType, "shot-type", "", "Shot type to suggest a lens for")
	cmd.Flags().StringVar(&sc.SceneEmotion, "emotion", "", "Scene emotion; enables the lighting suggestion")
	cmd.Flags().StringVar(&sc.Lighting, "lighting", "", "Current lighting setup")
	return cmd
}

func noSuggestionMessage(enabled bool, cfg *config.Config) string {
	if !enabled {
		return disabledHint
	}
	minSamples := config.Default().Style.MinSamples
	if cfg != nil {
		minSamples = cfg.Style.MinSamples
	}
	return fmt.Sprintf("No suggestion yet (needs at least %d tracked shots with matching data)", minSamples)
}

func newStyleResetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Discard every tracked choice",
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, err := ctx.tracker()
			if err != nil {
				return err
			}
			if err := tracker.ResetProfile(cmd.Context()); err != nil {
				return err
			}
			if ctx.JSONMode() {
				return writeJSON(cmd, map[string]any{"reset": true})
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Style profile reset")
			return nil
		},
	}
}

func newStyleExportCommand(ctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the style profile as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, err := ctx.tracker()
			if err != nil {
				return err
			}
			data, err := tracker.ExportProfile(cmd.Context())
			if errors.Is(err, style.ErrNotEnabled) {
				return errors.New(disabledHint)
			}
			if err != nil {
				return err
			}
			if outputPath == "" {
				fmt.Fprintln(cmd.OutOrStdout(), data)
				return nil
			}
			target, err := config.ExpandPath(outputPath)
			if err != nil {
				return fmt.Errorf("resolve output path: %w", err)
			}
			if err := fileutil.WriteFileAtomic(target, []byte(data+"\n"), 0o644); err != nil {
				return fmt.Errorf("write profile: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote style profile to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination file (default: stdout)")
	return cmd
}

func newStyleImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <profile.json|->",
		Short: "Replace the style profile with an exported one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			tracker, err := ctx.tracker()
			if err != nil {
				return err
			}
			profile, err := tracker.ImportProfile(cmd.Context(), data)
			if errors.Is(err, style.ErrNotEnabled) {
				return errors.New(disabledHint)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported style profile (%d shots, %d projects)\n",
				profile.TotalShots, profile.TotalProjects)
			return nil
		},
	}
}

func readInput(stdin io.Reader, arg string) ([]byte, error) {
	if arg == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	path, err := config.ExpandPath(arg)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func newStyleSummaryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show tracked totals and the most frequent choices",
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, err := ctx.tracker()
			if err != nil {
				return err
			}
			summary, ok := tracker.Summary(cmd.Context())
			if ctx.JSONMode() {
				if !ok {
					return writeJSON(cmd, nil)
				}
				return writeJSON(cmd, summary)
			}
			out := cmd.OutOrStdout()
			if !ok {
				fmt.Fprintln(out, disabledHint)
				return nil
			}
			profile, err := tracker.Profile(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Projects analyzed: %d\nShots tracked: %d\n",
				summary.ProjectsAnalyzed, summary.ShotsTracked)
			if profile.Patterns.Empty() {
				return nil
			}
			fmt.Fprintln(out, renderPatternTable(profile))
			return nil
		},
	}
}

func renderPatternTable(profile *style.Profile) string {
	var rows [][]string
	add := func(label string, counts style.Counts) {
		for _, e := range counts.Entries() {
			rows = append(rows, []string{label, e.Value, strconv.Itoa(e.Count)})
		}
	}
	add("Shot type", profile.Patterns.ShotTypes)
	for _, shotType := range profile.Patterns.LensChoices.Keys() {
		add("Lens ("+shotType+")", profile.Patterns.LensChoices.Get(shotType))
	}
	add("Lighting", profile.Patterns.Lighting)
	add("Color grade", profile.Patterns.ColorGrade)
	add("Camera movement", profile.Patterns.CameraMovement)

	return renderTable(tableSpec{
		title:   "Tracked Choices",
		headers: []string{"Pattern", "Value", "Count"},
		aligns:  []columnAlignment{alignLeft, alignLeft, alignRight},
	}, rows)
}
