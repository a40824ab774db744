package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"slate/internal/config"
	"slate/internal/continuity"
	"slate/internal/logging"
	"slate/internal/shot"
)

const (
	formatText  = "text"
	formatTable = "table"
	formatJSON  = "json"
)

type analyzeResult struct {
	File    string                    `json:"file"`
	Shots   int                       `json:"shots"`
	Summary continuity.SeverityCounts `json:"summary"`
	Issues  []continuity.Issue        `json:"issues"`
}

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var format string
	var trackProject bool

	cmd := &cobra.Command{
		Use:   "analyze <shots-file>",
		Short: "Check a shot list for continuity issues",
		Long: "Scan adjacent shots in a JSON or YAML shot list for lighting jumps, " +
			"costume changes, and screen-direction mismatches. Dismissed issues are omitted.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := resolveFormat(format, ctx.JSONMode())
			if err != nil {
				return err
			}
			path, err := config.ExpandPath(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("resolve shot list path: %w", err)
			}
			shots, err := shot.Load(path)
			if err != nil {
				return err
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			analyzer, err := ctx.analyzer()
			if err != nil {
				return err
			}

			logger := logging.NewComponentLogger(ctx.ensureLogger(), "analyze")
			sampler := logging.NewProgressSampler(cfg.Continuity.ProgressBucket)
			issues, err := analyzer.Analyze(cmd.Context(), shots, func(percent float64) {
				if sampler.ShouldLog(percent, path) {
					logger.Debug("continuity scan progress",
						logging.Float64("percent", percent),
						logging.String("file", path))
				}
			})
			if err != nil {
				return fmt.Errorf("analyze %s: %w", path, err)
			}

			if trackProject {
				tracker, err := ctx.tracker()
				if err != nil {
					return err
				}
				tracker.TrackProject(cmd.Context())
			}

			result := analyzeResult{
				File:    path,
				Shots:   len(shots),
				Summary: continuity.CountBySeverity(issues),
				Issues:  issues,
			}
			out := cmd.OutOrStdout()
			switch mode {
			case formatJSON:
				return writeJSON(cmd, result)
			case formatTable:
				if len(issues) == 0 {
					fmt.Fprintln(out, continuity.NoIssuesMessage)
					return nil
				}
				fmt.Fprintln(out, renderIssueTable(issues, shouldColorize(out)))
				fmt.Fprintf(out, "%d critical, %d warning, %d info\n",
					result.Summary.Critical, result.Summary.Warning, result.Summary.Info)
				return nil
			default:
				fmt.Fprintln(out, continuity.GenerateReport(issues))
				return nil
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "Output format: text, table, or json")
	cmd.Flags().BoolVar(&trackProject, "track-project", false, "Count this run as an analyzed project in the style profile")
	return cmd
}

func resolveFormat(format string, jsonMode bool) (string, error) {
	if jsonMode {
		return formatJSON, nil
	}
	switch mode := strings.ToLower(strings.TrimSpace(format)); mode {
	case formatText, formatTable, formatJSON:
		return mode, nil
	case "":
		return formatText, nil
	default:
		return "", fmt.Errorf("unsupported format %q (use text, table, or json)", format)
	}
}

func renderIssueTable(issues []continuity.Issue, colorize bool) string {
	rows := make([][]string, 0, len(issues))
	for i, issue := range issues {
		scene := "-"
		if issue.SceneLabel != nil {
			scene = *issue.SceneLabel
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			severityLabel(issue.Severity, colorize),
			string(issue.Kind),
			scene,
			fmt.Sprintf("%s -> %s", issue.ShotA.ShotLabel(), issue.ShotB.ShotLabel()),
			issue.ID,
			issue.SuggestedFix,
		})
	}
	return renderTable(tableSpec{
		title:    "Continuity Issues",
		headers:  []string{"#", "Severity", "Kind", "Scene", "Shots", "ID", "Suggested Fix"},
		aligns:   []columnAlignment{alignRight},
		widthMax: map[int]int{6: 60},
	}, rows)
}
