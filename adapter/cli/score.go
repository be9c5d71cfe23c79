package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	scoringCommands "github.com/focusmirror/focusmirror/internal/scoring/application/commands"
	scoringQueries "github.com/focusmirror/focusmirror/internal/scoring/application/queries"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Compute the weekly focus score",
	Long: `Compute (or recompute) the focus score for a week by matching
planned blocks against synced calendar events.

Examples:
  focusmirror score
  focusmirror score --week 2026-08-24
  focusmirror score --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireContainer()
		if err != nil {
			return err
		}
		week, err := parseWeekFlag(cmd)
		if err != nil {
			return err
		}

		result, err := c.ComputeScore.Handle(cmd.Context(), scoringCommands.ComputeWeeklyScoreCommand{
			UserID:    c.UserID,
			WeekStart: week,
		})
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(cmd, result)
		}
		printScore(cmd, result)
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent weekly scores",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireContainer()
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")
		if limit <= 0 {
			limit = c.Config.HistoryLimit
		}

		items, err := c.ScoreHistory.Handle(cmd.Context(), scoringQueries.GetScoreHistoryQuery{
			UserID: c.UserID,
			Limit:  limit,
		})
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(cmd, items)
		}
		if len(items) == 0 {
			cmd.Println("No weekly scores recorded yet.")
			return nil
		}
		for _, item := range items {
			cmd.Printf("%-16s  score %3d  +%d XP  streak %d  (%.1fh / %.1fh)\n",
				item.WeekLabel, item.FocusScore, item.XPEarned, item.Streak,
				item.TotalMatchedHours, item.TotalPlannedHours)
		}
		return nil
	},
}

func printScore(cmd *cobra.Command, result *scoringCommands.WeeklyScoreResult) {
	cmd.Printf("\n  Week %s\n", result.WeekLabel)
	cmd.Println(strings.Repeat("─", 50))

	if result.Message != "" {
		cmd.Printf("  %s\n\n", result.Message)
		return
	}

	cmd.Printf("  Focus Score   %d / 100\n", result.FocusScore)
	cmd.Printf("  XP Earned     +%d (lifetime %d)\n", result.XPEarned, result.XPTotal)
	cmd.Printf("  Streak        %d week(s), longest %d\n", result.CurrentStreak, result.LongestStreak)
	cmd.Printf("  Time          %.1fh matched of %.1fh planned\n\n", result.TotalMatchedHours, result.TotalPlannedHours)

	for _, g := range result.PerGoal {
		cmd.Printf("  %-30s [%s]  %3d%%  %.1fh / %.1fh\n",
			g.Title, g.Priority, g.MatchPercent, g.ActualHours, g.PlannedHours)
	}
	cmd.Println()
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func init() {
	scoreCmd.Flags().String("week", "", "week to score (YYYY-MM-DD, any day of the week)")
	scoreCmd.Flags().Bool("json", false, "output JSON")
	historyCmd.Flags().Int("limit", 0, "number of weeks to show")
	historyCmd.Flags().Bool("json", false, "output JSON")
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(historyCmd)
}
