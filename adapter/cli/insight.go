package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	insightCommands "github.com/focusmirror/focusmirror/internal/insight/application/commands"
)

var insightCmd = &cobra.Command{
	Use:   "insight",
	Short: "Show the weekly insight",
	Long: `Show the generated narrative and suggestions for a week. The
insight is derived from the stored weekly summary and cached; rescoring
a week regenerates it.

Examples:
  focusmirror insight
  focusmirror insight --week 2026-08-24 --svg-out card.svg`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireContainer()
		if err != nil {
			return err
		}
		week, err := parseWeekFlag(cmd)
		if err != nil {
			return err
		}

		result, err := c.GenerateInsight.Handle(cmd.Context(), insightCommands.GenerateInsightCommand{
			UserID:    c.UserID,
			WeekStart: week,
		})
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(cmd, result)
		}

		cmd.Println()
		cmd.Println(result.Summary)
		cmd.Println()
		for i, s := range result.Suggestions {
			cmd.Printf("  %d. %s\n", i+1, s)
		}
		cmd.Println()

		if svgOut, _ := cmd.Flags().GetString("svg-out"); svgOut != "" {
			if err := os.WriteFile(svgOut, []byte(result.InfographicSVG), 0644); err != nil {
				return fmt.Errorf("failed to write SVG: %w", err)
			}
			cmd.Printf("Infographic written to %s\n", svgOut)
		}
		return nil
	},
}

func init() {
	insightCmd.Flags().String("week", "", "week to inspect (YYYY-MM-DD, any day of the week)")
	insightCmd.Flags().String("svg-out", "", "write the infographic SVG to a file")
	insightCmd.Flags().Bool("json", false, "output JSON")
	rootCmd.AddCommand(insightCmd)
}
