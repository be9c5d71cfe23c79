package cli

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	planningCommands "github.com/focusmirror/focusmirror/internal/planning/application/commands"
	planningQueries "github.com/focusmirror/focusmirror/internal/planning/application/queries"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage weekly goals",
}

var goalAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a goal",
	Long: `Create a weekly goal. Priority determines scoring weight:
major counts double, optional counts half.

Examples:
  focusmirror goal add "Deep Work: Timeline App" --priority major
  focusmirror goal add "Reading" -p optional`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireContainer()
		if err != nil {
			return err
		}
		priority, _ := cmd.Flags().GetString("priority")
		sortOrder, _ := cmd.Flags().GetInt("order")

		goal, err := c.CreateGoal.Handle(cmd.Context(), planningCommands.CreateGoalCommand{
			UserID:    c.UserID,
			Title:     args[0],
			Priority:  priority,
			SortOrder: sortOrder,
		})
		if err != nil {
			return err
		}
		cmd.Printf("Created goal %s: %s [%s]\n", goal.ID(), goal.Title(), goal.Priority())
		return nil
	},
}

var goalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List goals with this week's blocks",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireContainer()
		if err != nil {
			return err
		}
		week, err := parseWeekFlag(cmd)
		if err != nil {
			return err
		}

		plan, err := c.WeekPlan.Handle(cmd.Context(), planningQueries.GetWeekPlanQuery{
			UserID:    c.UserID,
			WeekStart: week,
		})
		if err != nil {
			return err
		}
		if len(plan.Goals) == 0 {
			cmd.Println("No goals yet. Create one with: focusmirror goal add")
			return nil
		}
		cmd.Printf("Week of %s\n", plan.WeekStart)
		for _, g := range plan.Goals {
			minutes := 0
			for _, b := range g.Blocks {
				minutes += b.Minutes
			}
			cmd.Printf("  %s  %-30s [%s]  %d block(s), %dm planned\n",
				g.ID, g.Title, g.Priority, len(g.Blocks), minutes)
		}
		return nil
	},
}

var goalUpdateCmd = &cobra.Command{
	Use:   "update <goal-id>",
	Short: "Update a goal's title, priority or order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireContainer()
		if err != nil {
			return err
		}
		goalID, err := uuid.Parse(args[0])
		if err != nil {
			return err
		}

		update := planningCommands.UpdateGoalCommand{GoalID: goalID}
		if cmd.Flags().Changed("title") {
			title, _ := cmd.Flags().GetString("title")
			update.Title = &title
		}
		if cmd.Flags().Changed("priority") {
			priority, _ := cmd.Flags().GetString("priority")
			update.Priority = &priority
		}
		if cmd.Flags().Changed("order") {
			order, _ := cmd.Flags().GetInt("order")
			update.SortOrder = &order
		}

		goal, err := c.UpdateGoal.Handle(cmd.Context(), update)
		if err != nil {
			return err
		}
		cmd.Printf("Updated goal %s: %s [%s]\n", goal.ID(), goal.Title(), goal.Priority())
		return nil
	},
}

var goalRemoveCmd = &cobra.Command{
	Use:   "remove <goal-id>",
	Short: "Delete a goal and its planned blocks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireContainer()
		if err != nil {
			return err
		}
		goalID, err := uuid.Parse(args[0])
		if err != nil {
			return err
		}
		if err := c.DeleteGoal.Handle(cmd.Context(), planningCommands.DeleteGoalCommand{GoalID: goalID}); err != nil {
			return err
		}
		cmd.Printf("Deleted goal %s\n", goalID)
		return nil
	},
}

func init() {
	goalAddCmd.Flags().StringP("priority", "p", "minor", "goal priority (major, minor, optional)")
	goalAddCmd.Flags().Int("order", 0, "sort order in the week plan")
	goalListCmd.Flags().String("week", "", "week to show (YYYY-MM-DD, any day of the week)")
	goalUpdateCmd.Flags().String("title", "", "new title")
	goalUpdateCmd.Flags().StringP("priority", "p", "", "new priority (major, minor, optional)")
	goalUpdateCmd.Flags().Int("order", 0, "new sort order")

	goalCmd.AddCommand(goalAddCmd, goalListCmd, goalUpdateCmd, goalRemoveCmd)
	rootCmd.AddCommand(goalCmd)
}
