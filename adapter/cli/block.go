package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	planningCommands "github.com/focusmirror/focusmirror/internal/planning/application/commands"
)

var blockCmd = &cobra.Command{
	Use:   "block",
	Short: "Manage planned focus blocks",
}

var blockAddCmd = &cobra.Command{
	Use:   "add <goal-id>",
	Short: "Schedule a focus block",
	Long: `Schedule a focus block against a goal.

Examples:
  focusmirror block add 5f1c... --start "2026-08-24 09:00" --duration 90m
  focusmirror block add 5f1c... --start "2026-08-24 09:00" --end "2026-08-24 11:00"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireContainer()
		if err != nil {
			return err
		}
		goalID, err := uuid.Parse(args[0])
		if err != nil {
			return err
		}

		startRaw, _ := cmd.Flags().GetString("start")
		start, err := time.ParseInLocation("2006-01-02 15:04", startRaw, time.Local)
		if err != nil {
			return fmt.Errorf("--start must be \"YYYY-MM-DD HH:MM\": %w", err)
		}

		var end time.Time
		if endRaw, _ := cmd.Flags().GetString("end"); endRaw != "" {
			end, err = time.ParseInLocation("2006-01-02 15:04", endRaw, time.Local)
			if err != nil {
				return fmt.Errorf("--end must be \"YYYY-MM-DD HH:MM\": %w", err)
			}
		} else {
			duration, _ := cmd.Flags().GetDuration("duration")
			if duration <= 0 {
				return fmt.Errorf("provide --end or a positive --duration")
			}
			end = start.Add(duration)
		}

		block, err := c.AddBlock.Handle(cmd.Context(), planningCommands.AddBlockCommand{
			UserID:    c.UserID,
			GoalID:    goalID,
			StartTime: start,
			EndTime:   end,
		})
		if err != nil {
			return err
		}
		cmd.Printf("Scheduled block %s: %s – %s (%dm)\n",
			block.ID(),
			block.StartTime().Format("Mon 15:04"),
			block.EndTime().Format("15:04"),
			block.DurationMinutes())
		return nil
	},
}

var blockRemoveCmd = &cobra.Command{
	Use:   "remove <block-id>",
	Short: "Delete a planned block",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireContainer()
		if err != nil {
			return err
		}
		blockID, err := uuid.Parse(args[0])
		if err != nil {
			return err
		}
		if err := c.RemoveBlock.Handle(cmd.Context(), planningCommands.RemoveBlockCommand{BlockID: blockID}); err != nil {
			return err
		}
		cmd.Printf("Deleted block %s\n", blockID)
		return nil
	},
}

func init() {
	blockAddCmd.Flags().String("start", "", "block start (\"YYYY-MM-DD HH:MM\", local time)")
	blockAddCmd.Flags().String("end", "", "block end (\"YYYY-MM-DD HH:MM\", local time)")
	blockAddCmd.Flags().Duration("duration", 0, "block length (e.g. 90m), alternative to --end")
	_ = blockAddCmd.MarkFlagRequired("start")

	blockCmd.AddCommand(blockAddCmd, blockRemoveCmd)
	rootCmd.AddCommand(blockCmd)
}
