package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	calendarCommands "github.com/focusmirror/focusmirror/internal/calendar/application/commands"
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Sync external calendars",
}

var calendarSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Pull calendar events for a week",
	Long: `Pull events from the configured calendar source (ICS feed or
CalDAV) into the local store. The next score computation matches planned
blocks against these events.

Examples:
  focusmirror calendar sync
  focusmirror calendar sync --week 2026-08-24`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireContainer()
		if err != nil {
			return err
		}
		if c.SyncCalendar == nil {
			return fmt.Errorf("no calendar source configured; set ICS_FEED_URL or CALDAV_BASE_URL")
		}
		week, err := parseWeekFlag(cmd)
		if err != nil {
			return err
		}

		result, err := c.SyncCalendar.Handle(cmd.Context(), calendarCommands.SyncCalendarCommand{
			UserID:    c.UserID,
			WeekStart: week,
		})
		if err != nil {
			return err
		}
		cmd.Printf("Synced %d event(s) from %s for week of %s\n",
			result.EventCount, result.Provider, result.WeekStart)
		return nil
	},
}

func init() {
	calendarSyncCmd.Flags().String("week", "", "week to sync (YYYY-MM-DD, any day of the week)")
	calendarCmd.AddCommand(calendarSyncCmd)
	rootCmd.AddCommand(calendarCmd)
}
