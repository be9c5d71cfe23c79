// Package cli implements the focusmirror command line interface.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/focusmirror/focusmirror/internal/app"
)

var (
	verbose   bool
	logger    *slog.Logger
	container *app.Container
)

type commandContext struct {
	correlationID uuid.UUID
	startedAt     time.Time
}

type commandContextKey struct{}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "focusmirror",
	Short: "FocusMirror - Weekly focus scoring and streaks",
	Long: `FocusMirror scores how well your calendar reality matched your
weekly plan. Plan goals and focus blocks, sync your calendar, and get a
weekly focus score, XP, streaks and a generated insight card.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if logger == nil {
			logger = slog.Default()
		}
		ctx := cmd.Context()
		info := commandContext{
			correlationID: uuid.New(),
			startedAt:     time.Now(),
		}
		cmd.SetContext(context.WithValue(ctx, commandContextKey{}, info))
		logger.Debug("command start",
			"command", cmd.CommandPath(),
			"correlation_id", info.correlationID.String(),
		)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger == nil {
			logger = slog.Default()
		}
		info, ok := cmd.Context().Value(commandContextKey{}).(commandContext)
		if !ok {
			return
		}
		logger.Debug("command end",
			"command", cmd.CommandPath(),
			"correlation_id", info.correlationID.String(),
			"duration_ms", time.Since(info.startedAt).Milliseconds(),
		)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// SetLogger sets the logger used by CLI commands.
func SetLogger(l *slog.Logger) {
	logger = l
}

// SetContainer wires the application container into the CLI.
func SetContainer(c *app.Container) {
	container = c
}

// GetContainer returns the wired container, or nil when unavailable.
func GetContainer() *app.Container {
	return container
}

func requireContainer() (*app.Container, error) {
	if container == nil {
		return nil, fmt.Errorf("application not initialized; check database configuration")
	}
	return container, nil
}

// parseWeekFlag resolves the shared --week flag, defaulting to now.
func parseWeekFlag(cmd *cobra.Command) (time.Time, error) {
	raw, _ := cmd.Flags().GetString("week")
	if raw == "" {
		return time.Now(), nil
	}
	t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("--week must be YYYY-MM-DD: %w", err)
	}
	return t, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
