package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/focusmirror/focusmirror/adapter/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Run the HTTP API that backs the dashboard: weekly score,
history, insights, week planning and calendar sync.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireContainer()
		if err != nil {
			return err
		}

		cfg := api.DefaultServerConfig()
		if c.Config.APIAddr != "" {
			cfg.Addr = c.Config.APIAddr
		}

		server := api.NewServer(cfg,
			api.NewScoringHandler(c.ComputeScore, c.ScoreHistory, c.GenerateInsight, c.ScoreCache, c.UserID, c.Logger),
			api.NewPlanningHandler(c.CreateGoal, c.UpdateGoal, c.DeleteGoal, c.AddBlock, c.RemoveBlock, c.WeekPlan, c.ScoreCache, c.UserID, c.Logger),
			api.NewCalendarHandler(c.SyncCalendar, c.ScoreCache, c.UserID, c.Logger),
			c.Logger)

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Start()
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-sigCh:
		case <-cmd.Context().Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
