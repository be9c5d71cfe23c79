// Package app wires configuration, storage, messaging and handlers into
// a runnable application.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	calendarCommands "github.com/focusmirror/focusmirror/internal/calendar/application/commands"
	calendarDomain "github.com/focusmirror/focusmirror/internal/calendar/domain"
	caldavSource "github.com/focusmirror/focusmirror/internal/calendar/infrastructure/caldav"
	icsSource "github.com/focusmirror/focusmirror/internal/calendar/infrastructure/ics"
	insightCommands "github.com/focusmirror/focusmirror/internal/insight/application/commands"
	"github.com/focusmirror/focusmirror/internal/insight/infrastructure/subscriber"
	planningCommands "github.com/focusmirror/focusmirror/internal/planning/application/commands"
	planningQueries "github.com/focusmirror/focusmirror/internal/planning/application/queries"
	scoringCommands "github.com/focusmirror/focusmirror/internal/scoring/application/commands"
	scoringQueries "github.com/focusmirror/focusmirror/internal/scoring/application/queries"
	"github.com/focusmirror/focusmirror/internal/scoring/infrastructure/cache"
	"github.com/focusmirror/focusmirror/internal/shared/infrastructure/database"
	"github.com/focusmirror/focusmirror/internal/shared/infrastructure/database/postgres"
	"github.com/focusmirror/focusmirror/internal/shared/infrastructure/database/sqlite"
	"github.com/focusmirror/focusmirror/internal/shared/infrastructure/eventbus"
	"github.com/focusmirror/focusmirror/internal/shared/infrastructure/migrations"
	"github.com/focusmirror/focusmirror/pkg/config"
)

// Container holds the wired application.
type Container struct {
	Config *config.Config
	Logger *slog.Logger
	UserID uuid.UUID

	DB         database.Connection
	Redis      *redis.Client // nil when REDIS_URL is unset
	ScoreCache *cache.RedisScoreCache
	Publisher  eventbus.Publisher

	Repos *Repositories

	ComputeScore    *scoringCommands.ComputeWeeklyScoreHandler
	ScoreHistory    *scoringQueries.GetScoreHistoryHandler
	GenerateInsight *insightCommands.GenerateInsightHandler
	CreateGoal      *planningCommands.CreateGoalHandler
	UpdateGoal      *planningCommands.UpdateGoalHandler
	DeleteGoal      *planningCommands.DeleteGoalHandler
	AddBlock        *planningCommands.AddBlockHandler
	RemoveBlock     *planningCommands.RemoveBlockHandler
	WeekPlan        *planningQueries.GetWeekPlanHandler
	SyncCalendar    *calendarCommands.SyncCalendarHandler // nil when no source configured

	rabbit *eventbus.RabbitMQPublisher
}

// NewContainer builds the application from configuration: database
// connection and migrations, optional Redis and RabbitMQ, the event
// bus, and every command and query handler.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	userID, err := uuid.Parse(cfg.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid FOCUSMIRROR_USER_ID: %w", err)
	}

	conn, err := database.NewConnection(ctx, database.Config{
		URL:        cfg.DatabaseURL,
		SQLitePath: cfg.SQLitePath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := runMigrations(ctx, conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	repos, err := NewRepositories(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
		UserID: userID,
		DB:     conn,
		Repos:  repos,
	}

	if cfg.RedisURL != "" && cfg.ScoreCacheEnabled {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		c.Redis = redis.NewClient(opts)
		c.ScoreCache = cache.NewRedisScoreCache(c.Redis, cfg.ScoreCacheTTL, logger)
	}

	// Local consumers always run on the in-process bus; RabbitMQ is
	// added alongside it for external subscribers.
	localBus := eventbus.NewInProcessEventBus(logger)
	c.Publisher = localBus
	if cfg.RabbitMQURL != "" {
		rabbit, err := eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, logger)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		c.rabbit = rabbit
		c.Publisher = eventbus.NewFanoutPublisher(localBus, rabbit)
	}

	c.ComputeScore = scoringCommands.NewComputeWeeklyScoreHandler(
		repos.PlanningData, repos.Summaries, repos.Profiles, c.Publisher, logger)
	c.ScoreHistory = scoringQueries.NewGetScoreHistoryHandler(repos.Summaries)
	c.GenerateInsight = insightCommands.NewGenerateInsightHandler(repos.Insights, repos.Summaries, logger)
	c.CreateGoal = planningCommands.NewCreateGoalHandler(repos.Goals, logger)
	c.UpdateGoal = planningCommands.NewUpdateGoalHandler(repos.Goals, logger)
	c.DeleteGoal = planningCommands.NewDeleteGoalHandler(repos.Goals, repos.Blocks, logger)
	c.AddBlock = planningCommands.NewAddBlockHandler(repos.Goals, repos.Blocks, logger)
	c.RemoveBlock = planningCommands.NewRemoveBlockHandler(repos.Blocks, logger)
	c.WeekPlan = planningQueries.NewGetWeekPlanHandler(repos.Goals, repos.Blocks, logger)

	localBus.RegisterConsumer(subscriber.NewSummaryComputedConsumer(repos.Insights, c.GenerateInsight, logger))

	if source := buildCalendarSource(cfg, logger); source != nil {
		c.SyncCalendar = calendarCommands.NewSyncCalendarHandler(source, repos.Events, logger)
	}

	return c, nil
}

// Close releases held connections.
func (c *Container) Close() {
	if c.rabbit != nil {
		if err := c.rabbit.Close(); err != nil {
			c.Logger.Warn("failed to close RabbitMQ publisher", "error", err)
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Warn("failed to close Redis client", "error", err)
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			c.Logger.Warn("failed to close database", "error", err)
		}
	}
}

func runMigrations(ctx context.Context, conn database.Connection) error {
	switch c := conn.(type) {
	case *sqlite.Connection:
		return migrations.RunSQLiteMigrations(ctx, c.DB())
	case *postgres.Connection:
		return migrations.RunPostgresMigrations(ctx, c.Pool())
	default:
		return fmt.Errorf("unsupported connection type %T", conn)
	}
}

func buildCalendarSource(cfg *config.Config, logger *slog.Logger) calendarDomain.Source {
	switch cfg.CalendarProvider {
	case "caldav":
		if cfg.CalDAVBaseURL == "" {
			return nil
		}
		source := caldavSource.NewSource(cfg.CalDAVBaseURL, cfg.CalDAVUsername, cfg.CalDAVPassword, logger)
		if cfg.CalDAVPath != "" {
			source = source.WithCalendarPath(cfg.CalDAVPath)
		}
		return source
	default:
		if cfg.ICSFeedURL == "" {
			return nil
		}
		return icsSource.NewSource(cfg.ICSFeedURL, icsSource.NewFeedFetcher(logger), logger)
	}
}
