package app

import (
	"fmt"

	calendarDomain "github.com/focusmirror/focusmirror/internal/calendar/domain"
	calendarPersistence "github.com/focusmirror/focusmirror/internal/calendar/infrastructure/persistence"
	identityDomain "github.com/focusmirror/focusmirror/internal/identity/domain"
	identityPersistence "github.com/focusmirror/focusmirror/internal/identity/infrastructure/persistence"
	insightDomain "github.com/focusmirror/focusmirror/internal/insight/domain"
	insightPersistence "github.com/focusmirror/focusmirror/internal/insight/infrastructure/persistence"
	planningDomain "github.com/focusmirror/focusmirror/internal/planning/domain"
	planningPersistence "github.com/focusmirror/focusmirror/internal/planning/infrastructure/persistence"
	scoringDomain "github.com/focusmirror/focusmirror/internal/scoring/domain"
	scoringPersistence "github.com/focusmirror/focusmirror/internal/scoring/infrastructure/persistence"
	"github.com/focusmirror/focusmirror/internal/shared/infrastructure/database"
	"github.com/focusmirror/focusmirror/internal/shared/infrastructure/database/postgres"
	"github.com/focusmirror/focusmirror/internal/shared/infrastructure/database/sqlite"
)

// Repositories bundles every persistence port, built for whichever
// driver the connection uses.
type Repositories struct {
	Summaries    scoringDomain.SummaryRepository
	PlanningData scoringDomain.PlanningDataSource
	Profiles     identityDomain.ProfileRepository
	Goals        planningDomain.GoalRepository
	Blocks       planningDomain.BlockRepository
	Events       calendarDomain.EventRepository
	Insights     insightDomain.InsightRepository
}

// NewRepositories builds the repository set for the connection's driver.
func NewRepositories(conn database.Connection) (*Repositories, error) {
	switch c := conn.(type) {
	case *sqlite.Connection:
		db := c.DB()
		return &Repositories{
			Summaries:    scoringPersistence.NewSQLiteSummaryRepository(db),
			PlanningData: scoringPersistence.NewSQLitePlanningDataSource(db),
			Profiles:     identityPersistence.NewSQLiteProfileRepository(db),
			Goals:        planningPersistence.NewSQLiteGoalRepository(db),
			Blocks:       planningPersistence.NewSQLiteBlockRepository(db),
			Events:       calendarPersistence.NewSQLiteEventRepository(db),
			Insights:     insightPersistence.NewSQLiteInsightRepository(db),
		}, nil
	case *postgres.Connection:
		pool := c.Pool()
		return &Repositories{
			Summaries:    scoringPersistence.NewPostgresSummaryRepository(pool),
			PlanningData: scoringPersistence.NewPostgresPlanningDataSource(pool),
			Profiles:     identityPersistence.NewPostgresProfileRepository(pool),
			Goals:        planningPersistence.NewPostgresGoalRepository(pool),
			Blocks:       planningPersistence.NewPostgresBlockRepository(pool),
			Events:       calendarPersistence.NewPostgresEventRepository(pool),
			Insights:     insightPersistence.NewPostgresInsightRepository(pool),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported connection type %T", conn)
	}
}
