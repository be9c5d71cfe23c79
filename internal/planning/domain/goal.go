package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	shareddomain "github.com/focusmirror/focusmirror/internal/shared/domain"
)

const MaxTitleLength = 200

var (
	ErrEmptyTitle   = errors.New("goal title cannot be empty")
	ErrTitleTooLong = errors.New("goal title exceeds maximum length")
)

// Goal is a weekly intention the user commits time blocks to.
type Goal struct {
	shareddomain.BaseEntity
	userID    uuid.UUID
	title     string
	priority  Priority
	sortOrder int
}

// NewGoal creates a goal after validating its title.
func NewGoal(userID uuid.UUID, title string, priority Priority, sortOrder int) (*Goal, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if len(title) > MaxTitleLength {
		return nil, ErrTitleTooLong
	}
	return &Goal{
		BaseEntity: shareddomain.NewBaseEntity(),
		userID:     userID,
		title:      title,
		priority:   priority,
		sortOrder:  sortOrder,
	}, nil
}

// RehydrateGoal recreates a goal from persisted state without validation.
func RehydrateGoal(id, userID uuid.UUID, title string, priority Priority, sortOrder int, createdAt, updatedAt time.Time) *Goal {
	return &Goal{
		BaseEntity: shareddomain.RehydrateBaseEntity(id, createdAt, updatedAt),
		userID:     userID,
		title:      title,
		priority:   priority,
		sortOrder:  sortOrder,
	}
}

func (g *Goal) UserID() uuid.UUID  { return g.userID }
func (g *Goal) Title() string      { return g.title }
func (g *Goal) Priority() Priority { return g.priority }
func (g *Goal) SortOrder() int     { return g.sortOrder }

// Rename changes the goal's title.
func (g *Goal) Rename(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	if len(title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	g.title = title
	g.Touch()
	return nil
}

// Reprioritize changes the goal's priority tier.
func (g *Goal) Reprioritize(priority Priority) {
	g.priority = priority
	g.Touch()
}

// Reorder changes the goal's position in the week plan.
func (g *Goal) Reorder(sortOrder int) {
	g.sortOrder = sortOrder
	g.Touch()
}
