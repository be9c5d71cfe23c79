package queries

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/focusmirror/focusmirror/internal/planning/domain"
	"github.com/google/uuid"
)

// GetWeekPlanQuery requests the goals and planned blocks for the week
// containing WeekStart.
type GetWeekPlanQuery struct {
	UserID    uuid.UUID
	WeekStart time.Time
}

// BlockView is a planned block in the week plan payload.
type BlockView struct {
	ID        uuid.UUID `json:"id"`
	GoalID    uuid.UUID `json:"goalId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Minutes   int       `json:"minutes"`
}

// GoalView is a goal with its scheduled blocks.
type GoalView struct {
	ID        uuid.UUID   `json:"id"`
	Title     string      `json:"title"`
	Priority  string      `json:"priority"`
	SortOrder int         `json:"sortOrder"`
	Blocks    []BlockView `json:"blocks"`
}

// WeekPlan is the full plan for one week.
type WeekPlan struct {
	WeekStart string     `json:"weekStart"`
	Goals     []GoalView `json:"goals"`
}

// GetWeekPlanHandler assembles the week plan view.
type GetWeekPlanHandler struct {
	goals  domain.GoalRepository
	blocks domain.BlockRepository
	logger *slog.Logger
}

// NewGetWeekPlanHandler creates a new handler.
func NewGetWeekPlanHandler(goals domain.GoalRepository, blocks domain.BlockRepository, logger *slog.Logger) *GetWeekPlanHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GetWeekPlanHandler{goals: goals, blocks: blocks, logger: logger}
}

// Handle lists the user's goals in sort order with the blocks that fall
// inside the Monday-to-Monday window.
func (h *GetWeekPlanHandler) Handle(ctx context.Context, query GetWeekPlanQuery) (*WeekPlan, error) {
	weekStart := startOfWeek(query.WeekStart)
	weekEnd := weekStart.AddDate(0, 0, 7)

	goals, err := h.goals.ListByUser(ctx, query.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load goals: %w", err)
	}
	blocks, err := h.blocks.ListInWindow(ctx, query.UserID, weekStart, weekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load blocks: %w", err)
	}

	byGoal := make(map[uuid.UUID][]BlockView, len(goals))
	for _, b := range blocks {
		byGoal[b.GoalID()] = append(byGoal[b.GoalID()], BlockView{
			ID:        b.ID(),
			GoalID:    b.GoalID(),
			StartTime: b.StartTime(),
			EndTime:   b.EndTime(),
			Minutes:   b.DurationMinutes(),
		})
	}

	views := make([]GoalView, 0, len(goals))
	for _, g := range goals {
		bv := byGoal[g.ID()]
		if bv == nil {
			bv = []BlockView{}
		}
		views = append(views, GoalView{
			ID:        g.ID(),
			Title:     g.Title(),
			Priority:  g.Priority().String(),
			SortOrder: g.SortOrder(),
			Blocks:    bv,
		})
	}

	return &WeekPlan{
		WeekStart: weekStart.Format("2006-01-02"),
		Goals:     views,
	}, nil
}

// startOfWeek normalizes to the local Monday 00:00 of the containing week.
func startOfWeek(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := int(t.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset = 6
	}
	return t.AddDate(0, 0, -offset)
}
