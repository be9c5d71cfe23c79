package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	planningCommands "github.com/focusmirror/focusmirror/internal/planning/application/commands"
	planningQueries "github.com/focusmirror/focusmirror/internal/planning/application/queries"
	planningDomain "github.com/focusmirror/focusmirror/internal/planning/domain"
	"github.com/focusmirror/focusmirror/internal/scoring/infrastructure/cache"
)

// PlanningHandler serves goal and planned block endpoints. Mutations
// invalidate the score cache since they change the engine's inputs.
type PlanningHandler struct {
	createGoal  *planningCommands.CreateGoalHandler
	updateGoal  *planningCommands.UpdateGoalHandler
	deleteGoal  *planningCommands.DeleteGoalHandler
	addBlock    *planningCommands.AddBlockHandler
	removeBlock *planningCommands.RemoveBlockHandler
	weekPlan    *planningQueries.GetWeekPlanHandler
	cache       *cache.RedisScoreCache // nil when Redis is not configured
	userID      uuid.UUID
	logger      *slog.Logger
}

// NewPlanningHandler creates the handler.
func NewPlanningHandler(
	createGoal *planningCommands.CreateGoalHandler,
	updateGoal *planningCommands.UpdateGoalHandler,
	deleteGoal *planningCommands.DeleteGoalHandler,
	addBlock *planningCommands.AddBlockHandler,
	removeBlock *planningCommands.RemoveBlockHandler,
	weekPlan *planningQueries.GetWeekPlanHandler,
	scoreCache *cache.RedisScoreCache,
	userID uuid.UUID,
	logger *slog.Logger,
) *PlanningHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlanningHandler{
		createGoal:  createGoal,
		updateGoal:  updateGoal,
		deleteGoal:  deleteGoal,
		addBlock:    addBlock,
		removeBlock: removeBlock,
		weekPlan:    weekPlan,
		cache:       scoreCache,
		userID:      userID,
		logger:      logger,
	}
}

// GetWeekPlan serves the goals and blocks for the requested week.
func (h *PlanningHandler) GetWeekPlan(w http.ResponseWriter, r *http.Request) {
	weekStart, ok := parseWeekStart(w, r)
	if !ok {
		return
	}
	plan, err := h.weekPlan.Handle(r.Context(), planningQueries.GetWeekPlanQuery{
		UserID:    h.userID,
		WeekStart: weekStart,
	})
	if err != nil {
		h.logger.Error("week plan query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load week plan")
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

type createGoalRequest struct {
	Title     string `json:"title"`
	Priority  string `json:"priority"`
	SortOrder int    `json:"sortOrder"`
}

// CreateGoal creates a goal.
func (h *PlanningHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var req createGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	goal, err := h.createGoal.Handle(r.Context(), planningCommands.CreateGoalCommand{
		UserID:    h.userID,
		Title:     req.Title,
		Priority:  req.Priority,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("goal creation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create goal")
		return
	}

	h.invalidateScores(r)
	writeJSON(w, http.StatusCreated, goalPayload(goal))
}

type updateGoalRequest struct {
	Title     *string `json:"title"`
	Priority  *string `json:"priority"`
	SortOrder *int    `json:"sortOrder"`
}

// UpdateGoal applies a partial update to a goal.
func (h *PlanningHandler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	goalID, err := uuid.Parse(r.PathValue("goalID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid goal id")
		return
	}
	var req updateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	goal, err := h.updateGoal.Handle(r.Context(), planningCommands.UpdateGoalCommand{
		GoalID:    goalID,
		Title:     req.Title,
		Priority:  req.Priority,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("goal update failed", "goal_id", goalID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update goal")
		return
	}

	h.invalidateScores(r)
	writeJSON(w, http.StatusOK, goalPayload(goal))
}

// DeleteGoal removes a goal and its blocks.
func (h *PlanningHandler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	goalID, err := uuid.Parse(r.PathValue("goalID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid goal id")
		return
	}

	if err := h.deleteGoal.Handle(r.Context(), planningCommands.DeleteGoalCommand{GoalID: goalID}); err != nil {
		h.logger.Error("goal deletion failed", "goal_id", goalID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete goal")
		return
	}

	h.invalidateScores(r)
	w.WriteHeader(http.StatusNoContent)
}

type addBlockRequest struct {
	GoalID    uuid.UUID `json:"goalId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// AddBlock schedules a planned block against a goal.
func (h *PlanningHandler) AddBlock(w http.ResponseWriter, r *http.Request) {
	var req addBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	block, err := h.addBlock.Handle(r.Context(), planningCommands.AddBlockCommand{
		UserID:    h.userID,
		GoalID:    req.GoalID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("block creation failed", "goal_id", req.GoalID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create block")
		return
	}

	h.invalidateScores(r)
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":        block.ID(),
		"goalId":    block.GoalID(),
		"startTime": block.StartTime(),
		"endTime":   block.EndTime(),
		"minutes":   block.DurationMinutes(),
	})
}

// RemoveBlock deletes a planned block.
func (h *PlanningHandler) RemoveBlock(w http.ResponseWriter, r *http.Request) {
	blockID, err := uuid.Parse(r.PathValue("blockID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid block id")
		return
	}

	if err := h.removeBlock.Handle(r.Context(), planningCommands.RemoveBlockCommand{BlockID: blockID}); err != nil {
		h.logger.Error("block deletion failed", "block_id", blockID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete block")
		return
	}

	h.invalidateScores(r)
	w.WriteHeader(http.StatusNoContent)
}

func (h *PlanningHandler) invalidateScores(r *http.Request) {
	if h.cache != nil {
		h.cache.InvalidateAll(r.Context(), h.userID)
	}
}

func goalPayload(goal *planningDomain.Goal) map[string]any {
	return map[string]any{
		"id":        goal.ID(),
		"title":     goal.Title(),
		"priority":  goal.Priority().String(),
		"sortOrder": goal.SortOrder(),
	}
}

func isValidationError(err error) bool {
	return errors.Is(err, planningDomain.ErrEmptyTitle) ||
		errors.Is(err, planningDomain.ErrTitleTooLong) ||
		errors.Is(err, planningDomain.ErrInvalidPriority) ||
		errors.Is(err, planningDomain.ErrInvalidTimeRange)
}
