package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	insightCommands "github.com/focusmirror/focusmirror/internal/insight/application/commands"
	scoringCommands "github.com/focusmirror/focusmirror/internal/scoring/application/commands"
	scoringQueries "github.com/focusmirror/focusmirror/internal/scoring/application/queries"
	scoringDomain "github.com/focusmirror/focusmirror/internal/scoring/domain"
	"github.com/focusmirror/focusmirror/internal/scoring/infrastructure/cache"
)

// ScoringHandler serves the weekly score, history and insight endpoints.
type ScoringHandler struct {
	compute *scoringCommands.ComputeWeeklyScoreHandler
	history *scoringQueries.GetScoreHistoryHandler
	insight *insightCommands.GenerateInsightHandler
	cache   *cache.RedisScoreCache // nil when Redis is not configured
	userID  uuid.UUID
	logger  *slog.Logger
}

// NewScoringHandler creates the handler.
func NewScoringHandler(
	compute *scoringCommands.ComputeWeeklyScoreHandler,
	history *scoringQueries.GetScoreHistoryHandler,
	insight *insightCommands.GenerateInsightHandler,
	scoreCache *cache.RedisScoreCache,
	userID uuid.UUID,
	logger *slog.Logger,
) *ScoringHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ScoringHandler{
		compute: compute,
		history: history,
		insight: insight,
		cache:   scoreCache,
		userID:  userID,
		logger:  logger,
	}
}

// GetWeeklyScore computes (or serves from cache) the focus score for
// the week given by ?weekStart=YYYY-MM-DD, defaulting to the current week.
func (h *ScoringHandler) GetWeeklyScore(w http.ResponseWriter, r *http.Request) {
	weekStart, ok := parseWeekStart(w, r)
	if !ok {
		return
	}
	weekKey := scoringDomain.StartOfWeek(weekStart).Format("2006-01-02")

	if h.cache != nil {
		if cached := h.cache.Get(r.Context(), h.userID, weekKey); cached != nil {
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	result, err := h.compute.Handle(r.Context(), scoringCommands.ComputeWeeklyScoreCommand{
		UserID:    h.userID,
		WeekStart: weekStart,
	})
	if err != nil {
		h.logger.Error("weekly score computation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compute weekly score")
		return
	}

	// Empty weeks are not cached; the payload should refresh as soon as
	// blocks appear.
	if h.cache != nil && result.Message == "" {
		h.cache.Set(r.Context(), h.userID, weekKey, result)
	}

	writeJSON(w, http.StatusOK, result)
}

// GetScoreHistory serves the recent stored weeks, newest first.
func (h *ScoringHandler) GetScoreHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	items, err := h.history.Handle(r.Context(), scoringQueries.GetScoreHistoryQuery{
		UserID: h.userID,
		Limit:  limit,
	})
	if err != nil {
		h.logger.Error("score history query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load score history")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": items})
}

// GetWeeklyInsight serves the generated narrative and SVG card for the week.
func (h *ScoringHandler) GetWeeklyInsight(w http.ResponseWriter, r *http.Request) {
	weekStart, ok := parseWeekStart(w, r)
	if !ok {
		return
	}

	result, err := h.insight.Handle(r.Context(), insightCommands.GenerateInsightCommand{
		UserID:    h.userID,
		WeekStart: weekStart,
	})
	if err != nil {
		h.logger.Error("insight generation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to generate insight")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// parseWeekStart reads the optional ?weekStart=YYYY-MM-DD parameter,
// defaulting to now. It writes the error response itself on bad input.
func parseWeekStart(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	raw := r.URL.Query().Get("weekStart")
	if raw == "" {
		return time.Now(), true
	}
	t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		writeError(w, http.StatusBadRequest, "weekStart must be YYYY-MM-DD")
		return time.Time{}, false
	}
	return t, true
}
