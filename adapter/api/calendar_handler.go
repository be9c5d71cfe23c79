package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	calendarCommands "github.com/focusmirror/focusmirror/internal/calendar/application/commands"
	"github.com/focusmirror/focusmirror/internal/scoring/infrastructure/cache"
)

// CalendarHandler serves the calendar sync endpoint.
type CalendarHandler struct {
	sync   *calendarCommands.SyncCalendarHandler
	cache  *cache.RedisScoreCache // nil when Redis is not configured
	userID uuid.UUID
	logger *slog.Logger
}

// NewCalendarHandler creates the handler. The sync handler may be nil
// when no external calendar is configured.
func NewCalendarHandler(sync *calendarCommands.SyncCalendarHandler, scoreCache *cache.RedisScoreCache, userID uuid.UUID, logger *slog.Logger) *CalendarHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CalendarHandler{sync: sync, cache: scoreCache, userID: userID, logger: logger}
}

// Sync pulls external events for the week given by ?weekStart=YYYY-MM-DD.
func (h *CalendarHandler) Sync(w http.ResponseWriter, r *http.Request) {
	if h.sync == nil {
		writeError(w, http.StatusServiceUnavailable, "no calendar source configured")
		return
	}
	weekStart, ok := parseWeekStart(w, r)
	if !ok {
		return
	}

	result, err := h.sync.Handle(r.Context(), calendarCommands.SyncCalendarCommand{
		UserID:    h.userID,
		WeekStart: weekStart,
	})
	if err != nil {
		h.logger.Error("calendar sync failed", "error", err)
		writeError(w, http.StatusBadGateway, "calendar sync failed")
		return
	}

	if h.cache != nil {
		h.cache.InvalidateAll(r.Context(), h.userID)
	}
	writeJSON(w, http.StatusOK, result)
}
