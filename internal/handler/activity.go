package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/osse101/FitQuest_Go/internal/activity"
	"github.com/osse101/FitQuest_Go/internal/character"
	"github.com/osse101/FitQuest_Go/internal/domain"
	"github.com/osse101/FitQuest_Go/internal/eventlog"
)

// ActivityHandler serves the activity log, stats and audit endpoints.
// Every read answers 404 for an unknown character.
type ActivityHandler struct {
	characters character.Service
	activities activity.Service
	events     eventlog.Service
	loc        *time.Location
	now        func() time.Time
}

// NewActivityHandler creates a new ActivityHandler. Dates are read in loc.
func NewActivityHandler(characters character.Service, activities activity.Service, events eventlog.Service, loc *time.Location) *ActivityHandler {
	if loc == nil {
		loc = time.Local
	}
	return &ActivityHandler{characters: characters, activities: activities, events: events, loc: loc, now: time.Now}
}

// knownCharacter writes the error response and returns false when the
// character cannot be resolved
func (h *ActivityHandler) knownCharacter(w http.ResponseWriter, r *http.Request, op, id string) bool {
	if _, err := h.characters.GetCharacter(r.Context(), id); err != nil {
		respondServiceError(w, r, op, err)
		return false
	}
	return true
}

// HandleListActivities lists recent activities newest first.
// Optional query: type, limit, since, until (RFC3339).
func (h *ActivityHandler) HandleListActivities(w http.ResponseWriter, r *http.Request) {
	id, ok := characterIDParam(w, r)
	if !ok {
		return
	}

	filter := domain.ActivityFilter{CharacterID: id}

	limit, err := parseLimit(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
		return
	}
	filter.Limit = limit

	if raw := r.URL.Query().Get("type"); raw != "" {
		typ := domain.ActivityType(raw)
		if !validActivityType(typ) {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidType)
			return
		}
		filter.Type = &typ
	}

	if filter.Since, err = parseTimeParam(r, "since"); err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidTimeRange)
		return
	}
	if filter.Until, err = parseTimeParam(r, "until"); err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidTimeRange)
		return
	}

	if !h.knownCharacter(w, r, OpListActivities, id) {
		return
	}

	activities, err := h.activities.ListActivities(r.Context(), filter)
	if err != nil {
		respondServiceError(w, r, OpListActivities, err)
		return
	}
	respondJSON(w, http.StatusOK, activities)
}

// HandleDailyStats aggregates the calendar day given by ?date=YYYY-MM-DD
// @Summary Daily stats
// @Tags stats
// @Produce json
// @Param id path string true "Character ID"
// @Param date query string false "Day (YYYY-MM-DD), defaults to today"
// @Success 200 {object} domain.ActivityTotals
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/characters/{id}/stats/daily [get]
func (h *ActivityHandler) HandleDailyStats(w http.ResponseWriter, r *http.Request) {
	h.handleTotals(w, r, OpDailyStats, h.activities.DailyTotals)
}

// HandleWeeklyStats aggregates the ISO week containing ?date=YYYY-MM-DD
func (h *ActivityHandler) HandleWeeklyStats(w http.ResponseWriter, r *http.Request) {
	h.handleTotals(w, r, OpWeeklyStats, h.activities.WeeklyTotals)
}

type totalsFunc func(ctx context.Context, characterID string, asOf time.Time) (*domain.ActivityTotals, error)

func (h *ActivityHandler) handleTotals(w http.ResponseWriter, r *http.Request, op string, fn totalsFunc) {
	id, ok := characterIDParam(w, r)
	if !ok {
		return
	}

	asOf, err := parseDate(r, h.loc, h.now())
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidDate)
		return
	}

	if !h.knownCharacter(w, r, op, id) {
		return
	}

	totals, err := fn(r.Context(), id, asOf)
	if err != nil {
		respondServiceError(w, r, op, err)
		return
	}
	respondJSON(w, http.StatusOK, totals)
}

// HandleListEvents lists the character's audit trail newest first.
// Optional query: type, limit, since, until (RFC3339).
func (h *ActivityHandler) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	id, ok := characterIDParam(w, r)
	if !ok {
		return
	}

	limit, err := parseLimit(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
		return
	}

	filter := eventlog.EventFilter{CharacterID: &id, Limit: limit}
	if eventType := r.URL.Query().Get("type"); eventType != "" {
		filter.EventType = &eventType
	}

	if filter.Since, err = parseTimeParam(r, "since"); err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidTimeRange)
		return
	}
	if filter.Until, err = parseTimeParam(r, "until"); err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidTimeRange)
		return
	}

	if !h.knownCharacter(w, r, OpListEvents, id) {
		return
	}

	events, err := h.events.GetEvents(r.Context(), filter)
	if err != nil {
		respondServiceError(w, r, OpListEvents, err)
		return
	}
	respondJSON(w, http.StatusOK, events)
}

func validActivityType(t domain.ActivityType) bool {
	switch t {
	case domain.ActivityTypeNutrition, domain.ActivityTypeWorkout, domain.ActivityTypeHydration,
		domain.ActivityTypeQuest, domain.ActivityTypeXP:
		return true
	}
	return false
}
