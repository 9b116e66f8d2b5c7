package handler

import (
	"errors"
	"net/http"

	"github.com/osse101/FitQuest_Go/internal/domain"
	"github.com/osse101/FitQuest_Go/internal/logger"
	"github.com/osse101/FitQuest_Go/internal/progress"
)

// ApplyActionRequest is the body of POST /characters/{id}/actions
type ApplyActionRequest struct {
	Kind     string                `json:"kind" validate:"required,action_kind"`
	Value    int64                 `json:"value" validate:"min=0"`
	Metadata domain.ActionMetadata `json:"metadata"`
}

// ApplyActionResponse lists the quests changed by an action
type ApplyActionResponse struct {
	Updates []domain.QuestUpdateResult `json:"updates"`
	Warning string                     `json:"warning,omitempty"`
}

// LogHydrationRequest is the body of POST /characters/{id}/hydration
type LogHydrationRequest struct {
	Glasses int64 `json:"glasses" validate:"required,min=1,max=100"`
}

// MealRequest is the body of POST /characters/{id}/meals
type MealRequest struct {
	Description string `json:"description" validate:"max=500"`
	Calories    *int64 `json:"calories,omitempty" validate:"omitempty,min=0,max=100000"`
	Protein     *int64 `json:"protein,omitempty" validate:"omitempty,min=0,max=10000"`
}

// WorkoutRequest is the body of POST /characters/{id}/workouts
type WorkoutRequest struct {
	Description    string `json:"description" validate:"max=500"`
	WorkoutType    string `json:"workout_type" validate:"max=50"`
	Duration       *int64 `json:"duration,omitempty" validate:"omitempty,min=0,max=1440"`
	CaloriesBurned *int64 `json:"calories_burned,omitempty" validate:"omitempty,min=0,max=100000"`
}

// LogResponse is returned by the tracker endpoints
type LogResponse struct {
	*progress.LogResult
	Warning string `json:"warning,omitempty"`
}

// TrackerHandler serves the action and tracker endpoints
type TrackerHandler struct {
	progress progress.Service
}

// NewTrackerHandler creates a new TrackerHandler
func NewTrackerHandler(progress progress.Service) *TrackerHandler {
	return &TrackerHandler{progress: progress}
}

// HandleApplyAction applies an action to the character's active quests.
// A partial failure still answers 200 with the quests that were updated.
// @Summary Apply action
// @Tags quests
// @Accept json
// @Produce json
// @Param id path string true "Character ID"
// @Param request body ApplyActionRequest true "Action"
// @Success 200 {object} ApplyActionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/characters/{id}/actions [post]
func (h *TrackerHandler) HandleApplyAction(w http.ResponseWriter, r *http.Request) {
	id, ok := characterIDParam(w, r)
	if !ok {
		return
	}

	var req ApplyActionRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpApplyAction); err != nil {
		return
	}

	updates, err := h.progress.ApplyAction(r.Context(), id, domain.ActionKind(req.Kind), req.Value, req.Metadata)
	resp := ApplyActionResponse{Updates: updates}
	if err != nil {
		if !errors.Is(err, domain.ErrPartialFailure) {
			respondServiceError(w, r, OpApplyAction, err)
			return
		}
		logger.FromContext(r.Context()).Warn(OpApplyAction, "error", err, "character_id", id)
		resp.Warning = MsgPartialFailure
	}
	if resp.Updates == nil {
		resp.Updates = []domain.QuestUpdateResult{}
	}
	respondJSON(w, http.StatusOK, resp)
}

// HandleLogMeal logs a meal
func (h *TrackerHandler) HandleLogMeal(w http.ResponseWriter, r *http.Request) {
	id, ok := characterIDParam(w, r)
	if !ok {
		return
	}

	var req MealRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpLogMeal); err != nil {
		return
	}

	result, err := h.progress.LogMeal(r.Context(), id, progress.MealLog{
		Description: req.Description,
		Calories:    req.Calories,
		Protein:     req.Protein,
	})
	h.respondLog(w, r, OpLogMeal, result, err)
}

// HandleLogWorkout logs a workout
func (h *TrackerHandler) HandleLogWorkout(w http.ResponseWriter, r *http.Request) {
	id, ok := characterIDParam(w, r)
	if !ok {
		return
	}

	var req WorkoutRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpLogWorkout); err != nil {
		return
	}

	result, err := h.progress.LogWorkout(r.Context(), id, progress.WorkoutLog{
		Description:    req.Description,
		WorkoutType:    req.WorkoutType,
		Duration:       req.Duration,
		CaloriesBurned: req.CaloriesBurned,
	})
	h.respondLog(w, r, OpLogWorkout, result, err)
}

// HandleLogHydration logs glasses of water
func (h *TrackerHandler) HandleLogHydration(w http.ResponseWriter, r *http.Request) {
	id, ok := characterIDParam(w, r)
	if !ok {
		return
	}

	var req LogHydrationRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpLogHydration); err != nil {
		return
	}

	result, err := h.progress.LogHydration(r.Context(), id, req.Glasses)
	h.respondLog(w, r, OpLogHydration, result, err)
}

func (h *TrackerHandler) respondLog(w http.ResponseWriter, r *http.Request, op string, result *progress.LogResult, err error) {
	resp := LogResponse{LogResult: result}
	if err != nil {
		if !errors.Is(err, domain.ErrPartialFailure) || result == nil {
			respondServiceError(w, r, op, err)
			return
		}
		logger.FromContext(r.Context()).Warn(op, "error", err)
		resp.Warning = MsgPartialFailure
	}
	respondJSON(w, http.StatusCreated, resp)
}
