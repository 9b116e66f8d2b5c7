package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/FitQuest_Go/internal/domain"
	"github.com/osse101/FitQuest_Go/internal/progress"
	"github.com/osse101/FitQuest_Go/internal/quest"
)

// CreateQuestRequest is the body of POST /characters/{id}/quests
type CreateQuestRequest struct {
	Name        string `json:"name" validate:"required,max=100,excludesall=\x00\n\r\t"`
	Description string `json:"description" validate:"max=500"`
	Type        string `json:"type" validate:"required,quest_type"`
	Metric      string `json:"metric" validate:"quest_metric"`
	TargetValue int64  `json:"target_value" validate:"min=1"`
	XPReward    int64  `json:"xp_reward" validate:"min=1,max=100000"`
	Daily       bool   `json:"daily"`
}

// IssueQuestsRequest is the body of POST /characters/{id}/quests/issue
type IssueQuestsRequest struct {
	Daily bool `json:"daily"`
}

// IssueQuestsResponse lists the quests created from the pool
type IssueQuestsResponse struct {
	Message string         `json:"message"`
	Quests  []domain.Quest `json:"quests"`
}

// QuestHandler serves quest endpoints
type QuestHandler struct {
	quests   quest.Service
	progress progress.Service
}

// NewQuestHandler creates a new QuestHandler
func NewQuestHandler(quests quest.Service, progress progress.Service) *QuestHandler {
	return &QuestHandler{quests: quests, progress: progress}
}

// HandleGetActiveQuests lists incomplete quests ordered by id
// @Summary Active quests
// @Tags quests
// @Produce json
// @Param id path string true "Character ID"
// @Success 200 {array} domain.Quest
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/characters/{id}/quests/active [get]
func (h *QuestHandler) HandleGetActiveQuests(w http.ResponseWriter, r *http.Request) {
	id, ok := characterIDParam(w, r)
	if !ok {
		return
	}

	quests, err := h.progress.GetActiveQuests(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, OpGetActiveQuests, err)
		return
	}
	respondJSON(w, http.StatusOK, quests)
}

// HandleGetQuests lists every quest of the character, completed ones included
func (h *QuestHandler) HandleGetQuests(w http.ResponseWriter, r *http.Request) {
	id, ok := characterIDParam(w, r)
	if !ok {
		return
	}

	quests, err := h.progress.GetQuests(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, OpGetQuests, err)
		return
	}
	respondJSON(w, http.StatusOK, quests)
}

// HandleGetQuest returns a single quest by id
func (h *QuestHandler) HandleGetQuest(w http.ResponseWriter, r *http.Request) {
	questID, err := strconv.ParseInt(chi.URLParam(r, "questID"), 10, 64)
	if err != nil || questID <= 0 {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidQuestID)
		return
	}

	q, err := h.quests.GetQuest(r.Context(), questID)
	if err != nil {
		respondServiceError(w, r, OpGetQuest, err)
		return
	}
	respondJSON(w, http.StatusOK, q)
}

// HandleCreateQuest creates a quest for the character
func (h *QuestHandler) HandleCreateQuest(w http.ResponseWriter, r *http.Request) {
	id, ok := characterIDParam(w, r)
	if !ok {
		return
	}

	var req CreateQuestRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpCreateQuest); err != nil {
		return
	}

	created, err := h.quests.CreateQuest(r.Context(), &domain.Quest{
		CharacterID: id,
		Name:        req.Name,
		Description: req.Description,
		Type:        domain.QuestType(strings.ToLower(req.Type)),
		Metric:      domain.QuestMetric(req.Metric),
		TargetValue: req.TargetValue,
		XPReward:    req.XPReward,
		IsDaily:     req.Daily,
	})
	if err != nil {
		respondServiceError(w, r, OpCreateQuest, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// HandleIssueQuests issues new quest instances from the quest pool
func (h *QuestHandler) HandleIssueQuests(w http.ResponseWriter, r *http.Request) {
	id, ok := characterIDParam(w, r)
	if !ok {
		return
	}

	var req IssueQuestsRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpIssueQuests); err != nil {
		return
	}

	issued, err := h.progress.IssueQuests(r.Context(), id, req.Daily)
	if err != nil {
		respondServiceError(w, r, OpIssueQuests, err)
		return
	}

	msg := MsgQuestsIssued
	if len(issued) == 0 {
		msg = MsgNoQuestsAvailable
		issued = []domain.Quest{}
	}
	respondJSON(w, http.StatusCreated, IssueQuestsResponse{Message: msg, Quests: issued})
}
