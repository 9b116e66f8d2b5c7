package handler

import (
	"net/http"

	"github.com/osse101/FitQuest_Go/internal/character"
	"github.com/osse101/FitQuest_Go/internal/domain"
	"github.com/osse101/FitQuest_Go/internal/progress"
)

// CreateCharacterRequest is the body of POST /characters
type CreateCharacterRequest struct {
	Name string `json:"name" validate:"required,max=100,excludesall=\x00\n\r\t"`
}

// GrantXPRequest is the body of POST /characters/{id}/xp
type GrantXPRequest struct {
	Amount      int64  `json:"amount" validate:"min=0,max=1000000"`
	Description string `json:"description" validate:"max=500"`
}

// GrantXPResponse reports the settled grant
type GrantXPResponse struct {
	Character *domain.Character `json:"character"`
	LeveledUp bool              `json:"leveled_up"`
	XPGained  int64             `json:"xp_gained"`
}

// CharacterHandler serves character endpoints
type CharacterHandler struct {
	characters character.Service
	progress   progress.Service
}

// NewCharacterHandler creates a new CharacterHandler
func NewCharacterHandler(characters character.Service, progress progress.Service) *CharacterHandler {
	return &CharacterHandler{characters: characters, progress: progress}
}

// HandleCreateCharacter creates a level 1 character
// @Summary Create character
// @Tags characters
// @Accept json
// @Produce json
// @Param request body CreateCharacterRequest true "Character"
// @Success 201 {object} domain.Character
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/characters [post]
func (h *CharacterHandler) HandleCreateCharacter(w http.ResponseWriter, r *http.Request) {
	var req CreateCharacterRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpCreateCharacter); err != nil {
		return
	}

	char, err := h.characters.CreateCharacter(r.Context(), req.Name)
	if err != nil {
		respondServiceError(w, r, OpCreateCharacter, err)
		return
	}

	respondJSON(w, http.StatusCreated, char)
}

// HandleGetCharacter returns a character
func (h *CharacterHandler) HandleGetCharacter(w http.ResponseWriter, r *http.Request) {
	id, ok := characterIDParam(w, r)
	if !ok {
		return
	}

	char, err := h.characters.GetCharacter(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, OpGetCharacter, err)
		return
	}
	respondJSON(w, http.StatusOK, char)
}

// HandleGrantXP grants XP outside of quests
// @Summary Grant XP
// @Tags characters
// @Accept json
// @Produce json
// @Param id path string true "Character ID"
// @Param request body GrantXPRequest true "Grant"
// @Success 200 {object} GrantXPResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/characters/{id}/xp [post]
func (h *CharacterHandler) HandleGrantXP(w http.ResponseWriter, r *http.Request) {
	id, ok := characterIDParam(w, r)
	if !ok {
		return
	}

	var req GrantXPRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpGrantXP); err != nil {
		return
	}

	result, err := h.progress.GrantXP(r.Context(), id, req.Amount, req.Description)
	if err != nil {
		respondServiceError(w, r, OpGrantXP, err)
		return
	}

	respondJSON(w, http.StatusOK, GrantXPResponse{
		Character: result.Character,
		LeveledUp: result.LeveledUp,
		XPGained:  result.XPGained,
	})
}
