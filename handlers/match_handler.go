package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/Dosada05/tennis-system/models"
	"github.com/Dosada05/tennis-system/services"
)

type MatchHandler struct {
	matchService   *services.MatchService
	bracketService services.BracketService
}

func NewMatchHandler(matchService *services.MatchService, bracketService services.BracketService) *MatchHandler {
	return &MatchHandler{
		matchService:   matchService,
		bracketService: bracketService,
	}
}

// RecordScore принимает сырой счёт по сетам; статус и победитель
// вычисляются на сервере.
func (h *MatchHandler) RecordScore(w http.ResponseWriter, r *http.Request) {
	matchID, err := idParam(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Set1 models.SetScore `json:"set1"`
		Set2 models.SetScore `json:"set2"`
		Set3 models.SetScore `json:"set3"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.RecordScore(r.Context(), matchID, [3]models.SetScore{input.Set1, input.Set2, input.Set3})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Create добавляет одиночный матч вручную, вне сгенерированной сетки.
func (h *MatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input struct {
		CategoryID     int `json:"category_id"`
		Participant1ID int `json:"participant1_id"`
		Participant2ID int `json:"participant2_id"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.CategoryID <= 0 || input.Participant1ID <= 0 || input.Participant2ID <= 0 {
		badRequestResponse(w, r, errors.New("category_id, participant1_id, and participant2_id are required"))
		return
	}

	match, err := h.matchService.CreateMatch(r.Context(), input.CategoryID, input.Participant1ID, input.Participant2ID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Delete удаляет матч без записанного результата.
func (h *MatchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	matchID, err := idParam(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.matchService.DeleteMatch(r.Context(), matchID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *MatchHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := idParam(r, "categoryID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matches, err := h.matchService.ListByCategory(r.Context(), categoryID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) Standings(w http.ResponseWriter, r *http.Request) {
	categoryID, err := idParam(r, "categoryID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	standings, err := h.matchService.Standings(r.Context(), categoryID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GenerateGroupFixtures строит круговую сетку категории. Повторный вызов
// досоздаёт только недостающие пары.
func (h *MatchHandler) GenerateGroupFixtures(w http.ResponseWriter, r *http.Request) {
	h.generateRound(w, r, h.bracketService.GenerateGroupFixtures)
}

func (h *MatchHandler) GenerateSemiFinals(w http.ResponseWriter, r *http.Request) {
	h.generateRound(w, r, h.bracketService.GenerateSemiFinals)
}

func (h *MatchHandler) GenerateFinals(w http.ResponseWriter, r *http.Request) {
	h.generateRound(w, r, h.bracketService.GenerateFinals)
}

func (h *MatchHandler) generateRound(
	w http.ResponseWriter,
	r *http.Request,
	generate func(ctx context.Context, categoryID int) ([]*models.Match, error),
) {
	categoryID, err := idParam(r, "categoryID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matches, err := generate(r.Context(), categoryID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
