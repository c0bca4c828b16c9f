package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"unoserver/internal/service"
)

const (
	defaultTop     = 20
	defaultHistory = 10
	maxListSize    = 100
)

// ScoreHandler serves the leaderboard and game history
type ScoreHandler struct {
	scores *service.ScoreService
}

// NewScoreHandler creates a new score handler
func NewScoreHandler(scores *service.ScoreService) *ScoreHandler {
	return &ScoreHandler{scores: scores}
}

// Leaderboard handles GET /v1/leaderboard?period=week|month|all&top=
func (h *ScoreHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	top := limitParam(r, "top", defaultTop)
	period := r.URL.Query().Get("period")
	if period == "" {
		period = service.PeriodAll
	}

	entries, err := h.scores.GetLeaderboard(r.Context(), period, top)
	if err != nil {
		writeGameError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"period": period, "leaderboard": entries})
}

// Rank handles GET /v1/leaderboard/{player}
func (h *ScoreHandler) Rank(w http.ResponseWriter, r *http.Request) {
	player := mux.Vars(r)["player"]

	rank, err := h.scores.GetRank(r.Context(), player)
	if err != nil {
		writeGameError(w, err)
		return
	}
	if rank < 0 {
		writeError(w, http.StatusNotFound, "player has no wins")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"player": player, "rank": rank})
}

// History handles GET /v1/players/{name}/results
func (h *ScoreHandler) History(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	limit := limitParam(r, "limit", defaultHistory)

	results, err := h.scores.GetHistory(r.Context(), name, limit)
	if err != nil {
		writeGameError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}

// Result handles GET /v1/results/{gameId}
func (h *ScoreHandler) Result(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["gameId"]

	result, err := h.scores.GetResult(r.Context(), gameID)
	if err != nil {
		writeGameError(w, err)
		return
	}
	if result == nil {
		writeError(w, http.StatusNotFound, "result not found")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func limitParam(r *http.Request, key string, def int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || n <= 0 {
		return def
	}
	return min(n, maxListSize)
}
