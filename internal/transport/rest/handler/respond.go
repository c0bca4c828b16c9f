package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"unoserver/internal/game"
	"unoserver/internal/logger"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeGameError maps a classified error to its HTTP status.
func writeGameError(w http.ResponseWriter, err error) {
	kind := game.KindOf(err)
	status := statusFor(kind)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.Log.Error("request failed", zap.Error(err))
		msg = "internal error"
	}
	writeJSON(w, status, map[string]string{
		"error": msg,
		"kind":  string(kind),
	})
}

func statusFor(kind game.Kind) int {
	switch kind {
	case game.KindInvalidInput, game.KindInsufficientPlayers, game.KindIllegalCardPlay, game.KindCardNotInHand:
		return http.StatusBadRequest
	case game.KindNotInRoom:
		return http.StatusForbidden
	case game.KindRoomNotFound:
		return http.StatusNotFound
	case game.KindRoomFull, game.KindDuplicatePlayer, game.KindGameInProgress,
		game.KindGameNotStarted, game.KindNotPlayersTurn:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
