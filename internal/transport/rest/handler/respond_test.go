package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"unoserver/internal/game"
)

func TestStatusFor(t *testing.T) {
	tests := map[game.Kind]int{
		game.KindInvalidInput:    http.StatusBadRequest,
		game.KindRoomNotFound:    http.StatusNotFound,
		game.KindRoomFull:        http.StatusConflict,
		game.KindDuplicatePlayer: http.StatusConflict,
		game.KindGameInProgress:  http.StatusConflict,
		game.KindNotInRoom:       http.StatusForbidden,
		game.KindInternal:        http.StatusInternalServerError,
	}
	for kind, want := range tests {
		if got := statusFor(kind); got != want {
			t.Errorf("statusFor(%s) = %d, want %d", kind, got, want)
		}
	}
}

func TestWriteGameErrorHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	writeGameError(rec, errors.New("dial tcp 10.0.0.3:27017: refused"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "10.0.0.3") {
		t.Errorf("body leaks detail: %s", rec.Body.String())
	}
}
