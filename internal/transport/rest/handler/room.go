package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"unoserver/internal/service"
)

// RoomHandler handles room endpoints
type RoomHandler struct {
	registry *service.Registry
	games    *service.GameService
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(registry *service.Registry, games *service.GameService) *RoomHandler {
	return &RoomHandler{
		registry: registry,
		games:    games,
	}
}

// PlayerRequest is the request body for create, join and leave
type PlayerRequest struct {
	PlayerName string `json:"playerName"`
}

// Create handles POST /v1/rooms
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req PlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	status, err := h.registry.CreateRoom(r.Context(), req.PlayerName)
	if err != nil {
		writeGameError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, status)
}

// Get handles GET /v1/rooms/{code}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	status, err := h.registry.GetRoom(code)
	if err != nil {
		writeGameError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, status)
}

// Join handles POST /v1/rooms/{code}/join
func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	var req PlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	status, err := h.registry.JoinRoom(r.Context(), code, req.PlayerName)
	if err != nil {
		writeGameError(w, err)
		return
	}
	_ = h.games.JoinNotify(r.Context(), code, req.PlayerName)

	writeJSON(w, http.StatusOK, status)
}

// Leave handles POST /v1/rooms/{code}/leave
func (h *RoomHandler) Leave(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	var req PlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	status, err := h.games.LeaveRoom(r.Context(), code, req.PlayerName)
	if err != nil {
		writeGameError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, status)
}

// Delete handles DELETE /v1/rooms/{code}
func (h *RoomHandler) Delete(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	if err := h.games.RemoveRoom(r.Context(), code); err != nil {
		writeGameError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
