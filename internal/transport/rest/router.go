package rest

import (
	"net/http"

	"github.com/gorilla/mux"

	"unoserver/internal/service"
	"unoserver/internal/transport/rest/handler"
	"unoserver/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	Registry    *service.Registry
	Games       *service.GameService
	Scores      *service.ScoreService // nil disables the score routes
	WSHub       *ws.Hub
	CORSOrigins string
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	roomHandler := handler.NewRoomHandler(c.Registry, c.Games)

	// CORS middleware (apply first)
	r.Use(corsMiddleware(c.CORSOrigins))

	v1 := r.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/rooms", roomHandler.Create).Methods("POST", "OPTIONS")
	v1.HandleFunc("/rooms/{code}", roomHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/rooms/{code}", roomHandler.Delete).Methods("DELETE", "OPTIONS")
	v1.HandleFunc("/rooms/{code}/join", roomHandler.Join).Methods("POST", "OPTIONS")
	v1.HandleFunc("/rooms/{code}/leave", roomHandler.Leave).Methods("POST", "OPTIONS")

	if c.Scores != nil {
		scoreHandler := handler.NewScoreHandler(c.Scores)
		v1.HandleFunc("/leaderboard", scoreHandler.Leaderboard).Methods("GET", "OPTIONS")
		v1.HandleFunc("/leaderboard/{player}", scoreHandler.Rank).Methods("GET", "OPTIONS")
		v1.HandleFunc("/players/{name}/results", scoreHandler.History).Methods("GET", "OPTIONS")
		v1.HandleFunc("/results/{gameId}", scoreHandler.Result).Methods("GET", "OPTIONS")
	}

	if c.WSHub != nil {
		wsHandler := ws.NewHandler(c.WSHub, c.Registry, c.Games)
		v1.HandleFunc("/ws/rooms/{code}", wsHandler.PlayerWS).Methods("GET")
	}

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	return r
}

func corsMiddleware(allowedOrigins string) mux.MiddlewareFunc {
	if allowedOrigins == "" {
		allowedOrigins = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
