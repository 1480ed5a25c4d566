// Package httpapi serves the leaderboard read-only over HTTP.
package httpapi

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/vovakirdan/tui-blocks/internal/registry"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

// RouterConfig holds the router's dependencies.
type RouterConfig struct {
	Logger *log.Logger
	Board  storage.Leaderboard
	// Modes are the rankable modes. Requests for other modes get 404.
	Modes []registry.ModeInfo
}

// NewRouter builds the API routes.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	h := newHandler(cfg.Board, cfg.Modes)

	r.HandleFunc("/healthz", healthHandler).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recovery(cfg.Logger))
	api.Use(logging(cfg.Logger))

	api.HandleFunc("/modes", h.listModes).Methods(http.MethodGet)
	api.HandleFunc("/scores/{mode}", h.topScores).Methods(http.MethodGet)
	api.HandleFunc("/scores/{mode}/rank/{session}", h.rank).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
