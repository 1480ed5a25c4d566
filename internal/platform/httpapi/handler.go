package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/vovakirdan/tui-blocks/internal/registry"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

const maxLimit = 100

type handler struct {
	board storage.Leaderboard
	modes []registry.ModeInfo
	known map[string]bool
}

func newHandler(board storage.Leaderboard, modes []registry.ModeInfo) *handler {
	known := make(map[string]bool, len(modes))
	for _, m := range modes {
		known[m.ID] = true
	}
	return &handler{board: board, modes: modes, known: known}
}

type modeResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type scoreResponse struct {
	Rank          int       `json:"rank"`
	SessionID     string    `json:"session_id"`
	Player        string    `json:"player"`
	Score         int       `json:"score"`
	Lines         int       `json:"lines"`
	Level         int       `json:"level"`
	Pieces        int       `json:"pieces"`
	Tetrises      int       `json:"tetrises"`
	TSpins        int       `json:"tspins"`
	PerfectClears int       `json:"perfect_clears"`
	MaxCombo      int       `json:"max_combo"`
	DurationMs    int64     `json:"duration_ms"`
	CreatedAt     time.Time `json:"created_at"`
}

type scoresResponse struct {
	Mode   string          `json:"mode"`
	Scores []scoreResponse `json:"scores"`
}

type rankResponse struct {
	Mode      string `json:"mode"`
	SessionID string `json:"session_id"`
	Rank      int    `json:"rank"`
}

func scoreFromResult(rank int, r storage.Result) scoreResponse {
	return scoreResponse{
		Rank:          rank,
		SessionID:     r.SessionID,
		Player:        r.Player,
		Score:         r.Score,
		Lines:         r.Lines,
		Level:         r.Level,
		Pieces:        r.Pieces,
		Tetrises:      r.Tetrises,
		TSpins:        r.TSpins,
		PerfectClears: r.PerfectClears,
		MaxCombo:      r.MaxCombo,
		DurationMs:    r.Duration.Milliseconds(),
		CreatedAt:     r.CreatedAt,
	}
}

// listModes handles GET /api/v1/modes
func (h *handler) listModes(w http.ResponseWriter, _ *http.Request) {
	out := make([]modeResponse, 0, len(h.modes))
	for _, m := range h.modes {
		out = append(out, modeResponse{ID: m.ID, Title: m.Title, Description: m.Description})
	}
	writeJSON(w, http.StatusOK, out)
}

// topScores handles GET /api/v1/scores/{mode}?limit=N
func (h *handler) topScores(w http.ResponseWriter, r *http.Request) {
	mode, ok := h.mode(w, r)
	if !ok {
		return
	}

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxLimit {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	resp := scoresResponse{Mode: mode, Scores: []scoreResponse{}}
	if h.board != nil {
		results, err := h.board.Top(r.Context(), mode, limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "leaderboard unavailable")
			return
		}
		for i, res := range results {
			resp.Scores = append(resp.Scores, scoreFromResult(i+1, res))
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// rank handles GET /api/v1/scores/{mode}/rank/{session}
func (h *handler) rank(w http.ResponseWriter, r *http.Request) {
	mode, ok := h.mode(w, r)
	if !ok {
		return
	}
	session := mux.Vars(r)["session"]

	ranker, ok := h.board.(storage.Ranker)
	if !ok {
		writeError(w, http.StatusNotImplemented, "ranking is not available")
		return
	}

	pos, err := ranker.Rank(r.Context(), mode, session)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "session not found")
	case err != nil:
		writeError(w, http.StatusInternalServerError, "leaderboard unavailable")
	default:
		writeJSON(w, http.StatusOK, rankResponse{Mode: mode, SessionID: session, Rank: pos})
	}
}

func (h *handler) mode(w http.ResponseWriter, r *http.Request) (string, bool) {
	mode := mux.Vars(r)["mode"]
	if len(h.known) > 0 && !h.known[mode] {
		writeError(w, http.StatusNotFound, "unknown mode "+strconv.Quote(mode))
		return "", false
	}
	return mode, true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
