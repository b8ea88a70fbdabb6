package api

import (
	"encoding/json"
	"math/rand"
	"net/http"

	"github.com/yourusername/sliderbench/pkg/puzzle"
)

// Handlers holds the HTTP handlers and session store.
type Handlers struct {
	store   *SessionStore
	version string
	pool    *WorkerPool
}

// NewHandlers creates a new Handlers instance without a worker pool.
func NewHandlers(store *SessionStore, version string) *Handlers {
	return &Handlers{
		store:   store,
		version: version,
		pool:    nil,
	}
}

// NewHandlersWithPool creates a new Handlers instance with a worker pool.
func NewHandlersWithPool(store *SessionStore, version string, pool *WorkerPool) *Handlers {
	return &Handlers{
		store:   store,
		version: version,
		pool:    pool,
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, msg string, code string) {
	writeJSON(w, status, ErrorResponse{
		Error: msg,
		Code:  code,
	})
}

// acquireFast takes a fast pool slot when a pool is configured.
// Returns false after writing the error response when the slot could
// not be acquired.
func (h *Handlers) acquireFast(w http.ResponseWriter, r *http.Request) bool {
	if h.pool == nil {
		return true
	}
	if err := h.pool.AcquireFast(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "server busy", "SERVER_BUSY")
		return false
	}
	return true
}

func (h *Handlers) releaseFast() {
	if h.pool != nil {
		h.pool.ReleaseFast()
	}
}

// buildPuzzle constructs a puzzle from a creation request.
func buildPuzzle(req *NewPuzzleRequest) (*puzzle.Puzzle, error) {
	opts := puzzle.Options{
		Size:         req.Size,
		AutoShuffle:  !req.NoShuffle,
		ShuffleMoves: req.ShuffleMoves,
		Letters:      req.Letters,
	}
	if req.Seed != 0 {
		opts.Rand = rand.New(rand.NewSource(req.Seed))
	}
	return puzzle.New(opts)
}

// Health handles GET /api/health
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:   "ok",
		Version:  h.version,
		Sessions: h.store.Len(),
	}

	// Include pool stats if available
	if h.pool != nil {
		stats := h.pool.Stats()
		resp.Pool = &stats
	}

	writeJSON(w, http.StatusOK, resp)
}

// NewPuzzle handles POST /api/puzzle
func (h *Handlers) NewPuzzle(w http.ResponseWriter, r *http.Request) {
	if !h.acquireFast(w, r) {
		return
	}
	defer h.releaseFast()

	var req NewPuzzleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}

	p, err := buildPuzzle(&req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "INVALID_PUZZLE")
		return
	}

	sess, err := h.store.Create(p)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error(), "SESSION_LIMIT")
		return
	}

	var resp *PuzzleResponse
	sess.WithPuzzle(func(p *puzzle.Puzzle) {
		resp = puzzleToResponse(sess.ID, p)
	})
	writeJSON(w, http.StatusOK, resp)
}

// State handles GET /api/puzzle/state?session=ID
func (h *Handlers) State(w http.ResponseWriter, r *http.Request) {
	if !h.acquireFast(w, r) {
		return
	}
	defer h.releaseFast()

	id := r.URL.Query().Get("session")
	if id == "" {
		writeError(w, http.StatusBadRequest, "session is required", "MISSING_SESSION")
		return
	}

	sess, ok := h.store.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session", "UNKNOWN_SESSION")
		return
	}

	var resp *PuzzleResponse
	sess.WithPuzzle(func(p *puzzle.Puzzle) {
		resp = puzzleToResponse(sess.ID, p)
	})
	writeJSON(w, http.StatusOK, resp)
}

// Move handles POST /api/puzzle/move
func (h *Handlers) Move(w http.ResponseWriter, r *http.Request) {
	if !h.acquireFast(w, r) {
		return
	}
	defer h.releaseFast()

	var req MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}

	if req.SessionID == "" {
		writeError(w, http.StatusBadRequest, "session_id is required", "MISSING_SESSION")
		return
	}
	if req.Notation == "" && req.Move == nil {
		writeError(w, http.StatusBadRequest, "notation or move is required", "MISSING_MOVE")
		return
	}

	sess, ok := h.store.Get(req.SessionID)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session", "UNKNOWN_SESSION")
		return
	}

	var resp MoveResponse
	sess.WithPuzzle(func(p *puzzle.Puzzle) {
		m := puzzle.Move{}
		if req.Notation != "" {
			parsed, err := puzzle.ParseMove(req.Notation, p.Size())
			if err != nil {
				resp = MoveResponse{OK: false, Message: err.Error(), State: p.StateString(), Solved: p.IsSolved()}
				return
			}
			m = parsed
		} else {
			m = *req.Move
		}

		ok, msg := p.ApplyMove(m)
		resp = MoveResponse{OK: ok, Message: msg, State: p.StateString(), Solved: p.IsSolved()}
	})
	writeJSON(w, http.StatusOK, resp)
}

// Prediction handles POST /api/puzzle/predict
func (h *Handlers) Prediction(w http.ResponseWriter, r *http.Request) {
	if !h.acquireFast(w, r) {
		return
	}
	defer h.releaseFast()

	var req PredictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}

	if req.SessionID == "" {
		writeError(w, http.StatusBadRequest, "session_id is required", "MISSING_SESSION")
		return
	}

	sess, ok := h.store.Get(req.SessionID)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session", "UNKNOWN_SESSION")
		return
	}

	var resp PredictionResponse
	sess.WithPuzzle(func(p *puzzle.Puzzle) {
		row, col, found := p.TilePosition(req.Tile)
		resp = PredictionResponse{
			Correct: p.ValidatePrediction(req.Tile, req.Claim),
			Found:   found,
			Row:     row,
			Col:     col,
		}
	})
	writeJSON(w, http.StatusOK, resp)
}

// Solution handles GET /api/puzzle/solution?session=ID
func (h *Handlers) Solution(w http.ResponseWriter, r *http.Request) {
	if !h.acquireFast(w, r) {
		return
	}
	defer h.releaseFast()

	id := r.URL.Query().Get("session")
	if id == "" {
		writeError(w, http.StatusBadRequest, "session is required", "MISSING_SESSION")
		return
	}

	sess, ok := h.store.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session", "UNKNOWN_SESSION")
		return
	}

	var resp SolutionResponse
	sess.WithPuzzle(func(p *puzzle.Puzzle) {
		key := p.ShuffleKey()
		resp = SolutionResponse{
			SessionID:  sess.ID,
			ShuffleKey: key,
			Solution:   puzzle.ReverseSequence(key),
		}
	})
	writeJSON(w, http.StatusOK, resp)
}

// CloseSession handles DELETE /api/puzzle?session=ID
func (h *Handlers) CloseSession(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("session")
	if id == "" {
		writeError(w, http.StatusBadRequest, "session is required", "MISSING_SESSION")
		return
	}

	h.store.Delete(id)
	writeJSON(w, http.StatusOK, map[string]string{"status": "closed"})
}
