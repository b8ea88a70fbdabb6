package api

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"

	"github.com/yourusername/sliderbench/pkg/puzzle"
)

// SSEShuffleStep is one replayed shuffle move in the stream.
type SSEShuffleStep struct {
	Step  int         `json:"step"`  // 1-indexed position in the shuffle
	Total int         `json:"total"` // Total shuffle length
	Move  puzzle.Move `json:"move"`
	State string      `json:"state"` // Board after this move
}

// SSEShuffleResult is the final stream event payload.
type SSEShuffleResult struct {
	State      string        `json:"state"` // Final shuffled board
	ShuffleKey []puzzle.Move `json:"shuffle_key"`
	Solution   []puzzle.Move `json:"solution"`
}

// ShuffleSSE streams a shuffle move by move over Server-Sent Events.
// GET /api/shuffle/stream?size=N&moves=M&seed=S
//
// The puzzle is shuffled up front, then the shuffle key is replayed
// against a solved board so each event carries the intermediate state.
func (h *Handlers) ShuffleSSE(w http.ResponseWriter, r *http.Request) {
	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	if h.pool != nil {
		if err := h.pool.AcquireSlow(r.Context()); err != nil {
			writeSSEError(w, "server busy")
			return
		}
		defer h.pool.ReleaseSlow()
	}

	query := r.URL.Query()
	size := parseIntParam(query.Get("size"), 0)
	if size < 2 {
		writeSSEError(w, "size must be at least 2")
		return
	}
	moves := parseIntParam(query.Get("moves"), 0)
	seed := int64(parseIntParam(query.Get("seed"), 0))

	opts := puzzle.Options{Size: size, AutoShuffle: true, ShuffleMoves: moves}
	if seed != 0 {
		opts.Rand = rand.New(rand.NewSource(seed))
	}

	shuffled, err := puzzle.New(opts)
	if err != nil {
		writeSSEError(w, "shuffle failed: "+err.Error())
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeSSEError(w, "streaming not supported")
		return
	}

	// Replay the shuffle against a fresh solved board.
	replay, err := puzzle.New(puzzle.Options{Size: size})
	if err != nil {
		writeSSEError(w, err.Error())
		return
	}

	key := shuffled.ShuffleKey()
	for i, m := range key {
		if r.Context().Err() != nil {
			return
		}
		replay.ApplyMove(m)
		writeSSEEvent(w, "move", SSEShuffleStep{
			Step:  i + 1,
			Total: len(key),
			Move:  m,
			State: replay.StateString(),
		})
		flusher.Flush()
	}

	writeSSEEvent(w, "result", SSEShuffleResult{
		State:      replay.StateString(),
		ShuffleKey: key,
		Solution:   puzzle.ReverseSequence(key),
	})
	flusher.Flush()

	// Send done event to signal completion
	writeSSEEvent(w, "done", nil)
	flusher.Flush()
}

// writeSSEEvent writes a Server-Sent Event to the response.
func writeSSEEvent(w http.ResponseWriter, event string, data interface{}) {
	fmt.Fprintf(w, "event: %s\n", event)
	if data != nil {
		jsonData, _ := json.Marshal(data)
		fmt.Fprintf(w, "data: %s\n", jsonData)
	}
	fmt.Fprintf(w, "\n")
}

// writeSSEError writes an error event and closes the stream.
func writeSSEError(w http.ResponseWriter, message string) {
	writeSSEEvent(w, "error", map[string]string{"error": message})
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
}

// parseIntParam parses an integer from a string with a default value.
func parseIntParam(s string, defaultVal int) int {
	if s == "" {
		return defaultVal
	}
	var val int
	if _, err := fmt.Sscanf(s, "%d", &val); err != nil {
		return defaultVal
	}
	return val
}
