// Package api provides the HTTP/JSON REST API for the Rubiks Slider
// engine. Puzzles live in server-side sessions: clients create a
// session, apply moves against it, and query state, predictions, or
// the ground-truth solution.
package api

import "github.com/yourusername/sliderbench/pkg/puzzle"

// ============================================================================
// Request Types
// ============================================================================

// NewPuzzleRequest is the request body for creating a puzzle session.
type NewPuzzleRequest struct {
	Size         int   `json:"size"`                    // Grid size N (>= 2)
	ShuffleMoves int   `json:"shuffle_moves,omitempty"` // Shuffle length (0 = derived from size)
	Seed         int64 `json:"seed,omitempty"`          // Shuffle seed (0 = random)
	NoShuffle    bool  `json:"no_shuffle,omitempty"`    // Start solved
	Letters      bool  `json:"letters,omitempty"`       // Letter tile labels instead of numbers
}

// MoveRequest is the request body for applying a move. Either compact
// notation ("R1 L") or the structured form may be supplied; notation
// wins when both are present.
type MoveRequest struct {
	SessionID string       `json:"session_id"`
	Notation  string       `json:"notation,omitempty"` // e.g. "R1 L", "C2 U"
	Move      *puzzle.Move `json:"move,omitempty"`     // Structured form
}

// PredictionRequest is the request body for grading a tile-position claim.
type PredictionRequest struct {
	SessionID string `json:"session_id"`
	Tile      int    `json:"tile"`  // Tile number (1..N*N)
	Claim     string `json:"claim"` // Claimed position, e.g. "R2C3"
}

// ============================================================================
// Response Types
// ============================================================================

// PuzzleResponse describes a session and its current board.
type PuzzleResponse struct {
	SessionID  string `json:"session_id"`
	Size       int    `json:"size"`
	State      string `json:"state"`       // Plain board text
	Labeled    string `json:"labeled"`     // Board text with R/C headers
	Solved     bool   `json:"solved"`      // Whether the board matches the target
	ShuffleLen int    `json:"shuffle_len"` // Number of moves in the shuffle key
}

// MoveResponse reports the outcome of a move application. A rejected
// move is an ordinary outcome, not an HTTP error: OK is false and
// Message carries the engine's reason.
type MoveResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
	State   string `json:"state"`
	Solved  bool   `json:"solved"`
}

// PredictionResponse reports a graded tile-position claim along with
// the tile's actual location.
type PredictionResponse struct {
	Correct bool `json:"correct"`
	Found   bool `json:"found"`         // False when the tile is not on the board
	Row     int  `json:"row,omitempty"` // 1-indexed
	Col     int  `json:"col,omitempty"` // 1-indexed
}

// SolutionResponse exposes the shuffle history and its inverse, the
// ground-truth solving sequence for the session's puzzle.
type SolutionResponse struct {
	SessionID  string        `json:"session_id"`
	ShuffleKey []puzzle.Move `json:"shuffle_key"`
	Solution   []puzzle.Move `json:"solution"`
}

// ErrorResponse is returned when a request itself is unusable.
type ErrorResponse struct {
	Error   string `json:"error"`             // Error message
	Code    string `json:"code,omitempty"`    // Error code
	Details string `json:"details,omitempty"` // Additional details
}

// HealthResponse is the response for health check.
type HealthResponse struct {
	Status   string     `json:"status"`         // "ok" or "error"
	Version  string     `json:"version"`        // Server version
	Sessions int        `json:"sessions"`       // Live puzzle sessions
	Pool     *PoolStats `json:"pool,omitempty"` // Worker pool statistics
}

// ============================================================================
// Helper Functions
// ============================================================================

// puzzleToResponse converts a session's puzzle to an API response.
// Callers hold the session lock.
func puzzleToResponse(id string, p *puzzle.Puzzle) *PuzzleResponse {
	return &PuzzleResponse{
		SessionID:  id,
		Size:       p.Size(),
		State:      p.StateString(),
		Labeled:    p.LabeledStateString(),
		Solved:     p.IsSolved(),
		ShuffleLen: len(p.ShuffleKey()),
	}
}
