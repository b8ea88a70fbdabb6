// Package bench runs Rubiks Slider benchmark scenarios against LLM
// providers: it builds prompts from puzzle state, extracts moves and
// tile predictions from model replies, applies them through the
// puzzle engine, and records graded results.
package bench

import (
	"github.com/yourusername/sliderbench/pkg/puzzle"
)

// Termination reasons for a scenario.
const (
	ReasonSolved        = "Solved"
	ReasonAlreadySolved = "Already Solved"
	ReasonMoveLimit     = "Exceeded Move Limit"
	ReasonAPIError      = "API Error"
	ReasonBadResponse   = "Invalid Move/Response Format"
	ReasonBadMove       = "Invalid Move Applied"
	ReasonShuffleError  = "Internal Shuffle Error"
)

// Turn is one recorded conversation entry.
type Turn struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Reasoning string `json:"reasoning,omitempty"`
}

// RunError describes a failure observed during a scenario.
type RunError struct {
	Type            string `json:"type"`
	APICallNumber   int    `json:"api_call_number,omitempty"`
	Details         string `json:"details"`
	ResponseContent string `json:"response_content,omitempty"`
}

// Summary is the scoreboard for one scenario.
type Summary struct {
	TerminationReason  string        `json:"termination_reason"`
	ErrorMessage       string        `json:"error_message,omitempty"`
	Solved             bool          `json:"solved"`
	APICallsMade       int           `json:"api_calls_made"`
	MovesApplied       int           `json:"total_individual_moves_applied"`
	FinalBoardState    string        `json:"final_board_state"`
	MoveSequence       []puzzle.Move `json:"llm_move_sequence"`
	TimeSpent          float64       `json:"time_spent"`
	TotalTokens        int           `json:"total_tokens"`
	Cost               float64       `json:"cost"`
	Predictions        int           `json:"predictions"`
	PredictionsCorrect int           `json:"predictions_correct"`
}

// Result is the full record of one benchmark scenario.
type Result struct {
	Summary      Summary    `json:"summary"`
	Conversation []Turn     `json:"conversation_history"`
	RunErrors    []RunError `json:"run_errors"`
}
