package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/yourusername/sliderbench/pkg/provider"
	"github.com/yourusername/sliderbench/pkg/puzzle"
)

// Chatter is the slice of the provider client the runner needs.
// Tests substitute scripted implementations.
type Chatter interface {
	Chat(ctx context.Context, model string, messages []provider.Message) (reply, reasoning string, usage provider.Usage, err error)
}

// moveLimits caps the moves a model may spend per grid size. Sizes
// outside the table fall back to the shuffle length.
var moveLimits = map[int]int{
	3: 50,
	4: 100,
	5: 200,
	6: 400,
}

// ScenarioConfig describes one benchmark scenario.
type ScenarioConfig struct {
	GridSize    int           // Grid size N (>= 2)
	Model       string        // Model identifier passed to the provider
	Shuffle     []puzzle.Move // Shared shuffle applied before the run
	Client      Chatter       // Provider client
	MaxMoves    int           // Move budget (0 = per-size default)
	Predictions bool          // Ask for a tile prediction each turn
}

// RunScenario plays one scenario to completion. Configuration
// problems (bad grid size, missing client) are returned as errors;
// everything that happens during the run - API failures, unparseable
// replies, illegal moves - is recorded in the Result instead.
func RunScenario(ctx context.Context, cfg ScenarioConfig) (*Result, error) {
	if cfg.Client == nil {
		return nil, fmt.Errorf("bench: client is required")
	}
	p, err := puzzle.New(puzzle.Options{Size: cfg.GridSize})
	if err != nil {
		return nil, fmt.Errorf("bench: %w", err)
	}

	res := &Result{}

	// Apply the shared shuffle. Moves with an index outside this grid
	// are skipped so one sequence can serve several sizes.
	for _, m := range cfg.Shuffle {
		if m.Index < 1 || m.Index > cfg.GridSize {
			continue
		}
		if ok, msg := p.ApplyMove(m); !ok {
			res.Summary = Summary{
				TerminationReason: ReasonShuffleError,
				ErrorMessage:      msg,
				FinalBoardState:   p.StateString(),
			}
			res.RunErrors = append(res.RunErrors, RunError{Type: "Shuffle Error", Details: msg})
			return res, nil
		}
	}

	if p.IsSolved() {
		res.Summary = Summary{
			TerminationReason: ReasonAlreadySolved,
			Solved:            true,
			FinalBoardState:   p.StateString(),
		}
		return res, nil
	}

	runGameLoop(ctx, cfg, p, res)
	return res, nil
}

func runGameLoop(ctx context.Context, cfg ScenarioConfig, p *puzzle.Puzzle, res *Result) {
	maxMoves := cfg.MaxMoves
	if maxMoves <= 0 {
		if limit, ok := moveLimits[cfg.GridSize]; ok {
			maxMoves = limit
		} else {
			maxMoves = len(cfg.Shuffle)
		}
	}

	var (
		history          []provider.Message
		moveSequence     []puzzle.Move
		moveCounter      int
		apiCalls         int
		totalTime        float64
		reason           string
		errorMessage     string
		failedParsePrior bool
		predictionTile   int
	)

	for !p.IsSolved() {
		if moveCounter >= maxMoves {
			reason = ReasonMoveLimit
			break
		}

		mode := promptFollowup
		switch {
		case failedParsePrior:
			mode = promptFailedParse
		case len(history) == 0:
			mode = promptInitial
		}

		prompt := buildPrompt(mode, p, moveCounter)
		askedPrediction := false
		if cfg.Predictions && mode != promptFailedParse {
			predictionTile = nextPredictionTile(predictionTile, cfg.GridSize)
			prompt += predictionPrompt(predictionTile)
			askedPrediction = true
		}

		messages := append(append([]provider.Message{}, history...), provider.Message{Role: "user", Content: prompt})

		start := time.Now()
		reply, reasoning, usage, err := cfg.Client.Chat(ctx, cfg.Model, messages)
		totalTime += time.Since(start).Seconds()
		apiCalls++
		res.Summary.TotalTokens += usage.TotalTokens
		res.Summary.Cost += usage.Cost

		if err != nil {
			reason = ReasonAPIError
			errorMessage = err.Error()
			res.RunErrors = append(res.RunErrors, RunError{
				Type:          "API Error",
				APICallNumber: apiCalls,
				Details:       err.Error(),
			})
			break
		}

		history = append(history,
			provider.Message{Role: "user", Content: prompt},
			provider.Message{Role: "assistant", Content: reply},
		)
		res.Conversation = append(res.Conversation,
			Turn{Role: "user", Content: prompt},
			Turn{Role: "assistant", Content: reply, Reasoning: reasoning},
		)

		moves, ok := extractMoves(reply, cfg.GridSize)
		if !ok {
			if !failedParsePrior {
				// One free retry with the format re-explained.
				failedParsePrior = true
				continue
			}
			reason = ReasonBadResponse
			errorMessage = "Failed to parse a valid move or moves from LLM response."
			res.RunErrors = append(res.RunErrors, RunError{
				Type:            "Parsing Failure",
				APICallNumber:   apiCalls,
				Details:         errorMessage,
				ResponseContent: reply,
			})
			break
		}
		failedParsePrior = false

		for _, m := range moves {
			if moveCounter >= maxMoves {
				reason = ReasonMoveLimit
				break
			}
			ok, msg := p.ApplyMove(m)
			if !ok {
				reason = ReasonBadMove
				errorMessage = fmt.Sprintf("Failed to apply LLM move: %s", msg)
				res.RunErrors = append(res.RunErrors, RunError{
					Type:          "Invalid Move Applied",
					APICallNumber: apiCalls,
					Details:       errorMessage,
				})
				break
			}
			moveSequence = append(moveSequence, m)
			moveCounter++
			if p.IsSolved() {
				break
			}
		}

		// Grade the prediction against the board the moves produced.
		// A format-retry turn never re-asks, so it is never graded.
		if askedPrediction && reason != ReasonBadMove {
			res.Summary.Predictions++
			if claim, found := extractPrediction(reply); found && p.ValidatePrediction(predictionTile, claim) {
				res.Summary.PredictionsCorrect++
			}
		}

		if reason != "" {
			break
		}
	}

	if reason == "" {
		if p.IsSolved() {
			reason = ReasonSolved
		} else {
			reason = "Unknown (Loop Exit)"
		}
	}

	res.Summary.TerminationReason = reason
	res.Summary.ErrorMessage = errorMessage
	res.Summary.Solved = p.IsSolved()
	res.Summary.APICallsMade = apiCalls
	res.Summary.MovesApplied = moveCounter
	res.Summary.FinalBoardState = p.StateString()
	res.Summary.MoveSequence = moveSequence
	res.Summary.TimeSpent = totalTime
}

// nextPredictionTile cycles through 1..N² so every tile gets asked
// about over a long run.
func nextPredictionTile(prev, size int) int {
	next := prev + 1
	if next > size*size {
		next = 1
	}
	return next
}
