package bench

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/yourusername/sliderbench/pkg/provider"
	"github.com/yourusername/sliderbench/pkg/puzzle"
)

// scriptedClient replays canned replies; the last reply repeats if
// the runner keeps calling.
type scriptedClient struct {
	replies []string
	failAt  int // 1-based call index that returns an error (0 = never)
	calls   int
}

func (s *scriptedClient) Chat(ctx context.Context, model string, messages []provider.Message) (string, string, provider.Usage, error) {
	s.calls++
	if s.failAt > 0 && s.calls == s.failAt {
		return "", "", provider.Usage{}, fmt.Errorf("simulated API failure")
	}
	i := s.calls - 1
	if i >= len(s.replies) {
		i = len(s.replies) - 1
	}
	return s.replies[i], "", provider.Usage{TotalTokens: 10, Cost: 0.001}, nil
}

func TestRunScenarioSolved(t *testing.T) {
	client := &scriptedClient{replies: []string{"<move>R1 R</move>"}}
	res, err := RunScenario(context.Background(), ScenarioConfig{
		GridSize: 3,
		Model:    "test/model",
		Shuffle:  []puzzle.Move{{Kind: puzzle.KindRow, Index: 1, Direction: puzzle.DirLeft}},
		Client:   client,
	})
	if err != nil {
		t.Fatalf("RunScenario failed: %v", err)
	}
	if !res.Summary.Solved || res.Summary.TerminationReason != ReasonSolved {
		t.Errorf("summary = %+v", res.Summary)
	}
	if res.Summary.MovesApplied != 1 || res.Summary.APICallsMade != 1 {
		t.Errorf("moves=%d calls=%d, want 1/1", res.Summary.MovesApplied, res.Summary.APICallsMade)
	}
	if res.Summary.TotalTokens != 10 {
		t.Errorf("tokens = %d, want 10", res.Summary.TotalTokens)
	}
	if len(res.Conversation) != 2 {
		t.Errorf("conversation has %d turns, want 2", len(res.Conversation))
	}
}

func TestRunScenarioAlreadySolved(t *testing.T) {
	client := &scriptedClient{replies: []string{"<move>R1 L</move>"}}
	res, err := RunScenario(context.Background(), ScenarioConfig{
		GridSize: 3,
		Model:    "m",
		Client:   client,
	})
	if err != nil {
		t.Fatalf("RunScenario failed: %v", err)
	}
	if res.Summary.TerminationReason != ReasonAlreadySolved || !res.Summary.Solved {
		t.Errorf("summary = %+v", res.Summary)
	}
	if client.calls != 0 {
		t.Errorf("no API calls expected, got %d", client.calls)
	}
}

func TestRunScenarioShuffleSkipsOutOfRangeMoves(t *testing.T) {
	// A shared sequence generated for a larger grid: index 5 is
	// skipped on a 3x3, the rest applies.
	shuffle := []puzzle.Move{
		{Kind: puzzle.KindRow, Index: 5, Direction: puzzle.DirLeft},
		{Kind: puzzle.KindRow, Index: 1, Direction: puzzle.DirLeft},
	}
	client := &scriptedClient{replies: []string{"<move>R1 R</move>"}}
	res, err := RunScenario(context.Background(), ScenarioConfig{
		GridSize: 3, Model: "m", Shuffle: shuffle, Client: client,
	})
	if err != nil {
		t.Fatalf("RunScenario failed: %v", err)
	}
	if !res.Summary.Solved {
		t.Errorf("summary = %+v", res.Summary)
	}
}

func TestRunScenarioFailedParseRetry(t *testing.T) {
	client := &scriptedClient{replies: []string{
		"I think I should move row one to the left.",
		"<move>R1 R</move>",
	}}
	res, err := RunScenario(context.Background(), ScenarioConfig{
		GridSize: 3,
		Model:    "m",
		Shuffle:  []puzzle.Move{{Kind: puzzle.KindRow, Index: 1, Direction: puzzle.DirLeft}},
		Client:   client,
	})
	if err != nil {
		t.Fatalf("RunScenario failed: %v", err)
	}
	if !res.Summary.Solved {
		t.Errorf("summary = %+v", res.Summary)
	}
	if res.Summary.APICallsMade != 2 {
		t.Errorf("calls = %d, want 2 (one free retry)", res.Summary.APICallsMade)
	}

	// The retry prompt must re-explain the format.
	retryPrompt := res.Conversation[2].Content
	if !strings.Contains(retryPrompt, "could not be parsed") {
		t.Errorf("retry prompt missing format reminder:\n%s", retryPrompt)
	}
}

func TestRunScenarioTwoFailedParsesTerminate(t *testing.T) {
	client := &scriptedClient{replies: []string{"nope", "still nope"}}
	res, err := RunScenario(context.Background(), ScenarioConfig{
		GridSize: 3,
		Model:    "m",
		Shuffle:  []puzzle.Move{{Kind: puzzle.KindRow, Index: 1, Direction: puzzle.DirLeft}},
		Client:   client,
	})
	if err != nil {
		t.Fatalf("RunScenario failed: %v", err)
	}
	if res.Summary.TerminationReason != ReasonBadResponse || res.Summary.Solved {
		t.Errorf("summary = %+v", res.Summary)
	}
	if len(res.RunErrors) != 1 || res.RunErrors[0].Type != "Parsing Failure" {
		t.Errorf("run errors = %+v", res.RunErrors)
	}
}

func TestRunScenarioAPIError(t *testing.T) {
	client := &scriptedClient{replies: []string{"<move>R1 R</move>"}, failAt: 1}
	res, err := RunScenario(context.Background(), ScenarioConfig{
		GridSize: 3,
		Model:    "m",
		Shuffle:  []puzzle.Move{{Kind: puzzle.KindRow, Index: 1, Direction: puzzle.DirLeft}},
		Client:   client,
	})
	if err != nil {
		t.Fatalf("RunScenario failed: %v", err)
	}
	if res.Summary.TerminationReason != ReasonAPIError {
		t.Errorf("reason = %s", res.Summary.TerminationReason)
	}
	if len(res.RunErrors) != 1 || res.RunErrors[0].APICallNumber != 1 {
		t.Errorf("run errors = %+v", res.RunErrors)
	}
}

func TestRunScenarioMoveLimit(t *testing.T) {
	// The model shifts row 2 back and forth forever.
	client := &scriptedClient{replies: []string{"<move>R2 L; R2 R</move>"}}
	res, err := RunScenario(context.Background(), ScenarioConfig{
		GridSize: 3,
		Model:    "m",
		Shuffle:  []puzzle.Move{{Kind: puzzle.KindRow, Index: 1, Direction: puzzle.DirLeft}},
		Client:   client,
		MaxMoves: 6,
	})
	if err != nil {
		t.Fatalf("RunScenario failed: %v", err)
	}
	if res.Summary.TerminationReason != ReasonMoveLimit {
		t.Errorf("reason = %s", res.Summary.TerminationReason)
	}
	if res.Summary.MovesApplied != 6 {
		t.Errorf("moves applied = %d, want 6", res.Summary.MovesApplied)
	}
}

func TestRunScenarioPredictions(t *testing.T) {
	// Undoing the shuffle puts tile 1 back at R1C1, which is what the
	// scripted model predicts.
	client := &scriptedClient{replies: []string{"<move>R1 R</move><prediction>R1C1</prediction>"}}
	res, err := RunScenario(context.Background(), ScenarioConfig{
		GridSize:    3,
		Model:       "m",
		Shuffle:     []puzzle.Move{{Kind: puzzle.KindRow, Index: 1, Direction: puzzle.DirLeft}},
		Client:      client,
		Predictions: true,
	})
	if err != nil {
		t.Fatalf("RunScenario failed: %v", err)
	}
	if !res.Summary.Solved {
		t.Fatalf("summary = %+v", res.Summary)
	}
	if res.Summary.Predictions != 1 || res.Summary.PredictionsCorrect != 1 {
		t.Errorf("predictions = %d/%d, want 1/1",
			res.Summary.PredictionsCorrect, res.Summary.Predictions)
	}

	prompt := res.Conversation[0].Content
	if !strings.Contains(prompt, "where will tile 1 be") {
		t.Errorf("prompt missing prediction ask:\n%s", prompt)
	}
}

func TestRunScenarioWrongPrediction(t *testing.T) {
	client := &scriptedClient{replies: []string{"<move>R1 R</move><prediction>R3C3</prediction>"}}
	res, err := RunScenario(context.Background(), ScenarioConfig{
		GridSize:    3,
		Model:       "m",
		Shuffle:     []puzzle.Move{{Kind: puzzle.KindRow, Index: 1, Direction: puzzle.DirLeft}},
		Client:      client,
		Predictions: true,
	})
	if err != nil {
		t.Fatalf("RunScenario failed: %v", err)
	}
	if res.Summary.Predictions != 1 || res.Summary.PredictionsCorrect != 0 {
		t.Errorf("predictions = %d/%d, want 0/1",
			res.Summary.PredictionsCorrect, res.Summary.Predictions)
	}
}

func TestRunScenarioRetryTurnNotGraded(t *testing.T) {
	// The first reply is unparseable, so the retry prompt re-explains
	// the format without re-asking for a prediction. The stray
	// prediction tag in the retry reply must not be graded.
	client := &scriptedClient{replies: []string{
		"I think I should move row one to the right.",
		"<move>R1 R</move><prediction>R1C1</prediction>",
	}}
	res, err := RunScenario(context.Background(), ScenarioConfig{
		GridSize:    3,
		Model:       "m",
		Shuffle:     []puzzle.Move{{Kind: puzzle.KindRow, Index: 1, Direction: puzzle.DirLeft}},
		Client:      client,
		Predictions: true,
	})
	if err != nil {
		t.Fatalf("RunScenario failed: %v", err)
	}
	if !res.Summary.Solved {
		t.Fatalf("summary = %+v", res.Summary)
	}
	if res.Summary.Predictions != 0 || res.Summary.PredictionsCorrect != 0 {
		t.Errorf("predictions = %d/%d, want 0/0 (retry turn was never asked)",
			res.Summary.PredictionsCorrect, res.Summary.Predictions)
	}

	retryPrompt := res.Conversation[2].Content
	if strings.Contains(retryPrompt, "where will tile") {
		t.Errorf("retry prompt should not ask for a prediction:\n%s", retryPrompt)
	}
}

func TestRunScenarioRequiresClient(t *testing.T) {
	if _, err := RunScenario(context.Background(), ScenarioConfig{GridSize: 3}); err == nil {
		t.Error("RunScenario without a client should fail")
	}
}

func TestRunScenarioRejectsBadGridSize(t *testing.T) {
	client := &scriptedClient{replies: []string{"x"}}
	if _, err := RunScenario(context.Background(), ScenarioConfig{GridSize: 1, Client: client}); err == nil {
		t.Error("RunScenario with grid size 1 should fail")
	}
}
