package bench

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Attempt is one scenario outcome as it appears in run logs.
type Attempt struct {
	Size               int        `json:"size"`
	Moves              int        `json:"moves"`
	Solved             bool       `json:"solved"`
	Reason             string     `json:"reason"`
	Conversation       []Turn     `json:"conversation,omitempty"`
	RunErrors          []RunError `json:"run_errors,omitempty"`
	TimeSpent          float64    `json:"time_spent"`
	APICallsMade       int        `json:"api_calls_made"`
	TotalTokens        int        `json:"total_tokens"`
	Cost               float64    `json:"cost"`
	Predictions        int        `json:"predictions"`
	PredictionsCorrect int        `json:"predictions_correct"`
}

// AttemptFromResult reduces a scenario result to its log form.
func AttemptFromResult(size int, res *Result) Attempt {
	return Attempt{
		Size:               size,
		Moves:              res.Summary.MovesApplied,
		Solved:             res.Summary.Solved,
		Reason:             res.Summary.TerminationReason,
		Conversation:       res.Conversation,
		RunErrors:          res.RunErrors,
		TimeSpent:          res.Summary.TimeSpent,
		APICallsMade:       res.Summary.APICallsMade,
		TotalTokens:        res.Summary.TotalTokens,
		Cost:               res.Summary.Cost,
		Predictions:        res.Summary.Predictions,
		PredictionsCorrect: res.Summary.PredictionsCorrect,
	}
}

// ModelLog is the incrementally saved per-model result file.
type ModelLog struct {
	Provider      string    `json:"provider"`
	Model         string    `json:"model"`
	Attempts      []Attempt `json:"attempts"`
	Timestamp     string    `json:"timestamp"`
	MaxSolvedSize int       `json:"max_solved_size"`
}

// SanitizeModelName makes a model identifier filesystem-safe.
func SanitizeModelName(model string) string {
	if model == "" {
		return "default"
	}
	r := strings.NewReplacer("/", "_", " ", "_", ":", "_")
	return r.Replace(model)
}

// NowTimestamp returns the timestamp format used for run directories.
func NowTimestamp() string {
	return time.Now().Format("20060102_150405")
}

// SaveIncremental writes the current per-model results under the run
// directory, so partial output survives a crashed or interrupted run.
func SaveIncremental(runDir, providerName, model string, attempts []Attempt, timestamp string) (string, error) {
	modelID := fmt.Sprintf("%s_%s", providerName, SanitizeModelName(model))

	maxSolved := 0
	for _, a := range attempts {
		if a.Solved && a.Size > maxSolved {
			maxSolved = a.Size
		}
	}

	logData := ModelLog{
		Provider:      providerName,
		Model:         model,
		Attempts:      attempts,
		Timestamp:     timestamp,
		MaxSolvedSize: maxSolved,
	}

	modelDir := filepath.Join(runDir, modelID)
	if err := os.MkdirAll(modelDir, 0o755); err != nil {
		return "", fmt.Errorf("bench: create log dir: %w", err)
	}

	path := filepath.Join(modelDir, modelID+"_results.json")
	data, err := json.MarshalIndent(logData, "", "  ")
	if err != nil {
		return "", fmt.Errorf("bench: encode log: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("bench: write log: %w", err)
	}
	return path, nil
}
