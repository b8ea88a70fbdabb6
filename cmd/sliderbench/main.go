// Command sliderbench runs LLM models against Rubiks Slider puzzles
// and writes per-model result logs.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/yourusername/sliderbench/internal/shufflekey"
	"github.com/yourusername/sliderbench/internal/stats"
	"github.com/yourusername/sliderbench/pkg/bench"
	"github.com/yourusername/sliderbench/pkg/provider"
)

const providerName = "openrouter"

func main() {
	models := flag.String("models", "", "Comma-separated model identifiers (required)")
	sizes := flag.String("sizes", "3-6", "Grid sizes to run, as a range (3-6) or list (3,4,5)")
	attempts := flag.Int("attempts", 1, "Attempts per model per size")
	output := flag.String("output", "benchmark_logs", "Directory for run logs")
	predictions := flag.Bool("predictions", false, "Ask for a tile prediction each turn")
	parquetOut := flag.Bool("parquet", false, "Also write a parquet attempt table for the run")
	stopOnFail := flag.Bool("stop-on-fail", true, "Stop escalating sizes for a model after an unsolved attempt")
	maxMoves := flag.Int("max-moves", 0, "Move budget override (0 = per-size default)")
	apiKey := flag.String("api-key", os.Getenv("OPENROUTER_API_KEY"), "OpenRouter API key (default $OPENROUTER_API_KEY)")
	baseURL := flag.String("base-url", provider.DefaultBaseURL, "Provider base URL")
	timeout := flag.Duration("timeout", 2*time.Minute, "Per-request timeout")
	flag.Parse()

	if *models == "" {
		fmt.Fprintln(os.Stderr, "Error: -models is required")
		fmt.Fprintln(os.Stderr, `Usage: sliderbench -models "openai/gpt-4o,google/gemini-2.5-pro" [-sizes 3-6]`)
		os.Exit(1)
	}

	sizeList, err := parseSizes(*sizes)
	if err != nil {
		log.Fatalf("Invalid -sizes: %v", err)
	}

	client, err := provider.NewClient(provider.Options{
		BaseURL: *baseURL,
		APIKey:  *apiKey,
		Timeout: *timeout,
	})
	if err != nil {
		log.Fatalf("Provider setup failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	timestamp := bench.NowTimestamp()
	runDir := filepath.Join(*output, "run_"+timestamp)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		log.Fatalf("Creating run directory: %v", err)
	}

	log.Printf("Run %s: %s, sizes %v, %d attempt(s) per size", timestamp, *models, sizeList, *attempts)

	var records []bench.AttemptRecord
	for _, model := range strings.Split(*models, ",") {
		model = strings.TrimSpace(model)
		if model == "" {
			continue
		}
		modelAttempts := runModel(ctx, client, model, sizeList, runConfig{
			attempts:    *attempts,
			predictions: *predictions,
			maxMoves:    *maxMoves,
			stopOnFail:  *stopOnFail,
			runDir:      runDir,
			timestamp:   timestamp,
		})
		printModelSummary(model, modelAttempts)

		for _, a := range modelAttempts {
			records = append(records, bench.RecordFromAttempt(providerName, model, timestamp, a))
		}
		if ctx.Err() != nil {
			log.Printf("Interrupted, stopping after %s", model)
			break
		}
	}

	if *parquetOut && len(records) > 0 {
		path := filepath.Join(runDir, "attempts.parquet")
		if err := bench.WriteAttempts(path, records); err != nil {
			log.Printf("Parquet export failed: %v", err)
		} else {
			log.Printf("Wrote %d attempt rows to %s", len(records), path)
		}
	}
}

type runConfig struct {
	attempts    int
	predictions bool
	maxMoves    int
	stopOnFail  bool
	runDir      string
	timestamp   string
}

// runModel plays every configured size for one model, saving logs
// after each attempt so an interrupted run keeps its partial results.
func runModel(ctx context.Context, client *provider.Client, model string, sizeList []int, cfg runConfig) []bench.Attempt {
	var attempts []bench.Attempt

sizeLoop:
	for _, size := range sizeList {
		shuffle := shufflekey.Sequence(size)
		for i := 0; i < cfg.attempts; i++ {
			if ctx.Err() != nil {
				break sizeLoop
			}
			log.Printf("[%s] size %d, attempt %d/%d", model, size, i+1, cfg.attempts)

			res, err := bench.RunScenario(ctx, bench.ScenarioConfig{
				GridSize:    size,
				Model:       model,
				Shuffle:     shuffle,
				Client:      client,
				MaxMoves:    cfg.maxMoves,
				Predictions: cfg.predictions,
			})
			if err != nil {
				log.Printf("[%s] size %d: %v", model, size, err)
				break sizeLoop
			}

			attempt := bench.AttemptFromResult(size, res)
			attempts = append(attempts, attempt)
			log.Printf("[%s] size %d: %s (%d moves, %d calls, %.1fs)",
				model, size, attempt.Reason, attempt.Moves, attempt.APICallsMade, attempt.TimeSpent)

			if _, err := bench.SaveIncremental(cfg.runDir, providerName, model, attempts, cfg.timestamp); err != nil {
				log.Printf("[%s] saving results: %v", model, err)
			}
		}

		if cfg.stopOnFail && !solvedAny(attempts, size) {
			log.Printf("[%s] size %d unsolved, not escalating further", model, size)
			break
		}
	}
	return attempts
}

func solvedAny(attempts []bench.Attempt, size int) bool {
	for _, a := range attempts {
		if a.Size == size && a.Solved {
			return true
		}
	}
	return false
}

func printModelSummary(model string, attempts []bench.Attempt) {
	s := stats.Summarize(toStats(attempts))
	fmt.Printf("\n=== %s ===\n", model)
	fmt.Printf("  Attempts:       %d (%d solved, %.0f%%)\n", s.Attempts, s.Solved, s.SolveRate*100)
	fmt.Printf("  Max solved:     %dx%d\n", s.MaxSolvedSize, s.MaxSolvedSize)
	if s.Solved > 0 {
		fmt.Printf("  Moves (solved): mean %.1f, median %.0f\n", s.MeanMoves, s.MedianMoves)
	}
	fmt.Printf("  Mean time:      %.1fs\n", s.MeanTime)
	if s.PredictionAccuracy > 0 {
		fmt.Printf("  Predictions:    %.0f%% correct\n", s.PredictionAccuracy*100)
	}
	fmt.Println()
}

func toStats(attempts []bench.Attempt) []stats.Attempt {
	out := make([]stats.Attempt, len(attempts))
	for i, a := range attempts {
		out[i] = stats.Attempt{
			Size:               a.Size,
			Moves:              a.Moves,
			Solved:             a.Solved,
			APICalls:           a.APICallsMade,
			TimeSpent:          a.TimeSpent,
			Predictions:        a.Predictions,
			PredictionsCorrect: a.PredictionsCorrect,
		}
	}
	return out
}

// parseSizes accepts "3-6" or "3,4,5".
func parseSizes(spec string) ([]int, error) {
	if lo, hi, ok := strings.Cut(spec, "-"); ok {
		a, err1 := strconv.Atoi(strings.TrimSpace(lo))
		b, err2 := strconv.Atoi(strings.TrimSpace(hi))
		if err1 != nil || err2 != nil || a < 2 || b < a {
			return nil, fmt.Errorf("bad range %q", spec)
		}
		var out []int
		for s := a; s <= b; s++ {
			out = append(out, s)
		}
		return out, nil
	}

	var out []int
	for _, part := range strings.Split(spec, ",") {
		s, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || s < 2 {
			return nil, fmt.Errorf("bad size %q", part)
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no sizes in %q", spec)
	}
	return out, nil
}
