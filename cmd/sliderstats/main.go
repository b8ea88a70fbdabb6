// Command sliderstats aggregates parquet attempt tables written by
// sliderbench into per-model summaries.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/yourusername/sliderbench/internal/stats"
	"github.com/yourusername/sliderbench/pkg/bench"
)

func main() {
	bySize := flag.Bool("by-size", false, "Break each model down by grid size")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: sliderstats [-by-size] <attempts.parquet> [more.parquet ...]")
		os.Exit(1)
	}

	byModel := map[string][]stats.Attempt{}
	for _, path := range flag.Args() {
		records, err := bench.ReadAttempts(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", path, err)
			os.Exit(1)
		}
		for _, r := range records {
			key := r.Provider + "/" + r.Model
			byModel[key] = append(byModel[key], stats.Attempt{
				Size:               int(r.Size),
				Moves:              int(r.Moves),
				Solved:             r.Solved,
				APICalls:           int(r.APICalls),
				TimeSpent:          r.TimeSpent,
				Predictions:        int(r.Predictions),
				PredictionsCorrect: int(r.PredictionsCorrect),
			})
		}
	}

	models := make([]string, 0, len(byModel))
	for m := range byModel {
		models = append(models, m)
	}
	sort.Strings(models)

	fmt.Printf("%-45s %8s %8s %10s %10s %10s\n",
		"MODEL", "RUNS", "SOLVED", "MAX SIZE", "MED MOVES", "PRED ACC")
	for _, m := range models {
		attempts := byModel[m]
		s := stats.Summarize(attempts)
		fmt.Printf("%-45s %8d %7.0f%% %10d %10.0f %9.0f%%\n",
			m, s.Attempts, s.SolveRate*100, s.MaxSolvedSize, s.MedianMoves, s.PredictionAccuracy*100)

		if *bySize {
			sizes := stats.BySize(attempts)
			keys := make([]int, 0, len(sizes))
			for k := range sizes {
				keys = append(keys, k)
			}
			sort.Ints(keys)
			for _, size := range keys {
				ss := sizes[size]
				fmt.Printf("    %dx%d: %d runs, %.0f%% solved, median %.0f moves, mean %.1fs\n",
					size, size, ss.Attempts, ss.SolveRate*100, ss.MedianMoves, ss.MeanTime)
			}
		}
	}
}
