// Package stats aggregates benchmark attempt outcomes into per-model
// summaries.
package stats

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Attempt is one scenario outcome, reduced to what aggregation needs.
type Attempt struct {
	Size               int
	Moves              int
	Solved             bool
	APICalls           int
	TimeSpent          float64
	Predictions        int
	PredictionsCorrect int
}

// Summary describes a set of attempts for one model.
type Summary struct {
	Attempts           int
	Solved             int
	SolveRate          float64
	MaxSolvedSize      int
	MeanMoves          float64 // Over solved attempts only
	StdDevMoves        float64
	MedianMoves        float64
	MeanTime           float64
	PredictionAccuracy float64 // NaN-free: 0 when no predictions were made
}

// Summarize aggregates attempts. Move statistics are computed over
// solved attempts only, since an unsolved run's move count measures
// the cutoff rather than the model.
func Summarize(attempts []Attempt) Summary {
	s := Summary{Attempts: len(attempts)}
	if len(attempts) == 0 {
		return s
	}

	var solvedMoves []float64
	var times []float64
	predictions, correct := 0, 0
	for _, a := range attempts {
		times = append(times, a.TimeSpent)
		predictions += a.Predictions
		correct += a.PredictionsCorrect
		if !a.Solved {
			continue
		}
		s.Solved++
		if a.Size > s.MaxSolvedSize {
			s.MaxSolvedSize = a.Size
		}
		solvedMoves = append(solvedMoves, float64(a.Moves))
	}

	s.SolveRate = float64(s.Solved) / float64(len(attempts))
	s.MeanTime = stat.Mean(times, nil)
	if predictions > 0 {
		s.PredictionAccuracy = float64(correct) / float64(predictions)
	}

	if len(solvedMoves) > 0 {
		s.MeanMoves = stat.Mean(solvedMoves, nil)
		sort.Float64s(solvedMoves)
		s.MedianMoves = stat.Quantile(0.5, stat.Empirical, solvedMoves, nil)
	}
	if len(solvedMoves) > 1 {
		s.StdDevMoves = stat.StdDev(solvedMoves, nil)
	}

	return s
}

// BySize buckets attempts by grid size, for per-phase reporting.
func BySize(attempts []Attempt) map[int]Summary {
	buckets := map[int][]Attempt{}
	for _, a := range attempts {
		buckets[a.Size] = append(buckets[a.Size], a)
	}
	out := make(map[int]Summary, len(buckets))
	for size, group := range buckets {
		out[size] = Summarize(group)
	}
	return out
}
