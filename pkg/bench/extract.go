package bench

import (
	"regexp"
	"strings"

	"github.com/yourusername/sliderbench/pkg/puzzle"
)

var (
	moveTagPattern       = regexp.MustCompile(`(?is)<move>(.*?)</move>`)
	predictionTagPattern = regexp.MustCompile(`(?is)<prediction>(.*?)</prediction>`)
	moveSeparator        = regexp.MustCompile(`[;\n]`)
)

// extractMoves pulls one or more moves out of a model reply. The
// reply must contain a <move> block; inside it, moves are separated
// by semicolons or newlines and each token must parse under the move
// notation grammar. Any bad token invalidates the whole reply - a
// partial application would leave the board in a state the model
// never saw.
func extractMoves(reply string, size int) ([]puzzle.Move, bool) {
	match := moveTagPattern.FindStringSubmatch(reply)
	if match == nil {
		return nil, false
	}
	block := strings.TrimSpace(match[1])
	if block == "" {
		return nil, false
	}

	var moves []puzzle.Move
	for _, token := range moveSeparator.Split(block, -1) {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		m, err := puzzle.ParseMove(token, size)
		if err != nil {
			return nil, false
		}
		moves = append(moves, m)
	}
	if len(moves) == 0 {
		return nil, false
	}
	return moves, true
}

// extractPrediction pulls a position claim out of a model reply. The
// claim text is returned as-is; grading is the engine's job.
func extractPrediction(reply string) (string, bool) {
	match := predictionTagPattern.FindStringSubmatch(reply)
	if match == nil {
		return "", false
	}
	return strings.TrimSpace(match[1]), true
}
