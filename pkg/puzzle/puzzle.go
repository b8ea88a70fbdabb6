// Package puzzle implements the Rubiks Slider board: an N×N grid of
// labeled tiles where whole rows shift cyclically left or right and
// whole columns shift up or down. The package owns the board state,
// move application and inversion, solved-state detection, and the
// tile-position queries the benchmark uses to grade predictions.
//
// The package performs no I/O and never logs; all expected input
// failures (malformed moves, out-of-range indices) are returned as
// ordinary results so the surrounding runner can decide what to do
// with them.
package puzzle

import (
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Puzzle holds the mutable board, the immutable solved reference, and
// the shuffle history recorded at construction time. One instance
// serves exactly one benchmark scenario; instances are not safe for
// concurrent use.
type Puzzle struct {
	size    int
	board   [][]string
	solved  [][]string
	shuffle []Move
	rng     *rand.Rand
}

// Options configures puzzle construction.
type Options struct {
	Size         int        // Grid size N (must be >= 2)
	AutoShuffle  bool       // Shuffle with random moves after construction
	ShuffleMoves int        // Shuffle length (0 = random in [N, 2N²])
	TargetBoard  [][]string // Custom solved board (must be N×N)
	Letters      bool       // Legacy letter-per-row labeling instead of 1..N²
	Rand         *rand.Rand // Random source for shuffling (nil = time-seeded)
}

// New creates a puzzle in the solved state and optionally shuffles it.
// Construction fails only on configuration errors: a grid size below 2
// or a custom target board that is not exactly Size×Size.
func New(opts Options) (*Puzzle, error) {
	if opts.Size < 2 {
		return nil, fmt.Errorf("grid size must be at least 2, got %d", opts.Size)
	}

	var solved [][]string
	switch {
	case opts.TargetBoard != nil:
		if len(opts.TargetBoard) != opts.Size {
			return nil, fmt.Errorf("invalid target board: must have %d rows, got %d", opts.Size, len(opts.TargetBoard))
		}
		for r, row := range opts.TargetBoard {
			if len(row) != opts.Size {
				return nil, fmt.Errorf("invalid target board: row %d must have %d tiles, got %d", r+1, opts.Size, len(row))
			}
		}
		solved = cloneBoard(opts.TargetBoard)
	case opts.Letters:
		solved = letterBoard(opts.Size)
	default:
		solved = numericBoard(opts.Size)
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	p := &Puzzle{
		size:   opts.Size,
		board:  cloneBoard(solved),
		solved: solved,
		rng:    rng,
	}

	if opts.AutoShuffle {
		n := opts.ShuffleMoves
		if n <= 0 {
			n = p.size + rng.Intn(p.size*p.size*2-p.size+1)
		}
		p.shuffleBoard(n)
	}

	return p, nil
}

// numericBoard builds the canonical solved board: row-major numbering
// starting at 1, rendered as decimal strings.
func numericBoard(size int) [][]string {
	board := make([][]string, size)
	for r := range board {
		board[r] = make([]string, size)
		for c := range board[r] {
			board[r][c] = strconv.Itoa(r*size + c + 1)
		}
	}
	return board
}

// letterBoard builds the superseded letter scheme: each row is one
// letter repeated across the whole row, ascending from A.
func letterBoard(size int) [][]string {
	board := make([][]string, size)
	for r := range board {
		board[r] = make([]string, size)
		for c := range board[r] {
			board[r][c] = string(rune('A' + r))
		}
	}
	return board
}

func cloneBoard(b [][]string) [][]string {
	out := make([][]string, len(b))
	for r := range b {
		out[r] = make([]string, len(b[r]))
		copy(out[r], b[r])
	}
	return out
}

// Size returns the grid dimension N.
func (p *Puzzle) Size() int { return p.size }

// Board returns a copy of the current board state.
func (p *Puzzle) Board() [][]string { return cloneBoard(p.board) }

// SolvedBoard returns a copy of the solved reference board.
func (p *Puzzle) SolvedBoard() [][]string { return cloneBoard(p.solved) }

// IsSolved reports whether the board matches the solved reference
// element for element.
func (p *Puzzle) IsSolved() bool {
	for r := 0; r < p.size; r++ {
		for c := 0; c < p.size; c++ {
			if p.board[r][c] != p.solved[r][c] {
				return false
			}
		}
	}
	return true
}

// shuffleBoard applies n random moves, recording each into the shuffle
// sequence. If the result happens to be solved, the whole shuffle is
// redone with 5 extra moves, so a scenario never starts trivially
// complete. The retry budget is fixed: a board no move can change
// (a uniform custom target) would otherwise reshuffle forever, and
// after a handful of rounds an ordinary board is unsolved with
// overwhelming probability anyway.
func (p *Puzzle) shuffleBoard(n int) {
	const maxRounds = 20
	for round := 0; round < maxRounds; round++ {
		p.shuffle = p.shuffle[:0]
		for i := 0; i < n; i++ {
			m := p.randomMove()
			p.shuffle = append(p.shuffle, m)
			p.applyUnchecked(m)
		}
		if !p.IsSolved() {
			return
		}
		n += 5
	}
}

func (p *Puzzle) randomMove() Move {
	m := Move{Index: p.rng.Intn(p.size) + 1}
	if p.rng.Intn(2) == 0 {
		m.Kind = KindRow
		if p.rng.Intn(2) == 0 {
			m.Direction = DirLeft
		} else {
			m.Direction = DirRight
		}
	} else {
		m.Kind = KindColumn
		if p.rng.Intn(2) == 0 {
			m.Direction = DirUp
		} else {
			m.Direction = DirDown
		}
	}
	return m
}

// ShuffleKey returns a copy of the recorded shuffle sequence. Callers
// cannot mutate the engine's history through the returned slice.
func (p *Puzzle) ShuffleKey() []Move {
	key := make([]Move, len(p.shuffle))
	copy(key, p.shuffle)
	return key
}

// ApplyMove validates and applies a structured move. On success the
// board is mutated in place and a confirmation message is returned.
// On failure the board is untouched and the reason describes which
// check failed. Expected bad input never produces an error value.
func (p *Puzzle) ApplyMove(m Move) (bool, string) {
	if m.Index < 1 || m.Index > p.size {
		return false, fmt.Sprintf("Invalid index. Must be an integer between 1 and %d.", p.size)
	}
	if !directionLegal(m.Kind, m.Direction) {
		return false, "Invalid move type or direction."
	}
	p.applyUnchecked(m)
	kind := "row"
	if m.Kind == KindColumn {
		kind = "column"
	}
	return true, fmt.Sprintf("Moved %s %d %s.", kind, m.Index, m.Direction)
}

// ApplyMoveJSON applies a move supplied in the serialized exchange
// format. This is a second validation gate, independent of the
// notation parser: programmatic callers hand the engine raw payloads
// and the engine re-checks the structured form itself.
func (p *Puzzle) ApplyMoveJSON(data []byte) (bool, string) {
	m, err := DecodeMove(data)
	if err != nil {
		return false, err.Error()
	}
	return p.ApplyMove(m)
}

// ApplySequence applies each move in order, stopping at the first
// failure. It returns the number of moves applied and the failure
// reason, if any.
func (p *Puzzle) ApplySequence(seq []Move) (int, string) {
	for i, m := range seq {
		if ok, msg := p.ApplyMove(m); !ok {
			return i, msg
		}
	}
	return len(seq), ""
}

// applyUnchecked performs the cyclic shift. The move must already be
// validated.
func (p *Puzzle) applyUnchecked(m Move) {
	idx := m.Index - 1
	if m.Kind == KindRow {
		p.shiftRow(idx, m.Direction)
	} else {
		p.shiftColumn(idx, m.Direction)
	}
}

func (p *Puzzle) shiftRow(r int, direction string) {
	row := p.board[r]
	if direction == DirLeft {
		first := row[0]
		copy(row, row[1:])
		row[p.size-1] = first
	} else {
		last := row[p.size-1]
		copy(row[1:], row[:p.size-1])
		row[0] = last
	}
}

func (p *Puzzle) shiftColumn(c int, direction string) {
	if direction == DirUp {
		first := p.board[0][c]
		for r := 0; r < p.size-1; r++ {
			p.board[r][c] = p.board[r+1][c]
		}
		p.board[p.size-1][c] = first
	} else {
		last := p.board[p.size-1][c]
		for r := p.size - 1; r > 0; r-- {
			p.board[r][c] = p.board[r-1][c]
		}
		p.board[0][c] = last
	}
}

// TilePosition returns the current 1-indexed (row, col) of a numeric
// tile. Tiles outside the board come back not found, never as an
// error.
func (p *Puzzle) TilePosition(tile int) (row, col int, found bool) {
	label := strconv.Itoa(tile)
	for r := 0; r < p.size; r++ {
		for c := 0; c < p.size; c++ {
			if p.board[r][c] == label {
				return r + 1, c + 1, true
			}
		}
	}
	return 0, 0, false
}

// predictionPattern is the exact claim grammar: uppercase R and C, no
// whitespace, 1-indexed decimal coordinates.
var predictionPattern = regexp.MustCompile(`^R(\d+)C(\d+)$`)

// ValidatePrediction reports whether a position claim of the form
// "R<row>C<col>" matches the tile's actual position. A malformed
// claim, an absent tile, or a mismatched position all yield false.
func (p *Puzzle) ValidatePrediction(tile int, claim string) bool {
	m := predictionPattern.FindStringSubmatch(claim)
	if m == nil {
		return false
	}
	row, err1 := strconv.Atoi(m[1])
	col, err2 := strconv.Atoi(m[2])
	if err1 != nil || err2 != nil {
		return false
	}
	r, c, found := p.TilePosition(tile)
	return found && r == row && c == col
}

// StateString renders the board one row per line, tiles separated by
// single spaces.
func (p *Puzzle) StateString() string {
	var b strings.Builder
	for r := 0; r < p.size; r++ {
		if r > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.Join(p.board[r], " "))
	}
	return b.String()
}

// LabeledStateString renders the board with C1..CN column headers and
// R1..RN row headers, cells right-justified. The cell width is the
// longer of the widest tile label (digits in N²) and the widest column
// header (digits in N plus the C prefix), so headers and values stay
// aligned on any grid size.
func (p *Puzzle) LabeledStateString() string {
	cellWidth := len(strconv.Itoa(p.size * p.size))
	if w := len(strconv.Itoa(p.size)) + 1; w > cellWidth {
		cellWidth = w
	}
	gutter := len(strconv.Itoa(p.size)) + 1

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", gutter))
	for c := 1; c <= p.size; c++ {
		fmt.Fprintf(&b, " %*s", cellWidth, "C"+strconv.Itoa(c))
	}
	for r := 0; r < p.size; r++ {
		b.WriteByte('\n')
		fmt.Fprintf(&b, "%-*s", gutter, "R"+strconv.Itoa(r+1))
		for c := 0; c < p.size; c++ {
			fmt.Fprintf(&b, " %*s", cellWidth, p.board[r][c])
		}
	}
	return b.String()
}
