package puzzle

import (
	"encoding/json"
	"fmt"
)

// Move kinds and directions as they appear on the wire. The benchmark
// runner, the REST API and the notation parser all exchange moves in
// this form.
const (
	KindRow    = "row"
	KindColumn = "column"

	DirLeft  = "left"
	DirRight = "right"
	DirUp    = "up"
	DirDown  = "down"
)

// Move is a single row or column shift. Index is 1-based in the public
// representation; the engine converts to a 0-based offset internally.
type Move struct {
	Kind      string `json:"type"`      // "row" or "column"
	Index     int    `json:"index"`     // 1..N
	Direction string `json:"direction"` // left/right for rows, up/down for columns
}

// String returns the compact notation form of the move (e.g. "R1 L").
func (m Move) String() string {
	prefix := "R"
	if m.Kind == KindColumn {
		prefix = "C"
	}
	dir := "?"
	switch m.Direction {
	case DirLeft:
		dir = "L"
	case DirRight:
		dir = "R"
	case DirUp:
		dir = "U"
	case DirDown:
		dir = "D"
	}
	return fmt.Sprintf("%s%d %s", prefix, m.Index, dir)
}

// Inverse returns the move that undoes m: same line, opposite direction.
func (m Move) Inverse() Move {
	inv := m
	switch m.Direction {
	case DirLeft:
		inv.Direction = DirRight
	case DirRight:
		inv.Direction = DirLeft
	case DirUp:
		inv.Direction = DirDown
	case DirDown:
		inv.Direction = DirUp
	}
	return inv
}

// ReverseSequence returns the algebraic inverse of a move sequence:
// the same moves in reverse order, each with its direction flipped.
// Applying the result after the original sequence restores the board
// the sequence started from. The input is not modified.
func ReverseSequence(seq []Move) []Move {
	out := make([]Move, len(seq))
	for i, m := range seq {
		out[len(seq)-1-i] = m.Inverse()
	}
	return out
}

// directionLegal reports whether a direction is valid for a move kind.
func directionLegal(kind, direction string) bool {
	switch kind {
	case KindRow:
		return direction == DirLeft || direction == DirRight
	case KindColumn:
		return direction == DirUp || direction == DirDown
	}
	return false
}

// DecodeMove parses the serialized move exchange format. Unknown fields
// are ignored; missing required fields are reported. The index is only
// checked for presence here - bounds checking belongs to the engine,
// which knows the grid size.
func DecodeMove(data []byte) (Move, error) {
	var raw struct {
		Kind      *string `json:"type"`
		Index     *int    `json:"index"`
		Direction *string `json:"direction"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Move{}, fmt.Errorf("invalid JSON format")
	}
	if raw.Kind == nil || raw.Index == nil || raw.Direction == nil {
		return Move{}, fmt.Errorf("missing required keys: type, index, direction")
	}
	return Move{Kind: *raw.Kind, Index: *raw.Index, Direction: *raw.Direction}, nil
}
