package puzzle

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// notationPattern matches the compact move notation after trimming and
// upper-casing: a row/column selector, a 1-based index, whitespace,
// and a direction letter.
var notationPattern = regexp.MustCompile(`^(R|C)(\d+)\s+(L|R|U|D)$`)

// ParseMove converts a single move token such as "R1 L" or "C2 U"
// into a structured Move. Input is case-insensitive and surrounding
// whitespace is ignored. The grid size is needed for bounds checking.
//
// Failures fall into three categories, each with its own message: the
// token does not match the grammar, the index is outside [1, size],
// or the direction letter is incompatible with the selected line kind
// (rows shift L/R, columns shift U/D).
func ParseMove(input string, size int) (Move, error) {
	token := strings.ToUpper(strings.TrimSpace(input))
	groups := notationPattern.FindStringSubmatch(token)
	if groups == nil {
		return Move{}, fmt.Errorf("invalid format: use 'R# L/R' or 'C# U/D' (e.g. R1 L, C2 U)")
	}

	index, err := strconv.Atoi(groups[2])
	if err != nil || index < 1 || index > size {
		return Move{}, fmt.Errorf("index %s out of bounds (must be 1-%d)", groups[2], size)
	}

	kind := KindRow
	if groups[1] == "C" {
		kind = KindColumn
	}

	var direction string
	switch groups[3] {
	case "L":
		direction = DirLeft
	case "R":
		direction = DirRight
	case "U":
		direction = DirUp
	case "D":
		direction = DirDown
	}
	if !directionLegal(kind, direction) {
		return Move{}, fmt.Errorf("invalid direction for %s move", kind)
	}

	return Move{Kind: kind, Index: index, Direction: direction}, nil
}
