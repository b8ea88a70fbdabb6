// slider - Rubiks Slider puzzle tool
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/yourusername/sliderbench/internal/shufflekey"
	"github.com/yourusername/sliderbench/pkg/puzzle"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "show":
		cmdShow(args)
	case "shuffle":
		cmdShuffle(args)
	case "apply":
		cmdApply(args)
	case "parse":
		cmdParse(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`slider - Rubiks Slider puzzle tool

Usage: slider <command> [options]

Commands:
  show      Print the solved board for a grid size
  shuffle   Shuffle a puzzle and print its shuffle key and solution
  apply     Apply a move sequence to a solved board
  parse     Parse move notation and print its structured form

Use "slider <command> -h" for command-specific help.

Move Notation:
  Moves are written as "R<row> L/R" or "C<col> U/D".
  Example: "R1 L" shifts row 1 left, "C2 U" shifts column 2 up.`)
}

func cmdShow(args []string) {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	size := fs.Int("size", 3, "Grid size N")
	letters := fs.Bool("letters", false, "Use letter tile labels")
	fs.Parse(args)

	p, err := puzzle.New(puzzle.Options{Size: *size, Letters: *letters})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(p.LabeledStateString())
}

func cmdShuffle(args []string) {
	fs := flag.NewFlagSet("shuffle", flag.ExitOnError)
	size := fs.Int("size", 3, "Grid size N")
	moves := fs.Int("moves", 0, "Shuffle length (0 = derived from size)")
	seed := fs.Int64("seed", 0, "Random seed (0 = random)")
	standard := fs.Bool("standard", false, "Use the deterministic benchmark shuffle for this size")
	showSolution := fs.Bool("solution", false, "Also print the solving sequence")
	fs.Parse(args)

	var p *puzzle.Puzzle
	var err error

	if *standard {
		// The benchmark shuffle is reproducible across runs and
		// machines; every model sees the same starting board.
		p, err = puzzle.New(puzzle.Options{Size: *size})
		if err == nil {
			for _, m := range shufflekey.Sequence(*size) {
				p.ApplyMove(m)
			}
		}
	} else {
		opts := puzzle.Options{Size: *size, AutoShuffle: true, ShuffleMoves: *moves}
		if *seed != 0 {
			opts.Rand = rand.New(rand.NewSource(*seed))
		}
		p, err = puzzle.New(opts)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(p.LabeledStateString())
	fmt.Println()

	var key []puzzle.Move
	if *standard {
		key = shufflekey.Sequence(*size)
	} else {
		key = p.ShuffleKey()
	}
	fmt.Printf("Shuffle key (%d moves): %s\n", len(key), formatSequence(key))
	if *showSolution {
		fmt.Printf("Solution: %s\n", formatSequence(puzzle.ReverseSequence(key)))
	}
}

func cmdApply(args []string) {
	fs := flag.NewFlagSet("apply", flag.ExitOnError)
	size := fs.Int("size", 3, "Grid size N")
	verbose := fs.Bool("v", false, "Print the board after every move")
	fs.Parse(args)

	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: move sequence required")
		fmt.Fprintln(os.Stderr, `Usage: slider apply -size 3 "R1 L; C2 U"`)
		os.Exit(1)
	}

	seq, err := parseSequence(strings.Join(fs.Args(), " "), *size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p, err := puzzle.New(puzzle.Options{Size: *size})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for _, m := range seq {
		ok, msg := p.ApplyMove(m)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: %s: %s\n", m.String(), msg)
			os.Exit(1)
		}
		if *verbose {
			fmt.Printf("%s\n%s\n\n", msg, p.StateString())
		}
	}

	fmt.Println(p.LabeledStateString())
	if p.IsSolved() {
		fmt.Println("Solved.")
	}
}

func cmdParse(args []string) {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	size := fs.Int("size", 3, "Grid size N (for bounds checking)")
	fs.Parse(args)

	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: notation required")
		fmt.Fprintln(os.Stderr, `Usage: slider parse -size 3 "R1 L"`)
		os.Exit(1)
	}

	for _, arg := range fs.Args() {
		m, err := puzzle.ParseMove(arg, *size)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %q: %v\n", arg, err)
			os.Exit(1)
		}
		fmt.Printf("%s -> {type: %s, index: %d, direction: %s}\n", m.String(), m.Kind, m.Index, m.Direction)
	}
}

// parseSequence splits a "R1 L; C2 U" style list into moves.
func parseSequence(input string, size int) ([]puzzle.Move, error) {
	var seq []puzzle.Move
	for _, token := range strings.FieldsFunc(input, func(r rune) bool { return r == ';' || r == ',' || r == '\n' }) {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		m, err := puzzle.ParseMove(token, size)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", token, err)
		}
		seq = append(seq, m)
	}
	if len(seq) == 0 {
		return nil, fmt.Errorf("no moves in %q", input)
	}
	return seq, nil
}

func formatSequence(seq []puzzle.Move) string {
	parts := make([]string, len(seq))
	for i, m := range seq {
		parts[i] = m.String()
	}
	return strings.Join(parts, "; ")
}
