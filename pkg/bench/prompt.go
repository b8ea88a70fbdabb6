package bench

import (
	"fmt"
	"strings"

	"github.com/yourusername/sliderbench/pkg/puzzle"
)

// Prompt modes. The initial prompt carries the full rules and worked
// examples; followups only restate the current state; the failed-parse
// prompt re-explains the output format after an unparseable reply.
const (
	promptInitial     = "initial"
	promptFollowup    = "followup"
	promptFailedParse = "failed_parse"
)

const instructionsText = "- Output your next move or sequence of moves (e.g., `R1 L`, `C2 U`, or `R1 L; C2 U; R3 R`) inside `<move>` tags.\n" +
	"- Example: `<move>R1 L; C2 U</move>`\n" +
	"- Do NOT include any reasoning or explanations. Only output your move(s) in the required format.\n" +
	"- You must respond with at least one move inside `<move>` tags."

// buildPrompt constructs the user prompt for one turn.
func buildPrompt(mode string, p *puzzle.Puzzle, moveCount int) string {
	size := p.Size()
	stateBlock := "```\n" + p.StateString() + "\n```"

	switch mode {
	case promptInitial:
		var solvedRows []string
		for _, row := range p.SolvedBoard() {
			solvedRows = append(solvedRows, strings.Join(row, " "))
		}
		lines := []string{
			"# Welcome to Rubiks Slider!",
			"",
			"**Instructions:**",
			"",
			instructionsText,
			"",
			"**How to play:**",
			"",
			"- You can shift rows left (L) or right (R).",
			"  - Example: `R1 L` shifts row 1 left.",
			"    ```",
			"A B C\nD E F\nG H I",
			"    ```",
			"    becomes:",
			"    ```",
			"B C A\nD E F\nG H I",
			"    ```",
			"- You can shift columns up (U) or down (D).",
			"  - Example: `C2 D` shifts column 2 down.",
			"    ```",
			"A B C\nD E F\nG H I",
			"    ```",
			"    becomes:",
			"    ```",
			"A H C\nD B F\nG E I",
			"    ```",
			"- You may output multiple moves per turn, separated by semicolons (`;`).",
			"",
			"**Goal:** Return Rubiks Slider to the solved state:",
			"",
			"```",
			strings.Join(solvedRows, "\n"),
			"```",
			"",
			"**Current State:**",
			"",
			stateBlock,
			"",
			"**Moves made:** 0",
		}
		return strings.Join(lines, "\n")

	case promptFailedParse:
		return strings.Join([]string{
			"## Your previous move(s) could not be parsed.",
			"",
			"Please carefully output your next move or sequence of moves using the following format:",
			"",
			"- Enclose your move(s) in <move>...</move> tags.",
			"- Each move should be in the form `R1 L`, `C2 U`, etc. (e.g., `R1 L; C2 U; R3 R` for multiple moves, separated by semicolons).",
			"- Example: `<move>R1 L; C2 U</move>`",
			"- Do not include any other formatting or explanations inside the <move> tags.",
			"",
			fmt.Sprintf("## Current State (%dx%d)", size, size),
			"",
			stateBlock,
			"",
			fmt.Sprintf("**Moves made:** %d", moveCount),
		}, "\n")
	}

	// followup
	return strings.Join([]string{
		fmt.Sprintf("## Current State (%dx%d)", size, size),
		"",
		stateBlock,
		"",
		fmt.Sprintf("**Moves made:** %d", moveCount),
		"",
		"**Instructions:**",
		"",
		instructionsText,
	}, "\n")
}

// predictionPrompt asks the model to forecast where a tile lands after
// the moves it is about to give. The claim is graded against the
// post-move board.
func predictionPrompt(tile int) string {
	return strings.Join([]string{
		"",
		fmt.Sprintf("**Prediction:** After your move(s) are applied, where will tile %d be?", tile),
		"Answer inside `<prediction>` tags using the exact form `R<row>C<col>`, 1-indexed.",
		"Example: `<prediction>R2C3</prediction>`",
	}, "\n")
}
