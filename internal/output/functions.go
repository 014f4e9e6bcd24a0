package output

import (
	"os"
	"unicode/utf8"

	"golang.org/x/term"
)

func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // Default fallback width
	}
	return width
}

// BarWidth fits the bar and its labels into termWidth columns, never going
// above preferred or below 10 cells.
func BarWidth(termWidth, preferred int, prefix, suffix string) int {
	if preferred <= 0 {
		preferred = 60
	}
	// " |" + "| " + "100% " plus one spare column for the cursor
	overhead := utf8.RuneCountInString(prefix) + utf8.RuneCountInString(suffix) + 10
	return max(10, min(preferred, termWidth-overhead))
}
