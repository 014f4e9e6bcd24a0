package output

import (
	"math"
	"strconv"
	"strings"
)

const (
	filledGlyph = "█"
	emptyGlyph  = "░"
)

// RenderProgressBar returns a single progress line starting with a carriage
// return so that consecutive renders overwrite each other. A non-positive
// total renders as 0% with an empty bar.
func RenderProgressBar(current, total int64, width int, prefix, suffix string, decimals int) string {
	if width <= 0 {
		width = 60
	}
	if decimals < 0 {
		decimals = 0
	}
	fraction := 0.0
	if total > 0 {
		current = max(0, min(current, total))
		fraction = float64(current) / float64(total)
	}
	percent := strconv.FormatFloat(100*fraction, 'f', decimals, 64)
	filled := int(math.Round(float64(width) * fraction))
	filled = max(0, min(filled, width))

	var b strings.Builder
	b.WriteString("\r")
	b.WriteString(prefix)
	b.WriteString(" |")
	b.WriteString(strings.Repeat(filledGlyph, filled))
	b.WriteString(strings.Repeat(emptyGlyph, width-filled))
	b.WriteString("| ")
	b.WriteString(percent)
	b.WriteString("% ")
	b.WriteString(suffix)
	return b.String()
}

// IsComplete reports whether a render of (current, total) shows 100%.
func IsComplete(current, total int64) bool {
	return total > 0 && current >= total
}
