package output

import (
	"strconv"
	"strings"
	"testing"
)

func TestRenderProgressBar_Format(t *testing.T) {
	got := RenderProgressBar(50, 100, 10, "data.bin", "1.00 MB", 0)
	want := "\rdata.bin |█████░░░░░| 50% 1.00 MB"
	if got != want {
		t.Errorf("RenderProgressBar() = %q, want %q", got, want)
	}
}

func TestRenderProgressBar_Decimals(t *testing.T) {
	got := RenderProgressBar(1, 3, 3, "", "", 2)
	want := "\r |█░░| 33.33% "
	if got != want {
		t.Errorf("RenderProgressBar() = %q, want %q", got, want)
	}
}

func TestRenderProgressBar_Idempotent(t *testing.T) {
	first := RenderProgressBar(50, 100, 60, "", "", 0)
	for i := 0; i < 5; i++ {
		if got := RenderProgressBar(50, 100, 60, "", "", 0); got != first {
			t.Fatalf("render changed between calls: %q vs %q", got, first)
		}
	}
}

func TestRenderProgressBar_Monotonic(t *testing.T) {
	const total = 977
	last := -1.0
	lastFilled := -1
	for current := int64(0); current <= total+50; current += 7 {
		line := RenderProgressBar(current, total, 40, "", "", 1)
		pct := percentOf(t, line)
		if pct < last {
			t.Fatalf("percentage went backwards at %d: %.1f < %.1f", current, pct, last)
		}
		filled := strings.Count(line, filledGlyph)
		if filled < lastFilled {
			t.Fatalf("bar shrank at %d: %d < %d", current, filled, lastFilled)
		}
		last, lastFilled = pct, filled
	}
	if last != 100 {
		t.Errorf("expected to end at 100%%, got %.1f", last)
	}
}

func TestRenderProgressBar_NonPositiveTotal(t *testing.T) {
	for _, total := range []int64{0, -5} {
		got := RenderProgressBar(10, total, 8, "", "", 0)
		want := "\r |" + strings.Repeat(emptyGlyph, 8) + "| 0% "
		if got != want {
			t.Errorf("total=%d: got %q, want %q", total, got, want)
		}
	}
}

func TestRenderProgressBar_ClampsCurrent(t *testing.T) {
	if got, want := RenderProgressBar(250, 100, 4, "", "", 0), RenderProgressBar(100, 100, 4, "", "", 0); got != want {
		t.Errorf("overflowing current not clamped: %q vs %q", got, want)
	}
	if got, want := RenderProgressBar(-3, 100, 4, "", "", 0), RenderProgressBar(0, 100, 4, "", "", 0); got != want {
		t.Errorf("negative current not clamped: %q vs %q", got, want)
	}
}

func TestRenderProgressBar_DefaultWidth(t *testing.T) {
	line := RenderProgressBar(0, 10, 0, "", "", 0)
	if n := strings.Count(line, emptyGlyph); n != 60 {
		t.Errorf("expected default width 60, got %d cells", n)
	}
}

func TestBarWidth(t *testing.T) {
	tests := []struct {
		termWidth int
		preferred int
		prefix    string
		want      int
	}{
		{200, 60, "", 60},
		{50, 60, "", 40},
		{50, 60, "abcdefghij", 30},
		{12, 60, "", 10},
		{200, 0, "", 60},
	}
	for _, tt := range tests {
		if got := BarWidth(tt.termWidth, tt.preferred, tt.prefix, ""); got != tt.want {
			t.Errorf("BarWidth(%d, %d, %q) = %d, want %d", tt.termWidth, tt.preferred, tt.prefix, got, tt.want)
		}
	}
}

func percentOf(t *testing.T, line string) float64 {
	t.Helper()
	end := strings.LastIndex(line, "%")
	start := strings.LastIndex(line[:end], " ") + 1
	pct, err := strconv.ParseFloat(line[start:end], 64)
	if err != nil {
		t.Fatalf("cannot parse percentage from %q: %v", line, err)
	}
	return pct
}
