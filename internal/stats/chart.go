package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	minBarWidth         = 10
	barLabelWidth       = 14
	barSuffixWidth      = 6
	terminalWidthBackup = 80
)

// Bar is one labelled ratio in [0,1].
type Bar struct {
	Label string
	Value float64
}

// BarWidthFor returns the bar length that fits a line of totalWidth cells.
func BarWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minBarWidth
	}
	return max(totalWidth-barLabelWidth-barSuffixWidth, minBarWidth)
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// RenderBars prints horizontal ratio bars. A width <= 0 sizes them to the terminal.
func RenderBars(w io.Writer, title string, bars []Bar, width int) error {
	if len(bars) == 0 {
		return nil
	}
	if width <= 0 {
		width = BarWidthFor(terminalWidth())
	}
	lines := []string{title}
	for _, b := range bars {
		v := math.Max(0, math.Min(b.Value, 1))
		filled := int(math.Round(v * float64(width)))
		bar := strings.Repeat("#", filled) + strings.Repeat(".", width-filled)
		label := padCell(b.Label, barLabelWidth-1, false)
		lines = append(lines, fmt.Sprintf("%s %s %4.0f%%", label, bar, v*100))
	}
	return writeLines(w, lines)
}
