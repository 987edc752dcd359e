package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// formatTable lays out rows in space-separated columns sized to the widest cell.
// Columns listed in right are right-aligned. Trailing spaces are trimmed.
func formatTable(headers []string, rows [][]string, right map[int]bool) []string {
	all := rows
	if len(headers) > 0 {
		all = append([][]string{headers}, rows...)
	}
	var widths []int
	for _, row := range all {
		for i, cell := range row {
			if i == len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	if len(widths) == 0 {
		return nil
	}

	lines := make([]string, 0, len(all))
	cells := make([]string, len(widths))
	for _, row := range all {
		for i, width := range widths {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			cells[i] = padCell(cell, width, right[i])
		}
		lines = append(lines, strings.TrimRight(strings.Join(cells, " "), " "))
	}
	return lines
}

func padCell(value string, width int, alignRight bool) string {
	if alignRight {
		return runewidth.FillLeft(value, width)
	}
	return runewidth.FillRight(value, width)
}
