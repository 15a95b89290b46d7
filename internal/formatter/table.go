// Package formatter renders run reports and relation previews as aligned
// markdown tables.
package formatter

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// MaxCellWidth caps the display width of a single preview cell.
const MaxCellWidth = 40

// Table renders headers and rows as a markdown table whose columns are padded
// to their display width, so wide runes line up in a terminal.
func Table(headers []string, rows [][]string) string {
	colCount := len(headers)
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}

	if colCount == 0 {
		return ""
	}

	table := make([][]string, 0, len(rows)+1)
	table = append(table, headers)
	table = append(table, rows...)

	colWidths := make([]int, colCount)

	for _, row := range table {
		for i := 0; i < len(row); i++ {
			if width := runewidth.StringWidth(cell(row[i])); width > colWidths[i] {
				colWidths[i] = width
			}
		}
	}

	// Separators need at least three dashes.
	for i := range colWidths {
		if colWidths[i] < 3 {
			colWidths[i] = 3
		}
	}

	lines := make([]string, 0, len(table)+1)
	lines = append(lines, renderRow(table[0], colWidths))

	sep := make([]string, colCount)
	for i, w := range colWidths {
		sep[i] = strings.Repeat("-", w)
	}

	lines = append(lines, "| "+strings.Join(sep, " | ")+" |")

	for _, row := range table[1:] {
		lines = append(lines, renderRow(row, colWidths))
	}

	return strings.Join(lines, "\n") + "\n"
}

func renderRow(row []string, colWidths []int) string {
	var sb strings.Builder

	sb.WriteString("|")

	for j, w := range colWidths {
		sb.WriteString(" ")

		content := ""
		if j < len(row) {
			content = cell(row[j])
		}

		sb.WriteString(content)

		if padding := w - runewidth.StringWidth(content); padding > 0 {
			sb.WriteString(strings.Repeat(" ", padding))
		}

		sb.WriteString(" |")
	}

	return sb.String()
}

// cell makes a value safe to place in a table cell.
func cell(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	s = strings.ReplaceAll(s, "|", `\|`)

	return runewidth.Truncate(s, MaxCellWidth, "...")
}
