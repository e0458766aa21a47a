package synth

import (
	"fmt"
	"strings"
)

// formatTable formats rows into a bordered table.
// headers: column names, also used to decide the number of columns.
// rows: cell text; missing cells are left blank and extra cells are ignored.
// indent: number of spaces to indent the table
func formatTable(headers []string, rows [][]string, indent int) string {
	numCols := len(headers)

	// Calculate column widths
	widths := make([]int, numCols)
	for i, header := range headers {
		widths[i] = len(header)
		for _, row := range rows {
			if i < len(row) && len(row[i]) > widths[i] {
				widths[i] = len(row[i])
			}
		}
		// Set a minimum width for nicer output
		widths[i] = max(widths[i], 6)
	}

	padRight := func(s string, w int) string {
		if len(s) >= w {
			return s
		}
		return s + strings.Repeat(" ", w-len(s))
	}

	var b strings.Builder

	separator := func() {
		b.WriteString(strings.Repeat(" ", indent))
		for i := range numCols {
			b.WriteString("+")
			b.WriteString(strings.Repeat("-", widths[i]+2)) // +2 for the space padding either side
		}
		b.WriteString("+\n")
	}

	line := func(cells []string) {
		b.WriteString(strings.Repeat(" ", indent))
		for i := range numCols {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			b.WriteString("| ")
			b.WriteString(padRight(cell, widths[i]))
			b.WriteString(" ")
		}
		b.WriteString("|\n")
	}

	separator()
	line(headers)
	separator()
	for _, row := range rows {
		line(row)
	}
	separator()

	return b.String()
}

var partHeaders = []string{"#", "Wave", "Frequency", "Duration", "Volume", "Envelope"}

func (s ToneSpec) row(index int) []string {
	return []string{
		fmt.Sprintf("%d", index),
		s.Kind.String(),
		s.frequencyLabel(),
		s.Duration.String(),
		fmt.Sprintf("%.2f", s.Volume),
		s.Envelope.String(),
	}
}

// Pretty-print
func (s ToneSpec) String() string {
	return formatTable(partHeaders, [][]string{s.row(0)}, 2)
}

// Pretty-print
func (c CompositeSpec) String() string {
	rows := make([][]string, 0, len(c.Parts))
	for i, p := range c.Parts {
		if p.Tone != nil {
			rows = append(rows, p.Tone.row(i))
			continue
		}
		rows = append(rows, []string{fmt.Sprintf("%d", i), "gap", "-", p.Gap.String(), "-", "-"})
	}

	var b strings.Builder
	b.WriteString(formatTable(partHeaders, rows, 2))
	fmt.Fprintf(&b, "  [Total length: %v in %d part", c.Length(), len(c.Parts))
	if len(c.Parts) != 1 {
		b.WriteString("s") // Pluralise the word "part" if needed.
	}
	b.WriteString("]\n")
	return b.String()
}
