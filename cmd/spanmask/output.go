package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"

	"github.com/samcharles93/spanmask/internal/masking"
)

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	return table
}

// displayRow renders example b: '#' masked, '.' unmasked valid frame,
// '_' unmasked padding.
func displayRow(m *masking.Mask, b, length int) string {
	var sb strings.Builder
	sb.Grow(m.SeqLen)
	for t, v := range m.Row(b) {
		switch {
		case v:
			sb.WriteByte('#')
		case t < length:
			sb.WriteByte('.')
		default:
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

// truncateRow cuts s to width columns, marking the cut with '>'. A width
// of 0 disables truncation.
func truncateRow(s string, width int) string {
	if width <= 0 || len(s) <= width {
		return s
	}
	if width == 1 {
		return ">"
	}
	return s[:width-1] + ">"
}

// renderMask prints one line per example, fitted to width columns.
func renderMask(w io.Writer, m *masking.Mask, lengths []int, width int) {
	for b := range m.Batch {
		prefix := fmt.Sprintf("%3d [%4d] ", b, lengths[b])
		avail := 0
		if width > 0 {
			avail = max(width-len(prefix), 1)
		}
		_, _ = fmt.Fprintln(w, prefix+truncateRow(displayRow(m, b, lengths[b]), avail))
	}
}

func renderCoverage(w io.Writer, cs masking.CoverageStats, lengths []int) {
	table := newTable(w, []string{"EXAMPLE", "LENGTH", "MASKED", "COVERAGE"})
	for b := range cs.Masked {
		table.Append([]string{
			strconv.Itoa(b),
			strconv.Itoa(lengths[b]),
			strconv.Itoa(cs.Masked[b]),
			formatPercent(cs.Fraction[b]),
		})
	}
	table.Render()
	_, _ = fmt.Fprintf(w, "\nmean coverage %s (std %s)\n", formatPercent(cs.Mean), formatPercent(cs.StdDev))
}

func formatPercent(f float64) string {
	return strconv.FormatFloat(f*100, 'f', 1, 64) + "%"
}
