package ui

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

// Table renders rows under a header line, padding columns to equal width.
type Table struct {
	writer  io.Writer
	headers []string
	rows    [][]string
	noColor bool
}

// NewTable creates a new table with the given headers
func NewTable(w io.Writer, noColor bool, headers ...string) *Table {
	return &Table{writer: w, headers: headers, noColor: noColor}
}

// AddRow adds a row to the table. Missing cells render empty; cells beyond
// the header count are dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.headers))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Len returns the number of rows added so far.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render renders the table to the writer
func (t *Table) Render() {
	if len(t.headers) == 0 {
		return
	}

	widths := make([]int, len(t.headers))
	for i, header := range t.headers {
		widths[i] = width(header)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], width(cell))
		}
	}

	header := paint(t.noColor, color.Bold, color.FgCyan)
	rule := paint(t.noColor, color.FgHiBlack)

	cells := make([]string, len(t.headers))
	for i, h := range t.headers {
		cells[i] = header.Sprint(padRight(h, widths[i]))
	}
	t.line(cells)

	for i, w := range widths {
		cells[i] = rule.Sprint(strings.Repeat("─", w))
	}
	t.line(cells)

	for _, row := range t.rows {
		for i, cell := range row {
			cells[i] = padRight(cell, widths[i])
		}
		t.line(cells)
	}
}

func (t *Table) line(cells []string) {
	fmt.Fprintln(t.writer, strings.TrimRight(strings.Join(cells, "  "), " "))
}

func width(s string) int {
	return utf8.RuneCountInString(s)
}

func padRight(s string, w int) string {
	if n := width(s); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return s
}

// KeyValueTable renders aligned "key: value" lines.
type KeyValueTable struct {
	writer  io.Writer
	keys    []string
	values  []string
	noColor bool
}

// NewKeyValueTable creates a new key-value table
func NewKeyValueTable(w io.Writer, noColor bool) *KeyValueTable {
	return &KeyValueTable{writer: w, noColor: noColor}
}

// AddRow adds a key-value pair to the table
func (t *KeyValueTable) AddRow(key, value string) {
	t.keys = append(t.keys, key)
	t.values = append(t.values, value)
}

// Render renders the key-value table
func (t *KeyValueTable) Render() {
	keyWidth := 0
	for _, key := range t.keys {
		keyWidth = max(keyWidth, width(key)+1)
	}

	cyan := paint(t.noColor, color.FgCyan)
	for i, key := range t.keys {
		cyan.Fprint(t.writer, padRight(key+":", keyWidth))
		fmt.Fprintf(t.writer, " %s\n", t.values[i])
	}
}

// Header renders a styled title followed by a rule of the same width.
func Header(w io.Writer, title string, noColor bool) {
	paint(noColor, color.Bold, color.FgCyan).Fprintln(w, title)
	paint(noColor, color.FgHiBlack).Fprintln(w, strings.Repeat("─", width(title)))
}
