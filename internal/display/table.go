// Package display renders result sets as plain-text tables for the terminal.
package display

import (
	"fmt"
	"io"
	"text/tabwriter"
	"unicode/utf8"

	"video-research/internal/domain"
)

const (
	// DefaultPreviewRows is how many rows a preview shows.
	DefaultPreviewRows = 10

	maxCellWidth = 48
)

// Table renders the leading rows of a result set.
type Table struct {
	rows int
}

// NewTable creates a Table showing at most rows rows; non-positive values use DefaultPreviewRows.
func NewTable(rows int) *Table {
	if rows <= 0 {
		rows = DefaultPreviewRows
	}
	return &Table{rows: rows}
}

// Render writes the notice (if any) and a column-aligned preview of rs to w.
func (t *Table) Render(w io.Writer, rs *domain.ResultSet) error {
	if rs == nil {
		_, err := fmt.Fprintln(w, "No results.")
		return err
	}

	if rs.Notice != "" {
		if _, err := fmt.Fprintln(w, rs.Notice); err != nil {
			return err
		}
	}

	if rs.Len() == 0 {
		_, err := fmt.Fprintln(w, "No results.")
		return err
	}

	cols := rs.Workflow.Columns()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	for i, col := range cols {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, string(col))
	}
	fmt.Fprintln(tw)

	for _, row := range rs.Head(t.rows) {
		for i, col := range cols {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, Truncate(row.Cell(col), maxCellWidth))
		}
		fmt.Fprintln(tw)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	if rest := rs.Len() - t.rows; rest > 0 {
		_, err := fmt.Fprintf(w, "... %d more rows\n", rest)
		return err
	}

	return nil
}

// Truncate shortens s to at most width runes, marking the cut with "...".
func Truncate(s string, width int) string {
	if width <= 0 || utf8.RuneCountInString(s) <= width {
		return s
	}
	if width <= 3 {
		return string([]rune(s)[:width])
	}

	return string([]rune(s)[:width-3]) + "..."
}
