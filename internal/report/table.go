package report

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/compozy/tagmyrebase/internal/domain"
)

// Table accumulates result rows and renders them as left-justified columns.
type Table struct {
	rows []domain.ResultRow
}

// Add appends a row.
func (t *Table) Add(row domain.ResultRow) {
	t.rows = append(t.rows, row)
}

// Len returns the number of rows collected so far.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render writes the rows to w. Each column is as wide as its longest cell and
// columns are separated by one space. Nothing is written for an empty table.
func (t *Table) Render(w io.Writer) error {
	if len(t.rows) == 0 {
		return nil
	}
	var widths []int
	for _, row := range t.rows {
		for i, cell := range row.Cells() {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], utf8.RuneCountInString(cell))
		}
	}
	var b strings.Builder
	for _, row := range t.rows {
		cells := row.Cells()
		for i, cell := range cells {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(cell)
			if i < len(cells)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell)))
			}
		}
		b.WriteByte('\n')
	}
	if _, err := fmt.Fprint(w, b.String()); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
