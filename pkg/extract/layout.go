package extract

import (
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	// rowTolerance groups fragments whose Y differs by less than this into
	// the same visual row.
	rowTolerance = 3.0
	// cellGap is the horizontal whitespace, in points, treated as a column
	// boundary rather than a word space.
	cellGap = 12.0
	// minTableRows is how many multi-cell rows a page needs before its
	// content is treated as a table.
	minTableRows = 2
)

// tableRows reconstructs table rows from a page's positioned text. It
// groups fragments into rows by Y coordinate, splits each row into cells
// at wide horizontal gaps, and returns nil when too few rows have more
// than one cell to call the page tabular.
func tableRows(texts []pdf.Text) [][]string {
	rows := groupRows(texts)
	if len(rows) == 0 {
		return nil
	}

	out := make([][]string, 0, len(rows))
	multi := 0
	for _, row := range rows {
		cells := rowCells(row)
		if len(cells) > 1 {
			multi++
		}
		out = append(out, cells)
	}
	if multi < minTableRows {
		return nil
	}
	return out
}

// groupRows buckets text fragments into visual rows, top of page first.
func groupRows(texts []pdf.Text) [][]pdf.Text {
	var frags []pdf.Text
	for _, t := range texts {
		if strings.TrimSpace(t.S) != "" {
			frags = append(frags, t)
		}
	}
	if len(frags) == 0 {
		return nil
	}

	// Higher Y is higher on the page in PDF coordinates.
	sort.SliceStable(frags, func(i, j int) bool {
		if frags[i].Y != frags[j].Y {
			return frags[i].Y > frags[j].Y
		}
		return frags[i].X < frags[j].X
	})

	var rows [][]pdf.Text
	rowY := frags[0].Y
	current := []pdf.Text{frags[0]}
	for _, t := range frags[1:] {
		if rowY-t.Y < rowTolerance {
			current = append(current, t)
			continue
		}
		rows = append(rows, current)
		current = []pdf.Text{t}
		rowY = t.Y
	}
	rows = append(rows, current)
	return rows
}

// rowCells assembles one row's fragments into cell strings. A gap wider
// than cellGap starts a new cell; narrower gaps become a single space when
// they exceed a fraction of the font size, the usual word-break width.
func rowCells(row []pdf.Text) []string {
	sorted := make([]pdf.Text, len(row))
	copy(sorted, row)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	var cells []string
	var cell strings.Builder
	prevEnd := sorted[0].X
	for i, t := range sorted {
		gap := t.X - prevEnd
		switch {
		case i == 0:
		case gap >= cellGap:
			cells = append(cells, strings.TrimSpace(cell.String()))
			cell.Reset()
		case gap >= wordSpace(t):
			cell.WriteByte(' ')
		}
		cell.WriteString(t.S)
		if end := t.X + t.W; end > prevEnd {
			prevEnd = end
		}
	}
	if s := strings.TrimSpace(cell.String()); s != "" {
		cells = append(cells, s)
	}
	return cells
}

func wordSpace(t pdf.Text) float64 {
	if t.FontSize > 0 {
		return t.FontSize * 0.3
	}
	return 1.5
}
