package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// minCellGap is the horizontal gap, in points, that separates two table cells
// in extracted PDF text. Smaller gaps are word spacing within a cell.
const minCellGap = 10.0

// extractPDF pulls row-ordered text out of each page and rebuilds cell grids
// by splitting rows on wide horizontal gaps.
func extractPDF(data []byte) (document, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return document{}, fmt.Errorf("open pdf: %w", err)
	}

	var doc document
	var text strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		var tbl [][]string
		for _, row := range rows {
			cells := splitRowCells(row.Content)
			if len(cells) == 0 {
				continue
			}
			tbl = append(tbl, cells)
			text.WriteString(strings.Join(cells, " "))
			text.WriteByte('\n')
		}
		if len(tbl) > 0 {
			doc.tables = append(doc.tables, tbl)
		}
	}
	doc.text = text.String()
	return doc, nil
}

func splitRowCells(words []pdf.Text) []string {
	var cells []string
	var cur strings.Builder
	prevEnd := 0.0
	for _, w := range words {
		s := strings.TrimSpace(w.S)
		if s == "" {
			continue
		}
		if cur.Len() > 0 {
			if w.X-prevEnd > minCellGap {
				cells = append(cells, strings.TrimSpace(cur.String()))
				cur.Reset()
			} else {
				cur.WriteByte(' ')
			}
		}
		cur.WriteString(s)
		prevEnd = w.X + w.W
	}
	if cur.Len() > 0 {
		cells = append(cells, strings.TrimSpace(cur.String()))
	}
	return cells
}
