package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// extractXLSX reads every sheet as one table. Spreadsheet statements are
// already cell-structured, so no gap heuristics are needed.
func extractXLSX(data []byte) (document, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return document{}, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	var doc document
	var text strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}
		var tbl [][]string
		for _, row := range rows {
			empty := true
			for _, cell := range row {
				if strings.TrimSpace(cell) != "" {
					empty = false
					break
				}
			}
			if empty {
				continue
			}
			tbl = append(tbl, row)
			text.WriteString(strings.Join(row, " "))
			text.WriteByte('\n')
		}
		if len(tbl) > 0 {
			doc.tables = append(doc.tables, tbl)
		}
	}
	doc.text = text.String()
	return doc, nil
}
