// Package export writes guess records and per-glyph stats as an XLSX
// workbook for puzzle authors.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/robalobadob/vine-riddle/internal/store"
)

const (
	guessSheet = "Guesses"
	statsSheet = "Stats"
)

// WriteWorkbook writes a workbook with a Guesses sheet (one row per record)
// and a Stats sheet (one row per glyph) to w.
func WriteWorkbook(w io.Writer, records []store.GuessRecord, stats []store.GlyphStats) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", guessSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(statsSheet); err != nil {
		return err
	}

	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		rows = append(rows, []interface{}{
			r.VisitorID, r.Glyph, r.Raw, r.Outcome, r.Attempts, fmt.Sprintf("%t", r.Solved),
			r.UpdatedAt.UTC().Format(time.RFC3339),
		})
	}
	if err := writeSheet(f, guessSheet,
		[]interface{}{"visitor_id", "glyph", "raw", "outcome", "attempts", "solved", "updated_at"}, rows); err != nil {
		return err
	}

	rows = make([][]interface{}, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, []interface{}{s.Glyph, s.Visitors, s.Attempts, s.Solved})
	}
	if err := writeSheet(f, statsSheet,
		[]interface{}{"glyph", "visitors", "attempts", "solved"}, rows); err != nil {
		return err
	}

	return f.Write(w)
}

// writeSheet streams a header row and data rows into sheet.
func writeSheet(f *excelize.File, sheet string, header []interface{}, rows [][]interface{}) error {
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("stream %s: %w", sheet, err)
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2) // A2, A3, ...
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}
	return sw.Flush()
}
