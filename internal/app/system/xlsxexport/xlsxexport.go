// Package xlsxexport serializes a filtered view to a single-sheet workbook.
package xlsxexport

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/domain/models"
	"github.com/xuri/excelize/v2"
)

const (
	// ContentType is the MIME type of the exported workbook.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	// SheetName is the only sheet of the workbook.
	SheetName = "Filtered"

	dateFormat = "dd/mm/yyyy"
)

// FileName returns the download name for a portfolio export.
func FileName(id string) string {
	return fmt.Sprintf("filtered_data_%s.xlsx", id)
}

// Write encodes v to w and returns the number of data rows written.
// The header row is the view's column names, unchanged and in order.
// Nothing is written to w if ctx ends before the workbook is complete.
func Write(ctx context.Context, w io.Writer, v models.View) (int, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return 0, fmt.Errorf("rename sheet: %w", err)
	}
	numFmt := dateFormat
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return 0, fmt.Errorf("date style: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return 0, fmt.Errorf("stream writer: %w", err)
	}

	cols := v.Columns()
	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	if err := sw.SetRow("A1", header); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}

	rows := v.Rows()
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		cells := make([]any, len(row))
		for j, val := range row {
			if t, ok := val.(time.Time); ok {
				cells[j] = excelize.Cell{StyleID: dateStyle, Value: t}
				continue
			}
			cells[j] = val
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return 0, err
		}
		if err := sw.SetRow(axis, cells); err != nil {
			return 0, fmt.Errorf("write row %d: %w", i, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return 0, fmt.Errorf("flush sheet: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := f.Write(w); err != nil {
		return 0, fmt.Errorf("write workbook: %w", err)
	}
	return len(rows), nil
}
