package dataset

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"love-vs-grades-go/internal/aggregator"
	"love-vs-grades-go/internal/types"
)

// WriteReport exports a dashboard as a workbook: an overview sheet, one
// sheet per chart and the per-status matrix.
func WriteReport(w io.Writer, d aggregator.Dashboard) error {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("style: %w", err)
	}

	if err := f.SetSheetName("Sheet1", "Overview"); err != nil {
		return err
	}
	overview := [][]any{
		{"Metric", "Value"},
		{"Grade", d.Grade},
		{"Responses", d.Total},
		{"Avg Focus", d.AvgFocus},
		{"Avg Time (s)", d.AvgTimeSeconds},
	}
	if err := writeSheet(f, "Overview", overview, bold); err != nil {
		return err
	}

	charts := []struct {
		name string
		rows []types.AggregateRow
	}{
		{"Status", d.Status},
		{"Focus by Status", d.FocusByStatus},
		{"Sleep", d.Sleep},
		{"Study Partner", d.Partner},
		{"Screen Time", d.ScreenTime},
		{"Archetypes", d.Archetypes},
	}
	for _, c := range charts {
		if _, err := f.NewSheet(c.name); err != nil {
			return fmt.Errorf("sheet %s: %w", c.name, err)
		}
		data := [][]any{{"Group", "Value", "Count", "Unit", "Share"}}
		for _, r := range c.rows {
			data = append(data, []any{r.Name, r.Value, r.Count, r.Unit, r.Percentage})
		}
		if err := writeSheet(f, c.name, data, bold); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet("Matrix"); err != nil {
		return err
	}
	matrix := [][]any{{"Status", "Count", "Avg Focus", "Avg Sleep", "Avg Screen (h)"}}
	for _, m := range d.Matrix {
		matrix = append(matrix, []any{m.Status, m.Count, m.AvgFocus, m.AvgSleep, m.AvgScreen})
	}
	if err := writeSheet(f, "Matrix", matrix, bold); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	return f.Write(w)
}

func writeSheet(f *excelize.File, sheet string, rows [][]any, headerStyle int) error {
	for i, r := range rows {
		if err := writeRow(f, sheet, i+1, r); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return f.SetRowStyle(sheet, 1, 1, headerStyle)
}
