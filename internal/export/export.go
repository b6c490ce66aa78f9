// Package export writes measurements and chart series to an .xlsx workbook.
package export

import (
	"fmt"
	"io"
	"time"

	"hydroponics/internal/measurement"
	"hydroponics/internal/models"

	"github.com/xuri/excelize/v2"
)

// Sheet names of the exported workbook.
const (
	SheetMeasurements = "Measurements"
	SheetChart        = "Chart"
)

const timestampLayout = "2006-01-02 15:04:05"

var measurementHeader = []any{"ID", "Timestamp", "pH", "Temperature (°C)", "TDS (ppm)"}

// Options controls how timestamps are rendered.
type Options struct {
	Location *time.Location // nil means UTC
}

// Workbook builds a workbook with one row per reading and, when bundle is
// non-nil, a chart sheet holding the aligned series and a line chart.
// The caller owns the returned file and must Close it.
func Workbook(ms []models.Measurement, bundle *measurement.ChartSeriesBundle, opts Options) (*excelize.File, error) {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetMeasurements); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("header style: %w", err)
	}

	if err := writeMeasurements(f, ms, loc, bold); err != nil {
		_ = f.Close()
		return nil, err
	}
	if bundle != nil {
		if err := writeChart(f, bundle, bold); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	return f, nil
}

// Write builds the workbook and streams it to w.
func Write(w io.Writer, ms []models.Measurement, bundle *measurement.ChartSeriesBundle, opts Options) error {
	f, err := Workbook(ms, bundle, opts)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeMeasurements(f *excelize.File, ms []models.Measurement, loc *time.Location, headerStyle int) error {
	if err := f.SetSheetRow(SheetMeasurements, "A1", &measurementHeader); err != nil {
		return fmt.Errorf("measurements header: %w", err)
	}
	if err := f.SetCellStyle(SheetMeasurements, "A1", "E1", headerStyle); err != nil {
		return fmt.Errorf("measurements header style: %w", err)
	}
	for i, m := range ms {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{m.ID, m.Timestamp.In(loc).Format(timestampLayout), m.PH, m.Temperature, m.TDS}
		if err := f.SetSheetRow(SheetMeasurements, cell, &row); err != nil {
			return fmt.Errorf("measurement row %d: %w", i+1, err)
		}
	}
	return f.SetColWidth(SheetMeasurements, "B", "B", 20)
}

func writeChart(f *excelize.File, b *measurement.ChartSeriesBundle, headerStyle int) error {
	if _, err := f.NewSheet(SheetChart); err != nil {
		return fmt.Errorf("chart sheet: %w", err)
	}

	header := []any{"Label"}
	for _, ds := range b.Datasets {
		header = append(header, ds.Label)
	}
	if err := f.SetSheetRow(SheetChart, "A1", &header); err != nil {
		return fmt.Errorf("chart header: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetChart, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("chart header style: %w", err)
	}

	for i, label := range b.Labels {
		row := []any{label}
		for _, ds := range b.Datasets {
			row = append(row, ds.Data[i])
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetChart, cell, &row); err != nil {
			return fmt.Errorf("chart row %d: %w", i+1, err)
		}
	}

	lastRow := len(b.Labels) + 1
	series := make([]excelize.ChartSeries, 0, len(b.Datasets))
	for i := range b.Datasets {
		col, err := excelize.ColumnNumberToName(i + 2)
		if err != nil {
			return err
		}
		series = append(series, excelize.ChartSeries{
			Name:       fmt.Sprintf("'%s'!$%s$1", SheetChart, col),
			Categories: fmt.Sprintf("'%s'!$A$2:$A$%d", SheetChart, lastRow),
			Values:     fmt.Sprintf("'%s'!$%s$2:$%s$%d", SheetChart, col, col, lastRow),
		})
	}
	chartCell, err := excelize.CoordinatesToCellName(len(header)+2, 2)
	if err != nil {
		return err
	}
	if err := f.AddChart(SheetChart, chartCell, &excelize.Chart{
		Type:   excelize.Line,
		Series: series,
		Title:  []excelize.RichTextRun{{Text: "Readings"}},
	}); err != nil {
		return fmt.Errorf("add chart: %w", err)
	}
	return nil
}
