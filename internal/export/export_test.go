package export

import (
	"bytes"
	"testing"
	"time"

	"hydroponics/internal/measurement"
	"hydroponics/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sample() []models.Measurement {
	return []models.Measurement{
		{ID: 1, Timestamp: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC), PH: 6.2, Temperature: 20.5, TDS: 780},
		{ID: 2, Timestamp: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC), PH: 6.4, Temperature: 21, TDS: 800},
	}
}

func TestWrite_MeasurementsAndChart(t *testing.T) {
	ms := sample()
	bundle := measurement.Assemble(ms, measurement.ChartOptions{Location: time.UTC})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, ms, bundle, Options{}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{SheetMeasurements, SheetChart}, f.GetSheetList())

	rows, err := f.GetRows(SheetMeasurements)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ID", "Timestamp", "pH", "Temperature (°C)", "TDS (ppm)"}, rows[0])
	assert.Equal(t, []string{"2", "2024-03-01 09:30:00", "6.4", "21", "800"}, rows[2])

	chartRows, err := f.GetRows(SheetChart)
	require.NoError(t, err)
	require.Len(t, chartRows, 3)
	assert.Equal(t, []string{"Label", "pH", "Temperature (°C)", "TDS (ppm)"}, chartRows[0])
	assert.Equal(t, []string{"2024-03-01 08:00:00", "6.2", "20.5", "780"}, chartRows[1])
}

func TestWorkbook_NoChartWhenBundleNil(t *testing.T) {
	f, err := Workbook(nil, nil, Options{})
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{SheetMeasurements}, f.GetSheetList())
	rows, err := f.GetRows(SheetMeasurements)
	require.NoError(t, err)
	assert.Len(t, rows, 1, "header only")
}

func TestWorkbook_Location(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	f, err := Workbook(sample()[:1], nil, Options{Location: loc})
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	v, err := f.GetCellValue(SheetMeasurements, "B2")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01 10:00:00", v)
}
