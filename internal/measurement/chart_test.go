package measurement

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hydroponics/internal/models"
)

func sampleMeasurements() []models.Measurement {
	base := time.Date(2025, time.February, 15, 19, 8, 31, 0, time.UTC)
	return []models.Measurement{
		{ID: 1, Timestamp: base, PH: 6.5, Temperature: 22.5, TDS: 900},
		{ID: 2, Timestamp: base.Add(time.Hour), PH: 6.8, Temperature: 23.1, TDS: 870},
		{ID: 3, Timestamp: base.Add(-time.Hour), PH: 7.0, Temperature: 21.9, TDS: 910},
	}
}

func TestAssemble_EmptyIsNoChart(t *testing.T) {
	assert.Nil(t, Assemble(nil, ChartOptions{}))
	assert.Nil(t, Assemble([]models.Measurement{}, ChartOptions{Dark: true}))
}

func TestAssemble_AlignsSeriesWithLabels(t *testing.T) {
	ms := sampleMeasurements()
	b := Assemble(ms, ChartOptions{Location: time.UTC})
	require.NotNil(t, b)

	require.Len(t, b.Labels, len(ms))
	require.Len(t, b.Datasets, 3)
	for i, m := range ms {
		assert.Equal(t, m.PH, b.Series(SeriesPH).Data[i])
		assert.Equal(t, m.Temperature, b.Series(SeriesTemperature).Data[i])
		assert.Equal(t, float64(m.TDS), b.Series(SeriesTDS).Data[i])
	}
	// input order is kept even when not chronological
	assert.Equal(t, []string{"2025-02-15 19:08:31", "2025-02-15 20:08:31", "2025-02-15 18:08:31"}, b.Labels)
}

func TestAssemble_LabelLayoutAndLocation(t *testing.T) {
	warsaw := time.FixedZone("CET", 3600)
	b := Assemble(sampleMeasurements()[:1], ChartOptions{Layout: "02.01.2006, 15:04", Location: warsaw})
	require.NotNil(t, b)
	assert.Equal(t, "15.02.2025, 20:08", b.Labels[0])
}

func TestAssemble_Palettes(t *testing.T) {
	light := Assemble(sampleMeasurements(), ChartOptions{Location: time.UTC})
	dark := Assemble(sampleMeasurements(), ChartOptions{Dark: true, Location: time.UTC})

	assert.Equal(t, "rgba(75, 192, 192, 1)", light.Series(SeriesPH).BorderColor)
	assert.Equal(t, "rgba(255, 99, 132, 1)", dark.Series(SeriesPH).BorderColor)
	assert.Equal(t, "rgba(54, 162, 235, 1)", dark.Series(SeriesTemperature).BorderColor)
	assert.Equal(t, "rgba(153, 102, 255, 1)", light.Series(SeriesTDS).BorderColor)
	assert.Equal(t, light.Labels, dark.Labels)
}

func TestAssemble_Idempotent(t *testing.T) {
	ms := sampleMeasurements()
	opts := ChartOptions{Location: time.UTC}
	first := Assemble(ms, opts)
	second := Assemble(ms, opts)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("Assemble not deterministic (-first +second):\n%s", diff)
	}
}

func TestSeries_UnknownKeyAndNilBundle(t *testing.T) {
	var b *ChartSeriesBundle
	assert.Nil(t, b.Series(SeriesPH))
	assert.Nil(t, Assemble(sampleMeasurements(), ChartOptions{}).Series("EC"))
}
