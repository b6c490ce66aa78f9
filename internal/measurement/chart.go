package measurement

import (
	"time"

	"hydroponics/internal/models"
)

// Series keys of a ChartSeriesBundle, in dataset order.
const (
	SeriesPH          = "pH"
	SeriesTemperature = "Temperature"
	SeriesTDS         = "TDS"
)

const (
	defaultLabelLayout = "2006-01-02 15:04:05"
	lineTension        = 0.4
)

// palette holds the border color of each series.
type palette struct {
	ph, temperature, tds string
}

var (
	lightPalette = palette{
		ph:          "rgba(75, 192, 192, 1)",
		temperature: "rgba(255, 159, 64, 1)",
		tds:         "rgba(153, 102, 255, 1)",
	}
	darkPalette = palette{
		ph:          "rgba(255, 99, 132, 1)",
		temperature: "rgba(54, 162, 235, 1)",
		tds:         "rgba(75, 192, 192, 1)",
	}
)

// Dataset is one named series aligned with the bundle labels.
type Dataset struct {
	Key         string    `json:"key"`
	Label       string    `json:"label"`
	Data        []float64 `json:"data"`
	BorderColor string    `json:"borderColor"`
	Tension     float64   `json:"tension"`
}

// ChartSeriesBundle is the renderer-ready form of a measurement sequence.
type ChartSeriesBundle struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Series returns the dataset with the given key, or nil.
func (b *ChartSeriesBundle) Series(key string) *Dataset {
	if b == nil {
		return nil
	}
	for i := range b.Datasets {
		if b.Datasets[i].Key == key {
			return &b.Datasets[i]
		}
	}
	return nil
}

// ChartOptions controls label formatting and styling.
type ChartOptions struct {
	Dark     bool
	Layout   string         // time layout for labels; empty means "2006-01-02 15:04:05"
	Location *time.Location // nil means time.Local
}

// Assemble maps measurements to a ChartSeriesBundle, keeping input order.
// It returns nil when ms is empty; callers must not render in that case.
func Assemble(ms []models.Measurement, opts ChartOptions) *ChartSeriesBundle {
	if len(ms) == 0 {
		return nil
	}

	layout := opts.Layout
	if layout == "" {
		layout = defaultLabelLayout
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	pal := lightPalette
	if opts.Dark {
		pal = darkPalette
	}

	labels := make([]string, len(ms))
	ph := make([]float64, len(ms))
	temp := make([]float64, len(ms))
	tds := make([]float64, len(ms))
	for i, m := range ms {
		labels[i] = m.Timestamp.In(loc).Format(layout)
		ph[i] = m.PH
		temp[i] = m.Temperature
		tds[i] = float64(m.TDS)
	}

	return &ChartSeriesBundle{
		Labels: labels,
		Datasets: []Dataset{
			{Key: SeriesPH, Label: "pH", Data: ph, BorderColor: pal.ph, Tension: lineTension},
			{Key: SeriesTemperature, Label: "Temperature (°C)", Data: temp, BorderColor: pal.temperature, Tension: lineTension},
			{Key: SeriesTDS, Label: "TDS (ppm)", Data: tds, BorderColor: pal.tds, Tension: lineTension},
		},
	}
}
