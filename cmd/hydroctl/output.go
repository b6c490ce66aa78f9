package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"hydroponics/internal/models"

	"gopkg.in/yaml.v3"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

const tableTimeLayout = "2006-01-02 15:04:05"

// render writes v as JSON or YAML, or calls table for the table format.
func (a *app) render(v any, table func(w io.Writer) error) error {
	switch a.output() {
	case outputJSON:
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		// Round-trip through JSON so YAML keys match the API's field names.
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return err
		}
		enc := yaml.NewEncoder(a.out)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		if err := table(tw); err != nil {
			return err
		}
		return tw.Flush()
	}
}

func systemsTable(systems []models.System) func(io.Writer) error {
	return func(w io.Writer) error {
		fmt.Fprintln(w, "ID\tNAME\tLOCATION\tCREATED")
		for _, s := range systems {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", s.ID, s.Name, s.Location, s.CreatedAt.Local().Format(tableTimeLayout))
		}
		return nil
	}
}

func measurementsTable(ms []models.Measurement) func(io.Writer) error {
	return func(w io.Writer) error {
		fmt.Fprintln(w, "ID\tTIMESTAMP\tPH\tTEMP °C\tTDS ppm")
		for _, m := range ms {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n",
				m.ID, m.Timestamp.Local().Format(tableTimeLayout),
				strconv.FormatFloat(m.PH, 'f', 2, 64),
				strconv.FormatFloat(m.Temperature, 'f', 1, 64),
				m.TDS)
		}
		return nil
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(tableTimeLayout)
}
