package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"hydroponics/internal/client"
	"hydroponics/internal/export"
	"hydroponics/internal/measurement"
	"hydroponics/internal/models"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// filterFlags maps flag names to filter fields.
var filterFlags = []struct {
	flag, field, usage string
}{
	{"ph-min", measurement.FieldPHMin, "minimum pH"},
	{"ph-max", measurement.FieldPHMax, "maximum pH"},
	{"temp-min", measurement.FieldTemperatureMin, "minimum temperature °C"},
	{"temp-max", measurement.FieldTemperatureMax, "maximum temperature °C"},
	{"tds-min", measurement.FieldTDSMin, "minimum TDS ppm"},
	{"tds-max", measurement.FieldTDSMax, "maximum TDS ppm"},
	{"after", measurement.FieldTimestampAfter, "readings on or after this date (YYYY-MM-DD)"},
	{"before", measurement.FieldTimestampBefore, "readings on or before this date (YYYY-MM-DD)"},
}

func addFilterFlags(fs *pflag.FlagSet) {
	for _, f := range filterFlags {
		fs.String(f.flag, "", f.usage)
	}
}

// filterFromFlags builds a Filter from the flags that were set.
func filterFromFlags(fs *pflag.FlagSet) (*measurement.Filter, error) {
	filter := measurement.NewFilter()
	for _, f := range filterFlags {
		if !fs.Changed(f.flag) {
			continue
		}
		v, _ := fs.GetString(f.flag)
		if err := filter.SetField(f.field, v); err != nil {
			return nil, fmt.Errorf("--%s: %w", f.flag, err)
		}
	}
	return filter, nil
}

func newMeasurementsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "measurements",
		Aliases: []string{"m"},
		Short:   "List, add, chart and export readings",
	}
	cmd.AddCommand(
		newMeasurementsListCmd(a),
		newMeasurementsAddCmd(a),
		newMeasurementsChartCmd(a),
		newMeasurementsExportCmd(a),
	)
	return cmd
}

func newMeasurementsListCmd(a *app) *cobra.Command {
	var opts client.ListOptions
	cmd := &cobra.Command{
		Use:   "list <system-id>",
		Short: "List readings matching the filter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			filter, err := filterFromFlags(cmd.Flags())
			if err != nil {
				return err
			}
			c, err := a.client()
			if err != nil {
				return err
			}
			ctx, cancel := a.context(cmd)
			defer cancel()
			ms, err := c.ListMeasurements(ctx, id, filter, opts)
			if err != nil {
				return err
			}
			return a.render(ms, measurementsTable(ms))
		},
	}
	f := cmd.Flags()
	addFilterFlags(f)
	f.StringVar(&opts.SortBy, "sort-by", "", "id, timestamp, ph, temperature or tds")
	f.StringVar(&opts.SortOrder, "sort-order", "", "asc or desc")
	f.IntVar(&opts.PageSize, "page-size", 0, "readings per request")
	f.IntVar(&opts.MaxPages, "max-pages", 0, "stop after this many pages (0 = all)")
	return cmd
}

func newMeasurementsAddCmd(a *app) *cobra.Command {
	var ph, temp, tds string
	cmd := &cobra.Command{
		Use:   "add <system-id>",
		Short: "Record a reading",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := a.client()
			if err != nil {
				return err
			}
			ctx, cancel := a.context(cmd)
			defer cancel()
			m, err := c.AddMeasurement(ctx, id, ph, temp, tds)
			if err != nil {
				return err
			}
			return a.render(m, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Recorded reading %d at %s.\n", m.ID, formatTime(m.Timestamp))
				return err
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&ph, "ph", "", "pH, 0 to 14")
	f.StringVar(&temp, "temperature", "", "water temperature °C, -10 to 50")
	f.StringVar(&tds, "tds", "", "total dissolved solids, ppm")
	for _, name := range []string{"ph", "temperature", "tds"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

// chartOptions resolves the theme: --dark when given, else the saved preference.
func (a *app) chartOptions(cmd *cobra.Command, c *client.Client) (measurement.ChartOptions, error) {
	opts := measurement.ChartOptions{Location: time.Local}
	if cmd.Flags().Changed("dark") {
		opts.Dark, _ = cmd.Flags().GetBool("dark")
		return opts, nil
	}
	ctx, cancel := a.context(cmd)
	defer cancel()
	prefs, err := c.Preferences(ctx)
	if err != nil {
		return opts, err
	}
	opts.Dark = prefs.DarkMode
	return opts, nil
}

func newMeasurementsChartCmd(a *app) *cobra.Command {
	var (
		serverSide bool
		follow     bool
		interval   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "chart <system-id>",
		Short: "Print the chart series for the filtered readings",
		Long: `Print the chart series for the filtered readings.

With --follow the chart is rebuilt whenever a new reading arrives, until
interrupted. With --server-side the API assembles the series using the
saved theme preference.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			filter, err := filterFromFlags(cmd.Flags())
			if err != nil {
				return err
			}
			c, err := a.client()
			if err != nil {
				return err
			}
			if serverSide {
				ctx, cancel := a.context(cmd)
				defer cancel()
				bundle, err := c.ServerChart(ctx, id, filter)
				if err != nil {
					return err
				}
				return a.printChart(bundle)
			}
			opts, err := a.chartOptions(cmd, c)
			if err != nil {
				return err
			}
			if follow {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()
				return a.followChart(ctx, c, id, filter, opts, interval)
			}
			ctx, cancel := a.context(cmd)
			defer cancel()
			bundle, err := c.Chart(ctx, id, filter, opts)
			if err != nil {
				return err
			}
			return a.printChart(bundle)
		},
	}
	addFilterFlags(cmd.Flags())
	cmd.Flags().Bool("dark", false, "use the dark palette (default: saved preference)")
	cmd.Flags().BoolVar(&serverSide, "server-side", false, "let the API assemble the chart")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "rebuild the chart on every new reading")
	cmd.Flags().DurationVar(&interval, "interval", 2*time.Second, "push interval with --follow")
	cmd.MarkFlagsMutuallyExclusive("server-side", "follow")
	cmd.MarkFlagsMutuallyExclusive("server-side", "dark")
	return cmd
}

func (a *app) printChart(bundle *measurement.ChartSeriesBundle) error {
	if bundle == nil {
		fmt.Fprintln(a.out, "No data available for the selected filters.")
		return nil
	}
	return a.render(bundle, func(w io.Writer) error {
		header := []string{"LABEL"}
		for _, ds := range bundle.Datasets {
			header = append(header, strings.ToUpper(ds.Label))
		}
		fmt.Fprintln(w, strings.Join(header, "\t"))
		for i, label := range bundle.Labels {
			row := []string{label}
			for _, ds := range bundle.Datasets {
				row = append(row, fmt.Sprintf("%g", ds.Data[i]))
			}
			fmt.Fprintln(w, strings.Join(row, "\t"))
		}
		return nil
	})
}

// followChart prints the chart once, then reloads it each time the stream
// reports a newer reading. Only the latest load is printed.
func (a *app) followChart(ctx context.Context, c *client.Client, id int, filter *measurement.Filter, opts measurement.ChartOptions, interval time.Duration) error {
	loader := client.NewChartLoader(c, id, opts, func(v client.ViewState) {
		if v.Err != nil {
			a.log.Warnw("chart reload failed", "system_id", id, "generation", v.Generation, "error", v.Err)
			return
		}
		if err := a.printChart(v.Chart); err != nil {
			a.log.Warnw("chart print failed", "error", err)
		}
	})
	defer loader.Close()

	loader.Load(filter)
	newest, seen := 0, false
	err := c.Stream(ctx, id, interval, func(ms []models.Measurement) {
		latest := 0
		if len(ms) > 0 {
			latest = ms[0].ID
		}
		if seen && latest != newest {
			loader.Load(filter)
		}
		newest, seen = latest, true
	})
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func newMeasurementsExportCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "export <system-id>",
		Short: "Write the filtered readings and chart series to an .xlsx file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			filter, err := filterFromFlags(cmd.Flags())
			if err != nil {
				return err
			}
			c, err := a.client()
			if err != nil {
				return err
			}
			opts, err := a.chartOptions(cmd, c)
			if err != nil {
				return err
			}
			ctx, cancel := a.context(cmd)
			defer cancel()
			ms, err := c.ListMeasurements(ctx, id, filter, client.ListOptions{SortBy: "timestamp", SortOrder: "asc"})
			if err != nil {
				return err
			}

			out, err := os.Create(file)
			if err != nil {
				return fmt.Errorf("create %s: %w", file, err)
			}
			werr := export.Write(out, ms, measurement.Assemble(ms, opts), export.Options{Location: opts.Location})
			if cerr := out.Close(); werr == nil {
				werr = cerr
			}
			if werr != nil {
				return werr
			}
			fmt.Fprintf(a.out, "Wrote %d readings to %s.\n", len(ms), file)
			return nil
		},
	}
	addFilterFlags(cmd.Flags())
	cmd.Flags().Bool("dark", false, "use the dark palette (default: saved preference)")
	cmd.Flags().StringVarP(&file, "file", "f", "measurements.xlsx", "output workbook")
	return cmd
}
