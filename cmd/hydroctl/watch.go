package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hydroponics/internal/models"

	"github.com/spf13/cobra"
)

func newWatchCmd(a *app) *cobra.Command {
	var interval time.Duration
	cmd := &cobra.Command{
		Use:   "watch <system-id>",
		Short: "Follow a system's newest reading until interrupted",
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
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var lastID int
			err = c.Stream(ctx, id, interval, func(ms []models.Measurement) {
				if len(ms) == 0 || ms[0].ID == lastID {
					return
				}
				lastID = ms[0].ID
				a.printReading(ms[0])
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", 2*time.Second, "push interval")
	return cmd
}

func (a *app) printReading(m models.Measurement) {
	if a.output() == outputJSON {
		_ = json.NewEncoder(a.out).Encode(m)
		return
	}
	fmt.Fprintf(a.out, "%s  pH %.2f  %.1f °C  %d ppm\n", formatTime(m.Timestamp), m.PH, m.Temperature, m.TDS)
}
