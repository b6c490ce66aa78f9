package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
)

func newPrefsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change display preferences",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Show preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			ctx, cancel := a.context(cmd)
			defer cancel()
			p, err := c.Preferences(ctx)
			if err != nil {
				return err
			}
			return a.render(p, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "dark_mode\t%t\n", p.DarkMode)
				return err
			})
		},
	}, &cobra.Command{
		Use:   "dark-mode <true|false>",
		Short: "Switch the dark chart theme on or off",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dark, err := strconv.ParseBool(args[0])
			if err != nil {
				return fmt.Errorf("dark-mode expects true or false, got %q", args[0])
			}
			c, err := a.client()
			if err != nil {
				return err
			}
			ctx, cancel := a.context(cmd)
			defer cancel()
			p, err := c.SetDarkMode(ctx, dark)
			if err != nil {
				return err
			}
			return a.render(p, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "dark_mode\t%t\n", p.DarkMode)
				return err
			})
		},
	})
	return cmd
}
