package main

import (
	"fmt"
	"io"
	"strconv"

	"hydroponics/internal/client"

	"github.com/spf13/cobra"
)

func newSystemsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "systems",
		Aliases: []string{"sys"},
		Short:   "Manage hydroponic systems",
	}
	cmd.AddCommand(
		newSystemsListCmd(a),
		newSystemsCreateCmd(a),
		newSystemsGetCmd(a),
		newSystemsUpdateCmd(a),
		newSystemsDeleteCmd(a),
	)
	return cmd
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid system id %q", arg)
	}
	return id, nil
}

func newSystemsListCmd(a *app) *cobra.Command {
	var q client.SystemQuery
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your systems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			ctx, cancel := a.context(cmd)
			defer cancel()
			page, err := c.ListSystems(ctx, q)
			if err != nil {
				return err
			}
			return a.render(page, func(w io.Writer) error {
				if err := systemsTable(page.Results)(w); err != nil {
					return err
				}
				_, err := fmt.Fprintf(w, "\n%d of %d\n", len(page.Results), page.Count)
				return err
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&q.Name, "name", "", "name contains (case-insensitive)")
	f.StringVar(&q.Location, "location", "", "location contains (case-insensitive)")
	f.StringVar(&q.SortBy, "sort-by", "", "id, name, location or created_at")
	f.StringVar(&q.SortOrder, "sort-order", "", "asc or desc")
	f.IntVar(&q.Page, "page", 0, "page number")
	f.IntVar(&q.PageSize, "page-size", 0, "page size")
	return cmd
}

func newSystemsCreateCmd(a *app) *cobra.Command {
	var location string
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a system",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			ctx, cancel := a.context(cmd)
			defer cancel()
			s, err := c.CreateSystem(ctx, args[0], location)
			if err != nil {
				return err
			}
			return a.render(s, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Created system %d (%s).\n", s.ID, s.Name)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&location, "location", "", "where the system stands")
	return cmd
}

func newSystemsGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a system and its latest readings",
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
			d, err := c.GetSystem(ctx, id)
			if err != nil {
				return err
			}
			return a.render(d, func(w io.Writer) error {
				s := d.System
				fmt.Fprintf(w, "System\t%d\nName\t%s\nLocation\t%s\nCreated\t%s\n\n",
					s.ID, s.Name, s.Location, formatTime(s.CreatedAt))
				return measurementsTable(d.LatestMeasurements)(w)
			})
		},
	}
}

func newSystemsUpdateCmd(a *app) *cobra.Command {
	var name, location string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Rename or move a system",
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

			// PUT replaces both fields; keep whatever was not given.
			cur, err := c.GetSystem(ctx, id)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("name") {
				name = cur.System.Name
			}
			if !cmd.Flags().Changed("location") {
				location = cur.System.Location
			}
			s, err := c.UpdateSystem(ctx, id, name, location)
			if err != nil {
				return err
			}
			return a.render(s, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Updated system %d (%s, %s).\n", s.ID, s.Name, s.Location)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&location, "location", "", "new location")
	return cmd
}

func newSystemsDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a system and all of its readings",
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
			if err := c.DeleteSystem(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Deleted system %d.\n", id)
			return nil
		},
	}
}
