package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// password comes from --password or HYDROCTL_PASSWORD.
func passwordFlag(cmd *cobra.Command) (string, error) {
	pw, _ := cmd.Flags().GetString("password")
	if pw == "" {
		pw = os.Getenv(envPrefix + "_PASSWORD")
	}
	if pw == "" {
		return "", errors.New("password required: pass --password or set HYDROCTL_PASSWORD")
	}
	return pw, nil
}

func newRegisterCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register <email>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := passwordFlag(cmd)
			if err != nil {
				return err
			}
			c, err := a.client()
			if err != nil {
				return err
			}
			ctx, cancel := a.context(cmd)
			defer cancel()
			if err := c.Register(ctx, args[0], pw); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Registered %s. Run `hydroctl login %s` next.\n", args[0], args[0])
			return nil
		},
	}
	cmd.Flags().String("password", "", "account password (at least 8 characters)")
	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Sign in and remember the token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := passwordFlag(cmd)
			if err != nil {
				return err
			}
			c, err := a.client()
			if err != nil {
				return err
			}
			ctx, cancel := a.context(cmd)
			defer cancel()
			if err := c.Login(ctx, args[0], pw); err != nil {
				return err
			}
			if err := a.saveSession(c); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Logged in as %s.\n", args[0])
			return nil
		},
	}
	cmd.Flags().String("password", "", "account password")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			c.Logout()
			if err := a.saveSession(c); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Logged out.")
			return nil
		},
	}
}
