package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"hydroponics/internal/client"
	"hydroponics/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	envPrefix      = "HYDROCTL"
	defaultServer  = "http://localhost:8000"
	defaultTimeout = 30 * time.Second
)

// Config keys, also the names of the persistent flags.
const (
	keyServer      = "server"
	keySessionFile = "session-file"
	keyOutput      = "output"
	keyTimeout     = "timeout"
	keyVerbose     = "verbose"
)

// app carries what every command needs.
type app struct {
	v   *viper.Viper
	out io.Writer
	log *logger.Logger
}

func newApp(out io.Writer) *app {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return &app{v: v, out: out, log: logger.Nop()}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "hydroctl",
		Short:         "Manage hydroponic systems and their readings",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := logger.WarnLevel
			if a.v.GetBool(keyVerbose) {
				level = logger.DebugLevel
			}
			a.log = logger.NewWithWriter(cmd.ErrOrStderr(), level, logger.FormatConsole)
			switch a.output() {
			case outputTable, outputJSON, outputYAML:
				return nil
			default:
				return fmt.Errorf("unknown --output %q (table, json or yaml)", a.output())
			}
		},
	}
	root.SetOut(a.out)

	flags := root.PersistentFlags()
	flags.String(keyServer, defaultServer, "API base URL (env HYDROCTL_SERVER)")
	flags.String(keySessionFile, defaultSessionPath(), "where the login token is kept")
	flags.StringP(keyOutput, "o", outputTable, "output format: table, json or yaml")
	flags.Duration(keyTimeout, defaultTimeout, "per-command timeout")
	flags.BoolP(keyVerbose, "v", false, "log requests to stderr")
	_ = a.v.BindPFlags(flags)

	root.AddCommand(
		newRegisterCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newSystemsCmd(a),
		newMeasurementsCmd(a),
		newPrefsCmd(a),
		newWatchCmd(a),
	)
	return root
}

func defaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".hydroctl-session.yaml"
	}
	return filepath.Join(dir, "hydroctl", "session.yaml")
}

func (a *app) output() string { return a.v.GetString(keyOutput) }

// context returns a context bounded by --timeout.
func (a *app) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), a.v.GetDuration(keyTimeout))
}

// client builds an API client whose session is restored from the session file.
// The file's token is only used when it was issued by the same server.
func (a *app) client() (*client.Client, error) {
	server := a.v.GetString(keyServer)
	c, err := client.New(server, client.WithLogger(a.log))
	if err != nil {
		return nil, err
	}
	sf, err := loadSession(a.v.GetString(keySessionFile))
	if err != nil {
		return nil, err
	}
	if sf != nil && sf.Server == server {
		c.Session().Login(sf.Email, sf.Token)
	}
	return c, nil
}

// saveSession persists the client's current session.
func (a *app) saveSession(c *client.Client) error {
	token, ok := c.Session().Token()
	if !ok {
		return removeSession(a.v.GetString(keySessionFile))
	}
	return storeSession(a.v.GetString(keySessionFile), sessionFile{
		Server:  a.v.GetString(keyServer),
		Email:   c.Session().Email(),
		Token:   token,
		SavedAt: time.Now().UTC(),
	})
}
