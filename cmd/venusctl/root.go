package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/42tr/venus/client"
	"github.com/42tr/venus/client/config"
	"github.com/42tr/venus/client/session"
	"github.com/42tr/venus/internal/logger"
)

const (
	storeFile   = "file"
	storeSQLite = "sqlite"
)

// rootOptions holds the persistent flags shared by every sub-command.
type rootOptions struct {
	apiURL       string
	mode         string
	sessionFile  string
	sessionStore string
	logFormat    string
	debug        bool
	timeout      time.Duration
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "venusctl",
		Short:         "venusctl manages venus accounts, projects and images",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := logger.Init(cmd.ErrOrStderr(), opts.logFormat, "venusctl", opts.debug); err != nil {
				return err
			}
			if opts.debug {
				log.Debug().Msg("debug logging enabled")
			}
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.apiURL, "api-url", "", "API root, e.g. https://venus.example.com (overrides VENUS_API_URL)")
	pf.StringVar(&opts.mode, "mode", "", "development or production (overrides VENUS_MODE)")
	pf.StringVar(&opts.sessionFile, "session-file", "", "Where the session is kept (default under the user config dir)")
	pf.StringVar(&opts.sessionStore, "session-store", storeFile, "Session backend: file or sqlite")
	pf.StringVar(&opts.logFormat, "log-format", logger.FormatConsole, "Log output: console or json")
	pf.BoolVarP(&opts.debug, "debug", "d", false, "Enable verbose debug output including HTTP dumps")
	pf.DurationVar(&opts.timeout, "timeout", 15*time.Second, "Deadline for each API call")

	rootCmd.AddCommand(newRegisterCmd(opts))
	rootCmd.AddCommand(newLoginCmd(opts))
	rootCmd.AddCommand(newWhoamiCmd(opts))
	rootCmd.AddCommand(newLogoutCmd(opts))
	rootCmd.AddCommand(newProjectsCmd(opts))
	rootCmd.AddCommand(newImagesCmd(opts))

	return rootCmd
}

// endpoints resolves the environment first and lets flags override it.
func (o *rootOptions) endpoints() (config.Endpoints, error) {
	src, err := config.FromEnv()
	if err != nil {
		return config.Endpoints{}, err
	}
	if o.apiURL != "" {
		src.Override = o.apiURL
	}
	if o.mode != "" {
		m, err := config.ParseMode(o.mode)
		if err != nil {
			return config.Endpoints{}, err
		}
		src.Mode = m
	}
	return config.Resolve(src), nil
}

func (o *rootOptions) sessionPath() (string, error) {
	if o.sessionFile != "" {
		return o.sessionFile, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	name := "session.json"
	if o.sessionStore == storeSQLite {
		name = "session.db"
	}
	return filepath.Join(dir, "venus", name), nil
}

// openStore returns the configured session store and a func releasing it.
func (o *rootOptions) openStore() (session.Store, func(), error) {
	path, err := o.sessionPath()
	if err != nil {
		return nil, nil, err
	}
	switch o.sessionStore {
	case storeFile:
		return session.NewFileStore(path), func() {}, nil
	case storeSQLite:
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, nil, fmt.Errorf("create session dir: %w", err)
		}
		s, err := session.OpenSQLiteStore(path)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported session store: %q", o.sessionStore)
	}
}

// newClient builds a Client bound to the resolved endpoints and the
// configured session store. Call the returned func when done.
func (o *rootOptions) newClient() (*client.Client, func(), error) {
	ep, err := o.endpoints()
	if err != nil {
		return nil, nil, err
	}
	if ep.IsRelative() {
		log.Warn().Str("base_url", ep.BaseURL).Msg("no API origin configured; set --api-url or VENUS_API_URL")
	}
	store, release, err := o.openStore()
	if err != nil {
		return nil, nil, err
	}
	c, err := client.New(ep,
		client.WithSessionStore(store),
		client.WithDebugLogging(o.debug),
		client.WithLogger(log.Logger),
	)
	if err != nil {
		release()
		return nil, nil, err
	}
	log.Debug().Str("base_url", ep.BaseURL).Str("session_store", o.sessionStore).Msg("client ready")
	return c, release, nil
}

// callContext bounds one API call by --timeout.
func (o *rootOptions) callContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), o.timeout)
}

// logFailure reports a failed command once. At debug level the entry also
// carries the error's stack.
func logFailure(err error) {
	ev := log.Error().Err(err)
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		ev = ev.Stack()
	}
	ev.Msg("command failed")
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
