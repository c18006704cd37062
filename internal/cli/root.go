// Package cli implements the msgboard command line.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tOgg1/msgboard/internal/api"
	"github.com/tOgg1/msgboard/internal/boardtui"
	"github.com/tOgg1/msgboard/internal/config"
	"github.com/tOgg1/msgboard/internal/logging"
)

type rootOptions struct {
	version string

	configFile   string
	baseURL      string
	pollInterval time.Duration
	theme        string
	logLevel     string
	logFile      string

	cfg         *config.Config
	interactive bool
	logCloser   io.Closer
}

// Execute runs the msgboard root command.
func Execute(version string) error {
	cmd, opts := newRootCmd(version)
	return opts.execute(cmd)
}

// execute runs cmd and releases the log file even when the command fails.
func (o *rootOptions) execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	if closeErr := o.teardown(); err == nil && closeErr != nil {
		err = Exitf(ExitCodeFailure, "close log file: %v", closeErr)
	}
	return err
}

func newRootCmd(version string) (*cobra.Command, *rootOptions) {
	opts := &rootOptions{version: version}
	cmd := &cobra.Command{
		Use:   "msgboard",
		Short: "Shared message board client",
		Long: "msgboard lists, posts, edits and deletes messages on a REST message service.\n" +
			"Without a subcommand it opens the terminal UI, or prints the list when stdout is not a terminal.",
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			opts.interactive = cmd == cmd.Root() && isTerminal(cmd.InOrStdin()) && isTerminal(cmd.OutOrStdout())
			return opts.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !opts.interactive {
				return runList(cmd, opts, false)
			}
			return opts.runTUI()
		},
	}

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return usageError(c, err.Error())
	})

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (default $XDG_CONFIG_HOME/msgboard/config.yaml)")
	flags.StringVar(&opts.baseURL, "base-url", "", "message service base URL")
	flags.DurationVar(&opts.pollInterval, "poll-interval", 0, "refresh period for the terminal UI (default 1s)")
	flags.StringVar(&opts.theme, "theme", "", "theme: default|high-contrast")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug|info|warn|error")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to this file")

	cmd.AddCommand(
		newListCmd(opts),
		newPostCmd(opts),
		newEditCmd(opts),
		newDeleteCmd(opts),
	)
	return cmd, opts
}

// setup loads configuration, applying changed flags on top, then starts
// logging.
func (o *rootOptions) setup(cmd *cobra.Command) error {
	loader := config.NewLoader()
	if o.configFile != "" {
		loader.SetConfigFile(o.configFile)
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		loader.Set("api.base_url", o.baseURL)
	}
	if flags.Changed("poll-interval") {
		loader.Set("poll.interval", o.pollInterval)
	}
	if flags.Changed("theme") {
		loader.Set("tui.theme", o.theme)
	}
	if flags.Changed("log-level") {
		loader.Set("logging.level", o.logLevel)
	}
	if flags.Changed("log-file") {
		loader.Set("logging.file", o.logFile)
	}

	cfg, err := loader.Load()
	if err != nil {
		return &ExitError{Code: ExitCodeUsage, Err: err}
	}
	o.cfg = cfg

	output, err := o.logOutput(cmd)
	if err != nil {
		return Exitf(ExitCodeFailure, "open log file: %v", err)
	}
	logging.Init(logging.Config{
		Level:        cfg.Logging.Level,
		Format:       cfg.Logging.Format,
		Output:       output,
		EnableCaller: cfg.Logging.EnableCaller,
	})
	if used := loader.ConfigFileUsed(); used != "" {
		logging.Logger.Debug().Str("path", used).Msg("loaded config file")
	}
	return nil
}

// logOutput picks the log sink. The terminal UI owns the screen, so it only
// logs to a file.
func (o *rootOptions) logOutput(cmd *cobra.Command) (io.Writer, error) {
	if path := o.cfg.Logging.File; path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		o.logCloser = f
		return f, nil
	}
	if o.interactive {
		return io.Discard, nil
	}
	return cmd.ErrOrStderr(), nil
}

func (o *rootOptions) teardown() error {
	if o.logCloser == nil {
		return nil
	}
	err := o.logCloser.Close()
	o.logCloser = nil
	return err
}

func (o *rootOptions) newClient() (*api.Client, error) {
	client, err := api.New(api.Options{
		BaseURL:   o.cfg.API.BaseURL,
		Timeout:   o.cfg.API.RequestTimeout,
		UserAgent: fmt.Sprintf("%s/%s", o.cfg.API.UserAgent, o.version),
	})
	if err != nil {
		return nil, &ExitError{Code: ExitCodeUsage, Err: err}
	}
	return client, nil
}

func (o *rootOptions) runTUI() error {
	client, err := o.newClient()
	if err != nil {
		return err
	}
	logger := logging.Component("cli")
	logger.Info().
		Str("endpoint", logging.RedactURL(o.cfg.MessagesURL())).
		Dur("poll_interval", o.cfg.Poll.Interval).
		Msg("starting terminal UI")

	return boardtui.Run(boardtui.Config{
		Service:        client,
		Source:         logging.RedactURL(client.BaseURL()),
		Theme:          o.cfg.TUI.Theme,
		PollInterval:   o.cfg.Poll.Interval,
		StateFile:      o.cfg.TUI.StateFile,
		ShowTimestamps: o.cfg.TUI.ShowTimestamps,
	})
}

func isTerminal(stream any) bool {
	f, ok := stream.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
