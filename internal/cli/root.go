// Package cli wires configuration, logging, storage and the service behind
// the tasker command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/tasker/internal/config"
	"github.com/sandeepkv93/tasker/internal/logging"
	"github.com/sandeepkv93/tasker/internal/model"
	"github.com/sandeepkv93/tasker/internal/service"
	"github.com/sandeepkv93/tasker/internal/storage"
	"github.com/spf13/cobra"
)

const (
	ExitOK       = 0
	ExitUsage    = 2
	ExitNotFound = 3
	ExitInvalid  = 4
	ExitInternal = 10
)

// UsageError marks bad input from the command line.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

func usagef(format string, args ...any) error {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

// ErrCheckFailed is returned by check when a file does not match its schema.
var ErrCheckFailed = errors.New("check: files do not match schema")

type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	dataDir    string
	backend    string
	logLevel   string

	cfg     config.RuntimeConfig
	logger  *log.Logger
	store   storage.Backend
	svc     *service.Service
	version string
}

// Execute runs the command tree and maps the outcome to an exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := newApp(stdout, stderr)
	root := newRootCommand(a)
	if args == nil {
		// cobra falls back to os.Args on nil
		args = []string{}
	}
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if closeErr := a.teardown(); err == nil {
		err = closeErr
	}
	if err == nil {
		return ExitOK
	}
	_, _ = fmt.Fprintln(stderr, "Error:", err)
	return ExitCode(err)
}

func ExitCode(err error) int {
	var usage *UsageError
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &usage), errors.Is(err, model.ErrInvalidCategory):
		return ExitUsage
	case errors.Is(err, storage.ErrIndexOutOfRange):
		return ExitNotFound
	case errors.Is(err, ErrCheckFailed):
		return ExitInvalid
	default:
		return ExitInternal
	}
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{stdout: stdout, stderr: stderr, version: "0.1"}
}

// NewRootCommand builds the command tree without the exit-code mapping and
// backend cleanup done by Execute.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	return newRootCommand(newApp(stdout, stderr))
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "tasker",
		Short:         "A small task list for the terminal",
		Long:          "tasker keeps a list of tasks in a JSON file (or SQLite) and offers a CLI and a terminal UI over it.",
		Version:       a.version,
		SilenceUsage:  true,
		SilenceErrors: true,
		// Positional args reaching the root are unknown subcommands.
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usagef("unknown command %q for %q", args[0], cmd.CommandPath())
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.HasParent() {
				return nil
			}
			return a.setup(cmd)
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/tasker/config.toml)")
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "directory holding tasks and settings")
	root.PersistentFlags().StringVar(&a.backend, "backend", "", "storage backend: json or sqlite")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		newAddCmd(a),
		newListCmd(a),
		newDoneCmd(a),
		newRemoveCmd(a),
		newStatsCmd(a),
		newThemeCmd(a),
		newCheckCmd(a),
		newExportCmd(a),
		newTUICmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	path := a.configPath
	explicit := path != ""
	if !explicit {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.Load(path, explicit)
	if err != nil {
		return &UsageError{Err: err}
	}
	if a.dataDir != "" {
		cfg.DataDir = a.dataDir
	}
	if a.backend != "" {
		cfg.Backend = strings.ToLower(a.backend)
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if cfg, err = cfg.Validate(); err != nil {
		return &UsageError{Err: err}
	}
	a.cfg = cfg

	a.logger = logging.FromConfig(a.stderr, cfg.LogLevel, cfg.LogFormat)
	if cmd.Name() == "tui" {
		a.logger = logging.Discard()
	}
	a.logger.Debug("config resolved", "data_dir", cfg.DataDir, "backend", cfg.Backend)

	if cmd.Name() == "check" {
		return nil
	}
	onRecover := func(source string, err error) {
		a.logger.Warn("could not read tasks, starting empty", "source", source, "err", err)
	}
	switch cfg.Backend {
	case config.BackendSQLite:
		snap, err := storage.OpenSQLite(cfg.DBPath(), onRecover)
		if err != nil {
			return err
		}
		a.store = snap
	default:
		a.store = storage.NewJSONFile(cfg.TasksPath(), onRecover)
	}
	a.svc = service.New(cmd.Context(), a.store, service.Options{
		SettingsPath: cfg.SettingsPath(),
		Logger:       a.logger,
	})
	return nil
}

func (a *app) teardown() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}

func parsePosition(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 0, usagef("task number must be a positive integer, got %q", raw)
	}
	return n, nil
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usagef("%s expects %d argument(s), got %d", cmd.Name(), n, len(args))
		}
		return nil
	}
}

func maxArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > n {
			return usagef("%s accepts at most %d argument(s), got %d", cmd.Name(), n, len(args))
		}
		return nil
	}
}
