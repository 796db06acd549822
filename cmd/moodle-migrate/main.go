// Package main is the entry point for the moodle-migrate application.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/docsa/moodle-migrate/internal/backup"
	"github.com/docsa/moodle-migrate/internal/config"
	"github.com/docsa/moodle-migrate/internal/log"
	"github.com/docsa/moodle-migrate/internal/organize"
	"github.com/docsa/moodle-migrate/internal/summary"
	"github.com/docsa/moodle-migrate/internal/utils"
	"github.com/google/uuid"
	urfavecli "github.com/urfave/cli/v3"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// errUsage is returned when the positional arguments are wrong.
var errUsage = errors.New("usage: moodle-migrate [flags] <backup-path> <destination-path>")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(os.Stdout, os.Stderr).Run(ctx, os.Args); err != nil {
		reportError(os.Stderr, err)
		stop()
		os.Exit(1) //nolint:gocritic
	}
}

// loggedError marks an error the run logger has already written to the console.
type loggedError struct {
	err error
}

func (e *loggedError) Error() string { return e.err.Error() }

func (e *loggedError) Unwrap() error { return e.err }

// reportError prints err to w unless it was already logged.
func reportError(w io.Writer, err error) {
	var logged *loggedError
	if errors.As(err, &logged) {
		return
	}
	fmt.Fprintf(w, "%v\n", err)
}

// newApp builds the command; console logs go to stderr and the summary to stdout.
func newApp(stdout, stderr io.Writer) *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "moodle-migrate",
		Usage:     "Reorganize the files of a Moodle course backup into a repository layout",
		ArgsUsage: "<backup-path> <destination-path>",
		Version:   versionString(),
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     globalFlags(),
		Action: func(ctx context.Context, cmd *urfavecli.Command) error {
			return runMigrate(ctx, cmd, stdout, stderr)
		},
	}
}

// runMigrate is the default action: validate the backup, organize it and
// print the summary.
func runMigrate(ctx context.Context, cmd *urfavecli.Command, stdout, stderr io.Writer) error {
	if cmd.NArg() != 2 {
		return errUsage
	}
	backupPath, err := utils.ExpandPath(cmd.Args().Get(0))
	if err != nil {
		return fmt.Errorf("error expanding backup path: %w", err)
	}
	destPath, err := utils.ExpandPath(cmd.Args().Get(1))
	if err != nil {
		return fmt.Errorf("error expanding destination path: %w", err)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := log.New(stderr, cfg.Debug)
	if err := logger.SetFile(cfg.LogFile); err != nil {
		fmt.Fprintf(stderr, "Error opening log file %q: %v\n", cfg.LogFile, err)
	}
	defer func() {
		if err := logger.Close(); err != nil {
			fmt.Fprintf(stderr, "Error closing log file: %v\n", err)
		}
	}()

	logger.Infof("Starting migration process (run %s, version %s)", uuid.NewString(), version)
	logger.Infof("Backup: %s, destination: %s", backupPath, destPath)

	if cfg.Validate {
		if err := backup.Validate(backupPath); err != nil {
			logger.Errorf("%v", err)
			logger.Errorf("Backup validation failed")
			return &loggedError{err: err}
		}
	}

	report, err := organize.New(backupPath, destPath, cfg, logger).Run(ctx)
	if err != nil {
		logger.Errorf("Migration failed: %v", err)
		return &loggedError{err: err}
	}

	logger.Infof("Migration completed successfully")
	fmt.Fprint(stdout, summary.Render(report, summary.IsTerminal(stdout)))
	return nil
}

// loadConfig loads the config file and applies flags and --config overrides,
// in increasing precedence.
func loadConfig(cmd *urfavecli.Command) (*config.AppConfig, error) {
	cfg, err := config.LoadConfig(cmd.String("config-file"))
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	if cmd.IsSet("log-file") {
		cfg.LogFile = cmd.String("log-file")
	}
	if cmd.Bool("debug") {
		cfg.Debug = true
	}
	if cmd.Bool("prune-shards") {
		cfg.PruneShards = true
	}
	if cmd.Bool("skip-validate") {
		cfg.Validate = false
	}

	if overrides := cmd.StringSlice("config"); len(overrides) > 0 {
		if err := cfg.ApplyCLIOverrides(overrides); err != nil {
			return nil, fmt.Errorf("error applying config overrides: %w", err)
		}
	}
	return cfg, nil
}

// versionString fills missing build metadata from runtime/debug.ReadBuildInfo().
func versionString() string {
	c := commit
	b := builtBy

	if c == "none" || b == "unknown" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if c == "none" {
				for _, setting := range info.Settings {
					if setting.Key == "vcs.revision" {
						c = setting.Value
					}
				}
			}
			if b == "unknown" {
				b = info.GoVersion
			}
		}
	}

	return fmt.Sprintf("%s (commit: %s, built at: %s, built by: %s)", version, c, date, b)
}
