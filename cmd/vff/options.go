package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/aligator/govff/internal/cmdlogger"
	"github.com/aligator/govff/internal/config"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

// usageError marks problems with the invocation itself.
type usageError struct {
	err error
}

func (e *usageError) Error() string {
	return e.err.Error()
}

func (e *usageError) Unwrap() error {
	return e.err
}

func usageErrorf(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

// onUsageError turns flag parsing failures reported by cli into usage errors.
func onUsageError(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return &usageError{err: err}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "show-deleted",
			Usage: "include deleted entries",
		},
		&cli.StringFlag{
			Name:  "config",
			Usage: "read defaults from this TOML file",
		},
		&cli.StringFlag{
			Name:  "verbosity",
			Usage: "log level, one of: " + strings.Join(cmdlogger.Levels(), ", "),
			Value: "info",
		},
	}
}

type options struct {
	showDeleted bool
}

// resolveOptions merges the config file with the flags. Flags which are set explicitly win.
func resolveOptions(cmd *cli.Command, fsys afero.Fs, logHandler *cmdlogger.Handler) (options, error) {
	cfg := config.Default()
	if path := cmd.String("config"); path != "" {
		loaded, err := config.Load(fsys, path)
		if err != nil {
			return options{}, &usageError{err: err}
		}
		cfg = loaded
	}

	opts := options{showDeleted: cfg.ShowDeleted}
	if cmd.IsSet("show-deleted") {
		opts.showDeleted = cmd.Bool("show-deleted")
	}

	verbosity := cfg.Verbosity
	if cmd.IsSet("verbosity") {
		verbosity = cmd.String("verbosity")
	}
	level, err := cmdlogger.ParseLevel(verbosity)
	if err != nil {
		return options{}, &usageError{err: err}
	}
	logHandler.SetLevel(level)

	if cfg.LoadPath != "" {
		cmdlogger.Debugf("Loaded config from %s", cfg.LoadPath)
	}

	return opts, nil
}
