package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/aligator/govff"
	"github.com/aligator/govff/checkpoint"
	"github.com/aligator/govff/internal/cmdlogger"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

const (
	exitInvalidData = 1
	exitUnsupported = 2
	exitUsage       = 127
	exitOther       = 128
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr, afero.NewOsFs()))
}

func run(args []string, stdout, stderr io.Writer, fsys afero.Fs) int {
	logHandler := cmdlogger.New(stdout, stderr)
	slog.SetDefault(slog.New(logHandler))

	app := &cli.Command{
		Name:         "vff",
		Usage:        "lists and extracts the contents of VFF containers",
		Writer:       stdout,
		ErrWriter:    stderr,
		OnUsageError: onUsageError,
		Commands: []*cli.Command{
			listCommand(stdout, fsys, logHandler),
			dumpCommand(fsys, logHandler),
		},
	}

	// Errors are reported below, together with the exit code.
	app.ExitErrHandler = func(_ context.Context, _ *cli.Command, _ error) {}

	err := app.Run(context.Background(), args)
	if err != nil {
		cmdlogger.Errorf("%v", err)
		for _, frame := range checkpoint.Frames(err) {
			cmdlogger.Debugf("  at %s", frame)
		}
	}

	return exitCode(err)
}

func exitCode(err error) int {
	var usage *usageError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &usage):
		return exitUsage
	case errors.Is(err, govff.ErrInvalidData):
		return exitInvalidData
	case errors.Is(err, govff.ErrUnsupported):
		return exitUnsupported
	default:
		return exitOther
	}
}
