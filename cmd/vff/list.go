package main

import (
	"context"
	"fmt"
	"io"

	"github.com/aligator/govff"
	"github.com/aligator/govff/internal/cmdlogger"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

func listCommand(stdout io.Writer, fsys afero.Fs, logHandler *cmdlogger.Handler) *cli.Command {
	return &cli.Command{
		Name:         "list",
		Usage:        "list the contents of a container",
		ArgsUsage:    "<src>",
		Flags:        commonFlags(),
		OnUsageError: onUsageError,
		Action: func(_ context.Context, cmd *cli.Command) error {
			opts, err := resolveOptions(cmd, fsys, logHandler)
			if err != nil {
				return err
			}
			if cmd.Args().Len() != 1 {
				return usageErrorf("list expects exactly one container, got %d arguments", cmd.Args().Len())
			}

			vff, root, err := govff.OpenFs(fsys, cmd.Args().First())
			if err != nil {
				return err
			}
			defer vff.Close()

			lines, err := root.List(opts.showDeleted)
			if err != nil {
				return err
			}
			for _, line := range lines {
				if _, err := fmt.Fprintln(stdout, line); err != nil {
					return err
				}
			}

			return nil
		},
	}
}
