package main

import (
	"context"

	"github.com/aligator/govff"
	"github.com/aligator/govff/internal/cmdlogger"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

func dumpCommand(fsys afero.Fs, logHandler *cmdlogger.Handler) *cli.Command {
	return &cli.Command{
		Name:         "dump",
		Usage:        "extract the contents of a container into a directory",
		ArgsUsage:    "<src> <dest>",
		Flags:        commonFlags(),
		OnUsageError: onUsageError,
		Action: func(_ context.Context, cmd *cli.Command) error {
			opts, err := resolveOptions(cmd, fsys, logHandler)
			if err != nil {
				return err
			}
			if cmd.Args().Len() != 2 {
				return usageErrorf("dump expects a container and a destination, got %d arguments", cmd.Args().Len())
			}
			src, dest := cmd.Args().Get(0), cmd.Args().Get(1)

			vff, root, err := govff.OpenFs(fsys, src)
			if err != nil {
				return err
			}
			defer vff.Close()

			if err := root.Dump(fsys, dest, opts.showDeleted); err != nil {
				return err
			}

			cmdlogger.Infof("Dumped %s to %s", src, dest)
			return nil
		},
	}
}
