package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/Nivl/svcs"
	"github.com/Nivl/svcs/env"
	"github.com/spf13/cobra"
)

func newInitCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an empty repository",
		Args:  cobra.NoArgs,
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return initCmd(cmd.OutOrStdout(), cfg)
	}

	return cmd
}

func initCmd(out io.Writer, cfg *globalFlags) error {
	opts := env.NewOptions(cfg.env)
	r, err := svcs.InitRepositoryWithOptions(cfg.C.String(), svcs.Options{
		RepoDirName: opts.RepoDirName,
		Logger:      cfg.logger,
	})
	if err != nil {
		if errors.Is(err, svcs.ErrRepositoryExists) {
			return newExitError(exitUserInput, fmt.Sprintf("A repository already exists in %s.", cfg.C.String()), err)
		}
		return err
	}
	fmt.Fprintf(out, "Initialized empty SVCS repository in %s\n", r.Path())
	return r.Close()
}
