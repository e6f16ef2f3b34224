package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/Nivl/svcs/backend"
	"github.com/Nivl/svcs/internal/errutil"
	"github.com/Nivl/svcs/internal/pathutil"
	"github.com/spf13/cobra"
)

func newAddCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [FILE]",
		Short: "Add a file to the index.",
		Long:  "Add a file to the index. When no file is provided, list the tracked files.",
		Args:  cobra.MaximumNArgs(1),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		return addCmd(cmd.OutOrStdout(), cfg, path)
	}

	return cmd
}

func addCmd(out io.Writer, cfg *globalFlags, path string) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	if path == "" {
		tracked, err := r.Tracked()
		if err != nil {
			return err
		}
		if len(tracked) == 0 {
			fmt.Fprintln(out, "Add a file to the index.")
			return nil
		}
		fmt.Fprintln(out, "Tracked files:")
		for _, p := range tracked {
			fmt.Fprintln(out, p)
		}
		return nil
	}

	if err = r.Add(path); err != nil {
		switch {
		case errors.Is(err, backend.ErrPathNotFound):
			return newExitError(exitNotFound, fmt.Sprintf("Can't find '%s'.", path), err)
		case errors.Is(err, pathutil.ErrIsDirectory):
			return newExitError(exitUserInput, fmt.Sprintf("'%s' is a directory.", path), err)
		}
		return err
	}
	fmt.Fprintf(out, "The file '%s' is tracked.\n", path)
	return nil
}
