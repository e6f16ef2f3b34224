package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/Nivl/svcs"
	"github.com/Nivl/svcs/backend"
	"github.com/Nivl/svcs/internal/errutil"
	"github.com/spf13/cobra"
)

func newCheckoutCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkout COMMIT",
		Short: "Restore a file.",
		Long:  "Restore the tracked files as they were in the given commit.",
		Args:  cobra.MaximumNArgs(1),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		id := ""
		if len(args) == 1 {
			id = args[0]
		}
		return checkoutCmd(cmd.OutOrStdout(), cfg, id)
	}

	return cmd
}

func checkoutCmd(out io.Writer, cfg *globalFlags, id string) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	err = r.Checkout(id)
	switch {
	case err == nil:
		fmt.Fprintf(out, "Switched to commit %s.\n", id)
		return nil
	case errors.Is(err, svcs.ErrCommitIDRequired):
		return newExitError(exitUserInput, "Commit id was not passed.", err)
	case errors.Is(err, backend.ErrCommitNotFound):
		return newExitError(exitNotFound, "Commit does not exist.", err)
	case errors.Is(err, backend.ErrLocked):
		return newExitError(exitLocked, "another svcs process is running", err)
	default:
		return err
	}
}
