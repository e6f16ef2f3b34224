package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Nivl/svcs"
	"github.com/Nivl/svcs/backend"
	"github.com/Nivl/svcs/internal/errutil"
	"github.com/spf13/cobra"
)

func newCommitCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commit MESSAGE",
		Short: "Save changes.",
		Long:  "Save the current content of the tracked files. Multiple arguments are joined with a space.",
		Args:  cobra.ArbitraryArgs,
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return commitCmd(cmd.OutOrStdout(), cfg, strings.Join(args, " "))
	}

	return cmd
}

func commitCmd(out io.Writer, cfg *globalFlags, message string) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	_, err = r.Commit(message)
	switch {
	case err == nil:
		fmt.Fprintln(out, "Changes are committed.")
		return nil
	case errors.Is(err, svcs.ErrNothingToCommit):
		fmt.Fprintln(out, "Nothing to commit.")
		return nil
	case errors.Is(err, svcs.ErrMessageRequired):
		return newExitError(exitUserInput, "Message was not passed.", err)
	case errors.Is(err, svcs.ErrInvalidMessage):
		return newExitError(exitUserInput, "Message cannot contain a 'commit <id>' line followed by an 'Author:' line.", err)
	case errors.Is(err, svcs.ErrNothingTracked):
		return newExitError(exitUserInput, "Nothing tracked, add a file to the index.", err)
	case errors.Is(err, backend.ErrLocked):
		return newExitError(exitLocked, "another svcs process is running", err)
	default:
		return err
	}
}
