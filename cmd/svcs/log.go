package main

import (
	"fmt"
	"io"
	"os"

	"github.com/Nivl/svcs/internal/errutil"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newLogCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show commit logs.",
		Args:  cobra.NoArgs,
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return logCmd(cmd.OutOrStdout(), cfg)
	}

	return cmd
}

func logCmd(out io.Writer, cfg *globalFlags) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	entries, err := r.Log()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No commits yet.")
		return nil
	}

	header := color.New(color.FgYellow)
	// color only checks if stdout is a terminal
	if out != os.Stdout {
		header.DisableColor()
	}
	for i, e := range entries {
		if i > 0 {
			fmt.Fprintln(out)
		}
		header.Fprint(out, e.Header()) //nolint:errcheck // same as fmt.Fprint
		fmt.Fprint(out, "\n", e.Details())
	}
	return nil
}
