package main

import (
	"fmt"
	"io"

	"github.com/Nivl/svcs/internal/errutil"
	"github.com/spf13/cobra"
)

func newConfigCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config [NAME]",
		Short: "Get and set a username.",
		Args:  cobra.MaximumNArgs(1),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		p := configParams{}
		if len(args) == 1 {
			p.name = args[0]
			p.setName = true
		}
		return configCmd(cmd.OutOrStdout(), cfg, p)
	}

	return cmd
}

type configParams struct {
	name    string
	setName bool
}

func configCmd(out io.Writer, cfg *globalFlags, p configParams) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	if p.setName {
		if err = r.SetUsername(p.name); err != nil {
			return err
		}
		fmt.Fprintf(out, "The username is %s.\n", p.name)
		return nil
	}

	name, err := r.Username()
	if err != nil {
		return err
	}
	if name == "" {
		fmt.Fprintln(out, "Please, tell me who you are.")
		return nil
	}
	fmt.Fprintf(out, "The username is %s.\n", name)
	return nil
}
