package main

import (
	"fmt"
	"io"

	"github.com/Nivl/svcs/env"
	"github.com/Nivl/svcs/internal/logutil"
	"github.com/Nivl/svcs/internal/pathutil"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
)

type globalFlags struct {
	env     *env.Env
	C       pflag.Value // run as if svcs was started in the provided path
	verbose bool
	logger  *zap.Logger
}

// helpPage lists the commands in the order they are usually used
var helpPage = []struct {
	name  string
	short string
}{
	{"config", "Get and set a username."},
	{"add", "Add a file to the index."},
	{"log", "Show commit logs."},
	{"commit", "Save changes."},
	{"checkout", "Restore a file."},
}

func newRootCmd(cwd string, e *env.Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "svcs",
		Short:         "Simple version control system",
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cfg := &globalFlags{
		env: e,
		C:   pathutil.NewDirPathFlagWithDefault(cwd),
	}
	cmd.PersistentFlags().VarP(cfg.C, "C", "C", "Run as if svcs was started in the provided path instead of the current working directory.")
	cmd.PersistentFlags().BoolVarP(&cfg.verbose, "verbose", "v", false, "Print debug logs to stderr.")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level := env.NewOptions(cfg.env).LogLevel
		if cfg.verbose {
			level = "debug"
		}
		logger, err := logutil.New(cmd.ErrOrStderr(), level)
		if err != nil {
			return xerrors.Errorf("invalid log level %q: %w", level, err)
		}
		cfg.logger = logger
		zap.ReplaceGlobals(logger)
		return nil
	}

	defaultHelp := cmd.HelpFunc()
	cmd.SetHelpFunc(func(c *cobra.Command, args []string) {
		if c != cmd {
			defaultHelp(c, args)
			return
		}
		printHelpPage(c.OutOrStdout())
	})

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return newExitError(exitUserInput, fmt.Sprintf("'%s' is not a SVCS command.", args[0]), nil)
		}
		printHelpPage(cmd.OutOrStdout())
		return nil
	}

	cmd.AddCommand(newInitCmd(cfg))
	cmd.AddCommand(newConfigCmd(cfg))
	cmd.AddCommand(newAddCmd(cfg))
	cmd.AddCommand(newLogCmd(cfg))
	cmd.AddCommand(newCommitCmd(cfg))
	cmd.AddCommand(newCheckoutCmd(cfg))

	return cmd
}

func printHelpPage(out io.Writer) {
	fmt.Fprintln(out, "These are SVCS commands:")
	for _, c := range helpPage {
		fmt.Fprintf(out, "%-10s %s\n", c.name, c.short)
	}
}
