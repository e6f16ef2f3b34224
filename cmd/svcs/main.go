package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/Nivl/svcs"
	"github.com/Nivl/svcs/backend"
	"github.com/Nivl/svcs/env"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
)

// List of the exit codes of the program
const (
	exitOK        = 0
	exitFailure   = 1
	exitUserInput = 2
	exitNotFound  = 3
	exitLocked    = 4
)

// exitError is an error that contains the message to print to the user
// and the code the program should exit with
type exitError struct {
	code int
	msg  string
	err  error
}

func newExitError(code int, msg string, err error) *exitError {
	return &exitError{
		code: code,
		msg:  msg,
		err:  err,
	}
}

func (e *exitError) Error() string {
	if e.msg != "" {
		return e.msg
	}
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit status %d", e.code)
}

func (e *exitError) Unwrap() error {
	return e.err
}

// exitCode returns the code the program should exit with
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var e *exitError
	if errors.As(err, &e) {
		return e.code
	}
	switch {
	case errors.Is(err, backend.ErrLocked):
		return exitLocked
	case errors.Is(err, backend.ErrPathNotFound),
		errors.Is(err, backend.ErrCommitNotFound):
		return exitNotFound
	case svcs.IsUserError(err):
		return exitUserInput
	default:
		return exitFailure
	}
}

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, xerrors.Errorf("could not get current working directory: %w", err))
		os.Exit(exitFailure)
	}

	root := newRootCmd(cwd, env.NewFromOs())
	err = root.Execute()
	zap.L().Sync() //nolint:errcheck // nothing we can do
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}
