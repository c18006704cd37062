package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tOgg1/msgboard/internal/api"
)

// Exit codes returned by the msgboard binary.
const (
	ExitCodeFailure  = 1
	ExitCodeUsage    = 2
	ExitCodeNotFound = 3
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Exitf builds an ExitError with a formatted message.
func Exitf(code int, format string, args ...any) error {
	return &ExitError{Code: code, Err: fmt.Errorf(format, args...)}
}

func usageError(cmd *cobra.Command, msg string) error {
	return &ExitError{Code: ExitCodeUsage, Err: fmt.Errorf("%s (see %s --help)", msg, cmd.CommandPath())}
}

// usageArgs makes positional argument failures exit with ExitCodeUsage.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return usageError(cmd, err.Error())
		}
		return nil
	}
}

// serviceError maps a client failure to an exit code. A 404 gets its own
// code so scripts can tell a missing message from an outage.
func serviceError(err error) error {
	if err == nil {
		return nil
	}
	code := ExitCodeFailure
	if api.IsNotFound(err) {
		code = ExitCodeNotFound
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	return &ExitError{Code: code, Err: err}
}
