package cli

import (
	"errors"
	"fmt"
)

// ExitCodeStepLimit is returned by `turing run` when the machine did not halt in budget.
const ExitCodeStepLimit = 2

// ExitError carries a process exit code. A nil Err means the output already
// explains the failure.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return 1
}
