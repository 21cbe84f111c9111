package task

import (
	"errors"
	"fmt"

	"github.com/flarebyte/ptah-forge/internal/dispatch"
)

// Dispatcher-owned exit codes. Helper exit codes pass through untouched; the
// shell conventions 126/127 keep "could not run" distinct from "ran and
// failed" without inventing a private numbering.
const (
	exitCodeGuardRefused  = 3
	exitCodeTimeout       = 124
	exitCodeNotExecutable = 126
	exitCodeMissing       = 127
)

type taskExitError struct {
	code int
	msg  string
}

func (e taskExitError) Error() string { return e.msg }
func (e taskExitError) ExitCode() int { return e.code }

// evaluateRunError maps helper resolution failures to distinct exit codes
// with a diagnostic naming the task and the path that could not be run.
func evaluateRunError(name string, err error) error {
	switch {
	case errors.Is(err, dispatch.ErrHelperMissing):
		return taskExitError{code: exitCodeMissing, msg: fmt.Sprintf("task %s: %v", name, err)}
	case errors.Is(err, dispatch.ErrHelperNotExecutable):
		return taskExitError{code: exitCodeNotExecutable, msg: fmt.Sprintf("task %s: %v", name, err)}
	default:
		return fmt.Errorf("task %s: %w", name, err)
	}
}

// evaluateTaskExit turns a completed run into the process exit. A helper that
// ran and failed propagates its exit code with no extra output.
func evaluateTaskExit(name string, res dispatch.Result) error {
	if res.TimedOut {
		return taskExitError{code: exitCodeTimeout, msg: fmt.Sprintf("task %s: helper timed out: %s", name, res.HelperPath)}
	}
	if res.ExitCode != 0 {
		return taskExitError{code: res.ExitCode}
	}
	return nil
}
