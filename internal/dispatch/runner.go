// Package dispatch locates and executes helper scripts from the tools
// directory. The helper inherits the caller's standard streams, runs with its
// working directory set on the spawned process (the dispatcher's own cwd is
// never touched) and its exit code is reported verbatim.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"time"
)

var (
	// ErrHelperMissing means no file exists for the helper.
	ErrHelperMissing = errors.New("helper not found")
	// ErrHelperNotExecutable means the file exists but cannot be executed.
	ErrHelperNotExecutable = errors.New("helper not executable")
)

// Runner executes helpers out of a single tools directory.
type Runner struct {
	ToolsDir string
	// Env is overlaid on the inherited environment.
	Env map[string]string
	// TimeoutMs bounds the helper run; 0 means no timeout.
	TimeoutMs int
	// TermGraceMs is the SIGTERM-to-SIGKILL grace period on timeout.
	TermGraceMs int

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Result describes one completed helper run.
type Result struct {
	HelperPath string
	ExitCode   int
	TimedOut   bool
	StartedAt  time.Time
	Duration   time.Duration
}

const defaultTermGraceMs = 2000

// Resolve returns the absolute path of the helper, verifying that it exists
// and is executable.
func (r *Runner) Resolve(helper string) (string, error) {
	path := filepath.Join(r.ToolsDir, helper)
	st, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrHelperMissing, path)
		}
		return "", fmt.Errorf("failed to stat helper %s: %w", path, err)
	}
	if st.IsDir() || st.Mode().Perm()&0o111 == 0 {
		return "", fmt.Errorf("%w: %s", ErrHelperNotExecutable, path)
	}
	return path, nil
}

// Run executes the helper with no arguments and waits for it to finish.
func (r *Runner) Run(ctx context.Context, helper string) (Result, error) {
	path, err := r.Resolve(helper)
	if err != nil {
		return Result{}, err
	}

	cmd := exec.Command(path)
	cmd.Dir = r.ToolsDir
	cmd.Env = overlayEnv(os.Environ(), r.Env)
	cmd.Stdin = r.stdin()
	cmd.Stdout = r.stdout()
	cmd.Stderr = r.stderr()

	res := Result{HelperPath: path, StartedAt: time.Now()}
	if err := cmd.Start(); err != nil {
		return Result{}, fmt.Errorf("%w: %s", ErrHelperNotExecutable, path)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	var waitErr error
	if r.TimeoutMs > 0 {
		res.TimedOut, waitErr = r.waitWithTimeout(ctx, cmd, done)
	} else {
		select {
		case waitErr = <-done:
		case <-ctx.Done():
			signalProcess(cmd, syscall.SIGTERM)
			waitErr = <-done
		}
	}
	res.Duration = time.Since(res.StartedAt)

	if res.TimedOut {
		res.ExitCode = -1
		return res, nil
	}
	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, fmt.Errorf("helper %s failed: %w", path, waitErr)
	}
	return res, nil
}

// waitWithTimeout waits for the helper, escalating SIGTERM then SIGKILL once
// the deadline passes.
func (r *Runner) waitWithTimeout(ctx context.Context, cmd *exec.Cmd, done <-chan error) (bool, error) {
	timer := time.NewTimer(time.Duration(r.TimeoutMs) * time.Millisecond)
	defer timer.Stop()

	select {
	case err := <-done:
		return false, err
	case <-ctx.Done():
		signalProcess(cmd, syscall.SIGTERM)
		return false, <-done
	case <-timer.C:
	}

	signalProcess(cmd, syscall.SIGTERM)
	graceMs := r.TermGraceMs
	if graceMs <= 0 {
		graceMs = defaultTermGraceMs
	}
	grace := time.NewTimer(time.Duration(graceMs) * time.Millisecond)
	defer grace.Stop()
	select {
	case <-done:
	case <-grace.C:
		signalProcess(cmd, syscall.SIGKILL)
		<-done
	}
	return true, nil
}

func signalProcess(cmd *exec.Cmd, sig syscall.Signal) {
	if cmd == nil || cmd.Process == nil {
		return
	}
	_ = cmd.Process.Signal(sig)
}

func overlayEnv(base []string, overlay map[string]string) []string {
	if len(overlay) == 0 {
		return base
	}
	out := make([]string, 0, len(base)+len(overlay))
	for _, kv := range base {
		i := -1
		for j := 0; j < len(kv); j++ {
			if kv[j] == '=' {
				i = j
				break
			}
		}
		if i <= 0 {
			continue
		}
		if _, shadowed := overlay[kv[:i]]; shadowed {
			continue
		}
		out = append(out, kv)
	}
	for k, v := range overlay {
		out = append(out, k+"="+v)
	}
	return out
}

func (r *Runner) stdin() io.Reader {
	if r.Stdin != nil {
		return r.Stdin
	}
	return os.Stdin
}

func (r *Runner) stdout() io.Writer {
	if r.Stdout != nil {
		return r.Stdout
	}
	return os.Stdout
}

func (r *Runner) stderr() io.Writer {
	if r.Stderr != nil {
		return r.Stderr
	}
	return os.Stderr
}
