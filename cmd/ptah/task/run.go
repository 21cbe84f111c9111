package task

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/flarebyte/ptah-forge/internal/config"
	"github.com/flarebyte/ptah-forge/internal/dispatch"
	"github.com/flarebyte/ptah-forge/internal/gitinfo"
	"github.com/flarebyte/ptah-forge/internal/hook"
	"github.com/flarebyte/ptah-forge/internal/report"
	"github.com/flarebyte/ptah-forge/internal/tasktable"
)

// defaultReportDir receives run reports when the config enables them without
// naming a directory.
const defaultReportDir = "ptah-reports"

func runTask(ctx context.Context, name string) error {
	t, ok := tasktable.Lookup(name)
	if !ok {
		return fmt.Errorf("unknown task: %s", name)
	}
	exeDir, err := dispatch.ExecutableDir()
	if err != nil {
		return err
	}
	cfg, err := config.MaybeParse(exeDir)
	if err != nil {
		return err
	}
	if o, found := cfg.Tasks[name]; found {
		t = tasktable.Apply(t, o)
	}
	toolsDir := resolveToolsDir(cfg, exeDir)

	var gitCtx gitinfo.Context
	if t.Guard != "" || cfg.Report.Enabled {
		gitCtx = gitinfo.BestEffort(".")
	}

	if t.Guard != "" {
		allowed, err := hook.Guard{Code: t.Guard}.Evaluate(hook.Facts{
			Task:     t.Name,
			Helper:   t.Helper,
			ToolsDir: toolsDir,
			Branch:   gitCtx.Branch,
			Commit:   gitCtx.Commit,
			Dirty:    gitCtx.Dirty,
		})
		if err != nil {
			return fmt.Errorf("task %s: %w", name, err)
		}
		if !allowed {
			return taskExitError{code: exitCodeGuardRefused, msg: fmt.Sprintf("task %s: refused by guard", name)}
		}
	}

	r := &dispatch.Runner{
		ToolsDir:    toolsDir,
		Env:         t.Env,
		TimeoutMs:   cfg.TimeoutMs,
		TermGraceMs: cfg.TermGraceMs,
	}
	res, err := r.Run(ctx, t.Helper)
	if err != nil {
		return evaluateRunError(name, err)
	}

	if cfg.Report.Enabled {
		if repErr := writeReport(cfg, t, res, gitCtx); repErr != nil && res.ExitCode == 0 && !res.TimedOut {
			// The helper succeeded; losing its report is worth a diagnostic,
			// though never the helper's exit code.
			fmt.Fprintf(os.Stderr, "task %s: report not written: %v\n", name, repErr)
		}
	}
	return evaluateTaskExit(name, res)
}

// resolveToolsDir prefers the configured directory, interpreted relative to
// the config file, and falls back to "tools" next to the executable.
func resolveToolsDir(cfg config.Config, exeDir string) string {
	if !cfg.HasToolsDir {
		return filepath.Join(exeDir, dispatch.ToolsDirName)
	}
	if filepath.IsAbs(cfg.ToolsDir) {
		return cfg.ToolsDir
	}
	base := filepath.Dir(cfg.Path)
	return filepath.Join(base, cfg.ToolsDir)
}

func writeReport(cfg config.Config, t tasktable.Task, res dispatch.Result, gitCtx gitinfo.Context) error {
	dir := cfg.Report.Dir
	if !cfg.Report.HasDir || dir == "" {
		dir = defaultReportDir
	}
	_, err := report.Write(dir, report.Report{
		Task:       t.Name,
		Helper:     res.HelperPath,
		ExitCode:   res.ExitCode,
		TimedOut:   res.TimedOut,
		StartedAt:  res.StartedAt,
		DurationMs: res.Duration.Milliseconds(),
		Git:        gitCtx,
	})
	return err
}
