package doctor

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/flarebyte/ptah-forge/internal/config"
	"github.com/flarebyte/ptah-forge/internal/dispatch"
	"github.com/flarebyte/ptah-forge/internal/gitinfo"
	"github.com/flarebyte/ptah-forge/internal/tasktable"
)

type helperCheck struct {
	Task   string `json:"task"`
	Helper string `json:"helper"`
	Path   string `json:"path"`
	Status string `json:"status"`
}

type configCheck struct {
	Path  string `json:"path,omitempty"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type checks struct {
	ToolsDir   string          `json:"toolsDir"`
	ToolsDirOK bool            `json:"toolsDirOk"`
	Helpers    []helperCheck   `json:"helpers"`
	Config     configCheck     `json:"config"`
	Git        gitinfo.Context `json:"git"`
	InRepo     bool            `json:"inRepo"`
	OK         bool            `json:"ok"`
}

const (
	statusOK            = "ok"
	statusMissing       = "missing"
	statusNotExecutable = "not-executable"
)

func inspect(toolsOverride string) (checks, error) {
	var rep checks

	exeDir, err := dispatch.ExecutableDir()
	if err != nil {
		return checks{}, err
	}

	cfg, cfgErr := config.MaybeParse(exeDir)
	rep.Config.Path = config.Locate(exeDir)
	if cfgErr != nil {
		rep.Config.Error = cfgErr.Error()
	} else {
		rep.Config.OK = true
	}

	rep.ToolsDir = resolveToolsDir(toolsOverride, cfg, exeDir)
	if st, err := os.Stat(rep.ToolsDir); err == nil && st.IsDir() {
		rep.ToolsDirOK = true
	}

	runner := &dispatch.Runner{ToolsDir: rep.ToolsDir}
	allOK := rep.ToolsDirOK && rep.Config.Error == ""
	for _, t := range tasktable.Builtin() {
		if cfgErr == nil {
			if o, found := cfg.Tasks[t.Name]; found {
				t = tasktable.Apply(t, o)
			}
		}
		hc := helperCheck{Task: t.Name, Helper: t.Helper}
		path, err := runner.Resolve(t.Helper)
		switch {
		case err == nil:
			hc.Path = path
			hc.Status = statusOK
		case errors.Is(err, dispatch.ErrHelperNotExecutable):
			hc.Path = pathFromResolveError(err)
			hc.Status = statusNotExecutable
			allOK = false
		default:
			hc.Path = pathFromResolveError(err)
			hc.Status = statusMissing
			allOK = false
		}
		rep.Helpers = append(rep.Helpers, hc)
	}

	if ctx, err := gitinfo.Collect("."); err == nil {
		rep.Git = ctx
		rep.InRepo = true
	}
	rep.OK = allOK
	return rep, nil
}

func resolveToolsDir(override string, cfg config.Config, exeDir string) string {
	if override != "" {
		return override
	}
	if cfg.HasToolsDir {
		if filepath.IsAbs(cfg.ToolsDir) {
			return cfg.ToolsDir
		}
		return filepath.Join(filepath.Dir(cfg.Path), cfg.ToolsDir)
	}
	return filepath.Join(exeDir, dispatch.ToolsDirName)
}

// pathFromResolveError extracts "<kind>: <path>" diagnostics down to the path.
func pathFromResolveError(err error) string {
	s := err.Error()
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == ':' {
			if i+2 <= len(s) {
				return s[i+2:]
			}
			break
		}
	}
	return ""
}

func printChecks(w io.Writer, rep checks, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("failed to render doctor output: %w", err)
	}
	return nil
}
