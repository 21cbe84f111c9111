// Package config loads the optional ptah.cue run configuration. The config
// can tune the built-in task table (descriptions, helper names, guards, env
// overlays) and set runner options, but it can never add or remove tasks.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/flarebyte/ptah-forge/internal/tasktable"
)

// Report holds run-report settings.
type Report struct {
	Enabled bool
	Dir     string
	HasDir  bool
}

// Config is the parsed run configuration.
type Config struct {
	ConfigVersion string
	ToolsDir      string
	HasToolsDir   bool
	TimeoutMs     int
	HasTimeout    bool
	TermGraceMs   int
	HasTermGrace  bool
	Report        Report
	Tasks         map[string]tasktable.Override
	// Path is the file the config was loaded from.
	Path string
}

// Parse loads and validates a ptah.cue file.
func Parse(path string) (Config, error) {
	v, err := compileCUE(path)
	if err != nil {
		return Config{}, err
	}
	if err := requireStringField(v, "configVersion"); err != nil {
		return Config{}, err
	}
	var c Config
	c.Path = path
	cv := v.LookupPath(cue.ParsePath("configVersion"))
	if err := cv.Decode(&c.ConfigVersion); err != nil {
		return Config{}, fmt.Errorf("invalid value for configVersion: %v", err)
	}
	if !IsSupportedConfigVersion(c.ConfigVersion) {
		return Config{}, fmt.Errorf("unsupported configVersion: %s (supported: %s)", c.ConfigVersion, SupportedConfigVersionsCSV())
	}

	tdv := v.LookupPath(cue.ParsePath("toolsDir"))
	if tdv.Exists() {
		if tdv.Kind() != cue.StringKind {
			return Config{}, errors.New("invalid type for field: toolsDir (expected string)")
		}
		if err := tdv.Decode(&c.ToolsDir); err == nil {
			c.HasToolsDir = true
		}
	}
	tv := v.LookupPath(cue.ParsePath("timeoutMs"))
	if tv.Exists() && tv.Kind() == cue.IntKind {
		if err := tv.Decode(&c.TimeoutMs); err == nil {
			c.HasTimeout = true
		}
	}
	gv := v.LookupPath(cue.ParsePath("termGraceMs"))
	if gv.Exists() && gv.Kind() == cue.IntKind {
		if err := gv.Decode(&c.TermGraceMs); err == nil {
			c.HasTermGrace = true
		}
	}
	if err := parseReportSection(v, &c); err != nil {
		return Config{}, err
	}
	if err := parseTasksSection(v, &c); err != nil {
		return Config{}, err
	}
	return c, nil
}

func parseReportSection(v cue.Value, c *Config) error {
	rv := v.LookupPath(cue.ParsePath("report"))
	if !rv.Exists() {
		return nil
	}
	ev := rv.LookupPath(cue.ParsePath("enabled"))
	if ev.Exists() && ev.Kind() == cue.BoolKind {
		_ = ev.Decode(&c.Report.Enabled)
	}
	dv := rv.LookupPath(cue.ParsePath("dir"))
	if dv.Exists() {
		if dv.Kind() != cue.StringKind {
			return errors.New("invalid type for field: report.dir (expected string)")
		}
		if err := dv.Decode(&c.Report.Dir); err == nil {
			c.Report.HasDir = true
		}
	}
	return nil
}

func parseTasksSection(v cue.Value, c *Config) error {
	tv := v.LookupPath(cue.ParsePath("tasks"))
	if !tv.Exists() {
		return nil
	}
	it, err := tv.Fields()
	if err != nil {
		return fmt.Errorf("invalid tasks section: %v", err)
	}
	for it.Next() {
		name := it.Selector().Unquoted()
		if _, ok := tasktable.Lookup(name); !ok {
			return fmt.Errorf("unknown task in config: %s", name)
		}
		o, err := parseTaskOverride(it.Value())
		if err != nil {
			return fmt.Errorf("task %s: %v", name, err)
		}
		if c.Tasks == nil {
			c.Tasks = map[string]tasktable.Override{}
		}
		c.Tasks[name] = o
	}
	return nil
}

func parseTaskOverride(v cue.Value) (tasktable.Override, error) {
	var o tasktable.Override
	for _, f := range []struct {
		name string
		dst  *string
	}{
		{"description", &o.Description},
		{"helper", &o.Helper},
		{"guard", &o.Guard},
	} {
		fv := v.LookupPath(cue.ParsePath(f.name))
		if !fv.Exists() {
			continue
		}
		if fv.Kind() != cue.StringKind {
			return tasktable.Override{}, fmt.Errorf("invalid type for field: %s (expected string)", f.name)
		}
		if err := fv.Decode(f.dst); err != nil {
			return tasktable.Override{}, fmt.Errorf("invalid value for %s: %v", f.name, err)
		}
	}
	ev := v.LookupPath(cue.ParsePath("env"))
	if ev.Exists() {
		env := map[string]string{}
		if err := ev.Decode(&env); err != nil {
			return tasktable.Override{}, fmt.Errorf("invalid env overlay: %v", err)
		}
		o.Env = env
	}
	return o, nil
}

// compileCUE loads and compiles a CUE file at the given path.
func compileCUE(path string) (cue.Value, error) {
	if filepath.Ext(path) != ".cue" {
		return cue.Value{}, errors.New("unsupported config format: expected .cue")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cue.Value{}, fmt.Errorf("failed to read config: %w", err)
	}
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data)
	if err := v.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("invalid config: %v", err)
	}
	return v, nil
}

func requireStringField(v cue.Value, name string) error {
	f := v.LookupPath(cue.ParsePath(name))
	if !f.Exists() {
		return fmt.Errorf("missing required field: %s", name)
	}
	if f.Kind() != cue.StringKind {
		return fmt.Errorf("invalid type for field: %s (expected string)", name)
	}
	return nil
}
