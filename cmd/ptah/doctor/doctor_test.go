package doctor

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/flarebyte/ptah-forge/internal/config"
	"github.com/flarebyte/ptah-forge/internal/testutil"
)

func allHelpers() map[string]string {
	out := map[string]string{}
	for _, name := range []string{"clean", "prepare", "test", "docs", "build", "publish"} {
		out[name] = "exit 0"
	}
	return out
}

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvVar, "")
	t.Chdir(t.TempDir())
}

func TestInspectHealthyToolsDir(t *testing.T) {
	isolate(t)
	tools := testutil.ToolsDir(t, allHelpers())
	rep, err := inspect(tools)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rep.OK {
		t.Fatalf("expected healthy report: %+v", rep)
	}
	if len(rep.Helpers) != 6 {
		t.Fatalf("expected 6 helper checks, got %d", len(rep.Helpers))
	}
	for _, h := range rep.Helpers {
		if h.Status != statusOK {
			t.Fatalf("helper %s: %s", h.Task, h.Status)
		}
		if h.Path == "" {
			t.Fatalf("helper %s: missing path", h.Task)
		}
	}
}

func TestInspectReportsMissingHelper(t *testing.T) {
	isolate(t)
	scripts := allHelpers()
	delete(scripts, "publish")
	tools := testutil.ToolsDir(t, scripts)
	rep, err := inspect(tools)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.OK {
		t.Fatalf("expected failing report")
	}
	for _, h := range rep.Helpers {
		want := statusOK
		if h.Task == "publish" {
			want = statusMissing
		}
		if h.Status != want {
			t.Fatalf("helper %s: got %s, want %s", h.Task, h.Status, want)
		}
	}
}

func TestInspectReportsNotExecutableHelper(t *testing.T) {
	isolate(t)
	scripts := allHelpers()
	delete(scripts, "docs")
	tools := testutil.ToolsDir(t, scripts)
	testutil.NonExecutable(t, tools, "docs")
	rep, err := inspect(tools)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, h := range rep.Helpers {
		if h.Task == "docs" && h.Status != statusNotExecutable {
			t.Fatalf("docs helper: got %s", h.Status)
		}
	}
}

func TestPrintChecksOneLineJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := printChecks(&buf, checks{ToolsDir: "/x/tools"}, false); err != nil {
		t.Fatalf("print: %v", err)
	}
	s := buf.String()
	if strings.Count(s, "\n") != 1 {
		t.Fatalf("expected one line, got %q", s)
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(s), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded["toolsDir"] != "/x/tools" {
		t.Fatalf("toolsDir: %v", decoded["toolsDir"])
	}
}

func TestStrictExitError(t *testing.T) {
	var e strictExitError
	if e.ExitCode() != 1 {
		t.Fatalf("exit code: %d", e.ExitCode())
	}
}
