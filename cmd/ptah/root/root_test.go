package root

import (
	"bytes"
	"strings"
	"testing"
)

func executeForHelp(t *testing.T, args ...string) string {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("expected usage path to succeed, got %v", err)
	}
	return out.String()
}

func assertUsage(t *testing.T, out string) {
	t.Helper()
	if !strings.Contains(out, "ptah") {
		t.Fatalf("usage missing program name:\n%s", out)
	}
	for _, name := range []string{"clean", "prepare", "test", "docs", "build", "publish"} {
		if !strings.Contains(out, name) {
			t.Fatalf("usage missing subcommand %s:\n%s", name, out)
		}
	}
}

func TestNoArgumentsPrintsUsage(t *testing.T) {
	assertUsage(t, executeForHelp(t))
}

func TestUnknownCommandPrintsUsage(t *testing.T) {
	assertUsage(t, executeForHelp(t, "frobnicate"))
}

func TestUnknownCommandWithExtraArgsPrintsUsage(t *testing.T) {
	assertUsage(t, executeForHelp(t, "frobnicate", "--force", "now"))
}

func TestTaskSubcommandsRegistered(t *testing.T) {
	cmd := NewRootCmd()
	want := map[string]bool{
		"clean": false, "prepare": false, "test": false,
		"docs": false, "build": false, "publish": false,
		"version": false, "doctor": false,
	}
	for _, c := range cmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Fatalf("subcommand %s not registered", name)
		}
	}
}

func TestTaskSubcommandDescriptionsInUsage(t *testing.T) {
	out := executeForHelp(t)
	if !strings.Contains(out, "Run the test suite") {
		t.Fatalf("usage missing task description:\n%s", out)
	}
}
