package tasktable

import "testing"

func TestBuiltinHasSixEntries(t *testing.T) {
	tasks := Builtin()
	if len(tasks) != 6 {
		t.Fatalf("expected 6 tasks, got %d", len(tasks))
	}
	want := []string{"clean", "prepare", "test", "docs", "build", "publish"}
	for i, name := range want {
		if tasks[i].Name != name {
			t.Fatalf("task %d: expected %s, got %s", i, name, tasks[i].Name)
		}
		if tasks[i].Helper != name {
			t.Fatalf("task %s: helper %s does not match name", name, tasks[i].Helper)
		}
		if tasks[i].Description == "" {
			t.Fatalf("task %s: missing description", name)
		}
	}
}

func TestLookupIsCaseSensitive(t *testing.T) {
	if _, ok := Lookup("build"); !ok {
		t.Fatalf("expected build to resolve")
	}
	for _, name := range []string{"Build", "BUILD", "frobnicate", ""} {
		if _, ok := Lookup(name); ok {
			t.Fatalf("expected %q to be unknown", name)
		}
	}
}

func TestBuiltinReturnsCopy(t *testing.T) {
	tasks := Builtin()
	tasks[0].Helper = "mutated"
	again, _ := Lookup("clean")
	if again.Helper != "clean" {
		t.Fatalf("builtin table mutated through Builtin copy")
	}
}

func TestApplyOverride(t *testing.T) {
	base, _ := Lookup("publish")
	base.Env = map[string]string{"KEEP": "1"}
	got := Apply(base, Override{
		Description: "Ship it",
		Guard:       `branch == "main"`,
		Env:         map[string]string{"TOKEN": "x"},
	})
	if got.Description != "Ship it" {
		t.Fatalf("description not applied: %s", got.Description)
	}
	if got.Helper != "publish" {
		t.Fatalf("helper changed without override: %s", got.Helper)
	}
	if got.Guard != `branch == "main"` {
		t.Fatalf("guard not applied")
	}
	if got.Env["KEEP"] != "1" || got.Env["TOKEN"] != "x" {
		t.Fatalf("env overlay merged incorrectly: %v", got.Env)
	}
	if base.Env["TOKEN"] != "" {
		t.Fatalf("Apply mutated the input env")
	}
}

func TestApplyZeroOverrideIsIdentity(t *testing.T) {
	base, _ := Lookup("docs")
	if got := Apply(base, Override{}); got.Description != base.Description || got.Helper != base.Helper {
		t.Fatalf("zero override changed the task: %+v", got)
	}
}
