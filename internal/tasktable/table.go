// Package tasktable holds the fixed mapping from subcommand name to helper
// script. The table is data, not control flow: six entries, known at build
// time, each pointing at exactly one helper.
package tasktable

// Task describes one dispatchable entry.
type Task struct {
	// Name is the subcommand as typed by the user.
	Name string
	// Helper is the script file name under the tools directory.
	Helper string
	// Description is the one-line usage text.
	Description string
	// Guard is an optional inline Lua predicate; false refuses the run.
	Guard string
	// Env is an optional environment overlay applied to the helper.
	Env map[string]string
}

var builtin = []Task{
	{Name: "clean", Helper: "clean", Description: "Remove generated artifacts"},
	{Name: "prepare", Helper: "prepare", Description: "Install and refresh project dependencies"},
	{Name: "test", Helper: "test", Description: "Run the test suite"},
	{Name: "docs", Helper: "docs", Description: "Generate project documentation"},
	{Name: "build", Helper: "build", Description: "Build distributable artifacts"},
	{Name: "publish", Helper: "publish", Description: "Publish built artifacts"},
}

// Builtin returns a copy of the six built-in tasks in usage order.
func Builtin() []Task {
	out := make([]Task, len(builtin))
	copy(out, builtin)
	return out
}

// Lookup finds a built-in task by name. Matching is case-sensitive.
func Lookup(name string) (Task, bool) {
	for _, t := range builtin {
		if t.Name == name {
			return t, true
		}
	}
	return Task{}, false
}

// Names returns the task names in usage order.
func Names() []string {
	out := make([]string, 0, len(builtin))
	for _, t := range builtin {
		out = append(out, t.Name)
	}
	return out
}

// Override tunes a built-in task. Zero values leave the field as is; the
// table itself never grows or shrinks.
type Override struct {
	Description string
	Helper      string
	Guard       string
	Env         map[string]string
}

// Apply returns the task with the override merged in.
func Apply(t Task, o Override) Task {
	if o.Description != "" {
		t.Description = o.Description
	}
	if o.Helper != "" {
		t.Helper = o.Helper
	}
	if o.Guard != "" {
		t.Guard = o.Guard
	}
	if len(o.Env) > 0 {
		env := make(map[string]string, len(t.Env)+len(o.Env))
		for k, v := range t.Env {
			env[k] = v
		}
		for k, v := range o.Env {
			env[k] = v
		}
		t.Env = env
	}
	return t
}
