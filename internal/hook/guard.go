// Package hook evaluates guard predicates: small inline Lua expressions that
// decide whether a task may run. Scripts execute in a sandbox with only the
// base, string, table and math libraries and a wall-clock timeout.
package hook

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultTimeout bounds a single guard evaluation.
const DefaultTimeout = 250 * time.Millisecond

// ErrTimeout is returned when a guard script exceeds its time budget.
var ErrTimeout = errors.New("guard timeout")

// Facts are the globals exposed to a guard script.
type Facts struct {
	Task     string
	Helper   string
	ToolsDir string
	Branch   string
	Commit   string
	Dirty    bool
}

// Guard is a compiled-on-demand predicate.
type Guard struct {
	Code    string
	Timeout time.Duration
}

// Evaluate runs the predicate against the facts. A script without an explicit
// return is treated as an expression. Any non-true result refuses the run.
func (g Guard) Evaluate(facts Facts) (bool, error) {
	code := strings.TrimSpace(g.Code)
	if code == "" {
		return true, nil
	}
	if !strings.Contains(code, "return") {
		code = "return (" + code + ")"
	}
	timeout := g.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	L := newSandboxState()
	defer L.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	L.SetContext(ctx)

	setFacts(L, facts)

	fn, err := L.LoadString(code)
	if err != nil {
		return false, fmt.Errorf("invalid guard: %v", err)
	}
	L.Push(fn)
	if err := L.PCall(0, 1, nil); err != nil {
		if isDeadline(err) {
			return false, ErrTimeout
		}
		return false, fmt.Errorf("guard failed: %v", err)
	}
	ret := L.Get(-1)
	L.Pop(1)
	return ret == lua.LTrue, nil
}

func newSandboxState() *lua.LState {
	L := lua.NewState(lua.Options{
		SkipOpenLibs:    true,
		RegistrySize:    256,
		RegistryMaxSize: 1024,
	})
	openLib := func(name string, f lua.LGFunction) {
		L.Push(L.NewFunction(f))
		L.Push(lua.LString(name))
		L.Call(1, 0)
	}
	openLib("base", lua.OpenBase)
	openLib("string", lua.OpenString)
	openLib("table", lua.OpenTable)
	openLib("math", lua.OpenMath)
	return L
}

func setFacts(L *lua.LState, f Facts) {
	L.SetGlobal("task", lua.LString(f.Task))
	L.SetGlobal("helper", lua.LString(f.Helper))
	L.SetGlobal("tools_dir", lua.LString(f.ToolsDir))
	L.SetGlobal("branch", lua.LString(f.Branch))
	L.SetGlobal("commit", lua.LString(f.Commit))
	L.SetGlobal("dirty", lua.LBool(f.Dirty))
}

func isDeadline(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "deadline") || strings.Contains(s, "context canceled")
}
