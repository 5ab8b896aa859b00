package runner

import (
	"context"
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// Interpreter executes a script and returns what it printed.
type Interpreter interface {
	Run(ctx context.Context, src string) (string, error)
}

// LuaInterpreter runs each script in a fresh Lua state with the base, table,
// string and math libraries. print writes to the returned output.
type LuaInterpreter struct {
	// Globals are set before the script runs.
	Globals map[string]string
}

func (li LuaInterpreter) Run(ctx context.Context, src string) (out string, err error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	var sb strings.Builder
	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		n := L.GetTop()
		for i := 1; i <= n; i++ {
			if i > 1 {
				sb.WriteByte('\t')
			}
			sb.WriteString(L.ToStringMeta(L.Get(i)).String())
		}
		sb.WriteByte('\n')
		return 0
	}))
	for k, v := range li.Globals {
		L.SetGlobal(k, lua.LString(v))
	}

	L.SetContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
		out = sb.String()
	}()
	if err := L.DoString(src); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("script cancelled: %w", ctxErr)
		}
		return "", fmt.Errorf("script: %w", err)
	}
	return "", nil
}
