package adapter

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	m "winnow.dev/pkg/winnow/internal/model"
)

// ImplRunner abstracts running one implementation of the function under
// test on one call expression. Implementations return the canonical output
// line, or an error when the invocation exits non-zero, produces no
// parseable output, or hits the caller's deadline.
type ImplRunner interface {
	// RunFunction evaluates call (a Python call expression such as
	// "f(1, 'a')") in the namespace of the implementation file at impl and
	// returns its canonicalized result.
	RunFunction(ctx context.Context, impl m.Path, call string) (string, error)
}

// pyDriver loads the implementation file, evaluates the call expression in
// its namespace and prints the result as type-tagged JSON. The tagging
// keeps int/bool/float apart and sorts set and dict members so equal
// Python values always print the same line.
const pyDriver = `import importlib.util, json, sys

spec = importlib.util.spec_from_file_location("impl", sys.argv[1])
mod = importlib.util.module_from_spec(spec)
spec.loader.exec_module(mod)


def canon(v):
    if isinstance(v, bool):
        return ["bool", v]
    if isinstance(v, int):
        return ["int", v]
    if isinstance(v, float):
        return ["float", v]
    if isinstance(v, str):
        return ["str", v]
    if isinstance(v, list):
        return ["list", [canon(x) for x in v]]
    if isinstance(v, tuple):
        return ["tuple", [canon(x) for x in v]]
    if isinstance(v, (set, frozenset)):
        return ["set", sorted((canon(x) for x in v), key=json.dumps)]
    if isinstance(v, dict):
        return ["dict", sorted(([canon(k), canon(x)] for k, x in v.items()), key=json.dumps)]
    if v is None:
        return ["none"]
    return ["repr", repr(v)]


result = eval(sys.argv[2], vars(mod))
print(json.dumps(canon(result)))
`

// PyRunnerAdapter provides a concrete ImplRunner using os/exec and a
// Python interpreter.
type PyRunnerAdapter struct {
	interpreter string
}

// NewPyRunnerAdapter constructs a PyRunnerAdapter. An empty interpreter
// falls back to python3.
func NewPyRunnerAdapter(interpreter string) *PyRunnerAdapter {
	if strings.TrimSpace(interpreter) == "" {
		interpreter = "python3"
	}

	return &PyRunnerAdapter{interpreter: interpreter}
}

// RunFunction implements ImplRunner. Timeouts are imposed by the caller's
// context; a cancelled context kills the interpreter process.
func (a *PyRunnerAdapter) RunFunction(ctx context.Context, impl m.Path, call string) (string, error) {
	cmd := exec.CommandContext(ctx, a.interpreter, "-c", pyDriver, string(impl), call)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("run %s: %w", impl, ctxErr)
		}

		return "", fmt.Errorf("run %s: %w: %s", impl, err, strings.TrimSpace(stderr.String()))
	}

	output := strings.TrimSpace(stdout.String())
	if output == "" {
		return "", fmt.Errorf("run %s: no output", impl)
	}

	return output, nil
}
