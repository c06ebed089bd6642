package libmath

import (
	"math"

	"github.com/kaa-lang/kaa/lisp"
)

// DefaultModuleName is the module name used by LoadModule.
const DefaultModuleName = "math"

// LoadModule registers the math module with s.
func LoadModule(s *lisp.Session) error {
	s.RegisterModule(Module())
	return nil
}

// Module returns a new math module.
func Module() *lisp.Module {
	return lisp.NewModule(DefaultModuleName).
		Set("inf", math.Inf(1)).
		Set("-inf", math.Inf(-1)).
		Set("pi", math.Pi).
		Set("e", math.E).
		Set("ceil", &lisp.Builtin{Name: "ceil", Min: 1, Max: 1, Fn: builtinCeil}).
		Set("floor", &lisp.Builtin{Name: "floor", Min: 1, Max: 1, Fn: builtinFloor}).
		Set("abs", &lisp.Builtin{Name: "abs", Min: 1, Max: 1, Fn: builtinAbs}).
		FuncAs("ln", math.Log).
		FuncAs("log", logBase).
		Func("Sqrt", math.Sqrt).
		Func("Exp", math.Exp).
		Func("Pow", math.Pow).
		Func("Sin", math.Sin).
		Func("Cos", math.Cos).
		Func("Tan", math.Tan)
}

func builtinCeil(ev *lisp.Evaluator, args []lisp.Value) (lisp.Value, error) {
	switch x := args[0].(type) {
	case int:
		return x, nil
	case float64:
		return math.Ceil(x), nil
	}
	return nil, notNumber("ceil", args[0])
}

func builtinFloor(ev *lisp.Evaluator, args []lisp.Value) (lisp.Value, error) {
	switch x := args[0].(type) {
	case int:
		return x, nil
	case float64:
		return math.Floor(x), nil
	}
	return nil, notNumber("floor", args[0])
}

func builtinAbs(ev *lisp.Evaluator, args []lisp.Value) (lisp.Value, error) {
	switch x := args[0].(type) {
	case int:
		if x < 0 {
			return -x, nil
		}
		return x, nil
	case float64:
		return math.Abs(x), nil
	}
	return nil, notNumber("abs", args[0])
}

// logBase returns the base b logarithm of x.
func logBase(b, x float64) float64 {
	return math.Log(x) / math.Log(b)
}

func notNumber(name string, v lisp.Value) error {
	return lisp.TypeErrorType.Errorf("%s: argument is not a number: %s", name, lisp.TypeName(v))
}
