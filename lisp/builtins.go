package lisp

import (
	"fmt"
	"strings"
)

var langBuiltins = []*Builtin{
	{"+", 0, -1, builtinAdd},
	{"-", 1, -1, builtinSub},
	{"*", 0, -1, builtinMul},
	{"/", 1, -1, builtinDiv},
	{"mod", 2, 2, builtinMod},
	{"=", 1, -1, builtinEqual},
	{"<", 1, -1, comparison("<", func(c int) bool { return c < 0 })},
	{">", 1, -1, comparison(">", func(c int) bool { return c > 0 })},
	{"<=", 1, -1, comparison("<=", func(c int) bool { return c <= 0 })},
	{">=", 1, -1, comparison(">=", func(c int) bool { return c >= 0 })},
	{"not", 1, 1, builtinNot},
	{"list", 0, -1, builtinList},
	{"concat", 0, -1, builtinConcat},
	{"first", 1, 1, builtinFirst},
	{"rest", 1, 1, builtinRest},
	{"cons", 2, 2, builtinCons},
	{"nth", 2, 2, builtinNth},
	{"count", 1, 1, builtinCount},
	{"empty?", 1, 1, builtinEmptyP},
	{"str", 0, -1, builtinStr},
	{"print", 0, -1, builtinPrint},
	{"println", 0, -1, builtinPrintln},
	{"symbol", 1, 2, builtinSymbol},
	{"symbol?", 1, 1, typePredicate(func(v Value) bool { _, ok := v.(*Symbol); return ok })},
	{"list?", 1, 1, typePredicate(func(v Value) bool { _, ok := v.(*List); return ok })},
	{"string?", 1, 1, typePredicate(func(v Value) bool { _, ok := v.(string); return ok })},
	{"number?", 1, 1, typePredicate(func(v Value) bool { return checkNumber("", 0, v) == nil })},
	{"nil?", 1, 1, typePredicate(func(v Value) bool { return v == nil })},
	{"callable?", 1, 1, typePredicate(isCallable)},
	{"apply", 2, -1, builtinApply},
	{"map", 2, 2, builtinMap},
	{"filter", 2, 2, builtinFilter},
	{"reduce", 2, 3, builtinReduce},
	{"gensym", 0, 1, builtinGensym},
	{"eval", 1, 1, builtinEval},
	{"macroexpand-1", 1, 1, builtinMacroexpand1},
	{"macroexpand", 1, 1, builtinMacroexpand},
	{"exception-type", 1, 2, builtinExceptionType},
	{"type-of", 1, 1, builtinTypeOf},
	{"debug-stack", 0, 0, builtinDebugStack},
}

// DefaultBuiltins returns the builtin functions bound in the core namespace
// of every Session.
func DefaultBuiltins() []*Builtin {
	fns := make([]*Builtin, len(langBuiltins))
	copy(fns, langBuiltins)
	return fns
}

func argTypeError(name string, i int, want string, got Value) error {
	return TypeErrorType.Errorf("%s: argument %d: expected %s, got %s", name, i+1, want, TypeName(got))
}

// listArg returns args[i] as a list.  A nil argument is an empty list.
func listArg(name string, args []Value, i int) (*List, error) {
	switch v := args[i].(type) {
	case nil:
		return &List{}, nil
	case *List:
		return v, nil
	}
	return nil, argTypeError(name, i, "list", args[i])
}

func isCallable(v Value) bool {
	switch v.(type) {
	case *Closure, *Builtin, *ExceptionType, Callable:
		return true
	}
	return false
}

func typePredicate(fn func(v Value) bool) func(ev *Evaluator, args []Value) (Value, error) {
	return func(ev *Evaluator, args []Value) (Value, error) {
		return fn(args[0]), nil
	}
}

func builtinNot(ev *Evaluator, args []Value) (Value, error) {
	return !Truthy(args[0]), nil
}

func builtinList(ev *Evaluator, args []Value) (Value, error) {
	items := make([]Value, len(args))
	copy(items, args)
	return &List{Items: items}, nil
}

func builtinConcat(ev *Evaluator, args []Value) (Value, error) {
	var items []Value
	for i := range args {
		lis, err := listArg("concat", args, i)
		if err != nil {
			return nil, err
		}
		items = append(items, lis.Items...)
	}
	return &List{Items: items}, nil
}

func builtinFirst(ev *Evaluator, args []Value) (Value, error) {
	lis, err := listArg("first", args, 0)
	if err != nil {
		return nil, err
	}
	return lis.Head(), nil
}

func builtinRest(ev *Evaluator, args []Value) (Value, error) {
	if args[0] == nil {
		return nil, nil
	}
	lis, ok := args[0].(*List)
	if !ok {
		return nil, ValueErrorType.Errorf("can't get rest of %s", TypeName(args[0]))
	}
	return lis.Tail(), nil
}

func builtinCons(ev *Evaluator, args []Value) (Value, error) {
	lis, err := listArg("cons", args, 1)
	if err != nil {
		return nil, err
	}
	items := make([]Value, 0, lis.Len()+1)
	items = append(items, args[0])
	items = append(items, lis.Items...)
	return &List{Items: items}, nil
}

func builtinNth(ev *Evaluator, args []Value) (Value, error) {
	lis, err := listArg("nth", args, 0)
	if err != nil {
		return nil, err
	}
	i, ok := args[1].(int)
	if !ok {
		return nil, argTypeError("nth", 1, "int", args[1])
	}
	if i < 0 || i >= lis.Len() {
		return nil, KeyErrorType.Errorf("index out of range: %d", i)
	}
	return lis.Items[i], nil
}

func builtinCount(ev *Evaluator, args []Value) (Value, error) {
	switch v := args[0].(type) {
	case nil:
		return 0, nil
	case *List:
		return v.Len(), nil
	case string:
		return len([]rune(v)), nil
	}
	return nil, argTypeError("count", 0, "list or string", args[0])
}

func builtinEmptyP(ev *Evaluator, args []Value) (Value, error) {
	switch v := args[0].(type) {
	case nil:
		return true, nil
	case *List:
		return v.Len() == 0, nil
	case string:
		return v == "", nil
	}
	return false, nil
}

func builtinStr(ev *Evaluator, args []Value) (Value, error) {
	var buf strings.Builder
	for _, arg := range args {
		buf.WriteString(Display(arg))
	}
	return buf.String(), nil
}

func displayJoin(args []Value) string {
	strs := make([]string, len(args))
	for i, arg := range args {
		strs[i] = Display(arg)
	}
	return strings.Join(strs, " ")
}

func builtinPrint(ev *Evaluator, args []Value) (Value, error) {
	_, err := fmt.Fprint(ev.Session().Stdout, displayJoin(args))
	return nil, err
}

func builtinPrintln(ev *Evaluator, args []Value) (Value, error) {
	_, err := fmt.Fprintln(ev.Session().Stdout, displayJoin(args))
	return nil, err
}

// (symbol NAME [NAMESPACE])
func builtinSymbol(ev *Evaluator, args []Value) (Value, error) {
	sym := NewSymbol(Display(args[0]), "")
	if len(args) > 1 && args[1] != nil {
		sym.Namespace = Display(args[1])
	}
	return sym, nil
}

// (apply FN ARG... LIST)
func builtinApply(ev *Evaluator, args []Value) (Value, error) {
	last, err := listArg("apply", args, len(args)-1)
	if err != nil {
		return nil, err
	}
	callArgs := make([]Value, 0, len(args)-2+last.Len())
	callArgs = append(callArgs, args[1:len(args)-1]...)
	callArgs = append(callArgs, last.Items...)
	return ev.Apply(args[0], callArgs)
}

func builtinMap(ev *Evaluator, args []Value) (Value, error) {
	lis, err := listArg("map", args, 1)
	if err != nil {
		return nil, err
	}
	items := make([]Value, lis.Len())
	for i, x := range lis.Items {
		items[i], err = ev.Apply(args[0], []Value{x})
		if err != nil {
			return nil, err
		}
	}
	return &List{Items: items}, nil
}

func builtinFilter(ev *Evaluator, args []Value) (Value, error) {
	lis, err := listArg("filter", args, 1)
	if err != nil {
		return nil, err
	}
	var items []Value
	for _, x := range lis.Items {
		ok, err := ev.Apply(args[0], []Value{x})
		if err != nil {
			return nil, err
		}
		if Truthy(ok) {
			items = append(items, x)
		}
	}
	return &List{Items: items}, nil
}

// (reduce FN [INIT] LIST)
func builtinReduce(ev *Evaluator, args []Value) (Value, error) {
	lis, err := listArg("reduce", args, len(args)-1)
	if err != nil {
		return nil, err
	}
	items := lis.Items
	var acc Value
	if len(args) == 3 {
		acc = args[1]
	} else {
		if len(items) == 0 {
			return nil, ValueErrorType.New("reduce of empty list with no initial value")
		}
		acc, items = items[0], items[1:]
	}
	for _, x := range items {
		acc, err = ev.Apply(args[0], []Value{acc, x})
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func builtinGensym(ev *Evaluator, args []Value) (Value, error) {
	var prefix string
	if len(args) > 0 {
		prefix = Display(args[0])
	}
	return ev.Session().Gensym(prefix), nil
}

// builtinEval evaluates its argument at the top level of the calling
// namespace.
func builtinEval(ev *Evaluator, args []Value) (Value, error) {
	return Evaluate(args[0], ev.Namespace())
}

func builtinMacroexpand1(ev *Evaluator, args []Value) (Value, error) {
	v, _, err := ev.Macroexpand1(args[0])
	return v, err
}

func builtinMacroexpand(ev *Evaluator, args []Value) (Value, error) {
	return ev.Macroexpand(args[0])
}

// (exception-type NAME [PARENT])
func builtinExceptionType(ev *Evaluator, args []Value) (Value, error) {
	var name string
	switch v := args[0].(type) {
	case *Symbol:
		name = v.Name
	case string:
		name = v
	default:
		return nil, argTypeError("exception-type", 0, "symbol or string", args[0])
	}
	var parent *ExceptionType
	if len(args) > 1 {
		p, ok := args[1].(*ExceptionType)
		if !ok {
			return nil, argTypeError("exception-type", 1, "exception-type", args[1])
		}
		parent = p
	}
	return NewExceptionType(name, parent), nil
}

func builtinTypeOf(ev *Evaluator, args []Value) (Value, error) {
	return TypeName(args[0]), nil
}

func builtinDebugStack(ev *Evaluator, args []Value) (Value, error) {
	_, err := ev.Session().Stack.DebugPrint(ev.Session().Stderr)
	return nil, err
}
