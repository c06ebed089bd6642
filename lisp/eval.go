package lisp

import (
	"fmt"

	"github.com/kaa-lang/kaa/parser/token"
)

// Closure is the value of an evaluated lambda: the Lambda node together with
// the namespace and lexical environment in effect when it was evaluated.
// A Closure is immutable once constructed.
type Closure struct {
	Lambda    *Lambda
	Name      string
	Namespace *Namespace
	Env       *Environment
}

func (c *Closure) String() string {
	if c.Name == "" {
		return fmt.Sprintf("<lambda %v>", c.Lambda.Params)
	}
	return fmt.Sprintf("<lambda %s %v>", c.Name, c.Lambda.Params)
}

// Evaluator evaluates forms in the context of a namespace and a lexical
// environment.
type Evaluator struct {
	ns  *Namespace
	env *Environment
}

// NewEvaluator returns an Evaluator for ns.  If env is nil the evaluator uses
// a new, empty root environment.
func NewEvaluator(ns *Namespace, env *Environment) *Evaluator {
	if env == nil {
		env = NewEnvironment(nil)
	}
	return &Evaluator{ns: ns, env: env}
}

// Evaluate evaluates form in a new top-level environment of ns.
func Evaluate(form Value, ns *Namespace) (Value, error) {
	return NewEvaluator(ns, nil).Evaluate(form)
}

// EvaluateAll evaluates forms in order in a shared top-level environment of
// ns and returns the value of the last form.
func EvaluateAll(forms []Value, ns *Namespace) (Value, error) {
	return NewEvaluator(ns, nil).EvaluateAll(forms)
}

// Namespace returns the namespace of ev.
func (ev *Evaluator) Namespace() *Namespace {
	return ev.ns
}

// Env returns the lexical environment of ev.
func (ev *Evaluator) Env() *Environment {
	return ev.env
}

// Session returns the session that owns ev's namespace.
func (ev *Evaluator) Session() *Session {
	return ev.ns.session
}

func (ev *Evaluator) withBindings(bindings map[string]Value) *Evaluator {
	return &Evaluator{ns: ev.ns, env: ev.env.Push(bindings)}
}

// EvaluateAll evaluates forms in order and returns the value of the last.  An
// empty sequence evaluates to nil.
func (ev *Evaluator) EvaluateAll(forms []Value) (Value, error) {
	var result Value
	for _, form := range forms {
		var err error
		result, err = ev.Evaluate(form)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Evaluate evaluates form.  Special forms are parsed as they are reached.
func (ev *Evaluator) Evaluate(form Value) (Value, error) {
	form, err := ParseForm(form)
	if err != nil {
		return nil, err
	}
	switch v := form.(type) {
	case *List:
		if v.Len() == 0 {
			return v, nil
		}
		return ev.invoke(v)
	case *Symbol:
		return ev.evalSymbol(v)
	case Node:
		return ev.evalNode(v)
	default:
		return v, nil
	}
}

func (ev *Evaluator) evalNode(n Node) (Value, error) {
	switch n := n.(type) {
	case *Def:
		return ev.evalDef(n)
	case *If:
		return ev.evalIf(n)
	case *Lambda:
		return &Closure{Lambda: n, Namespace: ev.ns, Env: ev.env}, nil
	case *Macro:
		return n, nil
	case *Import:
		return ev.evalImport(n)
	case *Quote:
		return n.Value, nil
	case *Raise:
		return ev.evalRaise(n)
	case *Try:
		return ev.evalTry(n)
	default:
		panic(fmt.Sprintf("unknown node type %T", n))
	}
}

// evalSymbol looks unqualified symbols up in the lexical environment before
// consulting the namespace.
func (ev *Evaluator) evalSymbol(sym *Symbol) (Value, error) {
	if sym.Namespace == "" {
		v, ok := ev.env.Get(sym.Name)
		if ok {
			return v, nil
		}
	}
	v, ok := ev.ns.Lookup(ev.ns.Resolve(sym))
	if ok {
		return v, nil
	}
	return nil, &UnboundSymbolError{Symbol: sym}
}

func (ev *Evaluator) evalDef(n *Def) (Value, error) {
	v, err := ev.Evaluate(n.Value)
	if err != nil {
		return nil, err
	}
	if c, ok := v.(*Closure); ok && c.Name == "" {
		named := *c
		named.Name = n.Symbol.Name
		v = &named
	}
	err = ev.ns.Define(n.Symbol, v)
	if err != nil {
		return nil, locate(err, n.Source)
	}
	return v, nil
}

func (ev *Evaluator) evalIf(n *If) (Value, error) {
	cond, err := ev.Evaluate(n.Cond)
	if err != nil {
		return nil, err
	}
	if Truthy(cond) {
		return ev.Evaluate(n.Then)
	}
	return ev.Evaluate(n.Else)
}

func (ev *Evaluator) evalImport(n *Import) (Value, error) {
	var names []string
	if n.ImportAll {
		names = []string{importAll}
	}
	for _, sym := range n.Names {
		names = append(names, sym.Name)
	}
	var alias string
	if n.Alias != nil {
		alias = n.Alias.Name
	}
	sess := ev.Session()
	var err error
	switch n.Name.Namespace {
	case HostPrefix:
		var mod *Module
		mod, err = sess.Module(n.Name.Name)
		if err == nil {
			err = ev.ns.ImportModule(mod, names, alias)
		}
	case "":
		var other *Namespace
		other, err = sess.LoadNamespace(n.Name.Name)
		if err == nil {
			err = ev.ns.ImportNS(other, names, alias)
		}
	default:
		err = &ImportError{Name: n.Name.String(), Msg: "unknown import prefix " + n.Name.Namespace}
	}
	if err != nil {
		return nil, locate(err, n.Source)
	}
	return nil, nil
}

func (ev *Evaluator) evalRaise(n *Raise) (Value, error) {
	v, err := ev.Evaluate(n.Value)
	if err != nil {
		return nil, err
	}
	var exc error
	switch v := v.(type) {
	case string:
		exc = RuntimeErrorType.New(v)
	case *ExceptionType:
		exc = v.New("")
	case error:
		exc = v
	default:
		exc = TypeErrorType.Errorf("exceptions must be exception values or strings, not %s", TypeName(v))
	}
	if e, ok := exc.(*Exception); ok {
		raised := *e
		raised.Stack = ev.Session().Stack.Copy()
		exc = &raised
	}
	return nil, locate(exc, n.Source)
}

func (ev *Evaluator) evalTry(n *Try) (Value, error) {
	v, err := ev.Evaluate(n.Expr)
	if err == nil {
		return v, nil
	}
	typ := ExceptionTypeOf(err)
	for _, h := range n.Handlers {
		hv, herr := ev.Evaluate(h.Type)
		if herr != nil {
			return nil, herr
		}
		htyp, ok := hv.(*ExceptionType)
		if !ok {
			exc := TypeErrorType.Errorf("except clause requires an exception type, not %s", TypeName(hv))
			return nil, locate(exc, locOr(h.Type, n.Source))
		}
		if typ.IsA(htyp) {
			return ev.Evaluate(h.Body)
		}
	}
	return nil, err
}

func (ev *Evaluator) invoke(form *List) (Value, error) {
	fn, err := ev.Evaluate(form.Items[0])
	if err != nil {
		return nil, err
	}
	args := form.Items[1:]
	if mac, ok := fn.(*Macro); ok {
		expansion, err := ev.expand(mac, args)
		if err != nil {
			return nil, locate(err, SourceOf(form))
		}
		return ev.Evaluate(expansion)
	}
	evaled := make([]Value, len(args))
	for i, arg := range args {
		evaled[i], err = ev.Evaluate(arg)
		if err != nil {
			return nil, err
		}
	}
	v, err := ev.call(fn, evaled, SourceOf(form))
	if err != nil {
		return nil, locate(err, SourceOf(form))
	}
	return v, nil
}

// Apply calls fn with args, which have already been evaluated.  Macros
// cannot be applied.
func (ev *Evaluator) Apply(fn Value, args []Value) (Value, error) {
	return ev.call(fn, args, nil)
}

func (ev *Evaluator) call(fn Value, args []Value, src *token.Location) (Value, error) {
	switch fn := fn.(type) {
	case *Closure:
		return ev.apply(fn, args, src)
	case *Builtin:
		return fn.call(ev, args)
	case *ExceptionType:
		switch len(args) {
		case 0:
			return fn.New(""), nil
		case 1:
			return fn.New(Display(args[0])), nil
		}
		return nil, &WrongArityError{Name: fn.Name, Expected: "between 0 and 1", Got: len(args)}
	case Callable:
		return fn.Call(args)
	case *Macro:
		return nil, TypeErrorType.Errorf("macro %s cannot be applied", fn.Name)
	default:
		return nil, TypeErrorType.Errorf("%s is not callable: %s", TypeName(fn), Format(fn))
	}
}

func (ev *Evaluator) apply(c *Closure, args []Value, src *token.Location) (Value, error) {
	bindings, err := c.Lambda.Params.Bind(args)
	if err != nil {
		if werr, ok := err.(*WrongArityError); ok {
			werr.Name = c.Name
		}
		return nil, err
	}
	stack := c.Namespace.session.Stack
	err = stack.Push(CallFrame{Name: c.Name, Namespace: c.Namespace.Name, Source: src})
	if err != nil {
		return nil, err
	}
	defer stack.Pop()
	body := &Evaluator{ns: c.Namespace, env: c.Env.Push(bindings)}
	return body.EvaluateAll(c.Lambda.Body)
}

func (ev *Evaluator) expand(mac *Macro, args []Value) (Value, error) {
	bindings, err := mac.Params.Bind(args)
	if err != nil {
		if werr, ok := err.(*WrongArityError); ok {
			werr.Name = mac.Name
		}
		return nil, err
	}
	return ev.withBindings(bindings).EvaluateAll(mac.Body)
}

// Macroexpand1 expands form once if it is a call to a macro.  The second
// result reports whether an expansion took place.
func (ev *Evaluator) Macroexpand1(form Value) (Value, bool, error) {
	lis, ok := form.(*List)
	if !ok || lis.Len() == 0 {
		return form, false, nil
	}
	if name, ok := lis.HeadSymbol(); ok && IsSpecialForm(name) {
		return form, false, nil
	}
	sym, ok := lis.Head().(*Symbol)
	if !ok {
		return form, false, nil
	}
	head, err := ev.evalSymbol(sym)
	if err != nil {
		return form, false, nil
	}
	mac, ok := head.(*Macro)
	if !ok {
		return form, false, nil
	}
	expansion, err := ev.expand(mac, lis.Items[1:])
	if err != nil {
		return nil, false, locate(err, SourceOf(lis))
	}
	return expansion, true, nil
}

// Macroexpand repeatedly expands form until it is no longer a macro call.
func (ev *Evaluator) Macroexpand(form Value) (Value, error) {
	for {
		expansion, ok, err := ev.Macroexpand1(form)
		if err != nil {
			return nil, err
		}
		if !ok {
			return expansion, nil
		}
		form = expansion
	}
}
