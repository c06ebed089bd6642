package lisp

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/iancoleman/strcase"
)

// Callable is a host value that can be invoked from lisp with evaluated
// arguments.  Errors returned by Call propagate unchanged.
type Callable interface {
	Call(args []Value) (Value, error)
}

// HostFunc is a Callable implemented by a Go function.
type HostFunc struct {
	Name string
	Fn   func(args []Value) (Value, error)
}

// Call implements Callable.  A panic in Fn is returned as a RuntimeError.
func (f *HostFunc) Call(args []Value) (v Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			v, err = nil, RuntimeErrorType.Errorf("%s: %v", f.Name, r)
		}
	}()
	return f.Fn(args)
}

func (f *HostFunc) String() string {
	return "<go " + f.Name + ">"
}

// Builtin is a function implemented in Go that needs access to the calling
// Evaluator.  A negative Max allows any number of arguments above Min.
type Builtin struct {
	Name string
	Min  int
	Max  int
	Fn   func(ev *Evaluator, args []Value) (Value, error)
}

func (b *Builtin) String() string {
	return "<builtin " + b.Name + ">"
}

func (b *Builtin) call(ev *Evaluator, args []Value) (Value, error) {
	n := len(args)
	if n < b.Min || (b.Max >= 0 && n > b.Max) {
		p := &Params{Required: make([]string, b.Min)}
		if b.Max < 0 {
			p.HasRest = true
		} else {
			p.Optional = make([]string, b.Max-b.Min)
		}
		err := p.CheckArity(n).(*WrongArityError)
		err.Name = b.Name
		return nil, err
	}
	return b.Fn(ev, args)
}

// Module is a host module: a named set of attributes that lisp code imports
// with (import go/NAME).
type Module struct {
	Name  string
	attrs map[string]Value
}

// NewModule returns an empty Module.
func NewModule(name string) *Module {
	return &Module{Name: name, attrs: make(map[string]Value)}
}

// Set binds attr to v and returns m.
func (m *Module) Set(attr string, v Value) *Module {
	m.attrs[attr] = v
	return m
}

// Func binds a Go function to the kebab-case form of goName and returns m.
// So Func("HasPrefix", strings.HasPrefix) defines the attribute has-prefix.
// See GoFunc for the supported function signatures.
func (m *Module) Func(goName string, fn interface{}) *Module {
	return m.FuncAs(strcase.ToKebab(goName), fn)
}

// FuncAs binds a Go function to attr and returns m.
func (m *Module) FuncAs(attr string, fn interface{}) *Module {
	return m.Set(attr, GoFunc(m.Name+"/"+attr, fn))
}

// Attr returns the value bound to attr.
func (m *Module) Attr(attr string) (Value, bool) {
	v, ok := m.attrs[attr]
	return v, ok
}

// Attrs returns the sorted attribute names of m.
func (m *Module) Attrs() []string {
	names := make([]string, 0, len(m.attrs))
	for k := range m.attrs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (m *Module) String() string {
	return "<module " + m.Name + ">"
}

var (
	errorType = reflect.TypeOf((*error)(nil)).Elem()
	valueType = reflect.TypeOf((*Value)(nil)).Elem()
)

// GoFunc wraps fn in a Callable.  If fn already has the signature
// func([]Value) (Value, error) it is used directly.  Otherwise fn may take
// arguments of kind string, bool, int, float and interface{} (or slices of
// them for a variadic final parameter, or a []string filled from a list) and
// may return zero, one or two values, the last of which may be an error.
// Arguments are converted from lisp values and results are converted back.
func GoFunc(name string, fn interface{}) *HostFunc {
	if fn, ok := fn.(func([]Value) (Value, error)); ok {
		return &HostFunc{Name: name, Fn: fn}
	}
	fv := reflect.ValueOf(fn)
	ft := fv.Type()
	if ft.Kind() != reflect.Func {
		panic(fmt.Sprintf("%s: not a function: %T", name, fn))
	}
	return &HostFunc{
		Name: name,
		Fn: func(args []Value) (Value, error) {
			in, err := goArgs(name, ft, args)
			if err != nil {
				return nil, err
			}
			return goResults(fv.Call(in))
		},
	}
}

func goArgs(name string, ft reflect.Type, args []Value) ([]reflect.Value, error) {
	nin := ft.NumIn()
	min := nin
	if ft.IsVariadic() {
		min--
	}
	if len(args) < min || (!ft.IsVariadic() && len(args) > nin) {
		p := &Params{Required: make([]string, min), HasRest: ft.IsVariadic()}
		err := p.CheckArity(len(args)).(*WrongArityError)
		err.Name = name
		return nil, err
	}
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		var t reflect.Type
		if ft.IsVariadic() && i >= nin-1 {
			t = ft.In(nin - 1).Elem()
		} else {
			t = ft.In(i)
		}
		v, err := convertArg(arg, t)
		if err != nil {
			return nil, TypeErrorType.Errorf("%s: argument %d: %v", name, i+1, err)
		}
		in[i] = v
	}
	return in, nil
}

func convertArg(arg Value, t reflect.Type) (reflect.Value, error) {
	if t == valueType {
		if arg == nil {
			return reflect.Zero(t), nil
		}
		return reflect.ValueOf(arg), nil
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := arg.(int)
		if !ok {
			return reflect.Value{}, fmt.Errorf("expected int, got %s", TypeName(arg))
		}
		return reflect.ValueOf(n).Convert(t), nil
	case reflect.Float32, reflect.Float64:
		switch x := arg.(type) {
		case int:
			return reflect.ValueOf(float64(x)).Convert(t), nil
		case float64:
			return reflect.ValueOf(x).Convert(t), nil
		}
		return reflect.Value{}, fmt.Errorf("expected number, got %s", TypeName(arg))
	case reflect.String:
		s, ok := arg.(string)
		if !ok {
			return reflect.Value{}, fmt.Errorf("expected string, got %s", TypeName(arg))
		}
		return reflect.ValueOf(s).Convert(t), nil
	case reflect.Bool:
		return reflect.ValueOf(Truthy(arg)).Convert(t), nil
	case reflect.Slice:
		lis, ok := arg.(*List)
		if !ok {
			return reflect.Value{}, fmt.Errorf("expected list, got %s", TypeName(arg))
		}
		s := reflect.MakeSlice(t, lis.Len(), lis.Len())
		for i, x := range lis.Items {
			v, err := convertArg(x, t.Elem())
			if err != nil {
				return reflect.Value{}, err
			}
			s.Index(i).Set(v)
		}
		return s, nil
	}
	if arg == nil && t.Kind() == reflect.Interface {
		return reflect.Zero(t), nil
	}
	v := reflect.ValueOf(arg)
	if arg != nil && v.Type().AssignableTo(t) {
		return v, nil
	}
	return reflect.Value{}, fmt.Errorf("cannot use %s as %v", TypeName(arg), t)
}

func goResults(out []reflect.Value) (Value, error) {
	if n := len(out); n > 0 && out[n-1].Type() == errorType {
		if !out[n-1].IsNil() {
			return nil, out[n-1].Interface().(error)
		}
		out = out[:n-1]
	}
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		return FromGo(out[0].Interface()), nil
	}
	items := make([]Value, len(out))
	for i := range out {
		items[i] = FromGo(out[i].Interface())
	}
	return &List{Items: items}, nil
}

// FromGo converts a Go value into the value kinds used by lisp code.  Sized
// integers become int, float32 becomes float64 and slices become lists.
// Other values are returned unchanged.
func FromGo(x interface{}) Value {
	switch x := x.(type) {
	case nil, int, float64, string, bool, *List, *Symbol:
		return x
	case float32:
		return float64(x)
	case []Value:
		return &List{Items: x}
	}
	v := reflect.ValueOf(x)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int(v.Uint())
	case reflect.Slice, reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return x
		}
		items := make([]Value, v.Len())
		for i := range items {
			items[i] = FromGo(v.Index(i).Interface())
		}
		return &List{Items: items}
	}
	return x
}
