package lisp

import (
	"bytes"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/kaa-lang/kaa/parser/token"
)

// Value is any value manipulated by the interpreter.  Forms produced by a
// Reader are Values built from *List, *Symbol and the literal Go types int,
// float64, string, bool and nil.  Evaluation produces the same kinds of
// values plus callables (*Closure, *Macro, *Builtin, Callable), exception
// values and arbitrary host values returned by host modules.
type Value = interface{}

// Meta is metadata attached to a form.  Meta never participates in equality.
type Meta struct {
	Source *token.Location
}

// SourceOf returns the source location of v, if v is a form carrying one.
func SourceOf(v Value) *token.Location {
	switch v := v.(type) {
	case *List:
		if v.Meta != nil {
			return v.Meta.Source
		}
	case *Symbol:
		if v.Meta != nil {
			return v.Meta.Source
		}
	}
	return nil
}

// List is an ordered sequence of values.
type List struct {
	Items []Value
	Meta  *Meta
}

// NewList returns a List containing items.
func NewList(items []Value, meta *Meta) *List {
	return &List{Items: items, Meta: meta}
}

// ListOf returns a List containing the given items and no metadata.
func ListOf(items ...Value) *List {
	return &List{Items: items}
}

// Len returns the number of items in lis.  A nil *List is empty.
func (lis *List) Len() int {
	if lis == nil {
		return 0
	}
	return len(lis.Items)
}

// Head returns the first item in lis or nil if lis is empty.
func (lis *List) Head() Value {
	if lis.Len() == 0 {
		return nil
	}
	return lis.Items[0]
}

// Tail returns a new List containing every item in lis except the first.
func (lis *List) Tail() *List {
	if lis.Len() <= 1 {
		return &List{}
	}
	return &List{Items: lis.Items[1:]}
}

// HeadSymbol returns the first item in lis when it is an unqualified symbol.
func (lis *List) HeadSymbol() (string, bool) {
	sym, ok := lis.Head().(*Symbol)
	if !ok || sym.Namespace != "" {
		return "", false
	}
	return sym.Name, true
}

func (lis *List) String() string {
	return Format(lis)
}

// SymbolKey is the identity of a Symbol.  Two symbols are equal exactly when
// their keys are equal.
type SymbolKey struct {
	Name      string
	Namespace string
}

// Symbol is a name with an optional namespace qualifier.  A symbol with an
// empty Namespace is unqualified and must be resolved in context.
type Symbol struct {
	Name      string
	Namespace string
	Meta      *Meta
}

// NewSymbol returns a symbol with the given name and namespace.
func NewSymbol(name, ns string) *Symbol {
	return &Symbol{Name: name, Namespace: ns}
}

// ParseSymbol converts the text of a symbol into a Symbol, splitting an
// ns/name qualifier.  The text "/" and text beginning or ending with a slash
// are never split.
func ParseSymbol(text string) *Symbol {
	i := strings.IndexByte(text, '/')
	if i > 0 && i < len(text)-1 {
		return NewSymbol(text[i+1:], text[:i])
	}
	return NewSymbol(text, "")
}

// Key returns the identity of sym.
func (sym *Symbol) Key() SymbolKey {
	return SymbolKey{Name: sym.Name, Namespace: sym.Namespace}
}

// Qualified reports whether sym carries a namespace.
func (sym *Symbol) Qualified() bool {
	return sym.Namespace != ""
}

// InNamespace returns a copy of sym qualified by ns.  Metadata is shared.
func (sym *Symbol) InNamespace(ns string) *Symbol {
	return &Symbol{Name: sym.Name, Namespace: ns, Meta: sym.Meta}
}

// Equal reports whether sym and other have the same name and namespace.
func (sym *Symbol) Equal(other *Symbol) bool {
	if sym == nil || other == nil {
		return sym == other
	}
	return sym.Key() == other.Key()
}

func (sym *Symbol) String() string {
	if sym.Namespace == "" {
		return sym.Name
	}
	return sym.Namespace + "/" + sym.Name
}

// Equal reports whether a and b are equal values.  Lists are compared
// element by element, symbols by name and namespace, and numbers by numeric
// value regardless of representation.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case nil:
		return b == nil
	case *List:
		b, ok := b.(*List)
		if !ok || a.Len() != b.Len() {
			return false
		}
		for i := range a.Items {
			if !Equal(a.Items[i], b.Items[i]) {
				return false
			}
		}
		return true
	case *Symbol:
		b, ok := b.(*Symbol)
		return ok && a.Equal(b)
	case int:
		switch b := b.(type) {
		case int:
			return a == b
		case float64:
			return float64(a) == b
		}
		return false
	case float64:
		switch b := b.(type) {
		case int:
			return a == float64(b)
		case float64:
			return a == b
		}
		return false
	}
	if b == nil {
		return false
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// Truthy reports whether v counts as true in a conditional.  The values nil,
// false, zero numbers, the empty string and the empty list are false.  Every
// other value is true.
func Truthy(v Value) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case int:
		return v != 0
	case float64:
		return v != 0
	case string:
		return v != ""
	case *List:
		return v.Len() > 0
	}
	return true
}

// Format returns the printed representation of v.  Strings are quoted so that
// the result can be read back.
func Format(v Value) string {
	var buf bytes.Buffer
	writeValue(&buf, v, true)
	return buf.String()
}

// Display returns the representation of v used by str and print.  Strings
// appear without quotes at the top level.
func Display(v Value) string {
	if s, ok := v.(string); ok {
		return s
	}
	var buf bytes.Buffer
	writeValue(&buf, v, false)
	return buf.String()
}

func writeValue(buf *bytes.Buffer, v Value, quote bool) {
	switch v := v.(type) {
	case nil:
		buf.WriteString("nil")
	case bool:
		buf.WriteString(strconv.FormatBool(v))
	case int:
		buf.WriteString(strconv.Itoa(v))
	case float64:
		buf.WriteString(formatFloat(v))
	case string:
		if quote {
			buf.WriteString(strconv.Quote(v))
		} else {
			buf.WriteString(v)
		}
	case *List:
		buf.WriteString("(")
		for i, x := range v.Items {
			if i > 0 {
				buf.WriteString(" ")
			}
			writeValue(buf, x, quote)
		}
		buf.WriteString(")")
	case fmt.Stringer:
		buf.WriteString(v.String())
	case error:
		buf.WriteString(v.Error())
	default:
		fmt.Fprintf(buf, "%v", v)
	}
}

// formatFloat always includes a decimal point or exponent so that the printed
// value reads back as a float.
func formatFloat(x float64) string {
	switch {
	case math.IsInf(x, 1):
		return "+Inf"
	case math.IsInf(x, -1):
		return "-Inf"
	case math.IsNaN(x):
		return "NaN"
	}
	s := strconv.FormatFloat(x, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// TypeName returns a short lisp name for the type of v.
func TypeName(v Value) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case bool:
		return "bool"
	case int:
		return "int"
	case float64:
		return "float"
	case string:
		return "string"
	case *List:
		return "list"
	case *Symbol:
		return "symbol"
	case *Closure:
		return "lambda"
	case *Macro:
		return "macro"
	case *Builtin, Callable:
		return "builtin"
	case *ExceptionType:
		return "exception-type"
	case *Module:
		return "module"
	case Raisable:
		return v.ExceptionType().Name
	case error:
		return "error"
	case Node:
		return "node"
	default:
		return fmt.Sprintf("go:%T", v)
	}
}
