package lisp

import (
	"fmt"

	"github.com/kaa-lang/kaa/parser/token"
)

// Node is a special form that has been parsed into its typed representation.
// The set of Node types is closed: *Def, *If, *Lambda, *Macro, *Import,
// *Quote, *Raise and *Try.
type Node interface {
	node()
	// Location returns the source location of the parsed form, if known.
	Location() *token.Location
}

// Def binds the value of Value to Symbol in the current namespace.
type Def struct {
	Symbol *Symbol
	Value  Value
	Source *token.Location
}

// If evaluates Then or Else depending on the truth of Cond.  A missing else
// branch is nil.
type If struct {
	Cond   Value
	Then   Value
	Else   Value
	Source *token.Location
}

// Lambda is an anonymous function literal.  A Lambda node is never modified
// by evaluation; evaluating one produces a new *Closure.
type Lambda struct {
	Params *Params
	Body   []Value
	Source *token.Location
}

// Macro is a macro definition.  Macros capture no lexical environment.
type Macro struct {
	Name   string
	Params *Params
	Body   []Value
	Source *token.Location
}

// Import loads the namespace or host module called Name and records it in the
// current namespace.  Names is nil when no name list was given.  ImportAll is
// set for the name list *.
type Import struct {
	Name      *Symbol
	Names     []*Symbol
	ImportAll bool
	Alias     *Symbol
	Source    *token.Location
}

// Quote returns Value without evaluating it.
type Quote struct {
	Value  Value
	Source *token.Location
}

// Raise raises the value of Value as an exception.
type Raise struct {
	Value  Value
	Source *token.Location
}

// Handler is one except clause of a Try.
type Handler struct {
	Type Value
	Body Value
}

// Try evaluates Expr and handles raised exceptions with the first matching
// Handler.
type Try struct {
	Expr     Value
	Handlers []Handler
	Source   *token.Location
}

func (*Def) node()    {}
func (*If) node()     {}
func (*Lambda) node() {}
func (*Macro) node()  {}
func (*Import) node() {}
func (*Quote) node()  {}
func (*Raise) node()  {}
func (*Try) node()    {}

func (n *Def) Location() *token.Location    { return n.Source }
func (n *If) Location() *token.Location     { return n.Source }
func (n *Lambda) Location() *token.Location { return n.Source }
func (n *Macro) Location() *token.Location  { return n.Source }
func (n *Import) Location() *token.Location { return n.Source }
func (n *Quote) Location() *token.Location  { return n.Source }
func (n *Raise) Location() *token.Location  { return n.Source }
func (n *Try) Location() *token.Location    { return n.Source }

func (n *Lambda) String() string {
	return fmt.Sprintf("<lambda %v>", n.Params)
}

func (n *Macro) String() string {
	if n.Name == "" {
		return fmt.Sprintf("<macro %v>", n.Params)
	}
	return fmt.Sprintf("<macro %s %v>", n.Name, n.Params)
}

type specialForm func(form *List, src *token.Location) (Value, error)

var specialForms map[string]specialForm

func init() {
	specialForms = map[string]specialForm{
		SymDef:      parseDef,
		SymDefmacro: parseDefmacro,
		SymIf:       parseIf,
		SymLambda:   parseLambda,
		SymImport:   parseImport,
		SymQuote:    parseQuote,
		SymRaise:    parseRaise,
		SymTry:      parseTry,
		SymExcept:   parseExcept,
	}
}

// IsSpecialForm reports whether name is a special form keyword.
func IsSpecialForm(name string) bool {
	_, ok := specialForms[name]
	return ok
}

// ParseForm converts v to a Node when v is a list headed by an unqualified
// special form keyword.  Any other value is returned unchanged.
func ParseForm(v Value) (Value, error) {
	form, ok := v.(*List)
	if !ok {
		return v, nil
	}
	name, ok := form.HeadSymbol()
	if !ok {
		return v, nil
	}
	parse, ok := specialForms[name]
	if !ok {
		return v, nil
	}
	return parse(form, SourceOf(form))
}

// (def NAME EXPR)
func parseDef(form *List, src *token.Location) (Value, error) {
	if form.Len() != 3 {
		return nil, parseErrorf(src, "`def` requires 2 args")
	}
	sym, ok := form.Items[1].(*Symbol)
	if !ok {
		return nil, parseErrorf(src, "`def` name must be a symbol")
	}
	return &Def{Symbol: sym, Value: form.Items[2], Source: src}, nil
}

// (defmacro NAME PARAMS [EXPR ...])
func parseDefmacro(form *List, src *token.Location) (Value, error) {
	if form.Len() < 3 {
		return nil, parseErrorf(src, "`defmacro` requires 2+ args")
	}
	sym, ok := form.Items[1].(*Symbol)
	if !ok {
		return nil, parseErrorf(src, "macro name must be a symbol")
	}
	params, err := ParseParams(form.Items[2])
	if err != nil {
		return nil, err
	}
	mac := &Macro{
		Name:   sym.Name,
		Params: params,
		Body:   form.Items[3:],
		Source: src,
	}
	return &Def{Symbol: sym, Value: mac, Source: src}, nil
}

// (if COND THEN [ELSE])
func parseIf(form *List, src *token.Location) (Value, error) {
	if form.Len() != 3 && form.Len() != 4 {
		return nil, parseErrorf(src, "`if` requires 2 or 3 args")
	}
	n := &If{Cond: form.Items[1], Then: form.Items[2], Source: src}
	if form.Len() == 4 {
		n.Else = form.Items[3]
	}
	return n, nil
}

// (lambda PARAMS [EXPR ...])
func parseLambda(form *List, src *token.Location) (Value, error) {
	if form.Len() < 2 {
		return nil, parseErrorf(src, "`lambda` requires 1+ args")
	}
	params, err := ParseParams(form.Items[1])
	if err != nil {
		return nil, err
	}
	return &Lambda{Params: params, Body: form.Items[2:], Source: src}, nil
}

// (import [NAMES [from]] SOURCE [[as] ALIAS])
//
// NAMES is a list of symbols or the symbol *.
func parseImport(form *List, src *token.Location) (Value, error) {
	if form.Len() < 2 {
		return nil, parseErrorf(src, "`import` requires 1+ args")
	}
	n := &Import{Source: src}
	args := form.Items[1:]
	switch names := args[0].(type) {
	case *List:
		for _, x := range names.Items {
			sym, ok := x.(*Symbol)
			if !ok {
				return nil, parseErrorf(locOr(names, src), "imported names must be symbols")
			}
			n.Names = append(n.Names, sym)
		}
		if n.Names == nil {
			n.Names = []*Symbol{}
		}
		args = args[1:]
	case *Symbol:
		if names.Name == importAll && names.Namespace == "" && len(args) > 1 {
			n.ImportAll = true
			args = args[1:]
		}
	}
	if n.Names != nil || n.ImportAll {
		if len(args) > 0 && isKeyword(args[0], importFrom) {
			args = args[1:]
		}
	}
	if len(args) == 0 {
		return nil, parseErrorf(src, "`import` requires a source")
	}
	source, ok := args[0].(*Symbol)
	if !ok {
		return nil, parseErrorf(locOr(args[0], src), "import source must be a symbol")
	}
	n.Name = source
	args = args[1:]
	if len(args) > 0 && isKeyword(args[0], importAs) {
		args = args[1:]
		if len(args) == 0 {
			return nil, parseErrorf(src, "`as` must be followed by an alias")
		}
	}
	switch len(args) {
	case 0:
	case 1:
		alias, ok := args[0].(*Symbol)
		if !ok || alias.Namespace != "" {
			return nil, parseErrorf(locOr(args[0], src), "import alias must be an unqualified symbol")
		}
		n.Alias = alias
	default:
		return nil, parseErrorf(src, "invalid `import` form: %v", form)
	}
	return n, nil
}

// (quote EXPR)
func parseQuote(form *List, src *token.Location) (Value, error) {
	if form.Len() != 2 {
		return nil, parseErrorf(src, "`quote` requires 1 arg")
	}
	return &Quote{Value: form.Items[1], Source: src}, nil
}

// (raise EXPR)
func parseRaise(form *List, src *token.Location) (Value, error) {
	if form.Len() != 2 {
		return nil, parseErrorf(src, "`raise` requires 1 arg")
	}
	return &Raise{Value: form.Items[1], Source: src}, nil
}

// (try EXPR (except TYPE EXPR) ...)
func parseTry(form *List, src *token.Location) (Value, error) {
	if form.Len() < 3 {
		return nil, parseErrorf(src, "`try` requires 2+ args")
	}
	n := &Try{Expr: form.Items[1], Source: src}
	for _, x := range form.Items[2:] {
		clause, ok := x.(*List)
		if !ok || clause.Len() != 3 || !isKeyword(clause.Head(), SymExcept) {
			return nil, parseErrorf(locOr(x, src), "invalid except form")
		}
		n.Handlers = append(n.Handlers, Handler{Type: clause.Items[1], Body: clause.Items[2]})
	}
	return n, nil
}

func parseExcept(form *List, src *token.Location) (Value, error) {
	return nil, parseErrorf(src, "`except` must appear within `try`")
}

// Params is a parsed parameter list.
type Params struct {
	Required []string
	Optional []string
	Rest     string
	HasRest  bool
}

// ParseParams parses a parameter list of the form
//
//	(REQUIRED... [&optional OPTIONAL...] [&rest REST])
func ParseParams(v Value) (*Params, error) {
	form, ok := v.(*List)
	if !ok {
		return nil, parseErrorf(SourceOf(v), "params must be a list of symbols")
	}
	src := SourceOf(form)
	names := make([]string, len(form.Items))
	for i, x := range form.Items {
		sym, ok := x.(*Symbol)
		if !ok || sym.Namespace != "" {
			return nil, parseErrorf(src, "params must be a list of symbols")
		}
		names[i] = sym.Name
	}
	p := &Params{}
	i := 0
	for ; i < len(names) && !isParamMarker(names[i]); i++ {
		p.Required = append(p.Required, names[i])
	}
	if i < len(names) && names[i] == OptionalSymbol {
		for i++; i < len(names) && !isParamMarker(names[i]); i++ {
			p.Optional = append(p.Optional, names[i])
		}
	}
	if i < len(names) && names[i] == RestSymbol {
		if len(names)-i != 2 || isParamMarker(names[i+1]) {
			return nil, parseErrorf(src, "`&rest` must be paired with a symbol")
		}
		p.Rest = names[i+1]
		p.HasRest = true
		i += 2
	}
	if i < len(names) {
		return nil, parseErrorf(src, "unexpected %s in params", names[i])
	}
	seen := make(map[string]bool, len(names))
	for _, name := range p.Names() {
		if seen[name] {
			return nil, parseErrorf(src, "duplicate param: %s", name)
		}
		seen[name] = true
	}
	return p, nil
}

// Names returns every name bound by p, in declaration order.
func (p *Params) Names() []string {
	names := make([]string, 0, len(p.Required)+len(p.Optional)+1)
	names = append(names, p.Required...)
	names = append(names, p.Optional...)
	if p.HasRest {
		names = append(names, p.Rest)
	}
	return names
}

// Arity returns the minimum number of arguments accepted and the maximum,
// which is -1 when a rest parameter is declared.
func (p *Params) Arity() (min, max int) {
	min = len(p.Required)
	if p.HasRest {
		return min, -1
	}
	return min, min + len(p.Optional)
}

// CheckArity returns a WrongArityError if n arguments do not satisfy p.
func (p *Params) CheckArity(n int) error {
	min, max := p.Arity()
	if min <= n && (max < 0 || n <= max) {
		return nil
	}
	var expected string
	switch {
	case max < 0:
		expected = fmt.Sprintf("at least %d", min)
	case min == max:
		expected = fmt.Sprintf("%d", min)
	default:
		expected = fmt.Sprintf("between %d and %d", min, max)
	}
	return &WrongArityError{Expected: expected, Got: n}
}

// Bind checks the arity of args and maps each parameter name to its
// argument.  Missing optional arguments are nil and the rest parameter
// collects remaining arguments in a *List.
func (p *Params) Bind(args []Value) (map[string]Value, error) {
	err := p.CheckArity(len(args))
	if err != nil {
		return nil, err
	}
	bindings := make(map[string]Value, len(p.Required)+len(p.Optional)+1)
	for i, name := range p.Required {
		bindings[name] = args[i]
	}
	args = args[len(p.Required):]
	for i, name := range p.Optional {
		if i < len(args) {
			bindings[name] = args[i]
		} else {
			bindings[name] = nil
		}
	}
	if p.HasRest {
		var rest []Value
		if len(args) > len(p.Optional) {
			rest = append(rest, args[len(p.Optional):]...)
		}
		bindings[p.Rest] = &List{Items: rest}
	}
	return bindings, nil
}

func (p *Params) String() string {
	lis := &List{}
	for _, name := range p.Required {
		lis.Items = append(lis.Items, NewSymbol(name, ""))
	}
	if len(p.Optional) > 0 {
		lis.Items = append(lis.Items, NewSymbol(OptionalSymbol, ""))
		for _, name := range p.Optional {
			lis.Items = append(lis.Items, NewSymbol(name, ""))
		}
	}
	if p.HasRest {
		lis.Items = append(lis.Items, NewSymbol(RestSymbol, ""), NewSymbol(p.Rest, ""))
	}
	return lis.String()
}

func isParamMarker(name string) bool {
	return name == OptionalSymbol || name == RestSymbol
}

func isKeyword(v Value, name string) bool {
	sym, ok := v.(*Symbol)
	return ok && sym.Namespace == "" && sym.Name == name
}

func locOr(v Value, src *token.Location) *token.Location {
	loc := SourceOf(v)
	if loc == nil {
		return src
	}
	return loc
}

func parseErrorf(src *token.Location, format string, v ...interface{}) error {
	return &ParseError{Source: src, Msg: fmt.Sprintf(format, v...)}
}
