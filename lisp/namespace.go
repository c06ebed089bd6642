package lisp

import (
	"sort"
)

// Namespace is a named module of definitions.  Besides its own definitions a
// namespace records the namespaces and host modules it imports, the symbols
// it imports individually and the aliases it gives to imported sources.
//
// Namespaces are not safe for concurrent use.
type Namespace struct {
	Name string

	session    *Session
	defs       *Environment
	namespaces map[string]*Namespace
	modules    map[string]*Module
	refs       map[string]*Symbol // local name -> imported symbol
	imported   map[SymbolKey]bool
	aliases    map[string]string // alias -> namespace or module name
}

// NamespaceOption configures a namespace created by Session.NewNamespace.
type NamespaceOption func(ns *nsOptions)

type nsOptions struct {
	withoutCore bool
}

// WithoutCore returns a NamespaceOption that keeps a new namespace from
// importing the core namespace.
func WithoutCore() NamespaceOption {
	return func(opts *nsOptions) {
		opts.withoutCore = true
	}
}

func newNamespace(s *Session, name string) *Namespace {
	return &Namespace{
		Name:       name,
		session:    s,
		defs:       NewEnvironment(nil),
		namespaces: make(map[string]*Namespace),
		modules:    make(map[string]*Module),
		refs:       make(map[string]*Symbol),
		imported:   make(map[SymbolKey]bool),
		aliases:    make(map[string]string),
	}
}

// Session returns the session that owns ns.
func (ns *Namespace) Session() *Session {
	return ns.session
}

// Resolve returns the fully qualified symbol that sym refers to in ns.
// Unqualified symbols name an individually imported symbol or, failing that,
// a definition in ns itself (which need not exist yet).  A qualifier that is
// an alias is replaced by the name it aliases, unless the qualifier is itself
// the name of an imported namespace or module.
func (ns *Namespace) Resolve(sym *Symbol) *Symbol {
	if sym.Namespace == "" {
		sym = sym.InNamespace(ns.Name)
	}
	if sym.Namespace == ns.Name {
		ref, ok := ns.refs[sym.Name]
		if ok {
			return &Symbol{Name: ref.Name, Namespace: ref.Namespace, Meta: sym.Meta}
		}
		return sym
	}
	if ns.importsSource(sym.Namespace) {
		return sym
	}
	actual, ok := ns.aliases[sym.Namespace]
	if ok {
		return sym.InNamespace(actual)
	}
	return sym
}

// Lookup returns the value of the fully qualified symbol sym as seen from ns.
// Definitions in ns are consulted first, then imported namespaces and finally
// imported host modules.
func (ns *Namespace) Lookup(sym *Symbol) (Value, bool) {
	if sym.Namespace == ns.Name || sym.Namespace == "" {
		return ns.defs.Get(sym.Name)
	}
	if other, ok := ns.namespaces[sym.Namespace]; ok {
		return other.Lookup(sym)
	}
	if mod, ok := ns.modules[sym.Namespace]; ok {
		return mod.Attr(sym.Name)
	}
	return nil, false
}

// Define binds sym to v in ns.  An unqualified sym is taken to belong to ns.
// Define fails if sym is qualified by another namespace.
func (ns *Namespace) Define(sym *Symbol, v Value) error {
	if sym.Namespace != "" && sym.Namespace != ns.Name {
		return ValueErrorType.Errorf("cannot define %v in namespace %s", sym, ns.Name)
	}
	ns.defs.DefineGlobal(sym.Name, v)
	return nil
}

// Defined reports whether ns has its own definition for name.
func (ns *Namespace) Defined(name string) bool {
	return ns.defs.Contains(name)
}

// Exportables returns the symbols defined by ns itself, sorted by name.
// Imported symbols are never exported.
func (ns *Namespace) Exportables() []*Symbol {
	names := ns.defs.Names()
	syms := make([]*Symbol, len(names))
	for i, name := range names {
		syms[i] = NewSymbol(name, ns.Name)
	}
	return syms
}

// Imported returns the symbols imported into ns individually, sorted.
func (ns *Namespace) Imported() []*Symbol {
	syms := make([]*Symbol, 0, len(ns.imported))
	for k := range ns.imported {
		syms = append(syms, NewSymbol(k.Name, k.Namespace))
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i].String() < syms[j].String()
	})
	return syms
}

// ImportNS records that ns depends on other.  When names holds the single
// name "*" every exportable symbol of other is imported.  Otherwise each
// named symbol is imported and must be defined by other.  A non-empty alias
// becomes another qualifier for other's symbols.
func (ns *Namespace) ImportNS(other *Namespace, names []string, alias string) error {
	ns.namespaces[other.Name] = other
	if isImportAll(names) {
		for _, sym := range other.Exportables() {
			ns.importSymbol(sym)
		}
	} else {
		for _, name := range names {
			if !other.Defined(name) {
				return &ImportError{
					Name: other.Name,
					Msg:  "namespace does not define " + name,
				}
			}
			ns.importSymbol(NewSymbol(name, other.Name))
		}
	}
	if alias != "" {
		ns.aliases[alias] = other.Name
	}
	ns.session.Logger.Debug("imported namespace",
		"namespace", ns.Name, "source", other.Name, "names", names, "alias", alias)
	return nil
}

// ImportModule is like ImportNS for host modules.  Attributes take the place
// of definitions.
func (ns *Namespace) ImportModule(mod *Module, attrs []string, alias string) error {
	ns.modules[mod.Name] = mod
	if isImportAll(attrs) {
		attrs = mod.Attrs()
	}
	for _, attr := range attrs {
		if _, ok := mod.Attr(attr); !ok {
			return &ImportError{
				Name: HostPrefix + "/" + mod.Name,
				Msg:  "module has no attribute " + attr,
			}
		}
		ns.importSymbol(NewSymbol(attr, mod.Name))
	}
	if alias != "" {
		ns.aliases[alias] = mod.Name
	}
	ns.session.Logger.Debug("imported module",
		"namespace", ns.Name, "module", mod.Name, "attrs", attrs, "alias", alias)
	return nil
}

func (ns *Namespace) importsSource(name string) bool {
	if _, ok := ns.namespaces[name]; ok {
		return true
	}
	_, ok := ns.modules[name]
	return ok
}

func (ns *Namespace) importSymbol(sym *Symbol) {
	ns.refs[sym.Name] = sym
	ns.imported[sym.Key()] = true
}

func isImportAll(names []string) bool {
	return len(names) == 1 && names[0] == importAll
}

func (ns *Namespace) String() string {
	return "<namespace " + ns.Name + ">"
}
