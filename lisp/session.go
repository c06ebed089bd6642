package lisp

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// DefaultMaxDepth is the call stack limit of a new Session.
const DefaultMaxDepth = 10000

// Session is an independent interpreter instance.  It owns the registry of
// loaded namespaces and host modules along with the I/O streams and limits
// used during evaluation.  Sessions share no state with each other.
//
// A Session must only be used by one goroutine at a time.
type Session struct {
	// SearchPath lists the directories searched, in order, for namespace
	// source files.
	SearchPath []string
	Reader     Reader
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Stack      *CallStack

	namespaces map[string]*Namespace
	loading    map[string]bool
	modules    map[string]*Module
	core       *Namespace
	gensym     int
}

// NewSession returns a Session with a core namespace holding the builtin
// functions and exception types, configured by config in order.
func NewSession(config ...Config) (*Session, error) {
	s := &Session{
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Logger:     slog.New(slog.DiscardHandler),
		Stack:      &CallStack{MaxHeight: DefaultMaxDepth},
		namespaces: make(map[string]*Namespace),
		loading:    make(map[string]bool),
		modules:    make(map[string]*Module),
	}
	s.core = s.NewNamespace(CoreNamespace)
	for _, b := range DefaultBuiltins() {
		s.core.defs.DefineGlobal(b.Name, b)
	}
	for _, t := range BuiltinExceptionTypes() {
		s.core.defs.DefineGlobal(t.Name, t)
	}
	for _, fn := range config {
		err := fn(s)
		if err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Core returns the core namespace of s.
func (s *Session) Core() *Namespace {
	return s.core
}

// NewNamespace creates a namespace and registers it with s, replacing any
// namespace registered with the same name.  Unless WithoutCore is given the
// namespace imports every definition of the core namespace.
func (s *Session) NewNamespace(name string, opts ...NamespaceOption) *Namespace {
	var o nsOptions
	for _, fn := range opts {
		fn(&o)
	}
	ns := newNamespace(s, name)
	if name != CoreNamespace && !o.withoutCore && s.core != nil {
		// Importing every definition cannot fail.
		_ = ns.ImportNS(s.core, []string{importAll}, "")
	}
	s.namespaces[name] = ns
	s.Logger.Debug("created namespace", "namespace", name, "core", !o.withoutCore)
	return ns
}

// Namespace returns the namespace registered with s under name.
func (s *Session) Namespace(name string) (*Namespace, bool) {
	ns, ok := s.namespaces[name]
	return ns, ok
}

// RegisterModule makes mod available to (import go/NAME).
func (s *Session) RegisterModule(mod *Module) {
	s.modules[mod.Name] = mod
	s.Logger.Debug("registered module", "module", mod.Name, "attrs", len(mod.attrs))
}

// Module returns the host module registered under name.
func (s *Session) Module(name string) (*Module, error) {
	mod, ok := s.modules[name]
	if !ok {
		return nil, &ImportError{Name: HostPrefix + "/" + name, Msg: "no such host module"}
	}
	return mod, nil
}

// NamespacePath returns the relative path of the source file for the
// namespace name, e.g. a/b.lisp for a.b.
func NamespacePath(name string) string {
	return filepath.FromSlash(strings.ReplaceAll(name, ".", "/")) + SourceExt
}

// LoadNamespace returns the namespace called name, loading it from the
// search path if it has not been loaded yet.
func (s *Session) LoadNamespace(name string) (*Namespace, error) {
	ns, ok := s.namespaces[name]
	if ok {
		return ns, nil
	}
	if s.loading[name] {
		return nil, &ImportError{Name: name, Msg: "circular import"}
	}
	if strings.HasPrefix(name, ".") {
		return nil, &ImportError{Name: name, Msg: "relative imports are not supported"}
	}
	path, err := s.findNamespace(name)
	if err != nil {
		return nil, err
	}
	s.loading[name] = true
	defer delete(s.loading, name)

	s.Logger.Debug("loading namespace", "namespace", name, "path", path)
	ns = newNamespace(s, name)
	if name != CoreNamespace {
		_ = ns.ImportNS(s.core, []string{importAll}, "")
	}
	_, err = s.LoadFile(ns, path)
	if err != nil {
		return nil, err
	}
	s.namespaces[name] = ns
	return ns, nil
}

func (s *Session) findNamespace(name string) (string, error) {
	filename := NamespacePath(name)
	for _, dir := range s.SearchPath {
		path := filepath.Join(dir, filename)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", &ImportError{
		Name: name,
		Msg:  fmt.Sprintf("%q not found on search path", filepath.ToSlash(filename)),
	}
}

// Load reads forms from r and evaluates them in ns, returning the value of
// the last form.  Evaluation stops at the first error.
func (s *Session) Load(ns *Namespace, name string, r io.Reader) (Value, error) {
	if s.Reader == nil {
		return nil, errors.New("session has no reader")
	}
	forms, err := s.Reader.Read(name, r)
	if err != nil {
		return nil, err
	}
	return EvaluateAll(forms, ns)
}

// LoadString evaluates the forms in src in ns.
func (s *Session) LoadString(ns *Namespace, name, src string) (Value, error) {
	return s.Load(ns, name, strings.NewReader(src))
}

// LoadBytes evaluates the forms in b in ns.
func (s *Session) LoadBytes(ns *Namespace, name string, b []byte) (Value, error) {
	return s.Load(ns, name, bytes.NewReader(b))
}

// LoadFile evaluates the forms in the file at path in ns.
func (s *Session) LoadFile(ns *Namespace, path string) (Value, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", ns.Name)
	}
	defer f.Close()
	return s.Load(ns, path, f)
}

// Gensym returns a fresh unqualified symbol, distinct from every other
// symbol generated by s.
func (s *Session) Gensym(prefix string) *Symbol {
	if prefix == "" {
		prefix = "G"
	}
	s.gensym++
	return NewSymbol(fmt.Sprintf("%s__%d__auto__", prefix, s.gensym), "")
}
