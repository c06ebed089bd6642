package lisp

import (
	"errors"
	"sort"
)

// ErrNotRoot is returned when a binding is assigned directly in an
// Environment that has a parent.
var ErrNotRoot = errors.New("attempted to set value in non-root environment")

// Environment is a lexical scope: a set of bindings and a link to the
// enclosing scope.  Only the root of a chain may be assigned to after
// construction.
type Environment struct {
	bindings map[string]Value
	parent   *Environment
}

// NewEnvironment returns a root Environment holding bindings.  The map is
// owned by the Environment after the call.
func NewEnvironment(bindings map[string]Value) *Environment {
	if bindings == nil {
		bindings = make(map[string]Value)
	}
	return &Environment{bindings: bindings}
}

// Push returns a child scope of env holding bindings.  Bindings in the child
// shadow those of env.  Nothing is copied.
func (env *Environment) Push(bindings map[string]Value) *Environment {
	if bindings == nil {
		bindings = make(map[string]Value)
	}
	return &Environment{bindings: bindings, parent: env}
}

// Parent returns the enclosing scope or nil for a root Environment.
func (env *Environment) Parent() *Environment {
	return env.parent
}

// Get returns the value bound to name in env or one of its ancestors.
func (env *Environment) Get(name string) (Value, bool) {
	for e := env; e != nil; e = e.parent {
		v, ok := e.bindings[name]
		if ok {
			return v, true
		}
	}
	return nil, false
}

// Lookup is like Get but returns an UnboundSymbolError when name is not
// bound.
func (env *Environment) Lookup(name string) (Value, error) {
	v, ok := env.Get(name)
	if !ok {
		return nil, &UnboundSymbolError{Symbol: NewSymbol(name, "")}
	}
	return v, nil
}

// Contains reports whether name is bound in env or one of its ancestors.
func (env *Environment) Contains(name string) bool {
	_, ok := env.Get(name)
	return ok
}

// Set binds name to v.  Set returns ErrNotRoot when env has a parent.
func (env *Environment) Set(name string, v Value) error {
	if env.parent != nil {
		return ErrNotRoot
	}
	env.bindings[name] = v
	return nil
}

// DefineGlobal binds name to v in the root of env's chain.
func (env *Environment) DefineGlobal(name string, v Value) {
	env.Root().bindings[name] = v
}

// Root returns the root of env's chain.
func (env *Environment) Root() *Environment {
	for env.parent != nil {
		env = env.parent
	}
	return env
}

// Names returns the sorted names bound directly in env, ignoring ancestors.
func (env *Environment) Names() []string {
	names := make([]string, 0, len(env.bindings))
	for k := range env.bindings {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
