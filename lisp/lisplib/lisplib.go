// Package lisplib is used to conveniently load the standard library into a
// kaa session: the host modules under the go/ prefix and the macros of the
// core prelude.
package lisplib

import (
	_ "embed"

	"github.com/kaa-lang/kaa/lisp"
	"github.com/kaa-lang/kaa/lisp/lisplib/libjson"
	"github.com/kaa-lang/kaa/lisp/lisplib/libmath"
	"github.com/kaa-lang/kaa/lisp/lisplib/libos"
	"github.com/kaa-lang/kaa/lisp/lisplib/libregexp"
	"github.com/kaa-lang/kaa/lisp/lisplib/libstring"
	"github.com/kaa-lang/kaa/lisp/lisplib/libtesting"
	"github.com/kaa-lang/kaa/lisp/lisplib/libtime"
)

//go:embed prelude.lisp
var prelude []byte

var modules = []lisp.Loader{
	libtime.LoadModule,
	libmath.LoadModule,
	libstring.LoadModule,
	libjson.LoadModule,
	libregexp.LoadModule,
	libos.LoadModule,
	libtesting.LoadModule,
}

// LoadLibrary registers the standard host modules with s and evaluates the
// prelude in its core namespace.  The session must have a Reader.  Because
// namespaces copy the core definitions when they are created, LoadLibrary
// must run before the namespaces that use the prelude are created.
func LoadLibrary(s *lisp.Session) error {
	for _, fn := range modules {
		err := fn(s)
		if err != nil {
			return err
		}
	}
	return LoadPrelude(s)
}

// LoadPrelude evaluates the prelude in the core namespace of s.
func LoadPrelude(s *lisp.Session) error {
	_, err := s.LoadBytes(s.Core(), "prelude.lisp", prelude)
	return err
}
