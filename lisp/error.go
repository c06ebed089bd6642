package lisp

import (
	"errors"
	"fmt"

	"github.com/kaa-lang/kaa/parser/token"
)

// ExceptionType is a first class exception class.  Handlers in a try form
// match an exception when its type is the handler type or one of its
// descendants.
type ExceptionType struct {
	Name   string
	Parent *ExceptionType
}

// NewExceptionType returns a new type derived from parent.  A nil parent
// derives from ExceptionBase.
func NewExceptionType(name string, parent *ExceptionType) *ExceptionType {
	if parent == nil {
		parent = ExceptionBase
	}
	return &ExceptionType{Name: name, Parent: parent}
}

// IsA reports whether t is typ or descends from typ.
func (t *ExceptionType) IsA(typ *ExceptionType) bool {
	for ; t != nil; t = t.Parent {
		if t == typ {
			return true
		}
	}
	return false
}

// New returns an Exception of type t.
func (t *ExceptionType) New(msg string) *Exception {
	return &Exception{Type: t, Msg: msg}
}

// Errorf returns an Exception of type t with a formatted message.
func (t *ExceptionType) Errorf(format string, v ...interface{}) *Exception {
	return t.New(fmt.Sprintf(format, v...))
}

func (t *ExceptionType) String() string {
	return "<exception-type " + t.Name + ">"
}

// Built in exception types.  They are bound by name in the core namespace.
var (
	ExceptionBase      = &ExceptionType{Name: "Exception"}
	RuntimeErrorType   = NewExceptionType("RuntimeError", ExceptionBase)
	RecursionErrorType = NewExceptionType("RecursionError", RuntimeErrorType)
	ValueErrorType     = NewExceptionType("ValueError", ExceptionBase)
	TypeErrorType      = NewExceptionType("TypeError", ExceptionBase)
	KeyErrorType       = NewExceptionType("KeyError", ExceptionBase)
	ParseErrorType     = NewExceptionType("ParseError", ExceptionBase)
	WrongArityType     = NewExceptionType("WrongArity", ExceptionBase)
	UnboundSymbolType  = NewExceptionType("UnboundSymbol", ExceptionBase)
	ImportErrorType    = NewExceptionType("ImportError", ExceptionBase)
	AssertionErrorType = NewExceptionType("AssertionError", ExceptionBase)
)

// BuiltinExceptionTypes returns the exception types bound in the core
// namespace.
func BuiltinExceptionTypes() []*ExceptionType {
	return []*ExceptionType{
		ExceptionBase,
		RuntimeErrorType,
		RecursionErrorType,
		ValueErrorType,
		TypeErrorType,
		KeyErrorType,
		ParseErrorType,
		WrongArityType,
		UnboundSymbolType,
		ImportErrorType,
		AssertionErrorType,
	}
}

// Raisable is an error that lisp code can catch by type.
type Raisable interface {
	error
	ExceptionType() *ExceptionType
}

// ExceptionTypeOf returns the exception type of err.  Errors that do not
// implement Raisable, such as errors returned by host functions, are
// classified as RuntimeError.
func ExceptionTypeOf(err error) *ExceptionType {
	var r Raisable
	if errors.As(err, &r) {
		return r.ExceptionType()
	}
	return RuntimeErrorType
}

// Exception is an error raised by lisp code or by a builtin.
type Exception struct {
	Type   *ExceptionType
	Msg    string
	Source *token.Location
	Stack  *CallStack // call stack when raised, if known
	Err    error      // underlying host error, if any
}

// WrapError returns an Exception of type RuntimeError wrapping err.
func WrapError(err error) *Exception {
	return &Exception{Type: RuntimeErrorType, Msg: err.Error(), Err: err}
}

// Error implements the error interface.
func (e *Exception) Error() string {
	msg := e.Type.Name
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	return withLocation(e.Source, msg)
}

// ExceptionType implements Raisable.
func (e *Exception) ExceptionType() *ExceptionType {
	return e.Type
}

func (e *Exception) Unwrap() error {
	return e.Err
}

// ParseError is returned when a special form does not match its grammar.
type ParseError struct {
	Source *token.Location
	Msg    string
}

func (e *ParseError) Error() string {
	return withLocation(e.Source, e.Msg)
}

// ExceptionType implements Raisable.
func (e *ParseError) ExceptionType() *ExceptionType {
	return ParseErrorType
}

// WrongArityError is returned when a callable receives an argument count
// outside of its declared range.
type WrongArityError struct {
	Source   *token.Location
	Name     string
	Expected string
	Got      int
}

func (e *WrongArityError) Error() string {
	msg := fmt.Sprintf("expected %s args, got %d", e.Expected, e.Got)
	if e.Name != "" {
		msg = e.Name + ": " + msg
	}
	return withLocation(e.Source, msg)
}

// ExceptionType implements Raisable.
func (e *WrongArityError) ExceptionType() *ExceptionType {
	return WrongArityType
}

// UnboundSymbolError is returned when a symbol has no binding.
type UnboundSymbolError struct {
	Symbol *Symbol
}

func (e *UnboundSymbolError) Error() string {
	return withLocation(SourceOf(e.Symbol), "unbound symbol: "+e.Symbol.String())
}

// ExceptionType implements Raisable.
func (e *UnboundSymbolError) ExceptionType() *ExceptionType {
	return UnboundSymbolType
}

// ImportError is returned when an import source cannot be located or
// loaded.
type ImportError struct {
	Source *token.Location
	Name   string
	Msg    string
	Err    error
}

func (e *ImportError) Error() string {
	msg := e.Msg
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	return withLocation(e.Source, fmt.Sprintf("cannot import %s: %s", e.Name, msg))
}

// ExceptionType implements Raisable.
func (e *ImportError) ExceptionType() *ExceptionType {
	return ImportErrorType
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

func withLocation(loc *token.Location, msg string) string {
	if loc == nil {
		return msg
	}
	return loc.String() + ": " + msg
}

// locate attaches loc to err when err is one of the package's error types and
// does not have a location yet.
func locate(err error, loc *token.Location) error {
	if loc == nil {
		return err
	}
	switch err := err.(type) {
	case *Exception:
		if err.Source == nil {
			err.Source = loc
		}
	case *ParseError:
		if err.Source == nil {
			err.Source = loc
		}
	case *WrongArityError:
		if err.Source == nil {
			err.Source = loc
		}
	case *ImportError:
		if err.Source == nil {
			err.Source = loc
		}
	}
	return err
}
