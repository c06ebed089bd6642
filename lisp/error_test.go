package lisp

import (
	"errors"
	"fmt"
	"testing"

	"github.com/kaa-lang/kaa/parser/token"
	"github.com/stretchr/testify/assert"
)

func TestExceptionType(t *testing.T) {
	assert.True(t, RecursionErrorType.IsA(RecursionErrorType))
	assert.True(t, RecursionErrorType.IsA(RuntimeErrorType))
	assert.True(t, RecursionErrorType.IsA(ExceptionBase))
	assert.False(t, RuntimeErrorType.IsA(RecursionErrorType))
	assert.False(t, ValueErrorType.IsA(TypeErrorType))

	custom := NewExceptionType("CustomError", nil)
	assert.Equal(t, ExceptionBase, custom.Parent)
	assert.True(t, custom.IsA(ExceptionBase))

	for _, typ := range BuiltinExceptionTypes() {
		assert.True(t, typ.IsA(ExceptionBase), typ.Name)
	}
}

func TestExceptionTypeOf(t *testing.T) {
	tests := []struct {
		err error
		typ *ExceptionType
	}{
		{errors.New("host"), RuntimeErrorType},
		{KeyErrorType.New("k"), KeyErrorType},
		{&ParseError{Msg: "p"}, ParseErrorType},
		{&WrongArityError{}, WrongArityType},
		{&UnboundSymbolError{Symbol: NewSymbol("x", "")}, UnboundSymbolType},
		{&ImportError{Name: "x"}, ImportErrorType},
		{fmt.Errorf("wrapped: %w", ValueErrorType.New("v")), ValueErrorType},
	}
	for _, test := range tests {
		assert.Equal(t, test.typ, ExceptionTypeOf(test.err), test.err.Error())
	}
}

func TestErrorMessages(t *testing.T) {
	loc := &token.Location{File: "test.lisp", Line: 3, Col: 7}
	sym := &Symbol{Name: "x", Namespace: "a", Meta: &Meta{Source: loc}}
	tests := []struct {
		err error
		msg string
	}{
		{ValueErrorType.New(""), "ValueError"},
		{&Exception{Type: TypeErrorType, Msg: "bad", Source: loc}, "test.lisp:3:7: TypeError: bad"},
		{&ParseError{Source: loc, Msg: "bad form"}, "test.lisp:3:7: bad form"},
		{&WrongArityError{Name: "f", Expected: "2", Got: 1}, "f: expected 2 args, got 1"},
		{&UnboundSymbolError{Symbol: sym}, "test.lisp:3:7: unbound symbol: a/x"},
		{&ImportError{Name: "a.b", Msg: "circular import"}, "cannot import a.b: circular import"},
		{&ImportError{Name: "a.b", Err: errors.New("denied")}, "cannot import a.b: denied"},
		{WrapError(errors.New("host failure")), "RuntimeError: host failure"},
	}
	for _, test := range tests {
		assert.EqualError(t, test.err, test.msg)
	}
}

func TestLocate(t *testing.T) {
	loc := &token.Location{File: "a", Line: 1, Col: 2}
	other := &token.Location{File: "b", Line: 3, Col: 4}

	err := locate(ValueErrorType.New("x"), loc)
	assert.EqualError(t, err, "a:1:2: ValueError: x")
	err = locate(err, other)
	assert.EqualError(t, err, "a:1:2: ValueError: x")

	err = locate(&WrongArityError{Expected: "1", Got: 0}, loc)
	assert.EqualError(t, err, "a:1:2: expected 1 args, got 0")

	host := errors.New("host")
	assert.Equal(t, host, locate(host, loc))
	assert.Equal(t, host, locate(host, nil))
}
