package lisp

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSymbol(t *testing.T) {
	tests := []struct {
		text string
		ns   string
		name string
	}{
		{"x", "", "x"},
		{"a/b", "a", "b"},
		{"a.b/c", "a.b", "c"},
		{"a/b/c", "a", "b/c"},
		{"/", "", "/"},
		{"/x", "", "/x"},
		{"x/", "", "x/"},
	}
	for _, test := range tests {
		sym := ParseSymbol(test.text)
		assert.Equal(t, test.ns, sym.Namespace, test.text)
		assert.Equal(t, test.name, sym.Name, test.text)
		assert.Equal(t, test.text, sym.String(), test.text)
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b  Value
		equal bool
	}{
		{nil, nil, true},
		{nil, false, false},
		{1, 1, true},
		{1, 1.0, true},
		{1.5, 1, false},
		{"a", "a", true},
		{"1", 1, false},
		{NewSymbol("x", ""), NewSymbol("x", ""), true},
		{NewSymbol("x", "a"), NewSymbol("x", "b"), false},
		{NewSymbol("x", ""), "x", false},
		{ListOf(1, "a", ListOf()), ListOf(1.0, "a", &List{}), true},
		{ListOf(1), ListOf(1, 2), false},
		{ValueErrorType, ValueErrorType, true},
		{ValueErrorType, TypeErrorType, false},
	}
	for _, test := range tests {
		assert.Equal(t, test.equal, Equal(test.a, test.b), "%s = %s", Format(test.a), Format(test.b))
	}
}

func TestTruthy(t *testing.T) {
	falsy := []Value{nil, false, 0, 0.0, "", &List{}}
	for _, v := range falsy {
		assert.False(t, Truthy(v), Format(v))
	}
	truthy := []Value{true, 1, -1, 0.5, "false", ListOf(nil), NewSymbol("x", ""), ValueErrorType}
	for _, v := range truthy {
		assert.True(t, Truthy(v), Format(v))
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		v       Value
		format  string
		display string
	}{
		{nil, "nil", "nil"},
		{true, "true", "true"},
		{-3, "-3", "-3"},
		{2.0, "2.0", "2.0"},
		{1e21, "1e+21", "1e+21"},
		{math.Inf(-1), "-Inf", "-Inf"},
		{"a\"b", `"a\"b"`, `a"b`},
		{ListOf("a", NewSymbol("b", "ns"), ListOf()), `("a" ns/b ())`, `(a ns/b ())`},
		{ValueErrorType, "<exception-type ValueError>", "<exception-type ValueError>"},
		{errors.New("plain"), "plain", "plain"},
	}
	for _, test := range tests {
		assert.Equal(t, test.format, Format(test.v))
		assert.Equal(t, test.display, Display(test.v))
	}
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "list", TypeName(&List{}))
	assert.Equal(t, "symbol", TypeName(NewSymbol("x", "")))
	assert.Equal(t, "exception-type", TypeName(KeyErrorType))
	assert.Equal(t, "KeyError", TypeName(KeyErrorType.New("x")))
	assert.Equal(t, "WrongArity", TypeName(&WrongArityError{}))
	assert.Equal(t, "error", TypeName(errors.New("x")))
	assert.Equal(t, "go:[]uint8", TypeName([]byte("x")))
}

func TestList(t *testing.T) {
	var empty *List
	assert.Equal(t, 0, empty.Len())
	lis := ListOf(NewSymbol("f", ""), 1, 2)
	name, ok := lis.HeadSymbol()
	assert.True(t, ok)
	assert.Equal(t, "f", name)
	assert.Equal(t, "(1 2)", lis.Tail().String())
	_, ok = ListOf(NewSymbol("f", "ns")).HeadSymbol()
	assert.False(t, ok)
	assert.Nil(t, (&List{}).Head())
}
