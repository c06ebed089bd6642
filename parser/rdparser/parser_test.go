package rdparser

import (
	"strings"
	"testing"

	"github.com/kaa-lang/kaa/lisp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func read(t *testing.T, src string) ([]lisp.Value, error) {
	t.Helper()
	return NewReader().Read("test", strings.NewReader(src))
}

func TestParser(t *testing.T) {
	tests := []struct {
		src    string
		result string
	}{
		{`1 -2 3.5 "hi\n"`, `1 -2 3.5 "hi\n"`},
		{`true false nil`, `true false nil`},
		{`(a (b c) ())`, `(a (b c) ())`},
		{`ns/name / a/ /b`, `ns/name / a/ /b`},
		{`'x`, `(quote x)`},
		{`'(1 2)`, `(quote (1 2))`},
		{"`x", `(quote x)`},
		{"`~x", `x`},
		{"`(a ~b ~@c)", `(kaa.core/concat (kaa.core/list (quote a)) (kaa.core/list b) c)`},
		{"`(a (b ~c))", `(kaa.core/concat (kaa.core/list (quote a)) (kaa.core/list (kaa.core/concat (kaa.core/list (quote b)) (kaa.core/list c))))`},
		{"~x ~@y", `(unquote x) (unquote-splice y)`},
		{"; comment\n(a ; inner\n b)", `(a b)`},
	}
	for _, test := range tests {
		forms, err := read(t, test.src)
		if assert.NoError(t, err, test.src) {
			strs := make([]string, len(forms))
			for i := range forms {
				strs[i] = lisp.Format(forms[i])
			}
			assert.Equal(t, test.result, strings.Join(strs, " "), test.src)
		}
	}
}

func TestParserSymbols(t *testing.T) {
	forms, err := read(t, "a.b/c")
	require.NoError(t, err)
	require.Len(t, forms, 1)
	sym, ok := forms[0].(*lisp.Symbol)
	require.True(t, ok)
	assert.Equal(t, "c", sym.Name)
	assert.Equal(t, "a.b", sym.Namespace)
	assert.Equal(t, "test:1:1", sym.Meta.Source.String())
}

func TestParserLocations(t *testing.T) {
	forms, err := read(t, "\n  (foo\n   (bar))")
	require.NoError(t, err)
	require.Len(t, forms, 1)
	outer := forms[0].(*lisp.List)
	assert.Equal(t, "test:2:3", lisp.SourceOf(outer).String())
	inner := outer.Items[1].(*lisp.List)
	assert.Equal(t, "test:3:4", lisp.SourceOf(inner).String())
}

func TestParserErrors(t *testing.T) {
	tests := []struct {
		src        string
		msg        string
		incomplete bool
	}{
		{`(a b`, "test:1:1: unmatched (", true},
		{`"abc`, "test:1:1: unexpected EOF", true},
		{`'`, "test:1:2: unexpected end of input", true},
		{`)`, "test:1:1: unexpected )", false},
		{`12abc`, "test:1:1: invalid number literal: 12abc", false},
		{`"\q"`, `test:1:1: invalid string literal: "\q"`, false},
	}
	for _, test := range tests {
		_, err := read(t, test.src)
		if assert.Error(t, err, test.src) {
			assert.Equal(t, test.msg, err.Error(), test.src)
			assert.Equal(t, test.incomplete, IsIncomplete(err), test.src)
		}
	}
}
