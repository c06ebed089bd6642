package lisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func symbols(names ...string) *List {
	items := make([]Value, len(names))
	for i, name := range names {
		items[i] = ParseSymbol(name)
	}
	return ListOf(items...)
}

func TestParseParams(t *testing.T) {
	tests := []struct {
		names    []string
		str      string
		min, max int
		err      string
	}{
		{nil, "()", 0, 0, ""},
		{[]string{"a", "b"}, "(a b)", 2, 2, ""},
		{[]string{"a", "&optional", "b", "c"}, "(a &optional b c)", 1, 3, ""},
		{[]string{"&rest", "xs"}, "(&rest xs)", 0, -1, ""},
		{[]string{"a", "&optional", "b", "&rest", "xs"}, "(a &optional b &rest xs)", 1, -1, ""},
		{[]string{"a", "a"}, "", 0, 0, "duplicate param: a"},
		{[]string{"a", "&rest"}, "", 0, 0, "`&rest` must be paired with a symbol"},
		{[]string{"&rest", "a", "b"}, "", 0, 0, "`&rest` must be paired with a symbol"},
		{[]string{"&rest", "&optional"}, "", 0, 0, "`&rest` must be paired with a symbol"},
		{[]string{"&rest", "a", "&optional", "b"}, "", 0, 0, "`&rest` must be paired with a symbol"},
		{[]string{"&optional", "a", "&optional"}, "", 0, 0, "unexpected &optional in params"},
		{[]string{"ns/a"}, "", 0, 0, "params must be a list of symbols"},
	}
	for _, test := range tests {
		p, err := ParseParams(symbols(test.names...))
		if test.err != "" {
			assert.EqualError(t, err, test.err, "%v", test.names)
			continue
		}
		if !assert.NoError(t, err, "%v", test.names) {
			continue
		}
		assert.Equal(t, test.str, p.String())
		min, max := p.Arity()
		assert.Equal(t, test.min, min, "%v", test.names)
		assert.Equal(t, test.max, max, "%v", test.names)
	}

	_, err := ParseParams(NewSymbol("x", ""))
	assert.EqualError(t, err, "params must be a list of symbols")
}

func TestParamsBind(t *testing.T) {
	p, err := ParseParams(symbols("a", "&optional", "b", "&rest", "c"))
	require.NoError(t, err)

	bindings, err := p.Bind([]Value{1})
	require.NoError(t, err)
	assert.Equal(t, map[string]Value{"a": 1, "b": nil, "c": &List{}}, bindings)

	bindings, err = p.Bind([]Value{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, 2, bindings["b"])
	assert.True(t, Equal(ListOf(3, 4), bindings["c"]))

	_, err = p.Bind(nil)
	assert.EqualError(t, err, "expected at least 1 args, got 0")

	p, err = ParseParams(symbols("a", "&optional", "b"))
	require.NoError(t, err)
	assert.NoError(t, p.CheckArity(1))
	assert.NoError(t, p.CheckArity(2))
	assert.EqualError(t, p.CheckArity(0), "expected between 1 and 2 args, got 0")
	assert.EqualError(t, p.CheckArity(3), "expected between 1 and 2 args, got 3")
}

func TestParseForm(t *testing.T) {
	v, err := ParseForm(ListOf(NewSymbol("if", ""), true, 1, 2))
	require.NoError(t, err)
	n, ok := v.(*If)
	require.True(t, ok)
	assert.Equal(t, 2, n.Else)

	// Qualified heads are ordinary calls.
	form := ListOf(NewSymbol("if", "ns"), true, 1)
	v, err = ParseForm(form)
	assert.NoError(t, err)
	assert.Equal(t, form, v)

	v, err = ParseForm(ListOf(NewSymbol("import", ""), NewSymbol("*", ""), NewSymbol("from", ""), NewSymbol("a.b", "")))
	require.NoError(t, err)
	imp := v.(*Import)
	assert.True(t, imp.ImportAll)
	assert.Equal(t, "a.b", imp.Name.Name)
	assert.Nil(t, imp.Alias)

	v, err = ParseForm(ListOf(NewSymbol("import", ""), ListOf(), NewSymbol("a", ""), NewSymbol("as", ""), NewSymbol("b", "")))
	require.NoError(t, err)
	imp = v.(*Import)
	assert.NotNil(t, imp.Names)
	assert.Len(t, imp.Names, 0)
	assert.Equal(t, "b", imp.Alias.Name)

	_, err = ParseForm(ListOf(NewSymbol("import", ""), NewSymbol("a", ""), NewSymbol("as", "")))
	assert.EqualError(t, err, "`as` must be followed by an alias")
	_, err = ParseForm(ListOf(NewSymbol("import", ""), NewSymbol("a", ""), NewSymbol("b", ""), NewSymbol("c", "")))
	assert.EqualError(t, err, "invalid `import` form: (import a b c)")
	_, err = ParseForm(ListOf(NewSymbol("try", ""), 1, ListOf(NewSymbol("except", ""), 2)))
	assert.EqualError(t, err, "invalid except form")

	assert.True(t, IsSpecialForm("defmacro"))
	assert.False(t, IsSpecialForm("defun"))
}
