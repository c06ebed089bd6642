package lisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironment(t *testing.T) {
	root := NewEnvironment(map[string]Value{"a": 1})
	child := root.Push(map[string]Value{"b": 2})
	grandchild := child.Push(map[string]Value{"a": 3})

	v, ok := grandchild.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
	v, ok = child.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.True(t, grandchild.Contains("b"))
	assert.False(t, root.Contains("b"))

	_, err := grandchild.Lookup("c")
	assert.EqualError(t, err, "unbound symbol: c")

	assert.Equal(t, ErrNotRoot, child.Set("c", 4))
	assert.False(t, child.Contains("c"))
	require.NoError(t, root.Set("c", 4))
	assert.True(t, grandchild.Contains("c"))

	grandchild.DefineGlobal("d", 5)
	v, ok = root.Get("d")
	assert.True(t, ok)
	assert.Equal(t, 5, v)

	assert.Equal(t, root, grandchild.Root())
	assert.Equal(t, child, grandchild.Parent())
	assert.Nil(t, root.Parent())
	assert.Equal(t, []string{"a", "c", "d"}, root.Names())
	assert.Equal(t, []string{"a"}, grandchild.Names())
}

func TestEnvironmentPushNil(t *testing.T) {
	env := NewEnvironment(nil).Push(nil)
	assert.False(t, env.Contains("x"))
	env.DefineGlobal("x", 1)
	assert.True(t, env.Contains("x"))
}
