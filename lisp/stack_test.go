package lisp

import (
	"bytes"
	"testing"

	"github.com/kaa-lang/kaa/parser/token"
	"github.com/stretchr/testify/assert"
)

func TestCallStack(t *testing.T) {
	s := &CallStack{MaxHeight: 2}
	assert.Nil(t, s.Top())
	loc := &token.Location{File: "test", Line: 2, Col: 3}
	assert.NoError(t, s.Push(CallFrame{Name: "f", Namespace: "main", Source: loc}))
	assert.NoError(t, s.Push(CallFrame{Namespace: "kaa.core"}))
	err := s.Push(CallFrame{Name: "g", Source: loc})
	assert.EqualError(t, err, "test:2:3: RecursionError: maximum recursion depth exceeded (2)")
	assert.Equal(t, RecursionErrorType, ExceptionTypeOf(err))
	assert.Equal(t, 2, s.Height())
	assert.Equal(t, "kaa.core/<lambda>", s.Top().QualifiedFunName())

	cp := s.Copy()
	var buf bytes.Buffer
	_, err = cp.DebugPrint(&buf)
	assert.NoError(t, err)
	assert.Equal(t, `Stack Trace [2 frames -- entrypoint last]:
  height 1: kaa.core/<lambda>
  height 0: test:2:3: main/f
`, buf.String())

	assert.Equal(t, "kaa.core", s.Pop().Namespace)
	s.Reset()
	assert.Equal(t, 0, s.Height())
	assert.Equal(t, 2, cp.Height())
	assert.Panics(t, func() { s.Pop() })
}

func TestCallStackUnlimited(t *testing.T) {
	s := &CallStack{}
	for i := 0; i < 100; i++ {
		assert.NoError(t, s.Push(CallFrame{Name: "f"}))
	}
	assert.Equal(t, "f", s.Top().QualifiedFunName())
}
