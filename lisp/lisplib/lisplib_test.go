package lisplib_test

import (
	"bytes"
	"testing"

	"github.com/kaa-lang/kaa/kaatest"
	"github.com/kaa-lang/kaa/lisp"
	"github.com/kaa-lang/kaa/lisp/lisplib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrelude(t *testing.T) {
	tests := kaatest.TestSuite{
		{"defun", kaatest.TestSequence{
			{"(defun sq (x) (* x x))", "<lambda sq (x)>", ""},
			{"(sq 7)", "49", ""},
			{"(defun noop ())", "<lambda noop ()>", ""},
			{"(noop)", "nil", ""},
		}},
		{"do", kaatest.TestSequence{
			{"(do (print 1) (print 2) 3)", "3", "12"},
			{"(do)", "nil", ""},
		}},
		{"let", kaatest.TestSequence{
			{"(let ((a 1) (b 2)) (+ a b))", "3", ""},
			{"(let () 5)", "5", ""},
			{"(let ((x 1)) (let ((x 2) (y x)) (list x y)))", "(2 1)", ""},
			{"(let* ((x 1) (y (+ x 1))) (list x y))", "(1 2)", ""},
			{"(let* () 4)", "4", ""},
		}},
		{"lexical scope", kaatest.TestSequence{
			{"(let ((x 1)) x)", "1", ""},
			{"x", "test:1:1: unbound symbol: x", ""},
			{"(def x 1)", "1", ""},
			{"(let ((x 2)) x)", "2", ""},
			{"x", "1", ""},
			{"(let ((x 3)) (defun fn (y) (+ x y)))", "<lambda fn (y)>", ""},
			{"(let ((x 2)) (fn 2))", "5", ""},
			{"(((lambda (x) (lambda () (+ x 2))) 3))", "5", ""},
			{"(let ((x 1) (y 2)) (defun add-y (x) (+ x y)))", "<lambda add-y (x)>", ""},
			{"(add-y 3)", "5", ""},
		}},
		{"when unless", kaatest.TestSequence{
			{"(when true 1 2)", "2", ""},
			{"(when false 1 2)", "nil", ""},
			{"(unless false 1 2)", "2", ""},
			{"(unless 1 2)", "nil", ""},
		}},
		{"cond", kaatest.TestSequence{
			{"(defun sign (n) (cond ((< n 0) -1) ((= n 0) 0) (else 1)))", "<lambda sign (n)>", ""},
			{"(list (sign -5) (sign 0) (sign 3))", "(-1 0 1)", ""},
			{"(cond (false 1))", "nil", ""},
			{"(cond)", "nil", ""},
		}},
		{"and or", kaatest.TestSequence{
			{"(and)", "true", ""},
			{"(or)", "false", ""},
			{"(and 1 2 3)", "3", ""},
			{"(and 1 0 3)", "0", ""},
			{`(or nil "" 4)`, "4", ""},
			{"(or false nil)", "nil", ""},
			{`(and false (raise "not evaluated"))`, "false", ""},
			{`(or 1 (raise "not evaluated"))`, "1", ""},
		}},
		{"helpers", kaatest.TestSequence{
			{"(identity 'a)", "a", ""},
			{"(inc 1)", "2", ""},
			{"(dec 1)", "0", ""},
			{"(second '(1 2 3))", "2", ""},
			{"(last '(1 2 3))", "3", ""},
		}},
		{"macroexpand", kaatest.TestSequence{
			{"(macroexpand-1 '(defun f (x) x))", "(def f (lambda (x) x))", ""},
			{"(macroexpand '(when a b))", "(if a (do b) nil)", ""},
			{"(macroexpand '(let ((a 1)) a))", "((lambda (a) a) 1)", ""},
		}},
	}
	kaatest.RunTestSuite(t, tests)
}

func TestLoadLibrary(t *testing.T) {
	r := &kaatest.Runner{}
	s, ns, err := r.NewSession(new(bytes.Buffer))
	require.NoError(t, err)
	for _, name := range []string{"json", "math", "os", "regexp", "strings", "testing", "time"} {
		_, err := s.Module(name)
		assert.NoError(t, err, name)
	}
	assert.True(t, s.Core().Defined("defun"))
	v, err := s.LoadString(ns, "test", "(import go/strings) (strings/to-upper \"kaa\")")
	if assert.NoError(t, err) {
		assert.Equal(t, "KAA", v)
	}
}

func TestLoadLibraryNoReader(t *testing.T) {
	_, err := lisp.NewSession(lisp.WithLoader(lisplib.LoadLibrary))
	assert.EqualError(t, err, "session has no reader")
}
