// Package kaatest runs lisp code under the go test framework.  Table driven
// sequences of expressions are checked with RunTestSuite and lisp test files
// written against the go/testing module are run with Runner.RunTestFile.
package kaatest

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/kaa-lang/kaa/lisp"
	"github.com/kaa-lang/kaa/lisp/lisplib"
	"github.com/kaa-lang/kaa/lisp/lisplib/libtesting"
	"github.com/kaa-lang/kaa/parser"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

// Runner is a test runner.
type Runner struct {
	// Loader is the library loader used to initialize test sessions.  When
	// Loader is nil lisplib.LoadLibrary is used.
	Loader lisp.Loader
	// Config is applied to each test session after the library is loaded.
	Config []lisp.Config
}

// NewSession returns a session with the library loaded and its default
// namespace, writing output to stdout.
func (r *Runner) NewSession(stdout *bytes.Buffer) (*lisp.Session, *lisp.Namespace, error) {
	loader := r.Loader
	if loader == nil {
		loader = lisplib.LoadLibrary
	}
	config := []lisp.Config{
		lisp.WithReader(parser.NewReader()),
		lisp.WithStdout(stdout),
		lisp.WithStderr(stdout),
		lisp.WithLoader(loader),
	}
	config = append(config, r.Config...)
	s, err := lisp.NewSession(config...)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to initialize lisp session")
	}
	return s, s.NewNamespace(lisp.DefaultNamespace), nil
}

// RunTestFile loads the lisp file at path and runs each test it registers
// as a subtest, each in a fresh session.
func (r *Runner) RunTestFile(t *testing.T, path string) {
	source, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("Unable to read test file: %v", err)
		return
	}

	var names []string
	ok := t.Run("$load", func(t *testing.T) {
		suite := r.loadSuite(t, path, source)
		if suite == nil {
			return
		}
		names = make([]string, suite.Len())
		for i := range names {
			names[i] = suite.Test(i).Name
		}
	})
	if !ok {
		return
	}

	for i := range names {
		// All tests run even when one fails.  A failed assertion stops only
		// the test that made it.
		t.Run(names[i], func(t *testing.T) {
			suite := r.loadSuite(t, path, source)
			if suite == nil {
				return
			}
			test := suite.Test(i)
			err := test.Run()
			if err != nil {
				t.Errorf("%s: %v", test.Name, err)
				debugStack(t, err)
			}
		})
	}
}

func (r *Runner) loadSuite(t *testing.T, path string, source []byte) *libtesting.TestSuite {
	var out bytes.Buffer
	s, ns, err := r.NewSession(&out)
	if err != nil {
		t.Error(err.Error())
		return nil
	}
	_, err = s.LoadBytes(ns, filepath.Base(path), source)
	if err != nil {
		t.Error(err.Error())
		debugStack(t, err)
		return nil
	}
	suite := libtesting.SessionTestSuite(s)
	if suite == nil {
		t.Errorf("unable to locate test suite")
		return nil
	}
	return suite
}

func debugStack(t *testing.T, err error) {
	var exc *lisp.Exception
	if errors.As(err, &exc) && exc.Stack != nil && exc.Stack.Height() > 0 {
		var buf bytes.Buffer
		_, _ = exc.Stack.DebugPrint(&buf)
		t.Log(buf.String())
	}
}

// TestSequence is a sequence of lisp expressions which are evaluated
// sequentially in one namespace.
type TestSequence []struct {
	Expr   string // a lisp expression
	Result string // the formatted result, or the error message
	Output string // expected print output, if not empty
}

// TestSuite is a set of named TestSequences.
type TestSuite []struct {
	Name string
	TestSequence
}

// RunTestSuite runs each TestSequence in tests in an isolated session.
func RunTestSuite(t *testing.T, tests TestSuite) {
	r := &Runner{}
	for i, test := range tests {
		var out bytes.Buffer
		s, ns, err := r.NewSession(&out)
		if !assert.NoError(t, err) {
			return
		}
		ev := lisp.NewEvaluator(ns, nil)
		for j, expr := range test.TestSequence {
			out.Reset()
			forms, err := s.Reader.Read("test", bytes.NewBufferString(expr.Expr))
			if err != nil {
				t.Errorf("test %d %q: expr %d: parse error: %v", i, test.Name, j, err)
				continue
			}
			if len(forms) != 1 {
				t.Errorf("test %d %q: expr %d: expected one expression (got %d)", i, test.Name, j, len(forms))
				continue
			}
			var result string
			v, err := ev.Evaluate(forms[0])
			if err != nil {
				result = err.Error()
			} else {
				result = lisp.Format(v)
			}
			if result != expr.Result {
				t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, expr.Result, result)
			}
			if expr.Output != "" && out.String() != expr.Output {
				t.Errorf("test %d %q: expr %d: expected output %q (got %q)", i, test.Name, j, expr.Output, out.String())
			}
		}
	}
}
