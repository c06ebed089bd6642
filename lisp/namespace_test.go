package lisp_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/kaa-lang/kaa/lisp"
	"github.com/kaa-lang/kaa/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, src := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(src), 0644))
	}
	return dir
}

func newSession(t *testing.T, config ...lisp.Config) (*lisp.Session, *lisp.Namespace, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	config = append([]lisp.Config{
		lisp.WithReader(parser.NewReader()),
		lisp.WithStdout(&out),
	}, config...)
	s, err := lisp.NewSession(config...)
	require.NoError(t, err)
	return s, s.NewNamespace(lisp.DefaultNamespace), &out
}

func TestImportNamespace(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"util/text.lisp": `
(def greeting "hello")
(def greet (lambda (name) (str greeting ", " name)))
(def secret 42)
`,
		"app.lisp": `
(import util.text as txt)
(def run (lambda () (txt/greet "app")))
`,
	})
	s, ns, _ := newSession(t, lisp.WithSearchPath(dir))

	tests := []struct {
		src    string
		result string
	}{
		{`(import (greet) from util.text)`, "nil"},
		{`(greet "you")`, `"hello, you"`},
		{`(util.text/secret)`, `test:1:1: TypeError: int is not callable: 42`},
		{`util.text/secret`, "42"},
		{`(import util.text t)`, "nil"},
		{`t/greeting`, `"hello"`},
		{`(import * from app)`, "nil"},
		{`(run)`, `"hello, app"`},
		{`txt/greet`, "test:1:1: unbound symbol: txt/greet"},
		{`(import (nothing) from util.text)`, "test:1:1: cannot import util.text: namespace does not define nothing"},
		{`(import .relative)`, "test:1:1: cannot import .relative: relative imports are not supported"},
	}
	for _, test := range tests {
		v, err := s.LoadString(ns, "test", test.src)
		var result string
		if err != nil {
			result = err.Error()
		} else {
			result = lisp.Format(v)
		}
		assert.Equal(t, test.result, result, test.src)
	}

	util, ok := s.Namespace("util.text")
	require.True(t, ok)
	names := make([]string, 0)
	for _, sym := range util.Exportables() {
		names = append(names, sym.String())
	}
	assert.Equal(t, []string{"util.text/greet", "util.text/greeting", "util.text/secret"}, names)

	app, ok := s.Namespace("app")
	require.True(t, ok)
	for _, sym := range app.Exportables() {
		assert.Equal(t, "app", sym.Namespace)
		assert.NotEqual(t, "greet", sym.Name)
	}
}

func TestImportLoadsOnce(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"noisy.lisp": `(println "loading noisy") (def x 1)`,
	})
	s, ns, out := newSession(t, lisp.WithSearchPath(dir))
	_, err := s.LoadString(ns, "test", "(import noisy) (import noisy as n) n/x")
	require.NoError(t, err)
	assert.Equal(t, "loading noisy\n", out.String())
}

func TestImportSearchPathOrder(t *testing.T) {
	first := writeFiles(t, map[string]string{"m.lisp": `(def which "first")`})
	second := writeFiles(t, map[string]string{"m.lisp": `(def which "second")`, "n.lisp": `(def which "n")`})
	s, ns, _ := newSession(t, lisp.WithSearchPath(first, second))
	v, err := s.LoadString(ns, "test", "(import m) (import n) (list m/which n/which)")
	require.NoError(t, err)
	assert.Equal(t, `("first" "n")`, lisp.Format(v))
}

func TestImportCircular(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.lisp": "(import b)\n(def x 1)",
		"b.lisp": "(import a)\n(def y 2)",
	})
	s, ns, _ := newSession(t, lisp.WithSearchPath(dir))
	_, err := s.LoadString(ns, "test", "(import a)")
	if assert.Error(t, err) {
		assert.Equal(t, lisp.ImportErrorType, lisp.ExceptionTypeOf(err))
		assert.Contains(t, err.Error(), "cannot import a: circular import")
	}
	_, ok := s.Namespace("a")
	assert.False(t, ok)
	_, ok = s.Namespace("b")
	assert.False(t, ok)
}

func TestImportLoadError(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"broken.lisp": "(def x (undefined-fn 1))",
	})
	s, ns, _ := newSession(t, lisp.WithSearchPath(dir))
	_, err := s.LoadString(ns, "test", "(import broken)")
	if assert.Error(t, err) {
		assert.Equal(t, lisp.UnboundSymbolType, lisp.ExceptionTypeOf(err))
		assert.Contains(t, err.Error(), "broken.lisp:1:9: unbound symbol: undefined-fn")
	}
	_, ok := s.Namespace("broken")
	assert.False(t, ok)
}

func TestResolve(t *testing.T) {
	s, ns, _ := newSession(t)
	mod := lisp.NewModule("host").Set("a", 1)
	s.RegisterModule(mod)
	_, err := s.LoadString(ns, "test", "(import (a) from go/host as h) (def b 2)")
	require.NoError(t, err)

	tests := []struct {
		sym      string
		resolved string
	}{
		{"a", "host/a"},
		{"b", "main/b"},
		{"c", "main/c"},
		{"h/a", "host/a"},
		{"main/b", "main/b"},
		{"first", "kaa.core/first"},
		{"other/x", "other/x"},
	}
	for _, test := range tests {
		sym := ns.Resolve(lisp.ParseSymbol(test.sym))
		assert.Equal(t, test.resolved, sym.String(), test.sym)
		assert.Equal(t, sym.String(), ns.Resolve(sym).String(), test.sym)
	}
	v, ok := ns.Lookup(ns.Resolve(lisp.ParseSymbol("h/a")))
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestResolveAliasNamesImport(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"b.lisp": "(def foo 1)\n",
		"c.lisp": "(def foo 2)\n",
	})
	s, ns, _ := newSession(t, lisp.WithSearchPath(dir))
	_, err := s.LoadString(ns, "test", "(import (foo) b as c) (import c as b)")
	require.NoError(t, err)

	for _, name := range []string{"b/foo", "c/foo", "foo"} {
		sym := ns.Resolve(lisp.ParseSymbol(name))
		assert.Equal(t, sym.String(), ns.Resolve(sym).String(), name)
	}
	tests := []struct {
		src    string
		result int
	}{
		{"b/foo", 1},
		{"c/foo", 2},
		{"foo", 1},
	}
	for _, test := range tests {
		v, err := s.LoadString(ns, "test", test.src)
		if assert.NoError(t, err, test.src) {
			assert.Equal(t, test.result, v, test.src)
		}
	}
}

func TestWithoutCore(t *testing.T) {
	s, _, _ := newSession(t)
	bare := s.NewNamespace("bare", lisp.WithoutCore())
	_, err := s.LoadString(bare, "test", "(first '(1))")
	assert.EqualError(t, err, "test:1:2: unbound symbol: first")
	v, err := s.LoadString(bare, "test", "(kaa.core/first '(1))")
	assert.EqualError(t, err, "test:1:2: unbound symbol: kaa.core/first")
	assert.Nil(t, v)
	v, err = s.LoadString(bare, "test", "(import kaa.core) (kaa.core/first '(1))")
	assert.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestDefineForeignNamespace(t *testing.T) {
	s, ns, _ := newSession(t)
	err := ns.Define(lisp.NewSymbol("x", "other"), 1)
	assert.EqualError(t, err, "ValueError: cannot define other/x in namespace main")
	assert.NoError(t, ns.Define(lisp.NewSymbol("x", "main"), 1))
	assert.True(t, ns.Defined("x"))
	assert.Contains(t, ns.Imported(), lisp.NewSymbol("first", lisp.CoreNamespace))
	assert.Empty(t, s.NewNamespace("bare", lisp.WithoutCore()).Imported())
	core, ok := s.Namespace(lisp.CoreNamespace)
	assert.True(t, ok)
	assert.Equal(t, core, s.Core())
	assert.Equal(t, "<namespace kaa.core>", core.String())
}
