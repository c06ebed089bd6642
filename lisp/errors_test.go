package lisp_test

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kaa-lang/kaa/lisp"
	"github.com/kaa-lang/kaa/lisp/lisplib"
	"github.com/stretchr/testify/require"
	"gotest.tools/v3/golden"
)

// TestErrorMessages checks the rendering of unhandled errors against golden
// files.  Run with -update to rewrite them.
func TestErrorMessages(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "errors", "*.lisp"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, path := range files {
		name := strings.TrimSuffix(filepath.Base(path), lisp.SourceExt)
		t.Run(name, func(t *testing.T) {
			output := runErrorFile(t, path)
			golden.Assert(t, output, filepath.Join("errors", name+".golden"))
		})
	}
}

// runErrorFile loads path and returns its output followed by the error it
// fails with.
func runErrorFile(t *testing.T, path string) string {
	s, ns, out := newSession(t, lisp.WithLoader(lisplib.LoadLibrary))
	_, err := s.LoadFile(ns, path)
	require.Error(t, err, "%s loaded without error", path)

	var buf bytes.Buffer
	buf.Write(out.Bytes())
	buf.WriteString(err.Error())
	buf.WriteString("\n")
	var exc *lisp.Exception
	if errors.As(err, &exc) && exc.Stack != nil && exc.Stack.Height() > 0 {
		_, _ = exc.Stack.DebugPrint(&buf)
	}
	return buf.String()
}
