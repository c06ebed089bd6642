// Package repl implements the interactive kaa prompt.
package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/chzyer/readline"
	"github.com/kaa-lang/kaa/lisp"
	"github.com/kaa-lang/kaa/parser/rdparser"
)

// LastResult is the name bound to the value of the most recent expression.
const LastResult = "^"

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Option configures RunRepl.
type Option func(r *repl)

// WithStdout makes the repl print results to w instead of os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(r *repl) {
		r.stdout = w
	}
}

// WithStderr makes the repl report errors to w instead of os.Stderr.
func WithStderr(w io.Writer) Option {
	return func(r *repl) {
		r.stderr = w
	}
}

// RunRepl runs an interactive prompt evaluating expressions in ns until the
// input is closed.  Errors are reported and the session stays usable.
func RunRepl(prompt string, ns *lisp.Namespace, opts ...Option) error {
	r := newRepl(ns, opts...)
	rl, err := readline.NewEx(&readline.Config{
		Prompt: promptStyle.Render(prompt),
		Stdout: r.stdout,
		Stderr: r.stderr,
	})
	if err != nil {
		return err
	}
	defer rl.Close()
	contPrompt := strings.Repeat(" ", len(prompt)) // prompt had better be ascii...

	var buf []string
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			buf = nil
			rl.SetPrompt(promptStyle.Render(prompt))
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		buf = append(buf, line)
		src := strings.Join(buf, "\n")
		if strings.TrimSpace(src) == "" {
			buf = nil
			continue
		}
		if !r.eval(src) {
			rl.SetPrompt(contPrompt)
			continue
		}
		buf = nil
		rl.SetPrompt(promptStyle.Render(prompt))
	}
}

type repl struct {
	ns     *lisp.Namespace
	env    *lisp.Environment
	stdout io.Writer
	stderr io.Writer
}

func newRepl(ns *lisp.Namespace, opts ...Option) *repl {
	r := &repl{
		ns:     ns,
		env:    lisp.NewEnvironment(map[string]lisp.Value{LastResult: nil}),
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, fn := range opts {
		fn(r)
	}
	return r
}

// eval reads and evaluates src, printing each result.  It returns false
// without evaluating anything when src ends inside an expression.
func (r *repl) eval(src string) bool {
	s := r.ns.Session()
	forms, err := s.Reader.Read("repl", strings.NewReader(src))
	if rdparser.IsIncomplete(err) {
		return false
	}
	if err != nil {
		r.errln(err)
		return true
	}
	ev := lisp.NewEvaluator(r.ns, r.env)
	for _, form := range forms {
		v, err := ev.Evaluate(form)
		if err != nil {
			s.Stack.Reset()
			r.errln(err)
			var exc *lisp.Exception
			if errors.As(err, &exc) && exc.Stack != nil && exc.Stack.Height() > 0 {
				_, _ = exc.Stack.DebugPrint(r.stderr)
			}
			return true
		}
		_ = r.env.Set(LastResult, v)
		fmt.Fprintln(r.stdout, lisp.Format(v))
	}
	return true
}

func (r *repl) errln(err error) {
	fmt.Fprintln(r.stderr, errorStyle.Render(err.Error()))
}
