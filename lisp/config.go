package lisp

import (
	"io"
	"log/slog"
)

// Config is a function that configures a Session.
type Config func(s *Session) error

// WithMaxDepth returns a Config that prevents the call stack of a session
// from growing beyond n frames.  Exceeding the limit raises RecursionError.
// A non-positive n removes the limit.
func WithMaxDepth(n int) Config {
	return func(s *Session) error {
		s.Stack.MaxHeight = n
		return nil
	}
}

// WithReader returns a Config that makes a session use r to parse source
// streams.  There is no default Reader for a session.
func WithReader(r Reader) Config {
	return func(s *Session) error {
		s.Reader = r
		return nil
	}
}

// WithSearchPath returns a Config that appends dirs to the directories
// searched for namespace source files.
func WithSearchPath(dirs ...string) Config {
	return func(s *Session) error {
		s.SearchPath = append(s.SearchPath, dirs...)
		return nil
	}
}

// WithStdout returns a Config that makes print functions write to w instead
// of the default, os.Stdout.
func WithStdout(w io.Writer) Config {
	return func(s *Session) error {
		s.Stdout = w
		return nil
	}
}

// WithStderr returns a Config that makes a session write diagnostic output to
// w instead of the default, os.Stderr.
func WithStderr(w io.Writer) Config {
	return func(s *Session) error {
		s.Stderr = w
		return nil
	}
}

// WithLogger returns a Config that makes a session log to logger.  By default
// a session discards its logs.
func WithLogger(logger *slog.Logger) Config {
	return func(s *Session) error {
		s.Logger = logger
		return nil
	}
}

// WithModule returns a Config that registers host modules with a session.
func WithModule(mods ...*Module) Config {
	return func(s *Session) error {
		for _, m := range mods {
			s.RegisterModule(m)
		}
		return nil
	}
}

// WithLoader returns a Config that runs fn against the session, typically to
// load a library of lisp code into the core namespace.
func WithLoader(fn Loader) Config {
	return func(s *Session) error {
		return fn(s)
	}
}

// Loader is a function that loads code into a Session.
type Loader func(s *Session) error
