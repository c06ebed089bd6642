package lisp

import (
	"fmt"
	"io"

	"github.com/kaa-lang/kaa/parser/token"
)

// CallStack is the stack of lisp function applications in a Session.
type CallStack struct {
	Frames []CallFrame
	// MaxHeight limits the height of the stack.  A non-positive MaxHeight
	// means no limit.
	MaxHeight int
}

// CallFrame is one frame in the CallStack
type CallFrame struct {
	Name      string
	Namespace string
	Source    *token.Location
}

// QualifiedFunName returns the qualified name of the function called in f.
func (f *CallFrame) QualifiedFunName() string {
	if f == nil {
		return ""
	}
	name := f.Name
	if name == "" {
		name = "<lambda>"
	}
	if f.Namespace == "" {
		return name
	}
	return f.Namespace + "/" + name
}

// Copy creates a copy of the current stack so that it can be attached to an
// exception.
func (s *CallStack) Copy() *CallStack {
	frames := make([]CallFrame, len(s.Frames))
	copy(frames, s.Frames)
	return &CallStack{Frames: frames, MaxHeight: s.MaxHeight}
}

// Top returns the CallFrame at the top of the stack or nil if none exists.
func (s *CallStack) Top() *CallFrame {
	if s == nil || len(s.Frames) == 0 {
		return nil
	}
	return &s.Frames[len(s.Frames)-1]
}

// Height returns the number of frames on the stack.
func (s *CallStack) Height() int {
	return len(s.Frames)
}

// Push adds a frame to s.  Push returns a RecursionError exception, leaving
// the stack unchanged, if the frame would exceed s.MaxHeight.
func (s *CallStack) Push(f CallFrame) error {
	if s.MaxHeight > 0 && len(s.Frames) >= s.MaxHeight {
		exc := RecursionErrorType.Errorf("maximum recursion depth exceeded (%d)", s.MaxHeight)
		exc.Source = f.Source
		return exc
	}
	s.Frames = append(s.Frames, f)
	return nil
}

// Pop removes the top CallFrame from the stack and returns it.  Pop panics if
// the stack is empty.
func (s *CallStack) Pop() CallFrame {
	if len(s.Frames) < 1 {
		panic("pop called on an empty stack")
	}
	f := s.Frames[len(s.Frames)-1]
	s.Frames[len(s.Frames)-1] = CallFrame{}
	s.Frames = s.Frames[:len(s.Frames)-1]
	return f
}

// Reset discards every frame.  Front ends call Reset before reusing a session
// after an evaluation was abandoned.
func (s *CallStack) Reset() {
	s.Frames = s.Frames[:0]
}

// DebugPrint prints s
func (s *CallStack) DebugPrint(w io.Writer) (int, error) {
	n, err := fmt.Fprintf(w, "Stack Trace [%d frames -- entrypoint last]:\n", len(s.Frames))
	if err != nil {
		return n, err
	}
	indent := "  "
	for i := len(s.Frames) - 1; i >= 0; i-- {
		f := s.Frames[i]
		var loc string
		if f.Source != nil {
			loc = f.Source.String() + ": "
		}
		_n, err := fmt.Fprintf(w, "%sheight %d: %s%s\n", indent, i, loc, f.QualifiedFunName())
		n += _n
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
