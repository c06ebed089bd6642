package libtesting

import (
	"fmt"

	"github.com/kaa-lang/kaa/lisp"
)

// DefaultModuleName is the module name used by LoadModule.
const DefaultModuleName = "testing"

// DefaultSuiteAttr is the module attribute holding the session's TestSuite.
const DefaultSuiteAttr = "test-suite"

// LoadModule registers a testing module with its own TestSuite with s.
func LoadModule(s *lisp.Session) error {
	s.RegisterModule(NewTestSuite().Module())
	return nil
}

// TestSuite is an ordered set of named tests.
type TestSuite struct {
	tests map[string]*Test
	order []string
}

func NewTestSuite() *TestSuite {
	return &TestSuite{
		tests: make(map[string]*Test),
	}
}

func (s *TestSuite) Add(t *Test) error {
	if s.tests[t.Name] != nil {
		return lisp.ValueErrorType.Errorf("test with the same name already defined: %v", t.Name)
	}
	s.order = append(s.order, t.Name)
	s.tests[t.Name] = t
	return nil
}

func (s *TestSuite) Len() int {
	return len(s.order)
}

func (s *TestSuite) Test(i int) *Test {
	return s.tests[s.order[i]]
}

// Module returns a testing module that registers tests with s.
func (s *TestSuite) Module() *lisp.Module {
	return lisp.NewModule(DefaultModuleName).
		Set(DefaultSuiteAttr, s).
		Set("register", &lisp.Builtin{Name: "register", Min: 2, Max: 2, Fn: s.builtinRegister}).
		Set("assert", &lisp.Builtin{Name: "assert", Min: 1, Max: 2, Fn: builtinAssert}).
		Set("assert-equal", &lisp.Builtin{Name: "assert-equal", Min: 2, Max: 2, Fn: builtinAssertEqual}).
		Set("assert-raises", &lisp.Builtin{Name: "assert-raises", Min: 2, Max: 2, Fn: builtinAssertRaises})
}

// (register NAME FUN)
func (s *TestSuite) builtinRegister(ev *lisp.Evaluator, args []lisp.Value) (lisp.Value, error) {
	name, ok := args[0].(string)
	if !ok {
		return nil, lisp.TypeErrorType.Errorf("register: first argument is not a string: %s", lisp.TypeName(args[0]))
	}
	err := s.Add(&Test{Name: name, Fun: args[1], Namespace: ev.Namespace()})
	if err != nil {
		return nil, err
	}
	return nil, nil
}

// (assert CONDITION [MESSAGE])
func builtinAssert(ev *lisp.Evaluator, args []lisp.Value) (lisp.Value, error) {
	if lisp.Truthy(args[0]) {
		return nil, nil
	}
	if len(args) > 1 {
		return nil, lisp.AssertionErrorType.New(lisp.Display(args[1]))
	}
	return nil, lisp.AssertionErrorType.New("assertion failed")
}

// (assert-equal EXPECTED ACTUAL)
func builtinAssertEqual(ev *lisp.Evaluator, args []lisp.Value) (lisp.Value, error) {
	if lisp.Equal(args[0], args[1]) {
		return nil, nil
	}
	return nil, lisp.AssertionErrorType.Errorf("expected %s, got %s", lisp.Format(args[0]), lisp.Format(args[1]))
}

// (assert-raises EXCEPTION-TYPE FUN)
func builtinAssertRaises(ev *lisp.Evaluator, args []lisp.Value) (lisp.Value, error) {
	typ, ok := args[0].(*lisp.ExceptionType)
	if !ok {
		return nil, lisp.TypeErrorType.Errorf("assert-raises: first argument is not an exception type: %s", lisp.TypeName(args[0]))
	}
	_, err := ev.Apply(args[1], nil)
	if err == nil {
		return nil, lisp.AssertionErrorType.Errorf("expected %s to be raised", typ.Name)
	}
	if got := lisp.ExceptionTypeOf(err); !got.IsA(typ) {
		return nil, lisp.AssertionErrorType.Errorf("expected %s to be raised, got %s: %v", typ.Name, got.Name, err)
	}
	return nil, nil
}

// Test is a registered test.  Fun is called without arguments.
type Test struct {
	Name      string
	Fun       lisp.Value
	Namespace *lisp.Namespace
}

// Run calls the test function and returns any error it raises.
func (t *Test) Run() error {
	_, err := lisp.NewEvaluator(t.Namespace, nil).Apply(t.Fun, nil)
	return err
}

// SessionTestSuite returns the TestSuite of the testing module registered
// with s, or nil if there is none.
func SessionTestSuite(s *lisp.Session) *TestSuite {
	mod, err := s.Module(DefaultModuleName)
	if err != nil {
		return nil
	}
	v, _ := mod.Attr(DefaultSuiteAttr)
	suite, _ := v.(*TestSuite)
	return suite
}

func (s *TestSuite) String() string {
	return fmt.Sprintf("<test-suite %d>", len(s.order))
}
