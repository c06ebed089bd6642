package libregexp

import (
	"regexp"

	"github.com/kaa-lang/kaa/lisp"
)

// DefaultModuleName is the module name used by LoadModule.
const DefaultModuleName = "regexp"

// LoadModule registers the regexp module with s.
func LoadModule(s *lisp.Session) error {
	s.RegisterModule(Module())
	return nil
}

// Module returns a new regexp module.  Functions taking a regular expression
// accept either a compiled expression or a pattern string.
func Module() *lisp.Module {
	return lisp.NewModule(DefaultModuleName).
		FuncAs("compile", Compile).
		FuncAs("pattern", Pattern).
		FuncAs("match?", IsMatch).
		FuncAs("find", Find).
		FuncAs("find-all", FindAll).
		FuncAs("replace-all", ReplaceAll)
}

// Compile parses a regular expression.
func Compile(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, lisp.ValueErrorType.Errorf("invalid regexp: %v", err)
	}
	return re, nil
}

func get(v lisp.Value) (*regexp.Regexp, error) {
	switch v := v.(type) {
	case *regexp.Regexp:
		return v, nil
	case string:
		return Compile(v)
	}
	return nil, lisp.TypeErrorType.Errorf("argument is not a regexp: %s", lisp.TypeName(v))
}

func Pattern(re *regexp.Regexp) string {
	return re.String()
}

func IsMatch(re lisp.Value, text string) (bool, error) {
	r, err := get(re)
	if err != nil {
		return false, err
	}
	return r.MatchString(text), nil
}

// Find returns the leftmost match of re in text, or nil.
func Find(re lisp.Value, text string) (lisp.Value, error) {
	r, err := get(re)
	if err != nil {
		return nil, err
	}
	loc := r.FindStringIndex(text)
	if loc == nil {
		return nil, nil
	}
	return text[loc[0]:loc[1]], nil
}

func FindAll(re lisp.Value, text string) ([]string, error) {
	r, err := get(re)
	if err != nil {
		return nil, err
	}
	return r.FindAllString(text, -1), nil
}

func ReplaceAll(re lisp.Value, text, repl string) (string, error) {
	r, err := get(re)
	if err != nil {
		return "", err
	}
	return r.ReplaceAllString(text, repl), nil
}
