package libstring

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/kaa-lang/kaa/lisp"
)

// DefaultModuleName is the module name used by LoadModule.
const DefaultModuleName = "strings"

// LoadModule registers the strings module with s.
func LoadModule(s *lisp.Session) error {
	s.RegisterModule(Module())
	return nil
}

// Module returns a new strings module.
func Module() *lisp.Module {
	return lisp.NewModule(DefaultModuleName).
		Set("format", &lisp.Builtin{Name: "format", Min: 1, Max: -1, Fn: builtinFormat}).
		Func("Contains", strings.Contains).
		Func("Count", strings.Count).
		Func("EqualFold", strings.EqualFold).
		Func("Fields", strings.Fields).
		Func("HasPrefix", strings.HasPrefix).
		Func("HasSuffix", strings.HasSuffix).
		Func("Index", strings.Index).
		Func("Join", strings.Join).
		Func("LastIndex", strings.LastIndex).
		Func("Repeat", strings.Repeat).
		Func("ReplaceAll", strings.ReplaceAll).
		Func("Split", strings.Split).
		Func("ToLower", strings.ToLower).
		Func("ToUpper", strings.ToUpper).
		Func("Trim", strings.Trim).
		Func("TrimPrefix", strings.TrimPrefix).
		Func("TrimSpace", strings.TrimSpace).
		Func("TrimSuffix", strings.TrimSuffix)
}

// (format FORMAT-STRING VALUE...)
//
// Directives are {} for the next value and {N} for the value at index N.
// The sequences {{ and }} produce literal braces.
func builtinFormat(ev *lisp.Evaluator, args []lisp.Value) (lisp.Value, error) {
	format, ok := args[0].(string)
	if !ok {
		return nil, lisp.TypeErrorType.Errorf("format: first argument is not a string: %s", lisp.TypeName(args[0]))
	}
	fvals := args[1:]
	parts, err := parseFormatString(format)
	if err != nil {
		return nil, lisp.ValueErrorType.Errorf("format: %v", err)
	}
	var buf bytes.Buffer
	anonIndex := 0
	for _, p := range parts {
		if !p.directive {
			buf.WriteString(p.text)
			continue
		}
		i := anonIndex
		if p.text == "" {
			anonIndex++
		} else {
			i, err = strconv.Atoi(p.text)
			if err != nil || i < 0 {
				return nil, lisp.ValueErrorType.Errorf("format: invalid formatting directive: {%s}", p.text)
			}
		}
		if i >= len(fvals) {
			return nil, lisp.ValueErrorType.New("format: too many formatting directives for supplied values")
		}
		buf.WriteString(lisp.Display(fvals[i]))
	}
	return buf.String(), nil
}

type formatPart struct {
	directive bool
	text      string
}

func parseFormatString(f string) ([]formatPart, error) {
	var parts []formatPart
	tokens := tokenizeFormatString(f)
	for len(tokens) > 0 {
		tok := tokens[0]
		switch tok.typ {
		case formatText:
			parts = append(parts, formatPart{text: tok.text})
			tokens = tokens[1:]
			continue
		case formatClose:
			if len(tokens) < 2 || tokens[1].typ != formatClose {
				return nil, fmt.Errorf("unexpected closing brace '}' outside of formatting directive")
			}
			parts = append(parts, formatPart{text: "}"})
			tokens = tokens[2:]
			continue
		}
		if len(tokens) < 2 {
			return nil, fmt.Errorf("unclosed formatting directive")
		}
		switch tokens[1].typ {
		case formatOpen:
			parts = append(parts, formatPart{text: "{"})
			tokens = tokens[2:]
		case formatClose:
			parts = append(parts, formatPart{directive: true})
			tokens = tokens[2:]
		case formatText:
			if len(tokens) < 3 || tokens[2].typ != formatClose {
				return nil, fmt.Errorf("unclosed formatting directive")
			}
			text := strings.TrimSpace(tokens[1].text)
			parts = append(parts, formatPart{directive: true, text: text})
			tokens = tokens[3:]
		}
	}
	return parts, nil
}

func tokenizeFormatString(f string) []formatToken {
	var tokens []formatToken
	for f != "" {
		i := strings.IndexAny(f, "{}")
		if i < 0 {
			tokens = append(tokens, formatToken{formatText, f})
			break
		}
		if i > 0 {
			tokens = append(tokens, formatToken{formatText, f[:i]})
			f = f[i:]
		}
		if f[0] == '{' {
			tokens = append(tokens, formatToken{formatOpen, "{"})
		} else {
			tokens = append(tokens, formatToken{formatClose, "}"})
		}
		f = f[1:]
	}
	return tokens
}

type formatTokenType uint

const (
	formatText formatTokenType = iota
	formatOpen
	formatClose
)

type formatToken struct {
	typ  formatTokenType
	text string
}
