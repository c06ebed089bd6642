package token

import "fmt"

// Token is a lexical token read from kaa source text.
type Token struct {
	Type   Type
	Text   string
	Source *Location
}

// Type is the lexical class of a Token.
type Type uint

// Type constants used by the kaa lexer and parser.
const (
	INVALID Type = iota
	ERROR
	EOF

	// Atomic expressions & literals
	SYMBOL
	INT
	FLOAT
	STRING

	COMMENT

	// Reader macros
	QUOTE
	QUASIQUOTE
	UNQUOTE
	UNQUOTE_SPLICE

	// Delimiters
	PAREN_L
	PAREN_R

	numTokenTypes
)

// UnexpectedEOF is the text of an ERROR token produced when input ends in
// the middle of a token.
const UnexpectedEOF = "unexpected EOF"

func (typ Type) String() string {
	typeStrings := [numTokenTypes]string{
		INVALID:        "invalid",
		ERROR:          "error",
		EOF:            "EOF",
		SYMBOL:         "symbol",
		INT:            "int",
		FLOAT:          "float",
		STRING:         "string",
		COMMENT:        ";",
		QUOTE:          "'",
		QUASIQUOTE:     "`",
		UNQUOTE:        "~",
		UNQUOTE_SPLICE: "~@",
		PAREN_L:        "(",
		PAREN_R:        ")",
	}
	if typ >= numTokenTypes {
		return typeStrings[INVALID]
	}
	return typeStrings[typ]
}

// Location is a position in a named source stream.
type Location struct {
	File string
	Pos  int
	Line int // line number (starting at 1 when tracked)
	Col  int // line column number (starting at 1 when tracked)
}

func (loc *Location) String() string {
	if loc == nil {
		return "<unknown>"
	}
	switch {
	case loc.Line == 0:
		return fmt.Sprintf("%s[%d]", loc.File, loc.Pos)
	case loc.Col == 0:
		return fmt.Sprintf("%s:%d", loc.File, loc.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Col)
	}
}
