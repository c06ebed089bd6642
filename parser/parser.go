/*
Package parser provides the lisp reader used by kaa sessions.

	expr     := '(' <expr>* ')' | <quoted> | <number> | <string> | <symbol>
	quoted   := ( "'" | '`' | '~' | '~@' ) <expr>
	number   := /[+-]?[0-9]+/ <fraction>? <exponent>?
	fraction := '.' /[0-9]+/
	exponent := /[eE][+-]?[0-9]+/
	string   := '"' <strcontent> '"'
	symbol   := <word> | <word> '/' <word>

Comments begin with ';' and run to the end of the line.
*/
package parser

import (
	"github.com/kaa-lang/kaa/lisp"
	"github.com/kaa-lang/kaa/parser/rdparser"
)

// NewReader returns a new lisp.Reader.
func NewReader() lisp.Reader {
	return rdparser.NewReader()
}
