package rdparser

import (
	"fmt"
	"io"
	"strconv"

	"github.com/kaa-lang/kaa/lisp"
	"github.com/kaa-lang/kaa/parser/lexer"
	"github.com/kaa-lang/kaa/parser/token"
)

type reader struct {
}

// NewReader returns a lisp.Reader to use in a lisp.Session.
func NewReader() lisp.Reader {
	return &reader{}
}

// Read implements lisp.Reader.
func (*reader) Read(name string, r io.Reader) ([]lisp.Value, error) {
	s := token.NewScanner(name, r)
	p := New(s)
	return p.ParseProgram()
}

// SyntaxError is returned when source text cannot be read.  Incomplete is true
// when the text ended before an expression was closed, so that an interactive
// caller can ask for more input.
type SyntaxError struct {
	Source     *token.Location
	Msg        string
	Incomplete bool
}

func (err *SyntaxError) Error() string {
	if err.Source == nil {
		return err.Msg
	}
	return fmt.Sprintf("%v: %s", err.Source, err.Msg)
}

// IsIncomplete reports whether err signals a truncated expression.
func IsIncomplete(err error) bool {
	serr, ok := err.(*SyntaxError)
	return ok && serr.Incomplete
}

// Parser is a recursive descent lisp parser.
type Parser struct {
	lex  *lexer.Lexer
	curr *token.Token
	peek *token.Token
}

// New initializes and returns a new Parser that reads tokens from scanner.
func New(scanner *token.Scanner) *Parser {
	p := &Parser{
		lex: lexer.New(scanner),
	}
	// Setup the peek token so the parser is in the proper state when the
	// first parse function is called.
	p.ReadToken()
	return p
}

// ParseProgram parses every expression remaining in the token stream.
func (p *Parser) ParseProgram() ([]lisp.Value, error) {
	var exprs []lisp.Value
	for {
		p.skipComments()
		if p.expect(token.EOF) {
			break
		}
		expr, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

// ParseExpression parses a single expression.
func (p *Parser) ParseExpression() (lisp.Value, error) {
	p.skipComments()
	switch p.PeekType() {
	case token.INT:
		return p.ParseLiteralInt()
	case token.FLOAT:
		return p.ParseLiteralFloat()
	case token.STRING:
		return p.ParseLiteralString()
	case token.QUOTE:
		return p.ParseQuote()
	case token.QUASIQUOTE:
		return p.ParseQuasiquote()
	case token.UNQUOTE, token.UNQUOTE_SPLICE:
		return p.ParseUnquote()
	case token.SYMBOL:
		return p.ParseSymbol()
	case token.PAREN_L:
		return p.ParseList()
	case token.EOF:
		p.ReadToken()
		return nil, p.incomplete("unexpected end of input")
	case token.ERROR:
		p.ReadToken()
		if p.Token().Text == token.UnexpectedEOF {
			return nil, p.incomplete(token.UnexpectedEOF)
		}
		return nil, p.errorf("%s", p.Token().Text)
	case token.INVALID:
		p.ReadToken()
		return nil, p.errorf("%s", p.Token().Text)
	default:
		p.ReadToken()
		return nil, p.errorf("unexpected %s", p.Token().Type)
	}
}

// ParseLiteralInt parses an integer literal.
func (p *Parser) ParseLiteralInt() (lisp.Value, error) {
	if !p.expect(token.INT) {
		return nil, p.errorf("invalid integer literal: %v", p.PeekType())
	}
	text := p.Token().Text
	x, err := strconv.Atoi(text)
	if err != nil {
		return nil, p.errorf("integer literal overflows int: %v", text)
	}
	return x, nil
}

// ParseLiteralFloat parses a floating point literal.
func (p *Parser) ParseLiteralFloat() (lisp.Value, error) {
	if !p.expect(token.FLOAT) {
		return nil, p.errorf("invalid float literal: %v", p.PeekType())
	}
	text := p.Token().Text
	x, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, p.errorf("invalid floating point literal: %v", text)
	}
	return x, nil
}

// ParseLiteralString parses a double-quoted string literal.
func (p *Parser) ParseLiteralString() (lisp.Value, error) {
	if !p.expect(token.STRING) {
		return nil, p.errorf("invalid string literal: %v", p.PeekType())
	}
	text := p.Token().Text
	s, err := strconv.Unquote(text)
	if err != nil {
		return nil, p.errorf("invalid string literal: %v", text)
	}
	return s, nil
}

// ParseQuote parses 'EXPR as (quote EXPR).
func (p *Parser) ParseQuote() (lisp.Value, error) {
	if !p.expect(token.QUOTE) {
		return nil, p.errorf("invalid quote: %v", p.PeekType())
	}
	return p.wrap(lisp.SymQuote)
}

// ParseUnquote parses ~EXPR and ~@EXPR.  Outside of a quasiquoted expression
// the result is an ordinary call to unquote or unquote-splice.
func (p *Parser) ParseUnquote() (lisp.Value, error) {
	if p.expect(token.UNQUOTE) {
		return p.wrap(symUnquote)
	}
	if p.expect(token.UNQUOTE_SPLICE) {
		return p.wrap(symUnquoteSplice)
	}
	return nil, p.errorf("invalid unquote: %v", p.PeekType())
}

// ParseQuasiquote parses `EXPR and expands it into list construction calls.
func (p *Parser) ParseQuasiquote() (lisp.Value, error) {
	if !p.expect(token.QUASIQUOTE) {
		return nil, p.errorf("invalid quasiquote: %v", p.PeekType())
	}
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return expandQuasiquote(expr), nil
}

func (p *Parser) wrap(head string) (lisp.Value, error) {
	meta := p.meta()
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	sym := lisp.NewSymbol(head, "")
	sym.Meta = meta
	return lisp.NewList([]lisp.Value{sym, expr}, meta), nil
}

// ParseSymbol parses a symbol, splitting a namespace qualifier ns/name and
// recognizing the literals true, false and nil.
func (p *Parser) ParseSymbol() (lisp.Value, error) {
	if !p.expect(token.SYMBOL) {
		return nil, p.errorf("invalid symbol: %v", p.PeekType())
	}
	text := p.Token().Text
	switch text {
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "nil":
		return nil, nil
	}
	sym := lisp.ParseSymbol(text)
	sym.Meta = p.meta()
	return sym, nil
}

// ParseList parses a parenthesized list.
func (p *Parser) ParseList() (lisp.Value, error) {
	if !p.expect(token.PAREN_L) {
		return nil, p.errorf("invalid list: %v", p.PeekType())
	}
	open := p.Token()
	meta := p.meta()
	var items []lisp.Value
	for {
		p.skipComments()
		if p.expect(token.EOF) {
			return nil, &SyntaxError{
				Source:     open.Source,
				Msg:        "unmatched " + open.Text,
				Incomplete: true,
			}
		}
		if p.expect(token.PAREN_R) {
			break
		}
		x, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		items = append(items, x)
	}
	return lisp.NewList(items, meta), nil
}

// ReadToken advances the token stream.
func (p *Parser) ReadToken() *token.Token {
	p.curr = p.peek
	p.peek = p.lex.NextToken()
	return p.curr
}

// Token returns the last token read.
func (p *Parser) Token() *token.Token {
	return p.curr
}

// Peek returns the next token without consuming it.
func (p *Parser) Peek() *token.Token {
	return p.peek
}

// PeekType returns the type of the next token.
func (p *Parser) PeekType() token.Type {
	return p.peek.Type
}

func (p *Parser) skipComments() {
	for p.expect(token.COMMENT) {
	}
}

func (p *Parser) meta() *lisp.Meta {
	return &lisp.Meta{Source: p.Token().Source}
}

func (p *Parser) expect(typ ...token.Type) bool {
	peekType := p.peek.Type
	for _, typ := range typ {
		if typ == peekType {
			p.ReadToken()
			return true
		}
	}
	return false
}

func (p *Parser) errorf(format string, v ...interface{}) error {
	var src *token.Location
	if p.Token() != nil {
		src = p.Token().Source
	}
	return &SyntaxError{Source: src, Msg: fmt.Sprintf(format, v...)}
}

func (p *Parser) incomplete(msg string) error {
	err := p.errorf("%s", msg).(*SyntaxError)
	err.Incomplete = true
	return err
}
