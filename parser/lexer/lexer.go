package lexer

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/kaa-lang/kaa/parser/token"
)

const miscWordRunes = "0123456789" + miscWordSymbols
const miscWordSymbols = "._+-*/=<>!&%?$^:#|@"

// Lexer converts the runes produced by a token.Scanner into tokens.
type Lexer struct {
	scanner *token.Scanner
	ch      rune // current unicode rune

	readErr error
}

// New returns a Lexer reading from s.
func New(s *token.Scanner) *Lexer {
	lex := &Lexer{
		scanner: s,
	}
	return lex
}

// NextToken returns the next token in the stream.  Once an EOF or ERROR token
// has been returned every subsequent call returns a token of the same type.
func (lex *Lexer) NextToken() *token.Token {
	if lex.readErr != nil {
		return lex.emitError(lex.readErr, true)
	}
	lex.readErr = lex.skipWhitespace()
	if lex.readErr != nil {
		return lex.emitError(lex.readErr, true)
	}
	if lex.readChar() != nil {
		return lex.emitError(lex.readErr, true)
	}
	switch lex.ch {
	case '(':
		return lex.charToken(token.PAREN_L)
	case ')':
		return lex.charToken(token.PAREN_R)
	case '\'':
		return lex.charToken(token.QUOTE)
	case '`':
		return lex.charToken(token.QUASIQUOTE)
	case '~':
		if lex.peekRune() == '@' {
			if lex.readChar() != nil {
				return lex.emitError(lex.readErr, false)
			}
			return lex.charToken(token.UNQUOTE_SPLICE)
		}
		return lex.charToken(token.UNQUOTE)
	case ';':
		for {
			c, ok := lex.scanner.Peek()
			if !ok || c == '\n' {
				break
			}
			if lex.readChar() != nil {
				return lex.emitError(lex.readErr, false)
			}
		}
		return lex.scanner.EmitToken(token.COMMENT)
	case '"':
		return lex.readString()
	case '-', '+':
		if isDigit(lex.peekRune()) {
			return lex.readNumber()
		}
		return lex.readSymbol()
	default:
		if isDigit(lex.ch) {
			return lex.readNumber()
		}
		if isWordStart(lex.ch) {
			return lex.readSymbol()
		}
		err := fmt.Errorf("unexpected text starting with %q", lex.ch)
		return lex.emit(token.INVALID, err.Error())
	}
}

func (lex *Lexer) emit(typ token.Type, text string) *token.Token {
	tok := &token.Token{
		Type:   typ,
		Text:   text,
		Source: lex.scanner.LocStart(),
	}
	lex.scanner.Ignore()
	return tok
}

func (lex *Lexer) emitError(err error, expectEOF bool) *token.Token {
	if err == io.EOF {
		if expectEOF {
			return lex.emit(token.EOF, "")
		}
		return lex.emit(token.ERROR, token.UnexpectedEOF)
	}
	return lex.emit(token.ERROR, err.Error())
}

func (lex *Lexer) errorf(format string, v ...interface{}) *token.Token {
	return lex.emitError(fmt.Errorf(format, v...), false)
}

func (lex *Lexer) charToken(typ token.Type) *token.Token {
	return lex.scanner.EmitToken(typ)
}

func (lex *Lexer) readString() *token.Token {
	for {
		c, ok := lex.scanner.Peek()
		if !ok {
			// Either EOF or invalid utf-8; readChar reports which.
			if lex.readChar() != nil {
				return lex.emitError(lex.readErr, false)
			}
			return lex.errorf("invalid string literal")
		}
		if lex.readChar() != nil {
			return lex.emitError(lex.readErr, false)
		}
		switch c {
		case '"':
			return lex.scanner.EmitToken(token.STRING)
		case '\n':
			return lex.errorf("unterminated string literal")
		case '\\':
			// The escaped character is validated by the parser.
			if lex.readChar() != nil {
				return lex.emitError(lex.readErr, false)
			}
		}
	}
}

func (lex *Lexer) readSymbol() *token.Token {
	for isWord(lex.peekRune()) {
		if lex.readChar() != nil {
			return lex.emit(token.ERROR, lex.readErr.Error())
		}
	}
	return lex.scanner.EmitToken(token.SYMBOL)
}

func (lex *Lexer) readNumber() *token.Token {
	for isDigit(lex.peekRune()) {
		if lex.readChar() != nil {
			return lex.emitError(lex.readErr, false)
		}
	}
	switch lex.peekRune() {
	case '.':
		if lex.readChar() != nil {
			return lex.emitError(lex.readErr, false)
		}
		return lex.readFloatFraction()
	case 'e', 'E':
		if lex.readChar() != nil {
			return lex.emitError(lex.readErr, false)
		}
		return lex.readFloatExponent()
	default:
		return lex.emitNumber(token.INT)
	}
}

func (lex *Lexer) readFloatFraction() *token.Token {
	if !isDigit(lex.peekRune()) {
		return lex.errorf("invalid floating point literal: %v", lex.scanner.Text())
	}
	for isDigit(lex.peekRune()) {
		if lex.readChar() != nil {
			return lex.emitError(lex.readErr, false)
		}
	}
	switch lex.peekRune() {
	case 'e', 'E':
		if lex.readChar() != nil {
			return lex.emitError(lex.readErr, false)
		}
		return lex.readFloatExponent()
	default:
		return lex.emitNumber(token.FLOAT)
	}
}

func (lex *Lexer) readFloatExponent() *token.Token {
	switch lex.peekRune() {
	case '+', '-':
		if lex.readChar() != nil {
			return lex.emitError(lex.readErr, false)
		}
	}
	if !isDigit(lex.peekRune()) {
		return lex.errorf("invalid floating point literal: %v", lex.scanner.Text())
	}
	for isDigit(lex.peekRune()) {
		if lex.readChar() != nil {
			return lex.emitError(lex.readErr, false)
		}
	}
	return lex.emitNumber(token.FLOAT)
}

// emitNumber rejects numbers that run directly into symbol text, e.g. 12abc.
func (lex *Lexer) emitNumber(typ token.Type) *token.Token {
	if isWord(lex.peekRune()) {
		for isWord(lex.peekRune()) {
			if lex.readChar() != nil {
				return lex.emitError(lex.readErr, false)
			}
		}
		return lex.errorf("invalid number literal: %v", lex.scanner.Text())
	}
	return lex.scanner.EmitToken(typ)
}

func (lex *Lexer) skipWhitespace() error {
	for unicode.IsSpace(lex.peekRune()) {
		err := lex.readChar()
		if err != nil {
			return err
		}
	}
	lex.scanner.Ignore()
	return nil
}

func (lex *Lexer) peekRune() rune {
	r, _ := lex.scanner.Peek()
	return r
}

func (lex *Lexer) readChar() error {
	lex.readErr = lex.scanner.ScanRune()
	if lex.readErr != nil {
		return lex.readErr
	}
	lex.ch = lex.scanner.Rune()
	return nil
}

func isWordStart(c rune) bool {
	return unicode.IsLetter(c) || strings.ContainsRune(miscWordSymbols, c)
}

func isWord(c rune) bool {
	return unicode.IsLetter(c) || strings.ContainsRune(miscWordRunes, c)
}

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}
