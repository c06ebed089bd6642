package token

import (
	"fmt"
	"io"
	"unicode/utf8"
)

// Scanner facilitates construction of tokens from a byte stream.  The entire
// stream is buffered when the Scanner is created so that every token can
// report an exact line and column.
type Scanner struct {
	file string
	buf  []byte

	start     int // start of the current token
	startLine int
	startCol  int

	next     int // index of the rune following c
	nextLine int // line of the rune at next
	nextCol  int // column of the rune at next

	c       rune
	readErr error
}

// NewScanner initializes and returns a new Scanner.  Any error reading r is
// reported by the first call to ScanRune that reaches the end of the data
// that was read successfully.
func NewScanner(file string, r io.Reader) *Scanner {
	buf, err := io.ReadAll(r)
	return newScannerBuf(file, buf, err)
}

// NewScannerBytes returns a Scanner over an in-memory buffer.
func NewScannerBytes(file string, buf []byte) *Scanner {
	return newScannerBuf(file, buf, nil)
}

func newScannerBuf(file string, buf []byte, err error) *Scanner {
	s := &Scanner{
		file:     file,
		buf:      buf,
		nextLine: 1,
		nextCol:  1,
		readErr:  err,
	}
	s.Ignore()
	return s
}

// EmitToken returns a token containing the text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) EmitToken(typ Type) *Token {
	tok := &Token{
		Type:   typ,
		Text:   s.Text(),
		Source: s.LocStart(),
	}
	s.Ignore()
	return tok
}

// Ignore causes the scanner to skip all text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) Ignore() {
	s.start = s.next
	s.startLine = s.nextLine
	s.startCol = s.nextCol
}

// Text returns a string containing text scanned since the last call to either
// EmitToken or Ignore.
func (s *Scanner) Text() string {
	return string(s.buf[s.start:s.next])
}

// Rune returns the current unicode rune that is being scanned.  The rune
// returned by Rune is the last rune in a token returned by EmitToken.
func (s *Scanner) Rune() rune {
	return s.c
}

// Peek returns the next rune to be scanned, if there are any.  If an invalid
// utf-8 sequence or EOF prevents futher runes from being scanned Peek returns
// a false second value.
func (s *Scanner) Peek() (rune, bool) {
	if s.next >= len(s.buf) {
		return 0, false
	}
	c, n := utf8.DecodeRune(s.buf[s.next:])
	if c == utf8.RuneError && n == 1 {
		return utf8.RuneError, false
	}
	return c, true
}

// ScanRune attempts to scan a utf-8 rune from the input for inclusion in the
// current token.  At the end of input ScanRune returns io.EOF, or the error
// encountered while reading the input.
func (s *Scanner) ScanRune() error {
	if s.next >= len(s.buf) {
		if s.readErr != nil {
			return s.readErr
		}
		return io.EOF
	}
	c, n := utf8.DecodeRune(s.buf[s.next:])
	if c == utf8.RuneError && n == 1 {
		return fmt.Errorf("%v: invalid utf-8 sequence in source text starting with byte %q",
			s.Loc(), s.buf[s.next])
	}
	s.c = c
	s.next += n
	if c == '\n' {
		s.nextLine++
		s.nextCol = 1
	} else {
		s.nextCol++
	}
	return nil
}

// LocStart returns a Location referencing the beginning of the current token,
// just beyond the end of the previous token.
func (s *Scanner) LocStart() *Location {
	return &Location{
		File: s.file,
		Pos:  s.start,
		Line: s.startLine,
		Col:  s.startCol,
	}
}

// Loc returns a Location referencing the current scanner position.
func (s *Scanner) Loc() *Location {
	return &Location{
		File: s.file,
		Pos:  s.next,
		Line: s.nextLine,
		Col:  s.nextCol,
	}
}
