package lexer

import (
	"strings"
	"testing"

	"github.com/kaa-lang/kaa/parser/token"
	"github.com/stretchr/testify/assert"
)

func lexAll(src string) []*token.Token {
	lex := New(token.NewScanner("test", strings.NewReader(src)))
	var toks []*token.Token
	for {
		tok := lex.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF || tok.Type == token.ERROR || len(toks) > 100 {
			return toks
		}
	}
}

func TestLexer(t *testing.T) {
	type tok struct {
		typ  token.Type
		text string
	}
	tests := []struct {
		name string
		src  string
		toks []tok
	}{
		{"empty", "", []tok{{token.EOF, ""}}},
		{"int", "123", []tok{{token.INT, "123"}, {token.EOF, ""}}},
		{"negative", "-12 +3", []tok{{token.INT, "-12"}, {token.INT, "+3"}, {token.EOF, ""}}},
		{"float", "1.5 2e3 -0.25E-2", []tok{
			{token.FLOAT, "1.5"}, {token.FLOAT, "2e3"}, {token.FLOAT, "-0.25E-2"}, {token.EOF, ""},
		}},
		{"symbols", "foo - -> a.b/c &rest", []tok{
			{token.SYMBOL, "foo"}, {token.SYMBOL, "-"}, {token.SYMBOL, "->"},
			{token.SYMBOL, "a.b/c"}, {token.SYMBOL, "&rest"}, {token.EOF, ""},
		}},
		{"list", "(+ 1 x)", []tok{
			{token.PAREN_L, "("}, {token.SYMBOL, "+"}, {token.INT, "1"},
			{token.SYMBOL, "x"}, {token.PAREN_R, ")"}, {token.EOF, ""},
		}},
		{"reader macros", "'a `b ~c ~@d", []tok{
			{token.QUOTE, "'"}, {token.SYMBOL, "a"},
			{token.QUASIQUOTE, "`"}, {token.SYMBOL, "b"},
			{token.UNQUOTE, "~"}, {token.SYMBOL, "c"},
			{token.UNQUOTE_SPLICE, "~@"}, {token.SYMBOL, "d"},
			{token.EOF, ""},
		}},
		{"string", `"a \"b\"\n"`, []tok{{token.STRING, `"a \"b\"\n"`}, {token.EOF, ""}}},
		{"comment", "; hi\nx", []tok{{token.COMMENT, "; hi"}, {token.SYMBOL, "x"}, {token.EOF, ""}}},
		{"unterminated string", `"abc`, []tok{{token.ERROR, token.UnexpectedEOF}}},
		{"bad number", "12abc", []tok{{token.ERROR, "invalid number literal: 12abc"}}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			toks := lexAll(test.src)
			var got []tok
			for _, x := range toks {
				got = append(got, tok{x.Type, x.Text})
			}
			assert.Equal(t, test.toks, got)
		})
	}
}

func TestLexerLocation(t *testing.T) {
	toks := lexAll("(a\n  bc)")
	if assert.Len(t, toks, 5) {
		assert.Equal(t, "test:1:1", toks[0].Source.String())
		assert.Equal(t, "test:1:2", toks[1].Source.String())
		assert.Equal(t, "test:2:3", toks[2].Source.String())
		assert.Equal(t, "test:2:5", toks[3].Source.String())
	}
}
