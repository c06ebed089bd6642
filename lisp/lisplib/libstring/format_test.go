package libstring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFormatString(t *testing.T) {
	tests := []struct {
		format string
		parts  []formatPart
		err    string
	}{
		{"", nil, ""},
		{"abc", []formatPart{{text: "abc"}}, ""},
		{"a{}b", []formatPart{{text: "a"}, {directive: true}, {text: "b"}}, ""},
		{"{ 1 }", []formatPart{{directive: true, text: "1"}}, ""},
		{"{{}}", []formatPart{{text: "{"}, {text: "}"}}, ""},
		{"{", nil, "unclosed formatting directive"},
		{"{a", nil, "unclosed formatting directive"},
		{"a}", nil, "unexpected closing brace '}' outside of formatting directive"},
	}
	for _, test := range tests {
		parts, err := parseFormatString(test.format)
		if test.err != "" {
			assert.EqualError(t, err, test.err, test.format)
			continue
		}
		if assert.NoError(t, err, test.format) {
			assert.Equal(t, test.parts, parts, test.format)
		}
	}
}
