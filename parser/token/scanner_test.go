package token

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScannerLocations(t *testing.T) {
	s := NewScanner("test", strings.NewReader("ab\ncd"))
	require.NoError(t, s.ScanRune())
	require.NoError(t, s.ScanRune())
	tok := s.EmitToken(SYMBOL)
	assert.Equal(t, "ab", tok.Text)
	assert.Equal(t, "test:1:1", tok.Source.String())

	require.NoError(t, s.ScanRune()) // newline
	s.Ignore()
	require.NoError(t, s.ScanRune())
	c, ok := s.Peek()
	assert.True(t, ok)
	assert.Equal(t, 'd', c)
	require.NoError(t, s.ScanRune())
	tok = s.EmitToken(SYMBOL)
	assert.Equal(t, "cd", tok.Text)
	assert.Equal(t, "test:2:1", tok.Source.String())

	_, ok = s.Peek()
	assert.False(t, ok)
	assert.Equal(t, io.EOF, s.ScanRune())
}

func TestLocationString(t *testing.T) {
	assert.Equal(t, "f[3]", (&Location{File: "f", Pos: 3}).String())
	assert.Equal(t, "f:2", (&Location{File: "f", Line: 2}).String())
	assert.Equal(t, "f:2:7", (&Location{File: "f", Line: 2, Col: 7}).String())
	var loc *Location
	assert.Equal(t, "<unknown>", loc.String())
}
