package amw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindClosingQuoteSimple(t *testing.T) {
	line := []rune(`hello" world`)
	pos, ok := findClosingQuote(line, 0, '"')
	require.True(t, ok)
	assert.Equal(t, uint(5), pos)
}

func TestFindClosingQuoteEscaped(t *testing.T) {
	line := []rune(`a\"b" tail`)
	pos, ok := findClosingQuote(line, 0, '"')
	require.True(t, ok)
	assert.Equal(t, uint(4), pos)
}

func TestFindClosingQuoteNotFound(t *testing.T) {
	_, ok := findClosingQuote([]rune("no quote here"), 0, '"')
	assert.False(t, ok)
}

func TestParseQuotedStringSingleLine(t *testing.T) {
	p := NewParser(NewLineSourceFromString(`"hello\nworld"`))
	require.NoError(t, p.readBlockLine())
	s, _, err := p.parseQuotedString(0)
	require.NoError(t, err)
	assert.Equal(t, "hello\nworld", s)
}

func TestFoldLinesBasic(t *testing.T) {
	p := NewParser(NewLineSourceFromString(""))
	lines := [][]rune{
		[]rune("first line"),
		[]rune("second line"),
	}
	out, err := p.foldLines(lines, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, "first line second line", out)
}

func TestFoldLinesEmptyLineBecomesNewline(t *testing.T) {
	p := NewParser(NewLineSourceFromString(""))
	lines := [][]rune{
		[]rune("para one"),
		[]rune(""),
		[]rune("para two"),
	}
	out, err := p.foldLines(lines, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, "para one\npara two", out)
}

func TestFoldLinesAllEmpty(t *testing.T) {
	p := NewParser(NewLineSourceFromString(""))
	lines := [][]rune{[]rune(""), []rune("")}
	out, err := p.foldLines(lines, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestFoldLinesIndentedContinuationNoSeparator(t *testing.T) {
	p := NewParser(NewLineSourceFromString(""))
	lines := [][]rune{
		[]rune("one"),
		[]rune("  two"),
	}
	out, err := p.foldLines(lines, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, "one  two", out)
}

func TestDedentLinesCommonPrefix(t *testing.T) {
	lines := [][]rune{
		[]rune("  foo"),
		[]rune("    bar"),
		[]rune(""),
	}
	out := dedentLines(lines)
	assert.Equal(t, "foo", string(out[0]))
	assert.Equal(t, "  bar", string(out[1]))
	assert.Equal(t, "", string(out[2]))
}
