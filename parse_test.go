package amw

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmptySourceIsEOF(t *testing.T) {
	_, err := ParseString("")
	require.Error(t, err)
	assert.True(t, IsEOF(err), dump(err))
}

func TestParseExtraDataAfterValue(t *testing.T) {
	_, err := ParseString("1\nextra\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Extra data after parsed value")
}

func TestParseCommentsAndBlankLinesIgnored(t *testing.T) {
	src := "# a leading comment\n\n42\n"
	v, err := ParseString(src)
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)
}

func TestParseDocumentWithEmbeddedJSON(t *testing.T) {
	src := "payload: :json:\n  {\"a\": [1, 2], \"b\": null}\n"
	v, err := ParseString(src)
	require.NoError(t, err)
	m, ok := v.(*Mapping)
	require.True(t, ok, dump(v))
	payload, ok := m.Get("payload")
	require.True(t, ok)
	pm, ok := payload.(*Mapping)
	require.True(t, ok, dump(payload))
	a, _ := pm.Get("a")
	assert.Equal(t, []any{int64(1), int64(2)}, a)
}

func TestParseScalarsTwiceEqual(t *testing.T) {
	cases := []string{"42", "-7", "3.5", "true", "false", "null", `"quoted"`}
	for _, c := range cases {
		t.Run(c, func(t *testing.T) {
			v1, err := ParseString(c)
			require.NoError(t, err)
			v2, err := ParseString(c)
			require.NoError(t, err)
			assert.True(t, ValuesEqual(v1, v2), "%s vs %s", dump(v1), dump(v2))
		})
	}
}

func TestParseIdempotentOnListOfMaps(t *testing.T) {
	src := "- a: 1\n  b: 2\n- a: 3\n  b: 4\n"
	v1, err := ParseString(src)
	require.NoError(t, err)
	v2, err := ParseString(src)
	require.NoError(t, err)
	assert.True(t, ValuesEqual(v1, v2), "%s vs %s", dump(v1), dump(v2))
}

func TestLineSourceUnreadInvariant(t *testing.T) {
	ls := NewLineSourceFromString("one\ntwo\n")
	line, err := ls.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "one", line)
	ls.UnreadLine(line)
	again, err := ls.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "one", again)

	next, err := ls.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "two", next)
}

func TestLineSourceDoublePushbackPanics(t *testing.T) {
	ls := NewLineSourceFromString("one\ntwo\n")
	line, _ := ls.ReadLine()
	ls.UnreadLine(line)
	assert.Panics(t, func() { ls.UnreadLine(line) })
}

func TestParseJSONTopLevel(t *testing.T) {
	v, err := ParseJSONString(`{"a": 1}`)
	require.NoError(t, err)
	m, ok := v.(*Mapping)
	require.True(t, ok)
	assert.Equal(t, 1, m.Len())
}

func TestParseMultilineQuotedString(t *testing.T) {
	src := "msg: \"first line\n      second line\"\n"
	v, err := ParseString(src)
	require.NoError(t, err)
	m, ok := v.(*Mapping)
	require.True(t, ok, dump(v))
	msg, _ := m.Get("msg")
	assert.True(t, strings.Contains(msg.(string), "first line"))
	assert.True(t, strings.Contains(msg.(string), "second line"))
}
