package amw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSONStringScalars(t *testing.T) {
	v, err := ParseJSONString(`"hello"`)
	require.NoError(t, err)
	assert.Equal(t, "hello", v)

	v, err = ParseJSONString("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)

	v, err = ParseJSONString("-3.5")
	require.NoError(t, err)
	assert.InDelta(t, -3.5, v, 1e-9)

	v, err = ParseJSONString("true")
	require.NoError(t, err)
	assert.Equal(t, true, v)

	v, err = ParseJSONString("null")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestParseJSONArray(t *testing.T) {
	v, err := ParseJSONString(`[1, 2, 3]`)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), int64(2), int64(3)}, v)
}

func TestParseJSONEmptyArrayAndObject(t *testing.T) {
	v, err := ParseJSONString(`[]`)
	require.NoError(t, err)
	assert.Equal(t, []any{}, v)

	v, err = ParseJSONString(`{}`)
	require.NoError(t, err)
	m, ok := v.(*Mapping)
	require.True(t, ok)
	assert.Equal(t, 0, m.Len())
}

func TestParseJSONObject(t *testing.T) {
	v, err := ParseJSONString(`{"a": 1, "b": [true, false]}`)
	require.NoError(t, err)
	m, ok := v.(*Mapping)
	require.True(t, ok)
	a, _ := m.Get("a")
	assert.Equal(t, int64(1), a)
	b, _ := m.Get("b")
	assert.Equal(t, []any{true, false}, b)
}

func TestParseJSONTrailingCommaRejected(t *testing.T) {
	_, err := ParseJSONString(`{"a": 1,}`)
	require.Error(t, err)
}

func TestParseJSONCommentExtension(t *testing.T) {
	src := "{\n  # a comment\n  \"a\": 1\n}\n"
	v, err := ParseJSONString(src)
	require.NoError(t, err)
	m, ok := v.(*Mapping)
	require.True(t, ok)
	a, _ := m.Get("a")
	assert.Equal(t, int64(1), a)
}

func TestParseJSONGarbageAfterValue(t *testing.T) {
	_, err := ParseJSONString("1 2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Garbage after JSON value")
}

func TestParseJSONMaxDepth(t *testing.T) {
	src := ""
	for i := 0; i < maxJSONDepth+2; i++ {
		src += "["
	}
	for i := 0; i < maxJSONDepth+2; i++ {
		src += "]"
	}
	_, err := ParseJSONString(src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Maximum recursion depth exceeded")
}

func TestParseJSONStringMustCloseOnSameLine(t *testing.T) {
	src := "\"unterminated\n"
	_, err := ParseJSONString(src)
	require.Error(t, err)
}
