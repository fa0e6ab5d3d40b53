package amw

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dump renders v for failure messages using the same spew config the
// teacher format's tests reached for, minus pointer addresses.
func dump(v any) string {
	cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true}
	return cfg.Sdump(v)
}

func TestParseScalarKeyword(t *testing.T) {
	v, err := ParseString("true")
	require.NoError(t, err)
	assert.Equal(t, true, v, dump(v))

	v, err = ParseString("null")
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = ParseString("false")
	require.NoError(t, err)
	assert.Equal(t, false, v)
}

func TestParseScalarNumber(t *testing.T) {
	v, err := ParseString("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)
}

func TestParseLiteralStringFallthrough(t *testing.T) {
	v, err := ParseString("hello world")
	require.NoError(t, err)
	assert.Equal(t, "hello world", v, dump(v))
}

func TestParseSimpleList(t *testing.T) {
	v, err := ParseString("- 1\n- 2\n- 3\n")
	require.NoError(t, err)
	want := []any{int64(1), int64(2), int64(3)}
	assert.True(t, ValuesEqual(want, v), "got %s, want %s", dump(v), dump(want))
}

func TestParseSimpleMap(t *testing.T) {
	v, err := ParseString("a: 1\nb: 2\n")
	require.NoError(t, err)
	m, ok := v.(*Mapping)
	require.True(t, ok, dump(v))
	assert.Equal(t, 2, m.Len())
	val, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, int64(1), val)
}

func TestParseNestedMapInList(t *testing.T) {
	src := "- name: one\n  value: 1\n- name: two\n  value: 2\n"
	v, err := ParseString(src)
	require.NoError(t, err)
	list, ok := v.([]any)
	require.True(t, ok, dump(v))
	require.Len(t, list, 2)
	first, ok := list[0].(*Mapping)
	require.True(t, ok)
	name, _ := first.Get("name")
	assert.Equal(t, "one", name)
}

func TestParseUnknownConvSpecFallsBackToLiteral(t *testing.T) {
	v, err := ParseString(":bogus: 1\nsecond: 2\n")
	// ":bogus:" is not a registered specifier, so the whole block is
	// consumed as a literal string instead of being treated as a map.
	require.NoError(t, err)
	_, ok := v.(string)
	assert.True(t, ok, dump(v))
}

func TestParseListBadIndentation(t *testing.T) {
	src := "- 1\n - 2\n"
	_, err := ParseString(src)
	require.Error(t, err)
}

func TestParseMapBadIndentation(t *testing.T) {
	src := "a: 1\n b: 2\n"
	_, err := ParseString(src)
	require.Error(t, err)
}

func TestParseQuotedMapKey(t *testing.T) {
	v, err := ParseString(`"a key": 1` + "\n")
	require.NoError(t, err)
	m, ok := v.(*Mapping)
	require.True(t, ok, dump(v))
	val, ok := m.Get("a key")
	require.True(t, ok)
	assert.Equal(t, int64(1), val)
}

func TestParseLiteralConvSpec(t *testing.T) {
	src := ": literal:\n  line one\n  line two\n"
	v, err := ParseString(src)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\n", v)
}

func TestParseFoldedConvSpec(t *testing.T) {
	src := ": folded:\n  line one\n  line two\n"
	v, err := ParseString(src)
	require.NoError(t, err)
	assert.Equal(t, "line one line two", v)
}

func TestParseDatetimeConvSpec(t *testing.T) {
	src := "when: :datetime: 2024-01-01\n"
	v, err := ParseString(src)
	require.NoError(t, err)
	m, ok := v.(*Mapping)
	require.True(t, ok, dump(v))
	when, ok := m.Get("when")
	require.True(t, ok)
	dt, ok := when.(DateTime)
	require.True(t, ok)
	assert.Equal(t, 2024, dt.Year)
}

func TestParseBlockTooDeep(t *testing.T) {
	src := ""
	for i := 0; i < maxBlockLevel+5; i++ {
		for j := 0; j < i; j++ {
			src += " "
		}
		src += "- \n"
	}
	_, err := ParseString(src)
	require.Error(t, err)
}
