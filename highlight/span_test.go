package highlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapt_FillsGaps(t *testing.T) {
	tokens := []Token{
		{Start: 2, End: 4, Tags: Tags{"kw"}},
		{Start: 7, End: 7, Tags: Tags{"num"}},
	}

	spans := Adapt(tokens, 10)
	require.Equal(t, []Span{
		{Start: 0, End: 2},
		{Start: 2, End: 5, Tags: Tags{"kw"}},
		{Start: 5, End: 7},
		{Start: 7, End: 8, Tags: Tags{"num"}},
		{Start: 8, End: 10},
	}, spans)
	assert.Equal(t, 10, Coverage(spans))
}

func TestAdapt_SkipsInvertedAndClamps(t *testing.T) {
	tokens := []Token{
		{Start: 3, End: 1, Tags: Tags{"bad"}},
		{Start: -4, End: 0, Tags: Tags{"a"}},
		{Start: 4, End: 99, Tags: Tags{"b"}},
		{Start: 20, End: 30, Tags: Tags{"outside"}},
	}

	spans := Adapt(tokens, 6)
	require.Equal(t, []Span{
		{Start: 0, End: 1, Tags: Tags{"a"}},
		{Start: 1, End: 4},
		{Start: 4, End: 6, Tags: Tags{"b"}},
	}, spans)
}

func TestAdapt_DropsOverlapAndSorts(t *testing.T) {
	tokens := []Token{
		{Start: 5, End: 6, Tags: Tags{"late"}},
		{Start: 0, End: 3, Tags: Tags{"first"}},
		{Start: 2, End: 4, Tags: Tags{"overlap"}},
	}

	spans := Adapt(tokens, 8)
	require.Equal(t, []Span{
		{Start: 0, End: 4, Tags: Tags{"first"}},
		{Start: 4, End: 5},
		{Start: 5, End: 7, Tags: Tags{"late"}},
		{Start: 7, End: 8},
	}, spans)
}

func TestAdapt_NormalizesTags(t *testing.T) {
	tokens := []Token{{Start: 0, End: 2, Tags: Tags{"kw", "bold", "kw", ""}}}

	spans := Adapt(tokens, 3)
	require.Len(t, spans, 2)
	assert.Equal(t, Tags{"bold", "kw"}, spans[0].Tags)
	assert.True(t, spans[0].Tags.Has("kw"))
	assert.Equal(t, Tags{"bold"}, spans[0].Tags.Without("kw"))
}

func TestAdapt_EmptyBuffer(t *testing.T) {
	assert.Empty(t, Adapt([]Token{{Start: 0, End: 3}}, 0))
}

func TestAdapt_CoverageAlwaysMatchesLength(t *testing.T) {
	tok := NewChromaTokenizer("lua")
	inputs := []string{
		"",
		"x",
		"local x = 10 -- comment\nprint(\"héllo\")\n",
		"function f(a, b)\n\treturn a + b\nend",
		"--[[ unterminated",
		"\n\n\n",
	}
	for _, in := range inputs {
		n := len([]rune(in))
		assert.Equal(t, n, Coverage(Adapt(tok.Tokenize(in), n)), "input %q", in)
	}
}

func TestTags_SetOperations(t *testing.T) {
	tags := NewTags("b", "a", "b", "")
	assert.Equal(t, Tags{"a", "b"}, tags)
	assert.True(t, tags.Has("a"))
	assert.False(t, tags.Has("c"))

	assert.Equal(t, Tags{"a", "b", "c"}, tags.With("c"))
	assert.Equal(t, Tags{"a", "b"}, tags, "With must not mutate the receiver")
	assert.Equal(t, Tags{"b"}, tags.Without("a"))
	assert.Nil(t, Tags{"a"}.Without("a"))
	assert.Equal(t, Tags{"a", "b", "z"}, tags.Union(Tags{"z", "a"}))
	assert.Nil(t, NewTags())
}
