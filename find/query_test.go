package find

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindAll_LiteralCaseSensitiveIsVerbatim(t *testing.T) {
	text := "foo Foo food fo foo"
	ms, err := FindAll(text, Query{Text: "foo", CaseSensitive: true}, 0)
	require.NoError(t, err)

	var want []Match
	for i := 0; ; {
		j := strings.Index(text[i:], "foo")
		if j < 0 {
			break
		}
		want = append(want, Match{Start: i + j, End: i + j + 3})
		i += j + 3
	}
	assert.Equal(t, want, ms)
}

func TestFindAll_NonOverlapping(t *testing.T) {
	ms, err := FindAll("aaaaa", Query{Text: "aa", CaseSensitive: true}, 0)
	require.NoError(t, err)
	assert.Equal(t, []Match{{0, 2}, {2, 4}}, ms)
}

func TestFindAll_Options(t *testing.T) {
	cases := []struct {
		name string
		text string
		q    Query
		want []Match
	}{
		{
			name: "case insensitive",
			text: "Foo fOO",
			q:    Query{Text: "foo"},
			want: []Match{{0, 3}, {4, 7}},
		},
		{
			name: "whole word",
			text: "foo food foo_ foo.",
			q:    Query{Text: "foo", WholeWord: true, CaseSensitive: true},
			want: []Match{{0, 3}, {14, 17}},
		},
		{
			name: "literal escapes metacharacters",
			text: "a.b axb",
			q:    Query{Text: "a.b", CaseSensitive: true},
			want: []Match{{0, 3}},
		},
		{
			name: "escape then wrap",
			text: "(x) y(x)z",
			q:    Query{Text: "(x)", WholeWord: true, CaseSensitive: true},
			want: []Match{{5, 8}},
		},
		{
			name: "regex",
			text: "x1 y22 z333",
			q:    Query{Text: `\d+`, UseRegex: true},
			want: []Match{{1, 2}, {4, 6}, {8, 11}},
		},
		{
			name: "rune offsets",
			text: "ñandú ÑANDÚ",
			q:    Query{Text: "ñandú"},
			want: []Match{{0, 5}, {6, 11}},
		},
		{
			name: "zero length skipped",
			text: "abc",
			q:    Query{Text: "x*", UseRegex: true},
			want: nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ms, err := FindAll(tc.text, tc.q, 0)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ms)
		})
	}
}

func TestFindAll_InvalidRegexIsAnError(t *testing.T) {
	ms, err := FindAll("abc", Query{Text: "a(b", UseRegex: true}, 0)
	require.Error(t, err)
	assert.Empty(t, ms)
}

func TestCompile_EmptyQuery(t *testing.T) {
	_, err := Compile(Query{}, 0)
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "", Status{}.String())
	assert.Equal(t, "Enter 3+ chars to search", Status{Kind: StatusTooShort, MinChars: 3}.String())
	assert.Equal(t, "0 matches", Status{Kind: StatusNoMatches}.String())
	assert.Equal(t, "2/5 matches", Status{Kind: StatusMatches, Current: 2, Total: 5}.String())
}
