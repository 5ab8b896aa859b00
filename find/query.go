// Package find implements the match engine behind the find/replace bar.
//
// Matching runs over the full buffer text with rune offsets. Matches are
// non-overlapping and ordered by start. The engine paints its matches onto a
// Surface through two tags: TagHit on every match and TagCurrent on the
// current one.
package find

import (
	"errors"
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
)

// Query describes what to search for.
type Query struct {
	Text          string
	CaseSensitive bool
	WholeWord     bool
	UseRegex      bool
}

// Match is the half-open rune range [Start, End).
type Match struct {
	Start int
	End   int
}

func (m Match) Len() int { return m.End - m.Start }

// DefaultTimeout bounds a single FindAll call.
const DefaultTimeout = 250 * time.Millisecond

var ErrEmptyQuery = errors.New("find: empty query")

// Compile builds the matcher for q.
//
// In regex mode the text is used as a pattern as is. Otherwise it is escaped
// first and, for whole-word queries, then wrapped in word-boundary anchors.
// A non-positive timeout disables the match timeout.
func Compile(q Query, timeout time.Duration) (*regexp2.Regexp, error) {
	if q.Text == "" {
		return nil, ErrEmptyQuery
	}

	pattern := q.Text
	if !q.UseRegex {
		pattern = regexp2.Escape(q.Text)
		if q.WholeWord {
			pattern = `\b` + pattern + `\b`
		}
	}

	opts := regexp2.None
	if !q.CaseSensitive {
		opts |= regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(pattern, opts)
	if err != nil {
		return nil, fmt.Errorf("find: compile %q: %w", q.Text, err)
	}
	if timeout > 0 {
		re.MatchTimeout = timeout
	}
	return re, nil
}

// FindAll scans text left to right and returns every non-overlapping match
// of q. Zero-length matches are skipped.
func FindAll(text string, q Query, timeout time.Duration) ([]Match, error) {
	re, err := Compile(q, timeout)
	if err != nil {
		return nil, err
	}

	var out []Match
	m, err := re.FindStringMatch(text)
	for m != nil && err == nil {
		if m.Length > 0 {
			out = append(out, Match{Start: m.Index, End: m.Index + m.Length})
		}
		m, err = re.FindNextMatch(m)
	}
	if err != nil {
		return nil, fmt.Errorf("find: scan %q: %w", q.Text, err)
	}
	return out, nil
}
