package find

import "fmt"

type StatusKind uint8

const (
	// StatusIdle means there is no query.
	StatusIdle StatusKind = iota
	// StatusTooShort means the query is below the minimum length.
	StatusTooShort
	StatusNoMatches
	StatusMatches
)

// Status is the match summary shown next to the find field.
type Status struct {
	Kind     StatusKind
	Current  int // 1-based, valid for StatusMatches
	Total    int
	MinChars int
}

func (s Status) String() string {
	switch s.Kind {
	case StatusTooShort:
		return fmt.Sprintf("Enter %d+ chars to search", s.MinChars)
	case StatusNoMatches:
		return "0 matches"
	case StatusMatches:
		return fmt.Sprintf("%d/%d matches", s.Current, s.Total)
	default:
		return ""
	}
}
