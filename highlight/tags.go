package highlight

import (
	"slices"
	"strings"
)

// Tags is a set of style tags, kept sorted and free of duplicates.
//
// Tags values are treated as immutable: With and Without return new sets.
type Tags []string

// NewTags builds a normalized tag set.
func NewTags(tags ...string) Tags {
	if len(tags) == 0 {
		return nil
	}
	out := make(Tags, 0, len(tags))
	for _, t := range tags {
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	slices.Sort(out)
	out = slices.Compact(out)
	if len(out) == 0 {
		return nil
	}
	return out
}

func (t Tags) Has(tag string) bool {
	_, ok := slices.BinarySearch(t, tag)
	return ok
}

// With returns t plus tag.
func (t Tags) With(tag string) Tags {
	i, ok := slices.BinarySearch(t, tag)
	if ok || tag == "" {
		return t
	}
	out := make(Tags, 0, len(t)+1)
	out = append(out, t[:i]...)
	out = append(out, tag)
	out = append(out, t[i:]...)
	return out
}

// Without returns t minus tag.
func (t Tags) Without(tag string) Tags {
	i, ok := slices.BinarySearch(t, tag)
	if !ok {
		return t
	}
	if len(t) == 1 {
		return nil
	}
	out := make(Tags, 0, len(t)-1)
	out = append(out, t[:i]...)
	out = append(out, t[i+1:]...)
	return out
}

// Union returns the tags present in t or o.
func (t Tags) Union(o Tags) Tags {
	if len(o) == 0 {
		return t
	}
	if len(t) == 0 {
		return o
	}
	out := make(Tags, 0, len(t)+len(o))
	out = append(out, t...)
	out = append(out, o...)
	slices.Sort(out)
	return slices.Compact(out)
}

func (t Tags) Equal(o Tags) bool { return slices.Equal(t, o) }

func (t Tags) String() string { return "{" + strings.Join(t, ",") + "}" }
