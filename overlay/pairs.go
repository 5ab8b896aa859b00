package overlay

// Tags painted on the bracket or quote pair around the caret.
const (
	TagBracketMatch = "bracket-match"
	TagBracketError = "bracket-error"
	TagQuoteMatch   = "quote-match"
	TagQuoteError   = "quote-error"
)

// PairTags lists every tag PairDecorations may produce.
var PairTags = []string{TagBracketMatch, TagBracketError, TagQuoteMatch, TagQuoteError}

var partner = map[rune]rune{
	'{': '}', '(': ')', '[': ']',
	'}': '{', ')': '(', ']': '[',
}

func isOpen(r rune) bool  { return r == '{' || r == '(' || r == '[' }
func isClose(r rune) bool { return r == '}' || r == ')' || r == ']' }
func isQuote(r rune) bool { return r == '"' || r == '\'' }

// PairDecorations marks the pair the caret touches. The rune at the caret is
// tried first, then the rune before it; quotes win over brackets and
// escaped quotes are ignored. A caret touching neither is matched against
// its innermost enclosing bracket pair.
//
// A bracket or quote without a partner gets an error tag on its own.
func PairDecorations(text []rune, caret int) []Decoration {
	if len(text) == 0 || caret < 0 {
		return nil
	}
	caret = min(caret, len(text))

	var at, before rune
	if caret < len(text) {
		at = text[caret]
	}
	if caret > 0 {
		before = text[caret-1]
	}

	switch {
	case isQuote(at) && !escaped(text, caret):
		return quotePair(text, caret)
	case isQuote(before) && !escaped(text, caret-1):
		return quotePair(text, caret-1)
	case isOpen(at) || isClose(at):
		return bracketPair(text, caret)
	case isOpen(before) || isClose(before):
		return bracketPair(text, caret-1)
	}
	return enclosingPair(text, caret)
}

func bracketPair(text []rune, pos int) []Decoration {
	var match int
	if isOpen(text[pos]) {
		match = closingBracket(text, pos)
	} else {
		match = openingBracket(text, pos)
	}
	if match < 0 {
		return []Decoration{{Start: pos, End: pos + 1, Tag: TagBracketError}}
	}
	return pairOf(pos, match, TagBracketMatch)
}

// closingBracket returns the bracket closing the one at pos, or -1.
func closingBracket(text []rune, pos int) int {
	o, c := text[pos], partner[text[pos]]
	depth := 1
	for i := pos + 1; i < len(text); i++ {
		switch text[i] {
		case o:
			depth++
		case c:
			if depth--; depth == 0 {
				return i
			}
		}
	}
	return -1
}

// openingBracket returns the bracket opening the one at pos, or -1.
func openingBracket(text []rune, pos int) int {
	c, o := text[pos], partner[text[pos]]
	depth := 1
	for i := pos - 1; i >= 0; i-- {
		switch text[i] {
		case c:
			depth++
		case o:
			if depth--; depth == 0 {
				return i
			}
		}
	}
	return -1
}

// enclosingPair finds, per bracket kind, the nearest opening bracket before
// caret whose partner lies at or after it, and keeps the pair with the
// fewest brackets opened inside.
func enclosingPair(text []rune, caret int) []Decoration {
	bestOpen, bestClose, bestNested := -1, -1, len(text)+1
	for _, open := range []rune{'{', '(', '['} {
		for i := caret - 1; i >= 0; i-- {
			if text[i] != open {
				continue
			}
			c := closingBracket(text, i)
			if c < caret {
				continue
			}
			if n := openedWithin(text, i, c); n < bestNested {
				bestOpen, bestClose, bestNested = i, c, n
			}
			break
		}
	}
	if bestOpen < 0 {
		return nil
	}
	return pairOf(bestOpen, bestClose, TagBracketMatch)
}

func openedWithin(text []rune, from, to int) int {
	n := 0
	for _, r := range text[from+1 : to] {
		if isOpen(r) {
			n++
		}
	}
	return n
}

func quotePair(text []rune, pos int) []Decoration {
	q := text[pos]
	match := -1
	if openingQuote(text, pos) {
		for i := pos + 1; i < len(text); i++ {
			if text[i] == q && !escaped(text, i) {
				match = i
				break
			}
		}
	} else {
		for i := pos - 1; i >= 0; i-- {
			if text[i] == q && !escaped(text, i) {
				match = i
				break
			}
		}
	}
	if match < 0 {
		return []Decoration{{Start: pos, End: pos + 1, Tag: TagQuoteError}}
	}
	return pairOf(pos, match, TagQuoteMatch)
}

// openingQuote reports whether an even number of unescaped quotes of the
// same kind precede pos.
func openingQuote(text []rune, pos int) bool {
	n := 0
	for i := 0; i < pos; i++ {
		if text[i] == text[pos] && !escaped(text, i) {
			n++
		}
	}
	return n%2 == 0
}

// escaped reports whether an odd run of backslashes precedes pos.
func escaped(text []rune, pos int) bool {
	n := 0
	for i := pos - 1; i >= 0 && text[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}

func pairOf(a, b int, tag string) []Decoration {
	a, b = min(a, b), max(a, b)
	return []Decoration{{Start: a, End: a + 1, Tag: tag}, {Start: b, End: b + 1, Tag: tag}}
}
