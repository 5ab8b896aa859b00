// Package grapheme converts rune columns into user-perceived columns.
package grapheme

import (
	"github.com/rivo/uniseg"
)

// Split returns grapheme clusters for text in visual order.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len([]rune(text)))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	if text == "" {
		return 0
	}
	return uniseg.GraphemeClusterCount(text)
}

// Column returns the grapheme column of rune column col in line. A rune
// column inside a cluster maps to that cluster.
func Column(line string, col int) int {
	if col <= 0 || line == "" {
		return 0
	}
	g := uniseg.NewGraphemes(line)
	runes, n := 0, 0
	for g.Next() {
		if runes >= col {
			break
		}
		runes += len(g.Runes())
		n++
	}
	if runes > col {
		n--
	}
	return n
}

// Width returns the terminal cell width of text.
func Width(text string) int { return uniseg.StringWidth(text) }
