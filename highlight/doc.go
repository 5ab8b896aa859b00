// Package highlight turns lexer output into a style overlay that covers a
// whole buffer.
//
// A Tokenizer produces ordered tokens with inclusive end offsets. Adapt
// converts them into half-open spans, filling the gaps between tokens with
// untagged spans, so that the span lengths always sum to the buffer length.
// All offsets are rune offsets with '\n' counted as one rune.
package highlight
