// Package buffer implements the pure, rune-accurate document model behind an
// editing session.
//
// Coordinates are 0-based (Row, Col) in runes. Offsets are rune offsets into
// Text() where each line break counts as one rune.
// Ranges are half-open selections in document coordinates: [Start, End).
package buffer
