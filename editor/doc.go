// Package editor provides a Bubble Tea component that edits a
// session.Session.
//
// The package is responsible for input handling, viewport behavior, painting
// the session's tag-set spans through a theme, the find bar and the status
// line. Document state, highlighting and search live in the session; the
// Model only routes keys and renders.
package editor
