package editor

import (
	"fmt"
	"strconv"
)

func gutterDigits(lines int) int { return len(strconv.Itoa(max(lines, 1))) }

// gutterWidth is the cell width of the line-number gutter, separator included.
func (m Model) gutterWidth() int {
	if !m.showLineNums {
		return 0
	}
	return gutterDigits(m.sess.Buffer().LineCount()) + 1
}

func (m Model) renderGutter(row, digits int, active bool) string {
	st := m.style.LineNum
	if active {
		st = m.style.LineNumActive
	}
	return st.Render(fmt.Sprintf("%*d", digits, row+1)) + m.style.Gutter.Render(" ")
}
