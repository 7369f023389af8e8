package inline

import "strings"

// mark stands in for a piece of finished markup within a line.
const mark = '\x00'

// line is a line of text during formatting. Every occurrence of mark in s
// refers to an element of marks, in order.
type line struct {
	s     string
	marks []string
}

// marksBefore counts the marks in s[:pos].
func (l line) marksBefore(pos int) int {
	return strings.Count(l.s[:pos], string(mark))
}

// sub returns the part of l between positions from and to.
func (l line) sub(from, to int) line {
	k := l.marksBefore(from)
	m := strings.Count(l.s[from:to], string(mark))
	return line{s: l.s[from:to], marks: l.marks[k : k+m]}
}

// replace substitutes the text between positions from and to by a piece of
// finished markup.
func (l line) replace(from, to int, markup string) line {
	k := l.marksBefore(from)
	m := strings.Count(l.s[from:to], string(mark))
	marks := make([]string, 0, len(l.marks)-m+1)
	marks = append(marks, l.marks[:k]...)
	marks = append(marks, markup)
	marks = append(marks, l.marks[k+m:]...)
	return line{
		s:     l.s[:from] + string(mark) + l.s[to:],
		marks: marks,
	}
}

// expand converts l to its final form: plain text is passed through
// textFilter, marks are replaced by their markup.
func (l line) expand(textFilter func(string) string) string {
	if len(l.marks) == 0 {
		return textFilter(l.s)
	}
	var b strings.Builder
	parts := strings.Split(l.s, string(mark))
	for i, part := range parts {
		b.WriteString(textFilter(part))
		if i < len(l.marks) {
			b.WriteString(l.marks[i])
		}
	}
	return b.String()
}
