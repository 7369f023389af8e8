package myrimark

import "strings"

// StripComments removes comments from text.
//
// A block comment starts with `%[` and ends with the next `]%`, possibly
// spanning lines. A line comment starts with `%%` and extends to the end
// of the line; spaces in front of it are removed as well. A delimiter
// preceded by a backslash does not start or end a comment. A block comment
// without an end delimiter is left in place.
func StripComments(text string) string {
	out := make([]byte, 0, len(text))
	i := 0
	for i < len(text) {
		switch {
		case unescapedAt(text, i, "%["):
			if end := unescapedIndex(text, i+2, "]%"); end >= 0 {
				i = end + 2
				continue
			}
			tracer().Infof("unterminated block comment at position %d", i)
		case unescapedAt(text, i, "%%"):
			out = trimTrailingSpaces(out)
			if eol := strings.IndexByte(text[i:], '\n'); eol >= 0 {
				i += eol
			} else {
				i = len(text)
			}
			continue
		}
		out = append(out, text[i])
		i++
	}
	return string(out)
}

// unescapedAt is true if delim starts at position i of s and is not preceded
// by a backslash.
func unescapedAt(s string, i int, delim string) bool {
	return strings.HasPrefix(s[i:], delim) && (i == 0 || s[i-1] != '\\')
}

func unescapedIndex(s string, from int, delim string) int {
	for i := from; i < len(s); i++ {
		if unescapedAt(s, i, delim) {
			return i
		}
	}
	return -1
}

// trimTrailingSpaces drops the spaces at the end of out, in place.
func trimTrailingSpaces(out []byte) []byte {
	n := len(out)
	for n > 0 && out[n-1] == ' ' {
		n--
	}
	return out[:n]
}
