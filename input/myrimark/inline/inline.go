/*
Package inline resolves inline markup of Myrimark text lines.

Inline markup is made up of spans with fixed delimiters:

	**bold**              <b>
	//italic//            <i>
	~~strikethrough~~     <s>
	__underline__         <u>
	:_subscript:          <sub>
	:^superscript:        <sup>
	:_^{lower}{upper}:    stacked sub- and superscript
	`code`                inline code
	[text](url)           hyperlink

A delimiter preceded by a backslash does not count as a delimiter. After all
spans have been resolved, backslashes in front of the characters

	* _ ~ / % : \

are removed. The content of spans is formatted recursively, with the
exception of inline code, which is taken literally.

Spans are resolved in passes, one pass per kind of span, in the order of
the table above, starting with stacked scripts and inline code and ending
with hyperlinks. Within a pass, spans are found left to right and every
match is replaced at its position. Text which has been converted to markup
by an earlier pass is opaque to later passes, but a later span may enclose it.
*/
package inline

import (
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"
)

// tracer traces with key 'myrimark.input'.
func tracer() tracing.Trace {
	return tracing.Select("myrimark.input")
}

// DefaultMaxDepth is the default nesting limit for recursive formatting.
const DefaultMaxDepth = 64

// Formatter formats single lines of text. The zero value is ready to use and
// will apply DefaultMaxDepth. A Formatter holds no state and may be shared
// between goroutines.
type Formatter struct {
	MaxDepth int // nesting limit; spans nested deeper are left unformatted
}

// New creates a formatter with a nesting limit of maxDepth.
func New(maxDepth int) *Formatter {
	return &Formatter{MaxDepth: maxDepth}
}

// Format resolves inline markup in text, using a default formatter.
func Format(text string) string {
	return (&Formatter{}).Format(text)
}

// Format resolves inline markup in text and returns HTML markup.
// Text outside of spans is not HTML-escaped, i.e. raw HTML in text will be
// passed through.
func (f *Formatter) Format(text string) string {
	if f == nil {
		f = &Formatter{}
	}
	// NUL is used to mark finished markup
	text = strings.ReplaceAll(text, string(mark), "\uFFFD")
	return f.format(line{s: text}, 0)
}

func (f *Formatter) maxDepth() int {
	if f.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return f.MaxDepth
}

func (f *Formatter) format(l line, depth int) string {
	if depth >= f.maxDepth() {
		tracer().Errorf("inline markup nested deeper than %d levels, left unformatted", f.maxDepth())
		return l.expand(Unescape)
	}
	for _, p := range passes {
		l = f.replace(l, depth, p)
	}
	return l.expand(Unescape)
}

// --- Passes ----------------------------------------------------------------

// A pass finds and converts spans of one kind.
type pass struct {
	name  string
	find  func(s string, from int) (span, bool)
	build func(f *Formatter, l line, sp span, depth int) string
}

// span is a match of a pass within a line. groups hold the start and end
// positions of the content parts.
type span struct {
	start, end int
	groups     [][2]int
}

var passes []pass

func init() {
	passes = []pass{
		{name: "stacked", find: findStacked, build: buildStacked},
		{name: "code", find: delimited("`", "`"), build: buildCode},
	}
	for _, e := range emphasis {
		passes = append(passes, pass{
			name:  e.tag,
			find:  delimited(e.open, e.close),
			build: wrap(e.tag),
		})
	}
	passes = append(passes, pass{name: "hyperlink", find: findHyperlink, build: buildHyperlink})
}

var emphasis = []struct {
	open, close, tag string
}{
	{"**", "**", "b"},
	{"//", "//", "i"},
	{"~~", "~~", "s"},
	{"__", "__", "u"},
	{":_", ":", "sub"},
	{":^", ":", "sup"},
}

// replace converts all spans of pass p in l, left to right.
func (f *Formatter) replace(l line, depth int, p pass) line {
	for from := 0; from < len(l.s); {
		sp, ok := p.find(l.s, from)
		if !ok {
			break
		}
		markup := p.build(f, l, sp, depth)
		l = l.replace(sp.start, sp.end, markup)
		from = sp.start + 1
	}
	return l
}

// delimited creates a finder for spans between an opening and a closing
// delimiter, not preceded by a backslash. Content is matched non-greedy and
// may not contain a newline.
func delimited(open, close string) func(string, int) (span, bool) {
	return func(s string, from int) (span, bool) {
		for i := from; i < len(s); i++ {
			if !delimiterAt(s, i, open) {
				continue
			}
			if j := closing(s, i+len(open), close); j >= 0 {
				return span{
					start:  i,
					end:    j + len(close),
					groups: [][2]int{{i + len(open), j}},
				}, true
			}
		}
		return span{}, false
	}
}

func findStacked(s string, from int) (span, bool) {
	const open = ":_^{"
	for i := from; i < len(s); i++ {
		if !delimiterAt(s, i, open) {
			continue
		}
		j := closing(s, i+len(open), "}{")
		if j < 0 {
			continue
		}
		k := closing(s, j+2, "}:")
		if k < 0 {
			continue
		}
		return span{
			start:  i,
			end:    k + 2,
			groups: [][2]int{{i + len(open), j}, {j + 2, k}},
		}, true
	}
	return span{}, false
}

// findHyperlink finds [text](url), with text and url non-empty. Brackets
// cannot be escaped.
func findHyperlink(s string, from int) (span, bool) {
	for i := from; i < len(s); i++ {
		if s[i] != '[' {
			continue
		}
		j := indexFrom(s, i+2, "](")
		if j < 0 {
			break
		}
		k := indexFrom(s, j+3, ")")
		if k < 0 {
			break
		}
		if strings.IndexByte(s[i:k], '\n') >= 0 {
			continue
		}
		return span{
			start:  i,
			end:    k + 1,
			groups: [][2]int{{i + 1, j}, {j + 2, k}},
		}, true
	}
	return span{}, false
}

func buildStacked(f *Formatter, l line, sp span, depth int) string {
	upper := f.format(l.sub(sp.groups[0][0], sp.groups[0][1]), depth+1)
	lower := f.format(l.sub(sp.groups[1][0], sp.groups[1][1]), depth+1)
	return `<span class="stacked"><span class="lower">` + lower +
		`</span><span class="upper">` + upper + `</span></span>`
}

func buildCode(f *Formatter, l line, sp span, depth int) string {
	code := l.sub(sp.groups[0][0], sp.groups[0][1]).expand(escapeLT)
	return `<pre class="inline-code">` + code + `</pre>`
}

func wrap(tag string) func(*Formatter, line, span, int) string {
	return func(f *Formatter, l line, sp span, depth int) string {
		content := f.format(l.sub(sp.groups[0][0], sp.groups[0][1]), depth+1)
		return "<" + tag + ">" + content + "</" + tag + ">"
	}
}

func buildHyperlink(f *Formatter, l line, sp span, depth int) string {
	text := f.format(l.sub(sp.groups[0][0], sp.groups[0][1]), depth+1)
	url := l.sub(sp.groups[1][0], sp.groups[1][1]).expand(Unescape)
	return `<a href="` + html.EscapeString(url) + `">` + text + `</a>`
}

// --- Scanning helpers ------------------------------------------------------

// delimiterAt is true if delim occurs at position i of s and is not preceded
// by a backslash.
func delimiterAt(s string, i int, delim string) bool {
	return strings.HasPrefix(s[i:], delim) && (i == 0 || s[i-1] != '\\')
}

// closing returns the position of the first unescaped occurrence of delim
// at or after from, not crossing a newline. It returns -1 if there is none.
func closing(s string, from int, delim string) int {
	for j := from; j < len(s); j++ {
		if s[j] == '\n' {
			return -1
		}
		if delimiterAt(s, j, delim) {
			return j
		}
	}
	return -1
}

func indexFrom(s string, from int, sub string) int {
	if from > len(s) {
		return -1
	}
	if k := strings.Index(s[from:], sub); k >= 0 {
		return from + k
	}
	return -1
}

// --- Escaping --------------------------------------------------------------

// Escapable is the set of characters which may be escaped by a backslash.
const Escapable = `*_~/%:\`

// Unescape removes backslashes in front of escapable characters.
func Unescape(s string) string {
	if strings.IndexByte(s, '\\') < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && strings.IndexByte(Escapable, s[i+1]) >= 0 {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func escapeLT(s string) string {
	return strings.ReplaceAll(s, "<", "&lt;")
}
