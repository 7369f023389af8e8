/*
Package segment splits Myrimark documents into a tree of segments.

A document is a sequence of lines. Lines starting with `$begin` open a
group, lines ending in `$end` close the innermost open group. Groups may be
nested. Segmenting produces a tree where text outside of groups is collected
in leaves, and every matching `$begin … $end` pair results in exactly one
Group segment.

The `$begin` line of a group is kept as the group's first line, with the
leading `$` replaced by `:`. This turns it into an invocation of the local
command `begin`, which applies to the group's container. The closing line is
replaced by an end marker line. Both are separated from the group's content
by blank lines, so that they form paragraphs of their own.

An `$end` without an open group is plain text. Groups still open at the end
of the document are closed there.
*/
package segment

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'myrimark.input'.
func tracer() tracing.Trace {
	return tracing.Select("myrimark.input")
}

// EndMarker is the last line of every group. Paragraphs starting with `$`
// do not produce any output.
const EndMarker = "$end"

// Kind is the type of a segment.
type Kind int8

const (
	LeafKind Kind = iota
	GroupKind
)

// Segment is a node of the block tree of a document: either a leaf with
// text, or a group of segments.
type Segment struct {
	Kind     Kind
	Text     string    // text of a leaf
	Children []Segment // children of a group
}

// Leaf creates a leaf segment.
func Leaf(text string) Segment {
	return Segment{Kind: LeafKind, Text: text}
}

// Group creates a group segment.
func Group(children ...Segment) Segment {
	if children == nil {
		children = []Segment{}
	}
	return Segment{Kind: GroupKind, Children: children}
}

// IsGroup is true for group segments.
func (seg Segment) IsGroup() bool {
	return seg.Kind == GroupKind
}

func (seg Segment) String() string {
	if !seg.IsGroup() {
		return fmt.Sprintf("%q", seg.Text)
	}
	parts := make([]string, len(seg.Children))
	for i, ch := range seg.Children {
		parts[i] = ch.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Segments splits text into segments and condenses them, i.e. it is a
// shortcut for Condense(Split(text)).
func Segments(text string) []Segment {
	return Condense(Split(text))
}

// Split splits text into lines and nests groups. The result contains one
// leaf per line outside of groups, and a group segment per top-level group.
// Groups contain one leaf per line as well.
func Split(text string) []Segment {
	lines := strings.Split(text, "\n")
	top := &builder{}
	open := arraystack.New() // of *builder
	current := func() *builder {
		if b, ok := open.Peek(); ok {
			return b.(*builder)
		}
		return top
	}
	for _, line := range lines {
		switch {
		case isBegin(line):
			b := &builder{}
			b.add(Leaf(":" + strings.TrimSpace(line)[1:]))
			b.add(Leaf(""))
			open.Push(b)
			tracer().Debugf("segment: open group at level %d", open.Size())
		case isEnd(line) && !open.Empty():
			closeGroup(open, current)
		default:
			current().add(Leaf(line))
		}
	}
	if !open.Empty() {
		tracer().Infof("segment: %d group(s) not closed at end of document", open.Size())
		for !open.Empty() {
			closeGroup(open, current)
		}
	}
	return top.items
}

func closeGroup(open *arraystack.Stack, current func() *builder) {
	b, _ := open.Pop()
	group := b.(*builder)
	group.add(Leaf(""))
	group.add(Leaf(EndMarker))
	current().add(Group(group.items...))
	tracer().Debugf("segment: closed group, level now %d", open.Size())
}

func isBegin(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "$begin")
}

func isEnd(line string) bool {
	return strings.HasSuffix(strings.TrimSpace(line), "$end")
}

type builder struct {
	items []Segment
}

func (b *builder) add(seg Segment) {
	b.items = append(b.items, seg)
}

// Condense joins runs of adjacent leaves into single leaves, with every line
// terminated by a newline. Groups are condensed recursively. Order is
// preserved, and no empty leaves are created.
func Condense(segs []Segment) []Segment {
	var result []Segment
	var run strings.Builder
	flush := func() {
		if run.Len() > 0 {
			result = append(result, Leaf(run.String()))
			run.Reset()
		}
	}
	for _, seg := range segs {
		if seg.IsGroup() {
			flush()
			result = append(result, Group(Condense(seg.Children)...))
			continue
		}
		run.WriteString(seg.Text)
		run.WriteByte('\n')
	}
	flush()
	return result
}
