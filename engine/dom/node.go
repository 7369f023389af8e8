package dom

import (
	"fmt"
	"strings"

	"github.com/npillmayer/myrimark/engine/dom/style"
)

// Kind is the type of a node.
type Kind uint8

// Kinds of nodes of a document tree.
const (
	Container Kind = iota
	Paragraph
	List
	ListItem
	Checklist
	CheckItem
	Header
	CodeBlock
	Image
	Highlight
	Preformatted
	Markup
	Text
	Invalid
)

var kindNames = [...]string{
	"Container", "Paragraph", "List", "ListItem", "Checklist", "CheckItem", "Header",
	"CodeBlock", "Image", "Highlight", "Preformatted", "Markup", "Text", "Invalid",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Node is a node of a document tree.
//
// Nodes own their children exclusively. The only link upwards is the parent
// pointer, which local commands need to change the presentation of their
// enclosing container.
type Node struct {
	Kind    Kind
	Level   int         // level 1…6 for headers
	Ordered bool        // ordered or unordered list
	Index   string      // section index of an auto-indexed header, e.g. "1.2"
	ID      string      // element id
	Markup  string      // content, inserted as HTML
	Text    string      // content, inserted as text
	Style   style.Style // inline styles
	Image   *ImageState // for Kind Image
	classes []string
	parent  *Node
	kids    []*Node
}

// NewContainer creates a container node.
func NewContainer() *Node {
	return &Node{Kind: Container}
}

// NewParagraph creates a paragraph from inline-formatted markup.
func NewParagraph(markup string) *Node {
	return &Node{Kind: Paragraph, Markup: markup}
}

// NewList creates an empty list.
func NewList(ordered bool) *Node {
	return &Node{Kind: List, Ordered: ordered}
}

// NewListItem creates a list item from inline-formatted markup.
func NewListItem(markup string) *Node {
	return &Node{Kind: ListItem, Markup: markup}
}

// NewChecklist creates an empty checklist.
func NewChecklist() *Node {
	return &Node{Kind: Checklist}
}

// NewCheckItem creates a row of a checklist from inline-formatted markup.
func NewCheckItem(markup string) *Node {
	return &Node{Kind: CheckItem, Markup: markup}
}

// NewHeader creates a header of a given level. index may be empty.
func NewHeader(level int, index string, markup string) *Node {
	if level < 1 {
		level = 1
	} else if level > 6 {
		level = 6
	}
	return &Node{Kind: Header, Level: level, Index: index, Markup: markup}
}

// NewCodeBlock creates a code block. code has to be escaped by the caller.
func NewCodeBlock(code string) *Node {
	return &Node{Kind: CodeBlock, Markup: code}
}

// NewHighlight creates a span of highlighted text.
func NewHighlight(text string) *Node {
	n := &Node{Kind: Highlight, Text: text}
	n.AddClass("hl-text")
	return n
}

// NewPreformatted creates a block of preformatted text.
func NewPreformatted(text string) *Node {
	return &Node{Kind: Preformatted, Text: text}
}

// NewMarkup creates a node of raw markup, which will be inserted into
// the parent element unescaped.
func NewMarkup(markup string) *Node {
	return &Node{Kind: Markup, Markup: markup}
}

// NewText creates a text node.
func NewText(text string) *Node {
	return &Node{Kind: Text, Text: text}
}

// NewInvalid creates a marker for an invalid command.
func NewInvalid(text string) *Node {
	return &Node{Kind: Invalid, Text: text}
}

// Parent returns the parent of n, or nil for a root node.
func (n *Node) Parent() *Node {
	if n == nil {
		return nil
	}
	return n.parent
}

// Children returns the children of n.
func (n *Node) Children() []*Node {
	if n == nil {
		return nil
	}
	return n.kids
}

// ChildCount returns the number of children of n.
func (n *Node) ChildCount() int {
	if n == nil {
		return 0
	}
	return len(n.kids)
}

// Child returns the i-th child of n, or nil.
func (n *Node) Child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.kids) {
		return nil
	}
	return n.kids[i]
}

// AppendChild adds ch as the last child of n. If ch is attached to another
// parent, it is detached from there first.
func (n *Node) AppendChild(ch *Node) *Node {
	if ch == nil {
		return n
	}
	if ch.parent != nil {
		ch.parent.removeChild(ch)
	}
	ch.parent = n
	n.kids = append(n.kids, ch)
	return n
}

func (n *Node) removeChild(ch *Node) {
	for i, c := range n.kids {
		if c == ch {
			n.kids = append(n.kids[:i], n.kids[i+1:]...)
			ch.parent = nil
			return
		}
	}
}

// AddClass adds CSS classes to n. Duplicates and empty names are ignored.
func (n *Node) AddClass(names ...string) {
outer:
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		for _, c := range n.classes {
			if c == name {
				continue outer
			}
		}
		n.classes = append(n.classes, name)
	}
}

// HasClass returns true if n carries class name.
func (n *Node) HasClass(name string) bool {
	for _, c := range n.classes {
		if c == name {
			return true
		}
	}
	return false
}

// Classes returns the CSS classes of n, in order of addition.
func (n *Node) Classes() []string {
	return n.classes
}

// Walk calls f for n and all of its descendants, depth first. If f returns
// false, the children of a node are skipped.
func (n *Node) Walk(f func(*Node) bool) {
	if n == nil {
		return
	}
	if !f(n) {
		return
	}
	for _, ch := range n.kids {
		ch.Walk(f)
	}
}

// Find returns all nodes of a given kind in the subtree of n.
func (n *Node) Find(kind Kind) []*Node {
	var found []*Node
	n.Walk(func(x *Node) bool {
		if x.Kind == kind {
			found = append(found, x)
		}
		return true
	})
	return found
}

// Images returns all image nodes of the subtree of n.
func (n *Node) Images() []*ImageState {
	var images []*ImageState
	for _, x := range n.Find(Image) {
		if x.Image != nil {
			images = append(images, x.Image)
		}
	}
	return images
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	switch n.Kind {
	case Header:
		return fmt.Sprintf("%s(h%d)", n.Kind, n.Level)
	case List:
		if n.Ordered {
			return "List(ol)"
		}
		return "List(ul)"
	}
	return n.Kind.String()
}
