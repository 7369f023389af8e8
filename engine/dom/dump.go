package dom

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes an indented outline of the tree rooted at n to w.
// It is intended for debugging.
func (n *Node) Dump(w io.Writer) {
	n.dump(w, 0)
}

func (n *Node) dump(w io.Writer, level int) {
	fmt.Fprintf(w, "%s%s", strings.Repeat("  ", level), n)
	if n.ID != "" {
		fmt.Fprintf(w, " #%s", n.ID)
	}
	if len(n.classes) > 0 {
		fmt.Fprintf(w, " .%s", strings.Join(n.classes, "."))
	}
	if !n.Style.Empty() {
		fmt.Fprintf(w, " {%s}", n.Style.String())
	}
	switch {
	case n.Image != nil:
		fmt.Fprintf(w, " %s", n.Image)
	case n.Markup != "":
		fmt.Fprintf(w, " %q", abbrev(n.Markup))
	case n.Text != "":
		fmt.Fprintf(w, " %q", abbrev(n.Text))
	}
	fmt.Fprintln(w)
	for _, ch := range n.kids {
		ch.dump(w, level+1)
	}
}

func abbrev(s string) string {
	const max = 40
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
