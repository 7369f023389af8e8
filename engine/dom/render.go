package dom

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/npillmayer/myrimark/core"
	"github.com/npillmayer/myrimark/engine/dom/style"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTML converts the tree rooted at n to a tree of HTML nodes.
// Markup content of nodes is parsed as an HTML fragment in the context of
// the node's element.
//
// If n does not map to exactly one element, the result is wrapped into a div.
func (n *Node) HTML() (*html.Node, error) {
	if n == nil {
		return nil, core.Error(core.EMISSING, "no document tree to render")
	}
	nodes, err := n.html(nil)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 1 && nodes[0].Type == html.ElementNode {
		return nodes[0], nil
	}
	div := element(atom.Div)
	for _, h := range nodes {
		div.AppendChild(h)
	}
	return div, nil
}

// Render writes the HTML for the tree rooted at n to w.
func (n *Node) Render(w io.Writer) error {
	h, err := n.HTML()
	if err != nil {
		return err
	}
	return html.Render(w, h)
}

// HTMLString returns the HTML for the tree rooted at n.
func (n *Node) HTMLString() (string, error) {
	var b bytes.Buffer
	if err := n.Render(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (n *Node) html(ctx *html.Node) ([]*html.Node, error) {
	switch n.Kind {
	case Text, Invalid:
		return []*html.Node{text(n.Text)}, nil
	case Markup:
		if ctx == nil {
			ctx = element(atom.Div)
		}
		return fragment(n.Markup, ctx)
	}
	e := n.element()
	n.decorate(e)
	switch n.Kind {
	case Image:
		n.imageContent(e)
	case CheckItem:
		e.AppendChild(element(atom.Input, attr("type", "checkbox")))
		span := element(atom.Span)
		if err := appendFragment(span, n.Markup); err != nil {
			return nil, err
		}
		e.AppendChild(span)
		e.AppendChild(element(atom.Br))
	default:
		if err := appendFragment(e, n.Markup); err != nil {
			return nil, err
		}
		if n.Text != "" {
			e.AppendChild(text(n.Text))
		}
	}
	for _, ch := range n.kids {
		nodes, err := ch.html(e)
		if err != nil {
			return nil, err
		}
		for _, h := range nodes {
			e.AppendChild(h)
		}
	}
	return []*html.Node{e}, nil
}

func (n *Node) element() *html.Node {
	switch n.Kind {
	case Paragraph:
		return element(atom.P)
	case List:
		if n.Ordered {
			return element(atom.Ol)
		}
		return element(atom.Ul)
	case ListItem:
		return element(atom.Li)
	case Checklist:
		return element(atom.Form)
	case CheckItem, Highlight:
		return element(atom.Span)
	case Header:
		return element(headers[n.Level-1])
	case CodeBlock, Preformatted:
		return element(atom.Pre)
	}
	return element(atom.Div)
}

var headers = [...]atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

func (n *Node) decorate(e *html.Node) {
	if n.ID != "" {
		e.Attr = append(e.Attr, attr("id", n.ID))
	}
	if len(n.classes) > 0 {
		e.Attr = append(e.Attr, attr("class", strings.Join(n.classes, " ")))
	}
	if !n.Style.Empty() {
		e.Attr = append(e.Attr, attr("style", n.Style.String()))
	}
}

func (n *Node) imageContent(e *html.Node) {
	img := n.Image
	imgStyle, errStyle := &style.Style{}, &style.Style{}
	_ = errStyle.Set(style.Color, "red")
	image := element(atom.Img, attr("src", img.Src))
	if img.ShowsImage() {
		w, h := img.Size()
		image.Attr = append(image.Attr, attr("width", strconv.Itoa(w)), attr("height", strconv.Itoa(h)))
		_ = imgStyle.Set(style.Display, "block")
	} else {
		_ = imgStyle.Set(style.Display, "none")
	}
	if img.ShowsError() {
		_ = errStyle.Set(style.Display, "block")
	} else {
		_ = errStyle.Set(style.Display, "none")
	}
	image.Attr = append(image.Attr, attr("style", imgStyle.String()))
	placeholder := element(atom.Span, attr("style", errStyle.String()))
	placeholder.AppendChild(text(img.ErrorText()))
	e.AppendChild(image)
	e.AppendChild(placeholder)
}

// --- Helpers ---------------------------------------------------------------

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func fragment(markup string, ctx *html.Node) ([]*html.Node, error) {
	nodes, err := html.ParseFragment(strings.NewReader(markup), ctx)
	if err != nil {
		tracer().Errorf("cannot parse markup %q: %v", markup, err)
		return nil, core.WrapError(err, core.EDECODE, "cannot parse markup")
	}
	return nodes, nil
}

func appendFragment(e *html.Node, markup string) error {
	if markup == "" {
		return nil
	}
	nodes, err := fragment(markup, e)
	if err != nil {
		return err
	}
	for _, h := range nodes {
		e.AppendChild(h)
	}
	return nil
}
