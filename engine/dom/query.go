package dom

import (
	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/myrimark/core"
	"golang.org/x/net/html"
)

// Query returns all HTML nodes below and including root which match a CSS
// selector.
func Query(root *html.Node, selector string) ([]*html.Node, error) {
	sel, err := compile(selector)
	if err != nil {
		return nil, err
	}
	return sel.MatchAll(root), nil
}

// QueryFirst returns the first HTML node below and including root which
// matches a CSS selector, or nil.
func QueryFirst(root *html.Node, selector string) (*html.Node, error) {
	sel, err := compile(selector)
	if err != nil {
		return nil, err
	}
	return sel.MatchFirst(root), nil
}

// Select renders the tree rooted at n and returns the HTML nodes matching
// a CSS selector.
func (n *Node) Select(selector string) ([]*html.Node, error) {
	h, err := n.HTML()
	if err != nil {
		return nil, err
	}
	return Query(h, selector)
}

func compile(selector string) (cascadia.Selector, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		tracer().Infof("invalid selector %q: %v", selector, err)
		return nil, core.WrapError(err, core.EINVALID, "invalid selector %q", selector)
	}
	return sel, nil
}
