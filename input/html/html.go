/*
Package html renders Myrimark sections embedded in HTML pages.

A page may contain any number of containers of the form

	<div class="myrimark-container">
	  # Header
	  Some **Myrimark** text.
	</div>

The text content of every container is parsed as a Myrimark document and
replaces the container's children. Containers keep their attributes.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package html

import (
	"io"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/hashicorp/go-multierror"
	"github.com/npillmayer/myrimark/core"
	"github.com/npillmayer/myrimark/input/myrimark"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"
)

// tracer traces with key 'myrimark.input'.
func tracer() tracing.Trace {
	return tracing.Select("myrimark.input")
}

// ContainerSelector selects the elements of a page holding Myrimark text.
const ContainerSelector = "div.myrimark-container"

var containers = cascadia.MustCompile(ContainerSelector)

// ReadPage parses an HTML page.
func ReadPage(r io.Reader) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		tracer().Errorf("unable to parse HTML page: %s", err)
		return nil, core.WrapError(err, core.EDECODE, "cannot parse HTML page")
	}
	return doc, nil
}

// ParsePage replaces the content of every Myrimark container within the
// tree at root by the document tree rendered from it. If p is nil, a default
// parser is used. ParsePage returns the number of containers processed.
// Containers which fail to render are left untouched and reported in the
// returned error; the other containers are processed nevertheless.
func ParsePage(root *html.Node, p *myrimark.Parser) (int, error) {
	if root == nil {
		return 0, core.Error(core.EMISSING, "no page to process")
	}
	if p == nil {
		p = myrimark.NewParser()
	}
	var errs error
	count := 0
	goquery.NewDocumentFromNode(root).FindMatcher(containers).Each(func(i int, div *goquery.Selection) {
		doc := p.Parse(div.Text())
		if doc == nil {
			div.Empty()
			count++
			return
		}
		h, err := doc.HTML()
		if err != nil {
			tracer().Errorf("container #%d: %v", i, err)
			errs = multierror.Append(errs, err)
			return
		}
		div.Empty()
		div.AppendNodes(h)
		count++
	})
	tracer().Infof("rendered %d Myrimark container(s)", count)
	return count, errs
}

// WritePage writes an HTML page to w.
func WritePage(w io.Writer, doc *goquery.Document) error {
	if doc == nil || len(doc.Nodes) == 0 {
		return core.Error(core.EMISSING, "no page to write")
	}
	if err := html.Render(w, doc.Nodes[0]); err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot write HTML page")
	}
	return nil
}
