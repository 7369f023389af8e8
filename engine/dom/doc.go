/*
Package dom implements the output tree of a Myrimark parse.

A parse produces a tree of Nodes. Every Node is of a Kind: containers group
sections of a document, block nodes (paragraphs, lists, headers, code blocks)
hold inline-formatted markup, and a couple of kinds carry the results of local
commands, like images or highlighted text.

The tree is a presentation-neutral structure. Clients get HTML from it by
calling Render or HTML, which map every Kind to its HTML element:

	Container    → div
	Paragraph    → p
	List         → ol | ul
	ListItem     → li
	Checklist    → form, with one span per CheckItem
	Header       → h1 … h6
	CodeBlock    → pre
	Image        → div, containing img and an error placeholder
	Highlight    → span.hl-text
	Preformatted → pre
	Markup       → raw HTML, inserted unescaped into the parent
	Text/Invalid → text

Images are special, as their final appearance depends on whether the image
source can be loaded. This is an asynchronous event outside of the parse.
See type ImageState.
*/
package dom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'myrimark.dom'.
func tracer() tracing.Trace {
	return tracing.Select("myrimark.dom")
}
