package xpathadapter

import (
	"testing"

	"github.com/npillmayer/myrimark/core"
	"github.com/npillmayer/myrimark/engine/dom"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestSelect(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "myrimark.dom")
	defer teardown()
	//
	root := testTree(t)
	nodes, err := Select(root, "//ol/li")
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "item1", innerText(nodes[0]))
	assert.Equal(t, "item2", innerText(nodes[1]))
	//
	nodes, err = Select(root, "//p[@id='top']")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "anchored", innerText(nodes[0]))
	//
	nodes, err = Select(root, "//p/@id")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "p", nodes[0].Data)
}

func TestEvaluate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "myrimark.dom")
	defer teardown()
	//
	root := testTree(t)
	v, err := Evaluate(root, "count(//li)")
	require.NoError(t, err)
	assert.Equal(t, float64(2), v)
	v, err = Evaluate(root, "string(//h1)")
	require.NoError(t, err)
	assert.Equal(t, "Title", v)
	_, err = Evaluate(root, "//li[")
	assert.Error(t, err)
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestNavigator(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "myrimark.dom")
	defer teardown()
	//
	root := testTree(t)
	nav := NewNavigator(root)
	assert.True(t, nav.MoveToChild()) // div
	assert.Equal(t, "div", nav.LocalName())
	assert.True(t, nav.MoveToChild()) // h1
	assert.Equal(t, "h1", nav.LocalName())
	assert.True(t, nav.MoveToNext())
	assert.Equal(t, "p", nav.LocalName())
	assert.True(t, nav.MoveToNextAttribute())
	assert.Equal(t, "id", nav.LocalName())
	assert.Equal(t, "top", nav.Value())
	assert.True(t, nav.MoveToParent())
	assert.True(t, nav.MoveToPrevious())
	assert.Equal(t, "h1", nav.LocalName())
	assert.False(t, nav.MoveToPrevious())
	nav.MoveToRoot()
	assert.False(t, nav.MoveToParent())
}

func testTree(t *testing.T) *html.Node {
	root := dom.NewContainer()
	root.AppendChild(dom.NewHeader(1, "", "Title"))
	p := dom.NewParagraph("anchored")
	p.ID = "top"
	root.AppendChild(p)
	list := dom.NewList(true)
	list.AppendChild(dom.NewListItem("item1"))
	list.AppendChild(dom.NewListItem("item2"))
	root.AppendChild(list)
	h, err := root.HTML()
	require.NoError(t, err)
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(h)
	return doc
}
