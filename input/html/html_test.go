package html

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/myrimark/input/myrimark"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!DOCTYPE html>
<html><head><title>Notes</title></head>
<body>
<p>not touched, **really**</p>
<div class="myrimark-container" id="first">
  # Shopping
  - milk
  - eggs
</div>
<div class="other">**plain**</div>
<div class="myrimark-container">
  > call //mom//
  > buy milk
</div>
<div class="myrimark-container">%% nothing</div>
</body></html>`

func TestParsePage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "myrimark.input")
	defer teardown()
	//
	doc, err := ReadPage(strings.NewReader(page))
	require.NoError(t, err)
	n, err := ParsePage(doc.Nodes[0], nil)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "Shopping", doc.Find("div#first h1").Text())
	assert.Equal(t, 2, doc.Find("div#first ol > li").Length())
	assert.Equal(t, "mom", doc.Find("div.myrimark-container form i").Text())
	assert.Equal(t, "not touched, **really**", doc.Find("body > p").Text())
	assert.Equal(t, "**plain**", doc.Find("div.other").Text())
	assert.Equal(t, 0, doc.Find("div.myrimark-container").Last().Children().Length())
	assert.Equal(t, 1, doc.Find("div#first").Children().Length())
	//
	var out bytes.Buffer
	require.NoError(t, WritePage(&out, doc))
	assert.Contains(t, out.String(), `<div class="myrimark-container" id="first"><div><div><h1>Shopping</h1>`)
}

func TestParsePageWithParser(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "myrimark.input")
	defer teardown()
	//
	doc, err := ReadPage(strings.NewReader(page))
	require.NoError(t, err)
	p := myrimark.NewParser(myrimark.WithToggles("AutoIndexHeaders"))
	_, err = ParsePage(doc.Nodes[0], p)
	require.NoError(t, err)
	assert.Equal(t, "1 Shopping", doc.Find("div#first h1").Text())
	//
	_, err = ParsePage(nil, p)
	assert.Error(t, err)
	assert.Error(t, WritePage(discard{}, nil))
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func TestParsePageReplacesContent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "myrimark.input")
	defer teardown()
	//
	doc, err := ReadPage(strings.NewReader(`<div class="myrimark-container">hello</div>`))
	require.NoError(t, err)
	n, err := ParsePage(doc.Nodes[0], nil)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	div := doc.Find("div.myrimark-container")
	inner, err := div.Html()
	require.NoError(t, err)
	assert.Equal(t, "<div><div><p>hello</p></div></div>", inner)
}
