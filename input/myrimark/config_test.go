package myrimark

import (
	"testing"

	"github.com/npillmayer/myrimark/engine/dom"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsFromConfig(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "myrimark.input")
	defer teardown()
	//
	conf := testconfig.Conf{}
	conf.Set(ConfMaxDepth, "1")
	conf.Set(ConfToggles, `\AutoIndexHeaders, HideImageErrors`)
	p := NewParser(OptionsFrom(conf)...)
	assert.Equal(t, 1, p.maxDepth)
	assert.Len(t, p.toggles, 2)
	root := p.Parse("# A\n\n$begin{x}\n$begin{y}\nz\n$end\n$end")
	require.NotNil(t, root)
	assert.Equal(t, "1 A", root.Find(dom.Header)[0].Markup)
	assert.Empty(t, root.Find(dom.Paragraph))
	assert.Empty(t, NewParser(OptionsFrom(nil)...).toggles)
}
