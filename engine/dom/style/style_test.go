package style

import (
	"testing"

	"github.com/npillmayer/myrimark/core"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyleSet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "myrimark.dom")
	defer teardown()
	//
	s := &Style{}
	assert.True(t, s.Empty())
	require.NoError(t, s.Set(BackgroundColor, "#ffe0e0"))
	require.NoError(t, s.Set(Padding, "4px 8px"))
	require.NoError(t, s.Set(BackgroundColor, "green"))
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []Property{BackgroundColor, Padding}, s.Properties())
	v, ok := s.Get("Background-Color")
	assert.True(t, ok)
	assert.Equal(t, "green", v)
	assert.Equal(t, "background-color: green; padding: 4px 8px;", s.String())
	s.Remove(" BACKGROUND-color")
	assert.Equal(t, "padding: 4px 8px;", s.String())
	_, ok = s.Get(BackgroundColor)
	assert.False(t, ok)
}

func TestStyleRejectsInjection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "myrimark.dom")
	defer teardown()
	//
	s := &Style{}
	err := s.Set(Color, "red; position: fixed")
	assert.Error(t, err)
	assert.Equal(t, core.EINVALID, core.Code(err))
	assert.Error(t, s.Set(Color, "  "))
	assert.True(t, s.Empty())
}

func TestStyleParse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "myrimark.dom")
	defer teardown()
	//
	s, err := Parse("column-count: 2; border-radius: 6px;")
	require.NoError(t, err)
	v, ok := s.Get(ColumnCount)
	assert.True(t, ok)
	assert.Equal(t, "2", v)
	assert.Equal(t, 2, s.Len())
	var none *Style
	assert.Equal(t, 0, none.Len())
}
