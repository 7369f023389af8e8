package inline

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestEmphasis(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "myrimark.input")
	defer teardown()
	//
	for i, tc := range []struct {
		in, out string
	}{
		{"plain text", "plain text"},
		{"**bold**", "<b>bold</b>"},
		{"//italic//", "<i>italic</i>"},
		{"~~gone~~ and __under__", "<s>gone</s> and <u>under</u>"},
		{"H:_2:O and x:^2:", "H<sub>2</sub>O and x<sup>2</sup>"},
		{"**bold //and italic// text**", "<b>bold <i>and italic</i> text</b>"},
		{"**x** and **x**", "<b>x</b> and <b>x</b>"},
		{"**open but not closed", "**open but not closed"},
		{"****", "<b></b>"},
	} {
		assert.Equal(t, tc.out, Format(tc.in), "test case #%d", i)
	}
}

func TestEscapes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "myrimark.input")
	defer teardown()
	//
	assert.Equal(t, "**not bold**", Format(`\*\*not bold\*\*`))
	assert.Equal(t, "a // b <i> c </i>", Format(`a \// b // c //`))
	assert.Equal(t, `100% \n`, Format(`100\% \n`))
	assert.Equal(t, `\*`, Unescape(`\\*`))
	assert.Equal(t, "a:b", Unescape(`a\:b`))
}

func TestCommandSpans(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "myrimark.input")
	defer teardown()
	//
	assert.Equal(t,
		`<span class="stacked"><span class="lower">1</span><span class="upper">2</span></span>`,
		Format(":_^{2}{1}:"))
	assert.Equal(t, `use <pre class="inline-code">a**b** &lt; c</pre>`, Format("use `a**b** < c`"))
	assert.Equal(t, `<b>see <pre class="inline-code">x</pre></b>`, Format("**see `x`**"))
}

func TestHyperlinks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "myrimark.input")
	defer teardown()
	//
	assert.Equal(t, `<a href="https://go.dev"><b>go</b></a>`, Format("[**go**](https://go.dev)"))
	assert.Equal(t, `x <a href="a?b=1&amp;c=&#34;2&#34;">y</a> z`, Format(`x [y](a?b=1&c="2") z`))
	assert.Equal(t, `[](nothing)`, Format("[](nothing)"))
}

func TestMaxDepth(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "myrimark.input")
	defer teardown()
	//
	f := New(1)
	assert.Equal(t, "<b>a //b//</b>", f.Format("**a //b//**"))
	assert.Equal(t, "<b>a <i>b</i></b>", New(0).Format("**a //b//**"))
	assert.Equal(t, "�", Format("\x00"))
}
