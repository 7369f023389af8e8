package myrimark

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestClassifySingleLine(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "myrimark.input")
	defer teardown()
	//
	for line, kind := range map[string]Kind{
		":image{x}":            LocalCommandPara,
		"# Header":             Header,
		`\EveryLine`:           GlobalCommandPara,
		"$end":                 Null,
		"`code":                CodeBlock,
		"* item":               Plain,
		"- item":               Plain,
		"> todo":               Plain,
		"**bold //it// text**": Plain,
		"just text":            Plain,
		"äöü":                  Plain,
		"":                     Plain,
		"étude *":              Plain,
		"\xff\xfe bad":         Plain,
	} {
		assert.Equal(t, kind, Classify([]string{line}), "line %q", line)
	}
}

func TestClassifyMultiLine(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "myrimark.input")
	defer teardown()
	//
	assert.Equal(t, UnorderedList, Classify([]string{"* a", "*b"}))
	assert.Equal(t, OrderedList, Classify([]string{"- a", "- b", "-c"}))
	assert.Equal(t, Checklist, Classify([]string{"> a", "> b"}))
	assert.Equal(t, Header, Classify([]string{"# a", "## b"}))
	assert.Equal(t, CodeBlock, Classify([]string{"` a", "` b"}))
	assert.Equal(t, GlobalCommandPara, Classify([]string{`\a`, `\b`}))
	assert.Equal(t, LocalCommandPara, Classify([]string{":a", ":b"}))
	assert.Equal(t, Plain, Classify([]string{"$a", "$b"}))
	assert.Equal(t, Plain, Classify([]string{"a", ""}))
	assert.Equal(t, Plain, Classify(nil))
}

// Lines with differing first characters always make up a plain paragraph.
func TestClassifyMixedIsPlain(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "myrimark.input")
	defer teardown()
	//
	firsts := []string{"*", "-", ">", "#", "`", `\`, ":", "$", "a", " "}
	for _, a := range firsts {
		for _, b := range firsts {
			if a == b {
				continue
			}
			lines := []string{a + " one", a + " two", b + " three"}
			assert.Equal(t, Plain, Classify(lines), "lines %q", lines)
			lines = []string{b + " one", a + " two"}
			assert.Equal(t, Plain, Classify(lines), "lines %q", lines)
		}
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "OrderedList", OrderedList.String())
	assert.Equal(t, "Kind(?)", Kind(42).String())
}
