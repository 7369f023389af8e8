package segment

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestSplitFlat(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "myrimark.input")
	defer teardown()
	//
	segs := Split("a\nb\n\nc")
	want := []Segment{Leaf("a"), Leaf("b"), Leaf(""), Leaf("c")}
	if diff := cmp.Diff(want, segs); diff != "" {
		t.Errorf("Split mismatch (-want +got):\n%s", diff)
	}
	condensed := Condense(segs)
	if diff := cmp.Diff([]Segment{Leaf("a\nb\n\nc\n")}, condensed); diff != "" {
		t.Errorf("Condense mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitGroup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "myrimark.input")
	defer teardown()
	//
	segs := Split("a\n$begin{center}\nb\n$end\nc")
	want := []Segment{
		Leaf("a"),
		Group(Leaf(":begin{center}"), Leaf(""), Leaf("b"), Leaf(""), Leaf(EndMarker)),
		Leaf("c"),
	}
	if diff := cmp.Diff(want, segs); diff != "" {
		t.Errorf("Split mismatch (-want +got):\n%s", diff)
	}
	condensed := Segments("a\n$begin{center}\nb\n$end\nc")
	wantCondensed := []Segment{
		Leaf("a\n"),
		Group(Leaf(":begin{center}\n\nb\n\n$end\n")),
		Leaf("c\n"),
	}
	if diff := cmp.Diff(wantCondensed, condensed); diff != "" {
		t.Errorf("Segments mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitNested(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "myrimark.input")
	defer teardown()
	//
	segs := Segments("$begin{x}\n  $begin{y}\nz\n$end\n$end")
	want := []Segment{
		Group(
			Leaf(":begin{x}\n\n"),
			Group(Leaf(":begin{y}\n\nz\n\n$end\n")),
			Leaf("\n$end\n"),
		),
	}
	if diff := cmp.Diff(want, segs); diff != "" {
		t.Errorf("Segments mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, `[":begin{x}\n\n" [":begin{y}\n\nz\n\n$end\n"] "\n$end\n"]`, segs[0].String())
}

func TestUnbalanced(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "myrimark.input")
	defer teardown()
	//
	segs := Segments("a\n$end\nb")
	if diff := cmp.Diff([]Segment{Leaf("a\n$end\nb\n")}, segs); diff != "" {
		t.Errorf("unmatched $end should be text (-want +got):\n%s", diff)
	}
	segs = Segments("$begin{q}\nx")
	want := []Segment{Group(Leaf(":begin{q}\n\nx\n\n$end\n"))}
	if diff := cmp.Diff(want, segs); diff != "" {
		t.Errorf("unclosed group should be closed at end (-want +got):\n%s", diff)
	}
	assert.True(t, segs[0].IsGroup())
	assert.Equal(t, []Segment{Leaf("\n")}, Segments(""))
}
