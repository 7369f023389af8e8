package parameters

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestHeaderIndexes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "myrimark.input")
	defer teardown()
	//
	regs := NewRegisters(AutoIndexHeaders)
	assert.Equal(t, "1", regs.NextHeader(1))
	assert.Equal(t, "1.1", regs.NextHeader(2))
	assert.Equal(t, "1.2", regs.NextHeader(2))
	assert.Equal(t, "1.2.1", regs.NextHeader(3))
	assert.Equal(t, "2", regs.NextHeader(1))
	assert.Equal(t, "2.1", regs.NextHeader(2), "level 2 should restart after a new level 1 header")
	assert.Equal(t, "2.1.0.0.0.1", regs.NextHeader(9), "levels should be clamped to h6")
	regs.ResetHeaders()
	assert.Equal(t, "1", regs.NextHeader(1))
}

func TestToggles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "myrimark.input")
	defer teardown()
	//
	regs := NewRegisters()
	assert.False(t, regs.IsActive(HideImageErrors))
	assert.True(t, regs.Flip(HideImageErrors))
	assert.True(t, regs.Flip(EveryLineBreaks))
	assert.Equal(t, []Toggle{HideImageErrors, EveryLineBreaks}, regs.Active())
	assert.False(t, regs.Flip(HideImageErrors))
	assert.False(t, regs.IsActive(HideImageErrors))
	assert.True(t, IsToggle("AutoIndexHeaders"))
	assert.False(t, IsToggle("ResetHeaderIndexes"))
	var none *Registers
	assert.False(t, none.IsActive(AutoIndexHeaders))
}
