/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parameters

import (
	"strconv"
	"strings"

	"github.com/emirpasic/gods/sets/linkedhashset"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'myrimark.input'.
func tracer() tracing.Trace {
	return tracing.Select("myrimark.input")
}

// Toggle is the name of a global switch of a document, set and reset by global
// commands like `\AutoIndexHeaders`.
type Toggle string

// Known global toggles.
const (
	AutoIndexHeaders Toggle = "AutoIndexHeaders" // prefix headers with section numbers
	EveryLineBreaks  Toggle = "EveryLineBreaks"  // every line of a paragraph is a block of its own
	HideImageErrors  Toggle = "HideImageErrors"  // do not show placeholders for broken images
)

// Toggles lists all known global toggles, in order of declaration.
var Toggles = []Toggle{AutoIndexHeaders, EveryLineBreaks, HideImageErrors}

// IsToggle returns true if name denotes a known global toggle.
func IsToggle(name string) bool {
	for _, t := range Toggles {
		if string(t) == name {
			return true
		}
	}
	return false
}

// MaxHeaderLevel is the deepest header level, corresponding to h6.
const MaxHeaderLevel = 6

// Registers holds the global state of a single parse call: the set of active
// toggles and a counter for every header level. The zero value is not usable,
// clients should call NewRegisters.
//
// Registers are not safe for concurrent use. Every parse call owns its own
// instance.
type Registers struct {
	toggles  *linkedhashset.Set
	counters [MaxHeaderLevel + 1]int // index 0 unused
}

// NewRegisters creates registers with all toggles in active set to on.
func NewRegisters(active ...Toggle) *Registers {
	regs := &Registers{toggles: linkedhashset.New()}
	for _, t := range active {
		regs.toggles.Add(t)
	}
	return regs
}

// Flip switches toggle t on if it has been off, and vice versa.
// It returns the new state of t.
func (regs *Registers) Flip(t Toggle) bool {
	if regs.toggles.Contains(t) {
		regs.toggles.Remove(t)
		tracer().Debugf("global toggle %s off", t)
		return false
	}
	regs.toggles.Add(t)
	tracer().Debugf("global toggle %s on", t)
	return true
}

// IsActive returns true if toggle t is currently switched on.
func (regs *Registers) IsActive(t Toggle) bool {
	if regs == nil {
		return false
	}
	return regs.toggles.Contains(t)
}

// Active returns the toggles currently switched on, in the order they have
// been activated.
func (regs *Registers) Active() []Toggle {
	values := regs.toggles.Values()
	active := make([]Toggle, len(values))
	for i, v := range values {
		active[i] = v.(Toggle)
	}
	return active
}

// NextHeader counts a header of a given level and returns its index prefix,
// e.g. "1.2.1". The counter for level is incremented and all deeper counters
// are reset to 0. Levels are clamped to 1…MaxHeaderLevel.
func (regs *Registers) NextHeader(level int) string {
	level = clamp(level)
	regs.counters[level]++
	for l := level + 1; l <= MaxHeaderLevel; l++ {
		regs.counters[l] = 0
	}
	return regs.Index(level)
}

// Index returns the dot-joined header counters for levels 1 up to level.
func (regs *Registers) Index(level int) string {
	level = clamp(level)
	var b strings.Builder
	for l := 1; l <= level; l++ {
		if l > 1 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.Itoa(regs.counters[l]))
	}
	return b.String()
}

// ResetHeaders sets all header counters to 0.
func (regs *Registers) ResetHeaders() {
	for l := range regs.counters {
		regs.counters[l] = 0
	}
	tracer().Debugf("header indexes reset")
}

func clamp(level int) int {
	if level < 1 {
		return 1
	}
	if level > MaxHeaderLevel {
		return MaxHeaderLevel
	}
	return level
}
