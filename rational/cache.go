// Package rational: the per-state memo shared by the lazy operator
// wrappers.
//
// Each source state is in exactly one of two phases, "not yet computed" or
// "cached"; the transition is one-way and happens on the first arc or final
// query for that id. The source automaton is assumed immutable for the
// wrapper's whole lifetime, so a cached entry never needs invalidation.

package rational

import (
	"github.com/katalvlaran/weft/fst"
	"github.com/katalvlaran/weft/weight"
)

// cachedState is one memoized state: its final weight and expanded arc
// list.
type cachedState struct {
	known bool
	final weight.Weight
	arcs  []fst.Arc
}

// stateCache memoizes expanded states by dense id. The zero value is ready
// to use.
type stateCache struct {
	states []cachedState
}

// ensure returns the cached entry for s, expanding it through compute on
// the first visit. Repeat visits are O(1).
func (c *stateCache) ensure(s fst.StateID, compute func(fst.StateID) (weight.Weight, []fst.Arc)) *cachedState {
	if int(s) >= len(c.states) {
		grown := make([]cachedState, s+1)
		copy(grown, c.states)
		c.states = grown
	}
	entry := &c.states[s]
	if !entry.known {
		entry.final, entry.arcs = compute(s)
		entry.known = true
	}

	return entry
}

// clone deep-copies the memo so an independent handle never shares arc
// slices with its source.
func (c *stateCache) clone() *stateCache {
	out := &stateCache{states: make([]cachedState, len(c.states))}
	for i := range c.states {
		src := &c.states[i]
		arcs := make([]fst.Arc, len(src.arcs))
		copy(arcs, src.arcs)
		out.states[i] = cachedState{known: src.known, final: src.final, arcs: arcs}
	}

	return out
}
