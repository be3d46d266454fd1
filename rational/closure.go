// Package rational: Kleene closure, eager and lazy.

package rational

import (
	"github.com/katalvlaran/weft/fst"
	"github.com/katalvlaran/weft/weight"
)

// ClosureType selects the closure variant.
type ClosureType int

const (
	// ClosureStar accepts zero or more repetitions: a new final super-start
	// grants the empty sequence.
	ClosureStar ClosureType = iota

	// ClosurePlus accepts one or more repetitions: no empty path is added.
	ClosurePlus
)

// Closure rewrites m in place into its Kleene closure: every final state
// with weight w other than Zero gains an epsilon arc back to the start,
// weighted w. Under ClosureStar a fresh state becomes the new start, final
// with weight One, with an unconditional epsilon arc to the old start when
// one existed.
//
// An empty automaton stays empty under ClosurePlus (no accepting path);
// under ClosureStar it gains a single final state accepting exactly the
// empty sequence. The cached property bitset is updated by transfer, not
// recomputation. Complexity: O(states).
func Closure(m fst.MutableFst, typ ClosureType) {
	props := fst.ClosureProperties(m.Properties(fst.PropsAll, false), typ == ClosureStar)
	sr := m.Semiring()
	zero := sr.Zero()
	start := m.Start()
	n := m.NumStates()
	if start != fst.NoStateID {
		for s := fst.StateID(0); int(s) < n; s++ {
			if w := m.Final(s); !w.Equal(zero) {
				m.AddArc(s, fst.NewArc(fst.Epsilon, fst.Epsilon, w, start))
			}
		}
	}
	if typ == ClosureStar {
		super := m.AddState()
		m.SetFinal(super, sr.One())
		if start != fst.NoStateID {
			m.AddArc(super, fst.NewArc(fst.Epsilon, fst.Epsilon, sr.One(), start))
		}
		m.SetStart(super)
	}
	m.SetProperties(props, fst.PropsAll)
}

// ClosureFst is the delayed form of Closure: a read-only view over an
// unmodified source, expanding one state at a time on first visit. Under
// ClosureStar the super-start is the state numbered NumStates of the
// source. The source must not be mutated while the wrapper is alive.
type ClosureFst struct {
	src   fst.Fst
	typ   ClosureType
	cache *stateCache
	props uint64
}

var _ fst.Fst = (*ClosureFst)(nil)

// NewClosureFst wraps src in its delayed closure. Complexity: O(1).
func NewClosureFst(src fst.Fst, typ ClosureType) *ClosureFst {
	props := fst.ClosureProperties(src.Properties(fst.PropsAll, false), typ == ClosureStar)
	props = (props &^ fst.PropMutable) | fst.PropExpanded

	return &ClosureFst{src: src, typ: typ, cache: &stateCache{}, props: props}
}

// superStart returns the id of the STAR super-start, or NoStateID under
// PLUS.
func (c *ClosureFst) superStart() fst.StateID {
	if c.typ == ClosureStar {
		return fst.StateID(c.src.NumStates())
	}

	return fst.NoStateID
}

// expand computes one state of the closure: the super-start owns at most
// one epsilon arc to the old start, and a source state's arc list is the
// source list plus the epsilon back-arc when the state is final.
func (c *ClosureFst) expand(s fst.StateID) (weight.Weight, []fst.Arc) {
	sr := c.src.Semiring()
	start := c.src.Start()
	if s == c.superStart() {
		if start == fst.NoStateID {
			return sr.One(), nil
		}

		return sr.One(), []fst.Arc{fst.NewArc(fst.Epsilon, fst.Epsilon, sr.One(), start)}
	}
	final := c.src.Final(s)
	arcs := make([]fst.Arc, 0, c.src.NumArcs(s)+1)
	for it := c.src.Arcs(s); !it.Done(); it.Next() {
		arcs = append(arcs, it.Value())
	}
	if start != fst.NoStateID && !final.Equal(sr.Zero()) {
		arcs = append(arcs, fst.NewArc(fst.Epsilon, fst.Epsilon, final, start))
	}

	return final, arcs
}

// Start returns the super-start under STAR, the source start under PLUS.
func (c *ClosureFst) Start() fst.StateID {
	if c.typ == ClosureStar {
		return c.superStart()
	}

	return c.src.Start()
}

// Final returns the state's final weight, expanding it on first visit.
func (c *ClosureFst) Final(s fst.StateID) weight.Weight {
	return c.cache.ensure(s, c.expand).final
}

// NumStates returns the source count, plus the STAR super-start.
func (c *ClosureFst) NumStates() int {
	n := c.src.NumStates()
	if c.typ == ClosureStar {
		n++
	}

	return n
}

// NumArcs returns the arc count at s, expanding it on first visit.
func (c *ClosureFst) NumArcs(s fst.StateID) int {
	return len(c.cache.ensure(s, c.expand).arcs)
}

// Arcs returns an iterator over the arcs at s; the state is expanded and
// cached on first visit, so repeat visits are O(1).
func (c *ClosureFst) Arcs(s fst.StateID) *fst.ArcIterator {
	return fst.NewArcIterator(c.cache.ensure(s, c.expand).arcs)
}

// InputSymbols returns the source's input table.
func (c *ClosureFst) InputSymbols() *fst.SymbolTable { return c.src.InputSymbols() }

// OutputSymbols returns the source's output table.
func (c *ClosureFst) OutputSymbols() *fst.SymbolTable { return c.src.OutputSymbols() }

// Semiring returns the source's weight algebra.
func (c *ClosureFst) Semiring() weight.Semiring { return c.src.Semiring() }

// Properties returns the bits known from the closure transfer function;
// with test=true the remaining unknown bits under mask are computed by
// expanding every state, and cached.
func (c *ClosureFst) Properties(mask uint64, test bool) uint64 {
	if test && mask&^fst.KnownProps(c.props) != 0 {
		c.props = (c.props & fst.PropsBinary) | fst.ComputeProperties(c)
	}

	return c.props & mask
}

// Copy produces a second handle. With independent=false the source handle
// and the memo are shared; with independent=true the source is copied
// independently and the memo is cloned.
func (c *ClosureFst) Copy(independent bool) fst.Fst {
	if independent {
		return &ClosureFst{src: c.src.Copy(true), typ: c.typ, cache: c.cache.clone(), props: c.props}
	}

	return &ClosureFst{src: c.src.Copy(false), typ: c.typ, cache: c.cache, props: c.props}
}
