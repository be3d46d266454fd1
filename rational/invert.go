// Package rational: inversion, eager and lazy.

package rational

import (
	"github.com/katalvlaran/weft/fst"
	"github.com/katalvlaran/weft/weight"
)

// Invert rewrites m in place into its inverse: every arc exchanges its
// input and output labels, and the automaton-level symbol tables swap
// sides (a missing table stays missing). No state is added or removed and
// no weight changes. The cached property bitset is updated by transfer.
// Complexity: O(states + arcs).
func Invert(m fst.MutableFst) {
	props := fst.InvertProperties(m.Properties(fst.PropsAll, false))
	isyms := m.InputSymbols().Copy()
	osyms := m.OutputSymbols().Copy()
	n := m.NumStates()
	for s := fst.StateID(0); int(s) < n; s++ {
		for it := m.MutableArcs(s); !it.Done(); it.Next() {
			a := it.Value()
			a.ILabel, a.OLabel = a.OLabel, a.ILabel
			it.SetValue(a)
		}
	}
	m.SetInputSymbols(osyms)
	m.SetOutputSymbols(isyms)
	m.SetProperties(props, fst.PropsAll)
}

// InvertFst is the delayed form of Invert: a read-only view whose states
// are relabeled on first visit and cached. The swapped symbol tables are
// captured once at construction, not per access. The source must not be
// mutated while the wrapper is alive.
type InvertFst struct {
	src   fst.Fst
	isyms *fst.SymbolTable
	osyms *fst.SymbolTable
	cache *stateCache
	props uint64
}

var _ fst.Fst = (*InvertFst)(nil)

// NewInvertFst wraps src in its delayed inverse. Complexity: O(symbols).
func NewInvertFst(src fst.Fst) *InvertFst {
	props := fst.InvertProperties(src.Properties(fst.PropsAll, false))
	props = (props &^ fst.PropMutable) | fst.PropExpanded

	return &InvertFst{
		src:   src,
		isyms: src.OutputSymbols().Copy(),
		osyms: src.InputSymbols().Copy(),
		cache: &stateCache{},
		props: props,
	}
}

// expand relabels one state: a pure per-arc map, nothing else changes.
func (c *InvertFst) expand(s fst.StateID) (weight.Weight, []fst.Arc) {
	arcs := make([]fst.Arc, 0, c.src.NumArcs(s))
	for it := c.src.Arcs(s); !it.Done(); it.Next() {
		a := it.Value()
		a.ILabel, a.OLabel = a.OLabel, a.ILabel
		arcs = append(arcs, a)
	}

	return c.src.Final(s), arcs
}

// Start returns the source start.
func (c *InvertFst) Start() fst.StateID { return c.src.Start() }

// Final returns the state's final weight, expanding it on first visit.
func (c *InvertFst) Final(s fst.StateID) weight.Weight {
	return c.cache.ensure(s, c.expand).final
}

// NumStates returns the source state count.
func (c *InvertFst) NumStates() int { return c.src.NumStates() }

// NumArcs returns the arc count at s.
func (c *InvertFst) NumArcs(s fst.StateID) int { return c.src.NumArcs(s) }

// Arcs returns an iterator over the relabeled arcs at s; the state is
// expanded and cached on first visit.
func (c *InvertFst) Arcs(s fst.StateID) *fst.ArcIterator {
	return fst.NewArcIterator(c.cache.ensure(s, c.expand).arcs)
}

// InputSymbols returns the captured table, the source's former output one.
func (c *InvertFst) InputSymbols() *fst.SymbolTable { return c.isyms }

// OutputSymbols returns the captured table, the source's former input one.
func (c *InvertFst) OutputSymbols() *fst.SymbolTable { return c.osyms }

// Semiring returns the source's weight algebra.
func (c *InvertFst) Semiring() weight.Semiring { return c.src.Semiring() }

// Properties returns the bits known from the inversion transfer function;
// with test=true the remaining unknown bits under mask are computed by
// expansion, and cached.
func (c *InvertFst) Properties(mask uint64, test bool) uint64 {
	if test && mask&^fst.KnownProps(c.props) != 0 {
		c.props = (c.props & fst.PropsBinary) | fst.ComputeProperties(c)
	}

	return c.props & mask
}

// Copy produces a second handle. With independent=false the source handle
// and the memo are shared; with independent=true the source is copied
// independently and the memo is cloned.
func (c *InvertFst) Copy(independent bool) fst.Fst {
	if independent {
		return &InvertFst{
			src:   c.src.Copy(true),
			isyms: c.isyms.Copy(),
			osyms: c.osyms.Copy(),
			cache: c.cache.clone(),
			props: c.props,
		}
	}

	return &InvertFst{
		src:   c.src.Copy(false),
		isyms: c.isyms,
		osyms: c.osyms,
		cache: c.cache,
		props: c.props,
	}
}
