// Package rational: complementation of a deterministic acceptor, lazy.

package rational

import (
	"errors"

	"github.com/katalvlaran/weft/fst"
	"github.com/katalvlaran/weft/weight"
)

// RhoLabel marks a completion arc: it stands for every label not otherwise
// leaving a state. It is negative so it can never collide with a real
// label and sorts before all of them, preserving label order.
const RhoLabel fst.Label = -2

// ErrComplementSource rejects a source that is not an unweighted,
// epsilon-free, deterministic acceptor; the language complement is only
// defined over those.
var ErrComplementSource = errors.New("rational: complement source must be an unweighted epsilon-free deterministic acceptor")

// ComplementFst is the delayed complement of a deterministic acceptor: the
// source is first completed, so every label can be read from every state,
// then final and non-final states exchange roles. Completion is expressed
// through RhoLabel arcs into a dedicated completion state, which is state
// 0 of the result; result state s corresponds to source state s-1. Each
// state's arc list starts with its completion arc, followed by the source
// arcs with shifted destinations. The source must not be mutated while the
// wrapper is alive.
type ComplementFst struct {
	src   fst.Fst
	cache *stateCache
	props uint64
}

var _ fst.Fst = (*ComplementFst)(nil)

// NewComplementFst wraps src in its delayed complement. It fails with
// ErrComplementSource unless src is an unweighted epsilon-free
// deterministic acceptor, computing those bits when unknown.
func NewComplementFst(src fst.Fst) (*ComplementFst, error) {
	const need = fst.PropAcceptor | fst.PropUnweighted | fst.PropNoEpsilons | fst.PropIDeterministic
	if src.Properties(need, true)&need != need {
		return nil, ErrComplementSource
	}
	props := fst.ComplementProperties(src.Properties(fst.PropsAll, false))
	props = (props &^ fst.PropMutable) | fst.PropExpanded

	return &ComplementFst{src: src, cache: &stateCache{}, props: props}, nil
}

// expand computes one state of the complement: the completion state is
// final with only its own completion self-arc, and a source state gets its
// completion arc first, then the source arcs shifted by one, with finality
// exchanged.
func (c *ComplementFst) expand(s fst.StateID) (weight.Weight, []fst.Arc) {
	sr := c.src.Semiring()
	rho := fst.NewArc(RhoLabel, RhoLabel, sr.One(), 0)
	if s == 0 {
		return sr.One(), []fst.Arc{rho}
	}
	t := s - 1
	arcs := make([]fst.Arc, 0, c.src.NumArcs(t)+1)
	arcs = append(arcs, rho)
	for it := c.src.Arcs(t); !it.Done(); it.Next() {
		a := it.Value()
		a.NextState++
		arcs = append(arcs, a)
	}
	if c.src.Final(t).Equal(sr.Zero()) {
		return sr.One(), arcs
	}

	return sr.Zero(), arcs
}

// Start returns the shifted source start, or the completion state when the
// source has none (the complement of the empty language).
func (c *ComplementFst) Start() fst.StateID {
	if s := c.src.Start(); s != fst.NoStateID {
		return s + 1
	}

	return 0
}

// Final returns the state's final weight, expanding it on first visit.
func (c *ComplementFst) Final(s fst.StateID) weight.Weight {
	return c.cache.ensure(s, c.expand).final
}

// NumStates returns the source count plus the completion state.
func (c *ComplementFst) NumStates() int { return c.src.NumStates() + 1 }

// NumArcs returns the arc count at s, expanding it on first visit.
func (c *ComplementFst) NumArcs(s fst.StateID) int {
	return len(c.cache.ensure(s, c.expand).arcs)
}

// Arcs returns an iterator over the arcs at s; the state is expanded and
// cached on first visit.
func (c *ComplementFst) Arcs(s fst.StateID) *fst.ArcIterator {
	return fst.NewArcIterator(c.cache.ensure(s, c.expand).arcs)
}

// InputSymbols returns the source's input table.
func (c *ComplementFst) InputSymbols() *fst.SymbolTable { return c.src.InputSymbols() }

// OutputSymbols returns the source's output table.
func (c *ComplementFst) OutputSymbols() *fst.SymbolTable { return c.src.OutputSymbols() }

// Semiring returns the source's weight algebra.
func (c *ComplementFst) Semiring() weight.Semiring { return c.src.Semiring() }

// Properties returns the bits known from the complement transfer function;
// with test=true the remaining unknown bits under mask are computed by
// expanding every state, and cached.
func (c *ComplementFst) Properties(mask uint64, test bool) uint64 {
	if test && mask&^fst.KnownProps(c.props) != 0 {
		c.props = (c.props & fst.PropsBinary) | fst.ComputeProperties(c)
	}

	return c.props & mask
}

// Copy produces a second handle. With independent=false the source handle
// and the memo are shared; with independent=true the source is copied
// independently and the memo is cloned.
func (c *ComplementFst) Copy(independent bool) fst.Fst {
	if independent {
		return &ComplementFst{src: c.src.Copy(true), cache: c.cache.clone(), props: c.props}
	}

	return &ComplementFst{src: c.src.Copy(false), cache: c.cache, props: c.props}
}
