package rational_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/weft/fst"
	"github.com/katalvlaran/weft/rational"
	"github.com/katalvlaran/weft/weight"
)

// singleSymbol builds the automaton accepting exactly "a" (label 1) with
// the given path weight: states {0,1}, start 0, Final(1)=One.
func singleSymbol(t *testing.T, w weight.Weight) *fst.VectorFst {
	t.Helper()
	f := fst.NewVectorFst(weight.TropicalSemiring)
	f.AddStates(2)
	f.SetStart(0)
	f.AddArc(0, fst.NewArc(1, 1, w, 1))
	f.SetFinal(1, weight.TropicalSemiring.One())

	return f
}

// assertSameFst checks two automata agree on every observable: start,
// state count, final weights, and full arc lists.
func assertSameFst(t *testing.T, want, got fst.Fst) {
	t.Helper()
	require.Equal(t, want.NumStates(), got.NumStates(), "state count")
	assert.Equal(t, want.Start(), got.Start(), "start state")
	for s := fst.StateID(0); int(s) < want.NumStates(); s++ {
		assert.True(t, want.Final(s).Equal(got.Final(s)), "final weight at state %d", s)
		require.Equal(t, want.NumArcs(s), got.NumArcs(s), "arc count at state %d", s)
		wit, git := want.Arcs(s), got.Arcs(s)
		for ; !wit.Done(); wit.Next() {
			w, g := wit.Value(), git.Value()
			assert.Equal(t, w.ILabel, g.ILabel, "ilabel at state %d", s)
			assert.Equal(t, w.OLabel, g.OLabel, "olabel at state %d", s)
			assert.Equal(t, w.NextState, g.NextState, "destination at state %d", s)
			assert.True(t, w.Weight.Equal(g.Weight), "weight at state %d", s)
			git.Next()
		}
	}
}

// TestClosure_StarConcrete runs the canonical scenario: a two-state "a"
// acceptor under STAR gains an epsilon back-arc at state 1, a new final
// start state 2 with an epsilon arc to state 0, and three states total.
func TestClosure_StarConcrete(t *testing.T) {
	one := weight.TropicalSemiring.One()
	f := singleSymbol(t, one)

	rational.Closure(f, rational.ClosureStar)

	require.Equal(t, 3, f.NumStates())
	assert.Equal(t, fst.StateID(2), f.Start(), "the new state is the start")
	assert.True(t, f.Final(2).Equal(one), "the new start is final with One")

	require.Equal(t, 1, f.NumArcs(1), "state 1 gains the epsilon back-arc")
	back := f.Arcs(1).Value()
	assert.Equal(t, fst.Epsilon, back.ILabel)
	assert.Equal(t, fst.Epsilon, back.OLabel)
	assert.Equal(t, fst.StateID(0), back.NextState)
	assert.True(t, back.Weight.Equal(one), "back-arc carries the final weight")

	require.Equal(t, 1, f.NumArcs(2))
	enter := f.Arcs(2).Value()
	assert.Equal(t, fst.Epsilon, enter.ILabel)
	assert.Equal(t, fst.StateID(0), enter.NextState, "unconditional epsilon arc to the old start")
}

// TestClosure_PlusAddsNoState checks PLUS adds the back-arc but no new
// state, so the empty sequence stays rejected.
func TestClosure_PlusAddsNoState(t *testing.T) {
	f := singleSymbol(t, weight.Trop(2))

	rational.Closure(f, rational.ClosurePlus)

	assert.Equal(t, 2, f.NumStates(), "PLUS adds no state")
	assert.Equal(t, fst.StateID(0), f.Start(), "start is unchanged")
	assert.True(t, f.Final(0).Equal(weight.TropicalSemiring.Zero()), "the start stays non-final")
	require.Equal(t, 1, f.NumArcs(1))
	assert.Equal(t, fst.StateID(0), f.Arcs(1).Value().NextState)
}

// TestClosure_SkipsZeroFinalBackArc ensures only final states get the
// back-arc.
func TestClosure_SkipsZeroFinalBackArc(t *testing.T) {
	f := singleSymbol(t, weight.Trop(1))

	rational.Closure(f, rational.ClosurePlus)

	assert.Equal(t, 1, f.NumArcs(0), "the non-final state gains nothing")
}

// TestClosure_WeightedBackArc checks the back-arc carries the final weight
// so the n-th repetition accumulates Times(w, ..., w).
func TestClosure_WeightedBackArc(t *testing.T) {
	f := singleSymbol(t, weight.Trop(2))
	f.SetFinal(1, weight.Trop(0.5))

	rational.Closure(f, rational.ClosureStar)

	back := f.Arcs(1).Value()
	assert.True(t, back.Weight.Equal(weight.Trop(0.5)), "back-arc weight equals the final weight")
	assert.True(t, f.Final(1).Equal(weight.Trop(0.5)), "the original final weight is kept")
}

// TestClosure_EmptyAutomaton covers the startless edge case: PLUS yields
// no accepting path, STAR accepts exactly the empty sequence.
func TestClosure_EmptyAutomaton(t *testing.T) {
	plus := fst.NewVectorFst(weight.TropicalSemiring)
	rational.Closure(plus, rational.ClosurePlus)
	assert.Zero(t, plus.NumStates())
	assert.Equal(t, fst.NoStateID, plus.Start())

	star := fst.NewVectorFst(weight.TropicalSemiring)
	rational.Closure(star, rational.ClosureStar)
	require.Equal(t, 1, star.NumStates())
	assert.Equal(t, fst.StateID(0), star.Start())
	assert.True(t, star.Final(0).Equal(weight.TropicalSemiring.One()))
	assert.Zero(t, star.NumArcs(0), "no old start, so no epsilon arc")
}

// TestClosureFst_MatchesEager verifies the lazy wrapper exposes exactly
// the eager result, for both variants.
func TestClosureFst_MatchesEager(t *testing.T) {
	for _, typ := range []rational.ClosureType{rational.ClosureStar, rational.ClosurePlus} {
		src := singleSymbol(t, weight.Trop(1.5))
		eager := src.MutableCopy(true)
		rational.Closure(eager, typ)

		lazy := rational.NewClosureFst(src, typ)
		assertSameFst(t, eager, lazy)
	}
}

// TestClosureFst_LeavesSourceUntouched checks the wrapper never mutates
// its source.
func TestClosureFst_LeavesSourceUntouched(t *testing.T) {
	src := singleSymbol(t, weight.Trop(1))

	lazy := rational.NewClosureFst(src, rational.ClosureStar)
	for s := fst.StateID(0); int(s) < lazy.NumStates(); s++ {
		lazy.Arcs(s)
		lazy.Final(s)
	}

	assert.Equal(t, 2, src.NumStates())
	assert.Equal(t, fst.StateID(0), src.Start())
	assert.Zero(t, src.NumArcs(1), "no back-arc appears in the source")
}

// TestClosureFst_RepeatVisitsAreCached checks a second arc query returns
// the same memoized slice contents.
func TestClosureFst_RepeatVisitsAreCached(t *testing.T) {
	src := singleSymbol(t, weight.Trop(1))
	lazy := rational.NewClosureFst(src, rational.ClosureStar)

	first := lazy.Arcs(1)
	second := lazy.Arcs(1)
	require.Equal(t, first.Len(), second.Len())
	assert.Equal(t, first.Value(), second.Value())
}

// TestClosureFst_Copy verifies both copy modes observe the same automaton
// and that an independent copy detaches from the source.
func TestClosureFst_Copy(t *testing.T) {
	src := singleSymbol(t, weight.Trop(1))
	lazy := rational.NewClosureFst(src, rational.ClosureStar)
	lazy.Arcs(1) // warm one cache entry

	shared := lazy.Copy(false)
	assertSameFst(t, lazy, shared)

	independent := lazy.Copy(true)
	assertSameFst(t, lazy, independent)
}

// TestClosureFst_Properties checks the wrapper reports a read-only
// expanded kind and can compute structural bits on demand.
func TestClosureFst_Properties(t *testing.T) {
	src := singleSymbol(t, weight.TropicalSemiring.One())
	lazy := rational.NewClosureFst(src, rational.ClosureStar)

	kind := lazy.Properties(fst.PropsBinary, false)
	assert.NotZero(t, kind&fst.PropExpanded)
	assert.Zero(t, kind&fst.PropMutable, "the wrapper is read-only")

	props := lazy.Properties(fst.PropsAll, true)
	assert.NotZero(t, props&fst.PropCyclic, "the closure loops through the back-arc")
	assert.NotZero(t, props&fst.PropAcceptor)
}
