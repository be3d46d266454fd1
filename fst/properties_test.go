package fst_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/weft/fst"
	"github.com/katalvlaran/weft/weight"
)

// TestKnownProps checks that a trinary pair counts as known when either of
// its bits is set and that binary bits are always known.
func TestKnownProps(t *testing.T) {
	known := fst.KnownProps(fst.PropAcceptor | fst.PropCyclic)

	assert.NotZero(t, known&fst.PropAcceptor)
	assert.NotZero(t, known&fst.PropNotAcceptor, "the pair is known as a whole")
	assert.NotZero(t, known&fst.PropAcyclic)
	assert.Zero(t, known&fst.PropUnweighted, "untouched pairs stay unknown")
	assert.NotZero(t, known&fst.PropMutable, "binary bits are always known")
}

// TestProperties_FreshAutomatonIsNull verifies the empty automaton starts
// with the fully-known null bitset.
func TestProperties_FreshAutomatonIsNull(t *testing.T) {
	f := fst.NewVectorFst(weight.TropicalSemiring)
	props := f.Properties(fst.PropsAll, false)

	assert.NotZero(t, props&fst.PropExpanded)
	assert.NotZero(t, props&fst.PropMutable)
	assert.NotZero(t, props&fst.PropAcceptor)
	assert.NotZero(t, props&fst.PropAcyclic)
	assert.NotZero(t, props&fst.PropString)
}

// TestProperties_AddArcTransfer checks the pure transfer on AddArc: label
// facts refine immediately, a self-loop proves cyclicity.
func TestProperties_AddArcTransfer(t *testing.T) {
	f := fst.NewVectorFst(weight.TropicalSemiring)
	f.AddStates(2)
	f.SetStart(0)

	f.AddArc(0, fst.NewArc(1, 2, weight.Trop(1), 1))
	props := f.Properties(fst.PropsAll, false)
	assert.NotZero(t, props&fst.PropNotAcceptor, "unequal labels break the acceptor fact")
	assert.NotZero(t, props&fst.PropWeighted, "a non-identity weight makes it weighted")
	assert.NotZero(t, props&fst.PropNoEpsilons, "no epsilon was added")

	f.AddArc(1, fst.NewArc(0, 0, weight.TropicalSemiring.One(), 1))
	props = f.Properties(fst.PropsAll, false)
	assert.NotZero(t, props&fst.PropEpsilons)
	assert.NotZero(t, props&fst.PropIEpsilons)
	assert.NotZero(t, props&fst.PropCyclic, "a self-loop is a cycle")
}

// TestProperties_ComputeOnDemand verifies Properties(mask, true) derives
// unknown structural bits from the data and caches them.
func TestProperties_ComputeOnDemand(t *testing.T) {
	f := fst.NewVectorFst(weight.TropicalSemiring)
	f.AddStates(3)
	f.SetStart(0)
	f.AddArc(0, fst.NewArc(1, 1, weight.TropicalSemiring.One(), 1))
	f.SetFinal(1, weight.TropicalSemiring.One())
	// state 2 is disconnected

	computed := f.Properties(fst.PropsAll, true)
	assert.NotZero(t, computed&fst.PropAcceptor)
	assert.NotZero(t, computed&fst.PropNotAccessible, "state 2 is unreachable")
	assert.NotZero(t, computed&fst.PropNotCoaccessible, "state 2 reaches no final")
	assert.NotZero(t, computed&fst.PropAcyclic)
	assert.NotZero(t, computed&fst.PropUnweighted)
	assert.NotZero(t, computed&fst.PropNotString, "a disconnected state breaks the string shape")

	cached := f.Properties(fst.PropsAll, false)
	assert.Equal(t, computed, cached, "computed bits must be cached")
}

// TestProperties_ComputeStringShape checks a pure chain is recognized as a
// string automaton.
func TestProperties_ComputeStringShape(t *testing.T) {
	f := buildChain(t, 3)

	props := f.Properties(fst.PropsAll, true)
	assert.NotZero(t, props&fst.PropString)
	assert.NotZero(t, props&fst.PropTopSorted)
	assert.NotZero(t, props&fst.PropAccessible)
	assert.NotZero(t, props&fst.PropCoaccessible)
}

// TestProperties_SetPropertiesMerge checks masked merging of caller-known
// bits.
func TestProperties_SetPropertiesMerge(t *testing.T) {
	f := fst.NewVectorFst(weight.TropicalSemiring)
	f.AddStates(2)
	f.AddArc(0, fst.NewArc(1, 1, weight.TropicalSemiring.One(), 1))

	f.SetProperties(fst.PropILabelSorted, fst.PropILabelSorted|fst.PropNotILabelSorted)
	props := f.Properties(fst.PropILabelSorted|fst.PropNotILabelSorted, false)
	assert.Equal(t, fst.PropILabelSorted, props)
}

// TestInvertProperties checks the inversion transfer swaps the
// input/output-sensitive pairs and keeps the rest.
func TestInvertProperties(t *testing.T) {
	in := fst.PropIDeterministic | fst.PropNoOEpsilons | fst.PropAcyclic |
		fst.PropNotILabelSorted | fst.PropAcceptor
	out := fst.InvertProperties(in)

	assert.NotZero(t, out&fst.PropODeterministic, "input determinism becomes output determinism")
	assert.Zero(t, out&fst.PropIDeterministic)
	assert.NotZero(t, out&fst.PropNoIEpsilons, "output epsilon freedom becomes input side")
	assert.NotZero(t, out&fst.PropNotOLabelSorted)
	assert.NotZero(t, out&fst.PropAcyclic, "side-insensitive facts are preserved")
	assert.NotZero(t, out&fst.PropAcceptor)
}

// TestClosureProperties checks the closure transfer keeps only the facts
// the epsilon back-arcs cannot break.
func TestClosureProperties(t *testing.T) {
	in := fst.PropAcceptor | fst.PropUnweighted | fst.PropNoEpsilons |
		fst.PropAcyclic | fst.PropAccessible
	out := fst.ClosureProperties(in, true)

	assert.NotZero(t, out&fst.PropAcceptor, "epsilon arcs keep equal labels")
	assert.NotZero(t, out&fst.PropUnweightedCycles, "an unweighted source closes with unweighted cycles")
	assert.Zero(t, out&fst.PropNoEpsilons, "epsilon facts cannot survive the back-arcs")
	assert.Zero(t, out&fst.PropAcyclic, "the back-arcs may create cycles")
}
