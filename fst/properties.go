// Package fst: the cached property bitset and its transfer functions.
//
// Properties come in two flavors:
//
//   - binary bits (Expanded, Mutable, Error) describe the automaton KIND
//     and are always known; they form the observer-visible "extrinsic" set:
//     two handles sharing a store must never silently diverge in one of
//     them, so SetProperties privatizes before changing any.
//   - trinary bit PAIRS (Acceptor/NotAcceptor, ...) describe the current
//     STRUCTURE; a pair with neither bit set means "unknown". Mutations
//     clear pairs they cannot provably preserve; Properties(mask, true)
//     recomputes unknown pairs on demand and caches the result.
//
// The transfer functions below are pure: given the prior bitset and the
// operation parameters they return the posterior bitset without touching
// the structural data. The guiding principle is that "universal/absence"
// facts (Acceptor, NoEpsilons, Unweighted, Acyclic, ...sorted) survive
// deletions, while "existential" facts (NotAcceptor, Epsilons, Weighted,
// Cyclic) survive insertions.

package fst

// Binary (kind) properties. These form the extrinsic, observer-visible set.
const (
	// PropExpanded marks a kind with O(1) NumStates.
	PropExpanded uint64 = 1 << 0

	// PropMutable marks a kind supporting the MutableFst capability set.
	PropMutable uint64 = 1 << 1

	// PropError marks an automaton in a failed, unusable state.
	PropError uint64 = 1 << 2
)

// Trinary (structural) property pairs. For every pair, "neither bit set"
// means unknown; both bits set is invalid.
const (
	// PropAcceptor: every arc has ILabel == OLabel.
	PropAcceptor uint64 = 1 << (16 + iota)
	// PropNotAcceptor: some arc has ILabel != OLabel.
	PropNotAcceptor
	// PropIDeterministic: no state has two arcs sharing an input label.
	PropIDeterministic
	PropNotIDeterministic
	// PropODeterministic: no state has two arcs sharing an output label.
	PropODeterministic
	PropNotODeterministic
	// PropNoEpsilons: no arc has ILabel == Epsilon && OLabel == Epsilon.
	PropNoEpsilons
	PropEpsilons
	// PropNoIEpsilons: no arc has ILabel == Epsilon.
	PropNoIEpsilons
	PropIEpsilons
	// PropNoOEpsilons: no arc has OLabel == Epsilon.
	PropNoOEpsilons
	PropOEpsilons
	// PropILabelSorted: every state's arcs are sorted by input label.
	PropILabelSorted
	PropNotILabelSorted
	// PropOLabelSorted: every state's arcs are sorted by output label.
	PropOLabelSorted
	PropNotOLabelSorted
	// PropUnweighted: every arc weight and final weight is One or Zero.
	PropUnweighted
	PropWeighted
	// PropAcyclic: the automaton has no cycle.
	PropAcyclic
	PropCyclic
	// PropInitialAcyclic: no cycle passes through the start state.
	PropInitialAcyclic
	PropInitialCyclic
	// PropTopSorted: every arc satisfies source < destination.
	PropTopSorted
	PropNotTopSorted
	// PropAccessible: every state is reachable from the start.
	PropAccessible
	PropNotAccessible
	// PropCoaccessible: every state reaches a final state.
	PropCoaccessible
	PropNotCoaccessible
	// PropString: the automaton is one non-branching accepting path.
	PropString
	PropNotString
	// PropUnweightedCycles: no cycle carries a weight other than One.
	PropUnweightedCycles
	PropWeightedCycles
)

// Property masks.
const (
	// PropsBinary covers the always-known kind bits.
	PropsBinary = PropExpanded | PropMutable | PropError

	// ExtrinsicProps is the observer-visible sub-mask: changing any of
	// these on shared storage requires privatization first. This is the
	// explicit policy table for the intrinsic/extrinsic boundary: kind and
	// error bits are extrinsic, every trinary structural pair is intrinsic
	// (derived, hence safe to refine on shared storage).
	ExtrinsicProps = PropsBinary

	// PropsTrinary covers all structural pairs.
	PropsTrinary = PropAcceptor | PropNotAcceptor |
		PropIDeterministic | PropNotIDeterministic |
		PropODeterministic | PropNotODeterministic |
		PropNoEpsilons | PropEpsilons |
		PropNoIEpsilons | PropIEpsilons |
		PropNoOEpsilons | PropOEpsilons |
		PropILabelSorted | PropNotILabelSorted |
		PropOLabelSorted | PropNotOLabelSorted |
		PropUnweighted | PropWeighted |
		PropAcyclic | PropCyclic |
		PropInitialAcyclic | PropInitialCyclic |
		PropTopSorted | PropNotTopSorted |
		PropAccessible | PropNotAccessible |
		PropCoaccessible | PropNotCoaccessible |
		PropString | PropNotString |
		PropUnweightedCycles | PropWeightedCycles

	// PropsAll covers every property bit.
	PropsAll = PropsBinary | PropsTrinary

	// propsPositive is the "universal/absence" side of every pair: facts
	// that deletions preserve.
	propsPositive = PropAcceptor | PropIDeterministic | PropODeterministic |
		PropNoEpsilons | PropNoIEpsilons | PropNoOEpsilons |
		PropILabelSorted | PropOLabelSorted | PropUnweighted |
		PropAcyclic | PropInitialAcyclic | PropTopSorted |
		PropString | PropUnweightedCycles

	// propsNegative is the "existential" side of every pair: facts that
	// insertions preserve.
	propsNegative = PropNotAcceptor | PropNotIDeterministic |
		PropNotODeterministic | PropEpsilons | PropIEpsilons |
		PropOEpsilons | PropNotILabelSorted | PropNotOLabelSorted |
		PropWeighted | PropCyclic | PropInitialCyclic | PropNotTopSorted |
		PropNotString | PropWeightedCycles

	// NullProps is the fully-known bitset of the empty automaton.
	NullProps = PropAcceptor | PropIDeterministic | PropODeterministic |
		PropNoEpsilons | PropNoIEpsilons | PropNoOEpsilons |
		PropILabelSorted | PropOLabelSorted | PropUnweighted |
		PropAcyclic | PropInitialAcyclic | PropTopSorted |
		PropAccessible | PropCoaccessible | PropString | PropUnweightedCycles
)

// KnownProps expands props into the mask of bits whose value is known:
// binary bits are always known; a trinary pair is known when either of its
// two bits is set.
func KnownProps(props uint64) uint64 {
	known := PropsBinary
	for pos := PropAcceptor; pos != 0 && pos <= PropUnweightedCycles; pos <<= 2 {
		if props&(pos|pos<<1) != 0 {
			known |= pos | pos<<1
		}
	}

	return known
}

// SetStartProperties returns the posterior bitset after SetStart: bits tied
// to the start state (initial cyclicity, accessibility, top order, string
// shape) degrade to unknown or to their breakable side.
func SetStartProperties(inprops uint64) uint64 {
	out := inprops &^ (PropInitialAcyclic | PropInitialCyclic |
		PropAccessible | PropNotAccessible |
		PropTopSorted | PropString)

	return out
}

// SetFinalProperties returns the posterior bitset after SetFinal:
// coaccessibility and string shape depend on the final set, so both pairs
// degrade to unknown; wZeroOne reports whether the new final weight is One
// or Zero, since anything else makes the automaton weighted.
func SetFinalProperties(inprops uint64, wZeroOne bool) uint64 {
	out := inprops &^ (PropCoaccessible | PropNotCoaccessible |
		PropString | PropNotString)
	if !wZeroOne {
		out = (out &^ PropUnweighted) | PropWeighted
	}

	return out
}

// AddStateProperties returns the posterior bitset after AddState: the fresh
// state is unreachable and reaches nothing, so accessibility facts flip to
// their negative side and the string shape is broken.
func AddStateProperties(inprops uint64) uint64 {
	out := inprops &^ (PropAccessible | PropCoaccessible | PropString)
	if inprops&(PropAccessible|PropNotAccessible) != 0 {
		out |= PropNotAccessible
	}
	if inprops&(PropCoaccessible|PropNotCoaccessible) != 0 {
		out |= PropNotCoaccessible
	}
	out |= PropNotString

	return out
}

// AddArcProperties returns the posterior bitset after AddArc(s, arc); prev
// is the previously last arc at s, or nil when s had none. Label facts are
// refined from the arc itself; order-sensitive facts survive only when the
// append provably preserves them.
func AddArcProperties(inprops uint64, s StateID, arc Arc, prev *Arc) uint64 {
	out := inprops

	// Label shape.
	if arc.ILabel != arc.OLabel {
		out = (out &^ PropAcceptor) | PropNotAcceptor
	}
	if arc.ILabel == Epsilon {
		out = (out &^ PropNoIEpsilons) | PropIEpsilons
		if arc.OLabel == Epsilon {
			out = (out &^ PropNoEpsilons) | PropEpsilons
		}
	}
	if arc.OLabel == Epsilon {
		out = (out &^ PropNoOEpsilons) | PropOEpsilons
	}

	// Determinism: a second arc sharing the input label of the previous one
	// breaks it; anything else is no longer cheaply provable.
	if prev != nil && prev.ILabel == arc.ILabel {
		out = (out &^ PropIDeterministic) | PropNotIDeterministic
	} else if prev != nil {
		out &^= PropIDeterministic
	}
	if prev != nil && prev.OLabel == arc.OLabel {
		out = (out &^ PropODeterministic) | PropNotODeterministic
	} else if prev != nil {
		out &^= PropODeterministic
	}

	// Sort order: appending keeps the order only when labels do not go
	// backwards.
	if prev != nil && prev.ILabel > arc.ILabel {
		out = (out &^ PropILabelSorted) | PropNotILabelSorted
	}
	if prev != nil && prev.OLabel > arc.OLabel {
		out = (out &^ PropOLabelSorted) | PropNotOLabelSorted
	}

	// Connectivity and order over states.
	if arc.NextState <= s {
		out = (out &^ PropTopSorted) | PropNotTopSorted
		if arc.NextState == s {
			out = (out &^ (PropAcyclic | PropInitialAcyclic)) | PropCyclic
		} else {
			out &^= PropAcyclic | PropInitialAcyclic | PropInitialCyclic
		}
	}
	out &^= PropAccessible | PropNotAccessible |
		PropCoaccessible | PropNotCoaccessible |
		PropString | PropNotString |
		PropUnweightedCycles | PropWeightedCycles

	return out
}

// addArcWeightProps folds the arc weight into the bitset: a weight outside
// {Zero, One} makes the automaton weighted.
func addArcWeightProps(inprops uint64, wZeroOne bool) uint64 {
	if wZeroOne {
		return inprops
	}

	return (inprops &^ PropUnweighted) | PropWeighted
}

// DeleteStatesProperties returns the posterior bitset after a batch state
// deletion: universal facts survive, existential facts degrade to unknown,
// and connectivity/string facts never survive.
func DeleteStatesProperties(inprops uint64) uint64 {
	return (inprops & PropsBinary) |
		(inprops & propsPositive &^ (PropAccessible | PropCoaccessible | PropString))
}

// DeleteArcsProperties returns the posterior bitset after deleting arcs at
// one state: same survival rule as state deletion.
func DeleteArcsProperties(inprops uint64) uint64 {
	return (inprops & PropsBinary) |
		(inprops & propsPositive &^ (PropCoaccessible | PropString))
}

// ClosureProperties is the pure transfer function for the closure operator.
// Star reports the STAR variant (a new final super-start is added).
func ClosureProperties(inprops uint64, star bool) uint64 {
	out := (PropsBinary | PropAcceptor | PropUnweighted |
		PropAccessible | PropCoaccessible) & inprops
	if inprops&PropUnweighted != 0 {
		out |= PropUnweightedCycles
	}
	out |= (PropNotAcceptor | PropNotIDeterministic | PropNotODeterministic |
		PropNotILabelSorted | PropNotOLabelSorted | PropWeighted |
		PropWeightedCycles | PropNotAccessible | PropNotCoaccessible) & inprops
	// STAR makes a fresh state the start and nothing ever points at it, so
	// no cycle can pass through the new initial state. Everything else the
	// epsilon back-arcs may break (epsilon freedom, acyclicity, top order,
	// string shape) stays unknown.
	if star {
		out |= PropInitialAcyclic
	}

	return out
}

// InvertProperties is the pure transfer function for the inversion
// operator: input/output-sensitive pairs swap sides, everything else is
// preserved.
func InvertProperties(inprops uint64) uint64 {
	out := inprops & (PropsBinary |
		PropAcceptor | PropNotAcceptor |
		PropNoEpsilons | PropEpsilons |
		PropUnweighted | PropWeighted |
		PropAcyclic | PropCyclic |
		PropInitialAcyclic | PropInitialCyclic |
		PropTopSorted | PropNotTopSorted |
		PropAccessible | PropNotAccessible |
		PropCoaccessible | PropNotCoaccessible |
		PropString | PropNotString |
		PropUnweightedCycles | PropWeightedCycles)
	swap := func(a, b uint64) {
		if inprops&a != 0 {
			out |= b
		}
		if inprops&b != 0 {
			out |= a
		}
	}
	swap(PropIDeterministic, PropODeterministic)
	swap(PropNotIDeterministic, PropNotODeterministic)
	swap(PropNoIEpsilons, PropNoOEpsilons)
	swap(PropIEpsilons, PropOEpsilons)
	swap(PropILabelSorted, PropOLabelSorted)
	swap(PropNotILabelSorted, PropNotOLabelSorted)

	return out
}

// ComplementProperties is the pure transfer function for complementation
// of an unweighted epsilon-free deterministic acceptor. The result is
// still such an acceptor; the completion state's self-arc makes it cyclic
// and breaks top order and string shape, and the completion arcs give
// every state a path to the final completion state.
func ComplementProperties(inprops uint64) uint64 {
	out := (PropsBinary & inprops) |
		PropAcceptor | PropUnweighted | PropUnweightedCycles |
		PropNoEpsilons | PropNoIEpsilons | PropNoOEpsilons |
		PropCyclic | PropNotTopSorted | PropCoaccessible | PropNotString
	// The completion label is smaller than every real label and unique at
	// each state, so sortedness and determinism survive from the input.
	out |= (PropIDeterministic | PropODeterministic | PropILabelSorted |
		PropOLabelSorted | PropAccessible) & inprops

	return out
}
