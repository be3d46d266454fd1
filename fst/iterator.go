// Package fst: arc iterators.
//
// ArcIterator is the read-only cursor every automaton kind returns from
// Arcs; MutableArcIterator additionally supports replacing the current arc
// and is obtained from MutableArcs, which privatizes the backing store
// exactly once for the whole cursor lifetime.

package fst

// ArcIterator iterates one state's ordered arc list.
//
// Typical use:
//
//	for it := f.Arcs(s); !it.Done(); it.Next() {
//	    arc := it.Value()
//	    ...
//	}
type ArcIterator struct {
	arcs []Arc
	pos  int
}

// NewArcIterator wraps an arc slice; used by automaton kinds to expose
// their per-state arc storage.
func NewArcIterator(arcs []Arc) *ArcIterator {
	return &ArcIterator{arcs: arcs}
}

// Done reports whether the iterator is past the last arc.
func (it *ArcIterator) Done() bool { return it.pos >= len(it.arcs) }

// Value returns the current arc. Undefined when Done.
func (it *ArcIterator) Value() Arc { return it.arcs[it.pos] }

// Next advances to the following arc.
func (it *ArcIterator) Next() { it.pos++ }

// Reset rewinds to the first arc.
func (it *ArcIterator) Reset() { it.pos = 0 }

// Seek positions the iterator on the arc at pos.
func (it *ArcIterator) Seek(pos int) { it.pos = pos }

// Position returns the current arc position.
func (it *ArcIterator) Position() int { return it.pos }

// Len returns the total arc count.
func (it *ArcIterator) Len() int { return len(it.arcs) }

// MutableArcIterator is a mutable cursor over one state's arcs of a
// VectorFst. The store was privatized when the cursor was created, so
// SetValue writes directly: total mutation cost stays linear in arcs
// visited regardless of how many arcs are replaced.
//
// The cursor is valid only while its automaton handle performs no other
// mutation that could reallocate the state's storage.
type MutableArcIterator struct {
	st  *vectorStore
	s   StateID
	pos int
}

// Done reports whether the cursor is past the last arc.
func (it *MutableArcIterator) Done() bool {
	return it.pos >= len(it.st.states[it.s].arcs)
}

// Value returns the current arc. Undefined when Done.
func (it *MutableArcIterator) Value() Arc {
	return it.st.states[it.s].arcs[it.pos]
}

// Next advances to the following arc.
func (it *MutableArcIterator) Next() { it.pos++ }

// Reset rewinds to the first arc.
func (it *MutableArcIterator) Reset() { it.pos = 0 }

// Seek positions the cursor on the arc at pos.
func (it *MutableArcIterator) Seek(pos int) { it.pos = pos }

// Position returns the current arc position.
func (it *MutableArcIterator) Position() int { return it.pos }

// SetValue replaces the current arc. The cached property bitset degrades
// to the facts derivable from the replacement arc alone.
func (it *MutableArcIterator) SetValue(arc Arc) {
	it.st.states[it.s].arcs[it.pos] = arc
	it.st.props.Store(replaceArcProperties(it.st.props.Load(), arc))
}

// replaceArcProperties is the transfer function for in-place arc
// replacement: only kind bits and the existential label facts of the new
// arc remain known.
func replaceArcProperties(inprops uint64, arc Arc) uint64 {
	out := inprops & PropsBinary
	if arc.ILabel != arc.OLabel {
		out |= PropNotAcceptor
	}
	if arc.ILabel == Epsilon {
		out |= PropIEpsilons
		if arc.OLabel == Epsilon {
			out |= PropEpsilons
		}
	}
	if arc.OLabel == Epsilon {
		out |= PropOEpsilons
	}

	return out
}
