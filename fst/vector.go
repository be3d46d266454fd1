// Package fst: VectorFst, the dense mutable automaton kind.
//
// A VectorFst handle is a thin pointer to a reference-counted backing
// store. Handle duplication via Copy(false) is O(1); the first mutating
// call on a handle whose store is shared privatizes a deep copy first
// (mutateCheck), so no handle ever observes a mutation performed through a
// different handle. Automata are copied far more often than they are
// mutated in typical pipelines, which is what makes this discipline pay.

package fst

import (
	"sync/atomic"

	"github.com/katalvlaran/weft/weight"
)

// VectorFstType is the registry tag of the vector kind.
const VectorFstType = "vector"

// vectorState owns one state's final weight and ordered arc list.
type vectorState struct {
	final weight.Weight
	arcs  []Arc
}

// vectorStore is the mutable backing storage, reference-counted and
// potentially shared by several VectorFst handles.
type vectorStore struct {
	refs   atomic.Int32
	props  atomic.Uint64
	sr     weight.Semiring
	states []vectorState
	start  StateID
	isyms  *SymbolTable
	osyms  *SymbolTable
}

func newVectorStore(sr weight.Semiring) *vectorStore {
	st := &vectorStore{sr: sr, start: NoStateID}
	st.refs.Store(1)
	st.props.Store(PropExpanded | PropMutable | NullProps)

	return st
}

// deepCopy clones states, arcs, and symbol tables into a fresh store with
// refcount 1.
func (st *vectorStore) deepCopy() *vectorStore {
	c := &vectorStore{sr: st.sr, start: st.start}
	c.refs.Store(1)
	c.props.Store(st.props.Load())
	c.states = make([]vectorState, len(st.states))
	for i := range st.states {
		src := &st.states[i]
		arcs := make([]Arc, len(src.arcs))
		copy(arcs, src.arcs)
		c.states[i] = vectorState{final: src.final, arcs: arcs}
	}
	c.isyms = st.isyms.Copy()
	c.osyms = st.osyms.Copy()

	return c
}

// VectorFst is a handle to a dense automaton over a fixed semiring.
// The zero value is not usable; construct with NewVectorFst.
type VectorFst struct {
	st *vectorStore
}

// Compile-time interface checks.
var (
	_ Fst        = (*VectorFst)(nil)
	_ MutableFst = (*VectorFst)(nil)
)

// FstOption configures a VectorFst at construction.
type FstOption func(*VectorFst)

// WithInputSymbols attaches a deep copy of the input symbol table.
func WithInputSymbols(t *SymbolTable) FstOption {
	return func(f *VectorFst) { f.st.isyms = t.Copy() }
}

// WithOutputSymbols attaches a deep copy of the output symbol table.
func WithOutputSymbols(t *SymbolTable) FstOption {
	return func(f *VectorFst) { f.st.osyms = t.Copy() }
}

// WithReservedStates pre-allocates capacity for n states; a hint only,
// never semantically required.
func WithReservedStates(n int) FstOption {
	return func(f *VectorFst) {
		if cap(f.st.states) < n {
			f.st.states = make([]vectorState, 0, n)
		}
	}
}

// NewVectorFst creates an empty automaton over sr.
// Complexity: O(1) plus any reservation hint.
func NewVectorFst(sr weight.Semiring, opts ...FstOption) *VectorFst {
	f := &VectorFst{st: newVectorStore(sr)}
	for _, opt := range opts {
		opt(f)
	}

	return f
}

// mutateCheck privatizes the backing store when it is shared. Every
// mutating entry point calls this before touching the store, which is the
// entire copy-on-write discipline: either the private copy succeeds and
// mutation proceeds, or nothing visible has changed.
func (f *VectorFst) mutateCheck() {
	if f.st.refs.Load() > 1 {
		private := f.st.deepCopy()
		f.st.refs.Add(-1)
		f.st = private
	}
}

// setProps replaces the whole cached bitset, keeping the kind bits.
func (f *VectorFst) setProps(props uint64) {
	f.st.props.Store(PropExpanded | PropMutable | (props &^ (PropExpanded | PropMutable)))
}

// Start returns the initial state, or NoStateID for an empty automaton.
// Complexity: O(1).
func (f *VectorFst) Start() StateID { return f.st.start }

// Final returns the state's final weight. The state must exist.
// Complexity: O(1).
func (f *VectorFst) Final(s StateID) weight.Weight { return f.st.states[s].final }

// NumStates returns the state count. Complexity: O(1).
func (f *VectorFst) NumStates() int { return len(f.st.states) }

// NumArcs returns the arc count at s. The state must exist.
// Complexity: O(1).
func (f *VectorFst) NumArcs(s StateID) int { return len(f.st.states[s].arcs) }

// Arcs returns a read iterator over the arcs at s. The state must exist.
func (f *VectorFst) Arcs(s StateID) *ArcIterator {
	return NewArcIterator(f.st.states[s].arcs)
}

// InputSymbols returns a borrowed view of the input table, or nil.
func (f *VectorFst) InputSymbols() *SymbolTable { return f.st.isyms }

// OutputSymbols returns a borrowed view of the output table, or nil.
func (f *VectorFst) OutputSymbols() *SymbolTable { return f.st.osyms }

// Semiring returns the automaton's weight algebra.
func (f *VectorFst) Semiring() weight.Semiring { return f.st.sr }

// Properties returns the cached bits under mask; with test=true, unknown
// structural bits inside mask are recomputed from the data and cached.
// The cache refinement is intrinsic (derived), so it is safe on a shared
// store and done atomically.
func (f *VectorFst) Properties(mask uint64, test bool) uint64 {
	props := f.st.props.Load()
	if test && mask&^KnownProps(props) != 0 {
		props = (props & PropsBinary) | ComputeProperties(f)
		f.st.props.Store(props)
	}

	return props & mask
}

// SetProperties merges the masked bits into the cached bitset. If any bit
// inside the extrinsic sub-mask changes value, the store is privatized
// first: two handles sharing a store must never silently diverge in an
// observer-visible property.
func (f *VectorFst) SetProperties(props, mask uint64) {
	if ex := ExtrinsicProps & mask; f.st.props.Load()&ex != props&ex {
		f.mutateCheck()
	}
	cur := f.st.props.Load()
	f.st.props.Store((cur &^ mask) | (props & mask))
}

// SetStart makes s the initial state. The state must exist.
// Complexity: O(1).
func (f *VectorFst) SetStart(s StateID) {
	f.mutateCheck()
	f.st.start = s
	f.setProps(SetStartProperties(f.st.props.Load()))
}

// SetFinal sets the state's final weight; Semiring().Zero() makes the
// state non-final. The state must exist. Complexity: O(1).
func (f *VectorFst) SetFinal(s StateID, w weight.Weight) {
	f.mutateCheck()
	f.st.states[s].final = w
	f.setProps(SetFinalProperties(f.st.props.Load(), f.isZeroOrOne(w)))
}

// AddState appends a state and returns its id, equal to the prior state
// count. Complexity: amortized O(1).
func (f *VectorFst) AddState() StateID {
	f.mutateCheck()
	f.st.states = append(f.st.states, vectorState{final: f.st.sr.Zero()})
	f.setProps(AddStateProperties(f.st.props.Load()))

	return StateID(len(f.st.states) - 1)
}

// AddStates appends n states. Complexity: amortized O(n).
func (f *VectorFst) AddStates(n int) {
	f.mutateCheck()
	for i := 0; i < n; i++ {
		f.st.states = append(f.st.states, vectorState{final: f.st.sr.Zero()})
	}
	if n > 0 {
		f.setProps(AddStateProperties(f.st.props.Load()))
	}
}

// ReserveStates hints the expected total state count.
func (f *VectorFst) ReserveStates(n int) {
	f.mutateCheck()
	if cap(f.st.states) < n {
		states := make([]vectorState, len(f.st.states), n)
		copy(states, f.st.states)
		f.st.states = states
	}
}

// ReserveArcs hints the expected arc count at s. The state must exist.
func (f *VectorFst) ReserveArcs(s StateID, n int) {
	f.mutateCheck()
	state := &f.st.states[s]
	if cap(state.arcs) < n {
		arcs := make([]Arc, len(state.arcs), n)
		copy(arcs, state.arcs)
		state.arcs = arcs
	}
}

// AddArc appends an arc at s. The source state must exist; in bulk
// construction the destination may be added later, but it must exist
// before any traversal. Complexity: amortized O(1).
func (f *VectorFst) AddArc(s StateID, arc Arc) {
	f.mutateCheck()
	state := &f.st.states[s]
	var prev *Arc
	if len(state.arcs) > 0 {
		prev = &state.arcs[len(state.arcs)-1]
	}
	props := AddArcProperties(f.st.props.Load(), s, arc, prev)
	state.arcs = append(state.arcs, arc)
	f.setProps(addArcWeightProps(props, f.isZeroOrOne(arc.Weight)))
}

// DeleteStates removes the named states and every arc referencing them,
// preserving the relative order of survivors and renumbering them onto a
// dense range. Arcs whose destination does not survive are dropped.
// Complexity: O(states + arcs).
func (f *VectorFst) DeleteStates(states []StateID) {
	if len(states) == 0 {
		return
	}
	f.mutateCheck()
	st := f.st
	n := len(st.states)
	doomed := make([]bool, n)
	for _, s := range states {
		doomed[s] = true
	}
	newID := make([]StateID, n)
	next := StateID(0)
	for s := 0; s < n; s++ {
		if doomed[s] {
			newID[s] = NoStateID
		} else {
			newID[s] = next
			next++
		}
	}
	out := st.states[:0]
	for s := 0; s < n; s++ {
		if doomed[s] {
			continue
		}
		state := st.states[s]
		arcs := state.arcs[:0]
		for _, a := range state.arcs {
			if a.NextState < 0 || int(a.NextState) >= n || newID[a.NextState] == NoStateID {
				continue
			}
			a.NextState = newID[a.NextState]
			arcs = append(arcs, a)
		}
		state.arcs = arcs
		out = append(out, state)
	}
	st.states = out
	if st.start != NoStateID {
		st.start = newID[st.start]
	}
	f.setProps(DeleteStatesProperties(st.props.Load()))
}

// DeleteAllStates empties the automaton. Symbol tables are retained: on a
// shared store a fresh store is installed carrying copies of them, on a
// private store the states are dropped in place.
func (f *VectorFst) DeleteAllStates() {
	if f.st.refs.Load() > 1 {
		isyms, osyms := f.st.isyms, f.st.osyms
		f.st.refs.Add(-1)
		f.st = newVectorStore(f.st.sr)
		f.st.isyms = isyms.Copy()
		f.st.osyms = osyms.Copy()
		return
	}
	f.st.states = nil
	f.st.start = NoStateID
	f.setProps(NullProps)
}

// DeleteArcs removes the first n arcs at s, preserving the order of
// survivors. The state must exist. Complexity: O(arcs at s).
func (f *VectorFst) DeleteArcs(s StateID, n int) {
	f.mutateCheck()
	state := &f.st.states[s]
	if n >= len(state.arcs) {
		state.arcs = nil
	} else {
		state.arcs = append(state.arcs[:0], state.arcs[n:]...)
	}
	f.setProps(DeleteArcsProperties(f.st.props.Load()))
}

// DeleteAllArcs removes every arc at s. The state must exist.
func (f *VectorFst) DeleteAllArcs(s StateID) {
	f.mutateCheck()
	f.st.states[s].arcs = nil
	f.setProps(DeleteArcsProperties(f.st.props.Load()))
}

// SetInputSymbols installs a deep copy of t as the input table; nil clears.
func (f *VectorFst) SetInputSymbols(t *SymbolTable) {
	f.mutateCheck()
	f.st.isyms = t.Copy()
}

// SetOutputSymbols installs a deep copy of t as the output table; nil
// clears.
func (f *VectorFst) SetOutputSymbols(t *SymbolTable) {
	f.mutateCheck()
	f.st.osyms = t.Copy()
}

// MutableInputSymbols privatizes the store and returns the writable input
// table, or nil when unset.
func (f *VectorFst) MutableInputSymbols() *SymbolTable {
	f.mutateCheck()

	return f.st.isyms
}

// MutableOutputSymbols privatizes the store and returns the writable output
// table, or nil when unset.
func (f *VectorFst) MutableOutputSymbols() *SymbolTable {
	f.mutateCheck()

	return f.st.osyms
}

// MutableArcs returns a mutable cursor over the arcs at s. Privatization
// happens here, once, so k SetValue calls over n arcs cost O(n + k).
func (f *VectorFst) MutableArcs(s StateID) *MutableArcIterator {
	f.mutateCheck()

	return &MutableArcIterator{st: f.st, s: s}
}

// Copy produces a second handle. With independent=false the handle shares
// the backing store (O(1)); with independent=true it is fully private
// (O(states + arcs)).
func (f *VectorFst) Copy(independent bool) Fst {
	return f.MutableCopy(independent)
}

// MutableCopy is Copy with a mutable static type.
func (f *VectorFst) MutableCopy(independent bool) MutableFst {
	if independent {
		return &VectorFst{st: f.st.deepCopy()}
	}
	f.st.refs.Add(1)

	return &VectorFst{st: f.st}
}

// isZeroOrOne reports whether w is one of the two semiring identities.
func (f *VectorFst) isZeroOrOne(w weight.Weight) bool {
	return w.Equal(f.st.sr.Zero()) || w.Equal(f.st.sr.One())
}
