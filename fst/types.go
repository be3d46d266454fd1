// Package fst declares the central Arc, StateID, and Label types, the
// read-only and mutable automaton capability interfaces, and sentinel
// errors for the serialization boundary.
//
// Hot-path operations (Final, Arcs, AddArc, ...) treat a nonexistent state
// id as a caller contract violation and do not validate it; only the
// text/serialization paths return errors. See doc.go for the full error
// model.

package fst

import (
	"errors"

	"github.com/katalvlaran/weft/weight"
)

// Sentinel errors for fst construction and the serialization boundary.
var (
	// ErrBadHeader indicates an unparsable or wrong-magic serialized header.
	ErrBadHeader = errors.New("fst: malformed header")

	// ErrUnknownFstType indicates no registered factory for the header's
	// type tag.
	ErrUnknownFstType = errors.New("fst: unknown fst type")

	// ErrNotMutable indicates a serialized automaton without the mutation
	// capability was requested through the mutable entry point.
	ErrNotMutable = errors.New("fst: fst type does not support mutation")

	// ErrSemiringMismatch indicates a serialized automaton whose semiring
	// tag differs from the one supplied by the caller.
	ErrSemiringMismatch = errors.New("fst: semiring mismatch")

	// ErrBadTextFormat indicates a malformed line in the textual automaton
	// format accepted by CompileText.
	ErrBadTextFormat = errors.New("fst: malformed text line")

	// ErrUnknownSymbol indicates a symbol with no entry in the relevant
	// symbol table during text compilation or printing.
	ErrUnknownSymbol = errors.New("fst: symbol not in symbol table")
)

// StateID identifies a state: a dense non-negative integer assigned in
// creation order.
type StateID int

// NoStateID marks the absence of a state, e.g. the start of an empty
// automaton.
const NoStateID StateID = -1

// Label is an input or output arc label.
type Label int

// Epsilon is the reserved "no symbol consumed/produced" label.
const Epsilon Label = 0

// NoLabel marks the absence of a label in symbol-table lookups.
const NoLabel Label = -1

// Arc is one transition: input label, output label, weight, and
// destination state. Arcs are plain values owned by their source state's
// arc list.
type Arc struct {
	ILabel    Label
	OLabel    Label
	Weight    weight.Weight
	NextState StateID
}

// NewArc builds an arc value.
func NewArc(ilabel, olabel Label, w weight.Weight, next StateID) Arc {
	return Arc{ILabel: ilabel, OLabel: olabel, Weight: w, NextState: next}
}

// Fst is the read-only automaton capability set: start/final queries, arc
// iteration, symbol tables, cached properties, and copying.
//
// Multiple handles may share one backing store for read-only access without
// synchronization; see doc.go for the sharing discipline.
type Fst interface {
	// Start returns the initial state, or NoStateID for an empty automaton.
	Start() StateID

	// Final returns the state's final weight; Semiring().Zero() marks
	// non-final. The state must exist.
	Final(s StateID) weight.Weight

	// NumStates returns the number of states.
	NumStates() int

	// NumArcs returns the number of arcs leaving s. The state must exist.
	NumArcs(s StateID) int

	// Arcs returns an iterator over the arcs leaving s. The state must
	// exist.
	Arcs(s StateID) *ArcIterator

	// InputSymbols returns a borrowed view of the input symbol table, or
	// nil when unset. Callers must not mutate it.
	InputSymbols() *SymbolTable

	// OutputSymbols returns a borrowed view of the output symbol table, or
	// nil when unset. Callers must not mutate it.
	OutputSymbols() *SymbolTable

	// Semiring returns the weight algebra of the automaton.
	Semiring() weight.Semiring

	// Properties returns the property bits under mask. When test is true,
	// unknown structural bits inside mask are computed (and cached where
	// the kind allows); when false, only already-known bits are reported.
	Properties(mask uint64, test bool) uint64

	// Copy produces a second handle. With independent=false the copy may
	// share backing storage and is cheap; it is valid only while neither
	// handle mutates. With independent=true the copy is fully private and
	// may be used concurrently and mutably without affecting the source.
	Copy(independent bool) Fst
}

// MutableFst extends Fst with the mutating capability set. Every mutating
// entry point privatizes a shared backing store before writing, so two
// handles sharing a store never observe each other's mutations.
type MutableFst interface {
	Fst

	// SetStart makes s the initial state. The state must exist.
	SetStart(s StateID)

	// SetFinal sets the state's final weight; Semiring().Zero() makes it
	// non-final. The state must exist.
	SetFinal(s StateID, w weight.Weight)

	// SetProperties merges the masked bits into the cached property
	// bitset. Changing an observer-visible bit privatizes first.
	SetProperties(props, mask uint64)

	// AddState appends a state and returns its id (the prior state count).
	AddState() StateID

	// AddStates appends n states.
	AddStates(n int)

	// ReserveStates hints the expected total state count; never
	// semantically required.
	ReserveStates(n int)

	// ReserveArcs hints the expected arc count at s; never semantically
	// required.
	ReserveArcs(s StateID, n int)

	// AddArc appends an arc at s. In bulk construction the destination may
	// not exist yet, but it must exist before any traversal.
	AddArc(s StateID, arc Arc)

	// DeleteStates removes the named states and every arc referencing
	// them, renumbering survivors densely in their original order.
	DeleteStates(states []StateID)

	// DeleteAllStates empties the automaton; symbol tables are retained.
	DeleteAllStates()

	// DeleteArcs removes the first n arcs at s, preserving survivor order.
	DeleteArcs(s StateID, n int)

	// DeleteAllArcs removes every arc at s.
	DeleteAllArcs(s StateID)

	// SetInputSymbols installs a deep copy of the table; nil clears it.
	SetInputSymbols(t *SymbolTable)

	// SetOutputSymbols installs a deep copy of the table; nil clears it.
	SetOutputSymbols(t *SymbolTable)

	// MutableInputSymbols privatizes the store and returns a writable
	// input table, or nil when unset.
	MutableInputSymbols() *SymbolTable

	// MutableOutputSymbols privatizes the store and returns a writable
	// output table, or nil when unset.
	MutableOutputSymbols() *SymbolTable

	// MutableArcs returns a mutable cursor over the arcs at s. The cursor
	// privatizes the store at most once for its whole lifetime.
	MutableArcs(s StateID) *MutableArcIterator

	// MutableCopy produces a second mutable handle with Copy semantics.
	MutableCopy(independent bool) MutableFst
}
