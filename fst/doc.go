// Package fst provides the automaton capability interfaces and the dense
// VectorFst kind with copy-on-write shared storage.
//
// An automaton is a weighted finite-state transducer: states identified by
// dense non-negative ids, ordered arc lists of (input label, output label,
// weight, destination), an optional start state, per-state final weights
// drawn from a semiring (weight.Semiring), optional input/output symbol
// tables, and a cached property bitset.
//
// Capability hierarchy:
//
//   - Fst        — the read-only set: Start, Final, NumStates, NumArcs,
//     Arcs, symbol tables, Properties, Copy
//   - MutableFst — extends Fst with SetStart/SetFinal/AddState/AddArc/
//     DeleteStates/DeleteArcs, symbol-table setters, SetProperties,
//     and the mutable arc cursor
//
// Concrete kinds implement the interfaces over their own storage; the
// dense VectorFst lives here, lazily-computed kinds live in package
// rational.
//
// Copy-on-write:
//
//	Every VectorFst handle points at a reference-counted backing store.
//	Copy(false) is O(1) and shares the store; the first mutating call on a
//	handle whose store is shared deep-copies it first. Once two handles
//	share a store, no handle ever observes a mutation performed through a
//	different handle. Copy(true) forces an immediately private copy,
//	suitable for handing to another goroutine.
//
// Property bitset:
//
//	Structural flags (acceptor, epsilon-free, sorted, acyclic, ...) are
//	cached as trinary pairs — "neither bit" means unknown. Mutations apply
//	pure transfer functions instead of recomputation; Properties(mask,
//	true) recomputes unknown bits on demand. The bitset is derived, never
//	authoritative: it is always reconcilable with the structural data.
//
// Error model:
//
//	Hot-path operations (Final, Arcs, AddArc, ...) do not validate state
//	ids — referencing a nonexistent state is undefined behavior, a
//	deliberate tradeoff hot automaton algorithms rely on. Only the
//	serialization and text boundaries return errors; see the sentinels in
//	types.go. Internal algorithmic operations never panic on valid input
//	and never partially mutate a shared store.
//
// Serialization:
//
//	A binary stream is a structured header (type tag, semiring tag,
//	capability flags) plus a kind-specific body; ReadFst resolves the tag
//	through the registry, and ReadMutableFst additionally requires the
//	mutation capability flag. The textual format of text.go round-trips
//	automata through PrintText/CompileText.
//
// Concurrency: no internal locking. Handles sharing a store may read
// concurrently; any mutation requires external synchronization or an
// independent copy. The reference count is the only shared mutable
// bookkeeping and is maintained atomically.
package fst
