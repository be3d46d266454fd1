// Package rational provides automaton-to-automaton transformations in the
// style of regular-expression operators, most in two realizations.
//
// 🚀 Two forms per operator:
//
//	Eager  — mutates a caller-owned MutableFst in place in O(states+arcs)
//	         time and O(1) extra space; the cached property bitset is
//	         updated by a pure transfer function of the prior bits and the
//	         operator parameters, never by rescanning the structure.
//	Lazy   — wraps a source Fst without copying it; a state's arcs and
//	         final weight are computed on the first visit and memoized, so
//	         repeat visits are O(1). The wrapper exposes the read-only
//	         capability set plus Copy with the usual independence
//	         semantics, reusing the memo when the copy is shared.
//
// ✨ Operators:
//   - Closure / ClosureFst — Kleene closure, STAR and PLUS variants
//   - Invert / InvertFst — exchange input and output labels
//   - ComplementFst — complete a deterministic acceptor through RhoLabel
//     arcs, then exchange final and non-final states (lazy only: the
//     result always has one more state than its source, so there is no
//     in-place form)
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/weft/rational"
//
//	// in place
//	rational.Closure(m, rational.ClosureStar)
//
//	// delayed
//	inv := rational.NewInvertFst(f)
//	for it := inv.Arcs(inv.Start()); !it.Done(); it.Next() { ... }
//
// Precondition for every lazy wrapper: the source automaton must not be
// mutated while the wrapper is alive. Each memoized state moves through a
// one-way "not yet computed -> cached" transition and is never recomputed.
// The wrappers are not safe for concurrent use; hand an independent Copy
// to another goroutine instead.
package rational
