// Package weight defines the semiring contract shared by every automaton in
// weft, together with reference semirings and the textual codec for
// composite (tupled) weight values.
//
// 🚀 What is a semiring?
//
//	A value type with two operations and two identities:
//	  • Plus  — combines alternative paths (⊕)
//	  • Times — combines sequential path segments (⊗)
//	  • Zero  — the Plus identity; annihilates Times
//	  • One   — the Times identity
//	Weighted automata accumulate a Times-product along each path and a
//	Plus-sum across paths, so the algebra fully determines what "best
//	path" or "total weight" means.
//
// ✨ What this package provides:
//   - Weight / Semiring contracts consumed by package fst and the
//     rational operators
//   - SemiringProps flags (idempotent, commutative, path, …) queried by
//     downstream algorithms to gate preconditions
//   - Tropical — the (min, +) reference semiring used by tests and tools
//   - Pair — a product semiring tupling two component weights
//   - CompositeReader / CompositeWriter — the round-trip text grammar
//     for nested and tupled weight values
//
// Composite text grammar:
//
//	A composite value is its components' own text forms joined by a
//	single-character separator, optionally enclosed in a matching
//	bracket pair:
//
//	    1.5,0.25        separator "," and no brackets
//	    (1.5,0.25)      separator "," and brackets "()"
//	    ((1,2),(3,4))   brackets make nesting unambiguous
//
//	Without brackets, composites of composites are inherently ambiguous:
//	"1,2,3,4" could split as (1,2),(3,4) or (1),(2,3,4). This is a
//	documented limitation of the grammar, not a defect — configure
//	brackets when nesting composites.
//
// Configuration:
//
//	Two package-level settings, DefaultSeparator and DefaultParentheses,
//	are resolved exactly once for default-constructed readers/writers;
//	explicit constructor arguments override them per instance. Invalid
//	settings taint the stream: every subsequent read or write is a
//	silent no-op and Err() reports the fault.
//
// Error model: codec failures are sticky stream faults, never panics;
// algebra operations on valid operands never fail.
package weight
