// Package weft is an engine for weighted finite-state transducers:
// automata mapping input symbol sequences to output symbol sequences while
// accumulating a weight from a semiring.
//
// 🚀 What is weft?
//
//	A library for building, mutating, and algebraically transforming
//	weighted automata:
//		• Capability interfaces: read-only Fst, mutating MutableFst
//		• Copy-on-write storage: O(1) handle copies, privatize-on-mutate
//		• Property bitset: cached structural facts, maintained by pure
//		  transfer functions on every mutation
//		• Rational operators: closure and inversion, eager and lazy
//		• Semiring contract with a tropical reference algebra and
//		  composite (pair) weights with a round-trip text codec
//		• Binary serialization with a pluggable automaton-kind registry
//
// ✨ Why choose weft?
//
//   - Predictable sharing – two handles on one store never observe each
//     other's mutations
//   - Cheap derivation – lazy operator views expand one state at a time
//     and memoize
//   - Explicit algebra – every automaton is generic over its semiring
//
// Everything is organized under four subpackages:
//
//	weight/   — Weight/Semiring contracts, Tropical, Pair, composite codec
//	fst/      — Fst/MutableFst, VectorFst, properties, symbol tables, I/O
//	rational/ — Closure and Invert, eager in-place and lazy cached forms
//	cmd/weft/ — CLI: info, print, compile, invert, closure
//
// Quick ASCII example:
//
//	    (0)──a:b/1──(1/0)
//
//	a two-state transducer reading "a", writing "b", at cost 1, with
//	state 1 final at cost 0.
//
// Dive into the package docs for the copy-on-write discipline, the
// property-bit catalog, and the lazy-wrapper preconditions.
//
//	go get github.com/katalvlaran/weft
package weft
