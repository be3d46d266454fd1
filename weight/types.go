// Package weight: semiring contracts and algebraic property flags.
//
// This file declares the Weight and Semiring interfaces consumed by every
// automaton kind, plus the SemiringProps bitset downstream algorithms query
// to gate expensive preconditions.

package weight

import (
	"errors"
	"io"
)

// Sentinel errors for weight parsing and the composite codec.
var (
	// ErrBadWeight indicates a weight string that does not parse in the
	// target semiring.
	ErrBadWeight = errors.New("weight: malformed weight text")

	// ErrBadSeparator indicates a codec separator setting that is not
	// exactly one character.
	ErrBadSeparator = errors.New("weight: separator must be exactly one character")

	// ErrBadParentheses indicates a codec bracket setting that is neither
	// empty nor exactly one open/close pair.
	ErrBadParentheses = errors.New("weight: parentheses must be empty or exactly two characters")

	// ErrOpenParenMissing indicates the configured open bracket was not the
	// next non-space character on a composite read.
	ErrOpenParenMissing = errors.New("weight: expected open parenthesis")

	// ErrCloseParenMissing indicates the configured close bracket was not
	// found where a composite value must end.
	ErrCloseParenMissing = errors.New("weight: expected close parenthesis")

	// ErrSeparatorMissing indicates the configured separator was not found
	// between two composite components.
	ErrSeparatorMissing = errors.New("weight: expected separator")

	// ErrTrailingGarbage indicates non-whitespace input after a complete
	// composite value.
	ErrTrailingGarbage = errors.New("weight: excess characters after weight")
)

// SemiringProps is a bitset of algebraic properties of a Semiring.
// Algorithms query these flags instead of probing the algebra at runtime.
type SemiringProps uint32

const (
	// LeftSemiring: Times left-distributes over Plus.
	LeftSemiring SemiringProps = 1 << iota

	// RightSemiring: Times right-distributes over Plus.
	RightSemiring

	// Commutative: Times(a, b) == Times(b, a).
	Commutative

	// Idempotent: Plus(a, a) == a.
	Idempotent

	// Path: Plus(a, b) is always a or b (total natural order).
	Path
)

// Weight is an opaque semiring element. Plus and Times must be associative,
// Times must distribute over Plus per the semiring's props, and Zero must
// absorb Times. Operands always belong to the same semiring; mixing
// semirings is a programming error with undefined behavior.
type Weight interface {
	// Plus combines alternative paths.
	Plus(Weight) Weight

	// Times combines sequential path segments.
	Times(Weight) Weight

	// Equal reports exact algebraic equality.
	Equal(Weight) bool

	// String renders the weight in its textual form, parseable by the
	// owning semiring's Parse.
	String() string
}

// Semiring describes one weight algebra: its identities, algebraic
// properties, and textual/binary codecs for its elements.
type Semiring interface {
	// Zero returns the Plus identity; Final(s) == Zero() marks non-final.
	Zero() Weight

	// One returns the Times identity.
	One() Weight

	// Name returns the registry tag of the semiring (e.g. "tropical").
	Name() string

	// Props returns the algebraic property flags of the semiring.
	Props() SemiringProps

	// Parse decodes one weight from its textual form.
	Parse(text string) (Weight, error)

	// WriteWeight encodes one weight in the semiring's binary form.
	WriteWeight(w io.Writer, wt Weight) error

	// ReadWeight decodes one weight from the semiring's binary form.
	ReadWeight(r io.Reader) (Weight, error)
}
