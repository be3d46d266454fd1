// Package weight: the tropical (min, +) semiring.
//
// Tropical is the reference algebra used throughout the test suite and the
// weft CLI: Plus is min, Times is float addition, Zero is +Inf, One is 0.
// It is a path semiring, so "total weight" coincides with "best path cost".

package weight

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
)

// Tropical is a weight in the (min, +) semiring over float64.
type Tropical float64

// Trop wraps a float64 as a tropical weight.
func Trop(v float64) Tropical { return Tropical(v) }

// Plus returns min(w, o).
func (w Tropical) Plus(o Weight) Weight {
	if ow := o.(Tropical); ow < w {
		return ow
	}

	return w
}

// Times returns w + o. Either operand being Zero (+Inf) absorbs even when
// the other is -Inf, where raw float addition would yield NaN.
func (w Tropical) Times(o Weight) Weight {
	ow := o.(Tropical)
	if math.IsInf(float64(w), +1) || math.IsInf(float64(ow), +1) {
		return Tropical(math.Inf(+1))
	}

	return w + ow
}

// Equal reports exact equality; two Zero() values always compare equal.
func (w Tropical) Equal(o Weight) bool {
	return w == o.(Tropical)
}

// String renders the weight; Zero prints as "Infinity" to keep the text
// form round-trippable.
func (w Tropical) String() string {
	switch {
	case math.IsInf(float64(w), +1):
		return "Infinity"
	case math.IsInf(float64(w), -1):
		return "-Infinity"
	default:
		return strconv.FormatFloat(float64(w), 'g', -1, 64)
	}
}

// TropicalSemiring is the singleton descriptor for the tropical algebra.
var TropicalSemiring Semiring = tropicalSemiring{}

type tropicalSemiring struct{}

// Zero returns +Inf, the Plus (min) identity.
func (tropicalSemiring) Zero() Weight { return Tropical(math.Inf(+1)) }

// One returns 0, the Times (+) identity.
func (tropicalSemiring) One() Weight { return Tropical(0) }

// Name returns the registry tag "tropical".
func (tropicalSemiring) Name() string { return "tropical" }

// Props: tropical min/+ is a commutative, idempotent path semiring.
func (tropicalSemiring) Props() SemiringProps {
	return LeftSemiring | RightSemiring | Commutative | Idempotent | Path
}

// Parse decodes "Infinity", "-Infinity", or any float literal.
func (tropicalSemiring) Parse(text string) (Weight, error) {
	switch text {
	case "Infinity":
		return Tropical(math.Inf(+1)), nil
	case "-Infinity":
		return Tropical(math.Inf(-1)), nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadWeight, text)
	}

	return Tropical(v), nil
}

// WriteWeight encodes the weight as a little-endian float64.
func (tropicalSemiring) WriteWeight(w io.Writer, wt Weight) error {
	return binary.Write(w, binary.LittleEndian, float64(wt.(Tropical)))
}

// ReadWeight decodes a little-endian float64 weight.
func (tropicalSemiring) ReadWeight(r io.Reader) (Weight, error) {
	var v float64
	if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
		return nil, fmt.Errorf("weight: reading tropical weight: %w", err)
	}

	return Tropical(v), nil
}
