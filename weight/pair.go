// Package weight: the product (pair) semiring built on the composite codec.
//
// Pair tuples two component weights; Plus and Times act componentwise. Its
// text form is the shared composite grammar of codec.go, so nested pairs
// round-trip whenever brackets are configured.

package weight

import (
	"fmt"
	"io"
	"strings"
)

// Pair is an ordered pair of component weights from a product semiring.
type Pair struct {
	First, Second Weight
}

// Plus combines componentwise.
func (p Pair) Plus(o Weight) Weight {
	op := o.(Pair)

	return Pair{First: p.First.Plus(op.First), Second: p.Second.Plus(op.Second)}
}

// Times combines componentwise.
func (p Pair) Times(o Weight) Weight {
	op := o.(Pair)

	return Pair{First: p.First.Times(op.First), Second: p.Second.Times(op.Second)}
}

// Equal reports componentwise equality.
func (p Pair) Equal(o Weight) bool {
	op := o.(Pair)

	return p.First.Equal(op.First) && p.Second.Equal(op.Second)
}

// String renders the pair through the composite grammar with the package
// default configuration.
func (p Pair) String() string {
	var sb strings.Builder
	cw := NewCompositeWriter(&sb)
	cw.WriteBegin()
	cw.WriteElement(p.First.String())
	cw.WriteSeparator()
	cw.WriteElement(p.Second.String())
	cw.WriteEnd()

	return sb.String()
}

// PairSemiring is the product of two component semirings.
type PairSemiring struct {
	first, second Semiring
	name          string
}

// NewPairSemiring builds the product semiring of first and second.
func NewPairSemiring(first, second Semiring) *PairSemiring {
	return &PairSemiring{
		first:  first,
		second: second,
		name:   first.Name() + "_" + second.Name(),
	}
}

// Zero returns the pair of component Zeros.
func (s *PairSemiring) Zero() Weight {
	return Pair{First: s.first.Zero(), Second: s.second.Zero()}
}

// One returns the pair of component Ones.
func (s *PairSemiring) One() Weight {
	return Pair{First: s.first.One(), Second: s.second.One()}
}

// Name returns the composed registry tag, e.g. "tropical_tropical".
func (s *PairSemiring) Name() string { return s.name }

// Props intersects the component properties; the Path property does not
// survive the product construction.
func (s *PairSemiring) Props() SemiringProps {
	return (s.first.Props() & s.second.Props()) &^ Path
}

// Parse decodes one pair through the composite grammar with the package
// default configuration, recursing into the component semirings.
func (s *PairSemiring) Parse(text string) (Weight, error) {
	cr := NewCompositeReader(strings.NewReader(text))
	cr.ReadBegin()
	firstText := cr.ReadElement()
	cr.ReadSeparator()
	secondText := cr.ReadElement()
	cr.ReadEnd()
	if err := cr.Err(); err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrBadWeight, text, err)
	}
	first, err := s.first.Parse(firstText)
	if err != nil {
		return nil, err
	}
	second, err := s.second.Parse(secondText)
	if err != nil {
		return nil, err
	}

	return Pair{First: first, Second: second}, nil
}

// WriteWeight encodes both components in order.
func (s *PairSemiring) WriteWeight(w io.Writer, wt Weight) error {
	p := wt.(Pair)
	if err := s.first.WriteWeight(w, p.First); err != nil {
		return err
	}

	return s.second.WriteWeight(w, p.Second)
}

// ReadWeight decodes both components in order.
func (s *PairSemiring) ReadWeight(r io.Reader) (Weight, error) {
	first, err := s.first.ReadWeight(r)
	if err != nil {
		return nil, err
	}
	second, err := s.second.ReadWeight(r)
	if err != nil {
		return nil, err
	}

	return Pair{First: first, Second: second}, nil
}
