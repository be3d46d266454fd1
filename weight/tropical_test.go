package weight_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/weft/weight"
)

// TestTropical_Identities verifies the semiring identity laws: Zero is the
// Plus identity and annihilates Times, One is the Times identity.
func TestTropical_Identities(t *testing.T) {
	sr := weight.TropicalSemiring
	w := weight.Trop(2.5)

	assert.True(t, w.Plus(sr.Zero()).Equal(w), "Zero must be the Plus identity")
	assert.True(t, sr.Zero().Plus(w).Equal(w), "Plus with Zero must commute")
	assert.True(t, w.Times(sr.One()).Equal(w), "One must be the Times identity")
	assert.True(t, w.Times(sr.Zero()).Equal(sr.Zero()), "Zero must absorb Times")
}

// TestTropical_PlusIsMin_TimesIsAdd checks the concrete (min, +) arithmetic.
func TestTropical_PlusIsMin_TimesIsAdd(t *testing.T) {
	a, b := weight.Trop(3), weight.Trop(1.5)

	assert.True(t, a.Plus(b).Equal(weight.Trop(1.5)), "Plus must take the minimum")
	assert.True(t, a.Times(b).Equal(weight.Trop(4.5)), "Times must add")
}

// TestTropical_TimesZeroAbsorbsNegativeInfinity checks Zero absorption
// holds for -Infinity, where raw float addition of the two infinities
// would produce NaN.
func TestTropical_TimesZeroAbsorbsNegativeInfinity(t *testing.T) {
	sr := weight.TropicalSemiring
	neg := weight.Tropical(math.Inf(-1))

	assert.True(t, sr.Zero().Times(neg).Equal(sr.Zero()), "Zero must absorb -Infinity")
	assert.True(t, neg.Times(sr.Zero()).Equal(sr.Zero()), "absorption must commute")
	assert.True(t, neg.Times(weight.Trop(3)).Equal(neg), "-Infinity plus a finite value stays -Infinity")
}

// TestTropical_StringAndParse round-trips finite values and both infinities
// through the text form.
func TestTropical_StringAndParse(t *testing.T) {
	sr := weight.TropicalSemiring
	cases := []struct {
		w    weight.Tropical
		text string
	}{
		{weight.Trop(0), "0"},
		{weight.Trop(1.5), "1.5"},
		{weight.Tropical(math.Inf(+1)), "Infinity"},
		{weight.Tropical(math.Inf(-1)), "-Infinity"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.text, tc.w.String())
		parsed, err := sr.Parse(tc.text)
		require.NoError(t, err, "parsing %q", tc.text)
		assert.True(t, parsed.Equal(tc.w), "parse must invert String for %q", tc.text)
	}
}

// TestTropical_ParseRejectsGarbage ensures a non-numeric literal errors
// with ErrBadWeight.
func TestTropical_ParseRejectsGarbage(t *testing.T) {
	_, err := weight.TropicalSemiring.Parse("banana")
	assert.ErrorIs(t, err, weight.ErrBadWeight)
}

// TestTropical_BinaryRoundTrip encodes and decodes a weight through the
// binary form.
func TestTropical_BinaryRoundTrip(t *testing.T) {
	sr := weight.TropicalSemiring
	var buf bytes.Buffer

	require.NoError(t, sr.WriteWeight(&buf, weight.Trop(7.25)))
	got, err := sr.ReadWeight(&buf)
	require.NoError(t, err)
	assert.True(t, got.Equal(weight.Trop(7.25)))
}

// TestTropical_Props confirms the algebra advertises the path-semiring
// flags downstream algorithms gate on.
func TestTropical_Props(t *testing.T) {
	props := weight.TropicalSemiring.Props()

	assert.NotZero(t, props&weight.Idempotent, "min is idempotent")
	assert.NotZero(t, props&weight.Commutative, "min and + commute")
	assert.NotZero(t, props&weight.Path, "tropical is a path semiring")
}
