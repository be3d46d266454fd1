package fst_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/weft/fst"
	"github.com/katalvlaran/weft/weight"
)

// TestText_CompileBasic compiles numeric-label lines and checks the
// resulting structure.
func TestText_CompileBasic(t *testing.T) {
	src := "0\t1\t1\t2\t0.5\n" +
		"1\t2\t3\t3\n" +
		"2\t1.5\n"

	f, err := fst.CompileText(strings.NewReader(src), weight.TropicalSemiring, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, f.NumStates())
	assert.Equal(t, fst.StateID(0), f.Start(), "first line's source is the start")
	require.Equal(t, 1, f.NumArcs(0))
	arc := f.Arcs(0).Value()
	assert.Equal(t, fst.Label(1), arc.ILabel)
	assert.Equal(t, fst.Label(2), arc.OLabel)
	assert.True(t, arc.Weight.Equal(weight.Trop(0.5)))
	assert.True(t, f.Arcs(1).Value().Weight.Equal(weight.TropicalSemiring.One()), "missing weight means One")
	assert.True(t, f.Final(2).Equal(weight.Trop(1.5)))
	assert.True(t, f.Final(0).Equal(weight.TropicalSemiring.Zero()), "unlisted states are non-final")
}

// TestText_CompileWithSymbols resolves labels through supplied tables and
// attaches copies to the result.
func TestText_CompileWithSymbols(t *testing.T) {
	syms := fst.NewSymbolTable("letters")
	syms.AddSymbol("<eps>")
	syms.AddSymbol("a")
	syms.AddSymbol("b")

	src := "0\t1\ta\tb\n1\n"
	f, err := fst.CompileText(strings.NewReader(src), weight.TropicalSemiring, syms, syms)
	require.NoError(t, err)

	arc := f.Arcs(0).Value()
	assert.Equal(t, fst.Label(1), arc.ILabel)
	assert.Equal(t, fst.Label(2), arc.OLabel)
	require.NotNil(t, f.InputSymbols())

	syms.AddSymbol("c")
	assert.Equal(t, 3, f.InputSymbols().NumSymbols(), "attached table is a copy")
}

// TestText_CompileUnknownSymbolFails ensures a symbol missing from the
// table errors with ErrUnknownSymbol.
func TestText_CompileUnknownSymbolFails(t *testing.T) {
	syms := fst.NewSymbolTable("letters")
	syms.AddSymbol("<eps>")

	_, err := fst.CompileText(strings.NewReader("0\t1\tz\tz\n"), weight.TropicalSemiring, syms, syms)
	assert.ErrorIs(t, err, fst.ErrUnknownSymbol)
}

// TestText_CompileMalformedLineFails covers a wrong field count and a bad
// weight literal.
func TestText_CompileMalformedLineFails(t *testing.T) {
	_, err := fst.CompileText(strings.NewReader("0 1 2\n"), weight.TropicalSemiring, nil, nil)
	assert.ErrorIs(t, err, fst.ErrBadTextFormat, "three fields is neither arc nor final line")

	_, err = fst.CompileText(strings.NewReader("0\tbanana\n"), weight.TropicalSemiring, nil, nil)
	assert.ErrorIs(t, err, fst.ErrBadTextFormat, "unparsable final weight")
}

// TestText_PrintRoundTrip prints a compiled automaton and recompiles it to
// the same structure, start state ordered first.
func TestText_PrintRoundTrip(t *testing.T) {
	src := "1\t0\t2\t2\t3\n" +
		"0\t1\t1\t1\t0.5\n" +
		"0\t2\n"
	f, err := fst.CompileText(strings.NewReader(src), weight.TropicalSemiring, nil, nil)
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, fst.PrintText(&sb, f))
	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "1\t"), "start state prints first")

	g, err := fst.CompileText(strings.NewReader(sb.String()), weight.TropicalSemiring, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, f.NumStates(), g.NumStates())
	assert.Equal(t, f.Start(), g.Start())
	for s := fst.StateID(0); int(s) < f.NumStates(); s++ {
		assert.Equal(t, f.NumArcs(s), g.NumArcs(s))
		assert.True(t, f.Final(s).Equal(g.Final(s)))
	}
}

// TestText_PrintWithSymbols prints labels through attached tables.
func TestText_PrintWithSymbols(t *testing.T) {
	syms := fst.NewSymbolTable("letters")
	syms.AddSymbol("<eps>")
	syms.AddSymbol("a")

	f, err := fst.CompileText(strings.NewReader("0\t1\ta\ta\n1\n"), weight.TropicalSemiring, syms, syms)
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, fst.PrintText(&sb, f))
	assert.Equal(t, "0\t1\ta\ta\n1\n", sb.String())
}
