package fst_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/weft/fst"
)

// TestSymbolTable_AddAndLookup covers the basic bidirectional mapping.
func TestSymbolTable_AddAndLookup(t *testing.T) {
	tab := fst.NewSymbolTable("letters")

	eps := tab.AddSymbol("<eps>")
	a := tab.AddSymbol("a")
	assert.Equal(t, fst.Label(0), eps, "first symbol gets label 0")
	assert.Equal(t, fst.Label(1), a)
	assert.Equal(t, a, tab.AddSymbol("a"), "re-adding returns the existing label")

	assert.Equal(t, fst.Label(1), tab.Find("a"))
	assert.Equal(t, fst.NoLabel, tab.Find("z"), "absent symbol finds NoLabel")
	assert.Equal(t, "a", tab.Symbol(1))
	assert.True(t, tab.Member(0))
	assert.False(t, tab.Member(9))
	assert.Equal(t, 2, tab.NumSymbols())
}

// TestSymbolTable_AddSymbolKey verifies explicit keys overwrite both sides
// of a stale mapping.
func TestSymbolTable_AddSymbolKey(t *testing.T) {
	tab := fst.NewSymbolTable("t")

	tab.AddSymbolKey("a", 5)
	assert.Equal(t, fst.Label(6), tab.AddSymbol("b"), "nextKey advances past explicit keys")

	tab.AddSymbolKey("a", 7)
	assert.False(t, tab.Member(5), "remapping a symbol drops its old key")
	assert.Equal(t, fst.Label(7), tab.Find("a"))
}

// TestSymbolTable_CopyIsDeep ensures a copy never aliases the original and
// that a nil table copies as nil.
func TestSymbolTable_CopyIsDeep(t *testing.T) {
	tab := fst.NewSymbolTable("t")
	tab.AddSymbol("a")

	cp := tab.Copy()
	cp.AddSymbol("b")
	assert.Equal(t, 1, tab.NumSymbols(), "mutating the copy must not touch the original")
	assert.Equal(t, 2, cp.NumSymbols())
	assert.Equal(t, "t", cp.Name())

	var absent *fst.SymbolTable
	assert.Nil(t, absent.Copy(), "absence copies as absence")
}

// TestSymbolTable_TextRoundTrip writes the table as text and parses it
// back identically.
func TestSymbolTable_TextRoundTrip(t *testing.T) {
	tab := fst.NewSymbolTable("letters")
	tab.AddSymbol("<eps>")
	tab.AddSymbol("a")
	tab.AddSymbol("b")

	var sb strings.Builder
	require.NoError(t, tab.WriteText(&sb))
	assert.Equal(t, "<eps>\t0\na\t1\nb\t2\n", sb.String())

	got, err := fst.ReadSymbolTableText(strings.NewReader(sb.String()), "letters")
	require.NoError(t, err)
	assert.Equal(t, 3, got.NumSymbols())
	assert.Equal(t, fst.Label(2), got.Find("b"))
}

// TestSymbolTable_TextRejectsMalformedLine ensures a line without exactly
// two fields errors with ErrBadTextFormat.
func TestSymbolTable_TextRejectsMalformedLine(t *testing.T) {
	_, err := fst.ReadSymbolTableText(strings.NewReader("a 1 extra\n"), "t")
	assert.ErrorIs(t, err, fst.ErrBadTextFormat)
}
