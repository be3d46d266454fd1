// Package fst: bidirectional symbol tables mapping labels to display
// strings.
//
// Ownership discipline: a table is either exclusively owned by one
// automaton or deep-copied on assignment, never aliased between two
// logically distinct automata. Read accessors on Fst hand out borrowed
// views; the mutable accessors privatize the backing store first.

package fst

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// SymbolTable is a bidirectional mapping between labels and display
// strings.
type SymbolTable struct {
	name     string
	symToKey map[string]Label
	keyToSym map[Label]string
	nextKey  Label
}

// NewSymbolTable creates an empty table with the given name.
func NewSymbolTable(name string) *SymbolTable {
	return &SymbolTable{
		name:     name,
		symToKey: make(map[string]Label),
		keyToSym: make(map[Label]string),
	}
}

// Name returns the table's name.
func (t *SymbolTable) Name() string { return t.name }

// NumSymbols returns the number of mapped symbols.
func (t *SymbolTable) NumSymbols() int { return len(t.symToKey) }

// AddSymbol maps sym to the next available label and returns it; if sym is
// already mapped, its existing label is returned.
func (t *SymbolTable) AddSymbol(sym string) Label {
	if key, ok := t.symToKey[sym]; ok {
		return key
	}

	return t.AddSymbolKey(sym, t.nextKey)
}

// AddSymbolKey maps sym to the explicit label key and returns key. An
// existing mapping for either side is overwritten.
func (t *SymbolTable) AddSymbolKey(sym string, key Label) Label {
	if old, ok := t.symToKey[sym]; ok {
		delete(t.keyToSym, old)
	}
	if old, ok := t.keyToSym[key]; ok {
		delete(t.symToKey, old)
	}
	t.symToKey[sym] = key
	t.keyToSym[key] = sym
	if key >= t.nextKey {
		t.nextKey = key + 1
	}

	return key
}

// Find returns the label mapped to sym, or NoLabel when absent.
func (t *SymbolTable) Find(sym string) Label {
	if key, ok := t.symToKey[sym]; ok {
		return key
	}

	return NoLabel
}

// Symbol returns the string mapped to key, or "" when absent.
func (t *SymbolTable) Symbol(key Label) string {
	return t.keyToSym[key]
}

// Member reports whether key is mapped.
func (t *SymbolTable) Member(key Label) bool {
	_, ok := t.keyToSym[key]

	return ok
}

// Copy returns a deep copy; a nil receiver copies as nil, so "absent table"
// propagates as absence.
func (t *SymbolTable) Copy() *SymbolTable {
	if t == nil {
		return nil
	}
	c := NewSymbolTable(t.name)
	for sym, key := range t.symToKey {
		c.symToKey[sym] = key
		c.keyToSym[key] = sym
	}
	c.nextKey = t.nextKey

	return c
}

// WriteText writes the table as "symbol<TAB>label" lines in label order.
func (t *SymbolTable) WriteText(w io.Writer) error {
	keys := make([]Label, 0, len(t.keyToSym))
	for key := range t.keyToSym {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	for _, key := range keys {
		if _, err := fmt.Fprintf(w, "%s\t%d\n", t.keyToSym[key], key); err != nil {
			return err
		}
	}

	return nil
}

// ReadSymbolTableText parses "symbol<TAB or spaces>label" lines.
func ReadSymbolTableText(r io.Reader, name string) (*SymbolTable, error) {
	t := NewSymbolTable(name)
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: symbol table %q line %d", ErrBadTextFormat, name, line)
		}
		key, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: symbol table %q line %d: %w", ErrBadTextFormat, name, line, err)
		}
		t.AddSymbolKey(fields[0], Label(key))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("fst: reading symbol table %q: %w", name, err)
	}

	return t, nil
}
