// Package fst: the textual automaton format.
//
// One arc per line "src dst ilabel olabel [weight]", one final-state line
// "state [weight]"; a missing weight means One. The first line's source
// state is the start state. Labels are integers, or symbols resolved
// through the attached tables.

package fst

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/weft/weight"
)

// PrintText writes f in the textual format, start state first. Labels are
// printed through the symbol tables when attached.
func PrintText(w io.Writer, f Fst) error {
	n := f.NumStates()
	start := f.Start()
	sr := f.Semiring()
	order := make([]StateID, 0, n)
	if start != NoStateID {
		order = append(order, start)
	}
	for s := 0; s < n; s++ {
		if StateID(s) != start {
			order = append(order, StateID(s))
		}
	}
	bw := bufio.NewWriter(w)
	for _, s := range order {
		for it := f.Arcs(s); !it.Done(); it.Next() {
			a := it.Value()
			isym, err := printLabel(f.InputSymbols(), a.ILabel)
			if err != nil {
				return err
			}
			osym, err := printLabel(f.OutputSymbols(), a.OLabel)
			if err != nil {
				return err
			}
			if a.Weight.Equal(sr.One()) {
				fmt.Fprintf(bw, "%d\t%d\t%s\t%s\n", s, a.NextState, isym, osym)
			} else {
				fmt.Fprintf(bw, "%d\t%d\t%s\t%s\t%s\n", s, a.NextState, isym, osym, a.Weight)
			}
		}
		final := f.Final(s)
		if final.Equal(sr.Zero()) {
			continue
		}
		if final.Equal(sr.One()) {
			fmt.Fprintf(bw, "%d\n", s)
		} else {
			fmt.Fprintf(bw, "%d\t%s\n", s, final)
		}
	}

	return bw.Flush()
}

// CompileText parses the textual format into a VectorFst over sr. When a
// symbol table is supplied, the corresponding labels are resolved through
// it and a copy is attached to the result; otherwise labels must be
// integers. States referenced before definition are allocated on demand.
func CompileText(r io.Reader, sr weight.Semiring, isyms, osyms *SymbolTable) (*VectorFst, error) {
	f := NewVectorFst(sr, WithInputSymbols(isyms), WithOutputSymbols(osyms))
	sc := bufio.NewScanner(r)
	line := 0
	first := true
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		fields := strings.Fields(text)
		src, err := parseState(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrBadTextFormat, line, err)
		}
		growStates(f, src)
		if first {
			f.SetStart(src)
			first = false
		}
		switch len(fields) {
		case 1, 2:
			// final-state line
			w := sr.One()
			if len(fields) == 2 {
				if w, err = sr.Parse(fields[1]); err != nil {
					return nil, fmt.Errorf("%w: line %d: %w", ErrBadTextFormat, line, err)
				}
			}
			f.SetFinal(src, w)
		case 4, 5:
			dst, err := parseState(fields[1])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %w", ErrBadTextFormat, line, err)
			}
			growStates(f, dst)
			ilabel, err := parseLabel(isyms, fields[2])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			olabel, err := parseLabel(osyms, fields[3])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			w := sr.One()
			if len(fields) == 5 {
				if w, err = sr.Parse(fields[4]); err != nil {
					return nil, fmt.Errorf("%w: line %d: %w", ErrBadTextFormat, line, err)
				}
			}
			f.AddArc(src, Arc{ILabel: ilabel, OLabel: olabel, Weight: w, NextState: dst})
		default:
			return nil, fmt.Errorf("%w: line %d: %d fields", ErrBadTextFormat, line, len(fields))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("fst: reading text: %w", err)
	}

	return f, nil
}

// printLabel renders a label through the table when one is attached.
func printLabel(t *SymbolTable, l Label) (string, error) {
	if t == nil {
		return strconv.Itoa(int(l)), nil
	}
	if !t.Member(l) {
		return "", fmt.Errorf("%w: label %d in table %q", ErrUnknownSymbol, l, t.Name())
	}

	return t.Symbol(l), nil
}

// parseLabel resolves a field through the table when one is attached,
// falling back to integer labels otherwise.
func parseLabel(t *SymbolTable, field string) (Label, error) {
	if t != nil {
		if l := t.Find(field); l != NoLabel {
			return l, nil
		}
		return NoLabel, fmt.Errorf("%w: %q in table %q", ErrUnknownSymbol, field, t.Name())
	}
	v, err := strconv.Atoi(field)
	if err != nil {
		return NoLabel, fmt.Errorf("%w: label %q", ErrBadTextFormat, field)
	}

	return Label(v), nil
}

func parseState(field string) (StateID, error) {
	v, err := strconv.Atoi(field)
	if err != nil || v < 0 {
		return NoStateID, fmt.Errorf("bad state id %q", field)
	}

	return StateID(v), nil
}

// growStates allocates states up to and including s.
func growStates(f *VectorFst, s StateID) {
	if n := int(s) + 1 - f.NumStates(); n > 0 {
		f.AddStates(n)
	}
}
