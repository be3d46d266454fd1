// Package fst: binary serialization.
//
// A serialized automaton is a structured header (magic, version, type tag,
// semiring tag, capability flags, cached properties, start, counts)
// followed by the kind-specific body. The header's type tag drives the
// registry lookup in registry.go; the capability flags let the mutable
// entry point reject kinds that cannot mutate before the body is touched.

package fst

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/katalvlaran/weft/weight"
)

const (
	// headerMagic identifies a weft automaton stream.
	headerMagic = int32(0x57454654)

	// headerVersion is the current stream layout version.
	headerVersion = int32(1)

	// maxHeaderString bounds string fields to reject corrupt headers
	// before allocating.
	maxHeaderString = 1 << 16

	// maxReserve bounds pre-allocation driven by header counts: the counts
	// are not trusted until the body bytes backing them have been read, so
	// an oversized count costs slice growth, never memory up front.
	maxReserve = 1 << 16
)

// Capability flags carried by the serialized header.
const (
	// FlagMutable marks an encoded automaton kind supporting mutation.
	FlagMutable uint32 = 1 << 0

	// FlagHasISymbols marks a body carrying an input symbol table.
	FlagHasISymbols uint32 = 1 << 1

	// FlagHasOSymbols marks a body carrying an output symbol table.
	FlagHasOSymbols uint32 = 1 << 2
)

// Header is the structured header preceding every serialized automaton.
type Header struct {
	FstType    string
	Semiring   string
	Flags      uint32
	Properties uint64
	Start      int64
	NumStates  int64
	NumArcs    int64
}

// Write encodes the header in little-endian binary form.
func (h *Header) Write(w io.Writer) error {
	for _, v := range []any{headerMagic, headerVersion} {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return fmt.Errorf("fst: writing header: %w", err)
		}
	}
	if err := writeString(w, h.FstType); err != nil {
		return err
	}
	if err := writeString(w, h.Semiring); err != nil {
		return err
	}
	for _, v := range []any{h.Flags, h.Properties, h.Start, h.NumStates, h.NumArcs} {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return fmt.Errorf("fst: writing header: %w", err)
		}
	}

	return nil
}

// ReadHeader decodes and validates a header.
func ReadHeader(r io.Reader) (*Header, error) {
	var magic, version int32
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadHeader, err)
	}
	if magic != headerMagic {
		return nil, fmt.Errorf("%w: bad magic %#x", ErrBadHeader, magic)
	}
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadHeader, err)
	}
	if version != headerVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadHeader, version)
	}
	h := &Header{}
	var err error
	if h.FstType, err = readString(r); err != nil {
		return nil, fmt.Errorf("%w: type tag: %w", ErrBadHeader, err)
	}
	if h.Semiring, err = readString(r); err != nil {
		return nil, fmt.Errorf("%w: semiring tag: %w", ErrBadHeader, err)
	}
	for _, v := range []any{&h.Flags, &h.Properties, &h.Start, &h.NumStates, &h.NumArcs} {
		if err = binary.Read(r, binary.LittleEndian, v); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadHeader, err)
		}
	}
	if h.NumStates < 0 || h.NumArcs < 0 || h.Start < int64(NoStateID) {
		return nil, fmt.Errorf("%w: negative counts", ErrBadHeader)
	}

	return h, nil
}

// Write serializes the automaton: header, symbol tables, then per state
// the final weight, arc count, and arcs.
func (f *VectorFst) Write(w io.Writer) error {
	st := f.st
	numArcs := int64(0)
	for i := range st.states {
		numArcs += int64(len(st.states[i].arcs))
	}
	h := Header{
		FstType:    VectorFstType,
		Semiring:   st.sr.Name(),
		Flags:      FlagMutable,
		Properties: st.props.Load(),
		Start:      int64(st.start),
		NumStates:  int64(len(st.states)),
		NumArcs:    numArcs,
	}
	if st.isyms != nil {
		h.Flags |= FlagHasISymbols
	}
	if st.osyms != nil {
		h.Flags |= FlagHasOSymbols
	}
	if err := h.Write(w); err != nil {
		return err
	}
	if st.isyms != nil {
		if err := writeSymbolTable(w, st.isyms); err != nil {
			return err
		}
	}
	if st.osyms != nil {
		if err := writeSymbolTable(w, st.osyms); err != nil {
			return err
		}
	}
	for i := range st.states {
		state := &st.states[i]
		if err := st.sr.WriteWeight(w, state.final); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, int64(len(state.arcs))); err != nil {
			return fmt.Errorf("fst: writing state %d: %w", i, err)
		}
		for _, a := range state.arcs {
			if err := binary.Write(w, binary.LittleEndian, int64(a.ILabel)); err != nil {
				return fmt.Errorf("fst: writing arc: %w", err)
			}
			if err := binary.Write(w, binary.LittleEndian, int64(a.OLabel)); err != nil {
				return fmt.Errorf("fst: writing arc: %w", err)
			}
			if err := st.sr.WriteWeight(w, a.Weight); err != nil {
				return err
			}
			if err := binary.Write(w, binary.LittleEndian, int64(a.NextState)); err != nil {
				return fmt.Errorf("fst: writing arc: %w", err)
			}
		}
	}

	return nil
}

// readVectorFst is the registered factory for the vector kind. Every
// state id taken from the stream is validated against the header's state
// count before the automaton is handed out, so a corrupt body surfaces as
// ErrBadHeader rather than a panic on first traversal.
func readVectorFst(r io.Reader, h *Header, sr weight.Semiring) (Fst, error) {
	if h.Start >= h.NumStates {
		return nil, fmt.Errorf("%w: start %d out of range for %d states", ErrBadHeader, h.Start, h.NumStates)
	}
	f := NewVectorFst(sr, WithReservedStates(int(min(h.NumStates, maxReserve))))
	st := f.st
	if h.Flags&FlagHasISymbols != 0 {
		t, err := readSymbolTable(r)
		if err != nil {
			return nil, err
		}
		st.isyms = t
	}
	if h.Flags&FlagHasOSymbols != 0 {
		t, err := readSymbolTable(r)
		if err != nil {
			return nil, err
		}
		st.osyms = t
	}
	for i := int64(0); i < h.NumStates; i++ {
		final, err := sr.ReadWeight(r)
		if err != nil {
			return nil, err
		}
		var narcs int64
		if err = binary.Read(r, binary.LittleEndian, &narcs); err != nil {
			return nil, fmt.Errorf("fst: reading state %d: %w", i, err)
		}
		if narcs < 0 {
			return nil, fmt.Errorf("%w: negative arc count at state %d", ErrBadHeader, i)
		}
		arcs := make([]Arc, 0, min(narcs, maxReserve))
		for j := int64(0); j < narcs; j++ {
			var ilabel, olabel, next int64
			if err = binary.Read(r, binary.LittleEndian, &ilabel); err != nil {
				return nil, fmt.Errorf("fst: reading arc: %w", err)
			}
			if err = binary.Read(r, binary.LittleEndian, &olabel); err != nil {
				return nil, fmt.Errorf("fst: reading arc: %w", err)
			}
			w, werr := sr.ReadWeight(r)
			if werr != nil {
				return nil, werr
			}
			if err = binary.Read(r, binary.LittleEndian, &next); err != nil {
				return nil, fmt.Errorf("fst: reading arc: %w", err)
			}
			if next < 0 || next >= h.NumStates {
				return nil, fmt.Errorf("%w: arc destination %d out of range for %d states at state %d", ErrBadHeader, next, h.NumStates, i)
			}
			arcs = append(arcs, Arc{
				ILabel:    Label(ilabel),
				OLabel:    Label(olabel),
				Weight:    w,
				NextState: StateID(next),
			})
		}
		st.states = append(st.states, vectorState{final: final, arcs: arcs})
	}
	st.start = StateID(h.Start)
	st.props.Store(PropExpanded | PropMutable | (h.Properties & PropsTrinary))

	return f, nil
}

func writeString(w io.Writer, s string) error {
	if err := binary.Write(w, binary.LittleEndian, int32(len(s))); err != nil {
		return fmt.Errorf("fst: writing string: %w", err)
	}
	if _, err := io.WriteString(w, s); err != nil {
		return fmt.Errorf("fst: writing string: %w", err)
	}

	return nil
}

func readString(r io.Reader) (string, error) {
	var n int32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	if n < 0 || n > maxHeaderString {
		return "", fmt.Errorf("bad string length %d", n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}

	return string(buf), nil
}

func writeSymbolTable(w io.Writer, t *SymbolTable) error {
	if err := writeString(w, t.name); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, int64(len(t.keyToSym))); err != nil {
		return fmt.Errorf("fst: writing symbol table: %w", err)
	}
	for key, sym := range t.keyToSym {
		if err := binary.Write(w, binary.LittleEndian, int64(key)); err != nil {
			return fmt.Errorf("fst: writing symbol table: %w", err)
		}
		if err := writeString(w, sym); err != nil {
			return err
		}
	}

	return nil
}

func readSymbolTable(r io.Reader) (*SymbolTable, error) {
	name, err := readString(r)
	if err != nil {
		return nil, fmt.Errorf("fst: reading symbol table: %w", err)
	}
	var n int64
	if err = binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, fmt.Errorf("fst: reading symbol table: %w", err)
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: negative symbol count", ErrBadHeader)
	}
	t := NewSymbolTable(name)
	for i := int64(0); i < n; i++ {
		var key int64
		if err = binary.Read(r, binary.LittleEndian, &key); err != nil {
			return nil, fmt.Errorf("fst: reading symbol table: %w", err)
		}
		sym, serr := readString(r)
		if serr != nil {
			return nil, fmt.Errorf("fst: reading symbol table: %w", serr)
		}
		t.AddSymbolKey(sym, Label(key))
	}

	return t, nil
}
