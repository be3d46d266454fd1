// Package fst: the type registry and the deserialization entry points.
//
// The registry maps a serialized type tag to a factory producing a
// concrete automaton. Unknown tag, malformed header, semiring mismatch,
// and missing mutation capability are distinguishable failures: each is a
// wrapped sentinel plus one slog diagnostic line, never an abort.

package fst

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/katalvlaran/weft/weight"
)

// ReaderFunc parses a serialized body (the header is already consumed)
// into a concrete automaton.
type ReaderFunc func(r io.Reader, h *Header, sr weight.Semiring) (Fst, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]ReaderFunc)
)

// RegisterFstType installs the factory for a type tag, replacing any
// previous registration. Typically called from a package init.
func RegisterFstType(name string, fn ReaderFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = fn
}

func lookupFstType(name string) (ReaderFunc, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	fn, ok := registry[name]

	return fn, ok
}

func init() {
	RegisterFstType(VectorFstType, readVectorFst)
}

// ReadFst deserializes an automaton of any registered kind from r. The
// stream's semiring tag must match sr.
func ReadFst(r io.Reader, sr weight.Semiring) (Fst, error) {
	return readFst(r, sr, "stream", false)
}

// ReadMutableFst is ReadFst restricted to kinds carrying the mutation
// capability flag.
func ReadMutableFst(r io.Reader, sr weight.Semiring) (MutableFst, error) {
	f, err := readFst(r, sr, "stream", true)
	if err != nil {
		return nil, err
	}

	return toMutable(f, "stream")
}

// ReadFstFile deserializes from the named file, opened in binary mode; an
// empty source reads from standard input.
func ReadFstFile(source string, sr weight.Semiring) (Fst, error) {
	r, name, closer, err := openSource(source)
	if err != nil {
		return nil, err
	}
	defer closer()

	return readFst(r, sr, name, false)
}

// ReadMutableFstFile is ReadFstFile restricted to mutation-capable kinds.
func ReadMutableFstFile(source string, sr weight.Semiring) (MutableFst, error) {
	r, name, closer, err := openSource(source)
	if err != nil {
		return nil, err
	}
	defer closer()
	f, err := readFst(r, sr, name, true)
	if err != nil {
		return nil, err
	}

	return toMutable(f, name)
}

// toMutable guards against a factory whose product contradicts its
// header's capability flag.
func toMutable(f Fst, source string) (MutableFst, error) {
	m, ok := f.(MutableFst)
	if !ok {
		err := fmt.Errorf("%w: %s", ErrNotMutable, source)
		slog.Error("fst read failed", "source", source, "err", err)
		return nil, err
	}

	return m, nil
}

func openSource(source string) (io.Reader, string, func(), error) {
	if source == "" {
		return os.Stdin, "standard input", func() {}, nil
	}
	file, err := os.Open(source)
	if err != nil {
		return nil, "", nil, fmt.Errorf("fst: opening %q: %w", source, err)
	}

	return file, source, func() { _ = file.Close() }, nil
}

// readFst parses the header, consults the registry, and hands the body to
// the kind's factory. Failures surface as a wrapped sentinel plus one
// diagnostic log line.
func readFst(r io.Reader, sr weight.Semiring, source string, requireMutable bool) (Fst, error) {
	h, err := ReadHeader(r)
	if err != nil {
		slog.Error("fst read failed", "source", source, "err", err)
		return nil, err
	}
	if h.Semiring != sr.Name() {
		err = fmt.Errorf("%w: stream %q, caller %q: %s", ErrSemiringMismatch, h.Semiring, sr.Name(), source)
		slog.Error("fst read failed", "source", source, "err", err)
		return nil, err
	}
	if requireMutable && h.Flags&FlagMutable == 0 {
		err = fmt.Errorf("%w: %q: %s", ErrNotMutable, h.FstType, source)
		slog.Error("fst read failed", "source", source, "err", err)
		return nil, err
	}
	reader, ok := lookupFstType(h.FstType)
	if !ok {
		err = fmt.Errorf("%w: %q: %s", ErrUnknownFstType, h.FstType, source)
		slog.Error("fst read failed", "source", source, "err", err)
		return nil, err
	}
	f, err := reader(r, h, sr)
	if err != nil {
		slog.Error("fst read failed", "source", source, "err", err)
		return nil, err
	}

	return f, nil
}

// WriteFstFile serializes a VectorFst to the named file; an empty
// destination writes to standard output.
func WriteFstFile(f *VectorFst, dest string) error {
	if dest == "" {
		return f.Write(os.Stdout)
	}
	file, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("fst: creating %q: %w", dest, err)
	}
	if err = f.Write(file); err != nil {
		_ = file.Close()
		return err
	}

	return file.Close()
}
