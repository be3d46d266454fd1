// Package weight: textual codec for composite (tupled/nested) weights.
//
// The grammar is configured by one separator character and an optional
// matching bracket pair. Configuration and parse failures are sticky: they
// taint the stream's failure state and every subsequent call becomes a
// silent no-op, mirroring the error model described in doc.go. Callers observe
// the fault through Err().

package weight

import (
	"bufio"
	"io"
	"strings"
	"sync"
)

// CodecConfig is the composite-weight grammar configuration: one separator
// character and an optional matching bracket pair. Zero bracket bytes mean
// "no brackets".
type CodecConfig struct {
	Separator  byte
	OpenParen  byte
	CloseParen byte
}

// validate checks the invariants a usable configuration must satisfy.
func (c CodecConfig) validate() error {
	if c.Separator == 0 {
		return ErrBadSeparator
	}
	if (c.OpenParen == 0) != (c.CloseParen == 0) {
		return ErrBadParentheses
	}

	return nil
}

// bracketed reports whether a bracket pair is configured.
func (c CodecConfig) bracketed() bool { return c.OpenParen != 0 }

// Package-level codec defaults. They are read exactly once, by the first
// default-constructed reader or writer; set them before any codec use
// (typically at program start). Explicit constructor configs bypass them.
var (
	// DefaultSeparator is the separator between printed composite weight
	// components; must be exactly one character.
	DefaultSeparator = ","

	// DefaultParentheses encloses printed composite weights to make nested
	// composites unambiguous; must be empty or exactly two characters
	// (open then close).
	DefaultParentheses = ""
)

var (
	defaultCfgOnce sync.Once
	defaultCfg     CodecConfig
	defaultCfgErr  error
)

// defaultCodecConfig resolves the two package-level settings exactly once.
func defaultCodecConfig() (CodecConfig, error) {
	defaultCfgOnce.Do(func() {
		if len(DefaultSeparator) != 1 {
			defaultCfgErr = ErrBadSeparator
			return
		}
		cfg := CodecConfig{Separator: DefaultSeparator[0]}
		switch len(DefaultParentheses) {
		case 0:
			// no brackets
		case 2:
			cfg.OpenParen = DefaultParentheses[0]
			cfg.CloseParen = DefaultParentheses[1]
		default:
			defaultCfgErr = ErrBadParentheses
			return
		}
		defaultCfg = cfg
	})

	return defaultCfg, defaultCfgErr
}

// CompositeWriter emits one composite weight value: WriteBegin, then the
// components' own text forms joined by WriteSeparator, then WriteEnd.
type CompositeWriter struct {
	w   io.Writer
	cfg CodecConfig
	err error
}

// NewCompositeWriter returns a writer configured from the package defaults.
// A malformed default configuration taints the writer immediately.
func NewCompositeWriter(w io.Writer) *CompositeWriter {
	cfg, err := defaultCodecConfig()

	return &CompositeWriter{w: w, cfg: cfg, err: err}
}

// NewCompositeWriterConfig returns a writer with an explicit configuration,
// overriding the package defaults for this instance.
func NewCompositeWriterConfig(w io.Writer, cfg CodecConfig) *CompositeWriter {
	return &CompositeWriter{w: w, cfg: cfg, err: cfg.validate()}
}

// Err reports the sticky fault, if any.
func (cw *CompositeWriter) Err() error { return cw.err }

func (cw *CompositeWriter) writeByte(b byte) {
	if cw.err != nil {
		return
	}
	_, cw.err = cw.w.Write([]byte{b})
}

// WriteBegin emits the open bracket when one is configured.
func (cw *CompositeWriter) WriteBegin() {
	if cw.cfg.bracketed() {
		cw.writeByte(cw.cfg.OpenParen)
	}
}

// WriteElement writes one component's own text form verbatim.
func (cw *CompositeWriter) WriteElement(text string) {
	if cw.err != nil {
		return
	}
	_, cw.err = io.WriteString(cw.w, text)
}

// WriteSeparator emits the separator between two components.
func (cw *CompositeWriter) WriteSeparator() {
	cw.writeByte(cw.cfg.Separator)
}

// WriteEnd emits the close bracket when one is configured.
func (cw *CompositeWriter) WriteEnd() {
	if cw.cfg.bracketed() {
		cw.writeByte(cw.cfg.CloseParen)
	}
}

// eofByte marks end of input in the reader's one-byte lookahead.
const eofByte = -1

// CompositeReader parses one composite weight value with the dual grammar:
// ReadBegin, then alternate ReadElement / ReadSeparator, then ReadEnd.
// Nested bracketed composites inside an element are consumed balanced;
// unbracketed nesting is ambiguous and not resolvable by this grammar.
type CompositeReader struct {
	br    *bufio.Reader
	cfg   CodecConfig
	c     int // one-byte lookahead; eofByte at end of input
	depth int // bracket nesting depth entered via ReadBegin
	err   error
}

// NewCompositeReader returns a reader configured from the package defaults.
// A malformed default configuration taints the reader immediately.
func NewCompositeReader(r io.Reader) *CompositeReader {
	cfg, err := defaultCodecConfig()

	return &CompositeReader{br: bufio.NewReader(r), cfg: cfg, err: err}
}

// NewCompositeReaderConfig returns a reader with an explicit configuration,
// overriding the package defaults for this instance.
func NewCompositeReaderConfig(r io.Reader, cfg CodecConfig) *CompositeReader {
	return &CompositeReader{br: bufio.NewReader(r), cfg: cfg, err: cfg.validate()}
}

// Err reports the sticky fault, if any.
func (cr *CompositeReader) Err() error { return cr.err }

// next advances the lookahead by one byte; an underlying read error taints
// the stream, a clean end of input parks the lookahead at eofByte.
func (cr *CompositeReader) next() {
	if cr.err != nil {
		return
	}
	b, err := cr.br.ReadByte()
	if err != nil {
		cr.c = eofByte
		if err != io.EOF {
			cr.err = err
		}
		return
	}
	cr.c = int(b)
}

// ReadBegin skips leading whitespace and, when brackets are configured,
// requires and consumes the open bracket, entering one nesting level.
func (cr *CompositeReader) ReadBegin() {
	if cr.err != nil {
		return
	}
	cr.next()
	for cr.c != eofByte && isCodecSpace(byte(cr.c)) {
		cr.next()
	}
	if cr.cfg.bracketed() {
		if cr.c != int(cr.cfg.OpenParen) {
			cr.err = ErrOpenParenMissing
			return
		}
		cr.depth++
		cr.next()
	}
}

// ReadElement consumes one component's raw text, leaving the lookahead on
// the terminating separator, close bracket, whitespace, or end of input.
// Bracket pairs nested inside the component are kept balanced and included
// verbatim, so bracketed composites nest recursively.
func (cr *CompositeReader) ReadElement() string {
	if cr.err != nil {
		return ""
	}
	var sb strings.Builder
	nested := 0
	for cr.c != eofByte {
		b := byte(cr.c)
		if cr.cfg.bracketed() {
			switch b {
			case cr.cfg.OpenParen:
				nested++
			case cr.cfg.CloseParen:
				if nested == 0 {
					return sb.String()
				}
				nested--
			case cr.cfg.Separator:
				if nested == 0 {
					return sb.String()
				}
			}
		} else if b == cr.cfg.Separator || isCodecSpace(b) {
			return sb.String()
		}
		sb.WriteByte(b)
		cr.next()
	}

	return sb.String()
}

// ReadSeparator requires and consumes the separator between two components.
func (cr *CompositeReader) ReadSeparator() {
	if cr.err != nil {
		return
	}
	if cr.c != int(cr.cfg.Separator) {
		cr.err = ErrSeparatorMissing
		return
	}
	cr.next()
}

// ReadEnd closes the composite: when brackets are configured it requires
// and consumes the close bracket, then rejects any trailing input that is
// not whitespace or end of input.
func (cr *CompositeReader) ReadEnd() {
	if cr.err != nil {
		return
	}
	if cr.cfg.bracketed() {
		if cr.c != int(cr.cfg.CloseParen) {
			cr.err = ErrCloseParenMissing
			return
		}
		cr.depth--
		cr.next()
	}
	if cr.c != eofByte && !isCodecSpace(byte(cr.c)) {
		cr.err = ErrTrailingGarbage
	}
}

// isCodecSpace matches the whitespace the grammar skips and accepts as a
// value terminator.
func isCodecSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}

	return false
}
