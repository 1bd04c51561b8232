package record

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"
)

// Encoder writes fields of a single block in schema order
type Encoder struct {
	schema      *Schema
	buf         []byte
	field       int
	err         error
	Truncations []Truncation
}

// NewEncoder returns an encoder writing into a fresh, zeroed block
func NewEncoder(s *Schema) *Encoder {
	return &Encoder{
		schema: s,
		buf:    make([]byte, s.Size()),
	}
}

// next returns the span of the next field, nil if kind doesn't match
func (e *Encoder) next(kind FieldKind) []byte {
	if e.err != nil {
		return nil
	}
	s := e.schema
	if e.field >= len(s.Fields) {
		e.err = fmt.Errorf("%s: %w: too many fields written, schema has %d", s.Name, ErrSchemaMismatch, len(s.Fields))
		return nil
	}
	f := s.Fields[e.field]
	if f.Kind != kind {
		e.err = fmt.Errorf("%s: %w: field %d '%s' is %s, written as %s", s.Name, ErrSchemaMismatch, e.field, f.Name, f.Kind, kind)
		return nil
	}
	off := s.offsets[e.field]
	e.field++
	return e.buf[off : off+f.Size]
}

func (e *Encoder) PutInt32(v int32) {
	if b := e.next(KindInt32); b != nil {
		binary.LittleEndian.PutUint32(b, uint32(v))
	}
}

func (e *Encoder) PutFloat32(v float32) {
	if b := e.next(KindFloat32); b != nil {
		binary.LittleEndian.PutUint32(b, math.Float32bits(v))
	}
}

// PutText writes s as UTF-8, zero-padded to the field size.
// If s doesn't fit, it's cut at the last complete rune.
func (e *Encoder) PutText(s string) {
	b := e.next(KindText)
	if b == nil {
		return
	}
	n := len(s)
	if n > len(b) {
		n = TruncateLen(s, len(b))
		f := e.schema.Fields[e.field-1]
		e.Truncations = append(e.Truncations, Truncation{
			Field:  f.Name,
			Have:   len(s),
			Max:    f.Size,
			Stored: n,
		})
	}
	copy(b, s[:n])
}

// TruncateLen returns the length of the longest prefix of s that is
// at most max bytes and doesn't end in the middle of a rune
func TruncateLen(s string, max int) int {
	if len(s) <= max {
		return len(s)
	}
	if utf8.RuneStart(s[max]) {
		return max
	}
	// s[max] continues a rune, find where that rune starts
	for n := max - 1; n >= 0 && max-n < utf8.UTFMax; n-- {
		if !utf8.RuneStart(s[n]) {
			continue
		}
		r, size := utf8.DecodeRuneInString(s[n:])
		if r != utf8.RuneError && n+size > max {
			return n
		}
		break
	}
	// not valid UTF-8, cut at the byte budget
	return max
}

// Bytes returns the encoded block. It fails if not all fields
// were written.
func (e *Encoder) Bytes() ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	if e.field != len(e.schema.Fields) {
		return nil, fmt.Errorf("%s: %w: wrote %d fields, schema has %d", e.schema.Name, ErrSchemaMismatch, e.field, len(e.schema.Fields))
	}
	return e.buf, nil
}
