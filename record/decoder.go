package record

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
)

// Decoder reads fields of a single block in schema order
type Decoder struct {
	schema *Schema
	buf    []byte
	field  int
	err    error
}

// NewDecoder returns a decoder over block. Block must be exactly
// schema.Size() bytes.
func NewDecoder(s *Schema, block []byte) (*Decoder, error) {
	if len(block) != s.Size() {
		return nil, &MalformedBlockError{
			Schema: s.Name,
			Offset: -1,
			Got:    len(block),
			Want:   s.Size(),
		}
	}
	return &Decoder{
		schema: s,
		buf:    block,
	}, nil
}

func (d *Decoder) next(kind FieldKind) []byte {
	if d.err != nil {
		return nil
	}
	s := d.schema
	if d.field >= len(s.Fields) {
		d.err = fmt.Errorf("%s: %w: too many fields read, schema has %d", s.Name, ErrSchemaMismatch, len(s.Fields))
		return nil
	}
	f := s.Fields[d.field]
	if f.Kind != kind {
		d.err = fmt.Errorf("%s: %w: field %d '%s' is %s, read as %s", s.Name, ErrSchemaMismatch, d.field, f.Name, f.Kind, kind)
		return nil
	}
	off := s.offsets[d.field]
	d.field++
	return d.buf[off : off+f.Size]
}

func (d *Decoder) Int32() int32 {
	b := d.next(KindInt32)
	if b == nil {
		return 0
	}
	return int32(binary.LittleEndian.Uint32(b))
}

func (d *Decoder) Float32() float32 {
	b := d.next(KindFloat32)
	if b == nil {
		return 0
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

// Text decodes a text field. Invalid UTF-8 is dropped, trailing
// zero bytes and spaces are stripped.
func (d *Decoder) Text() string {
	b := d.next(KindText)
	if b == nil {
		return ""
	}
	s := strings.ToValidUTF8(string(b), "")
	return strings.TrimRight(s, "\x00 ")
}

// Err returns the first error and checks that all fields were read
func (d *Decoder) Err() error {
	if d.err != nil {
		return d.err
	}
	if d.field != len(d.schema.Fields) {
		return fmt.Errorf("%s: %w: read %d fields, schema has %d", d.schema.Name, ErrSchemaMismatch, d.field, len(d.schema.Fields))
	}
	return nil
}
