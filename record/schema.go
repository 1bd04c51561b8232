package record

import "fmt"

type FieldKind int

const (
	KindInt32 FieldKind = iota
	KindFloat32
	KindText
)

func (k FieldKind) String() string {
	switch k {
	case KindInt32:
		return "int32"
	case KindFloat32:
		return "float32"
	case KindText:
		return "text"
	}
	return fmt.Sprintf("FieldKind(%d)", int(k))
}

// Field is a single fixed-width field of a block.
// Size is the width in bytes; for text fields it's also the max length
// of the UTF-8 encoded value.
type Field struct {
	Name string
	Kind FieldKind
	Size int
}

func Int32(name string) Field {
	return Field{Name: name, Kind: KindInt32, Size: 4}
}

func Float32(name string) Field {
	return Field{Name: name, Kind: KindFloat32, Size: 4}
}

func Text(name string, size int) Field {
	return Field{Name: name, Kind: KindText, Size: size}
}

// Schema is an ordered list of fields describing a block layout
type Schema struct {
	Name   string
	Fields []Field

	size    int
	offsets []int
}

// NewSchema builds a schema and computes field offsets.
// It panics on invalid field definitions because schemas are
// package-level declarations.
func NewSchema(name string, fields ...Field) *Schema {
	s := &Schema{
		Name:   name,
		Fields: fields,
	}
	for _, f := range fields {
		if f.Size <= 0 {
			panic(fmt.Sprintf("record: field '%s.%s' has invalid size %d", name, f.Name, f.Size))
		}
		if f.Kind != KindText && f.Size != 4 {
			panic(fmt.Sprintf("record: %s field '%s.%s' must be 4 bytes", f.Kind, name, f.Name))
		}
		s.offsets = append(s.offsets, s.size)
		s.size += f.Size
	}
	return s
}

// Size returns the size of the block in bytes
func (s *Schema) Size() int {
	return s.size
}

// Offset returns byte offset of i-th field within a block
func (s *Schema) Offset(i int) int {
	return s.offsets[i]
}

// FieldByName returns the field and its index, -1 if not found
func (s *Schema) FieldByName(name string) (Field, int) {
	for i, f := range s.Fields {
		if f.Name == name {
			return f, i
		}
	}
	return Field{}, -1
}
