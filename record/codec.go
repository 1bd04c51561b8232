package record

// Codec maps values of type T to blocks of Schema()
type Codec[T any] interface {
	Schema() *Schema
	Encode(v T, e *Encoder)
	Decode(d *Decoder) T
}

// Marshal encodes v into a new block.
// Truncated text fields are reported but are not an error.
func Marshal[T any](c Codec[T], v T) ([]byte, []Truncation, error) {
	e := NewEncoder(c.Schema())
	c.Encode(v, e)
	d, err := e.Bytes()
	if err != nil {
		return nil, nil, err
	}
	return d, e.Truncations, nil
}

// Unmarshal decodes a block. It fails with *MalformedBlockError
// if block has the wrong size.
func Unmarshal[T any](c Codec[T], block []byte) (T, error) {
	var zero T
	d, err := NewDecoder(c.Schema(), block)
	if err != nil {
		return zero, err
	}
	v := c.Decode(d)
	if err = d.Err(); err != nil {
		return zero, err
	}
	return v, nil
}
