package record

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedBlock is returned when a block doesn't have the size
	// required by its schema
	ErrMalformedBlock = errors.New("malformed block")

	// ErrSchemaMismatch is returned when a Codec doesn't visit
	// the fields in schema order
	ErrSchemaMismatch = errors.New("schema mismatch")
)

// MalformedBlockError describes a block of the wrong size.
// Offset is the position of the block in the file, -1 if not known.
type MalformedBlockError struct {
	Schema string
	Offset int64
	Got    int
	Want   int
}

func (e *MalformedBlockError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("%s: malformed block of %d bytes, expected %d", e.Schema, e.Got, e.Want)
	}
	return fmt.Sprintf("%s: malformed block at offset %d: %d bytes, expected %d", e.Schema, e.Offset, e.Got, e.Want)
}

func (e *MalformedBlockError) Unwrap() error {
	return ErrMalformedBlock
}

// Truncation records that a text value didn't fit its field and was cut
type Truncation struct {
	Field string
	// Have is the size of UTF-8 encoded value before truncation
	Have int
	// Max is the size of the field
	Max int
	// Stored is how many bytes were stored
	Stored int
}

func (t Truncation) String() string {
	return fmt.Sprintf("field '%s': %d bytes truncated to %d (max %d)", t.Field, t.Have, t.Stored, t.Max)
}
