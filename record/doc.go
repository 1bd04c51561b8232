/*
Package record converts typed values to and from fixed-length byte blocks.

A Schema is an ordered list of fields. Each field is a 32-bit integer, a 32-bit
float or a text field with a fixed byte budget. The size of a block is the sum
of field widths and is the same for every record of a kind.

Numbers are little-endian so that files can be moved between machines.

Text is stored as UTF-8. Text longer than its field is cut at the last complete
rune that fits and the cut is reported as a Truncation. Unused bytes are zero.
When decoding, invalid UTF-8 sequences are dropped and trailing zero bytes and
spaces are stripped.

A Codec describes how one Go type maps to a schema:

	type bookCodec struct{}

	func (bookCodec) Schema() *record.Schema { return bookSchema }

	func (bookCodec) Encode(b Book, e *record.Encoder) {
		e.PutInt32(b.ID)
		e.PutText(b.Title)
	}

	func (bookCodec) Decode(d *record.Decoder) Book {
		return Book{ID: d.Int32(), Title: d.Text()}
	}

Encode and Decode must visit fields in schema order. Marshal and Unmarshal
check that they did.
*/
package record
