package record

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/alecthomas/assert"
	"github.com/kjk/flatlib/require"
)

type testRec struct {
	ID   int32
	Name string
	Tag  string
	Fine float32
}

var testSchema = NewSchema("test",
	Int32("id"),
	Text("name", 10),
	Text("tag", 1),
	Float32("fine"),
)

type testCodec struct{}

func (testCodec) Schema() *Schema { return testSchema }

func (testCodec) Encode(r testRec, e *Encoder) {
	e.PutInt32(r.ID)
	e.PutText(r.Name)
	e.PutText(r.Tag)
	e.PutFloat32(r.Fine)
}

func (testCodec) Decode(d *Decoder) testRec {
	return testRec{
		ID:   d.Int32(),
		Name: d.Text(),
		Tag:  d.Text(),
		Fine: d.Float32(),
	}
}

// writes fine before tag
type badOrderCodec struct{ testCodec }

func (badOrderCodec) Encode(r testRec, e *Encoder) {
	e.PutInt32(r.ID)
	e.PutText(r.Name)
	e.PutFloat32(r.Fine)
	e.PutText(r.Tag)
}

func TestSchemaSize(t *testing.T) {
	require.Equal(t, 4+10+1+4, testSchema.Size())
	require.Equal(t, 14, testSchema.Offset(2))
	f, idx := testSchema.FieldByName("tag")
	require.Equal(t, 2, idx)
	require.Equal(t, KindText, f.Kind)
	_, idx = testSchema.FieldByName("missing")
	require.Equal(t, -1, idx)
}

func TestRoundTrip(t *testing.T) {
	tests := []testRec{
		{},
		{ID: 1, Name: "abc", Tag: "M", Fine: 1.5},
		{ID: -7, Name: "0123456789", Tag: "F", Fine: 0},
		{ID: 2147483647, Name: "ก", Tag: "", Fine: 12.25},
	}
	for _, tc := range tests {
		d, truncs, err := Marshal[testRec](testCodec{}, tc)
		require.NoError(t, err)
		require.Len(t, truncs, 0)
		require.Len(t, d, testSchema.Size())
		got, err := Unmarshal[testRec](testCodec{}, d)
		require.NoError(t, err)
		assert.Equal(t, tc, got)
	}
}

func TestLayoutLittleEndian(t *testing.T) {
	d, _, err := Marshal[testRec](testCodec{}, testRec{ID: 0x01020304, Name: "ab", Tag: "M", Fine: 1})
	require.NoError(t, err)
	require.Equal(t, []byte{4, 3, 2, 1}, d[0:4])
	require.Equal(t, []byte{'a', 'b', 0, 0, 0, 0, 0, 0, 0, 0}, d[4:14])
	require.Equal(t, byte('M'), d[14])
	// 1.0 as IEEE 754 float32 is 0x3f800000
	require.Equal(t, []byte{0, 0, 0x80, 0x3f}, d[15:19])
}

func TestTextTruncation(t *testing.T) {
	d, truncs, err := Marshal[testRec](testCodec{}, testRec{Name: strings.Repeat("x", 15), Tag: "MF"})
	require.NoError(t, err)
	require.Len(t, truncs, 2)
	require.Equal(t, "name", truncs[0].Field)
	require.Equal(t, 15, truncs[0].Have)
	require.Equal(t, 10, truncs[0].Stored)
	require.Equal(t, "tag", truncs[1].Field)
	got, err := Unmarshal[testRec](testCodec{}, d)
	require.NoError(t, err)
	require.Equal(t, strings.Repeat("x", 10), got.Name)
	require.Equal(t, "M", got.Tag)
}

func TestTextTruncationKeepsRunes(t *testing.T) {
	// each "ก" is 3 bytes in UTF-8, 4 of them is 12 bytes
	name := strings.Repeat("ก", 4)
	d, truncs, err := Marshal[testRec](testCodec{}, testRec{Name: name})
	require.NoError(t, err)
	require.Len(t, truncs, 1)
	require.Equal(t, 9, truncs[0].Stored)
	span := d[4:14]
	require.True(t, utf8.Valid(span[:9]))
	require.Equal(t, byte(0), span[9])
	got, err := Unmarshal[testRec](testCodec{}, d)
	require.NoError(t, err)
	require.Equal(t, strings.Repeat("ก", 3), got.Name)
}

func TestTruncateLen(t *testing.T) {
	require.Equal(t, 3, TruncateLen("abc", 5))
	require.Equal(t, 5, TruncateLen("abcdefg", 5))
	require.Equal(t, 3, TruncateLen("กข", 5))
	require.Equal(t, 0, TruncateLen("ก", 2))
	// invalid UTF-8 is cut at the byte budget
	require.Equal(t, 4, TruncateLen("\x80\x80\x80\x80\x80\x80", 4))
	require.Equal(t, 4, TruncateLen("a\x80\x80\x80\x80\x80", 4))
	require.Equal(t, 2, TruncateLen("ab\xe0\xb8\x81", 4))
	require.Equal(t, 0, TruncateLen("", 0))
}

func TestDecodeTrimsAndDropsInvalid(t *testing.T) {
	d := make([]byte, testSchema.Size())
	copy(d[4:], []byte("ab \xff c  "))
	got, err := Unmarshal[testRec](testCodec{}, d)
	require.NoError(t, err)
	require.Equal(t, "ab  c", got.Name)
}

func TestMalformedBlock(t *testing.T) {
	for _, n := range []int{0, 1, testSchema.Size() - 1, testSchema.Size() + 1} {
		_, err := Unmarshal[testRec](testCodec{}, make([]byte, n))
		require.ErrorIs(t, err, ErrMalformedBlock)
		var mbe *MalformedBlockError
		require.True(t, errors.As(err, &mbe))
		require.Equal(t, n, mbe.Got)
		require.Equal(t, testSchema.Size(), mbe.Want)
	}
}

func TestSchemaMismatch(t *testing.T) {
	_, _, err := Marshal[testRec](badOrderCodec{}, testRec{})
	require.ErrorIs(t, err, ErrSchemaMismatch)

	e := NewEncoder(testSchema)
	e.PutInt32(1)
	_, err = e.Bytes()
	require.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestNewSchemaPanics(t *testing.T) {
	defer func() {
		require.NotNil(t, recover())
	}()
	NewSchema("bad", Field{Name: "x", Kind: KindInt32, Size: 8})
}
