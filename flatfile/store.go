package flatfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"

	"github.com/kjk/flatlib/atomicfile"
	"github.com/kjk/flatlib/log"
	"github.com/kjk/flatlib/record"
)

// how many blocks we buffer when reading
const readAheadBlocks = 64

type Store[T any] struct {
	Path  string
	Codec record.Codec[T]

	// if true, a partial block at the end of file is an error
	// (*record.MalformedBlockError). If false, it's logged and ignored.
	// Append refuses to write after a partial block if true.
	StrictTail bool

	// OnTruncate, if set, is called for every text field that didn't
	// fit when writing. Truncations are always logged.
	OnTruncate func(tr record.Truncation)
}

// New returns a store at path with StrictTail enabled
func New[T any](path string, codec record.Codec[T]) *Store[T] {
	return &Store[T]{
		Path:       path,
		Codec:      codec,
		StrictTail: true,
	}
}

func (s *Store[T]) BlockSize() int {
	return s.Codec.Schema().Size()
}

func (s *Store[T]) name() string {
	return s.Codec.Schema().Name
}

func (s *Store[T]) encode(v T) ([]byte, error) {
	d, truncs, err := record.Marshal(s.Codec, v)
	if err != nil {
		return nil, err
	}
	for _, tr := range truncs {
		log.Logf("flatfile: %s: %s\n", s.name(), tr)
		if s.OnTruncate != nil {
			s.OnTruncate(tr)
		}
	}
	return d, nil
}

func (s *Store[T]) tailError(size int64) error {
	bs := int64(s.BlockSize())
	rem := size % bs
	if rem == 0 {
		return nil
	}
	return &record.MalformedBlockError{
		Schema: s.name(),
		Offset: size - rem,
		Got:    int(rem),
		Want:   int(bs),
	}
}

// CheckTail returns a wrapped *record.MalformedBlockError if the
// file size is not a whole number of blocks. A missing file is fine.
func (s *Store[T]) CheckTail() error {
	st, err := os.Stat(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err = s.tailError(st.Size()); err != nil {
		return fmt.Errorf("flatfile: '%s': %w", s.Path, err)
	}
	return nil
}

// appendToFileRobust appends data at the end of file, creating
// the file and its directory if needed
func appendToFileRobust(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	_, err = file.Write(data)
	if err != nil {
		file.Close()
		return err
	}
	err = file.Sync()
	if err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Append encodes v and writes it at the end of file.
// It doesn't read the file.
func (s *Store[T]) Append(v T) error {
	d, err := s.encode(v)
	if err != nil {
		return err
	}
	if s.StrictTail {
		if err = s.CheckTail(); err != nil {
			return fmt.Errorf("flatfile: refusing to append: %w", err)
		}
	}
	return appendToFileRobust(s.Path, d)
}

// Scan returns a lazy sequence of all records in the file.
// Each iteration re-reads the file from the start.
// A missing file is an empty sequence. If reading or decoding
// fails, the error is the last value of the sequence.
func (s *Store[T]) Scan() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		f, err := os.Open(s.Path)
		if err != nil {
			if !os.IsNotExist(err) {
				yield(zero, err)
			}
			return
		}
		defer f.Close()

		size := s.BlockSize()
		r := bufio.NewReaderSize(f, size*readAheadBlocks)
		buf := make([]byte, size)
		var off int64
		for {
			n, err := io.ReadFull(r, buf)
			if err == io.EOF {
				return
			}
			if errors.Is(err, io.ErrUnexpectedEOF) {
				mbe := &record.MalformedBlockError{
					Schema: s.name(),
					Offset: off,
					Got:    n,
					Want:   size,
				}
				if s.StrictTail {
					yield(zero, fmt.Errorf("flatfile: '%s': %w", s.Path, mbe))
					return
				}
				log.Logf("flatfile: '%s': ignoring partial block: %s\n", s.Path, mbe)
				return
			}
			if err != nil {
				yield(zero, err)
				return
			}
			v, err := record.Unmarshal(s.Codec, buf)
			if err != nil {
				yield(zero, err)
				return
			}
			if !yield(v, nil) {
				return
			}
			off += int64(size)
		}
	}
}

// All returns all records in file order
func (s *Store[T]) All() ([]T, error) {
	var res []T
	for v, err := range s.Scan() {
		if err != nil {
			return nil, err
		}
		res = append(res, v)
	}
	return res, nil
}

// OverwriteAll replaces the content of the file with vs, in order.
// All records are encoded before the file is touched and the file
// is replaced atomically.
func (s *Store[T]) OverwriteAll(vs []T) error {
	d := make([]byte, 0, len(vs)*s.BlockSize())
	for _, v := range vs {
		block, err := s.encode(v)
		if err != nil {
			return err
		}
		d = append(d, block...)
	}
	if err := atomicfile.WriteFile(s.Path, d); err != nil {
		return err
	}
	log.Verbosef("flatfile: re-wrote '%s' with %d records\n", s.Path, len(vs))
	return nil
}

// Count returns number of complete records in the file
func (s *Store[T]) Count() (int, error) {
	st, err := os.Stat(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	if s.StrictTail {
		if err = s.tailError(st.Size()); err != nil {
			return 0, fmt.Errorf("flatfile: '%s': %w", s.Path, err)
		}
	}
	return int(st.Size() / int64(s.BlockSize())), nil
}
