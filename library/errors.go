package library

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrDuplicateKey is returned when creating a record with id that already exists
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrNotFound is returned when there's no record to update, delete or look up
	ErrNotFound = errors.New("not found")
	// ErrInvalid is returned when a record breaks a field constraint
	ErrInvalid = errors.New("invalid record")
	// ErrKeyChanged is returned when an update tries to change the id
	ErrKeyChanged = errors.New("id can't be changed")

	ErrMemberNotFound = fmt.Errorf("member %w", ErrNotFound)
	ErrBookNotFound   = fmt.Errorf("book %w", ErrNotFound)
)

// MissingBooksError lists book ids that were skipped when
// creating loans because they don't exist
type MissingBooksError struct {
	IDs []int32
}

func (e *MissingBooksError) Error() string {
	var ids []string
	for _, id := range e.IDs {
		ids = append(ids, strconv.Itoa(int(id)))
	}
	return fmt.Sprintf("books not found: %s", strings.Join(ids, ", "))
}

func (e *MissingBooksError) Unwrap() error {
	return ErrBookNotFound
}
