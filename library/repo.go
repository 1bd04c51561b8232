package library

import (
	"fmt"

	"github.com/kjk/flatlib/flatfile"
	"github.com/kjk/flatlib/log"
)

type validator interface {
	Validate() error
}

func validate[T any](v *T) error {
	if vl, ok := any(v).(validator); ok {
		return vl.Validate()
	}
	return nil
}

// Repo is a store of records with a unique int32 id.
// Uniqueness is checked by Create. Every operation scans
// the whole file.
type Repo[T any] struct {
	// used in errors and events e.g. "book"
	Kind  string
	Store *flatfile.Store[T]
	key   func(*T) int32
}

func NewRepo[T any](kind string, store *flatfile.Store[T], key func(*T) int32) *Repo[T] {
	return &Repo[T]{
		Kind:  kind,
		Store: store,
		key:   key,
	}
}

func (r *Repo[T]) Key(v *T) int32 {
	return r.key(v)
}

// Exists returns true if there's a record with this id
func (r *Repo[T]) Exists(id int32) (bool, error) {
	_, ok, err := r.Find(id)
	return ok, err
}

// Find returns the first record with this id.
// With StrictTail a damaged file is an error even if the record
// is found before the damage.
func (r *Repo[T]) Find(id int32) (T, bool, error) {
	var zero T
	if r.Store.StrictTail {
		if err := r.Store.CheckTail(); err != nil {
			return zero, false, err
		}
	}
	for v, err := range r.Store.Scan() {
		if err != nil {
			return zero, false, err
		}
		if r.key(&v) == id {
			return v, true, nil
		}
	}
	return zero, false, nil
}

// Get is like Find but returns ErrNotFound if there's no record
func (r *Repo[T]) Get(id int32) (T, error) {
	v, ok, err := r.Find(id)
	if err != nil {
		return v, err
	}
	if !ok {
		return v, fmt.Errorf("%s %d: %w", r.Kind, id, ErrNotFound)
	}
	return v, nil
}

// Create appends v. If a record with the same id exists,
// it returns ErrDuplicateKey and doesn't change the file.
func (r *Repo[T]) Create(v T) error {
	if err := validate(&v); err != nil {
		return err
	}
	id := r.key(&v)
	exists, err := r.Exists(id)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%s %d: %w", r.Kind, id, ErrDuplicateKey)
	}
	if err = r.Store.Append(v); err != nil {
		return err
	}
	log.Event(r.Kind+"_created", "id", id)
	return nil
}

// Update calls mutate on the first record with this id and re-writes
// the file. Other records are written back unchanged and in the same
// order. mutate can't change the id.
func (r *Repo[T]) Update(id int32, mutate func(v *T)) error {
	all, err := r.Store.All()
	if err != nil {
		return err
	}
	for i := range all {
		v := &all[i]
		if r.key(v) != id {
			continue
		}
		mutate(v)
		if r.key(v) != id {
			return fmt.Errorf("%s %d: %w", r.Kind, id, ErrKeyChanged)
		}
		if err = validate(v); err != nil {
			return err
		}
		if err = r.Store.OverwriteAll(all); err != nil {
			return err
		}
		log.Event(r.Kind+"_updated", "id", id)
		return nil
	}
	return fmt.Errorf("%s %d: %w", r.Kind, id, ErrNotFound)
}

// Delete removes all records with this id. If there are none
// it returns ErrNotFound and doesn't re-write the file.
func (r *Repo[T]) Delete(id int32) error {
	all, err := r.Store.All()
	if err != nil {
		return err
	}
	kept := make([]T, 0, len(all))
	for _, v := range all {
		if r.key(&v) != id {
			kept = append(kept, v)
		}
	}
	if len(kept) == len(all) {
		return fmt.Errorf("%s %d: %w", r.Kind, id, ErrNotFound)
	}
	if err = r.Store.OverwriteAll(kept); err != nil {
		return err
	}
	log.Event(r.Kind+"_deleted", "id", id, "count", len(all)-len(kept))
	return nil
}

// All returns all records in file order
func (r *Repo[T]) All() ([]T, error) {
	return r.Store.All()
}

func (r *Repo[T]) Count() (int, error) {
	return r.Store.Count()
}

// Map returns records keyed by id. It's built from a full scan on
// every call. If ids repeat, the first record wins, same as Find.
func (r *Repo[T]) Map() (map[int32]T, error) {
	all, err := r.Store.All()
	if err != nil {
		return nil, err
	}
	return toMap(all, r.key), nil
}

func toMap[T any](all []T, key func(*T) int32) map[int32]T {
	m := make(map[int32]T, len(all))
	for i := range all {
		id := key(&all[i])
		if _, ok := m[id]; !ok {
			m[id] = all[i]
		}
	}
	return m
}

func bookKey(b *Book) int32     { return b.ID }
func memberKey(m *Member) int32 { return m.ID }
