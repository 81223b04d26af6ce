package feature

import (
	"iter"
	"slices"

	"github.com/specialistvlad/hrggo/internal/hrgerr"
	"github.com/specialistvlad/hrggo/internal/schema"
)

// Store maps feature labels to values. The zero Store is empty and ready
// to use.
type Store struct {
	m map[schema.Feature]Value
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Has(f schema.Feature) bool {
	_, ok := s.m[f]
	return ok
}

// Get returns the raw value stored for f.
func (s *Store) Get(f schema.Feature) (Value, bool) {
	v, ok := s.m[f]
	return v, ok
}

// Set stores v under f. It fails with TypeMismatch when v's tag is not the
// type registered for f.
func (s *Store) Set(f schema.Feature, v Value) error {
	if !f.Valid() {
		return hrgerr.New(hrgerr.InvalidFeatureName, "invalid feature label %d", int(f))
	}
	if v.Type() != f.Type() {
		return hrgerr.New(hrgerr.TypeMismatch, "feature %s holds %s, got %s", f, f.Type(), v.Type())
	}
	if s.m == nil {
		s.m = make(map[schema.Feature]Value)
	}
	s.m[f] = v
	return nil
}

// Remove deletes f and returns the value it held.
func (s *Store) Remove(f schema.Feature) (Value, bool) {
	v, ok := s.m[f]
	if ok {
		delete(s.m, f)
	}
	return v, ok
}

func (s *Store) Len() int {
	return len(s.m)
}

// Labels returns the present labels in registry order.
func (s *Store) Labels() []schema.Feature {
	out := make([]schema.Feature, 0, len(s.m))
	for f := range s.m {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// All yields the stored pairs in registry order.
func (s *Store) All() iter.Seq2[schema.Feature, Value] {
	return func(yield func(schema.Feature, Value) bool) {
		for _, f := range s.Labels() {
			if !yield(f, s.m[f]) {
				return
			}
		}
	}
}

func (s *Store) Clone() *Store {
	out := &Store{}
	if len(s.m) > 0 {
		out.m = make(map[schema.Feature]Value, len(s.m))
		for f, v := range s.m {
			out.m[f] = v
		}
	}
	return out
}

func (s *Store) Equal(o *Store) bool {
	if s.Len() != o.Len() {
		return false
	}
	for f, v := range s.m {
		ov, ok := o.m[f]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Clear removes every feature.
func (s *Store) Clear() {
	clear(s.m)
}
