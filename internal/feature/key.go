package feature

import (
	"github.com/specialistvlad/hrggo/internal/hrgerr"
	"github.com/specialistvlad/hrggo/internal/schema"
)

// Scalar is the set of Go types a feature value can take.
type Scalar interface {
	string | uint64
}

// Key is a feature label bound to its Go value type at compile time.
type Key[T Scalar] struct {
	label schema.Feature
}

var (
	Name       = mustKey[string](schema.Name)
	Punc       = mustKey[string](schema.Punc)
	Prepunc    = mustKey[string](schema.Prepunc)
	Whitespace = mustKey[string](schema.Whitespace)
	POS        = mustKey[string](schema.POS)
	StartPos   = mustKey[uint64](schema.StartPos)
	EndPos     = mustKey[uint64](schema.EndPos)
	Stress     = mustKey[uint64](schema.Stress)
)

func mustKey[T Scalar](f schema.Feature) Key[T] {
	k, err := NewKey[T](f)
	if err != nil {
		panic(err)
	}
	return k
}

// NewKey binds f to T, failing with InvalidFeatureType when T is not the
// type registered for f.
func NewKey[T Scalar](f schema.Feature) (Key[T], error) {
	if !f.Valid() {
		return Key[T]{}, hrgerr.New(hrgerr.InvalidFeatureName, "invalid feature label %d", int(f))
	}
	if typeOf[T]() != f.Type() {
		return Key[T]{}, hrgerr.New(hrgerr.InvalidFeatureType, "feature %s holds %s", f, f.Type())
	}
	return Key[T]{label: f}, nil
}

// Label returns the runtime label of k.
func (k Key[T]) Label() schema.Feature {
	return k.label
}

func (k Key[T]) String() string {
	return k.label.String()
}

// Get returns the value stored under k.
func Get[T Scalar](s *Store, k Key[T]) (T, bool) {
	v, ok := s.m[k.label]
	if !ok {
		var zero T
		return zero, false
	}
	return unwrap[T](v), true
}

// Set stores x under k.
func Set[T Scalar](s *Store, k Key[T], x T) {
	if s.m == nil {
		s.m = make(map[schema.Feature]Value)
	}
	s.m[k.label] = wrap(x)
}

// At returns the value under k, seeding the slot with T's zero value first
// when it is absent.
func At[T Scalar](s *Store, k Key[T]) T {
	v, ok := s.m[k.label]
	if !ok {
		v = Zero(k.label.Type())
		if s.m == nil {
			s.m = make(map[schema.Feature]Value)
		}
		s.m[k.label] = v
	}
	return unwrap[T](v)
}

// Remove deletes k and returns the value it held.
func Remove[T Scalar](s *Store, k Key[T]) (T, bool) {
	v, ok := s.Remove(k.label)
	if !ok {
		var zero T
		return zero, false
	}
	return unwrap[T](v), true
}

func typeOf[T Scalar]() schema.ValueType {
	var zero T
	if _, ok := any(zero).(uint64); ok {
		return schema.Uint
	}
	return schema.String
}

func wrap[T Scalar](x T) Value {
	switch x := any(x).(type) {
	case uint64:
		return UintValue(x)
	case string:
		return StringValue(x)
	}
	panic("feature: unreachable scalar type")
}

func unwrap[T Scalar](v Value) T {
	var out T
	switch p := any(&out).(type) {
	case *uint64:
		*p = v.u
	case *string:
		*p = v.s
	}
	return out
}
