package feature

import (
	"iter"
	"slices"

	"github.com/specialistvlad/hrggo/internal/hrgerr"
	"github.com/specialistvlad/hrggo/internal/schema"
)

// NameMapper translates between feature labels and the names used in text.
type NameMapper interface {
	FeatureName(f schema.Feature) string
	ParseFeature(name string) (schema.Feature, error)
}

type registryMapper struct{}

func (registryMapper) FeatureName(f schema.Feature) string {
	return f.String()
}

func (registryMapper) ParseFeature(name string) (schema.Feature, error) {
	return schema.ParseFeature(name)
}

// DefaultMapper maps names through the feature registry.
var DefaultMapper NameMapper = registryMapper{}

// ParseMap decodes a name to text map into s. Names are processed in sorted
// order so the first failure is deterministic. s is left untouched on error.
func ParseMap(s *Store, m map[string]string, mapper NameMapper) error {
	if mapper == nil {
		mapper = DefaultMapper
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	slices.Sort(names)

	parsed := make(map[schema.Feature]Value, len(m))
	for _, name := range names {
		f, err := mapper.ParseFeature(name)
		if err != nil {
			return err
		}
		if _, dup := parsed[f]; dup {
			return hrgerr.New(hrgerr.ParsingError, "feature %s given twice", name)
		}
		v, err := Parse(f, m[name])
		if err != nil {
			return err
		}
		parsed[f] = v
	}
	for f, v := range parsed {
		if err := s.Set(f, v); err != nil {
			return err
		}
	}
	return nil
}

// Pairs yields s as (name, text) pairs in registry order.
func Pairs(s *Store, mapper NameMapper) iter.Seq2[string, string] {
	if mapper == nil {
		mapper = DefaultMapper
	}
	return func(yield func(string, string) bool) {
		for f, v := range s.All() {
			if !yield(mapper.FeatureName(f), Format(v)) {
				return
			}
		}
	}
}
