package schema

import (
	"fmt"

	"github.com/specialistvlad/hrggo/internal/hrgerr"
	"github.com/zclconf/go-cty/cty"
)

// ValueType is the value type a feature must hold.
type ValueType int

const (
	String ValueType = iota
	Uint
)

func (t ValueType) String() string {
	switch t {
	case String:
		return "string"
	case Uint:
		return "uint"
	}
	return fmt.Sprintf("ValueType(%d)", int(t))
}

// CtyType returns the cty type used to carry values of t through HCL.
func (t ValueType) CtyType() cty.Type {
	if t == Uint {
		return cty.Number
	}
	return cty.String
}

// Feature is a feature label.
type Feature int

const (
	InvalidFeature Feature = iota - 1
	Name
	Punc
	Prepunc
	Whitespace
	POS
	StartPos
	EndPos
	Stress

	featureCount = int(Stress) + 1
)

// FeatureSpec is one row of the feature registry.
type FeatureSpec struct {
	Name        string
	Type        ValueType
	Description string
}

var featureTable = [featureCount]FeatureSpec{
	Name:       {"name", String, "orthographic or phonetic name"},
	Punc:       {"punc", String, "trailing punctuation"},
	Prepunc:    {"prepunc", String, "leading punctuation"},
	Whitespace: {"whitespace", String, "whitespace preceding the token"},
	POS:        {"pos", String, "part of speech tag"},
	StartPos:   {"start_pos", Uint, "offset of the first character in the source text"},
	EndPos:     {"end_pos", Uint, "offset one past the last character in the source text"},
	Stress:     {"stress", Uint, "lexical stress level"},
}

var featuresByName = func() map[string]Feature {
	m := make(map[string]Feature, featureCount)
	for i, spec := range featureTable {
		m[spec.Name] = Feature(i)
	}
	return m
}()

// Features returns every valid feature label in declaration order.
func Features() []Feature {
	out := make([]Feature, featureCount)
	for i := range out {
		out[i] = Feature(i)
	}
	return out
}

func (f Feature) Valid() bool {
	return f >= 0 && int(f) < featureCount
}

func (f Feature) Spec() FeatureSpec {
	if !f.Valid() {
		return FeatureSpec{}
	}
	return featureTable[f]
}

// Type returns the value type f must hold.
func (f Feature) Type() ValueType {
	return f.Spec().Type
}

func (f Feature) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Feature(%d)", int(f))
	}
	return featureTable[f].Name
}

// ParseFeature maps a feature name to its label.
func ParseFeature(name string) (Feature, error) {
	if f, ok := featuresByName[name]; ok {
		return f, nil
	}
	return InvalidFeature, hrgerr.New(hrgerr.InvalidFeatureName, "unknown feature %q", name)
}
