// Package feature implements the typed attribute store attached to every
// entity of a graph.
//
// A Value is a closed tagged union over the value types named in the
// feature registry (see package schema). A Store maps feature labels to
// values and never holds a value whose tag disagrees with the label's
// registered type. The typed accessors (Get, Set, At, Remove over a Key[T])
// move that check to compile time:
//
//	feature.Set(store, feature.StartPos, 3)     // ok
//	feature.Set(store, feature.StartPos, "abc") // does not compile
package feature

import (
	"fmt"

	"github.com/specialistvlad/hrggo/internal/hrgerr"
	"github.com/specialistvlad/hrggo/internal/schema"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Value holds exactly one of the registered value types. The zero Value is
// the empty string.
type Value struct {
	typ schema.ValueType
	s   string
	u   uint64
}

func StringValue(s string) Value {
	return Value{typ: schema.String, s: s}
}

func UintValue(u uint64) Value {
	return Value{typ: schema.Uint, u: u}
}

// Zero returns the default value of type t.
func Zero(t schema.ValueType) Value {
	return Value{typ: t}
}

// Type returns the tag of v.
func (v Value) Type() schema.ValueType {
	return v.typ
}

func (v Value) AsString() (string, bool) {
	return v.s, v.typ == schema.String
}

func (v Value) AsUint() (uint64, bool) {
	return v.u, v.typ == schema.Uint
}

// String renders v in its text encoding.
func (v Value) String() string {
	if v.typ == schema.Uint {
		return formatUint(v.u)
	}
	return v.s
}

// Equal reports whether v and o carry the same tag and payload.
func (v Value) Equal(o Value) bool {
	return v == o
}

// ToCty converts v into a cty.Value of the matching cty type.
func (v Value) ToCty() cty.Value {
	if v.typ == schema.Uint {
		return cty.NumberUIntVal(v.u)
	}
	return cty.StringVal(v.s)
}

// FromCty converts cv into a Value of f's registered type. Strings holding
// numbers are accepted for unsigned features and numbers are accepted for
// string features, following cty's conversion rules.
func FromCty(f schema.Feature, cv cty.Value) (Value, error) {
	if !f.Valid() {
		return Value{}, hrgerr.New(hrgerr.InvalidFeatureName, "invalid feature label %d", int(f))
	}
	if cv.IsNull() || !cv.IsKnown() {
		return Value{}, hrgerr.New(hrgerr.InvalidFeatureValue, "feature %s: value must be known and not null", f)
	}

	want := f.Type()
	converted, err := convert.Convert(cv, want.CtyType())
	if err != nil {
		return Value{}, hrgerr.Wrap(hrgerr.InvalidFeatureType, err, "feature %s: expected %s", f, want)
	}

	switch want {
	case schema.Uint:
		var u uint64
		if err := gocty.FromCtyValue(converted, &u); err != nil {
			return Value{}, hrgerr.Wrap(hrgerr.InvalidFeatureValue, err, "feature %s", f)
		}
		return UintValue(u), nil
	default:
		return StringValue(converted.AsString()), nil
	}
}

func (v Value) GoString() string {
	return fmt.Sprintf("feature.Value{%s: %q}", v.typ, v.String())
}
