package feature

import (
	"strconv"
	"strings"

	"github.com/specialistvlad/hrggo/internal/hrgerr"
	"github.com/specialistvlad/hrggo/internal/schema"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

var smallInts = [...]string{
	"0", "1", "2", "3", "4", "5", "6", "7", "8", "9",
	"10", "11", "12", "13", "14", "15", "16", "17", "18", "19",
	"20", "21", "22", "23", "24", "25", "26", "27", "28", "29",
}

func formatUint(u uint64) string {
	if u < uint64(len(smallInts)) {
		return smallInts[u]
	}
	return strconv.FormatUint(u, 10)
}

// Format renders v in the text encoding used by documents.
func Format(v Value) string {
	return v.String()
}

// Parse decodes the text encoding of a value for feature f.
func Parse(f schema.Feature, text string) (Value, error) {
	if !f.Valid() {
		return Value{}, hrgerr.New(hrgerr.InvalidFeatureName, "invalid feature label %d", int(f))
	}

	switch f.Type() {
	case schema.Uint:
		return parseUint(f, text)
	default:
		return StringValue(text), nil
	}
}

// parseUint accepts a plain run of decimal digits. Signs, spaces and
// exponents are rejected so every accepted text formats back unchanged,
// apart from leading zeros.
func parseUint(f schema.Feature, text string) (Value, error) {
	if text == "" {
		return Value{}, hrgerr.New(hrgerr.InvalidFeatureValue, "feature %s: empty value", f)
	}
	if strings.HasPrefix(text, "-") {
		return Value{}, hrgerr.New(hrgerr.InvalidFeatureValue, "feature %s: unsigned value %q is negative", f, text)
	}
	if strings.IndexFunc(text, notDigit) >= 0 {
		return Value{}, hrgerr.New(hrgerr.InvalidFeatureValue, "feature %s: %q is not an unsigned integer", f, text)
	}

	num, err := cty.ParseNumberVal(text)
	if err != nil {
		return Value{}, hrgerr.Wrap(hrgerr.InvalidFeatureValue, err, "feature %s: %q is not a number", f, text)
	}

	var u uint64
	if err := gocty.FromCtyValue(num, &u); err != nil {
		return Value{}, hrgerr.Wrap(hrgerr.InvalidFeatureValue, err, "feature %s: %q", f, text)
	}
	return UintValue(u), nil
}

func notDigit(r rune) bool {
	return r < '0' || r > '9'
}
