// Package hrgerr defines the error taxonomy shared by the graph core, the
// feature store and the document codecs.
//
// Every failure surfaced by those packages is an *Error carrying a Kind.
// Callers test for a kind with errors.Is against the exported sentinels:
//
//	if errors.Is(err, hrgerr.ErrNullDereference) { ... }
//
// Kinds form two families. RelationAlreadyPresent and BadRelation are both
// BadTopology failures, and the feature/relation name, type and value kinds
// are all ParsingError failures, so errors.Is(err, ErrBadTopology) matches
// any of the topology kinds.
package hrgerr

import (
	"errors"
	"fmt"
)

// Kind classifies an Error.
type Kind int

const (
	BadTopology Kind = iota
	RelationAlreadyPresent
	BadRelation
	NullDereference
	ParsingError
	InvalidFeatureName
	InvalidFeatureType
	InvalidFeatureValue
	InvalidRelationName
	InvalidArgument
	OutOfRange
	TypeMismatch
)

var kindNames = [...]string{
	BadTopology:            "bad topology",
	RelationAlreadyPresent: "relation already present",
	BadRelation:            "bad relation",
	NullDereference:        "null dereference",
	ParsingError:           "parsing error",
	InvalidFeatureName:     "invalid feature name",
	InvalidFeatureType:     "invalid feature type",
	InvalidFeatureValue:    "invalid feature value",
	InvalidRelationName:    "invalid relation name",
	InvalidArgument:        "invalid argument",
	OutOfRange:             "out of range",
	TypeMismatch:           "type mismatch",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// family returns the umbrella kind k belongs to, or k itself.
func (k Kind) family() Kind {
	switch k {
	case RelationAlreadyPresent, BadRelation:
		return BadTopology
	case InvalidFeatureName, InvalidFeatureType, InvalidFeatureValue, InvalidRelationName:
		return ParsingError
	}
	return k
}

// Sentinels for errors.Is checks.
var (
	ErrBadTopology            = &Error{Kind: BadTopology}
	ErrRelationAlreadyPresent = &Error{Kind: RelationAlreadyPresent}
	ErrBadRelation            = &Error{Kind: BadRelation}
	ErrNullDereference        = &Error{Kind: NullDereference}
	ErrParsing                = &Error{Kind: ParsingError}
	ErrInvalidFeatureName     = &Error{Kind: InvalidFeatureName}
	ErrInvalidFeatureType     = &Error{Kind: InvalidFeatureType}
	ErrInvalidFeatureValue    = &Error{Kind: InvalidFeatureValue}
	ErrInvalidRelationName    = &Error{Kind: InvalidRelationName}
	ErrInvalidArgument        = &Error{Kind: InvalidArgument}
	ErrOutOfRange             = &Error{Kind: OutOfRange}
	ErrTypeMismatch           = &Error{Kind: TypeMismatch}
)

// Error is a classified failure. Message is the human readable detail and
// Err, when set, is the underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// New returns an *Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an *Error of the given kind that wraps cause.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: cause}
}

func (e *Error) Error() string {
	switch {
	case e.Message == "" && e.Err == nil:
		return e.Kind.String()
	case e.Err == nil:
		return e.Kind.String() + ": " + e.Message
	case e.Message == "":
		return e.Kind.String() + ": " + e.Err.Error()
	}
	return e.Kind.String() + ": " + e.Message + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, and an umbrella sentinel
// (ErrBadTopology, ErrParsing) against every kind of its family.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind || t.Kind == e.Kind.family()
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
