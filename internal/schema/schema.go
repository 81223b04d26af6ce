// Package schema holds the static registries of relation and feature labels:
// the name of each label, the parent and child relation a relation may link
// to, whether a relation tracks its last node, and the value type each
// feature must hold. The tables are fixed at build time.
package schema

import (
	"fmt"

	"github.com/specialistvlad/hrggo/internal/hrgerr"
)

// Relation is a relation label.
type Relation int

const (
	InvalidRelation Relation = iota - 1
	Token
	Word
	Syllable
	Segment
	Silence

	relationCount = int(Silence) + 1
)

// RelationSpec is one row of the relation registry.
type RelationSpec struct {
	Name   string
	Parent Relation
	Child  Relation
	// Open relations only track their first node.
	Open bool
}

var relationTable = [relationCount]RelationSpec{
	Token:    {Name: "Token", Parent: InvalidRelation, Child: Word},
	Word:     {Name: "Word", Parent: Token, Child: Syllable},
	Syllable: {Name: "Syllable", Parent: Word, Child: Segment},
	Segment:  {Name: "Segment", Parent: Syllable, Child: InvalidRelation},
	Silence:  {Name: "Silence", Parent: InvalidRelation, Child: InvalidRelation, Open: true},
}

var relationsByName = func() map[string]Relation {
	m := make(map[string]Relation, relationCount)
	for i, spec := range relationTable {
		m[spec.Name] = Relation(i)
	}
	return m
}()

// Relations returns every valid relation label in declaration order.
func Relations() []Relation {
	out := make([]Relation, relationCount)
	for i := range out {
		out[i] = Relation(i)
	}
	return out
}

// Valid reports whether r is a registered label.
func (r Relation) Valid() bool {
	return r >= 0 && int(r) < relationCount
}

// Spec returns the registry row for r. Invalid labels yield a zero spec
// with no parent or child.
func (r Relation) Spec() RelationSpec {
	if !r.Valid() {
		return RelationSpec{Name: "", Parent: InvalidRelation, Child: InvalidRelation}
	}
	return relationTable[r]
}

func (r Relation) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Relation(%d)", int(r))
	}
	return relationTable[r].Name
}

// Open reports whether r only tracks its first node.
func (r Relation) Open() bool {
	return r.Spec().Open
}

// ParseRelation maps a relation name to its label.
func ParseRelation(name string) (Relation, error) {
	if r, ok := relationsByName[name]; ok {
		return r, nil
	}
	return InvalidRelation, hrgerr.New(hrgerr.InvalidRelationName, "unknown relation %q", name)
}

// AllowsLink reports whether a node of relation parent may be the parent of
// a node of relation child. The pair is accepted when it matches the
// parent/child declaration of either label.
func AllowsLink(parent, child Relation) bool {
	if !parent.Valid() || !child.Valid() {
		return false
	}
	return relationTable[child].Parent == parent || relationTable[parent].Child == child
}
