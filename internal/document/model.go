// Package document defines the format-agnostic form of a serialized graph
// and converts it to and from *hrg.Graph.
//
// A Document lists node entries, one per entity. Each entry carries the
// entity's features and its memberships: one per relation the entity has a
// node in, each with a document-wide id and the pivots (next, prev, parent,
// first_child, last_child) naming other ids. Relation entries carry the
// first and last ids of each relation.
//
// Format packages (yamldoc, hcldoc) implement Codec to read and write this
// model; they never touch the graph directly.
package document

import (
	"github.com/specialistvlad/hrggo/internal/hrg"
	"github.com/specialistvlad/hrggo/internal/hrgerr"
)

// Pivot names a link slot of a node.
type Pivot int

const (
	Next Pivot = iota
	Prev
	Parent
	FirstChild
	LastChild
)

type pivotSpec struct {
	name string
	get  func(hrg.Node) hrg.Navigator
	set  func(hrg.Node, hrg.Node) error
}

var pivots = [...]pivotSpec{
	Next:       {"next", hrg.Node.Next, hrg.Node.SetNext},
	Prev:       {"prev", hrg.Node.Prev, hrg.Node.SetPrev},
	Parent:     {"parent", hrg.Node.Parent, hrg.Node.SetParent},
	FirstChild: {"first_child", hrg.Node.FirstChild, hrg.Node.SetFirstChild},
	LastChild:  {"last_child", hrg.Node.LastChild, hrg.Node.SetLastChild},
}

// Pivots returns every pivot in emission order.
func Pivots() []Pivot {
	return []Pivot{Next, Prev, Parent, FirstChild, LastChild}
}

func (p Pivot) String() string {
	if p < 0 || int(p) >= len(pivots) {
		return "invalid"
	}
	return pivots[p].name
}

// ParsePivot maps a pivot name to its Pivot.
func ParsePivot(name string) (Pivot, error) {
	for i, spec := range pivots {
		if spec.name == name {
			return Pivot(i), nil
		}
	}
	return 0, hrgerr.New(hrgerr.ParsingError, "invalid name of relation pivot %q", name)
}

// Document is a whole serialized graph.
type Document struct {
	Nodes     []NodeEntry
	Relations []RelationEntry
}

// NodeEntry describes one entity.
type NodeEntry struct {
	Features    []Feature
	Memberships []Membership
}

// Feature is one feature in text form.
type Feature struct {
	Name  string
	Value string
}

// Membership is an entity's node in one relation.
type Membership struct {
	Relation string
	ID       string
	Links    []Link
}

// Link is one pivot of a membership. Pivot is kept as text so that codecs
// can pass through names Build will reject.
type Link struct {
	Pivot  string
	Target string
}

// RelationEntry holds the endpoints of one relation. Empty ids are absent.
type RelationEntry struct {
	Relation string
	First    string
	Last     string
}

// Len returns the number of node ids declared by d.
func (d *Document) Len() int {
	n := 0
	for _, e := range d.Nodes {
		n += len(e.Memberships)
	}
	return n
}
