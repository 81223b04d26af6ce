package hrg

import (
	"fmt"
	"slices"

	"github.com/specialistvlad/hrggo/internal/feature"
	"github.com/specialistvlad/hrggo/internal/hrgerr"
	"github.com/specialistvlad/hrggo/internal/schema"
)

// Node is a handle to one entity's view inside its home relation. The zero
// Node is null. Handles to erased nodes stay comparable but are no longer
// Valid, and every navigation through them yields a null Navigator.
type Node struct {
	g *Graph
	r ref
}

// IsZero reports whether n is the null handle.
func (n Node) IsZero() bool {
	return n.g == nil
}

// Valid reports whether n designates a live node.
func (n Node) Valid() bool {
	_, ok := n.slot()
	return ok
}

func (n Node) slot() (uint32, bool) {
	if n.g == nil {
		return 0, false
	}
	return n.g.resolve(n.r)
}

// mustSlot returns n's slot or a NullDereference error for dead handles.
func (n Node) mustSlot() (uint32, error) {
	s, ok := n.slot()
	if !ok {
		return 0, hrgerr.New(hrgerr.NullDereference, "node handle is null or erased")
	}
	return s, nil
}

func (n Node) rec() *nodeRecord {
	s, err := n.mustSlot()
	if err != nil {
		panic(err)
	}
	return &n.g.nodes[s]
}

// Graph returns the graph n belongs to, or nil for the null handle.
func (n Node) Graph() *Graph {
	return n.g
}

// Label returns the label of n's home relation, or InvalidRelation for a
// dead handle.
func (n Node) Label() schema.Relation {
	s, ok := n.slot()
	if !ok {
		return schema.InvalidRelation
	}
	return n.g.nodes[s].rel
}

// Variant returns the node type chosen by the node factory.
func (n Node) Variant() schema.Relation {
	s, ok := n.slot()
	if !ok {
		return schema.InvalidRelation
	}
	return n.g.nodes[s].variant
}

// Relation returns n's home relation, or nil for a dead handle.
func (n Node) Relation() *Relation {
	s, ok := n.slot()
	if !ok {
		return nil
	}
	return n.g.relations[n.g.nodes[s].rel]
}

func (n Node) String() string {
	s, ok := n.slot()
	if !ok {
		return "<nil>"
	}
	return fmt.Sprintf("%s#%d", n.g.nodes[s].rel, s)
}

// Features returns the feature store shared by every view of n's entity.
// It panics with a NullDereference error on a dead handle.
func (n Node) Features() *feature.Store {
	return n.g.contents[n.rec().contents].features
}

// Nav wraps n in a Navigator.
func (n Node) Nav() Navigator {
	if !n.Valid() {
		return Navigator{}
	}
	return Navigator{n: n}
}

func (n Node) link(pick func(*nodeRecord) ref) Navigator {
	s, ok := n.slot()
	if !ok {
		return Navigator{}
	}
	return n.g.follow(pick(&n.g.nodes[s])).Nav()
}

// Next follows the next link. Navigation never fails: a missing link or a
// dead handle yields a null Navigator.
func (n Node) Next() Navigator {
	return n.link(func(r *nodeRecord) ref { return r.next })
}

// Prev follows the prev link.
func (n Node) Prev() Navigator {
	return n.link(func(r *nodeRecord) ref { return r.prev })
}

// Parent follows the parent link.
func (n Node) Parent() Navigator {
	return n.link(func(r *nodeRecord) ref { return r.parent })
}

// FirstChild follows the first child link.
func (n Node) FirstChild() Navigator {
	return n.link(func(r *nodeRecord) ref { return r.firstChild })
}

// LastChild follows the last child link.
func (n Node) LastChild() Navigator {
	return n.link(func(r *nodeRecord) ref { return r.lastChild })
}

// In reports whether n's entity has a view in relation label.
func (n Node) In(label schema.Relation) bool {
	s, ok := n.slot()
	if !ok {
		return false
	}
	_, in := n.g.contents[n.g.nodes[s].contents].members[label]
	return in
}

// As returns the view of n's entity in relation label.
func (n Node) As(label schema.Relation) Navigator {
	s, ok := n.slot()
	if !ok {
		return Navigator{}
	}
	r, in := n.g.contents[n.g.nodes[s].contents].members[label]
	if !in {
		return Navigator{}
	}
	return n.g.follow(r).Nav()
}

// Relations returns the labels of every relation n's entity has a view in.
func (n Node) Relations() []schema.Relation {
	s, ok := n.slot()
	if !ok {
		return nil
	}
	members := n.g.contents[n.g.nodes[s].contents].members
	out := make([]schema.Relation, 0, len(members))
	for l := range members {
		out = append(out, l)
	}
	slices.Sort(out)
	return out
}

// SameContents reports whether n and o are views of the same entity.
func (n Node) SameContents(o Node) bool {
	s, ok := n.slot()
	if !ok || n.g != o.g {
		return false
	}
	os, ok := o.slot()
	if !ok {
		return false
	}
	return n.g.nodes[s].contents == n.g.nodes[os].contents
}

// peer resolves o for linking to n. The null Node resolves to the null ref.
func (n Node) peer(o Node) (ref, uint32, error) {
	if o.IsZero() {
		return ref{}, 0, nil
	}
	os, ok := o.slot()
	if !ok {
		return ref{}, 0, hrgerr.New(hrgerr.InvalidArgument, "linked node is erased")
	}
	if o.g != n.g {
		return ref{}, 0, hrgerr.New(hrgerr.InvalidArgument, "linked nodes must be in the same graph")
	}
	return o.r, os, nil
}

// SetNext makes o the next node of n. o must share n's home relation; the
// null Node detaches n's current next.
func (n Node) SetNext(o Node) error {
	return n.setSibling(o, true)
}

// SetPrev makes o the prev node of n.
func (n Node) SetPrev(o Node) error {
	return n.setSibling(o, false)
}

func (n Node) setSibling(o Node, next bool) error {
	s, err := n.mustSlot()
	if err != nil {
		return err
	}
	g := n.g
	target, os, err := n.peer(o)
	if err != nil {
		return err
	}

	current := g.nodes[s].prev
	if next {
		current = g.nodes[s].next
	}
	if g.sameLink(current, target) {
		return nil
	}
	if !target.isNull() {
		if g.nodes[os].rel != g.nodes[s].rel {
			return hrgerr.New(hrgerr.BadRelation, "%s cannot be a sibling of %s", g.nodes[os].rel, g.nodes[s].rel)
		}
		if os == s {
			return hrgerr.New(hrgerr.BadTopology, "node cannot be its own sibling")
		}
	}

	if next {
		g.linkNext(s, target)
	} else {
		g.linkPrev(s, target)
	}
	return nil
}

// SetParent makes p the parent of n. If n was the first or last child of
// its old parent, that endpoint moves to the adjacent sibling.
func (n Node) SetParent(p Node) error {
	s, err := n.mustSlot()
	if err != nil {
		return err
	}
	g := n.g
	target, ps, err := n.peer(p)
	if err != nil {
		return err
	}
	if g.sameLink(g.nodes[s].parent, target) {
		return nil
	}
	if !target.isNull() {
		if !g.policies.validator(g.nodes[ps].rel, g.nodes[s].rel) {
			return hrgerr.New(hrgerr.BadRelation, "%s cannot parent %s", g.nodes[ps].rel, g.nodes[s].rel)
		}
		if ps == s {
			return hrgerr.New(hrgerr.BadTopology, "node cannot be its own parent")
		}
	}
	g.linkParent(s, target)
	return nil
}

// SetFirstChild makes c the first child of n and n the parent of c.
func (n Node) SetFirstChild(c Node) error {
	return n.setChild(c, true)
}

// SetLastChild makes c the last child of n and n the parent of c.
func (n Node) SetLastChild(c Node) error {
	return n.setChild(c, false)
}

func (n Node) setChild(c Node, first bool) error {
	s, err := n.mustSlot()
	if err != nil {
		return err
	}
	g := n.g
	target, cs, err := n.peer(c)
	if err != nil {
		return err
	}

	field := &g.nodes[s].lastChild
	if first {
		field = &g.nodes[s].firstChild
	}
	if g.sameLink(*field, target) {
		return nil
	}
	if target.isNull() {
		*field = ref{}
		return nil
	}
	if !g.policies.validator(g.nodes[s].rel, g.nodes[cs].rel) {
		return hrgerr.New(hrgerr.BadRelation, "%s cannot parent %s", g.nodes[s].rel, g.nodes[cs].rel)
	}
	if cs == s {
		return hrgerr.New(hrgerr.BadTopology, "node cannot be its own child")
	}

	*field = target
	if !g.sameLink(g.nodes[cs].parent, n.r) {
		g.linkParent(cs, n.r)
	}
	return nil
}

// InsertNext creates a node in n's relation right after n. When n is the
// relation's last node the new node becomes last.
func (n Node) InsertNext(shared ...Node) (Node, error) {
	return n.insert(true, shared)
}

// InsertPrev creates a node in n's relation right before n. When n is the
// relation's first node the new node becomes first.
func (n Node) InsertPrev(shared ...Node) (Node, error) {
	return n.insert(false, shared)
}

func (n Node) insert(after bool, shared []Node) (Node, error) {
	s, err := n.mustSlot()
	if err != nil {
		return Node{}, err
	}
	g := n.g
	rel := g.relations[g.nodes[s].rel]
	res, err := rel.Create(shared...)
	if err != nil {
		return Node{}, err
	}
	rs, _ := res.slot()

	if after {
		g.linkNext(rs, g.nodes[s].next)
		g.linkNext(s, res.r)
		if g.sameLink(rel.last, n.r) {
			rel.last = res.r
		}
	} else {
		g.linkPrev(rs, g.nodes[s].prev)
		g.linkPrev(s, res.r)
		if g.sameLink(rel.first, n.r) {
			rel.first = res.r
		}
	}
	return res, nil
}

func sharedArg(shared []Node) Node {
	if len(shared) == 0 {
		return Node{}
	}
	return shared[0]
}
