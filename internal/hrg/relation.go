package hrg

import (
	"iter"
	"slices"

	"github.com/specialistvlad/hrggo/internal/hrgerr"
	"github.com/specialistvlad/hrggo/internal/schema"
)

// Relation owns every node whose home relation it is, and tracks the
// endpoints of its sequence. A closed relation tracks both first and last;
// an open relation only tracks first.
type Relation struct {
	g     *Graph
	label schema.Relation
	open  bool

	first, last ref
	members     map[uint32]struct{}
}

// NewRelation builds an empty relation of g. Use it from a RelationFactory;
// relations only become reachable through Graph.At.
func NewRelation(g *Graph, label schema.Relation, open bool) *Relation {
	return &Relation{
		g:       g,
		label:   label,
		open:    open,
		members: make(map[uint32]struct{}),
	}
}

// Graph returns the graph that owns r.
func (r *Relation) Graph() *Graph {
	return r.g
}

// Label returns r's relation label.
func (r *Relation) Label() schema.Relation {
	return r.label
}

// Open reports whether r only tracks its first node.
func (r *Relation) Open() bool {
	return r.open
}

// Len returns the number of nodes r owns, linked or not.
func (r *Relation) Len() int {
	return len(r.members)
}

// First returns the first node of the sequence, or null when r is empty.
func (r *Relation) First() Navigator {
	return r.g.follow(r.first).Nav()
}

// Last returns the tracked last node. It is always null for open relations.
func (r *Relation) Last() Navigator {
	return r.g.follow(r.last).Nav()
}

// Contains reports whether r owns n.
func (r *Relation) Contains(n Node) bool {
	s, ok := n.slot()
	if !ok || n.g != r.g {
		return false
	}
	_, owned := r.members[s]
	return owned
}

// Nodes returns every node r owns in creation order.
func (r *Relation) Nodes() []Node {
	slots := make([]uint32, 0, len(r.members))
	for s := range r.members {
		slots = append(slots, s)
	}
	slices.SortFunc(slots, func(a, b uint32) int {
		sa, sb := r.g.nodes[a].seq, r.g.nodes[b].seq
		switch {
		case sa < sb:
			return -1
		case sa > sb:
			return 1
		}
		return 0
	})
	out := make([]Node, len(slots))
	for i, s := range slots {
		out[i] = r.g.node(s)
	}
	return out
}

// Create allocates a loose node in r. When shared is given the node
// becomes another view of that entity.
func (r *Relation) Create(shared ...Node) (Node, error) {
	s, err := r.g.newNode(r.label, sharedArg(shared))
	if err != nil {
		return Node{}, err
	}
	r.members[s] = struct{}{}
	return r.g.node(s), nil
}

// Append creates a node and links it after the end of the sequence.
func (r *Relation) Append(shared ...Node) (Node, error) {
	res, err := r.Create(shared...)
	if err != nil {
		return Node{}, err
	}
	g := r.g
	rs, _ := res.slot()

	if last, ok := g.resolve(r.last); ok {
		g.linkNext(last, res.r)
		r.last = res.r
	} else if first, ok := g.resolve(r.first); ok {
		g.linkNext(r.tail(first), res.r)
	} else {
		r.first = g.refOf(rs)
		if !r.open {
			r.last = r.first
		}
	}
	return res, nil
}

// Prepend creates a node and links it before the start of the sequence.
func (r *Relation) Prepend(shared ...Node) (Node, error) {
	res, err := r.Create(shared...)
	if err != nil {
		return Node{}, err
	}
	g := r.g

	if first, ok := g.resolve(r.first); ok {
		g.linkPrev(first, res.r)
		r.first = res.r
	} else {
		r.first = res.r
		if !r.open {
			r.last = res.r
		}
	}
	return res, nil
}

// tail walks next links from slot to the end of the chain.
func (r *Relation) tail(slot uint32) uint32 {
	g := r.g
	start := slot
	for {
		n, ok := g.resolve(g.nodes[slot].next)
		if !ok || n == start {
			return slot
		}
		slot = n
	}
}

// Erase destroys n. The endpoints move to n's neighbours and the
// neighbours are joined so the sequence stays contiguous. When both
// neighbours are the same node they are left unlinked. Other views of
// n's entity are not affected; the entity's contents are released when n
// was its last view.
func (r *Relation) Erase(n Node) error {
	s, ok := n.slot()
	if !ok || n.g != r.g {
		return hrgerr.New(hrgerr.InvalidArgument, "node is not a live node of this graph")
	}
	if _, owned := r.members[s]; !owned {
		return hrgerr.New(hrgerr.InvalidArgument, "node belongs to relation %s, not %s", r.g.nodes[s].rel, r.label)
	}

	g := r.g
	prev, next := g.nodes[s].prev, g.nodes[s].next
	if g.sameLink(r.first, n.r) {
		r.first = g.follow(next).r
	}
	if g.sameLink(r.last, n.r) {
		r.last = g.follow(prev).r
	}

	delete(r.members, s)
	g.destroy(s)

	if p, ok := g.resolve(prev); ok {
		if nx, ok := g.resolve(next); ok && nx != p {
			g.linkNext(p, next)
		}
	}
	return nil
}

// Clear destroys every node r owns.
func (r *Relation) Clear() {
	for _, n := range r.Nodes() {
		s, _ := n.slot()
		delete(r.members, s)
		r.g.destroy(s)
	}
	r.first, r.last = ref{}, ref{}
}

func (r *Relation) endpoint(n Node) (ref, error) {
	if n.IsZero() {
		return ref{}, nil
	}
	s, ok := n.slot()
	if !ok || n.g != r.g {
		return ref{}, hrgerr.New(hrgerr.InvalidArgument, "node is not a live node of this graph")
	}
	if rel := r.g.nodes[s].rel; rel != r.label {
		return ref{}, hrgerr.New(hrgerr.BadRelation, "node of %s cannot be an endpoint of %s", rel, r.label)
	}
	return n.r, nil
}

// SetFirst sets the first endpoint. The null Node clears it.
func (r *Relation) SetFirst(n Node) error {
	target, err := r.endpoint(n)
	if err != nil {
		return err
	}
	r.first = target
	return nil
}

// SetLast sets the last endpoint. Open relations reject a non-null last
// with BadTopology.
func (r *Relation) SetLast(n Node) error {
	target, err := r.endpoint(n)
	if err != nil {
		return err
	}
	if r.open && !target.isNull() {
		return hrgerr.New(hrgerr.BadTopology, "open relation %s has no last node", r.label)
	}
	r.last = target
	return nil
}

// Begin returns an iterator at the first node.
func (r *Relation) Begin() Iterator {
	return NewIterator(r.First(), SameNode)
}

// End returns the iterator one past the last node: it sits on last's
// successor and steps back to last. With no last node it is the empty
// iterator.
func (r *Relation) End() Iterator {
	last := r.Last()
	if last.IsNull() {
		return Iterator{cmp: SameNode}
	}
	return Iterator{curr: last.Next(), prev: last, cmp: SameNode, fwd: (Navigator).Next, back: (Navigator).Prev}
}

// All yields the sequence from first through last, or through the end of
// the chain for open relations.
func (r *Relation) All() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		g := r.g
		cur, ok := g.resolve(r.first)
		start := cur
		for ok {
			n := g.node(cur)
			if !yield(n) {
				return
			}
			if g.sameLink(r.last, n.r) {
				return
			}
			cur, ok = g.resolve(g.nodes[cur].next)
			if cur == start {
				return
			}
		}
	}
}

// Backward yields the sequence from the end back to first.
func (r *Relation) Backward() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		g := r.g
		cur, ok := g.resolve(r.last)
		if !ok {
			first, fok := g.resolve(r.first)
			if !fok {
				return
			}
			cur, ok = r.tail(first), true
		}
		start := cur
		for ok {
			n := g.node(cur)
			if !yield(n) {
				return
			}
			if g.sameLink(r.first, n.r) {
				return
			}
			cur, ok = g.resolve(g.nodes[cur].prev)
			if cur == start {
				return
			}
		}
	}
}
