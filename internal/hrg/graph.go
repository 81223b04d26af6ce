package hrg

import (
	"slices"

	"github.com/specialistvlad/hrggo/internal/feature"
	"github.com/specialistvlad/hrggo/internal/hrgerr"
	"github.com/specialistvlad/hrggo/internal/schema"
)

// ref addresses a node record. Slot 0 is never allocated, so the zero ref
// is null. A ref whose generation no longer matches its slot is stale and
// reads as null.
type ref struct {
	slot uint32
	gen  uint32
}

func (r ref) isNull() bool {
	return r.slot == 0
}

type nodeRecord struct {
	gen      uint32
	live     bool
	rel      schema.Relation
	variant  schema.Relation
	contents int32
	seq      uint64

	next, prev, parent, firstChild, lastChild ref
}

type contentsRecord struct {
	live     bool
	features *feature.Store
	members  map[schema.Relation]ref
}

// Graph owns a set of relations and the node and contents arenas backing
// them. A Graph is not safe for concurrent use.
type Graph struct {
	nodes        []nodeRecord
	freeNodes    []uint32
	contents     []contentsRecord
	freeContents []int32
	seq          uint64

	relations map[schema.Relation]*Relation
	policies  policies
}

// New returns an empty graph configured with the given policies.
func New(opts ...Option) *Graph {
	g := &Graph{
		nodes:     make([]nodeRecord, 1, 64),
		relations: make(map[schema.Relation]*Relation),
		policies:  defaultPolicies(),
	}
	for _, opt := range opts {
		opt(&g.policies)
	}
	return g
}

// Options returns options reproducing g's policies, for building a sibling
// graph with the same configuration.
func (g *Graph) Options() []Option {
	p := g.policies
	return []Option{func(dst *policies) { *dst = p }}
}

// At returns the relation for label, creating it through the relation
// factory on first access.
func (g *Graph) At(label schema.Relation) (*Relation, error) {
	if r, ok := g.relations[label]; ok {
		return r, nil
	}
	r, err := g.policies.relationFactory(g, label)
	if err != nil {
		return nil, err
	}
	if r == nil || r.g != g || r.label != label {
		return nil, hrgerr.New(hrgerr.BadRelation, "relation factory did not build %s for this graph", label)
	}
	g.relations[label] = r
	return r, nil
}

// MustAt is At for labels known to be accepted by the relation factory.
func (g *Graph) MustAt(label schema.Relation) *Relation {
	r, err := g.At(label)
	if err != nil {
		panic(err)
	}
	return r
}

// Get returns the relation for label without creating it.
func (g *Graph) Get(label schema.Relation) (*Relation, bool) {
	r, ok := g.relations[label]
	return r, ok
}

func (g *Graph) Has(label schema.Relation) bool {
	_, ok := g.relations[label]
	return ok
}

// Relations returns the existing relations in label order.
func (g *Graph) Relations() []*Relation {
	labels := make([]schema.Relation, 0, len(g.relations))
	for l := range g.relations {
		labels = append(labels, l)
	}
	slices.Sort(labels)
	out := make([]*Relation, len(labels))
	for i, l := range labels {
		out[i] = g.relations[l]
	}
	return out
}

// Drop destroys the relation for label and every node it owns.
func (g *Graph) Drop(label schema.Relation) bool {
	r, ok := g.relations[label]
	if !ok {
		return false
	}
	r.Clear()
	delete(g.relations, label)
	return true
}

// NodeCount returns the number of live node handles across all relations.
func (g *Graph) NodeCount() int {
	return len(g.nodes) - 1 - len(g.freeNodes)
}

// EntityCount returns the number of live contents records.
func (g *Graph) EntityCount() int {
	return len(g.contents) - len(g.freeContents)
}

func (g *Graph) RelationNames() RelationNameMapper {
	return g.policies.relationNames
}

func (g *Graph) FeatureNames() feature.NameMapper {
	return g.policies.featureNames
}

// Validate reports whether a node of relation parent may be the parent of
// a node of relation child under g's validator.
func (g *Graph) Validate(parent, child schema.Relation) bool {
	return g.policies.validator(parent, child)
}

func (g *Graph) resolve(r ref) (uint32, bool) {
	if r.slot == 0 || int(r.slot) >= len(g.nodes) {
		return 0, false
	}
	rec := &g.nodes[r.slot]
	if !rec.live || rec.gen != r.gen {
		return 0, false
	}
	return r.slot, true
}

func (g *Graph) refOf(slot uint32) ref {
	return ref{slot: slot, gen: g.nodes[slot].gen}
}

func (g *Graph) node(slot uint32) Node {
	return Node{g: g, r: g.refOf(slot)}
}

// follow resolves a link field, returning the null Node for null and stale
// links.
func (g *Graph) follow(r ref) Node {
	if _, ok := g.resolve(r); !ok {
		return Node{}
	}
	return Node{g: g, r: r}
}

func (g *Graph) allocContents() int32 {
	if n := len(g.freeContents); n > 0 {
		idx := g.freeContents[n-1]
		g.freeContents = g.freeContents[:n-1]
		g.contents[idx] = contentsRecord{live: true, features: feature.NewStore(), members: make(map[schema.Relation]ref, 2)}
		return idx
	}
	g.contents = append(g.contents, contentsRecord{live: true, features: feature.NewStore(), members: make(map[schema.Relation]ref, 2)})
	return int32(len(g.contents) - 1)
}

func (g *Graph) allocNode(rel, variant schema.Relation, contents int32) uint32 {
	g.seq++
	var slot uint32
	if n := len(g.freeNodes); n > 0 {
		slot = g.freeNodes[n-1]
		g.freeNodes = g.freeNodes[:n-1]
	} else {
		g.nodes = append(g.nodes, nodeRecord{})
		slot = uint32(len(g.nodes) - 1)
	}
	gen := g.nodes[slot].gen + 1
	g.nodes[slot] = nodeRecord{
		gen:      gen,
		live:     true,
		rel:      rel,
		variant:  variant,
		contents: contents,
		seq:      g.seq,
	}
	return slot
}

// newNode allocates a node in rel. When shared is non-null the node joins
// shared's contents instead of getting fresh ones.
func (g *Graph) newNode(rel schema.Relation, shared Node) (uint32, error) {
	variant, err := g.policies.nodeFactory(rel)
	if err != nil {
		return 0, err
	}

	contents := int32(-1)
	if !shared.IsZero() {
		sslot, ok := shared.slot()
		if !ok || shared.g != g {
			return 0, hrgerr.New(hrgerr.InvalidArgument, "shared node is not a live node of this graph")
		}
		contents = g.nodes[sslot].contents
		if _, exists := g.contents[contents].members[rel]; exists {
			return 0, hrgerr.New(hrgerr.RelationAlreadyPresent, "entity already has a node in %s", rel)
		}
	} else {
		contents = g.allocContents()
	}

	slot := g.allocNode(rel, variant, contents)
	g.contents[contents].members[rel] = g.refOf(slot)
	return slot, nil
}

// destroy runs the unlink cascade for slot and frees it, releasing the
// contents when slot was its last member.
func (g *Graph) destroy(slot uint32) {
	g.unlinkChildren(slot)
	g.unlinkParent(slot)
	g.nodes[slot].parent = ref{}
	g.unlinkPrev(slot)
	g.unlinkNext(slot)

	rec := &g.nodes[slot]
	c := &g.contents[rec.contents]
	delete(c.members, rec.rel)
	if len(c.members) == 0 {
		g.contents[rec.contents] = contentsRecord{}
		g.freeContents = append(g.freeContents, rec.contents)
	}

	gen := rec.gen
	*rec = nodeRecord{gen: gen}
	g.freeNodes = append(g.freeNodes, slot)
}
