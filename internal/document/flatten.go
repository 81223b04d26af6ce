package document

import (
	"context"
	"strconv"

	"github.com/specialistvlad/hrggo/internal/ctxlog"
	"github.com/specialistvlad/hrggo/internal/feature"
	"github.com/specialistvlad/hrggo/internal/hrg"
)

// Flatten converts g into a Document. Ids are sequential decimal strings
// assigned relation by relation in label order: first along each
// relation's sequence, then to its loose nodes in creation order. Graphs
// with the same structure therefore flatten to the same document.
func Flatten(ctx context.Context, g *hrg.Graph) *Document {
	logger := ctxlog.FromContext(ctx)
	order := canonicalOrder(g)
	ids := make(map[hrg.Node]string, len(order))
	for i, n := range order {
		ids[n] = strconv.Itoa(i)
	}

	relNames := g.RelationNames()
	featNames := g.FeatureNames()
	doc := &Document{}
	emitted := make(map[hrg.Node]bool, len(order))

	for _, n := range order {
		if emitted[n] {
			continue
		}
		entry := NodeEntry{}
		for name, value := range feature.Pairs(n.Features(), featNames) {
			entry.Features = append(entry.Features, Feature{Name: name, Value: value})
		}
		for _, label := range n.Relations() {
			member := n.As(label).MustNode()
			emitted[member] = true
			m := Membership{Relation: relNames.RelationName(label), ID: ids[member]}
			for _, p := range Pivots() {
				if target := pivots[p].get(member); !target.IsNull() {
					m.Links = append(m.Links, Link{Pivot: p.String(), Target: ids[target.MustNode()]})
				}
			}
			entry.Memberships = append(entry.Memberships, m)
		}
		doc.Nodes = append(doc.Nodes, entry)
	}

	for _, rel := range g.Relations() {
		re := RelationEntry{Relation: relNames.RelationName(rel.Label())}
		if first := rel.First(); !first.IsNull() {
			re.First = ids[first.MustNode()]
		}
		if last := rel.Last(); !last.IsNull() {
			re.Last = ids[last.MustNode()]
		}
		doc.Relations = append(doc.Relations, re)
	}

	logger.Debug("Graph flattened.", "entries", len(doc.Nodes), "nodes", len(order))
	return doc
}

func canonicalOrder(g *hrg.Graph) []hrg.Node {
	var order []hrg.Node
	seen := make(map[hrg.Node]bool, g.NodeCount())
	for _, rel := range g.Relations() {
		for n := range rel.All() {
			if !seen[n] {
				seen[n] = true
				order = append(order, n)
			}
		}
		for _, n := range rel.Nodes() {
			if !seen[n] {
				seen[n] = true
				order = append(order, n)
			}
		}
	}
	return order
}
