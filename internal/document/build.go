package document

import (
	"context"
	"fmt"

	"github.com/specialistvlad/hrggo/internal/ctxlog"
	"github.com/specialistvlad/hrggo/internal/feature"
	"github.com/specialistvlad/hrggo/internal/hrg"
	"github.com/specialistvlad/hrggo/internal/hrgerr"
	"github.com/specialistvlad/hrggo/internal/schema"
)

// Build constructs a graph from doc. Nodes are created first, then
// features are attached, then pivots are applied, then relation endpoints
// are set. Any failure aborts the whole build and no graph is returned.
func Build(ctx context.Context, doc *Document, opts ...hrg.Option) (*hrg.Graph, error) {
	logger := ctxlog.FromContext(ctx)
	g := hrg.New(opts...)
	b := &builder{g: g, ids: make(map[string]hrg.Node, doc.Len())}

	for i := range doc.Nodes {
		if err := b.createEntry(i, &doc.Nodes[i]); err != nil {
			return nil, err
		}
	}
	logger.Debug("Document nodes created.", "entries", len(doc.Nodes), "nodes", len(b.ids))

	for i := range doc.Nodes {
		if err := b.linkEntry(&doc.Nodes[i]); err != nil {
			return nil, err
		}
	}
	for _, re := range doc.Relations {
		if err := b.setEndpoints(re); err != nil {
			return nil, err
		}
	}
	logger.Debug("Document graph built.", "relations", len(g.Relations()))
	return g, nil
}

type builder struct {
	g   *hrg.Graph
	ids map[string]hrg.Node
}

func (b *builder) relation(name string) (*hrg.Relation, error) {
	label, err := b.g.RelationNames().ParseRelation(name)
	if err != nil {
		return nil, err
	}
	return b.g.At(label)
}

func (b *builder) createEntry(idx int, e *NodeEntry) error {
	if len(e.Memberships) == 0 {
		if len(e.Features) > 0 {
			return hrgerr.New(hrgerr.ParsingError, "node entry %d has features but no relations", idx)
		}
		return nil
	}

	var shared hrg.Node
	seen := make(map[schema.Relation]bool, len(e.Memberships))
	for _, m := range e.Memberships {
		rel, err := b.relation(m.Relation)
		if err != nil {
			return err
		}
		if seen[rel.Label()] {
			return hrgerr.New(hrgerr.ParsingError, "node entry %d lists relation %s twice", idx, m.Relation)
		}
		seen[rel.Label()] = true
		if m.ID == "" {
			return hrgerr.New(hrgerr.ParsingError, "node relation %s missing id", m.Relation)
		}
		if _, dup := b.ids[m.ID]; dup {
			return hrgerr.New(hrgerr.ParsingError, "duplicate node id %s", m.ID)
		}

		var n hrg.Node
		if shared.IsZero() {
			n, err = rel.Create()
		} else {
			n, err = rel.Create(shared)
		}
		if err != nil {
			return err
		}
		b.ids[m.ID] = n
		shared = n
	}

	return b.attachFeatures(shared.Features(), e.Features)
}

func (b *builder) attachFeatures(store *feature.Store, feats []Feature) error {
	if len(feats) == 0 {
		return nil
	}
	texts := make(map[string]string, len(feats))
	for _, f := range feats {
		if _, dup := texts[f.Name]; dup {
			return hrgerr.New(hrgerr.ParsingError, "feature %s given twice", f.Name)
		}
		texts[f.Name] = f.Value
	}
	return feature.ParseMap(store, texts, b.g.FeatureNames())
}
