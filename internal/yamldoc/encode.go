package yamldoc

import (
	"context"
	"fmt"
	"io"

	"github.com/specialistvlad/hrggo/internal/ctxlog"
	"github.com/specialistvlad/hrggo/internal/document"
	"github.com/specialistvlad/hrggo/internal/feature"
	"github.com/specialistvlad/hrggo/internal/schema"
	"gopkg.in/yaml.v3"
)

// Encode implements document.Codec. Every relation entry is written, even
// one without endpoints. Unsigned features are written as plain integers and
// everything else as strings.
func (Codec) Encode(ctx context.Context, w io.Writer, doc *document.Document) error {
	nodes := &yaml.Node{Kind: yaml.SequenceNode}
	for _, e := range doc.Nodes {
		nodes.Content = append(nodes.Content, encodeEntry(e))
	}

	relations := &yaml.Node{Kind: yaml.MappingNode}
	for _, re := range doc.Relations {
		body := &yaml.Node{Kind: yaml.MappingNode, Style: yaml.FlowStyle}
		if re.First != "" {
			addPair(body, keyFirst, str(re.First))
		}
		if re.Last != "" {
			addPair(body, keyLast, str(re.Last))
		}
		addPair(relations, re.Relation, body)
	}

	root := &yaml.Node{Kind: yaml.MappingNode}
	addPair(root, keyNodes, nodes)
	addPair(root, keyRelations, relations)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}); err != nil {
		return fmt.Errorf("failed to write yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to write yaml: %w", err)
	}

	ctxlog.FromContext(ctx).Debug("YAML document encoded.", "entries", len(doc.Nodes), "relations", len(doc.Relations))
	return nil
}

func encodeEntry(e document.NodeEntry) *yaml.Node {
	entry := &yaml.Node{Kind: yaml.MappingNode}
	if len(e.Features) > 0 {
		feats := &yaml.Node{Kind: yaml.MappingNode, Style: yaml.FlowStyle}
		for _, f := range e.Features {
			addPair(feats, f.Name, featureValue(f))
		}
		addPair(entry, keyFeatures, feats)
	}
	if len(e.Memberships) > 0 {
		rels := &yaml.Node{Kind: yaml.MappingNode}
		for _, m := range e.Memberships {
			body := &yaml.Node{Kind: yaml.MappingNode, Style: yaml.FlowStyle}
			addPair(body, keyID, str(m.ID))
			for _, l := range m.Links {
				addPair(body, l.Pivot, str(l.Target))
			}
			addPair(rels, m.Relation, body)
		}
		addPair(entry, keyRelations, rels)
	}
	return entry
}

// featureValue tags registry features of unsigned type as integers so they
// are written unquoted.
func featureValue(f document.Feature) *yaml.Node {
	label, err := feature.DefaultMapper.ParseFeature(f.Name)
	if err == nil && label.Type() == schema.Uint {
		if _, err := feature.Parse(label, f.Value); err == nil {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: f.Value}
		}
	}
	return str(f.Value)
}

func str(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func addPair(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, str(key), value)
}
