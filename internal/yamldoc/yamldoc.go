// Package yamldoc reads and writes graph documents as YAML:
//
//	nodes:
//	  - features: {name: hello, start_pos: 0}
//	    relations:
//	      Token: {id: "0", next: "1", first_child: "2"}
//	      Word: {id: "2", parent: "0"}
//	relations:
//	  Token: {first: "0", last: "1"}
//
// Unknown keys anywhere in the tree are parsing errors.
package yamldoc

import (
	"context"
	"fmt"
	"io"

	"github.com/specialistvlad/hrggo/internal/ctxlog"
	"github.com/specialistvlad/hrggo/internal/document"
	"github.com/specialistvlad/hrggo/internal/hrgerr"
	"gopkg.in/yaml.v3"
)

const (
	keyNodes     = "nodes"
	keyRelations = "relations"
	keyFeatures  = "features"
	keyID        = "id"
	keyFirst     = "first"
	keyLast      = "last"
)

// Codec is the YAML document.Codec.
type Codec struct{}

var _ document.Codec = Codec{}

// Name implements document.Codec.
func (Codec) Name() string { return "yaml" }

// Decode implements document.Codec.
func (Codec) Decode(ctx context.Context, r io.Reader) (*document.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read yaml: %w", err)
	}
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, hrgerr.Wrap(hrgerr.ParsingError, err, "malformed yaml")
	}

	doc := &document.Document{}
	if root.Kind == 0 || len(root.Content) == 0 {
		return doc, nil
	}
	top := deref(root.Content[0])
	if isNull(top) {
		return doc, nil
	}
	err = eachPair(top, func(key string, value *yaml.Node) error {
		switch key {
		case keyNodes:
			return decodeNodes(doc, value)
		case keyRelations:
			return decodeRelations(doc, value)
		}
		return unknownKey(key, value, "document")
	})
	if err != nil {
		return nil, err
	}

	ctxlog.FromContext(ctx).Debug("YAML document decoded.", "entries", len(doc.Nodes), "relations", len(doc.Relations))
	return doc, nil
}

func decodeNodes(doc *document.Document, seq *yaml.Node) error {
	if isNull(seq) {
		return nil
	}
	if seq.Kind != yaml.SequenceNode {
		return expected(seq, "a sequence of nodes")
	}
	for _, item := range seq.Content {
		item = deref(item)
		var e document.NodeEntry
		if !isNull(item) {
			err := eachPair(item, func(key string, value *yaml.Node) error {
				switch key {
				case keyFeatures:
					return decodeFeatures(&e, value)
				case keyRelations:
					return decodeMemberships(&e, value)
				}
				return unknownKey(key, value, "node")
			})
			if err != nil {
				return err
			}
		}
		doc.Nodes = append(doc.Nodes, e)
	}
	return nil
}

func decodeFeatures(e *document.NodeEntry, m *yaml.Node) error {
	return eachPair(m, func(name string, value *yaml.Node) error {
		text, err := scalar(value)
		if err != nil {
			return err
		}
		e.Features = append(e.Features, document.Feature{Name: name, Value: text})
		return nil
	})
}

func decodeMemberships(e *document.NodeEntry, m *yaml.Node) error {
	return eachPair(m, func(rel string, body *yaml.Node) error {
		mem := document.Membership{Relation: rel}
		err := eachPair(body, func(key string, value *yaml.Node) error {
			if isNull(value) {
				return nil
			}
			text, err := scalar(value)
			if err != nil {
				return err
			}
			if key == keyID {
				mem.ID = text
				return nil
			}
			if _, err := document.ParsePivot(key); err != nil {
				return fmt.Errorf("line %d: %w", value.Line, err)
			}
			mem.Links = append(mem.Links, document.Link{Pivot: key, Target: text})
			return nil
		})
		if err != nil {
			return err
		}
		e.Memberships = append(e.Memberships, mem)
		return nil
	})
}

func decodeRelations(doc *document.Document, m *yaml.Node) error {
	return eachPair(m, func(rel string, body *yaml.Node) error {
		re := document.RelationEntry{Relation: rel}
		err := eachPair(body, func(key string, value *yaml.Node) error {
			if isNull(value) {
				return nil
			}
			text, err := scalar(value)
			if err != nil {
				return err
			}
			switch key {
			case keyFirst:
				re.First = text
			case keyLast:
				re.Last = text
			default:
				return unknownKey(key, value, "relation")
			}
			return nil
		})
		if err != nil {
			return err
		}
		doc.Relations = append(doc.Relations, re)
		return nil
	})
}

// eachPair visits the pairs of a mapping in document order. A null node is
// an empty mapping.
func eachPair(m *yaml.Node, fn func(key string, value *yaml.Node) error) error {
	m = deref(m)
	if isNull(m) {
		return nil
	}
	if m.Kind != yaml.MappingNode {
		return expected(m, "a mapping")
	}
	seen := make(map[string]bool, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		k, v := deref(m.Content[i]), deref(m.Content[i+1])
		if k.Kind != yaml.ScalarNode {
			return expected(k, "a scalar key")
		}
		if seen[k.Value] {
			return hrgerr.New(hrgerr.ParsingError, "line %d: duplicate key %q", k.Line, k.Value)
		}
		seen[k.Value] = true
		if err := fn(k.Value, v); err != nil {
			return err
		}
	}
	return nil
}

func scalar(n *yaml.Node) (string, error) {
	if n.Kind != yaml.ScalarNode {
		return "", expected(n, "a scalar")
	}
	return n.Value, nil
}

func deref(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

func expected(n *yaml.Node, what string) error {
	return hrgerr.New(hrgerr.ParsingError, "line %d: expected %s", n.Line, what)
}

func unknownKey(key string, at *yaml.Node, where string) error {
	return hrgerr.New(hrgerr.ParsingError, "line %d: invalid %s key %q", at.Line, where, key)
}
