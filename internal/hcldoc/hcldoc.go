// Package hcldoc reads and writes graph documents as HCL:
//
//	node {
//	  features = { name = "hello", start_pos = 0 }
//	  relation "Token" {
//	    id          = "0"
//	    next        = "1"
//	    first_child = "2"
//	  }
//	}
//	relation "Token" {
//	  first = "0"
//	  last  = "1"
//	}
//
// Unsigned features are written as numbers, other features as strings.
package hcldoc

import (
	"context"
	"fmt"
	"io"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/hrggo/internal/ctxlog"
	"github.com/specialistvlad/hrggo/internal/document"
	"github.com/specialistvlad/hrggo/internal/feature"
	"github.com/specialistvlad/hrggo/internal/hrgerr"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// fileRoot is the top level of a document file.
type fileRoot struct {
	Nodes     []*nodeBlock     `hcl:"node,block"`
	Relations []*relationBlock `hcl:"relation,block"`
}

type nodeBlock struct {
	Features    hcl.Expression     `hcl:"features,optional"`
	Memberships []*membershipBlock `hcl:"relation,block"`
}

type membershipBlock struct {
	Relation   string  `hcl:"name,label"`
	ID         string  `hcl:"id"`
	Next       *string `hcl:"next,optional"`
	Prev       *string `hcl:"prev,optional"`
	Parent     *string `hcl:"parent,optional"`
	FirstChild *string `hcl:"first_child,optional"`
	LastChild  *string `hcl:"last_child,optional"`
}

// links returns the set pivots in pivot order.
func (m *membershipBlock) links() []document.Link {
	var out []document.Link
	for _, p := range document.Pivots() {
		if target := *m.pivot(p); target != nil {
			out = append(out, document.Link{Pivot: p.String(), Target: *target})
		}
	}
	return out
}

func (m *membershipBlock) pivot(p document.Pivot) **string {
	switch p {
	case document.Next:
		return &m.Next
	case document.Prev:
		return &m.Prev
	case document.Parent:
		return &m.Parent
	case document.FirstChild:
		return &m.FirstChild
	default:
		return &m.LastChild
	}
}

type relationBlock struct {
	Relation string  `hcl:"name,label"`
	First    *string `hcl:"first,optional"`
	Last     *string `hcl:"last,optional"`
}

// Codec is the HCL document.Codec. Filename only labels diagnostics.
type Codec struct {
	Filename string
}

var _ document.Codec = Codec{}

// Name implements document.Codec.
func (Codec) Name() string { return "hcl" }

func (c Codec) filename() string {
	if c.Filename == "" {
		return "document.hcl"
	}
	return c.Filename
}

// Decode implements document.Codec.
func (c Codec) Decode(ctx context.Context, r io.Reader) (*document.Document, error) {
	logger := ctxlog.FromContext(ctx)
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read hcl: %w", err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, c.filename())
	if diags.HasErrors() {
		return nil, hrgerr.Wrap(hrgerr.ParsingError, diags, "failed to parse HCL file %s", c.filename())
	}
	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, hrgerr.Wrap(hrgerr.ParsingError, diags, "failed to decode HCL file %s", c.filename())
	}

	doc := &document.Document{}
	for _, nb := range root.Nodes {
		e := document.NodeEntry{}
		feats, err := decodeFeatures(nb.Features)
		if err != nil {
			return nil, err
		}
		e.Features = feats
		for _, mb := range nb.Memberships {
			e.Memberships = append(e.Memberships, document.Membership{
				Relation: mb.Relation,
				ID:       mb.ID,
				Links:    mb.links(),
			})
		}
		doc.Nodes = append(doc.Nodes, e)
	}
	for _, rb := range root.Relations {
		re := document.RelationEntry{Relation: rb.Relation}
		if rb.First != nil {
			re.First = *rb.First
		}
		if rb.Last != nil {
			re.Last = *rb.Last
		}
		doc.Relations = append(doc.Relations, re)
	}

	logger.Debug("HCL document decoded.", "file", c.filename(), "entries", len(doc.Nodes), "relations", len(doc.Relations))
	return doc, nil
}

// decodeFeatures reads an object expression in source order. Values are
// converted to their text form.
func decodeFeatures(expr hcl.Expression) ([]document.Feature, error) {
	if expr == nil {
		return nil, nil
	}
	whole, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, hrgerr.Wrap(hrgerr.ParsingError, diags, "invalid features")
	}
	if whole.IsNull() {
		return nil, nil
	}

	pairs, diags := hcl.ExprMap(expr)
	if diags.HasErrors() {
		return nil, hrgerr.Wrap(hrgerr.ParsingError, diags, "features must be an object")
	}
	out := make([]document.Feature, 0, len(pairs))
	for _, kv := range pairs {
		key, diags := kv.Key.Value(nil)
		if diags.HasErrors() || key.IsNull() || key.Type() != cty.String {
			return nil, hrgerr.New(hrgerr.ParsingError, "%s: feature names must be strings", kv.Key.Range())
		}
		val, diags := kv.Value.Value(nil)
		if diags.HasErrors() {
			return nil, hrgerr.Wrap(hrgerr.ParsingError, diags, "feature %s", key.AsString())
		}
		if val.IsNull() {
			return nil, hrgerr.New(hrgerr.InvalidFeatureValue, "%s: feature %s is null", kv.Value.Range(), key.AsString())
		}
		text, err := featureText(key.AsString(), val)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", kv.Value.Range(), err)
		}
		out = append(out, document.Feature{Name: key.AsString(), Value: text})
	}
	return out, nil
}

// featureText types a registry feature through its schema, so a number
// given for an unsigned feature must be whole and in range. Names outside
// the registry are kept as plain text for the graph's own name mapper.
func featureText(name string, val cty.Value) (string, error) {
	label, err := feature.DefaultMapper.ParseFeature(name)
	if err != nil {
		text, err := convert.Convert(val, cty.String)
		if err != nil {
			return "", hrgerr.Wrap(hrgerr.InvalidFeatureType, err, "feature %s", name)
		}
		return text.AsString(), nil
	}
	v, err := feature.FromCty(label, val)
	if err != nil {
		return "", err
	}
	return feature.Format(v), nil
}
