package hcldoc

import (
	"context"
	"fmt"
	"io"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/hrggo/internal/ctxlog"
	"github.com/specialistvlad/hrggo/internal/document"
	"github.com/specialistvlad/hrggo/internal/feature"
	"github.com/zclconf/go-cty/cty"
)

// Encode implements document.Codec.
func (c Codec) Encode(ctx context.Context, w io.Writer, doc *document.Document) error {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	for i, e := range doc.Nodes {
		if i > 0 {
			body.AppendNewline()
		}
		nb := body.AppendNewBlock("node", nil).Body()
		if len(e.Features) > 0 {
			attrs := make([]hclwrite.ObjectAttrTokens, 0, len(e.Features))
			for _, feat := range e.Features {
				attrs = append(attrs, hclwrite.ObjectAttrTokens{
					Name:  hclwrite.TokensForIdentifier(feat.Name),
					Value: hclwrite.TokensForValue(featureValue(feat)),
				})
			}
			nb.SetAttributeRaw("features", hclwrite.TokensForObject(attrs))
		}
		for _, m := range e.Memberships {
			mb := nb.AppendNewBlock("relation", []string{m.Relation}).Body()
			mb.SetAttributeValue("id", cty.StringVal(m.ID))
			for _, l := range m.Links {
				mb.SetAttributeValue(l.Pivot, cty.StringVal(l.Target))
			}
		}
	}

	for _, re := range doc.Relations {
		body.AppendNewline()
		rb := body.AppendNewBlock("relation", []string{re.Relation}).Body()
		if re.First != "" {
			rb.SetAttributeValue("first", cty.StringVal(re.First))
		}
		if re.Last != "" {
			rb.SetAttributeValue("last", cty.StringVal(re.Last))
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write hcl: %w", err)
	}
	ctxlog.FromContext(ctx).Debug("HCL document encoded.", "entries", len(doc.Nodes), "relations", len(doc.Relations))
	return nil
}

// featureValue types a registry feature through its schema so unsigned
// values are written as numbers. Anything that does not parse is written
// verbatim as a string.
func featureValue(f document.Feature) cty.Value {
	label, err := feature.DefaultMapper.ParseFeature(f.Name)
	if err != nil {
		return cty.StringVal(f.Value)
	}
	v, err := feature.Parse(label, f.Value)
	if err != nil {
		return cty.StringVal(f.Value)
	}
	return v.ToCty()
}
