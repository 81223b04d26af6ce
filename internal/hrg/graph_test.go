package hrg

import (
	"testing"

	"github.com/specialistvlad/hrggo/internal/hrgerr"
	"github.com/specialistvlad/hrggo/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph_AtIsLazy(t *testing.T) {
	g := New()
	assert.False(t, g.Has(schema.Word))

	r1, err := g.At(schema.Word)
	require.NoError(t, err)
	r2, err := g.At(schema.Word)
	require.NoError(t, err)

	assert.Same(t, r1, r2)
	assert.Equal(t, schema.Word, r1.Label())
	assert.Same(t, g, r1.Graph())
	assert.True(t, g.Has(schema.Word))

	got, ok := g.Get(schema.Word)
	require.True(t, ok)
	assert.Same(t, r1, got)
}

func TestGraph_AtRejectsUnknownLabel(t *testing.T) {
	g := New()
	_, err := g.At(schema.InvalidRelation)
	assert.ErrorIs(t, err, hrgerr.ErrBadRelation)
	assert.Panics(t, func() { g.MustAt(schema.Relation(42)) })
}

func TestGraph_RelationFactory(t *testing.T) {
	g := New(WithRelationFactory(func(g *Graph, label schema.Relation) (*Relation, error) {
		if label == schema.Syllable {
			return nil, hrgerr.New(hrgerr.BadRelation, "syllables disabled")
		}
		// Every relation is open in this graph.
		return NewRelation(g, label, true), nil
	}))

	words := g.MustAt(schema.Word)
	assert.True(t, words.Open())

	_, err := g.At(schema.Syllable)
	assert.ErrorIs(t, err, hrgerr.ErrBadRelation)
	assert.False(t, g.Has(schema.Syllable))
}

func TestGraph_RelationFactoryMustMatchLabel(t *testing.T) {
	g := New(WithRelationFactory(func(g *Graph, _ schema.Relation) (*Relation, error) {
		return NewRelation(g, schema.Token, false), nil
	}))
	_, err := g.At(schema.Word)
	assert.ErrorIs(t, err, hrgerr.ErrBadRelation)

	other := New()
	g = New(WithRelationFactory(func(_ *Graph, label schema.Relation) (*Relation, error) {
		return NewRelation(other, label, false), nil
	}))
	_, err = g.At(schema.Word)
	assert.ErrorIs(t, err, hrgerr.ErrBadRelation)
}

func TestGraph_CustomValidator(t *testing.T) {
	g := New(WithRelationValidator(func(parent, child schema.Relation) bool {
		return parent == schema.Token && child == schema.Syllable
	}))
	tk := mustAppend(t, g, schema.Token)
	w := mustAppend(t, g, schema.Word)
	s := mustAppend(t, g, schema.Syllable)

	assert.ErrorIs(t, w.SetParent(tk), hrgerr.ErrBadRelation)
	require.NoError(t, tk.SetFirstChild(s))
	assert.True(t, s.Parent().Is(tk))
	assert.True(t, g.Validate(schema.Token, schema.Syllable))

	clone := New(g.Options()...)
	assert.True(t, clone.Validate(schema.Token, schema.Syllable))
	assert.False(t, clone.Validate(schema.Token, schema.Word))
}

func TestGraph_NodeFactory(t *testing.T) {
	g := New(WithNodeFactory(func(label schema.Relation) (schema.Relation, error) {
		if label == schema.Segment {
			return schema.InvalidRelation, hrgerr.New(hrgerr.BadRelation, "no segments")
		}
		return label, nil
	}))

	_, err := g.MustAt(schema.Segment).Append()
	assert.ErrorIs(t, err, hrgerr.ErrBadRelation)
	assert.Equal(t, 0, g.NodeCount())
	assert.Equal(t, 0, g.EntityCount())
}

func TestGraph_Drop(t *testing.T) {
	g, t1, w1, _, _ := simpleGraph(t)

	assert.True(t, g.Drop(schema.Word))
	assert.False(t, g.Drop(schema.Word))
	assert.False(t, g.Has(schema.Word))
	assert.False(t, w1.Valid())
	assert.True(t, t1.FirstChild().IsNull())
	assert.Equal(t, 1, g.NodeCount())

	rels := g.Relations()
	require.Len(t, rels, 1)
	assert.Equal(t, schema.Token, rels[0].Label())
}

func TestGraph_RelationsOrdered(t *testing.T) {
	g := New()
	g.MustAt(schema.Syllable)
	g.MustAt(schema.Token)
	g.MustAt(schema.Word)

	var labels []schema.Relation
	for _, r := range g.Relations() {
		labels = append(labels, r.Label())
	}
	assert.Equal(t, []schema.Relation{schema.Token, schema.Word, schema.Syllable}, labels)
}
