package document_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/specialistvlad/hrggo/internal/document"
	"github.com/specialistvlad/hrggo/internal/feature"
	"github.com/specialistvlad/hrggo/internal/hrg"
	"github.com/specialistvlad/hrggo/internal/hrgerr"
	"github.com/specialistvlad/hrggo/internal/schema"
	"github.com/specialistvlad/hrggo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatten_SampleGraph(t *testing.T) {
	doc := document.Flatten(context.Background(), testutil.SampleGraph(t))

	// Two token/word entities, three syllables, two silences.
	require.Len(t, doc.Nodes, 7)
	assert.Equal(t, 9, doc.Len())

	want := document.NodeEntry{
		Features: []document.Feature{
			{Name: "name", Value: "hello"},
			{Name: "punc", Value: ","},
			{Name: "pos", Value: "uh"},
			{Name: "start_pos", Value: "0"},
			{Name: "end_pos", Value: "6"},
		},
		Memberships: []document.Membership{
			member("Token", "0", "next", "1", "first_child", "2", "last_child", "2"),
			member("Word", "2", "next", "3", "parent", "0", "first_child", "4", "last_child", "5"),
		},
	}
	assert.Equal(t, want, doc.Nodes[0])

	assert.Equal(t, []document.RelationEntry{
		{Relation: "Token", First: "0", Last: "1"},
		{Relation: "Word", First: "2", Last: "3"},
		{Relation: "Syllable", First: "4", Last: "6"},
		{Relation: "Silence", First: "7"},
	}, doc.Relations)
}

func TestFlatten_RoundTrip(t *testing.T) {
	ctx := context.Background()
	g := testutil.SampleGraph(t)

	doc := document.Flatten(ctx, g)
	rebuilt, err := document.Build(ctx, doc)
	require.NoError(t, err)
	testutil.AssertSameStructure(t, g, rebuilt)

	assert.Equal(t, g.NodeCount(), rebuilt.NodeCount())
	assert.Equal(t, g.EntityCount(), rebuilt.EntityCount())
	assert.Equal(t, doc, document.Flatten(ctx, rebuilt))
}

func TestFlatten_RoundTripAfterRingErase(t *testing.T) {
	ctx := context.Background()
	g := hrg.New()
	words := g.MustAt(schema.Word)
	a, err := words.Append()
	require.NoError(t, err)
	b, err := words.Append()
	require.NoError(t, err)
	require.NoError(t, b.SetNext(a))
	require.NoError(t, words.Erase(b))

	rebuilt, err := document.Build(ctx, document.Flatten(ctx, g))
	require.NoError(t, err)
	testutil.AssertSameStructure(t, g, rebuilt)
}

func TestFlatten_LooseNodes(t *testing.T) {
	g := hrg.New()
	words := g.MustAt(schema.Word)
	a, err := words.Append()
	require.NoError(t, err)
	loose, err := words.Create()
	require.NoError(t, err)
	feature.Set(loose.Features(), feature.Name, "stray")

	assert.True(t, words.First().Is(a))
	assert.True(t, words.Last().Is(a))

	doc := document.Flatten(context.Background(), g)
	require.Len(t, doc.Nodes, 2)
	assert.Equal(t, []document.Membership{member("Word", "0")}, doc.Nodes[0].Memberships)
	assert.Equal(t, []document.Membership{member("Word", "1")}, doc.Nodes[1].Memberships)
	assert.Equal(t, []document.Feature{{Name: "name", Value: "stray"}}, doc.Nodes[1].Features)
	assert.Equal(t, []document.RelationEntry{{Relation: "Word", First: "0", Last: "0"}}, doc.Relations)

	rebuilt, err := document.Build(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, 2, rebuilt.NodeCount())
	assert.True(t, rebuilt.MustAt(schema.Word).First().Next().IsNull())
}

func TestFlatten_EmptyRelation(t *testing.T) {
	g := hrg.New()
	g.MustAt(schema.Segment)

	doc := document.Flatten(context.Background(), g)
	assert.Empty(t, doc.Nodes)
	assert.Equal(t, []document.RelationEntry{{Relation: "Segment"}}, doc.Relations)

	rebuilt, err := document.Build(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, rebuilt.Has(schema.Segment))
}

type stubCodec struct {
	doc     *document.Document
	err     error
	encoded *document.Document
}

func (c *stubCodec) Name() string { return "stub" }

func (c *stubCodec) Decode(context.Context, io.Reader) (*document.Document, error) {
	return c.doc, c.err
}

func (c *stubCodec) Encode(_ context.Context, _ io.Writer, doc *document.Document) error {
	c.encoded = doc
	return c.err
}

func TestReadWrite(t *testing.T) {
	ctx := context.Background()
	g := testutil.SampleGraph(t)

	c := &stubCodec{}
	require.NoError(t, document.Write(ctx, c, &bytes.Buffer{}, g))
	require.NotNil(t, c.encoded)

	c.doc = c.encoded
	got, err := document.Read(ctx, c, &bytes.Buffer{})
	require.NoError(t, err)
	testutil.AssertSameStructure(t, g, got)
}

func TestReadWrite_Errors(t *testing.T) {
	ctx := context.Background()
	boom := hrgerr.New(hrgerr.ParsingError, "boom")
	c := &stubCodec{err: boom}

	_, err := document.Read(ctx, c, &bytes.Buffer{})
	require.ErrorIs(t, err, hrgerr.ErrParsing)
	assert.Contains(t, err.Error(), "failed to decode stub document")

	err = document.Write(ctx, c, &bytes.Buffer{}, hrg.New())
	require.True(t, errors.Is(err, boom))
	assert.Contains(t, err.Error(), "failed to encode stub document")
}
