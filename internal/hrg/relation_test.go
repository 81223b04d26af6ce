package hrg

import (
	"testing"

	"github.com/specialistvlad/hrggo/internal/hrgerr"
	"github.com/specialistvlad/hrggo/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelation_AppendPrepend(t *testing.T) {
	g := New()
	words := g.MustAt(schema.Word)
	assert.True(t, words.First().IsNull())
	assert.True(t, words.Last().IsNull())

	w2, err := words.Append()
	require.NoError(t, err)
	assert.True(t, words.First().Is(w2))
	assert.True(t, words.Last().Is(w2))

	w3, err := words.Append()
	require.NoError(t, err)
	w1, err := words.Prepend()
	require.NoError(t, err)

	assert.True(t, words.First().Is(w1))
	assert.True(t, words.Last().Is(w3))
	assert.Equal(t, []Node{w1, w2, w3}, collect(words.All()))
	assert.Equal(t, []Node{w3, w2, w1}, collect(words.Backward()))
	assert.Equal(t, 3, words.Len())
}

func TestRelation_CreateIsLoose(t *testing.T) {
	g := New()
	words := g.MustAt(schema.Word)
	w1 := mustAppend(t, g, schema.Word)
	loose := mustCreate(t, g, schema.Word)

	assert.Equal(t, []Node{w1}, collect(words.All()))
	assert.Equal(t, []Node{w1, loose}, words.Nodes())
	assert.True(t, words.Contains(loose))
	assert.True(t, loose.Next().IsNull())
	assert.True(t, loose.Prev().IsNull())
}

func TestRelation_OpenRelation(t *testing.T) {
	g := New()
	silence := g.MustAt(schema.Silence)
	require.True(t, silence.Open())

	s1, err := silence.Append()
	require.NoError(t, err)
	s2, err := silence.Append()
	require.NoError(t, err)
	s3, err := silence.Append()
	require.NoError(t, err)

	assert.True(t, silence.First().Is(s1))
	assert.True(t, silence.Last().IsNull())
	assert.True(t, s2.Prev().Is(s1))
	assert.True(t, s3.Prev().Is(s2))
	assert.Equal(t, []Node{s1, s2, s3}, collect(silence.All()))
	assert.Equal(t, []Node{s3, s2, s1}, collect(silence.Backward()))

	err = silence.SetLast(s3)
	require.ErrorIs(t, err, hrgerr.ErrBadTopology)
	require.NoError(t, silence.SetLast(Node{}))

	s0, err := silence.Prepend()
	require.NoError(t, err)
	assert.True(t, silence.First().Is(s0))
	assert.True(t, silence.Last().IsNull())
}

func TestRelation_SetEndpoints(t *testing.T) {
	g, t1, w1, _, w3 := simpleGraph(t)
	words := g.MustAt(schema.Word)

	assert.ErrorIs(t, words.SetFirst(t1), hrgerr.ErrBadRelation)
	assert.ErrorIs(t, words.SetLast(t1), hrgerr.ErrBadRelation)

	require.NoError(t, words.SetFirst(w3))
	require.NoError(t, words.SetLast(w1))
	assert.True(t, words.First().Is(w3))
	assert.True(t, words.Last().Is(w1))

	require.NoError(t, words.SetFirst(Node{}))
	assert.True(t, words.First().IsNull())
	assert.Empty(t, collect(words.All()))
}

func TestRelation_EraseSplices(t *testing.T) {
	g, _, w1, w2, w3 := simpleGraph(t)
	words := g.MustAt(schema.Word)

	require.NoError(t, words.Erase(w2))
	assert.True(t, w1.Next().Is(w3))
	assert.True(t, w3.Prev().Is(w1))
	assert.Equal(t, []Node{w1, w3}, collect(words.All()))

	require.NoError(t, words.Erase(w1))
	assert.True(t, words.First().Is(w3))
	assert.True(t, w3.Prev().IsNull())

	require.NoError(t, words.Erase(w3))
	assert.True(t, words.First().IsNull())
	assert.True(t, words.Last().IsNull())
	assert.Equal(t, 0, words.Len())
}

func TestRelation_EraseFromTwoNodeRing(t *testing.T) {
	g := New()
	a := mustAppend(t, g, schema.Word)
	b := mustAppend(t, g, schema.Word)
	require.NoError(t, b.SetNext(a))
	words := g.MustAt(schema.Word)

	require.NoError(t, words.Erase(b))
	assert.True(t, a.Next().IsNull())
	assert.True(t, a.Prev().IsNull())
	assert.True(t, words.First().Is(a))
	assert.True(t, words.Last().Is(a))
	assert.Equal(t, []Node{a}, collect(words.All()))
}

func TestRelation_EraseErrors(t *testing.T) {
	g, t1, w1, _, _ := simpleGraph(t)
	words := g.MustAt(schema.Word)

	assert.ErrorIs(t, words.Erase(t1), hrgerr.ErrInvalidArgument)
	assert.ErrorIs(t, words.Erase(Node{}), hrgerr.ErrInvalidArgument)

	require.NoError(t, words.Erase(w1))
	assert.ErrorIs(t, words.Erase(w1), hrgerr.ErrInvalidArgument)
}

func TestRelation_Clear(t *testing.T) {
	g, t1, w1, _, _ := simpleGraph(t)
	g.MustAt(schema.Word).Clear()

	assert.Equal(t, 0, g.MustAt(schema.Word).Len())
	assert.True(t, t1.FirstChild().IsNull())
	assert.True(t, t1.LastChild().IsNull())
	assert.False(t, w1.Valid())
	assert.Equal(t, 1, g.EntityCount())
}
