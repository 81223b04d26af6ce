package hrg

import (
	"testing"

	"github.com/specialistvlad/hrggo/internal/feature"
	"github.com/specialistvlad/hrggo/internal/hrgerr"
	"github.com/specialistvlad/hrggo/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNode_TokenWordExample(t *testing.T) {
	g := New()
	t1 := mustAppend(t, g, schema.Token)
	w1 := mustAppend(t, g, schema.Word)

	require.NoError(t, t1.SetFirstChild(w1))
	assert.True(t, t1.FirstChild().Is(w1))
	assert.True(t, w1.Parent().Is(t1))

	_, err := w1.Next().Node()
	require.ErrorIs(t, err, hrgerr.ErrNullDereference)
}

func TestNode_NextPrevAreSymmetric(t *testing.T) {
	g, _, w1, w2, w3 := simpleGraph(t)

	for _, n := range []Node{w1, w2, w3} {
		if next := n.Next(); !next.IsNull() {
			assert.True(t, next.Prev().Is(n), "next.prev of %s", n)
		}
		if prev := n.Prev(); !prev.IsNull() {
			assert.True(t, prev.Next().Is(n), "prev.next of %s", n)
		}
	}
	assert.Equal(t, 4, g.NodeCount())
}

func TestNode_ParentChildLinks(t *testing.T) {
	_, t1, w1, w2, w3 := simpleGraph(t)

	assert.True(t, t1.FirstChild().Is(w1))
	assert.True(t, t1.LastChild().Is(w3))
	for _, w := range []Node{w1, w2, w3} {
		assert.True(t, w.Parent().Is(t1))
	}
}

func TestNode_SetNextRelinks(t *testing.T) {
	_, _, w1, w2, w3 := simpleGraph(t)

	require.NoError(t, w1.SetNext(w3))
	assert.True(t, w1.Next().Is(w3))
	assert.True(t, w3.Prev().Is(w1))
	assert.True(t, w2.Prev().IsNull())
	assert.True(t, w2.Next().IsNull())

	require.NoError(t, w1.SetNext(Node{}))
	assert.True(t, w1.Next().IsNull())
	assert.True(t, w3.Prev().IsNull())
}

func TestNode_SetPrevRelinks(t *testing.T) {
	_, _, w1, w2, w3 := simpleGraph(t)

	require.NoError(t, w3.SetPrev(w1))
	assert.True(t, w1.Next().Is(w3))
	assert.True(t, w3.Prev().Is(w1))
	assert.True(t, w2.Next().IsNull())
	assert.True(t, w2.Prev().IsNull())
}

func TestNode_SetNextErrors(t *testing.T) {
	g, t1, w1, _, _ := simpleGraph(t)

	err := w1.SetNext(t1)
	require.ErrorIs(t, err, hrgerr.ErrBadRelation)
	assert.ErrorIs(t, err, hrgerr.ErrBadTopology)

	assert.ErrorIs(t, w1.SetNext(w1), hrgerr.ErrBadTopology)

	other := New()
	foreign := mustAppend(t, other, schema.Word)
	assert.ErrorIs(t, w1.SetNext(foreign), hrgerr.ErrInvalidArgument)

	assert.Equal(t, 4, g.NodeCount())
}

func TestNode_SetParentValidates(t *testing.T) {
	g, t1, w1, _, _ := simpleGraph(t)
	s1 := mustAppend(t, g, schema.Syllable)

	assert.ErrorIs(t, w1.SetParent(s1), hrgerr.ErrBadRelation)
	assert.ErrorIs(t, t1.SetParent(w1), hrgerr.ErrBadRelation)
	assert.ErrorIs(t, s1.SetFirstChild(w1), hrgerr.ErrBadRelation)

	require.NoError(t, s1.SetParent(w1))
	assert.True(t, s1.Parent().Is(w1))
	assert.True(t, w1.FirstChild().IsNull())
}

func TestNode_SetParentMovesOldEndpoints(t *testing.T) {
	g := New()
	t1 := mustAppend(t, g, schema.Token)
	t2 := mustAppend(t, g, schema.Token)
	w1 := mustAppend(t, g, schema.Word)
	w2 := mustAppend(t, g, schema.Word)
	w3 := mustAppend(t, g, schema.Word)
	require.NoError(t, t1.SetFirstChild(w1))
	require.NoError(t, t1.SetLastChild(w2))

	require.NoError(t, w1.SetParent(t2))
	assert.True(t, t1.FirstChild().Is(w2))
	assert.True(t, t1.LastChild().Is(w2))

	require.NoError(t, w2.SetParent(t2))
	assert.True(t, t1.FirstChild().IsNull())
	assert.True(t, t1.LastChild().IsNull())
	assert.True(t, w3.Parent().IsNull())
}

func TestNode_SetChildAcrossGraphs(t *testing.T) {
	g := New()
	t1 := mustAppend(t, g, schema.Token)
	foreign := mustAppend(t, New(), schema.Word)

	assert.ErrorIs(t, t1.SetFirstChild(foreign), hrgerr.ErrInvalidArgument)
	assert.ErrorIs(t, t1.SetLastChild(foreign), hrgerr.ErrInvalidArgument)
	assert.ErrorIs(t, foreign.SetParent(t1), hrgerr.ErrInvalidArgument)
}

func TestNode_SetChildReparents(t *testing.T) {
	g := New()
	t1 := mustAppend(t, g, schema.Token)
	t2 := mustAppend(t, g, schema.Token)
	w1 := mustAppend(t, g, schema.Word)

	require.NoError(t, t1.SetFirstChild(w1))
	require.NoError(t, t2.SetLastChild(w1))

	assert.True(t, w1.Parent().Is(t2))
	assert.True(t, t1.FirstChild().IsNull())
	assert.True(t, t2.LastChild().Is(w1))

	require.NoError(t, t2.SetLastChild(Node{}))
	assert.True(t, t2.LastChild().IsNull())
	assert.True(t, w1.Parent().Is(t2))
}

func TestNode_SharedContents(t *testing.T) {
	g := New()
	tk := mustCreate(t, g, schema.Token)
	w := mustCreate(t, g, schema.Word, tk)

	assert.True(t, tk.As(schema.Syllable).IsNull())
	assert.True(t, w.As(schema.Syllable).IsNull())
	assert.True(t, tk.As(schema.Word).Is(w))
	assert.True(t, w.As(schema.Token).Is(tk))
	assert.True(t, tk.In(schema.Word))
	assert.False(t, tk.In(schema.Syllable))
	assert.True(t, tk.SameContents(w))
	assert.Equal(t, 1, g.EntityCount())

	s := mustCreate(t, g, schema.Syllable, tk)
	assert.True(t, tk.As(schema.Syllable).Is(s))
	assert.True(t, s.As(schema.Token).Is(tk))
	assert.Equal(t, []schema.Relation{schema.Token, schema.Word, schema.Syllable}, s.Relations())

	feature.Set(tk.Features(), feature.Name, "hello")
	name, ok := feature.Get(s.Features(), feature.Name)
	require.True(t, ok)
	assert.Equal(t, "hello", name)

	_, err := g.MustAt(schema.Word).Create(s)
	require.ErrorIs(t, err, hrgerr.ErrRelationAlreadyPresent)
	assert.ErrorIs(t, err, hrgerr.ErrBadTopology)

	require.NoError(t, g.MustAt(schema.Word).Erase(w))
	assert.True(t, tk.As(schema.Word).IsNull())
	assert.True(t, s.As(schema.Word).IsNull())
	assert.Equal(t, 1, g.EntityCount())
}

func TestNode_EraseLastViewReleasesContents(t *testing.T) {
	g := New()
	w := mustAppend(t, g, schema.Word)
	feature.Set(w.Features(), feature.StartPos, 4)
	nav := w.Nav()

	require.NoError(t, g.MustAt(schema.Word).Erase(w))
	assert.True(t, nav.IsNull())
	assert.False(t, w.Valid())
	assert.Equal(t, 0, g.EntityCount())
	assert.Equal(t, 0, g.NodeCount())

	_, err := nav.Node()
	assert.ErrorIs(t, err, hrgerr.ErrNullDereference)
	assert.ErrorIs(t, w.SetNext(Node{}), hrgerr.ErrNullDereference)
	assert.Panics(t, func() { w.Features() })

	x := mustAppend(t, g, schema.Word)
	assert.NotEqual(t, w, x)
	assert.False(t, w.Valid())
	assert.False(t, x.Features().Has(schema.StartPos))
}

func TestNode_EraseUnlinksChildren(t *testing.T) {
	g, t1, w1, w2, w3 := simpleGraph(t)

	require.NoError(t, g.MustAt(schema.Token).Erase(t1))
	for _, w := range []Node{w1, w2, w3} {
		assert.True(t, w.Parent().IsNull())
	}
}

func TestNode_EraseChildMovesParentEndpoints(t *testing.T) {
	g, t1, w1, w2, w3 := simpleGraph(t)

	require.NoError(t, g.MustAt(schema.Word).Erase(w1))
	assert.True(t, t1.FirstChild().Is(w2))

	require.NoError(t, g.MustAt(schema.Word).Erase(w3))
	assert.True(t, t1.LastChild().Is(w2))
}

func TestNode_InsertNextPrev(t *testing.T) {
	g := New()
	words := g.MustAt(schema.Word)
	w1 := mustAppend(t, g, schema.Word)
	w2 := mustAppend(t, g, schema.Word)

	w3, err := w1.InsertNext()
	require.NoError(t, err)
	assert.True(t, w1.Next().Is(w3))
	assert.True(t, w3.Prev().Is(w1))
	assert.True(t, w3.Next().Is(w2))
	assert.True(t, w2.Prev().Is(w3))

	w4, err := w2.InsertNext()
	require.NoError(t, err)
	assert.True(t, words.Last().Is(w4))

	w0, err := w1.InsertPrev()
	require.NoError(t, err)
	assert.True(t, words.First().Is(w0))
	assert.True(t, w0.Next().Is(w1))

	assert.Equal(t, []Node{w0, w1, w3, w2, w4}, collect(words.All()))
}

func TestNode_InsertSharesContents(t *testing.T) {
	g := New()
	tk := mustAppend(t, g, schema.Token)
	w1 := mustAppend(t, g, schema.Word)

	w2, err := w1.InsertNext(tk)
	require.NoError(t, err)
	assert.True(t, tk.As(schema.Word).Is(w2))

	_, err = w1.InsertPrev(tk)
	assert.ErrorIs(t, err, hrgerr.ErrRelationAlreadyPresent)
}
