package hrg

import (
	"testing"

	"github.com/specialistvlad/hrggo/internal/hrgerr"
	"github.com/specialistvlad/hrggo/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavigator_NullPropagates(t *testing.T) {
	var nav Navigator
	chained := nav.Next().Parent().FirstChild().LastChild().Prev().As(schema.Word)
	assert.True(t, chained.IsNull())
	assert.False(t, chained.In(schema.Word))

	called := false
	out := nav.Apply(func(n Node) Navigator {
		called = true
		return n.Nav()
	})
	assert.False(t, called)
	assert.True(t, out.IsNull())

	_, err := chained.Node()
	assert.ErrorIs(t, err, hrgerr.ErrNullDereference)
	assert.Panics(t, func() { chained.MustNode() })
	assert.True(t, chained.Equal(Navigator{}))
}

func TestNavigator_Chains(t *testing.T) {
	g := New()
	t1 := mustAppend(t, g, schema.Token)
	w1 := mustAppend(t, g, schema.Word, t1)
	w2 := mustAppend(t, g, schema.Word)
	require.NoError(t, t1.SetFirstChild(w1))
	require.NoError(t, t1.SetLastChild(w2))

	got := t1.Nav().FirstChild().Next().Parent().As(schema.Word)
	assert.True(t, got.Is(w1))
	assert.Equal(t, "Word#2", got.String())

	hop := w2.Nav().Apply(func(n Node) Navigator { return n.Prev() })
	assert.True(t, hop.Equal(w1.Nav()))
	assert.True(t, hop.In(schema.Token))
}

func TestIterator_ForwardAndBack(t *testing.T) {
	g, _, w1, w2, w3 := simpleGraph(t)
	words := g.MustAt(schema.Word)

	var visited []Node
	it := words.Begin()
	for end := words.End(); !it.Equal(end); require.NoError(t, it.Inc()) {
		n, err := it.Node()
		require.NoError(t, err)
		visited = append(visited, n)
	}
	assert.Equal(t, []Node{w1, w2, w3}, visited)
	assert.True(t, it.Done())
	assert.ErrorIs(t, it.Inc(), hrgerr.ErrOutOfRange)

	require.NoError(t, it.Dec())
	assert.True(t, it.Nav().Is(w3))

	end := words.End()
	require.NoError(t, end.Dec())
	assert.True(t, end.Nav().Is(w3))

	begin := words.Begin()
	assert.ErrorIs(t, begin.Dec(), hrgerr.ErrOutOfRange)
}

func TestIterator_EndFollowsLast(t *testing.T) {
	g, _, w1, w2, w3 := simpleGraph(t)
	words := g.MustAt(schema.Word)
	require.NoError(t, words.SetLast(w2))

	end := words.End()
	assert.True(t, end.Nav().Is(w3))

	var visited []Node
	for it := words.Begin(); !it.Equal(end); require.NoError(t, it.Inc()) {
		n, err := it.Node()
		require.NoError(t, err)
		visited = append(visited, n)
	}
	assert.Equal(t, []Node{w1, w2}, visited)
	assert.Equal(t, collect(words.All()), visited)

	require.NoError(t, end.Dec())
	assert.True(t, end.Nav().Is(w2))
}

func TestIterator_EmptyRelation(t *testing.T) {
	g := New()
	words := g.MustAt(schema.Word)
	assert.True(t, words.Begin().Equal(words.End()))
	end := words.End()
	assert.ErrorIs(t, end.Dec(), hrgerr.ErrOutOfRange)
}

func TestIterator_Comparators(t *testing.T) {
	g := New()
	tk := mustAppend(t, g, schema.Token)
	w := mustAppend(t, g, schema.Word, tk)

	byNode := NewIterator(tk.Nav(), SameNode)
	assert.False(t, byNode.Equal(NewIterator(w.Nav(), SameNode)))

	byContents := NewIterator(tk.Nav(), SameContents)
	assert.True(t, byContents.Equal(NewIterator(w.Nav(), SameContents)))
	assert.True(t, NewIterator(tk.Nav(), nil).Equal(NewIterator(tk.Nav(), nil)))
}

func TestRange_AheadAndBack(t *testing.T) {
	_, _, w1, w2, w3 := simpleGraph(t)

	assert.Equal(t, []Node{w2, w3}, collect(w2.Ahead(nil).Seq()))
	assert.Equal(t, []Node{w1}, collect(w2.Back(nil).Seq()))
	assert.Equal(t, []Node{w2, w1}, collect(w3.Back(nil).Seq()))
	assert.Empty(t, collect(w1.Back(nil).Seq()))

	r := w1.Ahead(SameNode)
	var end Sentinel
	assert.False(t, end.Equal(r.Begin()))
	assert.Equal(t, end, r.End())

	rev := w3.Back(nil)
	it := rev.Begin()
	assert.True(t, it.Nav().Is(w2))
	require.NoError(t, it.Inc())
	assert.True(t, it.Nav().Is(w1))
	require.NoError(t, it.Inc())
	assert.True(t, rev.End().Equal(it))
}

func TestRange_EarlyBreak(t *testing.T) {
	_, _, w1, _, _ := simpleGraph(t)
	count := 0
	for range w1.Ahead(nil).Seq() {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}
