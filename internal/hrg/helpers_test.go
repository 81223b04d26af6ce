package hrg

import (
	"testing"

	"github.com/specialistvlad/hrggo/internal/schema"
	"github.com/stretchr/testify/require"
)

func mustAppend(t *testing.T, g *Graph, label schema.Relation, shared ...Node) Node {
	t.Helper()
	rel, err := g.At(label)
	require.NoError(t, err)
	n, err := rel.Append(shared...)
	require.NoError(t, err)
	return n
}

func mustCreate(t *testing.T, g *Graph, label schema.Relation, shared ...Node) Node {
	t.Helper()
	rel, err := g.At(label)
	require.NoError(t, err)
	n, err := rel.Create(shared...)
	require.NoError(t, err)
	return n
}

// collect drains seq into a slice.
func collect(seq func(func(Node) bool)) []Node {
	var out []Node
	for n := range seq {
		out = append(out, n)
	}
	return out
}

// simpleGraph builds one token t1 over three words w1..w3, with t1's
// first and last child set and w2 parented explicitly.
func simpleGraph(t *testing.T) (g *Graph, t1, w1, w2, w3 Node) {
	t.Helper()
	g = New()
	t1 = mustAppend(t, g, schema.Token)
	w1 = mustAppend(t, g, schema.Word)
	w2 = mustAppend(t, g, schema.Word)
	w3 = mustAppend(t, g, schema.Word)
	require.NoError(t, t1.SetFirstChild(w1))
	require.NoError(t, w2.SetParent(t1))
	require.NoError(t, t1.SetLastChild(w3))
	return g, t1, w1, w2, w3
}
