package testutil

import (
	"testing"

	"github.com/specialistvlad/hrggo/internal/feature"
	"github.com/specialistvlad/hrggo/internal/hrg"
	"github.com/specialistvlad/hrggo/internal/schema"
	"github.com/stretchr/testify/require"
)

// SampleGraph builds the annotation of "hello, world":
//
//	Token:    hello,      world
//	Word:     hello       world      (same entities as the tokens)
//	Syllable: hel  lo     world
//	Silence:  two markers, open relation
//
// Every node is reachable along its relation's sequence.
func SampleGraph(t *testing.T) *hrg.Graph {
	t.Helper()
	g := hrg.New()

	t1 := appendNode(t, g, schema.Token)
	feature.Set(t1.Features(), feature.Name, "hello")
	feature.Set(t1.Features(), feature.Punc, ",")
	feature.Set(t1.Features(), feature.StartPos, 0)
	feature.Set(t1.Features(), feature.EndPos, 6)

	t2 := appendNode(t, g, schema.Token)
	feature.Set(t2.Features(), feature.Name, "world")
	feature.Set(t2.Features(), feature.Whitespace, " ")
	feature.Set(t2.Features(), feature.StartPos, 7)
	feature.Set(t2.Features(), feature.EndPos, 12)

	w1 := appendNode(t, g, schema.Word, t1)
	w2 := appendNode(t, g, schema.Word, t2)
	feature.Set(w1.Features(), feature.POS, "uh")
	feature.Set(w2.Features(), feature.POS, "nn")
	require.NoError(t, t1.SetFirstChild(w1))
	require.NoError(t, t1.SetLastChild(w1))
	require.NoError(t, t2.SetFirstChild(w2))
	require.NoError(t, t2.SetLastChild(w2))

	s1 := appendNode(t, g, schema.Syllable)
	s2 := appendNode(t, g, schema.Syllable)
	s3 := appendNode(t, g, schema.Syllable)
	for s, name := range map[hrg.Node]string{s1: "hel", s2: "lo", s3: "world"} {
		feature.Set(s.Features(), feature.Name, name)
	}
	feature.Set(s1.Features(), feature.Stress, 1)
	feature.Set(s3.Features(), feature.Stress, 1)
	require.NoError(t, w1.SetFirstChild(s1))
	require.NoError(t, w1.SetLastChild(s2))
	require.NoError(t, w2.SetFirstChild(s3))
	require.NoError(t, w2.SetLastChild(s3))

	appendNode(t, g, schema.Silence)
	appendNode(t, g, schema.Silence)
	return g
}

func appendNode(t *testing.T, g *hrg.Graph, label schema.Relation, shared ...hrg.Node) hrg.Node {
	t.Helper()
	rel, err := g.At(label)
	require.NoError(t, err)
	n, err := rel.Append(shared...)
	require.NoError(t, err)
	return n
}
