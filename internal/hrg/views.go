package hrg

import (
	"github.com/specialistvlad/hrggo/internal/hrgerr"
	"github.com/specialistvlad/hrggo/internal/schema"
)

// Typed views over nodes of each registered relation. A view embeds Node
// and narrows the navigation methods to the related views named by the
// relation registry.
type (
	Token    struct{ Node }
	Word     struct{ Node }
	Syllable struct{ Node }
	Segment  struct{ Node }
	Silence  struct{ Node }
)

// View is the closed set of typed views.
type View interface {
	Token | Word | Syllable | Segment | Silence
}

// LabelOf returns the relation label of view type T.
func LabelOf[T View]() schema.Relation {
	var zero T
	switch any(zero).(type) {
	case Token:
		return schema.Token
	case Word:
		return schema.Word
	case Syllable:
		return schema.Syllable
	case Segment:
		return schema.Segment
	case Silence:
		return schema.Silence
	}
	return schema.InvalidRelation
}

func wrapView[T View](n Node) T {
	var out T
	switch p := any(&out).(type) {
	case *Token:
		*p = Token{n}
	case *Word:
		*p = Word{n}
	case *Syllable:
		*p = Syllable{n}
	case *Segment:
		*p = Segment{n}
	case *Silence:
		*p = Silence{n}
	}
	return out
}

// Cast checks n's variant against T.
func Cast[T View](n Node) (T, error) {
	var zero T
	if !n.Valid() {
		return zero, hrgerr.New(hrgerr.NullDereference, "node handle is null or erased")
	}
	if want := LabelOf[T](); n.Variant() != want {
		return zero, hrgerr.New(hrgerr.BadRelation, "node %s is not a %s", n, want)
	}
	return wrapView[T](n), nil
}

// Typed is a Navigator restricted to nodes of view T.
type Typed[T View] struct {
	nav Navigator
}

// As narrows v to view T. Nodes of another variant yield a null Typed.
func As[T View](v Navigator) Typed[T] {
	if v.IsNull() || v.n.Variant() != LabelOf[T]() {
		return Typed[T]{}
	}
	return Typed[T]{nav: v}
}

func (t Typed[T]) IsNull() bool {
	return t.nav.IsNull()
}

func (t Typed[T]) Nav() Navigator {
	return t.nav
}

// Get dereferences t.
func (t Typed[T]) Get() (T, error) {
	n, err := t.nav.Node()
	if err != nil {
		var zero T
		return zero, err
	}
	return wrapView[T](n), nil
}

func (t Typed[T]) MustGet() T {
	v, err := t.Get()
	if err != nil {
		panic(err)
	}
	return v
}

// Create makes a loose node of view T in g.
func Create[T View](g *Graph, shared ...Node) (T, error) {
	return build[T](g, (*Relation).Create, shared)
}

// Append makes a node of view T at the end of its relation.
func Append[T View](g *Graph, shared ...Node) (T, error) {
	return build[T](g, (*Relation).Append, shared)
}

// Prepend makes a node of view T at the start of its relation.
func Prepend[T View](g *Graph, shared ...Node) (T, error) {
	return build[T](g, (*Relation).Prepend, shared)
}

func build[T View](g *Graph, op func(*Relation, ...Node) (Node, error), shared []Node) (T, error) {
	var zero T
	rel, err := g.At(LabelOf[T]())
	if err != nil {
		return zero, err
	}
	n, err := op(rel, shared...)
	if err != nil {
		return zero, err
	}
	v, err := Cast[T](n)
	if err != nil {
		_ = rel.Erase(n)
		return zero, err
	}
	return v, nil
}

func (t Token) Next() Typed[Token] { return As[Token](t.Node.Next()) }
func (t Token) Prev() Typed[Token] { return As[Token](t.Node.Prev()) }
func (t Token) FirstChild() Typed[Word] { return As[Word](t.Node.FirstChild()) }
func (t Token) LastChild() Typed[Word] { return As[Word](t.Node.LastChild()) }
func (w Word) Next() Typed[Word] { return As[Word](w.Node.Next()) }
func (w Word) Prev() Typed[Word] { return As[Word](w.Node.Prev()) }
func (w Word) Parent() Typed[Token] { return As[Token](w.Node.Parent()) }
func (w Word) FirstChild() Typed[Syllable] {
	return As[Syllable](w.Node.FirstChild())
}
func (w Word) LastChild() Typed[Syllable] {
	return As[Syllable](w.Node.LastChild())
}
func (s Syllable) Next() Typed[Syllable] { return As[Syllable](s.Node.Next()) }
func (s Syllable) Prev() Typed[Syllable] { return As[Syllable](s.Node.Prev()) }
func (s Syllable) Parent() Typed[Word] { return As[Word](s.Node.Parent()) }
func (s Syllable) FirstChild() Typed[Segment] { return As[Segment](s.Node.FirstChild()) }
func (s Syllable) LastChild() Typed[Segment] { return As[Segment](s.Node.LastChild()) }
func (s Segment) Next() Typed[Segment] { return As[Segment](s.Node.Next()) }
func (s Segment) Prev() Typed[Segment] { return As[Segment](s.Node.Prev()) }
func (s Segment) Parent() Typed[Syllable] { return As[Syllable](s.Node.Parent()) }
func (s Silence) Next() Typed[Silence] { return As[Silence](s.Node.Next()) }
func (s Silence) Prev() Typed[Silence] { return As[Silence](s.Node.Prev()) }
