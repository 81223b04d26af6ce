package hrg

import (
	"github.com/specialistvlad/hrggo/internal/hrgerr"
	"github.com/specialistvlad/hrggo/internal/schema"
)

// Navigator is a nullable cursor over nodes. Every chained step on a null
// Navigator yields another null Navigator; only Node fails, with
// NullDereference, when the cursor is null at the point of use:
//
//	w, err := t.FirstChild().Next().As(schema.Syllable).Node()
type Navigator struct {
	n Node
}

// IsNull reports whether v points nowhere. Navigators to erased nodes are
// null.
func (v Navigator) IsNull() bool {
	return !v.n.Valid()
}

// Node dereferences v.
func (v Navigator) Node() (Node, error) {
	if v.IsNull() {
		return Node{}, hrgerr.New(hrgerr.NullDereference, "navigator is null")
	}
	return v.n, nil
}

// MustNode dereferences v, panicking with a NullDereference error when v
// is null.
func (v Navigator) MustNode() Node {
	n, err := v.Node()
	if err != nil {
		panic(err)
	}
	return n
}

// Equal reports whether v and o point at the same node or are both null.
func (v Navigator) Equal(o Navigator) bool {
	if v.IsNull() || o.IsNull() {
		return v.IsNull() == o.IsNull()
	}
	return v.n == o.n
}

// Is reports whether v points at n.
func (v Navigator) Is(n Node) bool {
	return !v.IsNull() && v.n == n
}

func (v Navigator) Next() Navigator {
	return v.n.Next()
}

func (v Navigator) Prev() Navigator {
	return v.n.Prev()
}

func (v Navigator) Parent() Navigator {
	return v.n.Parent()
}

func (v Navigator) FirstChild() Navigator {
	return v.n.FirstChild()
}

func (v Navigator) LastChild() Navigator {
	return v.n.LastChild()
}

func (v Navigator) As(label schema.Relation) Navigator {
	return v.n.As(label)
}

func (v Navigator) In(label schema.Relation) bool {
	return v.n.In(label)
}

// Apply calls fn with the current node, propagating null without calling
// fn.
func (v Navigator) Apply(fn func(Node) Navigator) Navigator {
	if v.IsNull() {
		return Navigator{}
	}
	return fn(v.n)
}

func (v Navigator) String() string {
	if v.IsNull() {
		return "<nil>"
	}
	return v.n.String()
}
