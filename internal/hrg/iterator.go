package hrg

import (
	"iter"

	"github.com/specialistvlad/hrggo/internal/hrgerr"
)

// Comparator decides when two iterator positions are equal.
type Comparator func(a, b Node) bool

// SameNode compares node identity.
func SameNode(a, b Node) bool {
	return a == b
}

// SameContents treats every view of one entity as equal.
func SameContents(a, b Node) bool {
	return a.SameContents(b)
}

type step func(Navigator) Navigator

// Iterator is a bidirectional cursor along next/prev links. It remembers
// the position it came from so it can step back from one past the end.
type Iterator struct {
	curr, prev Navigator
	cmp        Comparator
	fwd, back  step
}

// NewIterator returns an iterator at pos moving along next links. A nil
// cmp compares node identity.
func NewIterator(pos Navigator, cmp Comparator) Iterator {
	return newIterator(pos, cmp, (Navigator).Next, (Navigator).Prev)
}

// NewReverseIterator returns an iterator at pos moving along prev links.
func NewReverseIterator(pos Navigator, cmp Comparator) Iterator {
	return newIterator(pos, cmp, (Navigator).Prev, (Navigator).Next)
}

func newIterator(pos Navigator, cmp Comparator, fwd, back step) Iterator {
	if cmp == nil {
		cmp = SameNode
	}
	return Iterator{curr: pos, prev: back(pos), cmp: cmp, fwd: fwd, back: back}
}

func (it Iterator) Nav() Navigator {
	return it.curr
}

// Node dereferences the current position.
func (it Iterator) Node() (Node, error) {
	return it.curr.Node()
}

// Done reports whether the iterator is past the end.
func (it Iterator) Done() bool {
	return it.curr.IsNull()
}

// Inc advances the iterator, failing with OutOfRange at the end.
func (it *Iterator) Inc() error {
	if it.curr.IsNull() {
		return hrgerr.New(hrgerr.OutOfRange, "increment past end")
	}
	it.prev = it.curr
	it.curr = it.fwd(it.curr)
	return nil
}

// Dec steps back, failing with OutOfRange at the beginning.
func (it *Iterator) Dec() error {
	if it.prev.IsNull() {
		return hrgerr.New(hrgerr.OutOfRange, "decrement before begin")
	}
	it.curr = it.prev
	it.prev = it.back(it.curr)
	return nil
}

// Equal compares positions with the iterator's comparator. Two iterators past the
// end are equal.
func (it Iterator) Equal(o Iterator) bool {
	if it.curr.IsNull() || o.curr.IsNull() {
		return it.curr.IsNull() == o.curr.IsNull()
	}
	cmp := it.cmp
	if cmp == nil {
		cmp = SameNode
	}
	return cmp(it.curr.n, o.curr.n)
}

// Sentinel marks the end of a range. An iterator is at the sentinel when
// its navigator is null.
type Sentinel struct{}

func (Sentinel) Equal(it Iterator) bool {
	return it.Done()
}

// Range runs forward from a node.
type Range struct {
	begin Iterator
}

func (r Range) Begin() Iterator {
	return r.begin
}

func (r Range) End() Sentinel {
	return Sentinel{}
}

// Seq yields every node of the range.
func (r Range) Seq() iter.Seq[Node] {
	return seqFrom(r.begin)
}

// ReverseRange runs backward from a node's predecessor.
type ReverseRange struct {
	begin Iterator
}

func (r ReverseRange) Begin() Iterator {
	return r.begin
}

func (r ReverseRange) End() Sentinel {
	return Sentinel{}
}

func (r ReverseRange) Seq() iter.Seq[Node] {
	return seqFrom(r.begin)
}

func seqFrom(begin Iterator) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		var end Sentinel
		for it := begin; !end.Equal(it); _ = it.Inc() {
			if !yield(it.curr.n) {
				return
			}
		}
	}
}

// Ahead ranges from n forward through the end of its chain.
func (n Node) Ahead(cmp Comparator) Range {
	return Range{begin: NewIterator(n.Nav(), cmp)}
}

// Back ranges from n's predecessor backward; n itself is excluded.
func (n Node) Back(cmp Comparator) ReverseRange {
	return ReverseRange{begin: NewReverseIterator(n.Prev(), cmp)}
}
