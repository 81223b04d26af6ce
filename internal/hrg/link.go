package hrg

// Low-level link helpers over arena slots. They perform no validation and
// are shared by the checked mutators and the destroy path, so every
// invariant-restoring step lives here once.

// unlinkNext clears the back link of slot's next neighbour. slot's own
// next field is left for the caller.
func (g *Graph) unlinkNext(slot uint32) {
	if n, ok := g.resolve(g.nodes[slot].next); ok && g.nodes[n].prev.slot == slot {
		g.nodes[n].prev = ref{}
	}
}

// unlinkPrev clears the forward link of slot's prev neighbour.
func (g *Graph) unlinkPrev(slot uint32) {
	if p, ok := g.resolve(g.nodes[slot].prev); ok && g.nodes[p].next.slot == slot {
		g.nodes[p].next = ref{}
	}
}

// unlinkParent moves the parent's child endpoints off slot. A first child
// hands over to its next sibling and a last child to its prev sibling, as
// long as that sibling still has the same parent.
func (g *Graph) unlinkParent(slot uint32) {
	rec := &g.nodes[slot]
	p, ok := g.resolve(rec.parent)
	if !ok {
		return
	}
	prec := &g.nodes[p]
	if prec.firstChild.slot == slot && prec.firstChild.gen == rec.gen {
		prec.firstChild = g.siblingUnder(rec.next, p)
	}
	if prec.lastChild.slot == slot && prec.lastChild.gen == rec.gen {
		prec.lastChild = g.siblingUnder(rec.prev, p)
	}
}

func (g *Graph) siblingUnder(sib ref, parent uint32) ref {
	s, ok := g.resolve(sib)
	if !ok {
		return ref{}
	}
	if pp, ok := g.resolve(g.nodes[s].parent); ok && pp == parent {
		return sib
	}
	return ref{}
}

// unlinkChildren clears the parent link of every child from first_child
// through last_child along the next chain.
func (g *Graph) unlinkChildren(slot uint32) {
	rec := &g.nodes[slot]
	last := rec.lastChild
	cur := rec.firstChild
	for {
		c, ok := g.resolve(cur)
		if !ok {
			break
		}
		if p, ok := g.resolve(g.nodes[c].parent); ok && p == slot {
			g.nodes[c].parent = ref{}
		}
		if cur == last {
			break
		}
		cur = g.nodes[c].next
		if cur == rec.firstChild {
			break
		}
	}
	rec.firstChild = ref{}
	rec.lastChild = ref{}
}

// linkNext makes b the next of a, detaching a's old next and b's old prev.
// b may be null.
func (g *Graph) linkNext(a uint32, b ref) {
	g.unlinkNext(a)
	g.nodes[a].next = b
	if s, ok := g.resolve(b); ok {
		g.unlinkPrev(s)
		g.nodes[s].prev = g.refOf(a)
	}
}

// linkPrev makes b the prev of a, detaching a's old prev and b's old next.
func (g *Graph) linkPrev(a uint32, b ref) {
	g.unlinkPrev(a)
	g.nodes[a].prev = b
	if s, ok := g.resolve(b); ok {
		g.unlinkNext(s)
		g.nodes[s].next = g.refOf(a)
	}
}

// linkParent sets slot's parent, first moving its old parent's endpoints.
func (g *Graph) linkParent(slot uint32, p ref) {
	g.unlinkParent(slot)
	g.nodes[slot].parent = p
}

// sameLink reports whether field currently designates target, treating
// stale refs as null.
func (g *Graph) sameLink(field, target ref) bool {
	_, fok := g.resolve(field)
	_, tok := g.resolve(target)
	if !fok || !tok {
		return fok == tok
	}
	return field == target
}
