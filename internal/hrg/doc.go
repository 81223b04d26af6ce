// Package hrg implements heterogeneous relation graphs: named relations,
// each an ordered sequence of nodes, where one logical entity may have a
// node in several relations and all of those nodes share one feature store.
//
// # Storage
//
// A Graph owns two arenas. Node records hold the home relation label and
// five links (next, prev, parent, first child, last child) addressed by
// slot and generation. Contents records hold an entity's feature store and
// the map from relation label to the entity's node in that relation. A
// contents record lives exactly as long as that map is non-empty.
//
// Node values are small handles into the node arena. Erasing a node bumps
// its slot's generation, so outstanding handles and links to it read as
// null instead of aliasing whatever reuses the slot.
//
// # Linking
//
// next/prev links stay inside one relation. parent and child links cross
// relations and are checked against the graph's RelationValidator, which
// by default accepts the parent/child pairs declared in package schema.
// All link mutations go through the helpers in link.go, used both by the
// public setters and by node destruction.
//
// # Navigation
//
// Navigation methods return a Navigator, which stays usable when null:
//
//	syl := t.FirstChild().FirstChild() // null if t has no word children
//	n, err := syl.Node()               // ErrNullDereference here, not earlier
//
// Iterator, Range and ReverseRange step along next/prev links, and the
// Seq methods plug them into range-over-func loops.
//
// # Typed views
//
// Token, Word, Syllable, Segment and Silence wrap a Node of the matching
// variant and narrow parent/child navigation to the related view types.
package hrg
